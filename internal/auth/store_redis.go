// Copyright (c) 2026 Meihe Villa. All rights reserved.
// Author: chiawei.lin.tw@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/chiaweilin/meihe/internal/platform/constants"
)

// RedisSessionStore implements SessionStore using a Redis revocation set.
//
// Each revoked token ID becomes a key under
// [constants.RedisPrefixRevokedSession] whose TTL matches the token's
// remaining lifetime.
type RedisSessionStore struct {
	client *redis.Client
	logger *slog.Logger
}

// NewRedisSessionStore creates a new Redis-backed session store.
func NewRedisSessionStore(client *redis.Client, logger *slog.Logger) *RedisSessionStore {
	return &RedisSessionStore{client: client, logger: logger}
}

/*
Revoke marks a token ID as invalid for the rest of its lifetime.

Parameters:
  - ctx: context.Context
  - tokenID: string (the JWT "jti" claim)
  - ttl: time.Duration

Returns:
  - error: Execution errors
*/
func (store *RedisSessionStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	key := constants.RedisPrefixRevokedSession + tokenID

	if err := store.client.Set(ctx, key, "1", ttl).Err(); err != nil {
		return fmt.Errorf("redis_session_revoke_failed: %w", err)
	}

	return nil
}

/*
IsRevoked reports whether a token ID has been revoked.

Description: Fails OPEN on Redis connectivity errors. A flapping cache must
not lock every admin out of the CMS; the JWT signature and expiry still bound
the damage.

Parameters:
  - ctx: context.Context
  - tokenID: string

Returns:
  - bool: true when the token has been revoked
*/
func (store *RedisSessionStore) IsRevoked(ctx context.Context, tokenID string) bool {
	key := constants.RedisPrefixRevokedSession + tokenID

	if err := store.client.Get(ctx, key).Err(); err != nil {
		if errors.Is(err, redis.Nil) {
			return false
		}

		store.logger.Warn("session_revocation_check_failed", slog.String("error", err.Error()))
		return false
	}

	return true
}

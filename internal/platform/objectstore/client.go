// Copyright (c) 2026 Meihe Villa. All rights reserved.
// Author: chiawei.lin.tw@gmail.com

/*
Package objectstore provides the S3-compatible storage client used for media
uploads.

It wraps minio-go, which speaks the S3 wire protocol against AWS S3,
Cloudflare R2, or a local MinIO container — switching providers is a matter of
changing S3_ENDPOINT and credentials, never code.

Core Responsibilities:

  - Presign: Time-limited PUT URLs scoped to one key and content type.
  - Copy: Server-side object copy (the rename building block — S3 has no
    atomic rename primitive).
  - Remove: Single-object deletion.

The service layer never sees minio types; it depends on the narrow
media.ObjectStore interface that this client satisfies.
*/
package objectstore

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// bootstrapTimeout bounds the startup bucket check.
const bootstrapTimeout = 10 * time.Second

// Config holds the immutable connection settings for the object store.
type Config struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	UseSSL    bool
}

// Client is a bucket-scoped wrapper around the minio S3 client.
type Client struct {
	s3     *minio.Client
	bucket string
}

// New creates the S3 client and verifies the bucket exists.
//
// Unlike dev-oriented setups we never create the bucket here: production
// buckets carry lifecycle and CDN configuration that must be provisioned
// out-of-band, so a missing bucket is a deployment error.
func New(ctx context.Context, cfg Config, logger *slog.Logger) (*Client, error) {
	s3, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("objectstore: create client: %w", err)
	}

	checkCtx, cancel := context.WithTimeout(ctx, bootstrapTimeout)
	defer cancel()

	exists, err := s3.BucketExists(checkCtx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("objectstore: check bucket %q: %w", cfg.Bucket, err)
	}
	if !exists {
		return nil, fmt.Errorf("objectstore: bucket %q does not exist", cfg.Bucket)
	}

	logger.Info("object store connected",
		slog.String("endpoint", cfg.Endpoint),
		slog.String("bucket", cfg.Bucket),
	)

	return &Client{s3: s3, bucket: cfg.Bucket}, nil
}

// PresignPut issues a time-limited signed PUT URL for exactly one key.
//
// The Content-Type header is included in the signature, so the client must
// upload with the same content type or the store rejects the request.
func (client *Client) PresignPut(ctx context.Context, key, contentType string, expiry time.Duration) (string, error) {
	headers := http.Header{}
	headers.Set("Content-Type", contentType)

	signed, err := client.s3.PresignHeader(ctx, http.MethodPut, client.bucket, key, expiry, url.Values{}, headers)
	if err != nil {
		return "", fmt.Errorf("objectstore: presign put %q: %w", key, err)
	}

	return signed.String(), nil
}

// Copy performs a server-side copy from srcKey to dstKey within the bucket.
func (client *Client) Copy(ctx context.Context, srcKey, dstKey string) error {
	_, err := client.s3.CopyObject(ctx,
		minio.CopyDestOptions{Bucket: client.bucket, Object: dstKey},
		minio.CopySrcOptions{Bucket: client.bucket, Object: srcKey},
	)
	if err != nil {
		return fmt.Errorf("objectstore: copy %q -> %q: %w", srcKey, dstKey, err)
	}

	return nil
}

// Remove deletes the object at key. Removing an absent key is not an error
// under the S3 protocol.
func (client *Client) Remove(ctx context.Context, key string) error {
	if err := client.s3.RemoveObject(ctx, client.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("objectstore: remove %q: %w", key, err)
	}

	return nil
}

// Ping verifies the store is reachable, for the readiness probe.
func (client *Client) Ping(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if _, err := client.s3.BucketExists(pingCtx, client.bucket); err != nil {
		return fmt.Errorf("objectstore: ping failed: %w", err)
	}

	return nil
}

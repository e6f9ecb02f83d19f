// Copyright (c) 2026 Meihe Villa. All rights reserved.
// Author: chiawei.lin.tw@gmail.com

package media

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/chiaweilin/meihe/internal/media/policy"
	"github.com/chiaweilin/meihe/internal/platform/apperr"
	"github.com/chiaweilin/meihe/internal/platform/validate"
)

const (
	FieldFilename         = "filename"
	FieldOriginalFilename = "original_filename"
	FieldContentType      = "content_type"
	FieldStorageKey       = "storage_key"
	FieldPublicURL        = "public_url"
	FieldCategory         = "category"
	FieldFiles            = "files"
)

// MaxBatchFiles caps how many presigned URLs one request may ask for.
const MaxBatchFiles = 10

// ObjectStore is the narrow storage contract the media service needs. The
// minio-backed objectstore.Client satisfies it.
type ObjectStore interface {
	PresignPut(ctx context.Context, key, contentType string, expiry time.Duration) (string, error)
	Copy(ctx context.Context, srcKey, dstKey string) error
	Remove(ctx context.Context, key string) error
}

// # Service Layer

// Service coordinates upload grants, the metadata library, and the
// storage-side lifecycle of media objects.
type Service struct {
	repo          Repository
	store         ObjectStore
	resolver      policy.URLResolver
	presignExpiry time.Duration
	logger        *slog.Logger
}

// NewService constructs a media [Service].
func NewService(repo Repository, store ObjectStore, resolver policy.URLResolver, presignExpiry time.Duration, logger *slog.Logger) *Service {
	return &Service{
		repo:          repo,
		store:         store,
		resolver:      resolver,
		presignExpiry: presignExpiry,
		logger:        logger,
	}
}

// # Upload Grants

// PresignRequest is one file the client wants to upload.
type PresignRequest struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
}

// PresignGrant is everything the client needs to upload one file and
// reference it afterwards.
type PresignGrant struct {
	UploadURL   string `json:"upload_url"`
	PublicURL   string `json:"public_url"`
	StorageKey  string `json:"storage_key"`
	ContentType string `json:"content_type"`
	MaxSize     int64  `json:"max_size"`
	ExpiresIn   int    `json:"expires_in"`
}

/*
PresignUpload issues an upload grant for a single file.

Description: Validates the content type against the upload policy, derives a
fresh storage key, and signs a PUT URL scoped to that key and content type.
Nothing is persisted — the client registers the file via CreateRecord after
the upload succeeds.

Parameters:
  - ctx: context.Context
  - req: PresignRequest (filename and content type)

Returns:
  - *PresignGrant: Signed URL plus the file's future coordinates
  - error: Unsupported-type or storage signing errors
*/
func (service *Service) PresignUpload(ctx context.Context, req PresignRequest) (*PresignGrant, error) {
	v := &validate.Validator{}
	v.Required(FieldFilename, req.Filename)
	v.Required(FieldContentType, req.ContentType)
	if err := v.Err(); err != nil {
		return nil, err
	}

	key, err := policy.DeriveKey(req.Filename, req.ContentType)
	if err != nil {
		return nil, err
	}

	uploadURL, err := service.store.PresignPut(ctx, key, req.ContentType, service.presignExpiry)
	if err != nil {
		return nil, apperr.StorageUnavailable(err)
	}

	service.logger.Info("media_presign_issued",
		slog.String("storage_key", key),
		slog.String("content_type", req.ContentType),
	)

	return &PresignGrant{
		UploadURL:   uploadURL,
		PublicURL:   service.resolver.PublicURL(key),
		StorageKey:  key,
		ContentType: req.ContentType,
		MaxSize:     policy.MaxSize(req.ContentType),
		ExpiresIn:   int(service.presignExpiry.Seconds()),
	}, nil
}

/*
PresignUploadBatch issues grants for up to [MaxBatchFiles] files.

Description: Grants are issued sequentially and the batch is all-or-nothing:
the first unsupported type or signing failure aborts the whole request, with
the offending filename named in the error. Keys already derived for earlier
files in an aborted batch are never persisted, so no cleanup is needed.

Parameters:
  - ctx: context.Context
  - reqs: []PresignRequest

Returns:
  - []*PresignGrant: One grant per requested file, in request order
  - error: Batch-size, unsupported-type, or signing errors
*/
func (service *Service) PresignUploadBatch(ctx context.Context, reqs []PresignRequest) ([]*PresignGrant, error) {
	if len(reqs) == 0 {
		return nil, validate.RequiredError(FieldFiles, "At least one file is required")
	}
	if len(reqs) > MaxBatchFiles {
		return nil, validate.RequiredError(FieldFiles, fmt.Sprintf("Maximum %d files allowed per request", MaxBatchFiles))
	}

	grants := make([]*PresignGrant, 0, len(reqs))
	for _, req := range reqs {
		grant, err := service.PresignUpload(ctx, req)
		if err != nil {
			if appErr := apperr.As(err); appErr != nil {
				return nil, &apperr.AppError{
					Code:       appErr.Code,
					Message:    fmt.Sprintf("Error for '%s': %s", req.Filename, appErr.Message),
					HTTPStatus: appErr.HTTPStatus,
					Cause:      appErr.Cause,
				}
			}
			return nil, err
		}
		grants = append(grants, grant)
	}

	return grants, nil
}

// AllowedTypes exposes the upload policy for clients.
func (service *Service) AllowedTypes() policy.AllowedTypes {
	return policy.Allowed()
}

// # Library Management

/*
CreateRecord registers an uploaded file's metadata.

Description: Called by the client after a successful direct upload. The
storage key's category must match the content type's category; the record
then becomes the source of truth for the object's existence.

Parameters:
  - ctx: context.Context
  - record: *Record (storage coordinates plus editorial metadata)

Returns:
  - error: Validation, duplicate-key conflict, or persistence errors
*/
func (service *Service) CreateRecord(ctx context.Context, record *Record) error {
	v := &validate.Validator{}
	v.Required(FieldFilename, record.Filename)
	v.Required(FieldOriginalFilename, record.OriginalFilename)
	v.Required(FieldStorageKey, record.StorageKey)
	v.Required(FieldPublicURL, record.PublicURL)
	v.Required(FieldContentType, record.ContentType)
	v.OneOf(FieldCategory, record.Category, string(policy.CategoryImages), string(policy.CategoryVideos))

	if err := v.Err(); err != nil {
		return err
	}

	if err := service.repo.Create(ctx, record); err != nil {
		return err
	}

	service.logger.Info("media_record_created",
		slog.Int("media_id", record.ID),
		slog.String("storage_key", record.StorageKey),
		slog.String("category", record.Category),
	)

	return nil
}

// GetRecord retrieves one media record by ID.
func (service *Service) GetRecord(ctx context.Context, id int) (*Record, error) {
	return service.repo.FindByID(ctx, id)
}

// ListRecords returns a filtered page of the media library, newest first.
func (service *Service) ListRecords(ctx context.Context, filter Filter, limit, offset int) ([]*Record, int, error) {
	return service.repo.List(ctx, filter, limit, offset)
}

// ListFolders returns the distinct custom folders in use.
func (service *Service) ListFolders(ctx context.Context) ([]string, error) {
	return service.repo.ListFolders(ctx)
}

/*
UpdateRecord applies a metadata patch, renaming the stored object when the
original filename changes.

Description: A filename change is a storage-side rename (S3 has no rename
primitive): copy to the new key, delete the old object, then rewrite the
record's coordinates. The database update is the commit point — a failed copy
leaves both the object and the record untouched, while a failed delete of the
old object merely leaks a duplicate, which is logged for offline cleanup.

Parameters:
  - ctx: context.Context
  - id: int (record identity)
  - patch: MetaPatch (nil fields are left unchanged)

Returns:
  - *Record: The updated record
  - error: NotFound, storage, or persistence errors
*/
func (service *Service) UpdateRecord(ctx context.Context, id int, patch MetaPatch) (*Record, error) {
	record, err := service.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// ── 1. Storage-side rename when the filename changes ──
	if patch.OriginalFilename != nil && *patch.OriginalFilename != "" {
		if err := service.rename(ctx, record, *patch.OriginalFilename); err != nil {
			return nil, err
		}
	}

	// ── 2. Editorial metadata ──
	if patch.AltText != nil {
		record.AltText = patch.AltText
	}
	if patch.AltTextZh != nil {
		record.AltTextZh = patch.AltTextZh
	}
	if patch.Caption != nil {
		record.Caption = patch.Caption
	}
	if patch.CaptionZh != nil {
		record.CaptionZh = patch.CaptionZh
	}
	if patch.Folder != nil {
		record.Folder = patch.Folder
	}

	if err := service.repo.UpdateMeta(ctx, record); err != nil {
		return nil, err
	}

	return record, nil
}

// rename moves the stored object to a key derived from newFilename and
// commits the new coordinates to the record.
func (service *Service) rename(ctx context.Context, record *Record, newFilename string) error {
	safe := policy.SanitizeFilename(newFilename)
	newKey := policy.RenameTarget(record.StorageKey, safe)

	if newKey != record.StorageKey {
		if err := service.store.Copy(ctx, record.StorageKey, newKey); err != nil {
			return apperr.StorageUnavailable(fmt.Errorf("rename copy failed: %w", err))
		}

		// Old-object deletion is best-effort: a leaked duplicate is
		// recoverable, a lost object is not.
		if err := service.store.Remove(ctx, record.StorageKey); err != nil {
			service.logger.Warn("media_rename_leak",
				slog.Int("media_id", record.ID),
				slog.String("leaked_key", record.StorageKey),
				slog.String("error", err.Error()),
			)
		}
	}

	oldKey := record.StorageKey
	record.StorageKey = newKey
	record.PublicURL = service.resolver.PublicURL(newKey)
	record.Filename = safe
	record.OriginalFilename = newFilename

	if err := service.repo.UpdateLocation(ctx, record); err != nil {
		return err
	}

	service.logger.Info("media_renamed",
		slog.Int("media_id", record.ID),
		slog.String("old_key", oldKey),
		slog.String("new_key", newKey),
	)

	return nil
}

// # Deletion

/*
DeleteRecord removes a media record and its stored object.

Description: The storage deletion is best-effort: a failed object delete is
logged and the record is removed anyway, so the library never shows files
the admin already deleted.

Parameters:
  - ctx: context.Context
  - id: int

Returns:
  - error: NotFound or persistence errors
*/
func (service *Service) DeleteRecord(ctx context.Context, id int) error {
	record, err := service.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if record.StorageKey != "" {
		service.deleteObject(ctx, record.StorageKey)
	}

	if err := service.repo.Delete(ctx, id); err != nil {
		return err
	}

	service.logger.Info("media_deleted",
		slog.Int("media_id", id),
		slog.String("storage_key", record.StorageKey),
	)

	return nil
}

/*
DeleteByPublicURL removes the media record serving a URL, if one exists.

Description: Idempotent by design: URLs that reference external assets or
already-deleted files resolve to success without touching storage, since the
caller's goal — the URL no longer backed by a library record — already holds.

Parameters:
  - ctx: context.Context
  - url: string (the public URL to purge)

Returns:
  - error: Persistence errors only; an unknown URL is not an error
*/
func (service *Service) DeleteByPublicURL(ctx context.Context, url string) error {
	record, err := service.repo.FindByPublicURL(ctx, url)
	if err != nil {
		if appErr := apperr.As(err); appErr != nil && appErr.HTTPStatus == 404 {
			return nil
		}
		return err
	}

	if record.StorageKey != "" {
		service.deleteObject(ctx, record.StorageKey)
	}

	if err := service.repo.Delete(ctx, record.ID); err != nil {
		return err
	}

	service.logger.Info("media_deleted_by_url",
		slog.Int("media_id", record.ID),
		slog.String("public_url", url),
	)

	return nil
}

// deleteObject removes a stored object, reporting success as a boolean so
// callers can treat storage deletion as best-effort.
func (service *Service) deleteObject(ctx context.Context, key string) bool {
	if err := service.store.Remove(ctx, key); err != nil {
		service.logger.Warn("media_object_delete_failed",
			slog.String("storage_key", key),
			slog.String("error", err.Error()),
		)
		return false
	}
	return true
}

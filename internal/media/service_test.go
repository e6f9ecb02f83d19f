// Copyright (c) 2026 Meihe Villa. All rights reserved.
// Author: chiawei.lin.tw@gmail.com

package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chiaweilin/meihe/internal/media/policy"
	"github.com/chiaweilin/meihe/internal/platform/apperr"
)

// # Test Doubles

// fakeStore is an in-memory [ObjectStore] that records calls and can be
// told to fail specific operations.
type fakeStore struct {
	objects map[string]bool

	presignErr error
	copyErr    error
	removeErr  error

	presigned []string
	copies    [][2]string
	removes   []string
}

func newFakeStore(keys ...string) *fakeStore {
	store := &fakeStore{objects: map[string]bool{}}
	for _, key := range keys {
		store.objects[key] = true
	}
	return store
}

func (store *fakeStore) PresignPut(_ context.Context, key, contentType string, expiry time.Duration) (string, error) {
	if store.presignErr != nil {
		return "", store.presignErr
	}
	store.presigned = append(store.presigned, key)
	return "https://bucket.example/" + key + "?signed", nil
}

func (store *fakeStore) Copy(_ context.Context, srcKey, dstKey string) error {
	if store.copyErr != nil {
		return store.copyErr
	}
	store.copies = append(store.copies, [2]string{srcKey, dstKey})
	store.objects[dstKey] = true
	return nil
}

func (store *fakeStore) Remove(_ context.Context, key string) error {
	store.removes = append(store.removes, key)
	if store.removeErr != nil {
		return store.removeErr
	}
	delete(store.objects, key)
	return nil
}

// fakeRepo is an in-memory [Repository].
type fakeRepo struct {
	records map[int]*Record
	nextID  int

	updateLocationErr error
}

func newFakeRepo(records ...*Record) *fakeRepo {
	repo := &fakeRepo{records: map[int]*Record{}, nextID: 1}
	for _, record := range records {
		clone := *record
		repo.records[record.ID] = &clone
		if record.ID >= repo.nextID {
			repo.nextID = record.ID + 1
		}
	}
	return repo
}

func (repo *fakeRepo) Create(_ context.Context, record *Record) error {
	for _, existing := range repo.records {
		if existing.StorageKey == record.StorageKey {
			return apperr.Conflict("Resource already exists")
		}
	}
	record.ID = repo.nextID
	repo.nextID++
	record.CreatedAt = time.Now()
	record.UpdatedAt = record.CreatedAt
	clone := *record
	repo.records[record.ID] = &clone
	return nil
}

func (repo *fakeRepo) FindByID(_ context.Context, id int) (*Record, error) {
	record, ok := repo.records[id]
	if !ok {
		return nil, apperr.NotFound("media file")
	}
	clone := *record
	return &clone, nil
}

func (repo *fakeRepo) FindByPublicURL(_ context.Context, url string) (*Record, error) {
	for _, record := range repo.records {
		if record.PublicURL == url {
			clone := *record
			return &clone, nil
		}
	}
	return nil, apperr.NotFound("media file")
}

func (repo *fakeRepo) List(_ context.Context, filter Filter, limit, offset int) ([]*Record, int, error) {
	var matched []*Record
	for _, record := range repo.records {
		if filter.Category != "" && record.Category != filter.Category {
			continue
		}
		clone := *record
		matched = append(matched, &clone)
	}
	return matched, len(matched), nil
}

func (repo *fakeRepo) ListFolders(_ context.Context) ([]string, error) {
	return nil, nil
}

func (repo *fakeRepo) UpdateMeta(_ context.Context, record *Record) error {
	stored, ok := repo.records[record.ID]
	if !ok {
		return apperr.NotFound("media file")
	}
	stored.AltText = record.AltText
	stored.AltTextZh = record.AltTextZh
	stored.Caption = record.Caption
	stored.CaptionZh = record.CaptionZh
	stored.Folder = record.Folder
	return nil
}

func (repo *fakeRepo) UpdateLocation(_ context.Context, record *Record) error {
	if repo.updateLocationErr != nil {
		return repo.updateLocationErr
	}
	stored, ok := repo.records[record.ID]
	if !ok {
		return apperr.NotFound("media file")
	}
	stored.StorageKey = record.StorageKey
	stored.PublicURL = record.PublicURL
	stored.Filename = record.Filename
	stored.OriginalFilename = record.OriginalFilename
	return nil
}

func (repo *fakeRepo) Delete(_ context.Context, id int) error {
	if _, ok := repo.records[id]; !ok {
		return apperr.NotFound("media file")
	}
	delete(repo.records, id)
	return nil
}

// # Fixtures

var testResolver = policy.URLResolver{Bucket: "meihe-media", Region: "ap-northeast-1"}

func newTestService(repo Repository, store ObjectStore) *Service {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return NewService(repo, store, testResolver, time.Hour, logger)
}

func imageRecord(id int, key string) *Record {
	return &Record{
		ID:               id,
		Filename:         "front-gate.jpg",
		OriginalFilename: "front gate.jpg",
		StorageKey:       key,
		PublicURL:        testResolver.PublicURL(key),
		ContentType:      "image/jpeg",
		Category:         "images",
	}
}

// # Presign

func TestPresignUpload(t *testing.T) {
	store := newFakeStore()
	service := newTestService(newFakeRepo(), store)

	grant, err := service.PresignUpload(context.Background(), PresignRequest{
		Filename:    "front gate.jpg",
		ContentType: "image/jpeg",
	})
	require.NoError(t, err)

	// Key and URLs must agree with each other.
	assert.True(t, strings.HasPrefix(grant.StorageKey, "images/"))
	assert.Contains(t, grant.StorageKey, "-front-gate.jpg")
	assert.Equal(t, testResolver.PublicURL(grant.StorageKey), grant.PublicURL)
	assert.Contains(t, grant.UploadURL, grant.StorageKey)

	assert.Equal(t, "image/jpeg", grant.ContentType)
	assert.EqualValues(t, policy.MaxImageSize, grant.MaxSize)
	assert.Equal(t, 3600, grant.ExpiresIn)
}

func TestPresignUpload_UnsupportedType(t *testing.T) {
	store := newFakeStore()
	service := newTestService(newFakeRepo(), store)

	_, err := service.PresignUpload(context.Background(), PresignRequest{
		Filename:    "report.pdf",
		ContentType: "application/pdf",
	})
	require.Error(t, err)

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPStatus)

	// Rejected before any storage interaction.
	assert.Empty(t, store.presigned)
}

func TestPresignUpload_StorageFailure(t *testing.T) {
	store := newFakeStore()
	store.presignErr = errors.New("connection refused")
	service := newTestService(newFakeRepo(), store)

	_, err := service.PresignUpload(context.Background(), PresignRequest{
		Filename:    "a.jpg",
		ContentType: "image/jpeg",
	})
	require.Error(t, err)

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusInternalServerError, appErr.HTTPStatus)
}

func TestPresignUploadBatch(t *testing.T) {
	store := newFakeStore()
	service := newTestService(newFakeRepo(), store)

	reqs := []PresignRequest{
		{Filename: "a.jpg", ContentType: "image/jpeg"},
		{Filename: "b.mp4", ContentType: "video/mp4"},
		{Filename: "c.png", ContentType: "image/png"},
	}

	grants, err := service.PresignUploadBatch(context.Background(), reqs)
	require.NoError(t, err)
	require.Len(t, grants, 3)

	// Grants come back in request order.
	assert.Contains(t, grants[0].StorageKey, "a.jpg")
	assert.Contains(t, grants[1].StorageKey, "b.mp4")
	assert.Contains(t, grants[2].StorageKey, "c.png")
}

func TestPresignUploadBatch_AbortsOnFirstRejection(t *testing.T) {
	store := newFakeStore()
	service := newTestService(newFakeRepo(), store)

	reqs := []PresignRequest{
		{Filename: "ok.jpg", ContentType: "image/jpeg"},
		{Filename: "nope.svg", ContentType: "image/svg+xml"},
		{Filename: "later.png", ContentType: "image/png"},
	}

	grants, err := service.PresignUploadBatch(context.Background(), reqs)
	require.Error(t, err)
	assert.Nil(t, grants)

	// The offending filename is named; nothing after it was processed.
	assert.Contains(t, err.Error(), "nope.svg")
	assert.Len(t, store.presigned, 1)
}

func TestPresignUploadBatch_SizeLimit(t *testing.T) {
	service := newTestService(newFakeRepo(), newFakeStore())

	reqs := make([]PresignRequest, MaxBatchFiles+1)
	for i := range reqs {
		reqs[i] = PresignRequest{Filename: fmt.Sprintf("f%d.jpg", i), ContentType: "image/jpeg"}
	}

	_, err := service.PresignUploadBatch(context.Background(), reqs)
	require.Error(t, err)

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPStatus)

	_, err = service.PresignUploadBatch(context.Background(), nil)
	require.Error(t, err)
}

// # Library

func TestCreateRecord_Validation(t *testing.T) {
	service := newTestService(newFakeRepo(), newFakeStore())

	err := service.CreateRecord(context.Background(), &Record{
		Filename: "x.jpg",
		Category: "documents",
	})
	require.Error(t, err)

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPStatus)
}

func TestCreateRecord_DuplicateKey(t *testing.T) {
	existing := imageRecord(1, "images/2026/08/aabbccdd-front-gate.jpg")
	service := newTestService(newFakeRepo(existing), newFakeStore())

	dup := imageRecord(0, existing.StorageKey)
	err := service.CreateRecord(context.Background(), dup)
	require.Error(t, err)

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusConflict, appErr.HTTPStatus)
}

// # Rename

func TestUpdateRecord_Rename(t *testing.T) {
	oldKey := "images/2026/08/aabbccdd-front-gate.jpg"
	repo := newFakeRepo(imageRecord(1, oldKey))
	store := newFakeStore(oldKey)
	service := newTestService(repo, store)

	record, err := service.UpdateRecord(context.Background(), 1, MetaPatch{
		OriginalFilename: strPtr("main entrance.jpg"),
	})
	require.NoError(t, err)

	wantKey := "images/2026/08/main-entrance.jpg"
	assert.Equal(t, wantKey, record.StorageKey)
	assert.Equal(t, testResolver.PublicURL(wantKey), record.PublicURL)
	assert.Equal(t, "main-entrance.jpg", record.Filename)
	assert.Equal(t, "main entrance.jpg", record.OriginalFilename)

	// Storage saw copy-then-delete, in that order.
	require.Len(t, store.copies, 1)
	assert.Equal(t, [2]string{oldKey, wantKey}, store.copies[0])
	assert.Equal(t, []string{oldKey}, store.removes)

	// The repository committed the new coordinates.
	stored, err := repo.FindByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, wantKey, stored.StorageKey)
}

func TestUpdateRecord_RenameCopyFails(t *testing.T) {
	oldKey := "images/2026/08/aabbccdd-front-gate.jpg"
	repo := newFakeRepo(imageRecord(1, oldKey))
	store := newFakeStore(oldKey)
	store.copyErr = errors.New("copy refused")
	service := newTestService(repo, store)

	_, err := service.UpdateRecord(context.Background(), 1, MetaPatch{
		OriginalFilename: strPtr("new.jpg"),
	})
	require.Error(t, err)

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusInternalServerError, appErr.HTTPStatus)

	// A failed copy leaves the record and the old object untouched.
	stored, err := repo.FindByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, oldKey, stored.StorageKey)
	assert.Empty(t, store.removes)
	assert.True(t, store.objects[oldKey])
}

func TestUpdateRecord_RenameOldDeleteFails(t *testing.T) {
	oldKey := "images/2026/08/aabbccdd-front-gate.jpg"
	repo := newFakeRepo(imageRecord(1, oldKey))
	store := newFakeStore(oldKey)
	store.removeErr = errors.New("transient failure")
	service := newTestService(repo, store)

	// A failed old-object delete leaks a duplicate but the rename succeeds.
	record, err := service.UpdateRecord(context.Background(), 1, MetaPatch{
		OriginalFilename: strPtr("new.jpg"),
	})
	require.NoError(t, err)
	assert.Equal(t, "images/2026/08/new.jpg", record.StorageKey)
}

func TestUpdateRecord_RenameSameName(t *testing.T) {
	oldKey := "images/2026/08/aabbccdd-front-gate.jpg"
	repo := newFakeRepo(imageRecord(1, oldKey))
	store := newFakeStore(oldKey)
	service := newTestService(repo, store)

	// Renaming to the key's existing last segment is a storage no-op.
	record, err := service.UpdateRecord(context.Background(), 1, MetaPatch{
		OriginalFilename: strPtr("aabbccdd-front-gate.jpg"),
	})
	require.NoError(t, err)

	assert.Equal(t, oldKey, record.StorageKey)
	assert.Empty(t, store.copies)
	assert.Empty(t, store.removes)
}

func TestUpdateRecord_MetadataOnly(t *testing.T) {
	oldKey := "images/2026/08/aabbccdd-front-gate.jpg"
	repo := newFakeRepo(imageRecord(1, oldKey))
	store := newFakeStore(oldKey)
	service := newTestService(repo, store)

	record, err := service.UpdateRecord(context.Background(), 1, MetaPatch{
		AltText:   strPtr("Front gate of the villa"),
		AltTextZh: strPtr("山莊正門"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Front gate of the villa", *record.AltText)
	assert.Equal(t, "山莊正門", *record.AltTextZh)

	// No storage traffic for pure metadata edits.
	assert.Empty(t, store.copies)
	assert.Empty(t, store.removes)
	assert.Equal(t, oldKey, record.StorageKey)
}

// # Deletion

func TestDeleteRecord(t *testing.T) {
	key := "images/2026/08/aabbccdd-front-gate.jpg"
	repo := newFakeRepo(imageRecord(1, key))
	store := newFakeStore(key)
	service := newTestService(repo, store)

	require.NoError(t, service.DeleteRecord(context.Background(), 1))

	assert.False(t, store.objects[key])
	_, err := repo.FindByID(context.Background(), 1)
	require.Error(t, err)
}

func TestDeleteRecord_StorageFailureStillDeletesRecord(t *testing.T) {
	key := "images/2026/08/aabbccdd-front-gate.jpg"
	repo := newFakeRepo(imageRecord(1, key))
	store := newFakeStore(key)
	store.removeErr = errors.New("storage down")
	service := newTestService(repo, store)

	require.NoError(t, service.DeleteRecord(context.Background(), 1))

	_, err := repo.FindByID(context.Background(), 1)
	require.Error(t, err)
}

func TestDeleteRecord_NotFound(t *testing.T) {
	service := newTestService(newFakeRepo(), newFakeStore())

	err := service.DeleteRecord(context.Background(), 99)
	require.Error(t, err)

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusNotFound, appErr.HTTPStatus)
}

func TestDeleteByPublicURL(t *testing.T) {
	key := "images/2026/08/aabbccdd-front-gate.jpg"
	record := imageRecord(1, key)
	repo := newFakeRepo(record)
	store := newFakeStore(key)
	service := newTestService(repo, store)

	require.NoError(t, service.DeleteByPublicURL(context.Background(), record.PublicURL))

	assert.False(t, store.objects[key])
	_, err := repo.FindByID(context.Background(), 1)
	require.Error(t, err)
}

func TestDeleteByPublicURL_UnknownURLIsSuccess(t *testing.T) {
	store := newFakeStore()
	service := newTestService(newFakeRepo(), store)

	// External or already-deleted URLs resolve without touching storage.
	err := service.DeleteByPublicURL(context.Background(), "https://elsewhere.example/pic.jpg")
	require.NoError(t, err)
	assert.Empty(t, store.removes)
}

func strPtr(s string) *string { return &s }

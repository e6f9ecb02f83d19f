// Copyright (c) 2026 Meihe Villa. All rights reserved.
// Author: chiawei.lin.tw@gmail.com

/*
Package media's HTTP interface.

# Routing Strategy

  - Public (v1): GET /uploads/allowed-types discloses the upload policy to
    any client building an upload form.
  - Restricted (v1): everything else requires an authenticated admin —
    presigning, the media library, and lifecycle operations.

The handler translates between the web/JSON layer and the internal [Service].
*/
package media

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/chiaweilin/meihe/internal/platform/middleware"
	requestutil "github.com/chiaweilin/meihe/internal/platform/request"
	"github.com/chiaweilin/meihe/internal/platform/respond"
	"github.com/chiaweilin/meihe/internal/platform/validate"
	"github.com/chiaweilin/meihe/pkg/pagination"
)

const (
	FieldItems      = "items"
	FieldURLs       = "urls"
	FieldTotalCount = "total_count"
	FieldURL        = "url"
)

// # Handler Implementation

// Handler implements the HTTP layer for uploads and the media library.
type Handler struct {
	service *Service
}

// NewHandler constructs a media [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes attaches upload and media-library endpoints to the root API
// router. Upload grants live under /uploads, the library under /media.
func (handler *Handler) RegisterRoutes(api chi.Router) {
	// Public policy disclosure
	api.Get("/uploads/allowed-types", handler.AllowedTypes)

	// Admin protected endpoints
	api.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireAuth)

		admin.Post("/uploads/presign", handler.Presign)
		admin.Post("/uploads/presign/multiple", handler.PresignMultiple)

		admin.Get("/media", handler.List)
		admin.Post("/media", handler.Create)
		admin.Get("/media/folders/list", handler.ListFolders)
		admin.Delete("/media/by-url/delete", handler.DeleteByURL)
		admin.Get("/media/{id}", handler.Get)
		admin.Patch("/media/{id}", handler.Update)
		admin.Delete("/media/{id}", handler.Delete)
	})
}

// # Upload Grants

/*
POST /api/v1/uploads/presign.

Description: Issues a presigned PUT URL for one file. The client uploads
directly to storage with it, then registers the file via POST /media.

Request:
  - body: PresignRequest (filename, content_type)

Response:
  - 200: PresignGrant: Signed URL and future coordinates
  - 400: Unsupported content type or missing fields
  - 401: Authentication required
*/
func (handler *Handler) Presign(writer http.ResponseWriter, request *http.Request) {
	var input PresignRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	grant, err := handler.service.PresignUpload(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, grant)
}

// presignMultipleRequest defines the inbound JSON schema for batch grants.
type presignMultipleRequest struct {
	Files []PresignRequest `json:"files"`
}

/*
POST /api/v1/uploads/presign/multiple.

Description: Issues grants for up to ten files in one request. The batch is
all-or-nothing: the first rejected file aborts the whole request.

Request:
  - body: presignMultipleRequest

Response:
  - 200: urls + total_count
  - 400: Batch too large or a file rejected (named in the message)
  - 401: Authentication required
*/
func (handler *Handler) PresignMultiple(writer http.ResponseWriter, request *http.Request) {
	var input presignMultipleRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	grants, err := handler.service.PresignUploadBatch(request.Context(), input.Files)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{
		FieldURLs:       grants,
		FieldTotalCount: len(grants),
	})
}

/*
GET /api/v1/uploads/allowed-types.

Description: Public disclosure of accepted content types and size limits,
used by upload forms for client-side validation.

Response:
  - 200: AllowedTypes
*/
func (handler *Handler) AllowedTypes(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, handler.service.AllowedTypes())
}

// # Media Library

/*
GET /api/v1/media.

Description: Paginated, filterable listing of the media library.

Request:
  - category: string (images, videos)
  - folder: string
  - search: string (matches filename and alt texts)
  - page, limit: pagination

Response:
  - 200: Paginated list of records
  - 401: Authentication required
*/
func (handler *Handler) List(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	filter := Filter{
		Category: request.URL.Query().Get("category"),
		Folder:   request.URL.Query().Get("folder"),
		Search:   request.URL.Query().Get("search"),
	}

	records, total, err := handler.service.ListRecords(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if records == nil {
		records = []*Record{}
	}

	respond.Paginated(writer, records, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
GET /api/v1/media/{id}.

Response:
  - 200: Record
  - 404: Media file not found
*/
func (handler *Handler) Get(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	record, err := handler.service.GetRecord(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, record)
}

// createRecordRequest defines the inbound JSON schema for registering an
// uploaded file.
type createRecordRequest struct {
	Filename         string  `json:"filename"`
	OriginalFilename string  `json:"original_filename"`
	StorageKey       string  `json:"storage_key"`
	PublicURL        string  `json:"public_url"`
	ContentType      string  `json:"content_type"`
	FileSize         *int64  `json:"file_size"`
	Category         string  `json:"category"`
	Folder           *string `json:"folder"`
	AltText          *string `json:"alt_text"`
	AltTextZh        *string `json:"alt_text_zh"`
	Caption          *string `json:"caption"`
	CaptionZh        *string `json:"caption_zh"`
	Width            *int    `json:"width"`
	Height           *int    `json:"height"`
}

/*
POST /api/v1/media.

Description: Registers an uploaded file's metadata after a successful direct
upload.

Request:
  - body: createRecordRequest

Response:
  - 201: Record: The registered record with its generated ID
  - 400: Validation errors
  - 409: Storage key already registered
*/
func (handler *Handler) Create(writer http.ResponseWriter, request *http.Request) {
	var input createRecordRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	record := &Record{
		Filename:         input.Filename,
		OriginalFilename: input.OriginalFilename,
		StorageKey:       input.StorageKey,
		PublicURL:        input.PublicURL,
		ContentType:      input.ContentType,
		FileSize:         input.FileSize,
		Category:         input.Category,
		Folder:           input.Folder,
		AltText:          input.AltText,
		AltTextZh:        input.AltTextZh,
		Caption:          input.Caption,
		CaptionZh:        input.CaptionZh,
		Width:            input.Width,
		Height:           input.Height,
	}

	if err := handler.service.CreateRecord(request.Context(), record); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, record)
}

// updateRecordRequest defines the inbound JSON schema for metadata patches.
type updateRecordRequest struct {
	AltText          *string `json:"alt_text"`
	AltTextZh        *string `json:"alt_text_zh"`
	Caption          *string `json:"caption"`
	CaptionZh        *string `json:"caption_zh"`
	Folder           *string `json:"folder"`
	OriginalFilename *string `json:"original_filename"`
}

/*
PATCH /api/v1/media/{id}.

Description: Partially updates editorial metadata. Supplying a new
original_filename additionally renames the stored object.

Request:
  - body: updateRecordRequest (absent fields are left unchanged)

Response:
  - 200: Record: The updated record
  - 404: Media file not found
  - 500: Storage rename failed (record left unchanged)
*/
func (handler *Handler) Update(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateRecordRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	record, err := handler.service.UpdateRecord(request.Context(), id, MetaPatch{
		AltText:          input.AltText,
		AltTextZh:        input.AltTextZh,
		Caption:          input.Caption,
		CaptionZh:        input.CaptionZh,
		Folder:           input.Folder,
		OriginalFilename: input.OriginalFilename,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, record)
}

/*
DELETE /api/v1/media/{id}.

Description: Removes the record and its stored object. Storage deletion is
best-effort; the record is removed regardless.

Response:
  - 204: Deleted
  - 404: Media file not found
*/
func (handler *Handler) Delete(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteRecord(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
DELETE /api/v1/media/by-url/delete?url=...

Description: Deletes the media record serving the given public URL. Useful
when a form field only carries the URL. Unknown URLs succeed silently.

Request:
  - url: string (query parameter, required)

Response:
  - 204: Deleted or URL not tracked
  - 400: Missing url parameter
*/
func (handler *Handler) DeleteByURL(writer http.ResponseWriter, request *http.Request) {
	url := request.URL.Query().Get(FieldURL)
	if url == "" {
		respond.Error(writer, request, validate.RequiredError(FieldURL, "Query parameter 'url' is required"))
		return
	}

	if err := handler.service.DeleteByPublicURL(request.Context(), url); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
GET /api/v1/media/folders/list.

Response:
  - 200: []string: Distinct folders in use, sorted
*/
func (handler *Handler) ListFolders(writer http.ResponseWriter, request *http.Request) {
	folders, err := handler.service.ListFolders(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if folders == nil {
		folders = []string{}
	}

	respond.OK(writer, folders)
}

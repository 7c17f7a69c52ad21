package files

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"pdfhub/internal/contextutils"
	"pdfhub/internal/response"
	"pdfhub/internal/services"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// maxUploadMemory bounds how much of a multipart body is buffered in memory.
const maxUploadMemory = 10 << 20

// FileController handles document upload, metadata and sharing endpoints.
type FileController struct {
	files            services.FileService
	responseBuilder  *response.Builder
	paginationParser *response.PaginationParser
	logger           *zap.Logger
}

// NewFileController creates a new file controller.
func NewFileController(
	files services.FileService,
	responseBuilder *response.Builder,
	logger *zap.Logger,
) *FileController {
	return &FileController{
		files:            files,
		responseBuilder:  responseBuilder,
		paginationParser: response.NewPaginationParser(response.DefaultPaginationConfig()),
		logger:           logger,
	}
}

// Upload handles POST /api/v1/files
func (c *FileController) Upload(w http.ResponseWriter, r *http.Request) {
	ownerID := contextutils.GetUserID(r.Context())

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		c.responseBuilder.WriteError(w, r, services.NewValidationError("invalid multipart form", err))
		return
	}

	_, header, err := r.FormFile("file")
	if err != nil {
		c.responseBuilder.WriteError(w, r, services.NewValidationError("file field is required", err))
		return
	}

	isPublic, _ := strconv.ParseBool(r.FormValue("isPublic"))

	file, err := c.files.Upload(r.Context(), &services.UploadRequest{
		OwnerID:  ownerID,
		File:     header,
		IsPublic: isPublic,
	})
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	c.responseBuilder.WriteCreated(w, r, file)
}

// List handles GET /api/v1/files
func (c *FileController) List(w http.ResponseWriter, r *http.Request) {
	ownerID := contextutils.GetUserID(r.Context())

	params, err := c.paginationParser.ParseFromRequest(r)
	if err != nil {
		c.responseBuilder.WriteError(w, r, services.NewValidationError(err.Error(), err))
		return
	}

	result, err := c.files.ListOwn(r.Context(), ownerID, r.URL.Query().Get("search"), params)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	c.responseBuilder.WritePaginated(w, r, result.Data, result.Pagination)
}

// Get handles GET /api/v1/files/{id}
func (c *FileController) Get(w http.ResponseWriter, r *http.Request) {
	fileID, err := c.pathID(r)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	file, err := c.files.Get(r.Context(), fileID, contextutils.GetUserID(r.Context()))
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	c.responseBuilder.WriteSuccess(w, r, file)
}

// Delete handles DELETE /api/v1/files/{id}
func (c *FileController) Delete(w http.ResponseWriter, r *http.Request) {
	fileID, err := c.pathID(r)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	if err := c.files.Delete(r.Context(), fileID, contextutils.GetUserID(r.Context())); err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	c.responseBuilder.WriteNoContent(w, r)
}

// SetVisibility handles PATCH /api/v1/files/{id}/visibility
func (c *FileController) SetVisibility(w http.ResponseWriter, r *http.Request) {
	fileID, err := c.pathID(r)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	var req struct {
		IsPublic bool `json:"isPublic"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.responseBuilder.WriteError(w, r, services.NewValidationError("invalid request body", err))
		return
	}

	file, err := c.files.SetVisibility(r.Context(), fileID, contextutils.GetUserID(r.Context()), req.IsPublic)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	c.responseBuilder.WriteSuccess(w, r, file)
}

// Download handles GET /api/v1/files/{id}/download
func (c *FileController) Download(w http.ResponseWriter, r *http.Request) {
	fileID, err := c.pathID(r)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	rc, file, err := c.files.Download(r.Context(), fileID, contextutils.GetUserID(r.Context()))
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}
	defer rc.Close()

	c.streamFile(w, r, rc, file.OriginalName, file.ContentType)
}

// CreateShareLink handles POST /api/v1/files/{id}/share
func (c *FileController) CreateShareLink(w http.ResponseWriter, r *http.Request) {
	fileID, err := c.pathID(r)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	token, err := c.files.CreateShareLink(r.Context(), fileID, contextutils.GetUserID(r.Context()))
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	c.responseBuilder.WriteCreated(w, r, map[string]string{
		"shareToken": token,
		"shareUrl":   fmt.Sprintf("/api/v1/share/%s", token),
	})
}

// RevokeShareLink handles DELETE /api/v1/files/{id}/share
func (c *FileController) RevokeShareLink(w http.ResponseWriter, r *http.Request) {
	fileID, err := c.pathID(r)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	if err := c.files.RevokeShareLink(r.Context(), fileID, contextutils.GetUserID(r.Context())); err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	c.responseBuilder.WriteNoContent(w, r)
}

// ResolveShareToken handles GET /api/v1/share/{token}
func (c *FileController) ResolveShareToken(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	file, err := c.files.ResolveShareToken(r.Context(), token)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	c.responseBuilder.WriteSuccess(w, r, file)
}

// DownloadShared handles GET /api/v1/share/{token}/download
func (c *FileController) DownloadShared(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	file, err := c.files.ResolveShareToken(r.Context(), token)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	// A share token grants access regardless of visibility, so download as
	// the owner rather than the anonymous viewer.
	rc, file, err := c.files.Download(r.Context(), file.ID, file.UploadedBy)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}
	defer rc.Close()

	c.streamFile(w, r, rc, file.OriginalName, file.ContentType)
}

func (c *FileController) streamFile(w http.ResponseWriter, r *http.Request, src io.Reader, name, contentType string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))

	if _, err := io.Copy(w, src); err != nil {
		c.logger.Warn("Download stream interrupted",
			zap.String("file", name),
			zap.Error(err),
		)
	}
}

func (c *FileController) pathID(r *http.Request) (int64, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, services.NewValidationError("invalid document ID", err)
	}
	return id, nil
}

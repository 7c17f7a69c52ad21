package likes

import (
	"net/http"
	"strconv"

	"pdfhub/internal/contextutils"
	"pdfhub/internal/response"
	"pdfhub/internal/services"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// LikeController handles like toggle and status endpoints.
type LikeController struct {
	likes           services.LikeService
	responseBuilder *response.Builder
	logger          *zap.Logger
}

// NewLikeController creates a new like controller.
func NewLikeController(
	likes services.LikeService,
	responseBuilder *response.Builder,
	logger *zap.Logger,
) *LikeController {
	return &LikeController{
		likes:           likes,
		responseBuilder: responseBuilder,
		logger:          logger,
	}
}

// Toggle handles POST /api/v1/files/{id}/like
func (c *LikeController) Toggle(w http.ResponseWriter, r *http.Request) {
	fileID, err := c.pathFileID(r)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	status, err := c.likes.Toggle(r.Context(), contextutils.GetUserID(r.Context()), fileID)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	c.responseBuilder.WriteSuccess(w, r, status)
}

// Status handles GET /api/v1/files/{id}/like
func (c *LikeController) Status(w http.ResponseWriter, r *http.Request) {
	fileID, err := c.pathFileID(r)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	status, err := c.likes.Status(r.Context(), contextutils.GetUserID(r.Context()), fileID)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	c.responseBuilder.WriteSuccess(w, r, status)
}

func (c *LikeController) pathFileID(r *http.Request) (int64, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, services.NewValidationError("invalid document ID", err)
	}
	return id, nil
}

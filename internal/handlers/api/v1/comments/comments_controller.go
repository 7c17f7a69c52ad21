package comments

import (
	"encoding/json"
	"net/http"
	"strconv"

	"pdfhub/internal/contextutils"
	"pdfhub/internal/response"
	"pdfhub/internal/services"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// CommentController handles threaded comment endpoints.
type CommentController struct {
	comments        services.CommentService
	responseBuilder *response.Builder
	logger          *zap.Logger
}

// NewCommentController creates a new comment controller.
func NewCommentController(
	comments services.CommentService,
	responseBuilder *response.Builder,
	logger *zap.Logger,
) *CommentController {
	return &CommentController{
		comments:        comments,
		responseBuilder: responseBuilder,
		logger:          logger,
	}
}

// GetThread handles GET /api/v1/files/{id}/comments
func (c *CommentController) GetThread(w http.ResponseWriter, r *http.Request) {
	fileID, err := c.pathFileID(r)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	thread, err := c.comments.GetThread(r.Context(), fileID)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	c.responseBuilder.WriteSuccess(w, r, thread)
}

// Post handles POST /api/v1/files/{id}/comments. Signed-in users comment
// under their account; anonymous visitors must supply a guest name.
func (c *CommentController) Post(w http.ResponseWriter, r *http.Request) {
	fileID, err := c.pathFileID(r)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	var req services.PostCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.responseBuilder.WriteError(w, r, services.NewValidationError("invalid request body", err))
		return
	}

	req.FileID = fileID
	if userID := contextutils.GetUserID(r.Context()); userID != 0 {
		req.AuthorID = &userID
	}

	comment, err := c.comments.Post(r.Context(), &req)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	c.responseBuilder.WriteCreated(w, r, comment)
}

func (c *CommentController) pathFileID(r *http.Request) (int64, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, services.NewValidationError("invalid document ID", err)
	}
	return id, nil
}

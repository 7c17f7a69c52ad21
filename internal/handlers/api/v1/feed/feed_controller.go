package feed

import (
	"net/http"
	"strconv"

	"pdfhub/internal/contextutils"
	"pdfhub/internal/response"
	"pdfhub/internal/services"

	"go.uber.org/zap"
)

// FeedController handles the public document feed endpoint.
type FeedController struct {
	feed            services.FeedService
	responseBuilder *response.Builder
	logger          *zap.Logger
}

// NewFeedController creates a new feed controller.
func NewFeedController(
	feed services.FeedService,
	responseBuilder *response.Builder,
	logger *zap.Logger,
) *FeedController {
	return &FeedController{
		feed:            feed,
		responseBuilder: responseBuilder,
		logger:          logger,
	}
}

// GetFeed handles GET /api/v1/feed. Signed-in viewers get per-entry isLiked
// flags; anonymous viewers see every entry unliked.
func (c *FeedController) GetFeed(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	req := &services.FeedRequest{
		ViewerID: contextutils.GetUserID(r.Context()),
	}
	if pageStr := query.Get("page"); pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil || page < 1 {
			c.responseBuilder.WriteError(w, r, services.NewValidationError("invalid page parameter", err))
			return
		}
		req.Page = page
	}
	if sizeStr := query.Get("pageSize"); sizeStr != "" {
		size, err := strconv.Atoi(sizeStr)
		if err != nil || size < 1 {
			c.responseBuilder.WriteError(w, r, services.NewValidationError("invalid pageSize parameter", err))
			return
		}
		req.PageSize = size
	}

	page, err := c.feed.GetFeed(r.Context(), req)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	c.responseBuilder.WriteSuccess(w, r, page)
}

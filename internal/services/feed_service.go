package services

import (
	"context"
	"fmt"
	"time"

	"pdfhub/internal/cache"
	"pdfhub/internal/models"
	"pdfhub/internal/repositories"

	"go.uber.org/zap"
)

const (
	defaultFeedPageSize = 10
	maxFeedPageSize     = 50
)

type feedService struct {
	files   repositories.FileRepository
	cache   cache.Cache
	feedTTL time.Duration
	logger  *zap.Logger
}

// NewFeedService creates the feed service. Anonymous pages are cached
// briefly; personalized pages always hit the database so isLiked stays
// accurate.
func NewFeedService(
	files repositories.FileRepository,
	c cache.Cache,
	feedTTL time.Duration,
	logger *zap.Logger,
) FeedService {
	return &feedService{
		files:   files,
		cache:   c,
		feedTTL: feedTTL,
		logger:  logger,
	}
}

// GetFeed returns one page of public documents, newest first. One extra row
// is fetched to decide hasMore without a count query.
func (s *feedService) GetFeed(ctx context.Context, req *FeedRequest) (*models.FeedPage, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize < 1 {
		pageSize = defaultFeedPageSize
	}
	if pageSize > maxFeedPageSize {
		pageSize = maxFeedPageSize
	}

	cacheKey := fmt.Sprintf("feed:p%d:s%d", page, pageSize)
	if req.ViewerID == 0 && s.cache != nil {
		var cached models.FeedPage
		if err := cache.GetJSON(ctx, s.cache, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	offset := (page - 1) * pageSize
	entries, err := s.files.ListPublic(ctx, req.ViewerID, pageSize+1, offset)
	if err != nil {
		return nil, NewStoreFailureError("failed to load feed", err)
	}

	hasMore := len(entries) > pageSize
	if hasMore {
		entries = entries[:pageSize]
	}
	if entries == nil {
		entries = []*models.FeedEntry{}
	}

	result := &models.FeedPage{
		Entries: entries,
		HasMore: hasMore,
		Page:    page,
	}

	if req.ViewerID == 0 && s.cache != nil {
		if err := cache.SetJSON(ctx, s.cache, cacheKey, result, s.feedTTL); err != nil {
			s.logger.Warn("Failed to cache feed page", zap.Error(err))
		}
	}

	return result, nil
}

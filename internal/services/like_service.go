package services

import (
	"context"

	"pdfhub/internal/events"
	"pdfhub/internal/models"
	"pdfhub/internal/repositories"

	"go.uber.org/zap"
)

type likeService struct {
	likes  repositories.LikeRepository
	files  repositories.FileRepository
	bus    *events.Bus
	logger *zap.Logger
}

// NewLikeService creates the like service.
func NewLikeService(
	likes repositories.LikeRepository,
	files repositories.FileRepository,
	bus *events.Bus,
	logger *zap.Logger,
) LikeService {
	return &likeService{
		likes:  likes,
		files:  files,
		bus:    bus,
		logger: logger,
	}
}

// Toggle flips the like state for (user, file). The unlike path runs first;
// if no row was removed the like is inserted. The primary key on the likes
// table guarantees at most one row per pair even under concurrent toggles.
func (s *likeService) Toggle(ctx context.Context, userID, fileID int64) (*models.LikeStatus, error) {
	if userID == 0 {
		return nil, NewUnauthorizedError("sign in to like documents")
	}

	file, err := s.files.GetByID(ctx, fileID)
	if err != nil {
		return nil, NewStoreFailureError("failed to load document", err)
	}
	if file == nil {
		return nil, NewNotFoundError("document not found")
	}

	removed, err := s.likes.Delete(ctx, userID, fileID)
	if err != nil {
		return nil, NewStoreFailureError("failed to toggle like", err)
	}

	liked := false
	if !removed {
		// Insert may report false if a concurrent request won the race;
		// either way the pair is liked afterwards.
		if _, err := s.likes.Insert(ctx, userID, fileID); err != nil {
			return nil, NewStoreFailureError("failed to toggle like", err)
		}
		liked = true
	}

	total, err := s.likes.CountByFile(ctx, fileID)
	if err != nil {
		return nil, NewStoreFailureError("failed to count likes", err)
	}

	s.logger.Info("Like toggled",
		zap.Int64("user_id", userID),
		zap.Int64("file_id", fileID),
		zap.Bool("liked", liked),
		zap.Int64("total", total),
	)

	status := &models.LikeStatus{Liked: liked, TotalLikes: total}
	s.bus.Publish(events.Event{
		Type:    events.EventLikeToggled,
		FileID:  fileID,
		Payload: status,
	})

	return status, nil
}

// Status reports the current like state without modifying it.
func (s *likeService) Status(ctx context.Context, userID, fileID int64) (*models.LikeStatus, error) {
	file, err := s.files.GetByID(ctx, fileID)
	if err != nil {
		return nil, NewStoreFailureError("failed to load document", err)
	}
	if file == nil {
		return nil, NewNotFoundError("document not found")
	}

	liked := false
	if userID != 0 {
		liked, err = s.likes.Exists(ctx, userID, fileID)
		if err != nil {
			return nil, NewStoreFailureError("failed to check like", err)
		}
	}

	total, err := s.likes.CountByFile(ctx, fileID)
	if err != nil {
		return nil, NewStoreFailureError("failed to count likes", err)
	}

	return &models.LikeStatus{Liked: liked, TotalLikes: total}, nil
}

package services

import (
	"context"
	"strings"

	"pdfhub/internal/events"
	"pdfhub/internal/models"
	"pdfhub/internal/repositories"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type commentService struct {
	comments repositories.CommentRepository
	files    repositories.FileRepository
	bus      *events.Bus
	validate *validator.Validate
	logger   *zap.Logger
}

// NewCommentService creates the comment service.
func NewCommentService(
	comments repositories.CommentRepository,
	files repositories.FileRepository,
	bus *events.Bus,
	logger *zap.Logger,
) CommentService {
	return &commentService{
		comments: comments,
		files:    files,
		bus:      bus,
		validate: validator.New(),
		logger:   logger,
	}
}

// GetThread returns the nested comment forest for a document.
func (s *commentService) GetThread(ctx context.Context, fileID int64) ([]*models.CommentNode, error) {
	file, err := s.files.GetByID(ctx, fileID)
	if err != nil {
		return nil, NewStoreFailureError("failed to load document", err)
	}
	if file == nil {
		return nil, NewNotFoundError("document not found")
	}

	comments, err := s.comments.ListByFile(ctx, fileID)
	if err != nil {
		return nil, NewStoreFailureError("failed to load comments", err)
	}

	return AssembleThread(comments), nil
}

// Post stores a new comment from either a registered user or a guest.
func (s *commentService) Post(ctx context.Context, req *PostCommentRequest) (*models.Comment, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, NewValidationError("invalid comment request", err)
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, NewValidationError("comment content is required", nil)
	}

	guestName := strings.TrimSpace(req.GuestName)
	if req.AuthorID == nil && guestName == "" {
		return nil, NewValidationError("guest comments require a name", nil)
	}

	file, err := s.files.GetByID(ctx, req.FileID)
	if err != nil {
		return nil, NewStoreFailureError("failed to load document", err)
	}
	if file == nil {
		return nil, NewNotFoundError("document not found")
	}

	if req.ParentID != nil {
		parent, err := s.comments.GetByID(ctx, *req.ParentID)
		if err != nil {
			return nil, NewStoreFailureError("failed to load parent comment", err)
		}
		if parent == nil || parent.FileID != req.FileID {
			return nil, NewValidationError("parent comment does not belong to this document", nil)
		}
	}

	comment := &models.Comment{
		FileID:   req.FileID,
		ParentID: req.ParentID,
		Content:  content,
	}
	if req.AuthorID != nil {
		// A signed-in author always comments under their account; any
		// guest name in the payload is ignored.
		comment.AuthorID = req.AuthorID
	} else {
		comment.GuestName = &guestName
	}

	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, NewStoreFailureError("failed to store comment", err)
	}

	if comment.AuthorID != nil {
		// Resolve the display name so the response matches a re-fetch.
		stored, err := s.comments.GetByID(ctx, comment.ID)
		if err == nil && stored != nil {
			comment.AuthorName = stored.AuthorName
		}
	}

	s.logger.Info("Comment created",
		zap.Int64("comment_id", comment.ID),
		zap.Int64("file_id", comment.FileID),
		zap.Bool("guest", comment.IsGuest()),
	)

	s.bus.Publish(events.Event{
		Type:    events.EventCommentCreated,
		FileID:  comment.FileID,
		Payload: comment,
	})

	return comment, nil
}

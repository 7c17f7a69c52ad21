package repositories

import (
	"context"

	"pdfhub/internal/models"
)

// UserRepository provides account persistence.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByGoogleID(ctx context.Context, googleID string) (*models.User, error)
	LinkGoogleID(ctx context.Context, userID int64, googleID string) error
}

// FileRepository provides document persistence.
type FileRepository interface {
	Create(ctx context.Context, file *models.File) error
	GetByID(ctx context.Context, id int64) (*models.File, error)
	GetByShareToken(ctx context.Context, token string) (*models.File, error)
	ListByOwner(ctx context.Context, ownerID int64, query string, params models.PaginationParams) ([]*models.File, int64, error)
	ListPublic(ctx context.Context, viewerID int64, limit, offset int) ([]*models.FeedEntry, error)
	SetShareToken(ctx context.Context, fileID int64, token *string) error
	SetVisibility(ctx context.Context, fileID int64, isPublic bool) error
	IncrementDownloadCount(ctx context.Context, fileID int64) error
	Delete(ctx context.Context, fileID int64) error
}

// CommentRepository provides comment persistence.
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id int64) (*models.Comment, error)
	ListByFile(ctx context.Context, fileID int64) ([]*models.Comment, error)
	CountByFile(ctx context.Context, fileID int64) (int64, error)
}

// LikeRepository provides like persistence. Insert and Delete report whether
// a row was actually created or removed so the toggle can be race-safe.
type LikeRepository interface {
	Insert(ctx context.Context, userID, fileID int64) (bool, error)
	Delete(ctx context.Context, userID, fileID int64) (bool, error)
	Exists(ctx context.Context, userID, fileID int64) (bool, error)
	CountByFile(ctx context.Context, fileID int64) (int64, error)
}

package repositories

import (
	"pdfhub/internal/database"

	"go.uber.org/zap"
)

// Collection bundles every repository for dependency injection into the
// service layer.
type Collection struct {
	Users    UserRepository
	Files    FileRepository
	Comments CommentRepository
	Likes    LikeRepository
}

// NewCollection wires all Postgres-backed repositories.
func NewCollection(db *database.Manager, logger *zap.Logger) *Collection {
	return &Collection{
		Users:    NewUserRepository(db, logger),
		Files:    NewFileRepository(db, logger),
		Comments: NewCommentRepository(db, logger),
		Likes:    NewLikeRepository(db, logger),
	}
}

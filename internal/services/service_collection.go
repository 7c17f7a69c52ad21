package services

import (
	"pdfhub/internal/cache"
	"pdfhub/internal/config"
	"pdfhub/internal/events"
	"pdfhub/internal/repositories"
	"pdfhub/internal/storage"

	"go.uber.org/zap"
)

// Collection bundles every service for injection into the HTTP layer.
type Collection struct {
	Auth     AuthService
	Files    FileService
	Comments CommentService
	Likes    LikeService
	Feed     FeedService
}

// NewCollection wires all services against their repositories and
// infrastructure.
func NewCollection(
	repos *repositories.Collection,
	blobs storage.Storage,
	c cache.Cache,
	bus *events.Bus,
	cfg *config.Config,
	logger *zap.Logger,
) *Collection {
	return &Collection{
		Auth:     NewAuthService(repos.Users, cfg.Auth, logger),
		Files:    NewFileService(repos.Files, blobs, cfg.Storage, logger),
		Comments: NewCommentService(repos.Comments, repos.Files, bus, logger),
		Likes:    NewLikeService(repos.Likes, repos.Files, bus, logger),
		Feed:     NewFeedService(repos.Files, c, cfg.Cache.FeedTTL, logger),
	}
}

package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"time"

	"pdfhub/internal/config"
	"pdfhub/internal/models"
	"pdfhub/internal/repositories"
	"pdfhub/internal/storage"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

const shareTokenBytes = 32

type fileService struct {
	files  repositories.FileRepository
	blobs  storage.Storage
	cfg    config.StorageConfig
	logger *zap.Logger
}

// NewFileService creates the file service.
func NewFileService(
	files repositories.FileRepository,
	blobs storage.Storage,
	cfg config.StorageConfig,
	logger *zap.Logger,
) FileService {
	return &fileService{
		files:  files,
		blobs:  blobs,
		cfg:    cfg,
		logger: logger,
	}
}

// Upload validates and stores a new PDF document.
func (s *fileService) Upload(ctx context.Context, req *UploadRequest) (*models.File, error) {
	if req.OwnerID == 0 {
		return nil, NewUnauthorizedError("sign in to upload documents")
	}
	if req.File == nil {
		return nil, NewValidationError("no file provided", nil)
	}

	if err := storage.ValidatePDF(req.File, s.cfg.MaxFileSize); err != nil {
		switch {
		case errors.Is(err, storage.ErrFileTooLarge):
			return nil, NewValidationError(fmt.Sprintf("file exceeds the %d MB limit", s.cfg.MaxFileSize/(1024*1024)), err)
		case errors.Is(err, storage.ErrInvalidExtension), errors.Is(err, storage.ErrInvalidContentType):
			return nil, NewValidationError("only PDF documents are accepted", err)
		default:
			return nil, NewValidationError("invalid upload", err)
		}
	}

	src, err := req.File.Open()
	if err != nil {
		return nil, NewInternalError("failed to read upload", err)
	}
	defer src.Close()

	storedName := newStoredName()

	uploadCtx, cancel := context.WithTimeout(ctx, s.cfg.UploadTimeout)
	defer cancel()

	obj, err := s.blobs.Save(uploadCtx, storedName, src, req.File.Size)
	if err != nil {
		return nil, NewStoreFailureError("failed to store document", err)
	}

	file := &models.File{
		OriginalName: req.File.Filename,
		StoredName:   storedName,
		FilePath:     obj.Ref,
		FileSize:     obj.Size,
		ContentType:  "application/pdf",
		UploadedBy:   req.OwnerID,
		IsPublic:     req.IsPublic,
	}

	if err := s.files.Create(ctx, file); err != nil {
		// Best effort cleanup of the orphaned blob.
		if rmErr := s.blobs.Remove(ctx, obj.Ref); rmErr != nil {
			s.logger.Warn("Failed to remove orphaned blob", zap.String("ref", obj.Ref), zap.Error(rmErr))
		}
		return nil, NewStoreFailureError("failed to record document", err)
	}

	s.logger.Info("Document uploaded",
		zap.Int64("file_id", file.ID),
		zap.Int64("owner_id", file.UploadedBy),
		zap.Int64("size", file.FileSize),
		zap.Bool("public", file.IsPublic),
	)

	return file, nil
}

// ListOwn returns a paginated listing of the owner's documents.
func (s *fileService) ListOwn(ctx context.Context, ownerID int64, search string, params models.PaginationParams) (*models.PaginatedResponse[*models.File], error) {
	if ownerID == 0 {
		return nil, NewUnauthorizedError("sign in to list documents")
	}

	if params.Page < 1 {
		params.Page = 1
	}
	if params.PageSize < 1 {
		params.PageSize = defaultFeedPageSize
	}
	if params.PageSize > maxFeedPageSize {
		params.PageSize = maxFeedPageSize
	}
	params.Offset = (params.Page - 1) * params.PageSize

	files, total, err := s.files.ListByOwner(ctx, ownerID, search, params)
	if err != nil {
		return nil, NewStoreFailureError("failed to list documents", err)
	}
	if files == nil {
		files = []*models.File{}
	}

	return &models.PaginatedResponse[*models.File]{
		Data:       files,
		Pagination: models.NewPaginationMeta(params, total),
	}, nil
}

// Get returns a document if the viewer is allowed to see it. Visible means
// public, or owned by the viewer.
func (s *fileService) Get(ctx context.Context, fileID, viewerID int64) (*models.File, error) {
	file, err := s.loadFile(ctx, fileID)
	if err != nil {
		return nil, err
	}
	if !s.canView(file, viewerID) {
		return nil, NewNotFoundError("document not found")
	}
	if file.UploadedBy != viewerID {
		// The share token is owner-only information.
		file.ShareToken = nil
	}
	return file, nil
}

// Delete removes a document, its engagement rows and its stored blob.
func (s *fileService) Delete(ctx context.Context, fileID, ownerID int64) error {
	file, err := s.loadOwned(ctx, fileID, ownerID)
	if err != nil {
		return err
	}

	if err := s.files.Delete(ctx, fileID); err != nil {
		return NewStoreFailureError("failed to delete document", err)
	}

	if err := s.blobs.Remove(ctx, file.FilePath); err != nil {
		// The rows are gone; log and move on rather than resurrecting them.
		s.logger.Warn("Failed to remove blob for deleted document",
			zap.Int64("file_id", fileID),
			zap.String("ref", file.FilePath),
			zap.Error(err),
		)
	}

	s.logger.Info("Document deleted",
		zap.Int64("file_id", fileID),
		zap.Int64("owner_id", ownerID),
	)
	return nil
}

// SetVisibility flips a document between public and private.
func (s *fileService) SetVisibility(ctx context.Context, fileID, ownerID int64, isPublic bool) (*models.File, error) {
	if _, err := s.loadOwned(ctx, fileID, ownerID); err != nil {
		return nil, err
	}

	if err := s.files.SetVisibility(ctx, fileID, isPublic); err != nil {
		return nil, NewStoreFailureError("failed to update visibility", err)
	}

	return s.loadFile(ctx, fileID)
}

// Download streams a document's content and bumps its download counter.
func (s *fileService) Download(ctx context.Context, fileID, viewerID int64) (io.ReadCloser, *models.File, error) {
	file, err := s.loadFile(ctx, fileID)
	if err != nil {
		return nil, nil, err
	}
	if !s.canView(file, viewerID) {
		return nil, nil, NewNotFoundError("document not found")
	}

	rc, err := s.blobs.Open(ctx, file.FilePath)
	if err != nil {
		return nil, nil, NewStoreFailureError("failed to open document", err)
	}

	if err := s.files.IncrementDownloadCount(ctx, fileID); err != nil {
		s.logger.Warn("Failed to increment download count",
			zap.Int64("file_id", fileID),
			zap.Error(err),
		)
	}

	return rc, file, nil
}

// CreateShareLink returns the document's share token, minting one on first
// use. Repeated calls return the same token until it is revoked.
func (s *fileService) CreateShareLink(ctx context.Context, fileID, ownerID int64) (string, error) {
	file, err := s.loadOwned(ctx, fileID, ownerID)
	if err != nil {
		return "", err
	}

	if file.ShareToken != nil {
		return *file.ShareToken, nil
	}

	token, err := newShareToken()
	if err != nil {
		return "", NewInternalError("failed to generate share token", err)
	}

	if err := s.files.SetShareToken(ctx, fileID, &token); err != nil {
		return "", NewStoreFailureError("failed to store share token", err)
	}

	s.logger.Info("Share link created", zap.Int64("file_id", fileID))
	return token, nil
}

// RevokeShareLink invalidates the document's share token.
func (s *fileService) RevokeShareLink(ctx context.Context, fileID, ownerID int64) error {
	if _, err := s.loadOwned(ctx, fileID, ownerID); err != nil {
		return err
	}

	if err := s.files.SetShareToken(ctx, fileID, nil); err != nil {
		return NewStoreFailureError("failed to revoke share token", err)
	}

	s.logger.Info("Share link revoked", zap.Int64("file_id", fileID))
	return nil
}

// ResolveShareToken returns the document behind a share token regardless of
// its visibility.
func (s *fileService) ResolveShareToken(ctx context.Context, token string) (*models.File, error) {
	if token == "" {
		return nil, NewNotFoundError("document not found")
	}

	file, err := s.files.GetByShareToken(ctx, token)
	if err != nil {
		return nil, NewStoreFailureError("failed to resolve share token", err)
	}
	if file == nil {
		return nil, NewNotFoundError("document not found")
	}

	file.ShareToken = nil
	return file, nil
}

func (s *fileService) loadFile(ctx context.Context, fileID int64) (*models.File, error) {
	file, err := s.files.GetByID(ctx, fileID)
	if err != nil {
		return nil, NewStoreFailureError("failed to load document", err)
	}
	if file == nil {
		return nil, NewNotFoundError("document not found")
	}
	return file, nil
}

// loadOwned loads a document and verifies ownership. A document the caller
// does not own reads as not found so existence is not leaked.
func (s *fileService) loadOwned(ctx context.Context, fileID, ownerID int64) (*models.File, error) {
	file, err := s.loadFile(ctx, fileID)
	if err != nil {
		return nil, err
	}
	if file.UploadedBy != ownerID {
		return nil, NewNotFoundError("document not found")
	}
	return file, nil
}

func (s *fileService) canView(file *models.File, viewerID int64) bool {
	return file.IsPublic || file.UploadedBy == viewerID
}

// newStoredName builds a collision-resistant blob name. The upload's
// original name never reaches the storage layer.
func newStoredName() string {
	id, err := uuid.NewV4()
	if err != nil {
		// NewV4 only fails when the platform RNG is broken.
		return fmt.Sprintf("%d.pdf", time.Now().UnixNano())
	}
	return fmt.Sprintf("%d-%s.pdf", time.Now().UnixMilli(), id.String())
}

func newShareToken() (string, error) {
	buf := make([]byte, shareTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

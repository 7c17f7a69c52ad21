package storage

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"pdfhub/internal/config"

	"go.uber.org/zap"
	"golang.org/x/exp/slices"
)

// StoredObject describes where an uploaded blob ended up.
type StoredObject struct {
	Ref  string // provider-specific reference (path or public ID)
	URL  string // externally reachable URL, empty for local storage
	Size int64
}

// Storage abstracts the blob backend behind uploads and downloads.
type Storage interface {
	Save(ctx context.Context, name string, src io.Reader, size int64) (*StoredObject, error)
	Open(ctx context.Context, ref string) (io.ReadCloser, error)
	Remove(ctx context.Context, ref string) error
}

// Validation failures for uploaded files.
var (
	ErrFileTooLarge       = fmt.Errorf("file size exceeds limit")
	ErrInvalidContentType = fmt.Errorf("invalid content type")
	ErrInvalidExtension   = fmt.Errorf("invalid file extension")
)

var pdfExtensions = []string{".pdf"}

// ValidatePDF checks size, extension and sniffed content type of an upload.
// Only PDF documents are accepted.
func ValidatePDF(file *multipart.FileHeader, maxSize int64) error {
	if file.Size > maxSize {
		return fmt.Errorf("%w: %d bytes exceeds %d bytes", ErrFileTooLarge, file.Size, maxSize)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !slices.Contains(pdfExtensions, ext) {
		return fmt.Errorf("%w: %s", ErrInvalidExtension, ext)
	}

	src, err := file.Open()
	if err != nil {
		return fmt.Errorf("unable to open file: %w", err)
	}
	defer src.Close()

	buffer := make([]byte, 512)
	n, err := src.Read(buffer)
	if err != nil && err != io.EOF {
		return fmt.Errorf("unable to read file: %w", err)
	}

	contentType := http.DetectContentType(buffer[:n])
	if contentType != "application/pdf" {
		return fmt.Errorf("%w: %s", ErrInvalidContentType, contentType)
	}

	return nil
}

// New selects a storage backend from configuration.
func New(cfg *config.StorageConfig, logger *zap.Logger) (Storage, error) {
	switch cfg.Provider {
	case "cloudinary":
		return NewCloudinaryStorage(cfg, logger)
	case "local":
		return NewLocalStorage(cfg.LocalDir, logger)
	default:
		return nil, fmt.Errorf("unknown storage provider %q", cfg.Provider)
	}
}

// ===============================
// LOCAL DISK PROVIDER
// ===============================

type localStorage struct {
	dir    string
	logger *zap.Logger
}

// NewLocalStorage stores blobs under a directory on local disk.
func NewLocalStorage(dir string, logger *zap.Logger) (Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &localStorage{dir: dir, logger: logger}, nil
}

func (s *localStorage) Save(_ context.Context, name string, src io.Reader, size int64) (*StoredObject, error) {
	path := filepath.Join(s.dir, filepath.Base(name))

	dst, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	written, err := io.Copy(dst, src)
	if err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("failed to write file: %w", err)
	}

	s.logger.Debug("Stored file on disk",
		zap.String("path", path),
		zap.Int64("size", written),
	)
	return &StoredObject{Ref: path, Size: written}, nil
}

func (s *localStorage) Open(_ context.Context, ref string) (io.ReadCloser, error) {
	f, err := os.Open(ref)
	if err != nil {
		return nil, fmt.Errorf("failed to open stored file: %w", err)
	}
	return f, nil
}

func (s *localStorage) Remove(_ context.Context, ref string) error {
	if err := os.Remove(ref); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove stored file: %w", err)
	}
	return nil
}

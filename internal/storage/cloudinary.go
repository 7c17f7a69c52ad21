package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"pdfhub/internal/config"

	"github.com/cenkalti/backoff/v4"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"go.uber.org/zap"
)

type cloudinaryStorage struct {
	client     *cloudinary.Cloudinary
	folder     string
	timeout    time.Duration
	maxRetries int
	logger     *zap.Logger
}

// NewCloudinaryStorage stores blobs in Cloudinary as raw assets.
func NewCloudinaryStorage(cfg *config.StorageConfig, logger *zap.Logger) (Storage, error) {
	cld, err := cloudinary.NewFromParams(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}

	return &cloudinaryStorage{
		client:     cld,
		folder:     cfg.CloudinaryFolder,
		timeout:    cfg.UploadTimeout,
		maxRetries: cfg.MaxUploadRetries,
		logger:     logger,
	}, nil
}

func ptrBool(b bool) *bool {
	return &b
}

func (s *cloudinaryStorage) Save(ctx context.Context, name string, src io.Reader, size int64) (*StoredObject, error) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	params := uploader.UploadParams{
		Folder:         s.folder,
		PublicID:       name,
		UseFilename:    ptrBool(true),
		UniqueFilename: ptrBool(false),
		ResourceType:   "raw",
	}

	var result *uploader.UploadResult
	operation := func() error {
		var opErr error
		result, opErr = s.client.Upload.Upload(ctx, src, params)
		return opErr
	}

	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = s.timeout / 2
	err := backoff.RetryNotify(
		operation,
		backoff.WithMaxRetries(b, uint64(s.maxRetries)),
		func(err error, d time.Duration) {
			s.logger.Warn("Upload attempt failed",
				zap.String("name", name),
				zap.Error(err),
				zap.Duration("backoff", d),
			)
		},
	)
	if err != nil {
		return nil, fmt.Errorf("upload failed after %d attempts: %w", s.maxRetries, err)
	}

	s.logger.Info("File uploaded to cloudinary",
		zap.String("public_id", result.PublicID),
		zap.Int64("size", size),
		zap.Duration("duration", time.Since(start)),
	)

	return &StoredObject{
		Ref:  result.PublicID,
		URL:  result.SecureURL,
		Size: int64(result.Bytes),
	}, nil
}

func (s *cloudinaryStorage) Open(ctx context.Context, ref string) (io.ReadCloser, error) {
	asset, err := s.client.Image(ref)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve asset: %w", err)
	}
	asset.DeliveryType = "upload"
	asset.AssetType = "raw"

	url, err := asset.String()
	if err != nil {
		return nil, fmt.Errorf("failed to build asset URL: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch asset: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("asset fetch returned status %d", resp.StatusCode)
	}
	return resp.Body, nil
}

func (s *cloudinaryStorage) Remove(ctx context.Context, ref string) error {
	_, err := s.client.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     ref,
		ResourceType: "raw",
	})
	if err != nil {
		return fmt.Errorf("failed to delete asset: %w", err)
	}
	return nil
}

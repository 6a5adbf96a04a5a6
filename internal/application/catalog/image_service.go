package catalog

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jasmey/backend/internal/domain/shared"
)

// AllowedImageContentTypes is the whitelist for product image uploads.
// SVG is excluded: it can carry scripts and is served back to browsers.
var AllowedImageContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// ObjectStorageService defines the object storage operations image handling
// needs. Implemented by the infrastructure layer (S3 or compatible).
type ObjectStorageService interface {
	// GenerateUploadURL generates a presigned URL for uploading a file
	GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error)
	// GenerateDownloadURL generates a presigned URL for downloading a file
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)
	// DeleteObject deletes an object from storage
	DeleteObject(ctx context.Context, storageKey string) error
	// ObjectExists checks if an object exists in storage
	ObjectExists(ctx context.Context, storageKey string) (bool, error)
}

// ImageServiceConfig holds configuration for the image service
type ImageServiceConfig struct {
	UploadURLExpiry   time.Duration
	DownloadURLExpiry time.Duration
}

// DefaultImageServiceConfig returns the default configuration
func DefaultImageServiceConfig() ImageServiceConfig {
	return ImageServiceConfig{
		UploadURLExpiry:   15 * time.Minute,
		DownloadURLExpiry: 1 * time.Hour,
	}
}

// UploadURLRequest asks for a presigned upload slot for a product image
type UploadURLRequest struct {
	FileName    string `json:"file_name" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
}

// UploadURLResponse carries the presigned upload URL and the storage key the
// client should reference in the product's image list after uploading
type UploadURLResponse struct {
	UploadURL  string    `json:"upload_url"`
	StorageKey string    `json:"storage_key"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// ImageService hands out presigned URLs for product image upload and download
type ImageService struct {
	storage ObjectStorageService
	config  ImageServiceConfig
}

// NewImageService creates a new ImageService
func NewImageService(storage ObjectStorageService) *ImageService {
	return &ImageService{
		storage: storage,
		config:  DefaultImageServiceConfig(),
	}
}

// GenerateUploadURL validates the content type and returns a presigned PUT
// URL plus the storage key for the image
func (s *ImageService) GenerateUploadURL(ctx context.Context, productID uuid.UUID, req UploadURLRequest) (*UploadURLResponse, error) {
	if !AllowedImageContentTypes[strings.ToLower(req.ContentType)] {
		return nil, shared.NewDomainError("INVALID_CONTENT_TYPE",
			"Content type "+req.ContentType+" is not allowed for product images")
	}

	ext := strings.ToLower(filepath.Ext(req.FileName))
	storageKey := fmt.Sprintf("products/%s/%s%s", productID, uuid.New(), ext)

	url, expiresAt, err := s.storage.GenerateUploadURL(ctx, storageKey, req.ContentType, s.config.UploadURLExpiry)
	if err != nil {
		return nil, err
	}

	return &UploadURLResponse{
		UploadURL:  url,
		StorageKey: storageKey,
		ExpiresAt:  expiresAt,
	}, nil
}

// GenerateDownloadURL returns a presigned GET URL for a stored image
func (s *ImageService) GenerateDownloadURL(ctx context.Context, storageKey string) (string, error) {
	exists, err := s.storage.ObjectExists(ctx, storageKey)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", shared.ErrNotFound
	}
	url, _, err := s.storage.GenerateDownloadURL(ctx, storageKey, s.config.DownloadURLExpiry)
	return url, err
}

// DeleteImage removes a stored image
func (s *ImageService) DeleteImage(ctx context.Context, storageKey string) error {
	return s.storage.DeleteObject(ctx, storageKey)
}

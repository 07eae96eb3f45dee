package storage

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"tillpoint/config"
)

// CloudinaryStorage implements StorageService on top of Cloudinary.
type CloudinaryStorage struct {
	cld       *cloudinary.Cloudinary
	cloudName string
	apiSecret string
}

var _ StorageService = (*CloudinaryStorage)(nil)

// NewCloudinaryStorage builds the storage service from app configuration.
func NewCloudinaryStorage() (*CloudinaryStorage, error) {
	cfg := config.AppConfig
	if cfg.CloudinaryCloudName == "" || cfg.CloudinaryAPIKey == "" || cfg.CloudinaryAPISecret == "" {
		return nil, fmt.Errorf("cloudinary credentials not configured")
	}
	cld, err := cloudinary.NewFromParams(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}
	return &CloudinaryStorage{
		cld:       cld,
		cloudName: cfg.CloudinaryCloudName,
		apiSecret: cfg.CloudinaryAPISecret,
	}, nil
}

// Upload stores the file (a local path, io.Reader, or URL) under the given
// folder and returns the assigned public ID and delivery URL.
func (s *CloudinaryStorage) Upload(ctx context.Context, file any, folder string) (*UploadResult, error) {
	result, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{Folder: folder})
	if err != nil {
		return nil, fmt.Errorf("failed to upload file: %w", err)
	}
	if result.PublicID == "" {
		return nil, fmt.Errorf("upload returned no public ID")
	}
	return &UploadResult{PublicID: result.PublicID, URL: result.SecureURL}, nil
}

// Delete removes a stored file by its public ID.
func (s *CloudinaryStorage) Delete(ctx context.Context, publicID string) error {
	if _, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID}); err != nil {
		return fmt.Errorf("failed to delete file %s: %w", publicID, err)
	}
	return nil
}

// SecureURL builds a signed, expiring delivery URL for an authenticated asset.
func (s *CloudinaryStorage) SecureURL(publicID string, expiresInSeconds int64) string {
	expiresAt := time.Now().Unix() + expiresInSeconds
	stringToSign := fmt.Sprintf("expires_at=%d&public_id=%s%s", expiresAt, publicID, s.apiSecret)
	h := sha1.New()
	h.Write([]byte(stringToSign))
	signature := hex.EncodeToString(h.Sum(nil))
	return fmt.Sprintf("https://res.cloudinary.com/%s/image/authenticated/s--%s--/expires_%d/%s",
		s.cloudName, signature, expiresAt, publicID)
}

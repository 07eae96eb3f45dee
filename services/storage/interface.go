package storage

import "context"

// UploadResult holds the identifiers of a stored file.
type UploadResult struct {
	PublicID string
	URL      string
}

// StorageService stores uploaded files (item images, staff avatars,
// payment receipts) and hands back stable URLs.
type StorageService interface {
	Upload(ctx context.Context, file any, folder string) (*UploadResult, error)
	Delete(ctx context.Context, publicID string) error
	SecureURL(publicID string, expiresInSeconds int64) string
}

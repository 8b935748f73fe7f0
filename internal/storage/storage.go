package storage

import (
	"context"
	"time"
)

// DefaultPresignedURLExpiry is used when a caller passes a non-positive expiry.
const DefaultPresignedURLExpiry = 15 * time.Minute

// FileStorage holds exercise demonstration media. Clients move bytes
// directly to and from the provider through presigned URLs.
type FileStorage interface {
	// GeneratePresignedUploadURL returns a URL accepting a PUT of objectKey with contentType.
	GeneratePresignedUploadURL(ctx context.Context, objectKey string, contentType string, expires time.Duration) (string, error)

	// GeneratePresignedDownloadURL returns a URL serving a GET of objectKey.
	GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error)

	// DeleteObject removes an object, e.g. media replaced by a newer upload.
	DeleteObject(ctx context.Context, objectKey string) error
}

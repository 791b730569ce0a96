package upload

import (
	"context"
	"time"

	"github.com/filmroom/media-backend/internal/models"
)

// StorageRepository abstracts the object storage backend. Signed URLs are
// stateless: nothing is recorded about which parts were requested.
type StorageRepository interface {
	SignDirectPutURL(ctx context.Context, key, contentType string, size int64, expires time.Duration) (string, error)
	InitiateMultipartUpload(ctx context.Context, key, contentType string) (string, error)
	SignPartUploadURL(ctx context.Context, key, uploadID string, partNumber int32) (string, error)
	CompleteMultipartUpload(ctx context.Context, key, uploadID string, parts []models.UploadedPart) error
	AbortMultipartUpload(ctx context.Context, key, uploadID string) error
	DeleteObject(ctx context.Context, key string) error
}

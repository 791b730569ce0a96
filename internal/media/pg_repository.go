package media

import (
	"context"

	"github.com/filmroom/media-backend/internal/models"
	"github.com/google/uuid"
)

// Repository is the catalog store for media rows. SetReady applies the
// reconciled fields and the status flip in one statement so readers never
// observe a ready record without its distribution URL.
type Repository interface {
	Create(ctx context.Context, media *models.Media) (*models.Media, error)
	GetByID(ctx context.Context, mediaID uuid.UUID) (*models.Media, error)
	SetReady(ctx context.Context, mediaID uuid.UUID, s3Key, distributionURL string) error
	SetThumbnailPath(ctx context.Context, mediaID uuid.UUID, thumbnailPath string) error
	Delete(ctx context.Context, mediaID uuid.UUID) error
}

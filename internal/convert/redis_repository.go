package convert

import (
	"context"

	"github.com/filmroom/media-backend/internal/models"
)

// RedisRepository caches the latest poll snapshot per job so status reads
// between polls stay off Postgres and the transcoding backend.
type RedisRepository interface {
	CacheStatus(ctx context.Context, update *models.JobStatusUpdate) error
	GetCachedStatus(ctx context.Context, jobID string) (*models.JobStatusUpdate, error)
}

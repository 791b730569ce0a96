package upload

import (
	"context"
	"time"

	"github.com/filmroom/media-backend/internal/models"
	"github.com/google/uuid"
)

type UseCase interface {
	CreateSession(ctx context.Context, input *models.CreateSessionInput) (*models.SessionDescriptor, error)
	GetPartUploadURL(ctx context.Context, input *models.PartURLInput) (*models.PartURL, error)
	CompleteUpload(ctx context.Context, input *models.CompleteUploadInput) (*models.CompleteUploadResult, error)
	GetProgress(ctx context.Context, sessionID uuid.UUID) (*models.SessionProgress, error)

	ReapExpiredSessions(ctx context.Context, olderThan time.Duration) (int, error)
}

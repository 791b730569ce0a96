package upload

import (
	"context"
	"time"

	"github.com/filmroom/media-backend/internal/models"
	"github.com/google/uuid"
)

type Repository interface {
	CreateSession(ctx context.Context, session *models.UploadSession) (*models.UploadSession, error)
	GetSessionByID(ctx context.Context, sessionID uuid.UUID) (*models.UploadSession, error)
	SetMultipartUploadID(ctx context.Context, sessionID uuid.UUID, uploadID string) error
	AdvanceUploadedSize(ctx context.Context, sessionID uuid.UUID, uploadedSize int64) error
	MarkCompleted(ctx context.Context, sessionID uuid.UUID, uploadedSize int64) error
	ListExpiredPending(ctx context.Context, before time.Time) ([]*models.UploadSession, error)
	DeleteSession(ctx context.Context, sessionID uuid.UUID) error
}

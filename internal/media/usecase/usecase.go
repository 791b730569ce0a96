package usecase

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/filmroom/media-backend/internal/media"
	"github.com/filmroom/media-backend/pkg/httpErrors"
	"github.com/filmroom/media-backend/pkg/logger"
	"github.com/google/uuid"
)

type mediaUC struct {
	mediaRepo media.Repository
	storage   media.ObjectStorage
	logger    logger.Logger
}

func NewMediaUseCase(mediaRepo media.Repository, storage media.ObjectStorage, log logger.Logger) media.UseCase {
	return &mediaUC{
		mediaRepo: mediaRepo,
		storage:   storage,
		logger:    log,
	}
}

// Delete removes the catalog row. The stored object is deleted best-effort
// first: an orphaned object costs storage, but a catalog row pointing at a
// deleted object would serve dead links, so the row delete always proceeds.
func (u *mediaUC) Delete(ctx context.Context, mediaID uuid.UUID) error {
	m, err := u.mediaRepo.GetByID(ctx, mediaID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return httpErrors.NewNotFoundError("media not found")
		}
		u.logger.Errorf("Delete - GetByID error for media %s: %v", mediaID, err)
		return fmt.Errorf("failed to fetch media: %w", err)
	}

	if m.S3Key != "" {
		if err := u.storage.DeleteObject(ctx, m.S3Key); err != nil {
			u.logger.Errorf("Delete - DeleteObject error for media %s key %s: %v", mediaID, m.S3Key, err)
		}
	}

	if err := u.mediaRepo.Delete(ctx, mediaID); err != nil {
		u.logger.Errorf("Delete - Delete error for media %s: %v", mediaID, err)
		return fmt.Errorf("failed to delete media: %w", err)
	}
	u.logger.Infof("Deleted media %s", mediaID)
	return nil
}

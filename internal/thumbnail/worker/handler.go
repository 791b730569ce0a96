package worker

import (
	"context"
	"fmt"

	"github.com/filmroom/media-backend/internal/media"
	"github.com/filmroom/media-backend/internal/thumbnail/generator"
	"github.com/filmroom/media-backend/internal/thumbnail/task"
	"github.com/filmroom/media-backend/pkg/logger"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

type Worker struct {
	mediaRepo media.Repository
	generator generator.Generator
	logger    logger.Logger
}

func NewWorker(mediaRepo media.Repository, gen generator.Generator, log logger.Logger) *Worker {
	return &Worker{
		mediaRepo: mediaRepo,
		generator: gen,
		logger:    log,
	}
}

func (w *Worker) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(task.TypeGenerateThumbnail, w.HandleGenerateThumbnail)
}

// HandleGenerateThumbnail re-reads the media record before doing any work:
// the task may have been queued more than once for the same record, and the
// record's state may have moved on since dispatch.
func (w *Worker) HandleGenerateThumbnail(ctx context.Context, t *asynq.Task) error {
	p, err := task.ParseGenerateThumbnailPayload(t)
	if err != nil {
		return err
	}
	mediaID, err := uuid.Parse(p.MediaID)
	if err != nil {
		return fmt.Errorf("invalid media id in payload: %w", err)
	}

	m, err := w.mediaRepo.GetByID(ctx, mediaID)
	if err != nil {
		return fmt.Errorf("could not load media %s: %w", mediaID, err)
	}
	if m.ThumbnailPath != "" {
		w.logger.Infof("Media %s already has a thumbnail, skipping", mediaID)
		return nil
	}
	if m.DistributionURL == "" {
		w.logger.Warnf("Media %s has no distribution url yet, skipping thumbnail", mediaID)
		return nil
	}

	if _, err := w.generator.Generate(ctx, m.DistributionURL, mediaID.String()); err != nil {
		return fmt.Errorf("could not generate thumbnail for media %s: %w", mediaID, err)
	}

	thumbnailPath := fmt.Sprintf("/thumbnails/%s.jpg", mediaID)
	if err := w.mediaRepo.SetThumbnailPath(ctx, mediaID, thumbnailPath); err != nil {
		return fmt.Errorf("could not persist thumbnail path for media %s: %w", mediaID, err)
	}
	w.logger.Infof("Generated thumbnail for media %s at %s", mediaID, thumbnailPath)
	return nil
}

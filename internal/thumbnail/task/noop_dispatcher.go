package task

import (
	"context"

	"github.com/filmroom/media-backend/internal/thumbnail"
	"github.com/google/uuid"
)

type NoopDispatcher struct{}

var _ thumbnail.Dispatcher = (*NoopDispatcher)(nil)

func NewNoopDispatcher() *NoopDispatcher { return &NoopDispatcher{} }

func (d *NoopDispatcher) EnqueueGenerateThumbnail(ctx context.Context, mediaID uuid.UUID) error {
	return nil
}

package thumbnail

import (
	"context"

	"github.com/google/uuid"
)

// Dispatcher enqueues thumbnail generation for a media record. Dispatch is
// fire-and-forget from the caller's point of view: generation failures are
// the worker's problem and never propagate back into the conversion flow.
type Dispatcher interface {
	EnqueueGenerateThumbnail(ctx context.Context, mediaID uuid.UUID) error
}

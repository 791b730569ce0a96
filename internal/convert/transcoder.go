package convert

import (
	"context"

	"github.com/filmroom/media-backend/internal/models"
)

// The single fixed rendition every job produces. The reconciler derives the
// transcoded object key from these, so they must match what the backend
// writes.
const (
	RenditionNameModifier = "_4k"
	OutputContainerExt    = ".mp4"
)

// Transcoder abstracts the external transcoding backend.
type Transcoder interface {
	SubmitJob(ctx context.Context, spec *models.TranscodeSpec) (string, error)
	GetJobStatus(ctx context.Context, jobID string) (*models.TranscodeStatus, error)
	CancelJob(ctx context.Context, jobID string) error
}

package convert

import (
	"context"

	"github.com/filmroom/media-backend/internal/models"
	"github.com/filmroom/media-backend/pkg/utils"
	"github.com/google/uuid"
)

type UseCase interface {
	CreateJobsFromUpload(ctx context.Context, input *models.CreateJobsInput) ([]string, error)
	PollStatus(ctx context.Context, jobIDs []string) ([]*models.JobStatusUpdate, error)
	PollActiveJobs(ctx context.Context) ([]*models.JobStatusUpdate, error)
	Cancel(ctx context.Context, jobID string) (*models.ConversionJob, error)

	GetJobStatus(ctx context.Context, jobID string) (*models.JobStatusUpdate, error)
	GetJob(ctx context.Context, jobID string) (*models.ConversionJob, error)
	ListJobs(ctx context.Context, filter *models.JobFilter, pq *utils.Pagination) (*models.JobList, error)

	GenerateThumbnail(ctx context.Context, mediaID uuid.UUID) error
}

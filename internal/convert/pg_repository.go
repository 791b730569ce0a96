package convert

import (
	"context"
	"time"

	"github.com/filmroom/media-backend/internal/models"
	"github.com/filmroom/media-backend/pkg/utils"
)

type Repository interface {
	CreateJob(ctx context.Context, job *models.ConversionJob) (*models.ConversionJob, error)
	GetJobByID(ctx context.Context, jobID string) (*models.ConversionJob, error)
	UpdateJobStatus(ctx context.Context, jobID string, status models.JobStatus, errorMessage *string, completedAt *time.Time) error
	ListJobs(ctx context.Context, filter *models.JobFilter, pq *utils.Pagination) (*models.JobList, error)
	GetActiveJobIDs(ctx context.Context) ([]string, error)
}

package usecase

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/filmroom/media-backend/internal/cdn"
	"github.com/filmroom/media-backend/internal/config"
	"github.com/filmroom/media-backend/internal/convert"
	"github.com/filmroom/media-backend/internal/media"
	"github.com/filmroom/media-backend/internal/models"
	"github.com/filmroom/media-backend/internal/thumbnail"
	"github.com/filmroom/media-backend/pkg/httpErrors"
	"github.com/filmroom/media-backend/pkg/logger"
	"github.com/filmroom/media-backend/pkg/utils"
	"github.com/google/uuid"
)

type convertUC struct {
	cfg        *config.Config
	jobRepo    convert.Repository
	mediaRepo  media.Repository
	redisRepo  convert.RedisRepository
	transcoder convert.Transcoder
	dispatcher thumbnail.Dispatcher
	logger     logger.Logger
}

func NewConvertUseCase(
	cfg *config.Config,
	jobRepo convert.Repository,
	mediaRepo media.Repository,
	redisRepo convert.RedisRepository,
	transcoder convert.Transcoder,
	dispatcher thumbnail.Dispatcher,
	log logger.Logger,
) convert.UseCase {
	return &convertUC{
		cfg:        cfg,
		jobRepo:    jobRepo,
		mediaRepo:  mediaRepo,
		redisRepo:  redisRepo,
		transcoder: transcoder,
		dispatcher: dispatcher,
		logger:     log,
	}
}

func (c *convertUC) CreateJobsFromUpload(ctx context.Context, input *models.CreateJobsInput) ([]string, error) {
	if err := utils.ValidateStruct(ctx, input); err != nil {
		c.logger.Errorf("CreateJobsFromUpload - ValidateStruct error: %v", err)
		return nil, httpErrors.NewBadRequestError(err.Error())
	}
	// Reject the whole batch before touching any state: a half-created
	// batch would leave catalog rows with no job to ever complete them.
	for _, file := range input.Files {
		if file.S3Key == "" {
			return nil, httpErrors.NewBadRequestError(fmt.Sprintf("no storage key provided for file: %s", file.Name))
		}
	}

	jobIDs := make([]string, 0, len(input.Files))
	for i, file := range input.Files {
		mediaID, err := c.resolveMedia(ctx, input, i)
		if err != nil {
			return nil, err
		}

		localJobID := uuid.New().String()
		outputPrefix := fmt.Sprintf("%s/%s/%s", c.cfg.S3.OutputFolder, mediaID, localJobID)
		spec := &models.TranscodeSpec{
			InputBucket:    c.cfg.S3.Bucket,
			InputS3Key:     file.S3Key,
			OutputBucket:   c.cfg.S3.Bucket,
			OutputS3Prefix: outputPrefix,
		}

		job := &models.ConversionJob{
			MediaID:        mediaID,
			InputS3Key:     file.S3Key,
			OutputS3Prefix: outputPrefix,
		}
		backendJobID, submitErr := c.transcoder.SubmitJob(ctx, spec)
		if submitErr != nil {
			// A failed submission still gets a row: job history must never
			// silently lose it. The locally generated id keys the row.
			c.logger.Errorf("CreateJobsFromUpload - SubmitJob error for file %s: %v", file.Name, submitErr)
			msg := submitErr.Error()
			now := time.Now()
			job.JobID = localJobID
			job.Status = models.JobStatusError
			job.ErrorMessage = &msg
			job.CompletedAt = &now
		} else {
			job.JobID = backendJobID
			job.Status = models.JobStatusSubmitted
			c.logger.Infof("Created transcode job %s for file %s", backendJobID, file.Name)
		}

		if _, err := c.jobRepo.CreateJob(ctx, job); err != nil {
			c.logger.Errorf("CreateJobsFromUpload - CreateJob error: %v", err)
			return nil, fmt.Errorf("failed to persist conversion job: %w", err)
		}
		jobIDs = append(jobIDs, job.JobID)
	}
	return jobIDs, nil
}

// resolveMedia reuses the caller-supplied media id when it resolves to an
// existing catalog row, so retries do not duplicate catalog entries;
// otherwise it creates a fresh record in processing state.
func (c *convertUC) resolveMedia(ctx context.Context, input *models.CreateJobsInput, i int) (uuid.UUID, error) {
	file := input.Files[i]
	if i < len(input.MediaIDs) && input.MediaIDs[i] != "" {
		existingID, err := uuid.Parse(input.MediaIDs[i])
		if err != nil {
			return uuid.Nil, httpErrors.NewBadRequestError(fmt.Sprintf("invalid media id: %s", input.MediaIDs[i]))
		}
		if _, err := c.mediaRepo.GetByID(ctx, existingID); err == nil {
			c.logger.Infof("Using existing media entry %s for file %s", existingID, file.Name)
			return existingID, nil
		} else if !errors.Is(err, sql.ErrNoRows) {
			return uuid.Nil, fmt.Errorf("failed to check media entry %s: %w", existingID, err)
		}
		c.logger.Warnf("Media entry %s not found, creating a new one", existingID)
	}

	year := input.Metadata.Year
	if year == 0 {
		year = time.Now().Year()
	}
	mimeType := file.MimeType
	if mimeType == "" {
		mimeType = "video/mp4"
	}
	m := &models.Media{
		MediaID:     uuid.New(),
		Title:       input.Metadata.Title,
		Description: input.Metadata.Description,
		Genre:       input.Metadata.Genre,
		Year:        year,
		FileName:    file.Name,
		FileSize:    file.Size,
		MimeType:    mimeType,
		Status:      models.MediaStatusProcessing,
	}
	created, err := c.mediaRepo.Create(ctx, m)
	if err != nil {
		c.logger.Errorf("resolveMedia - Create error: %v", err)
		return uuid.Nil, fmt.Errorf("failed to create media entry: %w", err)
	}
	return created.MediaID, nil
}

func (c *convertUC) PollStatus(ctx context.Context, jobIDs []string) ([]*models.JobStatusUpdate, error) {
	if len(jobIDs) == 0 {
		return nil, httpErrors.NewBadRequestError("job ids array is required")
	}
	updates := make([]*models.JobStatusUpdate, 0, len(jobIDs))
	for _, jobID := range jobIDs {
		update := c.pollOne(ctx, jobID)
		updates = append(updates, update)
		if err := c.redisRepo.CacheStatus(ctx, update); err != nil {
			c.logger.Warnf("PollStatus - CacheStatus error for job %s: %v", jobID, err)
		}
	}
	return updates, nil
}

// pollOne refreshes a single job. Every failure mode is folded into the
// returned update so one bad job never aborts the rest of the batch.
func (c *convertUC) pollOne(ctx context.Context, jobID string) *models.JobStatusUpdate {
	job, err := c.jobRepo.GetJobByID(ctx, jobID)
	if err != nil {
		msg := "conversion job not found"
		if !errors.Is(err, sql.ErrNoRows) {
			c.logger.Errorf("pollOne - GetJobByID error for job %s: %v", jobID, err)
			msg = "failed to load conversion job"
		}
		return &models.JobStatusUpdate{
			JobID:        jobID,
			Status:       models.JobStatusError,
			Progress:     0,
			ErrorMessage: &msg,
		}
	}

	// Terminal rows never transition again; skip the backend round-trip.
	// A COMPLETE row is still reconciled so a previously missed catalog
	// update heals on the next poll.
	if job.Status.IsTerminal() {
		if job.Status == models.JobStatusComplete {
			if err := c.reconcile(ctx, job); err != nil {
				c.logger.Errorf("pollOne - reconcile error for job %s: %v", job.JobID, err)
			}
		}
		return jobUpdate(job)
	}

	observed, err := c.transcoder.GetJobStatus(ctx, job.JobID)
	if err != nil {
		// Reported in the batch result only; the row keeps its last known
		// status so the next poll cycle retries.
		c.logger.Errorf("pollOne - GetJobStatus error for job %s: %v", job.JobID, err)
		msg := err.Error()
		return &models.JobStatusUpdate{
			JobID:        job.JobID,
			Status:       models.JobStatusError,
			Progress:     0,
			ErrorMessage: &msg,
		}
	}

	// An ERROR row always carries a message, even when the backend gave none.
	if observed.Status == models.JobStatusError && (observed.ErrorMessage == nil || *observed.ErrorMessage == "") {
		msg := "transcoding failed"
		observed.ErrorMessage = &msg
	}

	var completedAt *time.Time
	if observed.Status.IsTerminal() {
		now := time.Now()
		completedAt = &now
	}
	if err := c.jobRepo.UpdateJobStatus(ctx, job.JobID, observed.Status, observed.ErrorMessage, completedAt); err != nil {
		c.logger.Errorf("pollOne - UpdateJobStatus error for job %s: %v", job.JobID, err)
		msg := "failed to persist status transition"
		return &models.JobStatusUpdate{
			JobID:        job.JobID,
			Status:       models.JobStatusError,
			Progress:     0,
			ErrorMessage: &msg,
		}
	}
	job.Status = observed.Status
	job.ErrorMessage = observed.ErrorMessage
	job.CompletedAt = completedAt

	if observed.Status == models.JobStatusComplete {
		if err := c.reconcile(ctx, job); err != nil {
			c.logger.Errorf("pollOne - reconcile error for job %s: %v", job.JobID, err)
		}
	}
	return jobUpdate(job)
}

func jobUpdate(job *models.ConversionJob) *models.JobStatusUpdate {
	return &models.JobStatusUpdate{
		JobID:        job.JobID,
		Status:       job.Status,
		Progress:     job.Status.Progress(),
		ErrorMessage: job.ErrorMessage,
		CompletedAt:  job.CompletedAt,
	}
}

// reconcile maps a COMPLETE job back onto its catalog entry. It is
// idempotent: the derived key and URL are stable, the catalog write sets
// all reconciled fields in one statement, and thumbnail dispatch is guarded
// on the record still having no thumbnail rather than on this being the
// first COMPLETE observation.
func (c *convertUC) reconcile(ctx context.Context, job *models.ConversionJob) error {
	m, err := c.mediaRepo.GetByID(ctx, job.MediaID)
	if err != nil {
		return fmt.Errorf("failed to fetch media %s: %w", job.MediaID, err)
	}

	baseFilename := strings.TrimSuffix(m.FileName, filepath.Ext(m.FileName))
	outputKey := fmt.Sprintf("%s/%s%s%s", job.OutputS3Prefix, baseFilename, convert.RenditionNameModifier, convert.OutputContainerExt)
	distributionURL := cdn.URL(c.cfg.CDN.Domain, outputKey)

	if err := c.mediaRepo.SetReady(ctx, m.MediaID, outputKey, distributionURL); err != nil {
		return fmt.Errorf("failed to update media %s: %w", m.MediaID, err)
	}
	c.logger.Infof("Reconciled media %s with transcoded output %s", m.MediaID, distributionURL)

	if m.ThumbnailPath == "" {
		if err := c.dispatcher.EnqueueGenerateThumbnail(ctx, m.MediaID); err != nil {
			c.logger.Errorf("reconcile - EnqueueGenerateThumbnail error for media %s: %v", m.MediaID, err)
		}
	}
	return nil
}

func (c *convertUC) PollActiveJobs(ctx context.Context) ([]*models.JobStatusUpdate, error) {
	jobIDs, err := c.jobRepo.GetActiveJobIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active jobs: %w", err)
	}
	if len(jobIDs) == 0 {
		return nil, nil
	}
	return c.PollStatus(ctx, jobIDs)
}

// Cancel requests backend cancellation. Cancelling an already-terminal job
// is a no-op returning the stored row. The owning media record is left in
// processing; re-submitting the file is the supported recovery path.
func (c *convertUC) Cancel(ctx context.Context, jobID string) (*models.ConversionJob, error) {
	job, err := c.getJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.Status.IsTerminal() {
		c.logger.Infof("Cancel requested for already-terminal job %s (%s)", job.JobID, job.Status)
		return job, nil
	}

	if err := c.transcoder.CancelJob(ctx, job.JobID); err != nil {
		c.logger.Errorf("Cancel - CancelJob error for job %s: %v", job.JobID, err)
		return nil, httpErrors.NewUpstreamServiceError("failed to cancel job")
	}

	now := time.Now()
	if err := c.jobRepo.UpdateJobStatus(ctx, job.JobID, models.JobStatusCanceled, nil, &now); err != nil {
		c.logger.Errorf("Cancel - UpdateJobStatus error for job %s: %v", job.JobID, err)
		return nil, fmt.Errorf("failed to persist cancellation: %w", err)
	}
	job.Status = models.JobStatusCanceled
	job.CompletedAt = &now
	return job, nil
}

func (c *convertUC) GetJobStatus(ctx context.Context, jobID string) (*models.JobStatusUpdate, error) {
	if cached, err := c.redisRepo.GetCachedStatus(ctx, jobID); err == nil && cached != nil {
		return cached, nil
	}
	job, err := c.getJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	update := jobUpdate(job)
	if err := c.redisRepo.CacheStatus(ctx, update); err != nil {
		c.logger.Warnf("GetJobStatus - CacheStatus error for job %s: %v", jobID, err)
	}
	return update, nil
}

func (c *convertUC) GetJob(ctx context.Context, jobID string) (*models.ConversionJob, error) {
	return c.getJob(ctx, jobID)
}

func (c *convertUC) ListJobs(ctx context.Context, filter *models.JobFilter, pq *utils.Pagination) (*models.JobList, error) {
	if filter == nil {
		filter = &models.JobFilter{}
	}
	if pq == nil {
		pq = &utils.Pagination{Page: 1, Size: 10}
	}
	jobs, err := c.jobRepo.ListJobs(ctx, filter, pq)
	if err != nil {
		c.logger.Errorf("ListJobs - ListJobs error: %v", err)
		return nil, fmt.Errorf("failed to list conversion jobs: %w", err)
	}
	return jobs, nil
}

// GenerateThumbnail is the manual re-trigger: it re-reads the record's
// current distribution URL and enqueues extraction again.
func (c *convertUC) GenerateThumbnail(ctx context.Context, mediaID uuid.UUID) error {
	m, err := c.mediaRepo.GetByID(ctx, mediaID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return httpErrors.NewNotFoundError("media not found")
		}
		return fmt.Errorf("failed to fetch media %s: %w", mediaID, err)
	}
	if m.DistributionURL == "" {
		return httpErrors.NewBadRequestError("media has no distribution url - conversion may not be complete")
	}
	if err := c.dispatcher.EnqueueGenerateThumbnail(ctx, m.MediaID); err != nil {
		c.logger.Errorf("GenerateThumbnail - EnqueueGenerateThumbnail error for media %s: %v", m.MediaID, err)
		return fmt.Errorf("failed to enqueue thumbnail generation: %w", err)
	}
	return nil
}

func (c *convertUC) getJob(ctx context.Context, jobID string) (*models.ConversionJob, error) {
	job, err := c.jobRepo.GetJobByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, httpErrors.NewNotFoundError("conversion job not found")
		}
		c.logger.Errorf("getJob - GetJobByID error for job %s: %v", jobID, err)
		return nil, fmt.Errorf("failed to fetch conversion job: %w", err)
	}
	return job, nil
}

package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/filmroom/media-backend/internal/convert"
	"github.com/filmroom/media-backend/internal/models"
	"github.com/filmroom/media-backend/pkg/utils"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

type convertRepo struct {
	db *sqlx.DB
}

func NewConvertRepo(db *sqlx.DB) convert.Repository {
	return &convertRepo{
		db: db,
	}
}

func (r *convertRepo) CreateJob(ctx context.Context, job *models.ConversionJob) (*models.ConversionJob, error) {
	created := &models.ConversionJob{}
	if err := r.db.QueryRowxContext(
		ctx,
		createJobQuery,
		job.JobID,
		job.MediaID,
		job.InputS3Key,
		job.OutputS3Prefix,
		job.Status,
		job.ErrorMessage,
		job.CompletedAt,
	).StructScan(created); err != nil {
		return nil, errors.Wrap(err, "convertRepo.CreateJob.StructScan")
	}
	return created, nil
}

func (r *convertRepo) GetJobByID(ctx context.Context, jobID string) (*models.ConversionJob, error) {
	job := &models.ConversionJob{}
	if err := r.db.QueryRowxContext(ctx, getJobByIDQuery, jobID).StructScan(job); err != nil {
		return nil, errors.Wrap(err, "convertRepo.GetJobByID.StructScan")
	}
	return job, nil
}

func (r *convertRepo) UpdateJobStatus(ctx context.Context, jobID string, status models.JobStatus, errorMessage *string, completedAt *time.Time) error {
	res, err := r.db.ExecContext(ctx, updateJobStatusQuery, status, errorMessage, completedAt, jobID)
	if err != nil {
		return errors.Wrap(err, "convertRepo.UpdateJobStatus.ExecContext")
	}
	count, _ := res.RowsAffected()
	if count == 0 {
		return errors.New("no conversion job found to update")
	}
	return nil
}

func (r *convertRepo) ListJobs(ctx context.Context, filter *models.JobFilter, pq *utils.Pagination) (*models.JobList, error) {
	where, args := buildJobFilter(filter)

	var totalCount int
	if err := r.db.GetContext(ctx, &totalCount, countJobsBaseQuery+where, args...); err != nil {
		return nil, errors.Wrap(err, "convertRepo.ListJobs.GetContext")
	}
	if totalCount == 0 {
		return &models.JobList{
			Jobs:     make([]*models.JobWithMedia, 0),
			Page:     pq.GetPage(),
			PageSize: pq.GetSize(),
		}, nil
	}

	pageQuery := fmt.Sprintf("%s%s ORDER BY c.created_at DESC OFFSET $%d LIMIT $%d",
		listJobsBaseQuery, where, len(args)+1, len(args)+2)
	args = append(args, pq.GetOffset(), pq.GetLimit())

	rows, err := r.db.QueryxContext(ctx, pageQuery, args...)
	if err != nil {
		return nil, errors.Wrap(err, "convertRepo.ListJobs.QueryxContext")
	}
	defer rows.Close()

	jobs := make([]*models.JobWithMedia, 0, pq.GetSize())
	for rows.Next() {
		job := &models.JobWithMedia{}
		if err := rows.StructScan(job); err != nil {
			return nil, errors.Wrap(err, "convertRepo.ListJobs.StructScan")
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "convertRepo.ListJobs.rows.Err")
	}

	return &models.JobList{
		Jobs:       jobs,
		TotalCount: totalCount,
		Page:       pq.GetPage(),
		PageSize:   pq.GetSize(),
		HasMore:    utils.GetHasMore(pq.GetPage(), totalCount, pq.GetSize()),
	}, nil
}

func (r *convertRepo) GetActiveJobIDs(ctx context.Context) ([]string, error) {
	jobIDs := make([]string, 0)
	if err := r.db.SelectContext(ctx, &jobIDs, getActiveJobIDsQuery); err != nil {
		return nil, errors.Wrap(err, "convertRepo.GetActiveJobIDs.SelectContext")
	}
	return jobIDs, nil
}

func buildJobFilter(filter *models.JobFilter) (string, []interface{}) {
	clauses := make([]string, 0, 2)
	args := make([]interface{}, 0, 2)
	if filter.Status != "" {
		args = append(args, filter.Status)
		clauses = append(clauses, fmt.Sprintf("c.status = $%d", len(args)))
	}
	if filter.MediaID != "" {
		args = append(args, filter.MediaID)
		clauses = append(clauses, fmt.Sprintf("c.media_id = $%d", len(args)))
	}
	if len(clauses) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

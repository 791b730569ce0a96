package models

import (
	"time"

	"github.com/google/uuid"
)

type JobStatus string

const (
	JobStatusSubmitted   JobStatus = "SUBMITTED"
	JobStatusProgressing JobStatus = "PROGRESSING"
	JobStatusComplete    JobStatus = "COMPLETE"
	JobStatusError       JobStatus = "ERROR"
	JobStatusCanceled    JobStatus = "CANCELED"
)

// IsTerminal reports whether no further transition is valid for the status.
func (s JobStatus) IsTerminal() bool {
	return s == JobStatusComplete || s == JobStatusError || s == JobStatusCanceled
}

// Progress maps a job status onto the coarse percentage the transcoding
// backend cannot provide itself.
func (s JobStatus) Progress() int {
	switch s {
	case JobStatusSubmitted:
		return 10
	case JobStatusProgressing:
		return 50
	case JobStatusComplete:
		return 100
	case JobStatusError, JobStatusCanceled:
		return 0
	default:
		return 10
	}
}

// ConversionJob is one submission to the transcoding backend. JobID is the
// backend-assigned id, except for failed submissions which keep the locally
// generated id so the failure is never lost from job history.
type ConversionJob struct {
	JobID          string     `json:"job_id" db:"job_id" validate:"required"`
	MediaID        uuid.UUID  `json:"media_id" db:"media_id" validate:"required"`
	InputS3Key     string     `json:"input_s3_key" db:"input_s3_key" validate:"required,lte=512"`
	OutputS3Prefix string     `json:"output_s3_prefix" db:"output_s3_prefix" validate:"required,lte=512"`
	Status         JobStatus  `json:"status" db:"status" validate:"required"`
	ErrorMessage   *string    `json:"error_message,omitempty" db:"error_message" validate:"omitempty"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at" validate:"omitempty"`
	CompletedAt    *time.Time `json:"completed_at,omitempty" db:"completed_at" validate:"omitempty"`
}

type UploadedFile struct {
	Name     string `json:"name" validate:"required,lte=255"`
	Size     int64  `json:"size" validate:"omitempty"`
	MimeType string `json:"type" validate:"omitempty,lte=100"`
	S3Key    string `json:"s3_key" validate:"required,lte=512"`
}

type MediaMetadata struct {
	Title       string `json:"title" validate:"required,lte=255"`
	Description string `json:"description" validate:"omitempty"`
	Genre       string `json:"genre" validate:"omitempty,lte=100"`
	Year        int    `json:"year" validate:"omitempty"`
}

type CreateJobsInput struct {
	Files    []UploadedFile `json:"files" validate:"required,min=1,dive"`
	Metadata MediaMetadata  `json:"metadata" validate:"required"`
	MediaIDs []string       `json:"media_ids" validate:"omitempty"`
}

// JobStatusUpdate is one entry of a poll batch result. Entries are
// independent: a fetch failure for one job is reported here without
// affecting the rest of the batch.
type JobStatusUpdate struct {
	JobID        string     `json:"job_id"`
	Status       JobStatus  `json:"status"`
	Progress     int        `json:"progress"`
	ErrorMessage *string    `json:"error_message,omitempty"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}

type JobFilter struct {
	Status  string
	MediaID string
}

// JobWithMedia joins a conversion row with catalog metadata for listings.
type JobWithMedia struct {
	ConversionJob
	MediaTitle *string `json:"media_title,omitempty" db:"media_title"`
	FileName   *string `json:"filename,omitempty" db:"filename"`
}

type JobList struct {
	Jobs       []*JobWithMedia `json:"jobs"`
	TotalCount int             `json:"total_count"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
	HasMore    bool            `json:"has_more"`
}

package models

import (
	"time"

	"github.com/google/uuid"
)

type MediaStatus string

const (
	MediaStatusProcessing MediaStatus = "processing"
	MediaStatusReady      MediaStatus = "ready"
)

// Media is one catalog entry. S3Key and DistributionURL point at the
// transcoded rendition once the owning conversion job completes; until then
// the record stays in processing.
type Media struct {
	MediaID         uuid.UUID   `json:"media_id" db:"media_id" validate:"omitempty"`
	Title           string      `json:"title" db:"title" validate:"required,lte=255"`
	Description     string      `json:"description" db:"description" validate:"omitempty"`
	Genre           string      `json:"genre" db:"genre" validate:"omitempty,lte=100"`
	Year            int         `json:"year" db:"year" validate:"omitempty"`
	FileName        string      `json:"filename" db:"filename" validate:"required,lte=255"`
	FileSize        int64       `json:"file_size" db:"file_size" validate:"omitempty"`
	Duration        int64       `json:"duration" db:"duration" validate:"omitempty"`
	MimeType        string      `json:"mime_type" db:"mime_type" validate:"omitempty,lte=100"`
	Status          MediaStatus `json:"status" db:"status" validate:"omitempty"`
	S3Key           string      `json:"s3_key" db:"s3_key" validate:"omitempty,lte=512"`
	DistributionURL string      `json:"distribution_url" db:"distribution_url" validate:"omitempty,lte=1024"`
	ThumbnailPath   string      `json:"thumbnail_path" db:"thumbnail_path" validate:"omitempty,lte=512"`
	CreatedAt       time.Time   `json:"created_at" db:"created_at" validate:"omitempty"`
	UpdatedAt       time.Time   `json:"updated_at" db:"updated_at" validate:"omitempty"`
}

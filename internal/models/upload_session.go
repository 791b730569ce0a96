package models

import (
	"time"

	"github.com/google/uuid"
)

type SessionStatus string

const (
	SessionStatusPending   SessionStatus = "PENDING"
	SessionStatusCompleted SessionStatus = "COMPLETED"
)

// UploadSession tracks one client upload from creation to finalize.
// S3Key is assigned at creation and never changes afterwards.
type UploadSession struct {
	SessionID         uuid.UUID     `json:"session_id" db:"session_id" validate:"omitempty"`
	FileName          string        `json:"filename" db:"filename" validate:"required,lte=255"`
	TotalSize         int64         `json:"total_size" db:"total_size" validate:"required"`
	UploadedSize      int64         `json:"uploaded_size" db:"uploaded_size" validate:"omitempty"`
	ContentType       string        `json:"content_type" db:"content_type" validate:"omitempty,lte=100"`
	S3Key             string        `json:"s3_key" db:"s3_key" validate:"omitempty,lte=512"`
	S3Bucket          string        `json:"s3_bucket" db:"s3_bucket" validate:"omitempty,lte=255"`
	MultipartUploadID *string       `json:"multipart_upload_id,omitempty" db:"multipart_upload_id" validate:"omitempty"`
	Status            SessionStatus `json:"status" db:"status" validate:"omitempty"`
	CreatedAt         time.Time     `json:"created_at" db:"created_at" validate:"omitempty"`
	UpdatedAt         time.Time     `json:"updated_at" db:"updated_at" validate:"omitempty"`
}

func (s *UploadSession) IsMultipart() bool {
	return s.MultipartUploadID != nil && *s.MultipartUploadID != ""
}

type CreateSessionInput struct {
	FileName    string `json:"filename" validate:"required,lte=255"`
	TotalSize   int64  `json:"file_size" validate:"required,gt=0"`
	ContentType string `json:"content_type" validate:"omitempty,lte=100"`
}

// SessionDescriptor is returned to the client after session creation. For
// direct uploads UploadURL is set; for multipart uploads ChunkSize and
// NumParts describe the part layout the client must follow.
type SessionDescriptor struct {
	SessionID    uuid.UUID `json:"session_id"`
	S3Key        string    `json:"s3_key"`
	UseMultipart bool      `json:"use_multipart"`
	UploadURL    string    `json:"upload_url,omitempty"`
	ChunkSize    int64     `json:"chunk_size,omitempty"`
	NumParts     int       `json:"num_parts,omitempty"`
}

type PartURLInput struct {
	SessionID  uuid.UUID `json:"session_id" validate:"required"`
	PartNumber int32     `json:"part_number" validate:"required,gte=1,lte=10000"`
}

type PartURL struct {
	PartNumber int32  `json:"part_number"`
	UploadURL  string `json:"upload_url"`
}

// UploadedPart is the client's report of one finished multipart part.
type UploadedPart struct {
	PartNumber int32  `json:"part_number" validate:"required,gte=1"`
	ETag       string `json:"etag" validate:"required"`
}

type CompleteUploadInput struct {
	SessionID uuid.UUID      `json:"session_id" validate:"required"`
	Parts     []UploadedPart `json:"parts" validate:"omitempty,dive"`
}

type CompleteUploadResult struct {
	S3Key           string `json:"s3_key"`
	DistributionURL string `json:"distribution_url,omitempty"`
}

type SessionProgress struct {
	SessionID    uuid.UUID     `json:"session_id"`
	Progress     float64       `json:"progress"`
	Status       SessionStatus `json:"status"`
	UploadedSize int64         `json:"uploaded_size"`
	TotalSize    int64         `json:"total_size"`
}

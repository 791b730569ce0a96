package usecase

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/filmroom/media-backend/internal/cdn"
	"github.com/filmroom/media-backend/internal/config"
	"github.com/filmroom/media-backend/internal/models"
	"github.com/filmroom/media-backend/internal/upload"
	"github.com/filmroom/media-backend/pkg/httpErrors"
	"github.com/filmroom/media-backend/pkg/logger"
	"github.com/filmroom/media-backend/pkg/utils"
	"github.com/google/uuid"
)

const (
	// SingleUploadLimit is the S3 single-PUT ceiling; files at or above it
	// must go through the multipart path.
	SingleUploadLimit = int64(5) << 30
	// ChunkSize is the fixed multipart part size.
	ChunkSize = int64(100) << 20
)

type uploadUC struct {
	cfg         *config.Config
	sessionRepo upload.Repository
	storageRepo upload.StorageRepository
	logger      logger.Logger
}

func NewUploadUseCase(
	cfg *config.Config,
	sessionRepo upload.Repository,
	storageRepo upload.StorageRepository,
	log logger.Logger,
) upload.UseCase {
	return &uploadUC{
		cfg:         cfg,
		sessionRepo: sessionRepo,
		storageRepo: storageRepo,
		logger:      log,
	}
}

func (u *uploadUC) CreateSession(ctx context.Context, input *models.CreateSessionInput) (*models.SessionDescriptor, error) {
	if input == nil {
		return nil, httpErrors.NewBadRequestError("filename and file size are required")
	}
	if err := utils.ValidateStruct(ctx, input); err != nil {
		u.logger.Errorf("CreateSession - ValidateStruct error: %v", err)
		return nil, httpErrors.NewBadRequestError(err.Error())
	}

	sessionID := uuid.New()
	s3Key := fmt.Sprintf("%s/%s/%s", u.cfg.S3.UploadFolder, sessionID, input.FileName)
	useMultipart := input.TotalSize >= SingleUploadLimit

	session := &models.UploadSession{
		SessionID:   sessionID,
		FileName:    input.FileName,
		TotalSize:   input.TotalSize,
		ContentType: input.ContentType,
		S3Key:       s3Key,
		S3Bucket:    u.cfg.S3.Bucket,
		Status:      models.SessionStatusPending,
	}
	if _, err := u.sessionRepo.CreateSession(ctx, session); err != nil {
		u.logger.Errorf("CreateSession - CreateSession error: %v", err)
		return nil, fmt.Errorf("failed to create upload session: %w", err)
	}

	if useMultipart {
		uploadID, err := u.storageRepo.InitiateMultipartUpload(ctx, s3Key, input.ContentType)
		if err != nil {
			u.logger.Errorf("CreateSession - InitiateMultipartUpload error: %v", err)
			return nil, httpErrors.NewUpstreamServiceError("failed to initialize upload")
		}
		if err = u.sessionRepo.SetMultipartUploadID(ctx, sessionID, uploadID); err != nil {
			u.logger.Errorf("CreateSession - SetMultipartUploadID error: %v", err)
			return nil, fmt.Errorf("failed to store multipart upload id: %w", err)
		}
		numParts := int(math.Ceil(float64(input.TotalSize) / float64(ChunkSize)))
		u.logger.Infof("Initialized multipart upload for session %s: %d parts of %d bytes", sessionID, numParts, ChunkSize)
		return &models.SessionDescriptor{
			SessionID:    sessionID,
			S3Key:        s3Key,
			UseMultipart: true,
			ChunkSize:    ChunkSize,
			NumParts:     numParts,
		}, nil
	}

	uploadURL, err := u.storageRepo.SignDirectPutURL(ctx, s3Key, input.ContentType, input.TotalSize, directPutExpiry(input.TotalSize))
	if err != nil {
		u.logger.Errorf("CreateSession - SignDirectPutURL error: %v", err)
		return nil, httpErrors.NewUpstreamServiceError("failed to generate upload url")
	}
	return &models.SessionDescriptor{
		SessionID:    sessionID,
		S3Key:        s3Key,
		UseMultipart: false,
		UploadURL:    uploadURL,
	}, nil
}

// directPutExpiry scales the signed URL lifetime with file size so a slow
// transfer of a large file cannot outlive its URL: one hour per 5 GiB,
// one hour minimum.
func directPutExpiry(totalSize int64) time.Duration {
	hours := int64(math.Ceil(float64(totalSize) / float64(SingleUploadLimit)))
	if hours < 1 {
		hours = 1
	}
	return time.Duration(hours) * time.Hour
}

func (u *uploadUC) GetPartUploadURL(ctx context.Context, input *models.PartURLInput) (*models.PartURL, error) {
	if err := utils.ValidateStruct(ctx, input); err != nil {
		return nil, httpErrors.NewBadRequestError("session id and part number are required")
	}

	session, err := u.getSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}
	if !session.IsMultipart() {
		return nil, httpErrors.NewInternalServerError("multipart upload not initialized")
	}

	url, err := u.storageRepo.SignPartUploadURL(ctx, session.S3Key, *session.MultipartUploadID, input.PartNumber)
	if err != nil {
		u.logger.Errorf("GetPartUploadURL - SignPartUploadURL error: %v", err)
		return nil, httpErrors.NewUpstreamServiceError("failed to generate part upload url")
	}

	// A request for part N is the only client signal between create and
	// finalize; treat parts 1..N-1 as uploaded so progress moves between the
	// extremes. The watermark only ever advances and is logged-only on failure.
	if watermark := uploadedWatermark(input.PartNumber, session.TotalSize); watermark > 0 {
		if err := u.sessionRepo.AdvanceUploadedSize(ctx, session.SessionID, watermark); err != nil {
			u.logger.Errorf("GetPartUploadURL - AdvanceUploadedSize error: %v", err)
		}
	}

	return &models.PartURL{
		PartNumber: input.PartNumber,
		UploadURL:  url,
	}, nil
}

func uploadedWatermark(partNumber int32, totalSize int64) int64 {
	watermark := int64(partNumber-1) * ChunkSize
	if watermark > totalSize {
		watermark = totalSize
	}
	return watermark
}

func (u *uploadUC) CompleteUpload(ctx context.Context, input *models.CompleteUploadInput) (*models.CompleteUploadResult, error) {
	session, err := u.getSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}
	if session.Status == models.SessionStatusCompleted {
		return u.completeResult(session), nil
	}

	if session.IsMultipart() {
		if err := validateParts(input.Parts); err != nil {
			return nil, err
		}
		if err := u.storageRepo.CompleteMultipartUpload(ctx, session.S3Key, *session.MultipartUploadID, input.Parts); err != nil {
			u.logger.Errorf("CompleteUpload - CompleteMultipartUpload error: %v", err)
			// Best-effort release of backend-side part storage; the session
			// stays PENDING either way.
			if abortErr := u.storageRepo.AbortMultipartUpload(ctx, session.S3Key, *session.MultipartUploadID); abortErr != nil {
				u.logger.Errorf("CompleteUpload - AbortMultipartUpload error: %v", abortErr)
			}
			return nil, httpErrors.NewUpstreamServiceError("failed to complete upload")
		}
	}

	// Direct uploads are completed on the caller's word: the PUT went
	// straight to storage and is not verified here.
	if err := u.sessionRepo.MarkCompleted(ctx, session.SessionID, session.TotalSize); err != nil {
		u.logger.Errorf("CompleteUpload - MarkCompleted error: %v", err)
		return nil, fmt.Errorf("failed to update session: %w", err)
	}
	return u.completeResult(session), nil
}

// validateParts is the part completion check run before finalize touches the
// backend. Completeness relative to the original file remains the caller's
// responsibility; only shape is enforced here.
func validateParts(parts []models.UploadedPart) error {
	if len(parts) == 0 {
		return httpErrors.NewBadRequestError("parts array is required for multipart upload")
	}
	for _, p := range parts {
		if p.PartNumber < 1 {
			return httpErrors.NewBadRequestError(fmt.Sprintf("invalid part number: %d", p.PartNumber))
		}
		if p.ETag == "" {
			return httpErrors.NewBadRequestError(fmt.Sprintf("missing etag for part %d", p.PartNumber))
		}
	}
	return nil
}

func (u *uploadUC) completeResult(session *models.UploadSession) *models.CompleteUploadResult {
	return &models.CompleteUploadResult{
		S3Key:           session.S3Key,
		DistributionURL: cdn.URL(u.cfg.CDN.Domain, session.S3Key),
	}
}

func (u *uploadUC) GetProgress(ctx context.Context, sessionID uuid.UUID) (*models.SessionProgress, error) {
	session, err := u.getSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	var progress float64
	if session.TotalSize > 0 {
		progress = float64(session.UploadedSize) / float64(session.TotalSize) * 100
	}
	return &models.SessionProgress{
		SessionID:    session.SessionID,
		Progress:     progress,
		Status:       session.Status,
		UploadedSize: session.UploadedSize,
		TotalSize:    session.TotalSize,
	}, nil
}

// ReapExpiredSessions drops PENDING sessions older than olderThan, aborting
// their multipart uploads first so storage does not accumulate orphaned
// parts. Abort failures are logged and do not block the delete.
func (u *uploadUC) ReapExpiredSessions(ctx context.Context, olderThan time.Duration) (int, error) {
	before := time.Now().Add(-olderThan)
	sessions, err := u.sessionRepo.ListExpiredPending(ctx, before)
	if err != nil {
		return 0, fmt.Errorf("failed to list expired sessions: %w", err)
	}
	reaped := 0
	for _, session := range sessions {
		if session.IsMultipart() {
			if err := u.storageRepo.AbortMultipartUpload(ctx, session.S3Key, *session.MultipartUploadID); err != nil {
				u.logger.Errorf("ReapExpiredSessions - AbortMultipartUpload error for session %s: %v", session.SessionID, err)
			}
		}
		if err := u.sessionRepo.DeleteSession(ctx, session.SessionID); err != nil {
			u.logger.Errorf("ReapExpiredSessions - DeleteSession error for session %s: %v", session.SessionID, err)
			continue
		}
		reaped++
	}
	if reaped > 0 {
		u.logger.Infof("Reaped %d expired upload sessions", reaped)
	}
	return reaped, nil
}

func (u *uploadUC) getSession(ctx context.Context, sessionID uuid.UUID) (*models.UploadSession, error) {
	session, err := u.sessionRepo.GetSessionByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, httpErrors.NewNotFoundError("upload session not found")
		}
		u.logger.Errorf("getSession - GetSessionByID error: %v", err)
		return nil, fmt.Errorf("failed to fetch upload session: %w", err)
	}
	return session, nil
}

package repository

import (
	"context"
	"time"

	"github.com/filmroom/media-backend/internal/models"
	"github.com/filmroom/media-backend/internal/upload"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

type sessionRepo struct {
	db *sqlx.DB
}

func NewSessionRepo(db *sqlx.DB) upload.Repository {
	return &sessionRepo{
		db: db,
	}
}

func (r *sessionRepo) CreateSession(ctx context.Context, session *models.UploadSession) (*models.UploadSession, error) {
	created := &models.UploadSession{}
	if err := r.db.QueryRowxContext(
		ctx,
		createSessionQuery,
		session.SessionID,
		session.FileName,
		session.TotalSize,
		session.ContentType,
		session.S3Key,
		session.S3Bucket,
		session.Status,
	).StructScan(created); err != nil {
		return nil, errors.Wrap(err, "sessionRepo.CreateSession.StructScan")
	}
	return created, nil
}

func (r *sessionRepo) GetSessionByID(ctx context.Context, sessionID uuid.UUID) (*models.UploadSession, error) {
	session := &models.UploadSession{}
	if err := r.db.QueryRowxContext(ctx, getSessionByIDQuery, sessionID).StructScan(session); err != nil {
		return nil, errors.Wrap(err, "sessionRepo.GetSessionByID.StructScan")
	}
	return session, nil
}

func (r *sessionRepo) SetMultipartUploadID(ctx context.Context, sessionID uuid.UUID, uploadID string) error {
	if _, err := r.db.ExecContext(ctx, setMultipartUploadIDQuery, uploadID, sessionID); err != nil {
		return errors.Wrap(err, "sessionRepo.SetMultipartUploadID.ExecContext")
	}
	return nil
}

func (r *sessionRepo) AdvanceUploadedSize(ctx context.Context, sessionID uuid.UUID, uploadedSize int64) error {
	if _, err := r.db.ExecContext(ctx, advanceUploadedSizeQuery, uploadedSize, sessionID); err != nil {
		return errors.Wrap(err, "sessionRepo.AdvanceUploadedSize.ExecContext")
	}
	return nil
}

func (r *sessionRepo) MarkCompleted(ctx context.Context, sessionID uuid.UUID, uploadedSize int64) error {
	if _, err := r.db.ExecContext(ctx, markCompletedQuery, models.SessionStatusCompleted, uploadedSize, sessionID); err != nil {
		return errors.Wrap(err, "sessionRepo.MarkCompleted.ExecContext")
	}
	return nil
}

func (r *sessionRepo) ListExpiredPending(ctx context.Context, before time.Time) ([]*models.UploadSession, error) {
	rows, err := r.db.QueryxContext(ctx, listExpiredPendingQuery, models.SessionStatusPending, before)
	if err != nil {
		return nil, errors.Wrap(err, "sessionRepo.ListExpiredPending.QueryxContext")
	}
	defer rows.Close()

	var sessions []*models.UploadSession
	for rows.Next() {
		var session models.UploadSession
		if err = rows.StructScan(&session); err != nil {
			return nil, errors.Wrap(err, "sessionRepo.ListExpiredPending.StructScan")
		}
		sessions = append(sessions, &session)
	}
	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "sessionRepo.ListExpiredPending.rows.Err")
	}
	return sessions, nil
}

func (r *sessionRepo) DeleteSession(ctx context.Context, sessionID uuid.UUID) error {
	if _, err := r.db.ExecContext(ctx, deleteSessionQuery, sessionID); err != nil {
		return errors.Wrap(err, "sessionRepo.DeleteSession.ExecContext")
	}
	return nil
}

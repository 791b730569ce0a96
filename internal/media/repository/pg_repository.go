package repository

import (
	"context"

	"github.com/filmroom/media-backend/internal/media"
	"github.com/filmroom/media-backend/internal/models"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

type mediaRepo struct {
	db *sqlx.DB
}

func NewMediaRepo(db *sqlx.DB) media.Repository {
	return &mediaRepo{
		db: db,
	}
}

func (r *mediaRepo) Create(ctx context.Context, m *models.Media) (*models.Media, error) {
	created := &models.Media{}
	if err := r.db.QueryRowxContext(
		ctx,
		createMediaQuery,
		m.MediaID,
		m.Title,
		m.Description,
		m.Genre,
		m.Year,
		m.FileName,
		m.FileSize,
		m.Duration,
		m.MimeType,
		m.Status,
	).StructScan(created); err != nil {
		return nil, errors.Wrap(err, "mediaRepo.Create.StructScan")
	}
	return created, nil
}

func (r *mediaRepo) GetByID(ctx context.Context, mediaID uuid.UUID) (*models.Media, error) {
	m := &models.Media{}
	if err := r.db.QueryRowxContext(ctx, getMediaByIDQuery, mediaID).StructScan(m); err != nil {
		return nil, errors.Wrap(err, "mediaRepo.GetByID.StructScan")
	}
	return m, nil
}

func (r *mediaRepo) SetReady(ctx context.Context, mediaID uuid.UUID, s3Key, distributionURL string) error {
	if _, err := r.db.ExecContext(ctx, setReadyQuery, s3Key, distributionURL, models.MediaStatusReady, mediaID); err != nil {
		return errors.Wrap(err, "mediaRepo.SetReady.ExecContext")
	}
	return nil
}

func (r *mediaRepo) SetThumbnailPath(ctx context.Context, mediaID uuid.UUID, thumbnailPath string) error {
	if _, err := r.db.ExecContext(ctx, setThumbnailPathQuery, thumbnailPath, mediaID); err != nil {
		return errors.Wrap(err, "mediaRepo.SetThumbnailPath.ExecContext")
	}
	return nil
}

func (r *mediaRepo) Delete(ctx context.Context, mediaID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, deleteMediaQuery, mediaID)
	if err != nil {
		return errors.Wrap(err, "mediaRepo.Delete.ExecContext")
	}
	count, _ := res.RowsAffected()
	if count == 0 {
		return errors.New("no media found to delete")
	}
	return nil
}

package usecase

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/filmroom/media-backend/internal/models"
	"github.com/filmroom/media-backend/pkg/httpErrors"
	"github.com/filmroom/media-backend/pkg/logger"
	"github.com/google/uuid"
)

type mockMediaRepo struct {
	media map[uuid.UUID]*models.Media
}

func (m *mockMediaRepo) Create(ctx context.Context, md *models.Media) (*models.Media, error) {
	m.media[md.MediaID] = md
	return md, nil
}

func (m *mockMediaRepo) GetByID(ctx context.Context, mediaID uuid.UUID) (*models.Media, error) {
	md, ok := m.media[mediaID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return md, nil
}

func (m *mockMediaRepo) SetReady(ctx context.Context, mediaID uuid.UUID, s3Key, distributionURL string) error {
	return nil
}

func (m *mockMediaRepo) SetThumbnailPath(ctx context.Context, mediaID uuid.UUID, thumbnailPath string) error {
	return nil
}

func (m *mockMediaRepo) Delete(ctx context.Context, mediaID uuid.UUID) error {
	if _, ok := m.media[mediaID]; !ok {
		return sql.ErrNoRows
	}
	delete(m.media, mediaID)
	return nil
}

type mockObjectStorage struct {
	deleteErr error

	deletedKeys []string
}

func (m *mockObjectStorage) DeleteObject(ctx context.Context, key string) error {
	m.deletedKeys = append(m.deletedKeys, key)
	return m.deleteErr
}

func TestDeleteMedia(t *testing.T) {
	mediaID := uuid.New()
	repo := &mockMediaRepo{media: map[uuid.UUID]*models.Media{
		mediaID: {MediaID: mediaID, S3Key: "processed/x/movie_4k.mp4"},
	}}
	storage := &mockObjectStorage{}
	uc := NewMediaUseCase(repo, storage, logger.NewNoopLogger())

	if err := uc.Delete(context.Background(), mediaID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok := repo.media[mediaID]; ok {
		t.Error("catalog row should be deleted")
	}
	if len(storage.deletedKeys) != 1 || storage.deletedKeys[0] != "processed/x/movie_4k.mp4" {
		t.Errorf("object delete calls = %v, want the stored key", storage.deletedKeys)
	}
}

func TestDeleteMediaObjectFailureStillDeletesRow(t *testing.T) {
	mediaID := uuid.New()
	repo := &mockMediaRepo{media: map[uuid.UUID]*models.Media{
		mediaID: {MediaID: mediaID, S3Key: "processed/x/movie_4k.mp4"},
	}}
	storage := &mockObjectStorage{deleteErr: errors.New("storage unavailable")}
	uc := NewMediaUseCase(repo, storage, logger.NewNoopLogger())

	if err := uc.Delete(context.Background(), mediaID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok := repo.media[mediaID]; ok {
		t.Error("object delete failure must not block the catalog delete")
	}
}

func TestDeleteMediaWithoutObjectKey(t *testing.T) {
	mediaID := uuid.New()
	repo := &mockMediaRepo{media: map[uuid.UUID]*models.Media{
		mediaID: {MediaID: mediaID},
	}}
	storage := &mockObjectStorage{}
	uc := NewMediaUseCase(repo, storage, logger.NewNoopLogger())

	if err := uc.Delete(context.Background(), mediaID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(storage.deletedKeys) != 0 {
		t.Error("no object delete should run for a record without a stored key")
	}
}

func TestDeleteMediaNotFound(t *testing.T) {
	uc := NewMediaUseCase(&mockMediaRepo{media: map[uuid.UUID]*models.Media{}}, &mockObjectStorage{}, logger.NewNoopLogger())

	err := uc.Delete(context.Background(), uuid.New())
	restErr, ok := err.(httpErrors.RestErr)
	if !ok || restErr.Status() != 404 {
		t.Errorf("expected a 404 error, got %v", err)
	}
}

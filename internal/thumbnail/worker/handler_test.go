package worker

import (
	"context"
	"database/sql"
	"testing"

	"github.com/filmroom/media-backend/internal/models"
	"github.com/filmroom/media-backend/internal/thumbnail/task"
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
	md, ok := m.media[mediaID]
	if !ok {
		return sql.ErrNoRows
	}
	md.ThumbnailPath = thumbnailPath
	return nil
}

func (m *mockMediaRepo) Delete(ctx context.Context, mediaID uuid.UUID) error {
	delete(m.media, mediaID)
	return nil
}

type mockGenerator struct {
	calls int
}

func (m *mockGenerator) Generate(ctx context.Context, sourceURL, name string) (string, error) {
	m.calls++
	return "/tmp/thumbnails/" + name + ".jpg", nil
}

func TestHandleGenerateThumbnail(t *testing.T) {
	mediaID := uuid.New()
	repo := &mockMediaRepo{media: map[uuid.UUID]*models.Media{
		mediaID: {
			MediaID:         mediaID,
			FileName:        "movie.mov",
			DistributionURL: "https://cdn.example.com/processed/x/movie_4k.mp4",
		},
	}}
	gen := &mockGenerator{}
	w := NewWorker(repo, gen, logger.NewNoopLogger())

	tk, err := task.NewGenerateThumbnailTask(mediaID.String())
	if err != nil {
		t.Fatal(err)
	}
	if err := w.HandleGenerateThumbnail(context.Background(), tk); err != nil {
		t.Fatalf("HandleGenerateThumbnail: %v", err)
	}
	if gen.calls != 1 {
		t.Errorf("generator called %d times, want 1", gen.calls)
	}
	want := "/thumbnails/" + mediaID.String() + ".jpg"
	if repo.media[mediaID].ThumbnailPath != want {
		t.Errorf("thumbnail path = %s, want %s", repo.media[mediaID].ThumbnailPath, want)
	}
}

func TestHandleGenerateThumbnailSkipsExisting(t *testing.T) {
	mediaID := uuid.New()
	repo := &mockMediaRepo{media: map[uuid.UUID]*models.Media{
		mediaID: {
			MediaID:         mediaID,
			DistributionURL: "https://cdn.example.com/x.mp4",
			ThumbnailPath:   "/thumbnails/" + mediaID.String() + ".jpg",
		},
	}}
	gen := &mockGenerator{}
	w := NewWorker(repo, gen, logger.NewNoopLogger())

	tk, _ := task.NewGenerateThumbnailTask(mediaID.String())
	if err := w.HandleGenerateThumbnail(context.Background(), tk); err != nil {
		t.Fatalf("HandleGenerateThumbnail: %v", err)
	}
	if gen.calls != 0 {
		t.Error("generator must not run when a thumbnail already exists")
	}
}

func TestHandleGenerateThumbnailSkipsWithoutDistributionURL(t *testing.T) {
	mediaID := uuid.New()
	repo := &mockMediaRepo{media: map[uuid.UUID]*models.Media{
		mediaID: {MediaID: mediaID},
	}}
	gen := &mockGenerator{}
	w := NewWorker(repo, gen, logger.NewNoopLogger())

	tk, _ := task.NewGenerateThumbnailTask(mediaID.String())
	if err := w.HandleGenerateThumbnail(context.Background(), tk); err != nil {
		t.Fatalf("HandleGenerateThumbnail: %v", err)
	}
	if gen.calls != 0 {
		t.Error("generator must not run without a distribution url")
	}
}

func TestHandleGenerateThumbnailBadPayload(t *testing.T) {
	repo := &mockMediaRepo{media: map[uuid.UUID]*models.Media{}}
	w := NewWorker(repo, &mockGenerator{}, logger.NewNoopLogger())

	tk, _ := task.NewGenerateThumbnailTask("not-a-uuid")
	if err := w.HandleGenerateThumbnail(context.Background(), tk); err == nil {
		t.Error("expected error for malformed media id")
	}
}

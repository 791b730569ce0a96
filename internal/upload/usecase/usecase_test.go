package usecase

import (
	"context"
	"database/sql"
	"strings"
	"testing"
	"time"

	"github.com/filmroom/media-backend/internal/config"
	"github.com/filmroom/media-backend/internal/models"
	"github.com/filmroom/media-backend/pkg/httpErrors"
	"github.com/filmroom/media-backend/pkg/logger"
	"github.com/google/uuid"
)

type mockSessionRepo struct {
	sessions map[uuid.UUID]*models.UploadSession

	markCompletedCalls int
	deletedSessions    []uuid.UUID
}

func newMockSessionRepo() *mockSessionRepo {
	return &mockSessionRepo{sessions: make(map[uuid.UUID]*models.UploadSession)}
}

func (m *mockSessionRepo) CreateSession(ctx context.Context, session *models.UploadSession) (*models.UploadSession, error) {
	m.sessions[session.SessionID] = session
	return session, nil
}

func (m *mockSessionRepo) GetSessionByID(ctx context.Context, sessionID uuid.UUID) (*models.UploadSession, error) {
	session, ok := m.sessions[sessionID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return session, nil
}

func (m *mockSessionRepo) SetMultipartUploadID(ctx context.Context, sessionID uuid.UUID, uploadID string) error {
	session, ok := m.sessions[sessionID]
	if !ok {
		return sql.ErrNoRows
	}
	session.MultipartUploadID = &uploadID
	return nil
}

func (m *mockSessionRepo) AdvanceUploadedSize(ctx context.Context, sessionID uuid.UUID, uploadedSize int64) error {
	session, ok := m.sessions[sessionID]
	if !ok {
		return sql.ErrNoRows
	}
	if uploadedSize > session.UploadedSize {
		session.UploadedSize = uploadedSize
	}
	return nil
}

func (m *mockSessionRepo) MarkCompleted(ctx context.Context, sessionID uuid.UUID, uploadedSize int64) error {
	m.markCompletedCalls++
	session, ok := m.sessions[sessionID]
	if !ok {
		return sql.ErrNoRows
	}
	session.Status = models.SessionStatusCompleted
	session.UploadedSize = uploadedSize
	return nil
}

func (m *mockSessionRepo) ListExpiredPending(ctx context.Context, before time.Time) ([]*models.UploadSession, error) {
	out := make([]*models.UploadSession, 0)
	for _, s := range m.sessions {
		if s.Status == models.SessionStatusPending && s.CreatedAt.Before(before) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *mockSessionRepo) DeleteSession(ctx context.Context, sessionID uuid.UUID) error {
	if _, ok := m.sessions[sessionID]; !ok {
		return sql.ErrNoRows
	}
	delete(m.sessions, sessionID)
	m.deletedSessions = append(m.deletedSessions, sessionID)
	return nil
}

type mockStorageRepo struct {
	completeErr error

	initiateCalls []string
	completeCalls int
	abortCalls    int
}

func (m *mockStorageRepo) SignDirectPutURL(ctx context.Context, key, contentType string, size int64, expires time.Duration) (string, error) {
	return "https://storage.example.com/" + key + "?signed=1", nil
}

func (m *mockStorageRepo) InitiateMultipartUpload(ctx context.Context, key, contentType string) (string, error) {
	m.initiateCalls = append(m.initiateCalls, key)
	return "upload-" + key, nil
}

func (m *mockStorageRepo) SignPartUploadURL(ctx context.Context, key, uploadID string, partNumber int32) (string, error) {
	return "https://storage.example.com/" + key + "?partNumber=1", nil
}

func (m *mockStorageRepo) CompleteMultipartUpload(ctx context.Context, key, uploadID string, parts []models.UploadedPart) error {
	m.completeCalls++
	return m.completeErr
}

func (m *mockStorageRepo) AbortMultipartUpload(ctx context.Context, key, uploadID string) error {
	m.abortCalls++
	return nil
}

func (m *mockStorageRepo) DeleteObject(ctx context.Context, key string) error {
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		S3: config.S3Config{
			Bucket:       "media-backend",
			UploadFolder: "uploads",
			OutputFolder: "processed",
		},
		CDN: config.CDNConfig{Domain: "cdn.example.com"},
	}
}

func TestCreateSessionDirectUpload(t *testing.T) {
	sessionRepo := newMockSessionRepo()
	storageRepo := &mockStorageRepo{}
	uc := NewUploadUseCase(testConfig(), sessionRepo, storageRepo, logger.NewNoopLogger())

	descriptor, err := uc.CreateSession(context.Background(), &models.CreateSessionInput{
		FileName:    "movie.mov",
		TotalSize:   SingleUploadLimit - 1,
		ContentType: "video/quicktime",
	})
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if descriptor.UseMultipart {
		t.Error("expected direct upload below the single PUT limit")
	}
	if descriptor.UploadURL == "" {
		t.Error("expected a signed upload url")
	}
	if !strings.Contains(descriptor.S3Key, "uploads/") || !strings.HasSuffix(descriptor.S3Key, "/movie.mov") {
		t.Errorf("unexpected s3 key: %s", descriptor.S3Key)
	}
	if len(storageRepo.initiateCalls) != 0 {
		t.Error("direct upload must not initiate a multipart upload")
	}
}

func TestCreateSessionMultipartAtThreshold(t *testing.T) {
	sessionRepo := newMockSessionRepo()
	storageRepo := &mockStorageRepo{}
	uc := NewUploadUseCase(testConfig(), sessionRepo, storageRepo, logger.NewNoopLogger())

	descriptor, err := uc.CreateSession(context.Background(), &models.CreateSessionInput{
		FileName:  "movie.mov",
		TotalSize: SingleUploadLimit,
	})
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if !descriptor.UseMultipart {
		t.Error("expected multipart upload at the single PUT limit")
	}
	if descriptor.ChunkSize != ChunkSize {
		t.Errorf("chunk size = %d, want %d", descriptor.ChunkSize, ChunkSize)
	}
	wantParts := 52 // ceil(5 GiB / 100 MiB)
	if descriptor.NumParts != wantParts {
		t.Errorf("num parts = %d, want %d", descriptor.NumParts, wantParts)
	}
	session := sessionRepo.sessions[descriptor.SessionID]
	if session == nil || !session.IsMultipart() {
		t.Fatal("expected the multipart upload id stored on the session")
	}
}

func TestCreateSessionRejectsMissingFields(t *testing.T) {
	uc := NewUploadUseCase(testConfig(), newMockSessionRepo(), &mockStorageRepo{}, logger.NewNoopLogger())

	if _, err := uc.CreateSession(context.Background(), &models.CreateSessionInput{FileName: "movie.mov"}); err == nil {
		t.Error("expected error for zero file size")
	}
	if _, err := uc.CreateSession(context.Background(), &models.CreateSessionInput{TotalSize: 100}); err == nil {
		t.Error("expected error for missing filename")
	}
}

func TestGetPartUploadURLOnDirectSession(t *testing.T) {
	sessionRepo := newMockSessionRepo()
	uc := NewUploadUseCase(testConfig(), sessionRepo, &mockStorageRepo{}, logger.NewNoopLogger())

	descriptor, err := uc.CreateSession(context.Background(), &models.CreateSessionInput{
		FileName:  "small.mp4",
		TotalSize: 1024,
	})
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	_, err = uc.GetPartUploadURL(context.Background(), &models.PartURLInput{
		SessionID:  descriptor.SessionID,
		PartNumber: 1,
	})
	if err == nil {
		t.Fatal("expected error for part url on a direct session")
	}
	var restErr httpErrors.RestErr
	if !asRestErr(err, &restErr) || restErr.Status() != 500 {
		t.Errorf("expected a 500 error, got %v", err)
	}
}

func TestGetPartUploadURLAdvancesProgress(t *testing.T) {
	sessionRepo := newMockSessionRepo()
	uc := NewUploadUseCase(testConfig(), sessionRepo, &mockStorageRepo{}, logger.NewNoopLogger())

	descriptor, err := uc.CreateSession(context.Background(), &models.CreateSessionInput{
		FileName:  "movie.mov",
		TotalSize: SingleUploadLimit,
	})
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	if _, err := uc.GetPartUploadURL(context.Background(), &models.PartURLInput{
		SessionID:  descriptor.SessionID,
		PartNumber: 3,
	}); err != nil {
		t.Fatalf("GetPartUploadURL: %v", err)
	}

	progress, err := uc.GetProgress(context.Background(), descriptor.SessionID)
	if err != nil {
		t.Fatalf("GetProgress: %v", err)
	}
	wantUploaded := 2 * ChunkSize
	if progress.UploadedSize != wantUploaded {
		t.Errorf("uploaded size = %d, want %d", progress.UploadedSize, wantUploaded)
	}
	if progress.Progress <= 0 || progress.Progress >= 100 {
		t.Errorf("progress = %v, want intermediate value", progress.Progress)
	}

	// A retried request for an earlier part never moves progress backwards.
	if _, err := uc.GetPartUploadURL(context.Background(), &models.PartURLInput{
		SessionID:  descriptor.SessionID,
		PartNumber: 2,
	}); err != nil {
		t.Fatalf("GetPartUploadURL: %v", err)
	}
	progress, err = uc.GetProgress(context.Background(), descriptor.SessionID)
	if err != nil {
		t.Fatalf("GetProgress: %v", err)
	}
	if progress.UploadedSize != wantUploaded {
		t.Errorf("uploaded size regressed to %d, want %d", progress.UploadedSize, wantUploaded)
	}
}

func TestGetPartUploadURLSessionNotFound(t *testing.T) {
	uc := NewUploadUseCase(testConfig(), newMockSessionRepo(), &mockStorageRepo{}, logger.NewNoopLogger())

	_, err := uc.GetPartUploadURL(context.Background(), &models.PartURLInput{
		SessionID:  uuid.New(),
		PartNumber: 1,
	})
	var restErr httpErrors.RestErr
	if !asRestErr(err, &restErr) || restErr.Status() != 404 {
		t.Errorf("expected a 404 error, got %v", err)
	}
}

func TestCompleteMultipartUpload(t *testing.T) {
	sessionRepo := newMockSessionRepo()
	storageRepo := &mockStorageRepo{}
	uc := NewUploadUseCase(testConfig(), sessionRepo, storageRepo, logger.NewNoopLogger())

	descriptor, err := uc.CreateSession(context.Background(), &models.CreateSessionInput{
		FileName:  "movie.mov",
		TotalSize: SingleUploadLimit,
	})
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	result, err := uc.CompleteUpload(context.Background(), &models.CompleteUploadInput{
		SessionID: descriptor.SessionID,
		Parts: []models.UploadedPart{
			{PartNumber: 1, ETag: "etag-1"},
			{PartNumber: 2, ETag: "etag-2"},
		},
	})
	if err != nil {
		t.Fatalf("CompleteUpload: %v", err)
	}
	if result.S3Key != descriptor.S3Key {
		t.Errorf("result key %s does not match session key %s", result.S3Key, descriptor.S3Key)
	}
	if !strings.Contains(result.DistributionURL, "cdn.example.com") {
		t.Errorf("unexpected distribution url: %s", result.DistributionURL)
	}
	if sessionRepo.sessions[descriptor.SessionID].Status != models.SessionStatusCompleted {
		t.Error("session should transition to COMPLETED")
	}

	// Completing again is an idempotent read, not a second finalize.
	if _, err := uc.CompleteUpload(context.Background(), &models.CompleteUploadInput{SessionID: descriptor.SessionID}); err != nil {
		t.Fatalf("second CompleteUpload: %v", err)
	}
	if storageRepo.completeCalls != 1 {
		t.Errorf("backend finalize called %d times, want 1", storageRepo.completeCalls)
	}
	if sessionRepo.markCompletedCalls != 1 {
		t.Errorf("MarkCompleted called %d times, want 1", sessionRepo.markCompletedCalls)
	}
}

func TestCompleteMultipartRejectsBadParts(t *testing.T) {
	sessionRepo := newMockSessionRepo()
	storageRepo := &mockStorageRepo{}
	uc := NewUploadUseCase(testConfig(), sessionRepo, storageRepo, logger.NewNoopLogger())

	descriptor, err := uc.CreateSession(context.Background(), &models.CreateSessionInput{
		FileName:  "movie.mov",
		TotalSize: SingleUploadLimit,
	})
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	cases := []struct {
		name  string
		parts []models.UploadedPart
	}{
		{"empty parts", nil},
		{"zero part number", []models.UploadedPart{{PartNumber: 0, ETag: "etag"}}},
		{"missing etag", []models.UploadedPart{{PartNumber: 1}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.CompleteUpload(context.Background(), &models.CompleteUploadInput{
				SessionID: descriptor.SessionID,
				Parts:     tc.parts,
			})
			var restErr httpErrors.RestErr
			if !asRestErr(err, &restErr) || restErr.Status() != 400 {
				t.Errorf("expected a 400 error, got %v", err)
			}
		})
	}
	if storageRepo.completeCalls != 0 {
		t.Error("backend finalize must not run for invalid part lists")
	}
	if sessionRepo.sessions[descriptor.SessionID].Status != models.SessionStatusPending {
		t.Error("session must stay PENDING after rejected finalize")
	}
}

func TestCompleteMultipartBackendFailureAborts(t *testing.T) {
	sessionRepo := newMockSessionRepo()
	storageRepo := &mockStorageRepo{completeErr: errRemote}
	uc := NewUploadUseCase(testConfig(), sessionRepo, storageRepo, logger.NewNoopLogger())

	descriptor, err := uc.CreateSession(context.Background(), &models.CreateSessionInput{
		FileName:  "movie.mov",
		TotalSize: SingleUploadLimit,
	})
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	_, err = uc.CompleteUpload(context.Background(), &models.CompleteUploadInput{
		SessionID: descriptor.SessionID,
		Parts:     []models.UploadedPart{{PartNumber: 1, ETag: "etag-1"}},
	})
	if err == nil {
		t.Fatal("expected error when backend finalize fails")
	}
	if storageRepo.abortCalls != 1 {
		t.Errorf("abort called %d times, want 1", storageRepo.abortCalls)
	}
	if sessionRepo.sessions[descriptor.SessionID].Status != models.SessionStatusPending {
		t.Error("session must stay PENDING after failed finalize")
	}
}

func TestGetProgress(t *testing.T) {
	sessionRepo := newMockSessionRepo()
	uc := NewUploadUseCase(testConfig(), sessionRepo, &mockStorageRepo{}, logger.NewNoopLogger())

	sessionID := uuid.New()
	sessionRepo.sessions[sessionID] = &models.UploadSession{
		SessionID:    sessionID,
		TotalSize:    200,
		UploadedSize: 50,
		Status:       models.SessionStatusPending,
	}

	progress, err := uc.GetProgress(context.Background(), sessionID)
	if err != nil {
		t.Fatalf("GetProgress: %v", err)
	}
	if progress.Progress != 25 {
		t.Errorf("progress = %v, want 25", progress.Progress)
	}
}

func TestReapExpiredSessions(t *testing.T) {
	sessionRepo := newMockSessionRepo()
	storageRepo := &mockStorageRepo{}
	uc := NewUploadUseCase(testConfig(), sessionRepo, storageRepo, logger.NewNoopLogger())

	uploadID := "upload-abc"
	stale := &models.UploadSession{
		SessionID:         uuid.New(),
		Status:            models.SessionStatusPending,
		MultipartUploadID: &uploadID,
		S3Key:             "uploads/stale/movie.mov",
		CreatedAt:         time.Now().Add(-48 * time.Hour),
	}
	fresh := &models.UploadSession{
		SessionID: uuid.New(),
		Status:    models.SessionStatusPending,
		CreatedAt: time.Now(),
	}
	done := &models.UploadSession{
		SessionID: uuid.New(),
		Status:    models.SessionStatusCompleted,
		CreatedAt: time.Now().Add(-48 * time.Hour),
	}
	sessionRepo.sessions[stale.SessionID] = stale
	sessionRepo.sessions[fresh.SessionID] = fresh
	sessionRepo.sessions[done.SessionID] = done

	reaped, err := uc.ReapExpiredSessions(context.Background(), 24*time.Hour)
	if err != nil {
		t.Fatalf("ReapExpiredSessions: %v", err)
	}
	if reaped != 1 {
		t.Errorf("reaped = %d, want 1", reaped)
	}
	if storageRepo.abortCalls != 1 {
		t.Errorf("abort called %d times, want 1", storageRepo.abortCalls)
	}
	if _, ok := sessionRepo.sessions[stale.SessionID]; ok {
		t.Error("stale session should be deleted")
	}
	if _, ok := sessionRepo.sessions[fresh.SessionID]; !ok {
		t.Error("fresh session must survive the reaper")
	}
	if _, ok := sessionRepo.sessions[done.SessionID]; !ok {
		t.Error("completed session must survive the reaper")
	}
}

var errRemote = &remoteError{}

type remoteError struct{}

func (e *remoteError) Error() string { return "remote storage failure" }

func asRestErr(err error, target *httpErrors.RestErr) bool {
	if err == nil {
		return false
	}
	re, ok := err.(httpErrors.RestErr)
	if !ok {
		return false
	}
	*target = re
	return true
}

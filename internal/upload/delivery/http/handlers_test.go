package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/filmroom/media-backend/internal/models"
	"github.com/filmroom/media-backend/pkg/httpErrors"
	"github.com/filmroom/media-backend/pkg/logger"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type mockUploadUC struct {
	createSessionFn func(ctx context.Context, input *models.CreateSessionInput) (*models.SessionDescriptor, error)
	getProgressFn   func(ctx context.Context, sessionID uuid.UUID) (*models.SessionProgress, error)
}

func (m *mockUploadUC) CreateSession(ctx context.Context, input *models.CreateSessionInput) (*models.SessionDescriptor, error) {
	return m.createSessionFn(ctx, input)
}

func (m *mockUploadUC) GetPartUploadURL(ctx context.Context, input *models.PartURLInput) (*models.PartURL, error) {
	return &models.PartURL{PartNumber: input.PartNumber, UploadURL: "https://storage.example.com/part"}, nil
}

func (m *mockUploadUC) CompleteUpload(ctx context.Context, input *models.CompleteUploadInput) (*models.CompleteUploadResult, error) {
	return &models.CompleteUploadResult{S3Key: "uploads/x/movie.mov"}, nil
}

func (m *mockUploadUC) GetProgress(ctx context.Context, sessionID uuid.UUID) (*models.SessionProgress, error) {
	return m.getProgressFn(ctx, sessionID)
}

func (m *mockUploadUC) ReapExpiredSessions(ctx context.Context, olderThan time.Duration) (int, error) {
	return 0, nil
}

func TestCreateSessionHandler(t *testing.T) {
	sessionID := uuid.New()
	uc := &mockUploadUC{
		createSessionFn: func(ctx context.Context, input *models.CreateSessionInput) (*models.SessionDescriptor, error) {
			if input.FileName != "movie.mov" {
				t.Errorf("filename = %s, want movie.mov", input.FileName)
			}
			return &models.SessionDescriptor{SessionID: sessionID, S3Key: "uploads/x/movie.mov"}, nil
		},
	}
	h := NewUploadHandler(uc, logger.NewNoopLogger())

	e := echo.New()
	body := `{"filename":"movie.mov","file_size":1024}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/upload/session", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.CreateSession()(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var descriptor models.SessionDescriptor
	if err := json.Unmarshal(rec.Body.Bytes(), &descriptor); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if descriptor.SessionID != sessionID {
		t.Errorf("session id = %s, want %s", descriptor.SessionID, sessionID)
	}
}

func TestCreateSessionHandlerError(t *testing.T) {
	uc := &mockUploadUC{
		createSessionFn: func(ctx context.Context, input *models.CreateSessionInput) (*models.SessionDescriptor, error) {
			return nil, httpErrors.NewBadRequestError("filename and file size are required")
		},
	}
	h := NewUploadHandler(uc, logger.NewNoopLogger())

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/upload/session", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.CreateSession()(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestGetProgressHandlerInvalidID(t *testing.T) {
	h := NewUploadHandler(&mockUploadUC{}, logger.NewNoopLogger())

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/upload/progress/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("session_id")
	c.SetParamValues("not-a-uuid")

	if err := h.GetProgress()(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestGetProgressHandler(t *testing.T) {
	sessionID := uuid.New()
	uc := &mockUploadUC{
		getProgressFn: func(ctx context.Context, id uuid.UUID) (*models.SessionProgress, error) {
			return &models.SessionProgress{SessionID: id, Progress: 42, Status: models.SessionStatusPending}, nil
		},
	}
	h := NewUploadHandler(uc, logger.NewNoopLogger())

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/upload/progress/"+sessionID.String(), nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("session_id")
	c.SetParamValues(sessionID.String())

	if err := h.GetProgress()(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var progress models.SessionProgress
	if err := json.Unmarshal(rec.Body.Bytes(), &progress); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if progress.Progress != 42 {
		t.Errorf("progress = %v, want 42", progress.Progress)
	}
}

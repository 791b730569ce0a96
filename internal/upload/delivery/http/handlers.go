package http

import (
	"net/http"

	"github.com/filmroom/media-backend/internal/models"
	"github.com/filmroom/media-backend/internal/upload"
	"github.com/filmroom/media-backend/pkg/httpErrors"
	"github.com/filmroom/media-backend/pkg/logger"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type uploadHandler struct {
	uploadUC upload.UseCase
	logger   logger.Logger
}

func NewUploadHandler(uploadUC upload.UseCase, log logger.Logger) upload.Handler {
	return &uploadHandler{
		uploadUC: uploadUC,
		logger:   log,
	}
}

func (h *uploadHandler) CreateSession() echo.HandlerFunc {
	return func(c echo.Context) error {
		input := &models.CreateSessionInput{}
		if err := c.Bind(input); err != nil {
			return c.JSON(httpErrors.ErrorResponse(httpErrors.NewBadRequestError("invalid request payload")))
		}
		descriptor, err := h.uploadUC.CreateSession(c.Request().Context(), input)
		if err != nil {
			return c.JSON(httpErrors.ErrorResponse(err))
		}
		return c.JSON(http.StatusOK, descriptor)
	}
}

func (h *uploadHandler) GetPartUploadURL() echo.HandlerFunc {
	return func(c echo.Context) error {
		input := &models.PartURLInput{}
		if err := c.Bind(input); err != nil {
			return c.JSON(httpErrors.ErrorResponse(httpErrors.NewBadRequestError("invalid request payload")))
		}
		partURL, err := h.uploadUC.GetPartUploadURL(c.Request().Context(), input)
		if err != nil {
			return c.JSON(httpErrors.ErrorResponse(err))
		}
		return c.JSON(http.StatusOK, partURL)
	}
}

func (h *uploadHandler) CompleteUpload() echo.HandlerFunc {
	return func(c echo.Context) error {
		input := &models.CompleteUploadInput{}
		if err := c.Bind(input); err != nil {
			return c.JSON(httpErrors.ErrorResponse(httpErrors.NewBadRequestError("invalid request payload")))
		}
		result, err := h.uploadUC.CompleteUpload(c.Request().Context(), input)
		if err != nil {
			return c.JSON(httpErrors.ErrorResponse(err))
		}
		return c.JSON(http.StatusOK, result)
	}
}

func (h *uploadHandler) GetProgress() echo.HandlerFunc {
	return func(c echo.Context) error {
		sessionID, err := uuid.Parse(c.Param("session_id"))
		if err != nil {
			return c.JSON(httpErrors.ErrorResponse(httpErrors.NewBadRequestError("invalid session id")))
		}
		progress, err := h.uploadUC.GetProgress(c.Request().Context(), sessionID)
		if err != nil {
			return c.JSON(httpErrors.ErrorResponse(err))
		}
		return c.JSON(http.StatusOK, progress)
	}
}

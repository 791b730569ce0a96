package http

import (
	"net/http"

	"github.com/filmroom/media-backend/internal/media"
	"github.com/filmroom/media-backend/pkg/httpErrors"
	"github.com/filmroom/media-backend/pkg/logger"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type mediaHandler struct {
	mediaUC media.UseCase
	logger  logger.Logger
}

func NewMediaHandler(mediaUC media.UseCase, log logger.Logger) media.Handler {
	return &mediaHandler{
		mediaUC: mediaUC,
		logger:  log,
	}
}

func (h *mediaHandler) DeleteMedia() echo.HandlerFunc {
	return func(c echo.Context) error {
		mediaID, err := uuid.Parse(c.Param("media_id"))
		if err != nil {
			return c.JSON(httpErrors.ErrorResponse(httpErrors.NewBadRequestError("invalid media id")))
		}
		if err := h.mediaUC.Delete(c.Request().Context(), mediaID); err != nil {
			return c.JSON(httpErrors.ErrorResponse(err))
		}
		return c.JSON(http.StatusOK, map[string]string{
			"message": "media deleted",
		})
	}
}

package http

import (
	"github.com/filmroom/media-backend/internal/media"
	"github.com/labstack/echo/v4"
)

func MapMediaRoutes(mediaGroup *echo.Group, h media.Handler) {
	mediaGroup.DELETE("/:media_id", h.DeleteMedia())
}

package http

import (
	"github.com/filmroom/media-backend/internal/upload"
	"github.com/labstack/echo/v4"
)

func MapUploadRoutes(uploadGroup *echo.Group, h upload.Handler) {
	uploadGroup.POST("/session", h.CreateSession())
	uploadGroup.POST("/multipart/part-url", h.GetPartUploadURL())
	uploadGroup.POST("/complete", h.CompleteUpload())
	uploadGroup.GET("/progress/:session_id", h.GetProgress())
}

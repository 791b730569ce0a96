package http

import (
	"github.com/filmroom/media-backend/internal/convert"
	"github.com/labstack/echo/v4"
)

func MapConvertRoutes(convertGroup *echo.Group, h convert.Handler) {
	convertGroup.POST("/create", h.CreateJobs())
	convertGroup.GET("/status/:job_id", h.GetJobStatus())
	convertGroup.GET("/jobs", h.ListJobs())
	convertGroup.POST("/poll-status", h.PollStatus())
	convertGroup.POST("/cancel/:job_id", h.CancelJob())
	convertGroup.POST("/generate-thumbnail/:media_id", h.GenerateThumbnail())
}

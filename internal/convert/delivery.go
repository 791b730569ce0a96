package convert

import "github.com/labstack/echo/v4"

type Handler interface {
	CreateJobs() echo.HandlerFunc
	GetJobStatus() echo.HandlerFunc
	ListJobs() echo.HandlerFunc
	PollStatus() echo.HandlerFunc
	CancelJob() echo.HandlerFunc
	GenerateThumbnail() echo.HandlerFunc
}

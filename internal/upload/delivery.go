package upload

import "github.com/labstack/echo/v4"

type Handler interface {
	CreateSession() echo.HandlerFunc
	GetPartUploadURL() echo.HandlerFunc
	CompleteUpload() echo.HandlerFunc
	GetProgress() echo.HandlerFunc
}

package media

import "github.com/labstack/echo/v4"

type Handler interface {
	DeleteMedia() echo.HandlerFunc
}

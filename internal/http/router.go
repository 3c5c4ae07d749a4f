package http

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "tagebuch/docs"
	"tagebuch/internal/handler"
)

// BodyLimit covers a maximum size image after base64 encoding plus the text fields.
const BodyLimit = "8M"

func NewRouter(
	entryHandler *handler.EntryHandler,
	editorHandler *handler.EditorHandler,
	settingsHandler *handler.SettingsHandler,
	staticDir string,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(RequestLoggerMiddleware())
	e.Use(middleware.BodyLimit(BodyLimit))

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")
	api.GET("/health", healthHandler)
	entryHandler.RegisterRoutes(api)
	editorHandler.RegisterRoutes(api)
	settingsHandler.RegisterRoutes(api)

	registerStatic(e, staticDir)

	return e
}

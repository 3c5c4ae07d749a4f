package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"tagebuch/internal/logger"
)

// RequestLoggerMiddleware logs HTTP requests using logger. Server errors are
// logged at error level, client errors at warn, everything else at debug.
func RequestLoggerMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			if err := next(c); err != nil {
				c.Error(err)
			}

			req := c.Request()
			status := c.Response().Status
			result := "ok"
			if status >= 400 {
				result = "failed"
			}

			log := logger.Debug
			switch {
			case status >= 500:
				log = logger.Error
			case status >= 400:
				log = logger.Warn
			}
			log("http request",
				"module", "http",
				"action", "request",
				"resource", "http",
				"result", result,
				"method", req.Method,
				"path", req.URL.Path,
				"status_code", status,
				"duration_ms", time.Since(start).Milliseconds(),
				"remote_ip", c.RealIP(),
			)
			return nil
		}
	}
}

type healthResponse struct {
	Status string `json:"status"`
}

// healthHandler reports liveness.
// @Summary Health check
// @Tags system
// @Produce json
// @Success 200 {object} healthResponse
// @Router /health [get]
func healthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, healthResponse{Status: "ok"})
}

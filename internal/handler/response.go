package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"tagebuch/internal/service"
	"tagebuch/internal/service/ai"
	"tagebuch/internal/service/enrich"
)

// User-facing messages.
const (
	msgEmptyEntry   = "Bitte gib mindestens einen Titel oder Text ein."
	msgInvalidImage = "Das Bild konnte nicht gelesen werden."
	msgInvalid      = "Ungültige Anfrage."
	msgNotFound     = "Nicht gefunden."
	msgNotConfirmed = "Löschen wurde nicht bestätigt."
	msgInternal     = "Interner Fehler."
)

type errorResponse struct {
	Error string `json:"error"`
	// Confirm carries the question to ask before retrying with confirm=true.
	Confirm string `json:"confirm,omitempty"`
}

func writeServiceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrEmptyEntry):
		return c.JSON(http.StatusBadRequest, errorResponse{Error: msgEmptyEntry})
	case errors.Is(err, service.ErrInvalidImage):
		return c.JSON(http.StatusBadRequest, errorResponse{Error: msgInvalidImage})
	case errors.Is(err, service.ErrInvalid), errors.Is(err, ai.ErrInvalidProvider):
		return c.JSON(http.StatusBadRequest, errorResponse{Error: msgInvalid})
	case errors.Is(err, service.ErrNotFound):
		return c.JSON(http.StatusNotFound, errorResponse{Error: msgNotFound})
	case errors.Is(err, service.ErrNotConfirmed):
		return c.JSON(http.StatusConflict, errorResponse{Error: msgNotConfirmed, Confirm: service.DeletePrompt})
	case ai.IsUnavailable(err):
		return c.JSON(http.StatusServiceUnavailable, errorResponse{Error: enrich.StatusNotReady.Message()})
	default:
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: msgInternal})
	}
}

// Error returns a JSON error response with the given status and message
func Error(c echo.Context, status int, message string) error {
	return c.JSON(status, errorResponse{Error: message})
}

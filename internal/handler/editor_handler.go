package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"tagebuch/internal/render"
	"tagebuch/internal/service"
)

type EditorHandler struct {
	service service.EditorService
}

func NewEditorHandler(service service.EditorService) *EditorHandler {
	return &EditorHandler{service: service}
}

func (h *EditorHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/editor/sessions", h.Open)
	g.GET("/editor/sessions/:id", h.Get)
	g.PUT("/editor/sessions/:id/text", h.Edit)
	g.POST("/editor/sessions/:id/correct", h.CorrectNow)
	g.DELETE("/editor/sessions/:id", h.Close)
}

type openSessionRequest struct {
	EntryID string `json:"entryId"`
}

type editTextRequest struct {
	Text string `json:"text"`
}

type sessionResponse struct {
	service.EditorSession
	CorrectionHTML string `json:"correctionHtml"`
}

func toSessionResponse(s service.EditorSession) sessionResponse {
	return sessionResponse{EditorSession: s, CorrectionHTML: render.FormatBody(s.Correction)}
}

// Open starts an editor session.
// @Summary Open editor session
// @Description Start live correction for a new text or for an existing entry
// @Tags editor
// @Accept json
// @Produce json
// @Param session body openSessionRequest false "Entry to edit"
// @Success 201 {object} sessionResponse
// @Failure 404 {object} errorResponse
// @Router /editor/sessions [post]
func (h *EditorHandler) Open(c echo.Context) error {
	var req openSessionRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, msgInvalid)
	}
	sess, err := h.service.Open(c.Request().Context(), req.EntryID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, toSessionResponse(sess))
}

// Get returns the session state.
// @Summary Get editor session
// @Tags editor
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} sessionResponse
// @Failure 404 {object} errorResponse
// @Router /editor/sessions/{id} [get]
func (h *EditorHandler) Get(c echo.Context) error {
	sess, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toSessionResponse(sess))
}

// Edit records the current editor text.
// @Summary Update editor text
// @Description Restarts the quiet interval; a correction is requested once typing pauses
// @Tags editor
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param text body editTextRequest true "Current text"
// @Success 200 {object} sessionResponse
// @Failure 404 {object} errorResponse
// @Router /editor/sessions/{id}/text [put]
func (h *EditorHandler) Edit(c echo.Context) error {
	var req editTextRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, msgInvalid)
	}
	sess, err := h.service.Edit(c.Request().Context(), c.Param("id"), req.Text)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toSessionResponse(sess))
}

// CorrectNow requests a correction without waiting for a pause.
// @Summary Correct now
// @Tags editor
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} sessionResponse
// @Failure 404 {object} errorResponse
// @Router /editor/sessions/{id}/correct [post]
func (h *EditorHandler) CorrectNow(c echo.Context) error {
	sess, err := h.service.CorrectNow(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toSessionResponse(sess))
}

// Close ends a session.
// @Summary Close editor session
// @Tags editor
// @Param id path string true "Session ID"
// @Success 204
// @Failure 404 {object} errorResponse
// @Router /editor/sessions/{id} [delete]
func (h *EditorHandler) Close(c echo.Context) error {
	if err := h.service.Close(c.Request().Context(), c.Param("id")); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

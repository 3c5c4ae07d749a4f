package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"tagebuch/internal/model"
	"tagebuch/internal/render"
	"tagebuch/internal/service"
)

type EntryHandler struct {
	service  service.EntryService
	location *time.Location
}

// NewEntryHandler creates the handler. Date labels are rendered in loc.
func NewEntryHandler(service service.EntryService, loc *time.Location) *EntryHandler {
	if loc == nil {
		loc = time.Local
	}
	return &EntryHandler{service: service, location: loc}
}

func (h *EntryHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/entries", h.List)
	g.GET("/entries/:id", h.GetByID)
	g.POST("/entries", h.Create)
	g.PUT("/entries/:id", h.Update)
	g.DELETE("/entries/:id", h.Delete)
}

type entryResponse struct {
	ID             string  `json:"id"`
	Title          string  `json:"title"`
	Body           string  `json:"body"`
	Correction     string  `json:"correction,omitempty"`
	Image          string  `json:"image,omitempty"`
	CreatedAt      string  `json:"createdAt"`
	UpdatedAt      *string `json:"updatedAt,omitempty"`
	DisplayTitle   string  `json:"displayTitle"`
	DateLabel      string  `json:"dateLabel"`
	BodyHTML       string  `json:"bodyHtml"`
	CorrectionHTML string  `json:"correctionHtml,omitempty"`
}

type entryListResponse struct {
	Entries []entryResponse `json:"entries"`
}

// entryRequest is the JSON body for create and update. Image is a data URL.
type entryRequest struct {
	Title       *string `json:"title"`
	Body        *string `json:"body"`
	Correction  *string `json:"correction"`
	Image       string  `json:"image"`
	KeepImage   bool    `json:"keepImage"`
	RemoveImage bool    `json:"removeImage"`
}

// List returns all entries.
// @Summary List entries
// @Description Get all diary entries, newest first
// @Tags entries
// @Produce json
// @Success 200 {object} entryListResponse
// @Failure 500 {object} errorResponse
// @Router /entries [get]
func (h *EntryHandler) List(c echo.Context) error {
	entries, err := h.service.List(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}
	resp := entryListResponse{Entries: make([]entryResponse, 0, len(entries))}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, h.toEntryResponse(e))
	}
	return c.JSON(http.StatusOK, resp)
}

// GetByID returns a single entry.
// @Summary Get entry
// @Tags entries
// @Produce json
// @Param id path string true "Entry ID"
// @Success 200 {object} entryResponse
// @Failure 404 {object} errorResponse
// @Router /entries/{id} [get]
func (h *EntryHandler) GetByID(c echo.Context) error {
	entry, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, h.toEntryResponse(entry))
}

// Create adds an entry.
// @Summary Create entry
// @Description Create an entry from JSON (image as data URL) or multipart form data (image as file)
// @Tags entries
// @Accept json,mpfd
// @Produce json
// @Param entry body entryRequest true "Entry"
// @Success 201 {object} entryResponse
// @Failure 400 {object} errorResponse
// @Router /entries [post]
func (h *EntryHandler) Create(c echo.Context) error {
	req, image, cleanup, err := h.parseRequest(c)
	if err != nil {
		return Error(c, http.StatusBadRequest, msgInvalid)
	}
	defer cleanup()

	entry, err := h.service.Create(c.Request().Context(), service.EntryInput{
		Title:      deref(req.Title),
		Body:       deref(req.Body),
		Correction: deref(req.Correction),
		Image:      image,
	})
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, h.toEntryResponse(entry))
}

// Update changes an entry. Unknown ids are ignored.
// @Summary Update entry
// @Description Omitted fields keep their value. keepImage preserves the stored image even if a new one is sent.
// @Tags entries
// @Accept json,mpfd
// @Produce json
// @Param id path string true "Entry ID"
// @Param entry body entryRequest true "Entry"
// @Success 200 {object} entryResponse
// @Success 204 "Entry does not exist"
// @Failure 400 {object} errorResponse
// @Router /entries/{id} [put]
func (h *EntryHandler) Update(c echo.Context) error {
	req, image, cleanup, err := h.parseRequest(c)
	if err != nil {
		return Error(c, http.StatusBadRequest, msgInvalid)
	}
	defer cleanup()

	entry, ok, err := h.service.Update(c.Request().Context(), c.Param("id"), service.EntryPatch{
		Title:       req.Title,
		Body:        req.Body,
		Correction:  req.Correction,
		Image:       image,
		KeepImage:   req.KeepImage,
		RemoveImage: req.RemoveImage,
	})
	if err != nil {
		return writeServiceError(c, err)
	}
	if !ok {
		return c.NoContent(http.StatusNoContent)
	}
	return c.JSON(http.StatusOK, h.toEntryResponse(entry))
}

// Delete removes an entry after confirmation.
// @Summary Delete entry
// @Description Requires confirm=true; without it the response carries the confirmation question
// @Tags entries
// @Param id path string true "Entry ID"
// @Param confirm query bool true "User confirmed the deletion"
// @Success 204
// @Failure 409 {object} errorResponse
// @Router /entries/{id} [delete]
func (h *EntryHandler) Delete(c echo.Context) error {
	ctx := service.WithDeleteConfirmation(c.Request().Context(), queryBool(c, "confirm"))
	if err := h.service.Delete(ctx, c.Param("id")); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// parseRequest reads a JSON or multipart body. cleanup closes an uploaded file.
func (h *EntryHandler) parseRequest(c echo.Context) (entryRequest, *service.ImageUpload, func(), error) {
	noop := func() {}
	var req entryRequest

	if !isMultipart(c) {
		if err := c.Bind(&req); err != nil {
			return req, nil, noop, err
		}
		if req.Image == "" {
			return req, nil, noop, nil
		}
		return req, &service.ImageUpload{DataURL: req.Image}, noop, nil
	}

	form, err := c.MultipartForm()
	if err != nil {
		return req, nil, noop, err
	}
	req.Title = formValue(form, "title")
	req.Body = formValue(form, "body")
	req.Correction = formValue(form, "correction")
	req.KeepImage = formBool(form, "keepImage")
	req.RemoveImage = formBool(form, "removeImage")

	fh, err := formFile(c, "image")
	if err != nil || fh == nil {
		return req, nil, noop, err
	}
	f, err := fh.Open()
	if err != nil {
		return req, nil, noop, err
	}
	upload := &service.ImageUpload{
		Reader:      f,
		ContentType: fh.Header.Get(echo.HeaderContentType),
		Filename:    fh.Filename,
	}
	return req, upload, func() { _ = f.Close() }, nil
}

func (h *EntryHandler) toEntryResponse(e model.Entry) entryResponse {
	resp := entryResponse{
		ID:             e.ID,
		Title:          e.Title,
		Body:           e.Body,
		Correction:     e.Correction,
		Image:          e.Image,
		CreatedAt:      e.CreatedAt.Format(time.RFC3339),
		DisplayTitle:   render.DisplayTitle(e.Title),
		DateLabel:      render.FormatDate(e.CreatedAt, h.location),
		BodyHTML:       render.FormatBody(e.Body),
		CorrectionHTML: render.FormatBody(e.Correction),
	}
	if e.UpdatedAt != nil {
		s := e.UpdatedAt.Format(time.RFC3339)
		resp.UpdatedAt = &s
	}
	return resp
}

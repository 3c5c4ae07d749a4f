package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"tagebuch/internal/logger"
	"tagebuch/internal/service"
)

type SettingsHandler struct {
	service     service.SettingsService
	corrections service.CorrectionService
}

// Request/Response types

type correctionSettingsResponse struct {
	Provider  string `json:"provider"`
	APIKey    string `json:"apiKey"`
	BaseURL   string `json:"baseUrl"`
	Model     string `json:"model"`
	RateLimit int    `json:"rateLimit"`
	Mode      string `json:"mode"`
}

type correctionSettingsRequest struct {
	Provider  string `json:"provider"`
	APIKey    string `json:"apiKey"`
	BaseURL   string `json:"baseUrl"`
	Model     string `json:"model"`
	RateLimit int    `json:"rateLimit"`
}

type correctionTestResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

func NewSettingsHandler(service service.SettingsService, corrections service.CorrectionService) *SettingsHandler {
	return &SettingsHandler{service: service, corrections: corrections}
}

func (h *SettingsHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/settings/correction", h.GetCorrectionSettings)
	g.PUT("/settings/correction", h.UpdateCorrectionSettings)
	g.DELETE("/settings/correction/api-key", h.ClearAPIKey)
	g.POST("/settings/correction/test", h.TestCorrection)
	g.GET("/settings/correction/status", h.GetStatus)
	g.POST("/settings/correction/init", h.InitLocal)
}

// GetCorrectionSettings returns the correction provider configuration.
// @Summary Get correction settings
// @Description Get the remote provider configuration with a masked API key
// @Tags settings
// @Produce json
// @Success 200 {object} correctionSettingsResponse
// @Failure 500 {object} errorResponse
// @Router /settings/correction [get]
func (h *SettingsHandler) GetCorrectionSettings(c echo.Context) error {
	settings, err := h.service.GetCorrectionSettings(c.Request().Context())
	if err != nil {
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "Einstellungen konnten nicht gelesen werden."})
	}

	return c.JSON(http.StatusOK, correctionSettingsResponse{
		Provider:  settings.Provider,
		APIKey:    settings.APIKey,
		BaseURL:   settings.BaseURL,
		Model:     settings.Model,
		RateLimit: settings.RateLimit,
		Mode:      settings.Mode,
	})
}

// UpdateCorrectionSettings updates the correction provider configuration.
// @Summary Update correction settings
// @Description Empty or masked apiKey keeps the existing key.
// @Tags settings
// @Accept json
// @Produce json
// @Param settings body correctionSettingsRequest true "Correction settings"
// @Success 200 {object} correctionSettingsResponse
// @Failure 400 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /settings/correction [put]
func (h *SettingsHandler) UpdateCorrectionSettings(c echo.Context) error {
	var req correctionSettingsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: msgInvalid})
	}

	err := h.service.SetCorrectionSettings(c.Request().Context(), &service.CorrectionSettings{
		Provider:  req.Provider,
		APIKey:    req.APIKey,
		BaseURL:   req.BaseURL,
		Model:     req.Model,
		RateLimit: req.RateLimit,
	})
	if err != nil {
		return writeServiceError(c, err)
	}

	// Return updated settings (with masked key)
	return h.GetCorrectionSettings(c)
}

// ClearAPIKey removes the stored API key.
// @Summary Clear API key
// @Tags settings
// @Success 204
// @Failure 500 {object} errorResponse
// @Router /settings/correction/api-key [delete]
func (h *SettingsHandler) ClearAPIKey(c echo.Context) error {
	if err := h.service.ClearAPIKey(c.Request().Context()); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// TestCorrection runs a sample correction.
// @Summary Test correction provider
// @Description Without a body the active provider is tested, otherwise the given configuration
// @Tags settings
// @Accept json
// @Produce json
// @Param config body correctionSettingsRequest false "Provider configuration"
// @Success 200 {object} correctionTestResponse
// @Failure 400 {object} errorResponse
// @Router /settings/correction/test [post]
func (h *SettingsHandler) TestCorrection(c echo.Context) error {
	var req correctionSettingsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: msgInvalid})
	}

	var settings *service.CorrectionSettings
	if req != (correctionSettingsRequest{}) {
		if req.Model == "" {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "Bitte gib ein Modell an."})
		}
		settings = &service.CorrectionSettings{
			Provider: req.Provider,
			APIKey:   req.APIKey,
			BaseURL:  req.BaseURL,
			Model:    req.Model,
		}
	}

	response, err := h.service.TestCorrection(c.Request().Context(), settings)
	if err != nil {
		return c.JSON(http.StatusOK, correctionTestResponse{
			Success: false,
			Error:   err.Error(),
		})
	}

	return c.JSON(http.StatusOK, correctionTestResponse{
		Success: true,
		Message: response,
	})
}

// GetStatus reports provider readiness.
// @Summary Get provider status
// @Tags settings
// @Produce json
// @Success 200 {object} service.ProviderStatus
// @Failure 500 {object} errorResponse
// @Router /settings/correction/status [get]
func (h *SettingsHandler) GetStatus(c echo.Context) error {
	st, err := h.service.ProviderStatus(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, st)
}

// InitLocal starts loading the local model and returns at once.
// @Summary Initialize local model
// @Description Starts loading the local model; poll the status endpoint for progress
// @Tags settings
// @Produce json
// @Success 202 {object} service.ProviderStatus
// @Failure 400 {object} errorResponse
// @Router /settings/correction/init [post]
func (h *SettingsHandler) InitLocal(c echo.Context) error {
	ctx := c.Request().Context()
	st, err := h.service.ProviderStatus(ctx)
	if err != nil {
		return writeServiceError(c, err)
	}
	if st.Mode != service.ModeLocal {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "Kein lokales Modell konfiguriert."})
	}

	go func() {
		if err := h.corrections.InitLocal(context.WithoutCancel(ctx)); err != nil {
			logger.Warn("local model init failed", "module", "handler", "action", "init", "resource", "provider", "result", "failed", "error", err)
		}
	}()
	return c.JSON(http.StatusAccepted, st)
}

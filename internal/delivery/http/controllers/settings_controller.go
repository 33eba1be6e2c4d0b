package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"bugninjaplatform/internal/delivery/http/helpers"
	"bugninjaplatform/internal/domain"
)

// BrowserConfigRequest is the request body for browser configuration create and update.
type BrowserConfigRequest domain.BrowserConfigInput

// Validate implements Validator.
func (b BrowserConfigRequest) Validate() []string {
	var errs []string
	if b.Viewport.Width < 0 || b.Viewport.Height < 0 {
		errs = append(errs, "viewport must not be negative")
	}
	return errs
}

// SecretRequest is the request body for secret create and update.
type SecretRequest domain.SecretInput

// Validate implements Validator.
func (s SecretRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(s.Name) == "" {
		errs = append(errs, "name is required")
	}
	if s.Value == "" {
		errs = append(errs, "value is required")
	}
	return errs
}

// BrowserConfigListSuccessResponse is the success response envelope for GET /settings/browser-configs (200).
type BrowserConfigListSuccessResponse struct {
	Data  []domain.BrowserConfig `json:"data"`
	Error *helpers.APIError      `json:"error"`
}

// BrowserConfigSuccessResponse is the success response envelope for a single browser configuration.
type BrowserConfigSuccessResponse struct {
	Data  *domain.BrowserConfig `json:"data"`
	Error *helpers.APIError     `json:"error"`
}

// SecretListSuccessResponse is the success response envelope for GET /settings/secrets (200).
type SecretListSuccessResponse struct {
	Data  []domain.Secret   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// SecretSuccessResponse is the success response envelope for a single secret.
type SecretSuccessResponse struct {
	Data  *domain.Secret    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type SettingsController struct {
	Logger  *slog.Logger
	Service domain.SettingsService
}

func NewSettingsController(logger *slog.Logger, svc domain.SettingsService) *SettingsController {
	return &SettingsController{
		Logger:  logger,
		Service: svc,
	}
}

// ListBrowserConfigs godoc
// @Summary List browser configurations of the selected project
// @Tags settings
// @Produce json
// @Success 200 {object} controllers.BrowserConfigListSuccessResponse
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (no project selected)"
// @Router /settings/browser-configs [get]
func (c *SettingsController) ListBrowserConfigs(w http.ResponseWriter, r *http.Request) {
	list, err := c.Service.ListBrowserConfigs(r.Context())
	if err != nil {
		writeError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, list)
}

// CreateBrowserConfig godoc
// @Summary Create a browser configuration
// @Tags settings
// @Accept json
// @Produce json
// @Param config body BrowserConfigRequest true "Browser configuration"
// @Success 201 {object} controllers.BrowserConfigSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /settings/browser-configs [post]
func (c *SettingsController) CreateBrowserConfig(w http.ResponseWriter, r *http.Request) {
	var req BrowserConfigRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	bc, err := c.Service.CreateBrowserConfig(r.Context(), domain.BrowserConfigInput(req))
	if err != nil {
		writeError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, bc)
}

// UpdateBrowserConfig godoc
// @Summary Update a browser configuration
// @Tags settings
// @Accept json
// @Produce json
// @Param configID path string true "Browser configuration ID"
// @Param config body BrowserConfigRequest true "Browser configuration"
// @Success 200 {object} controllers.BrowserConfigSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /settings/browser-configs/{configID} [put]
func (c *SettingsController) UpdateBrowserConfig(w http.ResponseWriter, r *http.Request) {
	configID := r.PathValue("configID")
	if configID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing configID")
		return
	}
	var req BrowserConfigRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	bc, err := c.Service.UpdateBrowserConfig(r.Context(), configID, domain.BrowserConfigInput(req))
	if err != nil {
		writeError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, bc)
}

// DeleteBrowserConfig godoc
// @Summary Delete a browser configuration
// @Tags settings
// @Produce json
// @Param configID path string true "Browser configuration ID"
// @Success 200 {object} controllers.DeleteSuccessResponse
// @Router /settings/browser-configs/{configID} [delete]
func (c *SettingsController) DeleteBrowserConfig(w http.ResponseWriter, r *http.Request) {
	configID := r.PathValue("configID")
	if configID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing configID")
		return
	}
	if err := c.Service.DeleteBrowserConfig(r.Context(), configID); err != nil {
		writeError(c.Logger, w, r, err)
		return
	}
	writeDeleted(w)
}

// ListSecrets godoc
// @Summary List secrets of the selected project
// @Tags settings
// @Produce json
// @Success 200 {object} controllers.SecretListSuccessResponse
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (no project selected)"
// @Router /settings/secrets [get]
func (c *SettingsController) ListSecrets(w http.ResponseWriter, r *http.Request) {
	list, err := c.Service.ListSecrets(r.Context())
	if err != nil {
		writeError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, list)
}

// CreateSecret godoc
// @Summary Create a secret
// @Tags settings
// @Accept json
// @Produce json
// @Param secret body SecretRequest true "Secret"
// @Success 201 {object} controllers.SecretSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /settings/secrets [post]
func (c *SettingsController) CreateSecret(w http.ResponseWriter, r *http.Request) {
	var req SecretRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	s, err := c.Service.CreateSecret(r.Context(), domain.SecretInput(req))
	if err != nil {
		writeError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, s)
}

// UpdateSecret godoc
// @Summary Update a secret
// @Tags settings
// @Accept json
// @Produce json
// @Param secretID path string true "Secret ID"
// @Param secret body SecretRequest true "Secret"
// @Success 200 {object} controllers.SecretSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /settings/secrets/{secretID} [put]
func (c *SettingsController) UpdateSecret(w http.ResponseWriter, r *http.Request) {
	secretID := r.PathValue("secretID")
	if secretID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing secretID")
		return
	}
	var req SecretRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	s, err := c.Service.UpdateSecret(r.Context(), secretID, domain.SecretInput(req))
	if err != nil {
		writeError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, s)
}

// DeleteSecret godoc
// @Summary Delete a secret
// @Tags settings
// @Produce json
// @Param secretID path string true "Secret ID"
// @Success 200 {object} controllers.DeleteSuccessResponse
// @Router /settings/secrets/{secretID} [delete]
func (c *SettingsController) DeleteSecret(w http.ResponseWriter, r *http.Request) {
	secretID := r.PathValue("secretID")
	if secretID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing secretID")
		return
	}
	if err := c.Service.DeleteSecret(r.Context(), secretID); err != nil {
		writeError(c.Logger, w, r, err)
		return
	}
	writeDeleted(w)
}

package handlers

import (
	"net/http"
	"strings"

	"github.com/tvandenberg/portfolio-tracker/internal/api/request"
	"github.com/tvandenberg/portfolio-tracker/internal/api/response"
	"github.com/tvandenberg/portfolio-tracker/internal/apperrors"
	"github.com/tvandenberg/portfolio-tracker/internal/service"
)

// SettingsHandler handles settings-related HTTP requests
type SettingsHandler struct {
	settingsService *service.SettingsService
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{
		settingsService: settingsService,
	}
}

// UpdateMarketDataKey handles PUT requests to store the market-data provider
// API key. The key is encrypted at rest and never returned by the API.
//
// Endpoint: PUT /api/settings/marketdata-key
// Request Body: UpdateMarketDataKeyRequest (apiKey)
// Response: 204 No Content on success
// Error: 400 Bad Request if the request body is invalid or the key is empty
// Error: 500 Internal Server Error if storage fails
func (h *SettingsHandler) UpdateMarketDataKey(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.UpdateMarketDataKeyRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if strings.TrimSpace(req.APIKey) == "" {
		response.RespondError(w, http.StatusBadRequest, "validation failed", "apiKey is required")
		return
	}

	if err := h.settingsService.SetMarketDataAPIKey(r.Context(), req.APIKey); err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToStoreSetting.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/tvandenberg/portfolio-tracker/internal/api/request"
	"github.com/tvandenberg/portfolio-tracker/internal/api/response"
	"github.com/tvandenberg/portfolio-tracker/internal/apperrors"
	"github.com/tvandenberg/portfolio-tracker/internal/service"
	"github.com/tvandenberg/portfolio-tracker/internal/validation"
)

// FxHandler handles exchange-rate HTTP requests
type FxHandler struct {
	fxService *service.FxService
}

// NewFxHandler creates a new FxHandler
func NewFxHandler(fxService *service.FxService) *FxHandler {
	return &FxHandler{
		fxService: fxService,
	}
}

// Rates handles GET requests to list the exchange-rate table.
//
// Endpoint: GET /api/fx
// Response: 200 OK with array of ExchangeRate
// Error: 500 Internal Server Error if retrieval fails
func (h *FxHandler) Rates(w http.ResponseWriter, _ *http.Request) {
	rates, err := h.fxService.GetRates()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveRates.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, rates)
}

// UpdateRate handles PUT requests to manually set the multiplier for a
// display currency.
//
// Endpoint: PUT /api/fx/{currency}
// Request Body: UpdateExchangeRateRequest (rate)
// Response: 200 OK with updated ExchangeRate
// Error: 400 Bad Request if the currency code or rate is invalid
// Error: 500 Internal Server Error if the update fails
func (h *FxHandler) UpdateRate(w http.ResponseWriter, r *http.Request) {
	currency := strings.ToUpper(chi.URLParam(r, "currency"))

	if err := validation.ValidateCurrency(currency); err != nil {
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidCurrency.Error(), err.Error())
		return
	}

	req, err := parseJSON[request.UpdateExchangeRateRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateExchangeRate(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	rate, err := h.fxService.UpdateRate(r.Context(), currency, req.Rate)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToUpdateRate.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, rate)
}

// Refresh handles POST requests to refetch every stored rate from the
// market-data provider.
//
// Endpoint: POST /api/fx/refresh
// Response: 200 OK with RefreshResponse
// Error: 500 Internal Server Error if the pass fails outright
func (h *FxHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	refreshed, err := h.fxService.RefreshAll(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRefreshRates.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, RefreshResponse{Refreshed: refreshed})
}

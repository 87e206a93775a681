package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/tvandenberg/portfolio-tracker/internal/api/response"
	"github.com/tvandenberg/portfolio-tracker/internal/apperrors"
	"github.com/tvandenberg/portfolio-tracker/internal/service"
)

// QuoteHandler handles quote-cache HTTP requests
type QuoteHandler struct {
	quoteService *service.QuoteService
}

// NewQuoteHandler creates a new QuoteHandler
func NewQuoteHandler(quoteService *service.QuoteService) *QuoteHandler {
	return &QuoteHandler{
		quoteService: quoteService,
	}
}

// RefreshResponse reports the outcome of a manual refresh pass.
type RefreshResponse struct {
	Refreshed int `json:"refreshed"`
}

// Refresh handles POST requests to refresh the quote cache for every held
// symbol. Symbols the provider cannot serve are skipped; the response counts
// only successful refreshes.
//
// Endpoint: POST /api/quote/refresh
// Response: 200 OK with RefreshResponse
// Error: 500 Internal Server Error if the pass fails outright
func (h *QuoteHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	refreshed, err := h.quoteService.RefreshAll(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRefreshQuotes.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, RefreshResponse{Refreshed: refreshed})
}

// GetQuote handles GET requests to read the cached quote for a symbol.
//
// Endpoint: GET /api/quote/{symbol}
// Response: 200 OK with Quote
// Error: 404 Not Found if no quote is cached for the symbol
// Error: 500 Internal Server Error if retrieval fails
func (h *QuoteHandler) GetQuote(w http.ResponseWriter, r *http.Request) {
	symbol := strings.ToUpper(chi.URLParam(r, "symbol"))

	quote, err := h.quoteService.GetQuote(symbol)
	if err != nil {
		if errors.Is(err, apperrors.ErrQuoteNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrQuoteNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve quote", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, quote)
}

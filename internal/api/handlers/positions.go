package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tvandenberg/portfolio-tracker/internal/api/request"
	"github.com/tvandenberg/portfolio-tracker/internal/api/response"
	"github.com/tvandenberg/portfolio-tracker/internal/apperrors"
	"github.com/tvandenberg/portfolio-tracker/internal/model"
	"github.com/tvandenberg/portfolio-tracker/internal/service"
	"github.com/tvandenberg/portfolio-tracker/internal/validation"
)

// PositionHandler handles position-related HTTP requests
type PositionHandler struct {
	positionService  *service.PositionService
	portfolioService *service.PortfolioService
}

// NewPositionHandler creates a new PositionHandler
func NewPositionHandler(positionService *service.PositionService, portfolioService *service.PortfolioService) *PositionHandler {
	return &PositionHandler{
		positionService:  positionService,
		portfolioService: portfolioService,
	}
}

// PositionsPerPortfolio handles GET requests to list a portfolio's positions
// with their current valuations.
//
// Endpoint: GET /api/portfolio/{uuid}/position
// Response: 200 OK with array of PositionValuation
// Error: 400 Bad Request if portfolio ID is invalid (validated by middleware)
// Error: 404 Not Found if portfolio not found
// Error: 500 Internal Server Error if retrieval fails
func (h *PositionHandler) PositionsPerPortfolio(w http.ResponseWriter, r *http.Request) {
	portfolioID := chi.URLParam(r, "uuid")

	if _, err := h.portfolioService.GetPortfolio(portfolioID); err != nil {
		if errors.Is(err, apperrors.ErrPortfolioNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrPortfolioNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrievePositions.Error(), err.Error())
		return
	}

	valuated, err := h.positionService.ValuatePositions(portfolioID)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrievePositions.Error(), err.Error())
		return
	}

	positions := make([]model.PositionValuation, len(valuated))
	for i, v := range valuated {
		positions[i] = v.Response
	}

	response.RespondJSON(w, http.StatusOK, positions)
}

// CreatePosition handles POST requests to add a position to a portfolio.
//
// Endpoint: POST /api/portfolio/{uuid}/position
// Request Body: CreatePositionRequest (symbol, name, currency)
// Response: 201 Created with Position
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 404 Not Found if portfolio not found
// Error: 500 Internal Server Error if creation fails
func (h *PositionHandler) CreatePosition(w http.ResponseWriter, r *http.Request) {
	portfolioID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.CreatePositionRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreatePosition(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	if _, err := h.portfolioService.GetPortfolio(portfolioID); err != nil {
		if errors.Is(err, apperrors.ErrPortfolioNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrPortfolioNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to create position", err.Error())
		return
	}

	position, err := h.positionService.CreatePosition(r.Context(), portfolioID, req.Symbol, req.Name, req.Currency)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to create position", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, position)
}

// GetPosition handles GET requests to retrieve a single position with its
// current valuation.
//
// Endpoint: GET /api/position/{uuid}
// Response: 200 OK with PositionValuation
// Error: 400 Bad Request if position ID is invalid (validated by middleware)
// Error: 404 Not Found if position not found
// Error: 500 Internal Server Error if retrieval fails
func (h *PositionHandler) GetPosition(w http.ResponseWriter, r *http.Request) {
	positionID := chi.URLParam(r, "uuid")

	valuated, err := h.positionService.ValuatePosition(positionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrPositionNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrPositionNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrievePositions.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, valuated.Response)
}

// DeletePosition handles DELETE requests to remove a position and its
// transactions.
//
// Endpoint: DELETE /api/position/{uuid}
// Response: 204 No Content on successful deletion
// Error: 400 Bad Request if position ID is invalid (validated by middleware)
// Error: 404 Not Found if position not found
// Error: 500 Internal Server Error if deletion fails
func (h *PositionHandler) DeletePosition(w http.ResponseWriter, r *http.Request) {
	positionID := chi.URLParam(r, "uuid")

	err := h.positionService.DeletePosition(r.Context(), positionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrPositionNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrPositionNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to delete position", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

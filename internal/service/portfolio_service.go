package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tvandenberg/portfolio-tracker/internal/apperrors"
	"github.com/tvandenberg/portfolio-tracker/internal/ledger"
	"github.com/tvandenberg/portfolio-tracker/internal/model"
	"github.com/tvandenberg/portfolio-tracker/internal/repository"
)

// PortfolioService handles portfolio-related business logic operations.
// It coordinates the repositories and the ledger engine to compute portfolio
// summaries and chart allocations: transactions and cached quotes are loaded
// here, folded through the pure ledger functions, and returned as rounded
// API-facing figures.
type PortfolioService struct {
	portfolioRepo   *repository.PortfolioRepository
	positionService *PositionService
	fxService       *FxService
}

// NewPortfolioService creates a new PortfolioService with the provided dependencies.
func NewPortfolioService(
	portfolioRepo *repository.PortfolioRepository,
	positionService *PositionService,
	fxService *FxService,
) *PortfolioService {
	return &PortfolioService{
		portfolioRepo:   portfolioRepo,
		positionService: positionService,
		fxService:       fxService,
	}
}

// GetAllPortfolios retrieves all portfolios.
func (s *PortfolioService) GetAllPortfolios() ([]model.Portfolio, error) {
	return s.portfolioRepo.GetPortfolios()
}

// GetPortfolio retrieves a single portfolio by its ID.
func (s *PortfolioService) GetPortfolio(portfolioID string) (model.Portfolio, error) {
	return s.portfolioRepo.GetPortfolioOnID(portfolioID)
}

// CreatePortfolio stores a new named portfolio.
func (s *PortfolioService) CreatePortfolio(ctx context.Context, name, description string) (*model.Portfolio, error) {
	portfolio := &model.Portfolio{
		ID:          uuid.New().String(),
		Name:        name,
		Description: description,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.portfolioRepo.InsertPortfolio(ctx, portfolio); err != nil {
		return nil, fmt.Errorf("failed to create portfolio: %w", err)
	}

	return portfolio, nil
}

// UpdatePortfolio renames a portfolio and/or replaces its description.
// Unset request fields keep their current values.
func (s *PortfolioService) UpdatePortfolio(ctx context.Context, portfolioID string, name, description *string) (model.Portfolio, error) {
	portfolio, err := s.portfolioRepo.GetPortfolioOnID(portfolioID)
	if err != nil {
		return model.Portfolio{}, err
	}

	if name != nil {
		portfolio.Name = *name
	}
	if description != nil {
		portfolio.Description = *description
	}

	if err := s.portfolioRepo.UpdatePortfolio(ctx, &portfolio); err != nil {
		return model.Portfolio{}, fmt.Errorf("failed to update portfolio: %w", err)
	}

	return portfolio, nil
}

// DeletePortfolio removes a portfolio with its positions and transactions.
// Deleting the only remaining portfolio is rejected with ErrLastPortfolio:
// a user who has any portfolios must always keep at least one.
func (s *PortfolioService) DeletePortfolio(ctx context.Context, portfolioID string) error {
	count, err := s.portfolioRepo.CountPortfolios()
	if err != nil {
		return err
	}
	if count <= 1 {
		return apperrors.ErrLastPortfolio
	}

	return s.portfolioRepo.DeletePortfolio(ctx, portfolioID)
}

// GetPortfolioSummary computes the aggregated state of a portfolio in the
// requested display currency.
//
// Per-position valuations are computed in each position's native currency by
// replaying its transactions through the ledger against the cached quote.
// The portfolio totals are then converted with a single exchange rate
// resolved once for this pass — individual positions are not converted, so
// the per-position figures in the response remain native-currency.
//
// An empty currency selects the base currency (rate 1).
func (s *PortfolioService) GetPortfolioSummary(portfolioID, currency string) (model.PortfolioSummary, error) {
	portfolio, err := s.portfolioRepo.GetPortfolioOnID(portfolioID)
	if err != nil {
		return model.PortfolioSummary{}, err
	}

	currency, rate, err := s.fxService.ResolveRate(currency)
	if err != nil {
		return model.PortfolioSummary{}, err
	}

	valuated, err := s.positionService.ValuatePositions(portfolioID)
	if err != nil {
		return model.PortfolioSummary{}, err
	}

	valuations := make([]ledger.Valuation, len(valuated))
	responses := make([]model.PositionValuation, len(valuated))
	for i, v := range valuated {
		valuations[i] = v.Valuation
		responses[i] = v.Response
	}

	totals := ledger.Aggregate(valuations, rate)

	return model.PortfolioSummary{
		ID:                 portfolio.ID,
		Name:               portfolio.Name,
		Currency:           currency,
		ExchangeRate:       rate,
		TotalValue:         round(totals.TotalValue),
		TotalCost:          round(totals.TotalCost),
		TotalProfit:        round(totals.TotalProfit),
		TotalProfitPercent: round(totals.TotalProfitPercent),
		DayChangeValue:     round(totals.DayChangeValue),
		RealizedGain:       round(totals.RealizedGain),
		Positions:          responses,
	}, nil
}

// GetPortfolioAllocation projects a portfolio's positions onto the selected
// chart metric. Allocation slices are relative weights, so they stay in
// native-currency figures; only the portfolio totals endpoint converts.
func (s *PortfolioService) GetPortfolioAllocation(portfolioID string, metric ledger.Metric) (ledger.Allocation, error) {
	if _, err := s.portfolioRepo.GetPortfolioOnID(portfolioID); err != nil {
		return ledger.Allocation{}, err
	}

	valuated, err := s.positionService.ValuatePositions(portfolioID)
	if err != nil {
		return ledger.Allocation{}, err
	}

	named := make([]ledger.NamedValuation, len(valuated))
	for i, v := range valuated {
		named[i] = ledger.NamedValuation{
			PositionID: v.Response.ID,
			Symbol:     v.Response.Symbol,
			Valuation:  v.Valuation,
		}
	}

	return ledger.Project(named, metric), nil
}

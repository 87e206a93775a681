package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tvandenberg/portfolio-tracker/internal/ledger"
	"github.com/tvandenberg/portfolio-tracker/internal/model"
	"github.com/tvandenberg/portfolio-tracker/internal/repository"
)

// PositionService handles position-related business logic operations,
// including the per-position valuation pipeline: transactions are replayed
// through the ledger and combined with the cached quote for the symbol.
type PositionService struct {
	positionRepo    *repository.PositionRepository
	transactionRepo *repository.TransactionRepository
	quoteRepo       *repository.QuoteRepository
}

// NewPositionService creates a new PositionService with the provided repository dependencies.
func NewPositionService(
	positionRepo *repository.PositionRepository,
	transactionRepo *repository.TransactionRepository,
	quoteRepo *repository.QuoteRepository,
) *PositionService {
	return &PositionService{
		positionRepo:    positionRepo,
		transactionRepo: transactionRepo,
		quoteRepo:       quoteRepo,
	}
}

// ValuatedPosition pairs the raw ledger valuation (unrounded, used for
// aggregation and allocation) with the rounded API response shape.
type ValuatedPosition struct {
	Valuation ledger.Valuation
	Response  model.PositionValuation
}

// GetPosition retrieves a single position by its ID.
func (s *PositionService) GetPosition(positionID string) (model.Position, error) {
	return s.positionRepo.GetPositionOnID(positionID)
}

// GetPositionsPerPortfolio retrieves all positions of a portfolio.
func (s *PositionService) GetPositionsPerPortfolio(portfolioID string) ([]model.Position, error) {
	return s.positionRepo.GetPositionsOnPortfolioID(portfolioID)
}

// CreatePosition stores a new position in a portfolio.
func (s *PositionService) CreatePosition(ctx context.Context, portfolioID, symbol, name, currency string) (*model.Position, error) {
	position := &model.Position{
		ID:          uuid.New().String(),
		PortfolioID: portfolioID,
		Symbol:      strings.ToUpper(strings.TrimSpace(symbol)),
		Name:        name,
		Currency:    strings.ToUpper(currency),
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.positionRepo.InsertPosition(ctx, position); err != nil {
		return nil, fmt.Errorf("failed to create position: %w", err)
	}

	return position, nil
}

// DeletePosition removes a position along with its transactions.
func (s *PositionService) DeletePosition(ctx context.Context, positionID string) error {
	return s.positionRepo.DeletePosition(ctx, positionID)
}

// ValuatePosition computes the current valuation of a single position by
// replaying its transactions in stored insertion order and applying the
// cached quote for its symbol.
func (s *PositionService) ValuatePosition(positionID string) (ValuatedPosition, error) {
	position, err := s.positionRepo.GetPositionOnID(positionID)
	if err != nil {
		return ValuatedPosition{}, err
	}

	transactions, err := s.transactionRepo.GetTransactionsOnPositionID(positionID)
	if err != nil {
		return ValuatedPosition{}, err
	}

	quotes, err := s.quoteRepo.GetQuotesOnSymbols([]string{position.Symbol})
	if err != nil {
		return ValuatedPosition{}, err
	}

	return valuate(position, transactions, quotes[position.Symbol]), nil
}

// ValuatePositions computes current valuations for every position in a
// portfolio. Transactions and quotes are loaded in bulk; the ledger replay
// itself is pure and per-position.
//
// A position whose symbol has no cached quote yet is valuated against a
// zero-price quote: its market value is zero and its unrealized gain is the
// negated cost basis until the first refresh completes. Quotes and
// transactions are never assumed to be updated atomically together — each
// call simply valuates whatever state is stored right now.
func (s *PositionService) ValuatePositions(portfolioID string) ([]ValuatedPosition, error) {
	positions, err := s.positionRepo.GetPositionsOnPortfolioID(portfolioID)
	if err != nil {
		return nil, err
	}

	positionIDs := make([]string, len(positions))
	symbols := make([]string, len(positions))
	for i, p := range positions {
		positionIDs[i] = p.ID
		symbols[i] = p.Symbol
	}

	transactionsByPosition, err := s.transactionRepo.GetTransactionsOnPositionIDs(positionIDs)
	if err != nil {
		return nil, err
	}

	quotes, err := s.quoteRepo.GetQuotesOnSymbols(symbols)
	if err != nil {
		return nil, err
	}

	valuated := make([]ValuatedPosition, len(positions))
	for i, position := range positions {
		valuated[i] = valuate(position, transactionsByPosition[position.ID], quotes[position.Symbol])
	}

	return valuated, nil
}

// valuate runs the ledger over one position's transactions and builds the
// rounded response. All figures stay in the position's native currency.
func valuate(position model.Position, transactions []model.Transaction, quote model.Quote) ValuatedPosition {
	holding := ledger.Reduce(transactions)
	valuation := ledger.Valuate(holding, quote)

	averageCost := 0.0
	if holding.Shares > 0 {
		averageCost = holding.CostBasis / holding.Shares
	}

	return ValuatedPosition{
		Valuation: valuation,
		Response: model.PositionValuation{
			ID:                    position.ID,
			Symbol:                position.Symbol,
			Name:                  position.Name,
			Currency:              position.Currency,
			Shares:                valuation.Shares,
			CostBasis:             round(valuation.CostBasis),
			AverageCost:           round(averageCost),
			LatestPrice:           round(quote.CurrentPrice),
			MarketValue:           round(valuation.MarketValue),
			UnrealizedGain:        round(valuation.UnrealizedGain),
			UnrealizedGainPercent: round(valuation.UnrealizedGainPercent),
			DailyGain:             round(valuation.DailyGain),
			RealizedGain:          round(valuation.RealizedGain),
		},
	}
}

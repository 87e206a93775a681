package testutil

import (
	"database/sql"
	"math/rand"
	"testing"

	"github.com/google/uuid"

	"github.com/tvandenberg/portfolio-tracker/internal/marketdata"
	"github.com/tvandenberg/portfolio-tracker/internal/repository"
	"github.com/tvandenberg/portfolio-tracker/internal/service"
)

// DefaultBaseCurrency is the base currency used by test service constructors.
const DefaultBaseCurrency = "USD"

func NewTestPositionService(t *testing.T, db *sql.DB) *service.PositionService {
	t.Helper()

	positionRepo := repository.NewPositionRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	quoteRepo := repository.NewQuoteRepository(db)

	return service.NewPositionService(
		positionRepo,
		transactionRepo,
		quoteRepo,
	)
}

func NewTestTransactionService(t *testing.T, db *sql.DB) *service.TransactionService {
	t.Helper()

	transactionRepo := repository.NewTransactionRepository(db)
	positionRepo := repository.NewPositionRepository(db)

	return service.NewTransactionService(
		transactionRepo,
		positionRepo,
	)
}

func NewTestFxService(t *testing.T, db *sql.DB) *service.FxService {
	t.Helper()

	rateRepo := repository.NewExchangeRateRepository(db)

	return service.NewFxService(
		rateRepo,
		NewMockMarketDataClient(),
		DefaultBaseCurrency,
	)
}

// NewTestFxServiceWithClient creates an FxService backed by the given
// market-data client, for refresh tests.
func NewTestFxServiceWithClient(t *testing.T, db *sql.DB, client marketdata.Client) *service.FxService {
	t.Helper()

	rateRepo := repository.NewExchangeRateRepository(db)

	return service.NewFxService(
		rateRepo,
		client,
		DefaultBaseCurrency,
	)
}

func NewTestPortfolioService(t *testing.T, db *sql.DB) *service.PortfolioService {
	t.Helper()

	portfolioRepo := repository.NewPortfolioRepository(db)

	return service.NewPortfolioService(
		portfolioRepo,
		NewTestPositionService(t, db),
		NewTestFxService(t, db),
	)
}

func NewTestQuoteService(t *testing.T, db *sql.DB, client marketdata.Client) *service.QuoteService {
	t.Helper()

	quoteRepo := repository.NewQuoteRepository(db)
	positionRepo := repository.NewPositionRepository(db)

	return service.NewQuoteService(
		quoteRepo,
		positionRepo,
		client,
	)
}

func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()

	return service.NewSystemService(db)
}

// MakeID generates a UUID string for use in tests.
//
// Example usage:
//
//	id := testutil.MakeID()
//	// Returns: "550e8400-e29b-41d4-a716-446655440000"
func MakeID() string {
	return uuid.New().String()
}

// MakeSymbol generates a stock ticker symbol for testing.
//
// Example usage:
//
//	symbol := testutil.MakeSymbol("AAPL")
//	// Returns: "AAPL1A2B"
func MakeSymbol(base string) string {
	if base == "" {
		base = "TEST"
	}
	return base + randomAlphanumeric(4)
}

// MakePortfolioName generates a unique portfolio name for testing.
//
// Example usage:
//
//	name := testutil.MakePortfolioName("MyPortfolio")
//	// Returns: "MyPortfolio ABC123"
func MakePortfolioName(base string) string {
	if base == "" {
		base = "Portfolio"
	}
	return base + " " + randomAlphanumeric(6)
}

// randomAlphanumeric generates a random alphanumeric string of specified length.
func randomAlphanumeric(length int) string {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	result := make([]byte, length)
	for i := range result {
		//nolint:gosec // G404: Using math/rand for test data generation is acceptable
		result[i] = charset[rand.Intn(len(charset))]
	}
	return string(result)
}

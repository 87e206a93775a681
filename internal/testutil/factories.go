package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/tvandenberg/portfolio-tracker/internal/model"
)

// PortfolioBuilder provides a fluent interface for creating test portfolios.
//
// Example usage:
//
//	// Simple creation with defaults
//	portfolio := testutil.NewPortfolio().Build(t, db)
//
//	// Customized portfolio
//	portfolio := testutil.NewPortfolio().
//	    WithName("Custom Portfolio").
//	    WithDescription("My description").
//	    Build(t, db)
type PortfolioBuilder struct {
	ID          string
	Name        string
	Description string
}

// NewPortfolio creates a PortfolioBuilder with sensible defaults.
func NewPortfolio() *PortfolioBuilder {
	return &PortfolioBuilder{
		ID:          MakeID(),
		Name:        MakePortfolioName("Test Portfolio"),
		Description: "Test description",
	}
}

// WithID sets a custom ID.
func (b *PortfolioBuilder) WithID(id string) *PortfolioBuilder {
	b.ID = id
	return b
}

// WithName sets a custom name.
func (b *PortfolioBuilder) WithName(name string) *PortfolioBuilder {
	b.Name = name
	return b
}

// WithDescription sets a custom description.
func (b *PortfolioBuilder) WithDescription(desc string) *PortfolioBuilder {
	b.Description = desc
	return b
}

// Build creates the portfolio in the database and returns it.
func (b *PortfolioBuilder) Build(t *testing.T, db *sql.DB) model.Portfolio {
	t.Helper()

	query := `
		INSERT INTO portfolio (id, name, description)
		VALUES (?, ?, ?)
	`

	_, err := db.Exec(query, b.ID, b.Name, b.Description)
	if err != nil {
		t.Fatalf("Failed to create test portfolio: %v", err)
	}

	return model.Portfolio{
		ID:          b.ID,
		Name:        b.Name,
		Description: b.Description,
	}
}

// CreatePortfolio creates a portfolio with the given name and default values.
//
// Example usage:
//
//	portfolio := testutil.CreatePortfolio(t, db, "My Portfolio")
func CreatePortfolio(t *testing.T, db *sql.DB, name string) model.Portfolio {
	t.Helper()
	return NewPortfolio().WithName(name).Build(t, db)
}

// CreatePortfolios creates multiple portfolios with unique names.
func CreatePortfolios(t *testing.T, db *sql.DB, count int) []model.Portfolio {
	t.Helper()

	portfolios := make([]model.Portfolio, count)
	for i := 0; i < count; i++ {
		portfolios[i] = NewPortfolio().Build(t, db)
	}
	return portfolios
}

// PositionBuilder provides a fluent interface for creating test positions.
//
// Example usage:
//
//	position := testutil.NewPosition(portfolio.ID).
//	    WithSymbol("AAPL").
//	    WithCurrency("USD").
//	    Build(t, db)
type PositionBuilder struct {
	ID          string
	PortfolioID string
	Symbol      string
	Name        string
	Currency    string
}

// NewPosition creates a PositionBuilder with sensible defaults.
func NewPosition(portfolioID string) *PositionBuilder {
	return &PositionBuilder{
		ID:          MakeID(),
		PortfolioID: portfolioID,
		Symbol:      MakeSymbol("TEST"),
		Name:        "Test Position",
		Currency:    "USD",
	}
}

// WithID sets a custom ID.
func (b *PositionBuilder) WithID(id string) *PositionBuilder {
	b.ID = id
	return b
}

// WithSymbol sets a custom symbol.
func (b *PositionBuilder) WithSymbol(symbol string) *PositionBuilder {
	b.Symbol = symbol
	return b
}

// WithName sets a custom name.
func (b *PositionBuilder) WithName(name string) *PositionBuilder {
	b.Name = name
	return b
}

// WithCurrency sets the currency.
func (b *PositionBuilder) WithCurrency(currency string) *PositionBuilder {
	b.Currency = currency
	return b
}

// Build creates the position in the database and returns it.
func (b *PositionBuilder) Build(t *testing.T, db *sql.DB) model.Position {
	t.Helper()

	query := `
		INSERT INTO position (id, portfolio_id, symbol, name, currency)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query, b.ID, b.PortfolioID, b.Symbol, b.Name, b.Currency)
	if err != nil {
		t.Fatalf("Failed to create test position: %v", err)
	}

	return model.Position{
		ID:          b.ID,
		PortfolioID: b.PortfolioID,
		Symbol:      b.Symbol,
		Name:        b.Name,
		Currency:    b.Currency,
	}
}

// CreatePosition creates a position with the given symbol and default values.
func CreatePosition(t *testing.T, db *sql.DB, portfolioID, symbol string) model.Position {
	t.Helper()
	return NewPosition(portfolioID).WithSymbol(symbol).Build(t, db)
}

// TransactionBuilder provides a fluent interface for creating transactions
type TransactionBuilder struct {
	ID         string
	PositionID string
	Date       time.Time
	Type       string
	Shares     float64
	Price      float64
}

// NewTransaction creates a TransactionBuilder with defaults
func NewTransaction(positionID string) *TransactionBuilder {
	return &TransactionBuilder{
		ID:         MakeID(),
		PositionID: positionID,
		Date:       time.Now(),
		Type:       model.TransactionBuy,
		Shares:     100.0,
		Price:      10.0,
	}
}

// WithID sets a custom ID
func (b *TransactionBuilder) WithID(id string) *TransactionBuilder {
	b.ID = id
	return b
}

// WithDate sets the transaction date
func (b *TransactionBuilder) WithDate(date time.Time) *TransactionBuilder {
	b.Date = date
	return b
}

// WithType sets the transaction type
func (b *TransactionBuilder) WithType(txType string) *TransactionBuilder {
	b.Type = txType
	return b
}

// WithShares sets the number of shares
func (b *TransactionBuilder) WithShares(shares float64) *TransactionBuilder {
	b.Shares = shares
	return b
}

// WithPrice sets the price per share
func (b *TransactionBuilder) WithPrice(price float64) *TransactionBuilder {
	b.Price = price
	return b
}

// Build creates the transaction in the database
func (b *TransactionBuilder) Build(t *testing.T, db *sql.DB) model.Transaction {
	t.Helper()

	query := `
		INSERT INTO "transaction" (id, position_id, date, type, shares, price)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query, b.ID, b.PositionID, b.Date.Format("2006-01-02"), b.Type, b.Shares, b.Price)
	if err != nil {
		t.Fatalf("Failed to create transaction: %v", err)
	}

	return model.Transaction{
		ID:         b.ID,
		PositionID: b.PositionID,
		Date:       b.Date,
		Type:       b.Type,
		Shares:     b.Shares,
		Price:      b.Price,
		CreatedAt:  time.Now(),
	}
}

// CreateBuy records a buy transaction for a position.
func CreateBuy(t *testing.T, db *sql.DB, positionID string, shares, price float64) model.Transaction {
	t.Helper()
	return NewTransaction(positionID).WithShares(shares).WithPrice(price).Build(t, db)
}

// CreateSell records a sell transaction for a position.
func CreateSell(t *testing.T, db *sql.DB, positionID string, shares, price float64) model.Transaction {
	t.Helper()
	return NewTransaction(positionID).WithType(model.TransactionSell).WithShares(shares).WithPrice(price).Build(t, db)
}

// QuoteBuilder provides a fluent interface for caching test quotes
type QuoteBuilder struct {
	Symbol           string
	CurrentPrice     float64
	DayChangePercent float64
	Currency         string
	FetchedAt        time.Time
}

// NewQuote creates a QuoteBuilder with defaults
func NewQuote(symbol string) *QuoteBuilder {
	return &QuoteBuilder{
		Symbol:           symbol,
		CurrentPrice:     12.0,
		DayChangePercent: 0.0,
		Currency:         "USD",
		FetchedAt:        time.Now().UTC(),
	}
}

// WithPrice sets the current price
func (b *QuoteBuilder) WithPrice(price float64) *QuoteBuilder {
	b.CurrentPrice = price
	return b
}

// WithDayChangePercent sets the day change percentage
func (b *QuoteBuilder) WithDayChangePercent(pct float64) *QuoteBuilder {
	b.DayChangePercent = pct
	return b
}

// WithCurrency sets the quote currency
func (b *QuoteBuilder) WithCurrency(currency string) *QuoteBuilder {
	b.Currency = currency
	return b
}

// Build stores the quote in the cache table
func (b *QuoteBuilder) Build(t *testing.T, db *sql.DB) model.Quote {
	t.Helper()

	query := `
		INSERT INTO quote (symbol, current_price, day_change_percent, currency, fetched_at)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query, b.Symbol, b.CurrentPrice, b.DayChangePercent, b.Currency,
		b.FetchedAt.Format("2006-01-02 15:04:05"))
	if err != nil {
		t.Fatalf("Failed to create quote: %v", err)
	}

	return model.Quote{
		Symbol:           b.Symbol,
		CurrentPrice:     b.CurrentPrice,
		DayChangePercent: b.DayChangePercent,
		Currency:         b.Currency,
		FetchedAt:        b.FetchedAt,
	}
}

// CreateQuote caches a quote with the given price and no day change.
func CreateQuote(t *testing.T, db *sql.DB, symbol string, price float64) model.Quote {
	t.Helper()
	return NewQuote(symbol).WithPrice(price).Build(t, db)
}

// CreateExchangeRate stores a rate for a display currency.
func CreateExchangeRate(t *testing.T, db *sql.DB, currency string, rate float64) model.ExchangeRate {
	t.Helper()

	query := `
		INSERT INTO exchange_rate (currency, rate)
		VALUES (?, ?)
	`

	_, err := db.Exec(query, currency, rate)
	if err != nil {
		t.Fatalf("Failed to create exchange rate: %v", err)
	}

	return model.ExchangeRate{
		Currency: currency,
		Rate:     rate,
	}
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/tvandenberg/portfolio-tracker/internal/apperrors"
	"github.com/tvandenberg/portfolio-tracker/internal/model"
)

// QuoteRepository provides data access methods for the quote cache table.
// One row per symbol, replaced wholesale on every refresh.
type QuoteRepository struct {
	db *sql.DB
}

// NewQuoteRepository creates a new QuoteRepository with the provided database connection.
func NewQuoteRepository(db *sql.DB) *QuoteRepository {
	return &QuoteRepository{db: db}
}

// GetQuote retrieves the cached quote for a symbol.
// Returns apperrors.ErrQuoteNotFound if the symbol has never been fetched.
func (r *QuoteRepository) GetQuote(symbol string) (model.Quote, error) {
	query := `
		SELECT symbol, current_price, day_change_percent, currency, fetched_at
		FROM quote
		WHERE symbol = ?
	`

	q, err := scanQuote(r.db.QueryRow(query, symbol))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Quote{}, apperrors.ErrQuoteNotFound
	}
	if err != nil {
		return model.Quote{}, err
	}

	return q, nil
}

// GetQuotesOnSymbols retrieves cached quotes for the given symbols, keyed by
// symbol. Symbols without a cached quote are simply absent from the map.
func (r *QuoteRepository) GetQuotesOnSymbols(symbols []string) (map[string]model.Quote, error) {
	if len(symbols) == 0 {
		return make(map[string]model.Quote), nil
	}

	placeholders := make([]string, len(symbols))
	for i := range placeholders {
		placeholders[i] = "?"
	}

	//#nosec G202 -- Safe: placeholders are generated programmatically, not from user input
	query := `
		SELECT symbol, current_price, day_change_percent, currency, fetched_at
		FROM quote
		WHERE symbol IN (` + strings.Join(placeholders, ",") + `)
	`

	args := make([]any, len(symbols))
	for i, s := range symbols {
		args[i] = s
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query quote table: %w", err)
	}
	defer rows.Close()

	quotes := make(map[string]model.Quote)

	for rows.Next() {
		q, err := scanQuote(rows)
		if err != nil {
			return nil, err
		}
		quotes[q.Symbol] = q
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating quote table: %w", err)
	}

	return quotes, nil
}

// UpsertQuote inserts or replaces the cached quote for a symbol.
func (r *QuoteRepository) UpsertQuote(ctx context.Context, q *model.Quote) error {
	query := `
		INSERT INTO quote (symbol, current_price, day_change_percent, currency, fetched_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(symbol) DO UPDATE SET
			current_price = excluded.current_price,
			day_change_percent = excluded.day_change_percent,
			currency = excluded.currency,
			fetched_at = excluded.fetched_at
	`
	_, err := r.db.ExecContext(ctx, query,
		q.Symbol, q.CurrentPrice, q.DayChangePercent, q.Currency,
		q.FetchedAt.UTC().Format("2006-01-02 15:04:05"),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert quote: %w", err)
	}
	return nil
}

func scanQuote(row rowScanner) (model.Quote, error) {
	var q model.Quote
	var fetchedAt string

	err := row.Scan(&q.Symbol, &q.CurrentPrice, &q.DayChangePercent, &q.Currency, &fetchedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Quote{}, err
		}
		return model.Quote{}, fmt.Errorf("failed to scan quote table results: %w", err)
	}

	q.FetchedAt, err = ParseTime(fetchedAt)
	if err != nil {
		return model.Quote{}, err
	}

	return q, nil
}

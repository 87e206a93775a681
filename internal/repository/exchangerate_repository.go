package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/tvandenberg/portfolio-tracker/internal/apperrors"
	"github.com/tvandenberg/portfolio-tracker/internal/model"
)

// ExchangeRateRepository provides data access methods for the exchange_rate
// table: one multiplier per display currency relative to the base currency.
type ExchangeRateRepository struct {
	db *sql.DB
}

// NewExchangeRateRepository creates a new ExchangeRateRepository with the provided database connection.
func NewExchangeRateRepository(db *sql.DB) *ExchangeRateRepository {
	return &ExchangeRateRepository{db: db}
}

// GetRates retrieves the whole rate table ordered by currency code.
func (r *ExchangeRateRepository) GetRates() ([]model.ExchangeRate, error) {
	rows, err := r.db.Query(`
		SELECT currency, rate, updated_at
		FROM exchange_rate
		ORDER BY currency ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query exchange_rate table: %w", err)
	}
	defer rows.Close()

	rates := []model.ExchangeRate{}

	for rows.Next() {
		var er model.ExchangeRate
		var updatedAt string

		if err := rows.Scan(&er.Currency, &er.Rate, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan exchange_rate table results: %w", err)
		}
		if er.UpdatedAt, err = ParseTime(updatedAt); err != nil {
			return nil, err
		}

		rates = append(rates, er)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating exchange_rate table: %w", err)
	}

	return rates, nil
}

// GetRate retrieves the multiplier for a single currency code.
// Returns apperrors.ErrExchangeRateNotFound if the currency is not in the table.
func (r *ExchangeRateRepository) GetRate(currency string) (model.ExchangeRate, error) {
	var er model.ExchangeRate
	var updatedAt string

	err := r.db.QueryRow(`
		SELECT currency, rate, updated_at
		FROM exchange_rate
		WHERE currency = ?
	`, currency).Scan(&er.Currency, &er.Rate, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.ExchangeRate{}, apperrors.ErrExchangeRateNotFound
	}
	if err != nil {
		return model.ExchangeRate{}, fmt.Errorf("failed to query exchange_rate table: %w", err)
	}

	if er.UpdatedAt, err = ParseTime(updatedAt); err != nil {
		return model.ExchangeRate{}, err
	}

	return er, nil
}

// UpsertRate inserts or replaces the multiplier for a currency code.
func (r *ExchangeRateRepository) UpsertRate(ctx context.Context, er *model.ExchangeRate) error {
	query := `
		INSERT INTO exchange_rate (currency, rate, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(currency) DO UPDATE SET
			rate = excluded.rate,
			updated_at = excluded.updated_at
	`
	_, err := r.db.ExecContext(ctx, query,
		er.Currency, er.Rate,
		er.UpdatedAt.UTC().Format("2006-01-02 15:04:05"),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert exchange rate: %w", err)
	}
	return nil
}

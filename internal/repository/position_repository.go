package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/tvandenberg/portfolio-tracker/internal/apperrors"
	"github.com/tvandenberg/portfolio-tracker/internal/model"
)

// PositionRepository provides data access methods for the position table.
type PositionRepository struct {
	db *sql.DB
}

// NewPositionRepository creates a new PositionRepository with the provided database connection.
func NewPositionRepository(db *sql.DB) *PositionRepository {
	return &PositionRepository{db: db}
}

// GetPositionsOnPortfolioID retrieves all positions belonging to a portfolio,
// ordered by creation time. Returns an empty slice for a portfolio with no
// positions.
func (r *PositionRepository) GetPositionsOnPortfolioID(portfolioID string) ([]model.Position, error) {
	query := `
		SELECT id, portfolio_id, symbol, name, currency, created_at
		FROM position
		WHERE portfolio_id = ?
		ORDER BY created_at ASC, id ASC
	`

	rows, err := r.db.Query(query, portfolioID)
	if err != nil {
		return nil, fmt.Errorf("failed to query position table: %w", err)
	}
	defer rows.Close()

	positions := []model.Position{}

	for rows.Next() {
		p, err := scanPosition(rows)
		if err != nil {
			return nil, err
		}
		positions = append(positions, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating position table: %w", err)
	}

	return positions, nil
}

// GetPositionOnID retrieves a single position by its ID.
// Returns apperrors.ErrPositionNotFound if no row exists.
func (r *PositionRepository) GetPositionOnID(positionID string) (model.Position, error) {
	query := `
		SELECT id, portfolio_id, symbol, name, currency, created_at
		FROM position
		WHERE id = ?
	`

	p, err := scanPosition(r.db.QueryRow(query, positionID))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Position{}, apperrors.ErrPositionNotFound
	}
	if err != nil {
		return model.Position{}, err
	}

	return p, nil
}

// GetDistinctSymbols returns every symbol held in any position, deduplicated.
// Used by the quote refresh job to know which quotes to fetch.
func (r *PositionRepository) GetDistinctSymbols() ([]string, error) {
	rows, err := r.db.Query(`SELECT DISTINCT symbol FROM position ORDER BY symbol ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query position symbols: %w", err)
	}
	defer rows.Close()

	var symbols []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("failed to scan position symbol: %w", err)
		}
		symbols = append(symbols, s)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating position symbols: %w", err)
	}

	return symbols, nil
}

// InsertPosition stores a new position record.
func (r *PositionRepository) InsertPosition(ctx context.Context, p *model.Position) error {
	query := `
		INSERT INTO position (id, portfolio_id, symbol, name, currency, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.PortfolioID, p.Symbol, p.Name, p.Currency,
		p.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
	)
	if err != nil {
		return fmt.Errorf("failed to insert position: %w", err)
	}
	return nil
}

// DeletePosition removes a position and, via foreign keys, its transactions.
// Returns apperrors.ErrPositionNotFound if no row was deleted.
func (r *PositionRepository) DeletePosition(ctx context.Context, positionID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM position WHERE id = ?`, positionID)
	if err != nil {
		return fmt.Errorf("failed to delete position: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrPositionNotFound
	}
	return nil
}

func scanPosition(row rowScanner) (model.Position, error) {
	var p model.Position
	var createdAt string

	err := row.Scan(&p.ID, &p.PortfolioID, &p.Symbol, &p.Name, &p.Currency, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Position{}, err
		}
		return model.Position{}, fmt.Errorf("failed to scan position table results: %w", err)
	}

	p.CreatedAt, err = ParseTime(createdAt)
	if err != nil {
		return model.Position{}, err
	}

	return p, nil
}

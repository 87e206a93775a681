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

// TransactionRepository provides data access methods for the transaction table.
type TransactionRepository struct {
	db *sql.DB
}

// NewTransactionRepository creates a new TransactionRepository with the provided database connection.
func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// GetTransactionsOnPositionID retrieves all transactions for a position in
// stored insertion order. The ledger replays transactions in exactly this
// order, NOT sorted by date: a backdated transaction is applied when it was
// entered, because re-sorting would change realized-gain results.
func (r *TransactionRepository) GetTransactionsOnPositionID(positionID string) ([]model.Transaction, error) {
	query := `
		SELECT id, position_id, date, type, shares, price, created_at
		FROM "transaction"
		WHERE position_id = ?
		ORDER BY rowid ASC
	`

	rows, err := r.db.Query(query, positionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction table: %w", err)
	}
	defer rows.Close()

	transactions := []model.Transaction{}

	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction table: %w", err)
	}

	return transactions, nil
}

// GetTransactionsOnPositionIDs retrieves transactions for many positions in a
// single query, grouped by position ID and in stored insertion order within
// each group. If positionIDs is empty, returns an empty map.
func (r *TransactionRepository) GetTransactionsOnPositionIDs(positionIDs []string) (map[string][]model.Transaction, error) {
	if len(positionIDs) == 0 {
		return make(map[string][]model.Transaction), nil
	}

	placeholders := make([]string, len(positionIDs))
	for i := range placeholders {
		placeholders[i] = "?"
	}

	//#nosec G202 -- Safe: placeholders are generated programmatically, not from user input
	query := `
		SELECT id, position_id, date, type, shares, price, created_at
		FROM "transaction"
		WHERE position_id IN (` + strings.Join(placeholders, ",") + `)
		ORDER BY rowid ASC
	`

	args := make([]any, len(positionIDs))
	for i, id := range positionIDs {
		args[i] = id
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction table: %w", err)
	}
	defer rows.Close()

	byPosition := make(map[string][]model.Transaction)

	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		byPosition[t.PositionID] = append(byPosition[t.PositionID], t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction table: %w", err)
	}

	return byPosition, nil
}

// GetTransaction retrieves a single transaction by its ID.
// Returns apperrors.ErrTransactionNotFound if no row exists.
func (r *TransactionRepository) GetTransaction(transactionID string) (model.Transaction, error) {
	query := `
		SELECT id, position_id, date, type, shares, price, created_at
		FROM "transaction"
		WHERE id = ?
	`

	t, err := scanTransaction(r.db.QueryRow(query, transactionID))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Transaction{}, apperrors.ErrTransactionNotFound
	}
	if err != nil {
		return model.Transaction{}, err
	}

	return t, nil
}

// InsertTransaction stores a new transaction record. Transactions are
// immutable once created; there is no update method.
func (r *TransactionRepository) InsertTransaction(ctx context.Context, t *model.Transaction) error {
	query := `
		INSERT INTO "transaction" (id, position_id, date, type, shares, price, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		t.ID, t.PositionID,
		t.Date.UTC().Format("2006-01-02"),
		t.Type, t.Shares, t.Price,
		t.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	return nil
}

// DeleteTransaction removes a transaction as a whole record.
// Returns apperrors.ErrTransactionNotFound if no row was deleted.
func (r *TransactionRepository) DeleteTransaction(ctx context.Context, transactionID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM "transaction" WHERE id = ?`, transactionID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrTransactionNotFound
	}
	return nil
}

func scanTransaction(row rowScanner) (model.Transaction, error) {
	var t model.Transaction
	var dateStr, createdAtStr string

	err := row.Scan(&t.ID, &t.PositionID, &dateStr, &t.Type, &t.Shares, &t.Price, &createdAtStr)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Transaction{}, err
		}
		return model.Transaction{}, fmt.Errorf("failed to scan transaction table results: %w", err)
	}

	if t.Date, err = ParseTime(dateStr); err != nil {
		return model.Transaction{}, err
	}
	if t.CreatedAt, err = ParseTime(createdAtStr); err != nil {
		return model.Transaction{}, err
	}

	return t, nil
}

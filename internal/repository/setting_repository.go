package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/tvandenberg/portfolio-tracker/internal/apperrors"
	"github.com/tvandenberg/portfolio-tracker/internal/model"
)

// SettingRepository provides data access methods for the setting table.
type SettingRepository struct {
	db *sql.DB
}

// NewSettingRepository creates a new SettingRepository with the provided database connection.
func NewSettingRepository(db *sql.DB) *SettingRepository {
	return &SettingRepository{db: db}
}

// GetSetting retrieves a setting by key.
// Returns apperrors.ErrSettingNotFound if the key has no stored value.
func (r *SettingRepository) GetSetting(key string) (model.Setting, error) {
	var s model.Setting
	var updatedAt string

	err := r.db.QueryRow(`
		SELECT "key", value, updated_at
		FROM setting
		WHERE "key" = ?
	`, key).Scan(&s.Key, &s.Value, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Setting{}, apperrors.ErrSettingNotFound
	}
	if err != nil {
		return model.Setting{}, fmt.Errorf("failed to query setting table: %w", err)
	}

	if s.UpdatedAt, err = ParseTime(updatedAt); err != nil {
		return model.Setting{}, err
	}

	return s, nil
}

// UpsertSetting inserts or replaces a setting value.
func (r *SettingRepository) UpsertSetting(ctx context.Context, s *model.Setting) error {
	query := `
		INSERT INTO setting ("key", value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT("key") DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`
	_, err := r.db.ExecContext(ctx, query,
		s.Key, s.Value,
		s.UpdatedAt.UTC().Format("2006-01-02 15:04:05"),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert setting: %w", err)
	}
	return nil
}

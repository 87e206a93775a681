package service

import (
	"database/sql"

	"github.com/tvandenberg/portfolio-tracker/internal/database"
	"github.com/tvandenberg/portfolio-tracker/internal/version"
)

// SystemService handles system-related operations
type SystemService struct {
	db *sql.DB
}

// NewSystemService creates a new SystemService
func NewSystemService(db *sql.DB) *SystemService {
	return &SystemService{
		db: db,
	}
}

// CheckHealth checks the health of the system
func (s *SystemService) CheckHealth() error {
	return database.HealthCheck(s.db)
}

// VersionInfo returns the application version and current schema version.
func (s *SystemService) VersionInfo() (string, int64, error) {
	schemaVersion, err := database.SchemaVersion(s.db)
	if err != nil {
		return version.Version, 0, err
	}
	return version.Version, schemaVersion, nil
}

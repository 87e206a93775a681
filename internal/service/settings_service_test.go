package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/tvandenberg/portfolio-tracker/internal/apperrors"
	"github.com/tvandenberg/portfolio-tracker/internal/repository"
	"github.com/tvandenberg/portfolio-tracker/internal/service"
	"github.com/tvandenberg/portfolio-tracker/internal/testutil"
)

// testFernetKey is a fixed 32-byte key for tests (never used in production).
const testFernetKey = "cw_0x689RpI-jtRR7oE8h_eQsKImvJapLeSbXpwF4e4="

// TestSettingsService_MarketDataAPIKey tests encrypted key storage.
//
// WHY: The provider API key is a secret; it must round-trip through
// encryption and never be stored as plaintext.
func TestSettingsService_MarketDataAPIKey(t *testing.T) {
	t.Run("stores and retrieves the key", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		settingRepo := repository.NewSettingRepository(db)
		svc, err := service.NewSettingsService(settingRepo, testFernetKey)
		if err != nil {
			t.Fatalf("NewSettingsService() returned unexpected error: %v", err)
		}

		if err := svc.SetMarketDataAPIKey(context.Background(), "secret-api-key"); err != nil {
			t.Fatalf("SetMarketDataAPIKey() returned unexpected error: %v", err)
		}

		key, err := svc.GetMarketDataAPIKey()
		if err != nil {
			t.Fatalf("GetMarketDataAPIKey() returned unexpected error: %v", err)
		}
		if key != "secret-api-key" {
			t.Errorf("Expected secret-api-key, got %q", key)
		}
	})

	t.Run("stored value is not plaintext", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		settingRepo := repository.NewSettingRepository(db)
		svc, err := service.NewSettingsService(settingRepo, testFernetKey)
		if err != nil {
			t.Fatalf("NewSettingsService() returned unexpected error: %v", err)
		}

		if err := svc.SetMarketDataAPIKey(context.Background(), "secret-api-key"); err != nil {
			t.Fatalf("SetMarketDataAPIKey() returned unexpected error: %v", err)
		}

		var stored string
		if err := db.QueryRow(`SELECT value FROM setting`).Scan(&stored); err != nil {
			t.Fatalf("Failed to read stored setting: %v", err)
		}
		if stored == "secret-api-key" {
			t.Error("API key was stored as plaintext")
		}
	})

	t.Run("missing key returns sentinel", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		settingRepo := repository.NewSettingRepository(db)
		svc, err := service.NewSettingsService(settingRepo, testFernetKey)
		if err != nil {
			t.Fatalf("NewSettingsService() returned unexpected error: %v", err)
		}

		_, err = svc.GetMarketDataAPIKey()
		if !errors.Is(err, apperrors.ErrAPIKeyMissing) {
			t.Errorf("Expected ErrAPIKeyMissing, got %v", err)
		}
	})

	t.Run("rejects storing without a configured fernet key", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		settingRepo := repository.NewSettingRepository(db)
		svc, err := service.NewSettingsService(settingRepo, "")
		if err != nil {
			t.Fatalf("NewSettingsService() returned unexpected error: %v", err)
		}

		if err := svc.SetMarketDataAPIKey(context.Background(), "secret"); err == nil {
			t.Error("Expected error storing without fernet key, got nil")
		}
	})

	t.Run("rejects malformed fernet key", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		settingRepo := repository.NewSettingRepository(db)

		if _, err := service.NewSettingsService(settingRepo, "not-a-key"); err == nil {
			t.Error("Expected error for malformed fernet key, got nil")
		}
	})
}

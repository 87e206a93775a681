package service

import (
	"context"
	"fmt"
	"time"

	"github.com/fernet/fernet-go"

	"github.com/tvandenberg/portfolio-tracker/internal/apperrors"
	"github.com/tvandenberg/portfolio-tracker/internal/model"
	"github.com/tvandenberg/portfolio-tracker/internal/repository"
)

// SettingsService handles application settings. Secret values — currently
// only the market-data provider API key — are fernet-encrypted before they
// reach the database and decrypted on read.
type SettingsService struct {
	settingRepo *repository.SettingRepository
	keys        []*fernet.Key
}

// NewSettingsService creates a new SettingsService. The fernetKey is the
// base64-encoded key from configuration; an empty key disables secret
// storage (setting a secret then fails cleanly).
func NewSettingsService(settingRepo *repository.SettingRepository, fernetKey string) (*SettingsService, error) {
	s := &SettingsService{settingRepo: settingRepo}

	if fernetKey != "" {
		keys, err := fernet.DecodeKeys(fernetKey)
		if err != nil {
			return nil, fmt.Errorf("failed to decode fernet key: %w", err)
		}
		s.keys = keys
	}

	return s, nil
}

// SetMarketDataAPIKey encrypts and stores the provider API key.
func (s *SettingsService) SetMarketDataAPIKey(ctx context.Context, apiKey string) error {
	if len(s.keys) == 0 {
		return fmt.Errorf("cannot store API key: no fernet key configured")
	}

	token, err := fernet.EncryptAndSign([]byte(apiKey), s.keys[0])
	if err != nil {
		return fmt.Errorf("failed to encrypt API key: %w", err)
	}

	setting := model.Setting{
		Key:       model.SettingMarketDataAPIKey,
		Value:     string(token),
		UpdatedAt: time.Now().UTC(),
	}
	return s.settingRepo.UpsertSetting(ctx, &setting)
}

// GetMarketDataAPIKey retrieves and decrypts the provider API key.
// Returns apperrors.ErrAPIKeyMissing when no key has been stored or the
// stored token cannot be verified.
func (s *SettingsService) GetMarketDataAPIKey() (string, error) {
	if len(s.keys) == 0 {
		return "", apperrors.ErrAPIKeyMissing
	}

	setting, err := s.settingRepo.GetSetting(model.SettingMarketDataAPIKey)
	if err != nil {
		return "", apperrors.ErrAPIKeyMissing
	}

	plaintext := fernet.VerifyAndDecrypt([]byte(setting.Value), 0, s.keys)
	if plaintext == nil {
		return "", apperrors.ErrAPIKeyMissing
	}

	return string(plaintext), nil
}

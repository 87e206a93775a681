package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/tvandenberg/portfolio-tracker/internal/marketdata"
	"github.com/tvandenberg/portfolio-tracker/internal/model"
	"github.com/tvandenberg/portfolio-tracker/internal/repository"
)

// FxService maintains the currency-rate table: one multiplier per display
// currency, expressed as display-currency units per one base-currency unit.
// The aggregator receives exactly one of these multipliers per portfolio
// pass.
type FxService struct {
	rateRepo     *repository.ExchangeRateRepository
	client       marketdata.Client
	baseCurrency string
}

// NewFxService creates a new FxService with the provided dependencies.
func NewFxService(
	rateRepo *repository.ExchangeRateRepository,
	client marketdata.Client,
	baseCurrency string,
) *FxService {
	return &FxService{
		rateRepo:     rateRepo,
		client:       client,
		baseCurrency: strings.ToUpper(baseCurrency),
	}
}

// GetRates retrieves the whole rate table.
func (s *FxService) GetRates() ([]model.ExchangeRate, error) {
	return s.rateRepo.GetRates()
}

// ResolveRate resolves the display currency and its multiplier for a
// portfolio pass. An empty currency selects the base currency, which always
// converts at 1 regardless of table contents.
func (s *FxService) ResolveRate(currency string) (string, float64, error) {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" || currency == s.baseCurrency {
		return s.baseCurrency, 1, nil
	}

	rate, err := s.rateRepo.GetRate(currency)
	if err != nil {
		return "", 0, err
	}

	return currency, rate.Rate, nil
}

// UpdateRate stores a manual multiplier for a currency.
func (s *FxService) UpdateRate(ctx context.Context, currency string, rate float64) (model.ExchangeRate, error) {
	er := model.ExchangeRate{
		Currency:  strings.ToUpper(strings.TrimSpace(currency)),
		Rate:      rate,
		UpdatedAt: time.Now().UTC(),
	}

	if err := s.rateRepo.UpsertRate(ctx, &er); err != nil {
		return model.ExchangeRate{}, fmt.Errorf("failed to update exchange rate: %w", err)
	}

	return er, nil
}

// RefreshAll refetches every currency already present in the rate table from
// the market-data provider. The base currency keeps its fixed rate of 1.
// Failing currencies are logged and skipped, mirroring the quote refresh.
// Returns the number of rates refreshed.
func (s *FxService) RefreshAll(ctx context.Context) (int, error) {
	rates, err := s.rateRepo.GetRates()
	if err != nil {
		return 0, err
	}

	refreshed := 0
	for _, er := range rates {
		if er.Currency == s.baseCurrency {
			continue
		}

		rate, err := s.client.FetchRate(ctx, s.baseCurrency, er.Currency)
		if err != nil {
			log.Printf("fx refresh: skipping %s: %v", er.Currency, err)
			continue
		}

		update := model.ExchangeRate{
			Currency:  er.Currency,
			Rate:      rate,
			UpdatedAt: time.Now().UTC(),
		}
		if err := s.rateRepo.UpsertRate(ctx, &update); err != nil {
			return refreshed, err
		}
		refreshed++
	}

	return refreshed, nil
}

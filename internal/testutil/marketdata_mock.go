package testutil

import (
	"context"
	"time"

	"github.com/tvandenberg/portfolio-tracker/internal/model"
)

// MockMarketDataClient is a mock implementation of marketdata.Client for
// testing. It serves quotes and rates from in-memory maps instead of making
// actual API calls.
type MockMarketDataClient struct {
	// Quotes maps symbol to the quote FetchQuote returns for it.
	Quotes map[string]model.Quote
	// Rates maps "FROM/TO" pairs to the rate FetchRate returns.
	Rates map[string]float64
	// Err, when set, is returned by every call.
	Err error
	// FetchCount tracks how many fetches were made.
	FetchCount int
}

// NewMockMarketDataClient creates a mock with empty quote and rate maps.
func NewMockMarketDataClient() *MockMarketDataClient {
	return &MockMarketDataClient{
		Quotes: make(map[string]model.Quote),
		Rates:  make(map[string]float64),
	}
}

// WithQuote registers a quote for a symbol.
func (m *MockMarketDataClient) WithQuote(symbol string, price, dayChangePercent float64) *MockMarketDataClient {
	m.Quotes[symbol] = model.Quote{
		Symbol:           symbol,
		CurrentPrice:     price,
		DayChangePercent: dayChangePercent,
		Currency:         "USD",
		FetchedAt:        time.Now().UTC(),
	}
	return m
}

// WithRate registers an exchange rate for a currency pair.
func (m *MockMarketDataClient) WithRate(from, to string, rate float64) *MockMarketDataClient {
	m.Rates[from+"/"+to] = rate
	return m
}

// WithError configures the mock to fail every call with err.
func (m *MockMarketDataClient) WithError(err error) *MockMarketDataClient {
	m.Err = err
	return m
}

// FetchQuote returns the registered quote for the symbol.
func (m *MockMarketDataClient) FetchQuote(_ context.Context, symbol string) (model.Quote, error) {
	m.FetchCount++
	if m.Err != nil {
		return model.Quote{}, m.Err
	}
	quote, ok := m.Quotes[symbol]
	if !ok {
		return model.Quote{}, errSymbolNotRegistered(symbol)
	}
	return quote, nil
}

// FetchRate returns the registered rate for the currency pair.
func (m *MockMarketDataClient) FetchRate(_ context.Context, from, to string) (float64, error) {
	m.FetchCount++
	if m.Err != nil {
		return 0, m.Err
	}
	rate, ok := m.Rates[from+"/"+to]
	if !ok {
		return 0, errSymbolNotRegistered(from + "/" + to)
	}
	return rate, nil
}

type errSymbolNotRegistered string

func (e errSymbolNotRegistered) Error() string {
	return "no mock data registered for " + string(e)
}

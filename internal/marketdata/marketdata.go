// Package marketdata contains the foreign-data adapters that turn untyped
// third-party API payloads into typed model.Quote records. Nothing past this
// boundary ever sees an untrusted shape: the valuation engine only accepts
// quotes that were validated and mapped here.
package marketdata

import (
	"context"

	"github.com/tvandenberg/portfolio-tracker/internal/model"
)

// Client fetches market data for the quote and FX refresh jobs. Implemented
// by the Yahoo Finance client and the Alpha Vantage fallback; tests supply a
// mock.
type Client interface {
	// FetchQuote returns a validated point-in-time quote for a symbol.
	FetchQuote(ctx context.Context, symbol string) (model.Quote, error)

	// FetchRate returns how many 'to' units one 'from' unit buys.
	FetchRate(ctx context.Context, from, to string) (float64, error)
}

package ledger

import "github.com/tvandenberg/portfolio-tracker/internal/model"

// Valuation combines a Holding with a live quote. All monetary figures are in
// the quote's native currency. Every field is finite: zero-share and
// zero-cost-basis positions resolve to 0 rather than NaN or Inf.
type Valuation struct {
	Shares                float64
	CostBasis             float64
	MarketValue           float64
	UnrealizedGain        float64
	UnrealizedGainPercent float64
	PreviousPrice         float64
	DailyGain             float64
	RealizedGain          float64
}

// Valuate derives market value, unrealized gain, and day change for a holding
// from a point-in-time quote.
//
// The previous price is inverted from the day-change percent:
//
//	previousPrice = currentPrice / (1 + dayChangePercent/100)
//
// This assumes the quote source computed its day-change percent against the
// same price basis. A dayChangePercent of -100 would divide by zero, so that
// edge falls back to previousPrice = currentPrice (flat day).
func Valuate(h Holding, quote model.Quote) Valuation {
	marketValue := h.Shares * quote.CurrentPrice
	unrealizedGain := marketValue - h.CostBasis

	unrealizedGainPercent := 0.0
	if h.CostBasis > 0 {
		unrealizedGainPercent = unrealizedGain / h.CostBasis * 100
	}

	previousPrice := quote.CurrentPrice
	if denom := 1 + quote.DayChangePercent/100; denom != 0 {
		previousPrice = quote.CurrentPrice / denom
	}

	return Valuation{
		Shares:                h.Shares,
		CostBasis:             h.CostBasis,
		MarketValue:           marketValue,
		UnrealizedGain:        unrealizedGain,
		UnrealizedGainPercent: unrealizedGainPercent,
		PreviousPrice:         previousPrice,
		DailyGain:             (quote.CurrentPrice - previousPrice) * h.Shares,
		RealizedGain:          h.RealizedGain,
	}
}

package model

import "time"

// Position represents a single holding (stock, ETF, crypto) inside a
// portfolio. Derived state (shares held, cost basis) is never stored; it is
// recomputed from the position's transactions on every read.
type Position struct {
	ID          string    `json:"id"`
	PortfolioID string    `json:"portfolioId"`
	Symbol      string    `json:"symbol"`
	Name        string    `json:"name"`
	Currency    string    `json:"currency"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
}

// PositionValuation is a position enriched with ledger and market-derived
// figures. All monetary values are in the position's native currency and
// rounded to two decimal places.
type PositionValuation struct {
	ID                    string  `json:"id"`
	Symbol                string  `json:"symbol"`
	Name                  string  `json:"name"`
	Currency              string  `json:"currency"`
	Shares                float64 `json:"shares"`
	CostBasis             float64 `json:"costBasis"`
	AverageCost           float64 `json:"averageCost"`
	LatestPrice           float64 `json:"latestPrice"`
	MarketValue           float64 `json:"marketValue"`
	UnrealizedGain        float64 `json:"unrealizedGain"`
	UnrealizedGainPercent float64 `json:"unrealizedGainPercent"`
	DailyGain             float64 `json:"dailyGain"`
	RealizedGain          float64 `json:"realizedGain"`
}

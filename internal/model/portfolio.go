package model

import "time"

// Portfolio represents a named collection of positions owned by the user.
type Portfolio struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
}

// PortfolioSummary represents the current aggregated state of a portfolio in
// the requested display currency. Totals are sums over per-position
// valuations multiplied by a single exchange rate, rounded to two decimals.
type PortfolioSummary struct {
	ID                 string              `json:"id"`
	Name               string              `json:"name"`
	Currency           string              `json:"currency"`
	ExchangeRate       float64             `json:"exchangeRate"`
	TotalValue         float64             `json:"totalValue"`
	TotalCost          float64             `json:"totalCost"`
	TotalProfit        float64             `json:"totalProfit"`
	TotalProfitPercent float64             `json:"totalProfitPercent"`
	DayChangeValue     float64             `json:"dayChangeValue"`
	RealizedGain       float64             `json:"realizedGain"`
	Positions          []PositionValuation `json:"positions"`
}

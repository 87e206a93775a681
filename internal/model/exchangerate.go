package model

import "time"

// ExchangeRate maps a display currency to its multiplier relative to the
// configured base currency (display-currency units per one base unit). One
// rate is resolved per portfolio pass and applied uniformly.
type ExchangeRate struct {
	Currency  string    `json:"currency"`
	Rate      float64   `json:"rate"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}

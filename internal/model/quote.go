package model

import "time"

// Quote is a point-in-time market snapshot for one symbol, expressed in the
// instrument's native currency. The engine treats whatever quote it is handed
// as ground truth for that call; staleness is the refresh layer's concern.
type Quote struct {
	Symbol           string    `json:"symbol"`
	CurrentPrice     float64   `json:"currentPrice"`
	DayChangePercent float64   `json:"dayChangePercent"`
	Currency         string    `json:"currency"`
	FetchedAt        time.Time `json:"fetchedAt"`
}

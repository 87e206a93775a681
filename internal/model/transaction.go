package model

import "time"

// Transaction type values. Only buys and sells affect holdings; there are no
// edit semantics — a transaction is inserted once and can only be deleted as
// a whole record.
const (
	TransactionBuy  = "buy"
	TransactionSell = "sell"
)

// Transaction represents a single buy or sell for a position.
// Shares and Price are expressed in the position's native currency.
// Used internally for ledger replay and data processing.
type Transaction struct {
	ID         string    `json:"id"`
	PositionID string    `json:"positionId"`
	Date       time.Time `json:"date"`
	Type       string    `json:"type"`
	Shares     float64   `json:"shares"`
	Price      float64   `json:"price"`
	CreatedAt  time.Time `json:"createdAt,omitempty"`
}

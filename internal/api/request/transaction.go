package request

type CreateTransactionRequest struct {
	PositionID string  `json:"positionId"`
	Date       string  `json:"date"`
	Type       string  `json:"type"`
	Shares     float64 `json:"shares"`
	Price      float64 `json:"price"`
}

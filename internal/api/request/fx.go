package request

type UpdateExchangeRateRequest struct {
	Rate float64 `json:"rate"`
}

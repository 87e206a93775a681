package request

type UpdateMarketDataKeyRequest struct {
	APIKey string `json:"apiKey"`
}

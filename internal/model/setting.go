package model

import "time"

// Setting is a key/value application setting. Secret values (market-data API
// keys) are stored fernet-encrypted; the service layer handles the
// encryption, the model only carries the stored string.
type Setting struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}

// Well-known setting keys.
const (
	SettingMarketDataAPIKey = "marketdata_api_key"
)

package marketdata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tvandenberg/portfolio-tracker/internal/model"
)

// ErrRateLimited indicates Alpha Vantage returned an information/rate-limit
// note instead of data.
var ErrRateLimited = errors.New("alpha vantage rate limit or information note")

// AlphaVantageClient is a keyed fallback provider using the GLOBAL_QUOTE and
// CURRENCY_EXCHANGE_RATE endpoints. The API key comes from the settings
// service, which stores it fernet-encrypted.
type AlphaVantageClient struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
}

// NewAlphaVantageClient creates a new Alpha Vantage client with the given API key.
func NewAlphaVantageClient(apiKey string) *AlphaVantageClient {
	return &AlphaVantageClient{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    "https://www.alphavantage.co",
	}
}

// NewAlphaVantageClientWithBaseURL creates a client pointed at a custom
// endpoint. Used by tests to target an httptest server.
func NewAlphaVantageClientWithBaseURL(apiKey, baseURL string) *AlphaVantageClient {
	c := NewAlphaVantageClient(apiKey)
	c.baseURL = baseURL
	return c
}

// FetchQuote fetches a GLOBAL_QUOTE and maps it into a model.Quote. The
// payload is a map of stringly-typed fields, so every number is parsed and
// validated before the quote is accepted.
func (c *AlphaVantageClient) FetchQuote(ctx context.Context, symbol string) (model.Quote, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return model.Quote{}, fmt.Errorf("symbol is required")
	}

	reqURL := fmt.Sprintf("%s/query?function=GLOBAL_QUOTE&symbol=%s&apikey=%s",
		c.baseURL, url.QueryEscape(symbol), url.QueryEscape(c.apiKey))

	raw, err := c.query(ctx, reqURL)
	if err != nil {
		return model.Quote{}, err
	}

	quote, ok := raw["Global Quote"].(map[string]any)
	if !ok || len(quote) == 0 {
		return model.Quote{}, fmt.Errorf("no quote returned for symbol %s", symbol)
	}

	priceStr, _ := quote["05. price"].(string)
	price, err := strconv.ParseFloat(priceStr, 64)
	if err != nil || price <= 0 {
		return model.Quote{}, fmt.Errorf("no usable price returned for symbol %s", symbol)
	}

	// "10. change percent" arrives as e.g. "1.2345%".
	dayChangePercent := 0.0
	if changeStr, _ := quote["10. change percent"].(string); changeStr != "" {
		if v, err := strconv.ParseFloat(strings.TrimSuffix(changeStr, "%"), 64); err == nil {
			dayChangePercent = v
		}
	}

	// GLOBAL_QUOTE does not report a currency; Alpha Vantage equity quotes
	// are USD.
	return model.Quote{
		Symbol:           symbol,
		CurrentPrice:     price,
		DayChangePercent: dayChangePercent,
		Currency:         "USD",
		FetchedAt:        time.Now().UTC(),
	}, nil
}

// FetchRate returns how many 'to' units one 'from' unit buys via
// CURRENCY_EXCHANGE_RATE.
func (c *AlphaVantageClient) FetchRate(ctx context.Context, from, to string) (float64, error) {
	from = strings.ToUpper(strings.TrimSpace(from))
	to = strings.ToUpper(strings.TrimSpace(to))
	if from == "" || to == "" {
		return 0, fmt.Errorf("currency pair is required")
	}
	if from == to {
		return 1, nil
	}

	reqURL := fmt.Sprintf("%s/query?function=CURRENCY_EXCHANGE_RATE&from_currency=%s&to_currency=%s&apikey=%s",
		c.baseURL, url.QueryEscape(from), url.QueryEscape(to), url.QueryEscape(c.apiKey))

	raw, err := c.query(ctx, reqURL)
	if err != nil {
		return 0, err
	}

	payload, ok := raw["Realtime Currency Exchange Rate"].(map[string]any)
	if !ok {
		return 0, fmt.Errorf("no rate returned for %s/%s", from, to)
	}

	rateStr, _ := payload["5. Exchange Rate"].(string)
	rate, err := strconv.ParseFloat(rateStr, 64)
	if err != nil || rate <= 0 {
		return 0, fmt.Errorf("invalid rate for %s/%s", from, to)
	}

	return rate, nil
}

func (c *AlphaVantageClient) query(ctx context.Context, reqURL string) (map[string]any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "portfolio-tracker/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("alphavantage http %d", resp.StatusCode)
	}

	var raw map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, err
	}
	if _, ok := raw["Note"]; ok {
		return nil, ErrRateLimited
	}
	if _, ok := raw["Information"]; ok {
		return nil, ErrRateLimited
	}

	return raw, nil
}

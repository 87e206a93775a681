package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tvandenberg/portfolio-tracker/internal/model"
)

// YahooClient fetches quotes and FX rates from the Yahoo Finance v8 chart
// API. It needs no API key.
type YahooClient struct {
	httpClient *http.Client
	baseURL    string
}

// NewYahooClient creates a new Yahoo Finance client with default HTTP settings.
func NewYahooClient() *YahooClient {
	return &YahooClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    "https://query1.finance.yahoo.com",
	}
}

// NewYahooClientWithBaseURL creates a client pointed at a custom endpoint.
// Used by tests to target an httptest server.
func NewYahooClientWithBaseURL(baseURL string) *YahooClient {
	c := NewYahooClient()
	c.baseURL = baseURL
	return c
}

// FetchQuote fetches the latest quote for a symbol and maps it into a
// model.Quote.
//
// The day-change percent is computed here, at the adapter boundary, from the
// regular market price against the chart previous close. Downstream the
// valuator inverts that percent back into a previous price, so the figure
// must be derived from the same current-price basis it is later divided into.
//
// Validation performed before the quote is accepted:
//   - the response carries at least one chart result
//   - the current price is positive (falling back to the last non-zero close
//     when the meta price is missing)
//   - the previous close is positive before a day-change is derived;
//     otherwise the day-change is reported as zero
func (c *YahooClient) FetchQuote(ctx context.Context, symbol string) (model.Quote, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return model.Quote{}, fmt.Errorf("symbol is required")
	}

	reqURL := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=5d", c.baseURL, url.PathEscape(symbol))
	response, err := c.queryYahoo(ctx, reqURL)
	if err != nil {
		return model.Quote{}, err
	}
	if len(response.Chart.Result) == 0 {
		return model.Quote{}, fmt.Errorf("no results returned for symbol %s", symbol)
	}

	result := response.Chart.Result[0]
	price := result.Meta.RegularMarketPrice

	// Fallback: last non-zero close if the meta price is missing.
	if price <= 0 && len(result.Indicators.Quote) > 0 {
		closes := result.Indicators.Quote[0].Close
		for i := len(closes) - 1; i >= 0; i-- {
			if closes[i] > 0 {
				price = closes[i]
				break
			}
		}
	}
	if price <= 0 {
		return model.Quote{}, fmt.Errorf("no usable price returned for symbol %s", symbol)
	}

	previousClose := result.Meta.ChartPreviousClose
	if previousClose <= 0 {
		previousClose = result.Meta.PreviousClose
	}

	dayChangePercent := 0.0
	if previousClose > 0 {
		dayChangePercent = (price/previousClose - 1) * 100
	}

	currency := result.Meta.Currency
	if currency == "" {
		currency = "USD"
	}

	return model.Quote{
		Symbol:           symbol,
		CurrentPrice:     price,
		DayChangePercent: dayChangePercent,
		Currency:         currency,
		FetchedAt:        time.Now().UTC(),
	}, nil
}

// FetchRate returns how many 'to' units one 'from' unit buys, using Yahoo's
// FX pair symbols (e.g. USDEUR=X).
func (c *YahooClient) FetchRate(ctx context.Context, from, to string) (float64, error) {
	from = strings.ToUpper(strings.TrimSpace(from))
	to = strings.ToUpper(strings.TrimSpace(to))
	if from == "" || to == "" {
		return 0, fmt.Errorf("currency pair is required")
	}
	if from == to {
		return 1, nil
	}

	pair := from + to + "=X"
	reqURL := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1h&range=1d", c.baseURL, url.PathEscape(pair))
	response, err := c.queryYahoo(ctx, reqURL)
	if err != nil {
		return 0, err
	}
	if len(response.Chart.Result) == 0 {
		return 0, fmt.Errorf("no rate returned for pair %s", pair)
	}

	rate := response.Chart.Result[0].Meta.RegularMarketPrice
	if rate <= 0 {
		return 0, fmt.Errorf("invalid rate %v for pair %s", rate, pair)
	}

	return rate, nil
}

// queryYahoo executes an HTTP request against the chart API, parses the JSON,
// and surfaces Yahoo-level errors.
func (c *YahooClient) queryYahoo(ctx context.Context, reqURL string) (yahooResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return yahooResponse{}, err
	}

	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return yahooResponse{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return yahooResponse{}, fmt.Errorf("yahoo http %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return yahooResponse{}, err
	}

	var response yahooResponse
	if err := json.Unmarshal(data, &response); err != nil {
		return yahooResponse{}, err
	}

	if response.Chart.Error != nil {
		return response, fmt.Errorf("yahoo error: %s: %s", response.Chart.Error.Code, response.Chart.Error.Description)
	}

	return response, nil
}

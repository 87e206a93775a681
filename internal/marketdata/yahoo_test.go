package marketdata_test

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tvandenberg/portfolio-tracker/internal/marketdata"
)

// yahooChartBody renders a minimal v8 chart payload for a symbol.
func yahooChartBody(symbol, currency string, price, chartPreviousClose float64, closes []float64) string {
	closesJSON := "["
	for i, c := range closes {
		if i > 0 {
			closesJSON += ","
		}
		closesJSON += fmt.Sprintf("%v", c)
	}
	closesJSON += "]"

	return fmt.Sprintf(`{
		"chart": {
			"result": [{
				"meta": {
					"currency": %q,
					"symbol": %q,
					"regularMarketPrice": %v,
					"chartPreviousClose": %v
				},
				"indicators": {"quote": [{"close": %s}]}
			}],
			"error": null
		}
	}`, currency, symbol, price, chartPreviousClose, closesJSON)
}

// TestYahooClient_FetchQuote tests quote mapping from the chart API.
//
// WHY: The day-change percent stored on a quote is later inverted into a
// previous price during valuation, so it must be derived from the same price
// basis Yahoo reports, not copied from a separate field.
func TestYahooClient_FetchQuote(t *testing.T) {
	t.Run("computes day change from previous close", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, yahooChartBody("AAPL", "USD", 110, 100, []float64{100, 110}))
		}))
		defer server.Close()

		client := marketdata.NewYahooClientWithBaseURL(server.URL)
		quote, err := client.FetchQuote(context.Background(), "AAPL")
		if err != nil {
			t.Fatalf("FetchQuote() returned unexpected error: %v", err)
		}

		if quote.CurrentPrice != 110 {
			t.Errorf("Expected price 110, got %v", quote.CurrentPrice)
		}
		// 110 against a previous close of 100 is a 10% move.
		if math.Abs(quote.DayChangePercent-10) > 1e-9 {
			t.Errorf("Expected day change 10%%, got %v", quote.DayChangePercent)
		}
		if quote.Currency != "USD" {
			t.Errorf("Expected currency USD, got %q", quote.Currency)
		}
		if quote.Symbol != "AAPL" {
			t.Errorf("Expected symbol AAPL, got %q", quote.Symbol)
		}
	})

	t.Run("falls back to last non-zero close when meta price missing", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, yahooChartBody("THIN", "EUR", 0, 50, []float64{48, 52, 0}))
		}))
		defer server.Close()

		client := marketdata.NewYahooClientWithBaseURL(server.URL)
		quote, err := client.FetchQuote(context.Background(), "THIN")
		if err != nil {
			t.Fatalf("FetchQuote() returned unexpected error: %v", err)
		}

		if quote.CurrentPrice != 52 {
			t.Errorf("Expected fallback price 52, got %v", quote.CurrentPrice)
		}
	})

	t.Run("reports zero day change without a previous close", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, yahooChartBody("IPO", "USD", 25, 0, []float64{25}))
		}))
		defer server.Close()

		client := marketdata.NewYahooClientWithBaseURL(server.URL)
		quote, err := client.FetchQuote(context.Background(), "IPO")
		if err != nil {
			t.Fatalf("FetchQuote() returned unexpected error: %v", err)
		}

		if quote.DayChangePercent != 0 {
			t.Errorf("Expected day change 0, got %v", quote.DayChangePercent)
		}
	})

	t.Run("surfaces chart-level errors", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`)
		}))
		defer server.Close()

		client := marketdata.NewYahooClientWithBaseURL(server.URL)
		if _, err := client.FetchQuote(context.Background(), "GONE"); err == nil {
			t.Error("Expected error for delisted symbol, got nil")
		}
	})

	t.Run("rejects empty symbol without calling the API", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("API should not be called for an empty symbol")
		}))
		defer server.Close()

		client := marketdata.NewYahooClientWithBaseURL(server.URL)
		if _, err := client.FetchQuote(context.Background(), "  "); err == nil {
			t.Error("Expected error for empty symbol, got nil")
		}
	})
}

// TestYahooClient_FetchRate tests FX rate fetching via Yahoo pair symbols.
func TestYahooClient_FetchRate(t *testing.T) {
	t.Run("requests the FROMTO=X pair symbol", func(t *testing.T) {
		var requestedPath string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestedPath = r.URL.Path
			fmt.Fprint(w, yahooChartBody("USDEUR=X", "EUR", 0.92, 0.91, nil))
		}))
		defer server.Close()

		client := marketdata.NewYahooClientWithBaseURL(server.URL)
		rate, err := client.FetchRate(context.Background(), "usd", "eur")
		if err != nil {
			t.Fatalf("FetchRate() returned unexpected error: %v", err)
		}

		if rate != 0.92 {
			t.Errorf("Expected rate 0.92, got %v", rate)
		}
		if requestedPath != "/v8/finance/chart/USDEUR=X" {
			t.Errorf("Expected pair path /v8/finance/chart/USDEUR=X, got %q", requestedPath)
		}
	})

	t.Run("identical currencies resolve to 1 without a request", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("API should not be called for an identity pair")
		}))
		defer server.Close()

		client := marketdata.NewYahooClientWithBaseURL(server.URL)
		rate, err := client.FetchRate(context.Background(), "USD", "USD")
		if err != nil {
			t.Fatalf("FetchRate() returned unexpected error: %v", err)
		}
		if rate != 1 {
			t.Errorf("Expected rate 1, got %v", rate)
		}
	})

	t.Run("rejects non-positive rates", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, yahooChartBody("USDEUR=X", "EUR", 0, 0, nil))
		}))
		defer server.Close()

		client := marketdata.NewYahooClientWithBaseURL(server.URL)
		if _, err := client.FetchRate(context.Background(), "USD", "EUR"); err == nil {
			t.Error("Expected error for zero rate, got nil")
		}
	})
}

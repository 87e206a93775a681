package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tvandenberg/portfolio-tracker/internal/api/handlers"
	"github.com/tvandenberg/portfolio-tracker/internal/model"
	"github.com/tvandenberg/portfolio-tracker/internal/testutil"
)

// TestFxHandler_UpdateRate tests the PUT /api/fx/{currency} endpoint.
//
// WHY: The rate table is user-maintained; a bad currency code or non-positive
// rate must be rejected before it can distort every portfolio summary.
func TestFxHandler_UpdateRate(t *testing.T) {
	t.Run("sets rate for an uppercase-normalized currency", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewFxHandler(testutil.NewTestFxService(t, db))

		req := newFxPutRequest("eur", `{"rate":0.92}`)
		w := httptest.NewRecorder()

		handler.UpdateRate(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		var rate model.ExchangeRate
		if err := json.NewDecoder(w.Body).Decode(&rate); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if rate.Currency != "EUR" || rate.Rate != 0.92 {
			t.Errorf("Unexpected rate: %+v", rate)
		}
		testutil.AssertRowCount(t, db, "exchange_rate", 1)
	})

	t.Run("rejects malformed currency code", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewFxHandler(testutil.NewTestFxService(t, db))

		req := newFxPutRequest("eurozone", `{"rate":0.92}`)
		w := httptest.NewRecorder()

		handler.UpdateRate(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})

	t.Run("rejects non-positive rate", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewFxHandler(testutil.NewTestFxService(t, db))

		req := newFxPutRequest("EUR", `{"rate":0}`)
		w := httptest.NewRecorder()

		handler.UpdateRate(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
		testutil.AssertRowCount(t, db, "exchange_rate", 0)
	})
}

// newFxPutRequest builds a PUT /api/fx/{currency} request with a JSON body
// and the chi currency URL param attached.
func newFxPutRequest(currency, body string) *http.Request {
	return testutil.NewRequestWithBodyAndURLParams(http.MethodPut, "/api/fx/"+currency, body,
		map[string]string{"currency": currency})
}

// TestFxHandler_Rates tests the GET /api/fx endpoint.
func TestFxHandler_Rates(t *testing.T) {
	t.Run("lists stored rates", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewFxHandler(testutil.NewTestFxService(t, db))

		testutil.CreateExchangeRate(t, db, "EUR", 0.92)
		testutil.CreateExchangeRate(t, db, "GBP", 0.79)

		req := httptest.NewRequest(http.MethodGet, "/api/fx", nil)
		w := httptest.NewRecorder()

		handler.Rates(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", w.Code)
		}

		var rates []model.ExchangeRate
		if err := json.NewDecoder(w.Body).Decode(&rates); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if len(rates) != 2 {
			t.Errorf("Expected 2 rates, got %d", len(rates))
		}
	})
}

// TestFxHandler_Refresh tests the POST /api/fx/refresh endpoint.
func TestFxHandler_Refresh(t *testing.T) {
	t.Run("refetches stored rates from the provider", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		client := testutil.NewMockMarketDataClient().WithRate("USD", "EUR", 0.88)
		handler := handlers.NewFxHandler(testutil.NewTestFxServiceWithClient(t, db, client))

		testutil.CreateExchangeRate(t, db, "EUR", 0.92)

		req := httptest.NewRequest(http.MethodPost, "/api/fx/refresh", nil)
		w := httptest.NewRecorder()

		handler.Refresh(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		var response handlers.RefreshResponse
		if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if response.Refreshed != 1 {
			t.Errorf("Expected 1 refreshed, got %d", response.Refreshed)
		}
	})
}

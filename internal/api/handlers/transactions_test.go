package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tvandenberg/portfolio-tracker/internal/api/handlers"
	"github.com/tvandenberg/portfolio-tracker/internal/model"
	"github.com/tvandenberg/portfolio-tracker/internal/testutil"
)

// TestTransactionHandler_CreateTransaction tests the POST /api/transaction endpoint.
//
// WHY: Transaction creation is the only write that changes holdings; the
// handler must reject invalid types, non-positive shares, and negative
// prices before anything reaches storage.
func TestTransactionHandler_CreateTransaction(t *testing.T) {
	t.Run("POST /api/transaction creates buy", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)
		handler := handlers.NewTransactionHandler(svc)

		portfolio := testutil.CreatePortfolio(t, db, "Main")
		position := testutil.CreatePosition(t, db, portfolio.ID, "AAPL")

		payload := fmt.Sprintf(`{"positionId":%q,"date":"2026-01-15","type":"buy","shares":10,"price":150.25}`, position.ID)
		req := httptest.NewRequest(http.MethodPost, "/api/transaction/", bytes.NewBufferString(payload))
		w := httptest.NewRecorder()

		handler.CreateTransaction(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("Expected status 201, got %d: %s", w.Code, w.Body.String())
		}

		var response model.Transaction
		if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if response.Shares != 10 || response.Price != 150.25 {
			t.Errorf("Unexpected transaction: %+v", response)
		}
		testutil.AssertRowCount(t, db, `"transaction"`, 1)
	})

	t.Run("rejects unknown transaction type", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)
		handler := handlers.NewTransactionHandler(svc)

		portfolio := testutil.CreatePortfolio(t, db, "Main")
		position := testutil.CreatePosition(t, db, portfolio.ID, "AAPL")

		payload := fmt.Sprintf(`{"positionId":%q,"date":"2026-01-15","type":"dividend","shares":10,"price":1}`, position.ID)
		req := httptest.NewRequest(http.MethodPost, "/api/transaction/", bytes.NewBufferString(payload))
		w := httptest.NewRecorder()

		handler.CreateTransaction(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
		testutil.AssertRowCount(t, db, `"transaction"`, 0)
	})

	t.Run("rejects non-positive shares", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)
		handler := handlers.NewTransactionHandler(svc)

		portfolio := testutil.CreatePortfolio(t, db, "Main")
		position := testutil.CreatePosition(t, db, portfolio.ID, "AAPL")

		payload := fmt.Sprintf(`{"positionId":%q,"date":"2026-01-15","type":"buy","shares":0,"price":10}`, position.ID)
		req := httptest.NewRequest(http.MethodPost, "/api/transaction/", bytes.NewBufferString(payload))
		w := httptest.NewRecorder()

		handler.CreateTransaction(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})

	t.Run("rejects negative price but accepts zero", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)
		handler := handlers.NewTransactionHandler(svc)

		portfolio := testutil.CreatePortfolio(t, db, "Main")
		position := testutil.CreatePosition(t, db, portfolio.ID, "AAPL")

		negative := fmt.Sprintf(`{"positionId":%q,"date":"2026-01-15","type":"buy","shares":1,"price":-1}`, position.ID)
		req := httptest.NewRequest(http.MethodPost, "/api/transaction/", bytes.NewBufferString(negative))
		w := httptest.NewRecorder()
		handler.CreateTransaction(w, req)
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400 for negative price, got %d", w.Code)
		}

		// Zero price is legitimate (e.g. free share grants).
		zero := fmt.Sprintf(`{"positionId":%q,"date":"2026-01-15","type":"buy","shares":1,"price":0}`, position.ID)
		req = httptest.NewRequest(http.MethodPost, "/api/transaction/", bytes.NewBufferString(zero))
		w = httptest.NewRecorder()
		handler.CreateTransaction(w, req)
		if w.Code != http.StatusCreated {
			t.Errorf("Expected status 201 for zero price, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("missing position returns 404", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)
		handler := handlers.NewTransactionHandler(svc)

		payload := fmt.Sprintf(`{"positionId":%q,"date":"2026-01-15","type":"buy","shares":1,"price":10}`, testutil.MakeID())
		req := httptest.NewRequest(http.MethodPost, "/api/transaction/", bytes.NewBufferString(payload))
		w := httptest.NewRecorder()

		handler.CreateTransaction(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected status 404, got %d", w.Code)
		}
	})
}

// TestTransactionHandler_DeleteTransaction tests DELETE /api/transaction/{uuid}.
func TestTransactionHandler_DeleteTransaction(t *testing.T) {
	t.Run("DELETE returns 204 on success", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)
		handler := handlers.NewTransactionHandler(svc)

		portfolio := testutil.CreatePortfolio(t, db, "Main")
		position := testutil.CreatePosition(t, db, portfolio.ID, "AAPL")
		transaction := testutil.CreateBuy(t, db, position.ID, 10, 100)

		req := testutil.NewRequestWithURLParams(http.MethodDelete, "/api/transaction/"+transaction.ID,
			map[string]string{"uuid": transaction.ID})
		w := httptest.NewRecorder()

		handler.DeleteTransaction(w, req)

		if w.Code != http.StatusNoContent {
			t.Errorf("Expected status 204, got %d", w.Code)
		}
		testutil.AssertRowCount(t, db, `"transaction"`, 0)
	})

	t.Run("DELETE of missing transaction returns 404", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)
		handler := handlers.NewTransactionHandler(svc)

		missing := testutil.MakeID()
		req := testutil.NewRequestWithURLParams(http.MethodDelete, "/api/transaction/"+missing,
			map[string]string{"uuid": missing})
		w := httptest.NewRecorder()

		handler.DeleteTransaction(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected status 404, got %d", w.Code)
		}
	})
}

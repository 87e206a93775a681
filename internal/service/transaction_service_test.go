package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/tvandenberg/portfolio-tracker/internal/api/request"
	"github.com/tvandenberg/portfolio-tracker/internal/apperrors"
	"github.com/tvandenberg/portfolio-tracker/internal/model"
	"github.com/tvandenberg/portfolio-tracker/internal/testutil"
)

// TestTransactionService_CreateTransaction tests transaction creation.
//
// WHY: Transactions are the only writes that affect holdings, and they are
// immutable once stored. Creation must verify the target position and record
// exactly what was submitted.
func TestTransactionService_CreateTransaction(t *testing.T) {
	t.Run("creates buy transaction", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)

		portfolio := testutil.CreatePortfolio(t, db, "Main")
		position := testutil.CreatePosition(t, db, portfolio.ID, "AAPL")

		transaction, err := svc.CreateTransaction(context.Background(), request.CreateTransactionRequest{
			PositionID: position.ID,
			Date:       "2026-01-15",
			Type:       model.TransactionBuy,
			Shares:     10,
			Price:      150.25,
		})
		if err != nil {
			t.Fatalf("CreateTransaction() returned unexpected error: %v", err)
		}

		if transaction.ID == "" {
			t.Error("Expected generated ID, got empty string")
		}
		if transaction.Shares != 10 || transaction.Price != 150.25 {
			t.Errorf("Stored transaction mismatch: %+v", transaction)
		}

		testutil.AssertRowCount(t, db, `"transaction"`, 1)
	})

	t.Run("rejects transaction for missing position", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)

		_, err := svc.CreateTransaction(context.Background(), request.CreateTransactionRequest{
			PositionID: testutil.MakeID(),
			Date:       "2026-01-15",
			Type:       model.TransactionBuy,
			Shares:     10,
			Price:      100,
		})
		if !errors.Is(err, apperrors.ErrPositionNotFound) {
			t.Errorf("Expected ErrPositionNotFound, got %v", err)
		}

		testutil.AssertRowCount(t, db, `"transaction"`, 0)
	})

	t.Run("accepts sell for more shares than held", func(t *testing.T) {
		// Over-sells are stored as submitted; the ledger clamps the holding
		// to zero on replay rather than rejecting the record.
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)

		portfolio := testutil.CreatePortfolio(t, db, "Main")
		position := testutil.CreatePosition(t, db, portfolio.ID, "AAPL")
		testutil.CreateBuy(t, db, position.ID, 5, 100)

		_, err := svc.CreateTransaction(context.Background(), request.CreateTransactionRequest{
			PositionID: position.ID,
			Date:       "2026-01-15",
			Type:       model.TransactionSell,
			Shares:     50,
			Price:      100,
		})
		if err != nil {
			t.Fatalf("CreateTransaction() returned unexpected error: %v", err)
		}

		testutil.AssertRowCount(t, db, `"transaction"`, 2)
	})
}

// TestTransactionService_GetTransactionsPerPosition tests retrieval order.
//
// WHY: The ledger replays transactions in stored insertion order, not date
// order. The listing endpoint must return the same order so what the user
// sees matches what the ledger computes.
func TestTransactionService_GetTransactionsPerPosition(t *testing.T) {
	t.Run("returns transactions in insertion order regardless of date", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)

		portfolio := testutil.CreatePortfolio(t, db, "Main")
		position := testutil.CreatePosition(t, db, portfolio.ID, "AAPL")

		// Insert with dates out of chronological order.
		for i, req := range []request.CreateTransactionRequest{
			{PositionID: position.ID, Date: "2026-03-01", Type: model.TransactionBuy, Shares: 1, Price: 10},
			{PositionID: position.ID, Date: "2026-01-01", Type: model.TransactionBuy, Shares: 2, Price: 10},
			{PositionID: position.ID, Date: "2026-02-01", Type: model.TransactionBuy, Shares: 3, Price: 10},
		} {
			if _, err := svc.CreateTransaction(context.Background(), req); err != nil {
				t.Fatalf("CreateTransaction() %d returned unexpected error: %v", i, err)
			}
		}

		transactions, err := svc.GetTransactionsPerPosition(position.ID)
		if err != nil {
			t.Fatalf("GetTransactionsPerPosition() returned unexpected error: %v", err)
		}

		if len(transactions) != 3 {
			t.Fatalf("Expected 3 transactions, got %d", len(transactions))
		}
		for i, wantShares := range []float64{1, 2, 3} {
			if transactions[i].Shares != wantShares {
				t.Errorf("Transaction %d: expected shares %v, got %v", i, wantShares, transactions[i].Shares)
			}
		}
	})

	t.Run("returns empty slice for position without transactions", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)

		portfolio := testutil.CreatePortfolio(t, db, "Main")
		position := testutil.CreatePosition(t, db, portfolio.ID, "AAPL")

		transactions, err := svc.GetTransactionsPerPosition(position.ID)
		if err != nil {
			t.Fatalf("GetTransactionsPerPosition() returned unexpected error: %v", err)
		}
		if len(transactions) != 0 {
			t.Errorf("Expected empty slice, got %d transactions", len(transactions))
		}
	})
}

// TestTransactionService_DeleteTransaction tests whole-record deletion.
//
// WHY: Derived state is never stored, so deleting a transaction must simply
// remove the record; the next valuation replays what remains.
func TestTransactionService_DeleteTransaction(t *testing.T) {
	t.Run("deletes existing transaction", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)

		portfolio := testutil.CreatePortfolio(t, db, "Main")
		position := testutil.CreatePosition(t, db, portfolio.ID, "AAPL")
		transaction := testutil.CreateBuy(t, db, position.ID, 10, 100)

		if err := svc.DeleteTransaction(context.Background(), transaction.ID); err != nil {
			t.Fatalf("DeleteTransaction() returned unexpected error: %v", err)
		}

		testutil.AssertRowCount(t, db, `"transaction"`, 0)
	})

	t.Run("delete of missing transaction returns not found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)

		err := svc.DeleteTransaction(context.Background(), testutil.MakeID())
		if !errors.Is(err, apperrors.ErrTransactionNotFound) {
			t.Errorf("Expected ErrTransactionNotFound, got %v", err)
		}
	})
}

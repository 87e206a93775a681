package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/tvandenberg/portfolio-tracker/internal/apperrors"
	"github.com/tvandenberg/portfolio-tracker/internal/testutil"
)

// TestQuoteService_RefreshAll tests the quote refresh pass.
//
// WHY: Refresh is the only writer of the quote cache. It must cover every
// distinct held symbol exactly once, tolerate individual provider failures,
// and overwrite stale cached rows.
func TestQuoteService_RefreshAll(t *testing.T) {
	t.Run("fetches each distinct symbol once", func(t *testing.T) {
		db := testutil.SetupTestDB(t)

		portfolio := testutil.CreatePortfolio(t, db, "Main")
		other := testutil.CreatePortfolio(t, db, "Other")
		testutil.CreatePosition(t, db, portfolio.ID, "AAPL")
		testutil.CreatePosition(t, db, portfolio.ID, "MSFT")
		// Same symbol in a second portfolio must not trigger a second fetch.
		testutil.CreatePosition(t, db, other.ID, "AAPL")

		client := testutil.NewMockMarketDataClient().
			WithQuote("AAPL", 150, 1.5).
			WithQuote("MSFT", 300, -0.5)
		svc := testutil.NewTestQuoteService(t, db, client)

		refreshed, err := svc.RefreshAll(context.Background())
		if err != nil {
			t.Fatalf("RefreshAll() returned unexpected error: %v", err)
		}

		if refreshed != 2 {
			t.Errorf("Expected 2 symbols refreshed, got %d", refreshed)
		}
		if client.FetchCount != 2 {
			t.Errorf("Expected 2 provider fetches, got %d", client.FetchCount)
		}
		testutil.AssertRowCount(t, db, "quote", 2)

		quote, err := svc.GetQuote("AAPL")
		if err != nil {
			t.Fatalf("GetQuote() returned unexpected error: %v", err)
		}
		if quote.CurrentPrice != 150 || quote.DayChangePercent != 1.5 {
			t.Errorf("Cached quote mismatch: %+v", quote)
		}
	})

	t.Run("skips failing symbols and refreshes the rest", func(t *testing.T) {
		db := testutil.SetupTestDB(t)

		portfolio := testutil.CreatePortfolio(t, db, "Main")
		testutil.CreatePosition(t, db, portfolio.ID, "AAPL")
		testutil.CreatePosition(t, db, portfolio.ID, "BROKEN")

		// Only AAPL is registered; BROKEN fails with an unknown-symbol error.
		client := testutil.NewMockMarketDataClient().WithQuote("AAPL", 150, 0)
		svc := testutil.NewTestQuoteService(t, db, client)

		refreshed, err := svc.RefreshAll(context.Background())
		if err != nil {
			t.Fatalf("RefreshAll() returned unexpected error: %v", err)
		}

		if refreshed != 1 {
			t.Errorf("Expected 1 symbol refreshed, got %d", refreshed)
		}
		testutil.AssertRowCount(t, db, "quote", 1)
	})

	t.Run("overwrites existing cached quote", func(t *testing.T) {
		db := testutil.SetupTestDB(t)

		portfolio := testutil.CreatePortfolio(t, db, "Main")
		testutil.CreatePosition(t, db, portfolio.ID, "AAPL")
		testutil.CreateQuote(t, db, "AAPL", 100)

		client := testutil.NewMockMarketDataClient().WithQuote("AAPL", 120, 2)
		svc := testutil.NewTestQuoteService(t, db, client)

		if _, err := svc.RefreshAll(context.Background()); err != nil {
			t.Fatalf("RefreshAll() returned unexpected error: %v", err)
		}

		quote, err := svc.GetQuote("AAPL")
		if err != nil {
			t.Fatalf("GetQuote() returned unexpected error: %v", err)
		}
		if quote.CurrentPrice != 120 {
			t.Errorf("Expected refreshed price 120, got %v", quote.CurrentPrice)
		}
		testutil.AssertRowCount(t, db, "quote", 1)
	})

	t.Run("no symbols means no fetches", func(t *testing.T) {
		db := testutil.SetupTestDB(t)

		client := testutil.NewMockMarketDataClient()
		svc := testutil.NewTestQuoteService(t, db, client)

		refreshed, err := svc.RefreshAll(context.Background())
		if err != nil {
			t.Fatalf("RefreshAll() returned unexpected error: %v", err)
		}
		if refreshed != 0 || client.FetchCount != 0 {
			t.Errorf("Expected no work, got refreshed=%d fetches=%d", refreshed, client.FetchCount)
		}
	})
}

// TestQuoteService_GetQuote tests cache reads.
//
// WHY: The valuation path depends on missing quotes being reported as a
// distinct sentinel so callers can fall back to zero-value quotes.
func TestQuoteService_GetQuote(t *testing.T) {
	t.Run("missing symbol returns quote not found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestQuoteService(t, db, testutil.NewMockMarketDataClient())

		_, err := svc.GetQuote("NOPE")
		if !errors.Is(err, apperrors.ErrQuoteNotFound) {
			t.Errorf("Expected ErrQuoteNotFound, got %v", err)
		}
	})
}

package validation_test

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/tvandenberg/portfolio-tracker/internal/api/request"
	"github.com/tvandenberg/portfolio-tracker/internal/validation"
)

// TestValidateCreateTransaction tests transaction request validation.
//
// WHY: These rules are the only gate between raw JSON and the ledger; a type
// or share count that slips through here would silently corrupt replay.
func TestValidateCreateTransaction(t *testing.T) {
	valid := func() request.CreateTransactionRequest {
		return request.CreateTransactionRequest{
			PositionID: uuid.NewString(),
			Date:       "2026-01-15",
			Type:       "buy",
			Shares:     10,
			Price:      150.25,
		}
	}

	t.Run("accepts a valid buy", func(t *testing.T) {
		if err := validation.ValidateCreateTransaction(valid()); err != nil {
			t.Errorf("Expected no error, got %v", err)
		}
	})

	t.Run("accepts a sell with zero price", func(t *testing.T) {
		req := valid()
		req.Type = "sell"
		req.Price = 0
		if err := validation.ValidateCreateTransaction(req); err != nil {
			t.Errorf("Expected no error, got %v", err)
		}
	})

	t.Run("rejects malformed position ID", func(t *testing.T) {
		req := valid()
		req.PositionID = "not-a-uuid"
		if !errors.Is(validation.ValidateCreateTransaction(req), validation.ErrInvalidUUID) {
			t.Error("Expected ErrInvalidUUID")
		}
	})

	t.Run("collects per-field errors", func(t *testing.T) {
		req := valid()
		req.Date = "15-01-2026"
		req.Type = "dividend"
		req.Shares = 0
		req.Price = -1

		err := validation.ValidateCreateTransaction(req)
		if err == nil {
			t.Fatal("Expected validation error, got nil")
		}

		var vErr *validation.Error
		if !errors.As(err, &vErr) {
			t.Fatalf("Expected *validation.Error, got %T", err)
		}
		for _, field := range []string{"date", "type", "shares", "price"} {
			if _, ok := vErr.Fields[field]; !ok {
				t.Errorf("Expected error for field %q, got %v", field, vErr.Fields)
			}
		}
	})

	t.Run("rejects missing date", func(t *testing.T) {
		req := valid()
		req.Date = ""
		err := validation.ValidateCreateTransaction(req)
		if err == nil {
			t.Fatal("Expected validation error, got nil")
		}
		var vErr *validation.Error
		if !errors.As(err, &vErr) {
			t.Fatalf("Expected *validation.Error, got %T", err)
		}
		if vErr.Fields["date"] != "date is required" {
			t.Errorf("Unexpected date error: %q", vErr.Fields["date"])
		}
	})
}

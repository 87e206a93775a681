package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tvandenberg/portfolio-tracker/internal/api/middleware"
	"github.com/tvandenberg/portfolio-tracker/internal/testutil"
)

// TestValidateUUIDMiddleware tests the UUID validation middleware.
//
// WHY: Every entity route relies on this middleware to reject malformed IDs
// before a handler runs, so handlers can assume a syntactically valid UUID.
func TestValidateUUIDMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	wrapped := middleware.ValidateUUIDMiddleware(next)

	t.Run("passes valid UUID through", func(t *testing.T) {
		id := testutil.MakeID()
		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/portfolio/"+id,
			map[string]string{"uuid": id})
		w := httptest.NewRecorder()

		wrapped.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected status 200, got %d", w.Code)
		}
	})

	t.Run("rejects malformed UUID", func(t *testing.T) {
		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/portfolio/not-a-uuid",
			map[string]string{"uuid": "not-a-uuid"})
		w := httptest.NewRecorder()

		wrapped.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})

	t.Run("rejects missing UUID parameter", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/portfolio/", nil)
		w := httptest.NewRecorder()

		wrapped.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})
}

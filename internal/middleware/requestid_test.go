package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRequestID(t *testing.T) {
	t.Run("sets the response header and context value", func(t *testing.T) {
		var ctxID string
		inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctxID = GetRequestID(r.Context())
			w.WriteHeader(http.StatusOK)
		})

		handler := RequestID(inner)

		req := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		headerID := rr.Header().Get("X-Request-ID")
		if headerID == "" {
			t.Fatal("X-Request-ID header should be set")
		}
		if ctxID != headerID {
			t.Errorf("context id %q does not match header id %q", ctxID, headerID)
		}
	})

	t.Run("assigns a fresh id per request", func(t *testing.T) {
		inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})

		handler := RequestID(inner)

		ids := map[string]bool{}
		for i := 0; i < 3; i++ {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)
			ids[rr.Header().Get("X-Request-ID")] = true
		}
		if len(ids) != 3 {
			t.Errorf("expected 3 distinct ids, got %d", len(ids))
		}
	})
}

func TestGetRequestID(t *testing.T) {
	t.Run("returns empty string for a bare context", func(t *testing.T) {
		if got := GetRequestID(context.Background()); got != "" {
			t.Errorf("got %q, want empty string", got)
		}
	})
}

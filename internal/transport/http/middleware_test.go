package http

import (
	"bytes"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRequestLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := log.New(&buf, "", 0)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	req := httptest.NewRequest(http.MethodGet, "/slots", nil)
	rec := httptest.NewRecorder()

	RequestLogger(next, logger).ServeHTTP(rec, req)

	if rec.Code != http.StatusTeapot {
		t.Fatalf("expected status passthrough, got %d", rec.Code)
	}
	line := buf.String()
	if !strings.Contains(line, "method=GET") || !strings.Contains(line, "path=/slots") || !strings.Contains(line, "status=418") {
		t.Fatalf("unexpected log line %q", line)
	}
}

func TestRateLimit(t *testing.T) {
	t.Parallel()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("rejects once the bucket is empty", func(t *testing.T) {
		t.Parallel()
		handler := RateLimit(1, 2, next)

		statuses := make([]int, 0, 3)
		for i := 0; i < 3; i++ {
			req := httptest.NewRequest(http.MethodPost, "/holds", nil)
			req.RemoteAddr = "10.0.0.1:1234"
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			statuses = append(statuses, rec.Code)
		}

		if statuses[0] != http.StatusOK || statuses[1] != http.StatusOK {
			t.Fatalf("expected first two requests allowed, got %v", statuses)
		}
		if statuses[2] != http.StatusTooManyRequests {
			t.Fatalf("expected third request limited, got %v", statuses)
		}
	})

	t.Run("clients are limited independently", func(t *testing.T) {
		t.Parallel()
		handler := RateLimit(1, 1, next)

		first := httptest.NewRequest(http.MethodPost, "/holds", nil)
		first.RemoteAddr = "10.0.0.2:1234"
		rec1 := httptest.NewRecorder()
		handler.ServeHTTP(rec1, first)

		second := httptest.NewRequest(http.MethodPost, "/holds", nil)
		second.RemoteAddr = "10.0.0.3:1234"
		rec2 := httptest.NewRecorder()
		handler.ServeHTTP(rec2, second)

		if rec1.Code != http.StatusOK || rec2.Code != http.StatusOK {
			t.Fatalf("expected both clients allowed, got %d and %d", rec1.Code, rec2.Code)
		}
	})

	t.Run("disabled when rps is zero", func(t *testing.T) {
		t.Parallel()
		handler := RateLimit(0, 0, next)

		for i := 0; i < 10; i++ {
			req := httptest.NewRequest(http.MethodPost, "/holds", nil)
			req.RemoteAddr = "10.0.0.4:1234"
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			if rec.Code != http.StatusOK {
				t.Fatalf("expected all requests allowed, got %d", rec.Code)
			}
		}
	})
}

package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/time/rate"
)

func TestIPRateLimiter_PerIPBuckets(t *testing.T) {
	limiter := NewIPRateLimiter(rate.Limit(1), 2)

	a := limiter.GetLimiter("10.0.0.1")
	if !a.Allow() || !a.Allow() {
		t.Fatal("burst should allow two requests")
	}
	if a.Allow() {
		t.Error("third request should exceed the burst")
	}

	// A different IP gets its own bucket.
	b := limiter.GetLimiter("10.0.0.2")
	if !b.Allow() {
		t.Error("fresh IP should be allowed")
	}

	// Same IP returns the same limiter, still drained.
	if limiter.GetLimiter("10.0.0.1").Allow() {
		t.Error("expected 10.0.0.1 to stay drained")
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	limiter := NewIPRateLimiter(rate.Limit(1), 1)
	handler := RateLimitMiddleware(limiter)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "192.0.2.1:4444"

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("first request: expected 200, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("second request: expected 429, got %d", w.Code)
	}
	if w.Header().Get("Retry-After") == "" {
		t.Error("expected Retry-After header on 429")
	}
}

func TestExtractIP(t *testing.T) {
	tests := []struct {
		remoteAddr string
		want       string
	}{
		{"192.0.2.1:4444", "192.0.2.1"},
		{"192.0.2.1", "192.0.2.1"},
		{"[::1]:8080", "::1"},
	}

	for _, tt := range tests {
		req := httptest.NewRequest("GET", "/", nil)
		req.RemoteAddr = tt.remoteAddr
		if got := extractIP(req); got != tt.want {
			t.Errorf("extractIP(%q) = %q, want %q", tt.remoteAddr, got, tt.want)
		}
	}
}

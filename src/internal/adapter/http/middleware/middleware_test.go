package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRequestID_GeneratesWhenMissing(t *testing.T) {
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFrom(r.Context())
	})

	rr := httptest.NewRecorder()
	RequestID(next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if seen == "" {
		t.Fatal("expected request id in context")
	}
	if rr.Header().Get(RequestIDHeader) != seen {
		t.Fatalf("expected response header %q, got %q", seen, rr.Header().Get(RequestIDHeader))
	}
}

func TestRequestID_ReusesCallerValue(t *testing.T) {
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFrom(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "mobile-123")
	RequestID(next).ServeHTTP(httptest.NewRecorder(), req)

	if seen != "mobile-123" {
		t.Fatalf("expected caller id, got %q", seen)
	}
}

func TestRateLimiter_BlocksAfterCapacityAndRefills(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute)
	defer rl.Stop()

	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	if !rl.Allow("10.0.0.1") || !rl.Allow("10.0.0.1") {
		t.Fatal("expected first two requests to pass")
	}
	if rl.Allow("10.0.0.1") {
		t.Fatal("expected third request to be limited")
	}
	if !rl.Allow("10.0.0.2") {
		t.Fatal("expected other clients to keep their own bucket")
	}

	now = now.Add(time.Minute)
	if !rl.Allow("10.0.0.1") {
		t.Fatal("expected bucket to refill after the window")
	}
}

func TestRateLimiter_RefillsEvenlyOverWindow(t *testing.T) {
	rl := NewRateLimiter(4, time.Minute)
	defer rl.Stop()

	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	for i := 0; i < 4; i++ {
		if !rl.Allow("10.0.0.1") {
			t.Fatalf("expected request %d to pass", i+1)
		}
	}
	if rl.Allow("10.0.0.1") {
		t.Fatal("expected bucket to be empty")
	}

	now = now.Add(15 * time.Second)
	if !rl.Allow("10.0.0.1") {
		t.Fatal("expected one token after a quarter window")
	}
	if rl.Allow("10.0.0.1") {
		t.Fatal("expected only one token after a quarter window")
	}
}

func TestRateLimiter_CleanupDropsIdleClients(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	defer rl.Stop()

	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	rl.Allow("10.0.0.1")
	now = now.Add(bucketIdleThreshold / 2)
	rl.Allow("10.0.0.2")

	now = now.Add(bucketIdleThreshold/2 + time.Second)
	rl.cleanup()

	if _, ok := rl.clients["10.0.0.1"]; ok {
		t.Fatal("expected idle client to be dropped")
	}
	if _, ok := rl.clients["10.0.0.2"]; !ok {
		t.Fatal("expected recent client to be kept")
	}
}

func TestRateLimiter_MiddlewareReturns429(t *testing.T) {
	rl := NewRateLimiter(1, time.Hour)
	defer rl.Stop()

	handler := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/", nil))
	second := httptest.NewRecorder()
	handler.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/", nil))

	if first.Code != http.StatusOK || second.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 200 then 429, got %d then %d", first.Code, second.Code)
	}
}

func TestRecovery_ConvertsPanicTo500(t *testing.T) {
	handler := Recovery(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, rr.Code)
	}
}

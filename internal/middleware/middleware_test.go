package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bookinub-backend/internal/auth"
)

func TestMemoryCounterWindow(t *testing.T) {
	c := NewMemoryCounter()
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	for want := int64(1); want <= 3; want++ {
		got, err := c.Incr(context.Background(), "k", time.Minute)
		if err != nil {
			t.Fatalf("Incr error: %v", err)
		}
		if got != want {
			t.Fatalf("expected %d, got %d", want, got)
		}
	}

	now = now.Add(2 * time.Minute)
	got, _ := c.Incr(context.Background(), "k", time.Minute)
	if got != 1 {
		t.Fatalf("expected window reset, got %d", got)
	}
}

type failingCounter struct{}

func (failingCounter) Incr(context.Context, string, time.Duration) (int64, error) {
	return 0, errors.New("backend down")
}

func TestRateLimiterFailsOpen(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute, failingCounter{})
	for i := 0; i < 3; i++ {
		if !rl.Allow(context.Background(), "k") {
			t.Fatalf("expected allow when counter errors")
		}
	}
}

func TestRateLimiterLimits(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute, nil)
	ctx := context.Background()
	if !rl.Allow(ctx, "k") || !rl.Allow(ctx, "k") {
		t.Fatalf("expected first two hits to pass")
	}
	if rl.Allow(ctx, "k") {
		t.Fatalf("expected third hit to be limited")
	}
	if !rl.Allow(ctx, "other") {
		t.Fatalf("keys must be independent")
	}
}

func TestRequestIDPropagation(t *testing.T) {
	var seen string
	h := RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if seen == "" || rec.Header().Get(RequestIDHeader) != seen {
		t.Fatalf("expected generated id echoed, got %q / %q", seen, rec.Header().Get(RequestIDHeader))
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if seen != "abc-123" {
		t.Fatalf("expected incoming id to be kept, got %q", seen)
	}
}

func TestAdminAuth(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	manager := &auth.Manager{Secret: []byte("s"), AccessTTL: time.Minute, RefreshTTL: time.Hour, Issuer: "test"}
	h := AdminAuth("key", manager)(ok)

	serve := func(mutate func(*http.Request)) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		mutate(req)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	if code := serve(func(*http.Request) {}); code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
	if code := serve(func(r *http.Request) { r.Header.Set("X-Admin-Key", "key") }); code != http.StatusNoContent {
		t.Fatalf("expected pass with key, got %d", code)
	}

	token, err := manager.NewAccessToken(auth.RoleAdmin)
	if err != nil {
		t.Fatalf("NewAccessToken error: %v", err)
	}
	if code := serve(func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: auth.AccessCookie, Value: token})
	}); code != http.StatusNoContent {
		t.Fatalf("expected pass with access cookie, got %d", code)
	}

	unconfigured := AdminAuth("", nil)(ok)
	rec := httptest.NewRecorder()
	unconfigured.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}

func TestRateLimitIgnoresForwardedFor(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute, nil)
	h := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	codes := make([]int, 0, 2)
	for _, xff := range []string{"198.51.100.1", "198.51.100.2"} {
		req := httptest.NewRequest(http.MethodPost, "/bookings", nil)
		req.RemoteAddr = "203.0.113.7:4321"
		req.Header.Set("X-Forwarded-For", xff)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	if codes[0] != http.StatusNoContent || codes[1] != http.StatusTooManyRequests {
		t.Fatalf("expected second request from same peer to be limited, got %v", codes)
	}
}

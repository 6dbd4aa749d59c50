package middleware

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"bookinub-backend/internal/transport"
)

// Counter counts hits for a key within a fixed window starting at the first hit.
type Counter interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}

type RateLimiter struct {
	limit   int
	window  time.Duration
	counter Counter
}

func NewRateLimiter(limit int, window time.Duration, counter Counter) *RateLimiter {
	if counter == nil {
		counter = NewMemoryCounter()
	}
	return &RateLimiter{
		limit:   limit,
		window:  window,
		counter: counter,
	}
}

// Allow fails open when the counter backend errors.
func (rl *RateLimiter) Allow(ctx context.Context, key string) bool {
	if rl.limit <= 0 {
		return true
	}
	n, err := rl.counter.Incr(ctx, key, rl.window)
	if err != nil {
		return true
	}
	return n <= int64(rl.limit)
}

func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := clientIP(r) + ":" + r.Method + ":" + r.URL.Path
		if !rl.Allow(r.Context(), key) {
			w.Header().Set("Retry-After", formatSeconds(rl.window))
			transport.WriteError(w, http.StatusTooManyRequests, "rate limit exceeded", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type MemoryCounter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	now     func() time.Time
}

type bucket struct {
	count int64
	reset time.Time
}

func NewMemoryCounter() *MemoryCounter {
	return &MemoryCounter{
		buckets: make(map[string]*bucket),
		now:     time.Now,
	}
}

func (c *MemoryCounter) Incr(_ context.Context, key string, window time.Duration) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	b, ok := c.buckets[key]
	if !ok || now.After(b.reset) {
		c.buckets[key] = &bucket{count: 1, reset: now.Add(window)}
		c.sweep(now)
		return 1, nil
	}

	b.count++
	return b.count, nil
}

// sweep drops expired buckets; called with mu held.
func (c *MemoryCounter) sweep(now time.Time) {
	if len(c.buckets) < 1024 {
		return
	}
	for key, b := range c.buckets {
		if now.After(b.reset) {
			delete(c.buckets, key)
		}
	}
}

// clientIP keys on RemoteAddr only; chi's RealIP has already applied proxy
// headers upstream.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func formatSeconds(d time.Duration) string {
	secs := int(d / time.Second)
	if secs < 1 {
		secs = 1
	}
	return strconv.Itoa(secs)
}

package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestLimiter(requests int, window time.Duration) (*RateLimiter, *fakeClock) {
	clock := &fakeClock{t: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	rl := NewRateLimiter(requests, window)
	rl.now = clock.now
	return rl, clock
}

func TestRateLimiter_BurstAllowed(t *testing.T) {
	rl, _ := newTestLimiter(100, 15*time.Minute)

	for i := 0; i < 100; i++ {
		remaining, _, ok := rl.Reserve("127.0.0.1")
		if !ok {
			t.Fatalf("request %d should be allowed within burst", i+1)
		}
		if remaining != 99-i {
			t.Errorf("request %d remaining = %d, want %d", i+1, remaining, 99-i)
		}
	}

	_, retryAfter, ok := rl.Reserve("127.0.0.1")
	if ok {
		t.Error("request after burst exhausted should be denied")
	}
	// One token per 9s at 100 per 15m.
	if retryAfter < 8900*time.Millisecond || retryAfter > 9100*time.Millisecond {
		t.Errorf("retryAfter = %v, want about 9s", retryAfter)
	}
}

func TestRateLimiter_RefillOverTime(t *testing.T) {
	rl, clock := newTestLimiter(10, time.Minute)

	for i := 0; i < 10; i++ {
		rl.Reserve("127.0.0.1")
	}
	if _, _, ok := rl.Reserve("127.0.0.1"); ok {
		t.Fatal("should be denied after burst exhausted")
	}

	clock.advance(7 * time.Second)

	if _, _, ok := rl.Reserve("127.0.0.1"); !ok {
		t.Error("should be allowed after refill time")
	}
}

func TestRateLimiter_DeniedRequestsDoNotConsume(t *testing.T) {
	rl, clock := newTestLimiter(2, 2*time.Second)

	rl.Reserve("127.0.0.1")
	rl.Reserve("127.0.0.1")
	for i := 0; i < 5; i++ {
		if _, _, ok := rl.Reserve("127.0.0.1"); ok {
			t.Fatal("should be denied")
		}
	}

	clock.advance(time.Second)
	if _, _, ok := rl.Reserve("127.0.0.1"); !ok {
		t.Error("refused requests should not push the next token further out")
	}
}

func TestRateLimiter_SeparateIPsAreSeparate(t *testing.T) {
	rl, _ := newTestLimiter(5, time.Minute)

	for i := 0; i < 5; i++ {
		rl.Reserve("192.168.1.1")
	}
	if _, _, ok := rl.Reserve("192.168.1.1"); ok {
		t.Error("IP1 should be denied after burst")
	}
	if _, _, ok := rl.Reserve("192.168.1.2"); !ok {
		t.Error("IP2 should be allowed")
	}
}

func TestRateLimiter_EvictsIdleClients(t *testing.T) {
	rl, clock := newTestLimiter(5, time.Minute)

	rl.Reserve("10.0.0.1")
	rl.Reserve("10.0.0.2")
	if rl.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", rl.Len())
	}

	clock.advance(2 * time.Minute)
	rl.Reserve("10.0.0.3")

	if rl.Len() != 1 {
		t.Errorf("Len() = %d, want 1 after idle eviction", rl.Len())
	}
}

func TestRateLimiter_Middleware(t *testing.T) {
	rl, _ := newTestLimiter(2, time.Minute)
	handler := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	do := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/strings", nil)
		req.RemoteAddr = "203.0.113.7:5555"
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		return w
	}

	for i := 0; i < 2; i++ {
		if w := do(); w.Code != http.StatusOK {
			t.Fatalf("request %d status = %d, want 200", i+1, w.Code)
		}
	}

	w := do()
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", w.Code)
	}
	if w.Header().Get("Retry-After") != "30" {
		t.Errorf("Retry-After = %q, want 30", w.Header().Get("Retry-After"))
	}
	if w.Header().Get("RateLimit-Limit") != "2" || w.Header().Get("RateLimit-Remaining") != "0" {
		t.Errorf("RateLimit headers = %q/%q", w.Header().Get("RateLimit-Limit"), w.Header().Get("RateLimit-Remaining"))
	}

	var body rateLimitResponse
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Status != http.StatusTooManyRequests || body.Error != RateLimitMessage {
		t.Errorf("body = %+v", body)
	}
}

func TestExtractIP(t *testing.T) {
	tests := []struct {
		remoteAddr string
		want       string
	}{
		{"192.168.1.1:12345", "192.168.1.1"},
		{"[::1]:8080", "::1"},
		{"10.0.0.1", "10.0.0.1"},
	}

	for _, tt := range tests {
		t.Run(tt.remoteAddr, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			req.Header.Set("X-Forwarded-For", "1.2.3.4")
			if got := extractIP(req); got != tt.want {
				t.Errorf("extractIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

package http

import (
	"encoding/json"
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"stringanalyzer/internal/contextutil"

	"golang.org/x/time/rate"
)

// RateLimitMessage is the error text sent with a 429.
const RateLimitMessage = "Too Many Requests: please try again later"

// RateLimiter allows each client IP a fixed number of requests per window,
// refilling continuously.
type RateLimiter struct {
	mu       sync.Mutex
	clients  map[string]*client
	limit    rate.Limit
	burst    int
	idleTTL  time.Duration
	lastScan time.Time
	now      func() time.Time
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter allows requests per window for each client.
func NewRateLimiter(requests int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		clients: make(map[string]*client),
		limit:   rate.Every(window / time.Duration(requests)),
		burst:   requests,
		idleTTL: window,
		now:     time.Now,
	}
}

// Reserve consumes a token for ip. It returns the tokens left and, when the
// request is refused, how long the client must wait.
func (rl *RateLimiter) Reserve(ip string) (remaining int, retryAfter time.Duration, ok bool) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	rl.evictIdle(now)

	c, exists := rl.clients[ip]
	if !exists {
		c = &client{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.clients[ip] = c
	}
	c.lastSeen = now

	res := c.limiter.ReserveN(now, 1)
	if delay := res.DelayFrom(now); delay > 0 {
		res.CancelAt(now)
		return 0, delay, false
	}
	return int(math.Max(0, math.Floor(c.limiter.TokensAt(now)))), 0, true
}

// evictIdle drops clients that have been quiet for a full window. It runs at
// most once per window, inline with Reserve.
func (rl *RateLimiter) evictIdle(now time.Time) {
	if now.Sub(rl.lastScan) < rl.idleTTL {
		return
	}
	rl.lastScan = now
	for ip, c := range rl.clients {
		if now.Sub(c.lastSeen) > rl.idleTTL {
			delete(rl.clients, ip)
		}
	}
}

// Len reports the number of tracked clients.
func (rl *RateLimiter) Len() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.clients)
}

type rateLimitResponse struct {
	Status int    `json:"status"`
	Error  string `json:"error"`
}

// Middleware returns an HTTP middleware that applies rate limiting.
// Returns 429 Too Many Requests when the client's budget is spent.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := extractIP(r)

		remaining, retryAfter, ok := rl.Reserve(ip)
		w.Header().Set("RateLimit-Limit", strconv.Itoa(rl.burst))
		w.Header().Set("RateLimit-Remaining", strconv.Itoa(remaining))

		if !ok {
			ctx := r.Context()
			contextutil.LoggerFromContext(ctx).WarnContext(ctx, "rate limit exceeded", "client_ip", ip)

			w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(retryAfter.Seconds()))))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_ = json.NewEncoder(w).Encode(rateLimitResponse{
				Status: http.StatusTooManyRequests,
				Error:  RateLimitMessage,
			})
			return
		}

		next.ServeHTTP(w, r)
	})
}

// extractIP returns the client IP from RemoteAddr. Forwarding headers are
// ignored since they can be spoofed.
func extractIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/api-sage/mortgage-quote-service/src/internal/logger"
	"golang.org/x/time/rate"
)

const (
	bucketIdleThreshold = time.Hour
	cleanupInterval     = 30 * time.Minute
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter gives each client IP a token bucket of capacity requests that
// refills evenly over window.
type RateLimiter struct {
	mu          sync.Mutex
	capacity    int
	limit       rate.Limit
	clients     map[string]*clientLimiter
	now         func() time.Time
	stopCleanup chan struct{}
	stopOnce    sync.Once
}

func NewRateLimiter(capacity int, window time.Duration) *RateLimiter {
	limit := rate.Inf
	if capacity > 0 && window > 0 {
		limit = rate.Every(window / time.Duration(capacity))
	}
	rl := &RateLimiter{
		capacity:    capacity,
		limit:       limit,
		clients:     make(map[string]*clientLimiter),
		now:         time.Now,
		stopCleanup: make(chan struct{}),
	}
	go rl.cleanupLoop()
	return rl
}

func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup()
		case <-rl.stopCleanup:
			return
		}
	}
}

func (rl *RateLimiter) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for ip, client := range rl.clients {
		if now.Sub(client.lastSeen) > bucketIdleThreshold {
			delete(rl.clients, ip)
		}
	}
}

func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stopCleanup) })
}

func (rl *RateLimiter) Allow(ip string) bool {
	if rl.capacity <= 0 {
		return false
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	client, exists := rl.clients[ip]
	if !exists {
		client = &clientLimiter{limiter: rate.NewLimiter(rl.limit, rl.capacity)}
		rl.clients[ip] = client
	}
	client.lastSeen = now

	return client.limiter.AllowN(now, 1)
}

func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}

		if !rl.Allow(ip) {
			logger.Warn("rate limit exceeded", nil, logger.Fields{
				"requestId": RequestIDFrom(r.Context()),
				"path":      r.URL.Path,
			})
			writeError(w, http.StatusTooManyRequests, "Demasiadas solicitudes, intente más tarde")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Package ratelimit throttles dashboard requests per client IP.
package ratelimit

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// Clock lets tests drive token refill.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// Config holds the per-client token bucket settings.
type Config struct {
	RequestsPerSecond float64
	Burst             int
	// IdleTTL is how long an unused client bucket is kept (default: 10m).
	IdleTTL time.Duration
	// TrustProxy reads the client address from proxy headers.
	TrustProxy bool
	// Clock for testing (nil uses real time)
	Clock Clock
}

// DefaultConfig returns the limits used when the config file sets none.
func DefaultConfig() *Config {
	return &Config{
		RequestsPerSecond: 20,
		Burst:             40,
		IdleTTL:           10 * time.Minute,
	}
}

// Result is the outcome of one Allow check.
type Result struct {
	Allowed    bool
	RetryAfter time.Duration
}

type client struct {
	limiter *rate.Limiter
	lastAt  time.Time
}

// Limiter keeps one token bucket per client IP.
type Limiter struct {
	config  Config
	clock   Clock
	mu      sync.Mutex
	clients map[string]*client

	cleanupCtx    context.Context
	cleanupCancel context.CancelFunc
	cleanupOnce   sync.Once
	cleanupWg     sync.WaitGroup
}

func New(cfg *Config) *Limiter {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	config := *cfg
	if config.IdleTTL <= 0 {
		config.IdleTTL = 10 * time.Minute
	}
	clock := config.Clock
	if clock == nil {
		clock = realClock{}
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Limiter{
		config:        config,
		clock:         clock,
		clients:       make(map[string]*client),
		cleanupCtx:    ctx,
		cleanupCancel: cancel,
	}
}

// Close stops the eviction goroutine.
func (l *Limiter) Close() {
	l.cleanupCancel()
	l.cleanupWg.Wait()
}

// Allow takes one token from ip's bucket.
func (l *Limiter) Allow(ip string) Result {
	l.startCleanup()
	now := l.clock.Now()

	l.mu.Lock()
	c := l.clients[ip]
	if c == nil {
		c = &client{limiter: rate.NewLimiter(rate.Limit(l.config.RequestsPerSecond), l.config.Burst)}
		l.clients[ip] = c
	}
	c.lastAt = now
	l.mu.Unlock()

	reservation := c.limiter.ReserveN(now, 1)
	if !reservation.OK() {
		return Result{Allowed: false, RetryAfter: time.Second}
	}
	delay := reservation.DelayFrom(now)
	if delay == 0 {
		return Result{Allowed: true}
	}
	reservation.CancelAt(now)
	return Result{Allowed: false, RetryAfter: delay}
}

// Clients returns the number of tracked client buckets.
func (l *Limiter) Clients() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

// Middleware rejects requests over the limit with 429 and a Retry-After
// header. Static assets and health checks are not limited.
func (l *Limiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isExempt(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		ip := GetClientIP(r, l.config.TrustProxy)
		result := l.Allow(ip)
		if !result.Allowed {
			seconds := int(math.Ceil(result.RetryAfter.Seconds()))
			if seconds < 1 {
				seconds = 1
			}
			log.Ctx(r.Context()).Warn().
				Str("event", "rate_limit_exceeded").
				Str("ip", ip).
				Str("path", r.URL.Path).
				Dur("retry_after", result.RetryAfter).
				Msg("Request rate limit exceeded")
			w.Header().Set("Retry-After", strconv.Itoa(seconds))
			http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func isExempt(path string) bool {
	return path == "/health" || strings.HasPrefix(path, "/static/")
}

func (l *Limiter) startCleanup() {
	l.cleanupOnce.Do(func() {
		l.cleanupWg.Add(1)
		go func() {
			defer l.cleanupWg.Done()
			ticker := time.NewTicker(time.Minute)
			defer ticker.Stop()
			for {
				select {
				case <-l.cleanupCtx.Done():
					return
				case <-ticker.C:
					l.cleanup()
				}
			}
		}()
	})
}

// cleanup drops buckets idle for longer than IdleTTL.
func (l *Limiter) cleanup() {
	now := l.clock.Now()
	l.mu.Lock()
	defer l.mu.Unlock()

	for ip, c := range l.clients {
		if now.Sub(c.lastAt) > l.config.IdleTTL {
			delete(l.clients, ip)
		}
	}
}

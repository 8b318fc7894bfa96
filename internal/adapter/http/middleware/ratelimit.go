package middleware

import (
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"github.com/alwahis/ride-search/internal/adapter/http/response"
	"github.com/alwahis/ride-search/internal/infrastructure/logger"
)

const (
	// visitorTTL is how long an idle client keeps its bucket.
	visitorTTL = 10 * time.Minute
	// cleanupInterval is the minimum time between sweeps of idle clients.
	cleanupInterval = time.Minute
)

// RateLimitConfig sets the token bucket each client gets.
type RateLimitConfig struct {
	// RequestsPerSecond is the refill rate; zero disables limiting
	RequestsPerSecond float64

	// Burst is the bucket size
	Burst int

	// Now is the clock; defaults to time.Now
	Now func() time.Time
}

// Enabled reports whether the config limits anything.
func (c RateLimitConfig) Enabled() bool {
	return c.RequestsPerSecond > 0 && c.Burst > 0
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimit returns middleware enforcing a per-client token bucket keyed by
// the client IP. Rejected requests get a 429 with Retry-After.
func RateLimit(cfg RateLimitConfig, log *logger.Logger) echo.MiddlewareFunc {
	if !cfg.Enabled() {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	var (
		mu          sync.Mutex
		visitors    = make(map[string]*visitor)
		lastCleanup time.Time
	)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			t := now()
			key := c.RealIP()

			mu.Lock()
			v, ok := visitors[key]
			if !ok {
				v = &visitor{limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst)}
				visitors[key] = v
			}
			v.lastSeen = t

			if t.Sub(lastCleanup) > cleanupInterval {
				for k, other := range visitors {
					if t.Sub(other.lastSeen) > visitorTTL {
						delete(visitors, k)
					}
				}
				lastCleanup = t
			}
			mu.Unlock()

			if !v.limiter.AllowN(t, 1) {
				log.For(c.Request().Context()).Warn().
					Str("client_ip", key).
					Str("path", c.Request().URL.Path).
					Msg("Rate limit exceeded")
				c.Response().Header().Set("Retry-After", "1")
				return response.TooManyRequests(c)
			}

			return next(c)
		}
	}
}

package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/alwahis/ride-search/internal/infrastructure/errreport"
	"github.com/alwahis/ride-search/internal/infrastructure/logger"
)

// Options configures the middleware stack.
type Options struct {
	Logger         *logger.Logger
	Reporter       errreport.Reporter
	AllowedOrigins []string
	RateLimit      RateLimitConfig

	// TrustedProxies may set X-Forwarded-For; see ClientIPExtractor
	TrustedProxies []string
}

// Setup registers the global middleware on the Echo instance in the correct order:
//  1. RequestID - first, so every later log line carries the request ID
//  2. RequestLogger - logs all requests and attaches the request logger
//  3. Recover - catches panics and returns 500 (wraps handlers)
//  4. CORS - answers preflight requests before routing
//
// It also sets e.IPExtractor, so client addresses used for logging and rate
// limiting cannot be spoofed through forwarding headers. An invalid proxy
// list falls back to the peer address.
//
// This function should be called before registering routes. Rate limiting is
// returned by API rather than installed, so health checks stay unlimited.
func Setup(e *echo.Echo, opts Options) {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	extractor, err := ClientIPExtractor(opts.TrustedProxies)
	if err != nil {
		log.Warn().Err(err).Msg("Ignoring trusted proxies, using peer address")
		extractor = echo.ExtractIPDirect()
	}
	e.IPExtractor = extractor

	e.Use(RequestID())
	e.Use(RequestLogger(log))
	e.Use(Recover(log, opts.Reporter))
	if len(opts.AllowedOrigins) > 0 {
		e.Use(CORS(opts.AllowedOrigins))
	}
}

// API returns the middleware for the versioned API group.
func API(opts Options) []echo.MiddlewareFunc {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	return []echo.MiddlewareFunc{
		RateLimit(opts.RateLimit, log),
	}
}

package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/alwahis/ride-search/internal/infrastructure/logger"
)

// RequestLogger returns middleware that logs HTTP requests.
// It attaches a logger carrying the request ID to the request context, so
// everything logged while serving the request can be correlated, and logs on
// completion with method, path, status, duration, and client info.
func RequestLogger(log *logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			reqLog := log.WithRequestID(GetRequestID(c))
			req := c.Request()
			c.SetRequest(req.WithContext(reqLog.Attach(req.Context())))

			err := next(c)
			if err != nil {
				// Let Echo's error handler write the response before we log it
				c.Error(err)
			}

			duration := time.Since(start)
			res := c.Response()

			var event *zerolog.Event
			status := res.Status
			switch {
			case status >= 500:
				event = reqLog.Error()
			case status >= 400:
				event = reqLog.Warn()
			default:
				event = reqLog.Info()
			}

			event.
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Str("query", req.URL.RawQuery).
				Int("status", status).
				Int64("duration_ms", duration.Milliseconds()).
				Int64("bytes_out", res.Size).
				Str("client_ip", c.RealIP()).
				Str("user_agent", req.UserAgent()).
				Msg("HTTP request")

			// The error was already handled via c.Error()
			return nil
		}
	}
}

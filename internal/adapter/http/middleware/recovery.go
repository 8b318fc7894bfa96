package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/labstack/echo/v4"

	"github.com/alwahis/ride-search/internal/adapter/http/response"
	"github.com/alwahis/ride-search/internal/infrastructure/errreport"
	"github.com/alwahis/ride-search/internal/infrastructure/logger"
)

// RecoveryConfig defines the config for the recovery middleware.
type RecoveryConfig struct {
	// DisablePrintStack leaves the stack trace out of the log entry.
	DisablePrintStack bool
}

// DefaultRecoveryConfig returns the default recovery configuration.
func DefaultRecoveryConfig() RecoveryConfig {
	return RecoveryConfig{
		DisablePrintStack: false,
	}
}

// Recover returns middleware that recovers from panics in the handler chain.
// It logs and reports the panic and returns a 500 Internal Server Error.
// The server continues to handle subsequent requests.
func Recover(log *logger.Logger, reporter errreport.Reporter) echo.MiddlewareFunc {
	return RecoverWithConfig(log, reporter, DefaultRecoveryConfig())
}

// RecoverWithConfig returns recovery middleware with custom configuration.
func RecoverWithConfig(log *logger.Logger, reporter errreport.Reporter, config RecoveryConfig) echo.MiddlewareFunc {
	if reporter == nil {
		reporter = errreport.Nop{}
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}

				panicErr, ok := r.(error)
				if !ok {
					panicErr = fmt.Errorf("%v", r)
				}

				ctx := c.Request().Context()
				event := log.For(ctx).Error().
					Str("request_id", GetRequestID(c)).
					Str("panic", panicErr.Error())
				if !config.DisablePrintStack {
					event = event.Str("stack", string(debug.Stack()))
				}
				event.Msg("Panic recovered")

				reporter.Report(ctx, fmt.Errorf("panic serving %s %s: %w", c.Request().Method, c.Path(), panicErr),
					map[string]string{"request_id": GetRequestID(c)})

				// Generic body so no internal details leak
				if !c.Response().Committed {
					err = response.InternalServerError(c)
				}
			}()

			return next(c)
		}
	}
}

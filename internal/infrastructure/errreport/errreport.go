// Package errreport forwards unexpected faults to an external error tracker.
// Sentry is used when a DSN is configured; otherwise reports are dropped.
package errreport

import (
	"context"
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
)

// Reporter captures errors that operators should hear about.
type Reporter interface {
	// Report sends err with the given tags. It must not block on the network.
	Report(ctx context.Context, err error, tags map[string]string)

	// Flush waits up to timeout for buffered reports to be delivered.
	Flush(timeout time.Duration) bool
}

// Config holds error reporting settings.
type Config struct {
	DSN         string
	Environment string
	Release     string
}

// New returns a Sentry-backed Reporter, or a Nop reporter when no DSN is set.
func New(cfg Config) (Reporter, error) {
	if cfg.DSN == "" {
		return Nop{}, nil
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.DSN,
		Environment:      cfg.Environment,
		Release:          cfg.Release,
		AttachStacktrace: true,
	})
	if err != nil {
		return nil, fmt.Errorf("init sentry: %w", err)
	}

	return &SentryReporter{hub: sentry.CurrentHub()}, nil
}

// SentryReporter reports errors through a sentry.Hub.
type SentryReporter struct {
	hub *sentry.Hub
}

// NewSentryReporter wraps an existing hub. Useful for tests with a custom transport.
func NewSentryReporter(hub *sentry.Hub) *SentryReporter {
	return &SentryReporter{hub: hub}
}

// Report captures err on a hub scoped to this call.
// A hub attached to ctx (e.g., by request middleware) takes precedence.
func (r *SentryReporter) Report(ctx context.Context, err error, tags map[string]string) {
	if err == nil {
		return
	}

	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = r.hub
	}

	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTags(tags)
		hub.CaptureException(err)
	})
}

// Flush waits for queued events.
func (r *SentryReporter) Flush(timeout time.Duration) bool {
	return r.hub.Flush(timeout)
}

// Nop discards every report.
type Nop struct{}

// Report does nothing.
func (Nop) Report(context.Context, error, map[string]string) {}

// Flush always succeeds.
func (Nop) Flush(time.Duration) bool { return true }

// Ensure interfaces are implemented.
var (
	_ Reporter = (*SentryReporter)(nil)
	_ Reporter = Nop{}
)

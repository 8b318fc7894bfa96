package errreport

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingTransport collects events instead of sending them.
type recordingTransport struct {
	mu     sync.Mutex
	events []*sentry.Event
}

func (t *recordingTransport) Configure(sentry.ClientOptions) {}
func (t *recordingTransport) SendEvent(e *sentry.Event) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.events = append(t.events, e)
}
func (t *recordingTransport) Flush(time.Duration) bool              { return true }
func (t *recordingTransport) FlushWithContext(context.Context) bool { return true }
func (t *recordingTransport) Close()                                {}

func (t *recordingTransport) Events() []*sentry.Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]*sentry.Event(nil), t.events...)
}

func newTestReporter(t *testing.T) (*SentryReporter, *recordingTransport) {
	t.Helper()

	transport := &recordingTransport{}
	client, err := sentry.NewClient(sentry.ClientOptions{
		Dsn:       "https://public@example.com/1",
		Transport: transport,
	})
	require.NoError(t, err)

	return NewSentryReporter(sentry.NewHub(client, sentry.NewScope())), transport
}

func TestNew_WithoutDSNReturnsNop(t *testing.T) {
	r, err := New(Config{})

	require.NoError(t, err)
	assert.IsType(t, Nop{}, r)
	assert.True(t, r.Flush(time.Millisecond))
}

func TestSentryReporter_Report(t *testing.T) {
	r, transport := newTestReporter(t)

	r.Report(context.Background(), errors.New("store down"), map[string]string{"store": "postgres"})

	events := transport.Events()
	require.Len(t, events, 1)
	assert.Equal(t, "postgres", events[0].Tags["store"])
	require.NotEmpty(t, events[0].Exception)
	assert.Equal(t, "store down", events[0].Exception[0].Value)
}

func TestSentryReporter_ReportNilIsIgnored(t *testing.T) {
	r, transport := newTestReporter(t)

	r.Report(context.Background(), nil, nil)

	assert.Empty(t, transport.Events())
}

func TestSentryReporter_TagsDoNotLeakBetweenReports(t *testing.T) {
	r, transport := newTestReporter(t)

	r.Report(context.Background(), errors.New("first"), map[string]string{"store": "sqlite"})
	r.Report(context.Background(), errors.New("second"), nil)

	events := transport.Events()
	require.Len(t, events, 2)
	_, leaked := events[1].Tags["store"]
	assert.False(t, leaked)
}

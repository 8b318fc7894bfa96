package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alwahis/ride-search/internal/adapter/http/response"
	"github.com/alwahis/ride-search/internal/infrastructure/logger"
)

// recordingReporter captures reported errors.
type recordingReporter struct {
	mu   sync.Mutex
	errs []error
	tags []map[string]string
}

func (r *recordingReporter) Report(_ context.Context, err error, tags map[string]string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errs = append(r.errs, err)
	r.tags = append(r.tags, tags)
}

func (r *recordingReporter) Flush(time.Duration) bool { return true }

func bufferLogger(buf *bytes.Buffer) *logger.Logger {
	return logger.NewWithOutput(logger.Config{Level: "debug", Format: "json", ServiceName: "test"}, buf)
}

// logLines decodes every JSON log line written to buf.
func logLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var lines []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		lines = append(lines, entry)
	}
	return lines
}

// =====================================================
// Request ID Middleware Tests
// =====================================================

func TestRequestID_GeneratesNewID(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := RequestID()(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	require.NoError(t, handler(c))

	reqID := rec.Header().Get(RequestIDHeader)
	assert.Len(t, reqID, 36, "should be UUID format (36 chars)")
	assert.Equal(t, reqID, GetRequestID(c), "context ID should match header ID")
}

func TestRequestID_PropagatesExistingID(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(RequestIDHeader, "existing-request-id-12345")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := RequestID()(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	require.NoError(t, handler(c))
	assert.Equal(t, "existing-request-id-12345", rec.Header().Get(RequestIDHeader))
	assert.Equal(t, "existing-request-id-12345", GetRequestID(c))
}

func TestRequestID_ReplacesOversizedID(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(RequestIDHeader, strings.Repeat("x", maxRequestIDLength+1))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := RequestID()(func(c echo.Context) error { return nil })

	require.NoError(t, handler(c))
	assert.Len(t, GetRequestID(c), 36)
}

func TestGetRequestID_ReturnsEmptyWhenNotSet(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/test", nil), httptest.NewRecorder())

	assert.Empty(t, GetRequestID(c))
}

// =====================================================
// Request Logger Middleware Tests
// =====================================================

func TestRequestLogger_LogsRequestDetails(t *testing.T) {
	var buf bytes.Buffer
	e := echo.New()
	e.Use(RequestID())
	e.Use(RequestLogger(bufferLogger(&buf)))
	e.GET("/api/v1/rides/search", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/rides/search?departure_city=Baghdad", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	req.Header.Set("User-Agent", "ride-client/1.0")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	lines := logLines(t, &buf)
	require.Len(t, lines, 1)
	entry := lines[0]
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "HTTP request", entry["message"])
	assert.Equal(t, "req-123", entry["request_id"])
	assert.Equal(t, "GET", entry["method"])
	assert.Equal(t, "/api/v1/rides/search", entry["path"])
	assert.Equal(t, "departure_city=Baghdad", entry["query"])
	assert.Equal(t, float64(http.StatusOK), entry["status"])
	assert.Equal(t, "ride-client/1.0", entry["user_agent"])
	assert.Contains(t, entry, "duration_ms")
}

func TestRequestLogger_LevelFollowsStatus(t *testing.T) {
	tests := []struct {
		status int
		level  string
	}{
		{http.StatusOK, "info"},
		{http.StatusBadRequest, "warn"},
		{http.StatusTooManyRequests, "warn"},
		{http.StatusServiceUnavailable, "error"},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			var buf bytes.Buffer
			e := echo.New()
			e.Use(RequestLogger(bufferLogger(&buf)))
			e.GET("/x", func(c echo.Context) error { return c.NoContent(tt.status) })

			e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil))

			lines := logLines(t, &buf)
			require.Len(t, lines, 1)
			assert.Equal(t, tt.level, lines[0]["level"])
		})
	}
}

func TestRequestLogger_HandlesReturnedError(t *testing.T) {
	var buf bytes.Buffer
	e := echo.New()
	e.Use(RequestLogger(bufferLogger(&buf)))
	e.GET("/x", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusNotFound, "missing")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	lines := logLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, float64(http.StatusNotFound), lines[0]["status"])
}

func TestRequestLogger_AttachesRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	base := bufferLogger(&buf)

	e := echo.New()
	e.Use(RequestID())
	e.Use(RequestLogger(base))
	e.GET("/x", func(c echo.Context) error {
		logger.Nop().For(c.Request().Context()).Info().Msg("inside handler")
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(RequestIDHeader, "req-attach")
	e.ServeHTTP(httptest.NewRecorder(), req)

	lines := logLines(t, &buf)
	require.Len(t, lines, 2)
	assert.Equal(t, "inside handler", lines[0]["message"])
	assert.Equal(t, "req-attach", lines[0]["request_id"])
}

// =====================================================
// Recover Middleware Tests
// =====================================================

func TestRecover_Returns500AndReports(t *testing.T) {
	var buf bytes.Buffer
	reporter := &recordingReporter{}

	e := echo.New()
	e.Use(RequestID())
	e.Use(Recover(bufferLogger(&buf), reporter))
	e.GET("/panic", func(c echo.Context) error {
		panic("boom")
	})

	req := httptest.NewRequest(http.MethodGet, "/panic", nil)
	req.Header.Set(RequestIDHeader, "req-panic")
	rec := httptest.NewRecorder()

	assert.NotPanics(t, func() { e.ServeHTTP(rec, req) })

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var body response.ErrorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, response.CodeInternalError, body.Code)
	assert.Equal(t, response.MsgInternalError, body.Error)
	assert.NotContains(t, rec.Body.String(), "boom", "panic value must not leak")

	require.Len(t, reporter.errs, 1)
	assert.Contains(t, reporter.errs[0].Error(), "boom")
	assert.Equal(t, "req-panic", reporter.tags[0]["request_id"])

	lines := logLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "Panic recovered", lines[0]["message"])
	assert.Equal(t, "boom", lines[0]["panic"])
	assert.Contains(t, lines[0], "stack")
}

func TestRecover_HandlesErrorPanic(t *testing.T) {
	reporter := &recordingReporter{}
	cause := errors.New("nil map write")

	e := echo.New()
	e.Use(Recover(logger.Nop(), reporter))
	e.GET("/panic", func(c echo.Context) error { panic(cause) })

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Len(t, reporter.errs, 1)
	assert.ErrorIs(t, reporter.errs[0], cause)
}

func TestRecoverWithConfig_DisableStackPrint(t *testing.T) {
	var buf bytes.Buffer
	e := echo.New()
	e.Use(RecoverWithConfig(bufferLogger(&buf), nil, RecoveryConfig{DisablePrintStack: true}))
	e.GET("/panic", func(c echo.Context) error { panic("no stack") })

	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/panic", nil))

	lines := logLines(t, &buf)
	require.Len(t, lines, 1)
	assert.NotContains(t, lines[0], "stack")
}

func TestRecover_PassesThroughNormalRequests(t *testing.T) {
	reporter := &recordingReporter{}
	e := echo.New()
	e.Use(Recover(logger.Nop(), reporter))
	e.GET("/ok", func(c echo.Context) error { return c.String(http.StatusOK, "fine") })

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ok", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "fine", rec.Body.String())
	assert.Empty(t, reporter.errs)
}

// =====================================================
// CORS Middleware Tests
// =====================================================

func TestCORS_Preflight(t *testing.T) {
	e := echo.New()
	e.Use(CORS([]string{"https://alwahis.app"}))
	e.POST("/api/v1/rides/search", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/rides/search", nil)
	req.Header.Set(echo.HeaderOrigin, "https://alwahis.app")
	req.Header.Set(echo.HeaderAccessControlRequestMethod, http.MethodPost)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://alwahis.app", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
	assert.Contains(t, rec.Header().Get(echo.HeaderAccessControlAllowMethods), http.MethodPost)
}

func TestCORS_UnknownOriginGetsNoAllowHeader(t *testing.T) {
	e := echo.New()
	e.Use(CORS([]string{"https://alwahis.app"}))
	e.GET("/x", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(echo.HeaderOrigin, "https://evil.example")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
}

// =====================================================
// Rate Limit Middleware Tests
// =====================================================

func TestRateLimit_RejectsAfterBurst(t *testing.T) {
	now := time.Date(2025, 1, 18, 10, 0, 0, 0, time.UTC)
	cfg := RateLimitConfig{RequestsPerSecond: 1, Burst: 2, Now: func() time.Time { return now }}

	e := echo.New()
	e.GET("/x", func(c echo.Context) error { return c.NoContent(http.StatusOK) }, RateLimit(cfg, logger.Nop()))

	call := func(ip, lang string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.RemoteAddr = ip + ":5555"
		if lang != "" {
			req.Header.Set("Accept-Language", lang)
		}
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, call("10.0.0.1", "").Code)
	assert.Equal(t, http.StatusOK, call("10.0.0.1", "").Code)

	rec := call("10.0.0.1", "ar")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
	var body response.ErrorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, response.CodeRateLimited, body.Code)
	assert.NotEqual(t, response.MsgRateLimited, body.Error, "message is localized")

	assert.Equal(t, http.StatusOK, call("10.0.0.2", "").Code, "other clients have their own bucket")

	now = now.Add(time.Second)
	assert.Equal(t, http.StatusOK, call("10.0.0.1", "").Code, "bucket refills over time")
}

func TestRateLimit_DisabledPassesEverything(t *testing.T) {
	e := echo.New()
	e.GET("/x", func(c echo.Context) error { return c.NoContent(http.StatusOK) }, RateLimit(RateLimitConfig{}, logger.Nop()))

	for range 50 {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
		require.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestRateLimitConfig_Enabled(t *testing.T) {
	assert.False(t, RateLimitConfig{}.Enabled())
	assert.False(t, RateLimitConfig{RequestsPerSecond: 5}.Enabled())
	assert.True(t, RateLimitConfig{RequestsPerSecond: 5, Burst: 1}.Enabled())
}

// =====================================================
// Setup Tests
// =====================================================

func TestSetup_AppliesAllMiddleware(t *testing.T) {
	var buf bytes.Buffer
	e := echo.New()
	opts := Options{Logger: bufferLogger(&buf), AllowedOrigins: []string{"*"}}
	Setup(e, opts)
	e.GET("/x", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(echo.HeaderOrigin, "https://any.example")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
	assert.Equal(t, "*", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
	lines := logLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, rec.Header().Get(RequestIDHeader), lines[0]["request_id"])
}

func TestSetup_RecoversPanicAndLogsIt(t *testing.T) {
	var buf bytes.Buffer
	e := echo.New()
	Setup(e, Options{Logger: bufferLogger(&buf)})
	e.GET("/panic", func(c echo.Context) error { panic("setup panic") })

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	lines := logLines(t, &buf)
	require.Len(t, lines, 2)
	assert.Equal(t, "Panic recovered", lines[0]["message"])
	assert.Equal(t, lines[1]["request_id"], lines[0]["request_id"])
	assert.Equal(t, "error", lines[1]["level"])
}

func TestAPI_ReturnsRateLimiter(t *testing.T) {
	mws := API(Options{RateLimit: RateLimitConfig{RequestsPerSecond: 1, Burst: 1}})
	require.Len(t, mws, 1)

	e := echo.New()
	e.GET("/x", func(c echo.Context) error { return c.NoContent(http.StatusOK) }, mws...)

	first := httptest.NewRecorder()
	e.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/x", nil))
	second := httptest.NewRecorder()
	e.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/x", nil))

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}

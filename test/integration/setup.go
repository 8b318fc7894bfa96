// Package integration provides helpers and integration tests for the ride search system.
// Integration tests verify that components work together correctly, including
// HTTP handlers, middleware, the use case and the ride stores.
package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	httpAdapter "github.com/alwahis/ride-search/internal/adapter/http"
	"github.com/alwahis/ride-search/internal/adapter/http/middleware"
	"github.com/alwahis/ride-search/internal/adapter/http/response"
	"github.com/alwahis/ride-search/internal/adapter/store"
	"github.com/alwahis/ride-search/internal/domain"
	"github.com/alwahis/ride-search/internal/infrastructure/logger"
	"github.com/alwahis/ride-search/internal/infrastructure/timeutil"
	"github.com/alwahis/ride-search/internal/usecase"
	"github.com/alwahis/ride-search/test/testutil"
)

// Versioned search endpoints.
const (
	SearchPath        = "/api/v1/rides/search"
	RequestSearchPath = "/api/v1/ride-requests/search"
)

// TestServer wraps an Echo instance and provides helper methods for integration testing.
type TestServer struct {
	Echo  *echo.Echo
	Store store.Backend
}

// NewTestServer creates a test server over the given store, with the full
// middleware stack installed. Rate limiting is off unless opts enables it.
func NewTestServer(backend store.Backend, opts ...func(*middleware.Options)) *TestServer {
	return NewTestServerWithUseCase(backend, CreateUseCase(backend), opts...)
}

// NewTestServerWithUseCase creates a test server around an existing ride
// search use case.
func NewTestServerWithUseCase(backend store.Backend, uc usecase.RideSearchUseCase, opts ...func(*middleware.Options)) *TestServer {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	mwOpts := middleware.Options{Logger: logger.Nop(), AllowedOrigins: []string{"*"}}
	for _, opt := range opts {
		opt(&mwOpts)
	}
	middleware.Setup(e, mwOpts)

	httpAdapter.RegisterRoutes(e,
		httpAdapter.NewRideHandler(uc, testutil.Baghdad()),
		httpAdapter.NewRequestHandler(CreateRequestUseCase(backend), testutil.Baghdad()),
		httpAdapter.NewHealthHandler(backend, logger.Nop()),
		middleware.API(mwOpts)...,
	)

	return &TestServer{
		Echo:  e,
		Store: backend,
	}
}

// Request represents a test HTTP request configuration.
type Request struct {
	Method      string
	Path        string
	Body        any
	ContentType string
	Headers     map[string]string
	RemoteAddr  string
}

// Response represents a test HTTP response.
type Response struct {
	Code    int
	Body    []byte
	Headers http.Header
}

// Do executes a test request and returns the response.
func (ts *TestServer) Do(req Request) Response {
	var bodyReader *bytes.Reader
	switch b := req.Body.(type) {
	case nil:
		bodyReader = bytes.NewReader(nil)
	case string:
		bodyReader = bytes.NewReader([]byte(b))
	default:
		bodyBytes, _ := json.Marshal(b)
		bodyReader = bytes.NewReader(bodyBytes)
	}

	httpReq := httptest.NewRequest(req.Method, req.Path, bodyReader)

	if req.ContentType != "" {
		httpReq.Header.Set(echo.HeaderContentType, req.ContentType)
	} else if req.Body != nil {
		httpReq.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}
	if req.RemoteAddr != "" {
		httpReq.RemoteAddr = req.RemoteAddr
	}

	rec := httptest.NewRecorder()
	ts.Echo.ServeHTTP(rec, httpReq)

	return Response{
		Code:    rec.Code,
		Body:    rec.Body.Bytes(),
		Headers: rec.Header(),
	}
}

// SearchRequest posts a search with the given body.
func (ts *TestServer) SearchRequest(body any) Response {
	return ts.Do(Request{
		Method: http.MethodPost,
		Path:   SearchPath,
		Body:   body,
	})
}

// SearchQuery runs a GET search with the given raw query string.
func (ts *TestServer) SearchQuery(rawQuery string) Response {
	return ts.Do(Request{
		Method: http.MethodGet,
		Path:   SearchPath + "?" + rawQuery,
	})
}

// RequestSearch posts a ride request search with the given body.
func (ts *TestServer) RequestSearch(body any) Response {
	return ts.Do(Request{
		Method: http.MethodPost,
		Path:   RequestSearchPath,
		Body:   body,
	})
}

// RequestSearchQuery runs a GET ride request search with the given raw query string.
func (ts *TestServer) RequestSearchQuery(rawQuery string) Response {
	return ts.Do(Request{
		Method: http.MethodGet,
		Path:   RequestSearchPath + "?" + rawQuery,
	})
}

// HealthRequest makes a health check request.
func (ts *TestServer) HealthRequest() Response {
	return ts.Do(Request{
		Method: http.MethodGet,
		Path:   "/health",
	})
}

// ReadyRequest makes a readiness check request.
func (ts *TestServer) ReadyRequest() Response {
	return ts.Do(Request{
		Method: http.MethodGet,
		Path:   "/ready",
	})
}

// ParseSearchResponse parses the response body as a search response.
func (r *Response) ParseSearchResponse() (*httpAdapter.SearchResponseDTO, error) {
	var resp httpAdapter.SearchResponseDTO
	if err := json.Unmarshal(r.Body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ParseRequestSearchResponse parses the response body as a ride request search response.
func (r *Response) ParseRequestSearchResponse() (*httpAdapter.RequestSearchResponseDTO, error) {
	var resp httpAdapter.RequestSearchResponseDTO
	if err := json.Unmarshal(r.Body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ParseError parses the response body as an error body.
func (r *Response) ParseError() (*response.ErrorBody, error) {
	var errResp response.ErrorBody
	if err := json.Unmarshal(r.Body, &errResp); err != nil {
		return nil, err
	}
	return &errResp, nil
}

// RideIDs returns the ride IDs of a search response, in order.
func RideIDs(resp *httpAdapter.SearchResponseDTO) []string {
	ids := make([]string, len(resp.Rides))
	for i, r := range resp.Rides {
		ids[i] = r.ID
	}
	return ids
}

// RequestIDs returns the request IDs of a ride request search response, in order.
func RequestIDs(resp *httpAdapter.RequestSearchResponseDTO) []string {
	ids := make([]string, len(resp.Requests))
	for i, r := range resp.Requests {
		ids[i] = r.ID
	}
	return ids
}

// CreateRequestUseCase creates a ride request use case over store in the Baghdad zone.
func CreateRequestUseCase(requests domain.RequestStore) usecase.RequestSearchUseCase {
	return usecase.NewRequestSearchUseCase(requests, &usecase.Config{Location: testutil.Baghdad()})
}

// CreateUseCase creates a use case over store in the Baghdad zone.
func CreateUseCase(rides domain.RideStore) usecase.RideSearchUseCase {
	return CreateUseCaseWithConfig(rides, &usecase.Config{Location: testutil.Baghdad()})
}

// CreateUseCaseWithConfig creates a use case with custom configuration.
func CreateUseCaseWithConfig(rides domain.RideStore, config *usecase.Config) usecase.RideSearchUseCase {
	return usecase.NewRideSearchUseCase(rides, config)
}

// OpenSeededStore opens a store of the given driver loaded with the
// development seed file. SQLite stores live in a per-test directory.
func OpenSeededStore(t *testing.T, driver string) store.Backend {
	t.Helper()

	backend, closeStore, err := store.Open(context.Background(), store.Options{
		Driver:     driver,
		SQLitePath: filepath.Join(t.TempDir(), "rides.db"),
		SeedFile:   testutil.SeedFilePath(t),
		Location:   testutil.Baghdad(),
		Clock:      timeutil.NewMockClockFromString("2025-01-01T00:00:00Z"),
		Logger:     logger.Nop(),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = closeStore() })
	return backend
}

// Drivers lists the stores the integration suite runs against without
// external services.
var Drivers = []string{store.DriverMemory, store.DriverSQLite}

package integration

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alwahis/ride-search/internal/adapter/store"
	"github.com/alwahis/ride-search/internal/domain"
	"github.com/alwahis/ride-search/internal/usecase"
	"github.com/alwahis/ride-search/test/mock"
	"github.com/alwahis/ride-search/test/testutil"
)

// TestRideSearch_StoreTimeout tests that a store slower than the search
// timeout fails the search as a backend fault.
func TestRideSearch_StoreTimeout(t *testing.T) {
	// Arrange
	slow := mock.NewStore("postgres").
		WithDelay(500 * time.Millisecond).
		WithRides(mock.SampleRides(3))

	uc := CreateUseCaseWithConfig(slow, &usecase.Config{SearchTimeout: 50 * time.Millisecond})

	// Act
	start := time.Now()
	result, err := uc.Search(context.Background(), domain.SearchCriteria{})
	elapsed := time.Since(start)

	// Assert
	require.Error(t, err)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrBackendUnavailable)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, elapsed, 400*time.Millisecond, "should not wait for the slow store")
}

// TestRideSearch_ContextCancellation tests that a caller cancellation is
// returned as is, not as a backend fault.
func TestRideSearch_ContextCancellation(t *testing.T) {
	slow := mock.NewStore("memory").WithDelay(time.Second)
	uc := CreateUseCase(slow)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err := uc.Search(ctx, domain.SearchCriteria{})

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, domain.ErrBackendUnavailable)
}

// TestRideSearch_StoreFailure tests that store errors surface as backend
// faults naming the store.
func TestRideSearch_StoreFailure(t *testing.T) {
	failing := mock.NewStore("sqlite").WithError(errors.New("database is locked"))
	uc := CreateUseCase(failing)

	_, err := uc.Search(context.Background(), domain.SearchCriteria{})

	require.Error(t, err)
	var backendErr *domain.BackendError
	require.ErrorAs(t, err, &backendErr)
	assert.Equal(t, "sqlite", backendErr.Store)
	assert.Equal(t, 1, failing.CallCount(), "no retries")
}

// TestRideSearch_ValidationSkipsStore tests that invalid criteria never
// reach the store.
func TestRideSearch_ValidationSkipsStore(t *testing.T) {
	s := mock.NewStore("memory").WithRides(mock.SampleRides(5))
	uc := CreateUseCase(s)

	_, err := uc.Search(context.Background(), domain.SearchCriteria{
		MinPrice: testutil.IntPtr(20000),
		MaxPrice: testutil.IntPtr(1000),
	})

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Zero(t, s.CallCount())
}

// TestRideSearch_QueryReachesStore tests the storage-neutral query the
// use case builds from criteria.
func TestRideSearch_QueryReachesStore(t *testing.T) {
	s := mock.NewStore("memory").WithRides(mock.SampleRides(12))
	uc := CreateUseCase(s)

	result, err := uc.Search(context.Background(), domain.SearchCriteria{
		Date:               "2025-01-18",
		DepartureTimeStart: "10:00",
		SortBy:             domain.SortByPrice,
		SortOrder:          domain.SortDescending,
		Page:               testutil.IntPtr(2),
		PerPage:            testutil.IntPtr(3),
	})
	require.NoError(t, err)

	queries := s.Queries()
	require.Len(t, queries, 1)
	q := queries[0]
	assert.Equal(t, 3, q.Offset)
	assert.Equal(t, 3, q.Limit)
	assert.Equal(t, domain.Sort{Field: domain.FieldPricePerSeat, Descending: true}, q.Sort)
	assert.Contains(t, q.Predicates, domain.Predicate{
		Field: domain.FieldDepartureTime,
		Op:    domain.OpGte,
		Value: time.Date(2025, 1, 18, 7, 0, 0, 0, time.UTC),
	}, "10:00 in Baghdad is 07:00 UTC")

	// Sample rides depart hourly from 06:00 UTC; 07:00 onwards leaves 11.
	assert.Equal(t, 11, result.Pagination.TotalItems)
	assert.Equal(t, 4, result.Pagination.TotalPages)
	assert.Equal(t, []string{"ride-009", "ride-008", "ride-007"}, testutil.RideIDs(result.Rides))
}

// TestRideSearch_StoresAgree tests that the memory and SQLite stores return
// identical pages for the same seed data.
func TestRideSearch_StoresAgree(t *testing.T) {
	memoryUC := CreateUseCase(OpenSeededStore(t, store.DriverMemory))
	sqliteUC := CreateUseCase(OpenSeededStore(t, store.DriverSQLite))

	grid := []domain.SearchCriteria{
		{},
		{DepartureCity: "bag"},
		{DestinationCity: "ال"},
		{Date: "2025-01-19", SortBy: domain.SortByPrice},
		{Date: "2025-01-20", DepartureTimeStart: "09:45", DepartureTimeEnd: "14:00"},
		{MinPrice: testutil.IntPtr(15000), SortOrder: domain.SortDescending},
		{MinAvailableSeats: testutil.IntPtr(3), SortBy: domain.SortByAvailableSeats},
		{Page: testutil.IntPtr(2), PerPage: testutil.IntPtr(7)},
	}

	for i, criteria := range grid {
		want, err := memoryUC.Search(context.Background(), criteria)
		require.NoError(t, err, "criteria %d", i)
		got, err := sqliteUC.Search(context.Background(), criteria)
		require.NoError(t, err, "criteria %d", i)

		assert.Equal(t, want.Pagination, got.Pagination, "criteria %d", i)
		assert.Equal(t, testutil.RideIDs(want.Rides), testutil.RideIDs(got.Rides), "criteria %d", i)
	}
}

// Package mock provides test doubles for the ride search system.
// These mocks are designed for integration testing where we need
// configurable behavior (delays, errors, specific data).
package mock

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/alwahis/ride-search/internal/domain"
	"github.com/alwahis/ride-search/internal/usecase"
)

// Store is a configurable implementation of domain.RideStore and
// domain.RequestStore.
// It evaluates queries in memory and supports configurable delays and
// errors for testing timeouts and backend faults.
type Store struct {
	name      string
	rides     []domain.Ride
	requests  []domain.RideRequest
	err       error
	pingErr   error
	delay     time.Duration
	callCount int
	queries   []domain.Query
	mu        sync.Mutex
}

// NewStore creates a new mock store with the given name.
// The store is configured using the builder pattern methods.
func NewStore(name string) *Store {
	return &Store{name: name}
}

// WithRides configures the store to hold the given rides.
func (s *Store) WithRides(rides []domain.Ride) *Store {
	s.rides = slices.Clone(rides)
	return s
}

// WithRequests configures the store to hold the given ride requests.
func (s *Store) WithRequests(requests []domain.RideRequest) *Store {
	s.requests = slices.Clone(requests)
	return s
}

// WithError configures Find and FindRequests to fail with err.
func (s *Store) WithError(err error) *Store {
	s.err = err
	return s
}

// WithPingError configures Ping to fail with err.
func (s *Store) WithPingError(err error) *Store {
	s.pingErr = err
	return s
}

// WithDelay configures the store to wait the given duration before answering.
// This is useful for testing timeout behavior.
func (s *Store) WithDelay(d time.Duration) *Store {
	s.delay = d
	return s
}

// Name returns the store's identifier.
func (s *Store) Name() string {
	return s.name
}

// Find implements domain.RideStore.Find.
// It respects context cancellation, applies the configured delay,
// and returns the configured error or the evaluated page.
func (s *Store) Find(ctx context.Context, q domain.Query) (domain.RidePage, error) {
	if err := s.record(ctx, q); err != nil {
		return domain.RidePage{}, err
	}

	s.mu.Lock()
	rides := slices.Clone(s.rides)
	s.mu.Unlock()

	return usecase.EvaluateQuery(rides, q), nil
}

// FindRequests implements domain.RequestStore.FindRequests with the same
// delay and error behavior as Find.
func (s *Store) FindRequests(ctx context.Context, q domain.Query) (domain.RequestPage, error) {
	if err := s.record(ctx, q); err != nil {
		return domain.RequestPage{}, err
	}

	s.mu.Lock()
	requests := slices.Clone(s.requests)
	s.mu.Unlock()

	return usecase.EvaluateRequestQuery(requests, q), nil
}

// record counts the call, then waits out the delay and returns the
// configured or context error.
func (s *Store) record(ctx context.Context, q domain.Query) error {
	s.mu.Lock()
	s.callCount++
	s.queries = append(s.queries, q)
	err, delay := s.err, s.delay
	s.mu.Unlock()

	if delay > 0 {
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}

	if ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

// Ping implements domain.RideStore.Ping.
func (s *Store) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.pingErr
}

// CallCount returns the number of times Find or FindRequests was called.
func (s *Store) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.callCount
}

// Queries returns the queries the store received, oldest first.
func (s *Store) Queries() []domain.Query {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.queries)
}

// Reset clears the recorded calls.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.callCount = 0
	s.queries = nil
}

// Ensure Store implements both store contracts at compile time.
var (
	_ domain.RideStore    = (*Store)(nil)
	_ domain.RequestStore = (*Store)(nil)
)

// routes are the intercity corridors sample rides run on.
var routes = [][2]string{
	{"Baghdad", "Karbala"},
	{"Baghdad", "Najaf"},
	{"Basra", "Baghdad"},
	{"Erbil", "Mosul"},
}

// SampleRides returns count published rides on 2025-01-18, one hour apart
// from 06:00 UTC, with prices rising by 1000 from 10000.
func SampleRides(count int) []domain.Ride {
	rides := make([]domain.Ride, count)

	baseTime := time.Date(2025, 1, 18, 6, 0, 0, 0, time.UTC)

	for i := range count {
		route := routes[i%len(routes)]
		rides[i] = domain.Ride{
			ID:              fmt.Sprintf("ride-%03d", i+1),
			DepartureCity:   route[0],
			DestinationCity: route[1],
			DepartureTime:   baseTime.Add(time.Duration(i) * time.Hour),
			PricePerSeat:    10000 + i*1000,
			AvailableSeats:  1 + i%4,
			TotalSeats:      4,
			Status:          domain.RideStatusPublished,
			UserID:          fmt.Sprintf("driver-%02d", i%7+1),
			WhatsAppNumber:  fmt.Sprintf("+96477012%05d", i),
			CreatedAt:       baseTime.AddDate(0, 0, -7),
		}
	}

	return rides
}

// SampleRequests returns count open ride requests preferring 2025-01-18,
// created one hour apart from 2025-01-10 08:00 UTC.
func SampleRequests(count int) []domain.RideRequest {
	requests := make([]domain.RideRequest, count)

	created := time.Date(2025, 1, 10, 8, 0, 0, 0, time.UTC)

	for i := range count {
		route := routes[i%len(routes)]
		requests[i] = domain.RideRequest{
			ID:             fmt.Sprintf("req-%03d", i+1),
			FromLocation:   route[0],
			ToLocation:     route[1],
			PreferredDate:  time.Date(2025, 1, 18, 0, 0, 0, 0, time.UTC),
			SeatsNeeded:    1 + i%3,
			Status:         domain.RequestStatusOpen,
			UserID:         fmt.Sprintf("rider-%02d", i%5+1),
			WhatsAppNumber: fmt.Sprintf("+96478012%05d", i),
			CreatedAt:      created.Add(time.Duration(i) * time.Hour),
		}
	}

	return requests
}

// Package memory provides ride and ride request stores that evaluate
// queries over in-process lists, the same way a client filters a fetched list.
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/alwahis/ride-search/internal/domain"
	"github.com/alwahis/ride-search/internal/usecase"
)

// StoreName is the identifier of the memory store.
const StoreName = "memory"

// Store is a RideStore backed by a slice guarded by an RWMutex.
// Find always works on and returns copies.
type Store struct {
	mu       sync.RWMutex
	rides    []domain.Ride
	requests []domain.RideRequest
}

// New creates a Store holding a copy of rides.
func New(rides []domain.Ride) *Store {
	return &Store{rides: slices.Clone(rides)}
}

// Name implements domain.RideStore.
func (s *Store) Name() string {
	return StoreName
}

// Find implements domain.RideStore.
func (s *Store) Find(ctx context.Context, q domain.Query) (domain.RidePage, error) {
	if err := ctx.Err(); err != nil {
		return domain.RidePage{}, err
	}

	s.mu.RLock()
	snapshot := slices.Clone(s.rides)
	s.mu.RUnlock()

	return usecase.EvaluateQuery(snapshot, q), nil
}

// FindRequests implements domain.RequestStore.
func (s *Store) FindRequests(ctx context.Context, q domain.Query) (domain.RequestPage, error) {
	if err := ctx.Err(); err != nil {
		return domain.RequestPage{}, err
	}

	s.mu.RLock()
	snapshot := slices.Clone(s.requests)
	s.mu.RUnlock()

	return usecase.EvaluateRequestQuery(snapshot, q), nil
}

// Ping implements domain.RideStore. The memory store is always reachable.
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

// Add appends rides to the store.
func (s *Store) Add(rides ...domain.Ride) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rides = append(s.rides, rides...)
}

// AddRequests appends ride requests to the store.
func (s *Store) AddRequests(requests ...domain.RideRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, requests...)
}

// Replace swaps the whole collection for a copy of rides.
func (s *Store) Replace(rides []domain.Ride) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rides = slices.Clone(rides)
}

// Len returns the number of stored rides, searchable or not.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rides)
}

// LenRequests returns the number of stored ride requests, searchable or not.
func (s *Store) LenRequests() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.requests)
}

// Ensure Store implements both store contracts at compile time.
var (
	_ domain.RideStore    = (*Store)(nil)
	_ domain.RequestStore = (*Store)(nil)
)

package domain

//go:generate mockgen -source=store.go -destination=mock_store.go -package=domain

import "context"

// RideStore evaluates ride queries against a backing collection.
// Implementations must honour the Query semantics exactly so that every
// store returns the same page for the same data.
type RideStore interface {
	// Name returns the store's identifier (e.g., "postgres").
	Name() string

	// Find returns the rides matching q, sorted and windowed, together with
	// the total number of matches ignoring the window.
	Find(ctx context.Context, q Query) (RidePage, error)

	// Ping checks that the store is reachable.
	Ping(ctx context.Context) error
}

// RequestStore evaluates ride request queries with the same Query
// semantics as RideStore.
type RequestStore interface {
	// Name returns the store's identifier (e.g., "postgres").
	Name() string

	// FindRequests returns the ride requests matching q, sorted and
	// windowed, together with the total number of matches.
	FindRequests(ctx context.Context, q Query) (RequestPage, error)
}

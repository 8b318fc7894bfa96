// Package store opens the configured backend, retrying the connection while
// the database comes up and loading seed data when asked to.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alwahis/ride-search/internal/adapter/store/memory"
	"github.com/alwahis/ride-search/internal/adapter/store/postgres"
	"github.com/alwahis/ride-search/internal/adapter/store/seed"
	"github.com/alwahis/ride-search/internal/adapter/store/sqlite"
	"github.com/alwahis/ride-search/internal/domain"
	"github.com/alwahis/ride-search/internal/infrastructure/logger"
	"github.com/alwahis/ride-search/internal/infrastructure/retry"
	"github.com/alwahis/ride-search/internal/infrastructure/timeutil"
)

// Store drivers.
const (
	DriverMemory   = memory.StoreName
	DriverSQLite   = sqlite.StoreName
	DriverPostgres = postgres.StoreName
)

// Options selects and locates the store.
type Options struct {
	Driver          string
	DatabaseURL     string
	SQLitePath      string
	SeedFile        string
	ConnectAttempts int

	// Location is the zone for seed times written without an offset
	Location *time.Location
	Clock    timeutil.Clock
	Logger   *logger.Logger

	// Retry overrides retry.ConnectPolicy; MaxAttempts still comes from ConnectAttempts
	Retry *retry.Policy
}

// Backend serves both ride and ride request searches.
type Backend interface {
	domain.RideStore
	domain.RequestStore
}

// seededStore is a SQL store that can report its size and take seed data.
type seededStore interface {
	Backend
	Count(ctx context.Context) (int, error)
	Insert(ctx context.Context, rides ...domain.Ride) error
	CountRequests(ctx context.Context) (int, error)
	InsertRequests(ctx context.Context, requests ...domain.RideRequest) error
	Close() error
}

// Open returns the backend named by opts.Driver and a function releasing it.
func Open(ctx context.Context, opts Options) (Backend, func() error, error) {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	log = log.WithStore(opts.Driver)

	data, err := loadSeed(opts, log)
	if err != nil {
		return nil, nil, err
	}

	if opts.Driver == DriverMemory {
		log.Info().
			Int("rides", len(data.Rides)).
			Int("ride_requests", len(data.Requests)).
			Msg("Using in-memory ride store")
		m := memory.New(data.Rides)
		m.AddRequests(data.Requests...)
		return m, func() error { return nil }, nil
	}

	s, err := connect(ctx, opts, log)
	if err != nil {
		return nil, nil, err
	}

	if err := seedIfEmpty(ctx, s, data, log); err != nil {
		_ = s.Close()
		return nil, nil, err
	}
	return s, s.Close, nil
}

func loadSeed(opts Options, log *logger.Logger) (seed.Data, error) {
	if opts.SeedFile == "" {
		return seed.Data{}, nil
	}
	loader := seed.NewLoader(seed.Options{Location: opts.Location, Clock: opts.Clock, Logger: log})
	data, err := loader.LoadFile(opts.SeedFile)
	if err != nil {
		return seed.Data{}, fmt.Errorf("load seed %s: %w", opts.SeedFile, err)
	}
	log.Info().
		Str("file", opts.SeedFile).
		Int("rides", len(data.Rides)).
		Int("ride_requests", len(data.Requests)).
		Msg("Seed data loaded")
	return data, nil
}

func connect(ctx context.Context, opts Options, log *logger.Logger) (seededStore, error) {
	var open func(ctx context.Context) (seededStore, error)
	switch opts.Driver {
	case DriverSQLite:
		open = func(ctx context.Context) (seededStore, error) {
			s, err := sqlite.Open(ctx, opts.SQLitePath)
			if err != nil {
				return nil, err
			}
			return s, nil
		}
	case DriverPostgres:
		// A malformed URL will not heal by waiting.
		if _, err := pgxpool.ParseConfig(opts.DatabaseURL); err != nil {
			return nil, fmt.Errorf("parse DATABASE_URL: %w", err)
		}
		open = func(ctx context.Context) (seededStore, error) {
			s, err := postgres.New(ctx, opts.DatabaseURL)
			if err != nil {
				return nil, err
			}
			return s, nil
		}
	default:
		return nil, fmt.Errorf("unknown store driver %q", opts.Driver)
	}

	policy := retry.ConnectPolicy
	if opts.Retry != nil {
		policy = *opts.Retry
	}
	policy = policy.WithMaxAttempts(opts.ConnectAttempts).
		WithOnRetry(func(attempt int, err error, wait time.Duration) {
			log.Warn().Err(err).Int("attempt", attempt).Dur("retry_in", wait).Msg("Ride store not reachable, retrying")
		})

	s, err := retry.Do(ctx, policy, open)
	if err != nil {
		return nil, fmt.Errorf("connect %s store: %w", opts.Driver, err)
	}
	log.Info().Msg("Ride store connected")
	return s, nil
}

// seedIfEmpty fills each empty table from the seed, so restarts do not
// duplicate or overwrite data.
func seedIfEmpty(ctx context.Context, s seededStore, data seed.Data, log *logger.Logger) error {
	if len(data.Rides) > 0 {
		n, err := s.Count(ctx)
		if err != nil {
			return fmt.Errorf("count rides: %w", err)
		}
		if n > 0 {
			log.Info().Int("existing", n).Msg("Ride store not empty, skipping ride seed")
		} else {
			if err := s.Insert(ctx, data.Rides...); err != nil {
				return fmt.Errorf("seed rides: %w", err)
			}
			log.Info().Int("rides", len(data.Rides)).Msg("Ride store seeded")
		}
	}

	if len(data.Requests) > 0 {
		n, err := s.CountRequests(ctx)
		if err != nil {
			return fmt.Errorf("count ride requests: %w", err)
		}
		if n > 0 {
			log.Info().Int("existing", n).Msg("Ride request table not empty, skipping request seed")
			return nil
		}
		if err := s.InsertRequests(ctx, data.Requests...); err != nil {
			return fmt.Errorf("seed ride requests: %w", err)
		}
		log.Info().Int("ride_requests", len(data.Requests)).Msg("Ride requests seeded")
	}
	return nil
}

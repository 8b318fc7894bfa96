// Package usecase contains the business logic for ride search operations.
// It normalizes and validates criteria, builds a storage-neutral query,
// delegates it to a RideStore and shapes the paginated result.
package usecase

import (
	"time"

	"github.com/alwahis/ride-search/internal/domain"
	"github.com/alwahis/ride-search/internal/infrastructure/errreport"
	"github.com/alwahis/ride-search/internal/infrastructure/logger"
)

// Default configuration values.
const (
	DefaultSearchTimeout = 3 * time.Second
)

// Config contains configuration options for the use case.
type Config struct {
	// SearchTimeout bounds a single store round-trip
	SearchTimeout time.Duration

	// Location is the reference zone for calendar dates and times of day
	Location *time.Location

	// DefaultPerPage applies when the caller does not set per_page
	DefaultPerPage int

	// MaxPerPage caps per_page; it can only tighten domain.MaxPerPage
	MaxPerPage int
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		SearchTimeout:  DefaultSearchTimeout,
		Location:       time.UTC,
		DefaultPerPage: domain.DefaultPerPage,
		MaxPerPage:     domain.MaxPerPage,
	}
}

// Option customizes a search use case.
type Option func(*searchBase)

// WithLogger sets the logger used for search and fault logging.
func WithLogger(l *logger.Logger) Option {
	return func(b *searchBase) {
		if l != nil {
			b.log = l
		}
	}
}

// WithReporter sets where backend faults are reported.
func WithReporter(r errreport.Reporter) Option {
	return func(b *searchBase) {
		if r != nil {
			b.reporter = r
		}
	}
}

// searchBase holds what the ride and ride request searches share.
type searchBase struct {
	cfg      Config
	log      *logger.Logger
	reporter errreport.Reporter
}

func newSearchBase(config *Config, opts []Option) searchBase {
	b := searchBase{
		cfg:      merge(config),
		log:      logger.Nop(),
		reporter: errreport.Nop{},
	}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

// merge overlays the set fields of config on the defaults.
func merge(config *Config) Config {
	cfg := DefaultConfig()
	if config == nil {
		return cfg
	}
	if config.SearchTimeout > 0 {
		cfg.SearchTimeout = config.SearchTimeout
	}
	if config.Location != nil {
		cfg.Location = config.Location
	}
	if config.MaxPerPage > 0 && config.MaxPerPage < domain.MaxPerPage {
		cfg.MaxPerPage = config.MaxPerPage
	}
	if config.DefaultPerPage > 0 {
		cfg.DefaultPerPage = config.DefaultPerPage
	}
	cfg.DefaultPerPage = min(cfg.DefaultPerPage, cfg.MaxPerPage)
	return cfg
}

package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alwahis/ride-search/internal/domain"
)

// RideSearchUseCase defines the interface for ride search operations.
type RideSearchUseCase interface {
	// Search returns one page of published rides matching the criteria.
	// It fails with a *domain.ValidationErrors for bad input and with an
	// error matching domain.ErrBackendUnavailable when the store faults.
	Search(ctx context.Context, criteria domain.SearchCriteria) (*domain.SearchResult, error)
}

// rideSearchUseCase implements RideSearchUseCase over a single RideStore.
type rideSearchUseCase struct {
	searchBase
	store domain.RideStore
}

// NewRideSearchUseCase creates a new RideSearchUseCase backed by store.
// If config is nil, default values are used.
func NewRideSearchUseCase(store domain.RideStore, config *Config, opts ...Option) RideSearchUseCase {
	return &rideSearchUseCase{
		searchBase: newSearchBase(config, opts),
		store:      store,
	}
}

// Search implements RideSearchUseCase.Search.
// There are no retries and no partial results: a store fault fails the call.
func (uc *rideSearchUseCase) Search(ctx context.Context, criteria domain.SearchCriteria) (*domain.SearchResult, error) {
	startTime := time.Now()
	log := uc.log.For(ctx)

	if criteria.PerPage == nil {
		perPage := uc.cfg.DefaultPerPage
		criteria.PerPage = &perPage
	}
	normalized := criteria.WithDefaults()

	if err := uc.validate(normalized.Validate(), normalized.PageSize()); err != nil {
		log.Debug().Err(err).Msg("Ride search rejected")
		return nil, err
	}

	query, err := BuildQuery(normalized, uc.cfg.Location)
	if err != nil {
		return nil, err
	}

	storeCtx, cancel := context.WithTimeout(ctx, uc.cfg.SearchTimeout)
	defer cancel()

	page, err := uc.store.Find(storeCtx, query)
	if err != nil {
		return nil, uc.storeFault(ctx, uc.store.Name(), err, time.Since(startTime))
	}

	pagination := domain.NewPagination(page.Total, normalized.PageNumber(), normalized.PageSize())
	result := domain.NewSearchResult(page.Rides, pagination)

	log.Info().
		Str("store", uc.store.Name()).
		Str("departure_city", normalized.DepartureCity).
		Str("destination_city", normalized.DestinationCity).
		Str("date", normalized.Date).
		Str("sort_by", string(normalized.SortBy)).
		Str("sort_order", string(normalized.SortOrder)).
		Int("page", pagination.CurrentPage).
		Int("per_page", pagination.PerPage).
		Int("total_items", pagination.TotalItems).
		Int("returned", len(result.Rides)).
		Dur("duration", time.Since(startTime)).
		Msg("Ride search completed")

	return &result, nil
}

// validate merges the criteria errors with the configured page size cap.
func (b *searchBase) validate(criteriaErr error, size int) error {
	errs := &domain.ValidationErrors{}
	if criteriaErr != nil {
		if !errors.As(criteriaErr, &errs) {
			return criteriaErr
		}
	}

	if size >= 1 && size <= domain.MaxPerPage && size > b.cfg.MaxPerPage {
		errs.Add("per_page", fmt.Sprintf("per_page must be between 1 and %d", b.cfg.MaxPerPage))
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}

// storeFault classifies a store error. A cancellation by the caller is
// returned unchanged; anything else, including our own search deadline,
// becomes a BackendError and is reported.
func (b *searchBase) storeFault(ctx context.Context, store string, err error, elapsed time.Duration) error {
	log := b.log.For(ctx)

	if errors.Is(ctx.Err(), context.Canceled) {
		log.Debug().Err(err).Dur("duration", elapsed).Msg("Search cancelled by caller")
		return ctx.Err()
	}

	var backendErr *domain.BackendError
	if !errors.As(err, &backendErr) {
		backendErr = domain.NewBackendError(store, err)
	}

	log.Error().
		Err(err).
		Str("store", backendErr.Store).
		Dur("duration", elapsed).
		Msg("Ride store unavailable")
	b.reporter.Report(ctx, backendErr, map[string]string{"store": backendErr.Store})

	return backendErr
}

// Ensure rideSearchUseCase implements RideSearchUseCase at compile time.
var _ RideSearchUseCase = (*rideSearchUseCase)(nil)

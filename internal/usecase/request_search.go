package usecase

import (
	"context"
	"time"

	"github.com/alwahis/ride-search/internal/domain"
)

// RequestSearchUseCase defines the interface for ride request searches.
type RequestSearchUseCase interface {
	// SearchRequests returns one page of open ride requests matching the
	// criteria, newest first. Errors follow RideSearchUseCase.Search.
	SearchRequests(ctx context.Context, criteria domain.RequestSearchCriteria) (*domain.RequestSearchResult, error)
}

type requestSearchUseCase struct {
	searchBase
	store domain.RequestStore
}

// NewRequestSearchUseCase creates a RequestSearchUseCase backed by store.
// If config is nil, default values are used.
func NewRequestSearchUseCase(store domain.RequestStore, config *Config, opts ...Option) RequestSearchUseCase {
	return &requestSearchUseCase{
		searchBase: newSearchBase(config, opts),
		store:      store,
	}
}

// SearchRequests implements RequestSearchUseCase.SearchRequests.
func (uc *requestSearchUseCase) SearchRequests(ctx context.Context, criteria domain.RequestSearchCriteria) (*domain.RequestSearchResult, error) {
	startTime := time.Now()
	log := uc.log.For(ctx)

	if criteria.PerPage == nil {
		perPage := uc.cfg.DefaultPerPage
		criteria.PerPage = &perPage
	}
	normalized := criteria.WithDefaults()

	if err := uc.validate(normalized.Validate(), normalized.PageSize()); err != nil {
		log.Debug().Err(err).Msg("Ride request search rejected")
		return nil, err
	}

	query, err := BuildRequestQuery(normalized, uc.cfg.Location)
	if err != nil {
		return nil, err
	}

	storeCtx, cancel := context.WithTimeout(ctx, uc.cfg.SearchTimeout)
	defer cancel()

	page, err := uc.store.FindRequests(storeCtx, query)
	if err != nil {
		return nil, uc.storeFault(ctx, uc.store.Name(), err, time.Since(startTime))
	}

	pagination := domain.NewPagination(page.Total, normalized.PageNumber(), normalized.PageSize())
	result := domain.NewRequestSearchResult(page.Requests, pagination)

	log.Info().
		Str("store", uc.store.Name()).
		Str("from_location", normalized.FromLocation).
		Str("to_location", normalized.ToLocation).
		Str("date", normalized.Date).
		Int("page", pagination.CurrentPage).
		Int("per_page", pagination.PerPage).
		Int("total_items", pagination.TotalItems).
		Int("returned", len(result.Requests)).
		Dur("duration", time.Since(startTime)).
		Msg("Ride request search completed")

	return &result, nil
}

var _ RequestSearchUseCase = (*requestSearchUseCase)(nil)

package usecase

import (
	"fmt"
	"time"

	"github.com/alwahis/ride-search/internal/domain"
	"github.com/alwahis/ride-search/internal/infrastructure/timeutil"
)

// BuildQuery translates normalized, validated criteria into a storage-neutral
// query. Calendar dates and times of day are interpreted in loc and folded
// into a single inclusive departure_time range.
//
// The query always restricts results to published rides; empty criteria match
// every published ride.
func BuildQuery(criteria domain.SearchCriteria, loc *time.Location) (domain.Query, error) {
	if loc == nil {
		loc = time.UTC
	}

	preds := []domain.Predicate{
		{Field: domain.FieldStatus, Op: domain.OpEq, Value: string(domain.RideStatusPublished)},
	}

	if criteria.DepartureCity != "" {
		preds = append(preds, domain.Predicate{Field: domain.FieldDepartureCity, Op: domain.OpContains, Value: criteria.DepartureCity})
	}
	if criteria.DestinationCity != "" {
		preds = append(preds, domain.Predicate{Field: domain.FieldDestinationCity, Op: domain.OpContains, Value: criteria.DestinationCity})
	}

	timePreds, err := departureRange(criteria, loc)
	if err != nil {
		return domain.Query{}, err
	}
	preds = append(preds, timePreds...)

	if criteria.MinPrice != nil {
		preds = append(preds, domain.Predicate{Field: domain.FieldPricePerSeat, Op: domain.OpGte, Value: *criteria.MinPrice})
	}
	if criteria.MaxPrice != nil {
		preds = append(preds, domain.Predicate{Field: domain.FieldPricePerSeat, Op: domain.OpLte, Value: *criteria.MaxPrice})
	}
	if criteria.MinAvailableSeats != nil {
		preds = append(preds, domain.Predicate{Field: domain.FieldAvailableSeats, Op: domain.OpGte, Value: *criteria.MinAvailableSeats})
	}

	page, perPage := criteria.PageNumber(), criteria.PageSize()

	return domain.Query{
		Predicates: preds,
		Sort: domain.Sort{
			Field:      criteria.SortBy.Column(),
			Descending: criteria.SortOrder == domain.SortDescending,
		},
		Offset: PageOffset(page, perPage),
		Limit:  perPage,
	}, nil
}

// departureRange returns the lower and upper departure_time predicates for the
// date and optional time-of-day window. Without a date no bound is produced.
func departureRange(criteria domain.SearchCriteria, loc *time.Location) ([]domain.Predicate, error) {
	if criteria.Date == "" {
		return nil, nil
	}

	day, err := domain.ParseDate(criteria.Date, loc)
	if err != nil {
		return nil, err
	}
	lower, upper := timeutil.StartOfDay(day), timeutil.EndOfDay(day)

	if criteria.DepartureTimeStart != "" {
		minutes, err := domain.ParseClock(criteria.DepartureTimeStart)
		if err != nil {
			return nil, fmt.Errorf("departure_time_start: %w", err)
		}
		lower = timeutil.AtMinute(day, minutes)
	}
	if criteria.DepartureTimeEnd != "" {
		minutes, err := domain.ParseClock(criteria.DepartureTimeEnd)
		if err != nil {
			return nil, fmt.Errorf("departure_time_end: %w", err)
		}
		upper = timeutil.AtMinute(day, minutes)
	}

	return []domain.Predicate{
		{Field: domain.FieldDepartureTime, Op: domain.OpGte, Value: lower.UTC()},
		{Field: domain.FieldDepartureTime, Op: domain.OpLte, Value: upper.UTC()},
	}, nil
}

// BuildRequestQuery translates normalized, validated request criteria into
// a query over open ride requests, newest first. A date keeps requests
// whose preferred date falls on or after the start of that day in loc.
func BuildRequestQuery(criteria domain.RequestSearchCriteria, loc *time.Location) (domain.Query, error) {
	if loc == nil {
		loc = time.UTC
	}

	preds := []domain.Predicate{
		{Field: domain.FieldStatus, Op: domain.OpEq, Value: string(domain.RequestStatusOpen)},
	}
	if criteria.FromLocation != "" {
		preds = append(preds, domain.Predicate{Field: domain.FieldFromLocation, Op: domain.OpContains, Value: criteria.FromLocation})
	}
	if criteria.ToLocation != "" {
		preds = append(preds, domain.Predicate{Field: domain.FieldToLocation, Op: domain.OpContains, Value: criteria.ToLocation})
	}
	if criteria.Date != "" {
		day, err := domain.ParseDate(criteria.Date, loc)
		if err != nil {
			return domain.Query{}, err
		}
		preds = append(preds, domain.Predicate{Field: domain.FieldPreferredDate, Op: domain.OpGte, Value: day.UTC()})
	}

	page, perPage := criteria.PageNumber(), criteria.PageSize()

	return domain.Query{
		Predicates: preds,
		Sort:       domain.Sort{Field: domain.FieldCreatedAt, Descending: true},
		Offset:     PageOffset(page, perPage),
		Limit:      perPage,
	}, nil
}

package usecase

import (
	"math"
	"slices"

	"github.com/alwahis/ride-search/internal/domain"
)

// PageOffset returns the number of items preceding a 1-based page.
// Offsets that would overflow saturate at math.MaxInt, which lies past
// the end of any result set.
func PageOffset(page, perPage int) int {
	if page < 1 || perPage < 1 {
		return 0
	}
	if page-1 > (math.MaxInt-perPage)/perPage {
		return math.MaxInt
	}
	return (page - 1) * perPage
}

// SortRides orders rides in place by the sort key, breaking ties by ID.
func SortRides(rides []domain.Ride, s domain.Sort) {
	slices.SortFunc(rides, s.Compare)
}

// Window returns a copy of at most limit rides starting at offset.
// An offset past the end yields an empty, non-nil slice.
func Window(rides []domain.Ride, offset, limit int) []domain.Ride {
	return window(rides, offset, limit)
}

func window[T any](items []T, offset, limit int) []T {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || offset >= len(items) {
		return []T{}
	}
	end := min(offset+limit, len(items))

	out := make([]T, end-offset)
	copy(out, items[offset:end])
	return out
}

// evaluate filters, sorts and windows items. The input slice is not modified.
func evaluate[T domain.Record](items []T, q domain.Query, cmp func(a, b T) int) ([]T, int) {
	matched := make([]T, 0, len(items))
	for _, item := range items {
		if q.Matches(item) {
			matched = append(matched, item)
		}
	}

	slices.SortFunc(matched, cmp)

	return window(matched, q.Offset, q.Limit), len(matched)
}

// EvaluateQuery runs a query over an already fetched list of rides:
// filter, sort, count and window. The input slice is not modified.
func EvaluateQuery(rides []domain.Ride, q domain.Query) domain.RidePage {
	page, total := evaluate(rides, q, q.Sort.Compare)
	return domain.RidePage{Rides: page, Total: total}
}

// EvaluateRequestQuery is EvaluateQuery for ride requests.
func EvaluateRequestQuery(requests []domain.RideRequest, q domain.Query) domain.RequestPage {
	page, total := evaluate(requests, q, func(a, b domain.RideRequest) int {
		return domain.CompareRecords(q.Sort, a, b)
	})
	return domain.RequestPage{Requests: page, Total: total}
}

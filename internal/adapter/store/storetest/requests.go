package storetest

import (
	"context"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alwahis/ride-search/internal/domain"
	"github.com/alwahis/ride-search/internal/usecase"
)

// RequestFactory returns a store containing exactly requests.
// It is called once per subtest; stores must not share data between calls.
type RequestFactory func(t *testing.T, requests []domain.RideRequest) domain.RequestStore

// NewRequest builds an open ride request for fixtures.
func NewRequest(id, from, to string, preferred, created time.Time) domain.RideRequest {
	return domain.RideRequest{
		ID:            id,
		FromLocation:  from,
		ToLocation:    to,
		PreferredDate: preferred,
		SeatsNeeded:   1,
		Status:        domain.RequestStatusOpen,
		UserID:        "rider-" + id,
		CreatedAt:     created,
	}
}

// MixedRequests is a request data set with creation ties, every status,
// Arabic locations and preferred dates around a day boundary.
func MixedRequests() []domain.RideRequest {
	routes := [][2]string{
		{"Basra", "Baghdad"},
		{"BASRA", "najaf"},
		{"البصرة", "بغداد"},
		{"Najaf", "Karbala"},
	}
	statuses := []domain.RequestStatus{
		domain.RequestStatusOpen,
		domain.RequestStatusOpen,
		domain.RequestStatusMatched,
		domain.RequestStatusOpen,
		domain.RequestStatusCancelled,
	}
	preferred := []time.Time{
		At(17, 23, 59, 59),
		At(18, 0, 0, 0),
		At(18, 9, 30, 0),
		At(19, 7, 0, 0),
		At(20, 12, 0, 0),
		At(16, 8, 0, 0),
	}

	var requests []domain.RideRequest
	for i := 0; i < 30; i++ {
		r := routes[i%len(routes)]
		req := NewRequest(
			fmt.Sprintf("req-%02d", (i*7)%30),
			r[0], r[1],
			preferred[i%len(preferred)],
			At(1+i%4, 12, 0, 0),
		)
		req.Status = statuses[i%len(statuses)]
		req.SeatsNeeded = 1 + i%3
		requests = append(requests, req)
	}
	return requests
}

// RunRequests executes the ride request contract suite against stores
// built by factory.
func RunRequests(t *testing.T, factory RequestFactory) {
	t.Run("OnlyOpenReturned", func(t *testing.T) { testRequestsOpenOnly(t, factory) })
	t.Run("CaseInsensitiveContains", func(t *testing.T) { testRequestsContains(t, factory) })
	t.Run("PreferredDateOnOrAfter", func(t *testing.T) { testRequestsDate(t, factory) })
	t.Run("NewestFirst", func(t *testing.T) { testRequestsOrder(t, factory) })
	t.Run("Pagination", func(t *testing.T) { testRequestsPagination(t, factory) })
	t.Run("EmptyStore", func(t *testing.T) {
		result := searchRequests(t, factory(t, nil), domain.RequestSearchCriteria{})
		assert.NotNil(t, result.Requests)
		assert.Empty(t, result.Requests)
		assert.Equal(t, domain.Pagination{CurrentPage: 1, PerPage: 10}, result.Pagination)
	})
	t.Run("MatchesInMemoryEvaluation", func(t *testing.T) { testRequestsEquivalence(t, factory) })
}

func searchRequests(t *testing.T, store domain.RequestStore, c domain.RequestSearchCriteria) *domain.RequestSearchResult {
	t.Helper()
	uc := usecase.NewRequestSearchUseCase(store, &usecase.Config{Location: Location})
	result, err := uc.SearchRequests(context.Background(), c)
	require.NoError(t, err)
	require.NotNil(t, result)
	return result
}

func requestIDs(requests []domain.RideRequest) []string {
	out := make([]string, len(requests))
	for i, r := range requests {
		out[i] = r.ID
	}
	return out
}

func testRequestsOpenOnly(t *testing.T, factory RequestFactory) {
	requests := MixedRequests()
	store := factory(t, requests)

	open := 0
	for _, r := range requests {
		if r.IsSearchable() {
			open++
		}
	}

	result := searchRequests(t, store, domain.RequestSearchCriteria{PerPage: intPtr(domain.MaxPerPage)})

	assert.Equal(t, open, result.Pagination.TotalItems)
	require.Len(t, result.Requests, open)
	for _, r := range result.Requests {
		assert.Equal(t, domain.RequestStatusOpen, r.Status, "request %s", r.ID)
	}
}

func testRequestsContains(t *testing.T, factory RequestFactory) {
	store := factory(t, MixedRequests())

	tests := []struct {
		name     string
		criteria domain.RequestSearchCriteria
		check    func(domain.RideRequest) bool
	}{
		{"lowercase needle", domain.RequestSearchCriteria{FromLocation: "basra"}, func(r domain.RideRequest) bool { return r.FromLocation == "Basra" || r.FromLocation == "BASRA" }},
		{"uppercase needle", domain.RequestSearchCriteria{ToLocation: "NAJAF"}, func(r domain.RideRequest) bool { return r.ToLocation == "najaf" }},
		{"arabic substring", domain.RequestSearchCriteria{ToLocation: "بغد"}, func(r domain.RideRequest) bool { return r.ToLocation == "بغداد" }},
		{"both ends", domain.RequestSearchCriteria{FromLocation: "naj", ToLocation: "kar"}, func(r domain.RideRequest) bool { return r.FromLocation == "Najaf" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := tt.criteria
			c.PerPage = intPtr(domain.MaxPerPage)
			result := searchRequests(t, store, c)

			require.NotEmpty(t, result.Requests)
			for _, r := range result.Requests {
				assert.True(t, tt.check(r), "unexpected request %s (%s -> %s)", r.ID, r.FromLocation, r.ToLocation)
			}
		})
	}
}

func testRequestsDate(t *testing.T, factory RequestFactory) {
	created := At(1, 12, 0, 0)
	store := factory(t, []domain.RideRequest{
		NewRequest("before-day", "A", "B", At(17, 23, 59, 59), created),
		NewRequest("day-start", "A", "B", At(18, 0, 0, 0), created),
		NewRequest("next-day", "A", "B", At(19, 6, 0, 0), created),
	})

	result := searchRequests(t, store, domain.RequestSearchCriteria{Date: "2025-01-18"})
	assert.ElementsMatch(t, []string{"day-start", "next-day"}, requestIDs(result.Requests))

	result = searchRequests(t, store, domain.RequestSearchCriteria{Date: "2025-01-20"})
	assert.Empty(t, result.Requests)
}

func testRequestsOrder(t *testing.T, factory RequestFactory) {
	early := At(2, 8, 0, 0)
	late := At(3, 8, 0, 0)
	day := At(18, 9, 0, 0)
	store := factory(t, []domain.RideRequest{
		NewRequest("b", "A", "B", day, late),
		NewRequest("old", "A", "B", day, early),
		NewRequest("a", "A", "B", day, late),
		NewRequest("C", "A", "B", day, late),
	})

	result := searchRequests(t, store, domain.RequestSearchCriteria{})

	// Byte order puts "C" before "a" among equal creation times.
	assert.Equal(t, []string{"C", "a", "b", "old"}, requestIDs(result.Requests))
}

func testRequestsPagination(t *testing.T, factory RequestFactory) {
	store := factory(t, MixedRequests())
	all := searchRequests(t, store, domain.RequestSearchCriteria{PerPage: intPtr(domain.MaxPerPage)})

	var paged []string
	for page := 1; page <= all.Pagination.TotalItems/4+1; page++ {
		res := searchRequests(t, store, domain.RequestSearchCriteria{Page: intPtr(page), PerPage: intPtr(4)})
		assert.LessOrEqual(t, len(res.Requests), 4)
		paged = append(paged, requestIDs(res.Requests)...)
	}
	assert.Equal(t, requestIDs(all.Requests), paged, "pages concatenate to the full ordering")

	t.Run("offset overflowing int", func(t *testing.T) {
		page := math.MaxInt / 2
		res := searchRequests(t, store, domain.RequestSearchCriteria{Page: intPtr(page), PerPage: intPtr(4)})

		assert.NotNil(t, res.Requests)
		assert.Empty(t, res.Requests)
		assert.Equal(t, page, res.Pagination.CurrentPage)
		assert.Equal(t, all.Pagination.TotalItems, res.Pagination.TotalItems)
	})
}

func testRequestsEquivalence(t *testing.T, factory RequestFactory) {
	requests := MixedRequests()
	store := factory(t, requests)

	grid := []domain.RequestSearchCriteria{
		{},
		{FromLocation: "basra"},
		{ToLocation: "BAGHDAD"},
		{FromLocation: "البص", ToLocation: "بغد"},
		{Date: "2025-01-18"},
		{Date: "2025-01-19", FromLocation: "a"},
		{PerPage: intPtr(3), Page: intPtr(2)},
		{Page: intPtr(40)},
	}

	for i, c := range grid {
		t.Run(fmt.Sprintf("criteria_%02d", i), func(t *testing.T) {
			q, err := usecase.BuildRequestQuery(c.WithDefaults(), Location)
			require.NoError(t, err)
			want := usecase.EvaluateRequestQuery(requests, q)

			got := searchRequests(t, store, c)

			assert.Equal(t, requestIDs(want.Requests), requestIDs(got.Requests))
			assert.Equal(t, want.Total, got.Pagination.TotalItems)
			for j := range got.Requests {
				w, g := want.Requests[j], got.Requests[j]
				assert.Equal(t, w.FromLocation, g.FromLocation)
				assert.Equal(t, w.ToLocation, g.ToLocation)
				assert.True(t, w.PreferredDate.Equal(g.PreferredDate), "preferred_date %s != %s", w.PreferredDate, g.PreferredDate)
				assert.True(t, w.CreatedAt.Equal(g.CreatedAt), "created_at %s != %s", w.CreatedAt, g.CreatedAt)
				assert.Equal(t, w.SeatsNeeded, g.SeatsNeeded)
				assert.Equal(t, w.UserID, g.UserID)
			}
		})
	}
}

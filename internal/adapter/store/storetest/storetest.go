// Package storetest is a contract suite every domain.RideStore must pass.
// Running it against each store keeps the in-memory evaluator and the SQL
// push-down evaluators equivalent.
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
	"github.com/alwahis/ride-search/internal/infrastructure/timeutil"
	"github.com/alwahis/ride-search/internal/usecase"
)

// Factory returns a store containing exactly rides.
// It is called once per subtest; stores must not share data between calls.
type Factory func(t *testing.T, rides []domain.Ride) domain.RideStore

// Location is the reference zone used by the suite.
var Location = timeutil.MustGetLocation(timeutil.Baghdad)

// At returns the instant of a wall-clock time on 2025-01-DD in Location.
func At(day, hour, minute, second int) time.Time {
	return time.Date(2025, 1, day, hour, minute, second, 0, Location).UTC()
}

// NewRide builds a published ride for fixtures.
func NewRide(id, from, to string, price, seats int, departure time.Time) domain.Ride {
	return domain.Ride{
		ID:              id,
		DepartureCity:   from,
		DestinationCity: to,
		DepartureTime:   departure,
		PricePerSeat:    price,
		AvailableSeats:  seats,
		TotalSeats:      max(seats, 4),
		Status:          domain.RideStatusPublished,
		UserID:          "driver-" + id,
		CreatedAt:       At(1, 12, 0, 0),
	}
}

// ScenarioRides are the two rides the documented scenarios run against.
func ScenarioRides() []domain.Ride {
	return []domain.Ride{
		NewRide("ride-1", "Baghdad", "Karbala", 15000, 4, At(18, 10, 0, 0)),
		NewRide("ride-2", "Baghdad", "Najaf", 18000, 3, At(18, 11, 0, 0)),
	}
}

// MixedRides is a larger data set with ties, every status, Arabic city
// names, zero prices and boundary departure times.
func MixedRides() []domain.Ride {
	cities := [][2]string{
		{"Baghdad", "Karbala"},
		{"Baghdad", "Najaf"},
		{"BASRA", "baghdad"},
		{"بغداد", "كربلاء"},
		{"Erbil", "Mosul"},
	}
	statuses := []domain.RideStatus{
		domain.RideStatusPublished,
		domain.RideStatusPublished,
		domain.RideStatusDraft,
		domain.RideStatusPublished,
		domain.RideStatusCompleted,
		domain.RideStatusPublished,
		domain.RideStatusCancelled,
		domain.RideStatusDeleted,
	}
	departures := []time.Time{
		At(18, 0, 0, 0),
		At(18, 7, 59, 59),
		At(18, 8, 0, 0),
		At(18, 12, 30, 0),
		At(18, 23, 59, 59),
		At(19, 0, 0, 0),
		At(17, 23, 59, 59),
		At(18, 12, 30, 0),
	}

	var rides []domain.Ride
	for i := 0; i < 40; i++ {
		c := cities[i%len(cities)]
		r := NewRide(
			fmt.Sprintf("ride-%02d", (i*17)%40),
			c[0], c[1],
			[]int{0, 10000, 15000, 15000, 20000}[i%5],
			i%5,
			departures[i%len(departures)],
		)
		r.Status = statuses[i%len(statuses)]
		rides = append(rides, r)
	}
	return rides
}

// Run executes the contract suite against stores built by factory.
func Run(t *testing.T, factory Factory) {
	t.Run("Scenarios", func(t *testing.T) { testScenarios(t, factory) })
	t.Run("EmptyCriteriaReturnsAllPublished", func(t *testing.T) { testEmptyCriteria(t, factory) })
	t.Run("UnpublishedNeverReturned", func(t *testing.T) { testUnpublishedExcluded(t, factory) })
	t.Run("Idempotent", func(t *testing.T) { testIdempotent(t, factory) })
	t.Run("PaginationTotals", func(t *testing.T) { testPaginationTotals(t, factory) })
	t.Run("PageBeyondRange", func(t *testing.T) { testPageBeyondRange(t, factory) })
	t.Run("EmptyStore", func(t *testing.T) { testEmptyStore(t, factory) })
	t.Run("CaseInsensitiveContains", func(t *testing.T) { testContains(t, factory) })
	t.Run("UnicodeCaseFolding", func(t *testing.T) { testCaseFolding(t, factory) })
	t.Run("InclusiveBoundaries", func(t *testing.T) { testBoundaries(t, factory) })
	t.Run("SortOrderAndTieBreak", func(t *testing.T) { testSortOrder(t, factory) })
	t.Run("MatchesInMemoryEvaluation", func(t *testing.T) { testEquivalence(t, factory) })
	t.Run("Ping", func(t *testing.T) {
		require.NoError(t, factory(t, nil).Ping(context.Background()))
	})
}

func search(t *testing.T, store domain.RideStore, c domain.SearchCriteria) *domain.SearchResult {
	t.Helper()
	uc := usecase.NewRideSearchUseCase(store, &usecase.Config{Location: Location})
	result, err := uc.Search(context.Background(), c)
	require.NoError(t, err)
	require.NotNil(t, result)
	return result
}

func ids(rides []domain.Ride) []string {
	out := make([]string, len(rides))
	for i, r := range rides {
		out[i] = r.ID
	}
	return out
}

func intPtr(i int) *int { return &i }

func testScenarios(t *testing.T, factory Factory) {
	store := factory(t, ScenarioRides())

	tests := []struct {
		name     string
		criteria domain.SearchCriteria
		wantIDs  []string
		wantPage *domain.Pagination
	}{
		{
			name:     "origin substring returns both ordered by departure",
			criteria: domain.SearchCriteria{DepartureCity: "Baghdad"},
			wantIDs:  []string{"ride-1", "ride-2"},
		},
		{
			name:     "destination and date",
			criteria: domain.SearchCriteria{DestinationCity: "Karbala", Date: "2025-01-18"},
			wantIDs:  []string{"ride-1"},
		},
		{
			name:     "minimum seats",
			criteria: domain.SearchCriteria{MinAvailableSeats: intPtr(4)},
			wantIDs:  []string{"ride-1"},
		},
		{
			name:     "second page of size one",
			criteria: domain.SearchCriteria{Page: intPtr(2), PerPage: intPtr(1), SortBy: domain.SortByDepartureTime, SortOrder: domain.SortAscending},
			wantIDs:  []string{"ride-2"},
			wantPage: &domain.Pagination{CurrentPage: 2, PerPage: 1, TotalItems: 2, TotalPages: 2},
		},
		{
			name:     "time window within the date",
			criteria: domain.SearchCriteria{Date: "2025-01-18", DepartureTimeStart: "10:30", DepartureTimeEnd: "11:00"},
			wantIDs:  []string{"ride-2"},
		},
		{
			name:     "price range",
			criteria: domain.SearchCriteria{MinPrice: intPtr(16000), MaxPrice: intPtr(18000)},
			wantIDs:  []string{"ride-2"},
		},
		{
			name:     "price descending",
			criteria: domain.SearchCriteria{SortBy: domain.SortByPrice, SortOrder: domain.SortDescending},
			wantIDs:  []string{"ride-2", "ride-1"},
		},
		{
			name:     "other date",
			criteria: domain.SearchCriteria{Date: "2025-01-19"},
			wantIDs:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := search(t, store, tt.criteria)

			assert.Equal(t, tt.wantIDs, ids(result.Rides))
			if tt.wantPage != nil {
				assert.Equal(t, *tt.wantPage, result.Pagination)
			}
		})
	}
}

func testEmptyCriteria(t *testing.T, factory Factory) {
	rides := MixedRides()
	store := factory(t, rides)

	result := search(t, store, domain.SearchCriteria{PerPage: intPtr(domain.MaxPerPage)})

	want := usecase.EvaluateQuery(rides, domain.Query{
		Predicates: []domain.Predicate{{Field: domain.FieldStatus, Op: domain.OpEq, Value: string(domain.RideStatusPublished)}},
		Sort:       domain.Sort{Field: domain.FieldDepartureTime},
		Limit:      domain.MaxPerPage,
	})
	assert.Equal(t, ids(want.Rides), ids(result.Rides))
	assert.Equal(t, want.Total, result.Pagination.TotalItems)

	first := search(t, store, domain.SearchCriteria{})
	assert.Equal(t, domain.DefaultPerPage, first.Pagination.PerPage)
	assert.Equal(t, 1, first.Pagination.CurrentPage)
	assert.Equal(t, ids(want.Rides)[:domain.DefaultPerPage], ids(first.Rides))
}

func testUnpublishedExcluded(t *testing.T, factory Factory) {
	rides := MixedRides()
	store := factory(t, rides)

	status := make(map[string]domain.RideStatus, len(rides))
	for _, r := range rides {
		status[r.ID] = r.Status
	}

	for _, c := range criteriaGrid() {
		c.PerPage = intPtr(domain.MaxPerPage)
		for _, r := range search(t, store, c).Rides {
			assert.Equal(t, domain.RideStatusPublished, status[r.ID], "ride %s returned for %+v", r.ID, c)
			assert.Equal(t, domain.RideStatusPublished, r.Status)
		}
	}
}

func testIdempotent(t *testing.T, factory Factory) {
	store := factory(t, MixedRides())
	c := domain.SearchCriteria{DepartureCity: "bag", SortBy: domain.SortByPrice, PerPage: intPtr(3), Page: intPtr(2)}

	assert.Equal(t, search(t, store, c), search(t, store, c))
}

func testPaginationTotals(t *testing.T, factory Factory) {
	store := factory(t, MixedRides())

	for _, perPage := range []int{1, 3, 7, 100} {
		for _, sortBy := range []domain.SortField{domain.SortByDepartureTime, domain.SortByPrice, domain.SortByAvailableSeats} {
			t.Run(fmt.Sprintf("%s/%d", sortBy, perPage), func(t *testing.T) {
				c := domain.SearchCriteria{SortBy: sortBy, SortOrder: domain.SortDescending, PerPage: intPtr(perPage)}
				first := search(t, store, c)

				total := first.Pagination.TotalItems
				wantPages := int(math.Ceil(float64(total) / float64(perPage)))
				assert.Equal(t, wantPages, first.Pagination.TotalPages)

				seen := make(map[string]bool)
				var all []string
				for page := 1; page <= first.Pagination.TotalPages; page++ {
					c.Page = intPtr(page)
					res := search(t, store, c)
					assert.LessOrEqual(t, len(res.Rides), perPage)
					for _, r := range res.Rides {
						assert.False(t, seen[r.ID], "ride %s appears on two pages", r.ID)
						seen[r.ID] = true
						all = append(all, r.ID)
					}
				}
				assert.Len(t, all, total)

				c.Page, c.PerPage = intPtr(1), intPtr(domain.MaxPerPage)
				assert.Equal(t, ids(search(t, store, c).Rides), all, "pages concatenate to the full ordering")
			})
		}
	}
}

func testPageBeyondRange(t *testing.T, factory Factory) {
	store := factory(t, ScenarioRides())

	result := search(t, store, domain.SearchCriteria{Page: intPtr(5), PerPage: intPtr(1)})

	assert.NotNil(t, result.Rides)
	assert.Empty(t, result.Rides)
	assert.Equal(t, domain.Pagination{CurrentPage: 5, PerPage: 1, TotalItems: 2, TotalPages: 2}, result.Pagination)

	t.Run("offset overflowing int", func(t *testing.T) {
		page := math.MaxInt / 2
		result := search(t, store, domain.SearchCriteria{Page: intPtr(page), PerPage: intPtr(4)})

		assert.NotNil(t, result.Rides)
		assert.Empty(t, result.Rides)
		assert.Equal(t, domain.Pagination{CurrentPage: page, PerPage: 4, TotalItems: 2, TotalPages: 1}, result.Pagination)
	})
}

func testEmptyStore(t *testing.T, factory Factory) {
	store := factory(t, nil)

	result := search(t, store, domain.SearchCriteria{})

	assert.NotNil(t, result.Rides)
	assert.Empty(t, result.Rides)
	assert.Equal(t, domain.Pagination{CurrentPage: 1, PerPage: 10, TotalItems: 0, TotalPages: 0}, result.Pagination)
}

func testContains(t *testing.T, factory Factory) {
	store := factory(t, MixedRides())

	tests := []struct {
		name     string
		criteria domain.SearchCriteria
		check    func(domain.Ride) bool
	}{
		{"lowercase needle", domain.SearchCriteria{DepartureCity: "basra"}, func(r domain.Ride) bool { return r.DepartureCity == "BASRA" }},
		{"uppercase needle", domain.SearchCriteria{DestinationCity: "BAGHDAD"}, func(r domain.Ride) bool { return r.DestinationCity == "baghdad" }},
		{"inner substring", domain.SearchCriteria{DepartureCity: "ghd"}, func(r domain.Ride) bool { return r.DepartureCity == "Baghdad" }},
		{"arabic substring", domain.SearchCriteria{DestinationCity: "كربل"}, func(r domain.Ride) bool { return r.DestinationCity == "كربلاء" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := tt.criteria
			c.PerPage = intPtr(domain.MaxPerPage)
			result := search(t, store, c)

			require.NotEmpty(t, result.Rides)
			for _, r := range result.Rides {
				assert.True(t, tt.check(r), "unexpected ride %s (%s -> %s)", r.ID, r.DepartureCity, r.DestinationCity)
			}
		})
	}
}

func testCaseFolding(t *testing.T, factory Factory) {
	store := factory(t, []domain.Ride{
		NewRide("sharp-s", "Straße", "Αθήνα", 100, 1, At(18, 9, 0, 0)),
		NewRide("plain", "Strasbourg", "Athens", 100, 1, At(18, 10, 0, 0)),
	})

	tests := []struct {
		name     string
		criteria domain.SearchCriteria
		want     []string
	}{
		{"sharp s folds to ss", domain.SearchCriteria{DepartureCity: "STRASSE"}, []string{"sharp-s"}},
		{"folded needle matches sharp s", domain.SearchCriteria{DepartureCity: "straß"}, []string{"sharp-s"}},
		{"greek capitals", domain.SearchCriteria{DestinationCity: "ΑΘΉΝΑ"}, []string{"sharp-s"}},
		{"shared prefix", domain.SearchCriteria{DepartureCity: "STRA"}, []string{"sharp-s", "plain"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(search(t, store, tt.criteria).Rides))
		})
	}
}

func testBoundaries(t *testing.T, factory Factory) {
	rides := []domain.Ride{
		NewRide("before-day", "A", "B", 100, 1, At(17, 23, 59, 59)),
		NewRide("day-start", "A", "B", 100, 1, At(18, 0, 0, 0)),
		NewRide("window-start", "A", "B", 0, 0, At(18, 8, 0, 0)),
		NewRide("window-end", "A", "B", 200, 2, At(18, 12, 0, 0)),
		NewRide("day-end", "A", "B", 300, 3, At(18, 23, 59, 59)),
		NewRide("after-day", "A", "B", 300, 3, At(19, 0, 0, 0)),
	}
	store := factory(t, rides)

	tests := []struct {
		name     string
		criteria domain.SearchCriteria
		want     []string
	}{
		{"whole day", domain.SearchCriteria{Date: "2025-01-18"}, []string{"day-start", "window-start", "window-end", "day-end"}},
		{"inclusive time window", domain.SearchCriteria{Date: "2025-01-18", DepartureTimeStart: "08:00", DepartureTimeEnd: "12:00"}, []string{"window-start", "window-end"}},
		{"single minute window", domain.SearchCriteria{Date: "2025-01-18", DepartureTimeStart: "12:00", DepartureTimeEnd: "12:00"}, []string{"window-end"}},
		{"explicit zero min price keeps free ride", domain.SearchCriteria{MinPrice: intPtr(0), MaxPrice: intPtr(0)}, []string{"window-start"}},
		{"inclusive price bounds", domain.SearchCriteria{MinPrice: intPtr(200), MaxPrice: intPtr(300)}, []string{"window-end", "day-end", "after-day"}},
		{"zero seats bound matches all", domain.SearchCriteria{MinAvailableSeats: intPtr(0)}, []string{"before-day", "day-start", "window-start", "window-end", "day-end", "after-day"}},
		{"inclusive seats bound", domain.SearchCriteria{MinAvailableSeats: intPtr(3)}, []string{"day-end", "after-day"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(search(t, store, tt.criteria).Rides))
		})
	}
}

func testSortOrder(t *testing.T, factory Factory) {
	same := At(18, 9, 0, 0)
	rides := []domain.Ride{
		NewRide("b", "A", "B", 500, 2, same),
		NewRide("a", "A", "B", 500, 2, same),
		NewRide("C", "A", "B", 500, 2, same),
		NewRide("c", "A", "B", 100, 1, same.Add(time.Hour)),
	}
	store := factory(t, rides)

	tests := []struct {
		sortBy domain.SortField
		order  domain.SortOrder
		want   []string
	}{
		// Byte order puts "C" before "a".
		{domain.SortByDepartureTime, domain.SortAscending, []string{"C", "a", "b", "c"}},
		{domain.SortByDepartureTime, domain.SortDescending, []string{"c", "C", "a", "b"}},
		{domain.SortByPrice, domain.SortAscending, []string{"c", "C", "a", "b"}},
		{domain.SortByPrice, domain.SortDescending, []string{"C", "a", "b", "c"}},
		{domain.SortByAvailableSeats, domain.SortDescending, []string{"C", "a", "b", "c"}},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s_%s", tt.sortBy, tt.order), func(t *testing.T) {
			result := search(t, store, domain.SearchCriteria{SortBy: tt.sortBy, SortOrder: tt.order})
			assert.Equal(t, tt.want, ids(result.Rides))
		})
	}
}

func testEquivalence(t *testing.T, factory Factory) {
	rides := MixedRides()
	store := factory(t, rides)

	for i, c := range criteriaGrid() {
		t.Run(fmt.Sprintf("criteria_%02d", i), func(t *testing.T) {
			q, err := usecase.BuildQuery(c.WithDefaults(), Location)
			require.NoError(t, err)
			want := usecase.EvaluateQuery(rides, q)

			got := search(t, store, c)

			assert.Equal(t, ids(want.Rides), ids(got.Rides))
			assert.Equal(t, want.Total, got.Pagination.TotalItems)
			for j := range got.Rides {
				assertSameRide(t, want.Rides[j], got.Rides[j])
			}
		})
	}
}

// assertSameRide compares rides field by field, instants by value.
func assertSameRide(t *testing.T, want, got domain.Ride) {
	t.Helper()
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.DepartureCity, got.DepartureCity)
	assert.Equal(t, want.DestinationCity, got.DestinationCity)
	assert.True(t, want.DepartureTime.Equal(got.DepartureTime), "departure %s != %s", want.DepartureTime, got.DepartureTime)
	assert.Equal(t, want.PricePerSeat, got.PricePerSeat)
	assert.Equal(t, want.AvailableSeats, got.AvailableSeats)
	assert.Equal(t, want.TotalSeats, got.TotalSeats)
	assert.Equal(t, want.Status, got.Status)
	assert.Equal(t, want.UserID, got.UserID)
	assert.Equal(t, want.WhatsAppNumber, got.WhatsAppNumber)
	assert.True(t, want.CreatedAt.Equal(got.CreatedAt), "created_at %s != %s", want.CreatedAt, got.CreatedAt)
}

// criteriaGrid is a spread of valid criteria exercising every predicate.
func criteriaGrid() []domain.SearchCriteria {
	return []domain.SearchCriteria{
		{},
		{DepartureCity: "baghdad"},
		{DestinationCity: "BAGHDAD"},
		{DepartureCity: "بغد", DestinationCity: "كرب"},
		{Date: "2025-01-18"},
		{Date: "2025-01-18", DepartureTimeStart: "08:00"},
		{Date: "2025-01-18", DepartureTimeEnd: "07:59"},
		{Date: "2025-01-18", DepartureTimeStart: "08:00", DepartureTimeEnd: "12:30"},
		{MinPrice: intPtr(0)},
		{MinPrice: intPtr(10000), MaxPrice: intPtr(15000)},
		{MaxPrice: intPtr(0)},
		{MinAvailableSeats: intPtr(2)},
		{SortBy: domain.SortByPrice},
		{SortBy: domain.SortByPrice, SortOrder: domain.SortDescending, Page: intPtr(2), PerPage: intPtr(4)},
		{SortBy: domain.SortByAvailableSeats, SortOrder: domain.SortDescending, PerPage: intPtr(5)},
		{SortBy: domain.SortByAvailableSeats, Page: intPtr(3), PerPage: intPtr(3)},
		{DepartureCity: "a", MinAvailableSeats: intPtr(1), SortBy: domain.SortByPrice, SortOrder: domain.SortDescending},
		{Page: intPtr(50)},
	}
}

package domain

import (
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// createTestRide creates a published ride departing on 2025-01-18 at the given hour (UTC).
func createTestRide(id, from, to string, price, seats, hour int) Ride {
	return Ride{
		ID:              id,
		DepartureCity:   from,
		DestinationCity: to,
		DepartureTime:   time.Date(2025, 1, 18, hour, 0, 0, 0, time.UTC),
		PricePerSeat:    price,
		AvailableSeats:  seats,
		TotalSeats:      seats,
		Status:          RideStatusPublished,
		UserID:          "driver-" + id,
	}
}

func TestPredicate_Matches(t *testing.T) {
	ride := createTestRide("r1", "Baghdad", "Karbala", 15000, 4, 10)
	at := func(hour, min int) time.Time { return time.Date(2025, 1, 18, hour, min, 0, 0, time.UTC) }

	tests := []struct {
		name      string
		predicate Predicate
		want      bool
	}{
		{"status equal", Predicate{FieldStatus, OpEq, "published"}, true},
		{"status differs", Predicate{FieldStatus, OpEq, "draft"}, false},
		{"contains exact", Predicate{FieldDepartureCity, OpContains, "Baghdad"}, true},
		{"contains different case", Predicate{FieldDepartureCity, OpContains, "bAGH"}, true},
		{"contains miss", Predicate{FieldDestinationCity, OpContains, "Najaf"}, false},
		{"contains empty needle", Predicate{FieldDestinationCity, OpContains, ""}, true},
		{"price gte equal", Predicate{FieldPricePerSeat, OpGte, 15000}, true},
		{"price gte above", Predicate{FieldPricePerSeat, OpGte, 15001}, false},
		{"price lte equal", Predicate{FieldPricePerSeat, OpLte, 15000}, true},
		{"price lte below", Predicate{FieldPricePerSeat, OpLte, 14999}, false},
		{"seats gte", Predicate{FieldAvailableSeats, OpGte, 4}, true},
		{"seats gte miss", Predicate{FieldAvailableSeats, OpGte, 5}, false},
		{"departure gte boundary", Predicate{FieldDepartureTime, OpGte, at(10, 0)}, true},
		{"departure gte after", Predicate{FieldDepartureTime, OpGte, at(10, 1)}, false},
		{"departure lte boundary", Predicate{FieldDepartureTime, OpLte, at(10, 0)}, true},
		{"departure lte before", Predicate{FieldDepartureTime, OpLte, at(9, 59)}, false},
		{"departure compares instants across zones", Predicate{FieldDepartureTime, OpGte, at(10, 0).In(time.FixedZone("AST", 3*3600))}, true},
		{"mismatched value type", Predicate{FieldPricePerSeat, OpGte, "15000"}, false},
		{"unknown field", Predicate{Field("rating"), OpEq, 5}, false},
		{"unknown operator", Predicate{FieldPricePerSeat, Operator("neq"), 1}, false},
		{"contains on numeric field", Predicate{FieldPricePerSeat, OpContains, 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.predicate.Matches(ride))
		})
	}
}

func TestQuery_Matches(t *testing.T) {
	ride := createTestRide("r1", "Baghdad", "Karbala", 15000, 4, 10)

	t.Run("empty query matches everything", func(t *testing.T) {
		assert.True(t, Query{}.Matches(ride))
	})

	t.Run("all predicates must hold", func(t *testing.T) {
		q := Query{Predicates: []Predicate{
			{FieldStatus, OpEq, string(RideStatusPublished)},
			{FieldDepartureCity, OpContains, "bag"},
			{FieldAvailableSeats, OpGte, 5},
		}}
		assert.False(t, q.Matches(ride))

		q.Predicates[2].Value = 4
		assert.True(t, q.Matches(ride))
	})
}

func TestSort_Compare(t *testing.T) {
	rides := []Ride{
		createTestRide("c", "Baghdad", "Najaf", 18000, 3, 11),
		createTestRide("b", "Baghdad", "Karbala", 15000, 4, 10),
		createTestRide("a", "Basra", "Najaf", 15000, 2, 11),
	}

	ids := func(s Sort) []string {
		sorted := slices.Clone(rides)
		slices.SortFunc(sorted, s.Compare)
		out := make([]string, len(sorted))
		for i, r := range sorted {
			out[i] = r.ID
		}
		return out
	}

	tests := []struct {
		name string
		sort Sort
		want []string
	}{
		{"departure ascending with id tie-break", Sort{Field: FieldDepartureTime}, []string{"b", "a", "c"}},
		{"departure descending keeps ascending tie-break", Sort{Field: FieldDepartureTime, Descending: true}, []string{"a", "c", "b"}},
		{"price ascending", Sort{Field: FieldPricePerSeat}, []string{"a", "b", "c"}},
		{"price descending", Sort{Field: FieldPricePerSeat, Descending: true}, []string{"c", "a", "b"}},
		{"seats descending", Sort{Field: FieldAvailableSeats, Descending: true}, []string{"b", "c", "a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(tt.sort))
		})
	}
}

func TestSortField_Column(t *testing.T) {
	assert.Equal(t, FieldDepartureTime, SortByDepartureTime.Column())
	assert.Equal(t, FieldPricePerSeat, SortByPrice.Column())
	assert.Equal(t, FieldAvailableSeats, SortByAvailableSeats.Column())
}

func TestFoldContains(t *testing.T) {
	assert.True(t, FoldContains("Baghdad", "GHD"))
	assert.True(t, FoldContains("بغداد", "غدا"))
	assert.True(t, FoldContains("İstanbul", "stan"))
	assert.True(t, FoldContains("Straße", "STRASSE"), "full folding expands sharp s")
	assert.True(t, FoldContains("ΣΟΦΊΑ", "σοφία"))
	assert.False(t, FoldContains("Najaf", "Karbala"))
}

func TestFoldText(t *testing.T) {
	assert.Equal(t, "baghdad", FoldText("BaGhDaD"))
	assert.Equal(t, "بغداد", FoldText("بغداد"))
	assert.Equal(t, "strasse", FoldText("Straße"))

	// Substring tests on folded copies agree with FoldContains, which is
	// what stores keeping folded columns rely on.
	for _, tc := range [][2]string{{"İstanbul", "İST"}, {"Karbala", "BALA"}, {"ΣΟΦΊΑ", "φία"}} {
		assert.Equal(t, FoldContains(tc[0], tc[1]), strings.Contains(FoldText(tc[0]), FoldText(tc[1])), tc[0])
	}
}

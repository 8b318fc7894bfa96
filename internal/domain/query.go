package domain

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
)

// Field names a filterable or sortable record attribute.
// Values double as column names in SQL-backed stores.
type Field string

// Fields shared by rides and ride requests.
const (
	FieldID        Field = "id"
	FieldStatus    Field = "status"
	FieldCreatedAt Field = "created_at"
)

// Ride fields usable in predicates and sorts.
const (
	FieldDepartureCity   Field = "departure_city"
	FieldDestinationCity Field = "destination_city"
	FieldDepartureTime   Field = "departure_time"
	FieldPricePerSeat    Field = "price_per_seat"
	FieldAvailableSeats  Field = "available_seats"
)

// Ride request fields usable in predicates and sorts.
const (
	FieldFromLocation  Field = "from_location"
	FieldToLocation    Field = "to_location"
	FieldPreferredDate Field = "preferred_date"
	FieldSeatsNeeded   Field = "seats_needed"
)

// Record is an entity a Query can be evaluated over.
type Record interface {
	// RecordID is the tie-break key of every sort
	RecordID() string

	fieldValue(f Field) any
}

// Operator is a comparison applied by a predicate.
type Operator string

// Supported operators.
const (
	// OpEq is exact equality
	OpEq Operator = "eq"

	// OpContains is a case-insensitive substring test on text fields
	OpContains Operator = "contains"

	// OpGte is an inclusive lower bound
	OpGte Operator = "gte"

	// OpLte is an inclusive upper bound
	OpLte Operator = "lte"
)

// Predicate is a single filter condition over one record field.
// Value is a string for text fields, an int for numeric fields
// and a time.Time for instants.
type Predicate struct {
	Field Field
	Op    Operator
	Value any
}

// Sort is a single-key ordering with an ascending ID tie-break.
type Sort struct {
	Field      Field
	Descending bool
}

// Query is a conjunction of predicates plus ordering and a result window.
// It is the storage-neutral form every store evaluates.
type Query struct {
	Predicates []Predicate
	Sort       Sort

	// Offset is the number of matching rides to skip
	Offset int

	// Limit is the maximum number of rides to return
	Limit int
}

// RidePage is one window of matching rides plus the total match count.
type RidePage struct {
	Rides []Ride
	Total int
}

// Column maps a sort field to the ride field it orders by.
func (s SortField) Column() Field {
	switch s {
	case SortByPrice:
		return FieldPricePerSeat
	case SortByAvailableSeats:
		return FieldAvailableSeats
	default:
		return FieldDepartureTime
	}
}

// FoldText returns the Unicode full case folding of s. Stores that cannot
// call Go at query time keep FoldText copies of searchable columns.
func FoldText(s string) string {
	// A Caser is stateful, so each call gets its own.
	return cases.Fold().String(s)
}

// FoldContains reports whether needle is a case-insensitive substring of haystack.
// Every store must use this exact notion of "contains".
func FoldContains(haystack, needle string) bool {
	return strings.Contains(FoldText(haystack), FoldText(needle))
}

// Matches reports whether the record satisfies every predicate of the query.
func (q Query) Matches(r Record) bool {
	for _, p := range q.Predicates {
		if !p.Matches(r) {
			return false
		}
	}
	return true
}

// Matches evaluates the predicate against a record.
// Unknown fields, operators or mismatched value types never match.
func (p Predicate) Matches(r Record) bool {
	switch actual := r.fieldValue(p.Field).(type) {
	case string:
		want, ok := p.Value.(string)
		if !ok {
			return false
		}
		switch p.Op {
		case OpEq:
			return actual == want
		case OpContains:
			return FoldContains(actual, want)
		}
	case int:
		want, ok := p.Value.(int)
		if !ok {
			return false
		}
		return compareOp(p.Op, compareInts(actual, want))
	case time.Time:
		want, ok := p.Value.(time.Time)
		if !ok {
			return false
		}
		return compareOp(p.Op, actual.Compare(want))
	}
	return false
}

// Compare orders two rides by the sort key, then by ID ascending.
// An empty sort field orders by departure time.
func (s Sort) Compare(a, b Ride) int {
	if s.Field == "" {
		s.Field = FieldDepartureTime
	}
	return CompareRecords(s, a, b)
}

// CompareRecords orders two records by the sort key, then by ID ascending.
// The direction applies to the sort key only.
func CompareRecords(s Sort, a, b Record) int {
	c := compareValues(a.fieldValue(s.Field), b.fieldValue(s.Field))
	if s.Descending {
		c = -c
	}
	if c != 0 {
		return c
	}
	return strings.Compare(a.RecordID(), b.RecordID())
}

func compareValues(a, b any) int {
	switch x := a.(type) {
	case int:
		if y, ok := b.(int); ok {
			return compareInts(x, y)
		}
	case time.Time:
		if y, ok := b.(time.Time); ok {
			return x.Compare(y)
		}
	case string:
		if y, ok := b.(string); ok {
			return strings.Compare(x, y)
		}
	}
	return 0
}

func (r Ride) fieldValue(f Field) any {
	switch f {
	case FieldID:
		return r.ID
	case FieldStatus:
		return string(r.Status)
	case FieldDepartureCity:
		return r.DepartureCity
	case FieldDestinationCity:
		return r.DestinationCity
	case FieldDepartureTime:
		return r.DepartureTime
	case FieldPricePerSeat:
		return r.PricePerSeat
	case FieldAvailableSeats:
		return r.AvailableSeats
	case FieldCreatedAt:
		return r.CreatedAt
	default:
		return nil
	}
}

func compareOp(op Operator, c int) bool {
	switch op {
	case OpEq:
		return c == 0
	case OpGte:
		return c >= 0
	case OpLte:
		return c <= 0
	default:
		return false
	}
}

func compareInts(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

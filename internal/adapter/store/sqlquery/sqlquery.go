// Package sqlquery renders domain queries to SQL for the relational stores.
// Each store supplies a Dialect and each table a Schema; the predicate,
// ordering and window semantics are shared so that every SQL store
// evaluates a query identically.
package sqlquery

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/alwahis/ride-search/internal/domain"
)

// FoldSuffix names the shadow column holding the case-folded copy of a
// searchable text column.
const FoldSuffix = "_fold"

// FoldColumn returns the folded shadow column of f.
func FoldColumn(f domain.Field) string {
	return string(f) + FoldSuffix
}

type kind int

const (
	kindText kind = iota
	kindInt
	kindTime
)

// Schema describes one table and the fields a query may touch.
type Schema struct {
	// Table is the table name
	Table string

	// Columns lists the entity columns in scan order
	Columns []string

	// Folded lists the text fields backed by a fold column when the
	// dialect asks for one
	Folded []domain.Field

	fields      map[domain.Field]kind
	sortable    map[domain.Field]bool
	defaultSort domain.Field
}

// Rides is the schema of the rides table.
var Rides = Schema{
	Table: "rides",
	Columns: []string{
		"id",
		"departure_city",
		"destination_city",
		"departure_time",
		"price_per_seat",
		"available_seats",
		"total_seats",
		"status",
		"user_id",
		"whatsapp_number",
		"created_at",
	},
	Folded: []domain.Field{domain.FieldDepartureCity, domain.FieldDestinationCity},
	fields: map[domain.Field]kind{
		domain.FieldID:              kindText,
		domain.FieldStatus:          kindText,
		domain.FieldDepartureCity:   kindText,
		domain.FieldDestinationCity: kindText,
		domain.FieldDepartureTime:   kindTime,
		domain.FieldPricePerSeat:    kindInt,
		domain.FieldAvailableSeats:  kindInt,
		domain.FieldCreatedAt:       kindTime,
	},
	sortable: map[domain.Field]bool{
		domain.FieldDepartureTime:  true,
		domain.FieldPricePerSeat:   true,
		domain.FieldAvailableSeats: true,
	},
	defaultSort: domain.FieldDepartureTime,
}

// RideRequests is the schema of the ride_requests table.
var RideRequests = Schema{
	Table: "ride_requests",
	Columns: []string{
		"id",
		"from_location",
		"to_location",
		"preferred_date",
		"seats_needed",
		"status",
		"user_id",
		"whatsapp_number",
		"created_at",
	},
	Folded: []domain.Field{domain.FieldFromLocation, domain.FieldToLocation},
	fields: map[domain.Field]kind{
		domain.FieldID:            kindText,
		domain.FieldStatus:        kindText,
		domain.FieldFromLocation:  kindText,
		domain.FieldToLocation:    kindText,
		domain.FieldPreferredDate: kindTime,
		domain.FieldSeatsNeeded:   kindInt,
		domain.FieldCreatedAt:     kindTime,
	},
	sortable: map[domain.Field]bool{
		domain.FieldCreatedAt:     true,
		domain.FieldPreferredDate: true,
	},
	defaultSort: domain.FieldCreatedAt,
}

// Dialect captures what differs between SQL engines.
type Dialect struct {
	// Placeholder returns the bind marker for the n-th (1-based) argument
	Placeholder func(n int) string

	// Contains renders a substring test of column against the bound needle.
	// With FoldedColumns the column is the fold column and the needle is
	// already folded, so the test must be case-sensitive.
	Contains func(column, needle string) string

	// FoldedColumns makes inserts fill and contains tests read the fold
	// columns of a Schema
	FoldedColumns bool

	// IDOrder is the expression ordering ids by byte value
	IDOrder string

	// TimeValue converts an instant to the driver's bind value
	TimeValue func(time.Time) any
}

// Statement is a rendered SQL statement with its bind arguments.
type Statement struct {
	SQL  string
	Args []any
}

type builder struct {
	d    Dialect
	s    Schema
	args []any
}

func (b *builder) bind(v any) string {
	b.args = append(b.args, v)
	return b.d.Placeholder(len(b.args))
}

// Count renders the statement counting every row matching q's predicates.
func (s Schema) Count(d Dialect, q domain.Query) (Statement, error) {
	b := &builder{d: d, s: s}
	where, err := b.where(q.Predicates)
	if err != nil {
		return Statement{}, err
	}
	return Statement{
		SQL:  "SELECT COUNT(*) FROM " + s.Table + where,
		Args: b.args,
	}, nil
}

// Select renders the statement returning q's sorted page window.
func (s Schema) Select(d Dialect, q domain.Query) (Statement, error) {
	b := &builder{d: d, s: s}
	where, err := b.where(q.Predicates)
	if err != nil {
		return Statement{}, err
	}

	field := q.Sort.Field
	if field == "" {
		field = s.defaultSort
	}
	if !s.sortable[field] {
		return Statement{}, fmt.Errorf("sqlquery: cannot sort %s by %q", s.Table, field)
	}
	dir := "ASC"
	if q.Sort.Descending {
		dir = "DESC"
	}

	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(strings.Join(s.Columns, ", "))
	sb.WriteString(" FROM ")
	sb.WriteString(s.Table)
	sb.WriteString(where)
	fmt.Fprintf(&sb, " ORDER BY %s %s, %s ASC", field, dir, d.IDOrder)
	sb.WriteString(" LIMIT " + b.bind(max(q.Limit, 0)))
	sb.WriteString(" OFFSET " + b.bind(max(q.Offset, 0)))

	return Statement{SQL: sb.String(), Args: b.args}, nil
}

// insert renders a plain INSERT of one row whose values follow Columns.
func (s Schema) insert(d Dialect, values []any) Statement {
	columns := slices.Clone(s.Columns)
	if d.FoldedColumns {
		for _, f := range s.Folded {
			text, _ := values[slices.Index(s.Columns, string(f))].(string)
			columns = append(columns, FoldColumn(f))
			values = append(values, domain.FoldText(text))
		}
	}

	b := &builder{d: d, s: s}
	marks := make([]string, len(values))
	for i, v := range values {
		marks[i] = b.bind(v)
	}
	return Statement{
		SQL: fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
			s.Table, strings.Join(columns, ", "), strings.Join(marks, ", ")),
		Args: b.args,
	}
}

// Insert renders a plain INSERT of one ride.
func Insert(d Dialect, r domain.Ride) Statement {
	return Rides.insert(d, []any{
		r.ID,
		r.DepartureCity,
		r.DestinationCity,
		d.TimeValue(r.DepartureTime),
		r.PricePerSeat,
		r.AvailableSeats,
		r.TotalSeats,
		string(r.Status),
		r.UserID,
		r.WhatsAppNumber,
		d.TimeValue(r.CreatedAt),
	})
}

// InsertRequest renders a plain INSERT of one ride request.
func InsertRequest(d Dialect, r domain.RideRequest) Statement {
	return RideRequests.insert(d, []any{
		r.ID,
		r.FromLocation,
		r.ToLocation,
		d.TimeValue(r.PreferredDate),
		r.SeatsNeeded,
		string(r.Status),
		r.UserID,
		r.WhatsAppNumber,
		d.TimeValue(r.CreatedAt),
	})
}

func (b *builder) where(preds []domain.Predicate) (string, error) {
	if len(preds) == 0 {
		return "", nil
	}

	clauses := make([]string, 0, len(preds))
	for _, p := range preds {
		c, err := b.predicate(p)
		if err != nil {
			return "", err
		}
		clauses = append(clauses, c)
	}
	return " WHERE " + strings.Join(clauses, " AND "), nil
}

func (b *builder) predicate(p domain.Predicate) (string, error) {
	k, ok := b.s.fields[p.Field]
	if !ok {
		return "", fmt.Errorf("sqlquery: unknown field %q on %s", p.Field, b.s.Table)
	}

	value, err := b.value(k, p)
	if err != nil {
		return "", err
	}
	column := string(p.Field)

	switch p.Op {
	case domain.OpEq:
		return column + " = " + b.bind(value), nil
	case domain.OpGte:
		return column + " >= " + b.bind(value), nil
	case domain.OpLte:
		return column + " <= " + b.bind(value), nil
	case domain.OpContains:
		if k != kindText {
			return "", fmt.Errorf("sqlquery: contains on non-text field %q", p.Field)
		}
		if b.d.FoldedColumns && slices.Contains(b.s.Folded, p.Field) {
			return b.d.Contains(FoldColumn(p.Field), b.bind(domain.FoldText(value.(string)))), nil
		}
		return b.d.Contains(column, b.bind(value)), nil
	default:
		return "", fmt.Errorf("sqlquery: unsupported operator %q", p.Op)
	}
}

func (b *builder) value(k kind, p domain.Predicate) (any, error) {
	switch k {
	case kindText:
		if s, ok := p.Value.(string); ok {
			return s, nil
		}
	case kindInt:
		if n, ok := p.Value.(int); ok {
			return n, nil
		}
	case kindTime:
		if t, ok := p.Value.(time.Time); ok {
			return b.d.TimeValue(t), nil
		}
	}
	return nil, fmt.Errorf("sqlquery: value %v (%T) does not fit field %q", p.Value, p.Value, p.Field)
}

// QuestionPlaceholder renders "?" markers.
func QuestionPlaceholder(int) string { return "?" }

// DollarPlaceholder renders "$n" markers.
func DollarPlaceholder(n int) string { return "$" + strconv.Itoa(n) }

// Package sqlite provides ride and ride request stores that push queries down to SQLite
// through the pure-Go modernc.org/sqlite driver.
package sqlite

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"strings"
	"sync"
	"time"

	"modernc.org/sqlite"

	"github.com/alwahis/ride-search/internal/adapter/store/sqlquery"
	"github.com/alwahis/ride-search/internal/domain"
)

// StoreName is the identifier of the SQLite store.
const StoreName = "sqlite"

// containsFunc is the SQL name of the registered substring matcher.
const containsFunc = "ride_contains"

// timeLayout is fixed width, so text order equals chronological order.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

var registerOnce sync.Once
var registerErr error

// registerFunctions installs domain.FoldContains as a SQL function, so SQLite
// matches substrings exactly like the in-memory evaluator.
func registerFunctions() error {
	registerOnce.Do(func() {
		registerErr = sqlite.RegisterDeterministicScalarFunction(containsFunc, 2,
			func(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
				haystack, _ := args[0].(string)
				needle, _ := args[1].(string)
				if domain.FoldContains(haystack, needle) {
					return int64(1), nil
				}
				return int64(0), nil
			})
	})
	return registerErr
}

// Dialect renders queries for SQLite.
var Dialect = sqlquery.Dialect{
	Placeholder: sqlquery.QuestionPlaceholder,
	Contains: func(column, needle string) string {
		return fmt.Sprintf("%s(%s, %s) = 1", containsFunc, column, needle)
	},
	// The default BINARY collation compares bytes.
	IDOrder:   "id",
	TimeValue: formatTime,
}

// Store is a RideStore backed by a SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at dsn and applies migrations.
// A dsn of ":memory:" keeps a private in-memory database on a single connection.
func Open(ctx context.Context, dsn string) (*Store, error) {
	if err := registerFunctions(); err != nil {
		return nil, fmt.Errorf("register sqlite functions: %w", err)
	}

	db, err := sql.Open("sqlite", withPragmas(dsn))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if strings.Contains(dsn, ":memory:") {
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if err := runMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

// withPragmas adds the connection pragmas every pooled connection needs.
func withPragmas(dsn string) string {
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
}

// Name implements domain.RideStore.
func (s *Store) Name() string {
	return StoreName
}

// Ping implements domain.RideStore.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Find implements domain.RideStore.
func (s *Store) Find(ctx context.Context, q domain.Query) (domain.RidePage, error) {
	rides, total, err := find(ctx, s.db, sqlquery.Rides, q, scanRide)
	if err != nil {
		return domain.RidePage{}, err
	}
	return domain.RidePage{Rides: rides, Total: total}, nil
}

// FindRequests implements domain.RequestStore.
func (s *Store) FindRequests(ctx context.Context, q domain.Query) (domain.RequestPage, error) {
	requests, total, err := find(ctx, s.db, sqlquery.RideRequests, q, scanRequest)
	if err != nil {
		return domain.RequestPage{}, err
	}
	return domain.RequestPage{Requests: requests, Total: total}, nil
}

// find reads the count and the page in one transaction so they describe
// the same snapshot.
func find[T any](ctx context.Context, db *sql.DB, schema sqlquery.Schema, q domain.Query, scan func(*sql.Rows) (T, error)) ([]T, int, error) {
	count, err := schema.Count(Dialect, q)
	if err != nil {
		return nil, 0, err
	}
	sel, err := schema.Select(Dialect, q)
	if err != nil {
		return nil, 0, err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("begin read: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var total int
	if err := tx.QueryRowContext(ctx, count.SQL, count.Args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count %s: %w", schema.Table, err)
	}

	rows, err := tx.QueryContext(ctx, sel.SQL, sel.Args...)
	if err != nil {
		return nil, 0, fmt.Errorf("select %s: %w", schema.Table, err)
	}
	defer rows.Close()

	items := make([]T, 0, min(max(q.Limit, 0), domain.MaxPerPage))
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("read %s: %w", schema.Table, err)
	}

	return items, total, nil
}

// Insert stores rides in a single transaction.
func (s *Store) Insert(ctx context.Context, rides ...domain.Ride) error {
	return s.insert(ctx, len(rides), func(i int) (string, sqlquery.Statement) {
		return rides[i].ID, sqlquery.Insert(Dialect, rides[i])
	})
}

// InsertRequests stores ride requests in a single transaction.
func (s *Store) InsertRequests(ctx context.Context, requests ...domain.RideRequest) error {
	return s.insert(ctx, len(requests), func(i int) (string, sqlquery.Statement) {
		return requests[i].ID, sqlquery.InsertRequest(Dialect, requests[i])
	})
}

func (s *Store) insert(ctx context.Context, n int, stmtAt func(i int) (string, sqlquery.Statement)) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for i := range n {
		id, stmt := stmtAt(i)
		if _, err := tx.ExecContext(ctx, stmt.SQL, stmt.Args...); err != nil {
			return fmt.Errorf("insert %s: %w", id, err)
		}
	}
	return tx.Commit()
}

// Count returns the number of stored rides, searchable or not.
func (s *Store) Count(ctx context.Context) (int, error) {
	return s.countRows(ctx, sqlquery.Rides.Table)
}

// CountRequests returns the number of stored ride requests, searchable or not.
func (s *Store) CountRequests(ctx context.Context) (int, error) {
	return s.countRows(ctx, sqlquery.RideRequests.Table)
}

func (s *Store) countRows(ctx context.Context, table string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+table).Scan(&n)
	return n, err
}

func scanRide(rows *sql.Rows) (domain.Ride, error) {
	var (
		r                    domain.Ride
		status               string
		departure, createdAt string
	)
	if err := rows.Scan(
		&r.ID, &r.DepartureCity, &r.DestinationCity, &departure,
		&r.PricePerSeat, &r.AvailableSeats, &r.TotalSeats,
		&status, &r.UserID, &r.WhatsAppNumber, &createdAt,
	); err != nil {
		return domain.Ride{}, fmt.Errorf("scan ride: %w", err)
	}

	var err error
	if r.DepartureTime, err = parseTime(departure); err != nil {
		return domain.Ride{}, fmt.Errorf("ride %s departure_time: %w", r.ID, err)
	}
	if r.CreatedAt, err = parseTime(createdAt); err != nil {
		return domain.Ride{}, fmt.Errorf("ride %s created_at: %w", r.ID, err)
	}
	r.Status = domain.RideStatus(status)
	return r, nil
}

func scanRequest(rows *sql.Rows) (domain.RideRequest, error) {
	var (
		r                    domain.RideRequest
		status               string
		preferred, createdAt string
	)
	if err := rows.Scan(
		&r.ID, &r.FromLocation, &r.ToLocation, &preferred,
		&r.SeatsNeeded, &status, &r.UserID, &r.WhatsAppNumber, &createdAt,
	); err != nil {
		return domain.RideRequest{}, fmt.Errorf("scan ride request: %w", err)
	}

	var err error
	if r.PreferredDate, err = parseTime(preferred); err != nil {
		return domain.RideRequest{}, fmt.Errorf("ride request %s preferred_date: %w", r.ID, err)
	}
	if r.CreatedAt, err = parseTime(createdAt); err != nil {
		return domain.RideRequest{}, fmt.Errorf("ride request %s created_at: %w", r.ID, err)
	}
	r.Status = domain.RequestStatus(status)
	return r, nil
}

func formatTime(t time.Time) any {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(timeLayout, s)
}

// Ensure Store implements both store contracts at compile time.
var (
	_ domain.RideStore    = (*Store)(nil)
	_ domain.RequestStore = (*Store)(nil)
)

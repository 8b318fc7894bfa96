package seed

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alwahis/ride-search/internal/domain"
	"github.com/alwahis/ride-search/internal/infrastructure/logger"
	"github.com/alwahis/ride-search/internal/infrastructure/timeutil"
)

var fixedNow = time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)

func newTestLoader() *Loader {
	return NewLoader(Options{
		Location: timeutil.MustGetLocation(timeutil.Baghdad),
		Clock:    timeutil.NewMockClock(fixedNow),
	})
}

func TestLoader_Load(t *testing.T) {
	tests := []struct {
		name      string
		yaml      string
		wantRides int
		wantErr   bool
		check     func(*testing.T, []domain.Ride)
	}{
		{
			name: "full record",
			yaml: `
rides:
  - id: ride-1
    departure_city: " Baghdad "
    destination_city: Karbala
    departure_time: "2025-01-18T08:00:00+03:00"
    price_per_seat: 15000
    available_seats: 3
    total_seats: 4
    status: published
    user_id: driver-1
    whatsapp_number: "+964 770 123 4567"
    created_at: "2025-01-01T12:00:00Z"
`,
			wantRides: 1,
			check: func(t *testing.T, rides []domain.Ride) {
				r := rides[0]
				assert.Equal(t, "ride-1", r.ID)
				assert.Equal(t, "Baghdad", r.DepartureCity)
				assert.Equal(t, "Karbala", r.DestinationCity)
				assert.Equal(t, time.Date(2025, 1, 18, 5, 0, 0, 0, time.UTC), r.DepartureTime)
				assert.Equal(t, 15000, r.PricePerSeat)
				assert.Equal(t, 3, r.AvailableSeats)
				assert.Equal(t, 4, r.TotalSeats)
				assert.Equal(t, domain.RideStatusPublished, r.Status)
				assert.Equal(t, "driver-1", r.UserID)
				assert.Equal(t, "https://wa.me/9647701234567", r.ContactURL())
				assert.Equal(t, time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC), r.CreatedAt)
			},
		},
		{
			name: "defaults for optional fields",
			yaml: `
rides:
  - departure_city: Basra
    destination_city: Najaf
    departure_time: "2025-01-18 14:30"
    price_per_seat: 20000
    available_seats: 2
`,
			wantRides: 1,
			check: func(t *testing.T, rides []domain.Ride) {
				r := rides[0]
				_, err := uuid.Parse(r.ID)
				assert.NoError(t, err, "missing id is generated")
				assert.Equal(t, domain.RideStatusPublished, r.Status)
				assert.Equal(t, 2, r.TotalSeats)
				assert.Equal(t, fixedNow, r.CreatedAt)
				// Offset-less times are read in Baghdad time.
				assert.Equal(t, time.Date(2025, 1, 18, 11, 30, 0, 0, time.UTC), r.DepartureTime)
			},
		},
		{
			name: "legacy active status is published",
			yaml: `
rides:
  - id: old
    departure_time: "2025-01-18T08:00:00Z"
    status: ACTIVE
`,
			wantRides: 1,
			check: func(t *testing.T, rides []domain.Ride) {
				assert.Equal(t, domain.RideStatusPublished, rides[0].Status)
			},
		},
		{
			name: "invalid records are skipped",
			yaml: `
rides:
  - id: bad-time
    departure_time: "tomorrow"
  - id: bad-status
    departure_time: "2025-01-18T08:00:00Z"
    status: archived
  - id: bad-price
    departure_time: "2025-01-18T08:00:00Z"
    price_per_seat: -5
  - id: good
    departure_time: "2025-01-18T08:00:00Z"
    status: cancelled
`,
			wantRides: 1,
			check: func(t *testing.T, rides []domain.Ride) {
				assert.Equal(t, "good", rides[0].ID)
				assert.Equal(t, domain.RideStatusCancelled, rides[0].Status)
			},
		},
		{
			name:      "empty document",
			yaml:      "",
			wantRides: 0,
		},
		{
			name:    "unknown field is rejected",
			yaml:    "rides:\n  - id: x\n    colour: red\n",
			wantErr: true,
		},
		{
			name:    "malformed yaml",
			yaml:    "rides: [",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := newTestLoader().Load(strings.NewReader(tt.yaml))

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			rides := data.Rides
			require.NotNil(t, rides)
			assert.NotNil(t, data.Requests)
			assert.Len(t, rides, tt.wantRides)
			if tt.check != nil {
				tt.check(t, rides)
			}
		})
	}
}

func TestLoader_LogsSkippedRecords(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithOutput(logger.Config{Level: "warn", Format: "json", ServiceName: "test"}, &buf)
	loader := NewLoader(Options{Logger: log})

	data, err := loader.Load(strings.NewReader("rides:\n  - id: broken\n    departure_time: nope\n"))

	require.NoError(t, err)
	assert.Empty(t, data.Rides)
	assert.Contains(t, buf.String(), "Skipping invalid seed ride")
	assert.Contains(t, buf.String(), `"id":"broken"`)
}

func TestLoader_LoadFile(t *testing.T) {
	t.Run("reads file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "rides.yaml")
		content := "rides:\n  - id: a\n    departure_time: \"2025-01-18T08:00:00Z\"\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		data, err := newTestLoader().LoadFile(path)

		require.NoError(t, err)
		require.Len(t, data.Rides, 1)
		assert.Equal(t, "a", data.Rides[0].ID)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := newTestLoader().LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "open seed file")
	})

	t.Run("bundled seed parses", func(t *testing.T) {
		data, err := newTestLoader().LoadFile(filepath.Join("..", "..", "..", "..", "docs", "seed", "rides.yaml"))

		require.NoError(t, err)
		assert.NotEmpty(t, data.Rides)
		assert.NotEmpty(t, data.Requests)
	})
}

func TestLoader_LoadRequests(t *testing.T) {
	doc := `
ride_requests:
  - id: req-1
    from_location: " Basra "
    to_location: Baghdad
    preferred_date: "2025-01-18"
    seats_needed: 2
    status: open
    user_id: rider-1
    whatsapp_number: "+964 780 000 0000"
    created_at: "2025-01-05T10:00:00Z"
  - id: req-legacy
    preferred_date: "2025-01-19T09:00"
    status: PENDING
  - id: bad-date
    preferred_date: soon
  - id: bad-status
    preferred_date: "2025-01-18"
    status: archived
  - id: bad-seats
    preferred_date: "2025-01-18"
    seats_needed: -1
`
	var buf bytes.Buffer
	loader := NewLoader(Options{
		Location: timeutil.MustGetLocation(timeutil.Baghdad),
		Clock:    timeutil.NewMockClock(fixedNow),
		Logger:   logger.NewWithOutput(logger.Config{Level: "warn", Format: "json", ServiceName: "test"}, &buf),
	})

	data, err := loader.Load(strings.NewReader(doc))

	require.NoError(t, err)
	assert.Empty(t, data.Rides)
	require.Len(t, data.Requests, 2)

	first := data.Requests[0]
	assert.Equal(t, "Basra", first.FromLocation)
	assert.Equal(t, time.Date(2025, 1, 17, 21, 0, 0, 0, time.UTC), first.PreferredDate, "bare dates start the day in Baghdad")
	assert.Equal(t, 2, first.SeatsNeeded)
	assert.Equal(t, domain.RequestStatusOpen, first.Status)
	assert.Equal(t, "https://wa.me/9647800000000", first.ContactURL())
	assert.Equal(t, time.Date(2025, 1, 5, 10, 0, 0, 0, time.UTC), first.CreatedAt)

	legacy := data.Requests[1]
	assert.Equal(t, domain.RequestStatusOpen, legacy.Status, "legacy pending is open")
	assert.Equal(t, 1, legacy.SeatsNeeded)
	assert.Equal(t, fixedNow, legacy.CreatedAt)
	assert.Equal(t, time.Date(2025, 1, 19, 6, 0, 0, 0, time.UTC), legacy.PreferredDate)

	logs := buf.String()
	assert.Equal(t, 3, strings.Count(logs, "Skipping invalid seed ride request"))
	assert.Contains(t, logs, `"id":"bad-seats"`)
}

package seed

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/alwahis/ride-search/internal/domain"
)

// Statuses older deployments stored for a live ride and an unanswered request.
const (
	legacyActiveStatus  = "active"
	legacyPendingStatus = "pending"
)

// dateTimeLayouts are tried in order for times without an explicit offset.
var dateTimeLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// normalize converts seed records to domain rides, skipping invalid ones.
func (l *Loader) normalize(records []Record) []domain.Ride {
	result := make([]domain.Ride, 0, len(records))

	for i, rec := range records {
		ride, err := l.normalizeRecord(rec)
		if err != nil {
			l.log.Warn().
				Err(err).
				Int("index", i).
				Str("id", rec.ID).
				Msg("Skipping invalid seed ride")
			continue
		}
		result = append(result, ride)
	}

	return result
}

// normalizeRecord converts a single seed record to a domain Ride.
func (l *Loader) normalizeRecord(rec Record) (domain.Ride, error) {
	departure, err := l.parseDateTime(rec.DepartureTime)
	if err != nil {
		return domain.Ride{}, fmt.Errorf("departure_time: %w", err)
	}

	status, err := normalizeStatus(rec.Status)
	if err != nil {
		return domain.Ride{}, err
	}

	if rec.PricePerSeat < 0 {
		return domain.Ride{}, errors.New("price_per_seat must not be negative")
	}
	if rec.AvailableSeats < 0 || rec.TotalSeats < 0 {
		return domain.Ride{}, errors.New("seat counts must not be negative")
	}

	createdAt := l.clock.Now()
	if rec.CreatedAt != "" {
		if createdAt, err = l.parseDateTime(rec.CreatedAt); err != nil {
			return domain.Ride{}, fmt.Errorf("created_at: %w", err)
		}
	}

	id := strings.TrimSpace(rec.ID)
	if id == "" {
		id = uuid.NewString()
	}

	totalSeats := rec.TotalSeats
	if totalSeats < rec.AvailableSeats {
		totalSeats = rec.AvailableSeats
	}

	return domain.Ride{
		ID:              id,
		DepartureCity:   strings.TrimSpace(rec.DepartureCity),
		DestinationCity: strings.TrimSpace(rec.DestinationCity),
		DepartureTime:   departure,
		PricePerSeat:    rec.PricePerSeat,
		AvailableSeats:  rec.AvailableSeats,
		TotalSeats:      totalSeats,
		Status:          status,
		UserID:          strings.TrimSpace(rec.UserID),
		WhatsAppNumber:  strings.TrimSpace(rec.WhatsAppNumber),
		CreatedAt:       createdAt.UTC().Truncate(time.Second),
	}, nil
}

// parseDateTime parses an ISO 8601 datetime into a UTC instant with second
// precision. Values without an offset are read in the loader's zone.
func (l *Loader) parseDateTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)

	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC().Truncate(time.Second), nil
	}

	for _, layout := range dateTimeLayouts {
		if t, err := time.ParseInLocation(layout, value, l.loc); err == nil {
			return t.UTC().Truncate(time.Second), nil
		}
	}

	return time.Time{}, fmt.Errorf("unable to parse datetime %q", value)
}

// normalizeStatus maps a seed status to a lifecycle state.
// An empty status means published.
func normalizeStatus(status string) (domain.RideStatus, error) {
	normalized := strings.ToLower(strings.TrimSpace(status))

	switch normalized {
	case "", legacyActiveStatus:
		return domain.RideStatusPublished, nil
	}

	s := domain.RideStatus(normalized)
	if !s.IsValid() {
		return "", fmt.Errorf("unknown status %q", status)
	}
	return s, nil
}

// normalizeRequests converts seed request records, skipping invalid ones.
func (l *Loader) normalizeRequests(records []RequestRecord) []domain.RideRequest {
	result := make([]domain.RideRequest, 0, len(records))
	for i, rec := range records {
		req, err := l.normalizeRequestRecord(rec)
		if err != nil {
			l.log.Warn().
				Err(err).
				Int("index", i).
				Str("id", rec.ID).
				Msg("Skipping invalid seed ride request")
			continue
		}
		result = append(result, req)
	}
	return result
}

func (l *Loader) normalizeRequestRecord(rec RequestRecord) (domain.RideRequest, error) {
	preferred, err := l.parseDateOrDateTime(rec.PreferredDate)
	if err != nil {
		return domain.RideRequest{}, fmt.Errorf("preferred_date: %w", err)
	}

	status, err := normalizeRequestStatus(rec.Status)
	if err != nil {
		return domain.RideRequest{}, err
	}

	if rec.SeatsNeeded < 0 {
		return domain.RideRequest{}, errors.New("seats_needed must not be negative")
	}
	seats := max(rec.SeatsNeeded, 1)

	createdAt := l.clock.Now()
	if rec.CreatedAt != "" {
		if createdAt, err = l.parseDateTime(rec.CreatedAt); err != nil {
			return domain.RideRequest{}, fmt.Errorf("created_at: %w", err)
		}
	}

	id := strings.TrimSpace(rec.ID)
	if id == "" {
		id = uuid.NewString()
	}

	return domain.RideRequest{
		ID:             id,
		FromLocation:   strings.TrimSpace(rec.FromLocation),
		ToLocation:     strings.TrimSpace(rec.ToLocation),
		PreferredDate:  preferred,
		SeatsNeeded:    seats,
		Status:         status,
		UserID:         strings.TrimSpace(rec.UserID),
		WhatsAppNumber: strings.TrimSpace(rec.WhatsAppNumber),
		CreatedAt:      createdAt.UTC().Truncate(time.Second),
	}, nil
}

// parseDateOrDateTime also accepts a bare YYYY-MM-DD, read as the start of
// that day in the loader's zone.
func (l *Loader) parseDateOrDateTime(value string) (time.Time, error) {
	if day, err := domain.ParseDate(strings.TrimSpace(value), l.loc); err == nil {
		return day.UTC(), nil
	}
	return l.parseDateTime(value)
}

// normalizeRequestStatus maps a seed status to a request lifecycle state.
// An empty status means open.
func normalizeRequestStatus(status string) (domain.RequestStatus, error) {
	normalized := strings.ToLower(strings.TrimSpace(status))
	switch normalized {
	case "", legacyPendingStatus:
		return domain.RequestStatusOpen, nil
	}

	s := domain.RequestStatus(normalized)
	if !s.IsValid() {
		return "", fmt.Errorf("unknown status %q", status)
	}
	return s, nil
}

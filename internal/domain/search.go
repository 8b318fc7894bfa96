package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// Search defaults and bounds.
const (
	DefaultPage    = 1
	DefaultPerPage = 10
	MaxPerPage     = 100

	// MaxCityLength mirrors the width of the city columns in the rides table.
	MaxCityLength = 100
)

// Layouts used by search criteria.
const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

// SortField is the ride attribute results are ordered by.
type SortField string

// Available sort fields.
const (
	SortByDepartureTime  SortField = "departure_time"
	SortByPrice          SortField = "price"
	SortByAvailableSeats SortField = "available_seats"
)

// IsValid checks if the sort field is a valid value.
func (s SortField) IsValid() bool {
	switch s {
	case SortByDepartureTime, SortByPrice, SortByAvailableSeats:
		return true
	default:
		return false
	}
}

// SortOrder is the direction applied to the primary sort key.
type SortOrder string

// Available sort orders.
const (
	SortAscending  SortOrder = "asc"
	SortDescending SortOrder = "desc"
)

// IsValid checks if the sort order is a valid value.
func (s SortOrder) IsValid() bool {
	return s == SortAscending || s == SortDescending
}

// SearchCriteria defines the parameters for a ride search request.
// Optional numeric bounds and paging fields are pointers so that an explicit
// zero can be told apart from an absent value.
type SearchCriteria struct {
	// DepartureCity is matched as a case-insensitive substring of the ride origin
	DepartureCity string `json:"departure_city,omitempty"`

	// DestinationCity is matched as a case-insensitive substring of the ride destination
	DestinationCity string `json:"destination_city,omitempty"`

	// Date restricts departures to one calendar day (YYYY-MM-DD)
	Date string `json:"date,omitempty"`

	// MinPrice is the inclusive lower bound on price per seat
	MinPrice *int `json:"min_price,omitempty"`

	// MaxPrice is the inclusive upper bound on price per seat
	MaxPrice *int `json:"max_price,omitempty"`

	// DepartureTimeStart is the inclusive earliest departure time of day (HH:MM)
	DepartureTimeStart string `json:"departure_time_start,omitempty"`

	// DepartureTimeEnd is the inclusive latest departure time of day (HH:MM)
	DepartureTimeEnd string `json:"departure_time_end,omitempty"`

	// MinAvailableSeats is the inclusive lower bound on free seats
	MinAvailableSeats *int `json:"min_available_seats,omitempty"`

	// SortBy is the primary sort key (default: departure_time)
	SortBy SortField `json:"sort_by,omitempty"`

	// SortOrder is the direction of the primary sort key (default: asc)
	SortOrder SortOrder `json:"sort_order,omitempty"`

	// Page is the 1-based page number (default: 1)
	Page *int `json:"page,omitempty"`

	// PerPage is the page size (default: 10, max: 100)
	PerPage *int `json:"per_page,omitempty"`
}

// dateRegex matches dates in YYYY-MM-DD format.
var dateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// clockRegex matches times of day in HH:MM format.
var clockRegex = regexp.MustCompile(`^\d{2}:\d{2}$`)

// WithDefaults returns a normalized copy of the criteria: strings trimmed,
// enums lowercased and unset sort and paging fields defaulted.
// The receiver and the values behind its pointers are never modified.
func (s SearchCriteria) WithDefaults() SearchCriteria {
	out := SearchCriteria{
		DepartureCity:      strings.TrimSpace(s.DepartureCity),
		DestinationCity:    strings.TrimSpace(s.DestinationCity),
		Date:               strings.TrimSpace(s.Date),
		MinPrice:           copyInt(s.MinPrice),
		MaxPrice:           copyInt(s.MaxPrice),
		DepartureTimeStart: strings.TrimSpace(s.DepartureTimeStart),
		DepartureTimeEnd:   strings.TrimSpace(s.DepartureTimeEnd),
		MinAvailableSeats:  copyInt(s.MinAvailableSeats),
		SortBy:             SortField(strings.ToLower(strings.TrimSpace(string(s.SortBy)))),
		SortOrder:          SortOrder(strings.ToLower(strings.TrimSpace(string(s.SortOrder)))),
		Page:               copyInt(s.Page),
		PerPage:            copyInt(s.PerPage),
	}

	if out.SortBy == "" {
		out.SortBy = SortByDepartureTime
	}
	if out.SortOrder == "" {
		out.SortOrder = SortAscending
	}
	if out.Page == nil {
		page := DefaultPage
		out.Page = &page
	}
	if out.PerPage == nil {
		perPage := DefaultPerPage
		out.PerPage = &perPage
	}

	return out
}

// Validate checks the criteria and returns a *ValidationErrors listing every
// problem found, or nil. It is meant to run on the result of WithDefaults.
func (s SearchCriteria) Validate() error {
	errs := &ValidationErrors{}

	validateCity(errs, "departure_city", s.DepartureCity)
	validateCity(errs, "destination_city", s.DestinationCity)

	if s.Date != "" {
		if _, err := ParseDate(s.Date, time.UTC); err != nil {
			errs.Add("date", "date must be a valid date in YYYY-MM-DD format")
		}
	}

	s.validateTimeWindow(errs)

	validateNonNegative(errs, "min_price", s.MinPrice)
	validateNonNegative(errs, "max_price", s.MaxPrice)
	if s.MinPrice != nil && s.MaxPrice != nil && *s.MinPrice > *s.MaxPrice {
		errs.Add("max_price", "max_price must be greater than or equal to min_price")
	}

	validateNonNegative(errs, "min_available_seats", s.MinAvailableSeats)

	if !s.SortBy.IsValid() {
		errs.Add("sort_by", "sort_by must be one of: departure_time, price, available_seats")
	}
	if !s.SortOrder.IsValid() {
		errs.Add("sort_order", "sort_order must be one of: asc, desc")
	}

	if s.Page != nil && *s.Page < 1 {
		errs.Add("page", "page must be at least 1")
	}
	if s.PerPage != nil && (*s.PerPage < 1 || *s.PerPage > MaxPerPage) {
		errs.Add("per_page", fmt.Sprintf("per_page must be between 1 and %d", MaxPerPage))
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}

func (s SearchCriteria) validateTimeWindow(errs *ValidationErrors) {
	start, startOK := s.DepartureTimeStart, true
	end, endOK := s.DepartureTimeEnd, true

	if start != "" {
		if _, err := ParseClock(start); err != nil {
			errs.Add("departure_time_start", "departure_time_start must be in HH:MM format with valid hours (00-23) and minutes (00-59)")
			startOK = false
		}
	}
	if end != "" {
		if _, err := ParseClock(end); err != nil {
			errs.Add("departure_time_end", "departure_time_end must be in HH:MM format with valid hours (00-23) and minutes (00-59)")
			endOK = false
		}
	}

	if (start != "" || end != "") && s.Date == "" {
		errs.Add("date", "date is required when a departure time window is given")
	}

	if start != "" && end != "" && startOK && endOK {
		startMin, _ := ParseClock(start)
		endMin, _ := ParseClock(end)
		if endMin < startMin {
			errs.Add("departure_time_end", "departure_time_end must not be earlier than departure_time_start")
		}
	}
}

// PageNumber returns the requested page, or the default when unset.
func (s SearchCriteria) PageNumber() int {
	if s.Page == nil {
		return DefaultPage
	}
	return *s.Page
}

// PageSize returns the requested page size, or the default when unset.
func (s SearchCriteria) PageSize() int {
	if s.PerPage == nil {
		return DefaultPerPage
	}
	return *s.PerPage
}

// ParseDate parses a YYYY-MM-DD date as midnight in the given location.
func ParseDate(value string, loc *time.Location) (time.Time, error) {
	if !dateRegex.MatchString(value) {
		return time.Time{}, fmt.Errorf("%w: date %q is not in YYYY-MM-DD format", ErrValidation, value)
	}
	t, err := time.ParseInLocation(DateLayout, value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q is not a valid date", ErrValidation, value)
	}
	return t, nil
}

// ParseClock parses an HH:MM time of day into minutes after midnight.
func ParseClock(value string) (int, error) {
	if !clockRegex.MatchString(value) {
		return 0, fmt.Errorf("%w: time %q is not in HH:MM format", ErrValidation, value)
	}
	t, err := time.Parse(ClockLayout, value)
	if err != nil {
		return 0, fmt.Errorf("%w: time %q is out of range", ErrValidation, value)
	}
	return t.Hour()*60 + t.Minute(), nil
}

func validateCity(errs *ValidationErrors, field, value string) {
	if utf8.RuneCountInString(value) > MaxCityLength {
		errs.Add(field, fmt.Sprintf("%s must be at most %d characters", field, MaxCityLength))
	}
}

func validateNonNegative(errs *ValidationErrors, field string, value *int) {
	if value != nil && *value < 0 {
		errs.Add(field, field+" must be a non-negative number")
	}
}

func copyInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

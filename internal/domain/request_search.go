package domain

import (
	"fmt"
	"strings"
	"time"
)

// RequestSearchCriteria defines the parameters for a ride request search.
// Results are always open requests, newest first.
type RequestSearchCriteria struct {
	// FromLocation is matched as a case-insensitive substring of the request origin
	FromLocation string `json:"from_location,omitempty"`

	// ToLocation is matched as a case-insensitive substring of the request destination
	ToLocation string `json:"to_location,omitempty"`

	// Date keeps requests whose preferred date is on or after this day (YYYY-MM-DD)
	Date string `json:"date,omitempty"`

	// Page is the 1-based page number (default: 1)
	Page *int `json:"page,omitempty"`

	// PerPage is the page size (default: 10, max: 100)
	PerPage *int `json:"per_page,omitempty"`
}

// WithDefaults returns a normalized copy of the criteria with strings
// trimmed and paging defaulted. The receiver is never modified.
func (s RequestSearchCriteria) WithDefaults() RequestSearchCriteria {
	out := RequestSearchCriteria{
		FromLocation: strings.TrimSpace(s.FromLocation),
		ToLocation:   strings.TrimSpace(s.ToLocation),
		Date:         strings.TrimSpace(s.Date),
		Page:         copyInt(s.Page),
		PerPage:      copyInt(s.PerPage),
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
// problem found, or nil.
func (s RequestSearchCriteria) Validate() error {
	errs := &ValidationErrors{}

	validateCity(errs, "from_location", s.FromLocation)
	validateCity(errs, "to_location", s.ToLocation)

	if s.Date != "" {
		if _, err := ParseDate(s.Date, time.UTC); err != nil {
			errs.Add("date", "date must be a valid date in YYYY-MM-DD format")
		}
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

// PageNumber returns the requested page, or the default when unset.
func (s RequestSearchCriteria) PageNumber() int {
	if s.Page == nil {
		return DefaultPage
	}
	return *s.Page
}

// PageSize returns the requested page size, or the default when unset.
func (s RequestSearchCriteria) PageSize() int {
	if s.PerPage == nil {
		return DefaultPerPage
	}
	return *s.PerPage
}

// RequestSearchResult is one page of ride requests plus pagination metadata.
type RequestSearchResult struct {
	Requests   []RideRequest `json:"requests"`
	Pagination Pagination    `json:"pagination"`
}

// NewRequestSearchResult creates a RequestSearchResult, never with a nil slice.
func NewRequestSearchResult(requests []RideRequest, pagination Pagination) RequestSearchResult {
	if requests == nil {
		requests = []RideRequest{}
	}
	return RequestSearchResult{
		Requests:   requests,
		Pagination: pagination,
	}
}

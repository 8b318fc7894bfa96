// Package http provides the HTTP handler layer for the ride search API.
// It handles request parsing, validation, and response formatting.
package http

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// SearchRidesRequest carries the search criteria, either as a JSON body
// (POST) or as query parameters (GET).
type SearchRidesRequest struct {
	// DepartureCity is matched as a case-insensitive substring of the ride origin
	DepartureCity string `json:"departure_city" query:"departure_city"`

	// DestinationCity is matched as a case-insensitive substring of the ride destination
	DestinationCity string `json:"destination_city" query:"destination_city"`

	// Date restricts departures to one day (YYYY-MM-DD)
	Date string `json:"date" query:"date"`

	// MinPrice is the inclusive lower price bound
	MinPrice FlexInt `json:"min_price" query:"min_price"`

	// MaxPrice is the inclusive upper price bound
	MaxPrice FlexInt `json:"max_price" query:"max_price"`

	// DepartureTimeStart is the earliest departure time of day (HH:MM)
	DepartureTimeStart string `json:"departure_time_start" query:"departure_time_start"`

	// DepartureTimeEnd is the latest departure time of day (HH:MM)
	DepartureTimeEnd string `json:"departure_time_end" query:"departure_time_end"`

	// MinAvailableSeats is the minimum number of free seats
	MinAvailableSeats FlexInt `json:"min_available_seats" query:"min_available_seats"`

	// SortBy is one of departure_time, price, available_seats
	SortBy string `json:"sort_by" query:"sort_by"`

	// SortOrder is asc or desc
	SortOrder string `json:"sort_order" query:"sort_order"`

	// Page is the 1-based page number
	Page FlexInt `json:"page" query:"page"`

	// PerPage is the page size
	PerPage FlexInt `json:"per_page" query:"per_page"`
}

// SearchRideRequestsRequest carries ride request search criteria, either as
// a JSON body (POST) or as query parameters (GET).
type SearchRideRequestsRequest struct {
	// FromLocation is matched as a case-insensitive substring of the request origin
	FromLocation string `json:"from_location" query:"from_location"`

	// ToLocation is matched as a case-insensitive substring of the request destination
	ToLocation string `json:"to_location" query:"to_location"`

	// Date keeps requests preferring this day or later (YYYY-MM-DD)
	Date string `json:"date" query:"date"`

	// Page is the 1-based page number
	Page FlexInt `json:"page" query:"page"`

	// PerPage is the page size
	PerPage FlexInt `json:"per_page" query:"per_page"`
}

// FlexInt is an optional integer that accepts a JSON number or a numeric
// string, as browsers send form values. A value that is neither is kept
// as Raw and reported by the converter as a field error.
type FlexInt struct {
	// Value is nil when the field was absent, null or blank
	Value *int

	// Raw is the offending input when the value is not an integer
	Raw string
}

// Invalid reports whether a value was given that is not an integer.
func (f FlexInt) Invalid() bool {
	return f.Value == nil && f.Raw != ""
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = FlexInt{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		return f.UnmarshalParam(s)
	}
	f.set(string(data))
	return nil
}

// UnmarshalParam implements echo.BindUnmarshaler for query parameters.
func (f *FlexInt) UnmarshalParam(param string) error {
	param = strings.TrimSpace(param)
	if param == "" {
		*f = FlexInt{}
		return nil
	}
	f.set(param)
	return nil
}

func (f *FlexInt) set(s string) {
	n, err := strconv.Atoi(s)
	if err != nil {
		*f = FlexInt{Raw: s}
		return
	}
	*f = FlexInt{Value: &n}
}

// MarshalJSON implements json.Marshaler.
func (f FlexInt) MarshalJSON() ([]byte, error) {
	if f.Value == nil {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(*f.Value)), nil
}

// Int returns a FlexInt holding n.
func Int(n int) FlexInt {
	return FlexInt{Value: &n}
}

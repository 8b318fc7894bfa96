// Package http provides swagger type definitions for API documentation.
// These types mirror request types but are defined here to help swag generate proper documentation.
package http

// SwaggerSearchRequest documents the search request body.
// Numeric fields may also be sent as numeric strings (e.g. "15000").
// @Description Ride search criteria; every field is optional
type SwaggerSearchRequest struct {
	// DepartureCity is matched as a case-insensitive substring of the ride origin
	DepartureCity string `json:"departure_city,omitempty" example:"Baghdad"`

	// DestinationCity is matched as a case-insensitive substring of the ride destination
	DestinationCity string `json:"destination_city,omitempty" example:"كربلاء"`

	// Date restricts departures to one day in the service time zone
	Date string `json:"date,omitempty" example:"2025-01-18"`

	// MinPrice is the inclusive lower bound on price per seat
	MinPrice *int `json:"min_price,omitempty" example:"10000"`

	// MaxPrice is the inclusive upper bound on price per seat
	MaxPrice *int `json:"max_price,omitempty" example:"20000"`

	// DepartureTimeStart is the earliest departure time of day; requires date
	DepartureTimeStart string `json:"departure_time_start,omitempty" example:"08:00"`

	// DepartureTimeEnd is the latest departure time of day; requires date
	DepartureTimeEnd string `json:"departure_time_end,omitempty" example:"12:00"`

	// MinAvailableSeats is the minimum number of free seats
	MinAvailableSeats *int `json:"min_available_seats,omitempty" example:"2"`

	// SortBy is the primary sort key
	SortBy string `json:"sort_by,omitempty" enums:"departure_time,price,available_seats" example:"price"`

	// SortOrder is the direction of the primary sort key
	SortOrder string `json:"sort_order,omitempty" enums:"asc,desc" example:"asc"`

	// Page is the 1-based page number
	Page *int `json:"page,omitempty" example:"1" minimum:"1"`

	// PerPage is the page size
	PerPage *int `json:"per_page,omitempty" example:"10" minimum:"1" maximum:"100"`
}

// SwaggerRequestSearchRequest documents the ride request search body.
// @Description Ride request search criteria; every field is optional
type SwaggerRequestSearchRequest struct {
	// FromLocation is matched as a case-insensitive substring of the request origin
	FromLocation string `json:"from_location,omitempty" example:"Basra"`

	// ToLocation is matched as a case-insensitive substring of the request destination
	ToLocation string `json:"to_location,omitempty" example:"بغداد"`

	// Date keeps requests whose preferred date is on or after this day
	Date string `json:"date,omitempty" example:"2025-01-18"`

	// Page is the 1-based page number
	Page *int `json:"page,omitempty" example:"1" minimum:"1"`

	// PerPage is the page size
	PerPage *int `json:"per_page,omitempty" example:"10" minimum:"1" maximum:"100"`
}

// Package domain contains the core business entities and rules for the ride search system.
// These entities are storage-agnostic and form the foundation upon which all other components are built.
package domain

import (
	"strings"
	"time"
	"unicode"
)

// RideStatus is the lifecycle state of a ride offer.
type RideStatus string

// Ride lifecycle states.
const (
	RideStatusDraft     RideStatus = "draft"
	RideStatusPublished RideStatus = "published"
	RideStatusCompleted RideStatus = "completed"
	RideStatusCancelled RideStatus = "cancelled"
	RideStatusDeleted   RideStatus = "deleted"
)

// IsValid checks if the status is one of the known lifecycle states.
func (s RideStatus) IsValid() bool {
	switch s {
	case RideStatusDraft, RideStatusPublished, RideStatusCompleted, RideStatusCancelled, RideStatusDeleted:
		return true
	default:
		return false
	}
}

// Ride represents a single trip offer published by a driver.
type Ride struct {
	// ID is the unique identifier of the ride
	ID string `json:"id"`

	// DepartureCity is the free-text origin location (e.g., "Baghdad")
	DepartureCity string `json:"departure_city"`

	// DestinationCity is the free-text destination location (e.g., "Karbala")
	DestinationCity string `json:"destination_city"`

	// DepartureTime is the scheduled departure instant
	DepartureTime time.Time `json:"departure_time"`

	// PricePerSeat is the price of one seat in the smallest currency unit
	PricePerSeat int `json:"price_per_seat"`

	// AvailableSeats is the number of seats still free
	AvailableSeats int `json:"available_seats"`

	// TotalSeats is the seat capacity offered by the driver
	TotalSeats int `json:"total_seats"`

	// Status is the lifecycle state; only published rides are searchable
	Status RideStatus `json:"status"`

	// UserID references the driver who owns the ride
	UserID string `json:"user_id"`

	// WhatsAppNumber is the driver's contact number, if shared
	WhatsAppNumber string `json:"whatsapp_number,omitempty"`

	// CreatedAt is when the ride was first stored
	CreatedAt time.Time `json:"created_at"`
}

// IsSearchable reports whether the ride may appear in search results.
func (r Ride) IsSearchable() bool {
	return r.Status == RideStatusPublished
}

// ContactURL returns the WhatsApp messaging link for the driver,
// or an empty string when no usable number is present.
func (r Ride) ContactURL() string {
	return whatsAppURL(r.WhatsAppNumber)
}

// RecordID implements Record.
func (r Ride) RecordID() string {
	return r.ID
}

func whatsAppURL(number string) string {
	digits := strings.Map(func(c rune) rune {
		if unicode.IsDigit(c) && c <= unicode.MaxASCII {
			return c
		}
		return -1
	}, number)

	// International "00" prefix is equivalent to "+", which wa.me omits.
	digits = strings.TrimPrefix(digits, "00")
	if digits == "" {
		return ""
	}
	return "https://wa.me/" + digits
}

package domain

import "time"

// RequestStatus is the lifecycle state of a ride request.
type RequestStatus string

// Ride request lifecycle states.
const (
	RequestStatusOpen      RequestStatus = "open"
	RequestStatusMatched   RequestStatus = "matched"
	RequestStatusCancelled RequestStatus = "cancelled"
)

// IsValid checks if the status is one of the known lifecycle states.
func (s RequestStatus) IsValid() bool {
	switch s {
	case RequestStatusOpen, RequestStatusMatched, RequestStatusCancelled:
		return true
	default:
		return false
	}
}

// RideRequest is a passenger asking for a seat on a route, for drivers to find.
type RideRequest struct {
	// ID is the unique identifier of the request
	ID string `json:"id"`

	// FromLocation is the free-text origin the passenger leaves from
	FromLocation string `json:"from_location"`

	// ToLocation is the free-text destination
	ToLocation string `json:"to_location"`

	// PreferredDate is when the passenger wants to travel
	PreferredDate time.Time `json:"preferred_date"`

	// SeatsNeeded is how many seats the passenger wants
	SeatsNeeded int `json:"seats_needed"`

	// Status is the lifecycle state; only open requests are searchable
	Status RequestStatus `json:"status"`

	// UserID references the passenger
	UserID string `json:"user_id"`

	// WhatsAppNumber is the passenger's contact number, if shared
	WhatsAppNumber string `json:"whatsapp_number,omitempty"`

	// CreatedAt is when the request was posted
	CreatedAt time.Time `json:"created_at"`
}

// IsSearchable reports whether the request may appear in search results.
func (r RideRequest) IsSearchable() bool {
	return r.Status == RequestStatusOpen
}

// ContactURL returns the WhatsApp messaging link for the passenger,
// or an empty string when no usable number is present.
func (r RideRequest) ContactURL() string {
	return whatsAppURL(r.WhatsAppNumber)
}

// RecordID implements Record.
func (r RideRequest) RecordID() string {
	return r.ID
}

func (r RideRequest) fieldValue(f Field) any {
	switch f {
	case FieldID:
		return r.ID
	case FieldStatus:
		return string(r.Status)
	case FieldFromLocation:
		return r.FromLocation
	case FieldToLocation:
		return r.ToLocation
	case FieldPreferredDate:
		return r.PreferredDate
	case FieldSeatsNeeded:
		return r.SeatsNeeded
	case FieldCreatedAt:
		return r.CreatedAt
	default:
		return nil
	}
}

// RequestPage is one window of matching ride requests plus the total match count.
type RequestPage struct {
	Requests []RideRequest
	Total    int
}

package http

// SearchResponseDTO is the data transfer object for search responses.
type SearchResponseDTO struct {
	Rides      []RideDTO     `json:"rides"`
	Pagination PaginationDTO `json:"pagination"`
}

// PaginationDTO describes where the page sits in the full result set.
type PaginationDTO struct {
	CurrentPage int `json:"current_page" example:"1"`
	PerPage     int `json:"per_page" example:"10"`
	TotalItems  int `json:"total_items" example:"2"`
	TotalPages  int `json:"total_pages" example:"1"`
}

// RideDTO is the data transfer object for a ride.
type RideDTO struct {
	ID              string `json:"id" example:"ride-1"`
	DepartureCity   string `json:"departure_city" example:"Baghdad"`
	DestinationCity string `json:"destination_city" example:"Karbala"`
	DepartureTime   string `json:"departure_time" example:"2025-01-18T10:00:00+03:00"`
	PricePerSeat    int    `json:"price_per_seat" example:"15000"`
	AvailableSeats  int    `json:"available_seats" example:"4"`
	TotalSeats      int    `json:"total_seats" example:"4"`
	Status          string `json:"status" example:"published"`
	UserID          string `json:"user_id" example:"driver-17"`
	WhatsAppNumber  string `json:"whatsapp_number,omitempty" example:"+9647701234567"`
	ContactURL      string `json:"contact_url,omitempty" example:"https://wa.me/9647701234567"`
	CreatedAt       string `json:"created_at,omitempty" example:"2025-01-10T09:30:00+03:00"`
}

// RequestSearchResponseDTO is the data transfer object for ride request search responses.
type RequestSearchResponseDTO struct {
	Requests   []RideRequestDTO `json:"requests"`
	Pagination PaginationDTO    `json:"pagination"`
}

// RideRequestDTO is the data transfer object for a ride request.
type RideRequestDTO struct {
	ID             string `json:"id" example:"req-001"`
	FromLocation   string `json:"from_location" example:"Basra"`
	ToLocation     string `json:"to_location" example:"Baghdad"`
	PreferredDate  string `json:"preferred_date" example:"2025-01-18T00:00:00+03:00"`
	SeatsNeeded    int    `json:"seats_needed" example:"2"`
	Status         string `json:"status" example:"open"`
	UserID         string `json:"user_id" example:"rider-01"`
	WhatsAppNumber string `json:"whatsapp_number,omitempty" example:"+9647802114410"`
	ContactURL     string `json:"contact_url,omitempty" example:"https://wa.me/9647802114410"`
	CreatedAt      string `json:"created_at,omitempty" example:"2025-01-05T11:00:00+03:00"`
}

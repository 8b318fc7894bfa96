package http

import (
	"time"

	"github.com/alwahis/ride-search/internal/domain"
)

// ToDomainCriteria converts a SearchRidesRequest to domain.SearchCriteria.
// It fails with a *domain.ValidationErrors when a numeric field is not an integer;
// every other check belongs to the use case.
func ToDomainCriteria(req *SearchRidesRequest) (domain.SearchCriteria, error) {
	errs := &domain.ValidationErrors{}
	numeric := func(field string, v FlexInt) *int {
		if v.Invalid() {
			errs.Add(field, field+" must be an integer")
		}
		return v.Value
	}

	criteria := domain.SearchCriteria{
		DepartureCity:      req.DepartureCity,
		DestinationCity:    req.DestinationCity,
		Date:               req.Date,
		MinPrice:           numeric("min_price", req.MinPrice),
		MaxPrice:           numeric("max_price", req.MaxPrice),
		DepartureTimeStart: req.DepartureTimeStart,
		DepartureTimeEnd:   req.DepartureTimeEnd,
		MinAvailableSeats:  numeric("min_available_seats", req.MinAvailableSeats),
		SortBy:             domain.SortField(req.SortBy),
		SortOrder:          domain.SortOrder(req.SortOrder),
		Page:               numeric("page", req.Page),
		PerPage:            numeric("per_page", req.PerPage),
	}

	if errs.HasErrors() {
		return domain.SearchCriteria{}, errs
	}
	return criteria, nil
}

// ToRequestCriteria converts a SearchRideRequestsRequest to
// domain.RequestSearchCriteria, failing like ToDomainCriteria.
func ToRequestCriteria(req *SearchRideRequestsRequest) (domain.RequestSearchCriteria, error) {
	errs := &domain.ValidationErrors{}
	numeric := func(field string, v FlexInt) *int {
		if v.Invalid() {
			errs.Add(field, field+" must be an integer")
		}
		return v.Value
	}

	criteria := domain.RequestSearchCriteria{
		FromLocation: req.FromLocation,
		ToLocation:   req.ToLocation,
		Date:         req.Date,
		Page:         numeric("page", req.Page),
		PerPage:      numeric("per_page", req.PerPage),
	}

	if errs.HasErrors() {
		return domain.RequestSearchCriteria{}, errs
	}
	return criteria, nil
}

// ToSearchResponseDTO converts a domain SearchResult to its wire form.
// Times are rendered in loc with their offset.
func ToSearchResponseDTO(result *domain.SearchResult, loc *time.Location) *SearchResponseDTO {
	if result == nil {
		return nil
	}

	dto := &SearchResponseDTO{
		Rides:      make([]RideDTO, len(result.Rides)),
		Pagination: toPaginationDTO(result.Pagination),
	}
	for i := range result.Rides {
		dto.Rides[i] = ToRideDTO(&result.Rides[i], loc)
	}
	return dto
}

// ToRideDTO converts a domain Ride to a RideDTO.
func ToRideDTO(r *domain.Ride, loc *time.Location) RideDTO {
	if loc == nil {
		loc = time.UTC
	}
	dto := RideDTO{
		ID:              r.ID,
		DepartureCity:   r.DepartureCity,
		DestinationCity: r.DestinationCity,
		DepartureTime:   r.DepartureTime.In(loc).Format(time.RFC3339),
		PricePerSeat:    r.PricePerSeat,
		AvailableSeats:  r.AvailableSeats,
		TotalSeats:      r.TotalSeats,
		Status:          string(r.Status),
		UserID:          r.UserID,
		WhatsAppNumber:  r.WhatsAppNumber,
		ContactURL:      r.ContactURL(),
	}
	if !r.CreatedAt.IsZero() {
		dto.CreatedAt = r.CreatedAt.In(loc).Format(time.RFC3339)
	}
	return dto
}

func toPaginationDTO(p domain.Pagination) PaginationDTO {
	return PaginationDTO{
		CurrentPage: p.CurrentPage,
		PerPage:     p.PerPage,
		TotalItems:  p.TotalItems,
		TotalPages:  p.TotalPages,
	}
}

// ToRequestSearchResponseDTO converts a domain RequestSearchResult to its
// wire form. Times are rendered in loc with their offset.
func ToRequestSearchResponseDTO(result *domain.RequestSearchResult, loc *time.Location) *RequestSearchResponseDTO {
	if result == nil {
		return nil
	}

	dto := &RequestSearchResponseDTO{
		Requests:   make([]RideRequestDTO, len(result.Requests)),
		Pagination: toPaginationDTO(result.Pagination),
	}
	for i := range result.Requests {
		dto.Requests[i] = ToRideRequestDTO(&result.Requests[i], loc)
	}
	return dto
}

// ToRideRequestDTO converts a domain RideRequest to a RideRequestDTO.
func ToRideRequestDTO(r *domain.RideRequest, loc *time.Location) RideRequestDTO {
	if loc == nil {
		loc = time.UTC
	}
	dto := RideRequestDTO{
		ID:             r.ID,
		FromLocation:   r.FromLocation,
		ToLocation:     r.ToLocation,
		PreferredDate:  r.PreferredDate.In(loc).Format(time.RFC3339),
		SeatsNeeded:    r.SeatsNeeded,
		Status:         string(r.Status),
		UserID:         r.UserID,
		WhatsAppNumber: r.WhatsAppNumber,
		ContactURL:     r.ContactURL(),
	}
	if !r.CreatedAt.IsZero() {
		dto.CreatedAt = r.CreatedAt.In(loc).Format(time.RFC3339)
	}
	return dto
}

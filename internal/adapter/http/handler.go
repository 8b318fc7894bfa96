package http

import (
	"context"
	"errors"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/alwahis/ride-search/internal/adapter/http/response"
	"github.com/alwahis/ride-search/internal/domain"
	"github.com/alwahis/ride-search/internal/usecase"
)

// RideHandler handles HTTP requests for ride-related endpoints.
type RideHandler struct {
	useCase usecase.RideSearchUseCase
	loc     *time.Location
}

// NewRideHandler creates a new RideHandler with the given use case.
// Ride times are rendered in loc (UTC when nil).
func NewRideHandler(uc usecase.RideSearchUseCase, loc *time.Location) *RideHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &RideHandler{
		useCase: uc,
		loc:     loc,
	}
}

// SearchRides handles POST /api/v1/rides/search
//
// @Summary Search rides
// @Description Filter, sort and paginate published rides. Numeric fields accept JSON numbers or numeric strings.
// @Tags rides
// @Accept json
// @Produce json
// @Param Accept-Language header string false "Response language (en, ar)"
// @Param request body SwaggerSearchRequest true "Search criteria"
// @Success 200 {object} SearchResponseDTO
// @Failure 400 {object} response.ErrorBody "Validation error"
// @Failure 429 {object} response.ErrorBody "Rate limited"
// @Failure 503 {object} response.ErrorBody "Ride store unavailable"
// @Router /api/v1/rides/search [post]
func (h *RideHandler) SearchRides(c echo.Context) error {
	return h.search(c)
}

// SearchRidesQuery handles GET /api/v1/rides/search
//
// @Summary Search rides (query string)
// @Description Same as the POST variant with criteria given as query parameters.
// @Tags rides
// @Produce json
// @Param Accept-Language header string false "Response language (en, ar)"
// @Param departure_city query string false "Origin substring"
// @Param destination_city query string false "Destination substring"
// @Param date query string false "Departure day (YYYY-MM-DD)"
// @Param min_price query int false "Minimum price per seat"
// @Param max_price query int false "Maximum price per seat"
// @Param departure_time_start query string false "Earliest departure time (HH:MM)"
// @Param departure_time_end query string false "Latest departure time (HH:MM)"
// @Param min_available_seats query int false "Minimum free seats"
// @Param sort_by query string false "departure_time, price or available_seats"
// @Param sort_order query string false "asc or desc"
// @Param page query int false "Page number"
// @Param per_page query int false "Page size (1-100)"
// @Success 200 {object} SearchResponseDTO
// @Failure 400 {object} response.ErrorBody "Validation error"
// @Failure 429 {object} response.ErrorBody "Rate limited"
// @Failure 503 {object} response.ErrorBody "Ride store unavailable"
// @Router /api/v1/rides/search [get]
func (h *RideHandler) SearchRidesQuery(c echo.Context) error {
	return h.search(c)
}

// search binds the request from the body or the query string, depending on the method.
func (h *RideHandler) search(c echo.Context) error {
	var req SearchRidesRequest

	if err := c.Bind(&req); err != nil {
		return response.InvalidRequestBody(c)
	}

	criteria, err := ToDomainCriteria(&req)
	if err != nil {
		return handleError(c, err)
	}

	result, err := h.useCase.Search(c.Request().Context(), criteria)
	if err != nil {
		return handleError(c, err)
	}

	return response.SearchResults(c, ToSearchResponseDTO(result, h.loc))
}

// handleError maps domain errors to appropriate HTTP responses.
func handleError(c echo.Context, err error) error {
	var validationErrs *domain.ValidationErrors
	if errors.As(err, &validationErrs) {
		return response.ValidationError(c, validationErrs.ToMap())
	}

	if errors.Is(err, domain.ErrBackendUnavailable) {
		return response.ServiceUnavailable(c)
	}

	// The client went away; nobody reads this response.
	if errors.Is(err, context.Canceled) {
		return response.ServiceUnavailable(c)
	}

	return response.InternalServerError(c)
}

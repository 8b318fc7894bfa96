package http

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/alwahis/ride-search/internal/adapter/http/response"
	"github.com/alwahis/ride-search/internal/usecase"
)

// RequestHandler handles HTTP requests for ride request endpoints.
type RequestHandler struct {
	useCase usecase.RequestSearchUseCase
	loc     *time.Location
}

// NewRequestHandler creates a RequestHandler. Times are rendered in loc
// (UTC when nil).
func NewRequestHandler(uc usecase.RequestSearchUseCase, loc *time.Location) *RequestHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &RequestHandler{useCase: uc, loc: loc}
}

// SearchRequests handles POST /api/v1/ride-requests/search
//
// @Summary Search ride requests
// @Description Open passenger requests, newest first, for drivers looking for riders.
// @Tags ride-requests
// @Accept json
// @Produce json
// @Param Accept-Language header string false "Response language (en, ar)"
// @Param request body SwaggerRequestSearchRequest true "Search criteria"
// @Success 200 {object} RequestSearchResponseDTO
// @Failure 400 {object} response.ErrorBody "Validation error"
// @Failure 429 {object} response.ErrorBody "Rate limited"
// @Failure 503 {object} response.ErrorBody "Ride store unavailable"
// @Router /api/v1/ride-requests/search [post]
func (h *RequestHandler) SearchRequests(c echo.Context) error {
	return h.search(c)
}

// SearchRequestsQuery handles GET /api/v1/ride-requests/search
//
// @Summary Search ride requests (query string)
// @Description Same as the POST variant with criteria given as query parameters.
// @Tags ride-requests
// @Produce json
// @Param Accept-Language header string false "Response language (en, ar)"
// @Param from_location query string false "Origin substring"
// @Param to_location query string false "Destination substring"
// @Param date query string false "Earliest preferred day (YYYY-MM-DD)"
// @Param page query int false "Page number"
// @Param per_page query int false "Page size (1-100)"
// @Success 200 {object} RequestSearchResponseDTO
// @Failure 400 {object} response.ErrorBody "Validation error"
// @Failure 429 {object} response.ErrorBody "Rate limited"
// @Failure 503 {object} response.ErrorBody "Ride store unavailable"
// @Router /api/v1/ride-requests/search [get]
func (h *RequestHandler) SearchRequestsQuery(c echo.Context) error {
	return h.search(c)
}

func (h *RequestHandler) search(c echo.Context) error {
	var req SearchRideRequestsRequest

	if err := c.Bind(&req); err != nil {
		return response.InvalidRequestBody(c)
	}

	criteria, err := ToRequestCriteria(&req)
	if err != nil {
		return handleError(c, err)
	}

	result, err := h.useCase.SearchRequests(c.Request().Context(), criteria)
	if err != nil {
		return handleError(c, err)
	}

	return response.SearchResults(c, ToRequestSearchResponseDTO(result, h.loc))
}

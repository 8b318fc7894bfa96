package http

import (
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// RegisterRoutes registers all ride and ride request search API routes.
// Health checks and docs sit outside the versioned group so that api
// middleware (such as rate limiting) does not apply to them.
func RegisterRoutes(e *echo.Echo, rides *RideHandler, requests *RequestHandler, health *HealthHandler, api ...echo.MiddlewareFunc) {
	e.GET("/health", health.Health)
	e.GET("/ready", health.Ready)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	v1 := e.Group("/api/v1", api...)

	ridesGroup := v1.Group("/rides")
	ridesGroup.POST("/search", rides.SearchRides)
	ridesGroup.GET("/search", rides.SearchRidesQuery)

	requestsGroup := v1.Group("/ride-requests")
	requestsGroup.POST("/search", requests.SearchRequests)
	requestsGroup.GET("/search", requests.SearchRequestsQuery)
}

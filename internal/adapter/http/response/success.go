package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HealthResponse represents the health and readiness check response.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
	Store  string `json:"store,omitempty" example:"postgres"`
}

// Health writes a liveness response.
func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, &HealthResponse{
		Status: "ok",
	})
}

// Ready writes a readiness response naming the store that answered.
func Ready(c echo.Context, store string) error {
	return c.JSON(http.StatusOK, &HealthResponse{
		Status: "ok",
		Store:  store,
	})
}

// NotReady writes a 503 response for a failed readiness check.
func NotReady(c echo.Context) error {
	return Fail(c, http.StatusServiceUnavailable, CodeServiceUnavailable, MsgStoreUnreachable, nil)
}

// SearchResults writes a 200 OK response with search results.
func SearchResults(c echo.Context, results any) error {
	return c.JSON(http.StatusOK, results)
}

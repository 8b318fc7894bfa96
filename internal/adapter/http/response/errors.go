package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Fail writes an error response with a localized message.
func Fail(c echo.Context, status int, code, message string, details map[string]string) error {
	return c.JSON(status, &ErrorBody{
		Error:   Localize(c, message),
		Code:    code,
		Details: details,
	})
}

// InvalidRequestBody writes a 400 Bad Request response for malformed request bodies.
func InvalidRequestBody(c echo.Context) error {
	return Fail(c, http.StatusBadRequest, CodeInvalidRequest, MsgInvalidRequestBody, nil)
}

// ValidationError writes a 400 Bad Request response with validation error details.
func ValidationError(c echo.Context, details map[string]string) error {
	return Fail(c, http.StatusBadRequest, CodeValidationError, MsgValidationFailed, details)
}

// ServiceUnavailable writes a 503 Service Unavailable response.
func ServiceUnavailable(c echo.Context) error {
	return Fail(c, http.StatusServiceUnavailable, CodeServiceUnavailable, MsgServiceUnavailable, nil)
}

// TooManyRequests writes a 429 Too Many Requests response.
func TooManyRequests(c echo.Context) error {
	return Fail(c, http.StatusTooManyRequests, CodeRateLimited, MsgRateLimited, nil)
}

// NotFound writes a 404 Not Found response.
func NotFound(c echo.Context) error {
	return Fail(c, http.StatusNotFound, CodeNotFound, MsgNotFound, nil)
}

// InternalServerError writes a 500 Internal Server Error response.
func InternalServerError(c echo.Context) error {
	return Fail(c, http.StatusInternalServerError, CodeInternalError, MsgInternalError, nil)
}

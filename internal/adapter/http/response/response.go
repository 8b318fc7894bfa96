// Package response provides standardized HTTP response builders for the ride search API.
// It centralizes response formatting to ensure consistency across all endpoints.
package response

// ErrorBody is the JSON body of every error response.
type ErrorBody struct {
	// Error is the human-readable message, localized from Accept-Language
	Error string `json:"error" example:"Request validation failed"`

	// Code is a machine-readable error code
	Code string `json:"code" example:"validation_error"`

	// Details maps request fields to what is wrong with them (validation errors only)
	Details map[string]string `json:"details,omitempty"`
}

// Error codes used in API responses.
const (
	CodeInvalidRequest     = "invalid_request"
	CodeValidationError    = "validation_error"
	CodeServiceUnavailable = "service_unavailable"
	CodeRateLimited        = "rate_limited"
	CodeNotFound           = "not_found"
	CodeInternalError      = "internal_error"
)

// Error messages used in API responses. They double as catalog keys.
const (
	MsgInvalidRequestBody = "Failed to parse request body"
	MsgValidationFailed   = "Request validation failed"
	MsgServiceUnavailable = "Ride search is temporarily unavailable"
	MsgRateLimited        = "Too many requests, please slow down"
	MsgNotFound           = "The requested resource was not found"
	MsgInternalError      = "An unexpected error occurred"
	MsgStoreUnreachable   = "Ride store is not reachable"
)

package api

import (
	"fmt"
)

// UnauthorizedError indicates a 401 response. The request pipeline has
// already invalidated the token cache when this error surfaces; retrying the
// logical operation once is a caller-level decision.
type UnauthorizedError struct{}

func (e *UnauthorizedError) Error() string {
	return "API request unauthorized (401): the signed token was rejected"
}

// Is allows errors.Is() to work with wrapped errors.
func (e *UnauthorizedError) Is(target error) bool {
	_, ok := target.(*UnauthorizedError)
	return ok
}

// ForbiddenError indicates a 403 response.
type ForbiddenError struct{}

func (e *ForbiddenError) Error() string {
	return "API request forbidden (403): the credential lacks access to this resource"
}

// Is allows errors.Is() to work with wrapped errors.
func (e *ForbiddenError) Is(target error) bool {
	_, ok := target.(*ForbiddenError)
	return ok
}

// NotFoundError indicates a 404 response.
type NotFoundError struct{}

func (e *NotFoundError) Error() string {
	return "resource not found (404)"
}

// Is allows errors.Is() to work with wrapped errors.
func (e *NotFoundError) Is(target error) bool {
	_, ok := target.(*NotFoundError)
	return ok
}

// RateLimitedError indicates a 429 response.
type RateLimitedError struct{}

func (e *RateLimitedError) Error() string {
	return "API rate limit exceeded (429): retry later"
}

// Is allows errors.Is() to work with wrapped errors.
func (e *RateLimitedError) Is(target error) bool {
	_, ok := target.(*RateLimitedError)
	return ok
}

// ServerError indicates a 5xx response.
type ServerError struct {
	Code int
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("API server error (%d)", e.Code)
}

// APIError carries a structured error detail for any other non-2xx response.
// Message is the first entry of the response's error envelope, or a fallback
// when the envelope could not be parsed.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (%d): %s", e.Status, e.Message)
}

// NetworkError wraps a transport-level failure (DNS, TLS, connection reset,
// timeout). It is distinct from any HTTP error status.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *NetworkError) Unwrap() error { return e.Err }

// DecodingError indicates a 2xx response whose body could not be decoded as
// the expected type. It is never masked as an empty result.
type DecodingError struct {
	Err error
}

func (e *DecodingError) Error() string {
	return fmt.Sprintf("cannot decode API response: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *DecodingError) Unwrap() error { return e.Err }

// ErrorDetail is one entry of the API's structured error envelope.
type ErrorDetail struct {
	Status string `json:"status"`
	Code   string `json:"code"`
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

// errorDocument is the wire shape of a non-2xx response body.
type errorDocument struct {
	Errors []ErrorDetail `json:"errors"`
}

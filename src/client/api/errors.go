package api

import (
	"errors"
	"fmt"
	"net/url"
)

// APIError is returned when the service answers with a non-2xx status.
type APIError struct {
	StatusCode int
	Status     string
	URL        string
	Body       string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("server error %d", e.StatusCode)
	}
	return fmt.Sprintf("server error %d: %s", e.StatusCode, e.Body)
}

// DecodeError is returned when a response body does not match the
// record expected for an endpoint.
type DecodeError struct {
	Endpoint string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode %s response: %v", e.Endpoint, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// ValidationError is returned before any request is made when an
// argument cannot be sent to the service.
type ValidationError struct {
	Param  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Param, e.Value, e.Reason)
}

// IsTransport reports whether err came from the HTTP transport rather
// than from the service or from decoding.
func IsTransport(err error) bool {
	var urlErr *url.Error
	return errors.As(err, &urlErr)
}

// IsNotFound reports whether err is a 404 from the service.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == 404
}

package client

import (
	"errors"
	"fmt"
)

// ErrUnavailable covers every failure that leaves the storefront without
// data: network errors, timeouts, bad statuses and malformed payloads.
var ErrUnavailable = errors.New("service unavailable")

var ErrMalformedResponse = fmt.Errorf("%w: malformed response", ErrUnavailable)

// StatusError is a non-2xx answer from the API.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server error (%d): %s", e.Code, e.Message)
}

func (e *StatusError) Unwrap() error { return ErrUnavailable }

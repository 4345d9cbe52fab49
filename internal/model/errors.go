package model

import (
	"errors"
	"fmt"
)

// Sentinel errors classifying upstream failures. The retry layer decides
// eligibility and backoff per class.
var (
	ErrRateLimit          = errors.New("RateLimitError")
	ErrServiceUnavailable = errors.New("ServiceUnavailableError")
	ErrTimeout            = errors.New("Timeout")
	ErrInvalidRequest     = errors.New("InvalidRequestError")
	ErrAuthentication     = errors.New("AuthenticationError")
	ErrUpstream           = errors.New("UpstreamError")
)

// MapHTTPStatusToError maps an upstream HTTP status code to a sentinel error.
func MapHTTPStatusToError(status int) error {
	switch {
	case status == 401 || status == 403:
		return ErrAuthentication
	case status == 429:
		return ErrRateLimit
	case status == 408:
		return ErrTimeout
	case status >= 500:
		return ErrServiceUnavailable
	case status >= 400:
		return ErrInvalidRequest
	default:
		return fmt.Errorf("%w: unexpected status code %d", ErrUpstream, status)
	}
}

package gateway

import "errors"

var (
	// ErrTimeout marks an attempt that exceeded the request timeout.
	ErrTimeout = errors.New("request timed out")

	// ErrConnectionRefused marks an attempt that never reached the
	// backend.
	ErrConnectionRefused = errors.New("connection refused")

	// ErrServerError marks a 5xx response.
	ErrServerError = errors.New("server error")

	// ErrClientError marks a 4xx response; retrying the same request
	// cannot succeed.
	ErrClientError = errors.New("client error")

	// ErrSerialization marks a request or response payload that is not
	// valid JSON.
	ErrSerialization = errors.New("malformed payload")
)

// IsTransient reports whether the error may clear up on a later attempt.
// Client errors and serialization errors never do.
func IsTransient(err error) bool {
	return errors.Is(err, ErrTimeout) ||
		errors.Is(err, ErrConnectionRefused) ||
		errors.Is(err, ErrServerError)
}

// APIError is an HTTP-level failure carrying the backend's status code
// and response body. It wraps ErrClientError or ErrServerError depending
// on the status class.
type APIError struct {
	StatusCode int
	Body       string

	kind error
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return e.kind.Error()
	}
	return e.kind.Error() + ": " + e.Body
}

func (e *APIError) Unwrap() error {
	return e.kind
}

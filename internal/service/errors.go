package service

import (
	"errors"
	"fmt"
)

// StatusError reports a non-2xx HTTP response from the task backend.
type StatusError struct {
	Method string
	Path   string
	Code   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP error! status: %d", e.Code)
}

// IsStatus reports whether err carries a *StatusError.
// Anything else coming out of a backend is a transport failure.
func IsStatus(err error) bool {
	var se *StatusError
	return errors.As(err, &se)
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code
	}
	return 0
}

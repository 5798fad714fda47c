package feed

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a feed lookup failure with the status and detail shown to the
// caller.
type Error struct {
	Status int
	Detail string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Detail, e.Err)
	}
	return e.Detail
}

func (e *Error) Unwrap() error { return e.Err }

var (
	ErrNotJSON      = &Error{Status: http.StatusBadRequest, Detail: "Only JSON feed files are supported"}
	ErrMissingHost  = &Error{Status: http.StatusBadRequest, Detail: "Host header not found"}
	ErrNoSubdomain  = &Error{Status: http.StatusBadRequest, Detail: "Invalid host format - subdomain not found"}
	ErrFeedNotFound = &Error{Status: http.StatusNotFound, Detail: "Feed file not found"}
)

func organizationNotFound(host string) *Error {
	return &Error{Status: http.StatusNotFound, Detail: "Organization not found for host: " + host}
}

// StatusOf maps err to an HTTP status; unknown errors are 500.
func StatusOf(err error) int {
	var ferr *Error
	if errors.As(err, &ferr) {
		return ferr.Status
	}
	return http.StatusInternalServerError
}

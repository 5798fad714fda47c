package search

import "errors"

var (
	// ErrEmptyQuery is returned for blank queries.
	ErrEmptyQuery = errors.New("search query cannot be empty")

	// ErrQueryTooLong is returned when the trimmed query exceeds MaxQueryLength.
	ErrQueryTooLong = errors.New("search query is too long")
)

// IsInvalidQuery reports whether err was caused by the query itself.
func IsInvalidQuery(err error) bool {
	return errors.Is(err, ErrEmptyQuery) || errors.Is(err, ErrQueryTooLong)
}

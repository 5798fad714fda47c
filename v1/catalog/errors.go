package catalog

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound is returned by Store lookups that match no row.
var ErrNotFound = errors.New("catalog: not found")

// ValidationError rejects a whole request. Message is shown to the caller as is.
type ValidationError struct {
	Message string
}

func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string { return e.Message }

// FatalError aborts an upsert request with the given HTTP status.
type FatalError struct {
	Status int
	Err    error
}

func (e *FatalError) Error() string { return e.Err.Error() }

func (e *FatalError) Unwrap() error { return e.Err }

// StatusOf returns the HTTP status an UpsertItemList error maps to.
func StatusOf(err error) int {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return http.StatusBadRequest
	}
	var ferr *FatalError
	if errors.As(err, &ferr) && ferr.Status != 0 {
		return ferr.Status
	}
	return http.StatusInternalServerError
}

// ItemError is a per-item ledger entry for a node that could not be applied.
type ItemError struct {
	Position int    `json:"position"`
	Type     string `json:"type"`
	URN      string `json:"urn"`
	Message  string `json:"error"`
}

func (e *ItemError) Error() string {
	return fmt.Sprintf("%s %s at position %d: %s", e.Type, e.URN, e.Position, e.Message)
}

// ItemSuccess is a per-item ledger entry for an applied node.
type ItemSuccess struct {
	Position  int    `json:"position"`
	Type      string `json:"type"`
	URN       string `json:"urn"`
	ProductID string `json:"product_id"`
}

// ItemResult holds exactly one of Success or Err.
type ItemResult struct {
	Success *ItemSuccess
	Err     *ItemError
}

// Ledger is the response of an upsert request.
type Ledger struct {
	ProductGroupID     *string       `json:"product_group_id"`
	SuccessfulProducts []ItemSuccess `json:"successful_products"`
	Errors             []ItemError   `json:"errors"`
}

func newLedger() *Ledger {
	return &Ledger{SuccessfulProducts: []ItemSuccess{}, Errors: []ItemError{}}
}

func (l *Ledger) record(r ItemResult) {
	switch {
	case r.Success != nil:
		l.SuccessfulProducts = append(l.SuccessfulProducts, *r.Success)
	case r.Err != nil:
		l.Errors = append(l.Errors, *r.Err)
	}
}

package dgraphorm

import (
	"errors"
	"fmt"
)

// Standard sentinel errors for client operations.
var (
	// ErrNoDriver is returned by client operations that need a database
	// connection when the client was built without one.
	ErrNoDriver = errors.New("dgraphorm: no driver configured")

	// ErrEmptyResult is returned when a query response carries no result
	// block to map.
	ErrEmptyResult = errors.New("dgraphorm: empty query result")
)

// QueryError wraps a driver query failure with the query that caused it.
type QueryError struct {
	Query string
	Err   error
}

// Error implements the error interface.
func (e *QueryError) Error() string {
	return fmt.Sprintf("dgraphorm: query failed: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *QueryError) Unwrap() error {
	return e.Err
}

// IsQueryError returns true if the error is a QueryError.
func IsQueryError(err error) bool {
	if err == nil {
		return false
	}
	var e *QueryError
	return errors.As(err, &e)
}

package graph

import (
	"errors"
	"fmt"
)

// ErrNotImplemented is returned by collection operations that are
// declared on the API surface but have no defined semantics: removing
// an element from a predicate collection has no mutation contract yet.
var ErrNotImplemented = errors.New("dgraphorm: not implemented")

// IsNotImplemented returns true if the error is the not-implemented
// fault.
func IsNotImplemented(err error) bool {
	return errors.Is(err, ErrNotImplemented)
}

// DataError describes a tolerated fault in input data, such as a nested
// record missing its uid during the expand pass. Data errors never
// propagate out of the mapper; the mapper degrades to the partial data
// it has and reports the fault to the debug log only.
type DataError struct {
	UID     string // uid of the enclosing record, if known
	Field   string // field under which the faulty record was found
	Message string
}

// Error implements the error interface.
func (e *DataError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("dgraphorm: data fault at %q (uid=%q): %s", e.Field, e.UID, e.Message)
	}
	return fmt.Sprintf("dgraphorm: data fault (uid=%q): %s", e.UID, e.Message)
}

// IsData returns true if the error is a DataError.
func IsData(err error) bool {
	if err == nil {
		return false
	}
	var e *DataError
	return errors.As(err, &e)
}

package schema

import (
	"errors"
	"strings"
)

// ErrConfiguration is the sentinel matched by every ConfigurationError.
// Configuration errors are raised synchronously at declaration or
// first-use time, are never recovered from, and are intended to abort
// startup.
var ErrConfiguration = errors.New("dgraphorm: invalid configuration")

// ConfigurationError represents a schema configuration fault: an
// unresolvable predicate target type, a malformed cardinality marker, or
// a reference to an undeclared member.
type ConfigurationError struct {
	Type    string // Node type name (if applicable)
	Member  string // Property or predicate name (if applicable)
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	var b strings.Builder
	b.WriteString("dgraphorm: configuration error")
	if e.Type != "" {
		b.WriteString(" on type ")
		b.WriteString(e.Type)
	}
	if e.Member != "" {
		b.WriteString(" member ")
		b.WriteString(e.Member)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Is reports whether the target matches the configuration sentinel.
// This allows errors.Is(err, ErrConfiguration) to return true.
func (e *ConfigurationError) Is(err error) bool {
	return err == ErrConfiguration
}

// Unwrap returns the underlying error.
func (e *ConfigurationError) Unwrap() error {
	return e.Cause
}

// NewConfigurationError returns a new ConfigurationError scoped to the
// given type and member. Either scope may be empty.
func NewConfigurationError(typ, member, message string) *ConfigurationError {
	return &ConfigurationError{Type: typ, Member: member, Message: message}
}

// IsConfiguration returns true if the error is a ConfigurationError.
func IsConfiguration(err error) bool {
	if err == nil {
		return false
	}
	var e *ConfigurationError
	return errors.As(err, &e) || errors.Is(err, ErrConfiguration)
}

package billing

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a client-side validation failure.
type ErrorKind int

const (
	// KindMissingField means a required input was absent or empty.
	KindMissingField ErrorKind = iota + 1
	// KindInvalidField means an input was present but malformed or out of range.
	KindInvalidField
	// KindUnresolvedLookup means a plan name or installment bucket has no
	// catalog entry.
	KindUnresolvedLookup
)

func (k ErrorKind) String() string {
	switch k {
	case KindMissingField:
		return "missing_field"
	case KindInvalidField:
		return "invalid_field"
	case KindUnresolvedLookup:
		return "unresolved_lookup"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is matching against a ValidationError.
var (
	ErrMissingField     = errors.New("missing required field")
	ErrInvalidField     = errors.New("invalid field")
	ErrUnresolvedLookup = errors.New("unresolved lookup")
)

// ValidationError is returned before any computation happens, so a caller
// never sees a partial result alongside it.
type ValidationError struct {
	Kind    ErrorKind
	Field   string
	Value   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Unwrap exposes the sentinel for the error kind.
func (e *ValidationError) Unwrap() error {
	switch e.Kind {
	case KindMissingField:
		return ErrMissingField
	case KindInvalidField:
		return ErrInvalidField
	case KindUnresolvedLookup:
		return ErrUnresolvedLookup
	default:
		return nil
	}
}

// IsValidationError reports whether err is, or wraps, a ValidationError.
func IsValidationError(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

func missingField(field string) error {
	return &ValidationError{
		Kind:    KindMissingField,
		Field:   field,
		Message: fmt.Sprintf("missing required field %q", field),
	}
}

func invalidField(field, value, reason string) error {
	return &ValidationError{
		Kind:    KindInvalidField,
		Field:   field,
		Value:   value,
		Message: fmt.Sprintf("invalid %s %q: %s", field, value, reason),
	}
}

func unresolvedLookup(field, value, message string) error {
	return &ValidationError{
		Kind:    KindUnresolvedLookup,
		Field:   field,
		Value:   value,
		Message: message,
	}
}

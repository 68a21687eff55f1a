package event

import (
	"fmt"
	"strings"
)

// ErrorType classifies fatal data inconsistencies found at
// normalization time.
type ErrorType string

const (
	// ErrConflictingFields means mutually exclusive temporal fields are
	// populated together (PERIOD alongside DTSTART/DTEND, or DTEND
	// alongside DURATION).
	ErrConflictingFields ErrorType = "conflicting_fields"
	// ErrMissingStart means the event has no resolvable start instant.
	ErrMissingStart ErrorType = "missing_start"
	// ErrNotConcrete means an operation that requires an already
	// expanded, non-recurring instance was called on a recurring event.
	ErrNotConcrete ErrorType = "not_concrete"
)

// Error reports a malformed event record. It carries the offending
// field names and a handle to the record itself so callers can format
// their own diagnostics; the source event must be treated as malformed
// and is not recoverable.
type Error struct {
	Type   ErrorType
	Fields []string
	Event  *Event
}

func (e *Error) Error() string {
	if len(e.Fields) == 0 {
		return string(e.Type)
	}
	return fmt.Sprintf("%s: %s", e.Type, strings.Join(e.Fields, ", "))
}

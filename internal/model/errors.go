package model

import "errors"

// Fault taxonomy shared by the store, the manager and the analytics
// engine. Call sites wrap these with fmt.Errorf("...: %w", ...) so that
// callers can test with errors.Is.
var (
	// ErrDuplicateEvent signals an identity-triple collision on insert.
	ErrDuplicateEvent = errors.New("duplicate event")

	// ErrEventNotFound signals that a lookup matched nothing.
	ErrEventNotFound = errors.New("event not found")

	// ErrAmbiguousEvent signals that a scope-aware lookup matched more
	// than one event.
	ErrAmbiguousEvent = errors.New("ambiguous event")

	// ErrInvalidRecurrence signals a malformed series rule.
	ErrInvalidRecurrence = errors.New("invalid recurrence rule")

	// ErrInvalidRange signals a bad date or datetime interval.
	ErrInvalidRange = errors.New("invalid range")

	// ErrNoActiveCalendar signals a manager operation with no calendar
	// in use.
	ErrNoActiveCalendar = errors.New("no active calendar")

	// ErrUnknownProperty signals an edit targeting an unrecognized field.
	ErrUnknownProperty = errors.New("unknown property")

	// ErrDuplicateCalendar signals a calendar name collision in a manager.
	ErrDuplicateCalendar = errors.New("duplicate calendar")

	// ErrCalendarNotFound signals a lookup for an unregistered calendar.
	ErrCalendarNotFound = errors.New("calendar not found")
)

package model

import "time"

// Status classifies an event as publicly visible or private.
type Status string

func (s Status) String() string {
	return string(s)
}

var (
	StatusPublic  Status = "PUBLIC"
	StatusPrivate Status = "PRIVATE"
)

// All-day events are the fixed working-day window.
var (
	allDayStartHour = 8
	allDayEndHour   = 17
)

// Event represents a single concrete occurrence. Start and End are civil
// datetimes (see time.go); End is strictly after Start. Identity is the
// (Subject, Start, End) triple; every other field is payload and does not
// participate in equality.
type Event struct {
	Subject     string
	Start       time.Time
	End         time.Time
	Description string
	Location    string
	Status      Status

	// SeriesID links occurrences generated from the same recurrence rule.
	// Empty for standalone events.
	SeriesID string
}

// EventKey is the comparable identity triple used to detect duplicates.
type EventKey struct {
	Subject    string
	Start, End int64
}

func (e Event) Key() EventKey {
	return EventKey{Subject: e.Subject, Start: e.Start.Unix(), End: e.End.Unix()}
}

// Same reports whether two events are the same entity (identity triple match).
func (e Event) Same(other Event) bool {
	return e.Key() == other.Key()
}

// InSeries reports whether the event was generated from a recurrence rule.
func (e Event) InSeries() bool {
	return e.SeriesID != ""
}

// IsAllDay reports whether the event spans exactly the 08:00-17:00 window
// of a single date.
func (e Event) IsAllDay() bool {
	if !SameDate(e.Start, e.End) {
		return false
	}
	sh, sm, ss := e.Start.Clock()
	eh, em, es := e.End.Clock()
	return sh == allDayStartHour && sm == 0 && ss == 0 &&
		eh == allDayEndHour && em == 0 && es == 0
}

// Contains reports whether the civil instant falls inside [Start, End).
func (e Event) Contains(at time.Time) bool {
	return !at.Before(e.Start) && at.Before(e.End)
}

// Overlaps reports whether [Start, End) intersects the half-open window
// [from, to).
func (e Event) Overlaps(from, to time.Time) bool {
	return e.Start.Before(to) && from.Before(e.End)
}

// Validate checks the structural invariant common to every event.
func (e Event) Validate() error {
	if !e.End.After(e.Start) {
		return ErrInvalidRange
	}
	return nil
}

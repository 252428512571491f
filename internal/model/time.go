package model

import "time"

// Civil datetimes are time.Time values carried in UTC: only the date and
// clock fields are meaningful. Which instant a value names is decided by
// the owning calendar's timezone; Rezone performs that reinterpretation.

const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02T15:04"
)

// NewDate builds the civil midnight of the given date.
func NewDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// NewDateTime builds a civil datetime with minute precision.
func NewDateTime(year int, month time.Month, day, hour, min int) time.Time {
	return time.Date(year, month, day, hour, min, 0, 0, time.UTC)
}

// DateOf truncates a civil datetime to its civil midnight.
func DateOf(t time.Time) time.Time {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// SameDate reports whether two civil datetimes fall on the same date.
func SameDate(a, b time.Time) bool {
	return DateOf(a).Equal(DateOf(b))
}

// WithTimeOfDay keeps the date of t and replaces its clock with the clock
// of tod.
func WithTimeOfDay(t, tod time.Time) time.Time {
	h, m, s := tod.Clock()
	return time.Date(t.Year(), t.Month(), t.Day(), h, m, s, 0, time.UTC)
}

// DaysBetween returns the whole days from date a to date b (negative when
// b precedes a). Clock fields are ignored.
func DaysBetween(a, b time.Time) int {
	return int(DateOf(b).Sub(DateOf(a)).Hours() / 24)
}

// Rezone reinterprets the wall clock of a civil datetime as belonging to
// the from zone and rewrites it to the equivalent wall clock in the to
// zone (instant-preserving conversion).
func Rezone(t time.Time, from, to *time.Location) time.Time {
	wall := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, from)
	conv := wall.In(to)
	return time.Date(conv.Year(), conv.Month(), conv.Day(), conv.Hour(), conv.Minute(), conv.Second(), 0, time.UTC)
}

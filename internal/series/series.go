// Package series generates flat event occurrences from a weekly
// recurrence rule. A Series is a generator, not a stored entity: once
// expanded it leaves behind only events sharing a SeriesID.
package series

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/teambition/rrule-go"

	"civcal/internal/model"
)

// maxOccurrences is a safety cap against runaway expansions.
const maxOccurrences = 5000

// Series describes a weekly recurrence: the anchor start/end define the
// daily time window (both on the same calendar date), Weekdays selects
// the days, and exactly one of Count or Until terminates the series.
type Series struct {
	Subject string

	// Start and End are the anchor civil datetimes. Their shared date is
	// the first candidate date; their clocks apply to every occurrence.
	Start time.Time
	End   time.Time

	Weekdays []time.Weekday

	// Count > 0 selects count mode; a non-zero Until selects until mode.
	Count int
	Until time.Time

	Description string
	Location    string
	Status      model.Status
}

// Validate checks the rule without expanding it.
func (s Series) Validate() error {
	if !s.End.After(s.Start) {
		return fmt.Errorf("%w: end is not after start", model.ErrInvalidRecurrence)
	}
	if !model.SameDate(s.Start, s.End) {
		return fmt.Errorf("%w: anchor start and end on different dates", model.ErrInvalidRecurrence)
	}
	if len(s.Weekdays) == 0 {
		return fmt.Errorf("%w: no weekdays selected", model.ErrInvalidRecurrence)
	}
	hasCount := s.Count > 0
	hasUntil := !s.Until.IsZero()
	if hasCount == hasUntil {
		return fmt.Errorf("%w: exactly one of count or until is required", model.ErrInvalidRecurrence)
	}
	if hasUntil && !model.DateOf(s.Until).After(model.DateOf(s.End)) {
		return fmt.Errorf("%w: until date must be after the anchor date", model.ErrInvalidRecurrence)
	}
	return nil
}

// Expand generates the occurrences of the rule in chronological order.
// All returned events share a freshly generated SeriesID and the series'
// payload fields.
func Expand(s Series) ([]model.Event, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	opt := rrule.ROption{
		Freq:      rrule.WEEKLY,
		Dtstart:   s.Start,
		Byweekday: byWeekdays(s.Weekdays),
	}
	if s.Count > 0 {
		opt.Count = s.Count
	} else {
		// Until is inclusive; candidates land at the anchor's start
		// clock, so pinning Until to that clock accepts occurrences on
		// the until date itself.
		opt.Until = model.WithTimeOfDay(s.Until, s.Start)
	}

	rule, err := rrule.NewRRule(opt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrInvalidRecurrence, err)
	}

	starts := rule.All()
	if len(starts) > maxOccurrences {
		starts = starts[:maxOccurrences]
	}

	id := uuid.NewString()
	events := make([]model.Event, 0, len(starts))
	for _, start := range starts {
		events = append(events, model.Event{
			Subject:     s.Subject,
			Start:       start,
			End:         model.WithTimeOfDay(start, s.End),
			Description: s.Description,
			Location:    s.Location,
			Status:      s.Status,
			SeriesID:    id,
		})
	}
	return events, nil
}

func byWeekdays(days []time.Weekday) []rrule.Weekday {
	out := make([]rrule.Weekday, 0, len(days))
	for _, d := range days {
		switch d {
		case time.Monday:
			out = append(out, rrule.MO)
		case time.Tuesday:
			out = append(out, rrule.TU)
		case time.Wednesday:
			out = append(out, rrule.WE)
		case time.Thursday:
			out = append(out, rrule.TH)
		case time.Friday:
			out = append(out, rrule.FR)
		case time.Saturday:
			out = append(out, rrule.SA)
		case time.Sunday:
			out = append(out, rrule.SU)
		}
	}
	return out
}

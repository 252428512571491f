// Package calendar implements the event store, the edit scoping rules
// and the multi-calendar manager.
package calendar

import (
	"fmt"
	"sort"
	"time"

	"civcal/internal/analytics"
	"civcal/internal/model"
	"civcal/internal/series"
)

// Calendar is a single named, timezone-tagged event set. Event times are
// civil datetimes interpreted in the calendar's location. A Calendar is
// not safe for concurrent use; it has exactly one logical owner.
type Calendar struct {
	name   string
	loc    *time.Location
	events map[model.EventKey]model.Event
}

// New creates an empty calendar in the given timezone.
func New(name string, loc *time.Location) *Calendar {
	if loc == nil {
		loc = time.UTC
	}
	return &Calendar{
		name:   name,
		loc:    loc,
		events: make(map[model.EventKey]model.Event),
	}
}

func (c *Calendar) Name() string {
	return c.name
}

func (c *Calendar) Location() *time.Location {
	return c.loc
}

// Add inserts a single event. It fails with ErrDuplicateEvent when an
// event with the same identity triple already exists.
func (c *Calendar) Add(e model.Event) error {
	if err := e.Validate(); err != nil {
		return fmt.Errorf("add %q: %w", e.Subject, err)
	}
	key := e.Key()
	if _, ok := c.events[key]; ok {
		return fmt.Errorf("add %q at %s: %w", e.Subject, e.Start.Format(model.DateTimeLayout), model.ErrDuplicateEvent)
	}
	c.events[key] = e
	return nil
}

// AddSeries expands the rule and inserts every occurrence. The whole
// batch is validated against the store and against itself before any
// insert, so a collision leaves the store untouched.
func (c *Calendar) AddSeries(s series.Series) error {
	events, err := series.Expand(s)
	if err != nil {
		return err
	}
	return c.insertBatch(events, nil)
}

// Remove deletes the event with the same identity triple if present;
// otherwise it is a no-op.
func (c *Calendar) Remove(e model.Event) {
	delete(c.events, e.Key())
}

// RemoveFromSeries deletes the given occurrence and every chronologically
// later member of its series. A standalone event is simply removed.
func (c *Calendar) RemoveFromSeries(e model.Event) {
	if !e.InSeries() {
		c.Remove(e)
		return
	}
	for key, ev := range c.events {
		if ev.SeriesID == e.SeriesID && !ev.Start.Before(e.Start) {
			delete(c.events, key)
		}
	}
}

// RemoveAllInSeries deletes every member of the event's series regardless
// of date. A standalone event is simply removed.
func (c *Calendar) RemoveAllInSeries(e model.Event) {
	if !e.InSeries() {
		c.Remove(e)
		return
	}
	for key, ev := range c.events {
		if ev.SeriesID == e.SeriesID {
			delete(c.events, key)
		}
	}
}

// IsBusy reports whether some event's [start, end) contains the civil
// instant.
func (c *Calendar) IsBusy(at time.Time) bool {
	for _, e := range c.events {
		if e.Contains(at) {
			return true
		}
	}
	return false
}

// EventsOn returns the events starting on the given date, ordered by
// start time.
func (c *Calendar) EventsOn(date time.Time) []model.Event {
	day := model.DateOf(date)
	var out []model.Event
	for _, e := range c.events {
		if model.DateOf(e.Start).Equal(day) {
			out = append(out, e)
		}
	}
	sortEvents(out)
	return out
}

// EventsInRange returns the events overlapping the half-open window
// [from, to), ordered by start time.
func (c *Calendar) EventsInRange(from, to time.Time) ([]model.Event, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("range %s..%s: %w", from.Format(model.DateTimeLayout), to.Format(model.DateTimeLayout), model.ErrInvalidRange)
	}
	var out []model.Event
	for _, e := range c.events {
		if e.Overlaps(from, to) {
			out = append(out, e)
		}
	}
	sortEvents(out)
	return out, nil
}

// Events returns a sorted copy of the whole event set.
func (c *Calendar) Events() []model.Event {
	out := make([]model.Event, 0, len(c.events))
	for _, e := range c.events {
		out = append(out, e)
	}
	sortEvents(out)
	return out
}

// Len returns the number of stored events.
func (c *Calendar) Len() int {
	return len(c.events)
}

// GenerateAnalytics aggregates the calendar's events over the inclusive
// date interval.
func (c *Calendar) GenerateAnalytics(startDate, endDate time.Time) (*analytics.Summary, error) {
	return analytics.Generate(c.Events(), startDate, endDate)
}

// SetTimezone rewrites every stored event's wall clock from the old zone
// to the equivalent wall clock in the new zone. Setting the current zone
// again is a no-op.
func (c *Calendar) SetTimezone(loc *time.Location) {
	if loc == nil || loc.String() == c.loc.String() {
		return
	}
	rezoned := make(map[model.EventKey]model.Event, len(c.events))
	for _, e := range c.events {
		e.Start = model.Rezone(e.Start, c.loc, loc)
		e.End = model.Rezone(e.End, c.loc, loc)
		rezoned[e.Key()] = e
	}
	c.loc = loc
	c.events = rezoned
}

// insertBatch validates the staged events against the store (minus the
// removed keys) and against each other, then commits removals and
// insertions as one unit.
func (c *Calendar) insertBatch(staged []model.Event, removed map[model.EventKey]bool) error {
	seen := make(map[model.EventKey]bool, len(staged))
	for _, e := range staged {
		if err := e.Validate(); err != nil {
			return fmt.Errorf("stage %q: %w", e.Subject, err)
		}
		key := e.Key()
		if seen[key] {
			return fmt.Errorf("stage %q at %s: %w", e.Subject, e.Start.Format(model.DateTimeLayout), model.ErrDuplicateEvent)
		}
		if _, ok := c.events[key]; ok && !removed[key] {
			return fmt.Errorf("stage %q at %s: %w", e.Subject, e.Start.Format(model.DateTimeLayout), model.ErrDuplicateEvent)
		}
		seen[key] = true
	}
	for key := range removed {
		delete(c.events, key)
	}
	for _, e := range staged {
		c.events[e.Key()] = e
	}
	return nil
}

func sortEvents(events []model.Event) {
	sort.Slice(events, func(i, j int) bool {
		a, b := events[i], events[j]
		if !a.Start.Equal(b.Start) {
			return a.Start.Before(b.Start)
		}
		if !a.End.Equal(b.End) {
			return a.End.Before(b.End)
		}
		return a.Subject < b.Subject
	})
}

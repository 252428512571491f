package calendar

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"civcal/internal/model"
)

// Edit scoping. All edits target a single property carried as a tagged
// model.FieldValue. Batches are staged and validated before commit, so a
// collision anywhere in the batch leaves the store unchanged.

// EditEvent edits exactly one event, looked up by its full identity
// triple. When the target belongs to a series and the edited property is
// start or end, the event is detached from the series.
func (c *Calendar) EditEvent(subject string, start, end time.Time, v model.FieldValue) error {
	target, ok := c.events[model.Event{Subject: subject, Start: start, End: end}.Key()]
	if !ok {
		return fmt.Errorf("edit %q at %s: %w", subject, start.Format(model.DateTimeLayout), model.ErrEventNotFound)
	}
	return c.editSingle(target, v)
}

// EditEventsFrom edits the target and every chronologically later member
// of its series. The target is located by (subject, start), optionally
// narrowed by a non-zero end. A standalone target behaves as a
// single-scope edit. Start/end edits apply only the time-of-day of the
// supplied value and move the selected members to a fresh series id,
// splitting the series.
func (c *Calendar) EditEventsFrom(subject string, start, end time.Time, v model.FieldValue) error {
	target, err := c.findScoped(subject, start, end)
	if err != nil {
		return err
	}
	if !target.InSeries() {
		return c.editSingle(target, v)
	}

	members := c.seriesMembers(target.SeriesID, func(e model.Event) bool {
		return !e.Start.Before(target.Start)
	})
	seriesID := target.SeriesID
	if v.IsTemporal() {
		seriesID = uuid.NewString()
	}
	return c.editBatch(members, v, seriesID)
}

// EditAllInSeries edits every member of the target's series regardless of
// date. Unlike EditEventsFrom, the series id is kept even for start/end
// edits; the series is never split.
func (c *Calendar) EditAllInSeries(subject string, start, end time.Time, v model.FieldValue) error {
	target, err := c.findScoped(subject, start, end)
	if err != nil {
		return err
	}
	if !target.InSeries() {
		return c.editSingle(target, v)
	}

	members := c.seriesMembers(target.SeriesID, func(model.Event) bool { return true })
	return c.editBatch(members, v, target.SeriesID)
}

func (c *Calendar) editSingle(target model.Event, v model.FieldValue) error {
	updated := target.Apply(v)
	if target.InSeries() && v.IsTemporal() {
		updated.SeriesID = ""
	}
	removed := map[model.EventKey]bool{target.Key(): true}
	if err := c.insertBatch([]model.Event{updated}, removed); err != nil {
		return err
	}
	return nil
}

func (c *Calendar) editBatch(members []model.Event, v model.FieldValue, seriesID string) error {
	staged := make([]model.Event, 0, len(members))
	removed := make(map[model.EventKey]bool, len(members))
	for _, m := range members {
		removed[m.Key()] = true
		updated := m.ApplyTimeOfDay(v)
		updated.SeriesID = seriesID
		staged = append(staged, updated)
	}
	return c.insertBatch(staged, removed)
}

// findScoped locates the target of a scope-aware edit by (subject, start),
// narrowed by end when non-zero. Series members win over standalone
// events with the same key; any remaining tie is ambiguous.
func (c *Calendar) findScoped(subject string, start, end time.Time) (model.Event, error) {
	var matches []model.Event
	for _, e := range c.events {
		if e.Subject != subject || !e.Start.Equal(start) {
			continue
		}
		if !end.IsZero() && !e.End.Equal(end) {
			continue
		}
		matches = append(matches, e)
	}

	if len(matches) == 0 {
		return model.Event{}, fmt.Errorf("edit %q at %s: %w", subject, start.Format(model.DateTimeLayout), model.ErrEventNotFound)
	}
	if len(matches) > 1 {
		var inSeries []model.Event
		for _, e := range matches {
			if e.InSeries() {
				inSeries = append(inSeries, e)
			}
		}
		if len(inSeries) == 1 {
			return inSeries[0], nil
		}
		return model.Event{}, fmt.Errorf("edit %q at %s: %d matches: %w", subject, start.Format(model.DateTimeLayout), len(matches), model.ErrAmbiguousEvent)
	}
	return matches[0], nil
}

func (c *Calendar) seriesMembers(seriesID string, keep func(model.Event) bool) []model.Event {
	var out []model.Event
	for _, e := range c.events {
		if e.SeriesID == seriesID && keep(e) {
			out = append(out, e)
		}
	}
	sortEvents(out)
	return out
}

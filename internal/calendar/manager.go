package calendar

import (
	"errors"
	"fmt"
	"sort"
	"time"

	appLog "civcal/internal/log"
	"civcal/internal/model"
)

// Manager owns a registry of calendars and tracks the one currently in
// use. Calendars are created, renamed and deleted only through their
// manager; independent managers never share state.
type Manager struct {
	calendars map[string]*Calendar
	current   *Calendar
}

func NewManager() *Manager {
	return &Manager{calendars: make(map[string]*Calendar)}
}

// CreateCalendar registers a new calendar under a unique name. The
// timezone must be a valid IANA name.
func (m *Manager) CreateCalendar(name, timezone string) error {
	if _, ok := m.calendars[name]; ok {
		return fmt.Errorf("create calendar %q: %w", name, model.ErrDuplicateCalendar)
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return fmt.Errorf("create calendar %q: %w", name, err)
	}
	m.calendars[name] = New(name, loc)
	return nil
}

// EditCalendar changes a calendar-level property: "name" re-keys the
// registry entry, "timezone" rewrites every stored event into the new
// zone.
func (m *Manager) EditCalendar(name, property, value string) error {
	cal, ok := m.calendars[name]
	if !ok {
		return fmt.Errorf("edit calendar %q: %w", name, model.ErrCalendarNotFound)
	}
	switch property {
	case "name":
		if value == name {
			return nil
		}
		if _, exists := m.calendars[value]; exists {
			return fmt.Errorf("rename calendar %q to %q: %w", name, value, model.ErrDuplicateCalendar)
		}
		delete(m.calendars, name)
		cal.name = value
		m.calendars[value] = cal
		return nil
	case "timezone":
		loc, err := time.LoadLocation(value)
		if err != nil {
			return fmt.Errorf("edit calendar %q: %w", name, err)
		}
		cal.SetTimezone(loc)
		return nil
	}
	return fmt.Errorf("edit calendar %q: property %q: %w", name, property, model.ErrUnknownProperty)
}

// UseCalendar selects the calendar subsequent operations act on.
func (m *Manager) UseCalendar(name string) error {
	cal, ok := m.calendars[name]
	if !ok {
		return fmt.Errorf("use calendar %q: %w", name, model.ErrCalendarNotFound)
	}
	m.current = cal
	return nil
}

// Current returns the calendar in use.
func (m *Manager) Current() (*Calendar, error) {
	if m.current == nil {
		return nil, model.ErrNoActiveCalendar
	}
	return m.current, nil
}

// Calendar returns the registered calendar with the given name.
func (m *Manager) Calendar(name string) (*Calendar, error) {
	cal, ok := m.calendars[name]
	if !ok {
		return nil, fmt.Errorf("calendar %q: %w", name, model.ErrCalendarNotFound)
	}
	return cal, nil
}

// CalendarNames lists the registered names in sorted order.
func (m *Manager) CalendarNames() []string {
	names := make([]string, 0, len(m.calendars))
	for name := range m.calendars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CopyEvent copies one event from the current calendar, identified by
// (subject, start) over an unbounded horizon, to the target calendar at
// the given start datetime (expressed in the target calendar's zone). The
// event's duration and payload are preserved. A duplicate in the target
// is an error.
func (m *Manager) CopyEvent(subject string, start time.Time, targetName string, targetStart time.Time) error {
	src, err := m.Current()
	if err != nil {
		return err
	}
	target, err := m.Calendar(targetName)
	if err != nil {
		return err
	}

	var matches []model.Event
	for _, e := range src.events {
		if e.Subject == subject && e.Start.Equal(start) {
			matches = append(matches, e)
		}
	}
	if len(matches) == 0 {
		return fmt.Errorf("copy %q at %s: %w", subject, start.Format(model.DateTimeLayout), model.ErrEventNotFound)
	}
	if len(matches) > 1 {
		return fmt.Errorf("copy %q at %s: %d matches: %w", subject, start.Format(model.DateTimeLayout), len(matches), model.ErrAmbiguousEvent)
	}

	e := matches[0]
	duration := e.End.Sub(e.Start)
	e.Start = targetStart
	e.End = targetStart.Add(duration)
	return target.Add(e)
}

// CopyEventsOnDate copies every event of the current calendar starting on
// the given date, shifted by the day offset between the two dates and
// reinterpreted into the target calendar's timezone. Duplicates in the
// target are skipped.
func (m *Manager) CopyEventsOnDate(date time.Time, targetName string, targetDate time.Time) error {
	src, err := m.Current()
	if err != nil {
		return err
	}
	target, err := m.Calendar(targetName)
	if err != nil {
		return err
	}
	offset := model.DaysBetween(date, targetDate)
	return copyShifted(src, target, src.EventsOn(date), offset)
}

// CopyEventsBetween copies the current calendar's events starting inside
// the inclusive date interval [from, to], shifted so that from lands on
// targetDate, with timezone reinterpretation. Duplicates in the target
// are skipped.
func (m *Manager) CopyEventsBetween(from, to time.Time, targetName string, targetDate time.Time) error {
	if to.Before(from) {
		return fmt.Errorf("copy between %s..%s: %w", from.Format(model.DateLayout), to.Format(model.DateLayout), model.ErrInvalidRange)
	}
	src, err := m.Current()
	if err != nil {
		return err
	}
	target, err := m.Calendar(targetName)
	if err != nil {
		return err
	}

	first, last := model.DateOf(from), model.DateOf(to)
	var selected []model.Event
	for _, e := range src.events {
		day := model.DateOf(e.Start)
		if !day.Before(first) && !day.After(last) {
			selected = append(selected, e)
		}
	}
	sortEvents(selected)

	offset := model.DaysBetween(from, targetDate)
	return copyShifted(src, target, selected, offset)
}

func copyShifted(src, target *Calendar, events []model.Event, offsetDays int) error {
	for _, e := range events {
		e.Start = e.Start.AddDate(0, 0, offsetDays)
		e.End = e.End.AddDate(0, 0, offsetDays)
		if src.loc.String() != target.loc.String() {
			e.Start = model.Rezone(e.Start, src.loc, target.loc)
			e.End = model.Rezone(e.End, src.loc, target.loc)
		}
		if err := target.Add(e); err != nil {
			if errors.Is(err, model.ErrDuplicateEvent) {
				appLog.Debug("copy: skipping duplicate",
					"subject", e.Subject,
					"start", e.Start.Format(model.DateTimeLayout),
					"target", target.name,
				)
				continue
			}
			return err
		}
	}
	return nil
}

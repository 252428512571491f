// Package export renders a calendar's event set for external consumers.
// Both writers are read-only over event values; wire layout is owned
// here, not by the core.
package export

import (
	"fmt"
	"io"

	ical "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	appLog "civcal/internal/log"
	"civcal/internal/model"
)

const icsLayout = "20060102T150405"

// WriteICal serializes the events as an iCalendar stream. Times are
// written as floating local times, matching the civil-datetime model;
// private events carry CLASS:PRIVATE.
func WriteICal(w io.Writer, calendarName string, events []model.Event) error {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//civcal//calendar export//EN")
	cal.SetXWRCalName(calendarName)

	for _, e := range events {
		ve := cal.AddEvent(uuid.NewString())
		ve.SetProperty(ical.ComponentPropertyDtStart, e.Start.Format(icsLayout))
		ve.SetProperty(ical.ComponentPropertyDtEnd, e.End.Format(icsLayout))
		ve.SetProperty(ical.ComponentPropertySummary, e.Subject)
		if e.Description != "" {
			ve.SetProperty(ical.ComponentPropertyDescription, e.Description)
		}
		if e.Location != "" {
			ve.SetProperty(ical.ComponentPropertyLocation, e.Location)
		}
		if e.Status == model.StatusPrivate {
			ve.SetProperty(ical.ComponentPropertyClass, "PRIVATE")
		}
	}

	if err := cal.SerializeTo(w); err != nil {
		return fmt.Errorf("export ical: %w", err)
	}
	appLog.Debug("ical export completed", "calendar", calendarName, "event_count", len(events))
	return nil
}

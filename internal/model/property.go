package model

import (
	"fmt"
	"time"
)

// Property names an editable event field.
type Property string

func (p Property) String() string {
	return string(p)
}

const (
	PropertySubject     Property = "subject"
	PropertyStart       Property = "start"
	PropertyEnd         Property = "end"
	PropertyDescription Property = "description"
	PropertyLocation    Property = "location"
	PropertyStatus      Property = "status"
)

// FieldValue is a tagged property/value pair. Values are built through the
// per-property constructors so that each property always carries a value
// of the right type.
type FieldValue struct {
	prop   Property
	text   string
	when   time.Time
	status Status
}

func SubjectValue(s string) FieldValue {
	return FieldValue{prop: PropertySubject, text: s}
}

func StartValue(t time.Time) FieldValue {
	return FieldValue{prop: PropertyStart, when: t}
}

func EndValue(t time.Time) FieldValue {
	return FieldValue{prop: PropertyEnd, when: t}
}

func DescriptionValue(s string) FieldValue {
	return FieldValue{prop: PropertyDescription, text: s}
}

func LocationValue(s string) FieldValue {
	return FieldValue{prop: PropertyLocation, text: s}
}

func StatusValue(s Status) FieldValue {
	return FieldValue{prop: PropertyStatus, status: s}
}

// Property returns the field this value targets.
func (v FieldValue) Property() Property {
	return v.prop
}

// IsTemporal reports whether the value targets start or end. Temporal
// edits interact with series membership (detach/split rules).
func (v FieldValue) IsTemporal() bool {
	return v.prop == PropertyStart || v.prop == PropertyEnd
}

func (v FieldValue) String() string {
	switch v.prop {
	case PropertyStart, PropertyEnd:
		return fmt.Sprintf("%s=%s", v.prop, v.when.Format(DateTimeLayout))
	case PropertyStatus:
		return fmt.Sprintf("%s=%s", v.prop, v.status)
	default:
		return fmt.Sprintf("%s=%s", v.prop, v.text)
	}
}

// Apply returns a copy of the event with the full value written into the
// targeted field.
func (e Event) Apply(v FieldValue) Event {
	switch v.prop {
	case PropertySubject:
		e.Subject = v.text
	case PropertyStart:
		e.Start = v.when
	case PropertyEnd:
		e.End = v.when
	case PropertyDescription:
		e.Description = v.text
	case PropertyLocation:
		e.Location = v.text
	case PropertyStatus:
		e.Status = v.status
	}
	return e
}

// ApplyTimeOfDay is the series-scope variant of Apply: for start/end only
// the clock of the supplied value is written, keeping the event's own
// date. Non-temporal properties behave exactly as Apply.
func (e Event) ApplyTimeOfDay(v FieldValue) Event {
	switch v.prop {
	case PropertyStart:
		e.Start = WithTimeOfDay(e.Start, v.when)
	case PropertyEnd:
		e.End = WithTimeOfDay(e.End, v.when)
	default:
		return e.Apply(v)
	}
	return e
}

// ParseStatus maps the wire spelling of a status onto its typed value.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPublic:
		return StatusPublic, nil
	case StatusPrivate:
		return StatusPrivate, nil
	}
	return "", fmt.Errorf("%w: status %q", ErrUnknownProperty, s)
}

package model

import (
	"errors"
	"testing"
	"time"
)

func TestEventIdentity(t *testing.T) {
	a := Event{
		Subject: "standup",
		Start:   NewDateTime(2024, time.January, 8, 10, 0),
		End:     NewDateTime(2024, time.January, 8, 10, 30),
	}
	b := a
	b.Description = "different payload"
	b.Location = "Room A"
	b.Status = StatusPrivate
	b.SeriesID = "some-series"

	if !a.Same(b) {
		t.Fatal("payload fields must not participate in identity")
	}

	c := a
	c.End = NewDateTime(2024, time.January, 8, 11, 0)
	if a.Same(c) {
		t.Fatal("different end must yield a different identity")
	}
}

func TestIsAllDay(t *testing.T) {
	tests := []struct {
		name       string
		start, end time.Time
		want       bool
	}{
		{"working window", NewDateTime(2024, time.March, 4, 8, 0), NewDateTime(2024, time.March, 4, 17, 0), true},
		{"wrong start", NewDateTime(2024, time.March, 4, 9, 0), NewDateTime(2024, time.March, 4, 17, 0), false},
		{"wrong end", NewDateTime(2024, time.March, 4, 8, 0), NewDateTime(2024, time.March, 4, 16, 0), false},
		{"spans dates", NewDateTime(2024, time.March, 4, 8, 0), NewDateTime(2024, time.March, 5, 17, 0), false},
	}
	for _, tc := range tests {
		e := Event{Subject: "x", Start: tc.start, End: tc.end}
		if got := e.IsAllDay(); got != tc.want {
			t.Errorf("%s: IsAllDay() = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestContainsAndOverlaps(t *testing.T) {
	e := Event{
		Subject: "x",
		Start:   NewDateTime(2024, time.May, 1, 10, 0),
		End:     NewDateTime(2024, time.May, 1, 12, 0),
	}

	if !e.Contains(e.Start) {
		t.Error("start must be contained (half-open interval)")
	}
	if e.Contains(e.End) {
		t.Error("end must not be contained (half-open interval)")
	}
	if !e.Contains(NewDateTime(2024, time.May, 1, 11, 0)) {
		t.Error("interior instant must be contained")
	}

	if !e.Overlaps(NewDateTime(2024, time.May, 1, 11, 0), NewDateTime(2024, time.May, 1, 13, 0)) {
		t.Error("partial overlap not detected")
	}
	if e.Overlaps(NewDateTime(2024, time.May, 1, 12, 0), NewDateTime(2024, time.May, 1, 13, 0)) {
		t.Error("window starting at event end must not overlap")
	}
}

func TestValidate(t *testing.T) {
	e := Event{
		Subject: "x",
		Start:   NewDateTime(2024, time.May, 1, 10, 0),
		End:     NewDateTime(2024, time.May, 1, 10, 0),
	}
	if !errors.Is(e.Validate(), ErrInvalidRange) {
		t.Fatal("end equal to start must be invalid")
	}
}

func TestApply(t *testing.T) {
	e := Event{
		Subject: "x",
		Start:   NewDateTime(2024, time.May, 1, 10, 0),
		End:     NewDateTime(2024, time.May, 1, 11, 0),
		Status:  StatusPublic,
	}

	got := e.Apply(SubjectValue("y"))
	if got.Subject != "y" || e.Subject != "x" {
		t.Fatal("Apply must return a modified copy")
	}

	newStart := NewDateTime(2024, time.May, 2, 14, 0)
	got = e.Apply(StartValue(newStart))
	if !got.Start.Equal(newStart) {
		t.Fatalf("Apply(start) = %v, want %v", got.Start, newStart)
	}

	got = e.Apply(StatusValue(StatusPrivate))
	if got.Status != StatusPrivate {
		t.Fatalf("Apply(status) = %v", got.Status)
	}
}

func TestApplyTimeOfDay(t *testing.T) {
	e := Event{
		Subject: "x",
		Start:   NewDateTime(2024, time.May, 3, 10, 0),
		End:     NewDateTime(2024, time.May, 3, 11, 0),
	}

	got := e.ApplyTimeOfDay(StartValue(NewDateTime(2024, time.June, 20, 14, 30)))
	want := NewDateTime(2024, time.May, 3, 14, 30)
	if !got.Start.Equal(want) {
		t.Fatalf("ApplyTimeOfDay(start) = %v, want date preserved %v", got.Start, want)
	}

	// Non-temporal properties fall through to Apply.
	got = e.ApplyTimeOfDay(LocationValue("Online"))
	if got.Location != "Online" {
		t.Fatalf("ApplyTimeOfDay(location) = %q", got.Location)
	}
}

func TestRezone(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata unavailable:", err)
	}
	paris, err := time.LoadLocation("Europe/Paris")
	if err != nil {
		t.Skip("tzdata unavailable:", err)
	}

	// Winter: New York is UTC-5, Paris UTC+1.
	got := Rezone(NewDateTime(2024, time.January, 15, 9, 0), ny, paris)
	want := NewDateTime(2024, time.January, 15, 15, 0)
	if !got.Equal(want) {
		t.Fatalf("Rezone = %v, want %v", got, want)
	}

	// Same zone round-trips bit for bit.
	orig := NewDateTime(2024, time.January, 15, 9, 0)
	if got := Rezone(orig, ny, ny); !got.Equal(orig) {
		t.Fatalf("same-zone Rezone changed value: %v", got)
	}
}

func TestDaysBetween(t *testing.T) {
	a := NewDateTime(2024, time.January, 1, 23, 59)
	b := NewDateTime(2024, time.January, 8, 0, 0)
	if got := DaysBetween(a, b); got != 7 {
		t.Fatalf("DaysBetween = %d, want 7", got)
	}
	if got := DaysBetween(b, a); got != -7 {
		t.Fatalf("reverse DaysBetween = %d, want -7", got)
	}
}

func TestParseStatus(t *testing.T) {
	if _, err := ParseStatus("SECRET"); !errors.Is(err, ErrUnknownProperty) {
		t.Fatal("unknown status must fail with ErrUnknownProperty")
	}
	s, err := ParseStatus("PRIVATE")
	if err != nil || s != StatusPrivate {
		t.Fatalf("ParseStatus(PRIVATE) = %v, %v", s, err)
	}
}

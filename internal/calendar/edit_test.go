package calendar

import (
	"errors"
	"testing"
	"time"

	"civcal/internal/model"
	"civcal/internal/series"
)

// weekdaySeries adds a Mon-Fri series of 5 occurrences starting Monday
// 2024-04-01 at 10:00-16:00 and returns them in chronological order.
func weekdaySeries(t *testing.T, c *Calendar) []model.Event {
	t.Helper()
	s := series.Series{
		Subject:  "standup",
		Start:    model.NewDateTime(2024, time.April, 1, 10, 0),
		End:      model.NewDateTime(2024, time.April, 1, 16, 0),
		Weekdays: []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday},
		Count:    5,
	}
	if err := c.AddSeries(s); err != nil {
		t.Fatal(err)
	}
	return c.Events()
}

func TestEditSingleEvent(t *testing.T) {
	c := New("work", time.UTC)
	e := testEvent("review", 2, 10, 11)
	mustAdd(t, c, e)

	if err := c.EditEvent("review", e.Start, e.End, model.LocationValue("Online")); err != nil {
		t.Fatal(err)
	}
	if got := c.Events()[0]; got.Location != "Online" {
		t.Fatalf("location = %q, want Online", got.Location)
	}

	err := c.EditEvent("missing", e.Start, e.End, model.LocationValue("x"))
	if !errors.Is(err, model.ErrEventNotFound) {
		t.Fatalf("want ErrEventNotFound, got %v", err)
	}
}

func TestEditSingleDetachesFromSeries(t *testing.T) {
	c := New("work", time.UTC)
	events := weekdaySeries(t, c)
	target := events[1]

	newStart := model.NewDateTime(2024, time.April, 2, 12, 0)
	if err := c.EditEvent(target.Subject, target.Start, target.End, model.StartValue(newStart)); err != nil {
		t.Fatal(err)
	}

	var detached *model.Event
	for _, e := range c.Events() {
		if e.Start.Equal(newStart) {
			ev := e
			detached = &ev
		}
	}
	if detached == nil {
		t.Fatal("edited event not found at its new start")
	}
	if detached.InSeries() {
		t.Fatal("start edit with single scope must detach the event from its series")
	}

	// Non-temporal single edit keeps series membership.
	target = c.Events()[0]
	if err := c.EditEvent(target.Subject, target.Start, target.End, model.DescriptionValue("notes")); err != nil {
		t.Fatal(err)
	}
	if got := c.Events()[0]; !got.InSeries() || got.Description != "notes" {
		t.Fatal("description edit must keep series membership")
	}
}

func TestEditSingleDuplicateLeavesStoreUnchanged(t *testing.T) {
	c := New("work", time.UTC)
	a := testEvent("x", 3, 10, 12)
	b := testEvent("x", 3, 11, 12)
	mustAdd(t, c, a, b)

	// Moving b's start onto a's creates an identity collision.
	err := c.EditEvent("x", b.Start, b.End, model.StartValue(a.Start))
	if !errors.Is(err, model.ErrDuplicateEvent) {
		t.Fatalf("want ErrDuplicateEvent, got %v", err)
	}
	if c.Len() != 2 {
		t.Fatalf("store holds %d events, want both originals", c.Len())
	}
	events := c.Events()
	if !events[0].Same(a) || !events[1].Same(b) {
		t.Fatal("failed edit must restore the original events")
	}
}

func TestEditFromSplitsSeries(t *testing.T) {
	c := New("work", time.UTC)
	events := weekdaySeries(t, c)
	originalID := events[0].SeriesID
	pivot := events[2]

	newTime := model.NewDateTime(2024, time.April, 3, 14, 0)
	if err := c.EditEventsFrom(pivot.Subject, pivot.Start, time.Time{}, model.StartValue(newTime)); err != nil {
		t.Fatal(err)
	}

	after := c.Events()
	if len(after) != 5 {
		t.Fatalf("store holds %d events, want 5", len(after))
	}

	var oldLineage, newLineage []model.Event
	for _, e := range after {
		if e.SeriesID == originalID {
			oldLineage = append(oldLineage, e)
		} else {
			newLineage = append(newLineage, e)
		}
	}
	if len(oldLineage) != 2 || len(newLineage) != 3 {
		t.Fatalf("split = %d old + %d new, want 2 + 3", len(oldLineage), len(newLineage))
	}

	newID := newLineage[0].SeriesID
	if newID == "" || newID == originalID {
		t.Fatal("edited tail must carry a fresh series id")
	}
	for i, e := range newLineage {
		if e.SeriesID != newID {
			t.Fatal("edited tail must share one series id")
		}
		// Time-of-day applied, own date preserved.
		wantDate := pivot.Start.AddDate(0, 0, i)
		if !model.SameDate(e.Start, wantDate) {
			t.Errorf("occurrence date changed: %v", e.Start)
		}
		if h, m, _ := e.Start.Clock(); h != 14 || m != 0 {
			t.Errorf("occurrence clock = %02d:%02d, want 14:00", h, m)
		}
	}
	for _, e := range oldLineage {
		if h, _, _ := e.Start.Clock(); h != 10 {
			t.Error("earlier lineage must keep its original time")
		}
	}
}

func TestEditAllKeepsSeriesID(t *testing.T) {
	c := New("work", time.UTC)
	events := weekdaySeries(t, c)
	originalID := events[0].SeriesID
	pivot := events[2]

	newTime := model.NewDateTime(2024, time.April, 3, 14, 0)
	if err := c.EditAllInSeries(pivot.Subject, pivot.Start, time.Time{}, model.StartValue(newTime)); err != nil {
		t.Fatal(err)
	}

	for i, e := range c.Events() {
		if e.SeriesID != originalID {
			t.Fatal("all scope must keep the original series id even for start edits")
		}
		if h, _, _ := e.Start.Clock(); h != 14 {
			t.Errorf("occurrence %d clock hour = %d, want 14", i, h)
		}
		if !model.SameDate(e.Start, events[i].Start) {
			t.Errorf("occurrence %d date changed", i)
		}
	}
}

func TestEditFromNonTemporalKeepsID(t *testing.T) {
	c := New("work", time.UTC)
	events := weekdaySeries(t, c)
	originalID := events[0].SeriesID
	pivot := events[3]

	if err := c.EditEventsFrom(pivot.Subject, pivot.Start, time.Time{}, model.SubjectValue("sync")); err != nil {
		t.Fatal(err)
	}

	renamed := 0
	for _, e := range c.Events() {
		if e.SeriesID != originalID {
			t.Fatal("non-temporal from edit must not split the series")
		}
		if e.Subject == "sync" {
			renamed++
		}
	}
	if renamed != 2 {
		t.Fatalf("%d events renamed, want the 2 selected", renamed)
	}
}

func TestEditStandaloneFromActsAsSingle(t *testing.T) {
	c := New("work", time.UTC)
	e := testEvent("solo", 4, 9, 10)
	mustAdd(t, c, e)

	// For a standalone target the full datetime is applied, date included.
	newStart := model.NewDateTime(2024, time.April, 2, 13, 0)
	if err := c.EditEventsFrom("solo", e.Start, time.Time{}, model.StartValue(newStart)); err != nil {
		t.Fatal(err)
	}
	got := c.Events()[0]
	if !got.Start.Equal(newStart) {
		t.Fatalf("start = %v, want full value %v", got.Start, newStart)
	}
}

func TestScopedLookup(t *testing.T) {
	c := New("work", time.UTC)
	events := weekdaySeries(t, c)
	member := events[0]

	// A standalone event sharing (subject, start) with a series member:
	// the series member wins.
	standalone := model.Event{
		Subject: member.Subject,
		Start:   member.Start,
		End:     member.End.Add(time.Hour),
	}
	mustAdd(t, c, standalone)

	if err := c.EditEventsFrom(member.Subject, member.Start, time.Time{}, model.DescriptionValue("series edit")); err != nil {
		t.Fatal(err)
	}
	for _, e := range c.Events() {
		if e.Same(standalone) && e.Description != "" {
			t.Fatal("standalone event must lose to the series member in scoped lookup")
		}
		if e.Same(member) && e.Description != "series edit" {
			t.Fatal("series member must be the edit target")
		}
	}

	// Two standalone candidates are ambiguous.
	c2 := New("work2", time.UTC)
	mustAdd(t, c2, testEvent("x", 5, 10, 11), testEvent("x", 5, 10, 12))
	err := c2.EditEventsFrom("x", model.NewDateTime(2024, time.April, 5, 10, 0), time.Time{}, model.DescriptionValue("d"))
	if !errors.Is(err, model.ErrAmbiguousEvent) {
		t.Fatalf("want ErrAmbiguousEvent, got %v", err)
	}

	// A non-zero end narrows to one.
	err = c2.EditEventsFrom("x", model.NewDateTime(2024, time.April, 5, 10, 0), model.NewDateTime(2024, time.April, 5, 11, 0), model.DescriptionValue("d"))
	if err != nil {
		t.Fatal(err)
	}

	err = c2.EditEventsFrom("ghost", model.NewDateTime(2024, time.April, 5, 10, 0), time.Time{}, model.DescriptionValue("d"))
	if !errors.Is(err, model.ErrEventNotFound) {
		t.Fatalf("want ErrEventNotFound, got %v", err)
	}
}

func TestEditBatchAtomicOnCollision(t *testing.T) {
	c := New("work", time.UTC)
	events := weekdaySeries(t, c)

	// Block the edited position of the second occurrence.
	blocker := model.Event{
		Subject: "standup",
		Start:   model.WithTimeOfDay(events[1].Start, model.NewDateTime(2024, time.April, 1, 14, 0)),
		End:     events[1].End,
	}
	mustAdd(t, c, blocker)

	err := c.EditAllInSeries("standup", events[0].Start, events[0].End, model.StartValue(model.NewDateTime(2024, time.April, 1, 14, 0)))
	if !errors.Is(err, model.ErrDuplicateEvent) {
		t.Fatalf("want ErrDuplicateEvent, got %v", err)
	}
	// No member may have moved.
	if c.Len() != 6 {
		t.Fatalf("store holds %d events, want 6", c.Len())
	}
	expected := map[model.EventKey]bool{blocker.Key(): true}
	for _, e := range events {
		expected[e.Key()] = true
	}
	for _, e := range c.Events() {
		if !expected[e.Key()] {
			t.Fatalf("failed batch edit must leave the store unchanged, found %v", e.Start)
		}
	}
}

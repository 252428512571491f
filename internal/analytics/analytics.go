// Package analytics computes an aggregate summary over a calendar's
// events for a date interval. Generation is a pure function; the
// resulting Summary is an immutable snapshot.
package analytics

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"civcal/internal/model"
)

// NoSubject is the bucket for events with an empty or blank subject.
const NoSubject = "(no subject)"

// Summary is an immutable aggregate over the events selected by a date
// interval. Map-valued accessors return defensive copies.
type Summary struct {
	total     int
	bySubject map[string]int
	byWeekday map[time.Weekday]int
	byWeek    map[int]int
	byMonth   map[time.Month]int
	byDay     map[time.Time]int
	avgPerDay float64
	busiest   time.Time
	leastBusy time.Time
	online    int
	offline   int
}

// Generate selects the events whose [start, end) overlaps the half-open
// window [startDate@00:00, endDate+1d@00:00) and aggregates them. Each
// selected event is keyed by its start date.
func Generate(events []model.Event, startDate, endDate time.Time) (*Summary, error) {
	if startDate.IsZero() || endDate.IsZero() {
		return nil, fmt.Errorf("analytics: missing interval bound: %w", model.ErrInvalidRange)
	}
	first := model.DateOf(startDate)
	last := model.DateOf(endDate)
	if last.Before(first) {
		return nil, fmt.Errorf("analytics: %s..%s: %w", first.Format(model.DateLayout), last.Format(model.DateLayout), model.ErrInvalidRange)
	}

	s := &Summary{
		bySubject: make(map[string]int),
		byWeekday: make(map[time.Weekday]int),
		byWeek:    make(map[int]int),
		byMonth:   make(map[time.Month]int),
		byDay:     make(map[time.Time]int),
	}

	windowEnd := last.AddDate(0, 0, 1)
	for _, e := range events {
		if !e.Overlaps(first, windowEnd) {
			continue
		}
		s.total++

		subject := strings.TrimSpace(e.Subject)
		if subject == "" {
			subject = NoSubject
		}
		s.bySubject[subject]++

		day := model.DateOf(e.Start)
		s.byDay[day]++
		s.byWeekday[e.Start.Weekday()]++
		s.byWeek[weekIndex(first, day)]++
		s.byMonth[e.Start.Month()]++

		if isOnline(e.Location) {
			s.online++
		} else {
			s.offline++
		}
	}

	days := model.DaysBetween(first, last) + 1
	s.avgPerDay = float64(s.total) / float64(days)
	s.busiest, s.leastBusy = extremalDays(s.byDay)
	return s, nil
}

// weekIndex is the 1-based week bucket of a day relative to the interval
// start, using floor division so days before the start stay consistent.
func weekIndex(first, day time.Time) int {
	d := model.DaysBetween(first, day)
	if d < 0 {
		return (d-6)/7 + 1
	}
	return d/7 + 1
}

func isOnline(location string) bool {
	return strings.EqualFold(strings.TrimSpace(location), "online")
}

// extremalDays picks the busiest and least-busy days, iterating candidate
// days in chronological order so ties go to the earliest date.
func extremalDays(byDay map[time.Time]int) (busiest, leastBusy time.Time) {
	if len(byDay) == 0 {
		return time.Time{}, time.Time{}
	}
	days := make([]time.Time, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	busiest, leastBusy = days[0], days[0]
	for _, day := range days[1:] {
		if byDay[day] > byDay[busiest] {
			busiest = day
		}
		if byDay[day] < byDay[leastBusy] {
			leastBusy = day
		}
	}
	return busiest, leastBusy
}

func (s *Summary) TotalEvents() int {
	return s.total
}

func (s *Summary) AveragePerDay() float64 {
	return s.avgPerDay
}

// BusiestDay returns the day with the most events; ok is false when no
// event was selected.
func (s *Summary) BusiestDay() (day time.Time, ok bool) {
	return s.busiest, !s.busiest.IsZero()
}

// LeastBusyDay returns the day with the fewest events among days that
// have any; ok is false when no event was selected.
func (s *Summary) LeastBusyDay() (day time.Time, ok bool) {
	return s.leastBusy, !s.leastBusy.IsZero()
}

func (s *Summary) OnlineEvents() int {
	return s.online
}

func (s *Summary) OfflineEvents() int {
	return s.offline
}

func (s *Summary) EventsBySubject() map[string]int {
	return copyMap(s.bySubject)
}

func (s *Summary) EventsByWeekday() map[time.Weekday]int {
	return copyMap(s.byWeekday)
}

func (s *Summary) EventsByWeek() map[int]int {
	return copyMap(s.byWeek)
}

func (s *Summary) EventsByMonth() map[time.Month]int {
	return copyMap(s.byMonth)
}

func (s *Summary) EventsByDay() map[time.Time]int {
	return copyMap(s.byDay)
}

func copyMap[K comparable](m map[K]int) map[K]int {
	out := make(map[K]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

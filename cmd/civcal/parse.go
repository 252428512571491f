package main

import (
	"fmt"
	"strings"
	"time"

	"civcal/internal/model"
)

// parseFieldValue maps a property name and its raw string onto the typed
// value the core expects.
func parseFieldValue(property, raw string) (model.FieldValue, error) {
	switch model.Property(property) {
	case model.PropertySubject:
		return model.SubjectValue(raw), nil
	case model.PropertyStart:
		t, err := parseDateTime(raw)
		if err != nil {
			return model.FieldValue{}, err
		}
		return model.StartValue(t), nil
	case model.PropertyEnd:
		t, err := parseDateTime(raw)
		if err != nil {
			return model.FieldValue{}, err
		}
		return model.EndValue(t), nil
	case model.PropertyDescription:
		return model.DescriptionValue(raw), nil
	case model.PropertyLocation:
		return model.LocationValue(raw), nil
	case model.PropertyStatus:
		status, err := model.ParseStatus(strings.ToUpper(raw))
		if err != nil {
			return model.FieldValue{}, err
		}
		return model.StatusValue(status), nil
	}
	return model.FieldValue{}, fmt.Errorf("property %q: %w", property, model.ErrUnknownProperty)
}

func parseDateTime(raw string) (time.Time, error) {
	t, err := time.ParseInLocation(model.DateTimeLayout, raw, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("datetime %q: %w", raw, err)
	}
	return t, nil
}

func parseDate(raw string) (time.Time, error) {
	t, err := time.ParseInLocation(model.DateLayout, raw, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q: %w", raw, err)
	}
	return t, nil
}

var weekdayNames = map[string]time.Weekday{
	"MON": time.Monday,
	"TUE": time.Tuesday,
	"WED": time.Wednesday,
	"THU": time.Thursday,
	"FRI": time.Friday,
	"SAT": time.Saturday,
	"SUN": time.Sunday,
}

// parseWeekdays reads a comma-separated weekday list, e.g. "MON,WED".
func parseWeekdays(raw string) ([]time.Weekday, error) {
	var out []time.Weekday
	for _, part := range strings.Split(raw, ",") {
		day, ok := weekdayNames[strings.ToUpper(strings.TrimSpace(part))]
		if !ok {
			return nil, fmt.Errorf("unknown weekday %q", part)
		}
		out = append(out, day)
	}
	return out, nil
}

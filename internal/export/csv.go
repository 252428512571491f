package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"civcal/internal/model"
)

const (
	csvDateLayout = "01/02/2006"
	csvTimeLayout = "03:04 PM"
)

var csvHeader = []string{
	"Subject", "Start Date", "Start Time", "End Date", "End Time",
	"All Day Event", "Description", "Location", "Private",
}

// WriteCSV serializes the events in the spreadsheet-import column layout.
func WriteCSV(w io.Writer, events []model.Event) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("export csv: %w", err)
	}
	for _, e := range events {
		record := []string{
			e.Subject,
			e.Start.Format(csvDateLayout),
			e.Start.Format(csvTimeLayout),
			e.End.Format(csvDateLayout),
			e.End.Format(csvTimeLayout),
			boolCell(e.IsAllDay()),
			e.Description,
			e.Location,
			boolCell(e.Status == model.StatusPrivate),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("export csv: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("export csv: %w", err)
	}
	return nil
}

func boolCell(v bool) string {
	if v {
		return "True"
	}
	return "False"
}

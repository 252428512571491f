package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"civcal/internal/calendar"
	"civcal/internal/export"
	"civcal/internal/model"
	"civcal/internal/series"
)

// runShell reads line commands until EOF or quit. The shell is a thin
// adapter: it parses arguments into typed values and prints results; all
// semantics live in the calendar packages.
func runShell(manager *calendar.Manager, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	fmt.Fprintln(out, "civcal shell (type 'help' for commands)")

	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}
		args := strings.Fields(scanner.Text())
		if len(args) == 0 {
			continue
		}
		if args[0] == "quit" || args[0] == "exit" {
			break
		}
		if err := dispatch(manager, out, args[0], args[1:]); err != nil {
			fmt.Fprintln(out, "error:", err)
		}
	}
	return scanner.Err()
}

func dispatch(manager *calendar.Manager, out io.Writer, cmd string, args []string) error {
	switch cmd {
	case "help":
		printHelp(out)
		return nil
	case "create":
		if len(args) != 2 {
			return fmt.Errorf("usage: create <name> <timezone>")
		}
		return manager.CreateCalendar(args[0], args[1])
	case "use":
		if len(args) != 1 {
			return fmt.Errorf("usage: use <name>")
		}
		return manager.UseCalendar(args[0])
	case "calendars":
		for _, name := range manager.CalendarNames() {
			fmt.Fprintln(out, name)
		}
		return nil
	case "add":
		return cmdAdd(manager, args)
	case "series":
		return cmdSeries(manager, args)
	case "remove", "removefrom", "removeall":
		return cmdRemove(manager, cmd, args)
	case "edit":
		return cmdEdit(manager, args)
	case "on":
		return cmdOn(manager, out, args)
	case "range":
		return cmdRange(manager, out, args)
	case "busy":
		return cmdBusy(manager, out, args)
	case "analytics":
		return cmdAnalytics(manager, out, args)
	case "copy":
		return cmdCopy(manager, args)
	case "copyday":
		return cmdCopyDay(manager, args)
	case "copyrange":
		return cmdCopyRange(manager, args)
	case "export":
		return cmdExport(manager, args)
	}
	return fmt.Errorf("unknown command %q", cmd)
}

func cmdAdd(manager *calendar.Manager, args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("usage: add <subject> <start> <end> [location]")
	}
	cal, err := manager.Current()
	if err != nil {
		return err
	}
	start, err := parseDateTime(args[1])
	if err != nil {
		return err
	}
	end, err := parseDateTime(args[2])
	if err != nil {
		return err
	}
	e := model.Event{Subject: args[0], Start: start, End: end, Status: model.StatusPublic}
	if len(args) > 3 {
		e.Location = strings.Join(args[3:], " ")
	}
	return cal.Add(e)
}

func cmdSeries(manager *calendar.Manager, args []string) error {
	if len(args) != 6 {
		return fmt.Errorf("usage: series <subject> <start> <end> <weekdays> count <n> | until <date>")
	}
	cal, err := manager.Current()
	if err != nil {
		return err
	}
	start, err := parseDateTime(args[1])
	if err != nil {
		return err
	}
	end, err := parseDateTime(args[2])
	if err != nil {
		return err
	}
	weekdays, err := parseWeekdays(args[3])
	if err != nil {
		return err
	}
	s := series.Series{
		Subject:  args[0],
		Start:    start,
		End:      end,
		Weekdays: weekdays,
		Status:   model.StatusPublic,
	}
	switch args[4] {
	case "count":
		n, err := strconv.Atoi(args[5])
		if err != nil {
			return fmt.Errorf("count %q: %w", args[5], err)
		}
		s.Count = n
	case "until":
		until, err := parseDate(args[5])
		if err != nil {
			return err
		}
		s.Until = until
	default:
		return fmt.Errorf("expected 'count' or 'until', got %q", args[4])
	}
	return cal.AddSeries(s)
}

func cmdRemove(manager *calendar.Manager, cmd string, args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("usage: %s <subject> <start> <end>", cmd)
	}
	cal, err := manager.Current()
	if err != nil {
		return err
	}
	start, err := parseDateTime(args[1])
	if err != nil {
		return err
	}
	end, err := parseDateTime(args[2])
	if err != nil {
		return err
	}
	target, found := findExact(cal, args[0], start, end)
	if !found {
		return fmt.Errorf("remove %q: %w", args[0], model.ErrEventNotFound)
	}
	switch cmd {
	case "removefrom":
		cal.RemoveFromSeries(target)
	case "removeall":
		cal.RemoveAllInSeries(target)
	default:
		cal.Remove(target)
	}
	return nil
}

func cmdEdit(manager *calendar.Manager, args []string) error {
	if len(args) < 5 {
		return fmt.Errorf("usage: edit single|from|all <property> <subject> <start> <value>")
	}
	cal, err := manager.Current()
	if err != nil {
		return err
	}
	scope, prop, subject := args[0], args[1], args[2]
	start, err := parseDateTime(args[3])
	if err != nil {
		return err
	}
	value, err := parseFieldValue(prop, strings.Join(args[4:], " "))
	if err != nil {
		return err
	}

	switch scope {
	case "single":
		// Single scope needs the full identity triple; resolve end by
		// unique (subject, start) match.
		target, err := findByStart(cal, subject, start)
		if err != nil {
			return err
		}
		return cal.EditEvent(subject, start, target.End, value)
	case "from":
		return cal.EditEventsFrom(subject, start, time.Time{}, value)
	case "all":
		return cal.EditAllInSeries(subject, start, time.Time{}, value)
	}
	return fmt.Errorf("unknown scope %q", scope)
}

func cmdOn(manager *calendar.Manager, out io.Writer, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: on <date>")
	}
	cal, err := manager.Current()
	if err != nil {
		return err
	}
	date, err := parseDate(args[0])
	if err != nil {
		return err
	}
	printEvents(out, cal.EventsOn(date))
	return nil
}

func cmdRange(manager *calendar.Manager, out io.Writer, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: range <from> <to>")
	}
	cal, err := manager.Current()
	if err != nil {
		return err
	}
	from, err := parseDateTime(args[0])
	if err != nil {
		return err
	}
	to, err := parseDateTime(args[1])
	if err != nil {
		return err
	}
	events, err := cal.EventsInRange(from, to)
	if err != nil {
		return err
	}
	printEvents(out, events)
	return nil
}

func cmdBusy(manager *calendar.Manager, out io.Writer, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: busy <datetime>")
	}
	cal, err := manager.Current()
	if err != nil {
		return err
	}
	at, err := parseDateTime(args[0])
	if err != nil {
		return err
	}
	if cal.IsBusy(at) {
		fmt.Fprintln(out, "busy")
	} else {
		fmt.Fprintln(out, "available")
	}
	return nil
}

func cmdAnalytics(manager *calendar.Manager, out io.Writer, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: analytics <from> <to>")
	}
	cal, err := manager.Current()
	if err != nil {
		return err
	}
	from, err := parseDate(args[0])
	if err != nil {
		return err
	}
	to, err := parseDate(args[1])
	if err != nil {
		return err
	}
	summary, err := cal.GenerateAnalytics(from, to)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "events: %d (online %d, offline %d)\n",
		summary.TotalEvents(), summary.OnlineEvents(), summary.OfflineEvents())
	fmt.Fprintf(out, "average per day: %.2f\n", summary.AveragePerDay())
	if day, ok := summary.BusiestDay(); ok {
		fmt.Fprintf(out, "busiest day: %s\n", day.Format(model.DateLayout))
	}
	if day, ok := summary.LeastBusyDay(); ok {
		fmt.Fprintf(out, "least busy day: %s\n", day.Format(model.DateLayout))
	}
	return nil
}

func cmdCopy(manager *calendar.Manager, args []string) error {
	if len(args) != 4 {
		return fmt.Errorf("usage: copy <subject> <start> <target> <targetStart>")
	}
	start, err := parseDateTime(args[1])
	if err != nil {
		return err
	}
	targetStart, err := parseDateTime(args[3])
	if err != nil {
		return err
	}
	return manager.CopyEvent(args[0], start, args[2], targetStart)
}

func cmdCopyDay(manager *calendar.Manager, args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("usage: copyday <date> <target> <targetDate>")
	}
	date, err := parseDate(args[0])
	if err != nil {
		return err
	}
	targetDate, err := parseDate(args[2])
	if err != nil {
		return err
	}
	return manager.CopyEventsOnDate(date, args[1], targetDate)
}

func cmdCopyRange(manager *calendar.Manager, args []string) error {
	if len(args) != 4 {
		return fmt.Errorf("usage: copyrange <from> <to> <target> <targetDate>")
	}
	from, err := parseDate(args[0])
	if err != nil {
		return err
	}
	to, err := parseDate(args[1])
	if err != nil {
		return err
	}
	targetDate, err := parseDate(args[3])
	if err != nil {
		return err
	}
	return manager.CopyEventsBetween(from, to, args[2], targetDate)
}

func cmdExport(manager *calendar.Manager, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: export csv|ics <path>")
	}
	cal, err := manager.Current()
	if err != nil {
		return err
	}
	f, err := os.Create(args[1])
	if err != nil {
		return err
	}
	defer f.Close()

	switch args[0] {
	case "csv":
		return export.WriteCSV(f, cal.Events())
	case "ics":
		return export.WriteICal(f, cal.Name(), cal.Events())
	}
	return fmt.Errorf("unknown export format %q", args[0])
}

func findExact(cal *calendar.Calendar, subject string, start, end time.Time) (model.Event, bool) {
	for _, e := range cal.Events() {
		if e.Subject == subject && e.Start.Equal(start) && e.End.Equal(end) {
			return e, true
		}
	}
	return model.Event{}, false
}

func findByStart(cal *calendar.Calendar, subject string, start time.Time) (model.Event, error) {
	var matches []model.Event
	for _, e := range cal.Events() {
		if e.Subject == subject && e.Start.Equal(start) {
			matches = append(matches, e)
		}
	}
	if len(matches) == 0 {
		return model.Event{}, fmt.Errorf("%q at %s: %w", subject, start.Format(model.DateTimeLayout), model.ErrEventNotFound)
	}
	if len(matches) > 1 {
		return model.Event{}, fmt.Errorf("%q at %s: %w", subject, start.Format(model.DateTimeLayout), model.ErrAmbiguousEvent)
	}
	return matches[0], nil
}

func printEvents(out io.Writer, events []model.Event) {
	for _, e := range events {
		line := fmt.Sprintf("%s - %s  %s",
			e.Start.Format(model.DateTimeLayout),
			e.End.Format(model.DateTimeLayout),
			e.Subject,
		)
		if e.Location != "" {
			line += " @ " + e.Location
		}
		fmt.Fprintln(out, line)
	}
}

func printHelp(out io.Writer) {
	fmt.Fprint(out, `commands:
  create <name> <timezone>            register a calendar
  use <name>                          select the active calendar
  calendars                           list calendar names
  add <subject> <start> <end> [loc]   add a single event
  series <subj> <start> <end> <days> count <n> | until <date>
  remove|removefrom|removeall <subject> <start> <end>
  edit single|from|all <property> <subject> <start> <value>
  on <date> | range <from> <to> | busy <datetime>
  analytics <from> <to>
  copy <subject> <start> <target> <targetStart>
  copyday <date> <target> <targetDate>
  copyrange <from> <to> <target> <targetDate>
  export csv|ics <path>
  quit
datetimes use 2006-01-02T15:04, dates 2006-01-02, days e.g. MON,WED
`)
}

// Command example demonstrates expanding a small calendar: a weekly
// recurring event with one excluded occurrence and one rescheduled
// (overridden) occurrence, queried over a month window.
package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/cyp0633/libcalspan/calendar"
	"github.com/cyp0633/libcalspan/event"
	"github.com/cyp0633/libcalspan/interval"
	"github.com/emersion/go-ical"
	"github.com/teambition/rrule-go"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	master := event.New()
	master.SetUID("team-sync")
	master.SetSummary("Team sync")
	master.SetStart(time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC))
	master.SetEnd(time.Date(2025, 6, 2, 9, 30, 0, 0, time.UTC))
	master.SetRecurrence(rrule.ROption{Freq: rrule.WEEKLY})
	// Skip the June 16 occurrence entirely.
	master.SetExceptionDates(time.Date(2025, 6, 16, 9, 0, 0, 0, time.UTC))

	// Reschedule the June 9 occurrence to the afternoon.
	moved := event.New()
	moved.SetUID("team-sync")
	moved.SetSummary("Team sync (moved)")
	moved.SetRecurrenceID(time.Date(2025, 6, 9, 9, 0, 0, 0, time.UTC))
	moved.SetStart(time.Date(2025, 6, 9, 14, 0, 0, 0, time.UTC))
	moved.SetEnd(time.Date(2025, 6, 9, 14, 30, 0, 0, time.UTC))

	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, "-//libcalspan//example//EN")
	cal.Children = append(cal.Children, master.Component, moved.Component)

	june := interval.Interval{
		Start: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
	}

	occurrences, err := calendar.Events(cal, june, &event.ExpandOptions{Logger: logger})
	if err != nil {
		logger.Error("expansion failed", "error", err)
		os.Exit(1)
	}

	for _, occ := range occurrences {
		start, _ := occ.Start().Get()
		end, _ := occ.End().Get()
		summary := occ.Summary().OrElse("(untitled)")
		logger.Info("occurrence",
			"summary", summary,
			"start", start.Format(time.RFC3339),
			"end", end.Format(time.RFC3339),
		)
	}
}

package event

import (
	"time"

	"github.com/cyp0633/libcalspan/interval"
	"github.com/samber/mo"
)

// normalized is the canonical temporal state of an event: the raw,
// mutually-constrained properties reconciled into one span plus the
// resolved recurrence and exclusion sets.
type normalized struct {
	start    time.Time
	end      time.Time
	floating bool
	duration time.Duration
	span     interval.Interval

	recur   interval.Set // nil for a non-recurring event
	exRule  interval.Set // nil when absent
	exDates interval.Times

	uid          string
	recurrenceID mo.Option[time.Time]
}

// normalize reconciles the event's temporal properties. Fatal cases:
// PERIOD populated alongside DTSTART or DTEND, DTEND alongside
// DURATION, or no resolvable start. A missing end is legitimate (a
// floating event) and yields a degenerate span [start, start).
func (e *Event) normalize() (*normalized, error) {
	start := e.Start()
	end := e.End()
	duration := e.Duration()

	if p, ok := e.Period().Get(); ok {
		if start.IsPresent() || end.IsPresent() {
			return nil, &Error{
				Type:   ErrConflictingFields,
				Fields: []string{propPeriod, "DTSTART", "DTEND"},
				Event:  e,
			}
		}
		start = mo.Some(p.Start)
		end = mo.Some(p.End)
	}

	s, ok := start.Get()
	if !ok {
		return nil, &Error{Type: ErrMissingStart, Fields: []string{"DTSTART"}, Event: e}
	}

	if end.IsPresent() && duration.IsPresent() {
		return nil, &Error{
			Type:   ErrConflictingFields,
			Fields: []string{"DTEND", "DURATION"},
			Event:  e,
		}
	}
	if d, ok := duration.Get(); ok {
		end = mo.Some(s.Add(d))
	}

	n := &normalized{start: s}
	if en, ok := end.Get(); ok {
		n.end = en
	} else {
		n.floating = true
		n.end = s
	}
	n.span = interval.Interval{Start: n.start, End: n.end}
	n.duration = n.span.Duration()

	recur, err := e.Recurrence()
	if err != nil {
		return nil, err
	}
	if r, ok := recur.Get(); ok {
		n.recur = r
	}
	if rdate, ok := e.RecurrenceDates().Get(); ok {
		if n.recur != nil {
			n.recur = interval.Union(n.recur, rdate)
		} else {
			n.recur = rdate
		}
	}

	exRule, err := e.ExceptionRule()
	if err != nil {
		return nil, err
	}
	if x, ok := exRule.Get(); ok {
		n.exRule = x
	}
	if exDates, ok := e.ExceptionDates().Get(); ok {
		n.exDates = exDates
	}

	if uid, ok := e.UID().Get(); ok {
		n.uid = uid
	}
	n.recurrenceID = e.RecurrenceID()
	return n, nil
}

package event

import (
	"io"
	"log/slog"
	"time"

	"github.com/cyp0633/libcalspan/interval"
	"github.com/emersion/go-ical"
	"github.com/teambition/rrule-go"
)

// ExpandOptions controls recurrence expansion. A nil *ExpandOptions
// means DefaultExpandOptions.
type ExpandOptions struct {
	// Period, when set, fragments every emitted instance into
	// consecutive sub-period instances of this granularity.
	Period *rrule.Frequency

	// MaxOccurrences caps how many occurrences a single event may emit
	// for one query. Zero means the default cap.
	MaxOccurrences int

	// Logger receives expansion diagnostics. Nil discards them.
	Logger *slog.Logger
}

// DefaultExpandOptions provides sensible defaults for expansion.
var DefaultExpandOptions = ExpandOptions{
	MaxOccurrences: 1000,
}

func (o *ExpandOptions) resolved() ExpandOptions {
	out := DefaultExpandOptions
	if o != nil {
		out = *o
	}
	if out.MaxOccurrences <= 0 {
		out.MaxOccurrences = DefaultExpandOptions.MaxOccurrences
	}
	if out.Logger == nil {
		out.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return out
}

// Explode expands the event against the query span into concrete,
// independent instances in ascending start order.
//
// A non-recurring event whose span overlaps the query yields exactly one
// instance. A recurring event yields one instance per occurrence inside
// the query span that is excluded by neither the exception rule nor the
// exception dates; every instance has the master's normalized duration,
// not a span-clipped one. Each instance is a deep clone carrying only
// start and end (recurrence properties, duration and period are
// stripped), inherits the all-day encoding, and points back at the
// master via Original. The source event is never mutated.
func (e *Event) Explode(span interval.Interval, opts *ExpandOptions) ([]*Event, error) {
	o := opts.resolved()
	n, err := e.normalize()
	if err != nil {
		return nil, err
	}

	var out []*Event
	if n.recur == nil {
		if n.span.Overlaps(span) {
			out = append(out, e.instance(n.start, n.end, n.floating, e.AllDay()))
		}
	} else {
		occurrences := n.recur.Between(span)
		if len(occurrences) > o.MaxOccurrences {
			o.Logger.Warn("expansion hit occurrence cap",
				"uid", n.uid,
				"cap", o.MaxOccurrences,
			)
			occurrences = occurrences[:o.MaxOccurrences]
		}
		allDay := e.AllDay()
		for _, dt := range occurrences {
			if n.exRule != nil && n.exRule.Contains(dt) {
				continue
			}
			if n.exDates != nil && n.exDates.Contains(dt) {
				continue
			}
			out = append(out, e.instance(dt, dt.Add(n.duration), n.floating, allDay))
		}
	}

	if o.Period == nil {
		return out, nil
	}
	var split []*Event
	for _, inst := range out {
		fragments, err := inst.SplitUp(*o.Period)
		if err != nil {
			return nil, err
		}
		split = append(split, fragments...)
	}
	return split, nil
}

// IsIn reports whether the event has any presence inside the query
// span: a non-recurring event whose span overlaps it, or a recurring
// event with at least one occurrence in it.
func (e *Event) IsIn(span interval.Interval) (bool, error) {
	n, err := e.normalize()
	if err != nil {
		return false, err
	}
	if n.recur == nil {
		return n.span.Overlaps(span), nil
	}
	return len(n.recur.Between(span)) > 0, nil
}

// instance produces one concrete expansion product: a deep clone with
// the recurrence machinery stripped and the given start/end written in.
func (e *Event) instance(start, end time.Time, floating, allDay bool) *Event {
	clone := e.Clone()
	for _, name := range []string{
		ical.PropRecurrenceRule,
		propExceptionRule,
		ical.PropRecurrenceDates,
		ical.PropExceptionDates,
		ical.PropDuration,
		propPeriod,
	} {
		clone.Props.Del(name)
	}
	clone.SetStart(start)
	if floating {
		clone.Props.Del(ical.PropDateTimeEnd)
	} else {
		clone.storeEnd(end, allDay)
	}
	clone.original = e
	return clone
}

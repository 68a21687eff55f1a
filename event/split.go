package event

import (
	"time"

	"github.com/teambition/rrule-go"
)

// SplitUp fragments a concrete (already expanded, non-recurring)
// instance into consecutive sub-period instances of the given
// granularity. Each fragment starts at a period boundary (the first at
// the instance's own start) and ends one nanosecond before the next
// boundary, except the final fragment, which ends exactly at the
// instance's end. Fragments never carry the all-day encoding. A
// floating or zero-width instance yields no fragments.
func (e *Event) SplitUp(period rrule.Frequency) ([]*Event, error) {
	n, err := e.normalize()
	if err != nil {
		return nil, err
	}
	if n.recur != nil {
		return nil, &Error{Type: ErrNotConcrete, Fields: []string{"RRULE", "RDATE"}, Event: e}
	}

	var out []*Event
	for dt := n.start; dt.Before(n.end); dt = advancePeriod(truncatePeriod(dt, period), period) {
		fragEnd := advancePeriod(truncatePeriod(dt, period), period).Add(-time.Nanosecond)
		out = append(out, e.instance(dt, fragEnd, false, false))
	}
	if len(out) > 0 {
		out[len(out)-1].storeEnd(n.end, false)
	}
	return out, nil
}

// truncatePeriod returns the start of the period containing t. Weeks
// start on Monday, matching the recurrence library's default week
// start.
func truncatePeriod(t time.Time, period rrule.Frequency) time.Time {
	switch period {
	case rrule.YEARLY:
		return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
	case rrule.MONTHLY:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	case rrule.WEEKLY:
		day := truncateDay(t)
		offset := (int(day.Weekday()) + 6) % 7
		return day.AddDate(0, 0, -offset)
	case rrule.DAILY:
		return truncateDay(t)
	case rrule.HOURLY:
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location())
	case rrule.MINUTELY:
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, t.Location())
	default:
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, t.Location())
	}
}

// advancePeriod moves t forward by one period, using calendar
// arithmetic for date-based granularities.
func advancePeriod(t time.Time, period rrule.Frequency) time.Time {
	switch period {
	case rrule.YEARLY:
		return t.AddDate(1, 0, 0)
	case rrule.MONTHLY:
		return t.AddDate(0, 1, 0)
	case rrule.WEEKLY:
		return t.AddDate(0, 0, 7)
	case rrule.DAILY:
		return t.AddDate(0, 0, 1)
	case rrule.HOURLY:
		return t.Add(time.Hour)
	case rrule.MINUTELY:
		return t.Add(time.Minute)
	default:
		return t.Add(time.Second)
	}
}

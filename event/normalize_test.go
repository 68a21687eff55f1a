package event

import (
	"testing"
	"time"

	"github.com/cyp0633/libcalspan/interval"
	"github.com/emersion/go-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teambition/rrule-go"
)

func TestNormalize_DurationRoundTrip(t *testing.T) {
	start := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	duration := 90 * time.Minute

	ev := New()
	ev.SetStart(start)
	ev.SetDuration(duration)

	n, err := ev.normalize()
	require.NoError(t, err)

	assert.True(t, start.Add(duration).Equal(n.end))
	assert.Equal(t, duration, n.duration, "canonical duration is recomputed from the span")
	assert.False(t, n.floating)
}

func TestNormalize_PeriodSetsBounds(t *testing.T) {
	iv := interval.Interval{
		Start: time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 6, 2, 17, 0, 0, 0, time.UTC),
	}
	ev := New()
	ev.SetPeriod(iv)

	n, err := ev.normalize()
	require.NoError(t, err)

	assert.True(t, iv.Start.Equal(n.start))
	assert.True(t, iv.End.Equal(n.end))
	assert.Equal(t, 8*time.Hour, n.duration)
}

func TestNormalize_PeriodConflictsWithStart(t *testing.T) {
	ev := New()
	ev.SetPeriod(interval.Interval{
		Start: time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 6, 2, 17, 0, 0, 0, time.UTC),
	})
	// SetPeriod clears DTSTART, so plant one behind its back.
	ev.SetStart(time.Date(2025, 6, 3, 9, 0, 0, 0, time.UTC))

	_, err := ev.normalize()
	var evErr *Error
	require.ErrorAs(t, err, &evErr)
	assert.Equal(t, ErrConflictingFields, evErr.Type)
	assert.Contains(t, evErr.Fields, propPeriod)
	assert.Same(t, ev, evErr.Event)
}

func TestNormalize_EndConflictsWithDuration(t *testing.T) {
	ev := New()
	ev.SetStart(time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC))
	ev.SetEnd(time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC))
	// The setters enforce exclusivity, so inject DURATION directly.
	prop := ical.NewProp(ical.PropDuration)
	prop.SetDuration(time.Hour)
	ev.Props.Add(prop)

	_, err := ev.normalize()
	var evErr *Error
	require.ErrorAs(t, err, &evErr)
	assert.Equal(t, ErrConflictingFields, evErr.Type)
	assert.Equal(t, []string{"DTEND", "DURATION"}, evErr.Fields)
}

func TestNormalize_MissingStartIsFatal(t *testing.T) {
	ev := New()
	ev.SetSummary("no temporal fields at all")

	_, err := ev.normalize()
	var evErr *Error
	require.ErrorAs(t, err, &evErr)
	assert.Equal(t, ErrMissingStart, evErr.Type)
}

func TestNormalize_FloatingEvent(t *testing.T) {
	start := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	ev := New()
	ev.SetStart(start)

	n, err := ev.normalize()
	require.NoError(t, err)

	assert.True(t, n.floating)
	assert.Equal(t, time.Duration(0), n.duration)
	assert.True(t, n.span.IsDegenerate())
	assert.True(t, start.Equal(n.span.Start))
}

func TestNormalize_RDateMergesIntoRecurrence(t *testing.T) {
	start := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	extra := time.Date(2025, 6, 5, 9, 0, 0, 0, time.UTC)

	ev := New()
	ev.SetStart(start)
	ev.SetEnd(start.Add(time.Hour))
	ev.SetRecurrence(rrule.ROption{Freq: rrule.WEEKLY, Count: 2})
	ev.SetRecurrenceDates(extra)

	n, err := ev.normalize()
	require.NoError(t, err)
	require.NotNil(t, n.recur)

	month := interval.Interval{Start: start.AddDate(0, 0, -1), End: start.AddDate(0, 1, 0)}
	got := n.recur.Between(month)
	assert.Equal(t, []time.Time{start, extra, start.AddDate(0, 0, 7)}, got)
}

func TestNormalize_RDateAloneIsTheRecurrence(t *testing.T) {
	start := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	extra := time.Date(2025, 6, 5, 9, 0, 0, 0, time.UTC)

	ev := New()
	ev.SetStart(start)
	ev.SetEnd(start.Add(time.Hour))
	ev.SetRecurrenceDates(start, extra)

	n, err := ev.normalize()
	require.NoError(t, err)
	require.NotNil(t, n.recur)
	assert.True(t, n.recur.Contains(extra))
}

func TestNormalize_MalformedRuleIsAnError(t *testing.T) {
	ev := New()
	ev.SetStart(time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC))
	prop := ical.NewProp(ical.PropRecurrenceRule)
	prop.Value = "FREQ=BOGUS"
	ev.Props.Add(prop)

	_, err := ev.normalize()
	assert.Error(t, err)
}

package calendar

import (
	"testing"
	"time"

	"github.com/cyp0633/libcalspan/event"
	"github.com/cyp0633/libcalspan/interval"
	"github.com/emersion/go-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teambition/rrule-go"
)

func newCalendar(events ...*event.Event) *ical.Calendar {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, "-//libcalspan//test//EN")
	for _, ev := range events {
		cal.Children = append(cal.Children, ev.Component)
	}
	return cal
}

func june() interval.Interval {
	return interval.Interval{
		Start: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
	}
}

func starts(t *testing.T, occurrences []*event.Event) []time.Time {
	t.Helper()
	out := make([]time.Time, len(occurrences))
	for i, occ := range occurrences {
		s, ok := occ.Start().Get()
		require.True(t, ok)
		out[i] = s
	}
	return out
}

func TestEvents_RecurrenceIDOverride(t *testing.T) {
	base := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

	master := event.New()
	master.SetUID("team-sync")
	master.SetSummary("Team sync")
	master.SetStart(base)
	master.SetEnd(base.Add(30 * time.Minute))
	master.SetRecurrence(rrule.ROption{Freq: rrule.WEEKLY, Count: 4})

	third := base.AddDate(0, 0, 14)
	moved := event.New()
	moved.SetUID("team-sync")
	moved.SetSummary("Team sync (moved)")
	moved.SetRecurrenceID(third)
	moved.SetStart(third.Add(5 * time.Hour))
	moved.SetEnd(third.Add(5*time.Hour + 30*time.Minute))

	got, err := Events(newCalendar(master, moved), june(), nil)
	require.NoError(t, err)
	require.Len(t, got, 4)

	assert.Equal(t, []time.Time{
		base,
		base.AddDate(0, 0, 7),
		third.Add(5 * time.Hour),
		base.AddDate(0, 0, 21),
	}, starts(t, got))

	summary, _ := got[2].Summary().Get()
	assert.Equal(t, "Team sync (moved)", summary)
	for _, i := range []int{0, 1, 3} {
		summary, _ := got[i].Summary().Get()
		assert.Equal(t, "Team sync", summary)
	}
}

func TestEvents_OverrideOutsideSpanIsIgnored(t *testing.T) {
	base := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

	master := event.New()
	master.SetUID("team-sync")
	master.SetStart(base)
	master.SetEnd(base.Add(time.Hour))
	master.SetRecurrence(rrule.ROption{Freq: rrule.WEEKLY, Count: 2})

	// Override for an occurrence far beyond the query window.
	late := event.New()
	late.SetUID("team-sync")
	late.SetRecurrenceID(base.AddDate(1, 0, 0))
	late.SetStart(base.AddDate(1, 0, 0))
	late.SetEnd(base.AddDate(1, 0, 0).Add(time.Hour))

	got, err := Events(newCalendar(master, late), june(), nil)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestEvents_MissingUIDGetsPlaceholder(t *testing.T) {
	base := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

	a := event.New()
	a.SetStart(base)
	a.SetEnd(base.Add(time.Hour))

	b := event.New()
	b.SetStart(base.AddDate(0, 0, 1))
	b.SetEnd(base.AddDate(0, 0, 1).Add(time.Hour))

	got, err := Events(newCalendar(a, b), june(), nil)
	require.NoError(t, err)
	assert.Len(t, got, 2, "entries without uid still expand, each under its own placeholder")
}

func TestEvents_NonEventEntriesIgnored(t *testing.T) {
	base := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

	ev := event.New()
	ev.SetUID("only")
	ev.SetStart(base)
	ev.SetEnd(base.Add(time.Hour))

	cal := newCalendar(ev)
	todo := ical.NewComponent(ical.CompToDo)
	todo.Props.SetText(ical.PropUID, "a-todo")
	cal.Children = append(cal.Children, todo)

	got, err := Events(cal, june(), nil)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestEvents_GroupsKeepEntryOrder(t *testing.T) {
	base := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

	second := event.New()
	second.SetUID("b")
	second.SetStart(base) // earlier than a's occurrences
	second.SetEnd(base.Add(time.Hour))

	first := event.New()
	first.SetUID("a")
	first.SetStart(base.AddDate(0, 0, 5))
	first.SetEnd(base.AddDate(0, 0, 5).Add(time.Hour))

	got, err := Events(newCalendar(first, second), june(), nil)
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Output is grouped by uid in entry order, not globally sorted.
	uid, _ := got[0].UID().Get()
	assert.Equal(t, "a", uid)
	uid, _ = got[1].UID().Get()
	assert.Equal(t, "b", uid)
}

func TestEvents_WithPeriodSplitsOccurrences(t *testing.T) {
	start := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	ev := event.New()
	ev.SetUID("long")
	ev.SetStart(start)
	ev.SetEnd(start.AddDate(0, 0, 2))

	day := rrule.DAILY
	got, err := Events(newCalendar(ev), june(), &event.ExpandOptions{Period: &day})
	require.NoError(t, err)
	require.Len(t, got, 2)

	end, ok := got[1].End().Get()
	require.True(t, ok)
	assert.True(t, start.AddDate(0, 0, 2).Equal(end))
}

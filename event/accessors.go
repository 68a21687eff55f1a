package event

import (
	"strings"
	"time"

	"github.com/cyp0633/libcalspan/interval"
	"github.com/emersion/go-ical"
	"github.com/samber/mo"
)

// Start returns the wall-clock start instant, or None when DTSTART is
// absent or unparsable.
func (e *Event) Start() mo.Option[time.Time] {
	prop := e.Props.Get(ical.PropDateTimeStart)
	if prop == nil {
		return mo.None[time.Time]()
	}
	t, err := prop.DateTime(time.UTC)
	if err != nil {
		return mo.None[time.Time]()
	}
	return mo.Some(t)
}

// SetStart replaces DTSTART.
func (e *Event) SetStart(t time.Time) {
	e.Props.Del(ical.PropDateTimeStart)
	prop := ical.NewProp(ical.PropDateTimeStart)
	prop.SetDateTime(t)
	e.Props.Set(prop)
}

// End returns the logical end instant. For an all-day event the stored
// DTEND is a date one day past the logical end date; the decoded value
// is that date's midnight minus one nanosecond.
func (e *Event) End() mo.Option[time.Time] {
	prop := e.Props.Get(ical.PropDateTimeEnd)
	if prop == nil {
		return mo.None[time.Time]()
	}
	t, err := prop.DateTime(time.UTC)
	if err != nil {
		return mo.None[time.Time]()
	}
	if prop.ValueType() == ical.ValueDate {
		return mo.Some(truncateDay(t).Add(-time.Nanosecond))
	}
	return mo.Some(t)
}

// SetEnd replaces DTEND, preserving the current all-day encoding, and
// clears any DURATION so that exactly one of the two remains.
func (e *Event) SetEnd(t time.Time) {
	allDay := e.AllDay()
	e.Props.Del(ical.PropDuration)
	e.storeEnd(t, allDay)
}

// storeEnd writes DTEND. When asDate is set the value is encoded in the
// all-day convention: the day after t's date, as a date-only value.
func (e *Event) storeEnd(t time.Time, asDate bool) {
	e.Props.Del(ical.PropDateTimeEnd)
	prop := ical.NewProp(ical.PropDateTimeEnd)
	if asDate {
		prop.SetValueType(ical.ValueDate)
		prop.Value = truncateDay(t).AddDate(0, 0, 1).Format(layoutDate)
	} else {
		prop.SetDateTime(t)
	}
	e.Props.Set(prop)
}

// Duration returns the explicit DURATION value, if any. The canonical
// duration of a normalized event is always recomputed from its span;
// this accessor only reflects the stored property.
func (e *Event) Duration() mo.Option[time.Duration] {
	prop := e.Props.Get(ical.PropDuration)
	if prop == nil {
		return mo.None[time.Duration]()
	}
	d, err := prop.Duration()
	if err != nil {
		return mo.None[time.Duration]()
	}
	return mo.Some(d)
}

// SetDuration replaces DURATION and clears DTEND.
func (e *Event) SetDuration(d time.Duration) {
	e.Props.Del(ical.PropDateTimeEnd)
	e.Props.Del(ical.PropDuration)
	prop := ical.NewProp(ical.PropDuration)
	prop.SetDuration(d)
	e.Props.Set(prop)
}

// Period returns the explicit start/end pair stored as a single PERIOD
// value, if any.
func (e *Event) Period() mo.Option[interval.Interval] {
	prop := e.Props.Get(propPeriod)
	if prop == nil {
		return mo.None[interval.Interval]()
	}
	parts := strings.SplitN(prop.Value, "/", 2)
	if len(parts) != 2 {
		return mo.None[interval.Interval]()
	}
	start, err := parseInstant(parts[0])
	if err != nil {
		return mo.None[interval.Interval]()
	}
	end, err := parseInstant(parts[1])
	if err != nil {
		return mo.None[interval.Interval]()
	}
	return mo.Some(interval.Interval{Start: start, End: end})
}

// SetPeriod stores an explicit start/end pair as one unit, clearing any
// independently stored DTSTART, DTEND and DURATION.
func (e *Event) SetPeriod(iv interval.Interval) {
	e.Props.Del(ical.PropDateTimeStart)
	e.Props.Del(ical.PropDateTimeEnd)
	e.Props.Del(ical.PropDuration)
	e.Props.Del(propPeriod)
	prop := ical.NewProp(propPeriod)
	prop.SetValueType(ical.ValuePeriod)
	prop.Value = formatInstant(iv.Start) + "/" + formatInstant(iv.End)
	e.Props.Set(prop)
}

// AllDay reports whether the stored end carries the date-only marker.
func (e *Event) AllDay() bool {
	prop := e.Props.Get(ical.PropDateTimeEnd)
	return prop != nil && prop.ValueType() == ical.ValueDate
}

// SetAllDay switches the wire encoding of the end between date-only and
// date-time while preserving the decoded end instant. Enabling all-day
// on an event with no end synthesizes one: the last nanosecond of the
// start's day.
func (e *Event) SetAllDay(allDay bool) {
	end, ok := e.End().Get()
	if !ok {
		if !allDay {
			return
		}
		start, ok := e.Start().Get()
		if !ok {
			return
		}
		end = truncateDay(start).AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	e.storeEnd(end, allDay)
}

// Floating reports whether the event has no end at all: a zero-extent
// calendar marker.
func (e *Event) Floating() bool {
	return e.Props.Get(ical.PropDateTimeEnd) == nil
}

// SetFloating deletes the end when floating is enabled. Disabling
// floating on an event with no end synthesizes a concrete one day end
// (start's day plus one day, minus one nanosecond); any end the event
// had before floating was enabled is not recoverable.
func (e *Event) SetFloating(floating bool) {
	if floating {
		e.Props.Del(ical.PropDateTimeEnd)
		return
	}
	if e.Props.Get(ical.PropDateTimeEnd) != nil {
		return
	}
	start, ok := e.Start().Get()
	if !ok {
		return
	}
	e.storeEnd(truncateDay(start).AddDate(0, 0, 1).Add(-time.Nanosecond), false)
}

// UID returns the grouping identity shared by a master event and its
// recurrence overrides.
func (e *Event) UID() mo.Option[string] {
	return e.textProp(ical.PropUID)
}

// SetUID replaces UID.
func (e *Event) SetUID(uid string) {
	e.Props.SetText(ical.PropUID, uid)
}

// RecurrenceID returns the occurrence start this record overrides, when
// the record is an override for one occurrence of a master event.
func (e *Event) RecurrenceID() mo.Option[time.Time] {
	prop := e.Props.Get(propRecurrenceID)
	if prop == nil {
		return mo.None[time.Time]()
	}
	t, err := prop.DateTime(time.UTC)
	if err != nil {
		return mo.None[time.Time]()
	}
	return mo.Some(t)
}

// SetRecurrenceID replaces RECURRENCE-ID.
func (e *Event) SetRecurrenceID(t time.Time) {
	e.Props.Del(propRecurrenceID)
	prop := ical.NewProp(propRecurrenceID)
	prop.SetDateTime(t)
	e.Props.Set(prop)
}

// Summary returns the unescaped summary text.
func (e *Event) Summary() mo.Option[string] {
	return e.textProp(ical.PropSummary)
}

// SetSummary replaces SUMMARY, escaping per the iCalendar text rules.
func (e *Event) SetSummary(s string) {
	e.Props.SetText(ical.PropSummary, s)
}

// Description returns the unescaped description text.
func (e *Event) Description() mo.Option[string] {
	return e.textProp(ical.PropDescription)
}

// SetDescription replaces DESCRIPTION, escaping per the iCalendar text
// rules.
func (e *Event) SetDescription(s string) {
	e.Props.SetText(ical.PropDescription, s)
}

func (e *Event) textProp(name string) mo.Option[string] {
	prop := e.Props.Get(name)
	if prop == nil {
		return mo.None[string]()
	}
	s, err := prop.Text()
	if err != nil {
		return mo.None[string]()
	}
	return mo.Some(s)
}

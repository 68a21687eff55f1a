package event

import (
	"fmt"
	"strings"
	"time"

	"github.com/cyp0633/libcalspan/internal/rulecache"
	"github.com/cyp0633/libcalspan/interval"
	"github.com/emersion/go-ical"
	"github.com/samber/mo"
	"github.com/teambition/rrule-go"
)

// Recurrence compiles the stored RRULE entries into an instant set
// anchored at the event's start. The result is None when the event has
// no start or no rules; a malformed rule is an error.
func (e *Event) Recurrence() (mo.Option[interval.Set], error) {
	return e.ruleSet(ical.PropRecurrenceRule)
}

// ExceptionRule compiles the stored EXRULE entries, anchored the same
// way as Recurrence.
func (e *Event) ExceptionRule() (mo.Option[interval.Set], error) {
	return e.ruleSet(propExceptionRule)
}

func (e *Event) ruleSet(name string) (mo.Option[interval.Set], error) {
	start, ok := e.Start().Get()
	if !ok {
		return mo.None[interval.Set](), nil
	}
	props := e.Props.Values(name)
	if len(props) == 0 {
		return mo.None[interval.Set](), nil
	}
	rules := make([]*rrule.RRule, 0, len(props))
	for _, p := range props {
		r, err := rulecache.Compile(p.Value, start)
		if err != nil {
			return mo.None[interval.Set](), fmt.Errorf("%s: %w", name, err)
		}
		rules = append(rules, r)
	}
	return mo.Some[interval.Set](interval.NewRule(start, rules...)), nil
}

// SetRecurrence serializes the given rule options and stores each as its
// own RRULE entry, replacing any prior entries.
func (e *Event) SetRecurrence(rules ...rrule.ROption) {
	e.setRules(ical.PropRecurrenceRule, rules)
}

// SetExceptionRule is SetRecurrence for EXRULE entries.
func (e *Event) SetExceptionRule(rules ...rrule.ROption) {
	e.setRules(propExceptionRule, rules)
}

func (e *Event) setRules(name string, rules []rrule.ROption) {
	e.Props.Del(name)
	for _, opt := range rules {
		text := opt.RRuleString()
		// The serializer may emit a rule-type prefix; the stored value
		// must be the bare rule text.
		text = strings.TrimPrefix(text, "RRULE:")
		text = strings.TrimPrefix(text, "EXRULE:")
		prop := ical.NewProp(name)
		prop.Value = text
		e.Props.Add(prop)
	}
}

// RecurrenceDates returns the union of all stored RDATE entries as a
// finite instant set, or None when nothing is stored.
func (e *Event) RecurrenceDates() mo.Option[interval.Times] {
	return e.dateList(ical.PropRecurrenceDates)
}

// ExceptionDates returns the union of all stored EXDATE entries.
func (e *Event) ExceptionDates() mo.Option[interval.Times] {
	return e.dateList(ical.PropExceptionDates)
}

func (e *Event) dateList(name string) mo.Option[interval.Times] {
	props := e.Props.Values(name)
	if len(props) == 0 {
		return mo.None[interval.Times]()
	}
	var instants []time.Time
	for _, p := range props {
		for _, part := range strings.Split(p.Value, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			t, err := parseInstant(part)
			if err != nil {
				// Best effort: skip unparsable entries rather than
				// discarding the whole list.
				continue
			}
			instants = append(instants, t)
		}
	}
	if len(instants) == 0 {
		return mo.None[interval.Times]()
	}
	return mo.Some(interval.NewTimes(instants...))
}

// SetRecurrenceDates replaces all RDATE entries with a single
// comma-delimited entry.
func (e *Event) SetRecurrenceDates(instants ...time.Time) {
	e.setDateList(ical.PropRecurrenceDates, instants)
}

// SetExceptionDates replaces all EXDATE entries with a single
// comma-delimited entry.
func (e *Event) SetExceptionDates(instants ...time.Time) {
	e.setDateList(ical.PropExceptionDates, instants)
}

func (e *Event) setDateList(name string, instants []time.Time) {
	e.Props.Del(name)
	if len(instants) == 0 {
		return
	}
	values := make([]string, len(instants))
	for i, t := range instants {
		values[i] = formatInstant(t)
	}
	prop := ical.NewProp(name)
	prop.Value = strings.Join(values, ",")
	e.Props.Set(prop)
}

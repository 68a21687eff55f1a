package event

import (
	"time"

	"github.com/emersion/go-ical"
)

// Property names not covered by go-ical's constant list.
const (
	propExceptionRule = "EXRULE"
	propRecurrenceID  = "RECURRENCE-ID"
	propPeriod        = "PERIOD"
)

// Timestamp layouts for RDATE/EXDATE/RECURRENCE-ID/PERIOD values. All
// instants are handled in a floating (timezone-naive) frame; values
// without a zone designator are anchored in UTC for comparison purposes
// and never shifted.
const (
	layoutDateTimeUTC = "20060102T150405Z"
	layoutDateTime    = "20060102T150405"
	layoutDate        = "20060102"
)

// Event wraps an iCalendar VEVENT with temporal semantics: typed field
// accessors, normalization of the start/end/duration/period fields into
// a canonical span, and recurrence expansion.
//
// All setters fully replace any prior encoding of the field they write.
// Reads of optional fields return mo.Option values; absence is a
// legitimate state, not an error. A single Event's setters are not safe
// for concurrent use; callers serialize mutation per record.
type Event struct {
	*ical.Event

	// original points back to the master event an exploded instance was
	// produced from. It is never persisted and never deep-copied; the
	// caller's retention of the master bounds its lifetime.
	original *Event
}

// New returns an empty event backed by a fresh VEVENT component.
func New() *Event {
	return &Event{Event: ical.NewEvent()}
}

// FromIcal wraps an existing go-ical event. The component is shared, not
// copied; use Clone for an independent record.
func FromIcal(ev *ical.Event) *Event {
	return &Event{Event: ev}
}

// Original returns the master event this instance was expanded from, or
// nil if the event is not an expansion product.
func (e *Event) Original() *Event {
	return e.original
}

// Clone returns a deep, independent copy of the event: the property bag
// and all nested components are duplicated, so mutating the clone never
// affects the source. The original back-reference is carried over as a
// plain pointer, never deep-copied.
func (e *Event) Clone() *Event {
	return &Event{
		Event:    &ical.Event{Component: cloneComponent(e.Component)},
		original: e.original,
	}
}

func cloneComponent(c *ical.Component) *ical.Component {
	out := &ical.Component{
		Name:  c.Name,
		Props: make(ical.Props, len(c.Props)),
	}
	for name, props := range c.Props {
		dup := make([]ical.Prop, len(props))
		for i, p := range props {
			params := make(ical.Params, len(p.Params))
			for k, vs := range p.Params {
				params[k] = append([]string(nil), vs...)
			}
			dup[i] = ical.Prop{Name: p.Name, Params: params, Value: p.Value}
		}
		out.Props[name] = dup
	}
	for _, child := range c.Children {
		out.Children = append(out.Children, cloneComponent(child))
	}
	return out
}

// parseInstant parses an iCalendar DATE-TIME or DATE literal in the
// floating frame.
func parseInstant(value string) (time.Time, error) {
	if t, err := time.Parse(layoutDateTimeUTC, value); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation(layoutDateTime, value, time.UTC); err == nil {
		return t, nil
	}
	return time.ParseInLocation(layoutDate, value, time.UTC)
}

// formatInstant renders an instant as an iCalendar DATE-TIME literal.
func formatInstant(t time.Time) string {
	return t.UTC().Format(layoutDateTimeUTC)
}

// truncateDay returns the midnight starting t's calendar day.
func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

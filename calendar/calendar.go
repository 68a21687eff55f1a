// Package calendar expands whole iCalendar collections: every VEVENT in
// a calendar is exploded against a query span, with entries grouped by
// UID so that RECURRENCE-ID overrides replace the master occurrences
// they shadow.
package calendar

import (
	"io"
	"log/slog"
	"sort"
	"time"

	"github.com/cyp0633/libcalspan/event"
	"github.com/cyp0633/libcalspan/interval"
	"github.com/emersion/go-ical"
	"github.com/google/uuid"
)

// Events expands every VEVENT entry of cal that falls inside span, in
// entry order grouped by UID, each group ordered by occurrence start.
//
// Entries bearing a RECURRENCE-ID are overrides: each is exploded
// individually, and every resulting instance replaces the master
// occurrence with the same UID whose start equals the override's
// recurrence id. Overrides with no matching occurrence in the span are
// dropped. An entry without a UID gets a random placeholder identity;
// such entries can never be matched by an override, which is an
// accepted imprecision rather than an error.
//
// When opts carries a Period, every occurrence in the final list is
// additionally fragmented into sub-period instances.
func Events(cal *ical.Calendar, span interval.Interval, opts *event.ExpandOptions) ([]*event.Event, error) {
	options := event.DefaultExpandOptions
	if opts != nil {
		options = *opts
	}
	logger := options.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	// Overrides are matched against unsplit occurrences; splitting, if
	// requested, happens after replacement.
	inner := options
	inner.Period = nil

	type override struct {
		uid string
		ev  *event.Event
		id  time.Time
	}

	var order []string
	groups := make(map[string][]*event.Event)
	var overrides []override

	for _, child := range cal.Children {
		if child.Name != ical.CompEvent {
			continue
		}
		ev := event.FromIcal(&ical.Event{Component: child})

		uid, ok := ev.UID().Get()
		if !ok {
			uid = uuid.NewString()
			logger.Debug("entry without uid, synthesized placeholder", "uid", uid)
		}

		if rid, ok := ev.RecurrenceID().Get(); ok {
			overrides = append(overrides, override{uid: uid, ev: ev, id: rid})
			continue
		}

		if _, seen := groups[uid]; !seen {
			order = append(order, uid)
		}
		occurrences, err := ev.Explode(span, &inner)
		if err != nil {
			return nil, err
		}
		groups[uid] = append(groups[uid], occurrences...)
	}

	for _, ov := range overrides {
		instances, err := ov.ev.Explode(span, &inner)
		if err != nil {
			return nil, err
		}
		for _, inst := range instances {
			if !replaceOccurrence(groups[ov.uid], ov.id, inst) {
				logger.Debug("override without matching master occurrence",
					"uid", ov.uid,
					"recurrence_id", ov.id,
				)
			}
		}
	}

	var out []*event.Event
	for _, uid := range order {
		occurrences := groups[uid]
		sort.SliceStable(occurrences, func(i, j int) bool {
			a, _ := occurrences[i].Start().Get()
			b, _ := occurrences[j].Start().Get()
			return a.Before(b)
		})
		if options.Period != nil {
			for _, occ := range occurrences {
				fragments, err := occ.SplitUp(*options.Period)
				if err != nil {
					return nil, err
				}
				out = append(out, fragments...)
			}
			continue
		}
		out = append(out, occurrences...)
	}
	return out, nil
}

// replaceOccurrence swaps the occurrence starting at id for inst,
// reporting whether a match was found.
func replaceOccurrence(occurrences []*event.Event, id time.Time, inst *event.Event) bool {
	for i, occ := range occurrences {
		start, ok := occ.Start().Get()
		if ok && start.Equal(id) {
			occurrences[i] = inst
			return true
		}
	}
	return false
}

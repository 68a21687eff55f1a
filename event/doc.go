/*
Package event layers temporal semantics over go-ical VEVENT components:
typed accessors for the temporal properties, normalization of the
mutually-constrained start/end/duration/period fields into a canonical
half-open span, and recurrence expansion against a bounded query
interval.

# Basic usage

	ev := event.New()
	ev.SetUID("standup")
	ev.SetStart(time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC))
	ev.SetEnd(time.Date(2025, 6, 2, 9, 15, 0, 0, time.UTC))
	ev.SetRecurrence(rrule.ROption{Freq: rrule.WEEKLY})

	june := interval.Interval{
		Start: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
	}
	instances, err := ev.Explode(june, nil)

Each instance is a deep, independent clone carrying only start and end,
with Original pointing back at the master. An existing component parsed
by go-ical is wrapped with FromIcal.

# Conventions

All instants are floating (timezone-naive): values are compared as
parsed and no TZID parameter is propagated by the setters. An event with
a start but no end and no duration is a floating event; it normalizes to
the degenerate span [start, start), which intersects exactly the query
intervals that contain its start. Stored DATE-TIME values carry second
resolution, so ends written with the minus-one-nanosecond convention
read back truncated to the whole second; decoded all-day ends keep full
nanosecond fidelity because the subtraction happens on read.

Mutating accessors fully replace the prior encoding of their field and
are not safe for concurrent use on the same record. All read operations
are pure and safe to run in parallel across distinct records.
*/
package event

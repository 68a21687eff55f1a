// Package interval provides the time primitives the expansion engine is
// built on: a half-open interval and an abstract set of instants with
// union, containment and bounded ascending iteration.
package interval

import "time"

// Interval is a half-open time range [Start, End).
//
// An interval with End <= Start is degenerate (zero width). A degenerate
// interval still has a position: it overlaps any interval that contains
// its Start. This is the convention used for floating events, whose span
// collapses to [start, start).
type Interval struct {
	Start time.Time
	End   time.Time
}

// Duration returns End - Start. Negative durations are possible for
// malformed intervals; callers validate ordering where it matters.
func (iv Interval) Duration() time.Duration {
	return iv.End.Sub(iv.Start)
}

// IsDegenerate reports whether the interval has zero (or negative) width.
func (iv Interval) IsDegenerate() bool {
	return !iv.End.After(iv.Start)
}

// Contains reports whether t lies within [Start, End).
func (iv Interval) Contains(t time.Time) bool {
	return !t.Before(iv.Start) && t.Before(iv.End)
}

// Overlaps reports whether the two intervals share at least one instant.
// A degenerate interval overlaps an interval containing its Start; two
// degenerate intervals overlap only when their starts coincide.
func (iv Interval) Overlaps(other Interval) bool {
	if iv.IsDegenerate() {
		if other.IsDegenerate() {
			return iv.Start.Equal(other.Start)
		}
		return other.Contains(iv.Start)
	}
	if other.IsDegenerate() {
		return iv.Contains(other.Start)
	}
	return iv.Start.Before(other.End) && other.Start.Before(iv.End)
}

// Intersect returns the common sub-interval and whether it is non-empty.
func (iv Interval) Intersect(other Interval) (Interval, bool) {
	if !iv.Overlaps(other) {
		return Interval{}, false
	}
	out := iv
	if other.Start.After(out.Start) {
		out.Start = other.Start
	}
	if other.End.Before(out.End) {
		out.End = other.End
	}
	return out, true
}

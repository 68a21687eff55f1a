package interval

import (
	"sort"
	"time"

	"github.com/teambition/rrule-go"
)

// Set is an abstract, possibly infinite set of instants. Ascending
// iteration is only defined against a bounded interval; callers must
// intersect with a bounded query via Between before enumerating, since
// a recurrence rule without an end is infinite.
type Set interface {
	// Contains reports whether t is a member of the set.
	Contains(t time.Time) bool

	// Between returns the members inside [bounds.Start, bounds.End) in
	// ascending order.
	Between(bounds Interval) []time.Time
}

// Times is a finite instant set backed by a sorted, deduplicated slice.
type Times []time.Time

// NewTimes builds a Times set from the given instants, sorting and
// removing duplicates.
func NewTimes(instants ...time.Time) Times {
	ts := make(Times, len(instants))
	copy(ts, instants)
	sort.Slice(ts, func(i, j int) bool { return ts[i].Before(ts[j]) })
	out := ts[:0]
	for _, t := range ts {
		if len(out) == 0 || !out[len(out)-1].Equal(t) {
			out = append(out, t)
		}
	}
	return out
}

func (ts Times) Contains(t time.Time) bool {
	i := sort.Search(len(ts), func(i int) bool { return !ts[i].Before(t) })
	return i < len(ts) && ts[i].Equal(t)
}

func (ts Times) Between(bounds Interval) []time.Time {
	var out []time.Time
	for _, t := range ts {
		if bounds.Contains(t) {
			out = append(out, t)
		}
	}
	return out
}

// Merge returns the union of two finite sets as a new Times.
func (ts Times) Merge(other Times) Times {
	return NewTimes(append(append([]time.Time{}, ts...), other...)...)
}

// Rule is an instant set described by one or more compiled recurrence
// rules anchored at a common start instant.
type Rule struct {
	set *rrule.Set
}

// NewRule anchors the given rules at start and wraps them as a Set.
func NewRule(start time.Time, rules ...*rrule.RRule) *Rule {
	set := &rrule.Set{}
	set.DTStart(start)
	for _, r := range rules {
		r.DTStart(start)
		set.RRule(r)
	}
	return &Rule{set: set}
}

func (r *Rule) Contains(t time.Time) bool {
	return len(r.set.Between(t, t, true)) > 0
}

func (r *Rule) Between(bounds Interval) []time.Time {
	if bounds.IsDegenerate() {
		return nil
	}
	occurrences := r.set.Between(bounds.Start, bounds.End, true)
	// rrule's Between is inclusive on both ends; trim to the half-open
	// contract.
	for len(occurrences) > 0 && !occurrences[len(occurrences)-1].Before(bounds.End) {
		occurrences = occurrences[:len(occurrences)-1]
	}
	return occurrences
}

type unionSet []Set

// Union combines sets into a single Set. Nil members are ignored; a
// union of one set is that set itself.
func Union(sets ...Set) Set {
	members := make(unionSet, 0, len(sets))
	for _, s := range sets {
		if s != nil {
			members = append(members, s)
		}
	}
	if len(members) == 1 {
		return members[0]
	}
	return members
}

func (u unionSet) Contains(t time.Time) bool {
	for _, s := range u {
		if s.Contains(t) {
			return true
		}
	}
	return false
}

func (u unionSet) Between(bounds Interval) []time.Time {
	var all []time.Time
	for _, s := range u {
		all = append(all, s.Between(bounds)...)
	}
	return NewTimes(all...)
}

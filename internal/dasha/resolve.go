package dasha

import (
	"sort"
	"time"
)

// Resolution is the path through the period tree that contains an instant.
// Fields are nil from the first level that could not be resolved downward.
type Resolution struct {
	Major  *Period `json:"major,omitempty" yaml:"major,omitempty"`
	Medium *Period `json:"medium,omitempty" yaml:"medium,omitempty"`
	Minor  *Period `json:"minor,omitempty" yaml:"minor,omitempty"`
}

// Empty reports whether no Major period contained the instant. This is the
// expected outcome for instants outside the generated span; the caller
// should widen the span and retry.
func (r Resolution) Empty() bool {
	return r.Major == nil
}

// Deepest returns the innermost resolved period, or false if empty.
func (r Resolution) Deepest() (Period, bool) {
	switch {
	case r.Minor != nil:
		return *r.Minor, true
	case r.Medium != nil:
		return *r.Medium, true
	case r.Major != nil:
		return *r.Major, true
	default:
		return Period{}, false
	}
}

// Resolve finds the Major, Medium and Minor periods containing t. majors
// must be sorted and contiguous, as returned by Engine.Majors.
//
// Only the nine Medium periods of the matching Major and the nine Minor
// periods of the matching Medium are generated. The full 9x9xN tree is never
// built: wide spans would otherwise pay for thousands of leaves to answer a
// single query. Results are not cached here; subdivision is deterministic so
// repeat calls return identical periods.
func Resolve(t time.Time, majors []Period) Resolution {
	var res Resolution

	i, ok := search(majors, t)
	if !ok {
		return res
	}
	major := majors[i]
	res.Major = &major

	mediums, err := Subdivide(major)
	if err != nil {
		return res
	}
	j, ok := search(mediums, t)
	if !ok {
		return res
	}
	medium := mediums[j]
	res.Medium = &medium

	minors, err := Subdivide(medium)
	if err != nil {
		return res
	}
	k, ok := search(minors, t)
	if !ok {
		return res
	}
	minor := minors[k]
	res.Minor = &minor
	return res
}

// search returns the index of the period containing t in a sorted,
// contiguous slice.
func search(periods []Period, t time.Time) (int, bool) {
	i := sort.Search(len(periods), func(i int) bool {
		return periods[i].End.After(t)
	})
	if i < len(periods) && periods[i].Contains(t) {
		return i, true
	}
	return 0, false
}

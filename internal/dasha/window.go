package dasha

import (
	"fmt"
	"sort"
	"time"
)

// Window returns the periods at level that intersect [from, to), in time
// order. Like Resolve it only subdivides parents that intersect the window.
func Window(majors []Period, from, to time.Time, level Level) ([]Period, error) {
	if !level.Valid() {
		return nil, fmt.Errorf("%w: level %d out of range", ErrInvalidInput, int(level))
	}
	if !to.After(from) {
		return nil, nil
	}

	first := sort.Search(len(majors), func(i int) bool {
		return majors[i].End.After(from)
	})

	var out []Period
	for _, major := range majors[first:] {
		if !major.Start.Before(to) {
			break
		}
		found, err := collect(major, from, to, level)
		if err != nil {
			return nil, err
		}
		out = append(out, found...)
	}
	return out, nil
}

func collect(p Period, from, to time.Time, level Level) ([]Period, error) {
	if p.Level == level {
		return []Period{p}, nil
	}
	children, err := Subdivide(p)
	if err != nil {
		return nil, err
	}
	var out []Period
	for _, c := range children {
		if !c.Overlaps(from, to) {
			continue
		}
		found, err := collect(c, from, to, level)
		if err != nil {
			return nil, err
		}
		out = append(out, found...)
	}
	return out, nil
}

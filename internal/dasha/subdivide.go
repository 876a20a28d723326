package dasha

import (
	"fmt"
	"math"
	"slices"
	"time"
)

// Subdivide splits a Major or Medium period into its nine children. The
// cycle restarts at the parent's own ruler and each child gets
// weight/TotalYears of the parent's actual duration. The last child's End is
// set to the parent's End so rounding drift lands in that child alone.
func Subdivide(parent Period) ([]Period, error) {
	if parent.Level != LevelMajor && parent.Level != LevelMedium {
		return nil, fmt.Errorf("%w: cannot subdivide %s period", ErrInvalidInput, parent.Level)
	}
	if !parent.Ruler.Valid() {
		return nil, fmt.Errorf("%w: parent ruler %d out of range", ErrInvalidInput, uint8(parent.Ruler))
	}
	if !parent.End.After(parent.Start) {
		return nil, fmt.Errorf("%w: parent period %s has no duration", ErrInvalidInput, parent.Label())
	}

	total := float64(parent.Duration())
	lineage := parent.Lineage()
	children := make([]Period, RulerCount)
	cursor := parent.Start
	for k, r := range parent.Ruler.Cycle() {
		end := parent.End
		if k < RulerCount-1 {
			end = cursor.Add(durationOf(total * r.Years() / TotalYears))
		}
		children[k] = Period{
			Level:   parent.Level + 1,
			Ruler:   r,
			Parents: slices.Clone(lineage),
			Start:   cursor,
			End:     end,
		}
		cursor = end
	}
	return children, nil
}

func durationOf(ns float64) time.Duration {
	return time.Duration(math.Round(ns))
}

package dasha

import (
	"fmt"
	"strings"
)

// Ruler is one of the nine planetary lords in Vimshottari order.
type Ruler uint8

// Rulers in cycle order. The numeric value is the position in the cycle.
const (
	Ketu Ruler = iota
	Venus
	Sun
	Moon
	Mars
	Rahu
	Jupiter
	Saturn
	Mercury
)

// RulerCount is the length of the ruler cycle.
const RulerCount = 9

// TotalYears is the sum of all ruler weights: one full cycle.
const TotalYears = 120.0

type rulerInfo struct {
	name  string
	years float64
}

var rulers = [RulerCount]rulerInfo{
	Ketu:    {"Ketu", 7},
	Venus:   {"Venus", 20},
	Sun:     {"Sun", 6},
	Moon:    {"Moon", 10},
	Mars:    {"Mars", 7},
	Rahu:    {"Rahu", 18},
	Jupiter: {"Jupiter", 16},
	Saturn:  {"Saturn", 19},
	Mercury: {"Mercury", 17},
}

// Valid reports whether r is one of the nine rulers.
func (r Ruler) Valid() bool {
	return r < RulerCount
}

// String returns the ruler's name.
func (r Ruler) String() string {
	if !r.Valid() {
		return fmt.Sprintf("Ruler(%d)", uint8(r))
	}
	return rulers[r].name
}

// Years returns the ruler's Major period length in years, or 0 for an
// invalid ruler.
func (r Ruler) Years() float64 {
	if !r.Valid() {
		return 0
	}
	return rulers[r].years
}

// Next returns the ruler n steps after r in the cycle. Negative n walks
// backwards.
func (r Ruler) Next(n int) Ruler {
	i := (int(r) + n) % RulerCount
	if i < 0 {
		i += RulerCount
	}
	return Ruler(i)
}

// Cycle returns the nine rulers in order starting at r.
func (r Ruler) Cycle() [RulerCount]Ruler {
	var out [RulerCount]Ruler
	for k := range out {
		out[k] = r.Next(k)
	}
	return out
}

// MarshalText encodes the ruler by name.
func (r Ruler) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("%w: ruler %d out of range", ErrInvalidInput, uint8(r))
	}
	return []byte(r.String()), nil
}

// UnmarshalText decodes a ruler name, case-insensitively.
func (r *Ruler) UnmarshalText(text []byte) error {
	parsed, err := ParseRuler(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// ParseRuler looks up a ruler by name, ignoring case and surrounding space.
func ParseRuler(name string) (Ruler, error) {
	name = strings.TrimSpace(name)
	for i, info := range rulers {
		if strings.EqualFold(info.name, name) {
			return Ruler(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown ruler %q", ErrInvalidInput, name)
}

// Rulers returns the cycle in canonical order, starting at Ketu.
func Rulers() [RulerCount]Ruler {
	return Ketu.Cycle()
}

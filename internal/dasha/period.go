package dasha

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// Level is the nesting depth of a period.
type Level int

const (
	LevelMajor  Level = iota // mahadasha
	LevelMedium              // antardasha
	LevelMinor               // pratyantardasha
)

func (l Level) String() string {
	switch l {
	case LevelMajor:
		return "major"
	case LevelMedium:
		return "medium"
	case LevelMinor:
		return "minor"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

// Valid reports whether l is one of the three generated levels.
func (l Level) Valid() bool {
	return l >= LevelMajor && l <= LevelMinor
}

// MarshalText encodes the level by name.
func (l Level) MarshalText() ([]byte, error) {
	if !l.Valid() {
		return nil, fmt.Errorf("%w: level %d out of range", ErrInvalidInput, int(l))
	}
	return []byte(l.String()), nil
}

// UnmarshalText decodes a level name.
func (l *Level) UnmarshalText(text []byte) error {
	parsed, err := ParseLevel(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// ParseLevel accepts "major", "medium", "minor" and the traditional names
// "mahadasha", "antardasha", "pratyantardasha".
func ParseLevel(name string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "major", "maha", "mahadasha":
		return LevelMajor, nil
	case "medium", "antar", "antardasha", "bhukti":
		return LevelMedium, nil
	case "minor", "pratyantar", "pratyantardasha":
		return LevelMinor, nil
	default:
		return 0, fmt.Errorf("%w: unknown level %q", ErrInvalidInput, name)
	}
}

// Period is one node of the period tree. It is a value: two periods with the
// same fields are the same period.
type Period struct {
	Level Level `json:"level" yaml:"level"`
	Ruler Ruler `json:"ruler" yaml:"ruler"`
	// Parents is the ancestor ruler chain, outermost first. Empty for a
	// Major period, [major] for a Medium, [major, medium] for a Minor.
	Parents []Ruler   `json:"parents,omitempty" yaml:"parents,omitempty"`
	Start   time.Time `json:"start" yaml:"start"`
	End     time.Time `json:"end" yaml:"end"`
}

// Duration is the actual length of the period.
func (p Period) Duration() time.Duration {
	return p.End.Sub(p.Start)
}

// Years expresses the period length in years of the given length.
func (p Period) Years(yearLength time.Duration) float64 {
	if yearLength <= 0 {
		return 0
	}
	return float64(p.Duration()) / float64(yearLength)
}

// Contains reports whether t lies in [Start, End).
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && t.Before(p.End)
}

// Overlaps reports whether the period intersects [from, to).
func (p Period) Overlaps(from, to time.Time) bool {
	return p.Start.Before(to) && p.End.After(from)
}

// Lineage returns the full ruler chain ending with the period's own ruler.
func (p Period) Lineage() []Ruler {
	out := make([]Ruler, 0, len(p.Parents)+1)
	out = append(out, p.Parents...)
	return append(out, p.Ruler)
}

// Label joins the lineage with "/", e.g. "Venus/Sun/Moon".
func (p Period) Label() string {
	names := make([]string, 0, len(p.Parents)+1)
	for _, r := range p.Lineage() {
		names = append(names, r.String())
	}
	return strings.Join(names, "/")
}

// Equal compares two periods by value, using time.Time.Equal for instants.
func (p Period) Equal(o Period) bool {
	return p.Level == o.Level &&
		p.Ruler == o.Ruler &&
		slices.Equal(p.Parents, o.Parents) &&
		p.Start.Equal(o.Start) &&
		p.End.Equal(o.End)
}

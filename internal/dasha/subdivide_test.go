package dasha

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSubdivide_Major(t *testing.T) {
	e := NewDefault()
	majors, err := e.Majors(testBirth, 0, 10)
	require.NoError(t, err)

	venus := majors[1]
	require.Equal(t, Venus, venus.Ruler)

	mediums, err := Subdivide(venus)
	require.NoError(t, err)
	require.Len(t, mediums, RulerCount)

	// Venus/Venus lasts 20*20/120 = 3y4m.
	require.Equal(t, Venus, mediums[0].Ruler)
	require.InDelta(t, 20.0*20/120, mediums[0].Years(e.YearLength()), 1e-9)
	require.Equal(t, Sun, mediums[1].Ruler)
	require.InDelta(t, 1.0, mediums[1].Years(e.YearLength()), 1e-9)

	for i, m := range mediums {
		require.Equal(t, LevelMedium, m.Level)
		require.Equal(t, []Ruler{Venus}, m.Parents)
		require.Equal(t, Venus.Next(i), m.Ruler)
	}
	require.True(t, mediums[0].Start.Equal(venus.Start))
	require.True(t, mediums[RulerCount-1].End.Equal(venus.End))
}

func TestSubdivide_Medium(t *testing.T) {
	e := NewDefault()
	majors, err := e.Majors(testBirth, 0, 10)
	require.NoError(t, err)
	mediums, err := Subdivide(majors[0])
	require.NoError(t, err)

	minors, err := Subdivide(mediums[2])
	require.NoError(t, err)
	require.Len(t, minors, RulerCount)
	require.Equal(t, Sun, mediums[2].Ruler)
	require.Equal(t, Sun, minors[0].Ruler)
	for _, m := range minors {
		require.Equal(t, LevelMinor, m.Level)
		require.Equal(t, []Ruler{Ketu, Sun}, m.Parents)
	}
	require.Equal(t, "Ketu/Sun/Moon", minors[1].Label())
}

func TestSubdivide_Rejects(t *testing.T) {
	start := testBirth
	tests := []struct {
		name   string
		parent Period
	}{
		{"minor level", Period{Level: LevelMinor, Ruler: Sun, Start: start, End: start.Add(time.Hour)}},
		{"unknown level", Period{Level: Level(7), Ruler: Sun, Start: start, End: start.Add(time.Hour)}},
		{"bad ruler", Period{Level: LevelMajor, Ruler: Ruler(12), Start: start, End: start.Add(time.Hour)}},
		{"empty period", Period{Level: LevelMajor, Ruler: Sun, Start: start, End: start}},
		{"reversed period", Period{Level: LevelMajor, Ruler: Sun, Start: start, End: start.Add(-time.Hour)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Subdivide(tt.parent)
			require.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

// A period whose length is not divisible by the weights leaves rounding
// drift, which must land entirely in the final child.
func TestSubdivide_ClampsFinalChild(t *testing.T) {
	parent := Period{
		Level: LevelMajor,
		Ruler: Moon,
		Start: testBirth,
		End:   testBirth.Add(1001 * time.Nanosecond),
	}

	children, err := Subdivide(parent)
	require.NoError(t, err)

	var nominal time.Duration
	for _, c := range children[:RulerCount-1] {
		want := durationOf(float64(parent.Duration()) * c.Ruler.Years() / TotalYears)
		require.Equal(t, want, c.Duration(), "%s", c.Ruler)
		nominal += c.Duration()
	}
	last := children[RulerCount-1]
	require.True(t, last.End.Equal(parent.End))
	require.Equal(t, parent.Duration()-nominal, last.Duration())
}

func TestSubdivide_ChildrenDoNotShareParents(t *testing.T) {
	parent := Period{Level: LevelMajor, Ruler: Rahu, Start: testBirth, End: testBirth.Add(time.Hour)}
	children, err := Subdivide(parent)
	require.NoError(t, err)

	children[0].Parents[0] = Ketu
	require.Equal(t, Rahu, children[1].Parents[0])
}

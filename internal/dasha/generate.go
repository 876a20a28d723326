package dasha

import (
	"fmt"
	"math"
	"time"
)

// Majors returns the contiguous Major periods covering birth through
// birth+spanYears. The first period is the seed ruler's, started UsedYears
// before birth; the last is the one that crosses the span boundary.
func (e *Engine) Majors(birth time.Time, longitude float64, spanYears float64) ([]Period, error) {
	if math.IsNaN(spanYears) || math.IsInf(spanYears, 0) || spanYears < 0 {
		return nil, fmt.Errorf("%w: span %v years must be finite and non-negative", ErrInvalidInput, spanYears)
	}
	seed, err := e.Seed(longitude)
	if err != nil {
		return nil, err
	}
	span, ok := e.yearsToDuration(spanYears)
	if !ok {
		return nil, fmt.Errorf("%w: span %v years overflows", ErrInvalidInput, spanYears)
	}

	used, _ := e.yearsToDuration(seed.UsedYears)
	full, _ := e.yearsToDuration(seed.FullYears)
	if used >= full {
		// Rounding must never push birth out of the first period.
		used = full - 1
	}

	limit := birth.Add(span)
	cursor := birth.Add(-used)
	ruler := seed.Ruler

	majors := make([]Period, 0, int(spanYears/Sun.Years())+2)
	for {
		d, _ := e.yearsToDuration(ruler.Years())
		end := cursor.Add(d)
		majors = append(majors, Period{
			Level: LevelMajor,
			Ruler: ruler,
			Start: cursor,
			End:   end,
		})
		cursor = end
		ruler = ruler.Next(1)
		if cursor.After(limit) {
			break
		}
	}
	return majors, nil
}

// Chart bundles the seed and Major sequence for one birth context.
type Chart struct {
	Birth     time.Time `json:"birth" yaml:"birth"`
	Longitude float64   `json:"longitude" yaml:"longitude"`
	SpanYears float64   `json:"span_years" yaml:"span_years"`
	Seed      Seed      `json:"seed" yaml:"seed"`
	Majors    []Period  `json:"majors" yaml:"majors"`
}

// Chart computes the seed and Major sequence together.
func (e *Engine) Chart(birth time.Time, longitude float64, spanYears float64) (Chart, error) {
	seed, err := e.Seed(longitude)
	if err != nil {
		return Chart{}, err
	}
	majors, err := e.Majors(birth, longitude, spanYears)
	if err != nil {
		return Chart{}, err
	}
	return Chart{
		Birth:     birth,
		Longitude: longitude,
		SpanYears: spanYears,
		Seed:      seed,
		Majors:    majors,
	}, nil
}

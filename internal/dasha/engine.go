package dasha

import (
	"fmt"
	"math"
	"time"
)

// DefaultYearLengthDays is the mean tropical year used to convert ruler
// weights into elapsed time.
const DefaultYearLengthDays = 365.2422

// Options configures an Engine.
type Options struct {
	// YearLength is the fixed length of one year for all duration
	// arithmetic. Zero selects DefaultYearLengthDays.
	YearLength time.Duration
}

// Engine generates period sequences. It holds only immutable settings, so a
// single Engine is safe for concurrent use.
type Engine struct {
	yearLength time.Duration
}

// New returns an Engine configured with opts.
func New(opts Options) (*Engine, error) {
	yl := opts.YearLength
	if yl == 0 {
		yl = YearLengthFromDays(DefaultYearLengthDays)
	}
	if yl < 0 {
		return nil, fmt.Errorf("%w: year length %v must be positive", ErrInvalidInput, yl)
	}
	if float64(yl)*TotalYears > math.MaxInt64 {
		return nil, fmt.Errorf("%w: year length %v too large", ErrInvalidInput, yl)
	}
	return &Engine{yearLength: yl}, nil
}

// NewDefault returns an Engine using the default mean year.
func NewDefault() *Engine {
	return &Engine{yearLength: YearLengthFromDays(DefaultYearLengthDays)}
}

// YearLength returns the configured year length.
func (e *Engine) YearLength() time.Duration {
	return e.yearLength
}

// YearLengthFromDays converts a year length in days to a Duration, rounded
// to the nearest nanosecond.
func YearLengthFromDays(days float64) time.Duration {
	return time.Duration(math.Round(days * float64(24*time.Hour)))
}

// yearsToDuration converts years to a Duration with the engine's year
// length. It reports false if the result does not fit in a Duration.
func (e *Engine) yearsToDuration(years float64) (time.Duration, bool) {
	ns := math.Round(years * float64(e.yearLength))
	if math.IsNaN(ns) || ns > math.MaxInt64 || ns < math.MinInt64 {
		return 0, false
	}
	return time.Duration(ns), true
}

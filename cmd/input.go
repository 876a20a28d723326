package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vishalchabra/sarathi/internal/timeline"
)

// Layouts accepted for instants. Anything without a zone is read as UTC.
var instantLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// parseInstant reads an instant in any of instantLayouts. "now" is the
// current time.
func parseInstant(value string, now time.Time) (time.Time, error) {
	value = strings.TrimSpace(value)
	if strings.EqualFold(value, "now") {
		return now, nil
	}
	for _, layout := range instantLayouts {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse %q as a time (try 2006-01-02T15:04:05Z07:00 or 2006-01-02)", value)
}

// birthFlags are the inputs shared by every chart command.
type birthFlags struct {
	birth     string
	longitude float64
	span      float64
}

func (b *birthFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&b.birth, "birth", "b", "", "birth instant, e.g. 1990-03-14T06:30:00+05:30")
	cmd.Flags().Float64VarP(&b.longitude, "longitude", "l", 0, "sidereal longitude of the Moon at birth, in degrees")
	cmd.Flags().Float64Var(&b.span, "span", 0, "years past birth to generate (default from engine.span_years)")
	_ = cmd.MarkFlagRequired("birth")
	_ = cmd.MarkFlagRequired("longitude")
}

func (b *birthFlags) context(cmd *cobra.Command, now time.Time) (timeline.BirthContext, error) {
	birth, err := parseInstant(b.birth, now)
	if err != nil {
		return timeline.BirthContext{}, fmt.Errorf("--birth: %w", err)
	}
	span := cfg.Engine.SpanYears
	if cmd.Flags().Changed("span") {
		span = b.span
	}
	return timeline.BirthContext{Birth: birth, Longitude: b.longitude, SpanYears: span}, nil
}

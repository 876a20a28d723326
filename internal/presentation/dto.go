package presentation

import (
	"time"

	"github.com/vishalchabra/sarathi/internal/dasha"
)

// SectorDTO is a nakshatra classification for presentation.
type SectorDTO struct {
	Index     int     `json:"index" yaml:"index"`
	Name      string  `json:"name" yaml:"name"`
	Ruler     string  `json:"ruler" yaml:"ruler"`
	Pada      int     `json:"pada" yaml:"pada"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
	StartDeg  float64 `json:"start_deg" yaml:"start_deg"`
	EndDeg    float64 `json:"end_deg" yaml:"end_deg"`
	Elapsed   float64 `json:"elapsed" yaml:"elapsed"`
	Remaining float64 `json:"remaining" yaml:"remaining"`
}

// SeedDTO is the balance of the first Major period at birth.
type SeedDTO struct {
	Ruler          string  `json:"ruler" yaml:"ruler"`
	FullYears      float64 `json:"full_years" yaml:"full_years"`
	UsedYears      float64 `json:"used_years" yaml:"used_years"`
	RemainingYears float64 `json:"remaining_years" yaml:"remaining_years"`
}

// PeriodDTO is a single period at any level.
type PeriodDTO struct {
	Level   string    `json:"level" yaml:"level"`
	Ruler   string    `json:"ruler" yaml:"ruler"`
	Lineage string    `json:"lineage" yaml:"lineage"`
	Start   time.Time `json:"start" yaml:"start"`
	End     time.Time `json:"end" yaml:"end"`
	Years   float64   `json:"years" yaml:"years"`
}

// ChartDTO is the seed plus the Major sequence for one birth context.
type ChartDTO struct {
	Birth     time.Time   `json:"birth" yaml:"birth"`
	Longitude float64     `json:"longitude" yaml:"longitude"`
	SpanYears float64     `json:"span_years" yaml:"span_years"`
	Sector    SectorDTO   `json:"nakshatra" yaml:"nakshatra"`
	Seed      SeedDTO     `json:"seed" yaml:"seed"`
	Majors    []PeriodDTO `json:"majors" yaml:"majors"`
}

// ResolutionDTO is the period path at an instant. Missing levels are nil.
type ResolutionDTO struct {
	At     time.Time  `json:"at" yaml:"at"`
	Major  *PeriodDTO `json:"major" yaml:"major"`
	Medium *PeriodDTO `json:"medium" yaml:"medium"`
	Minor  *PeriodDTO `json:"minor" yaml:"minor"`
}

// FromSector converts a classified sector.
func FromSector(s dasha.Sector) SectorDTO {
	return SectorDTO{
		Index:     s.Index,
		Name:      s.Name,
		Ruler:     s.Ruler.String(),
		Pada:      s.Pada,
		Longitude: s.Longitude,
		StartDeg:  s.StartDeg,
		EndDeg:    s.EndDeg,
		Elapsed:   s.Elapsed,
		Remaining: s.Remaining,
	}
}

// FromPeriod converts a period, expressing its length in years of yearLength.
func FromPeriod(p dasha.Period, yearLength time.Duration) PeriodDTO {
	return PeriodDTO{
		Level:   p.Level.String(),
		Ruler:   p.Ruler.String(),
		Lineage: p.Label(),
		Start:   p.Start,
		End:     p.End,
		Years:   p.Years(yearLength),
	}
}

// FromPeriods converts a slice of periods.
func FromPeriods(periods []dasha.Period, yearLength time.Duration) []PeriodDTO {
	dtos := make([]PeriodDTO, len(periods))
	for i, p := range periods {
		dtos[i] = FromPeriod(p, yearLength)
	}
	return dtos
}

// FromChart converts a generated chart.
func FromChart(c dasha.Chart, yearLength time.Duration) ChartDTO {
	return ChartDTO{
		Birth:     c.Birth,
		Longitude: c.Longitude,
		SpanYears: c.SpanYears,
		Sector:    FromSector(c.Seed.Sector),
		Seed: SeedDTO{
			Ruler:          c.Seed.Ruler.String(),
			FullYears:      c.Seed.FullYears,
			UsedYears:      c.Seed.UsedYears,
			RemainingYears: c.Seed.RemainingYears,
		},
		Majors: FromPeriods(c.Majors, yearLength),
	}
}

// FromResolution converts a resolved path.
func FromResolution(at time.Time, r dasha.Resolution, yearLength time.Duration) ResolutionDTO {
	convert := func(p *dasha.Period) *PeriodDTO {
		if p == nil {
			return nil
		}
		dto := FromPeriod(*p, yearLength)
		return &dto
	}
	return ResolutionDTO{
		At:     at,
		Major:  convert(r.Major),
		Medium: convert(r.Medium),
		Minor:  convert(r.Minor),
	}
}

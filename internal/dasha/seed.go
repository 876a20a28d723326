package dasha

// Seed anchors the Major sequence to the birth instant. The fraction of the
// birth nakshatra already traversed equals the fraction of its ruler's Major
// period already elapsed at birth.
type Seed struct {
	Sector         Sector  `json:"sector" yaml:"sector"`
	Ruler          Ruler   `json:"ruler" yaml:"ruler"`
	FullYears      float64 `json:"full_years" yaml:"full_years"`
	UsedYears      float64 `json:"used_years" yaml:"used_years"`
	RemainingYears float64 `json:"remaining_years" yaml:"remaining_years"`
}

// Seed computes the starting ruler and the balance of its Major period at
// birth for the given longitude.
func (e *Engine) Seed(longitude float64) (Seed, error) {
	sector, err := Classify(longitude)
	if err != nil {
		return Seed{}, err
	}
	full := sector.Ruler.Years()
	remaining := full * sector.Remaining
	return Seed{
		Sector:         sector,
		Ruler:          sector.Ruler,
		FullYears:      full,
		UsedYears:      full - remaining,
		RemainingYears: remaining,
	}, nil
}

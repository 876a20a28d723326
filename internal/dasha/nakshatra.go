package dasha

import (
	"fmt"
	"math"
)

// SectorCount is the number of nakshatras tiling the zodiac.
const SectorCount = 27

// SectorWidth is the angular width of one nakshatra: 13°20′.
const SectorWidth = 360.0 / SectorCount

type sectorInfo struct {
	name  string
	ruler Ruler
}

// Bindings follow the ruler cycle three times around the circle.
var sectors = [SectorCount]sectorInfo{
	{"Ashwini", Ketu},
	{"Bharani", Venus},
	{"Krittika", Sun},
	{"Rohini", Moon},
	{"Mrigashira", Mars},
	{"Ardra", Rahu},
	{"Punarvasu", Jupiter},
	{"Pushya", Saturn},
	{"Ashlesha", Mercury},
	{"Magha", Ketu},
	{"Purva Phalguni", Venus},
	{"Uttara Phalguni", Sun},
	{"Hasta", Moon},
	{"Chitra", Mars},
	{"Swati", Rahu},
	{"Vishakha", Jupiter},
	{"Anuradha", Saturn},
	{"Jyeshtha", Mercury},
	{"Mula", Ketu},
	{"Purva Ashadha", Venus},
	{"Uttara Ashadha", Sun},
	{"Shravana", Moon},
	{"Dhanishta", Mars},
	{"Shatabhisha", Rahu},
	{"Purva Bhadrapada", Jupiter},
	{"Uttara Bhadrapada", Saturn},
	{"Revati", Mercury},
}

// Sector is the classification of a longitude into its nakshatra.
type Sector struct {
	Index     int     `json:"index" yaml:"index"`
	Name      string  `json:"name" yaml:"name"`
	Ruler     Ruler   `json:"ruler" yaml:"ruler"`
	StartDeg  float64 `json:"start_deg" yaml:"start_deg"`
	EndDeg    float64 `json:"end_deg" yaml:"end_deg"`
	Longitude float64 `json:"longitude" yaml:"longitude"` // normalized into [0, 360)

	// Elapsed is the fraction of the sector already traversed, in [0, 1).
	Elapsed float64 `json:"elapsed" yaml:"elapsed"`
	// Remaining is 1 - Elapsed, in (0, 1].
	Remaining float64 `json:"remaining" yaml:"remaining"`
	// Pada is the quarter of the sector (1-4) the longitude falls in.
	Pada int `json:"pada" yaml:"pada"`
}

// Classify maps a sidereal longitude in degrees onto its nakshatra. Any finite
// value is accepted and wrapped into [0, 360).
func Classify(longitude float64) (Sector, error) {
	norm, err := NormalizeLongitude(longitude)
	if err != nil {
		return Sector{}, err
	}

	// Multiply before dividing so whole-degree inputs on a boundary land
	// exactly on it.
	pos := norm * SectorCount / 360
	idx := int(math.Floor(pos))
	if idx >= SectorCount {
		// norm sits within rounding distance of 360, which is 0.
		idx, pos, norm = 0, 0, 0
	}
	// Reported StartDeg/EndDeg values are authoritative: a longitude equal
	// to a sector's StartDeg must classify into that sector.
	switch {
	case idx+1 < SectorCount && norm >= sectorStart(idx+1):
		idx++
	case idx > 0 && norm < sectorStart(idx):
		idx--
	}
	elapsed := pos - float64(idx)
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed >= 1 {
		elapsed = math.Nextafter(1, 0)
	}

	return sectorAt(idx, norm, elapsed), nil
}

// SectorByIndex returns the static description of sector i with the
// longitude placed at the sector's start.
func SectorByIndex(i int) (Sector, error) {
	if i < 0 || i >= SectorCount {
		return Sector{}, fmt.Errorf("%w: sector %d out of range", ErrInvalidInput, i)
	}
	return sectorAt(i, sectorStart(i), 0), nil
}

// Sectors returns all 27 sectors in order, each positioned at its start.
func Sectors() []Sector {
	out := make([]Sector, SectorCount)
	for i := range out {
		out[i] = sectorAt(i, sectorStart(i), 0)
	}
	return out
}

// NormalizeLongitude wraps a longitude into [0, 360).
func NormalizeLongitude(longitude float64) (float64, error) {
	if math.IsNaN(longitude) || math.IsInf(longitude, 0) {
		return 0, fmt.Errorf("%w: longitude %v is not finite", ErrInvalidInput, longitude)
	}
	norm := math.Mod(longitude, 360)
	if norm < 0 {
		norm += 360
	}
	if norm >= 360 || norm == 0 {
		// Also folds -0 into +0.
		norm = 0
	}
	return norm, nil
}

func sectorAt(idx int, norm, elapsed float64) Sector {
	info := sectors[idx]
	pada := int(elapsed*4) + 1
	if pada > 4 {
		pada = 4
	}
	return Sector{
		Index:     idx,
		Name:      info.name,
		Ruler:     info.ruler,
		StartDeg:  sectorStart(idx),
		EndDeg:    sectorStart(idx + 1),
		Longitude: norm,
		Elapsed:   elapsed,
		Remaining: 1 - elapsed,
		Pada:      pada,
	}
}

func sectorStart(i int) float64 {
	return float64(i) * 360 / SectorCount
}

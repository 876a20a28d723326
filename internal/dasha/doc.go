// Package dasha computes the three-level Vimshottari period partition of a
// life span from a birth instant and a sidereal lunar longitude.
//
// The package is split into three layers that only depend downward:
//
//   - Classify maps a longitude onto one of 27 nakshatra sectors and reports
//     how far through the sector it falls.
//   - Engine.Seed and Engine.Majors anchor the nine-ruler cycle to the birth
//     instant and emit the Major (mahadasha) sequence. Subdivide splits any
//     Major or Medium period into its nine children.
//   - Resolve and Window answer point and range queries over a Major list,
//     generating Medium and Minor periods only along the queried path.
//
// Every function is pure. The ruler and sector tables are fixed arrays with
// no write path, so callers may share an Engine across goroutines freely.
// Caching of generated periods is left to the caller.
package dasha

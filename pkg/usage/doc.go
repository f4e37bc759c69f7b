// Package usage meters subscription consumption against plan ceilings.
//
// Measure is a pure function over a counters snapshot and the resolved plan:
// no I/O, no shared state, safe to call concurrently. Percentages are
// float64 and stay unrounded through the calculation; only presentation
// layers round them, so ratios never accumulate rounding error.
//
// The ceiling semantics are defined once, here: an unlimited or missing
// ceiling yields 0% (never a division by an effectively-infinite limit), and
// a nil plan degrades to all-unlimited rather than failing the measurement.
// Overage is tolerated and reported through the Exceeded list; the meter
// never clamps a counter.
package usage

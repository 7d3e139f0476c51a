// Package domain models per-city daily temperature observations and the
// batch transforms applied to them.
//
// # Data Source
//
// Observations arrive as a loosely typed table with columns city (text,
// optional), date (text, ISO-like YYYY-MM-DD) and temperature (text or
// numeric). The upstream producer is either a live Open-Meteo fetch
// aggregated to daily means, a CSV file, or the synthetic generator; an
// empty table is the producer's way of saying "no data available".
//
// # Pipeline stages
//
// The table flows through four pure, value-returning stages in a fixed
// order:
//
//	Clean            coerce fields, drop unparseable rows, sort by date
//	Summarize        read-only descriptive statistics ([Report])
//	DetectAnomalies  rolling average + global mean±sigma*std band
//	Classify         temperature bucket per row
//
// # Conventions
//
// Dates: ISO YYYY-MM-DD is the contract; a handful of common upstream
// spellings are accepted (see dateLayouts). A cell that parses under none of
// them drops its row.
//
// Temperatures: signed decimals in degrees Celsius. strconv accepts NaN and
// Inf spellings, but those are rejected during cleaning so every cleaned
// temperature is finite.
//
// Rolling average: trailing fixed-window mean over the date-sorted sequence,
// absent (nil) until the window is filled. A 3-row window therefore leaves
// the first two rows without a value.
//
// Anomaly band: global mean ± sigma * sample standard deviation (n-1
// divisor), computed over the entire table with the anomalies included. The
// source analysis does not iterate outlier removal, and neither does this
// package; changing that would change results. With fewer than two rows the
// standard deviation is NaN and everything classifies normal.
//
// Condition buckets (half-open intervals, degrees Celsius):
//
//	very_cold <0 | cold [0,10) | mild [10,20) | hot [20,30) | very_hot >=30
//
// # Error policy
//
// Missing required columns abort the pipeline with [SchemaError] before any
// row is touched. Per-row parse failures are recovered locally: the row is
// dropped and counted in [CleanStats]. Statistical undefined-ness (std with
// n<2, aggregates of an empty table) degrades to safe defaults instead of
// raising; only [Mean] and [Quantile] surface [ErrEmptyInput], and only when
// called unguarded.
package domain

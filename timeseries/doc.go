// Package timeseries provides time series data structures and utilities.
//
// This package includes the Series type for hourly signals and the Frame type
// for multi-channel tables, along with resampling, alignment, and CSV I/O.
//
// # Creating a Series
//
// Create an hourly series from a slice:
//
//	base := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
//	series := timeseries.New(base, values)
//
// # Regularizing raw observations
//
// Raw energy data carries duplicate and irregular timestamps. Regularize
// collapses duplicates by summing, sorts, and fills gaps by linear
// interpolation onto a fixed grid:
//
//	hourly, err := timeseries.Regularize(stamps, kwh, time.Hour)
//
// # Aligning two series
//
// Reindex meteorology onto the energy grid by nearest-neighbor matching
// within one hour:
//
//	meteo, energy, err := timeseries.AlignNearest(energy, meteo, time.Hour)
//
// Alignment with zero overlap returns ErrNoOverlap rather than an empty
// result.
//
// # Frames
//
// A Frame holds several named channels over one index, with schema-strict
// column access:
//
//	wind, err := frame.Column("windspeed_10m") // error if absent
//	subset, err := frame.Select("precipitation", "temperature_2m")
//
// # Loading from CSV
//
//	// Load one production group for one price area
//	series, err := timeseries.LoadCSVFiltered(
//	    "production.csv", "pricearea", "NO3", "quantitykwh")
//
// # Transformations
//
//	diff := series.Diff()            // First difference
//	sdiff := series.SeasonalDiff(24) // Daily seasonal difference
//	shifted := series.Shift(6)       // Lag by 6 hours, NaN padding
//	normalized := series.Normalize() // Z-score normalization
package timeseries

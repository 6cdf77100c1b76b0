// Package correlation provides sliding-window Pearson correlation between
// meteorological and energy series.
//
// Both inputs must share an identical hourly index; regularize and align
// them first:
//
//	energy, _ = timeseries.RegularizeSeries(energy, time.Hour)
//	meteo, energy, _ = timeseries.AlignNearest(energy, meteo, time.Hour)
//	res, err := correlation.Rolling(meteo, energy, 48, 0)
//
// The result series carries NaN for the first window points and for any
// degenerate window; every finite value lies in [-1, 1]. A nonzero lag
// shifts the energy side relative to meteorology, exposing delayed
// responses such as temperature-driven consumption.
package correlation

// Package gokraft provides analytical transforms for Norwegian energy and
// meteorological time series.
//
// GoKraft is a library of deterministic, synchronous numeric functions that
// take time-indexed signals and produce derived signals, decompositions, or
// detection results. It covers seasonal-trend decomposition, short-time
// spectral analysis, statistical-process-control and density-based outlier
// detection, sliding-window cross-correlation, a Tabler-style snow-drift
// transport model, and SARIMAX forecasting.
//
// # Quick Start
//
// Regularize raw observations onto an hourly grid and decompose:
//
//	series, _ := timeseries.Regularize(stamps, values, time.Hour)
//	stl, _ := stats.STL(series, 25, 169, 2)
//	// stl.Trend, stl.Seasonal, stl.Residual
//
// Detect temperature outliers with DCT smoothing and SPC limits:
//
//	res, _ := anomaly.DetectOutliers(temps, 0.05, 3.0)
//
// Correlate meteorology against energy with a trailing window:
//
//	corr, _ := correlation.Rolling(meteo, energy, 48, 0)
//
// # Packages
//
//   - timeseries: series and frame types, resampling, alignment, CSV I/O
//   - smoothing: DCT low-pass filtering
//   - anomaly: SPC outlier and LOF anomaly detection
//   - stats: autocorrelation, STL decomposition, residual diagnostics
//   - spectral: short-time Fourier spectrogram
//   - correlation: sliding-window Pearson correlation
//   - snowdrift: directional snow-transport model
//   - sarimax: seasonal ARIMA with exogenous regressors
//
// All transforms are pure: no shared mutable state, no I/O, no logging.
// Structural problems (bad parameters, insufficient data, no overlap) fail
// fast with wrapped sentinel errors; localized numerical indeterminacy is
// represented as NaN inside an otherwise valid result.
package gokraft

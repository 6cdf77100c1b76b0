// Package stats provides statistical analysis functions for time series.
//
// This package includes autocorrelation analysis, STL-style decomposition,
// and residual diagnostics used by the forecasting layer.
//
// # Decomposition
//
// Split a regular hourly series into trend, seasonal, and residual parts:
//
//	stl, err := stats.STL(series, 25, 169, 2)
//	// stl.Trend, stl.Seasonal, stl.Residual
//
// The input must already sit on a regular grid (see timeseries.Regularize).
// The additive identity observed = trend + seasonal + residual holds
// exactly.
//
// # Autocorrelation Functions
//
// Analyze autocorrelation patterns:
//
//	acf := stats.ACF(series, 200)
//	pacf := stats.PACF(series, 48)
//
//	acfResult := stats.ACFWithConfidence(series, 200)
//	significant := stats.SignificantLags(acfResult.Values, acfResult.ConfBounds)
//
// # Residual Diagnostics
//
// Test model residuals for leftover autocorrelation:
//
//	lb := stats.LjungBox(residuals, 10, p+q)
//	if lb.PValue > 0.05 {
//	    // Residuals are white noise (good)
//	}
package stats

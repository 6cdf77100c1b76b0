// Package smoothing provides DCT-based low-pass filtering of hourly signals.
//
// The filter transforms a signal into the cosine basis, discards the
// high-frequency tail, and reconstructs:
//
//	smoothed, err := smoothing.SmoothDCT(series, 0.05)
//
// The cutoff is the fraction of coefficients kept. With cutoff 1 the filter
// is the identity (within float tolerance); at 0.05 only the slowest 5% of
// basis functions survive, leaving a smooth reference curve suited for
// control-limit outlier detection.
package smoothing

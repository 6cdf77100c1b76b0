// Package spectral provides short-time Fourier analysis of hourly signals.
//
// A spectrogram slices a regular hourly series into overlapping Hann-tapered
// segments and reports one-sided FFT power per segment in decibels:
//
//	spec, err := spectral.Spectrogram(series, 168, 50)
//	// spec.Power[freqBin][segment], spec.Frequencies in cycles/hour
//
// A weekly segment (168 h) with 50% overlap resolves daily (1/24 ≈ 0.0417
// cycles/hour) and half-daily production rhythms while tracking how they
// drift through the year. The result is suited directly for heatmap
// rendering.
package spectral

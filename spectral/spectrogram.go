// Package spectral provides short-time frequency analysis of hourly signals.
package spectral

import (
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/dsp/window"

	"github.com/fheflo1/gokraft/timeseries"
)

// epsilon keeps log10 finite for zero-power bins.
const epsilon = 1e-10

// SpectrogramResult holds a time-frequency power matrix. Power is indexed
// as [frequency bin][segment]; Frequencies is the frequency axis in cycles
// per hour and Times holds the start timestamp of each segment.
type SpectrogramResult struct {
	Power       [][]float64
	Frequencies []float64
	Times       []time.Time
	SegmentLen  int
	Overlap     int // overlapping samples between consecutive segments
}

// Segments returns the number of time windows in the result.
func (r *SpectrogramResult) Segments() int {
	return len(r.Times)
}

// Spectrogram computes a Hann-tapered short-time Fourier power spectrogram
// of a series on a regular hourly grid. segment is the number of samples per
// window; overlapPct (0–90) is converted to overlapping samples as
// segment·overlapPct/100. With hop = segment − overlap, the number of
// segments is floor((N−segment)/hop)+1. Power is reported one-sided in
// decibels, 10·log10(power+ε).
func Spectrogram(s *timeseries.Series, segment int, overlapPct float64) (*SpectrogramResult, error) {
	if segment < 4 {
		return nil, fmt.Errorf("%w: segment length %d too short", timeseries.ErrInvalidParameter, segment)
	}
	if overlapPct < 0 || overlapPct > 90 {
		return nil, fmt.Errorf("%w: overlap %v%% outside [0, 90]", timeseries.ErrInvalidParameter, overlapPct)
	}

	n := s.Len()
	if n < segment {
		return nil, fmt.Errorf("%w: series has %d samples, segment needs %d", timeseries.ErrInsufficientData, n, segment)
	}

	overlap := int(float64(segment) * overlapPct / 100)
	hop := segment - overlap
	count := (n-segment)/hop + 1
	bins := segment/2 + 1

	// Hann taper and its power normalization.
	taper := window.Hann(ones(segment))
	taperPower := 0.0
	for _, w := range taper {
		taperPower += w * w
	}

	fft := fourier.NewFFT(segment)

	freqs := make([]float64, bins)
	for i := range freqs {
		freqs[i] = fft.Freq(i) // cycles/sample = cycles/hour at 1 sample/hour
	}

	power := make([][]float64, bins)
	for i := range power {
		power[i] = make([]float64, count)
	}
	times := make([]time.Time, count)

	seg := make([]float64, segment)
	coeffs := make([]complex128, bins)

	for w := 0; w < count; w++ {
		start := w * hop
		if len(s.Timestamps) > start {
			times[w] = s.Timestamps[start]
		}

		for i := 0; i < segment; i++ {
			seg[i] = s.Values[start+i] * taper[i]
		}
		fft.Coefficients(coeffs, seg)

		for i := 0; i < bins; i++ {
			p := real(coeffs[i])*real(coeffs[i]) + imag(coeffs[i])*imag(coeffs[i])
			p /= taperPower
			// One-sided spectrum: double everything except DC and Nyquist.
			if i != 0 && !(segment%2 == 0 && i == segment/2) {
				p *= 2
			}
			power[i][w] = 10 * math.Log10(p+epsilon)
		}
	}

	return &SpectrogramResult{
		Power:       power,
		Frequencies: freqs,
		Times:       times,
		SegmentLen:  segment,
		Overlap:     overlap,
	}, nil
}

func ones(n int) []float64 {
	v := make([]float64, n)
	for i := range v {
		v[i] = 1
	}
	return v
}

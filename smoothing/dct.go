// Package smoothing provides frequency-domain low-pass filtering.
package smoothing

import (
	"fmt"
	"math"

	"github.com/fheflo1/gokraft/timeseries"
)

// minSamples is the shortest series the DCT filter accepts. Below this the
// retained coefficient count degenerates to nothing meaningful.
const minSamples = 10

// SmoothDCT low-pass filters a series with the discrete cosine transform:
// forward orthonormal DCT-II, zeroing of all coefficients at index >=
// cutoff*N, inverse DCT-III. cutoff is the fraction of coefficients kept,
// in (0, 1]; smaller values smooth harder. The output has the same length
// and index as the input. Edge effects at the series boundaries are an
// accepted property of the non-circular transform.
func SmoothDCT(s *timeseries.Series, cutoff float64) (*timeseries.Series, error) {
	if cutoff <= 0 || cutoff > 1 {
		return nil, fmt.Errorf("%w: cutoff %v outside (0, 1]", timeseries.ErrInvalidParameter, cutoff)
	}

	n := s.Len()
	if n < minSamples {
		return nil, fmt.Errorf("%w: need at least %d samples, got %d", timeseries.ErrInsufficientData, minSamples, n)
	}

	coeffs := dct2(s.Values)

	k := int(cutoff * float64(n))
	for i := k; i < n; i++ {
		coeffs[i] = 0
	}

	out := s.Copy()
	out.Values = dct3(coeffs)
	if s.Name != "" {
		out.Name = s.Name + "_smoothed"
	}
	return out, nil
}

// dct2 computes the orthonormal DCT-II of x.
func dct2(x []float64) []float64 {
	n := len(x)
	out := make([]float64, n)
	scale := math.Sqrt(2 / float64(n))

	for k := 0; k < n; k++ {
		sum := 0.0
		for i, v := range x {
			sum += v * math.Cos(math.Pi*float64(2*i+1)*float64(k)/float64(2*n))
		}
		if k == 0 {
			sum /= math.Sqrt2
		}
		out[k] = scale * sum
	}
	return out
}

// dct3 computes the orthonormal DCT-III of c, the inverse of dct2.
func dct3(c []float64) []float64 {
	n := len(c)
	out := make([]float64, n)
	scale := math.Sqrt(2 / float64(n))

	for i := 0; i < n; i++ {
		sum := c[0] / math.Sqrt2
		for k := 1; k < n; k++ {
			sum += c[k] * math.Cos(math.Pi*float64(2*i+1)*float64(k)/float64(2*n))
		}
		out[i] = scale * sum
	}
	return out
}

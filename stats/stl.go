package stats

import (
	"fmt"
	"math"
	"sort"

	"github.com/fheflo1/gokraft/timeseries"
)

// STLResult represents the result of an STL-style decomposition.
type STLResult struct {
	Original       *timeseries.Series
	Trend          *timeseries.Series
	Seasonal       *timeseries.Series
	Residual       *timeseries.Series
	SeasonalWindow int
	TrendWindow    int
}

// STL performs an iterative seasonal-trend decomposition with local
// regression smoothers, in the spirit of Cleveland's STL.
//
// The input must already be aggregated to a strictly regular hourly grid
// (duplicate timestamps summed, gaps interpolated) — see
// timeseries.Regularize. The trend is a long, tri-weighted local mean over
// trendWindow samples; the seasonal component is a short local smooth of the
// detrended signal over seasonalWindow samples, so cycles shorter than the
// trend window but longer than the seasonal window survive into the seasonal
// term. Robust iterations (Tukey biweight on the residual) downweight
// outliers between passes.
//
// seasonalWindow must be odd and strictly less than trendWindow, which must
// also be odd. The series must span at least two seasonal cycles and two
// trend windows. The additive identity original = trend + seasonal +
// residual holds exactly by construction.
func STL(series *timeseries.Series, seasonalWindow, trendWindow, robustIters int) (*STLResult, error) {
	if seasonalWindow < 3 || seasonalWindow%2 == 0 {
		return nil, fmt.Errorf("%w: seasonal window %d must be odd and >= 3", timeseries.ErrInvalidParameter, seasonalWindow)
	}
	if trendWindow%2 == 0 || trendWindow <= seasonalWindow {
		return nil, fmt.Errorf("%w: trend window %d must be odd and greater than seasonal window %d",
			timeseries.ErrInvalidParameter, trendWindow, seasonalWindow)
	}

	n := series.Len()
	if n < 2*seasonalWindow || n < 2*trendWindow {
		return nil, fmt.Errorf("%w: STL needs at least two full cycles (%d samples), got %d",
			timeseries.ErrInsufficientData, 2*trendWindow, n)
	}

	if robustIters < 1 {
		robustIters = 2
	}

	y := series.Values
	trend := make([]float64, n)
	seasonal := make([]float64, n)
	residual := make([]float64, n)
	detrended := make([]float64, n)

	weights := make([]float64, n)
	for i := range weights {
		weights[i] = 1.0
	}

	for iter := 0; iter < robustIters; iter++ {
		// Step 1: long smooth for the trend.
		localSmooth(y, weights, trendWindow, trend)

		// Step 2: short smooth of the detrended signal for the seasonal.
		for i := 0; i < n; i++ {
			detrended[i] = y[i] - trend[i]
		}
		localSmooth(detrended, weights, seasonalWindow, seasonal)

		// Step 3: the remainder.
		for i := 0; i < n; i++ {
			residual[i] = y[i] - trend[i] - seasonal[i]
		}

		// Step 4: Tukey biweights from the residual for the next pass.
		if iter < robustIters-1 {
			updateRobustWeights(residual, weights)
		}
	}

	return &STLResult{
		Original: series,
		Trend: &timeseries.Series{
			Values:     trend,
			Timestamps: series.Timestamps,
			Name:       "trend",
		},
		Seasonal: &timeseries.Series{
			Values:     seasonal,
			Timestamps: series.Timestamps,
			Name:       "seasonal",
		},
		Residual: &timeseries.Series{
			Values:     residual,
			Timestamps: series.Timestamps,
			Name:       "residual",
		},
		SeasonalWindow: seasonalWindow,
		TrendWindow:    trendWindow,
	}, nil
}

// localSmooth writes a triangular-kernel weighted local mean of src over the
// given window into dst, combining the kernel with the robustness weights.
// The window shrinks at the series boundaries.
func localSmooth(src, weights []float64, window int, dst []float64) {
	n := len(src)
	half := window / 2

	for i := 0; i < n; i++ {
		sum := 0.0
		weightSum := 0.0
		for j := -half; j <= half; j++ {
			idx := i + j
			if idx < 0 || idx >= n {
				continue
			}
			w := weights[idx] * (1 - math.Abs(float64(j))/float64(half+1))
			sum += src[idx] * w
			weightSum += w
		}
		if weightSum > 0 {
			dst[i] = sum / weightSum
		} else {
			dst[i] = src[i]
		}
	}
}

// updateRobustWeights recomputes Tukey biweights from the residual, using
// six median absolute deviations as the rejection scale.
func updateRobustWeights(residual, weights []float64) {
	n := len(residual)
	absRes := make([]float64, n)
	for i, r := range residual {
		absRes[i] = math.Abs(r)
	}

	h := 6 * median(absRes)
	if h <= 0 {
		return
	}

	for i := 0; i < n; i++ {
		u := math.Abs(residual[i]) / h
		if u < 1 {
			weights[i] = (1 - u*u) * (1 - u*u)
		} else {
			weights[i] = 0
		}
	}
}

// median calculates the median of a slice.
func median(data []float64) float64 {
	n := len(data)
	if n == 0 {
		return 0
	}

	sorted := make([]float64, n)
	copy(sorted, data)
	sort.Float64s(sorted)

	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

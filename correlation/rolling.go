// Package correlation provides sliding-window correlation of aligned series.
package correlation

import (
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/fheflo1/gokraft/timeseries"
)

// Result holds a time-indexed rolling correlation. The series is NaN for
// the first Window points (insufficient history) and for any point whose
// trailing window is degenerate.
type Result struct {
	Series *timeseries.Series
	Window int
	Lag    int
}

// Rolling computes a trailing-window Pearson correlation between two series
// sharing an identical hourly index (align them first with
// timeseries.AlignNearest). lag is applied to b as a shift in hours —
// positive lag compares a against b's past — and the rows the shift vacates
// are dropped, together with any row where either side is NaN. For each
// remaining index i >= window the correlation is computed over the trailing
// samples [i-window, i); it is NaN wherever a sub-window has zero variance
// on either side or fewer than 3 valid pairs. window must be at least 3 and
// strictly less than the usable length.
func Rolling(a, b *timeseries.Series, window, lag int) (*Result, error) {
	if window < 3 {
		return nil, fmt.Errorf("%w: window %d must be at least 3", timeseries.ErrInvalidParameter, window)
	}
	if a.Len() != b.Len() {
		return nil, fmt.Errorf("%w: series lengths differ (%d vs %d); align them first",
			timeseries.ErrInvalidParameter, a.Len(), b.Len())
	}
	if a.Len() > 0 && len(a.Timestamps) > 0 && len(b.Timestamps) > 0 {
		if !a.Timestamps[0].Equal(b.Timestamps[0]) || !a.Timestamps[a.Len()-1].Equal(b.Timestamps[b.Len()-1]) {
			return nil, fmt.Errorf("%w: series indexes differ; align them first", timeseries.ErrInvalidParameter)
		}
	}

	shifted := b.Shift(lag)

	// Drop rows vacated by the shift or NaN on either side.
	var stamps []time.Time
	var av, bv []float64
	for i := 0; i < a.Len(); i++ {
		if math.IsNaN(a.Values[i]) || math.IsNaN(shifted.Values[i]) {
			continue
		}
		av = append(av, a.Values[i])
		bv = append(bv, shifted.Values[i])
		if i < len(a.Timestamps) {
			stamps = append(stamps, a.Timestamps[i])
		}
	}

	n := len(av)
	if n == 0 {
		return nil, fmt.Errorf("%w: lag %d removed all rows", timeseries.ErrNoOverlap, lag)
	}
	if window >= n {
		return nil, fmt.Errorf("%w: window %d >= usable length %d", timeseries.ErrInsufficientData, window, n)
	}

	corr := make([]float64, n)
	for i := range corr {
		corr[i] = math.NaN()
	}

	for i := window; i < n; i++ {
		wa := av[i-window : i]
		wb := bv[i-window : i]
		if stat.StdDev(wa, nil) == 0 || stat.StdDev(wb, nil) == 0 {
			continue
		}
		corr[i] = stat.Correlation(wa, wb, nil)
	}

	return &Result{
		Series: &timeseries.Series{
			Timestamps: stamps,
			Values:     corr,
			Name:       "corr",
		},
		Window: window,
		Lag:    lag,
	}, nil
}

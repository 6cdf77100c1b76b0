// Package anomaly provides outlier and anomaly detection for hourly signals.
package anomaly

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/fheflo1/gokraft/smoothing"
	"github.com/fheflo1/gokraft/timeseries"
)

// OutlierResult holds the per-point output of the SPC detector together with
// the global control limits. All series share the input's index and order.
type OutlierResult struct {
	Series   *timeseries.Series // original values
	Smoothed *timeseries.Series // DCT low-pass reference
	Residual *timeseries.Series // original minus smoothed (SATV)
	UCL      float64            // upper control limit on the residual
	LCL      float64            // lower control limit on the residual
	Outliers []bool
}

// Count returns the number of flagged outliers.
func (r *OutlierResult) Count() int {
	n := 0
	for _, o := range r.Outliers {
		if o {
			n++
		}
	}
	return n
}

// DetectOutliers flags statistical-process-control outliers in a series.
//
// The signal is smoothed with a DCT low-pass filter (see smoothing.SmoothDCT)
// and the residual raw-minus-smoothed is tested against global control
// limits mean ± stdThresh·σ of the residual distribution (the SATV variant:
// limits on the residual rather than the raw value, which is robust to slow
// trend drift). σ is the population standard deviation. A point is an
// outlier iff its residual falls outside [LCL, UCL].
func DetectOutliers(s *timeseries.Series, cutoff, stdThresh float64) (*OutlierResult, error) {
	if stdThresh <= 0 {
		return nil, fmt.Errorf("%w: stdThresh %v must be positive", timeseries.ErrInvalidParameter, stdThresh)
	}

	clean := s.DropNaN()
	smoothed, err := smoothing.SmoothDCT(clean, cutoff)
	if err != nil {
		return nil, err
	}

	n := clean.Len()
	residual := make([]float64, n)
	for i := range residual {
		residual[i] = clean.Values[i] - smoothed.Values[i]
	}

	mu := stat.Mean(residual, nil)
	sigma := stat.PopStdDev(residual, nil)
	ucl := mu + stdThresh*sigma
	lcl := mu - stdThresh*sigma

	outliers := make([]bool, n)
	for i, r := range residual {
		outliers[i] = r > ucl || r < lcl
	}

	res := clean.Copy()
	res.Values = residual
	res.Name = "residual"

	return &OutlierResult{
		Series:   clean,
		Smoothed: smoothed,
		Residual: res,
		UCL:      ucl,
		LCL:      lcl,
		Outliers: outliers,
	}, nil
}

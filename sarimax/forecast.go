package sarimax

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/fheflo1/gokraft/stats"
	"github.com/fheflo1/gokraft/timeseries"
)

// ForecastResult holds an out-of-sample forecast with a symmetric
// confidence band on the original scale.
type ForecastResult struct {
	Mean       *timeseries.Series
	Lower      *timeseries.Series
	Upper      *timeseries.Series
	Confidence float64
}

// Forecast produces point forecasts and a confidence band for the given
// number of hourly steps ahead. When the model was fit with exogenous
// regressors, exogFuture must supply the same columns for every forecast
// step; otherwise it must be nil. confidence is the band's coverage, e.g.
// 0.95 for a 95% interval.
func (m *Model) Forecast(steps int, confidence float64, exogFuture *timeseries.Frame) (*ForecastResult, error) {
	if !m.fitted {
		return nil, fmt.Errorf("%w: model is not fitted", ErrModelFit)
	}
	if steps < 1 {
		return nil, fmt.Errorf("%w: steps %d must be positive", timeseries.ErrInvalidParameter, steps)
	}
	if confidence <= 0 || confidence >= 1 {
		return nil, fmt.Errorf("%w: confidence %.3f must be in (0, 1)", timeseries.ErrInvalidParameter, confidence)
	}

	if len(m.exogNames) > 0 {
		if exogFuture == nil {
			return nil, fmt.Errorf("%w: model uses exogenous regressors %v but no future values were given",
				timeseries.ErrInvalidParameter, m.exogNames)
		}
		if exogFuture.Len() != steps {
			return nil, fmt.Errorf("%w: exogFuture has %d rows for %d forecast steps",
				timeseries.ErrInvalidParameter, exogFuture.Len(), steps)
		}
		for _, name := range m.exogNames {
			if _, err := exogFuture.Column(name); err != nil {
				return nil, err
			}
		}
	} else if exogFuture != nil {
		return nil, fmt.Errorf("%w: model was fit without exogenous regressors", timeseries.ErrInvalidParameter)
	}

	mean := m.integrate(m.forecastDifferenced(steps))

	if len(m.exogNames) > 0 {
		for h := range mean {
			mean[h] += m.exogEffectAt(exogFuture, h)
		}
	}

	z := normalQuantile((1 + confidence) / 2)
	se := math.Sqrt(m.Variance)

	lower := make([]float64, steps)
	upper := make([]float64, steps)
	for h := 0; h < steps; h++ {
		// Forecast variance grows with the horizon
		width := z * se * math.Sqrt(float64(h+1))
		lower[h] = mean[h] - width
		upper[h] = mean[h] + width
	}

	last := m.original.Timestamps[len(m.original.Timestamps)-1]
	stamps := make([]time.Time, steps)
	for h := 0; h < steps; h++ {
		stamps[h] = last.Add(time.Duration(h+1) * time.Hour)
	}

	name := m.original.Name
	return &ForecastResult{
		Mean:       &timeseries.Series{Timestamps: stamps, Values: mean, Name: name + "_forecast"},
		Lower:      &timeseries.Series{Timestamps: stamps, Values: lower, Name: name + "_lower"},
		Upper:      &timeseries.Series{Timestamps: stamps, Values: upper, Name: name + "_upper"},
		Confidence: confidence,
	}, nil
}

// forecastDifferenced iterates the fitted recursion forward on the
// differenced scale. Future shocks are taken as zero.
func (m *Model) forecastDifferenced(steps int) []float64 {
	n := m.diffData.Len()
	y := make([]float64, n, n+steps)
	copy(y, m.diffData.Values)
	residuals := make([]float64, n, n+steps)
	copy(residuals, m.residuals)

	for h := 0; h < steps; h++ {
		pred := m.predictAt(y, residuals, n+h, n)
		y = append(y, pred)
		residuals = append(residuals, 0)
	}
	return y[n:]
}

// integrate undoes the differencing applied during Fit, seasonal first,
// returning forecasts on the scale of the series the ARIMA stage saw.
func (m *Model) integrate(forecasts []float64) []float64 {
	result := append([]float64(nil), forecasts...)
	if m.Order.D == 0 && m.Order.SD == 0 {
		return result
	}

	// Rebuild the chain of partially differenced series. chain[0] is the
	// undifferenced data, chain[len-1] the fully differenced series.
	chain := []*timeseries.Series{m.data}
	cur := m.data
	for i := 0; i < m.Order.D; i++ {
		cur = cur.Diff()
		chain = append(chain, cur)
	}
	for i := 0; i < m.Order.SD; i++ {
		cur = cur.SeasonalDiff(m.Order.M)
		chain = append(chain, cur)
	}

	pos := len(chain) - 2

	for i := 0; i < m.Order.SD; i++ {
		base := chain[pos].Values
		period := m.Order.M
		integrated := make([]float64, len(result))
		for h := range result {
			var prev float64
			if h-period >= 0 {
				prev = integrated[h-period]
			} else {
				prev = base[len(base)-period+h]
			}
			integrated[h] = result[h] + prev
		}
		result = integrated
		pos--
	}

	for i := 0; i < m.Order.D; i++ {
		last := chain[pos].Values[len(chain[pos].Values)-1]
		integrated := make([]float64, len(result))
		for h := range result {
			last += result[h]
			integrated[h] = last
		}
		result = integrated
		pos--
	}

	return result
}

// PrepareData slices a frame to a training window and splits it into the
// target series and an exogenous frame. exogNames may be empty, in which
// case the returned frame is nil.
func PrepareData(f *timeseries.Frame, target string, start, end time.Time, exogNames []string) (*timeseries.Series, *timeseries.Frame, error) {
	window := f.SliceTime(start, end)
	if window.Len() == 0 {
		return nil, nil, fmt.Errorf("%w: no rows in [%s, %s]",
			timeseries.ErrInsufficientData, start.Format(time.RFC3339), end.Format(time.RFC3339))
	}

	series, err := window.Column(target)
	if err != nil {
		return nil, nil, err
	}

	if len(exogNames) == 0 {
		return series, nil, nil
	}

	exog, err := window.Select(exogNames...)
	if err != nil {
		return nil, nil, err
	}
	return series, exog, nil
}

// Summary returns a human-readable description of the fitted model,
// including a Ljung-Box whiteness check on the residuals.
func (m *Model) Summary() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "SARIMAX(%d,%d,%d)(%d,%d,%d)[%d]\n",
		m.Order.P, m.Order.D, m.Order.Q,
		m.Order.SP, m.Order.SD, m.Order.SQ, m.Order.M)

	if !m.fitted {
		sb.WriteString("Model not fitted\n")
		return sb.String()
	}

	fmt.Fprintf(&sb, "Intercept: %.6f\n", m.Intercept)
	for i, c := range m.ARCoeffs {
		fmt.Fprintf(&sb, "AR(%d): %.6f\n", i+1, c)
	}
	for i, c := range m.MACoeffs {
		fmt.Fprintf(&sb, "MA(%d): %.6f\n", i+1, c)
	}
	for i, c := range m.SARCoeffs {
		fmt.Fprintf(&sb, "SAR(%d): %.6f\n", i+1, c)
	}
	for i, c := range m.SMACoeffs {
		fmt.Fprintf(&sb, "SMA(%d): %.6f\n", i+1, c)
	}
	if len(m.ExogCoeffs) > 0 {
		fmt.Fprintf(&sb, "Exog intercept: %.6f\n", m.ExogCoeffs[0])
		for j, name := range m.exogNames {
			fmt.Fprintf(&sb, "Exog %s: %.6f\n", name, m.ExogCoeffs[j+1])
		}
	}

	fmt.Fprintf(&sb, "Variance: %.6f\n", m.Variance)
	fmt.Fprintf(&sb, "Log-likelihood: %.4f\n", m.LogLik)
	fmt.Fprintf(&sb, "AIC: %.4f  AICc: %.4f  BIC: %.4f\n", m.AIC, m.AICc, m.BIC)

	lags := 10
	if m.diffData.Len()/5 < lags {
		lags = m.diffData.Len() / 5
	}
	resSeries := &timeseries.Series{
		Timestamps: m.diffData.Timestamps,
		Values:     m.residuals,
		Name:       "residuals",
	}
	if lb := stats.LjungBox(resSeries, lags, m.Order.P+m.Order.Q+m.Order.SP+m.Order.SQ); lb != nil {
		fmt.Fprintf(&sb, "Ljung-Box (lag %d): Q=%.4f p=%.4f\n", lb.Lags, lb.Statistic, lb.PValue)
	}

	return sb.String()
}

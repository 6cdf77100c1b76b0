// Package sarimax implements seasonal ARIMA models with exogenous regressors.
package sarimax

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/fheflo1/gokraft/stats"
	"github.com/fheflo1/gokraft/timeseries"
)

// ErrModelFit indicates the optimizer failed to produce a usable model.
// Fit failures are propagated to the caller; choosing sane orders is the
// caller's responsibility and there is no automatic retry.
var ErrModelFit = errors.New("model fit failed")

// Order represents SARIMAX model order (p, d, q) x (P, D, Q, m).
type Order struct {
	P int // Non-seasonal AR order
	D int // Non-seasonal differencing order
	Q int // Non-seasonal MA order
	// Seasonal components
	SP int // Seasonal AR order
	SD int // Seasonal differencing order
	SQ int // Seasonal MA order
	M  int // Seasonal period (e.g., 24 for hourly data with daily seasonality)
}

// Model represents a SARIMAX model. Exogenous effects are estimated by an
// ordinary-least-squares stage; the seasonal ARIMA is fit on the regression
// remainder. Stationarity and invertibility are not enforced beyond
// clamping coefficients for numeric stability — convergence is favored over
// theoretical guarantees.
type Model struct {
	Order      Order
	ARCoeffs   []float64 // Non-seasonal AR coefficients
	MACoeffs   []float64 // Non-seasonal MA coefficients
	SARCoeffs  []float64 // Seasonal AR coefficients
	SMACoeffs  []float64 // Seasonal MA coefficients
	ExogCoeffs []float64 // OLS coefficients: intercept first, then one per regressor
	Intercept  float64
	Variance   float64
	AIC        float64
	AICc       float64
	BIC        float64
	LogLik     float64

	fitted     bool
	original   *timeseries.Series // series as passed to Fit
	data       *timeseries.Series // regression remainder the ARIMA part is fit on
	diffData   *timeseries.Series
	exogNames  []string
	residuals  []float64
	fittedVals []float64
}

// New creates a new SARIMAX model with the specified order.
func New(p, d, q, sp, sd, sq, m int) (*Model, error) {
	for _, v := range []int{p, d, q, sp, sd, sq, m} {
		if v < 0 {
			return nil, fmt.Errorf("%w: negative order component", timeseries.ErrInvalidParameter)
		}
	}
	if (sp > 0 || sd > 0 || sq > 0) && m < 2 {
		return nil, fmt.Errorf("%w: seasonal orders require period m >= 2, got %d", timeseries.ErrInvalidParameter, m)
	}

	return &Model{
		Order: Order{
			P: p, D: d, Q: q,
			SP: sp, SD: sd, SQ: sq, M: m,
		},
		ARCoeffs:  make([]float64, p),
		MACoeffs:  make([]float64, q),
		SARCoeffs: make([]float64, sp),
		SMACoeffs: make([]float64, sq),
	}, nil
}

// Fit fits the model to the series, optionally with exogenous regressors.
// exog may be nil; when given it must share the series' length.
func (m *Model) Fit(series *timeseries.Series, exog *timeseries.Frame) error {
	minLen := m.Order.P + m.Order.Q + m.Order.D +
		m.Order.SP*m.Order.M + m.Order.SD*m.Order.M + m.Order.SQ*m.Order.M + 20

	if series.Len() < minLen {
		return fmt.Errorf("%w: need at least %d points for this order, got %d",
			timeseries.ErrInsufficientData, minLen, series.Len())
	}

	m.original = series
	remainder := series

	if exog != nil && len(exog.Names) > 0 {
		if exog.Len() != series.Len() {
			return fmt.Errorf("%w: exog has %d rows for %d observations",
				timeseries.ErrInvalidParameter, exog.Len(), series.Len())
		}
		var err error
		remainder, err = m.fitExog(series, exog)
		if err != nil {
			return err
		}
	}

	m.data = remainder

	// Apply non-seasonal differencing
	diffSeries := remainder
	for i := 0; i < m.Order.D; i++ {
		diffSeries = diffSeries.Diff()
		if diffSeries.Len() == 0 {
			return fmt.Errorf("%w: differencing emptied the series", ErrModelFit)
		}
	}

	// Apply seasonal differencing
	for i := 0; i < m.Order.SD; i++ {
		diffSeries = diffSeries.SeasonalDiff(m.Order.M)
		if diffSeries.Len() == 0 {
			return fmt.Errorf("%w: seasonal differencing emptied the series", ErrModelFit)
		}
	}

	m.diffData = diffSeries

	if err := m.fitCSS(); err != nil {
		return err
	}

	m.calculateIC()
	m.fitted = true
	return nil
}

// fitExog estimates the exogenous coefficients by QR least squares (with
// intercept) and returns the regression remainder the ARIMA stage works on.
func (m *Model) fitExog(series *timeseries.Series, exog *timeseries.Frame) (*timeseries.Series, error) {
	n := series.Len()
	k := len(exog.Names)

	design := mat.NewDense(n, k+1, nil)
	for i := 0; i < n; i++ {
		design.Set(i, 0, 1)
		for j, name := range exog.Names {
			design.Set(i, j+1, exog.Columns[name][i])
		}
	}

	var qr mat.QR
	qr.Factorize(design)

	rhs := mat.NewVecDense(n, series.Values)
	var beta mat.VecDense
	if err := qr.SolveVecTo(&beta, false, rhs); err != nil {
		return nil, fmt.Errorf("%w: exogenous regression: %v", ErrModelFit, err)
	}

	m.ExogCoeffs = make([]float64, k+1)
	for j := range m.ExogCoeffs {
		m.ExogCoeffs[j] = beta.AtVec(j)
	}
	m.exogNames = append([]string(nil), exog.Names...)

	remainder := series.Copy()
	for i := 0; i < n; i++ {
		remainder.Values[i] = series.Values[i] - m.exogEffectAt(exog, i)
	}
	remainder.Name = series.Name + "_deexog"
	return remainder, nil
}

// exogEffectAt evaluates intercept + X·β for row i of an exogenous frame.
func (m *Model) exogEffectAt(exog *timeseries.Frame, i int) float64 {
	effect := m.ExogCoeffs[0]
	for j, name := range m.exogNames {
		effect += m.ExogCoeffs[j+1] * exog.Columns[name][i]
	}
	return effect
}

// fitCSS fits the ARIMA part using Conditional Sum of Squares estimation.
func (m *Model) fitCSS() error {
	y := m.diffData.Values
	n := len(y)
	p := m.Order.P
	sp := m.Order.SP
	period := m.Order.M

	mean := 0.0
	for _, v := range y {
		mean += v
	}
	mean /= float64(n)
	m.Intercept = mean

	// Initialize AR coefficients from the ACF
	if p > 0 {
		acf := stats.ACF(m.diffData, p)
		if acf != nil {
			for i := 0; i < p && i+1 < len(acf); i++ {
				m.ARCoeffs[i] = acf[i+1] * 0.5
			}
		}
	}

	if sp > 0 {
		acf := stats.ACF(m.diffData, sp*period)
		if acf != nil {
			for i := 0; i < sp; i++ {
				idx := (i + 1) * period
				if idx < len(acf) {
					m.SARCoeffs[i] = acf[idx] * 0.5
				}
			}
		}
	}

	for i := range m.MACoeffs {
		m.MACoeffs[i] = 0.1
	}
	for i := range m.SMACoeffs {
		m.SMACoeffs[i] = 0.1
	}

	return m.optimizeCSS(y)
}

// optimizeCSS optimizes the ARMA parameters with adaptive learning and
// momentum, tracking the best solution seen.
func (m *Model) optimizeCSS(y []float64) error {
	n := len(y)
	p := m.Order.P
	q := m.Order.Q
	sp := m.Order.SP
	sq := m.Order.SQ
	period := m.Order.M

	maxIter := 200
	tolerance := 1e-8
	learningRate := 0.005
	momentum := 0.9
	decay := 0.99

	arMomentum := make([]float64, p)
	maMomentum := make([]float64, q)
	sarMomentum := make([]float64, sp)
	smaMomentum := make([]float64, sq)

	// Start index to avoid boundary issues
	startIdx := max(max(p, q), max(sp*period, sq*period))
	if startIdx >= n-10 {
		startIdx = 0
	}

	bestSSE := math.Inf(1)
	bestARCoeffs := make([]float64, p)
	bestMACoeffs := make([]float64, q)
	bestSARCoeffs := make([]float64, sp)
	bestSMACoeffs := make([]float64, sq)
	noImproveCount := 0

	for iter := 0; iter < maxIter; iter++ {
		residuals := make([]float64, n)
		currentSSE := 0.0

		for t := startIdx; t < n; t++ {
			pred := m.predictAt(y, residuals, t, n)
			residuals[t] = y[t] - pred
			currentSSE += residuals[t] * residuals[t]
		}

		if currentSSE < bestSSE {
			bestSSE = currentSSE
			copy(bestARCoeffs, m.ARCoeffs)
			copy(bestMACoeffs, m.MACoeffs)
			copy(bestSARCoeffs, m.SARCoeffs)
			copy(bestSMACoeffs, m.SMACoeffs)
			noImproveCount = 0
		} else {
			noImproveCount++
		}

		if noImproveCount > 20 {
			break
		}

		arGrad := make([]float64, p)
		maGrad := make([]float64, q)
		sarGrad := make([]float64, sp)
		smaGrad := make([]float64, sq)

		for t := startIdx; t < n; t++ {
			for i := 0; i < p && t-i-1 >= 0; i++ {
				arGrad[i] -= 2 * residuals[t] * (y[t-i-1] - m.Intercept)
			}
			for i := 0; i < sp; i++ {
				lag := (i + 1) * period
				if t-lag >= 0 {
					sarGrad[i] -= 2 * residuals[t] * (y[t-lag] - m.Intercept)
				}
			}
			for i := 0; i < q && t-i-1 >= 0; i++ {
				maGrad[i] -= 2 * residuals[t] * residuals[t-i-1]
			}
			for i := 0; i < sq; i++ {
				lag := (i + 1) * period
				if t-lag >= 0 {
					smaGrad[i] -= 2 * residuals[t] * residuals[t-lag]
				}
			}
		}

		for i := 0; i < p; i++ {
			arMomentum[i] = momentum*arMomentum[i] + learningRate*arGrad[i]/float64(n)
			m.ARCoeffs[i] -= arMomentum[i]
			m.ARCoeffs[i] = clamp(m.ARCoeffs[i], -0.99, 0.99)
		}
		for i := 0; i < sp; i++ {
			sarMomentum[i] = momentum*sarMomentum[i] + learningRate*sarGrad[i]/float64(n)
			m.SARCoeffs[i] -= sarMomentum[i]
			m.SARCoeffs[i] = clamp(m.SARCoeffs[i], -0.99, 0.99)
		}
		for i := 0; i < q; i++ {
			maMomentum[i] = momentum*maMomentum[i] + learningRate*maGrad[i]/float64(n)
			m.MACoeffs[i] -= maMomentum[i]
			m.MACoeffs[i] = clamp(m.MACoeffs[i], -0.99, 0.99)
		}
		for i := 0; i < sq; i++ {
			smaMomentum[i] = momentum*smaMomentum[i] + learningRate*smaGrad[i]/float64(n)
			m.SMACoeffs[i] -= smaMomentum[i]
			m.SMACoeffs[i] = clamp(m.SMACoeffs[i], -0.99, 0.99)
		}

		learningRate *= decay

		if iter > 0 && math.Abs(currentSSE-bestSSE) < tolerance {
			break
		}
	}

	copy(m.ARCoeffs, bestARCoeffs)
	copy(m.MACoeffs, bestMACoeffs)
	copy(m.SARCoeffs, bestSARCoeffs)
	copy(m.SMACoeffs, bestSMACoeffs)

	// Final residuals and fitted values over the full range
	m.residuals = make([]float64, n)
	m.fittedVals = make([]float64, n)

	for t := 0; t < n; t++ {
		pred := m.predictAt(y, m.residuals, t, n)
		m.fittedVals[t] = pred
		m.residuals[t] = y[t] - pred
	}

	sse := 0.0
	count := 0
	for t := startIdx; t < n; t++ {
		sse += m.residuals[t] * m.residuals[t]
		count++
	}

	numParams := m.numParams()
	if count > numParams {
		m.Variance = sse / float64(count-numParams)
	} else {
		m.Variance = sse / float64(count)
	}

	if math.IsNaN(m.Variance) || math.IsInf(m.Variance, 0) {
		return fmt.Errorf("%w: residual variance diverged", ErrModelFit)
	}

	return nil
}

// predictAt evaluates the one-step ARMA prediction at index t. Residuals
// beyond limit (future positions during forecasting) are treated as zero.
func (m *Model) predictAt(y, residuals []float64, t, limit int) float64 {
	p := m.Order.P
	q := m.Order.Q
	sp := m.Order.SP
	sq := m.Order.SQ
	period := m.Order.M

	pred := m.Intercept

	for i := 0; i < p && t-i-1 >= 0; i++ {
		pred += m.ARCoeffs[i] * (y[t-i-1] - m.Intercept)
	}
	for i := 0; i < sp; i++ {
		lag := (i + 1) * period
		if t-lag >= 0 {
			pred += m.SARCoeffs[i] * (y[t-lag] - m.Intercept)
		}
	}
	for i := 0; i < q && t-i-1 >= 0; i++ {
		if t-i-1 < limit {
			pred += m.MACoeffs[i] * residuals[t-i-1]
		}
	}
	for i := 0; i < sq; i++ {
		lag := (i + 1) * period
		if t-lag >= 0 && t-lag < limit {
			pred += m.SMACoeffs[i] * residuals[t-lag]
		}
	}

	return pred
}

func (m *Model) numParams() int {
	return m.Order.P + m.Order.Q + m.Order.SP + m.Order.SQ + 1 + len(m.ExogCoeffs)
}

// calculateIC calculates AIC, AICc, and BIC.
func (m *Model) calculateIC() {
	n := len(m.residuals)
	k := m.numParams()

	sse := 0.0
	for _, r := range m.residuals {
		sse += r * r
	}

	if m.Variance > 0 {
		m.LogLik = -float64(n)/2*math.Log(2*math.Pi) - float64(n)/2*math.Log(m.Variance) - sse/(2*m.Variance)
	} else {
		m.LogLik = math.Inf(-1)
	}

	m.AIC = -2*m.LogLik + 2*float64(k)

	kf := float64(k)
	nf := float64(n)
	if nf-kf-1 > 0 {
		m.AICc = m.AIC + 2*kf*(kf+1)/(nf-kf-1)
	} else {
		m.AICc = math.Inf(1)
	}

	m.BIC = -2*m.LogLik + kf*math.Log(nf)
}

// Residuals returns the model residuals on the differenced scale.
func (m *Model) Residuals() []float64 {
	if !m.fitted {
		return nil
	}
	result := make([]float64, len(m.residuals))
	copy(result, m.residuals)
	return result
}

// FittedValues returns the fitted values on the differenced scale.
func (m *Model) FittedValues() []float64 {
	if !m.fitted {
		return nil
	}
	result := make([]float64, len(m.fittedVals))
	copy(result, m.fittedVals)
	return result
}

func clamp(v, lower, upper float64) float64 {
	if v < lower {
		return lower
	}
	if v > upper {
		return upper
	}
	return v
}

func normalQuantile(p float64) float64 {
	return distuv.Normal{Mu: 0, Sigma: 1}.Quantile(p)
}

package stats

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/fheflo1/gokraft/timeseries"
)

var testBase = time.Date(2023, time.July, 1, 0, 0, 0, 0, time.UTC)

func pearson(a, b []float64) float64 {
	n := float64(len(a))
	var ma, mb float64
	for i := range a {
		ma += a[i]
		mb += b[i]
	}
	ma /= n
	mb /= n

	var cov, va, vb float64
	for i := range a {
		cov += (a[i] - ma) * (b[i] - mb)
		va += (a[i] - ma) * (a[i] - ma)
		vb += (b[i] - mb) * (b[i] - mb)
	}
	return cov / math.Sqrt(va*vb)
}

func TestSTLAdditiveIdentity(t *testing.T) {
	n := 1000
	values := make([]float64, n)
	for i := range values {
		h := float64(i)
		values[i] = 100 + 0.01*h + 15*math.Sin(2*math.Pi*h/24) + float64(i%11-5)*0.4
	}
	s := timeseries.New(testBase, values)

	res, err := STL(s, 25, 169, 2)
	if err != nil {
		t.Fatalf("STL failed: %v", err)
	}

	for i := 0; i < n; i++ {
		recon := res.Trend.Values[i] + res.Seasonal.Values[i] + res.Residual.Values[i]
		if math.Abs(recon-values[i]) > 1e-9 {
			t.Fatalf("Additive identity broken at %d: off by %g", i, recon-values[i])
		}
	}
}

func TestSTLRecoversWeeklyCycle(t *testing.T) {
	// A year of hourly data with a pure weekly cycle: a 169-sample trend
	// window averages the cycle away, so it must land in the seasonal term.
	n := 8760
	truth := make([]float64, n)
	values := make([]float64, n)
	for i := range values {
		h := float64(i)
		truth[i] = 50 * math.Sin(2*math.Pi*h/168)
		values[i] = 500 + truth[i] + float64(i%7-3)*0.5
	}
	s := timeseries.New(testBase, values)

	res, err := STL(s, 25, 169, 2)
	if err != nil {
		t.Fatalf("STL failed: %v", err)
	}

	if r := pearson(res.Seasonal.Values, truth); r < 0.9 {
		t.Errorf("Seasonal term should track the weekly cycle, correlation %.3f", r)
	}

	// The trend kernel passes only a fraction of a 168h cycle, so its
	// amplitude must stay well below the cycle's.
	if res.Trend.Std() > 25 {
		t.Errorf("Trend absorbed too much of the cycle, std %.2f", res.Trend.Std())
	}
}

func TestSTLTrendFollowsRamp(t *testing.T) {
	n := 800
	values := make([]float64, n)
	for i := range values {
		values[i] = float64(i)*0.5 + 5*math.Sin(2*math.Pi*float64(i)/24)
	}
	s := timeseries.New(testBase, values)

	res, err := STL(s, 25, 169, 1)
	if err != nil {
		t.Fatalf("STL failed: %v", err)
	}

	// Away from the edges the trend tracks the ramp closely.
	for i := 200; i < 600; i++ {
		if math.Abs(res.Trend.Values[i]-float64(i)*0.5) > 3 {
			t.Fatalf("Trend off the ramp at %d: %f vs %f", i, res.Trend.Values[i], float64(i)*0.5)
		}
	}
}

func TestSTLRobustIterationsDampSpikes(t *testing.T) {
	n := 1200
	values := make([]float64, n)
	for i := range values {
		values[i] = 20 * math.Sin(2*math.Pi*float64(i)/24)
	}
	values[600] += 500

	s := timeseries.New(testBase, values)

	plain, err := STL(s, 25, 169, 1)
	if err != nil {
		t.Fatalf("STL failed: %v", err)
	}
	robust, err := STL(s, 25, 169, 3)
	if err != nil {
		t.Fatalf("STL failed: %v", err)
	}

	// With robustness the spike should end up mostly in the residual.
	if math.Abs(robust.Residual.Values[600]) < math.Abs(plain.Residual.Values[600]) {
		t.Error("Robust iterations should push the spike into the residual")
	}
}

func TestSTLValidation(t *testing.T) {
	s := timeseries.New(testBase, make([]float64, 500))

	cases := []struct {
		seasonal, trend int
	}{
		{24, 169}, // even seasonal
		{2, 169},  // too small
		{25, 168}, // even trend
		{25, 25},  // trend not greater
	}
	for _, c := range cases {
		if _, err := STL(s, c.seasonal, c.trend, 1); !errors.Is(err, timeseries.ErrInvalidParameter) {
			t.Errorf("STL(%d, %d): expected ErrInvalidParameter, got %v", c.seasonal, c.trend, err)
		}
	}

	short := timeseries.New(testBase, make([]float64, 100))
	if _, err := STL(short, 25, 169, 1); !errors.Is(err, timeseries.ErrInsufficientData) {
		t.Errorf("Expected ErrInsufficientData, got %v", err)
	}
}

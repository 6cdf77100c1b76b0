package correlation

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/fheflo1/gokraft/timeseries"
)

var testBase = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

func rampAndSine(n int) (*timeseries.Series, *timeseries.Series) {
	a := make([]float64, n)
	b := make([]float64, n)
	for i := range a {
		a[i] = math.Sin(2*math.Pi*float64(i)/24) + float64(i)*0.01
		b[i] = math.Cos(2*math.Pi*float64(i)/24) - float64(i)*0.02
	}
	return timeseries.New(testBase, a), timeseries.New(testBase, b)
}

func TestRollingSelfCorrelationIsOne(t *testing.T) {
	a, _ := rampAndSine(300)

	res, err := Rolling(a, a, 48, 0)
	if err != nil {
		t.Fatalf("Rolling failed: %v", err)
	}

	for i := 48; i < res.Series.Len(); i++ {
		if math.Abs(res.Series.Values[i]-1) > 1e-9 {
			t.Fatalf("Self-correlation must be 1 at %d, got %f", i, res.Series.Values[i])
		}
	}
}

func TestRollingFirstWindowIsNaN(t *testing.T) {
	a, b := rampAndSine(300)

	res, err := Rolling(a, b, 48, 0)
	if err != nil {
		t.Fatalf("Rolling failed: %v", err)
	}

	for i := 0; i < 48; i++ {
		if !math.IsNaN(res.Series.Values[i]) {
			t.Fatalf("Index %d has no full window yet, expected NaN, got %f", i, res.Series.Values[i])
		}
	}
}

func TestRollingBounds(t *testing.T) {
	a, b := rampAndSine(500)

	res, err := Rolling(a, b, 72, 0)
	if err != nil {
		t.Fatalf("Rolling failed: %v", err)
	}

	for i, v := range res.Series.Values {
		if math.IsNaN(v) {
			continue
		}
		if v < -1-1e-9 || v > 1+1e-9 {
			t.Fatalf("Correlation out of [-1, 1] at %d: %f", i, v)
		}
	}
}

func TestRollingAntiCorrelated(t *testing.T) {
	n := 300
	av := make([]float64, n)
	bv := make([]float64, n)
	for i := range av {
		av[i] = math.Sin(2 * math.Pi * float64(i) / 24)
		bv[i] = -av[i]
	}
	a := timeseries.New(testBase, av)
	b := timeseries.New(testBase, bv)

	res, err := Rolling(a, b, 48, 0)
	if err != nil {
		t.Fatalf("Rolling failed: %v", err)
	}

	if math.Abs(res.Series.Values[100]+1) > 1e-9 {
		t.Errorf("Negated signal should correlate at -1, got %f", res.Series.Values[100])
	}
}

func TestRollingLagRecoversShiftedSignal(t *testing.T) {
	// b leads a by 6 hours; at lag 6 the windows line up perfectly.
	n := 400
	av := make([]float64, n)
	bv := make([]float64, n)
	for i := range av {
		av[i] = math.Sin(2 * math.Pi * float64(i) / 24)
		bv[i] = math.Sin(2 * math.Pi * float64(i+6) / 24)
	}
	a := timeseries.New(testBase, av)
	b := timeseries.New(testBase, bv)

	res, err := Rolling(a, b, 48, 6)
	if err != nil {
		t.Fatalf("Rolling failed: %v", err)
	}

	if math.Abs(res.Series.Values[200]-1) > 1e-9 {
		t.Errorf("Lagged alignment should give correlation 1, got %f", res.Series.Values[200])
	}
}

func TestRollingConstantWindowIsNaN(t *testing.T) {
	n := 200
	av := make([]float64, n)
	bv := make([]float64, n)
	for i := range av {
		av[i] = math.Sin(float64(i))
		bv[i] = 7 // zero variance everywhere
	}
	a := timeseries.New(testBase, av)
	b := timeseries.New(testBase, bv)

	res, err := Rolling(a, b, 24, 0)
	if err != nil {
		t.Fatalf("Rolling failed: %v", err)
	}

	for i := 24; i < res.Series.Len(); i++ {
		if !math.IsNaN(res.Series.Values[i]) {
			t.Fatalf("Degenerate window should be NaN at %d", i)
		}
	}
}

func TestRollingValidation(t *testing.T) {
	a, b := rampAndSine(100)

	if _, err := Rolling(a, b, 2, 0); !errors.Is(err, timeseries.ErrInvalidParameter) {
		t.Errorf("Expected ErrInvalidParameter for tiny window, got %v", err)
	}
	if _, err := Rolling(a, b, 100, 0); !errors.Is(err, timeseries.ErrInsufficientData) {
		t.Errorf("Expected ErrInsufficientData for window >= length, got %v", err)
	}

	short := timeseries.New(testBase, make([]float64, 50))
	if _, err := Rolling(a, short, 10, 0); !errors.Is(err, timeseries.ErrInvalidParameter) {
		t.Errorf("Expected ErrInvalidParameter for length mismatch, got %v", err)
	}

	c := timeseries.New(testBase.Add(time.Hour), make([]float64, 100))
	if _, err := Rolling(a, c, 10, 0); !errors.Is(err, timeseries.ErrInvalidParameter) {
		t.Errorf("Expected ErrInvalidParameter for misaligned index, got %v", err)
	}
}

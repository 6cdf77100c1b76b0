package stats

import (
	"math"
	"math/rand"
	"testing"

	"github.com/fheflo1/gokraft/timeseries"
)

func TestLjungBoxWhiteNoise(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	n := 300
	values := make([]float64, n)
	for i := range values {
		values[i] = rng.NormFloat64()
	}
	s := timeseries.New(testBase, values)

	res := LjungBox(s, 10, 0)
	if res == nil {
		t.Fatal("LjungBox returned nil")
	}

	if res.PValue < 0.01 {
		t.Errorf("White noise should not reject, p=%f", res.PValue)
	}
	if res.DOF != 10 {
		t.Errorf("Expected 10 degrees of freedom, got %d", res.DOF)
	}
}

func TestLjungBoxAutocorrelated(t *testing.T) {
	values := make([]float64, 300)
	for i := range values {
		values[i] = math.Sin(2 * math.Pi * float64(i) / 24)
	}
	s := timeseries.New(testBase, values)

	res := LjungBox(s, 10, 0)
	if res == nil {
		t.Fatal("LjungBox returned nil")
	}

	if res.PValue > 1e-6 {
		t.Errorf("A pure cycle must reject decisively, p=%f", res.PValue)
	}
	if res.Statistic <= 0 {
		t.Errorf("Statistic should be positive, got %f", res.Statistic)
	}
}

func TestLjungBoxFitdfReducesDOF(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	values := make([]float64, 200)
	for i := range values {
		values[i] = rng.NormFloat64()
	}
	s := timeseries.New(testBase, values)

	res := LjungBox(s, 10, 3)
	if res == nil {
		t.Fatal("LjungBox returned nil")
	}
	if res.DOF != 7 {
		t.Errorf("Expected DOF 7 after fitting 3 parameters, got %d", res.DOF)
	}
}

func TestLjungBoxDegenerate(t *testing.T) {
	short := timeseries.New(testBase, []float64{1, 2, 3})
	if LjungBox(short, 5, 0) != nil {
		t.Error("Too-short series should yield nil")
	}

	s := timeseries.New(testBase, make([]float64, 100))
	if LjungBox(s, 5, 0) != nil {
		t.Error("Zero-variance series should yield nil")
	}
}

package spectral

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/fheflo1/gokraft/timeseries"
)

var testBase = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

func dailyCycle(n int) *timeseries.Series {
	values := make([]float64, n)
	for i := range values {
		values[i] = math.Sin(2 * math.Pi * float64(i) / 24)
	}
	return timeseries.New(testBase, values)
}

func TestSpectrogramSegmentCount(t *testing.T) {
	// 30 days, weekly window, 50% overlap: hop 84, (720-168)/84+1 = 7.
	s := dailyCycle(720)

	res, err := Spectrogram(s, 168, 50)
	if err != nil {
		t.Fatalf("Spectrogram failed: %v", err)
	}

	if res.Segments() != 7 {
		t.Errorf("Expected 7 segments, got %d", res.Segments())
	}
	if len(res.Frequencies) != 168/2+1 {
		t.Errorf("Expected %d frequency bins, got %d", 168/2+1, len(res.Frequencies))
	}
	if len(res.Power) != len(res.Frequencies) {
		t.Errorf("Power rows should match frequency bins")
	}
	if res.Overlap != 84 {
		t.Errorf("Expected 84 overlapping samples, got %d", res.Overlap)
	}
}

func TestSpectrogramFindsDailyPeak(t *testing.T) {
	s := dailyCycle(720)

	res, err := Spectrogram(s, 168, 50)
	if err != nil {
		t.Fatalf("Spectrogram failed: %v", err)
	}

	// A 24h cycle in a 168-sample window lands exactly in bin 7.
	for w := 0; w < res.Segments(); w++ {
		best := 0
		for i := range res.Power {
			if res.Power[i][w] > res.Power[best][w] {
				best = i
			}
		}
		if best != 7 {
			t.Errorf("Segment %d: expected peak at bin 7 (1/24 cycles/hour), got %d", w, best)
		}
	}

	if math.Abs(res.Frequencies[7]-1.0/24) > 1e-12 {
		t.Errorf("Bin 7 should be 1/24 cycles/hour, got %f", res.Frequencies[7])
	}
}

func TestSpectrogramSegmentTimes(t *testing.T) {
	s := dailyCycle(720)

	res, err := Spectrogram(s, 168, 50)
	if err != nil {
		t.Fatalf("Spectrogram failed: %v", err)
	}

	if !res.Times[0].Equal(testBase) {
		t.Errorf("First segment should start at the series start, got %v", res.Times[0])
	}
	hop := 84 * time.Hour
	if !res.Times[1].Equal(testBase.Add(hop)) {
		t.Errorf("Second segment should start one hop later, got %v", res.Times[1])
	}
}

func TestSpectrogramNoOverlap(t *testing.T) {
	s := dailyCycle(480)

	res, err := Spectrogram(s, 120, 0)
	if err != nil {
		t.Fatalf("Spectrogram failed: %v", err)
	}
	if res.Segments() != 4 {
		t.Errorf("Expected 4 disjoint segments, got %d", res.Segments())
	}
}

func TestSpectrogramValidation(t *testing.T) {
	s := dailyCycle(100)

	if _, err := Spectrogram(s, 2, 50); !errors.Is(err, timeseries.ErrInvalidParameter) {
		t.Errorf("Expected ErrInvalidParameter for tiny segment, got %v", err)
	}
	if _, err := Spectrogram(s, 48, 95); !errors.Is(err, timeseries.ErrInvalidParameter) {
		t.Errorf("Expected ErrInvalidParameter for 95%% overlap, got %v", err)
	}
	if _, err := Spectrogram(s, 168, 50); !errors.Is(err, timeseries.ErrInsufficientData) {
		t.Errorf("Expected ErrInsufficientData for short series, got %v", err)
	}
}

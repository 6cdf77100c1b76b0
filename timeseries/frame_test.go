package timeseries

import (
	"errors"
	"testing"
	"time"
)

func testFrame(t *testing.T) *Frame {
	t.Helper()
	stamps := []time.Time{testBase, testBase.Add(time.Hour), testBase.Add(2 * time.Hour)}
	f, err := NewFrame(stamps, []string{"temp", "wind"}, map[string][]float64{
		"temp": {-2, -1, 0},
		"wind": {5, 6, 7},
	})
	if err != nil {
		t.Fatalf("NewFrame failed: %v", err)
	}
	return f
}

func TestFrameColumn(t *testing.T) {
	f := testFrame(t)

	temp, err := f.Column("temp")
	if err != nil {
		t.Fatalf("Column failed: %v", err)
	}
	if temp.Name != "temp" || temp.Values[2] != 0 {
		t.Errorf("Unexpected column: %+v", temp)
	}

	_, err = f.Column("humidity")
	if !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("Unknown column should be an error, got %v", err)
	}
}

func TestFrameSelect(t *testing.T) {
	f := testFrame(t)

	sub, err := f.Select("wind")
	if err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	if len(sub.Names) != 1 || sub.Names[0] != "wind" {
		t.Errorf("Expected only wind, got %v", sub.Names)
	}

	if _, err := f.Select("wind", "missing"); err == nil {
		t.Error("Select with unknown column should fail")
	}
}

func TestFrameAddColumn(t *testing.T) {
	f := testFrame(t)

	if err := f.AddColumn("precip", []float64{0, 0.2, 0}); err != nil {
		t.Fatalf("AddColumn failed: %v", err)
	}
	if _, err := f.Column("precip"); err != nil {
		t.Errorf("Added column should be readable: %v", err)
	}

	if err := f.AddColumn("precip", []float64{1, 2, 3}); err == nil {
		t.Error("Duplicate column should be an error")
	}
	if err := f.AddColumn("short", []float64{1}); err == nil {
		t.Error("Length mismatch should be an error")
	}
}

func TestFrameSliceTime(t *testing.T) {
	f := testFrame(t)

	sub := f.SliceTime(testBase.Add(time.Hour), testBase.Add(2*time.Hour))
	if sub.Len() != 2 {
		t.Fatalf("Expected 2 rows, got %d", sub.Len())
	}
	if sub.Columns["temp"][0] != -1 {
		t.Errorf("Expected temp -1, got %f", sub.Columns["temp"][0])
	}

	empty := f.SliceTime(testBase.Add(100*time.Hour), testBase.Add(200*time.Hour))
	if empty.Len() != 0 {
		t.Errorf("Expected empty slice, got %d rows", empty.Len())
	}
}

func TestNewFrameValidation(t *testing.T) {
	stamps := []time.Time{testBase}
	_, err := NewFrame(stamps, []string{"a"}, map[string][]float64{"a": {1, 2}})
	if !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("Expected ErrInvalidParameter for length mismatch, got %v", err)
	}

	_, err = NewFrame(stamps, []string{"a"}, map[string][]float64{})
	if !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("Expected ErrInvalidParameter for missing column, got %v", err)
	}
}

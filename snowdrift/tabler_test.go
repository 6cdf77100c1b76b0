package snowdrift

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/fheflo1/gokraft/timeseries"
)

func TestSeasonBoundary(t *testing.T) {
	cases := []struct {
		ts   time.Time
		want int
	}{
		{time.Date(2020, time.June, 30, 23, 0, 0, 0, time.UTC), 2019},
		{time.Date(2020, time.July, 1, 0, 0, 0, 0, time.UTC), 2020},
		{time.Date(2021, time.January, 15, 12, 0, 0, 0, time.UTC), 2020},
		{time.Date(2021, time.December, 31, 0, 0, 0, 0, time.UTC), 2021},
	}

	for _, c := range cases {
		if got := Season(c.ts); got != c.want {
			t.Errorf("Season(%v): expected %d, got %d", c.ts, c.want, got)
		}
	}
}

func TestSectorIndex(t *testing.T) {
	cases := []struct {
		direction float64
		want      int
	}{
		{0, 0},      // N
		{11.2, 0},   // still N
		{11.3, 1},   // NNE
		{22.5, 1},   // NNE
		{90, 4},     // E
		{180, 8},    // S
		{270, 12},   // W
		{348.7, 15}, // NNW
		{350, 0},    // wraps back to N
		{359.9, 0},
	}

	for _, c := range cases {
		if got := SectorIndex(c.direction); got != c.want {
			t.Errorf("SectorIndex(%.1f): expected %d (%s), got %d (%s)",
				c.direction, c.want, SectorNames[c.want], got, SectorNames[got])
		}
	}
}

func TestSWEThreshold(t *testing.T) {
	if got := SWE(2.0, -5); got != 2.0 {
		t.Errorf("Cold precipitation is snow: expected 2.0, got %f", got)
	}
	if got := SWE(2.0, 0.9); got != 2.0 {
		t.Errorf("0.9°C is still below the threshold: expected 2.0, got %f", got)
	}
	if got := SWE(2.0, 1.0); got != 0 {
		t.Errorf("At 1°C precipitation is rain: expected 0, got %f", got)
	}
}

func TestQupotSteadyWind(t *testing.T) {
	// 720 hours of steady 5 m/s wind.
	ws := make([]float64, 720)
	for i := range ws {
		ws[i] = 5
	}

	q := Qupot(ws)
	if q < 5000 || q > 5050 {
		t.Errorf("Expected Qupot near 5022 for 720h at 5 m/s, got %f", q)
	}
}

func TestTransportSaturation(t *testing.T) {
	p := DefaultParams()

	// Plenty of snow: transport is wind-limited.
	ws := make([]float64, 720)
	for i := range ws {
		ws[i] = 5
	}
	qt, qupot, qspot, srwe := Transport(ws, 100, p)

	if qspot != 0.5*p.T*100 {
		t.Errorf("Expected Qspot %f, got %f", 0.5*p.T*100, qspot)
	}
	if srwe != p.Theta*100 {
		t.Errorf("Expected Srwe %f, got %f", p.Theta*100, srwe)
	}
	if qupot >= qspot {
		t.Fatalf("Test setup expects wind-limited transport, Qupot=%f Qspot=%f", qupot, qspot)
	}
	// The fetch damping factor at F/T=10 is essentially 1.
	if math.Abs(qt-qupot) > 1e-3*qupot {
		t.Errorf("Wind-limited transport should approach Qupot: %f vs %f", qt, qupot)
	}

	// Almost no snow: transport is supply-limited.
	qt2, qupot2, qspot2, srwe2 := Transport(ws, 0.001, p)
	if qupot2 <= qspot2 {
		t.Fatalf("Test setup expects supply-limited transport")
	}
	want := 0.5 * p.T * srwe2 * (1 - math.Pow(0.14, p.F/p.T))
	if math.Abs(qt2-want) > 1e-9 {
		t.Errorf("Supply-limited transport: expected %f, got %f", want, qt2)
	}
}

func TestSectorTransportDistribution(t *testing.T) {
	ws := []float64{10, 10, 10}
	wd := []float64{0, 90, 90}

	sectors := SectorTransport(ws, wd)

	if sectors[0] <= 0 {
		t.Error("North sector should carry transport")
	}
	if math.Abs(sectors[4]-2*sectors[0]) > 1e-9 {
		t.Errorf("East sector saw twice the hours: %f vs %f", sectors[4], sectors[0])
	}

	total := 0.0
	for _, v := range sectors {
		total += v
	}
	if math.Abs(total-Qupot(ws)) > 1e-9 {
		t.Errorf("Sector transport must sum to Qupot: %f vs %f", total, Qupot(ws))
	}
}

func seasonFrame(t *testing.T, start time.Time, hours int) *timeseries.Frame {
	t.Helper()

	stamps := make([]time.Time, hours)
	ws := make([]float64, hours)
	wd := make([]float64, hours)
	precip := make([]float64, hours)
	temp := make([]float64, hours)

	for i := 0; i < hours; i++ {
		stamps[i] = start.Add(time.Duration(i) * time.Hour)
		ws[i] = 6
		wd[i] = float64((i * 45) % 360)
		temp[i] = -3
		if i%10 == 0 {
			precip[i] = 1
		}
	}

	f, err := timeseries.NewFrame(stamps,
		[]string{ColWindSpeed, ColWindDirection, ColPrecipitation, ColTemperature},
		map[string][]float64{
			ColWindSpeed:     ws,
			ColWindDirection: wd,
			ColPrecipitation: precip,
			ColTemperature:   temp,
		})
	if err != nil {
		t.Fatalf("NewFrame failed: %v", err)
	}
	return f
}

func TestAnalyzeBucketsSeasons(t *testing.T) {
	// 60 days straddling July 1: two snow-years.
	start := time.Date(2022, time.June, 1, 0, 0, 0, 0, time.UTC)
	f := seasonFrame(t, start, 60*24)

	res, err := Analyze(f, DefaultParams())
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if len(res.Seasons) != 2 {
		t.Fatalf("Expected 2 seasons, got %d", len(res.Seasons))
	}
	if res.Seasons[0].Season != 2021 || res.Seasons[1].Season != 2022 {
		t.Errorf("Expected seasons [2021 2022], got [%d %d]",
			res.Seasons[0].Season, res.Seasons[1].Season)
	}

	for _, s := range res.Seasons {
		if s.SWESum <= 0 {
			t.Errorf("Season %d: sub-zero precipitation should accumulate SWE", s.Season)
		}
		if s.Qt <= 0 || s.Qupot <= 0 {
			t.Errorf("Season %d: expected positive transport", s.Season)
		}
	}

	// Sector means are per-season averages.
	var sum0 float64
	for _, s := range res.Seasons {
		sum0 += s.Sectors[0]
	}
	if math.Abs(res.SectorMeans[0]-sum0/2) > 1e-9 {
		t.Errorf("Sector mean should average the seasons: %f vs %f", res.SectorMeans[0], sum0/2)
	}
}

func TestAnalyzeValidation(t *testing.T) {
	start := time.Date(2022, time.January, 1, 0, 0, 0, 0, time.UTC)
	f := seasonFrame(t, start, 48)

	if _, err := Analyze(f, Params{T: -1, F: 30000, Theta: 0.5}); !errors.Is(err, timeseries.ErrInvalidParameter) {
		t.Errorf("Expected ErrInvalidParameter for bad params, got %v", err)
	}
	if _, err := Analyze(f, Params{T: 3000, F: 30000, Theta: 1.5}); !errors.Is(err, timeseries.ErrInvalidParameter) {
		t.Errorf("Expected ErrInvalidParameter for theta > 1, got %v", err)
	}

	missing, err := timeseries.NewFrame(f.Timestamps, []string{ColWindSpeed},
		map[string][]float64{ColWindSpeed: f.Columns[ColWindSpeed]})
	if err != nil {
		t.Fatalf("NewFrame failed: %v", err)
	}
	if _, err := Analyze(missing, DefaultParams()); !errors.Is(err, timeseries.ErrInvalidParameter) {
		t.Errorf("Expected ErrInvalidParameter for missing columns, got %v", err)
	}
}

// Package main demonstrates the analysis pipeline on a synthetic year of
// hourly Norwegian energy and weather data.
package main

import (
	"fmt"
	"math"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/fheflo1/gokraft/anomaly"
	"github.com/fheflo1/gokraft/correlation"
	"github.com/fheflo1/gokraft/sarimax"
	"github.com/fheflo1/gokraft/smoothing"
	"github.com/fheflo1/gokraft/snowdrift"
	"github.com/fheflo1/gokraft/spectral"
	"github.com/fheflo1/gokraft/stats"
	"github.com/fheflo1/gokraft/timeseries"
)

const hoursPerYear = 8760

// synthesize builds one snow-year of hourly consumption and weather data
// with daily and weekly cycles, a winter temperature dip, and a handful of
// injected spikes for the outlier detectors to find.
func synthesize() *timeseries.Frame {
	rng := rand.New(rand.NewSource(42))
	base := time.Date(2023, time.July, 1, 0, 0, 0, 0, time.UTC)

	stamps := make([]time.Time, hoursPerYear)
	consumption := make([]float64, hoursPerYear)
	temperature := make([]float64, hoursPerYear)
	windSpeed := make([]float64, hoursPerYear)
	windDir := make([]float64, hoursPerYear)
	precip := make([]float64, hoursPerYear)

	for i := 0; i < hoursPerYear; i++ {
		stamps[i] = base.Add(time.Duration(i) * time.Hour)
		h := float64(i)

		annual := math.Cos(2 * math.Pi * h / hoursPerYear) // peaks midwinter
		daily := math.Sin(2 * math.Pi * h / 24)
		weekly := math.Sin(2 * math.Pi * h / 168)

		temperature[i] = 5 - 12*annual + 4*daily + rng.NormFloat64()*1.5
		consumption[i] = 1200 + 300*annual + 150*daily + 60*weekly -
			8*temperature[i] + rng.NormFloat64()*25

		windSpeed[i] = math.Abs(6 + 3*math.Sin(2*math.Pi*h/480) + rng.NormFloat64()*2)
		windDir[i] = math.Mod(200+60*math.Sin(2*math.Pi*h/720)+rng.NormFloat64()*30+360, 360)
		if rng.Float64() < 0.12 {
			precip[i] = rng.Float64() * 2.5
		}
	}

	// Inject a few spikes
	for _, idx := range []int{500, 2500, 5000, 7000} {
		consumption[idx] += 400
	}

	frame, err := timeseries.NewFrame(stamps,
		[]string{"consumption", snowdrift.ColTemperature, snowdrift.ColWindSpeed,
			snowdrift.ColWindDirection, snowdrift.ColPrecipitation},
		map[string][]float64{
			"consumption":              consumption,
			snowdrift.ColTemperature:   temperature,
			snowdrift.ColWindSpeed:     windSpeed,
			snowdrift.ColWindDirection: windDir,
			snowdrift.ColPrecipitation: precip,
		})
	if err != nil {
		panic(err)
	}
	return frame
}

func banner(title string) {
	fmt.Printf("\n%s\n%s\n%s\n", strings.Repeat("=", 72), title, strings.Repeat("=", 72))
}

func main() {
	frame := synthesize()
	consumption, _ := frame.Column("consumption")
	temperature, _ := frame.Column(snowdrift.ColTemperature)

	page := components.NewPage()
	page.PageTitle = "gokraft demo"

	banner("DECOMPOSITION")
	stl, err := stats.STL(consumption, 25, 169, 2)
	if err != nil {
		fmt.Println("decomposition failed:", err)
		os.Exit(1)
	}
	fmt.Printf("Trend range:    [%.1f, %.1f]\n", stl.Trend.Min(), stl.Trend.Max())
	fmt.Printf("Seasonal range: [%.1f, %.1f]\n", stl.Seasonal.Min(), stl.Seasonal.Max())
	fmt.Printf("Residual std:   %.2f\n", stl.Residual.Std())
	page.AddCharts(decompositionChart(stl))

	banner("SPECTROGRAM")
	spec, err := spectral.Spectrogram(consumption, 168, 50)
	if err != nil {
		fmt.Println("spectrogram failed:", err)
		os.Exit(1)
	}
	fmt.Printf("Segments: %d, frequency bins: %d\n", spec.Segments(), len(spec.Frequencies))

	banner("SMOOTHING AND OUTLIERS")
	smoothed, err := smoothing.SmoothDCT(consumption, 0.05)
	if err != nil {
		fmt.Println("smoothing failed:", err)
		os.Exit(1)
	}
	fmt.Printf("Smoothed std: %.2f (raw %.2f)\n", smoothed.Std(), consumption.Std())

	outliers, err := anomaly.DetectOutliers(consumption, 0.05, 3)
	if err != nil {
		fmt.Println("outlier detection failed:", err)
		os.Exit(1)
	}
	fmt.Printf("SPC outliers: %d (limits %.1f .. %.1f)\n", outliers.Count(), outliers.LCL, outliers.UCL)

	anomalies, err := anomaly.DetectAnomalies(consumption, 0.001)
	if err != nil {
		fmt.Println("anomaly detection failed:", err)
		os.Exit(1)
	}
	fmt.Printf("LOF anomalies: %d (k=%d)\n", anomalies.Count(), anomalies.K)
	page.AddCharts(outlierChart(consumption, outliers))

	banner("CORRELATION")
	corr, err := correlation.Rolling(temperature, consumption, 168, 0)
	if err != nil {
		fmt.Println("correlation failed:", err)
		os.Exit(1)
	}
	fmt.Printf("Weekly-window temperature/consumption correlation: median %.3f\n",
		corr.Series.DropNaN().Median())

	banner("SNOW DRIFT")
	drift, err := snowdrift.Analyze(frame, snowdrift.DefaultParams())
	if err != nil {
		fmt.Println("snow-drift analysis failed:", err)
		os.Exit(1)
	}
	for _, s := range drift.Seasons {
		fmt.Printf("Season %d/%d: SWE=%.1f mm  Qupot=%.0f  Qt=%.0f kg/m\n",
			s.Season, s.Season+1, s.SWESum, s.Qupot, s.Qt)
	}
	page.AddCharts(windRoseChart(drift))

	banner("FORECAST")
	trainEnd := frame.Timestamps[hoursPerYear-49]
	series, exog, err := sarimax.PrepareData(frame, "consumption",
		frame.Timestamps[hoursPerYear-24*21-48], trainEnd, []string{snowdrift.ColTemperature})
	if err != nil {
		fmt.Println("prepare failed:", err)
		os.Exit(1)
	}

	model, err := sarimax.New(1, 0, 1, 1, 0, 1, 24)
	if err != nil {
		fmt.Println("model construction failed:", err)
		os.Exit(1)
	}
	if err := model.Fit(series, exog); err != nil {
		fmt.Println("fit failed:", err)
		os.Exit(1)
	}
	fmt.Print(model.Summary())

	futureExog := frame.SliceTime(trainEnd.Add(time.Hour), trainEnd.Add(48*time.Hour))
	exogFuture, err := futureExog.Select(snowdrift.ColTemperature)
	if err != nil {
		fmt.Println("future exog failed:", err)
		os.Exit(1)
	}
	fc, err := model.Forecast(48, 0.95, exogFuture)
	if err != nil {
		fmt.Println("forecast failed:", err)
		os.Exit(1)
	}
	fmt.Printf("48h forecast: first=%.1f last=%.1f band width at h=48: %.1f\n",
		fc.Mean.Values[0], fc.Mean.Values[47], fc.Upper.Values[47]-fc.Lower.Values[47])
	page.AddCharts(forecastChart(series, fc))

	out, err := os.Create("report.html")
	if err != nil {
		fmt.Println("report failed:", err)
		os.Exit(1)
	}
	defer out.Close()
	if err := page.Render(out); err != nil {
		fmt.Println("render failed:", err)
		os.Exit(1)
	}
	fmt.Println("\nWrote report.html")
}

func lineData(values []float64) []opts.LineData {
	data := make([]opts.LineData, len(values))
	for i, v := range values {
		data[i] = opts.LineData{Value: v}
	}
	return data
}

func hourLabels(stamps []time.Time) []string {
	labels := make([]string, len(stamps))
	for i, ts := range stamps {
		labels[i] = ts.Format("01-02 15:04")
	}
	return labels
}

func decompositionChart(stl *stats.STLResult) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Consumption decomposition"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider"}),
	)
	line.SetXAxis(hourLabels(stl.Original.Timestamps)).
		AddSeries("original", lineData(stl.Original.Values)).
		AddSeries("trend", lineData(stl.Trend.Values)).
		AddSeries("seasonal", lineData(stl.Seasonal.Values))
	return line
}

func outlierChart(s *timeseries.Series, res *anomaly.OutlierResult) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Control limits",
			Subtitle: fmt.Sprintf("%d outliers", res.Count()),
		}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider"}),
	)
	n := res.Residual.Len()
	ucl := make([]float64, n)
	lcl := make([]float64, n)
	for i := range ucl {
		ucl[i] = res.UCL
		lcl[i] = res.LCL
	}
	line.SetXAxis(hourLabels(res.Residual.Timestamps)).
		AddSeries("residual", lineData(res.Residual.Values)).
		AddSeries("UCL", lineData(ucl)).
		AddSeries("LCL", lineData(lcl))
	return line
}

func windRoseChart(res *snowdrift.Result) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Mean snow transport by sector"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "kg/m"}),
	)
	data := make([]opts.BarData, snowdrift.Sectors)
	for i, v := range res.SectorMeans {
		data[i] = opts.BarData{Value: v}
	}
	bar.SetXAxis(snowdrift.SectorNames[:]).AddSeries("transport", data)
	return bar
}

func forecastChart(history *timeseries.Series, fc *sarimax.ForecastResult) *charts.Line {
	tail := history.Slice(history.Len()-168, history.Len())

	labels := hourLabels(tail.Timestamps)
	labels = append(labels, hourLabels(fc.Mean.Timestamps)...)

	pad := func(n int) []float64 {
		vals := make([]float64, n)
		for i := range vals {
			vals[i] = math.NaN()
		}
		return vals
	}
	histPad := pad(tail.Len())
	futPad := pad(fc.Mean.Len())

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "48h consumption forecast"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
	)
	line.SetXAxis(labels).
		AddSeries("history", lineData(append(append([]float64(nil), tail.Values...), futPad...))).
		AddSeries("forecast", lineData(append(append([]float64(nil), histPad...), fc.Mean.Values...)),
			charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)})).
		AddSeries("upper", lineData(append(append([]float64(nil), histPad...), fc.Upper.Values...))).
		AddSeries("lower", lineData(append(append([]float64(nil), histPad...), fc.Lower.Values...)))
	return line
}

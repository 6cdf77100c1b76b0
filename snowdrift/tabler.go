// Package snowdrift implements a Tabler-style directional snow-transport model.
package snowdrift

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/fheflo1/gokraft/timeseries"
)

// Fixed empirical constants of the Tabler drift model. Do not tune these:
// the exponent and divisor encode the published wind-transport relation.
const (
	transportExponent = 3.8
	transportDivisor  = 233847
	stepSeconds       = 3600 // hourly observations

	// snowTempThreshold is the temperature (°C) below which precipitation
	// counts as snow.
	snowTempThreshold = 1.0
)

// Sectors is the number of compass sectors the wind rose is divided into.
const Sectors = 16

// SectorNames lists the 16 compass sectors in index order.
var SectorNames = [Sectors]string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

// Required column names for Analyze input frames.
const (
	ColWindSpeed     = "windspeed_10m"
	ColWindDirection = "winddirection_10m"
	ColPrecipitation = "precipitation"
	ColTemperature   = "temperature_2m"
)

// Params holds the site parameters of the transport model.
type Params struct {
	T     float64 // fetch-length constant (m)
	F     float64 // fetch distance (m)
	Theta float64 // relocatable fraction of the snowpack
}

// DefaultParams returns the standard site parameters.
func DefaultParams() Params {
	return Params{T: 3000, F: 30000, Theta: 0.5}
}

// SeasonRecord aggregates one snow-year (July 1 through June 30).
type SeasonRecord struct {
	Season  int     // starting year of the snow-year
	SWESum  float64 // accumulated snow-water-equivalent (mm)
	Qupot   float64 // potential transport
	Qspot   float64 // saturation transport
	Srwe    float64 // relocatable snow reservoir
	Qt      float64 // actual transport (kg/m)
	Sectors [Sectors]float64
}

// Result holds per-season transport plus the across-season mean sector
// distribution.
type Result struct {
	Seasons     []SeasonRecord
	SectorMeans [Sectors]float64
}

// SWE returns the snow-water-equivalent of one hourly observation:
// precipitation counts only below the snow temperature threshold.
func SWE(precip, temp float64) float64 {
	if temp < snowTempThreshold {
		return precip
	}
	return 0
}

// Season returns the snow-year a timestamp belongs to: July and later map
// to the timestamp's own year, January through June to the year before.
func Season(t time.Time) int {
	if t.Month() >= time.July {
		return t.Year()
	}
	return t.Year() - 1
}

// SectorIndex maps a wind direction in degrees to one of 16 compass
// sectors of 22.5° centered on N, NNE, ..., NNW.
func SectorIndex(direction float64) int {
	return int(math.Mod(direction+11.25, 360) / 22.5)
}

// Qupot returns the potential transport of a wind-speed record:
// Σ(u^3.8·Δt)/233847 with Δt = 3600 s.
func Qupot(windSpeed []float64) float64 {
	sum := 0.0
	for _, u := range windSpeed {
		sum += math.Pow(u, transportExponent) * stepSeconds
	}
	return sum / transportDivisor
}

// SectorTransport accumulates potential transport per compass sector from
// paired wind speed and direction records.
func SectorTransport(windSpeed, windDirection []float64) [Sectors]float64 {
	var sectors [Sectors]float64
	for i, u := range windSpeed {
		idx := SectorIndex(windDirection[i])
		sectors[idx] += math.Pow(u, transportExponent) * stepSeconds / transportDivisor
	}
	return sectors
}

// Transport computes the actual seasonal transport Qt from a wind record
// and the season's accumulated SWE. The saturation transport is
// Qspot = 0.5·T·SWE and the relocatable reservoir Srwe = θ·SWE; when the
// potential transport exceeds saturation, the reservoir limits it. The
// final transport is damped by the fetch ratio: Qt = Qinf·(1−0.14^(F/T)).
func Transport(windSpeed []float64, sweTotal float64, p Params) (qt, qupot, qspot, srwe float64) {
	qupot = Qupot(windSpeed)
	qspot = 0.5 * p.T * sweTotal
	srwe = p.Theta * sweTotal

	var qinf float64
	if qupot > qspot {
		qinf = 0.5 * p.T * srwe
	} else {
		qinf = qupot
	}

	qt = qinf * (1 - math.Pow(0.14, p.F/p.T))
	return qt, qupot, qspot, srwe
}

// Analyze buckets an hourly meteorological frame into snow-years and
// computes per-season transport plus the mean 16-sector distribution. The
// frame must carry the columns windspeed_10m, winddirection_10m,
// precipitation, and temperature_2m.
func Analyze(f *timeseries.Frame, p Params) (*Result, error) {
	if p.T <= 0 || p.F <= 0 || p.Theta < 0 || p.Theta > 1 {
		return nil, fmt.Errorf("%w: snow-drift params %+v", timeseries.ErrInvalidParameter, p)
	}

	ws, err := f.Column(ColWindSpeed)
	if err != nil {
		return nil, err
	}
	wd, err := f.Column(ColWindDirection)
	if err != nil {
		return nil, err
	}
	precip, err := f.Column(ColPrecipitation)
	if err != nil {
		return nil, err
	}
	temp, err := f.Column(ColTemperature)
	if err != nil {
		return nil, err
	}

	if f.Len() == 0 {
		return nil, fmt.Errorf("%w: empty frame", timeseries.ErrInsufficientData)
	}

	type bucket struct {
		ws, wd []float64
		swe    float64
	}
	buckets := map[int]*bucket{}

	for i, ts := range f.Timestamps {
		season := Season(ts)
		b := buckets[season]
		if b == nil {
			b = &bucket{}
			buckets[season] = b
		}
		b.ws = append(b.ws, ws.Values[i])
		b.wd = append(b.wd, wd.Values[i])
		b.swe += SWE(precip.Values[i], temp.Values[i])
	}

	seasons := make([]int, 0, len(buckets))
	for season := range buckets {
		seasons = append(seasons, season)
	}
	sort.Ints(seasons)

	result := &Result{}
	for _, season := range seasons {
		b := buckets[season]
		qt, qupot, qspot, srwe := Transport(b.ws, b.swe, p)

		rec := SeasonRecord{
			Season:  season,
			SWESum:  b.swe,
			Qupot:   qupot,
			Qspot:   qspot,
			Srwe:    srwe,
			Qt:      qt,
			Sectors: SectorTransport(b.ws, b.wd),
		}
		result.Seasons = append(result.Seasons, rec)

		for i, v := range rec.Sectors {
			result.SectorMeans[i] += v
		}
	}

	for i := range result.SectorMeans {
		result.SectorMeans[i] /= float64(len(seasons))
	}

	return result, nil
}

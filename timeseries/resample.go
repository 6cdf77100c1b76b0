package timeseries

import (
	"fmt"
	"sort"
	"time"

	"gonum.org/v1/gonum/interp"
)

// Regularize normalizes an irregular, possibly duplicate-stamped series onto
// a fixed-frequency grid. Duplicate timestamps are summed (energy quantities
// are additive), observations are sorted, and grid points without an exact
// observation are filled by linear interpolation between neighbors. Grid
// points before the first or after the last observation take the nearest end
// value.
func Regularize(timestamps []time.Time, values []float64, interval time.Duration) (*Series, error) {
	if len(timestamps) != len(values) {
		return nil, fmt.Errorf("%w: timestamps and values differ in length", ErrInvalidParameter)
	}
	if interval <= 0 {
		return nil, fmt.Errorf("%w: interval must be positive", ErrInvalidParameter)
	}

	xs, ys := collapseDuplicates(timestamps, values)
	if len(xs) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 distinct timestamps, got %d", ErrInsufficientData, len(xs))
	}

	grid := buildGrid(xs[0], xs[len(xs)-1], interval)
	vals, err := interpolateOnGrid(xs, ys, grid)
	if err != nil {
		return nil, err
	}

	stamps := make([]time.Time, len(grid))
	for i, x := range grid {
		stamps[i] = time.Unix(int64(x), 0).UTC()
	}

	return &Series{Timestamps: stamps, Values: vals}, nil
}

// RegularizeSeries is a convenience wrapper around Regularize for a Series.
func RegularizeSeries(s *Series, interval time.Duration) (*Series, error) {
	out, err := Regularize(s.Timestamps, s.Values, interval)
	if err != nil {
		return nil, err
	}
	out.Name = s.Name
	return out, nil
}

// RegularizeFrame applies Regularize to every column of a frame, producing a
// frame on a shared fixed-frequency grid.
func RegularizeFrame(f *Frame, interval time.Duration) (*Frame, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("%w: interval must be positive", ErrInvalidParameter)
	}

	xs, _ := collapseDuplicates(f.Timestamps, make([]float64, len(f.Timestamps)))
	if len(xs) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 distinct timestamps, got %d", ErrInsufficientData, len(xs))
	}

	grid := buildGrid(xs[0], xs[len(xs)-1], interval)
	stamps := make([]time.Time, len(grid))
	for i, x := range grid {
		stamps[i] = time.Unix(int64(x), 0).UTC()
	}

	out := &Frame{Timestamps: stamps, Columns: map[string][]float64{}}
	for _, name := range f.Names {
		cx, cy := collapseDuplicates(f.Timestamps, f.Columns[name])
		vals, err := interpolateOnGrid(cx, cy, grid)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", name, err)
		}
		out.Names = append(out.Names, name)
		out.Columns[name] = vals
	}

	return out, nil
}

// AlignNearest reindexes b onto a's timestamps using nearest-neighbor
// matching within tolerance. Points of a with no match in b inside the
// tolerance are dropped from both outputs. Returns ErrNoOverlap when nothing
// matches.
func AlignNearest(a, b *Series, tolerance time.Duration) (*Series, *Series, error) {
	if tolerance < 0 {
		return nil, nil, fmt.Errorf("%w: tolerance must be non-negative", ErrInvalidParameter)
	}
	if a.Len() == 0 || b.Len() == 0 {
		return nil, nil, fmt.Errorf("%w: empty input series", ErrNoOverlap)
	}

	bt := b.Timestamps
	var stamps []time.Time
	var av, bv []float64

	for i, ts := range a.Timestamps {
		j := sort.Search(len(bt), func(k int) bool { return !bt[k].Before(ts) })

		best, bestDiff := -1, tolerance+1
		if j < len(bt) {
			if d := bt[j].Sub(ts); d <= tolerance {
				best, bestDiff = j, d
			}
		}
		if j > 0 {
			if d := ts.Sub(bt[j-1]); d <= tolerance && d < bestDiff {
				best = j - 1
			}
		}
		if best < 0 {
			continue
		}

		stamps = append(stamps, ts)
		av = append(av, a.Values[i])
		bv = append(bv, b.Values[best])
	}

	if len(stamps) == 0 {
		return nil, nil, fmt.Errorf("%w: within tolerance %s", ErrNoOverlap, tolerance)
	}

	alignedA := &Series{Timestamps: stamps, Values: av, Name: a.Name}
	bStamps := make([]time.Time, len(stamps))
	copy(bStamps, stamps)
	alignedB := &Series{Timestamps: bStamps, Values: bv, Name: b.Name}
	return alignedA, alignedB, nil
}

// collapseDuplicates sorts observations by time and sums values sharing the
// same timestamp. Returned x values are unix seconds, strictly increasing.
func collapseDuplicates(timestamps []time.Time, values []float64) ([]float64, []float64) {
	type obs struct {
		x float64
		y float64
	}
	pts := make([]obs, len(timestamps))
	for i := range timestamps {
		pts[i] = obs{x: float64(timestamps[i].Unix()), y: values[i]}
	}
	sort.Slice(pts, func(i, j int) bool { return pts[i].x < pts[j].x })

	var xs, ys []float64
	for _, p := range pts {
		if n := len(xs); n > 0 && xs[n-1] == p.x {
			ys[n-1] += p.y
			continue
		}
		xs = append(xs, p.x)
		ys = append(ys, p.y)
	}
	return xs, ys
}

// buildGrid returns unix-second grid points from first (truncated to the
// interval) through the last observation.
func buildGrid(first, last float64, interval time.Duration) []float64 {
	step := interval.Seconds()
	start := float64(time.Unix(int64(first), 0).UTC().Truncate(interval).Unix())

	var grid []float64
	for x := start; x <= last; x += step {
		grid = append(grid, x)
	}
	return grid
}

func interpolateOnGrid(xs, ys, grid []float64) ([]float64, error) {
	var pl interp.PiecewiseLinear
	if err := pl.Fit(xs, ys); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInsufficientData, err)
	}

	vals := make([]float64, len(grid))
	for i, x := range grid {
		switch {
		case x <= xs[0]:
			vals[i] = ys[0]
		case x >= xs[len(xs)-1]:
			vals[i] = ys[len(ys)-1]
		default:
			vals[i] = pl.Predict(x)
		}
	}
	return vals, nil
}

package timeseries

import (
	"fmt"
	"time"
)

// Frame is a time-indexed table of named numeric channels sharing one set of
// timestamps. Column access is schema-strict: asking for a column that does
// not exist is an error, never a silent fallback.
type Frame struct {
	Timestamps []time.Time
	Names      []string
	Columns    map[string][]float64
}

// NewFrame creates a frame from timestamps and named columns. Column order
// follows names.
func NewFrame(timestamps []time.Time, names []string, columns map[string][]float64) (*Frame, error) {
	for _, name := range names {
		col, ok := columns[name]
		if !ok {
			return nil, fmt.Errorf("%w: column %q missing from data", ErrInvalidParameter, name)
		}
		if len(col) != len(timestamps) {
			return nil, fmt.Errorf("%w: column %q has %d values for %d timestamps",
				ErrInvalidParameter, name, len(col), len(timestamps))
		}
	}

	cols := make(map[string][]float64, len(names))
	for _, name := range names {
		cols[name] = columns[name]
	}

	return &Frame{
		Timestamps: timestamps,
		Names:      append([]string(nil), names...),
		Columns:    cols,
	}, nil
}

// Len returns the number of rows.
func (f *Frame) Len() int {
	return len(f.Timestamps)
}

// Column returns the named channel as a Series.
func (f *Frame) Column(name string) (*Series, error) {
	col, ok := f.Columns[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown column %q", ErrInvalidParameter, name)
	}
	return &Series{Timestamps: f.Timestamps, Values: col, Name: name}, nil
}

// Select returns a frame restricted to the named columns, in order.
func (f *Frame) Select(names ...string) (*Frame, error) {
	cols := make(map[string][]float64, len(names))
	for _, name := range names {
		col, ok := f.Columns[name]
		if !ok {
			return nil, fmt.Errorf("%w: unknown column %q", ErrInvalidParameter, name)
		}
		cols[name] = col
	}
	return &Frame{
		Timestamps: f.Timestamps,
		Names:      append([]string(nil), names...),
		Columns:    cols,
	}, nil
}

// AddColumn appends a derived channel to the frame.
func (f *Frame) AddColumn(name string, values []float64) error {
	if len(values) != len(f.Timestamps) {
		return fmt.Errorf("%w: column %q has %d values for %d timestamps",
			ErrInvalidParameter, name, len(values), len(f.Timestamps))
	}
	if _, exists := f.Columns[name]; exists {
		return fmt.Errorf("%w: column %q already present", ErrInvalidParameter, name)
	}
	if f.Columns == nil {
		f.Columns = map[string][]float64{}
	}
	f.Names = append(f.Names, name)
	f.Columns[name] = values
	return nil
}

// SliceTime returns the rows with start <= timestamp <= end.
func (f *Frame) SliceTime(start, end time.Time) *Frame {
	lo, hi := -1, -1
	for i, ts := range f.Timestamps {
		if ts.Before(start) || ts.After(end) {
			continue
		}
		if lo < 0 {
			lo = i
		}
		hi = i
	}

	out := &Frame{Names: append([]string(nil), f.Names...), Columns: map[string][]float64{}}
	if lo < 0 {
		for _, name := range f.Names {
			out.Columns[name] = nil
		}
		return out
	}

	out.Timestamps = f.Timestamps[lo : hi+1]
	for _, name := range f.Names {
		out.Columns[name] = f.Columns[name][lo : hi+1]
	}
	return out
}

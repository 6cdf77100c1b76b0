package timeseries

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// CSVOptions holds options for CSV loading.
type CSVOptions struct {
	TimeColumn   string // Column name for timestamps (default: "time")
	ValueColumn  string // Column name for values (default: last column)
	FilterColumn string // Column to filter rows by (e.g. "pricearea"), optional
	FilterValue  string // Value the filter column must equal
	TimeFormat   string // Timestamp layout (default: "2006-01-02 15:04")
	HasHeader    bool   // Whether CSV has a header row (default: true)
	Delimiter    rune   // Field delimiter (default: ',')
}

// DefaultCSVOptions returns default options for hourly CSV data.
func DefaultCSVOptions() *CSVOptions {
	return &CSVOptions{
		TimeColumn: "time",
		TimeFormat: "2006-01-02 15:04",
		HasHeader:  true,
		Delimiter:  ',',
	}
}

// timeLayouts are tried in order when parsing timestamps, starting with the
// configured format.
var timeLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// LoadCSV loads an hourly time series from a CSV file.
func LoadCSV(filename string, opts *CSVOptions) (*Series, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return LoadCSVFromReader(file, opts)
}

// LoadCSVFromReader loads a time series from an io.Reader.
func LoadCSVFromReader(r io.Reader, opts *CSVOptions) (*Series, error) {
	if opts == nil {
		opts = DefaultCSVOptions()
	}

	reader := csv.NewReader(r)
	reader.Comma = opts.Delimiter
	reader.TrimLeadingSpace = true

	timeIdx, valueIdx, filterIdx := 0, -1, -1

	if opts.HasHeader {
		header, err := reader.Read()
		if err != nil {
			return nil, err
		}

		timeIdx = -1
		for i, h := range header {
			h = strings.TrimSpace(strings.Trim(h, "\""))
			switch {
			case h == opts.TimeColumn || (timeIdx == -1 && (h == "time" || h == "starttime")):
				timeIdx = i
			case h == opts.ValueColumn:
				valueIdx = i
			case opts.FilterColumn != "" && h == opts.FilterColumn:
				filterIdx = i
			}
		}

		if timeIdx == -1 {
			return nil, fmt.Errorf("%w: time column %q not found", ErrInvalidParameter, opts.TimeColumn)
		}
		if valueIdx == -1 {
			if opts.ValueColumn != "" {
				return nil, fmt.Errorf("%w: value column %q not found", ErrInvalidParameter, opts.ValueColumn)
			}
			valueIdx = len(header) - 1
		}
		if opts.FilterColumn != "" && filterIdx == -1 {
			return nil, fmt.Errorf("%w: filter column %q not found", ErrInvalidParameter, opts.FilterColumn)
		}
	} else {
		// No header: first column is time, second is value.
		valueIdx = 1
	}

	var timestamps []time.Time
	var values []float64

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		if filterIdx >= 0 && filterIdx < len(record) {
			if strings.TrimSpace(strings.Trim(record[filterIdx], "\"")) != opts.FilterValue {
				continue
			}
		}

		if timeIdx >= len(record) || valueIdx >= len(record) {
			continue
		}

		valStr := strings.TrimSpace(strings.Trim(record[valueIdx], "\""))
		if valStr == "" || valStr == "NA" || valStr == "NaN" || valStr == "null" {
			continue
		}
		val, err := strconv.ParseFloat(valStr, 64)
		if err != nil {
			continue // Skip non-numeric rows
		}

		ts, err := parseTime(strings.TrimSpace(strings.Trim(record[timeIdx], "\"")), opts.TimeFormat)
		if err != nil {
			continue
		}

		timestamps = append(timestamps, ts)
		values = append(values, val)
	}

	if len(values) == 0 {
		return nil, fmt.Errorf("%w: no valid rows in CSV", ErrInsufficientData)
	}

	return &Series{
		Timestamps: timestamps,
		Values:     values,
		Name:       opts.ValueColumn,
	}, nil
}

// LoadCSVFiltered loads the rows of a CSV file whose filter column matches
// the given value, e.g. one price area or one production group.
func LoadCSVFiltered(filename, filterColumn, filterValue, valueColumn string) (*Series, error) {
	opts := DefaultCSVOptions()
	opts.FilterColumn = filterColumn
	opts.FilterValue = filterValue
	opts.ValueColumn = valueColumn
	return LoadCSV(filename, opts)
}

func parseTime(s, preferred string) (time.Time, error) {
	if preferred != "" {
		if ts, err := time.Parse(preferred, s); err == nil {
			return ts, nil
		}
	}
	var err error
	var ts time.Time
	for _, layout := range timeLayouts {
		ts, err = time.Parse(layout, s)
		if err == nil {
			return ts, nil
		}
	}
	return time.Time{}, err
}

// SaveCSV saves a time series to a CSV file with time,value columns.
func SaveCSV(series *Series, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	defer writer.Flush()

	name := series.Name
	if name == "" {
		name = "value"
	}
	writer.WriteString("time," + name + "\n")

	for i, v := range series.Values {
		if i < len(series.Timestamps) {
			writer.WriteString(series.Timestamps[i].Format("2006-01-02 15:04"))
		}
		writer.WriteString(",")
		writer.WriteString(strconv.FormatFloat(v, 'f', -1, 64))
		writer.WriteString("\n")
	}

	return nil
}

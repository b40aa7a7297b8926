// Package source loads the series and the options of a chart from files.
package source

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/midbel/slices"
	"github.com/midbel/tschart"
	"gopkg.in/yaml.v3"
)

var (
	ErrFormat = errors.New("unsupported format")
	ErrHeader = errors.New("invalid header")
)

// LoadSeries reads the series stored in file. The format is chosen from the
// extension of the file.
func LoadSeries(file string) ([]tschart.Serie, error) {
	r, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var series []tschart.Serie
	switch ext := strings.ToLower(filepath.Ext(file)); ext {
	case ".json":
		series, err = DecodeJSON(r)
	case ".csv":
		series, err = DecodeCSV(r)
	default:
		err = fmt.Errorf("%w %q", ErrFormat, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	return series, nil
}

// DecodeJSON reads an array of series.
func DecodeJSON(r io.Reader) ([]tschart.Serie, error) {
	var series []tschart.Serie
	if err := json.NewDecoder(r).Decode(&series); err != nil {
		return nil, err
	}
	return series, nil
}

// DecodeCSV reads rows made of a timestamp followed by one value per serie.
// The first row gives the names of the series. The timestamp is either a
// unix timestamp in milliseconds or a RFC3339 date. An empty value is a
// missing datapoint.
func DecodeCSV(r io.Reader) ([]tschart.Serie, error) {
	rs := csv.NewReader(r)
	rs.TrimLeadingSpace = true

	header, err := rs.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty file", ErrHeader)
		}
		return nil, err
	}
	names := slices.Rest(header)
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: no serie defined", ErrHeader)
	}
	series := make([]tschart.Serie, len(names))
	for i := range names {
		series[i] = tschart.NewSerie(strings.TrimSpace(names[i]), "")
	}
	for {
		row, err := rs.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		line, _ := rs.FieldPos(0)
		when, err := parseTime(slices.Fst(row))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		for i, str := range slices.Rest(row) {
			value, err := parseValue(str)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			series[i].Datapoints = append(series[i].Datapoints, tschart.Datapoint{
				Value: value,
				Time:  when,
			})
		}
	}
	return series, nil
}

// LoadOptions reads the options of a chart from a YAML or JSON document.
func LoadOptions(file string) (tschart.Options, error) {
	var opts tschart.Options
	r, err := os.Open(file)
	if err != nil {
		return opts, err
	}
	defer r.Close()

	if opts, err = DecodeOptions(r); err != nil {
		return opts, fmt.Errorf("%s: %w", file, err)
	}
	return opts, nil
}

func DecodeOptions(r io.Reader) (tschart.Options, error) {
	var opts tschart.Options
	err := yaml.NewDecoder(r).Decode(&opts)
	if errors.Is(err, io.EOF) {
		err = nil
	}
	return opts, err
}

func parseTime(str string) (int64, error) {
	str = strings.TrimSpace(str)
	if ms, err := strconv.ParseInt(str, 10, 64); err == nil {
		return ms, nil
	}
	when, err := time.Parse(time.RFC3339, str)
	if err != nil {
		return 0, fmt.Errorf("%q: invalid timestamp", str)
	}
	return when.UnixMilli(), nil
}

func parseValue(str string) (float64, error) {
	str = strings.TrimSpace(str)
	if str == "" || str == "null" {
		return math.NaN(), nil
	}
	value, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return 0, fmt.Errorf("%q: invalid value", str)
	}
	return value, nil
}

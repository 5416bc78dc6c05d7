package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rustyeddy/futback/market"
	"github.com/rustyeddy/futback/sweep"
)

// parseParams turns repeated "key=value" flags into a parameter bundle.
func parseParams(kvs []string) (map[string]float64, error) {
	if len(kvs) == 0 {
		return nil, nil
	}
	out := make(map[string]float64, len(kvs))
	for _, kv := range kvs {
		parts := strings.SplitN(kv, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("bad param %q (want key=value)", kv)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("bad param value %q: %w", kv, err)
		}
		out[strings.TrimSpace(parts[0])] = v
	}
	return out, nil
}

// parseRanges turns repeated "name:min:max:step" flags into sweep ranges.
func parseRanges(specs []string) ([]sweep.Range, error) {
	var out []sweep.Range
	for _, spec := range specs {
		parts := strings.Split(spec, ":")
		if len(parts) != 4 {
			return nil, fmt.Errorf("bad range %q (want name:min:max:step)", spec)
		}
		vals := make([]float64, 3)
		for i := 0; i < 3; i++ {
			v, err := strconv.ParseFloat(strings.TrimSpace(parts[i+1]), 64)
			if err != nil {
				return nil, fmt.Errorf("bad range %q: %w", spec, err)
			}
			vals[i] = v
		}
		out = append(out, sweep.Range{
			Name: strings.TrimSpace(parts[0]),
			Min:  vals[0],
			Max:  vals[1],
			Step: vals[2],
		})
	}
	return out, nil
}

func parseTimeFlag(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("bad time %q (want RFC3339 or YYYY-MM-DD)", s)
}

// loadSeries resolves the contract and loads the bar file, the one fatal
// I/O step shared by every command.
func loadSeries(path, ticker, fromStr, toStr string) (*market.Series, error) {
	spec, err := market.Lookup(ticker)
	if err != nil {
		return nil, err
	}
	from, err := parseTimeFlag(fromStr)
	if err != nil {
		return nil, fmt.Errorf("--from: %w", err)
	}
	to, err := parseTimeFlag(toStr)
	if err != nil {
		return nil, fmt.Errorf("--to: %w", err)
	}
	return market.LoadCSV(path, spec, from, to)
}

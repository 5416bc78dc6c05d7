package market

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/ulikunitz/xz"
	"github.com/xyproto/unzip"
)

// Accepted timestamp layouts, tried in order.
var timeLayouts = []string{
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// LoadCSV reads an OHLC bar file into a Series for the given contract.
//
// Rows are:
//
//	timestamp,Open,High,Low,Close
//
// with an optional header row. Timestamps are RFC3339 or
// "2006-01-02 15:04:05" (UTC assumed). Bars outside [from, to) are skipped
// when either bound is non-zero.
//
// Compressed inputs are handled transparently: a ".xz" suffix is
// decompressed on the fly, and a ".zip" archive is extracted next to itself
// and the contained ".csv" loaded.
func LoadCSV(path string, spec ContractSpec, from, to time.Time) (*Series, error) {
	switch {
	case strings.HasSuffix(path, ".zip"):
		inner, err := extractZip(path)
		if err != nil {
			return nil, err
		}
		path = inner
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open bars: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".xz") {
		xr, err := xz.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("xz reader %s: %w", path, err)
		}
		r = xr
	}

	bars, err := readBars(r, from, to)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	s := &Series{
		Contract: spec,
		Bars:     bars,
		Source:   path,
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func readBars(r io.Reader, from, to time.Time) ([]Bar, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	var bars []Bar
	sawFirst := false

	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(row) == 0 {
			continue
		}

		// Allow a single header row.
		if !sawFirst {
			sawFirst = true
			first := strings.ToLower(strings.TrimSpace(row[0]))
			if first == "timestamp" || first == "time" || first == "date" {
				continue
			}
		}

		b, ok, err := parseBarRow(row)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		if !inRange(b.Time, from, to) {
			continue
		}
		bars = append(bars, b)
	}

	return bars, nil
}

func parseBarRow(row []string) (Bar, bool, error) {
	// Need timestamp,Open,High,Low,Close
	if len(row) < 5 {
		return Bar{}, false, nil
	}

	ts := strings.TrimSpace(row[0])
	if ts == "" {
		return Bar{}, false, nil
	}

	var t time.Time
	var err error
	for _, layout := range timeLayouts {
		if t, err = time.ParseInLocation(layout, ts, time.UTC); err == nil {
			break
		}
	}
	if err != nil {
		return Bar{}, false, fmt.Errorf("bad timestamp %q: %w", ts, err)
	}

	vals := make([]float64, 4)
	for i := 0; i < 4; i++ {
		vals[i], err = strconv.ParseFloat(strings.TrimSpace(row[i+1]), 64)
		if err != nil {
			return Bar{}, false, fmt.Errorf("bad price %q: %w", row[i+1], err)
		}
	}

	return Bar{
		Time:  t.UTC(),
		Open:  vals[0],
		High:  vals[1],
		Low:   vals[2],
		Close: vals[3],
	}, true, nil
}

func inRange(t, from, to time.Time) bool {
	if !from.IsZero() && t.Before(from) {
		return false
	}
	if !to.IsZero() && !t.Before(to) {
		return false
	}
	return true
}

// extractZip unpacks archive into a sibling directory and returns the path
// of the first .csv it finds.
func extractZip(archive string) (string, error) {
	dest := strings.TrimSuffix(archive, ".zip")
	if err := unzip.Extract(archive, dest); err != nil {
		return "", fmt.Errorf("extract %s: %w", archive, err)
	}

	var found string
	err := filepath.Walk(dest, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if found == "" && !info.IsDir() && strings.HasSuffix(p, ".csv") {
			found = p
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	if found == "" {
		return "", fmt.Errorf("no .csv inside %s", archive)
	}
	return found, nil
}

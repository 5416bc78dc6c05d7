package market

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBarRow(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		row     []string
		wantOk  bool
		wantErr bool
		check   func(t *testing.T, b Bar)
	}{
		{
			name:   "rfc3339 row",
			row:    []string{"2026-03-02T09:30:00Z", "100", "101", "99", "100.5"},
			wantOk: true,
			check: func(t *testing.T, b Bar) {
				assert.Equal(t, 100.0, b.Open)
				assert.Equal(t, 101.0, b.High)
				assert.Equal(t, 99.0, b.Low)
				assert.Equal(t, 100.5, b.Close)
			},
		},
		{
			name:   "space separated timestamp",
			row:    []string{"2026-03-02 09:30:00", "1", "2", "0.5", "1.5"},
			wantOk: true,
			check: func(t *testing.T, b Bar) {
				assert.Equal(t, time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC), b.Time)
			},
		},
		{
			name:   "date only",
			row:    []string{"2026-03-02", "1", "2", "0.5", "1.5"},
			wantOk: true,
			check: func(t *testing.T, b Bar) {
				assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), b.Time)
			},
		},
		{
			name:   "whitespace tolerated",
			row:    []string{" 2026-03-02T09:30:00Z ", " 100 ", " 101 ", " 99 ", " 100.5 "},
			wantOk: true,
		},
		{
			name:   "too few columns",
			row:    []string{"2026-03-02T09:30:00Z", "100", "101"},
			wantOk: false,
		},
		{
			name:   "empty timestamp",
			row:    []string{"", "100", "101", "99", "100.5"},
			wantOk: false,
		},
		{
			name:    "bad timestamp",
			row:     []string{"not-a-time", "100", "101", "99", "100.5"},
			wantErr: true,
		},
		{
			name:    "bad price",
			row:     []string{"2026-03-02T09:30:00Z", "100", "oops", "99", "100.5"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			b, ok, err := parseBarRow(tt.row)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantOk, ok)
			if ok && tt.check != nil {
				tt.check(t, b)
			}
		})
	}
}

func writeBarFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "bars.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadCSV(t *testing.T) {
	t.Parallel()

	t.Run("with header", func(t *testing.T) {
		t.Parallel()

		path := writeBarFile(t, strings.Join([]string{
			"timestamp,open,high,low,close",
			"2026-03-02T00:00:00Z,100,101,99,100",
			"2026-03-03T00:00:00Z,100,102,100,101",
			"2026-03-04T00:00:00Z,101,103,100,102",
		}, "\n")+"\n")

		s, err := LoadCSV(path, Contracts["ES"], time.Time{}, time.Time{})
		require.NoError(t, err)
		assert.Equal(t, 3, s.Len())
		assert.Equal(t, "ES", s.Contract.Ticker)
		assert.Equal(t, 100.0, s.First().Close)
		assert.Equal(t, 102.0, s.Last().Close)
	})

	t.Run("without header", func(t *testing.T) {
		t.Parallel()

		path := writeBarFile(t, strings.Join([]string{
			"2026-03-02T00:00:00Z,100,101,99,100",
			"2026-03-03T00:00:00Z,100,102,100,101",
		}, "\n")+"\n")

		s, err := LoadCSV(path, Contracts["ES"], time.Time{}, time.Time{})
		require.NoError(t, err)
		assert.Equal(t, 2, s.Len())
	})

	t.Run("window is half open", func(t *testing.T) {
		t.Parallel()

		path := writeBarFile(t, strings.Join([]string{
			"2026-03-02T00:00:00Z,100,101,99,100",
			"2026-03-03T00:00:00Z,100,102,100,101",
			"2026-03-04T00:00:00Z,101,103,100,102",
			"2026-03-05T00:00:00Z,102,104,101,103",
		}, "\n")+"\n")

		from := time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)
		to := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)

		s, err := LoadCSV(path, Contracts["ES"], from, to)
		require.NoError(t, err)
		// from inclusive, to exclusive
		require.Equal(t, 2, s.Len())
		assert.Equal(t, from, s.First().Time)
	})

	t.Run("empty window rejected", func(t *testing.T) {
		t.Parallel()

		path := writeBarFile(t, "2026-03-02T00:00:00Z,100,101,99,100\n")

		from := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
		_, err := LoadCSV(path, Contracts["ES"], from, time.Time{})
		assert.ErrorContains(t, err, "no bars")
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := LoadCSV("/nonexistent/bars.csv", Contracts["ES"], time.Time{}, time.Time{})
		assert.Error(t, err)
	})

	t.Run("unsorted file rejected", func(t *testing.T) {
		t.Parallel()

		path := writeBarFile(t, strings.Join([]string{
			"2026-03-03T00:00:00Z,100,102,100,101",
			"2026-03-02T00:00:00Z,100,101,99,100",
		}, "\n")+"\n")

		_, err := LoadCSV(path, Contracts["ES"], time.Time{}, time.Time{})
		assert.Error(t, err)
	})
}

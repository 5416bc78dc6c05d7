package journal

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestExportTradesCSV(t *testing.T) {
	t.Parallel()

	snap := testSnapshot()
	path := filepath.Join(t.TempDir(), "trades.csv")

	require.NoError(t, ExportTradesCSV(path, snap.Trades))

	rows := readCSV(t, path)
	require.Len(t, rows, 3) // header + 2 trades

	assert.Equal(t, "trade_id", rows[0][0])
	assert.Equal(t, "long", rows[1][1])
	assert.Equal(t, "-1.000000", rows[1][7])

	// Open trades export empty exit and profit columns, not NaN text.
	assert.Equal(t, "", rows[2][5])
	assert.Equal(t, "", rows[2][7])
	assert.Equal(t, "true", rows[2][8])
}

func TestExportCashCSV(t *testing.T) {
	t.Parallel()

	snap := testSnapshot()
	path := filepath.Join(t.TempDir(), "cash.csv")

	require.NoError(t, ExportCashCSV(path, snap.Cash))

	rows := readCSV(t, path)
	require.Len(t, rows, 3) // header + 2 points
	assert.Equal(t, []string{"time", "cash"}, rows[0])
	assert.Equal(t, "999.000000", rows[2][1])
}

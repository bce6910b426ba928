package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleExport = `Type,Started Date,Description,Amount,Currency,State
CARD_PAYMENT,2024-01-05 09:15:00,Coffee Shop,-4.50,EUR,COMPLETED
CARD_PAYMENT,2024-01-06 10:00:00,XYZ123,-10.00,EUR,COMPLETED
TOPUP,2024-01-02 08:00:00,Payroll,1500.00,EUR,COMPLETED
`

// setupDataDir points the config at a temp data directory with one raw
// export waiting.
func setupDataDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("DATA_DIR", dir)
	t.Setenv("LOG_LEVEL", "error")

	rawDir := filepath.Join(dir, "raw")
	require.NoError(t, os.MkdirAll(rawDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(rawDir, "2024-01.csv"), []byte(sampleExport), 0o644))
	return dir
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestImportListsFilesWithoutArgs(t *testing.T) {
	setupDataDir(t)

	out, err := runCommand(t, "import")
	require.NoError(t, err)
	assert.Contains(t, out, "2024-01.csv")
}

func TestImportFile(t *testing.T) {
	dir := setupDataDir(t)

	out, err := runCommand(t, "import", "2024-01.csv")
	require.NoError(t, err)
	assert.Contains(t, out, "2 added")
	assert.Contains(t, out, "1 non-expense")
	assert.Contains(t, out, "vendors awaiting a category")

	_, err = os.Stat(filepath.Join(dir, "processed", "transactions.csv"))
	assert.NoError(t, err, "import should create the dataset file")
}

func TestImportUnknownFile(t *testing.T) {
	setupDataDir(t)

	_, err := runCommand(t, "import", "nope.csv")
	assert.Error(t, err)
}

func TestVendorsAndTagFlow(t *testing.T) {
	setupDataDir(t)

	_, err := runCommand(t, "import", "--all")
	require.NoError(t, err)

	out, err := runCommand(t, "vendors")
	require.NoError(t, err)
	assert.Contains(t, out, "xyz123")
	assert.Contains(t, out, "coffee shop")

	out, err = runCommand(t, "tag", "xyz123", "Shopping")
	require.NoError(t, err)
	assert.Contains(t, out, "1 transactions updated")

	out, err = runCommand(t, "vendors")
	require.NoError(t, err)
	assert.NotContains(t, out, "xyz123")
}

func TestTagRequiresTwoArgs(t *testing.T) {
	setupDataDir(t)

	_, err := runCommand(t, "tag", "xyz123")
	assert.Error(t, err)
}

func TestReport(t *testing.T) {
	setupDataDir(t)

	_, err := runCommand(t, "import", "--all")
	require.NoError(t, err)
	_, err = runCommand(t, "tag", "coffee shop", "Food")
	require.NoError(t, err)

	out, err := runCommand(t, "report")
	require.NoError(t, err)
	assert.Contains(t, out, "Food")
	assert.Contains(t, out, "€4.50")
	assert.Contains(t, out, "TOTAL")

	out, err = runCommand(t, "report", "2024-01")
	require.NoError(t, err)
	assert.Contains(t, out, "2024-01")

	_, err = runCommand(t, "report", "not-a-month")
	assert.Error(t, err)
}

func TestReportTimeseries(t *testing.T) {
	setupDataDir(t)

	_, err := runCommand(t, "import", "--all")
	require.NoError(t, err)

	out, err := runCommand(t, "report", "--timeseries")
	require.NoError(t, err)
	assert.Contains(t, out, "REGULAR")
	assert.Contains(t, out, "2024-01")
}

func TestReportEmptyDataset(t *testing.T) {
	setupDataDir(t)

	out, err := runCommand(t, "report")
	require.NoError(t, err)
	assert.Contains(t, out, "dataset is empty")
}

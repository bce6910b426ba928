package ingest

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanReturnsNewestFirst(t *testing.T) {
	dir := t.TempDir()

	older := filepath.Join(dir, "2024-01.csv")
	newer := filepath.Join(dir, "2024-02.csv")
	require.NoError(t, os.WriteFile(older, []byte("a"), 0o644))
	require.NoError(t, os.WriteFile(newer, []byte("b"), 0o644))

	// Force distinct modification times.
	past := time.Now().Add(-1 * time.Hour)
	require.NoError(t, os.Chtimes(older, past, past))

	// Non-CSV files and subdirectories are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "archive"), 0o755))

	files, err := Scan(dir)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "2024-02.csv", files[0].Name)
	assert.Equal(t, "2024-01.csv", files[1].Name)
	assert.Equal(t, newer, files[0].Path)
}

func TestScanMissingDirIsEmpty(t *testing.T) {
	files, err := Scan(filepath.Join(t.TempDir(), "does-not-exist"))
	require.NoError(t, err)
	assert.Empty(t, files)
}

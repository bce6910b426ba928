package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vaillus/revolut-expense-manager/internal/core"
)

func TestStoreLoadMissingFile(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "processed", "transactions.csv"))

	txs, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, txs)
}

func TestStoreSaveLoadRoundtrip(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "processed", "transactions.csv"))

	txs := []core.TaggedTransaction{
		tagged("2024-01-05", "Coffee Shop", "-4.50", "Food"),
		tagged("2024-01-06", "Gym", "-30.00", "Health"),
	}
	require.NoError(t, s.Save(txs))

	got, err := s.Load()
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, txs[0].Description, got[0].Description)
	assert.Equal(t, txs[1].Category, got[1].Category)
}

func TestStoreSaveReplacesAtomically(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "transactions.csv")
	s := NewStore(path)

	require.NoError(t, s.Save([]core.TaggedTransaction{tagged("2024-01-05", "Coffee Shop", "-4.50", "Food")}))
	require.NoError(t, s.Save([]core.TaggedTransaction{tagged("2024-01-06", "Gym", "-30.00", "Health")}))

	got, err := s.Load()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Gym", got[0].Description)

	// No stray temp files left behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

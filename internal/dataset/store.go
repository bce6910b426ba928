package dataset

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Vaillus/revolut-expense-manager/internal/core"
)

// Store persists the tagged dataset as a single flat CSV file.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the dataset file location.
func (s *Store) Path() string { return s.path }

// Load reads the persisted dataset. A missing file yields an empty dataset.
func (s *Store) Load() ([]core.TaggedTransaction, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open dataset %s: %w", s.path, err)
	}
	defer f.Close()

	txs, err := ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read dataset %s: %w", s.path, err)
	}
	return txs, nil
}

// Save writes the dataset atomically: temp file in the same directory, then
// rename. A failed write leaves the previous file unchanged.
func (s *Store) Save(txs []core.TaggedTransaction) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create dataset dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := WriteAll(tmp, txs); err != nil {
		tmp.Close()
		return fmt.Errorf("write dataset: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace dataset %s: %w", s.path, err)
	}
	return nil
}

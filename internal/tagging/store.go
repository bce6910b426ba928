package tagging

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Store persists vendor associations and the tag catalog as JSON mapping
// files. Writes go through a temp file and rename so a failed save leaves the
// previous file intact.
type Store struct {
	associationsPath string
	tagsPath         string
}

func NewStore(associationsPath, tagsPath string) *Store {
	return &Store{associationsPath: associationsPath, tagsPath: tagsPath}
}

// LoadAssociations reads the vendor→category mapping. A missing file yields
// an empty mapping.
func (s *Store) LoadAssociations() (Associations, error) {
	assoc := Associations{}
	if err := readJSONFile(s.associationsPath, &assoc); err != nil {
		return nil, fmt.Errorf("load vendor associations: %w", err)
	}
	return assoc, nil
}

// SaveAssociations writes the mapping back atomically.
func (s *Store) SaveAssociations(assoc Associations) error {
	if err := writeJSONFile(s.associationsPath, assoc); err != nil {
		return fmt.Errorf("save vendor associations: %w", err)
	}
	return nil
}

// LoadCatalog reads the tag catalog. A missing file yields an empty catalog.
func (s *Store) LoadCatalog() (Catalog, error) {
	catalog := Catalog{}
	if err := readJSONFile(s.tagsPath, &catalog); err != nil {
		return nil, fmt.Errorf("load tag catalog: %w", err)
	}
	return catalog, nil
}

// SaveCatalog writes the catalog back atomically.
func (s *Store) SaveCatalog(catalog Catalog) error {
	if err := writeJSONFile(s.tagsPath, catalog); err != nil {
		return fmt.Errorf("save tag catalog: %w", err)
	}
	return nil
}

// Catalog tracks known category labels and how often each has been applied,
// used to order suggestions in the dashboard.
type Catalog map[string]int

// Bump increments the usage count for a category, adding it if new.
func (c Catalog) Bump(category string) {
	c[category]++
}

// Sorted returns category names by descending usage, ties alphabetical.
func (c Catalog) Sorted() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if c[names[i]] != c[names[j]] {
			return c[names[i]] > c[names[j]]
		}
		return names[i] < names[j]
	})
	return names
}

func readJSONFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func writeJSONFile(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}

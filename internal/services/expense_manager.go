// Package services orchestrates the tagging-and-aggregation pipeline:
// parse a raw export, resolve categories, merge into the persisted dataset,
// and apply vendor associations recorded by the user.
package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/Vaillus/revolut-expense-manager/internal/core"
	"github.com/Vaillus/revolut-expense-manager/internal/dataset"
	"github.com/Vaillus/revolut-expense-manager/internal/ingest"
	"github.com/Vaillus/revolut-expense-manager/internal/log"
	"github.com/Vaillus/revolut-expense-manager/internal/tagging"
)

// ExpenseManager wires the parser, the tag stores and the dataset store into
// the user-facing operations. A single mutex serializes compound
// load-modify-save sequences on the shared flat files; there is only one
// local user, so contention is not a concern.
type ExpenseManager struct {
	parser      *ingest.Parser
	datasets    *dataset.Store
	tags        *tagging.Store
	rawDir      string
	exceptional string
	logger      *log.Logger

	mu sync.Mutex
}

// ImportSummary reports the outcome of importing one export file.
type ImportSummary struct {
	File        string
	RowsRead    int
	SkippedRows int
	NonExpense  int
	Added       int
	Duplicates  int
	DatasetSize int
	Pending     []core.PendingVendor
}

// TagSummary reports the outcome of recording a vendor association.
type TagSummary struct {
	Vendor   string
	Category string
	Updated  int
}

func NewExpenseManager(parser *ingest.Parser, datasets *dataset.Store, tags *tagging.Store, rawDir, exceptionalCategory string, logger *log.Logger) *ExpenseManager {
	if logger == nil {
		logger = log.New(log.DefaultConfig()).WithComponent(log.ComponentImport)
	}
	return &ExpenseManager{
		parser:      parser,
		datasets:    datasets,
		tags:        tags,
		rawDir:      rawDir,
		exceptional: exceptionalCategory,
		logger:      logger,
	}
}

// ImportFile runs the full pipeline for one raw export: parse, keep the
// expenses, resolve categories from the stored associations, merge into the
// persisted dataset and save it back. Existing records keep their category.
func (m *ExpenseManager) ImportFile(ctx context.Context, path string) (*ImportSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	res, err := m.parser.ParseFile(path)
	if err != nil {
		return nil, err
	}

	expenses, nonExpense := ingest.Expenses(res.Transactions)

	assoc, err := m.tags.LoadAssociations()
	if err != nil {
		return nil, err
	}
	resolver := tagging.NewResolver(assoc, m.exceptional)
	incoming := resolver.ResolveAll(expenses)

	existing, err := m.datasets.Load()
	if err != nil {
		return nil, err
	}

	merged := dataset.Merge(existing, incoming)
	if err := m.datasets.Save(merged.Dataset); err != nil {
		return nil, err
	}

	summary := &ImportSummary{
		File:        path,
		RowsRead:    res.RowsRead,
		SkippedRows: len(res.Skipped),
		NonExpense:  nonExpense,
		Added:       merged.Added,
		Duplicates:  merged.Duplicates,
		DatasetSize: len(merged.Dataset),
		Pending:     tagging.Pending(merged.Dataset),
	}

	m.logger.InfoContext(ctx, "Import complete",
		log.FieldFile, path,
		"rows_read", summary.RowsRead,
		"skipped", summary.SkippedRows,
		"added", summary.Added,
		"duplicates", summary.Duplicates,
		"pending_vendors", len(summary.Pending))

	return summary, nil
}

// TagVendor records a vendor→category association, persists it, and
// re-resolves the dataset's uncategorized records against the grown table.
// Records already carrying a category are left untouched.
func (m *ExpenseManager) TagVendor(ctx context.Context, vendor, category string) (*TagSummary, error) {
	vendor = strings.TrimSpace(vendor)
	category = strings.TrimSpace(category)
	if vendor == "" {
		return nil, fmt.Errorf("vendor cannot be empty")
	}
	if category == "" || category == core.CategoryUncategorized {
		return nil, fmt.Errorf("invalid category %q", category)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	assoc, err := m.tags.LoadAssociations()
	if err != nil {
		return nil, err
	}
	assoc.Tag(vendor, category)
	if err := m.tags.SaveAssociations(assoc); err != nil {
		return nil, err
	}

	catalog, err := m.tags.LoadCatalog()
	if err != nil {
		return nil, err
	}
	catalog.Bump(category)
	if err := m.tags.SaveCatalog(catalog); err != nil {
		return nil, err
	}

	updated, err := m.retagLocked(assoc)
	if err != nil {
		return nil, err
	}

	m.logger.InfoContext(ctx, "Vendor tagged",
		log.FieldVendor, vendor,
		log.FieldCategory, category,
		"records_updated", updated)

	return &TagSummary{Vendor: vendor, Category: category, Updated: updated}, nil
}

// retagLocked re-resolves uncategorized records in place. Caller holds mu.
func (m *ExpenseManager) retagLocked(assoc tagging.Associations) (int, error) {
	ds, err := m.datasets.Load()
	if err != nil {
		return 0, err
	}

	updated := 0
	for i, tx := range ds {
		if tx.Category != core.CategoryUncategorized {
			continue
		}
		category, ok := assoc.Lookup(tx.Description)
		if !ok {
			continue
		}
		ds[i].Category = category
		ds[i].Exceptional = category == m.exceptional
		updated++
	}

	if updated == 0 {
		return 0, nil
	}
	if err := m.datasets.Save(ds); err != nil {
		return 0, err
	}
	return updated, nil
}

// Dataset returns the persisted tagged dataset for reporting.
func (m *ExpenseManager) Dataset(context.Context) ([]core.TaggedTransaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.datasets.Load()
}

// Pending returns the vendors awaiting manual tagging.
func (m *ExpenseManager) Pending(ctx context.Context) ([]core.PendingVendor, error) {
	ds, err := m.Dataset(ctx)
	if err != nil {
		return nil, err
	}
	return tagging.Pending(ds), nil
}

// Categories returns known category labels ordered by usage for the
// dashboard's suggestion list.
func (m *ExpenseManager) Categories(context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	catalog, err := m.tags.LoadCatalog()
	if err != nil {
		return nil, err
	}
	return catalog.Sorted(), nil
}

// RawFiles lists export files waiting in the raw directory, newest first.
func (m *ExpenseManager) RawFiles(context.Context) ([]ingest.FileInfo, error) {
	return ingest.Scan(m.rawDir)
}

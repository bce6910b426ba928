package dataset

import (
	"strings"

	"github.com/Vaillus/revolut-expense-manager/internal/core"
)

// MergeResult is the outcome of merging an import into the dataset.
type MergeResult struct {
	Dataset    []core.TaggedTransaction
	Added      int
	Duplicates int
}

// Merge combines freshly tagged transactions with the existing dataset.
// Records whose composite key (date, description, amount) already exists are
// kept as-is: the stored category wins, so manual edits survive re-import.
// New records are appended in order. Merging the same import twice is a no-op.
func Merge(existing, incoming []core.TaggedTransaction) MergeResult {
	seen := make(map[core.Key]struct{}, len(existing))
	merged := make([]core.TaggedTransaction, 0, len(existing)+len(incoming))

	for _, tx := range existing {
		merged = append(merged, normalize(tx))
		seen[tx.Key()] = struct{}{}
	}

	res := MergeResult{}
	for _, tx := range incoming {
		if _, dup := seen[tx.Key()]; dup {
			res.Duplicates++
			continue
		}
		seen[tx.Key()] = struct{}{}
		merged = append(merged, normalize(tx))
		res.Added++
	}

	res.Dataset = merged
	return res
}

// normalize enforces the persistence invariant: no record leaves the merge
// step without a category.
func normalize(tx core.TaggedTransaction) core.TaggedTransaction {
	if strings.TrimSpace(tx.Category) == "" {
		tx.Category = core.CategoryUncategorized
	}
	return tx
}

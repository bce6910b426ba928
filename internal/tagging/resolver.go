package tagging

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Vaillus/revolut-expense-manager/internal/core"
)

// Associations maps normalized vendor keys to category labels. It is loaded
// once per session and mutated only through Tag.
type Associations map[string]string

// Lookup returns the category for a vendor description, normalizing first.
func (a Associations) Lookup(description string) (string, bool) {
	cat, ok := a[core.NormalizeVendor(description)]
	if !ok || strings.TrimSpace(cat) == "" {
		return "", false
	}
	return cat, true
}

// Tag records a vendor→category association under the normalized key.
func (a Associations) Tag(vendor, category string) {
	a[core.NormalizeVendor(vendor)] = strings.TrimSpace(category)
}

// Resolver assigns categories to transactions by exact lookup on the
// normalized vendor key. Unknown vendors get the uncategorized sentinel.
type Resolver struct {
	assoc       Associations
	exceptional string
}

// NewResolver builds a resolver. exceptionalCategory names the category whose
// transactions are flagged as exceptional (one-off) spend.
func NewResolver(assoc Associations, exceptionalCategory string) *Resolver {
	if assoc == nil {
		assoc = Associations{}
	}
	return &Resolver{assoc: assoc, exceptional: exceptionalCategory}
}

// Resolve tags a single transaction.
func (r *Resolver) Resolve(tx core.Transaction) core.TaggedTransaction {
	category, ok := r.assoc.Lookup(tx.Description)
	if !ok {
		category = core.CategoryUncategorized
	}
	return core.TaggedTransaction{
		Transaction: tx,
		Category:    category,
		Exceptional: category == r.exceptional,
	}
}

// ResolveAll tags a batch, preserving order.
func (r *Resolver) ResolveAll(txs []core.Transaction) []core.TaggedTransaction {
	out := make([]core.TaggedTransaction, len(txs))
	for i, tx := range txs {
		out[i] = r.Resolve(tx)
	}
	return out
}

// Known reports whether a vendor has a stored association.
func (r *Resolver) Known(vendor string) bool {
	_, ok := r.assoc.Lookup(vendor)
	return ok
}

// Pending lists uncategorized vendors for manual review, grouped by vendor
// with occurrence counts and total absolute amounts, largest total first.
func Pending(txs []core.TaggedTransaction) []core.PendingVendor {
	type bucket struct {
		count int
		total decimal.Decimal
	}
	buckets := map[string]*bucket{}
	for _, tx := range txs {
		if tx.Category != core.CategoryUncategorized {
			continue
		}
		vendor := tx.Vendor()
		b, ok := buckets[vendor]
		if !ok {
			b = &bucket{}
			buckets[vendor] = b
		}
		b.count++
		b.total = b.total.Add(tx.AbsAmount())
	}

	out := make([]core.PendingVendor, 0, len(buckets))
	for vendor, b := range buckets {
		out = append(out, core.PendingVendor{Vendor: vendor, Count: b.count, Total: b.total})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Total.Equal(out[j].Total) {
			return out[i].Total.GreaterThan(out[j].Total)
		}
		return out[i].Vendor < out[j].Vendor
	})
	return out
}

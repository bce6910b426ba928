package dataset

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vaillus/revolut-expense-manager/internal/core"
)

func tagged(date, desc, amount, category string) core.TaggedTransaction {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	return core.TaggedTransaction{
		Transaction: core.Transaction{
			Date:        d,
			Description: desc,
			Amount:      decimal.RequireFromString(amount),
			Currency:    "EUR",
		},
		Category: category,
	}
}

func TestMergeAppendsNewRecords(t *testing.T) {
	existing := []core.TaggedTransaction{tagged("2024-01-05", "Coffee Shop", "-4.50", "Food")}
	incoming := []core.TaggedTransaction{tagged("2024-01-06", "Gym", "-30.00", "Health")}

	res := Merge(existing, incoming)
	assert.Equal(t, 1, res.Added)
	assert.Equal(t, 0, res.Duplicates)
	require.Len(t, res.Dataset, 2)
	assert.Equal(t, "Coffee Shop", res.Dataset[0].Description)
	assert.Equal(t, "Gym", res.Dataset[1].Description)
}

func TestMergePreservesExistingCategory(t *testing.T) {
	// The user manually corrected this record; a re-import must not clobber it.
	existing := []core.TaggedTransaction{tagged("2024-01-05", "Coffee Shop", "-4.50", "Treats")}
	incoming := []core.TaggedTransaction{tagged("2024-01-05", "Coffee Shop", "-4.50", "Food")}

	res := Merge(existing, incoming)
	assert.Equal(t, 0, res.Added)
	assert.Equal(t, 1, res.Duplicates)
	require.Len(t, res.Dataset, 1)
	assert.Equal(t, "Treats", res.Dataset[0].Category)
}

func TestMergeIsIdempotent(t *testing.T) {
	incoming := []core.TaggedTransaction{
		tagged("2024-01-05", "Coffee Shop", "-4.50", "Food"),
		tagged("2024-01-06", "Gym", "-30.00", "Health"),
	}

	first := Merge(nil, incoming)
	second := Merge(first.Dataset, incoming)

	assert.Equal(t, 2, first.Added)
	assert.Equal(t, 0, second.Added)
	assert.Equal(t, 2, second.Duplicates)
	assert.Equal(t, first.Dataset, second.Dataset)
}

func TestMergeDedupesWithinIncoming(t *testing.T) {
	incoming := []core.TaggedTransaction{
		tagged("2024-01-05", "Coffee Shop", "-4.50", "Food"),
		tagged("2024-01-05", "Coffee Shop", "-4.50", "Food"),
	}

	res := Merge(nil, incoming)
	assert.Equal(t, 1, res.Added)
	assert.Equal(t, 1, res.Duplicates)
	assert.Len(t, res.Dataset, 1)
}

func TestMergeDistinguishesByAmount(t *testing.T) {
	// Same vendor and day, different amounts: two distinct transactions.
	incoming := []core.TaggedTransaction{
		tagged("2024-01-05", "Coffee Shop", "-4.50", "Food"),
		tagged("2024-01-05", "Coffee Shop", "-3.20", "Food"),
	}

	res := Merge(nil, incoming)
	assert.Equal(t, 2, res.Added)
}

func TestMergeDefaultsEmptyCategory(t *testing.T) {
	res := Merge(nil, []core.TaggedTransaction{tagged("2024-01-05", "Mystery", "-1.00", "")})
	require.Len(t, res.Dataset, 1)
	assert.Equal(t, core.CategoryUncategorized, res.Dataset[0].Category)
}

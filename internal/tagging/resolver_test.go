package tagging

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Vaillus/revolut-expense-manager/internal/core"
)

func tx(date, desc, amount string) core.Transaction {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	return core.Transaction{
		Date:        d,
		Description: desc,
		Amount:      decimal.RequireFromString(amount),
		Currency:    "EUR",
	}
}

func TestResolveKnownVendor(t *testing.T) {
	assoc := Associations{"coffee shop": "Food"}
	r := NewResolver(assoc, "exceptional")

	tagged := r.Resolve(tx("2024-01-05", "Coffee Shop", "-4.50"))
	if tagged.Category != "Food" {
		t.Errorf("Category = %q, want Food", tagged.Category)
	}
	if tagged.Exceptional {
		t.Error("Food should not be exceptional")
	}
}

func TestResolveUnknownVendorIsUncategorized(t *testing.T) {
	r := NewResolver(Associations{}, "exceptional")

	tagged := r.Resolve(tx("2024-01-05", "XYZ123", "-10.00"))
	if tagged.Category != core.CategoryUncategorized {
		t.Errorf("Category = %q, want %q", tagged.Category, core.CategoryUncategorized)
	}
}

func TestResolveExceptionalFlag(t *testing.T) {
	assoc := Associations{"new laptop": "exceptional"}
	r := NewResolver(assoc, "exceptional")

	tagged := r.Resolve(tx("2024-01-10", "New Laptop", "-1200.00"))
	if !tagged.Exceptional {
		t.Error("transactions in the exceptional category should carry the flag")
	}
}

func TestResolveNormalizesVendor(t *testing.T) {
	assoc := Associations{}
	assoc.Tag("  Coffee   SHOP ", "Food")

	r := NewResolver(assoc, "exceptional")
	tagged := r.Resolve(tx("2024-01-05", "coffee shop", "-4.50"))
	if tagged.Category != "Food" {
		t.Errorf("normalized lookup failed: Category = %q", tagged.Category)
	}
	if !r.Known("Coffee Shop") {
		t.Error("Known should match through normalization")
	}
}

func TestPendingGroupsAndSorts(t *testing.T) {
	r := NewResolver(Associations{"coffee shop": "Food"}, "exceptional")
	tagged := r.ResolveAll([]core.Transaction{
		tx("2024-01-05", "Coffee Shop", "-4.50"),
		tx("2024-01-06", "XYZ123", "-10.00"),
		tx("2024-01-07", "XYZ123", "-5.00"),
		tx("2024-01-08", "Gym", "-30.00"),
	})

	pending := Pending(tagged)
	if len(pending) != 2 {
		t.Fatalf("pending vendors = %d, want 2", len(pending))
	}

	// Sorted by total absolute amount descending.
	if pending[0].Vendor != "gym" {
		t.Errorf("pending[0] = %q, want gym", pending[0].Vendor)
	}
	if pending[1].Vendor != "xyz123" {
		t.Errorf("pending[1] = %q, want xyz123", pending[1].Vendor)
	}
	if pending[1].Count != 2 {
		t.Errorf("xyz123 count = %d, want 2", pending[1].Count)
	}
	if !pending[1].Total.Equal(decimal.RequireFromString("15.00")) {
		t.Errorf("xyz123 total = %s, want 15.00", pending[1].Total)
	}
}

func TestPendingEmptyWhenAllResolved(t *testing.T) {
	r := NewResolver(Associations{"coffee shop": "Food"}, "exceptional")
	tagged := r.ResolveAll([]core.Transaction{tx("2024-01-05", "Coffee Shop", "-4.50")})

	if pending := Pending(tagged); len(pending) != 0 {
		t.Errorf("pending = %v, want empty", pending)
	}
}

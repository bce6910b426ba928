package core

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// CategoryUncategorized is the sentinel category assigned to transactions
// whose vendor has no stored association yet. It is never empty: every
// persisted tagged transaction carries at least this value.
const CategoryUncategorized = "uncategorized"

var (
	ErrZeroDate         = errors.New("zero date")
	ErrEmptyDescription = errors.New("empty description")
	ErrEmptyCategory    = errors.New("empty category")
	ErrZeroAmount       = errors.New("zero amount")
)

type (
	// Transaction is a single row from a bank export, immutable once parsed.
	// Amount is signed: expenses are negative, refunds and top-ups positive.
	Transaction struct {
		Date        time.Time
		Description string
		Amount      decimal.Decimal
		Currency    string
	}

	// TaggedTransaction is a Transaction enriched with a category and an
	// exceptional flag during the tagging step.
	TaggedTransaction struct {
		Transaction
		Category    string
		Exceptional bool
	}

	// Key identifies a transaction across monthly exports. Two rows with the
	// same date, description and amount are considered the same transaction.
	Key string
)

// Vendor returns the normalized vendor key used for association lookups.
func (t Transaction) Vendor() string {
	return NormalizeVendor(t.Description)
}

// IsExpense reports whether the transaction is an outgoing payment.
func (t Transaction) IsExpense() bool {
	return t.Amount.IsNegative()
}

// AbsAmount returns the unsigned amount used by spending aggregations.
func (t Transaction) AbsAmount() decimal.Decimal {
	return t.Amount.Abs()
}

// Key builds the composite duplicate-detection key.
func (t Transaction) Key() Key {
	return Key(t.Date.Format("2006-01-02") + "|" + t.Description + "|" + t.Amount.String())
}

func (t Transaction) Validate() error {
	if t.Date.IsZero() {
		return ErrZeroDate
	}
	if len(strings.TrimSpace(t.Description)) == 0 {
		return ErrEmptyDescription
	}
	if t.Amount.IsZero() {
		return ErrZeroAmount
	}
	return nil
}

func (t TaggedTransaction) Validate() error {
	if err := t.Transaction.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	return nil
}

// NormalizeVendor lowercases a description, trims it and collapses inner
// whitespace so that "Coffee  Shop " and "coffee shop" share one key.
func NormalizeVendor(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

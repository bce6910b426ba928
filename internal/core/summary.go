package core

import "github.com/shopspring/decimal"

// CategoryTotal represents spending aggregated under one category name.
type CategoryTotal struct {
	Name  string
	Total decimal.Decimal
}

// MonthTotals is one point in the dashboard timeseries. Regular and
// Exceptional split the month's spending; Total is their sum.
type MonthTotals struct {
	Month       Month
	Regular     decimal.Decimal
	Exceptional decimal.Decimal
	Total       decimal.Decimal
}

// PendingVendor is an unresolved vendor surfaced for manual tagging.
type PendingVendor struct {
	Vendor string
	Count  int
	Total  decimal.Decimal // absolute amount across occurrences
}

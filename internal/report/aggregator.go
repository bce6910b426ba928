// Package report computes the aggregated spending views consumed by the
// dashboard. All functions are pure: they read a dataset slice and return
// fresh summaries without side effects.
package report

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/Vaillus/revolut-expense-manager/internal/core"
)

// TrendPoint is one month of a single category's spending history.
type TrendPoint struct {
	Month core.Month
	Total decimal.Decimal
}

// CategoryTotals aggregates absolute spending per category for one month.
// A zero month selects the whole dataset. Results are sorted by total
// descending, ties alphabetical; totals sum to Total for the same period.
func CategoryTotals(ds []core.TaggedTransaction, month core.Month) []core.CategoryTotal {
	sums := map[string]decimal.Decimal{}
	for _, tx := range ds {
		if !month.IsZero() && !month.Contains(tx.Date) {
			continue
		}
		sums[tx.Category] = sums[tx.Category].Add(tx.AbsAmount())
	}

	out := make([]core.CategoryTotal, 0, len(sums))
	for name, total := range sums {
		out = append(out, core.CategoryTotal{Name: name, Total: total})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Total.Equal(out[j].Total) {
			return out[i].Total.GreaterThan(out[j].Total)
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Total returns the absolute spending for one month, or the whole dataset
// when month is zero.
func Total(ds []core.TaggedTransaction, month core.Month) decimal.Decimal {
	sum := decimal.Zero
	for _, tx := range ds {
		if !month.IsZero() && !month.Contains(tx.Date) {
			continue
		}
		sum = sum.Add(tx.AbsAmount())
	}
	return sum
}

// MonthlySeries builds the dashboard timeseries: per-month regular and
// exceptional totals, ordered by month. Months between the dataset's first
// and last month with no transactions appear with zero totals rather than
// being omitted.
func MonthlySeries(ds []core.TaggedTransaction) []core.MonthTotals {
	if len(ds) == 0 {
		return nil
	}

	buckets := map[core.Month]*core.MonthTotals{}
	min, max := core.MonthOf(ds[0].Date), core.MonthOf(ds[0].Date)
	for _, tx := range ds {
		m := core.MonthOf(tx.Date)
		if m.Before(min) {
			min = m
		}
		if m.After(max) {
			max = m
		}
		b, ok := buckets[m]
		if !ok {
			b = &core.MonthTotals{Month: m}
			buckets[m] = b
		}
		amount := tx.AbsAmount()
		if tx.Exceptional {
			b.Exceptional = b.Exceptional.Add(amount)
		} else {
			b.Regular = b.Regular.Add(amount)
		}
		b.Total = b.Total.Add(amount)
	}

	var series []core.MonthTotals
	for m := min; !m.After(max); m = m.Next() {
		if b, ok := buckets[m]; ok {
			series = append(series, *b)
		} else {
			series = append(series, core.MonthTotals{Month: m})
		}
	}
	return series
}

// CategoryTrend returns the per-month spending history of one category,
// zero-filled over the dataset's full month span.
func CategoryTrend(ds []core.TaggedTransaction, category string) []TrendPoint {
	series := MonthlySeries(ds)
	if series == nil {
		return nil
	}

	sums := map[core.Month]decimal.Decimal{}
	for _, tx := range ds {
		if tx.Category != category {
			continue
		}
		m := core.MonthOf(tx.Date)
		sums[m] = sums[m].Add(tx.AbsAmount())
	}

	out := make([]TrendPoint, len(series))
	for i, point := range series {
		out[i] = TrendPoint{Month: point.Month, Total: sums[point.Month]}
	}
	return out
}

// Months returns the distinct months present in the dataset, newest first.
// The dashboard uses it to populate its month selector.
func Months(ds []core.TaggedTransaction) []core.Month {
	seen := map[core.Month]struct{}{}
	var months []core.Month
	for _, tx := range ds {
		m := core.MonthOf(tx.Date)
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		months = append(months, m)
	}
	sort.Slice(months, func(i, j int) bool { return months[j].Before(months[i]) })
	return months
}

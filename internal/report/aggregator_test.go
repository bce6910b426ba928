package report

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Vaillus/revolut-expense-manager/internal/core"
)

func tagged(date, desc, amount, category string, exceptional bool) core.TaggedTransaction {
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
		Category:    category,
		Exceptional: exceptional,
	}
}

func testDataset() []core.TaggedTransaction {
	return []core.TaggedTransaction{
		tagged("2024-01-05", "Coffee Shop", "-4.50", "Food", false),
		tagged("2024-01-07", "Supermarket", "-52.10", "Food", false),
		tagged("2024-01-20", "Gym", "-30.00", "Health", false),
		// February has no transactions at all.
		tagged("2024-03-10", "New Laptop", "-1200.00", "exceptional", true),
		tagged("2024-03-12", "Coffee Shop", "-4.50", "Food", false),
	}
}

func TestCategoryTotalsForMonth(t *testing.T) {
	jan := core.Month{Year: 2024, Mon: time.January}
	totals := CategoryTotals(testDataset(), jan)

	if len(totals) != 2 {
		t.Fatalf("category count = %d, want 2", len(totals))
	}
	if totals[0].Name != "Food" {
		t.Errorf("largest category = %q, want Food", totals[0].Name)
	}
	if !totals[0].Total.Equal(decimal.RequireFromString("56.60")) {
		t.Errorf("Food total = %s, want 56.60", totals[0].Total)
	}
	if totals[1].Name != "Health" {
		t.Errorf("second category = %q, want Health", totals[1].Name)
	}
}

func TestCategoryTotalsSumToPeriodTotal(t *testing.T) {
	ds := testDataset()
	for _, month := range []core.Month{
		{},
		{Year: 2024, Mon: time.January},
		{Year: 2024, Mon: time.March},
	} {
		sum := decimal.Zero
		for _, ct := range CategoryTotals(ds, month) {
			sum = sum.Add(ct.Total)
		}
		if total := Total(ds, month); !sum.Equal(total) {
			t.Errorf("month %v: category sum %s != period total %s", month, sum, total)
		}
	}
}

func TestMonthlySeriesZeroFillsMissingMonths(t *testing.T) {
	series := MonthlySeries(testDataset())

	if len(series) != 3 {
		t.Fatalf("series length = %d, want 3 (jan, feb, mar)", len(series))
	}
	if got := series[0].Month.String(); got != "2024-01" {
		t.Errorf("series[0] = %s, want 2024-01", got)
	}
	if got := series[1].Month.String(); got != "2024-02" {
		t.Errorf("series[1] = %s, want 2024-02", got)
	}
	if !series[1].Total.IsZero() || !series[1].Regular.IsZero() || !series[1].Exceptional.IsZero() {
		t.Errorf("empty month should be all zeros, got %+v", series[1])
	}
}

func TestMonthlySeriesSplitsExceptional(t *testing.T) {
	series := MonthlySeries(testDataset())
	mar := series[2]

	if !mar.Exceptional.Equal(decimal.RequireFromString("1200.00")) {
		t.Errorf("march exceptional = %s, want 1200.00", mar.Exceptional)
	}
	if !mar.Regular.Equal(decimal.RequireFromString("4.50")) {
		t.Errorf("march regular = %s, want 4.50", mar.Regular)
	}
	if !mar.Total.Equal(mar.Regular.Add(mar.Exceptional)) {
		t.Errorf("march total %s != regular+exceptional", mar.Total)
	}
}

func TestMonthlySeriesEmptyDataset(t *testing.T) {
	if series := MonthlySeries(nil); series != nil {
		t.Errorf("empty dataset should yield nil series, got %v", series)
	}
}

func TestCategoryTrend(t *testing.T) {
	trend := CategoryTrend(testDataset(), "Food")

	if len(trend) != 3 {
		t.Fatalf("trend length = %d, want 3", len(trend))
	}
	if !trend[0].Total.Equal(decimal.RequireFromString("56.60")) {
		t.Errorf("january Food = %s, want 56.60", trend[0].Total)
	}
	if !trend[1].Total.IsZero() {
		t.Errorf("february Food should be zero, got %s", trend[1].Total)
	}
	if !trend[2].Total.Equal(decimal.RequireFromString("4.50")) {
		t.Errorf("march Food = %s, want 4.50", trend[2].Total)
	}
}

func TestMonthsNewestFirst(t *testing.T) {
	months := Months(testDataset())
	if len(months) != 2 {
		t.Fatalf("distinct months = %d, want 2", len(months))
	}
	if months[0].String() != "2024-03" || months[1].String() != "2024-01" {
		t.Errorf("months = %v, want [2024-03 2024-01]", months)
	}
}

package commands

import (
	"github.com/spf13/cobra"

	"github.com/Vaillus/revolut-expense-manager/internal/cli"
	"github.com/Vaillus/revolut-expense-manager/internal/core"
	"github.com/Vaillus/revolut-expense-manager/internal/report"
)

func newReportCommand() *cobra.Command {
	var timeseries bool
	var category string

	cmd := &cobra.Command{
		Use:   "report [month]",
		Short: "Print spending reports from the dataset",
		Long: "Report prints per-category totals for one month (YYYY-MM) or for the\n" +
			"whole dataset. --timeseries prints the monthly regular/exceptional\n" +
			"split instead; --category prints one category's monthly history.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cli.LoadConfig()
			if err != nil {
				return err
			}
			logger := cli.SetupLogger(cfg.LogLevel)
			manager := cli.NewExpenseManager(cfg, logger)

			ds, err := manager.Dataset(cmd.Context())
			if err != nil {
				return err
			}
			if len(ds) == 0 {
				cmd.Println("The dataset is empty. Import an export file first.")
				return nil
			}

			if timeseries {
				cmd.Printf("%-8s %12s %12s %12s\n", "MONTH", "REGULAR", "EXCEPTIONAL", "TOTAL")
				for _, mt := range report.MonthlySeries(ds) {
					cmd.Printf("%-8s %12s %12s %12s\n", mt.Month,
						"€"+mt.Regular.StringFixed(2),
						"€"+mt.Exceptional.StringFixed(2),
						"€"+mt.Total.StringFixed(2))
				}
				return nil
			}

			if category != "" {
				cmd.Printf("Monthly history for %s:\n", category)
				for _, tp := range report.CategoryTrend(ds, category) {
					cmd.Printf("%-8s %12s\n", tp.Month, "€"+tp.Total.StringFixed(2))
				}
				return nil
			}

			var month core.Month
			if len(args) > 0 {
				month, err = core.ParseMonth(args[0])
				if err != nil {
					return err
				}
				cmd.Printf("Spending for %s:\n", month)
			} else {
				cmd.Println("Spending, all time:")
			}
			for _, ct := range report.CategoryTotals(ds, month) {
				cmd.Printf("%-30s %12s\n", ct.Name, "€"+ct.Total.StringFixed(2))
			}
			cmd.Printf("%-30s %12s\n", "TOTAL", "€"+report.Total(ds, month).StringFixed(2))
			return nil
		},
	}

	cmd.Flags().BoolVar(&timeseries, "timeseries", false, "print the monthly regular/exceptional split")
	cmd.Flags().StringVar(&category, "category", "", "print one category's monthly history")

	return cmd
}

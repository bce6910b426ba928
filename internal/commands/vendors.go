package commands

import (
	"github.com/spf13/cobra"

	"github.com/Vaillus/revolut-expense-manager/internal/cli"
)

func newVendorsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "vendors",
		Short: "List uncategorized vendors, largest spend first",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cli.LoadConfig()
			if err != nil {
				return err
			}
			logger := cli.SetupLogger(cfg.LogLevel)
			manager := cli.NewExpenseManager(cfg, logger)

			pending, err := manager.Pending(cmd.Context())
			if err != nil {
				return err
			}
			if len(pending) == 0 {
				cmd.Println("Everything is tagged.")
				return nil
			}

			cmd.Printf("%-30s %5s %12s\n", "VENDOR", "COUNT", "TOTAL")
			for _, p := range pending {
				cmd.Printf("%-30s %5d %12s\n", p.Vendor, p.Count, "€"+p.Total.StringFixed(2))
			}
			cmd.Println("\nRun 'revman tag <vendor> <category>' to tag one.")
			return nil
		},
	}
}

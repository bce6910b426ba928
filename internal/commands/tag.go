package commands

import (
	"github.com/spf13/cobra"

	"github.com/Vaillus/revolut-expense-manager/internal/cli"
)

func newTagCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tag <vendor> <category>",
		Short: "Associate a vendor with a category",
		Long: "Tag records a vendor→category association, persists it, and re-tags\n" +
			"every uncategorized transaction matching the vendor.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cli.LoadConfig()
			if err != nil {
				return err
			}
			logger := cli.SetupLogger(cfg.LogLevel)
			manager := cli.NewExpenseManager(cfg, logger)

			summary, err := manager.TagVendor(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			cmd.Printf("Tagged %s as %s (%d transactions updated)\n",
				summary.Vendor, summary.Category, summary.Updated)
			return nil
		},
	}
}

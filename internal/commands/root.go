// Package commands defines the revman CLI: a serve command for the local
// dashboard and import/tag/vendors/report commands for terminal use.
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Vaillus/revolut-expense-manager/internal/buildinfo"
	"github.com/Vaillus/revolut-expense-manager/internal/cli"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "revman",
		Short:   "Tag and report on personal bank-export transactions",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cli.LoadEnvFile()
		},
	}

	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newImportCommand())
	rootCmd.AddCommand(newTagCommand())
	rootCmd.AddCommand(newVendorsCommand())
	rootCmd.AddCommand(newReportCommand())

	return rootCmd
}

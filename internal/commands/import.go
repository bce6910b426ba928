package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Vaillus/revolut-expense-manager/internal/cli"
)

func newImportCommand() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import a raw export file into the dataset",
		Long: "Import parses a bank export from the raw directory, tags what it can\n" +
			"from the stored vendor associations and merges the expenses into the\n" +
			"dataset. Without arguments it lists the files waiting to be imported.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cli.LoadConfig()
			if err != nil {
				return err
			}
			logger := cli.SetupLogger(cfg.LogLevel)
			manager := cli.NewExpenseManager(cfg, logger)

			files, err := manager.RawFiles(cmd.Context())
			if err != nil {
				return err
			}

			if len(args) == 0 && !all {
				if len(files) == 0 {
					cmd.Println("No export files found in", cfg.RawDir)
					return nil
				}
				cmd.Println("Files waiting in", cfg.RawDir+":")
				for _, f := range files {
					cmd.Printf("  %s  (%d bytes, %s)\n", f.Name, f.Size, f.Modified.Format("2006-01-02 15:04"))
				}
				cmd.Println("\nRun 'revman import <file>' to import one, or 'revman import --all'.")
				return nil
			}

			var paths []string
			if all {
				for _, f := range files {
					paths = append(paths, f.Path)
				}
			} else {
				name := filepath.Base(args[0])
				for _, f := range files {
					if f.Name == name {
						paths = append(paths, f.Path)
						break
					}
				}
				if len(paths) == 0 {
					return fmt.Errorf("no file named %s in %s", name, cfg.RawDir)
				}
			}

			for _, path := range paths {
				summary, err := manager.ImportFile(cmd.Context(), path)
				if err != nil {
					return fmt.Errorf("importing %s: %w", filepath.Base(path), err)
				}
				cmd.Printf("%s: %d rows read, %d skipped, %d non-expense, %d added, %d duplicates\n",
					filepath.Base(path), summary.RowsRead, summary.SkippedRows,
					summary.NonExpense, summary.Added, summary.Duplicates)
				if len(summary.Pending) > 0 {
					cmd.Printf("%d vendors awaiting a category; run 'revman vendors'\n", len(summary.Pending))
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "import every file in the raw directory")

	return cmd
}

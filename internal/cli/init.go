// Package cli provides common bootstrap helpers shared by the CLI commands:
// env file loading, logger setup and pipeline construction from config.
package cli

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/Vaillus/revolut-expense-manager/internal/config"
	"github.com/Vaillus/revolut-expense-manager/internal/dataset"
	"github.com/Vaillus/revolut-expense-manager/internal/ingest"
	"github.com/Vaillus/revolut-expense-manager/internal/log"
	"github.com/Vaillus/revolut-expense-manager/internal/services"
	"github.com/Vaillus/revolut-expense-manager/internal/tagging"
)

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as the file is optional.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// SetupLogger initializes structured logging at the configured level and
// installs it as the process default.
func SetupLogger(level string) *log.Logger {
	parsed := log.ParseLevel(level)
	logger := log.New(log.Config{
		Level:     parsed,
		Component: log.ComponentApp,
		Handler:   slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: parsed}),
	})
	log.SetDefault(logger)
	return logger
}

// LoadConfig loads configuration from the environment and validates it.
func LoadConfig() (*config.Config, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SchemaFromConfig builds the export parser schema from configuration.
func SchemaFromConfig(cfg *config.Config) ingest.Schema {
	return ingest.Schema{
		Delimiter:         cfg.Delimiter(),
		DateColumn:        cfg.CSVDateColumn,
		DescriptionColumn: cfg.CSVDescriptionColumn,
		AmountColumn:      cfg.CSVAmountColumn,
		CurrencyColumn:    cfg.CSVCurrencyColumn,
		DateFormat:        cfg.CSVDateFormat,
	}
}

// NewExpenseManager wires the full pipeline from configuration.
func NewExpenseManager(cfg *config.Config, logger *log.Logger) *services.ExpenseManager {
	parser := ingest.NewParser(SchemaFromConfig(cfg), logger.WithComponent(log.ComponentIngest))
	datasets := dataset.NewStore(cfg.DatasetFile)
	tags := tagging.NewStore(cfg.AssociationsFile, cfg.TagsFile)
	return services.NewExpenseManager(
		parser,
		datasets,
		tags,
		cfg.RawDir,
		cfg.ExceptionalCategory,
		logger.WithComponent(log.ComponentImport),
	)
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

type Config struct {
	// HTTP Server
	Port string

	// Data layout
	DataDir          string
	RawDir           string
	DatasetFile      string
	AssociationsFile string
	TagsFile         string

	// Bank export schema
	CSVDelimiter         string
	CSVDateColumn        string
	CSVDescriptionColumn string
	CSVAmountColumn      string
	CSVCurrencyColumn    string
	CSVDateFormat        string

	// Tagging
	ExceptionalCategory string

	// Logging
	LogLevel string
}

func Load() *Config {
	dataDir := getEnv("DATA_DIR", "./data")

	cfg := &Config{
		Port: getEnv("PORT", "8081"),

		DataDir:          dataDir,
		RawDir:           getEnv("RAW_DIR", filepath.Join(dataDir, "raw")),
		DatasetFile:      getEnv("DATASET_FILE", filepath.Join(dataDir, "processed", "transactions.csv")),
		AssociationsFile: getEnv("VENDOR_TAGS_FILE", filepath.Join(dataDir, "config", "vendor_tags.json")),
		TagsFile:         getEnv("TAGS_FILE", filepath.Join(dataDir, "config", "tags.json")),

		CSVDelimiter:         getEnv("CSV_DELIMITER", ","),
		CSVDateColumn:        getEnv("CSV_DATE_COLUMN", "Started Date"),
		CSVDescriptionColumn: getEnv("CSV_DESCRIPTION_COLUMN", "Description"),
		CSVAmountColumn:      getEnv("CSV_AMOUNT_COLUMN", "Amount"),
		CSVCurrencyColumn:    getEnv("CSV_CURRENCY_COLUMN", "Currency"),
		CSVDateFormat:        getEnv("CSV_DATE_FORMAT", "2006-01-02 15:04:05"),

		ExceptionalCategory: getEnv("EXCEPTIONAL_CATEGORY", "exceptional"),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	return cfg
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	// Validate port
	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	// Validate data layout
	if c.DataDir == "" {
		errors = append(errors, "data directory cannot be empty")
	}
	if c.RawDir == "" {
		errors = append(errors, "raw directory cannot be empty")
	}
	if c.DatasetFile == "" {
		errors = append(errors, "dataset file path cannot be empty")
	}
	if c.AssociationsFile == "" {
		errors = append(errors, "vendor associations file path cannot be empty")
	}
	if c.TagsFile == "" {
		errors = append(errors, "tags file path cannot be empty")
	}

	// Validate CSV schema
	if len([]rune(c.CSVDelimiter)) != 1 {
		errors = append(errors, fmt.Sprintf("invalid CSV delimiter '%s': must be a single character", c.CSVDelimiter))
	}
	for name, value := range map[string]string{
		"date":        c.CSVDateColumn,
		"description": c.CSVDescriptionColumn,
		"amount":      c.CSVAmountColumn,
		"currency":    c.CSVCurrencyColumn,
	} {
		if strings.TrimSpace(value) == "" {
			errors = append(errors, fmt.Sprintf("CSV %s column name cannot be empty", name))
		}
	}
	if strings.TrimSpace(c.CSVDateFormat) == "" {
		errors = append(errors, "CSV date format cannot be empty")
	}

	// Validate tagging
	if strings.TrimSpace(c.ExceptionalCategory) == "" {
		errors = append(errors, "exceptional category name cannot be empty")
	}

	// Validate log level
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of debug, info, warn, error", c.LogLevel))
	}

	// Return combined errors
	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// Delimiter returns the CSV delimiter as a rune.
func (c *Config) Delimiter() rune {
	return []rune(c.CSVDelimiter)[0]
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

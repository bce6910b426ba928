package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Vaillus/revolut-expense-manager/internal/core"
	"github.com/Vaillus/revolut-expense-manager/internal/log"
)

// Schema describes where the parser finds its required columns in a bank
// export. Column names are matched against the header row exactly.
type Schema struct {
	Delimiter         rune
	DateColumn        string
	DescriptionColumn string
	AmountColumn      string
	CurrencyColumn    string
	DateFormat        string
}

// RevolutSchema returns the layout of a Revolut account statement export.
func RevolutSchema() Schema {
	return Schema{
		Delimiter:         ',',
		DateColumn:        "Started Date",
		DescriptionColumn: "Description",
		AmountColumn:      "Amount",
		CurrencyColumn:    "Currency",
		DateFormat:        "2006-01-02 15:04:05",
	}
}

// SchemaError reports required columns missing from the header row.
// It aborts the whole import.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("export schema invalid: missing columns %s", strings.Join(e.Missing, ", "))
}

// RowError reports a single malformed row. Rows failing with a RowError are
// skipped, not fatal.
type RowError struct {
	Line int
	Err  error
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Line, e.Err)
}

func (e RowError) Unwrap() error { return e.Err }

// Result is the outcome of parsing one export file.
type Result struct {
	Transactions []core.Transaction
	RowsRead     int
	Skipped      []RowError
}

// Parser reads a delimited bank export into Transactions.
type Parser struct {
	schema Schema
	logger *log.Logger
}

func NewParser(schema Schema, logger *log.Logger) *Parser {
	if logger == nil {
		logger = log.New(log.DefaultConfig()).WithComponent(log.ComponentIngest)
	}
	return &Parser{schema: schema, logger: logger}
}

// ParseFile opens and parses an export file.
func (p *Parser) ParseFile(path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open export %s: %w", path, err)
	}
	defer f.Close()
	res, err := p.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse export %s: %w", path, err)
	}
	return res, nil
}

// Parse reads all rows from r. Missing required columns abort with a
// SchemaError; malformed rows are skipped with a warning and counted.
// Output transactions are sorted chronologically.
func (p *Parser) Parse(r io.Reader) (*Result, error) {
	cr := csv.NewReader(r)
	cr.Comma = p.schema.Delimiter
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, &SchemaError{Missing: p.requiredColumns()}
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	cols, missing := p.locateColumns(header)
	if len(missing) > 0 {
		return nil, &SchemaError{Missing: missing}
	}

	res := &Result{}
	line := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		res.RowsRead++
		if err != nil {
			res.skip(p.logger, RowError{Line: line, Err: err})
			continue
		}

		tx, err := p.parseRow(rec, cols)
		if err != nil {
			res.skip(p.logger, RowError{Line: line, Err: err})
			continue
		}
		res.Transactions = append(res.Transactions, tx)
	}

	// Chronological order makes tagging and merging deterministic.
	sort.SliceStable(res.Transactions, func(i, j int) bool {
		return res.Transactions[i].Date.Before(res.Transactions[j].Date)
	})

	return res, nil
}

type columnIndex struct {
	date, desc, amount, currency int
}

func (p *Parser) requiredColumns() []string {
	return []string{p.schema.DateColumn, p.schema.DescriptionColumn, p.schema.AmountColumn, p.schema.CurrencyColumn}
}

func (p *Parser) locateColumns(header []string) (columnIndex, []string) {
	idx := columnIndex{date: -1, desc: -1, amount: -1, currency: -1}
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case p.schema.DateColumn:
			idx.date = i
		case p.schema.DescriptionColumn:
			idx.desc = i
		case p.schema.AmountColumn:
			idx.amount = i
		case p.schema.CurrencyColumn:
			idx.currency = i
		}
	}

	var missing []string
	if idx.date < 0 {
		missing = append(missing, p.schema.DateColumn)
	}
	if idx.desc < 0 {
		missing = append(missing, p.schema.DescriptionColumn)
	}
	if idx.amount < 0 {
		missing = append(missing, p.schema.AmountColumn)
	}
	if idx.currency < 0 {
		missing = append(missing, p.schema.CurrencyColumn)
	}
	return idx, missing
}

func (p *Parser) parseRow(rec []string, cols columnIndex) (core.Transaction, error) {
	max := cols.date
	for _, c := range []int{cols.desc, cols.amount, cols.currency} {
		if c > max {
			max = c
		}
	}
	if len(rec) <= max {
		return core.Transaction{}, fmt.Errorf("expected at least %d fields, got %d", max+1, len(rec))
	}

	date, err := p.parseDate(rec[cols.date])
	if err != nil {
		return core.Transaction{}, err
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(rec[cols.amount]))
	if err != nil {
		return core.Transaction{}, fmt.Errorf("parsing amount %q: %w", rec[cols.amount], err)
	}

	tx := core.Transaction{
		Date:        date,
		Description: strings.TrimSpace(rec[cols.desc]),
		Amount:      amount,
		Currency:    strings.TrimSpace(rec[cols.currency]),
	}
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, err
	}
	return tx, nil
}

func (p *Parser) parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(p.schema.DateFormat, s); err == nil {
		return t, nil
	}
	// Some exports carry bare dates in otherwise timestamped columns.
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date %q: %w", s, err)
	}
	return t, nil
}

func (r *Result) skip(logger *log.Logger, rowErr RowError) {
	r.Skipped = append(r.Skipped, rowErr)
	logger.Warn("Skipping malformed row", log.FieldRow, rowErr.Line, log.FieldError, rowErr.Err.Error())
}

// Expenses filters a parse result down to outgoing payments, the only rows
// the tagged dataset tracks. Returns the expenses and the number filtered out.
func Expenses(txs []core.Transaction) ([]core.Transaction, int) {
	out := make([]core.Transaction, 0, len(txs))
	for _, tx := range txs {
		if tx.IsExpense() {
			out = append(out, tx)
		}
	}
	return out, len(txs) - len(out)
}

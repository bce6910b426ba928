package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Vaillus/revolut-expense-manager/internal/core"
)

// Header is the CSV header for the persisted tagged dataset.
const Header = "date,description,amount,currency,category,exceptional"

const (
	numFields   = 6
	dateFormat  = "2006-01-02"
	colDate     = 0
	colDesc     = 1
	colAmount   = 2
	colCurrency = 3
	colCategory = 4
	colExcept   = 5
)

// ReadAll reads all tagged transactions from a dataset reader.
func ReadAll(r io.Reader) ([]core.TaggedTransaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading dataset CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	// Skip header row.
	var txs []core.TaggedTransaction
	for i, rec := range records[1:] {
		tx, err := Unmarshal(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

// WriteAll writes tagged transactions to a dataset writer (including header).
func WriteAll(w io.Writer, txs []core.TaggedTransaction) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, tx := range txs {
		if err := cw.Write(Marshal(tx)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// Marshal converts a TaggedTransaction to a CSV row.
func Marshal(tx core.TaggedTransaction) []string {
	row := make([]string, numFields)
	row[colDate] = tx.Date.Format(dateFormat)
	row[colDesc] = tx.Description
	row[colAmount] = tx.Amount.String()
	row[colCurrency] = tx.Currency
	row[colCategory] = tx.Category
	row[colExcept] = strconv.FormatBool(tx.Exceptional)
	return row
}

// Unmarshal converts a CSV row to a TaggedTransaction.
func Unmarshal(record []string) (core.TaggedTransaction, error) {
	if len(record) != numFields {
		return core.TaggedTransaction{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	date, err := time.Parse(dateFormat, record[colDate])
	if err != nil {
		return core.TaggedTransaction{}, fmt.Errorf("parsing date %q: %w", record[colDate], err)
	}

	amount, err := decimal.NewFromString(record[colAmount])
	if err != nil {
		return core.TaggedTransaction{}, fmt.Errorf("parsing amount %q: %w", record[colAmount], err)
	}

	exceptional := false
	if record[colExcept] != "" {
		exceptional, err = strconv.ParseBool(record[colExcept])
		if err != nil {
			return core.TaggedTransaction{}, fmt.Errorf("parsing exceptional flag %q: %w", record[colExcept], err)
		}
	}

	category := record[colCategory]
	if strings.TrimSpace(category) == "" {
		category = core.CategoryUncategorized
	}

	return core.TaggedTransaction{
		Transaction: core.Transaction{
			Date:        date,
			Description: record[colDesc],
			Amount:      amount,
			Currency:    record[colCurrency],
		},
		Category:    category,
		Exceptional: exceptional,
	}, nil
}

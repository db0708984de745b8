package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	budgetErrors "github.com/sebuszqo/BudgetManager/internal/budget/errors"
)

// Schema identifies one of the known bank CSV column layouts. The values are
// stored on every transaction as csv_format for auditability.
type Schema string

const (
	// SchemaCard is the credit card export layout.
	SchemaCard Schema = "format1"
	// SchemaChecking is the checking account export layout.
	SchemaChecking Schema = "format2"
)

const (
	colTransactionDate = "transaction date"
	colPostDate        = "post date"
	colPostingDate     = "posting date"
	colDescription     = "description"
	colCategory        = "category"
	colType            = "type"
	colAmount          = "amount"
	colMemo            = "memo"
	colDetails         = "details"
	colBalance         = "balance"
	colCheckNumber     = "check or slip #"
)

type descriptor struct {
	schema  Schema
	columns []string
}

// Detection priority is fixed: the card layout is tried before checking.
var descriptors = []descriptor{
	{SchemaCard, []string{colTransactionDate, colPostDate, colDescription, colCategory, colType, colAmount, colMemo}},
	{SchemaChecking, []string{colDetails, colPostingDate, colDescription, colAmount, colType, colBalance, colCheckNumber}},
}

func normalizeColumn(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// DetectSchema returns the first schema whose full required column set is
// present in the header. Header names are matched case and whitespace
// insensitively, in any order. A header matching no schema is rejected rather
// than mapped partially.
func DetectSchema(header []string) (Schema, error) {
	seen := make(map[string]bool, len(header))
	for _, col := range header {
		seen[normalizeColumn(col)] = true
	}

	for _, d := range descriptors {
		matched := true
		for _, col := range d.columns {
			if !seen[col] {
				matched = false
				break
			}
		}
		if matched {
			return d.schema, nil
		}
	}
	return "", budgetErrors.ErrUnrecognizedFormat
}

// ParseFile reads a whole CSV upload, returning the header and the data rows.
// Rows may carry fewer fields than the header; the normalizer treats missing
// trailing fields as empty.
func ParseFile(r io.Reader) (header []string, records [][]string, err error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err = cr.Read()
	if err == io.EOF {
		return nil, nil, budgetErrors.ErrEmptyFile
	}
	if err != nil {
		return nil, nil, fmt.Errorf("reading CSV header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	records, err = cr.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("reading CSV rows: %w", err)
	}
	return header, records, nil
}

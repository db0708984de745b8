package importer

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sebuszqo/BudgetManager/internal/budget/domain"
	budgetErrors "github.com/sebuszqo/BudgetManager/internal/budget/errors"
)

// Date representations seen across bank exports, tried in order.
var dateLayouts = []string{
	"01/02/2006",
	"01-02-2006",
	"2006-01-02",
	"01/02/06",
	"01-02-06",
	"2006/01/02",
}

// parseDate returns nil when no supported layout matches. The caller decides
// whether a nil date is tolerable for the schema at hand.
func parseDate(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, raw); err == nil {
			return &d
		}
	}
	return nil
}

var amountCleaner = strings.NewReplacer("$", "", ",", "", " ", "")

func parseAmount(raw string) (decimal.Decimal, error) {
	return decimal.NewFromString(amountCleaner.Replace(strings.TrimSpace(raw)))
}

// record resolves row fields by normalized header name, so column order in
// the source file does not matter.
type record struct {
	index  map[string]int
	fields []string
}

func newRecord(header, fields []string) record {
	index := make(map[string]int, len(header))
	for i, col := range header {
		index[normalizeColumn(col)] = i
	}
	return record{index: index, fields: fields}
}

func (r record) get(col string) string {
	i, ok := r.index[col]
	if !ok || i >= len(r.fields) {
		return ""
	}
	return strings.TrimSpace(r.fields[i])
}

func (r record) optional(col string) *string {
	v := r.get(col)
	if v == "" {
		return nil
	}
	return &v
}

// NormalizeRow maps one raw CSV row into the canonical transaction shape for
// the detected schema. rowNum is the 1-based data row index carried into
// RowParseError for diagnostics. Rows with parse issues always fail loudly
// here; the ingest orchestrator decides whether to skip or abort.
func NormalizeRow(schema Schema, header, fields []string, rowNum int) (domain.Transaction, error) {
	rec := newRecord(header, fields)

	description := rec.get(colDescription)
	if description == "" {
		return domain.Transaction{}, budgetErrors.NewRowParseError(rowNum, "missing description")
	}

	rawAmount := rec.get(colAmount)
	amount, err := parseAmount(rawAmount)
	if err != nil {
		return domain.Transaction{}, budgetErrors.NewRowParseError(rowNum, "unparsable amount %q", rawAmount)
	}

	txn := domain.Transaction{
		Description:     description,
		TransactionType: rec.get(colType),
		Amount:          amount,
		CSVFormat:       string(schema),
	}

	switch schema {
	case SchemaCard:
		// Two date columns: either may fail to null independently.
		txn.TransactionDate = parseDate(rec.get(colTransactionDate))
		txn.PostDate = parseDate(rec.get(colPostDate))
		txn.Memo = rec.optional(colMemo)
	case SchemaChecking:
		// Posting date is the only date column, so it must parse.
		posted := parseDate(rec.get(colPostingDate))
		if posted == nil {
			return domain.Transaction{}, budgetErrors.NewRowParseError(rowNum, "unparsable posting date %q", rec.get(colPostingDate))
		}
		txn.TransactionDate = posted
		txn.PostDate = posted
		txn.Memo = rec.optional(colDetails)
		txn.CheckNumber = rec.optional(colCheckNumber)
		if rawBalance := rec.get(colBalance); rawBalance != "" {
			balance, err := parseAmount(rawBalance)
			if err != nil {
				return domain.Transaction{}, budgetErrors.NewRowParseError(rowNum, "unparsable balance %q", rawBalance)
			}
			txn.Balance = &balance
		}
	default:
		return domain.Transaction{}, budgetErrors.NewRowParseError(rowNum, "unknown schema %q", schema)
	}

	return txn, nil
}

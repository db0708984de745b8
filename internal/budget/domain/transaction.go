package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Uncategorized is the fallback category assigned when no rule matches.
const Uncategorized = "Uncategorized"

// Transaction is the canonical record produced by CSV ingestion. Amount sign
// is fixed at normalization time: negative = outflow, positive = inflow.
type Transaction struct {
	ID              int              `json:"id"`
	TransactionDate *time.Time       `json:"transaction_date"`
	PostDate        *time.Time       `json:"post_date"`
	Description     string           `json:"description"`
	Category        string           `json:"category"`
	AutoCategory    string           `json:"auto_category"`
	ManualCategory  *string          `json:"manual_category"`
	TransactionType string           `json:"transaction_type"`
	Amount          decimal.Decimal  `json:"amount"`
	Memo            *string          `json:"memo"`
	Balance         *decimal.Decimal `json:"balance"`
	CheckNumber     *string          `json:"check_number"`
	CSVFormat       string           `json:"csv_format"`
	CreatedAt       time.Time        `json:"created_at"`
}

// EffectiveCategory resolves the manual override over the automatic assignment.
func (t *Transaction) EffectiveCategory() string {
	if t.ManualCategory != nil && *t.ManualCategory != "" {
		return *t.ManualCategory
	}
	if t.AutoCategory != "" {
		return t.AutoCategory
	}
	return Uncategorized
}

// IdentityKey derives the duplicate-detection key. It never includes the
// surrogate id, so re-uploads of overlapping date ranges match against rows
// stored by earlier uploads. Transaction date takes precedence over post date
// when both are present.
func (t *Transaction) IdentityKey() string {
	date := ""
	if t.TransactionDate != nil {
		date = t.TransactionDate.Format("2006-01-02")
	} else if t.PostDate != nil {
		date = t.PostDate.Format("2006-01-02")
	}
	return fmt.Sprintf("%s|%s|%s|%s|%s", date, t.Description, t.Amount.String(), t.TransactionType, t.CSVFormat)
}

// TransactionFilter restricts listing and stats queries. All fields are
// optional and AND-combined.
type TransactionFilter struct {
	Type      string
	Category  string
	StartDate *time.Time
	EndDate   *time.Time
}

type TransactionRepository interface {
	FindExistingKeys(keys []string) (map[string]bool, error)
	InsertBatch(transactions []Transaction) (int, error)
	Find(filter TransactionFilter, limit, page int) ([]Transaction, int, error)
	FindAll() ([]Transaction, error)
	FindByID(id int) (*Transaction, error)
	UpdateCategory(id int, category, autoCategory string) error
	UpdateManualCategory(id int, manualCategory *string, category string) error
	DeleteAll() (int, error)
}

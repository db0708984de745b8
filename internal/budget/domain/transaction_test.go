package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func datePtr(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &d
}

func strPtr(s string) *string {
	return &s
}

func TestIdentityKey_PrefersTransactionDate(t *testing.T) {
	txn := Transaction{
		TransactionDate: datePtr(2025, time.January, 3),
		PostDate:        datePtr(2025, time.January, 5),
		Description:     "GITHUB *PRO SUBSCRIPTION",
		TransactionType: "Sale",
		Amount:          decimal.RequireFromString("-4.00"),
		CSVFormat:       "format1",
	}

	assert.Equal(t, "2025-01-03|GITHUB *PRO SUBSCRIPTION|-4.00|Sale|format1", txn.IdentityKey())
}

func TestIdentityKey_FallsBackToPostDate(t *testing.T) {
	txn := Transaction{
		PostDate:        datePtr(2025, time.January, 5),
		Description:     "COFFEE",
		TransactionType: "Sale",
		Amount:          decimal.RequireFromString("-3.50"),
		CSVFormat:       "format1",
	}

	assert.Equal(t, "2025-01-05|COFFEE|-3.50|Sale|format1", txn.IdentityKey())
}

func TestIdentityKey_IgnoresSurrogateID(t *testing.T) {
	a := Transaction{
		ID:              1,
		TransactionDate: datePtr(2025, time.February, 1),
		Description:     "SHELL STATION",
		TransactionType: "Sale",
		Amount:          decimal.RequireFromString("-40.00"),
		CSVFormat:       "format1",
	}
	b := a
	b.ID = 99

	assert.Equal(t, a.IdentityKey(), b.IdentityKey())
}

func TestIdentityKey_DistinguishesByDescription(t *testing.T) {
	a := Transaction{
		TransactionDate: datePtr(2025, time.February, 1),
		Description:     "SHELL STATION",
		TransactionType: "Sale",
		Amount:          decimal.RequireFromString("-40.00"),
		CSVFormat:       "format1",
	}
	b := a
	b.Description = "EXXON STATION"

	assert.NotEqual(t, a.IdentityKey(), b.IdentityKey())
}

func TestEffectiveCategory_ManualWins(t *testing.T) {
	txn := Transaction{
		AutoCategory:   "Groceries",
		ManualCategory: strPtr("Custom"),
	}
	assert.Equal(t, "Custom", txn.EffectiveCategory())
}

func TestEffectiveCategory_AutoWhenNoManual(t *testing.T) {
	txn := Transaction{AutoCategory: "Groceries"}
	assert.Equal(t, "Groceries", txn.EffectiveCategory())
}

func TestEffectiveCategory_DefaultsToUncategorized(t *testing.T) {
	txn := Transaction{}
	assert.Equal(t, Uncategorized, txn.EffectiveCategory())
}

package importer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	budgetErrors "github.com/sebuszqo/BudgetManager/internal/budget/errors"
)

var cardHeader = []string{"Transaction Date", "Post Date", "Description", "Category", "Type", "Amount", "Memo"}
var checkingHeader = []string{"Details", "Posting Date", "Description", "Amount", "Type", "Balance", "Check or Slip #"}

func TestNormalizeRow_Card(t *testing.T) {
	fields := []string{"01/03/2025", "01/05/2025", "GITHUB *PRO SUBSCRIPTION", "Software", "Sale", "-4.00", "monthly plan"}
	txn, err := NormalizeRow(SchemaCard, cardHeader, fields, 1)
	require.NoError(t, err)

	require.NotNil(t, txn.TransactionDate)
	assert.Equal(t, time.Date(2025, time.January, 3, 0, 0, 0, 0, time.UTC), *txn.TransactionDate)
	require.NotNil(t, txn.PostDate)
	assert.Equal(t, time.Date(2025, time.January, 5, 0, 0, 0, 0, time.UTC), *txn.PostDate)
	assert.Equal(t, "GITHUB *PRO SUBSCRIPTION", txn.Description)
	assert.Equal(t, "Sale", txn.TransactionType)
	assert.Equal(t, "-4.00", txn.Amount.StringFixed(2))
	require.NotNil(t, txn.Memo)
	assert.Equal(t, "monthly plan", *txn.Memo)
	assert.Equal(t, "format1", txn.CSVFormat)
	assert.Nil(t, txn.Balance)
	assert.Nil(t, txn.CheckNumber)
}

func TestNormalizeRow_CardBadDateBecomesNull(t *testing.T) {
	fields := []string{"NOTADATE", "01/05/2025", "COFFEE", "", "Sale", "-3.50", ""}
	txn, err := NormalizeRow(SchemaCard, cardHeader, fields, 1)
	require.NoError(t, err)

	assert.Nil(t, txn.TransactionDate)
	require.NotNil(t, txn.PostDate)
}

func TestNormalizeRow_CardEmptyMemoIsNull(t *testing.T) {
	fields := []string{"01/03/2025", "01/05/2025", "COFFEE", "", "Sale", "-3.50", ""}
	txn, err := NormalizeRow(SchemaCard, cardHeader, fields, 1)
	require.NoError(t, err)
	assert.Nil(t, txn.Memo)
}

func TestNormalizeRow_BadAmountFails(t *testing.T) {
	fields := []string{"01/03/2025", "01/05/2025", "COFFEE", "", "Sale", "NOTANUMBER", ""}
	_, err := NormalizeRow(SchemaCard, cardHeader, fields, 3)
	require.Error(t, err)
	assert.True(t, budgetErrors.IsRowParseError(err))
	assert.Contains(t, err.Error(), "row 3")
	assert.Contains(t, err.Error(), "unparsable amount")
}

func TestNormalizeRow_MissingDescriptionFails(t *testing.T) {
	fields := []string{"01/03/2025", "01/05/2025", "", "", "Sale", "-3.50", ""}
	_, err := NormalizeRow(SchemaCard, cardHeader, fields, 2)
	require.Error(t, err)
	assert.True(t, budgetErrors.IsRowParseError(err))
}

func TestNormalizeRow_AmountWithCurrencyNoise(t *testing.T) {
	fields := []string{"01/03/2025", "01/05/2025", "PAYCHECK", "", "Deposit", "$1,234.56", ""}
	txn, err := NormalizeRow(SchemaCard, cardHeader, fields, 1)
	require.NoError(t, err)
	assert.Equal(t, "1234.56", txn.Amount.StringFixed(2))
}

func TestNormalizeRow_Checking(t *testing.T) {
	fields := []string{"DEBIT", "01/22/2025", "CHECK 1042", "-250.00", "CHECK_PAID", "1750.25", "1042"}
	txn, err := NormalizeRow(SchemaChecking, checkingHeader, fields, 1)
	require.NoError(t, err)

	require.NotNil(t, txn.TransactionDate)
	require.NotNil(t, txn.PostDate)
	assert.Equal(t, *txn.TransactionDate, *txn.PostDate)
	assert.Equal(t, "CHECK 1042", txn.Description)
	assert.Equal(t, "-250.00", txn.Amount.StringFixed(2))
	require.NotNil(t, txn.Balance)
	assert.Equal(t, "1750.25", txn.Balance.StringFixed(2))
	require.NotNil(t, txn.CheckNumber)
	assert.Equal(t, "1042", *txn.CheckNumber)
	require.NotNil(t, txn.Memo)
	assert.Equal(t, "DEBIT", *txn.Memo)
	assert.Equal(t, "format2", txn.CSVFormat)
}

func TestNormalizeRow_CheckingBadPostingDateFails(t *testing.T) {
	// Posting date is the only date column in the checking layout.
	fields := []string{"DEBIT", "NOTADATE", "COFFEE", "-4.00", "ACH_DEBIT", "100.00", ""}
	_, err := NormalizeRow(SchemaChecking, checkingHeader, fields, 5)
	require.Error(t, err)
	assert.True(t, budgetErrors.IsRowParseError(err))
	assert.Contains(t, err.Error(), "posting date")
}

func TestNormalizeRow_CheckingEmptyOptionalColumns(t *testing.T) {
	fields := []string{"", "01/22/2025", "COFFEE", "-4.00", "ACH_DEBIT", "", ""}
	txn, err := NormalizeRow(SchemaChecking, checkingHeader, fields, 1)
	require.NoError(t, err)
	assert.Nil(t, txn.Memo)
	assert.Nil(t, txn.Balance)
	assert.Nil(t, txn.CheckNumber)
}

func TestNormalizeRow_ShortRowTreatedAsEmptyFields(t *testing.T) {
	fields := []string{"DEBIT", "01/22/2025", "COFFEE", "-4.00", "ACH_DEBIT"}
	txn, err := NormalizeRow(SchemaChecking, checkingHeader, fields, 1)
	require.NoError(t, err)
	assert.Nil(t, txn.Balance)
	assert.Nil(t, txn.CheckNumber)
}

func TestParseDate_SupportedLayouts(t *testing.T) {
	for _, raw := range []string{"01/03/2025", "01-03-2025", "2025-01-03", "01/03/25", "01-03-25", "2025/01/03"} {
		d := parseDate(raw)
		require.NotNil(t, d, "expected %q to parse", raw)
		assert.Equal(t, 2025, d.Year())
		assert.Equal(t, time.January, d.Month())
		assert.Equal(t, 3, d.Day())
	}
}

func TestParseDate_Unparsable(t *testing.T) {
	assert.Nil(t, parseDate(""))
	assert.Nil(t, parseDate("13/45/2025"))
	assert.Nil(t, parseDate("yesterday"))
}

package application

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sebuszqo/BudgetManager/internal/budget/domain"
	"github.com/sebuszqo/BudgetManager/internal/budget/infrastructure"
)

func seedStatsRepo(t *testing.T) *infrastructure.MockTransactionRepository {
	t.Helper()
	repo := infrastructure.NewMockTransactionRepository()
	_, err := repo.InsertBatch([]domain.Transaction{
		{
			TransactionDate: datePtr(2025, time.January, 3),
			Description:     "KROGER #123",
			Category:        "Groceries",
			AutoCategory:    "Groceries",
			TransactionType: "Sale",
			Amount:          decimal.RequireFromString("-12.50"),
			CSVFormat:       "format1",
		},
		{
			TransactionDate: datePtr(2025, time.January, 10),
			Description:     "SAFEWAY #9",
			Category:        "Groceries",
			AutoCategory:    "Groceries",
			TransactionType: "Sale",
			Amount:          decimal.RequireFromString("-7.25"),
			CSVFormat:       "format1",
		},
		{
			TransactionDate: datePtr(2025, time.February, 1),
			Description:     "ACME PAYROLL",
			Category:        "Income",
			AutoCategory:    "Income",
			TransactionType: "Payment",
			Amount:          decimal.RequireFromString("100.00"),
			CSVFormat:       "format1",
		},
	})
	require.NoError(t, err)
	return repo
}

func TestAggregate_SumsPerCategory(t *testing.T) {
	service := NewStatsService(seedStatsRepo(t))

	stats, err := service.Aggregate(domain.TransactionFilter{})
	require.NoError(t, err)

	assert.Equal(t, 3, stats.TotalTransactions)
	require.Len(t, stats.Categories, 2)

	// Sorted by category name.
	groceries := stats.Categories[0]
	assert.Equal(t, "Groceries", groceries.Category)
	assert.Equal(t, 2, groceries.Count)
	assert.Equal(t, "-19.75", groceries.TotalAmount.StringFixed(2))

	income := stats.Categories[1]
	assert.Equal(t, "Income", income.Category)
	assert.Equal(t, 1, income.Count)
	assert.Equal(t, "100.00", income.TotalAmount.StringFixed(2))
}

func TestAggregate_DateRange(t *testing.T) {
	service := NewStatsService(seedStatsRepo(t))

	stats, err := service.Aggregate(domain.TransactionFilter{})
	require.NoError(t, err)

	require.NotNil(t, stats.DateRange.Earliest)
	require.NotNil(t, stats.DateRange.Latest)
	assert.Equal(t, time.Date(2025, time.January, 3, 0, 0, 0, 0, time.UTC), *stats.DateRange.Earliest)
	assert.Equal(t, time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC), *stats.DateRange.Latest)
}

func TestAggregate_RespectsFilter(t *testing.T) {
	service := NewStatsService(seedStatsRepo(t))

	stats, err := service.Aggregate(domain.TransactionFilter{Category: "groceries"})
	require.NoError(t, err)

	assert.Equal(t, 2, stats.TotalTransactions)
	require.Len(t, stats.Categories, 1)
	assert.Equal(t, "Groceries", stats.Categories[0].Category)
	assert.Equal(t, time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC), *stats.DateRange.Latest)
}

func TestAggregate_ManualOverrideCountsUnderOverride(t *testing.T) {
	repo := seedStatsRepo(t)
	transactions, err := repo.FindAll()
	require.NoError(t, err)
	var id int
	for _, txn := range transactions {
		if txn.Description == "SAFEWAY #9" {
			id = txn.ID
		}
	}
	override := "Household"
	require.NoError(t, repo.UpdateManualCategory(id, &override, "Household"))

	stats, err := NewStatsService(repo).Aggregate(domain.TransactionFilter{})
	require.NoError(t, err)

	byName := make(map[string]CategorySummary)
	for _, summary := range stats.Categories {
		byName[summary.Category] = summary
	}
	assert.Equal(t, 1, byName["Groceries"].Count)
	assert.Equal(t, "-12.50", byName["Groceries"].TotalAmount.StringFixed(2))
	assert.Equal(t, 1, byName["Household"].Count)
	assert.Equal(t, "-7.25", byName["Household"].TotalAmount.StringFixed(2))
}

func TestAggregate_EmptyStore(t *testing.T) {
	service := NewStatsService(infrastructure.NewMockTransactionRepository())

	stats, err := service.Aggregate(domain.TransactionFilter{})
	require.NoError(t, err)

	assert.Equal(t, 0, stats.TotalTransactions)
	assert.Empty(t, stats.Categories)
	assert.Nil(t, stats.DateRange.Earliest)
	assert.Nil(t, stats.DateRange.Latest)
}

package application

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sebuszqo/BudgetManager/internal/budget/domain"
)

// StatsService folds stored transactions into category and date-range
// summaries. Sums are decimal, so repeated aggregation never drifts.
type StatsService struct {
	repo domain.TransactionRepository
}

func NewStatsService(repo domain.TransactionRepository) *StatsService {
	return &StatsService{repo: repo}
}

type CategorySummary struct {
	Category    string          `json:"category"`
	Count       int             `json:"count"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

type DateRange struct {
	Earliest *time.Time `json:"earliest"`
	Latest   *time.Time `json:"latest"`
}

type Stats struct {
	TotalTransactions int               `json:"total_transactions"`
	DateRange         DateRange         `json:"date_range"`
	Categories        []CategorySummary `json:"categories"`
}

// Aggregate computes stats over the transactions matching filter, using the
// same filter semantics as listing. Categories use the effective category
// resolved at write time and are returned in name order.
func (s *StatsService) Aggregate(filter domain.TransactionFilter) (*Stats, error) {
	transactions, _, err := s.repo.Find(filter, 0, 0)
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		TotalTransactions: len(transactions),
		Categories:        []CategorySummary{},
	}

	byCategory := make(map[string]*CategorySummary)
	for _, txn := range transactions {
		date := txn.TransactionDate
		if date == nil {
			date = txn.PostDate
		}
		if date != nil {
			if stats.DateRange.Earliest == nil || date.Before(*stats.DateRange.Earliest) {
				stats.DateRange.Earliest = date
			}
			if stats.DateRange.Latest == nil || date.After(*stats.DateRange.Latest) {
				stats.DateRange.Latest = date
			}
		}

		category := txn.EffectiveCategory()
		summary, ok := byCategory[category]
		if !ok {
			summary = &CategorySummary{Category: category}
			byCategory[category] = summary
		}
		summary.Count++
		summary.TotalAmount = summary.TotalAmount.Add(txn.Amount)
	}

	for _, summary := range byCategory {
		stats.Categories = append(stats.Categories, *summary)
	}
	sort.Slice(stats.Categories, func(i, j int) bool {
		return stats.Categories[i].Category < stats.Categories[j].Category
	})
	return stats, nil
}

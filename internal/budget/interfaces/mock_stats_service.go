package interfaces

import (
	"errors"

	"github.com/sebuszqo/BudgetManager/internal/budget/application"
	"github.com/sebuszqo/BudgetManager/internal/budget/domain"
)

type MockStatsService struct {
	stats      *application.Stats
	shouldFail bool

	receivedFilter domain.TransactionFilter
}

func (m *MockStatsService) Aggregate(filter domain.TransactionFilter) (*application.Stats, error) {
	if m.shouldFail {
		return nil, errors.New("service error")
	}
	m.receivedFilter = filter
	return m.stats, nil
}

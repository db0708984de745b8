package interfaces

import (
	"errors"

	"github.com/sebuszqo/BudgetManager/internal/budget/domain"
)

type MockTransactionService struct {
	transactions []domain.Transaction
	total        int
	clearedCount int
	shouldFail   bool
	err          error

	receivedFilter domain.TransactionFilter
	receivedLimit  int
	receivedPage   int
	receivedID     int
	receivedManual *string
}

func (m *MockTransactionService) fail() error {
	if m.err != nil {
		return m.err
	}
	return errors.New("service error")
}

func (m *MockTransactionService) GetTransactions(filter domain.TransactionFilter, limit, page int) ([]domain.Transaction, int, error) {
	if m.shouldFail {
		return nil, 0, m.fail()
	}
	m.receivedFilter = filter
	m.receivedLimit = limit
	m.receivedPage = page
	return m.transactions, m.total, nil
}

func (m *MockTransactionService) SetManualCategory(id int, manualCategory *string) (*domain.Transaction, error) {
	if m.shouldFail {
		return nil, m.fail()
	}
	m.receivedID = id
	m.receivedManual = manualCategory
	for i := range m.transactions {
		if m.transactions[i].ID == id {
			txn := m.transactions[i]
			txn.ManualCategory = manualCategory
			txn.Category = txn.EffectiveCategory()
			return &txn, nil
		}
	}
	return nil, m.fail()
}

func (m *MockTransactionService) ClearAll() (int, error) {
	if m.shouldFail {
		return 0, m.fail()
	}
	return m.clearedCount, nil
}

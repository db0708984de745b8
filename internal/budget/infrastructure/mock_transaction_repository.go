package infrastructure

import (
	"sort"
	"strings"
	"sync"

	"github.com/sebuszqo/BudgetManager/internal/budget/domain"
)

// MockTransactionRepository is an in-memory TransactionRepository used by
// service tests. It mirrors the matching semantics of the SQL implementation.
type MockTransactionRepository struct {
	mu           sync.Mutex
	Transactions []domain.Transaction
	nextID       int
}

func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{nextID: 1}
}

func (m *MockTransactionRepository) FindExistingKeys(keys []string) (map[string]bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := make(map[string]bool, len(m.Transactions))
	for i := range m.Transactions {
		stored[m.Transactions[i].IdentityKey()] = true
	}

	existing := make(map[string]bool)
	for _, key := range keys {
		if stored[key] {
			existing[key] = true
		}
	}
	return existing, nil
}

func (m *MockTransactionRepository) InsertBatch(transactions []domain.Transaction) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.nextID == 0 {
		m.nextID = 1
	}
	seen := make(map[string]bool, len(m.Transactions))
	for i := range m.Transactions {
		seen[m.Transactions[i].IdentityKey()] = true
	}

	inserted := 0
	for _, txn := range transactions {
		if seen[txn.IdentityKey()] {
			continue
		}
		txn.ID = m.nextID
		m.nextID++
		seen[txn.IdentityKey()] = true
		m.Transactions = append(m.Transactions, txn)
		inserted++
	}
	return inserted, nil
}

func matchesFilter(txn domain.Transaction, filter domain.TransactionFilter) bool {
	if filter.Type != "" && !strings.Contains(strings.ToLower(txn.TransactionType), strings.ToLower(filter.Type)) {
		return false
	}
	if filter.Category != "" && !strings.Contains(strings.ToLower(txn.Category), strings.ToLower(filter.Category)) {
		return false
	}
	if filter.StartDate != nil && (txn.TransactionDate == nil || txn.TransactionDate.Before(*filter.StartDate)) {
		return false
	}
	if filter.EndDate != nil && (txn.TransactionDate == nil || txn.TransactionDate.After(*filter.EndDate)) {
		return false
	}
	return true
}

func (m *MockTransactionRepository) Find(filter domain.TransactionFilter, limit, page int) ([]domain.Transaction, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var matched []domain.Transaction
	for _, txn := range m.Transactions {
		if matchesFilter(txn, filter) {
			matched = append(matched, txn)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		a, b := matched[i].TransactionDate, matched[j].TransactionDate
		switch {
		case a == nil && b == nil:
			return matched[i].ID > matched[j].ID
		case a == nil:
			return false
		case b == nil:
			return true
		case a.Equal(*b):
			return matched[i].ID > matched[j].ID
		default:
			return a.After(*b)
		}
	})

	total := len(matched)
	if limit > 0 {
		if page < 1 {
			page = 1
		}
		start := (page - 1) * limit
		if start > total {
			start = total
		}
		end := start + limit
		if end > total {
			end = total
		}
		matched = matched[start:end]
	}
	return matched, total, nil
}

func (m *MockTransactionRepository) FindAll() ([]domain.Transaction, error) {
	transactions, _, err := m.Find(domain.TransactionFilter{}, 0, 0)
	return transactions, err
}

func (m *MockTransactionRepository) FindByID(id int) (*domain.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.Transactions {
		if m.Transactions[i].ID == id {
			txn := m.Transactions[i]
			return &txn, nil
		}
	}
	return nil, nil
}

func (m *MockTransactionRepository) UpdateCategory(id int, category, autoCategory string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.Transactions {
		if m.Transactions[i].ID == id {
			m.Transactions[i].Category = category
			m.Transactions[i].AutoCategory = autoCategory
		}
	}
	return nil
}

func (m *MockTransactionRepository) UpdateManualCategory(id int, manualCategory *string, category string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.Transactions {
		if m.Transactions[i].ID == id {
			m.Transactions[i].ManualCategory = manualCategory
			m.Transactions[i].Category = category
		}
	}
	return nil
}

func (m *MockTransactionRepository) DeleteAll() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	count := len(m.Transactions)
	m.Transactions = nil
	return count, nil
}

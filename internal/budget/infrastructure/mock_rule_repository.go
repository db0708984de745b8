package infrastructure

import (
	"sync"
	"time"

	"github.com/sebuszqo/BudgetManager/internal/budget/domain"
)

// MockRuleRepository is an in-memory RuleRepository for service tests.
type MockRuleRepository struct {
	mu     sync.Mutex
	Rules  []domain.CategoryRule
	nextID int
}

func NewMockRuleRepository() *MockRuleRepository {
	return &MockRuleRepository{nextID: 1}
}

func (m *MockRuleRepository) Save(rule *domain.CategoryRule) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.nextID == 0 {
		m.nextID = 1
	}
	rule.ID = m.nextID
	m.nextID++
	now := time.Now()
	rule.CreatedAt = now
	rule.UpdatedAt = now
	m.Rules = append(m.Rules, *rule)
	return nil
}

func (m *MockRuleRepository) InsertBatch(rules []domain.CategoryRule) (int, error) {
	for i := range rules {
		if err := m.Save(&rules[i]); err != nil {
			return i, err
		}
	}
	return len(rules), nil
}

func (m *MockRuleRepository) FindAll() ([]domain.CategoryRule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rules := make([]domain.CategoryRule, len(m.Rules))
	copy(rules, m.Rules)
	return rules, nil
}

func (m *MockRuleRepository) FindActive() ([]domain.CategoryRule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var rules []domain.CategoryRule
	for _, rule := range m.Rules {
		if rule.IsActive {
			rules = append(rules, rule)
		}
	}
	return rules, nil
}

func (m *MockRuleRepository) FindByID(id int) (*domain.CategoryRule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.Rules {
		if m.Rules[i].ID == id {
			rule := m.Rules[i]
			return &rule, nil
		}
	}
	return nil, nil
}

func (m *MockRuleRepository) Update(rule *domain.CategoryRule) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.Rules {
		if m.Rules[i].ID == rule.ID {
			rule.UpdatedAt = time.Now()
			m.Rules[i] = *rule
		}
	}
	return nil
}

func (m *MockRuleRepository) Count() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Rules), nil
}

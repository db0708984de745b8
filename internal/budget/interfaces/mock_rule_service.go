package interfaces

import (
	"errors"

	"github.com/sebuszqo/BudgetManager/internal/budget/application"
	"github.com/sebuszqo/BudgetManager/internal/budget/domain"
)

type MockRuleService struct {
	rules        []domain.CategoryRule
	portable     []domain.PortableRule
	updatedCount int
	shouldFail   bool
	err          error

	createdRule     *domain.CategoryRule
	updatedID       int
	updatedFields   application.RuleUpdate
	deactivatedID   int
	importedRules   []domain.PortableRule
	recategorizeRan bool
}

func (m *MockRuleService) fail() error {
	if m.err != nil {
		return m.err
	}
	return errors.New("service error")
}

func (m *MockRuleService) GetRules(includeInactive bool) ([]domain.CategoryRule, error) {
	if m.shouldFail {
		return nil, m.fail()
	}
	if includeInactive {
		return m.rules, nil
	}
	var active []domain.CategoryRule
	for _, rule := range m.rules {
		if rule.IsActive {
			active = append(active, rule)
		}
	}
	return active, nil
}

func (m *MockRuleService) CreateRule(rule *domain.CategoryRule) (int, error) {
	if m.shouldFail {
		return 0, m.fail()
	}
	rule.ID = len(m.rules) + 1
	m.createdRule = rule
	return m.updatedCount, nil
}

func (m *MockRuleService) UpdateRule(id int, update application.RuleUpdate) (*domain.CategoryRule, int, error) {
	if m.shouldFail {
		return nil, 0, m.fail()
	}
	m.updatedID = id
	m.updatedFields = update
	for i := range m.rules {
		if m.rules[i].ID == id {
			return &m.rules[i], m.updatedCount, nil
		}
	}
	return nil, 0, m.fail()
}

func (m *MockRuleService) DeactivateRule(id int) error {
	if m.shouldFail {
		return m.fail()
	}
	m.deactivatedID = id
	return nil
}

func (m *MockRuleService) RecategorizeAll() (int, error) {
	if m.shouldFail {
		return 0, m.fail()
	}
	m.recategorizeRan = true
	return m.updatedCount, nil
}

func (m *MockRuleService) ExportRules() ([]domain.PortableRule, error) {
	if m.shouldFail {
		return nil, m.fail()
	}
	return m.portable, nil
}

func (m *MockRuleService) ImportRules(rules []domain.PortableRule) (int, int, error) {
	if m.shouldFail {
		return 0, 0, m.fail()
	}
	m.importedRules = rules
	return len(rules), m.updatedCount, nil
}

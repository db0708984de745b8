package application

import (
	"strings"
	"sync"

	"github.com/sebuszqo/BudgetManager/internal/budget/domain"
	budgetErrors "github.com/sebuszqo/BudgetManager/internal/budget/errors"
)

// CategoryRuleService owns the rule set and the re-categorization of stored
// transactions. Re-categorization is a full scan-and-update, so it holds a
// lock that keeps passes from interleaving with each other.
type CategoryRuleService struct {
	ruleRepo        domain.RuleRepository
	transactionRepo domain.TransactionRepository
	mu              sync.Mutex
}

func NewCategoryRuleService(ruleRepo domain.RuleRepository, transactionRepo domain.TransactionRepository) *CategoryRuleService {
	return &CategoryRuleService{ruleRepo: ruleRepo, transactionRepo: transactionRepo}
}

func (s *CategoryRuleService) GetRules(includeInactive bool) ([]domain.CategoryRule, error) {
	if includeInactive {
		return s.ruleRepo.FindAll()
	}
	return s.ruleRepo.FindActive()
}

// CreateRule validates and persists a rule, then re-categorizes all stored
// transactions against the updated rule set. Returns the created rule and the
// number of transactions whose category changed.
func (s *CategoryRuleService) CreateRule(rule *domain.CategoryRule) (int, error) {
	rule.CategoryName = strings.TrimSpace(rule.CategoryName)
	rule.RegexPattern = strings.TrimSpace(rule.RegexPattern)
	if err := rule.Validate(); err != nil {
		return 0, err
	}
	if err := s.ruleRepo.Save(rule); err != nil {
		return 0, err
	}
	return s.RecategorizeAll()
}

// RuleUpdate carries the fields of a rule change. Nil fields are left as is.
type RuleUpdate struct {
	CategoryName *string
	RegexPattern *string
	IsActive     *bool
}

func (s *CategoryRuleService) UpdateRule(id int, update RuleUpdate) (*domain.CategoryRule, int, error) {
	rule, err := s.ruleRepo.FindByID(id)
	if err != nil {
		return nil, 0, err
	}
	if rule == nil {
		return nil, 0, budgetErrors.ErrRuleNotFound
	}

	if update.CategoryName != nil {
		rule.CategoryName = strings.TrimSpace(*update.CategoryName)
	}
	if update.RegexPattern != nil {
		rule.RegexPattern = strings.TrimSpace(*update.RegexPattern)
	}
	if update.IsActive != nil {
		rule.IsActive = *update.IsActive
	}
	if err := rule.Validate(); err != nil {
		return nil, 0, err
	}
	if err := s.ruleRepo.Update(rule); err != nil {
		return nil, 0, err
	}

	updated, err := s.RecategorizeAll()
	if err != nil {
		return nil, 0, err
	}
	return rule, updated, nil
}

// DeactivateRule soft-deletes a rule. The row is kept so the rule can be
// re-enabled later with its history intact.
func (s *CategoryRuleService) DeactivateRule(id int) error {
	rule, err := s.ruleRepo.FindByID(id)
	if err != nil {
		return err
	}
	if rule == nil {
		return budgetErrors.ErrRuleNotFound
	}
	rule.IsActive = false
	return s.ruleRepo.Update(rule)
}

// RecategorizeAll recomputes auto_category for every stored transaction
// against the current active rule set. Manual overrides are never clobbered:
// the effective category moves only where manual_category is unset. Returns
// the number of transactions whose effective category actually changed.
func (s *CategoryRuleService) RecategorizeAll() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rules, err := s.ruleRepo.FindActive()
	if err != nil {
		return 0, err
	}
	compiled := compileRules(rules)

	transactions, err := s.transactionRepo.FindAll()
	if err != nil {
		return 0, err
	}

	changed := 0
	for _, txn := range transactions {
		newAuto := classify(compiled, classificationText(txn))
		if newAuto == txn.AutoCategory {
			continue
		}
		category := txn.Category
		if txn.ManualCategory == nil {
			category = newAuto
		}
		if err := s.transactionRepo.UpdateCategory(txn.ID, category, newAuto); err != nil {
			return changed, err
		}
		if category != txn.Category {
			changed++
		}
	}
	return changed, nil
}

// ExportRules returns the full rule set in the portable wire form.
func (s *CategoryRuleService) ExportRules() ([]domain.PortableRule, error) {
	rules, err := s.ruleRepo.FindAll()
	if err != nil {
		return nil, err
	}
	portable := make([]domain.PortableRule, 0, len(rules))
	for _, rule := range rules {
		portable = append(portable, domain.PortableRule{
			CategoryName: rule.CategoryName,
			RegexPattern: rule.RegexPattern,
			IsActive:     rule.IsActive,
		})
	}
	return portable, nil
}

// ImportRules persists a portable rule set with fresh ids and timestamps.
// Every pattern is validated up front; one bad pattern rejects the whole
// import with nothing persisted. Returns the inserted count and the number of
// transactions re-categorized afterwards.
func (s *CategoryRuleService) ImportRules(portable []domain.PortableRule) (int, int, error) {
	if len(portable) == 0 {
		return 0, 0, budgetErrors.NewValidationError("No rules provided")
	}

	rules := make([]domain.CategoryRule, 0, len(portable))
	for _, p := range portable {
		rule := domain.CategoryRule{
			CategoryName: strings.TrimSpace(p.CategoryName),
			RegexPattern: strings.TrimSpace(p.RegexPattern),
			IsActive:     p.IsActive,
		}
		if err := rule.Validate(); err != nil {
			return 0, 0, err
		}
		rules = append(rules, rule)
	}

	inserted, err := s.ruleRepo.InsertBatch(rules)
	if err != nil {
		return 0, 0, err
	}
	updated, err := s.RecategorizeAll()
	if err != nil {
		return inserted, 0, err
	}
	return inserted, updated, nil
}

// SeedDefaultRules inserts the starter rule set when the store holds no rules
// at all, mirroring a first run of the app.
func (s *CategoryRuleService) SeedDefaultRules() (int, error) {
	count, err := s.ruleRepo.Count()
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}
	return s.ruleRepo.InsertBatch(DefaultRules())
}

package domain

import (
	"regexp"
	"strings"
	"time"

	budgetErrors "github.com/sebuszqo/BudgetManager/internal/budget/errors"
)

// CategoryRule maps descriptions matching a regex to a category. Rules are
// evaluated in ascending id order and the first active match wins.
type CategoryRule struct {
	ID           int       `json:"id"`
	CategoryName string    `json:"category_name"`
	RegexPattern string    `json:"regex_pattern"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Compile builds the case-insensitive matcher for the rule's pattern.
func (r *CategoryRule) Compile() (*regexp.Regexp, error) {
	return regexp.Compile("(?i)" + r.RegexPattern)
}

// Validate rejects empty fields and patterns that do not compile, so a broken
// rule can never be stored and discovered later during classification.
func (r *CategoryRule) Validate() error {
	if strings.TrimSpace(r.CategoryName) == "" {
		return budgetErrors.NewValidationError("Category name must not be empty")
	}
	if strings.TrimSpace(r.RegexPattern) == "" {
		return budgetErrors.NewValidationError("Regex pattern must not be empty")
	}
	if _, err := r.Compile(); err != nil {
		return budgetErrors.NewInvalidRulePattern(r.RegexPattern, err)
	}
	return nil
}

// PortableRule is the import/export wire form. Ids and timestamps are
// excluded so exported rule sets stay portable between databases.
type PortableRule struct {
	CategoryName string `json:"category_name"`
	RegexPattern string `json:"regex_pattern"`
	IsActive     bool   `json:"is_active"`
}

type RuleRepository interface {
	Save(rule *CategoryRule) error
	InsertBatch(rules []CategoryRule) (int, error)
	FindAll() ([]CategoryRule, error)
	FindActive() ([]CategoryRule, error)
	FindByID(id int) (*CategoryRule, error)
	Update(rule *CategoryRule) error
	Count() (int, error)
}

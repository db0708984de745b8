package application

import (
	"log"
	"regexp"
	"sort"

	"github.com/sebuszqo/BudgetManager/internal/budget/domain"
)

type compiledRule struct {
	category string
	re       *regexp.Regexp
}

// compileRules prepares the active rules for matching, in ascending id order
// so that first-match-wins stays stable regardless of how the rules were
// loaded. Patterns that fail to compile are skipped instead of aborting
// classification; repository-level validation should make that unreachable.
func compileRules(rules []domain.CategoryRule) []compiledRule {
	ordered := make([]domain.CategoryRule, len(rules))
	copy(ordered, rules)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })

	compiled := make([]compiledRule, 0, len(ordered))
	for _, rule := range ordered {
		if !rule.IsActive {
			continue
		}
		re, err := rule.Compile()
		if err != nil {
			log.Printf("Skipping stored rule %d with invalid pattern: %v", rule.ID, err)
			continue
		}
		compiled = append(compiled, compiledRule{category: rule.CategoryName, re: re})
	}
	return compiled
}

// classify returns the category of the first matching rule, or Uncategorized.
func classify(compiled []compiledRule, text string) string {
	for _, rule := range compiled {
		if rule.re.MatchString(text) {
			return rule.category
		}
	}
	return domain.Uncategorized
}

// classificationText is the input the engine matches against: the description
// plus the memo when one is present.
func classificationText(txn domain.Transaction) string {
	if txn.Memo != nil && *txn.Memo != "" {
		return txn.Description + " " + *txn.Memo
	}
	return txn.Description
}

package application

import "github.com/sebuszqo/BudgetManager/internal/budget/domain"

// DefaultRules is the starter categorization set installed on an empty
// database. Users are expected to edit these through the rules API.
func DefaultRules() []domain.CategoryRule {
	return []domain.CategoryRule{
		{CategoryName: "Groceries", RegexPattern: `grocery|supermarket|food|kroger|walmart|target.*food|whole foods|trader joe|safeway`, IsActive: true},
		{CategoryName: "Eating Out", RegexPattern: `restaurant|mcdonald|burger|pizza|taco|subway|starbucks|coffee|cafe|diner`, IsActive: true},
		{CategoryName: "Fuel", RegexPattern: `gas|fuel|shell|exxon|bp|chevron|mobil|station`, IsActive: true},
		{CategoryName: "Shopping", RegexPattern: `amazon|ebay|store|shop|retail|mall|costco`, IsActive: true},
		{CategoryName: "Utilities", RegexPattern: `electric|water|gas company|utility|phone|internet|cable`, IsActive: true},
		{CategoryName: "Transportation", RegexPattern: `uber|lyft|taxi|bus|train|parking|toll`, IsActive: true},
	}
}

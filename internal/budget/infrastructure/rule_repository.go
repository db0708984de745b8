package infrastructure

import (
	"database/sql"
	"fmt"

	"github.com/sebuszqo/BudgetManager/internal/budget/domain"
)

type RuleRepository struct {
	db *sql.DB
}

func NewRuleRepository(db *sql.DB) *RuleRepository {
	return &RuleRepository{db: db}
}

func (r *RuleRepository) Save(rule *domain.CategoryRule) error {
	return r.db.QueryRow(
		`INSERT INTO category_rules (category_name, regex_pattern, is_active)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`,
		rule.CategoryName, rule.RegexPattern, rule.IsActive,
	).Scan(&rule.ID, &rule.CreatedAt, &rule.UpdatedAt)
}

func (r *RuleRepository) InsertBatch(rules []domain.CategoryRule) (int, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return 0, err
	}

	for i := range rules {
		err := tx.QueryRow(
			`INSERT INTO category_rules (category_name, regex_pattern, is_active)
			VALUES ($1, $2, $3)
			RETURNING id, created_at, updated_at`,
			rules[i].CategoryName, rules[i].RegexPattern, rules[i].IsActive,
		).Scan(&rules[i].ID, &rules[i].CreatedAt, &rules[i].UpdatedAt)
		if err != nil {
			tx.Rollback()
			return 0, fmt.Errorf("inserting rule batch: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(rules), nil
}

func (r *RuleRepository) findWhere(where string) ([]domain.CategoryRule, error) {
	rows, err := r.db.Query(
		`SELECT id, category_name, regex_pattern, is_active, created_at, updated_at
		FROM category_rules` + where + ` ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rules []domain.CategoryRule
	for rows.Next() {
		var rule domain.CategoryRule
		if err := rows.Scan(&rule.ID, &rule.CategoryName, &rule.RegexPattern,
			&rule.IsActive, &rule.CreatedAt, &rule.UpdatedAt); err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, rows.Err()
}

// FindAll returns every rule in creation order, including inactive ones.
func (r *RuleRepository) FindAll() ([]domain.CategoryRule, error) {
	return r.findWhere("")
}

// FindActive returns the rules the category engine evaluates, in the stable
// ascending-id order first-match-wins depends on.
func (r *RuleRepository) FindActive() ([]domain.CategoryRule, error) {
	return r.findWhere(" WHERE is_active")
}

func (r *RuleRepository) FindByID(id int) (*domain.CategoryRule, error) {
	var rule domain.CategoryRule
	err := r.db.QueryRow(
		`SELECT id, category_name, regex_pattern, is_active, created_at, updated_at
		FROM category_rules WHERE id = $1`, id,
	).Scan(&rule.ID, &rule.CategoryName, &rule.RegexPattern, &rule.IsActive, &rule.CreatedAt, &rule.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rule, nil
}

func (r *RuleRepository) Update(rule *domain.CategoryRule) error {
	return r.db.QueryRow(
		`UPDATE category_rules
		SET category_name = $2, regex_pattern = $3, is_active = $4, updated_at = now()
		WHERE id = $1
		RETURNING updated_at`,
		rule.ID, rule.CategoryName, rule.RegexPattern, rule.IsActive,
	).Scan(&rule.UpdatedAt)
}

func (r *RuleRepository) Count() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM category_rules`).Scan(&count)
	return count, err
}

package application

import (
	"strings"

	"github.com/sebuszqo/BudgetManager/internal/budget/domain"
	budgetErrors "github.com/sebuszqo/BudgetManager/internal/budget/errors"
)

// TransactionService covers the read/override side of stored transactions.
// Rows are only ever created by ingestion, never individually.
type TransactionService struct {
	repo domain.TransactionRepository
}

func NewTransactionService(repo domain.TransactionRepository) *TransactionService {
	return &TransactionService{repo: repo}
}

func (s *TransactionService) GetTransactions(filter domain.TransactionFilter, limit, page int) ([]domain.Transaction, int, error) {
	transactions, total, err := s.repo.Find(filter, limit, page)
	if err != nil {
		return nil, 0, err
	}
	if transactions == nil {
		transactions = []domain.Transaction{}
	}
	return transactions, total, nil
}

// SetManualCategory sets or clears the manual override on one transaction and
// resolves the effective category at write time. Passing nil restores the
// automatic assignment.
func (s *TransactionService) SetManualCategory(id int, manualCategory *string) (*domain.Transaction, error) {
	if manualCategory != nil {
		trimmed := strings.TrimSpace(*manualCategory)
		if trimmed == "" {
			return nil, budgetErrors.NewValidationError("Manual category must not be empty")
		}
		manualCategory = &trimmed
	}

	txn, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if txn == nil {
		return nil, budgetErrors.ErrTransactionNotFound
	}

	txn.ManualCategory = manualCategory
	txn.Category = txn.EffectiveCategory()
	if err := s.repo.UpdateManualCategory(id, manualCategory, txn.Category); err != nil {
		return nil, err
	}
	return txn, nil
}

// ClearAll deletes every stored transaction and reports how many were
// removed. Category rules are untouched.
func (s *TransactionService) ClearAll() (int, error) {
	return s.repo.DeleteAll()
}

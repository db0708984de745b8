package interfaces

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/sebuszqo/BudgetManager/internal/budget/domain"
	budgetErrors "github.com/sebuszqo/BudgetManager/internal/budget/errors"
)

type TransactionServiceInterface interface {
	GetTransactions(filter domain.TransactionFilter, limit, page int) ([]domain.Transaction, int, error)
	SetManualCategory(id int, manualCategory *string) (*domain.Transaction, error)
	ClearAll() (int, error)
}

type TransactionHandler struct {
	service      TransactionServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string)
}

func NewTransactionHandler(
	service TransactionServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string),
) *TransactionHandler {
	if service == nil || respondJSON == nil || respondError == nil {
		panic("Service and response functions must not be nil")
	}
	return &TransactionHandler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

func (h *TransactionHandler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	filter, err := parseTransactionFilter(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	perPage := 100
	page := 1
	if raw := r.URL.Query().Get("per_page"); raw != "" {
		perPage, err = strconv.Atoi(raw)
		if err != nil || perPage <= 0 {
			h.respondError(w, http.StatusBadRequest, "Invalid per_page value")
			return
		}
	}
	if raw := r.URL.Query().Get("page"); raw != "" {
		page, err = strconv.Atoi(raw)
		if err != nil || page <= 0 {
			h.respondError(w, http.StatusBadRequest, "Invalid page value")
			return
		}
	}

	transactions, total, err := h.service.GetTransactions(filter, perPage, page)
	if err != nil {
		log.Printf("Error listing transactions: %v", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve transactions")
		return
	}

	pages := total / perPage
	if total%perPage != 0 {
		pages++
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":       "success",
		"transactions": transactions,
		"pagination": map[string]int{
			"page":     page,
			"pages":    pages,
			"per_page": perPage,
			"total":    total,
		},
	})
}

// HandleSetCategory sets or clears the manual category override on one
// transaction. A null manual_category restores the automatic assignment.
func (h *TransactionHandler) HandleSetCategory(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("transactionID"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid transaction id")
		return
	}

	var req struct {
		ManualCategory *string `json:"manual_category"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	txn, err := h.service.SetManualCategory(id, req.ManualCategory)
	if err != nil {
		switch {
		case errors.Is(err, budgetErrors.ErrTransactionNotFound):
			h.respondError(w, http.StatusNotFound, err.Error())
		case budgetErrors.IsValidationError(err):
			h.respondError(w, http.StatusBadRequest, err.Error())
		default:
			log.Printf("Error updating manual category: %v", err)
			h.respondError(w, http.StatusInternalServerError, "Failed to update category")
		}
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Category updated successfully.",
		"data":    txn,
	})
}

// HandleClearDatabase deletes every stored transaction while keeping the
// category rules.
func (h *TransactionHandler) HandleClearDatabase(w http.ResponseWriter, _ *http.Request) {
	cleared, err := h.service.ClearAll()
	if err != nil {
		log.Printf("Error clearing transactions: %v", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to clear transactions")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":        "success",
		"message":       "Transactions cleared successfully.",
		"cleared_count": cleared,
	})
}

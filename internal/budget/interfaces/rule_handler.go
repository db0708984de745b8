package interfaces

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/sebuszqo/BudgetManager/internal/budget/application"
	"github.com/sebuszqo/BudgetManager/internal/budget/domain"
	budgetErrors "github.com/sebuszqo/BudgetManager/internal/budget/errors"
)

type RuleServiceInterface interface {
	GetRules(includeInactive bool) ([]domain.CategoryRule, error)
	CreateRule(rule *domain.CategoryRule) (int, error)
	UpdateRule(id int, update application.RuleUpdate) (*domain.CategoryRule, int, error)
	DeactivateRule(id int) error
	RecategorizeAll() (int, error)
	ExportRules() ([]domain.PortableRule, error)
	ImportRules(rules []domain.PortableRule) (int, int, error)
}

type RuleHandler struct {
	service      RuleServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string)
}

func NewRuleHandler(
	service RuleServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string),
) *RuleHandler {
	if service == nil || respondJSON == nil || respondError == nil {
		panic("Service and response functions must not be nil")
	}
	return &RuleHandler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

func (h *RuleHandler) GetRules(w http.ResponseWriter, r *http.Request) {
	includeInactive := r.URL.Query().Get("include_inactive") == "true"

	rules, err := h.service.GetRules(includeInactive)
	if err != nil {
		log.Printf("Error listing category rules: %v", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve category rules")
		return
	}
	if rules == nil {
		rules = []domain.CategoryRule{}
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"rules":  rules,
	})
}

func (h *RuleHandler) CreateRule(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CategoryName string `json:"category_name"`
		RegexPattern string `json:"regex_pattern"`
		IsActive     *bool  `json:"is_active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	rule := domain.CategoryRule{
		CategoryName: req.CategoryName,
		RegexPattern: req.RegexPattern,
		IsActive:     true,
	}
	if req.IsActive != nil {
		rule.IsActive = *req.IsActive
	}

	updated, err := h.service.CreateRule(&rule)
	if err != nil {
		if budgetErrors.IsValidationError(err) {
			h.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("Error creating category rule: %v", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to create category rule")
		return
	}

	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status":               "success",
		"message":              "Category rule created successfully.",
		"data":                 rule,
		"updated_transactions": updated,
	})
}

func (h *RuleHandler) UpdateRule(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("ruleID"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid rule id")
		return
	}

	var req struct {
		CategoryName *string `json:"category_name"`
		RegexPattern *string `json:"regex_pattern"`
		IsActive     *bool   `json:"is_active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	rule, updated, err := h.service.UpdateRule(id, application.RuleUpdate{
		CategoryName: req.CategoryName,
		RegexPattern: req.RegexPattern,
		IsActive:     req.IsActive,
	})
	if err != nil {
		switch {
		case errors.Is(err, budgetErrors.ErrRuleNotFound):
			h.respondError(w, http.StatusNotFound, err.Error())
		case budgetErrors.IsValidationError(err):
			h.respondError(w, http.StatusBadRequest, err.Error())
		default:
			log.Printf("Error updating category rule: %v", err)
			h.respondError(w, http.StatusInternalServerError, "Failed to update category rule")
		}
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":               "success",
		"message":              "Category rule updated successfully.",
		"data":                 rule,
		"updated_transactions": updated,
	})
}

// DeleteRule soft-deletes: the rule is deactivated, not removed.
func (h *RuleHandler) DeleteRule(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("ruleID"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid rule id")
		return
	}

	if err := h.service.DeactivateRule(id); err != nil {
		if errors.Is(err, budgetErrors.ErrRuleNotFound) {
			h.respondError(w, http.StatusNotFound, err.Error())
			return
		}
		log.Printf("Error deleting category rule: %v", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to delete category rule")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Category rule deleted successfully.",
	})
}

func (h *RuleHandler) HandleRecategorizeAll(w http.ResponseWriter, _ *http.Request) {
	updated, err := h.service.RecategorizeAll()
	if err != nil {
		log.Printf("Error re-categorizing transactions: %v", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to re-categorize transactions")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":        "success",
		"message":       "Transactions re-categorized successfully.",
		"updated_count": updated,
	})
}

func (h *RuleHandler) HandleExportRules(w http.ResponseWriter, _ *http.Request) {
	rules, err := h.service.ExportRules()
	if err != nil {
		log.Printf("Error exporting category rules: %v", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to export category rules")
		return
	}
	h.respondJSON(w, http.StatusOK, rules)
}

func (h *RuleHandler) HandleImportRules(w http.ResponseWriter, r *http.Request) {
	var rules []domain.PortableRule
	if err := json.NewDecoder(r.Body).Decode(&rules); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	imported, updated, err := h.service.ImportRules(rules)
	if err != nil {
		if budgetErrors.IsValidationError(err) {
			h.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("Error importing category rules: %v", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to import category rules")
		return
	}

	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status":               "success",
		"message":              "Category rules imported successfully.",
		"imported_count":       imported,
		"updated_transactions": updated,
	})
}

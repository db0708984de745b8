package interfaces

import (
	"log"
	"net/http"

	"github.com/sebuszqo/BudgetManager/internal/budget/application"
	"github.com/sebuszqo/BudgetManager/internal/budget/domain"
)

type StatsServiceInterface interface {
	Aggregate(filter domain.TransactionFilter) (*application.Stats, error)
}

type StatsHandler struct {
	service      StatsServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string)
}

func NewStatsHandler(
	service StatsServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string),
) *StatsHandler {
	if service == nil || respondJSON == nil || respondError == nil {
		panic("Service and response functions must not be nil")
	}
	return &StatsHandler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

func (h *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	filter, err := parseTransactionFilter(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	stats, err := h.service.Aggregate(filter)
	if err != nil {
		log.Printf("Error aggregating stats: %v", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve stats")
		return
	}

	h.respondJSON(w, http.StatusOK, stats)
}

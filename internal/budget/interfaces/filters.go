package interfaces

import (
	"fmt"
	"net/http"
	"time"

	"github.com/sebuszqo/BudgetManager/internal/budget/domain"
)

// parseTransactionFilter reads the shared listing/stats query parameters:
// type, category, start_date and end_date, all optional.
func parseTransactionFilter(r *http.Request) (domain.TransactionFilter, error) {
	filter := domain.TransactionFilter{
		Type:     r.URL.Query().Get("type"),
		Category: r.URL.Query().Get("category"),
	}

	if raw := r.URL.Query().Get("start_date"); raw != "" {
		startDate, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return filter, fmt.Errorf("invalid start date format")
		}
		filter.StartDate = &startDate
	}
	if raw := r.URL.Query().Get("end_date"); raw != "" {
		endDate, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return filter, fmt.Errorf("invalid end date format")
		}
		filter.EndDate = &endDate
	}
	return filter, nil
}

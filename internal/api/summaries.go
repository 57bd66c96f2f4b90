package api

import (
	"net/http"
	"strconv"

	"github.com/pigeonworks-llc/finledger/pkg/ledger"
)

// SummariesHandler handles the read-only summary endpoints.
type SummariesHandler struct {
	service *ledger.Service
}

// NewSummariesHandler creates a new SummariesHandler.
func NewSummariesHandler(s *ledger.Service) *SummariesHandler {
	return &SummariesHandler{service: s}
}

// Totals handles GET /api/v1/summary.
func (h *SummariesHandler) Totals(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Summary(ownerID(r))
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"accounts":     toAccountListJSON(summary.Accounts),
		"debit_total":  summary.DebitTotal.String(),
		"credit_total": summary.CreditTotal.String(),
		"net_worth":    summary.NetWorth.String(),
	})
}

// CategoryTotalJSON is one category bucket in the wire response.
type CategoryTotalJSON struct {
	Category string `json:"category"`
	Total    string `json:"total"`
}

// Categories handles GET /api/v1/summary/categories?year=&month=.
func (h *SummariesHandler) Categories(w http.ResponseWriter, r *http.Request) {
	year, ok := optionalIntParam(w, r, "year")
	if !ok {
		return
	}
	month, ok := optionalIntParam(w, r, "month")
	if !ok {
		return
	}

	summary, err := h.service.CategorySummary(ownerID(r), year, month)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"expenses":      toCategoryTotalsJSON(summary.Expenses),
		"income":        toCategoryTotalsJSON(summary.Income),
		"expense_total": summary.ExpenseTotal.String(),
		"income_total":  summary.IncomeTotal.String(),
		"balance":       summary.Balance.String(),
	})
}

func toCategoryTotalsJSON(totals []ledger.CategoryTotal) []CategoryTotalJSON {
	out := make([]CategoryTotalJSON, len(totals))
	for i, t := range totals {
		out[i] = CategoryTotalJSON{Category: t.Category, Total: t.Total.String()}
	}
	return out
}

// MonthSummaryJSON is one month bucket in the wire response.
type MonthSummaryJSON struct {
	Year     int    `json:"year"`
	Month    int    `json:"month"`
	Expenses string `json:"expenses"`
	Income   string `json:"income"`
	Balance  string `json:"balance"`
}

// Months handles GET /api/v1/summary/months?year=&month=&limit=.
func (h *SummariesHandler) Months(w http.ResponseWriter, r *http.Request) {
	year, ok := optionalIntParam(w, r, "year")
	if !ok {
		return
	}
	month, ok := optionalIntParam(w, r, "month")
	if !ok {
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid_parameter", "Invalid limit")
			return
		}
		limit = n
	}

	months, err := h.service.MonthlySummary(ownerID(r), year, month, limit)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	out := make([]MonthSummaryJSON, len(months))
	for i, m := range months {
		out[i] = MonthSummaryJSON{
			Year:     m.Year,
			Month:    m.Month,
			Expenses: m.Expenses.String(),
			Income:   m.Income.String(),
			Balance:  m.Balance.String(),
		}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"months": out,
	})
}

func optionalIntParam(w http.ResponseWriter, r *http.Request, name string) (*int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_parameter", "Invalid "+name)
		return nil, false
	}
	return &n, true
}

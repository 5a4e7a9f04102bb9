package http

import (
	"net/http"

	"smartpenny/internal/core"
)

type summaryTotals struct {
	TotalIncome       moneyJSON            `json:"total_income"`
	TotalExpenses     moneyJSON            `json:"total_expenses"`
	Balance           moneyJSON            `json:"balance"`
	CategoryBreakdown map[string]moneyJSON `json:"category_breakdown"`
}

type categoryStandingResponse struct {
	Limit     moneyJSON `json:"limit"`
	Spent     moneyJSON `json:"spent"`
	Remaining moneyJSON `json:"remaining"`
	Overspent bool      `json:"overspent"`
}

type reconciliationResponse struct {
	Categories  map[string]categoryStandingResponse `json:"categories"`
	Unbudgeted  map[string]moneyJSON                `json:"unbudgeted"`
	TotalBudget moneyJSON                           `json:"total_budget"`
}

type summaryResponse struct {
	Budget  *budgetResponse        `json:"budget"`
	AllTime summaryTotals          `json:"all_time"`
	Month   summaryTotals          `json:"month"`
	Status  reconciliationResponse `json:"budget_status"`
}

func totalsJSON(s core.FinancialSummary) summaryTotals {
	return summaryTotals{
		TotalIncome:       money(s.TotalIncome),
		TotalExpenses:     money(s.TotalExpenses),
		Balance:           money(s.Balance),
		CategoryBreakdown: moneyMap(s.CategoryBreakdown),
	}
}

func reconciliationJSON(r core.Reconciliation) reconciliationResponse {
	categories := make(map[string]categoryStandingResponse, len(r.Categories))
	for name, standing := range r.Categories {
		categories[name] = categoryStandingResponse{
			Limit:     money(standing.Limit),
			Spent:     money(standing.Spent),
			Remaining: money(standing.Remaining),
			Overspent: standing.IsOverspent,
		}
	}
	return reconciliationResponse{
		Categories:  categories,
		Unbudgeted:  moneyMap(r.Unbudgeted),
		TotalBudget: money(r.TotalBudget),
	}
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request, userID string) {
	snap, err := s.records.Summarize(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := summaryResponse{
		AllTime: totalsJSON(snap.AllTime),
		Month:   totalsJSON(snap.Month),
		Status:  reconciliationJSON(snap.Reconciliation),
	}
	if snap.Budget != nil {
		resp.Budget = &budgetResponse{
			Period: string(snap.Budget.Period),
			Limits: moneyMap(snap.Budget.Limits),
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

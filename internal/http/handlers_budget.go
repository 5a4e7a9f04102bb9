package http

import (
	"net/http"

	"smartpenny/internal/core"
)

type budgetResponse struct {
	Period string               `json:"period"`
	Limits map[string]moneyJSON `json:"limits"`
}

type saveBudgetRequest struct {
	Period string            `json:"period"`
	Limits map[string]string `json:"limits"`
}

func (s *Server) handleGetBudget(w http.ResponseWriter, r *http.Request, userID string) {
	period := core.PeriodType(r.URL.Query().Get("period"))
	if period == "" {
		period = core.PeriodMonthly
	}

	budget, err := s.records.GetBudget(r.Context(), userID, period)
	if err != nil {
		writeError(w, err)
		return
	}
	if budget == nil {
		// No budget configured yet; clients treat null as "not set up".
		writeJSON(w, http.StatusOK, nil)
		return
	}
	writeJSON(w, http.StatusOK, budgetResponse{
		Period: string(budget.Period),
		Limits: moneyMap(budget.Limits),
	})
}

func (s *Server) handleSaveBudget(w http.ResponseWriter, r *http.Request, userID string) {
	var req saveBudgetRequest
	if err := decodeJSON(w, r, &req); err != nil {
		badRequest(w, "%s", err)
		return
	}

	limits := make(map[string]core.Money, len(req.Limits))
	for category, raw := range req.Limits {
		limit, err := core.ParseLimit(raw)
		if err != nil {
			badRequest(w, "limit for %q: %s", category, err)
			return
		}
		limits[category] = limit
	}

	budget := core.Budget{Period: core.PeriodType(req.Period), Limits: limits}
	if err := s.records.SaveBudget(r.Context(), userID, budget); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

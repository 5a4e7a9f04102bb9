package http

import (
	"net/http"

	"smartpenny/internal/core"
	"smartpenny/internal/service"
)

type recurringRequest struct {
	Name      string `json:"name"`
	Amount    string `json:"amount"`
	DueDay    int    `json:"due_day"`
	Frequency string `json:"frequency"`
	Category  string `json:"category,omitempty"`
}

// recurringPatchRequest uses pointers so "field absent" and "field set to
// zero value" stay distinguishable.
type recurringPatchRequest struct {
	Name      *string `json:"name,omitempty"`
	Amount    *string `json:"amount,omitempty"`
	DueDay    *int    `json:"due_day,omitempty"`
	Frequency *string `json:"frequency,omitempty"`
	Category  *string `json:"category,omitempty"`
	IsPaid    *bool   `json:"is_paid,omitempty"`
}

type recurringResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Amount      moneyJSON `json:"amount"`
	DueDay      int       `json:"due_day"`
	Frequency   string    `json:"frequency"`
	Category    string    `json:"category,omitempty"`
	NextDueDate string    `json:"next_due_date"`
	IsPaid      bool      `json:"is_paid"`
}

func recurringJSON(re core.RecurringExpense) recurringResponse {
	return recurringResponse{
		ID:          re.ID,
		Name:        re.Name,
		Amount:      money(re.Amount),
		DueDay:      re.DueDay,
		Frequency:   string(re.Frequency),
		Category:    re.Category,
		NextDueDate: re.NextDueDate.String(),
		IsPaid:      re.IsPaid,
	}
}

func (s *Server) handleListRecurring(w http.ResponseWriter, r *http.Request, userID string) {
	bills, err := s.records.ListRecurring(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]recurringResponse, 0, len(bills))
	for _, re := range bills {
		out = append(out, recurringJSON(re))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateRecurring(w http.ResponseWriter, r *http.Request, userID string) {
	var req recurringRequest
	if err := decodeJSON(w, r, &req); err != nil {
		badRequest(w, "%s", err)
		return
	}
	amount, err := core.ParseAmount(req.Amount)
	if err != nil {
		badRequest(w, "%s", err)
		return
	}

	created, err := s.records.CreateRecurring(r.Context(), userID, core.RecurringExpense{
		Name:      req.Name,
		Amount:    amount,
		DueDay:    req.DueDay,
		Frequency: core.Frequency(req.Frequency),
		Category:  req.Category,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, recurringJSON(created))
}

func (s *Server) handlePatchRecurring(w http.ResponseWriter, r *http.Request, userID string) {
	var req recurringPatchRequest
	if err := decodeJSON(w, r, &req); err != nil {
		badRequest(w, "%s", err)
		return
	}

	patch := service.RecurringPatch{
		Name:     req.Name,
		DueDay:   req.DueDay,
		Category: req.Category,
		IsPaid:   req.IsPaid,
	}
	if req.Amount != nil {
		amount, err := core.ParseAmount(*req.Amount)
		if err != nil {
			badRequest(w, "%s", err)
			return
		}
		patch.Amount = &amount
	}
	if req.Frequency != nil {
		f := core.Frequency(*req.Frequency)
		patch.Frequency = &f
	}

	updated, err := s.records.PatchRecurring(r.Context(), userID, r.PathValue("id"), patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, recurringJSON(updated))
}

func (s *Server) handleDeleteRecurring(w http.ResponseWriter, r *http.Request, userID string) {
	if err := s.records.DeleteRecurring(r.Context(), userID, r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

package http

import (
	"net/http"

	"smartpenny/internal/core"
)

type transactionRequest struct {
	Amount   string `json:"amount"`
	Kind     string `json:"kind"`
	Category string `json:"category"`
	Date     string `json:"date"`
}

type transactionResponse struct {
	ID       string    `json:"id"`
	Amount   moneyJSON `json:"amount"`
	Kind     string    `json:"kind"`
	Category string    `json:"category"`
	Date     string    `json:"date"`
}

func transactionJSON(t core.Transaction) transactionResponse {
	return transactionResponse{
		ID:       t.ID,
		Amount:   money(t.Amount),
		Kind:     string(t.Kind),
		Category: t.Category,
		Date:     t.OccurredOn.String(),
	}
}

func (r transactionRequest) toDomain() (core.Transaction, error) {
	amount, err := core.ParseAmount(r.Amount)
	if err != nil {
		return core.Transaction{}, err
	}
	occurredOn, err := parseDate(r.Date)
	if err != nil {
		return core.Transaction{}, err
	}
	return core.Transaction{
		Amount:     amount,
		Kind:       core.TransactionKind(r.Kind),
		Category:   r.Category,
		OccurredOn: occurredOn,
	}, nil
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request, userID string) {
	window, err := parseWindow(r)
	if err != nil {
		badRequest(w, "%s", err)
		return
	}

	txs, err := s.records.ListTransactions(r.Context(), userID, window)
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]transactionResponse, 0, len(txs))
	for _, t := range txs {
		out = append(out, transactionJSON(t))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request, userID string) {
	var req transactionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		badRequest(w, "%s", err)
		return
	}
	t, err := req.toDomain()
	if err != nil {
		badRequest(w, "%s", err)
		return
	}

	created, err := s.records.AddTransaction(r.Context(), userID, t)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, transactionJSON(created))
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request, userID string) {
	var req transactionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		badRequest(w, "%s", err)
		return
	}
	t, err := req.toDomain()
	if err != nil {
		badRequest(w, "%s", err)
		return
	}
	t.ID = r.PathValue("id")

	if err := s.records.UpdateTransaction(r.Context(), userID, t); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request, userID string) {
	if err := s.records.DeleteTransaction(r.Context(), userID, r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

package http

import (
	"net/http"
	"time"

	"smartpenny/internal/core"
)

type goalRequest struct {
	Name          string `json:"name"`
	TargetAmount  string `json:"target_amount"`
	CurrentAmount string `json:"current_amount"`
	TargetDate    string `json:"target_date,omitempty"`
	Category      string `json:"category"`
}

type projectionResponse struct {
	PercentComplete     float64    `json:"percent_complete"`
	Remaining           moneyJSON  `json:"remaining"`
	MonthsRemaining     int        `json:"months_remaining,omitempty"`
	MonthlyContribution *moneyJSON `json:"monthly_contribution,omitempty"`
}

type goalResponse struct {
	ID            string             `json:"id"`
	Name          string             `json:"name"`
	TargetAmount  moneyJSON          `json:"target_amount"`
	CurrentAmount moneyJSON          `json:"current_amount"`
	TargetDate    string             `json:"target_date,omitempty"`
	Category      string             `json:"category"`
	Projection    projectionResponse `json:"projection"`
}

func goalJSON(g core.Goal, now time.Time) goalResponse {
	p := g.Project(now)
	proj := projectionResponse{
		PercentComplete: p.DisplayPercent(),
		Remaining:       money(p.Remaining),
		MonthsRemaining: p.MonthsRemaining,
	}
	if p.MonthlyContribution != nil {
		m := money(*p.MonthlyContribution)
		proj.MonthlyContribution = &m
	}

	out := goalResponse{
		ID:            g.ID,
		Name:          g.Name,
		TargetAmount:  money(g.TargetAmount),
		CurrentAmount: money(g.CurrentAmount),
		Category:      string(g.Category),
		Projection:    proj,
	}
	if !g.TargetDate.IsEmpty() {
		out.TargetDate = g.TargetDate.String()
	}
	return out
}

func (r goalRequest) toDomain() (core.Goal, error) {
	target, err := core.ParseAmount(r.TargetAmount)
	if err != nil {
		return core.Goal{}, err
	}
	// Zero is a valid starting balance.
	current, err := core.ParseLimit(r.CurrentAmount)
	if err != nil {
		return core.Goal{}, err
	}
	g := core.Goal{
		Name:          r.Name,
		TargetAmount:  target,
		CurrentAmount: current,
		Category:      core.GoalCategory(r.Category),
	}
	if r.TargetDate != "" {
		d, err := parseDate(r.TargetDate)
		if err != nil {
			return core.Goal{}, err
		}
		g.TargetDate = d
	}
	return g, nil
}

func (s *Server) handleListGoals(w http.ResponseWriter, r *http.Request, userID string) {
	goals, err := s.records.ListGoals(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	now := time.Now()
	out := make([]goalResponse, 0, len(goals))
	for _, g := range goals {
		out = append(out, goalJSON(g, now))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateGoal(w http.ResponseWriter, r *http.Request, userID string) {
	var req goalRequest
	if err := decodeJSON(w, r, &req); err != nil {
		badRequest(w, "%s", err)
		return
	}
	g, err := req.toDomain()
	if err != nil {
		badRequest(w, "%s", err)
		return
	}

	created, err := s.records.CreateGoal(r.Context(), userID, g)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, goalJSON(created, time.Now()))
}

func (s *Server) handleUpdateGoal(w http.ResponseWriter, r *http.Request, userID string) {
	var req goalRequest
	if err := decodeJSON(w, r, &req); err != nil {
		badRequest(w, "%s", err)
		return
	}
	g, err := req.toDomain()
	if err != nil {
		badRequest(w, "%s", err)
		return
	}
	g.ID = r.PathValue("id")

	if err := s.records.UpdateGoal(r.Context(), userID, g); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteGoal(w http.ResponseWriter, r *http.Request, userID string) {
	if err := s.records.DeleteGoal(r.Context(), userID, r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

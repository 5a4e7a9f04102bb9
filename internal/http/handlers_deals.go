package http

import (
	"net/http"

	"smartpenny/internal/core"
)

type dealResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Distance    string  `json:"distance,omitempty"`
	Hours       string  `json:"hours,omitempty"`
	Rating      float64 `json:"rating"`
	IsSponsored bool    `json:"is_sponsored"`
}

type dealsResponse struct {
	Deals  []dealResponse `json:"deals"`
	Source string         `json:"source"`
}

func dealJSON(d core.Deal) dealResponse {
	return dealResponse{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Category:    d.Category,
		Distance:    d.Distance,
		Hours:       d.Hours,
		Rating:      d.Rating,
		IsSponsored: d.IsSponsored,
	}
}

func (s *Server) handleListDeals(w http.ResponseWriter, r *http.Request, _ string) {
	deals, source := s.deals.ListDeals(r.Context(), r.URL.Query().Get("category"))

	out := make([]dealResponse, 0, len(deals))
	for _, d := range deals {
		out = append(out, dealJSON(d))
	}
	writeJSON(w, http.StatusOK, dealsResponse{Deals: out, Source: source})
}

package http

import (
	"net/http"

	"smartpenny/internal/assistant"
)

type chatRequest struct {
	Messages []assistant.Message `json:"messages"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request, userID string) {
	var req chatRequest
	if err := decodeJSON(w, r, &req); err != nil {
		badRequest(w, "%s", err)
		return
	}

	reply, err := s.chat.Turn(r.Context(), userID, req.Messages)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, chatResponse{Reply: reply})
}

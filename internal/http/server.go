// Package http exposes the JSON API: record CRUD, the financial summary,
// and the advisor chat endpoint.
package http

import (
	"net/http"
	"time"

	"smartpenny/internal/auth"
	"smartpenny/internal/log"
	"smartpenny/internal/middleware/security"
	"smartpenny/internal/middleware/trace"
	"smartpenny/internal/service"
)

type Server struct {
	http.Server
	records  *service.RecordService
	chat     *service.ChatService
	deals    *service.DealService
	identity auth.Identity
	logger   *log.Logger
}

// NewServer configures routes and middleware, returning a ready-to-run server.
func NewServer(addr string, records *service.RecordService, chat *service.ChatService, deals *service.DealService, identity auth.Identity, logger *log.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:              addr,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      90 * time.Second, // chat turns wait on the model
			IdleTimeout:       120 * time.Second,
		},
		records:  records,
		chat:     chat,
		deals:    deals,
		identity: identity,
		logger:   logger.WithComponent(log.ComponentHTTP),
	}

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)

	mux.HandleFunc("GET /api/budget", s.withUser(s.handleGetBudget))
	mux.HandleFunc("PUT /api/budget", s.withUser(s.handleSaveBudget))

	mux.HandleFunc("GET /api/transactions", s.withUser(s.handleListTransactions))
	mux.HandleFunc("POST /api/transactions", s.withUser(s.handleCreateTransaction))
	mux.HandleFunc("PUT /api/transactions/{id}", s.withUser(s.handleUpdateTransaction))
	mux.HandleFunc("DELETE /api/transactions/{id}", s.withUser(s.handleDeleteTransaction))

	mux.HandleFunc("GET /api/goals", s.withUser(s.handleListGoals))
	mux.HandleFunc("POST /api/goals", s.withUser(s.handleCreateGoal))
	mux.HandleFunc("PUT /api/goals/{id}", s.withUser(s.handleUpdateGoal))
	mux.HandleFunc("DELETE /api/goals/{id}", s.withUser(s.handleDeleteGoal))

	mux.HandleFunc("GET /api/recurring", s.withUser(s.handleListRecurring))
	mux.HandleFunc("POST /api/recurring", s.withUser(s.handleCreateRecurring))
	mux.HandleFunc("PATCH /api/recurring/{id}", s.withUser(s.handlePatchRecurring))
	mux.HandleFunc("DELETE /api/recurring/{id}", s.withUser(s.handleDeleteRecurring))

	mux.HandleFunc("GET /api/summary", s.withUser(s.handleSummary))

	mux.HandleFunc("GET /api/deals", s.withUser(s.handleListDeals))

	mux.HandleFunc("POST /api/chat", s.withUser(s.handleChat))

	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())
	tracer := trace.NewMiddleware()
	s.Handler = headers.Middleware(tracer.Middleware(mux))

	return s
}

// userHandler is a handler that has already passed authentication.
type userHandler func(w http.ResponseWriter, r *http.Request, userID string)

// withUser resolves the caller's identity and rejects anonymous requests
// before the handler runs.
func (s *Server) withUser(next userHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := s.identity.UserID(r)
		if userID == "" {
			writeError(w, service.ErrUnauthenticated)
			return
		}
		next(w, r, userID)
	}
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ready"))
}

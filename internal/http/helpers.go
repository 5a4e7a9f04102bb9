package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"smartpenny/internal/core"
	"smartpenny/internal/service"
)

const maxBodyBytes = 1 << 20 // 1MB

// moneyJSON renders an amount as cents plus a display string, so clients
// never re-derive formatting from integers.
type moneyJSON struct {
	Cents   int64  `json:"cents"`
	Display string `json:"display"`
}

func money(m core.Money) moneyJSON {
	return moneyJSON{Cents: m.Cents, Display: m.String()}
}

func moneyMap(in map[string]core.Money) map[string]moneyJSON {
	out := make(map[string]moneyJSON, len(in))
	for k, v := range in {
		out[k] = money(v)
	}
	return out
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Headers are already sent; nothing to do but drop it.
		return
	}
}

// writeError maps the service error taxonomy onto HTTP statuses. Internal
// failures get a generic message so store details never leak to clients.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidArgument):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrUnauthenticated):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "authentication required"})
	case errors.Is(err, service.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "record not found"})
	case errors.Is(err, service.ErrRateLimited):
		writeJSON(w, http.StatusTooManyRequests, errorResponse{Error: "rate limit exceeded, try again shortly"})
	case errors.Is(err, service.ErrModelCallFailed):
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "assistant is unavailable, try again shortly"})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func badRequest(w http.ResponseWriter, format string, args ...any) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf(format, args...)})
}

// decodeJSON reads a bounded JSON body and rejects unknown fields, so typos
// in client payloads fail loudly instead of silently dropping data.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// parseDate parses a date string in YYYY-MM-DD format.
func parseDate(dateStr string) (core.Date, error) {
	parsedTime, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return core.Date{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", dateStr)
	}
	return core.DateOf(parsedTime), nil
}

// parseWindow builds an inclusive date window from "from" and "to" query
// parameters. Both or neither must be present.
func parseWindow(r *http.Request) (*core.Window, error) {
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")
	if from == "" && to == "" {
		return nil, nil
	}
	if from == "" || to == "" {
		return nil, fmt.Errorf("from and to must be provided together")
	}
	start, err := parseDate(from)
	if err != nil {
		return nil, err
	}
	end, err := parseDate(to)
	if err != nil {
		return nil, err
	}
	if end.Before(start.Time) {
		return nil, fmt.Errorf("to must not precede from")
	}
	return &core.Window{Start: start.Time, End: end.Time}, nil
}

// Package memory is an in-process record store for development and tests.
// It mirrors the SQLite repository's ownership semantics: a record another
// user owns is indistinguishable from one that does not exist.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"smartpenny/internal/core"
	"smartpenny/internal/store"
)

type Store struct {
	mu           sync.Mutex
	budgets      map[string]map[core.PeriodType]core.Budget
	transactions map[string][]core.Transaction
	goals        map[string][]core.Goal
	recurring    map[string][]core.RecurringExpense
	deals        []core.Deal
}

func New() *Store {
	return &Store{
		budgets:      make(map[string]map[core.PeriodType]core.Budget),
		transactions: make(map[string][]core.Transaction),
		goals:        make(map[string][]core.Goal),
		recurring:    make(map[string][]core.RecurringExpense),
	}
}

// SeedDeals replaces the deal catalog.
func (s *Store) SeedDeals(deals []core.Deal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deals = append([]core.Deal(nil), deals...)
}

func (s *Store) ListDeals(_ context.Context, category string) ([]core.Deal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Deal
	for _, d := range s.deals {
		if category != "" && d.Category != category {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

func (s *Store) FindBudget(_ context.Context, userID string, period core.PeriodType) (*core.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.budgets[userID][period]
	if !ok {
		return nil, nil
	}
	copied := core.Budget{Period: b.Period, Limits: make(map[string]core.Money, len(b.Limits))}
	for cat, limit := range b.Limits {
		copied.Limits[cat] = limit
	}
	return &copied, nil
}

func (s *Store) UpsertBudget(_ context.Context, userID string, b core.Budget) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	limits := make(map[string]core.Money, len(b.Limits))
	for cat, limit := range b.Limits {
		limits[cat] = limit
	}
	if s.budgets[userID] == nil {
		s.budgets[userID] = make(map[core.PeriodType]core.Budget)
	}
	s.budgets[userID][b.Period] = core.Budget{Period: b.Period, Limits: limits}
	return nil
}

func (s *Store) ListTransactions(_ context.Context, userID string, window *core.Window) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Transaction
	for _, t := range s.transactions[userID] {
		if window != nil && !window.Contains(t.OccurredOn) {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (s *Store) InsertTransaction(_ context.Context, userID string, t core.Transaction) (core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t.ID = uuid.NewString()
	s.transactions[userID] = append(s.transactions[userID], t)
	return t, nil
}

func (s *Store) UpdateTransaction(_ context.Context, userID string, t core.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	txs := s.transactions[userID]
	for i := range txs {
		if txs[i].ID == t.ID {
			txs[i] = t
			return nil
		}
	}
	return store.ErrNotFound
}

func (s *Store) DeleteTransaction(_ context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	txs := s.transactions[userID]
	for i := range txs {
		if txs[i].ID == id {
			s.transactions[userID] = append(txs[:i], txs[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

func (s *Store) ListGoals(_ context.Context, userID string) ([]core.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Goal(nil), s.goals[userID]...), nil
}

func (s *Store) CreateGoal(_ context.Context, userID string, g core.Goal) (core.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g.ID = uuid.NewString()
	s.goals[userID] = append(s.goals[userID], g)
	return g, nil
}

func (s *Store) UpdateGoal(_ context.Context, userID string, g core.Goal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	goals := s.goals[userID]
	for i := range goals {
		if goals[i].ID == g.ID {
			goals[i] = g
			return nil
		}
	}
	return store.ErrNotFound
}

func (s *Store) DeleteGoal(_ context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	goals := s.goals[userID]
	for i := range goals {
		if goals[i].ID == id {
			s.goals[userID] = append(goals[:i], goals[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

func (s *Store) ListRecurring(_ context.Context, userID string) ([]core.RecurringExpense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.RecurringExpense(nil), s.recurring[userID]...), nil
}

func (s *Store) GetRecurring(_ context.Context, userID, id string) (core.RecurringExpense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, re := range s.recurring[userID] {
		if re.ID == id {
			return re, nil
		}
	}
	return core.RecurringExpense{}, store.ErrNotFound
}

func (s *Store) CreateRecurring(_ context.Context, userID string, re core.RecurringExpense) (core.RecurringExpense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	re.ID = uuid.NewString()
	s.recurring[userID] = append(s.recurring[userID], re)
	return re, nil
}

func (s *Store) UpdateRecurring(_ context.Context, userID string, re core.RecurringExpense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	bills := s.recurring[userID]
	for i := range bills {
		if bills[i].ID == re.ID {
			bills[i] = re
			return nil
		}
	}
	return store.ErrNotFound
}

func (s *Store) DeleteRecurring(_ context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	bills := s.recurring[userID]
	for i := range bills {
		if bills[i].ID == id {
			s.recurring[userID] = append(bills[:i], bills[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

// Package store declares the ports the record store must satisfy. Every
// read and mutation is scoped by an opaque user identifier; mutations that
// target a record the caller does not own report ErrNotFound.
package store

import (
	"context"
	"errors"

	"smartpenny/internal/core"
)

// ErrNotFound is returned when a record does not exist or belongs to a
// different user. The two cases are deliberately indistinguishable.
var ErrNotFound = errors.New("record not found")

type (
	BudgetStore interface {
		// FindBudget returns nil without error when the user has no budget
		// for the period.
		FindBudget(ctx context.Context, userID string, period core.PeriodType) (*core.Budget, error)
		// UpsertBudget replaces the user's limits for the budget's period
		// wholesale; it never merges with prior values.
		UpsertBudget(ctx context.Context, userID string, b core.Budget) error
	}

	TransactionStore interface {
		// ListTransactions returns the user's transactions, filtered to the
		// inclusive window when one is given.
		ListTransactions(ctx context.Context, userID string, window *core.Window) ([]core.Transaction, error)
		InsertTransaction(ctx context.Context, userID string, t core.Transaction) (core.Transaction, error)
		UpdateTransaction(ctx context.Context, userID string, t core.Transaction) error
		DeleteTransaction(ctx context.Context, userID, id string) error
	}

	GoalStore interface {
		ListGoals(ctx context.Context, userID string) ([]core.Goal, error)
		CreateGoal(ctx context.Context, userID string, g core.Goal) (core.Goal, error)
		UpdateGoal(ctx context.Context, userID string, g core.Goal) error
		DeleteGoal(ctx context.Context, userID, id string) error
	}

	RecurringStore interface {
		ListRecurring(ctx context.Context, userID string) ([]core.RecurringExpense, error)
		GetRecurring(ctx context.Context, userID, id string) (core.RecurringExpense, error)
		CreateRecurring(ctx context.Context, userID string, re core.RecurringExpense) (core.RecurringExpense, error)
		UpdateRecurring(ctx context.Context, userID string, re core.RecurringExpense) error
		DeleteRecurring(ctx context.Context, userID, id string) error
	}

	// DealStore serves the shared deal catalog. It is not user-scoped.
	DealStore interface {
		// ListDeals returns deals, restricted to one category when category
		// is non-empty. An empty catalog is not an error.
		ListDeals(ctx context.Context, category string) ([]core.Deal, error)
	}

	// Records is the full record store a running service needs.
	Records interface {
		BudgetStore
		TransactionStore
		GoalStore
		RecurringStore
	}
)

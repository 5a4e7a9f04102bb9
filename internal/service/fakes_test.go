package service

import (
	"context"
	"fmt"
	"time"

	"smartpenny/internal/assistant"
	"smartpenny/internal/core"
	"smartpenny/internal/log"
	"smartpenny/internal/store"
)

// fakeRecords is an in-package store double with per-entity error injection.
type fakeRecords struct {
	budget       *core.Budget
	transactions []core.Transaction
	goals        []core.Goal
	recurring    []core.RecurringExpense

	budgetErr      error
	transactionErr error
	goalErr        error
	recurringErr   error

	nextID int
}

func (f *fakeRecords) genID() string {
	f.nextID++
	return fmt.Sprintf("id-%d", f.nextID)
}

func (f *fakeRecords) FindBudget(_ context.Context, _ string, _ core.PeriodType) (*core.Budget, error) {
	if f.budgetErr != nil {
		return nil, f.budgetErr
	}
	return f.budget, nil
}

func (f *fakeRecords) UpsertBudget(_ context.Context, _ string, b core.Budget) error {
	if f.budgetErr != nil {
		return f.budgetErr
	}
	f.budget = &b
	return nil
}

func (f *fakeRecords) ListTransactions(_ context.Context, _ string, window *core.Window) ([]core.Transaction, error) {
	if f.transactionErr != nil {
		return nil, f.transactionErr
	}
	if window == nil {
		return f.transactions, nil
	}
	var out []core.Transaction
	for _, t := range f.transactions {
		if window.Contains(t.OccurredOn) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeRecords) InsertTransaction(_ context.Context, _ string, t core.Transaction) (core.Transaction, error) {
	if f.transactionErr != nil {
		return core.Transaction{}, f.transactionErr
	}
	t.ID = f.genID()
	f.transactions = append(f.transactions, t)
	return t, nil
}

func (f *fakeRecords) UpdateTransaction(_ context.Context, _ string, t core.Transaction) error {
	if f.transactionErr != nil {
		return f.transactionErr
	}
	for i := range f.transactions {
		if f.transactions[i].ID == t.ID {
			f.transactions[i] = t
			return nil
		}
	}
	return store.ErrNotFound
}

func (f *fakeRecords) DeleteTransaction(_ context.Context, _, id string) error {
	if f.transactionErr != nil {
		return f.transactionErr
	}
	for i := range f.transactions {
		if f.transactions[i].ID == id {
			f.transactions = append(f.transactions[:i], f.transactions[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

func (f *fakeRecords) ListGoals(_ context.Context, _ string) ([]core.Goal, error) {
	if f.goalErr != nil {
		return nil, f.goalErr
	}
	return f.goals, nil
}

func (f *fakeRecords) CreateGoal(_ context.Context, _ string, g core.Goal) (core.Goal, error) {
	if f.goalErr != nil {
		return core.Goal{}, f.goalErr
	}
	g.ID = f.genID()
	f.goals = append(f.goals, g)
	return g, nil
}

func (f *fakeRecords) UpdateGoal(_ context.Context, _ string, g core.Goal) error {
	if f.goalErr != nil {
		return f.goalErr
	}
	for i := range f.goals {
		if f.goals[i].ID == g.ID {
			f.goals[i] = g
			return nil
		}
	}
	return store.ErrNotFound
}

func (f *fakeRecords) DeleteGoal(_ context.Context, _, id string) error {
	if f.goalErr != nil {
		return f.goalErr
	}
	for i := range f.goals {
		if f.goals[i].ID == id {
			f.goals = append(f.goals[:i], f.goals[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

func (f *fakeRecords) ListRecurring(_ context.Context, _ string) ([]core.RecurringExpense, error) {
	if f.recurringErr != nil {
		return nil, f.recurringErr
	}
	return f.recurring, nil
}

func (f *fakeRecords) GetRecurring(_ context.Context, _, id string) (core.RecurringExpense, error) {
	if f.recurringErr != nil {
		return core.RecurringExpense{}, f.recurringErr
	}
	for _, re := range f.recurring {
		if re.ID == id {
			return re, nil
		}
	}
	return core.RecurringExpense{}, store.ErrNotFound
}

func (f *fakeRecords) CreateRecurring(_ context.Context, _ string, re core.RecurringExpense) (core.RecurringExpense, error) {
	if f.recurringErr != nil {
		return core.RecurringExpense{}, f.recurringErr
	}
	re.ID = f.genID()
	f.recurring = append(f.recurring, re)
	return re, nil
}

func (f *fakeRecords) UpdateRecurring(_ context.Context, _ string, re core.RecurringExpense) error {
	if f.recurringErr != nil {
		return f.recurringErr
	}
	for i := range f.recurring {
		if f.recurring[i].ID == re.ID {
			f.recurring[i] = re
			return nil
		}
	}
	return store.ErrNotFound
}

func (f *fakeRecords) DeleteRecurring(_ context.Context, _, id string) error {
	if f.recurringErr != nil {
		return f.recurringErr
	}
	for i := range f.recurring {
		if f.recurring[i].ID == id {
			f.recurring = append(f.recurring[:i], f.recurring[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

// fakeCompleter records the instruction it was called with.
type fakeCompleter struct {
	reply       string
	err         error
	instruction string
	messages    []assistant.Message
	calls       int
}

func (f *fakeCompleter) Complete(_ context.Context, systemInstruction string, messages []assistant.Message) (string, error) {
	f.calls++
	f.instruction = systemInstruction
	f.messages = messages
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

// fakeCounter returns a fixed sequence of counts.
type fakeCounter struct {
	count int
	err   error
}

func (f *fakeCounter) Increment(_ string) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.count++
	return f.count, nil
}

func testLogger() *log.Logger {
	return log.New(log.DefaultConfig())
}

func fixedNow() time.Time {
	return time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)
}

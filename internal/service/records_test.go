package service

import (
	"context"
	"errors"
	"testing"

	"smartpenny/internal/core"
)

func newRecordService(records *fakeRecords) *RecordService {
	s := NewRecordService(records, nil, testLogger())
	s.now = fixedNow
	return s
}

func TestSaveBudgetReplacesWholesale(t *testing.T) {
	records := &fakeRecords{}
	svc := newRecordService(records)
	ctx := context.Background()

	first := core.Budget{
		Period: core.PeriodMonthly,
		Limits: map[string]core.Money{"food": {Cents: 30000}, "rent": {Cents: 80000}},
	}
	if err := svc.SaveBudget(ctx, "user-1", first); err != nil {
		t.Fatalf("save: %v", err)
	}

	second := core.Budget{
		Period: core.PeriodMonthly,
		Limits: map[string]core.Money{"food": {Cents: 25000}},
	}
	if err := svc.SaveBudget(ctx, "user-1", second); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := svc.GetBudget(ctx, "user-1", core.PeriodMonthly)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.Limits) != 1 {
		t.Fatalf("expected old categories dropped, got %v", got.Limits)
	}
	if got.Limits["food"].Cents != 25000 {
		t.Fatalf("expected food limit 25000, got %d", got.Limits["food"].Cents)
	}
}

func TestSaveBudgetRejectsInvalid(t *testing.T) {
	svc := newRecordService(&fakeRecords{})
	err := svc.SaveBudget(context.Background(), "user-1", core.Budget{
		Period: "quarterly",
		Limits: map[string]core.Money{"food": {Cents: 100}},
	})
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestAddTransactionAssignsID(t *testing.T) {
	svc := newRecordService(&fakeRecords{})
	created, err := svc.AddTransaction(context.Background(), "user-1", core.Transaction{
		Amount:     core.Money{Cents: 1250},
		Kind:       core.Expense,
		Category:   "food",
		OccurredOn: core.NewDate(2024, 3, 10),
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected an assigned ID")
	}
}

func TestUpdateMissingTransactionNotFound(t *testing.T) {
	svc := newRecordService(&fakeRecords{})
	err := svc.UpdateTransaction(context.Background(), "user-1", core.Transaction{
		ID:         "missing",
		Amount:     core.Money{Cents: 100},
		Kind:       core.Expense,
		Category:   "food",
		OccurredOn: core.NewDate(2024, 3, 10),
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSummarizeSnapshot(t *testing.T) {
	records := &fakeRecords{
		budget: &core.Budget{
			Period: core.PeriodMonthly,
			Limits: map[string]core.Money{"food": {Cents: 30000}},
		},
		transactions: []core.Transaction{
			// fixedNow is 2024-03-15; first two fall in March, the third does not.
			{ID: "t1", Amount: core.Money{Cents: 200000}, Kind: core.Income, Category: "salary", OccurredOn: core.NewDate(2024, 3, 1)},
			{ID: "t2", Amount: core.Money{Cents: 35000}, Kind: core.Expense, Category: "food", OccurredOn: core.NewDate(2024, 3, 10)},
			{ID: "t3", Amount: core.Money{Cents: 5000}, Kind: core.Expense, Category: "food", OccurredOn: core.NewDate(2024, 2, 10)},
		},
	}
	snap, err := newRecordService(records).Summarize(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}

	if snap.AllTime.TotalExpenses.Cents != 40000 {
		t.Errorf("all-time expenses: got %d, want 40000", snap.AllTime.TotalExpenses.Cents)
	}
	if snap.Month.TotalExpenses.Cents != 35000 {
		t.Errorf("month expenses: got %d, want 35000", snap.Month.TotalExpenses.Cents)
	}
	food, ok := snap.Reconciliation.Categories["food"]
	if !ok {
		t.Fatal("expected food standing")
	}
	if !food.IsOverspent || food.Remaining.Cents != -5000 {
		t.Errorf("food standing: %+v", food)
	}
}

func TestCreateRecurringComputesNextDueDate(t *testing.T) {
	svc := newRecordService(&fakeRecords{})
	created, err := svc.CreateRecurring(context.Background(), "user-1", core.RecurringExpense{
		Name:      "Rent",
		Amount:    core.Money{Cents: 80000},
		DueDay:    5,
		Frequency: core.FreqMonthly,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	// fixedNow is 2024-03-15, past the 5th: due next month.
	if got := created.NextDueDate.String(); got != "2024-04-05" {
		t.Fatalf("next due date: got %s, want 2024-04-05", got)
	}
}

func TestPatchRecurringRecomputesOnlyForScheduleChanges(t *testing.T) {
	records := &fakeRecords{}
	svc := newRecordService(records)
	ctx := context.Background()

	created, err := svc.CreateRecurring(ctx, "user-1", core.RecurringExpense{
		Name:      "Gym",
		Amount:    core.Money{Cents: 4500},
		DueDay:    20,
		Frequency: core.FreqMonthly,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	original := created.NextDueDate.String() // 2024-03-20

	paid := true
	patched, err := svc.PatchRecurring(ctx, "user-1", created.ID, RecurringPatch{IsPaid: &paid})
	if err != nil {
		t.Fatalf("patch paid: %v", err)
	}
	if !patched.IsPaid {
		t.Fatal("expected IsPaid set")
	}
	if got := patched.NextDueDate.String(); got != original {
		t.Fatalf("marking paid must not move the due date: got %s, want %s", got, original)
	}

	newDay := 10
	patched, err = svc.PatchRecurring(ctx, "user-1", created.ID, RecurringPatch{DueDay: &newDay})
	if err != nil {
		t.Fatalf("patch due day: %v", err)
	}
	// Day 10 has already passed on 2024-03-15, so the bill moves to April.
	if got := patched.NextDueDate.String(); got != "2024-04-10" {
		t.Fatalf("due day change must recompute: got %s, want 2024-04-10", got)
	}

	sameDay := 10
	patched, err = svc.PatchRecurring(ctx, "user-1", created.ID, RecurringPatch{DueDay: &sameDay})
	if err != nil {
		t.Fatalf("patch same due day: %v", err)
	}
	if got := patched.NextDueDate.String(); got != "2024-04-10" {
		t.Fatalf("unchanged due day must not recompute: got %s", got)
	}
}

func TestPatchRecurringMissingNotFound(t *testing.T) {
	svc := newRecordService(&fakeRecords{})
	name := "Netflix"
	_, err := svc.PatchRecurring(context.Background(), "user-1", "missing", RecurringPatch{Name: &name})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStoreFailureMapsToUpstreamError(t *testing.T) {
	records := &fakeRecords{goalErr: errors.New("db down")}
	_, err := newRecordService(records).ListGoals(context.Background(), "user-1")
	if !errors.Is(err, ErrUpstreamFetchFailed) {
		t.Fatalf("expected ErrUpstreamFetchFailed, got %v", err)
	}
}

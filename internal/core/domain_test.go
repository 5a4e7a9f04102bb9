package core

import (
	"errors"
	"testing"
)

func TestTransactionValidate(t *testing.T) {
	good := Transaction{
		Amount:     Money{Cents: 1200},
		Kind:       Expense,
		Category:   "food",
		OccurredOn: NewDate(2024, 3, 1),
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bad := good
	bad.Kind = "transfer"
	if err := bad.Validate(); !errors.Is(err, ErrInvalidKind) {
		t.Fatalf("expected ErrInvalidKind, got %v", err)
	}

	bad = good
	bad.Category = "  "
	if err := bad.Validate(); !errors.Is(err, ErrEmptyCategory) {
		t.Fatalf("expected ErrEmptyCategory, got %v", err)
	}

	bad = good
	bad.Amount = Money{Cents: -1}
	if err := bad.Validate(); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
}

func TestBudgetValidate(t *testing.T) {
	good := Budget{
		Period: PeriodMonthly,
		Limits: map[string]Money{"food": {Cents: 30000}, "gas": {Cents: 0}},
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok (zero limits allowed), got %v", err)
	}

	bad := Budget{Period: "daily", Limits: map[string]Money{"food": {Cents: 1}}}
	if err := bad.Validate(); !errors.Is(err, ErrInvalidPeriod) {
		t.Fatalf("expected ErrInvalidPeriod, got %v", err)
	}

	bad = Budget{Period: PeriodWeekly, Limits: map[string]Money{"food": {Cents: -5}}}
	if err := bad.Validate(); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
}

func TestRecurringExpenseValidate(t *testing.T) {
	good := RecurringExpense{
		Name:      "Rent",
		Amount:    Money{Cents: 50000},
		DueDay:    1,
		Frequency: FreqMonthly,
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	cases := []struct {
		mutate func(*RecurringExpense)
		want   error
	}{
		{func(re *RecurringExpense) { re.Name = "" }, ErrEmptyName},
		{func(re *RecurringExpense) { re.Amount = Money{} }, ErrInvalidAmount},
		{func(re *RecurringExpense) { re.DueDay = 0 }, ErrInvalidDueDay},
		{func(re *RecurringExpense) { re.DueDay = 32 }, ErrInvalidDueDay},
		{func(re *RecurringExpense) { re.Frequency = "weekly" }, ErrInvalidFrequency},
	}
	for i, tc := range cases {
		re := good
		tc.mutate(&re)
		if err := re.Validate(); !errors.Is(err, tc.want) {
			t.Fatalf("case %d: expected %v, got %v", i, tc.want, err)
		}
	}
}

func TestGoalValidate(t *testing.T) {
	good := Goal{
		Name:          "Emergency fund",
		TargetAmount:  Money{Cents: 100000},
		CurrentAmount: Money{Cents: 0},
		Category:      GoalEmergencyFund,
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bad := good
	bad.TargetAmount = Money{Cents: 0}
	if err := bad.Validate(); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount for zero target, got %v", err)
	}

	bad = good
	bad.Category = "vacation"
	if err := bad.Validate(); !errors.Is(err, ErrInvalidGoalCategory) {
		t.Fatalf("expected ErrInvalidGoalCategory, got %v", err)
	}
}

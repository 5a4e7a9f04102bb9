package core

import (
	"testing"
)

func tx(cents int64, kind TransactionKind, category string, d Date) Transaction {
	return Transaction{Amount: Money{Cents: cents}, Kind: kind, Category: category, OccurredOn: d}
}

func TestSummarizeTotalsAndBreakdown(t *testing.T) {
	txs := []Transaction{
		tx(10000, Income, "job", NewDate(2024, 3, 1)),
		tx(4000, Expense, "food", NewDate(2024, 3, 2)),
		tx(1000, Expense, "food", NewDate(2024, 3, 3)),
	}
	s := Summarize(txs, nil)

	if s.TotalIncome.Cents != 10000 {
		t.Fatalf("income = %d, want 10000", s.TotalIncome.Cents)
	}
	if s.TotalExpenses.Cents != 5000 {
		t.Fatalf("expenses = %d, want 5000", s.TotalExpenses.Cents)
	}
	if s.Balance.Cents != 5000 {
		t.Fatalf("balance = %d, want 5000", s.Balance.Cents)
	}
	if len(s.CategoryBreakdown) != 1 || s.CategoryBreakdown["food"].Cents != 5000 {
		t.Fatalf("breakdown = %v, want food=5000", s.CategoryBreakdown)
	}
}

func TestSummarizeWindowInclusive(t *testing.T) {
	txs := []Transaction{
		tx(100, Expense, "a", NewDate(2024, 2, 29)), // before window
		tx(200, Expense, "b", NewDate(2024, 3, 1)),  // window start
		tx(300, Expense, "c", NewDate(2024, 3, 31)), // window end
		tx(400, Expense, "d", NewDate(2024, 4, 1)),  // after window
		tx(500, Income, "job", NewDate(2024, 3, 15)),
	}
	w := MonthWindow(date(2024, 3, 10))
	s := Summarize(txs, &w)

	if s.TotalExpenses.Cents != 500 {
		t.Fatalf("expenses = %d, want 500 (boundary dates included)", s.TotalExpenses.Cents)
	}
	if s.TotalIncome.Cents != 500 {
		t.Fatalf("income = %d, want 500", s.TotalIncome.Cents)
	}
	if _, ok := s.CategoryBreakdown["a"]; ok {
		t.Fatalf("category outside window should be absent")
	}
	if _, ok := s.CategoryBreakdown["d"]; ok {
		t.Fatalf("category outside window should be absent")
	}
}

func TestSummarizeOrderIndependent(t *testing.T) {
	txs := []Transaction{
		tx(10000, Income, "job", NewDate(2024, 3, 1)),
		tx(4000, Expense, "food", NewDate(2024, 3, 2)),
		tx(1000, Expense, "food", NewDate(2024, 3, 3)),
		tx(2500, Expense, "rent", NewDate(2024, 3, 4)),
	}
	reversed := make([]Transaction, len(txs))
	for i, v := range txs {
		reversed[len(txs)-1-i] = v
	}

	a := Summarize(txs, nil)
	b := Summarize(reversed, nil)

	if a.Balance != b.Balance || a.TotalIncome != b.TotalIncome || a.TotalExpenses != b.TotalExpenses {
		t.Fatalf("totals differ by input order: %+v vs %+v", a, b)
	}
	for cat, amt := range a.CategoryBreakdown {
		if b.CategoryBreakdown[cat] != amt {
			t.Fatalf("breakdown differs for %q: %v vs %v", cat, amt, b.CategoryBreakdown[cat])
		}
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil, nil)
	if s.Balance.Cents != 0 || len(s.CategoryBreakdown) != 0 {
		t.Fatalf("empty input should yield zero summary, got %+v", s)
	}
}

func TestSummarizeNegativeBalance(t *testing.T) {
	txs := []Transaction{
		tx(1000, Income, "job", NewDate(2024, 3, 1)),
		tx(3000, Expense, "rent", NewDate(2024, 3, 2)),
	}
	s := Summarize(txs, nil)
	if s.Balance.Cents != -2000 {
		t.Fatalf("balance = %d, want -2000", s.Balance.Cents)
	}
}

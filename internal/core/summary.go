package core

import "time"

// FinancialSummary is a derived view over a set of transactions; it is never
// persisted.
type FinancialSummary struct {
	TotalIncome   Money
	TotalExpenses Money
	// Balance is TotalIncome - TotalExpenses and may be negative.
	Balance Money
	// CategoryBreakdown maps expense categories to summed amounts. Keys are
	// the raw, case-sensitive category strings; categories without expenses
	// are omitted rather than zero-valued.
	CategoryBreakdown map[string]Money
}

// Window is an inclusive [Start, End] date range.
type Window struct {
	Start time.Time
	End   time.Time
}

// MonthWindow returns the window covering ref's calendar month.
func MonthWindow(ref time.Time) Window {
	year, month, _ := ref.Date()
	return Window{
		Start: time.Date(year, month, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC),
	}
}

// Contains reports whether the date falls inside the window, inclusive at
// both ends.
func (w Window) Contains(d Date) bool {
	t := d.Time
	return !t.Before(w.Start) && !t.After(w.End)
}

// Summarize aggregates transactions into totals and an expense breakdown by
// category. When window is non-nil only transactions inside it are counted.
// The result depends only on the multiset of inputs, not their order, and
// the input slice is never mutated.
func Summarize(transactions []Transaction, window *Window) FinancialSummary {
	s := FinancialSummary{CategoryBreakdown: make(map[string]Money)}

	for _, t := range transactions {
		if window != nil && !window.Contains(t.OccurredOn) {
			continue
		}
		switch t.Kind {
		case Income:
			s.TotalIncome = s.TotalIncome.Add(t.Amount)
		case Expense:
			s.TotalExpenses = s.TotalExpenses.Add(t.Amount)
			s.CategoryBreakdown[t.Category] = s.CategoryBreakdown[t.Category].Add(t.Amount)
		}
	}

	s.Balance = s.TotalIncome.Sub(s.TotalExpenses)
	return s
}

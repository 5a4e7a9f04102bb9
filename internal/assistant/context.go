package assistant

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"smartpenny/internal/core"
)

// Caps keep the context block bounded no matter how many records a user has.
const (
	maxContextGoals      = 10
	maxContextBills      = 15
	maxContextCategories = 10
)

// BuildContext renders the user's financial records into a deterministic,
// human-readable block for grounding the model. It never fails: every
// missing input degrades to its section's fallback sentence, and equal
// inputs always produce byte-identical output.
//
// The summary supplies overall balance/income/expense totals; the
// reconciliation carries the current month's per-category spend against the
// budget's limits.
func BuildContext(budget *core.Budget, summary core.FinancialSummary, recon core.Reconciliation, goals []core.Goal, bills []core.RecurringExpense, now time.Time) string {
	var b strings.Builder

	b.WriteString("FINANCIAL SNAPSHOT\n")
	fmt.Fprintf(&b, "Balance: %s | Total income: %s | Total expenses: %s\n",
		summary.Balance, summary.TotalIncome, summary.TotalExpenses)

	b.WriteString("\nBUDGET (this month)\n")
	writeBudgetSection(&b, budget, recon)

	b.WriteString("\nGOALS\n")
	writeGoalsSection(&b, goals, now)

	b.WriteString("\nRECURRING BILLS\n")
	writeBillsSection(&b, bills)

	b.WriteString("\nTOP SPENDING (this month)\n")
	writeSpendingSection(&b, recon)

	return b.String()
}

func writeBudgetSection(b *strings.Builder, budget *core.Budget, recon core.Reconciliation) {
	if budget == nil || len(budget.Limits) == 0 {
		b.WriteString("No budget set up yet.\n")
		return
	}

	categories := make([]string, 0, len(recon.Categories))
	for cat, standing := range recon.Categories {
		if standing.Limit.Cents > 0 {
			categories = append(categories, cat)
		}
	}
	if len(categories) == 0 {
		b.WriteString("No budget set up yet.\n")
		return
	}
	sort.Strings(categories)

	for _, cat := range categories {
		standing := recon.Categories[cat]
		line := fmt.Sprintf("- %s: limit %s, spent %s, remaining %s", cat, standing.Limit, standing.Spent, standing.Remaining)
		if standing.IsOverspent {
			line += " (OVERSPENT)"
		}
		b.WriteString(line + "\n")
	}
	fmt.Fprintf(b, "Total budget: %s\n", recon.TotalBudget)

	if len(recon.Unbudgeted) > 0 {
		unbudgeted := make([]string, 0, len(recon.Unbudgeted))
		for cat := range recon.Unbudgeted {
			unbudgeted = append(unbudgeted, cat)
		}
		sort.Strings(unbudgeted)
		parts := make([]string, 0, len(unbudgeted))
		for _, cat := range unbudgeted {
			parts = append(parts, fmt.Sprintf("%s %s", cat, recon.Unbudgeted[cat]))
		}
		fmt.Fprintf(b, "Unbudgeted spending: %s\n", strings.Join(parts, ", "))
	}
}

func writeGoalsSection(b *strings.Builder, goals []core.Goal, now time.Time) {
	if len(goals) == 0 {
		b.WriteString("No savings goals set up yet.\n")
		return
	}

	sorted := make([]core.Goal, len(goals))
	copy(sorted, goals)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Name != sorted[j].Name {
			return sorted[i].Name < sorted[j].Name
		}
		return sorted[i].ID < sorted[j].ID
	})
	if len(sorted) > maxContextGoals {
		sorted = sorted[:maxContextGoals]
	}

	for _, g := range sorted {
		p := g.Project(now)
		line := fmt.Sprintf("- %s (%s): %s of %s (%.0f%%), %s to go",
			g.Name, g.Category, g.CurrentAmount, g.TargetAmount, p.DisplayPercent(), p.Remaining)
		if p.MonthlyContribution != nil {
			line += fmt.Sprintf(", needs %s/month for %d months (by %s)",
				*p.MonthlyContribution, p.MonthsRemaining, g.TargetDate)
		}
		b.WriteString(line + "\n")
	}
}

func writeBillsSection(b *strings.Builder, bills []core.RecurringExpense) {
	if len(bills) == 0 {
		b.WriteString("No recurring bills set up yet.\n")
		return
	}

	// The total covers every monthly bill, including any the display cap
	// cuts off below.
	var monthlyTotal core.Money
	for _, bill := range bills {
		if bill.Frequency == core.FreqMonthly {
			monthlyTotal = monthlyTotal.Add(bill.Amount)
		}
	}

	sorted := make([]core.RecurringExpense, len(bills))
	copy(sorted, bills)
	sort.Slice(sorted, func(i, j int) bool {
		if !sorted[i].NextDueDate.Equal(sorted[j].NextDueDate.Time) {
			return sorted[i].NextDueDate.Before(sorted[j].NextDueDate.Time)
		}
		return sorted[i].Name < sorted[j].Name
	})
	if len(sorted) > maxContextBills {
		sorted = sorted[:maxContextBills]
	}

	for _, bill := range sorted {
		status := "unpaid"
		if bill.IsPaid {
			status = "paid"
		}
		fmt.Fprintf(b, "- %s: %s %s, next due %s (%s)\n",
			bill.Name, bill.Amount, bill.Frequency, bill.NextDueDate, status)
	}
	fmt.Fprintf(b, "Monthly bills total: %s\n", monthlyTotal)
}

func writeSpendingSection(b *strings.Builder, recon core.Reconciliation) {
	spend := make(map[string]core.Money, len(recon.Categories)+len(recon.Unbudgeted))
	for cat, standing := range recon.Categories {
		if standing.Spent.Cents > 0 {
			spend[cat] = standing.Spent
		}
	}
	for cat, amount := range recon.Unbudgeted {
		if amount.Cents > 0 {
			spend[cat] = amount
		}
	}

	if len(spend) == 0 {
		b.WriteString("No spending recorded yet.\n")
		return
	}

	categories := make([]string, 0, len(spend))
	for cat := range spend {
		categories = append(categories, cat)
	}
	// Rank by amount descending; ties break on name so output stays stable.
	sort.Slice(categories, func(i, j int) bool {
		a, z := spend[categories[i]], spend[categories[j]]
		if a.Cents != z.Cents {
			return a.Cents > z.Cents
		}
		return categories[i] < categories[j]
	})
	if len(categories) > maxContextCategories {
		categories = categories[:maxContextCategories]
	}

	for i, cat := range categories {
		fmt.Fprintf(b, "%d. %s: %s\n", i+1, cat, spend[cat])
	}
}

package core

// CategoryStanding compares one budgeted category against actual spend.
type CategoryStanding struct {
	Limit       Money
	Spent       Money
	Remaining   Money
	IsOverspent bool
}

// Reconciliation is the comparison of a budget's limits against a summary's
// category breakdown.
type Reconciliation struct {
	// Categories holds a standing for every category the budget limits,
	// including those with no spending.
	Categories map[string]CategoryStanding
	// Unbudgeted holds spending in categories the budget has no limit for.
	// It is surfaced rather than dropped so callers can see the gap.
	Unbudgeted map[string]Money
	// TotalBudget is the sum of all category limits.
	TotalBudget Money
}

// Reconcile computes per-category remaining/overspent figures. A nil budget
// reconciles to zero limits with all spending unbudgeted.
func Reconcile(budget *Budget, breakdown map[string]Money) Reconciliation {
	r := Reconciliation{
		Categories: make(map[string]CategoryStanding),
		Unbudgeted: make(map[string]Money),
	}

	var limits map[string]Money
	if budget != nil {
		limits = budget.Limits
	}

	for category, limit := range limits {
		spent := breakdown[category]
		remaining := limit.Sub(spent)
		r.Categories[category] = CategoryStanding{
			Limit:       limit,
			Spent:       spent,
			Remaining:   remaining,
			IsOverspent: remaining.Cents < 0,
		}
		r.TotalBudget = r.TotalBudget.Add(limit)
	}

	for category, spent := range breakdown {
		if _, budgeted := limits[category]; !budgeted {
			r.Unbudgeted[category] = spent
		}
	}

	return r
}

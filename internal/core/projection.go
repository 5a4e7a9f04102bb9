package core

import "time"

// Projection describes progress toward a savings goal at a point in time.
type Projection struct {
	// PercentComplete is the raw ratio current/target * 100 and may exceed
	// 100 for over-funded goals. Use DisplayPercent for rendering.
	PercentComplete float64

	// Remaining is the amount still needed, clamped at zero for
	// contribution math.
	Remaining Money

	// MonthsRemaining is the number of calendar months until the target
	// date, floored at 1. Zero when the goal has no target date.
	MonthsRemaining int

	// MonthlyContribution is the amount to save each month to reach the
	// target by the target date. Nil when the goal has no target date or
	// nothing remains to save.
	MonthlyContribution *Money
}

// Project computes goal progress relative to ref. It is a pure function;
// goals are not constrained to CurrentAmount <= TargetAmount.
func (g Goal) Project(ref time.Time) Projection {
	p := Projection{}
	if g.TargetAmount.Cents > 0 {
		p.PercentComplete = float64(g.CurrentAmount.Cents) / float64(g.TargetAmount.Cents) * 100
	}

	remaining := g.TargetAmount.Cents - g.CurrentAmount.Cents
	if remaining < 0 {
		remaining = 0
	}
	p.Remaining = Money{Cents: remaining}

	if g.TargetDate.IsEmpty() || remaining <= 0 {
		return p
	}

	// Floor at one month so a past or current-month target date yields the
	// whole remaining amount rather than a division by zero.
	months := monthsBetween(ref, g.TargetDate.Time)
	if months < 1 {
		months = 1
	}
	p.MonthsRemaining = months

	contribution := Money{Cents: divRound(remaining, int64(months))}
	p.MonthlyContribution = &contribution
	return p
}

// DisplayPercent clamps PercentComplete to [0, 100] for rendering. The raw
// ratio stays available to any consumer that needs it.
func (p Projection) DisplayPercent() float64 {
	switch {
	case p.PercentComplete < 0:
		return 0
	case p.PercentComplete > 100:
		return 100
	}
	return p.PercentComplete
}

// monthsBetween counts calendar months from a to b, ignoring days.
func monthsBetween(a, b time.Time) int {
	return (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
}

// divRound divides cents with half-up rounding.
func divRound(cents, by int64) int64 {
	return (cents + by/2) / by
}

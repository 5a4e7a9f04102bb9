package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Income  TransactionKind = "income"
	Expense TransactionKind = "expense"
)

const (
	PeriodMonthly PeriodType = "monthly"
	PeriodWeekly  PeriodType = "weekly"
)

const (
	FreqMonthly  Frequency = "monthly"
	FreqSemester Frequency = "semester"
	FreqYearly   Frequency = "yearly"
)

const (
	GoalEmergencyFund GoalCategory = "emergency_fund"
	GoalTrip          GoalCategory = "trip"
	GoalPurchase      GoalCategory = "purchase"
	GoalEducation     GoalCategory = "education"
	GoalGeneral       GoalCategory = "general"
)

type (
	TransactionKind string
	PeriodType      string
	Frequency       string
	GoalCategory    string

	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	// Transaction is a single income or expense record. Aggregation never
	// mutates transactions; they change only through explicit user edits.
	Transaction struct {
		ID         string
		Amount     Money
		Kind       TransactionKind
		Category   string
		OccurredOn Date
	}

	// Budget holds per-category spending limits for one period type.
	// A user has at most one budget per period type; saving a new one
	// replaces the previous limits wholesale.
	Budget struct {
		Period PeriodType
		Limits map[string]Money
	}

	// RecurringExpense is a bill that comes due on a fixed day of the month.
	// NextDueDate is a cached projection: it is recomputed when DueDay or
	// Frequency change, not merely because time passed.
	RecurringExpense struct {
		ID          string
		Name        string
		Amount      Money
		DueDay      int
		Frequency   Frequency
		Category    string // optional
		NextDueDate Date
		IsPaid      bool
	}

	// Goal is a savings target. CurrentAmount is maintained by the user and
	// may exceed TargetAmount; over-saving is not an error.
	Goal struct {
		ID            string
		Name          string
		TargetAmount  Money
		CurrentAmount Money
		TargetDate    Date // zero value means no target date
		Category      GoalCategory
	}
)

var (
	ErrInvalidDueDay       = errors.New("due day must be between 1 and 31")
	ErrInvalidFrequency    = errors.New("invalid frequency")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInvalidKind         = errors.New("invalid transaction kind")
	ErrInvalidPeriod       = errors.New("invalid budget period")
	ErrInvalidGoalCategory = errors.New("invalid goal category")
	ErrEmptyName           = errors.New("empty name")
	ErrEmptyCategory       = errors.New("empty category")
)

// NewDate creates a Date from year, month, day in UTC.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates a time to its calendar date in UTC.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

// IsEmpty returns true for the zero date (used for optional dates).
func (d Date) IsEmpty() bool {
	return d.IsZero()
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return d.Format("2006-01-02")
}

func (k TransactionKind) Validate() error {
	switch k {
	case Income, Expense:
		return nil
	}
	return ErrInvalidKind
}

func (p PeriodType) Validate() error {
	switch p {
	case PeriodMonthly, PeriodWeekly:
		return nil
	}
	return ErrInvalidPeriod
}

func (f Frequency) Validate() error {
	switch f {
	case FreqMonthly, FreqSemester, FreqYearly:
		return nil
	}
	return ErrInvalidFrequency
}

func (c GoalCategory) Validate() error {
	switch c {
	case GoalEmergencyFund, GoalTrip, GoalPurchase, GoalEducation, GoalGeneral:
		return nil
	}
	return ErrInvalidGoalCategory
}

func (t Transaction) Validate() error {
	if err := t.Kind.Validate(); err != nil {
		return err
	}
	if t.Amount.Cents < 0 {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	if t.OccurredOn.IsZero() {
		return errors.New("transaction date cannot be zero")
	}
	return nil
}

func (b Budget) Validate() error {
	if err := b.Period.Validate(); err != nil {
		return err
	}
	for cat, limit := range b.Limits {
		if strings.TrimSpace(cat) == "" {
			return ErrEmptyCategory
		}
		if limit.Cents < 0 {
			return ErrInvalidAmount
		}
	}
	return nil
}

func (re RecurringExpense) Validate() error {
	if strings.TrimSpace(re.Name) == "" {
		return ErrEmptyName
	}
	if re.Amount.Cents <= 0 {
		return ErrInvalidAmount
	}
	if re.DueDay < 1 || re.DueDay > 31 {
		return ErrInvalidDueDay
	}
	return re.Frequency.Validate()
}

func (g Goal) Validate() error {
	if strings.TrimSpace(g.Name) == "" {
		return ErrEmptyName
	}
	if g.TargetAmount.Cents <= 0 {
		return ErrInvalidAmount
	}
	if g.CurrentAmount.Cents < 0 {
		return ErrInvalidAmount
	}
	return g.Category.Validate()
}

package service

import (
	"context"

	"smartpenny/internal/core"
	"smartpenny/internal/events"
)

// RecurringPatch carries the fields a partial update may change. Nil fields
// keep their current values.
type RecurringPatch struct {
	Name      *string
	Amount    *core.Money
	DueDay    *int
	Frequency *core.Frequency
	Category  *string
	IsPaid    *bool
}

func (s *RecordService) ListRecurring(ctx context.Context, userID string) ([]core.RecurringExpense, error) {
	bills, err := s.records.ListRecurring(ctx, userID)
	if err != nil {
		return nil, s.storeErr(ctx, "list recurring", err)
	}
	return bills, nil
}

// CreateRecurring stores a new bill with its next due date computed from the
// due day and frequency as of now.
func (s *RecordService) CreateRecurring(ctx context.Context, userID string, re core.RecurringExpense) (core.RecurringExpense, error) {
	if err := re.Validate(); err != nil {
		return core.RecurringExpense{}, invalidArg(err)
	}
	next, err := core.NextDueDate(re.DueDay, re.Frequency, s.now())
	if err != nil {
		return core.RecurringExpense{}, invalidArg(err)
	}
	re.NextDueDate = next

	created, err := s.records.CreateRecurring(ctx, userID, re)
	if err != nil {
		return core.RecurringExpense{}, s.storeErr(ctx, "create recurring", err)
	}
	s.publish(ctx, "recurring_expense", events.OpCreated, created.ID, userID)
	return created, nil
}

// PatchRecurring applies a partial update. NextDueDate is recomputed only
// when the patch changes DueDay or Frequency; toggling IsPaid or renaming a
// bill leaves the cached date alone.
func (s *RecordService) PatchRecurring(ctx context.Context, userID, id string, patch RecurringPatch) (core.RecurringExpense, error) {
	re, err := s.records.GetRecurring(ctx, userID, id)
	if err != nil {
		return core.RecurringExpense{}, s.storeErr(ctx, "get recurring", err)
	}

	scheduleChanged := false
	if patch.Name != nil {
		re.Name = *patch.Name
	}
	if patch.Amount != nil {
		re.Amount = *patch.Amount
	}
	if patch.DueDay != nil && *patch.DueDay != re.DueDay {
		re.DueDay = *patch.DueDay
		scheduleChanged = true
	}
	if patch.Frequency != nil && *patch.Frequency != re.Frequency {
		re.Frequency = *patch.Frequency
		scheduleChanged = true
	}
	if patch.Category != nil {
		re.Category = *patch.Category
	}
	if patch.IsPaid != nil {
		re.IsPaid = *patch.IsPaid
	}

	if err := re.Validate(); err != nil {
		return core.RecurringExpense{}, invalidArg(err)
	}
	if scheduleChanged {
		next, err := core.NextDueDate(re.DueDay, re.Frequency, s.now())
		if err != nil {
			return core.RecurringExpense{}, invalidArg(err)
		}
		re.NextDueDate = next
	}

	if err := s.records.UpdateRecurring(ctx, userID, re); err != nil {
		return core.RecurringExpense{}, s.storeErr(ctx, "update recurring", err)
	}
	s.publish(ctx, "recurring_expense", events.OpUpdated, re.ID, userID)
	return re, nil
}

func (s *RecordService) DeleteRecurring(ctx context.Context, userID, id string) error {
	if err := s.records.DeleteRecurring(ctx, userID, id); err != nil {
		return s.storeErr(ctx, "delete recurring", err)
	}
	s.publish(ctx, "recurring_expense", events.OpDeleted, id, userID)
	return nil
}

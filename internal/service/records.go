// Package service orchestrates record mutations, derived projections, and
// chat turns on top of the store ports. It owns the error taxonomy the
// transport layer maps to HTTP statuses.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"smartpenny/internal/core"
	"smartpenny/internal/events"
	"smartpenny/internal/log"
	"smartpenny/internal/store"
)

// RecordService handles budget, transaction, goal, and recurring-expense
// operations. Every mutation publishes a record-change event after the store
// write succeeds; publish failures are logged and never fail the request.
type RecordService struct {
	records store.Records
	events  *events.Publisher
	logger  *log.Logger

	// now is swappable for tests.
	now func() time.Time
}

func NewRecordService(records store.Records, publisher *events.Publisher, logger *log.Logger) *RecordService {
	return &RecordService{
		records: records,
		events:  publisher,
		logger:  logger.WithComponent(log.ComponentRecords),
		now:     time.Now,
	}
}

// Snapshot is the combined financial picture for the summary endpoint:
// all-time totals plus the current month reconciled against the monthly
// budget, if one exists.
type Snapshot struct {
	Budget         *core.Budget
	AllTime        core.FinancialSummary
	Month          core.FinancialSummary
	Reconciliation core.Reconciliation
}

// GetBudget returns the user's budget for the period, or nil when none is set.
func (s *RecordService) GetBudget(ctx context.Context, userID string, period core.PeriodType) (*core.Budget, error) {
	if err := period.Validate(); err != nil {
		return nil, invalidArg(err)
	}
	b, err := s.records.FindBudget(ctx, userID, period)
	if err != nil {
		return nil, s.storeErr(ctx, "find budget", err)
	}
	return b, nil
}

// SaveBudget replaces the user's limits for the budget's period wholesale.
func (s *RecordService) SaveBudget(ctx context.Context, userID string, b core.Budget) error {
	if err := b.Validate(); err != nil {
		return invalidArg(err)
	}
	if err := s.records.UpsertBudget(ctx, userID, b); err != nil {
		return s.storeErr(ctx, "upsert budget", err)
	}
	s.publish(ctx, "budget", events.OpUpdated, string(b.Period), userID)
	return nil
}

func (s *RecordService) ListTransactions(ctx context.Context, userID string, window *core.Window) ([]core.Transaction, error) {
	txs, err := s.records.ListTransactions(ctx, userID, window)
	if err != nil {
		return nil, s.storeErr(ctx, "list transactions", err)
	}
	return txs, nil
}

func (s *RecordService) AddTransaction(ctx context.Context, userID string, t core.Transaction) (core.Transaction, error) {
	if err := t.Validate(); err != nil {
		return core.Transaction{}, invalidArg(err)
	}
	created, err := s.records.InsertTransaction(ctx, userID, t)
	if err != nil {
		return core.Transaction{}, s.storeErr(ctx, "insert transaction", err)
	}
	s.publish(ctx, "transaction", events.OpCreated, created.ID, userID)
	return created, nil
}

func (s *RecordService) UpdateTransaction(ctx context.Context, userID string, t core.Transaction) error {
	if err := t.Validate(); err != nil {
		return invalidArg(err)
	}
	if err := s.records.UpdateTransaction(ctx, userID, t); err != nil {
		return s.storeErr(ctx, "update transaction", err)
	}
	s.publish(ctx, "transaction", events.OpUpdated, t.ID, userID)
	return nil
}

func (s *RecordService) DeleteTransaction(ctx context.Context, userID, id string) error {
	if err := s.records.DeleteTransaction(ctx, userID, id); err != nil {
		return s.storeErr(ctx, "delete transaction", err)
	}
	s.publish(ctx, "transaction", events.OpDeleted, id, userID)
	return nil
}

func (s *RecordService) ListGoals(ctx context.Context, userID string) ([]core.Goal, error) {
	goals, err := s.records.ListGoals(ctx, userID)
	if err != nil {
		return nil, s.storeErr(ctx, "list goals", err)
	}
	return goals, nil
}

func (s *RecordService) CreateGoal(ctx context.Context, userID string, g core.Goal) (core.Goal, error) {
	if err := g.Validate(); err != nil {
		return core.Goal{}, invalidArg(err)
	}
	created, err := s.records.CreateGoal(ctx, userID, g)
	if err != nil {
		return core.Goal{}, s.storeErr(ctx, "create goal", err)
	}
	s.publish(ctx, "goal", events.OpCreated, created.ID, userID)
	return created, nil
}

func (s *RecordService) UpdateGoal(ctx context.Context, userID string, g core.Goal) error {
	if err := g.Validate(); err != nil {
		return invalidArg(err)
	}
	if err := s.records.UpdateGoal(ctx, userID, g); err != nil {
		return s.storeErr(ctx, "update goal", err)
	}
	s.publish(ctx, "goal", events.OpUpdated, g.ID, userID)
	return nil
}

func (s *RecordService) DeleteGoal(ctx context.Context, userID, id string) error {
	if err := s.records.DeleteGoal(ctx, userID, id); err != nil {
		return s.storeErr(ctx, "delete goal", err)
	}
	s.publish(ctx, "goal", events.OpDeleted, id, userID)
	return nil
}

// Summarize builds the combined snapshot used by the summary endpoint. The
// reconciliation always uses the monthly budget against the current month's
// expenses, regardless of which window the caller reads transactions with.
func (s *RecordService) Summarize(ctx context.Context, userID string) (Snapshot, error) {
	txs, err := s.records.ListTransactions(ctx, userID, nil)
	if err != nil {
		return Snapshot{}, s.storeErr(ctx, "list transactions", err)
	}
	budget, err := s.records.FindBudget(ctx, userID, core.PeriodMonthly)
	if err != nil {
		return Snapshot{}, s.storeErr(ctx, "find budget", err)
	}

	month := core.MonthWindow(s.now())
	monthly := core.Summarize(txs, &month)

	return Snapshot{
		Budget:         budget,
		AllTime:        core.Summarize(txs, nil),
		Month:          monthly,
		Reconciliation: core.Reconcile(budget, monthly.CategoryBreakdown),
	}, nil
}

// publish sends a record-change event without blocking the request outcome.
func (s *RecordService) publish(ctx context.Context, entity, op, recordID, userID string) {
	if err := s.events.PublishRecordChange(ctx, entity, op, recordID, userID); err != nil {
		s.logger.WarnContext(ctx, "Failed to publish record change",
			log.FieldEntity, entity,
			log.FieldOperation, op,
			log.FieldRecordID, recordID,
			log.FieldError, err)
	}
}

func (s *RecordService) storeErr(ctx context.Context, op string, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	s.logger.ErrorContext(ctx, "Record store operation failed",
		log.FieldOperation, op,
		log.FieldError, err)
	return fmt.Errorf("%s: %w", op, ErrUpstreamFetchFailed)
}

func invalidArg(err error) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, err)
}

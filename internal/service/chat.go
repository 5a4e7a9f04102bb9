package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"smartpenny/internal/assistant"
	"smartpenny/internal/core"
	"smartpenny/internal/log"
	"smartpenny/internal/ratelimit"
	"smartpenny/internal/store"
)

// ChatService runs one advisor turn: quota check, concurrent record fetch,
// context assembly, and a bounded model call.
type ChatService struct {
	records   store.Records
	counter   ratelimit.Counter
	limit     int
	completer assistant.Completer
	timeout   time.Duration
	logger    *log.Logger

	// now is swappable for tests.
	now func() time.Time
}

func NewChatService(records store.Records, counter ratelimit.Counter, limit int, completer assistant.Completer, timeout time.Duration, logger *log.Logger) *ChatService {
	return &ChatService{
		records:   records,
		counter:   counter,
		limit:     limit,
		completer: completer,
		timeout:   timeout,
		logger:    logger.WithComponent(log.ComponentChat),
		now:       time.Now,
	}
}

// Turn answers the latest user message with the user's financial context
// attached. Fetch failures degrade to empty sections rather than failing the
// turn; only an unusable request, an exhausted quota, or a model failure is
// an error.
func (s *ChatService) Turn(ctx context.Context, userID string, messages []assistant.Message) (string, error) {
	if userID == "" {
		return "", ErrUnauthenticated
	}
	if err := validateMessages(messages); err != nil {
		return "", err
	}

	count, err := s.counter.Increment(userID)
	if err != nil {
		return "", fmt.Errorf("rate limit check: %w", err)
	}
	if count > s.limit {
		s.logger.WarnContext(ctx, "Chat quota exhausted",
			log.FieldUserID, userID,
			"count", count)
		return "", ErrRateLimited
	}

	snapshot := s.fetchContext(ctx, userID)

	now := s.now()
	month := core.MonthWindow(now)
	monthly := core.Summarize(snapshot.transactions, &month)
	recon := core.Reconcile(snapshot.budget, monthly.CategoryBreakdown)
	allTime := core.Summarize(snapshot.transactions, nil)

	contextBlock := assistant.BuildContext(snapshot.budget, allTime, recon, snapshot.goals, snapshot.bills, now)
	instruction := assistant.Instruction(contextBlock)

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	reply, err := s.completer.Complete(callCtx, instruction, messages)
	if err != nil {
		s.logger.ErrorContext(ctx, "Model call failed",
			log.FieldUserID, userID,
			log.FieldError, err)
		return "", fmt.Errorf("%w: %s", ErrModelCallFailed, err)
	}

	s.logger.InfoContext(ctx, "Chat turn completed",
		log.FieldUserID, userID,
		log.FieldMessages, len(messages))
	return reply, nil
}

type chatSnapshot struct {
	budget       *core.Budget
	transactions []core.Transaction
	goals        []core.Goal
	bills        []core.RecurringExpense
}

// fetchContext loads the four record sets concurrently. A failed fetch is
// logged and its slot stays empty; the turn proceeds with whatever loaded.
func (s *ChatService) fetchContext(ctx context.Context, userID string) chatSnapshot {
	var snap chatSnapshot

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		b, err := s.records.FindBudget(ctx, userID, core.PeriodMonthly)
		if err != nil {
			s.warnFetch(ctx, userID, "budget", err)
			return nil
		}
		snap.budget = b
		return nil
	})
	g.Go(func() error {
		txs, err := s.records.ListTransactions(ctx, userID, nil)
		if err != nil {
			s.warnFetch(ctx, userID, "transactions", err)
			return nil
		}
		snap.transactions = txs
		return nil
	})
	g.Go(func() error {
		goals, err := s.records.ListGoals(ctx, userID)
		if err != nil {
			s.warnFetch(ctx, userID, "goals", err)
			return nil
		}
		snap.goals = goals
		return nil
	})
	g.Go(func() error {
		bills, err := s.records.ListRecurring(ctx, userID)
		if err != nil {
			s.warnFetch(ctx, userID, "recurring", err)
			return nil
		}
		snap.bills = bills
		return nil
	})

	// Goroutines never return errors, so Wait only synchronizes.
	_ = g.Wait()
	return snap
}

func (s *ChatService) warnFetch(ctx context.Context, userID, entity string, err error) {
	s.logger.WarnContext(ctx, "Context fetch failed, continuing without it",
		log.FieldUserID, userID,
		log.FieldEntity, entity,
		log.FieldError, err)
}

func validateMessages(messages []assistant.Message) error {
	if len(messages) == 0 {
		return fmt.Errorf("%w: empty message list", ErrInvalidArgument)
	}
	last := messages[len(messages)-1]
	if last.Role != assistant.RoleUser {
		return fmt.Errorf("%w: last message must be from the user", ErrInvalidArgument)
	}
	for i, m := range messages {
		if m.Role != assistant.RoleUser && m.Role != assistant.RoleAssistant {
			return fmt.Errorf("%w: message %d has unknown role %q", ErrInvalidArgument, i, m.Role)
		}
		if strings.TrimSpace(m.Content) == "" {
			return fmt.Errorf("%w: message %d is empty", ErrInvalidArgument, i)
		}
	}
	return nil
}

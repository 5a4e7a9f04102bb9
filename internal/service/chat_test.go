package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"smartpenny/internal/assistant"
	"smartpenny/internal/core"
	"smartpenny/internal/ratelimit"
)

func newChatService(records *fakeRecords, counter ratelimit.Counter, completer *fakeCompleter) *ChatService {
	s := NewChatService(records, counter, 20, completer, 30*time.Second, testLogger())
	s.now = fixedNow
	return s
}

func userMsg(content string) []assistant.Message {
	return []assistant.Message{{Role: assistant.RoleUser, Content: content}}
}

func TestTurnHappyPath(t *testing.T) {
	records := &fakeRecords{
		budget: &core.Budget{
			Period: core.PeriodMonthly,
			Limits: map[string]core.Money{"food": {Cents: 30000}},
		},
		transactions: []core.Transaction{
			{ID: "t1", Amount: core.Money{Cents: 5000}, Kind: core.Expense, Category: "food", OccurredOn: core.NewDate(2024, 3, 10)},
			{ID: "t2", Amount: core.Money{Cents: 200000}, Kind: core.Income, Category: "salary", OccurredOn: core.NewDate(2024, 3, 1)},
		},
		goals: []core.Goal{
			{ID: "g1", Name: "Laptop", TargetAmount: core.Money{Cents: 100000}, CurrentAmount: core.Money{Cents: 40000}, Category: core.GoalPurchase},
		},
	}
	completer := &fakeCompleter{reply: "Yes. You can afford it."}

	reply, err := newChatService(records, &fakeCounter{}, completer).Turn(context.Background(), "user-1", userMsg("can I afford a laptop?"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != "Yes. You can afford it." {
		t.Fatalf("unexpected reply: %q", reply)
	}

	if completer.calls != 1 {
		t.Fatalf("expected 1 model call, got %d", completer.calls)
	}
	for _, want := range []string{"FINANCIAL SNAPSHOT", "food", "Laptop"} {
		if !strings.Contains(completer.instruction, want) {
			t.Errorf("instruction missing %q", want)
		}
	}
	if len(completer.messages) != 1 || completer.messages[0].Content != "can I afford a laptop?" {
		t.Fatalf("messages not relayed: %+v", completer.messages)
	}
}

func TestTurnRejectsMissingUser(t *testing.T) {
	completer := &fakeCompleter{reply: "never"}
	_, err := newChatService(&fakeRecords{}, &fakeCounter{}, completer).Turn(context.Background(), "", userMsg("hi"))
	if !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
	if completer.calls != 0 {
		t.Fatal("model must not be called for unauthenticated requests")
	}
}

func TestTurnRejectsBadMessages(t *testing.T) {
	cases := []struct {
		name     string
		messages []assistant.Message
	}{
		{"empty list", nil},
		{"blank content", []assistant.Message{{Role: assistant.RoleUser, Content: "   "}}},
		{"unknown role", []assistant.Message{{Role: "system", Content: "hi"}}},
		{"assistant last", []assistant.Message{
			{Role: assistant.RoleUser, Content: "hi"},
			{Role: assistant.RoleAssistant, Content: "hello"},
		}},
	}
	svc := newChatService(&fakeRecords{}, &fakeCounter{}, &fakeCompleter{reply: "ok"})
	for i, tc := range cases {
		_, err := svc.Turn(context.Background(), "user-1", tc.messages)
		if !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("case %d (%s): expected ErrInvalidArgument, got %v", i, tc.name, err)
		}
	}
}

func TestTurnRateLimited(t *testing.T) {
	counter := &fakeCounter{count: 20} // next increment returns 21
	completer := &fakeCompleter{reply: "never"}
	_, err := newChatService(&fakeRecords{}, counter, completer).Turn(context.Background(), "user-1", userMsg("hi"))
	if !errors.Is(err, ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}
	if completer.calls != 0 {
		t.Fatal("model must not be called once the quota is exhausted")
	}
}

func TestTurnDegradesOnFetchFailure(t *testing.T) {
	records := &fakeRecords{
		budgetErr:      errors.New("db down"),
		transactionErr: errors.New("db down"),
		goalErr:        errors.New("db down"),
		recurringErr:   errors.New("db down"),
	}
	completer := &fakeCompleter{reply: "Maybe. I have limited data."}

	reply, err := newChatService(records, &fakeCounter{}, completer).Turn(context.Background(), "user-1", userMsg("how am I doing?"))
	if err != nil {
		t.Fatalf("fetch failures must not fail the turn: %v", err)
	}
	if reply == "" {
		t.Fatal("expected a reply")
	}
	if !strings.Contains(completer.instruction, "No budget set up yet") {
		t.Error("expected budget fallback in instruction")
	}
	if !strings.Contains(completer.instruction, "No savings goals") {
		t.Error("expected goals fallback in instruction")
	}
}

func TestTurnModelFailure(t *testing.T) {
	completer := &fakeCompleter{err: errors.New("upstream 500")}
	_, err := newChatService(&fakeRecords{}, &fakeCounter{}, completer).Turn(context.Background(), "user-1", userMsg("hi"))
	if !errors.Is(err, ErrModelCallFailed) {
		t.Fatalf("expected ErrModelCallFailed, got %v", err)
	}
}

func TestTurnCountsRejectedPromptsAgainstQuota(t *testing.T) {
	counter := &fakeCounter{}
	svc := newChatService(&fakeRecords{}, counter, &fakeCompleter{reply: "ok"})
	for i := 0; i < 3; i++ {
		if _, err := svc.Turn(context.Background(), "user-1", userMsg("hi")); err != nil {
			t.Fatalf("turn %d: %v", i, err)
		}
	}
	if counter.count != 3 {
		t.Fatalf("expected 3 increments, got %d", counter.count)
	}
}

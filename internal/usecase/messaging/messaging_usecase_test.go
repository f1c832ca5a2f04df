package messaging

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alliyn/alliyn-backend/internal/domain"
	"github.com/alliyn/alliyn-backend/internal/events"
	"github.com/alliyn/alliyn-backend/internal/infrastructure/clock"
	"github.com/alliyn/alliyn-backend/internal/infrastructure/gemini"
	"github.com/alliyn/alliyn-backend/internal/repository/kvstore"
	"github.com/alliyn/alliyn-backend/internal/repository/memory"
)

type fakeTracker struct {
	calls map[domain.GoalCategory]int
}

func (f *fakeTracker) UpdateProgress(_ context.Context, _ string, category domain.GoalCategory, amount int) ([]domain.Achievement, error) {
	if f.calls == nil {
		f.calls = make(map[domain.GoalCategory]int)
	}
	f.calls[category] += amount
	return nil, nil
}

var testDelays = DelayConfig{Greeting: time.Second, ReplyMin: 2 * time.Second, ReplyMax: 5 * time.Second}

func newTestUseCase(t *testing.T) (*MessagingUseCase, *clock.Manual, *fakeTracker) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	clk := clock.NewManual(time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC))
	tracker := &fakeTracker{}
	repo := kvstore.NewInboxRepository(memory.NewKeyValueStore(), logger)
	uc := NewMessagingUseCase(repo, tracker, NewCannedResponder(42, testDelays), clk, events.NoopPublisher{}, logger)
	return uc, clk, tracker
}

var candidate = &domain.Profile{ID: 3, Name: "David Chen", BusinessName: "NextGen Ventures"}

func TestCreateConversationSchedulesGreeting(t *testing.T) {
	uc, clk, _ := newTestUseCase(t)
	ctx := context.Background()

	id, err := uc.CreateConversation(ctx, "u1", candidate)
	if err != nil {
		t.Fatal(err)
	}

	conv, err := uc.GetConversation(ctx, "u1", id)
	if err != nil {
		t.Fatal(err)
	}
	if len(conv.Messages) != 0 {
		t.Fatalf("expected empty conversation, got %d messages", len(conv.Messages))
	}
	if conv.Participants[0].ID != "u1" || conv.Counterpart().ID != "3" {
		t.Fatalf("unexpected participants %+v", conv.Participants)
	}

	clk.Advance(999 * time.Millisecond)
	conv, _ = uc.GetConversation(ctx, "u1", id)
	if len(conv.Messages) != 0 {
		t.Fatal("greeting arrived early")
	}

	clk.Advance(time.Millisecond)
	inbox, _ := uc.GetConversations(ctx, "u1")
	if len(inbox.Conversations) != 1 || len(inbox.Conversations[0].Messages) != 1 {
		t.Fatalf("expected greeting, got %+v", inbox.Conversations)
	}
	greeting := inbox.Conversations[0].Messages[0]
	if greeting.SenderID != "3" || greeting.Text == "" {
		t.Fatalf("unexpected greeting %+v", greeting)
	}
	if inbox.TotalUnread != 1 || !inbox.HasNewMatches {
		t.Fatalf("unread=%d new=%v", inbox.TotalUnread, inbox.HasNewMatches)
	}
}

func TestRemoveConversationDropsPendingGreeting(t *testing.T) {
	uc, clk, _ := newTestUseCase(t)
	ctx := context.Background()

	id, err := uc.CreateConversation(ctx, "u1", candidate)
	if err != nil {
		t.Fatal(err)
	}
	if err := uc.RemoveConversation(ctx, "u1", id); err != nil {
		t.Fatal(err)
	}
	if err := uc.RemoveConversation(ctx, "u1", id); !errors.Is(err, domain.ErrConversationNotFound) {
		t.Fatalf("second remove err = %v", err)
	}

	clk.Advance(time.Second)
	inbox, err := uc.GetConversations(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(inbox.Conversations) != 0 || inbox.TotalUnread != 0 {
		t.Fatalf("inbox after remove = %+v", inbox)
	}
}

func TestSendMessageRepliesAndCountsGoal(t *testing.T) {
	uc, clk, tracker := newTestUseCase(t)
	ctx := context.Background()

	id, _ := uc.CreateConversation(ctx, "u1", candidate)
	clk.Advance(time.Second)

	msg, err := uc.SendMessage(ctx, "u1", id, "  Let's talk  ")
	if err != nil {
		t.Fatal(err)
	}
	if msg.Text != "Let's talk" || msg.SenderID != "u1" {
		t.Fatalf("unexpected message %+v", msg)
	}
	if tracker.calls[domain.CategoryMessages] != 1 {
		t.Fatalf("messages goal progressed %d times", tracker.calls[domain.CategoryMessages])
	}

	clk.Advance(2*time.Second - time.Millisecond)
	conv, _ := uc.GetConversation(ctx, "u1", id)
	if len(conv.Messages) != 2 {
		t.Fatalf("reply arrived before the minimum delay: %d messages", len(conv.Messages))
	}

	clk.Advance(3*time.Second + time.Millisecond)
	conv, _ = uc.GetConversation(ctx, "u1", id)
	if len(conv.Messages) != 3 {
		t.Fatalf("expected reply within 5s, got %d messages", len(conv.Messages))
	}
	if conv.LastMessage == nil || conv.LastMessage.SenderID != "3" {
		t.Fatalf("last message %+v", conv.LastMessage)
	}
	if conv.UnreadCount != 2 {
		t.Fatalf("unread = %d, want 2", conv.UnreadCount)
	}

	if err := uc.MarkAsRead(ctx, "u1", id); err != nil {
		t.Fatal(err)
	}
	if err := uc.MarkMatchesAsViewed(ctx, "u1"); err != nil {
		t.Fatal(err)
	}
	inbox, _ := uc.GetConversations(ctx, "u1")
	if inbox.TotalUnread != 0 || inbox.HasNewMatches {
		t.Fatalf("unread=%d new=%v", inbox.TotalUnread, inbox.HasNewMatches)
	}
}

func TestSendMessageErrors(t *testing.T) {
	uc, _, _ := newTestUseCase(t)
	ctx := context.Background()

	if _, err := uc.SendMessage(ctx, "u1", "missing", "hi"); !errors.Is(err, domain.ErrConversationNotFound) {
		t.Fatalf("expected ErrConversationNotFound, got %v", err)
	}
	id, _ := uc.CreateConversation(ctx, "u1", candidate)
	if _, err := uc.SendMessage(ctx, "u1", id, "   "); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestStopCancelsCounterpart(t *testing.T) {
	uc, clk, _ := newTestUseCase(t)
	ctx := context.Background()

	id, _ := uc.CreateConversation(ctx, "u1", candidate)
	uc.Stop()
	clk.Advance(time.Minute)

	conv, _ := uc.GetConversation(ctx, "u1", id)
	if len(conv.Messages) != 0 {
		t.Fatalf("expected no messages after Stop, got %d", len(conv.Messages))
	}
	if clk.Pending() != 0 {
		t.Fatalf("pending timers = %d", clk.Pending())
	}
}

func TestCannedResponderIsDeterministic(t *testing.T) {
	a := NewCannedResponder(7, testDelays)
	b := NewCannedResponder(7, testDelays)
	ctx := context.Background()
	p := domain.Participant{ID: "1"}

	for i := 0; i < 20; i++ {
		if a.Greeting(ctx, p) != b.Greeting(ctx, p) {
			t.Fatal("greetings diverged")
		}
		if a.Reply(ctx, p, "x") != b.Reply(ctx, p, "x") {
			t.Fatal("replies diverged")
		}
		da, db := a.ReplyDelay(), b.ReplyDelay()
		if da != db {
			t.Fatal("delays diverged")
		}
		if da < testDelays.ReplyMin || da >= testDelays.ReplyMax {
			t.Fatalf("delay %v out of range", da)
		}
	}
}

type failingGenerator struct{}

func (failingGenerator) GenerateGreeting(context.Context, gemini.Persona) (string, error) {
	return "", gemini.ErrEmptyResponse
}

func (failingGenerator) GenerateReply(context.Context, gemini.Persona, string) (string, error) {
	return "", gemini.ErrEmptyResponse
}

type echoGenerator struct{}

func (echoGenerator) GenerateGreeting(_ context.Context, p gemini.Persona) (string, error) {
	return "Hello from " + p.BusinessName, nil
}

func (echoGenerator) GenerateReply(_ context.Context, _ gemini.Persona, incoming string) (string, error) {
	return "Re: " + incoming, nil
}

func TestGeminiResponder(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.Background()
	p := domain.Participant{ID: "3", BusinessName: "NextGen Ventures"}

	ai := NewGeminiResponder(echoGenerator{}, NewCannedResponder(1, testDelays), logger)
	if got := ai.Greeting(ctx, p); got != "Hello from NextGen Ventures" {
		t.Fatalf("greeting = %q", got)
	}
	if got := ai.Reply(ctx, p, "hi"); got != "Re: hi" {
		t.Fatalf("reply = %q", got)
	}

	fallback := NewGeminiResponder(failingGenerator{}, NewCannedResponder(1, testDelays), logger)
	canned := NewCannedResponder(1, testDelays)
	if got, want := fallback.Greeting(ctx, p), canned.Greeting(ctx, p); got != want {
		t.Fatalf("fallback greeting = %q, want %q", got, want)
	}
	if fallback.GreetingDelay() != time.Second {
		t.Fatalf("greeting delay = %v", fallback.GreetingDelay())
	}
}

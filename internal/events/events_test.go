package events

import (
	"context"
	"testing"
	"time"

	"github.com/alliyn/alliyn-backend/internal/domain"
)

func TestBusDeliversByType(t *testing.T) {
	bus := NewBus()

	var matches, goals, all int
	bus.Subscribe(func(ctx context.Context, e Event) { matches++ }, TypeMatchAdded)
	bus.Subscribe(func(ctx context.Context, e Event) { goals++ }, TypeGoalCompleted)
	bus.Subscribe(func(ctx context.Context, e Event) { all++ })

	ctx := context.Background()
	bus.Publish(ctx, MatchAdded{UserID: "u1", Match: domain.Match{ID: "m1"}, At: time.Now()})
	bus.Publish(ctx, GoalCompleted{UserID: "u1", At: time.Now()})
	bus.Publish(ctx, DealCompleted{UserID: "u1", At: time.Now()})

	if matches != 1 {
		t.Fatalf("expected 1 match event, got %d", matches)
	}
	if goals != 1 {
		t.Fatalf("expected 1 goal event, got %d", goals)
	}
	if all != 3 {
		t.Fatalf("expected catch-all handler to see 3 events, got %d", all)
	}
}

func TestBusPublishIsSynchronous(t *testing.T) {
	bus := NewBus()
	var seen string
	bus.Subscribe(func(ctx context.Context, e Event) { seen = e.User() }, TypeMessageSent)

	bus.Publish(context.Background(), MessageSent{UserID: "u42"})
	if seen != "u42" {
		t.Fatalf("handler did not run before Publish returned, seen=%q", seen)
	}
}

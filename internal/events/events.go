// Package events is the in-process bus connecting the matching engine with
// its observers. Publishing is synchronous: every handler has run by the time
// Publish returns.
package events

import (
	"context"
	"sync"
	"time"

	"github.com/alliyn/alliyn-backend/internal/domain"
)

type Type string

const (
	TypeMatchAdded            Type = "match.added"
	TypeGoalCompleted         Type = "goal.completed"
	TypePremiumDiscountEarned Type = "premium_discount.earned"
	TypeDealCompleted         Type = "deal.completed"
	TypeMessageSent           Type = "message.sent"
)

type Event interface {
	Type() Type
	User() string
	OccurredAt() time.Time
}

type MatchAdded struct {
	UserID       string
	Match        domain.Match
	TotalMatches int
	At           time.Time
}

func (e MatchAdded) Type() Type            { return TypeMatchAdded }
func (e MatchAdded) User() string          { return e.UserID }
func (e MatchAdded) OccurredAt() time.Time { return e.At }

type GoalCompleted struct {
	UserID      string
	Goal        domain.Goal
	Achievement domain.Achievement
	At          time.Time
}

func (e GoalCompleted) Type() Type            { return TypeGoalCompleted }
func (e GoalCompleted) User() string          { return e.UserID }
func (e GoalCompleted) OccurredAt() time.Time { return e.At }

type PremiumDiscountEarned struct {
	UserID        string
	MonthlyPoints int
	ExpiresAt     time.Time
	At            time.Time
}

func (e PremiumDiscountEarned) Type() Type            { return TypePremiumDiscountEarned }
func (e PremiumDiscountEarned) User() string          { return e.UserID }
func (e PremiumDiscountEarned) OccurredAt() time.Time { return e.At }

type DealCompleted struct {
	UserID string
	Deal   domain.Deal
	At     time.Time
}

func (e DealCompleted) Type() Type            { return TypeDealCompleted }
func (e DealCompleted) User() string          { return e.UserID }
func (e DealCompleted) OccurredAt() time.Time { return e.At }

type MessageSent struct {
	UserID         string
	ConversationID string
	Message        domain.Message
	At             time.Time
}

func (e MessageSent) Type() Type            { return TypeMessageSent }
func (e MessageSent) User() string          { return e.UserID }
func (e MessageSent) OccurredAt() time.Time { return e.At }

// Handler receives published events.
type Handler func(ctx context.Context, e Event)

// Publisher is what services depend on.
type Publisher interface {
	Publish(ctx context.Context, e Event)
}

type Bus struct {
	mu       sync.RWMutex
	handlers map[Type][]Handler
	all      []Handler
}

func NewBus() *Bus {
	return &Bus{handlers: make(map[Type][]Handler)}
}

// Subscribe registers h for the given event types, or for every event when
// no type is given.
func (b *Bus) Subscribe(h Handler, types ...Type) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(types) == 0 {
		b.all = append(b.all, h)
		return
	}
	for _, t := range types {
		b.handlers[t] = append(b.handlers[t], h)
	}
}

func (b *Bus) Publish(ctx context.Context, e Event) {
	b.mu.RLock()
	hs := make([]Handler, 0, len(b.handlers[e.Type()])+len(b.all))
	hs = append(hs, b.handlers[e.Type()]...)
	hs = append(hs, b.all...)
	b.mu.RUnlock()

	for _, h := range hs {
		h(ctx, e)
	}
}

// NoopPublisher drops every event.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, Event) {}

var (
	_ Publisher = (*Bus)(nil)
	_ Publisher = NoopPublisher{}
)

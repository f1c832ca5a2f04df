package notification

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/alliyn/alliyn-backend/internal/domain"
	"github.com/alliyn/alliyn-backend/internal/events"
	"github.com/alliyn/alliyn-backend/internal/repository/kvstore"
	"github.com/alliyn/alliyn-backend/internal/repository/memory"
)

func newUseCase() (*NotificationUseCase, *events.Bus) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	uc := NewNotificationUseCase(kvstore.NewNotificationRepository(memory.NewKeyValueStore(), logger), logger)
	bus := events.NewBus()
	uc.Subscribe(bus)
	return uc, bus
}

func TestEventsBecomeNotifications(t *testing.T) {
	uc, bus := newUseCase()
	ctx := context.Background()
	at := time.Date(2026, 10, 16, 10, 0, 0, 0, time.UTC)

	bus.Publish(ctx, events.MatchAdded{
		UserID: "u1",
		Match: domain.Match{
			Profile:       domain.Profile{Name: "Sarah Johnson", BusinessName: "Digital Marketing Pro"},
			Compatibility: domain.Compatibility{Score: 95},
		},
		At: at,
	})
	bus.Publish(ctx, events.GoalCompleted{
		UserID: "u1",
		Goal:   domain.Goal{Title: "Daily Swiper", Description: "Swipe on 10 profiles today", Points: 10},
		At:     at.Add(time.Minute),
	})
	bus.Publish(ctx, events.PremiumDiscountEarned{UserID: "u1", MonthlyPoints: 181, ExpiresAt: at.AddDate(0, 1, 0), At: at.Add(2 * time.Minute)})
	bus.Publish(ctx, events.DealCompleted{UserID: "u1", Deal: domain.Deal{Title: "AI Integration", Partner: "TechFlow", Amount: "$250,000"}, At: at})
	// not recorded
	bus.Publish(ctx, events.MessageSent{UserID: "u1", At: at})
	bus.Publish(ctx, events.DealCompleted{UserID: "u2", At: at})

	res, err := uc.List(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Notifications) != 4 || res.Unread != 4 {
		t.Fatalf("feed = %+v", res)
	}

	wantTypes := []domain.NotificationType{domain.NotificationDeal, domain.NotificationDiscount, domain.NotificationGoal, domain.NotificationMatch}
	for i, want := range wantTypes {
		if res.Notifications[i].Type != want {
			t.Errorf("notification %d type = %s, want %s", i, res.Notifications[i].Type, want)
		}
	}
	if !strings.Contains(res.Notifications[3].Message, "Sarah Johnson") || !strings.Contains(res.Notifications[3].Message, "95%") {
		t.Errorf("match message = %q", res.Notifications[3].Message)
	}
	if !strings.Contains(res.Notifications[1].Message, "Nov 16, 2026") {
		t.Errorf("discount message = %q", res.Notifications[1].Message)
	}

	if err := uc.MarkAllRead(ctx, "u1"); err != nil {
		t.Fatal(err)
	}
	res, _ = uc.List(ctx, "u1")
	if res.Unread != 0 {
		t.Fatalf("unread after mark = %d", res.Unread)
	}
}

func TestFeedIsBounded(t *testing.T) {
	uc, bus := newUseCase()
	ctx := context.Background()

	for i := 0; i < MaxFeedSize+5; i++ {
		bus.Publish(ctx, events.DealCompleted{UserID: "u1", Deal: domain.Deal{Title: "deal"}, At: time.Now()})
	}
	res, _ := uc.List(ctx, "u1")
	if len(res.Notifications) != MaxFeedSize {
		t.Fatalf("feed size = %d", len(res.Notifications))
	}
}

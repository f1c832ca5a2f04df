// Package notification turns bus events into a per-user notification feed.
package notification

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/alliyn/alliyn-backend/internal/domain"
	"github.com/alliyn/alliyn-backend/internal/events"
	"github.com/alliyn/alliyn-backend/internal/infrastructure/keylock"
	"github.com/alliyn/alliyn-backend/internal/repository"
	"github.com/google/uuid"
)

// MaxFeedSize bounds the stored feed; older entries are dropped.
const MaxFeedSize = 100

type NotificationUseCase struct {
	repo   repository.NotificationRepository
	logger *slog.Logger
	locks  *keylock.Locker
}

func NewNotificationUseCase(repo repository.NotificationRepository, logger *slog.Logger) *NotificationUseCase {
	return &NotificationUseCase{repo: repo, logger: logger, locks: keylock.New()}
}

type FeedResponse struct {
	Notifications []domain.Notification `json:"notifications"`
	Unread        int                   `json:"unread"`
}

// Subscribe registers the use case on the bus for every event it records.
func (uc *NotificationUseCase) Subscribe(bus *events.Bus) {
	bus.Subscribe(uc.Handle,
		events.TypeMatchAdded,
		events.TypeGoalCompleted,
		events.TypePremiumDiscountEarned,
		events.TypeDealCompleted,
	)
}

func (uc *NotificationUseCase) Handle(ctx context.Context, e events.Event) {
	n, ok := render(e)
	if !ok {
		return
	}
	n.ID = uuid.NewString()
	n.CreatedAt = e.OccurredAt()

	if err := uc.push(ctx, e.User(), n); err != nil {
		uc.logger.Error("failed to record notification", "user_id", e.User(), "type", e.Type(), "error", err)
	}
}

func render(e events.Event) (domain.Notification, bool) {
	switch ev := e.(type) {
	case events.MatchAdded:
		title := "New match!"
		if ev.Match.AutoMatched {
			title = "Auto-match found!"
		}
		return domain.Notification{
			Type:    domain.NotificationMatch,
			Title:   title,
			Message: fmt.Sprintf("You matched with %s from %s (%d%% compatible)", ev.Match.Profile.Name, ev.Match.Profile.BusinessName, ev.Match.Compatibility.Score),
		}, true
	case events.GoalCompleted:
		return domain.Notification{
			Type:    domain.NotificationGoal,
			Title:   "Goal completed: " + ev.Goal.Title,
			Message: fmt.Sprintf("%s (+%d points)", ev.Goal.Description, ev.Goal.Points),
		}, true
	case events.PremiumDiscountEarned:
		return domain.Notification{
			Type:    domain.NotificationDiscount,
			Title:   "Premium discount unlocked",
			Message: fmt.Sprintf("You earned %d points this month. Your discount is valid until %s.", ev.MonthlyPoints, ev.ExpiresAt.Format("Jan 2, 2006")),
		}, true
	case events.DealCompleted:
		return domain.Notification{
			Type:    domain.NotificationDeal,
			Title:   "Deal completed",
			Message: fmt.Sprintf("%s with %s closed at %s", ev.Deal.Title, ev.Deal.Partner, ev.Deal.Amount),
		}, true
	}
	return domain.Notification{}, false
}

func (uc *NotificationUseCase) push(ctx context.Context, userID string, n domain.Notification) error {
	unlock := uc.locks.Lock(userID)
	defer unlock()

	feed, err := uc.repo.List(ctx, userID)
	if err != nil {
		return err
	}
	feed = append([]domain.Notification{n}, feed...)
	if len(feed) > MaxFeedSize {
		feed = feed[:MaxFeedSize]
	}
	return uc.repo.Save(ctx, userID, feed)
}

func (uc *NotificationUseCase) List(ctx context.Context, userID string) (*FeedResponse, error) {
	feed, err := uc.repo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load notifications: %w", err)
	}
	res := &FeedResponse{Notifications: feed}
	for _, n := range feed {
		if !n.Read {
			res.Unread++
		}
	}
	return res, nil
}

func (uc *NotificationUseCase) MarkAllRead(ctx context.Context, userID string) error {
	unlock := uc.locks.Lock(userID)
	defer unlock()

	feed, err := uc.repo.List(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load notifications: %w", err)
	}
	for i := range feed {
		feed[i].Read = true
	}
	return uc.repo.Save(ctx, userID, feed)
}

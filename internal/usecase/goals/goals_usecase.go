// Package goals tracks daily and monthly goal progress and the rewards that
// come with completing them.
package goals

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/alliyn/alliyn-backend/internal/domain"
	"github.com/alliyn/alliyn-backend/internal/events"
	"github.com/alliyn/alliyn-backend/internal/infrastructure/clock"
	"github.com/alliyn/alliyn-backend/internal/infrastructure/keylock"
	"github.com/alliyn/alliyn-backend/internal/repository"
	"github.com/google/uuid"
)

type Config struct {
	DiscountThreshold int
	MonthlyReset      bool
}

type GoalsUseCase struct {
	repo      repository.GoalRepository
	clock     clock.Clock
	publisher events.Publisher
	cfg       Config
	logger    *slog.Logger
	locks     *keylock.Locker
}

func NewGoalsUseCase(
	repo repository.GoalRepository,
	clk clock.Clock,
	publisher events.Publisher,
	cfg Config,
	logger *slog.Logger,
) *GoalsUseCase {
	return &GoalsUseCase{
		repo:      repo,
		clock:     clk,
		publisher: publisher,
		cfg:       cfg,
		logger:    logger,
		locks:     keylock.New(),
	}
}

// GoalsResponse is the goal board of one user.
type GoalsResponse struct {
	DailyGoals         []domain.Goal `json:"daily_goals"`
	MonthlyGoals       []domain.Goal `json:"monthly_goals"`
	TotalPoints        int           `json:"total_points"`
	MonthlyPoints      int           `json:"monthly_points"`
	HasPremiumDiscount bool          `json:"has_premium_discount"`
	DiscountExpiresAt  *time.Time    `json:"discount_expires_at,omitempty"`
	DiscountThreshold  int           `json:"discount_threshold"`
}

// UpdateProgress adds amount to every open goal of the category. Goals that
// reach their target are completed exactly once and yield an achievement.
func (uc *GoalsUseCase) UpdateProgress(ctx context.Context, userID string, category domain.GoalCategory, amount int) ([]domain.Achievement, error) {
	if !category.IsValid() || amount <= 0 {
		return nil, domain.ErrInvalidInput
	}

	var pending []events.Event
	achievements, err := uc.mutate(ctx, userID, func(state *domain.GoalState, now time.Time) []domain.Achievement {
		var earned []domain.Achievement
		for _, goals := range [][]domain.Goal{state.DailyGoals, state.MonthlyGoals} {
			for i := range goals {
				g := &goals[i]
				if g.Completed || g.Category != category {
					continue
				}
				g.Current = min(g.Current+amount, g.Target)
				if g.Current < g.Target {
					continue
				}

				completedAt := now
				g.Completed = true
				g.CompletedAt = &completedAt

				a := domain.Achievement{
					ID:          uuid.NewString(),
					GoalID:      g.ID,
					Title:       g.Title,
					Description: g.Description,
					Points:      g.Points,
					Category:    g.Category,
					Icon:        g.Icon,
					CompletedAt: now,
				}
				state.Achievements = append(state.Achievements, a)
				state.TotalPoints += g.Points
				state.MonthlyPoints += g.Points
				earned = append(earned, a)
				pending = append(pending, events.GoalCompleted{UserID: userID, Goal: *g, Achievement: a, At: now})
			}
		}

		if state.MonthlyPoints >= uc.cfg.DiscountThreshold && !state.HasPremiumDiscount {
			expires := now.AddDate(0, 1, 0)
			state.HasPremiumDiscount = true
			state.DiscountExpiresAt = &expires
			pending = append(pending, events.PremiumDiscountEarned{
				UserID:        userID,
				MonthlyPoints: state.MonthlyPoints,
				ExpiresAt:     expires,
				At:            now,
			})
		}
		return earned
	})
	if err != nil {
		return nil, err
	}

	for _, e := range pending {
		uc.publisher.Publish(ctx, e)
	}
	if len(achievements) > 0 {
		uc.logger.Info("goals completed", "user_id", userID, "category", category, "count", len(achievements))
	}
	return achievements, nil
}

// mutate runs fn on the rolled-over state under the user's lock and saves it.
func (uc *GoalsUseCase) mutate(ctx context.Context, userID string, fn func(*domain.GoalState, time.Time) []domain.Achievement) ([]domain.Achievement, error) {
	unlock := uc.locks.Lock(userID)
	defer unlock()

	now := uc.clock.Now()
	state, err := uc.repo.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load goals: %w", err)
	}
	uc.rollover(state, now)

	out := fn(state, now)
	if err := uc.repo.Save(ctx, userID, state); err != nil {
		return nil, fmt.Errorf("failed to save goals: %w", err)
	}
	return out, nil
}

// load returns the state with any pending rollover applied and persisted.
func (uc *GoalsUseCase) load(ctx context.Context, userID string) (*domain.GoalState, error) {
	unlock := uc.locks.Lock(userID)
	defer unlock()

	state, err := uc.repo.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load goals: %w", err)
	}
	if uc.rollover(state, uc.clock.Now()) {
		if err := uc.repo.Save(ctx, userID, state); err != nil {
			return nil, fmt.Errorf("failed to save goals: %w", err)
		}
	}
	return state, nil
}

// rollover applies day and month boundaries crossed since the state was
// last touched and drops an expired discount. It reports whether the state
// changed.
func (uc *GoalsUseCase) rollover(state *domain.GoalState, now time.Time) bool {
	changed := false

	if day := clock.DayKey(now); state.DailyPeriod != day {
		if state.DailyPeriod != "" {
			resetAll(state.DailyGoals)
		}
		state.DailyPeriod = day
		changed = true
	}

	if month := clock.MonthKey(now); state.MonthlyPeriod != month {
		if state.MonthlyPeriod != "" {
			state.MonthlyPoints = 0
			if uc.cfg.MonthlyReset {
				resetAll(state.MonthlyGoals)
			}
		}
		state.MonthlyPeriod = month
		changed = true
	}

	if state.HasPremiumDiscount && state.DiscountExpiresAt != nil && !now.Before(*state.DiscountExpiresAt) {
		state.HasPremiumDiscount = false
		state.DiscountExpiresAt = nil
		changed = true
	}
	return changed
}

func resetAll(goals []domain.Goal) {
	for i := range goals {
		goals[i].Reset()
	}
}

func (uc *GoalsUseCase) GetGoals(ctx context.Context, userID string) (*GoalsResponse, error) {
	state, err := uc.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &GoalsResponse{
		DailyGoals:         state.DailyGoals,
		MonthlyGoals:       state.MonthlyGoals,
		TotalPoints:        state.TotalPoints,
		MonthlyPoints:      state.MonthlyPoints,
		HasPremiumDiscount: state.HasPremiumDiscount,
		DiscountExpiresAt:  state.DiscountExpiresAt,
		DiscountThreshold:  uc.cfg.DiscountThreshold,
	}, nil
}

// GetProgress returns completion of one goal as a percentage in [0,100].
func (uc *GoalsUseCase) GetProgress(ctx context.Context, userID, goalID string) (float64, error) {
	state, err := uc.load(ctx, userID)
	if err != nil {
		return 0, err
	}
	for _, goals := range [][]domain.Goal{state.DailyGoals, state.MonthlyGoals} {
		for i := range goals {
			if goals[i].ID == goalID {
				return goals[i].Progress(), nil
			}
		}
	}
	return 0, domain.ErrGoalNotFound
}

// GetAchievementsByMonth filters the achievement log by the local calendar
// month of completion.
func (uc *GoalsUseCase) GetAchievementsByMonth(ctx context.Context, userID string, month time.Month, year int) ([]domain.Achievement, error) {
	if month < time.January || month > time.December {
		return nil, domain.ErrInvalidInput
	}
	state, err := uc.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	loc := uc.clock.Location()
	out := []domain.Achievement{}
	for _, a := range state.Achievements {
		at := a.CompletedAt.In(loc)
		if at.Month() == month && at.Year() == year {
			out = append(out, a)
		}
	}
	return out, nil
}

// ResetDaily persists the day rollover for the given users. It backs the
// midnight job; users it misses are rolled over lazily on their next read.
func (uc *GoalsUseCase) ResetDaily(ctx context.Context, userIDs []string) error {
	var firstErr error
	for _, id := range userIDs {
		if _, err := uc.load(ctx, id); err != nil {
			uc.logger.Error("daily goal reset failed", "user_id", id, "error", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

package goals

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
	"github.com/alliyn/alliyn-backend/internal/repository/kvstore"
	"github.com/alliyn/alliyn-backend/internal/repository/memory"
)

type fixture struct {
	uc     *GoalsUseCase
	clock  *clock.Manual
	events []events.Event
}

func newFixture(t *testing.T, start time.Time, cfg Config) *fixture {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	f := &fixture{clock: clock.NewManual(start)}

	bus := events.NewBus()
	bus.Subscribe(func(_ context.Context, e events.Event) {
		f.events = append(f.events, e)
	})

	repo := kvstore.NewGoalRepository(memory.NewKeyValueStore(), logger)
	f.uc = NewGoalsUseCase(repo, f.clock, bus, cfg, logger)
	return f
}

func (f *fixture) count(typ events.Type) int {
	n := 0
	for _, e := range f.events {
		if e.Type() == typ {
			n++
		}
	}
	return n
}

func defaultConfig() Config {
	return Config{DiscountThreshold: 175, MonthlyReset: true}
}

func mustUpdate(t *testing.T, uc *GoalsUseCase, category domain.GoalCategory, amount int) []domain.Achievement {
	t.Helper()
	got, err := uc.UpdateProgress(context.Background(), "u1", category, amount)
	if err != nil {
		t.Fatalf("UpdateProgress(%s, %d): %v", category, amount, err)
	}
	return got
}

func TestCompletedGoalEmitsOneAchievement(t *testing.T) {
	f := newFixture(t, time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC), defaultConfig())
	ctx := context.Background()

	if got := mustUpdate(t, f.uc, domain.CategorySwipes, 9); len(got) != 0 {
		t.Fatalf("expected no achievement yet, got %d", len(got))
	}
	got := mustUpdate(t, f.uc, domain.CategorySwipes, 5)
	if len(got) != 1 || got[0].GoalID != "daily-swipes" || got[0].Points != 7 {
		t.Fatalf("unexpected achievements %+v", got)
	}
	if got := mustUpdate(t, f.uc, domain.CategorySwipes, 3); len(got) != 0 {
		t.Fatalf("completed goal produced another achievement: %+v", got)
	}

	board, err := f.uc.GetGoals(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	for _, g := range board.DailyGoals {
		if g.Current > g.Target {
			t.Fatalf("goal %s current %d exceeds target %d", g.ID, g.Current, g.Target)
		}
	}
	if board.TotalPoints != 7 || board.MonthlyPoints != 7 {
		t.Fatalf("points = %d/%d", board.TotalPoints, board.MonthlyPoints)
	}
	if f.count(events.TypeGoalCompleted) != 1 {
		t.Fatalf("expected one GoalCompleted event, got %d", f.count(events.TypeGoalCompleted))
	}
}

func TestGetProgress(t *testing.T) {
	f := newFixture(t, time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC), defaultConfig())
	ctx := context.Background()

	mustUpdate(t, f.uc, domain.CategoryMessages, 1)

	first, err := f.uc.GetProgress(ctx, "u1", "daily-messages")
	if err != nil {
		t.Fatal(err)
	}
	second, _ := f.uc.GetProgress(ctx, "u1", "daily-messages")
	if first != second {
		t.Fatalf("progress changed between reads: %v vs %v", first, second)
	}
	if first < 33.3 || first > 33.4 {
		t.Fatalf("progress = %v", first)
	}

	monthly, _ := f.uc.GetProgress(ctx, "u1", "monthly-messages")
	if monthly != 2 {
		t.Fatalf("monthly progress = %v", monthly)
	}

	if _, err := f.uc.GetProgress(ctx, "u1", "nope"); !errors.Is(err, domain.ErrGoalNotFound) {
		t.Fatalf("expected ErrGoalNotFound, got %v", err)
	}
}

func TestDiscountGrantedExactlyOnce(t *testing.T) {
	f := newFixture(t, time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC), defaultConfig())
	ctx := context.Background()

	// day one: every goal once, 131 points
	mustUpdate(t, f.uc, domain.CategorySwipes, 10)
	mustUpdate(t, f.uc, domain.CategoryMatches, 25)
	mustUpdate(t, f.uc, domain.CategoryMessages, 50)
	mustUpdate(t, f.uc, domain.CategoryDeals, 5)
	mustUpdate(t, f.uc, domain.CategoryProfile, 3)

	// day two: daily goals again, 156 points
	f.clock.Advance(24 * time.Hour)
	mustUpdate(t, f.uc, domain.CategorySwipes, 10)
	mustUpdate(t, f.uc, domain.CategoryMatches, 2)
	mustUpdate(t, f.uc, domain.CategoryMessages, 3)
	if f.count(events.TypePremiumDiscountEarned) != 0 {
		t.Fatal("discount granted below threshold")
	}

	// day three crosses 175
	f.clock.Advance(24 * time.Hour)
	mustUpdate(t, f.uc, domain.CategorySwipes, 10)
	mustUpdate(t, f.uc, domain.CategoryMatches, 2)
	mustUpdate(t, f.uc, domain.CategoryMessages, 3)
	if f.count(events.TypePremiumDiscountEarned) != 1 {
		t.Fatalf("expected one discount event, got %d", f.count(events.TypePremiumDiscountEarned))
	}

	f.clock.Advance(24 * time.Hour)
	mustUpdate(t, f.uc, domain.CategorySwipes, 10)
	mustUpdate(t, f.uc, domain.CategoryMessages, 3)
	if f.count(events.TypePremiumDiscountEarned) != 1 {
		t.Fatalf("discount granted again: %d events", f.count(events.TypePremiumDiscountEarned))
	}

	board, _ := f.uc.GetGoals(ctx, "u1")
	if !board.HasPremiumDiscount || board.DiscountExpiresAt == nil {
		t.Fatal("discount not active")
	}
	want := time.Date(2026, 11, 3, 9, 0, 0, 0, time.UTC)
	if !board.DiscountExpiresAt.Equal(want) {
		t.Fatalf("discount expires %v, want %v", board.DiscountExpiresAt, want)
	}
}

func TestDailyRolloverAtMidnight(t *testing.T) {
	f := newFixture(t, time.Date(2026, 10, 16, 23, 0, 0, 0, time.UTC), defaultConfig())
	ctx := context.Background()

	mustUpdate(t, f.uc, domain.CategorySwipes, 10)
	mustUpdate(t, f.uc, domain.CategoryMessages, 4)

	f.clock.Advance(2 * time.Hour)
	if err := f.uc.ResetDaily(ctx, []string{"u1"}); err != nil {
		t.Fatal(err)
	}

	board, _ := f.uc.GetGoals(ctx, "u1")
	for _, g := range board.DailyGoals {
		if g.Current != 0 || g.Completed {
			t.Fatalf("daily goal %s not reset: %+v", g.ID, g)
		}
	}
	for _, g := range board.MonthlyGoals {
		if g.ID == "monthly-messages" && g.Current != 4 {
			t.Fatalf("monthly goal touched by daily reset: %+v", g)
		}
	}
	if board.TotalPoints != 7+8 {
		t.Fatalf("points lost on reset: %d", board.TotalPoints)
	}
}

func TestMonthlyRollover(t *testing.T) {
	tests := []struct {
		name        string
		reset       bool
		wantCurrent int
	}{
		{"monthly goals reset", true, 0},
		{"monthly goals persist", false, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			cfg.MonthlyReset = tt.reset
			f := newFixture(t, time.Date(2026, 10, 31, 12, 0, 0, 0, time.UTC), cfg)
			ctx := context.Background()

			mustUpdate(t, f.uc, domain.CategoryProfile, 3)
			f.clock.Advance(24 * time.Hour)

			board, _ := f.uc.GetGoals(ctx, "u1")
			if board.MonthlyPoints != 0 {
				t.Fatalf("monthly points = %d, want 0", board.MonthlyPoints)
			}
			if board.TotalPoints != 18 {
				t.Fatalf("total points = %d, want 18", board.TotalPoints)
			}
			for _, g := range board.MonthlyGoals {
				if g.ID == "monthly-profile" && g.Current != tt.wantCurrent {
					t.Fatalf("monthly-profile current = %d, want %d", g.Current, tt.wantCurrent)
				}
			}
		})
	}
}

func TestGetAchievementsByMonth(t *testing.T) {
	f := newFixture(t, time.Date(2026, 9, 30, 10, 0, 0, 0, time.UTC), defaultConfig())
	ctx := context.Background()

	mustUpdate(t, f.uc, domain.CategorySwipes, 10)
	f.clock.Advance(24 * time.Hour)
	mustUpdate(t, f.uc, domain.CategorySwipes, 10)
	mustUpdate(t, f.uc, domain.CategoryMatches, 2)

	sept, err := f.uc.GetAchievementsByMonth(ctx, "u1", time.September, 2026)
	if err != nil {
		t.Fatal(err)
	}
	oct, _ := f.uc.GetAchievementsByMonth(ctx, "u1", time.October, 2026)
	if len(sept) != 1 || len(oct) != 2 {
		t.Fatalf("september=%d october=%d", len(sept), len(oct))
	}
	if _, err := f.uc.GetAchievementsByMonth(ctx, "u1", 13, 2026); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestUpdateProgressRejectsBadInput(t *testing.T) {
	f := newFixture(t, time.Now(), defaultConfig())
	ctx := context.Background()

	if _, err := f.uc.UpdateProgress(ctx, "u1", "karma", 1); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for category, got %v", err)
	}
	if _, err := f.uc.UpdateProgress(ctx, "u1", domain.CategorySwipes, 0); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for amount, got %v", err)
	}
}

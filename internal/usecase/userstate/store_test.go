package userstate

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alliyn/alliyn-backend/internal/domain"
	"github.com/alliyn/alliyn-backend/internal/infrastructure/clock"
	"github.com/alliyn/alliyn-backend/internal/repository/kvstore"
	"github.com/alliyn/alliyn-backend/internal/repository/memory"
)

func TestLoadRollsOverDailyCounters(t *testing.T) {
	ctx := context.Background()
	clk := clock.NewManual(time.Date(2026, 10, 16, 22, 0, 0, 0, time.UTC))
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s := NewStore(kvstore.NewUserRepository(memory.NewKeyValueStore(), logger), clk)

	if err := s.Create(ctx, &domain.User{ID: "u1", AccountType: domain.AccountFree}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Update(ctx, "u1", func(u *domain.User) error {
		u.DailySwipes = 7
		u.DailyMatches = 2
		u.TotalMatches = 2
		return nil
	}); err != nil {
		t.Fatal(err)
	}

	u, err := s.Load(ctx, "u1")
	if err != nil || u.DailySwipes != 7 {
		t.Fatalf("same day: %+v, %v", u, err)
	}

	clk.Advance(3 * time.Hour)
	u, err = s.Load(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if u.DailySwipes != 0 || u.DailyMatches != 0 || u.TotalMatches != 2 {
		t.Fatalf("after midnight: %+v", u)
	}
	if u.LastResetDate != "2026-10-17" {
		t.Fatalf("last reset = %q", u.LastResetDate)
	}
}

func TestUpdateLeavesUserUntouchedOnError(t *testing.T) {
	ctx := context.Background()
	clk := clock.NewManual(time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC))
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s := NewStore(kvstore.NewUserRepository(memory.NewKeyValueStore(), logger), clk)

	if err := s.Create(ctx, &domain.User{ID: "u1"}); err != nil {
		t.Fatal(err)
	}
	_, err := s.Update(ctx, "u1", func(u *domain.User) error {
		u.TotalDeals = 5
		return domain.ErrInvalidInput
	})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("err = %v", err)
	}

	u, _ := s.Load(ctx, "u1")
	if u.TotalDeals != 0 {
		t.Fatalf("total deals = %d, want 0", u.TotalDeals)
	}
}

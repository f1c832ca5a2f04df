package kvstore

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/alliyn/alliyn-backend/internal/domain"
	"github.com/alliyn/alliyn-backend/internal/repository/memory"
)

func testLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, nil))
}

func TestGoalRepositoryCorruptStateFallsBack(t *testing.T) {
	ctx := context.Background()
	kv := memory.NewKeyValueStore()
	var logs bytes.Buffer
	repo := NewGoalRepository(kv, testLogger(&logs))

	if err := kv.Set(ctx, goalKeyPrefix+"u1", "{not json"); err != nil {
		t.Fatal(err)
	}

	state, err := repo.Get(ctx, "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(state.DailyGoals) != len(domain.DefaultDailyGoals()) {
		t.Fatalf("expected default daily goals, got %d", len(state.DailyGoals))
	}
	if state.TotalPoints != 0 {
		t.Fatalf("expected zero points, got %d", state.TotalPoints)
	}
	if !strings.Contains(logs.String(), "corrupt") {
		t.Fatalf("expected a warning, logs: %q", logs.String())
	}
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	var logs bytes.Buffer
	repo := NewUserRepository(memory.NewKeyValueStore(), testLogger(&logs))

	if _, err := repo.GetByID(ctx, "missing"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}

	for _, id := range []string{"a", "b", "a"} {
		if err := repo.Create(ctx, &domain.User{ID: id, AccountType: domain.AccountFree}); err != nil {
			t.Fatal(err)
		}
	}
	ids, err := repo.ListIDs(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 2 || ids[0] != "a" || ids[1] != "b" {
		t.Fatalf("unexpected index %v", ids)
	}

	u, err := repo.GetByID(ctx, "b")
	if err != nil {
		t.Fatal(err)
	}
	u.DailySwipes = 7
	if err := repo.Update(ctx, u); err != nil {
		t.Fatal(err)
	}
	u, _ = repo.GetByID(ctx, "b")
	if u.DailySwipes != 7 {
		t.Fatalf("update lost, got %d", u.DailySwipes)
	}
}

func TestSwipeRepository(t *testing.T) {
	ctx := context.Background()
	var logs bytes.Buffer
	repo := NewSwipeRepository(memory.NewKeyValueStore(), testLogger(&logs))

	for _, id := range []int{3, 1, 3} {
		if err := repo.Add(ctx, "u", id); err != nil {
			t.Fatal(err)
		}
	}
	ids, _ := repo.GetSwipedIDs(ctx, "u")
	if len(ids) != 2 {
		t.Fatalf("expected 2 ids, got %v", ids)
	}

	if err := repo.Remove(ctx, "u", 3); err != nil {
		t.Fatal(err)
	}
	if err := repo.Remove(ctx, "u", 42); err != nil {
		t.Fatal(err)
	}
	ids, _ = repo.GetSwipedIDs(ctx, "u")
	if len(ids) != 1 || ids[0] != 1 {
		t.Fatalf("after remove = %v", ids)
	}
	repo.Add(ctx, "u", 3)

	n, err := repo.Reset(ctx, "u")
	if err != nil || n != 2 {
		t.Fatalf("Reset = %d, %v", n, err)
	}
	ids, _ = repo.GetSwipedIDs(ctx, "u")
	if len(ids) != 0 {
		t.Fatalf("expected empty history, got %v", ids)
	}
}

func TestMatchRepositoryNewestFirst(t *testing.T) {
	ctx := context.Background()
	var logs bytes.Buffer
	repo := NewMatchRepository(memory.NewKeyValueStore(), testLogger(&logs))

	for i, pid := range []int{4, 9} {
		m := &domain.Match{ID: []string{"m1", "m2"}[i], UserID: "u", Profile: domain.Profile{ID: pid}}
		if err := repo.Create(ctx, m); err != nil {
			t.Fatal(err)
		}
	}

	matches, _ := repo.GetUserMatches(ctx, "u")
	if len(matches) != 2 || matches[0].ID != "m2" {
		t.Fatalf("expected newest first, got %+v", matches)
	}
	if _, err := repo.GetByProfile(ctx, "u", 4); err != nil {
		t.Fatalf("GetByProfile: %v", err)
	}
	if _, err := repo.GetByProfile(ctx, "u", 5); !errors.Is(err, domain.ErrMatchNotFound) {
		t.Fatalf("expected ErrMatchNotFound, got %v", err)
	}

	if err := repo.Delete(ctx, "u", "m2"); err != nil {
		t.Fatal(err)
	}
	if err := repo.Delete(ctx, "u", "m2"); !errors.Is(err, domain.ErrMatchNotFound) {
		t.Fatalf("second delete err = %v", err)
	}
	matches, _ = repo.GetUserMatches(ctx, "u")
	if len(matches) != 1 || matches[0].ID != "m1" {
		t.Fatalf("after delete = %+v", matches)
	}
}

func TestWalletRepositoryStartingBalance(t *testing.T) {
	ctx := context.Background()
	var logs bytes.Buffer
	repo := NewWalletRepository(memory.NewKeyValueStore(), testLogger(&logs), 12475)

	w, err := repo.Get(ctx, "u")
	if err != nil {
		t.Fatal(err)
	}
	if w.Balance != 12475 || w.StartingBalance != 12475 || len(w.Transactions) != 0 {
		t.Fatalf("unexpected fresh wallet %+v", w)
	}
}

func TestDealRepositoryUpdateUnknown(t *testing.T) {
	ctx := context.Background()
	var logs bytes.Buffer
	repo := NewDealRepository(memory.NewKeyValueStore(), testLogger(&logs))

	err := repo.Update(ctx, &domain.Deal{ID: "nope", UserID: "u"})
	if !errors.Is(err, domain.ErrDealNotFound) {
		t.Fatalf("expected ErrDealNotFound, got %v", err)
	}
}

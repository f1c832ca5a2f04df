package wallet

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"testing"
	"time"

	"github.com/alliyn/alliyn-backend/internal/domain"
	"github.com/alliyn/alliyn-backend/internal/infrastructure/clock"
	"github.com/alliyn/alliyn-backend/internal/repository/kvstore"
	"github.com/alliyn/alliyn-backend/internal/repository/memory"
	"github.com/alliyn/alliyn-backend/internal/usecase/userstate"
)

const startingCoins = 12475

func newWallet(t *testing.T) (*WalletUseCase, *userstate.Store) {
	t.Helper()
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	kv := memory.NewKeyValueStore()
	clk := clock.NewManual(time.Date(2026, 10, 16, 10, 0, 0, 0, time.UTC))

	users := userstate.NewStore(kvstore.NewUserRepository(kv, logger), clk)
	if err := users.Create(ctx, &domain.User{
		ID:             "u1",
		AccountType:    domain.AccountFree,
		UnlockedThemes: []string{domain.ThemeDefault, domain.ThemeCity},
	}); err != nil {
		t.Fatal(err)
	}

	matches := kvstore.NewMatchRepository(kv, logger)
	if err := matches.Create(ctx, &domain.Match{
		ID:      "m1",
		UserID:  "u1",
		Profile: domain.Profile{ID: 10, Name: "Sarah Johnson"},
	}); err != nil {
		t.Fatal(err)
	}

	uc := NewWalletUseCase(
		kvstore.NewWalletRepository(kv, logger, startingCoins),
		matches,
		users,
		Config{RecipientShare: 0.7},
		logger,
	)
	return uc, users
}

func TestCatalogPrices(t *testing.T) {
	c := NewCatalog()
	if len(c.Gifts) != 5 || len(c.ProfileCards) != 4 {
		t.Fatalf("catalog sizes = %d/%d", len(c.Gifts), len(c.ProfileCards))
	}
	coffee, ok := find(c.Gifts, "coffee")
	if !ok || coffee.Coins != 104 || coffee.Dollars != 10.4 || coffee.Kind != KindGift {
		t.Fatalf("coffee = %+v", coffee)
	}
	bag, _ := find(c.Gifts, "money-bag")
	if !bag.IsCustom {
		t.Fatal("money bag should take a custom amount")
	}
}

func TestSendGift(t *testing.T) {
	uc, _ := newWallet(t)
	ctx := context.Background()

	res, err := uc.SendGift(ctx, "u1", &GiftRequest{ProductID: "dinner", MatchID: "m1"})
	if err != nil {
		t.Fatal(err)
	}
	if res.Balance != startingCoins-520 {
		t.Errorf("balance = %d", res.Balance)
	}
	if res.RecipientCoins != 364 {
		t.Errorf("recipient coins = %d, want 364", res.RecipientCoins)
	}
	tx := res.Transaction
	if tx.Description != "Gift Sent - Dinner for Two to Sarah Johnson" || tx.Amount != -520 || tx.DollarAmount != -52 || tx.IsPositive {
		t.Errorf("transaction = %+v", tx)
	}

	w, err := uc.GetWallet(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(w.Transactions) != 1 || w.Transactions[0].ID != tx.ID {
		t.Errorf("ledger = %+v", w.Transactions)
	}
}

func TestSendGiftErrors(t *testing.T) {
	uc, _ := newWallet(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  GiftRequest
		want error
	}{
		{"unknown product", GiftRequest{ProductID: "yacht", MatchID: "m1"}, domain.ErrProductNotFound},
		{"not a match", GiftRequest{ProductID: "coffee", MatchID: "nope"}, domain.ErrNotMatched},
		{"custom without amount", GiftRequest{ProductID: "money-bag", MatchID: "m1"}, domain.ErrInvalidInput},
		{"custom above balance", GiftRequest{ProductID: "money-bag", MatchID: "m1", CustomCoins: startingCoins + 1}, domain.ErrInsufficientCoins},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := uc.SendGift(ctx, "u1", &tt.req); !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}

	w, _ := uc.GetWallet(ctx, "u1")
	if w.Balance != startingCoins || len(w.Transactions) != 0 {
		t.Fatalf("failed gifts changed the wallet: %+v", w)
	}
}

func TestBuyProfileCard(t *testing.T) {
	uc, users := newWallet(t)
	ctx := context.Background()

	res, err := uc.BuyProfileCard(ctx, "u1", &ProfileCardRequest{CardID: domain.ThemeFlower})
	if err != nil {
		t.Fatal(err)
	}
	if res.Balance != startingCoins-100 || res.Transaction.Type != domain.TxProfileCard {
		t.Errorf("result = %+v", res)
	}
	user, _ := users.Load(ctx, "u1")
	if !user.HasTheme(domain.ThemeFlower) {
		t.Errorf("flower not unlocked: %v", user.UnlockedThemes)
	}

	if _, err := uc.BuyProfileCard(ctx, "u1", &ProfileCardRequest{CardID: domain.ThemeFlower}); !errors.Is(err, domain.ErrThemeAlreadyUnlocked) {
		t.Fatalf("second purchase err = %v", err)
	}
	if _, err := uc.BuyProfileCard(ctx, "u1", &ProfileCardRequest{CardID: "space"}); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("unknown card err = %v", err)
	}

	w, _ := uc.GetWallet(ctx, "u1")
	if w.Balance != startingCoins-100 || len(w.Transactions) != 1 {
		t.Fatalf("rejected purchases changed the wallet: %+v", w)
	}
}

func TestDepositAndWithdraw(t *testing.T) {
	uc, _ := newWallet(t)
	ctx := context.Background()

	tx, err := uc.Deposit(ctx, "u1", 12.5)
	if err != nil {
		t.Fatal(err)
	}
	if tx.Amount != 125 || !tx.IsPositive || tx.Description != "Deposited $12.50" {
		t.Errorf("deposit = %+v", tx)
	}

	if _, err := uc.Withdraw(ctx, "u1", 10000); !errors.Is(err, domain.ErrInsufficientCoins) {
		t.Fatalf("overdraw err = %v", err)
	}
	if _, err := uc.Withdraw(ctx, "u1", 0.01); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("sub-coin withdrawal err = %v", err)
	}

	tx, err = uc.Withdraw(ctx, "u1", 100)
	if err != nil {
		t.Fatal(err)
	}
	if tx.Amount != -1000 {
		t.Errorf("withdraw amount = %d", tx.Amount)
	}

	w, _ := uc.GetWallet(ctx, "u1")
	if w.Balance != startingCoins+125-1000 {
		t.Errorf("balance = %d", w.Balance)
	}
	// newest first
	if w.Transactions[0].Type != domain.TxWithdrawal || w.Transactions[1].Type != domain.TxDeposit {
		t.Errorf("order = %s, %s", w.Transactions[0].Type, w.Transactions[1].Type)
	}
}

func TestTransfersAreBounded(t *testing.T) {
	uc, _ := newWallet(t)
	ctx := context.Background()

	for _, dollars := range []float64{5e17, MaxTransferDollars + 0.01} {
		if _, err := uc.Deposit(ctx, "u1", dollars); !errors.Is(err, domain.ErrInvalidInput) {
			t.Errorf("Deposit(%g) err = %v", dollars, err)
		}
		if _, err := uc.Withdraw(ctx, "u1", dollars); !errors.Is(err, domain.ErrInvalidInput) {
			t.Errorf("Withdraw(%g) err = %v", dollars, err)
		}
	}

	tx, err := uc.Deposit(ctx, "u1", MaxTransferDollars)
	if err != nil {
		t.Fatal(err)
	}
	if tx.Amount != MaxTransferDollars*domain.CoinsPerDollar {
		t.Errorf("max deposit amount = %d", tx.Amount)
	}

	// a balance at the top of the range cannot be pushed past it
	w, err := uc.repo.Get(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	w.Balance = math.MaxInt64 - 5
	if err := uc.repo.Save(ctx, "u1", w); err != nil {
		t.Fatal(err)
	}
	if _, err := uc.Deposit(ctx, "u1", 1); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("overflowing deposit err = %v", err)
	}
	got, _ := uc.GetWallet(ctx, "u1")
	if got.Balance != math.MaxInt64-5 {
		t.Errorf("balance changed to %d", got.Balance)
	}
}

// Package wallet keeps each user's coin ledger and runs the shop.
package wallet

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/alliyn/alliyn-backend/internal/domain"
	"github.com/alliyn/alliyn-backend/internal/infrastructure/keylock"
	"github.com/alliyn/alliyn-backend/internal/repository"
	"github.com/alliyn/alliyn-backend/internal/usecase/userstate"
	"github.com/google/uuid"
)

type Config struct {
	// share of a gift's coins credited to the recipient, rounded down
	RecipientShare float64
}

type WalletUseCase struct {
	repo      repository.WalletRepository
	matchRepo repository.MatchRepository
	users     *userstate.Store
	catalog   Catalog
	cfg       Config
	logger    *slog.Logger
	locks     *keylock.Locker
}

func NewWalletUseCase(
	repo repository.WalletRepository,
	matchRepo repository.MatchRepository,
	users *userstate.Store,
	cfg Config,
	logger *slog.Logger,
) *WalletUseCase {
	return &WalletUseCase{
		repo:      repo,
		matchRepo: matchRepo,
		users:     users,
		catalog:   NewCatalog(),
		cfg:       cfg,
		logger:    logger,
		locks:     keylock.New(),
	}
}

type WalletResponse struct {
	Balance       int64                `json:"balance"`
	DollarBalance float64              `json:"dollar_balance"`
	Transactions  []domain.Transaction `json:"transactions"`
}

// GiftRequest sends a catalog gift to one of the user's matches.
type GiftRequest struct {
	ProductID   string `json:"product_id" binding:"required"`
	MatchID     string `json:"match_id" binding:"required"`
	CustomCoins int64  `json:"custom_coins" binding:"gte=0"`
}

type GiftResponse struct {
	Transaction    domain.Transaction `json:"transaction"`
	RecipientName  string             `json:"recipient_name"`
	RecipientCoins int64              `json:"recipient_coins"`
	Balance        int64              `json:"balance"`
}

type ProfileCardRequest struct {
	CardID string `json:"card_id" binding:"required"`
}

type ProfileCardResponse struct {
	Transaction    domain.Transaction `json:"transaction"`
	UnlockedThemes []string           `json:"unlocked_themes"`
	Balance        int64              `json:"balance"`
}

// MaxTransferDollars caps a single deposit or withdrawal.
const MaxTransferDollars = 1_000_000

// AmountRequest carries a dollar amount for deposits and withdrawals.
type AmountRequest struct {
	Dollars float64 `json:"dollars" binding:"required,gt=0,lte=1000000"`
}

func (uc *WalletUseCase) Catalog() Catalog {
	return uc.catalog
}

func (uc *WalletUseCase) GetWallet(ctx context.Context, userID string) (*WalletResponse, error) {
	w, err := uc.repo.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load wallet: %w", err)
	}
	return &WalletResponse{
		Balance:       w.Balance,
		DollarBalance: domain.DollarsFor(w.Balance),
		Transactions:  w.Transactions,
	}, nil
}

// Charge debits coins from the wallet. It fails with ErrInsufficientCoins
// and leaves the wallet untouched when the balance does not cover it.
func (uc *WalletUseCase) Charge(ctx context.Context, userID string, txType domain.TransactionType, description string, coins int64) (*domain.Transaction, error) {
	return uc.record(ctx, userID, txType, description, -coins, nil)
}

// record applies a signed amount under the wallet lock. before runs inside
// the lock, after the balance check and before the wallet is saved.
func (uc *WalletUseCase) record(ctx context.Context, userID string, txType domain.TransactionType, description string, amount int64, before func() error) (*domain.Transaction, error) {
	if !txType.IsValid() || amount == 0 {
		return nil, domain.ErrInvalidInput
	}

	unlock := uc.locks.Lock(userID)
	defer unlock()

	w, err := uc.repo.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load wallet: %w", err)
	}
	if amount > 0 && w.Balance > math.MaxInt64-amount {
		return nil, fmt.Errorf("%w: balance would overflow", domain.ErrInvalidInput)
	}
	if w.Balance+amount < 0 {
		return nil, domain.ErrInsufficientCoins
	}
	if before != nil {
		if err := before(); err != nil {
			return nil, err
		}
	}

	tx := domain.Transaction{
		ID:           uuid.NewString(),
		Type:         txType,
		Description:  description,
		Amount:       amount,
		DollarAmount: domain.DollarsFor(amount),
		Timestamp:    uc.users.Clock().Now(),
		IsPositive:   amount > 0,
	}
	w.Transactions = append([]domain.Transaction{tx}, w.Transactions...)
	w.Balance += amount

	if err := uc.repo.Save(ctx, userID, w); err != nil {
		return nil, fmt.Errorf("failed to save wallet: %w", err)
	}
	return &tx, nil
}

// SendGift debits the gift price and simulates the recipient's credit.
func (uc *WalletUseCase) SendGift(ctx context.Context, userID string, req *GiftRequest) (*GiftResponse, error) {
	product, ok := find(uc.catalog.Gifts, req.ProductID)
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	coins := product.Coins
	if product.IsCustom {
		coins = req.CustomCoins
	}
	if coins <= 0 {
		return nil, domain.ErrInvalidInput
	}

	match, err := uc.matchRepo.GetByID(ctx, userID, req.MatchID)
	if errors.Is(err, domain.ErrMatchNotFound) {
		return nil, domain.ErrNotMatched
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load match: %w", err)
	}

	description := fmt.Sprintf("Gift Sent - %s to %s", product.Name, match.Profile.Name)
	tx, err := uc.Charge(ctx, userID, domain.TxGiftSent, description, coins)
	if err != nil {
		return nil, err
	}

	recipientCoins := int64(math.Floor(float64(coins) * uc.cfg.RecipientShare))
	uc.logger.Info("gift sent",
		"user_id", userID, "product", product.ID, "coins", coins,
		"recipient_profile_id", match.Profile.ID, "recipient_coins", recipientCoins)

	w, err := uc.repo.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load wallet: %w", err)
	}
	return &GiftResponse{
		Transaction:    *tx,
		RecipientName:  match.Profile.Name,
		RecipientCoins: recipientCoins,
		Balance:        w.Balance,
	}, nil
}

// BuyProfileCard debits the card price and unlocks its theme.
func (uc *WalletUseCase) BuyProfileCard(ctx context.Context, userID string, req *ProfileCardRequest) (*ProfileCardResponse, error) {
	card, ok := find(uc.catalog.ProfileCards, req.CardID)
	if !ok {
		return nil, domain.ErrProductNotFound
	}

	var unlocked []string
	tx, err := uc.record(ctx, userID, domain.TxProfileCard, "Profile Card - "+card.Name, -card.Coins, func() error {
		user, err := uc.users.Update(ctx, userID, func(u *domain.User) error {
			if u.HasTheme(card.ID) {
				return domain.ErrThemeAlreadyUnlocked
			}
			u.UnlockedThemes = append(u.UnlockedThemes, card.ID)
			return nil
		})
		if err != nil {
			return err
		}
		unlocked = user.UnlockedThemes
		return nil
	})
	if err != nil {
		return nil, err
	}

	w, err := uc.repo.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load wallet: %w", err)
	}
	return &ProfileCardResponse{Transaction: *tx, UnlockedThemes: unlocked, Balance: w.Balance}, nil
}

// transferCoins converts a deposit or withdrawal amount to whole coins.
func transferCoins(dollars float64) (int64, error) {
	if dollars > MaxTransferDollars {
		return 0, fmt.Errorf("%w: at most $%d per transfer", domain.ErrInvalidInput, MaxTransferDollars)
	}
	coins := int64(math.Round(dollars * domain.CoinsPerDollar))
	if coins <= 0 {
		return 0, domain.ErrInvalidInput
	}
	return coins, nil
}

func (uc *WalletUseCase) Deposit(ctx context.Context, userID string, dollars float64) (*domain.Transaction, error) {
	coins, err := transferCoins(dollars)
	if err != nil {
		return nil, err
	}
	return uc.record(ctx, userID, domain.TxDeposit, fmt.Sprintf("Deposited $%.2f", dollars), coins, nil)
}

func (uc *WalletUseCase) Withdraw(ctx context.Context, userID string, dollars float64) (*domain.Transaction, error) {
	coins, err := transferCoins(dollars)
	if err != nil {
		return nil, err
	}
	return uc.Charge(ctx, userID, domain.TxWithdrawal, fmt.Sprintf("Withdrew $%.2f", dollars), coins)
}

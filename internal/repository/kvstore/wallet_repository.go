package kvstore

import (
	"context"
	"log/slog"

	"github.com/alliyn/alliyn-backend/internal/domain"
	"github.com/alliyn/alliyn-backend/internal/repository"
)

type walletRepository struct {
	codec         codec
	startingCoins int64
}

// NewWalletRepository returns a repository whose absent wallets start with
// startingCoins and an empty transaction log.
func NewWalletRepository(kv repository.KeyValueStore, logger *slog.Logger, startingCoins int64) repository.WalletRepository {
	return &walletRepository{codec: codec{kv: kv, logger: logger}, startingCoins: startingCoins}
}

func (r *walletRepository) fresh() *domain.Wallet {
	return &domain.Wallet{
		StartingBalance: r.startingCoins,
		Balance:         r.startingCoins,
		Transactions:    []domain.Transaction{},
	}
}

func (r *walletRepository) Get(ctx context.Context, userID string) (*domain.Wallet, error) {
	w, err := load(ctx, r.codec, walletKeyPrefix+userID, r.fresh)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return r.fresh(), nil
	}
	return w, nil
}

func (r *walletRepository) Save(ctx context.Context, userID string, wallet *domain.Wallet) error {
	return save(ctx, r.codec, walletKeyPrefix+userID, wallet)
}

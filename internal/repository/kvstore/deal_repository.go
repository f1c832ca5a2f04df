package kvstore

import (
	"context"
	"log/slog"

	"github.com/alliyn/alliyn-backend/internal/domain"
	"github.com/alliyn/alliyn-backend/internal/repository"
)

type dealRepository struct {
	codec codec
}

func NewDealRepository(kv repository.KeyValueStore, logger *slog.Logger) repository.DealRepository {
	return &dealRepository{codec: codec{kv: kv, logger: logger}}
}

func emptyDeals() []*domain.Deal { return []*domain.Deal{} }

func (r *dealRepository) Create(ctx context.Context, deal *domain.Deal) error {
	deals, err := r.GetUserDeals(ctx, deal.UserID)
	if err != nil {
		return err
	}
	deals = append([]*domain.Deal{deal}, deals...)
	return save(ctx, r.codec, dealKeyPrefix+deal.UserID, deals)
}

func (r *dealRepository) Update(ctx context.Context, deal *domain.Deal) error {
	deals, err := r.GetUserDeals(ctx, deal.UserID)
	if err != nil {
		return err
	}
	for i, d := range deals {
		if d.ID == deal.ID {
			deals[i] = deal
			return save(ctx, r.codec, dealKeyPrefix+deal.UserID, deals)
		}
	}
	return domain.ErrDealNotFound
}

func (r *dealRepository) GetByID(ctx context.Context, userID, dealID string) (*domain.Deal, error) {
	deals, err := r.GetUserDeals(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, d := range deals {
		if d.ID == dealID {
			return d, nil
		}
	}
	return nil, domain.ErrDealNotFound
}

func (r *dealRepository) GetUserDeals(ctx context.Context, userID string) ([]*domain.Deal, error) {
	return load(ctx, r.codec, dealKeyPrefix+userID, emptyDeals)
}

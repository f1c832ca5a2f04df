package kvstore

import (
	"context"
	"log/slog"

	"github.com/alliyn/alliyn-backend/internal/domain"
	"github.com/alliyn/alliyn-backend/internal/repository"
)

type goalRepository struct {
	codec codec
}

func NewGoalRepository(kv repository.KeyValueStore, logger *slog.Logger) repository.GoalRepository {
	return &goalRepository{codec: codec{kv: kv, logger: logger}}
}

func (r *goalRepository) Get(ctx context.Context, userID string) (*domain.GoalState, error) {
	state, err := load(ctx, r.codec, goalKeyPrefix+userID, domain.NewGoalState)
	if err != nil {
		return nil, err
	}
	if state == nil {
		return domain.NewGoalState(), nil
	}
	return state, nil
}

func (r *goalRepository) Save(ctx context.Context, userID string, state *domain.GoalState) error {
	return save(ctx, r.codec, goalKeyPrefix+userID, state)
}

package kvstore

import (
	"context"
	"log/slog"
	"sync"

	"github.com/alliyn/alliyn-backend/internal/domain"
	"github.com/alliyn/alliyn-backend/internal/repository"
)

type userRepository struct {
	codec codec
	// guards the users index read-modify-write
	mu sync.Mutex
}

func NewUserRepository(kv repository.KeyValueStore, logger *slog.Logger) repository.UserRepository {
	return &userRepository{codec: codec{kv: kv, logger: logger}}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	if err := save(ctx, r.codec, userKeyPrefix+user.ID, user); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	ids, err := load(ctx, r.codec, usersIndexKey, func() []string { return []string{} })
	if err != nil {
		return err
	}
	for _, id := range ids {
		if id == user.ID {
			return nil
		}
	}
	return save(ctx, r.codec, usersIndexKey, append(ids, user.ID))
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, err := load(ctx, r.codec, userKeyPrefix+id, func() *domain.User { return nil })
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	return save(ctx, r.codec, userKeyPrefix+user.ID, user)
}

func (r *userRepository) ListIDs(ctx context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return load(ctx, r.codec, usersIndexKey, func() []string { return []string{} })
}

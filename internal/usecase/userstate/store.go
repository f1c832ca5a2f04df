// Package userstate loads and saves user records under a per-user lock,
// applying any pending daily rollover on the way in.
package userstate

import (
	"context"
	"fmt"

	"github.com/alliyn/alliyn-backend/internal/domain"
	"github.com/alliyn/alliyn-backend/internal/infrastructure/clock"
	"github.com/alliyn/alliyn-backend/internal/infrastructure/keylock"
	"github.com/alliyn/alliyn-backend/internal/repository"
)

type Store struct {
	users repository.UserRepository
	clock clock.Clock
	locks *keylock.Locker
}

func NewStore(users repository.UserRepository, clk clock.Clock) *Store {
	return &Store{users: users, clock: clk, locks: keylock.New()}
}

// Lock serializes every mutation of one user record.
func (s *Store) Lock(userID string) func() {
	return s.locks.Lock(userID)
}

// Load returns the user with daily counters rolled over to today. The
// caller must hold Lock(userID) when it intends to save the result.
func (s *Store) Load(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.ResetDailyIfNeeded(clock.DayKey(s.clock.Now())) {
		if err := s.users.Update(ctx, user); err != nil {
			return nil, fmt.Errorf("failed to persist daily reset: %w", err)
		}
	}
	return user, nil
}

func (s *Store) Save(ctx context.Context, user *domain.User) error {
	return s.users.Update(ctx, user)
}

func (s *Store) Create(ctx context.Context, user *domain.User) error {
	user.LastResetDate = clock.DayKey(s.clock.Now())
	return s.users.Create(ctx, user)
}

func (s *Store) ListIDs(ctx context.Context) ([]string, error) {
	return s.users.ListIDs(ctx)
}

// Update loads the user under its lock, applies fn and saves the result.
func (s *Store) Update(ctx context.Context, userID string, fn func(*domain.User) error) (*domain.User, error) {
	unlock := s.Lock(userID)
	defer unlock()

	user, err := s.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := fn(user); err != nil {
		return nil, err
	}
	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to save user: %w", err)
	}
	return user, nil
}

func (s *Store) Clock() clock.Clock {
	return s.clock
}

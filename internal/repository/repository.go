package repository

import (
	"context"
	"errors"

	"github.com/alliyn/alliyn-backend/internal/domain"
)

// ErrKeyNotFound is returned by KeyValueStore.Get for absent keys.
var ErrKeyNotFound = errors.New("key not found")

// KeyValueStore is the opaque string store all session state lives in.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// ProfileRepository serves the candidate pool.
type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.Profile) error
	GetByID(ctx context.Context, id int) (*domain.Profile, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Profile, error)
	Update(ctx context.Context, profile *domain.Profile) error
	Delete(ctx context.Context, id int) error
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	ListIDs(ctx context.Context) ([]string, error)
}

// SwipeRepository keeps the per-user set of profile ids already swiped.
type SwipeRepository interface {
	GetSwipedIDs(ctx context.Context, userID string) ([]int, error)
	Add(ctx context.Context, userID string, profileID int) error
	Remove(ctx context.Context, userID string, profileID int) error
	Reset(ctx context.Context, userID string) (int, error)
}

type MatchRepository interface {
	Create(ctx context.Context, match *domain.Match) error
	GetUserMatches(ctx context.Context, userID string) ([]*domain.Match, error)
	GetByProfile(ctx context.Context, userID string, profileID int) (*domain.Match, error)
	GetByID(ctx context.Context, userID, matchID string) (*domain.Match, error)
	Delete(ctx context.Context, userID, matchID string) error
}

type GoalRepository interface {
	Get(ctx context.Context, userID string) (*domain.GoalState, error)
	Save(ctx context.Context, userID string, state *domain.GoalState) error
}

type InboxRepository interface {
	Get(ctx context.Context, userID string) (*domain.Inbox, error)
	Save(ctx context.Context, userID string, inbox *domain.Inbox) error
}

type WalletRepository interface {
	Get(ctx context.Context, userID string) (*domain.Wallet, error)
	Save(ctx context.Context, userID string, wallet *domain.Wallet) error
}

type DealRepository interface {
	Create(ctx context.Context, deal *domain.Deal) error
	Update(ctx context.Context, deal *domain.Deal) error
	GetByID(ctx context.Context, userID, dealID string) (*domain.Deal, error)
	GetUserDeals(ctx context.Context, userID string) ([]*domain.Deal, error)
}

// NotificationRepository stores the per-user feed, newest first.
type NotificationRepository interface {
	List(ctx context.Context, userID string) ([]domain.Notification, error)
	Save(ctx context.Context, userID string, feed []domain.Notification) error
}

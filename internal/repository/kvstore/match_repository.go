package kvstore

import (
	"context"
	"log/slog"

	"github.com/alliyn/alliyn-backend/internal/domain"
	"github.com/alliyn/alliyn-backend/internal/repository"
)

type matchRepository struct {
	codec codec
}

func NewMatchRepository(kv repository.KeyValueStore, logger *slog.Logger) repository.MatchRepository {
	return &matchRepository{codec: codec{kv: kv, logger: logger}}
}

func emptyMatches() []*domain.Match { return []*domain.Match{} }

// Create prepends the match so listings come back newest first.
func (r *matchRepository) Create(ctx context.Context, match *domain.Match) error {
	matches, err := r.GetUserMatches(ctx, match.UserID)
	if err != nil {
		return err
	}
	matches = append([]*domain.Match{match}, matches...)
	return save(ctx, r.codec, matchKeyPrefix+match.UserID, matches)
}

func (r *matchRepository) GetUserMatches(ctx context.Context, userID string) ([]*domain.Match, error) {
	return load(ctx, r.codec, matchKeyPrefix+userID, emptyMatches)
}

func (r *matchRepository) GetByProfile(ctx context.Context, userID string, profileID int) (*domain.Match, error) {
	matches, err := r.GetUserMatches(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, m := range matches {
		if m.Profile.ID == profileID {
			return m, nil
		}
	}
	return nil, domain.ErrMatchNotFound
}

func (r *matchRepository) GetByID(ctx context.Context, userID, matchID string) (*domain.Match, error) {
	matches, err := r.GetUserMatches(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, m := range matches {
		if m.ID == matchID {
			return m, nil
		}
	}
	return nil, domain.ErrMatchNotFound
}

func (r *matchRepository) Delete(ctx context.Context, userID, matchID string) error {
	matches, err := r.GetUserMatches(ctx, userID)
	if err != nil {
		return err
	}
	for i, m := range matches {
		if m.ID == matchID {
			matches = append(matches[:i], matches[i+1:]...)
			return save(ctx, r.codec, matchKeyPrefix+userID, matches)
		}
	}
	return domain.ErrMatchNotFound
}

package kvstore

import (
	"context"
	"log/slog"

	"github.com/alliyn/alliyn-backend/internal/repository"
)

type swipeRepository struct {
	codec codec
}

func NewSwipeRepository(kv repository.KeyValueStore, logger *slog.Logger) repository.SwipeRepository {
	return &swipeRepository{codec: codec{kv: kv, logger: logger}}
}

func emptyIDs() []int { return []int{} }

func (r *swipeRepository) GetSwipedIDs(ctx context.Context, userID string) ([]int, error) {
	return load(ctx, r.codec, swipesKeyPrefix+userID, emptyIDs)
}

// Add appends profileID to the history. Adding an id twice is a no-op.
func (r *swipeRepository) Add(ctx context.Context, userID string, profileID int) error {
	ids, err := r.GetSwipedIDs(ctx, userID)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if id == profileID {
			return nil
		}
	}
	return save(ctx, r.codec, swipesKeyPrefix+userID, append(ids, profileID))
}

// Remove drops profileID from the history. Removing an absent id is a no-op.
func (r *swipeRepository) Remove(ctx context.Context, userID string, profileID int) error {
	ids, err := r.GetSwipedIDs(ctx, userID)
	if err != nil {
		return err
	}
	kept := ids[:0]
	for _, id := range ids {
		if id != profileID {
			kept = append(kept, id)
		}
	}
	if len(kept) == len(ids) {
		return nil
	}
	return save(ctx, r.codec, swipesKeyPrefix+userID, kept)
}

// Reset clears the history and returns how many ids were removed.
func (r *swipeRepository) Reset(ctx context.Context, userID string) (int, error) {
	ids, err := r.GetSwipedIDs(ctx, userID)
	if err != nil {
		return 0, err
	}
	if err := r.codec.kv.Delete(ctx, swipesKeyPrefix+userID); err != nil {
		return 0, err
	}
	return len(ids), nil
}

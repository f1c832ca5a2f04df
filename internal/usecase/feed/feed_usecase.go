package feed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/alliyn/alliyn-backend/internal/domain"
	"github.com/alliyn/alliyn-backend/internal/repository"
	"github.com/alliyn/alliyn-backend/internal/usecase/compatibility"
	"github.com/alliyn/alliyn-backend/internal/usecase/userstate"
)

const defaultCandidateLimit = 20

type FeedUseCase struct {
	users       *userstate.Store
	profileRepo repository.ProfileRepository
	swipeRepo   repository.SwipeRepository
	matchRepo   repository.MatchRepository
	logger      *slog.Logger
}

func NewFeedUseCase(
	users *userstate.Store,
	profileRepo repository.ProfileRepository,
	swipeRepo repository.SwipeRepository,
	matchRepo repository.MatchRepository,
	logger *slog.Logger,
) *FeedUseCase {
	return &FeedUseCase{
		users:       users,
		profileRepo: profileRepo,
		swipeRepo:   swipeRepo,
		matchRepo:   matchRepo,
		logger:      logger,
	}
}

// FeedProfile is a candidate card together with how well it fits the viewer.
type FeedProfile struct {
	Profile       *domain.Profile      `json:"profile"`
	Compatibility domain.Compatibility `json:"compatibility"`
}

// ResetResponse reports how much swipe history was cleared.
type ResetResponse struct {
	Cleared int `json:"cleared"`
}

// GetNextProfile returns the first candidate the user has neither swiped
// nor matched.
func (uc *FeedUseCase) GetNextProfile(ctx context.Context, userID string) (*FeedProfile, error) {
	candidates, err := uc.GetCandidates(ctx, userID, 1)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, domain.ErrNoCandidates
	}
	return &candidates[0], nil
}

// GetCandidates lists up to limit unseen candidates in pool order.
func (uc *FeedUseCase) GetCandidates(ctx context.Context, userID string, limit int) ([]FeedProfile, error) {
	if limit <= 0 {
		limit = defaultCandidateLimit
	}

	unlock := uc.users.Lock(userID)
	user, err := uc.users.Load(ctx, userID)
	unlock()
	if err != nil {
		return nil, err
	}

	seen, err := uc.seenIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	profiles, err := uc.profileRepo.List(ctx, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}

	out := make([]FeedProfile, 0, limit)
	for _, p := range profiles {
		if seen[p.ID] || !p.IsActive {
			continue
		}
		if user.Profile != nil && user.Profile.ID == p.ID {
			continue
		}
		out = append(out, FeedProfile{Profile: p, Compatibility: compatibility.Score(user.Profile, p)})
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (uc *FeedUseCase) seenIDs(ctx context.Context, userID string) (map[int]bool, error) {
	swiped, err := uc.swipeRepo.GetSwipedIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load swipe history: %w", err)
	}
	matches, err := uc.matchRepo.GetUserMatches(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load matches: %w", err)
	}

	seen := make(map[int]bool, len(swiped)+len(matches))
	for _, id := range swiped {
		seen[id] = true
	}
	for _, m := range matches {
		seen[m.Profile.ID] = true
	}
	return seen, nil
}

// ResetHistory clears the swipe history so swiped-left profiles come back.
// Matched profiles stay out of the feed and daily counters are untouched.
// It holds the user lock so an in-flight swipe cannot write the old history
// back.
func (uc *FeedUseCase) ResetHistory(ctx context.Context, userID string) (*ResetResponse, error) {
	unlock := uc.users.Lock(userID)
	defer unlock()

	if _, err := uc.users.Load(ctx, userID); err != nil {
		return nil, err
	}
	n, err := uc.swipeRepo.Reset(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to reset swipe history: %w", err)
	}
	uc.logger.Info("swipe history reset", "user_id", userID, "cleared", n)
	return &ResetResponse{Cleared: n}, nil
}

// Package swipe is the swipe and match ledger. Every guard lives inside the
// mutating operations and the result says which one fired.
package swipe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/alliyn/alliyn-backend/internal/domain"
	"github.com/alliyn/alliyn-backend/internal/events"
	"github.com/alliyn/alliyn-backend/internal/repository"
	"github.com/alliyn/alliyn-backend/internal/usecase/compatibility"
	"github.com/alliyn/alliyn-backend/internal/usecase/userstate"
	"github.com/google/uuid"
)

type Direction string

const (
	DirectionLeft  Direction = "left"
	DirectionRight Direction = "right"
)

type Outcome string

const (
	OutcomeSwiped            Outcome = "swiped"
	OutcomeMatched           Outcome = "matched"
	OutcomeSwipeLimitReached Outcome = "swipe-limit-reached"
	OutcomeMatchLimitReached Outcome = "match-limit-reached"
	OutcomeAlreadySwiped     Outcome = "already-swiped"
	OutcomeAlreadyMatched    Outcome = "already-matched"
	OutcomePremiumRequired   Outcome = "premium-required"
	OutcomeNoCandidate       Outcome = "no-candidate"
)

// Accepted reports whether the swipe changed any state.
func (o Outcome) Accepted() bool {
	return o == OutcomeSwiped || o == OutcomeMatched
}

type ProgressTracker interface {
	UpdateProgress(ctx context.Context, userID string, category domain.GoalCategory, amount int) ([]domain.Achievement, error)
}

type ConversationStarter interface {
	CreateConversation(ctx context.Context, userID string, profile *domain.Profile) (string, error)
	RemoveConversation(ctx context.Context, userID, conversationID string) error
}

type Config struct {
	Limits            domain.Limits
	AutoMatchMinScore int
}

type SwipeUseCase struct {
	users         *userstate.Store
	profileRepo   repository.ProfileRepository
	swipeRepo     repository.SwipeRepository
	matchRepo     repository.MatchRepository
	goals         ProgressTracker
	conversations ConversationStarter
	publisher     events.Publisher
	cfg           Config
	logger        *slog.Logger
}

func NewSwipeUseCase(
	users *userstate.Store,
	profileRepo repository.ProfileRepository,
	swipeRepo repository.SwipeRepository,
	matchRepo repository.MatchRepository,
	goals ProgressTracker,
	conversations ConversationStarter,
	publisher events.Publisher,
	cfg Config,
	logger *slog.Logger,
) *SwipeUseCase {
	return &SwipeUseCase{
		users:         users,
		profileRepo:   profileRepo,
		swipeRepo:     swipeRepo,
		matchRepo:     matchRepo,
		goals:         goals,
		conversations: conversations,
		publisher:     publisher,
		cfg:           cfg,
		logger:        logger,
	}
}

// SwipeRequest represents a swipe action
type SwipeRequest struct {
	ProfileID int       `json:"profile_id" binding:"required,gt=0"`
	Direction Direction `json:"direction" binding:"required,oneof=left right"`
}

// SwipeResult says what a swipe did and where the user's counters stand.
type SwipeResult struct {
	Outcome      Outcome       `json:"outcome"`
	Match        *domain.Match `json:"match,omitempty"`
	DailySwipes  int           `json:"daily_swipes"`
	DailyMatches int           `json:"daily_matches"`
	TotalMatches int           `json:"total_matches"`
}

func resultFor(outcome Outcome, user *domain.User, match *domain.Match) *SwipeResult {
	return &SwipeResult{
		Outcome:      outcome,
		Match:        match,
		DailySwipes:  user.DailySwipes,
		DailyMatches: user.DailyMatches,
		TotalMatches: user.TotalMatches,
	}
}

// Swipe records one decision on a candidate. A right swipe that passes the
// guards scores the pair, stores a Match and opens a conversation. Rejected
// swipes change nothing.
func (uc *SwipeUseCase) Swipe(ctx context.Context, userID string, req *SwipeRequest) (*SwipeResult, error) {
	if req.Direction != DirectionLeft && req.Direction != DirectionRight {
		return nil, domain.ErrInvalidInput
	}

	unlock := uc.users.Lock(userID)
	user, result, err := uc.swipeLocked(ctx, userID, req)
	unlock()
	if err != nil {
		return nil, err
	}

	if !result.Outcome.Accepted() {
		uc.logger.Debug("swipe rejected", "user_id", userID, "profile_id", req.ProfileID, "outcome", result.Outcome)
		return result, nil
	}

	uc.progress(ctx, userID, domain.CategorySwipes)
	if result.Match != nil {
		uc.progress(ctx, userID, domain.CategoryMatches)
		uc.publisher.Publish(ctx, events.MatchAdded{
			UserID:       userID,
			Match:        *result.Match,
			TotalMatches: user.TotalMatches,
			At:           result.Match.MatchedAt,
		})
		uc.logger.Info("match created", "user_id", userID, "profile_id", req.ProfileID, "score", result.Match.Compatibility.Score)
	}
	return result, nil
}

func (uc *SwipeUseCase) swipeLocked(ctx context.Context, userID string, req *SwipeRequest) (*domain.User, *SwipeResult, error) {
	user, err := uc.users.Load(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	candidate, err := uc.profileRepo.GetByID(ctx, req.ProfileID)
	if err != nil {
		return nil, nil, err
	}
	if user.Profile != nil && user.Profile.ID == candidate.ID {
		return nil, nil, domain.ErrCannotSwipeSelf
	}

	if _, err := uc.matchRepo.GetByProfile(ctx, userID, candidate.ID); err == nil {
		return user, resultFor(OutcomeAlreadyMatched, user, nil), nil
	} else if !errors.Is(err, domain.ErrMatchNotFound) {
		return nil, nil, fmt.Errorf("failed to check existing match: %w", err)
	}

	swiped, err := uc.swipeRepo.GetSwipedIDs(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load swipe history: %w", err)
	}
	for _, id := range swiped {
		if id == candidate.ID {
			return user, resultFor(OutcomeAlreadySwiped, user, nil), nil
		}
	}

	if !user.CanSwipe(uc.cfg.Limits) {
		return user, resultFor(OutcomeSwipeLimitReached, user, nil), nil
	}
	if req.Direction == DirectionRight && !user.CanMatch(uc.cfg.Limits) {
		return user, resultFor(OutcomeMatchLimitReached, user, nil), nil
	}

	user.DailySwipes++
	if err := uc.swipeRepo.Add(ctx, userID, candidate.ID); err != nil {
		return nil, nil, fmt.Errorf("failed to record swipe: %w", err)
	}

	if req.Direction == DirectionLeft {
		if err := uc.users.Save(ctx, user); err != nil {
			uc.undo(ctx, userID, "swipe", func() error { return uc.swipeRepo.Remove(ctx, userID, candidate.ID) })
			return nil, nil, fmt.Errorf("failed to save user: %w", err)
		}
		return user, resultFor(OutcomeSwiped, user, nil), nil
	}

	match, err := uc.addMatch(ctx, user, candidate, compatibility.Score(user.Profile, candidate), false)
	if err != nil {
		uc.undo(ctx, userID, "swipe", func() error { return uc.swipeRepo.Remove(ctx, userID, candidate.ID) })
		return nil, nil, err
	}
	return user, resultFor(OutcomeMatched, user, match), nil
}

// addMatch opens the conversation, stores the match and bumps the match
// counters. A failed step undoes the ones before it. The caller holds the
// user lock.
func (uc *SwipeUseCase) addMatch(ctx context.Context, user *domain.User, candidate *domain.Profile, compat domain.Compatibility, auto bool) (*domain.Match, error) {
	match := &domain.Match{
		ID:            uuid.NewString(),
		UserID:        user.ID,
		Profile:       *candidate,
		MatchedAt:     uc.users.Clock().Now(),
		Compatibility: compat,
		AutoMatched:   auto,
	}

	convID, err := uc.conversations.CreateConversation(ctx, user.ID, candidate)
	if err != nil {
		uc.logger.Error("failed to open conversation", "user_id", user.ID, "profile_id", candidate.ID, "error", err)
	} else {
		match.ConversationID = &convID
	}

	closeConversation := func() {
		if match.ConversationID != nil {
			uc.undo(ctx, user.ID, "conversation", func() error {
				return uc.conversations.RemoveConversation(ctx, user.ID, *match.ConversationID)
			})
		}
	}

	if err := uc.matchRepo.Create(ctx, match); err != nil {
		closeConversation()
		return nil, fmt.Errorf("failed to create match: %w", err)
	}

	user.DailyMatches++
	user.TotalMatches++
	if err := uc.users.Save(ctx, user); err != nil {
		uc.undo(ctx, user.ID, "match", func() error { return uc.matchRepo.Delete(ctx, user.ID, match.ID) })
		closeConversation()
		return nil, fmt.Errorf("failed to save user: %w", err)
	}
	return match, nil
}

// undo reverts an earlier write of a failed operation. A failed revert is
// only logged; the original error is what the caller sees.
func (uc *SwipeUseCase) undo(ctx context.Context, userID, what string, revert func() error) {
	if err := revert(); err != nil {
		uc.logger.Error("failed to roll back "+what, "user_id", userID, "error", err)
	}
}

func (uc *SwipeUseCase) progress(ctx context.Context, userID string, category domain.GoalCategory) {
	if _, err := uc.goals.UpdateProgress(ctx, userID, category, 1); err != nil {
		uc.logger.Error("failed to update goals", "user_id", userID, "category", category, "error", err)
	}
}

// GetMatches returns the user's matches, newest first.
func (uc *SwipeUseCase) GetMatches(ctx context.Context, userID string) ([]*domain.Match, error) {
	matches, err := uc.matchRepo.GetUserMatches(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get matches: %w", err)
	}
	return matches, nil
}

type scored struct {
	profile *domain.Profile
	compat  domain.Compatibility
}

// AutoMatch matches a premium user with the best unmatched, unswiped
// candidate scoring at least the configured minimum.
func (uc *SwipeUseCase) AutoMatch(ctx context.Context, userID string) (*SwipeResult, error) {
	unlock := uc.users.Lock(userID)
	user, result, err := uc.autoMatchLocked(ctx, userID)
	unlock()
	if err != nil {
		return nil, err
	}

	if result.Match != nil {
		uc.progress(ctx, userID, domain.CategoryMatches)
		uc.publisher.Publish(ctx, events.MatchAdded{
			UserID:       userID,
			Match:        *result.Match,
			TotalMatches: user.TotalMatches,
			At:           result.Match.MatchedAt,
		})
		uc.logger.Info("auto-match created", "user_id", userID, "profile_id", result.Match.Profile.ID, "score", result.Match.Compatibility.Score)
	}
	return result, nil
}

func (uc *SwipeUseCase) autoMatchLocked(ctx context.Context, userID string) (*domain.User, *SwipeResult, error) {
	user, err := uc.users.Load(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	if !user.IsPremium() {
		return user, resultFor(OutcomePremiumRequired, user, nil), nil
	}
	if user.Profile == nil {
		return nil, nil, domain.ErrProfileRequired
	}

	excluded, err := uc.excludedIDs(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	profiles, err := uc.profileRepo.List(ctx, 0, 0)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list profiles: %w", err)
	}

	var candidates []scored
	for _, p := range profiles {
		if excluded[p.ID] || p.ID == user.Profile.ID || !p.IsActive {
			continue
		}
		c := compatibility.Score(user.Profile, p)
		if c.Score >= uc.cfg.AutoMatchMinScore {
			candidates = append(candidates, scored{profile: p, compat: c})
		}
	}
	if len(candidates) == 0 {
		return user, resultFor(OutcomeNoCandidate, user, nil), nil
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].compat.Score > candidates[j].compat.Score
	})
	best := candidates[0]

	match, err := uc.addMatch(ctx, user, best.profile, best.compat, true)
	if err != nil {
		return nil, nil, err
	}
	return user, resultFor(OutcomeMatched, user, match), nil
}

// excludedIDs is every profile the user already swiped or matched.
func (uc *SwipeUseCase) excludedIDs(ctx context.Context, userID string) (map[int]bool, error) {
	swiped, err := uc.swipeRepo.GetSwipedIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load swipe history: %w", err)
	}
	matches, err := uc.matchRepo.GetUserMatches(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load matches: %w", err)
	}

	excluded := make(map[int]bool, len(swiped)+len(matches))
	for _, id := range swiped {
		excluded[id] = true
	}
	for _, m := range matches {
		excluded[m.Profile.ID] = true
	}
	return excluded, nil
}

// AutoMatchAll runs AutoMatch for every premium user with a profile. It
// backs the periodic auto-match job.
func (uc *SwipeUseCase) AutoMatchAll(ctx context.Context) error {
	ids, err := uc.users.ListIDs(ctx)
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}

	matched := 0
	for _, id := range ids {
		result, err := uc.AutoMatch(ctx, id)
		if err != nil {
			if !errors.Is(err, domain.ErrProfileRequired) {
				uc.logger.Error("auto-match failed", "user_id", id, "error", err)
			}
			continue
		}
		if result.Match != nil {
			matched++
		}
	}
	uc.logger.Info("auto-match sweep finished", "users", len(ids), "matched", matched)
	return nil
}

package deals

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/alliyn/alliyn-backend/internal/domain"
	"github.com/alliyn/alliyn-backend/internal/events"
	"github.com/alliyn/alliyn-backend/internal/infrastructure/keylock"
	"github.com/alliyn/alliyn-backend/internal/repository"
	"github.com/alliyn/alliyn-backend/internal/usecase/userstate"
	"github.com/google/uuid"
)

type ProgressTracker interface {
	UpdateProgress(ctx context.Context, userID string, category domain.GoalCategory, amount int) ([]domain.Achievement, error)
}

type DealsUseCase struct {
	repo      repository.DealRepository
	users     *userstate.Store
	goals     ProgressTracker
	publisher events.Publisher
	logger    *slog.Logger
	locks     *keylock.Locker
}

func NewDealsUseCase(
	repo repository.DealRepository,
	users *userstate.Store,
	goals ProgressTracker,
	publisher events.Publisher,
	logger *slog.Logger,
) *DealsUseCase {
	return &DealsUseCase{
		repo:      repo,
		users:     users,
		goals:     goals,
		publisher: publisher,
		logger:    logger,
		locks:     keylock.New(),
	}
}

type CreateDealRequest struct {
	Title           string            `json:"title" binding:"required,max=200"`
	Partner         string            `json:"partner" binding:"required,max=200"`
	Amount          string            `json:"amount" binding:"required,max=50"`
	PartnershipType string            `json:"partnership_type" binding:"required"`
	Date            string            `json:"date" binding:"required,datetime=2006-01-02"`
	Status          domain.DealStatus `json:"status"`
	Description     *string           `json:"description" binding:"omitempty,max=2000"`
}

// UpdateDealRequest is a partial update; nil fields are left alone.
type UpdateDealRequest struct {
	Title           *string            `json:"title" binding:"omitempty,max=200"`
	Partner         *string            `json:"partner" binding:"omitempty,max=200"`
	Amount          *string            `json:"amount" binding:"omitempty,max=50"`
	PartnershipType *string            `json:"partnership_type"`
	Date            *string            `json:"date" binding:"omitempty,datetime=2006-01-02"`
	Status          *domain.DealStatus `json:"status"`
	Description     *string            `json:"description" binding:"omitempty,max=2000"`
}

type DealsResponse struct {
	Deals []*domain.Deal   `json:"deals"`
	Stats domain.DealStats `json:"stats"`
}

type LeaderboardEntry struct {
	UserID         string `json:"user_id"`
	Name           string `json:"name"`
	TotalValue     int64  `json:"total_value"`
	CompletedDeals int    `json:"completed_deals"`
}

// Create records a new deal. A deal created as Completed counts as a
// completion right away.
func (uc *DealsUseCase) Create(ctx context.Context, userID string, req *CreateDealRequest) (*domain.Deal, error) {
	if req.Status == "" {
		req.Status = domain.DealInProgress
	}
	if !req.Status.IsValid() {
		return nil, domain.ErrInvalidInput
	}

	deal := &domain.Deal{
		ID:              uuid.NewString(),
		UserID:          userID,
		Title:           req.Title,
		Partner:         req.Partner,
		Amount:          req.Amount,
		PartnershipType: req.PartnershipType,
		Date:            req.Date,
		Status:          req.Status,
		Description:     req.Description,
		CreatedAt:       uc.users.Clock().Now(),
	}

	unlock := uc.locks.Lock(userID)
	err := uc.repo.Create(ctx, deal)
	unlock()
	if err != nil {
		return nil, fmt.Errorf("failed to create deal: %w", err)
	}

	uc.logger.Info("deal created", "user_id", userID, "deal_id", deal.ID, "status", deal.Status)
	if deal.Status == domain.DealCompleted {
		uc.completed(ctx, deal)
	}
	return deal, nil
}

// Update applies a partial update. Moving from In Progress to Completed
// publishes DealCompleted and counts toward the deals goals.
func (uc *DealsUseCase) Update(ctx context.Context, userID, dealID string, req *UpdateDealRequest) (*domain.Deal, error) {
	if req.Status != nil && !req.Status.IsValid() {
		return nil, domain.ErrInvalidInput
	}

	unlock := uc.locks.Lock(userID)
	deal, wasCompleted, err := uc.updateLocked(ctx, userID, dealID, req)
	unlock()
	if err != nil {
		return nil, err
	}

	if !wasCompleted && deal.Status == domain.DealCompleted {
		uc.completed(ctx, deal)
	}
	return deal, nil
}

func (uc *DealsUseCase) updateLocked(ctx context.Context, userID, dealID string, req *UpdateDealRequest) (*domain.Deal, bool, error) {
	deal, err := uc.repo.GetByID(ctx, userID, dealID)
	if err != nil {
		return nil, false, err
	}
	wasCompleted := deal.Status == domain.DealCompleted

	if req.Title != nil {
		deal.Title = *req.Title
	}
	if req.Partner != nil {
		deal.Partner = *req.Partner
	}
	if req.Amount != nil {
		deal.Amount = *req.Amount
	}
	if req.PartnershipType != nil {
		deal.PartnershipType = *req.PartnershipType
	}
	if req.Date != nil {
		deal.Date = *req.Date
	}
	if req.Status != nil {
		deal.Status = *req.Status
	}
	if req.Description != nil {
		deal.Description = req.Description
	}

	if err := uc.repo.Update(ctx, deal); err != nil {
		return nil, false, fmt.Errorf("failed to update deal: %w", err)
	}
	return deal, wasCompleted, nil
}

func (uc *DealsUseCase) completed(ctx context.Context, deal *domain.Deal) {
	if _, err := uc.users.Update(ctx, deal.UserID, func(u *domain.User) error {
		u.TotalDeals++
		return nil
	}); err != nil {
		uc.logger.Error("failed to count completed deal", "user_id", deal.UserID, "error", err)
	}
	if _, err := uc.goals.UpdateProgress(ctx, deal.UserID, domain.CategoryDeals, 1); err != nil {
		uc.logger.Error("failed to update goals", "user_id", deal.UserID, "category", domain.CategoryDeals, "error", err)
	}
	uc.publisher.Publish(ctx, events.DealCompleted{
		UserID: deal.UserID,
		Deal:   *deal,
		At:     uc.users.Clock().Now(),
	})
	uc.logger.Info("deal completed", "user_id", deal.UserID, "deal_id", deal.ID, "value", deal.Value())
}

func (uc *DealsUseCase) List(ctx context.Context, userID string) (*DealsResponse, error) {
	deals, err := uc.repo.GetUserDeals(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get deals: %w", err)
	}
	return &DealsResponse{Deals: deals, Stats: statsFor(deals)}, nil
}

func statsFor(deals []*domain.Deal) domain.DealStats {
	var s domain.DealStats
	for _, d := range deals {
		if d.Status == domain.DealCompleted {
			s.CompletedDeals++
			s.TotalValue += d.Value()
		} else {
			s.OpenDeals++
		}
	}
	return s
}

// Leaderboard ranks every user by the value of their completed deals.
func (uc *DealsUseCase) Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	ids, err := uc.users.ListIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	entries := make([]LeaderboardEntry, 0, len(ids))
	for _, id := range ids {
		deals, err := uc.repo.GetUserDeals(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to get deals: %w", err)
		}
		stats := statsFor(deals)
		if stats.CompletedDeals == 0 {
			continue
		}
		unlock := uc.users.Lock(id)
		user, err := uc.users.Load(ctx, id)
		unlock()
		if err != nil {
			return nil, err
		}
		name := user.Email
		if user.Profile != nil {
			name = user.Profile.Name
		}
		entries = append(entries, LeaderboardEntry{
			UserID:         id,
			Name:           name,
			TotalValue:     stats.TotalValue,
			CompletedDeals: stats.CompletedDeals,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].TotalValue != entries[j].TotalValue {
			return entries[i].TotalValue > entries[j].TotalValue
		}
		return entries[i].CompletedDeals > entries[j].CompletedDeals
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

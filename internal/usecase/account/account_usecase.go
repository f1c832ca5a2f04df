// Package account manages users, their business profile and subscription.
package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/alliyn/alliyn-backend/internal/domain"
	"github.com/alliyn/alliyn-backend/internal/infrastructure/keylock"
	"github.com/alliyn/alliyn-backend/internal/usecase/userstate"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// PremiumPriceCoins is the monthly subscription price ($50).
const PremiumPriceCoins = 500

// default themes every account starts with
var starterThemes = []string{domain.ThemeDefault, domain.ThemeCity}

type ProgressTracker interface {
	UpdateProgress(ctx context.Context, userID string, category domain.GoalCategory, amount int) ([]domain.Achievement, error)
}

type GoalResetter interface {
	ResetDaily(ctx context.Context, userIDs []string) error
}

type Charger interface {
	Charge(ctx context.Context, userID string, txType domain.TransactionType, description string, coins int64) (*domain.Transaction, error)
}

type AccountUseCase struct {
	users    *userstate.Store
	goals    ProgressTracker
	resetter GoalResetter
	wallet   Charger
	limits   domain.Limits
	validate *validator.Validate
	logger   *slog.Logger
	locks    *keylock.Locker
}

func NewAccountUseCase(
	users *userstate.Store,
	goals ProgressTracker,
	resetter GoalResetter,
	wallet Charger,
	limits domain.Limits,
	logger *slog.Logger,
) *AccountUseCase {
	return &AccountUseCase{
		users:    users,
		goals:    goals,
		resetter: resetter,
		wallet:   wallet,
		limits:   limits,
		validate: validator.New(),
		logger:   logger,
		locks:    keylock.New(),
	}
}

type CreateUserRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// UpdateProfileRequest replaces the whole business profile. Account status
// is kept as it was.
type UpdateProfileRequest struct {
	Name            string   `json:"name" binding:"required,min=2,max=100"`
	BusinessName    string   `json:"business_name" binding:"required,max=150"`
	Title           string   `json:"title" binding:"max=100"`
	Description     string   `json:"description" binding:"max=1000"`
	YearsInBusiness int      `json:"years_in_business" binding:"gte=0,lte=200"`
	Location        string   `json:"location" binding:"max=100"`
	Partnerships    []string `json:"partnerships" binding:"max=10"`
	Industries      []string `json:"industries" binding:"max=10"`
	PrimaryIndustry *string  `json:"primary_industry"`
	Avatar          string   `json:"avatar"`
	CompanyLogo     string   `json:"company_logo"`
	SelectedTheme   string   `json:"selected_theme"`
	Email           string   `json:"email" binding:"omitempty,email"`
}

type LimitsResponse struct {
	AccountType      domain.AccountType `json:"account_type"`
	Unlimited        bool               `json:"unlimited"`
	DailySwipes      int                `json:"daily_swipes"`
	DailyMatches     int                `json:"daily_matches"`
	SwipeLimit       int                `json:"swipe_limit"`
	MatchLimit       int                `json:"match_limit"`
	RemainingSwipes  int                `json:"remaining_swipes"`
	RemainingMatches int                `json:"remaining_matches"`
}

// userIDFor derives a stable id so the same email always maps to one user.
func userIDFor(email string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("alliyn:"+strings.ToLower(email))).String()
}

// GetOrCreateUser returns the user registered under email, creating a free
// account on first use.
func (uc *AccountUseCase) GetOrCreateUser(ctx context.Context, req *CreateUserRequest) (*domain.User, bool, error) {
	id := userIDFor(req.Email)

	unlock := uc.users.Lock(id)
	defer unlock()

	user, err := uc.users.Load(ctx, id)
	if err == nil {
		return user, false, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, false, err
	}

	user = &domain.User{
		ID:             id,
		Email:          req.Email,
		AccountType:    domain.AccountFree,
		UnlockedThemes: append([]string(nil), starterThemes...),
		CreatedAt:      uc.users.Clock().Now(),
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, false, fmt.Errorf("failed to create user: %w", err)
	}
	uc.logger.Info("user created", "user_id", id)
	return user, true, nil
}

func (uc *AccountUseCase) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	unlock := uc.users.Lock(userID)
	defer unlock()
	return uc.users.Load(ctx, userID)
}

func (uc *AccountUseCase) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	user, err := uc.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Profile == nil {
		return nil, domain.ErrProfileRequired
	}
	return user.Profile, nil
}

// UpdateProfile validates and stores the profile, then counts toward the
// profile goals.
func (uc *AccountUseCase) UpdateProfile(ctx context.Context, userID string, req *UpdateProfileRequest) (*domain.Profile, error) {
	theme := req.SelectedTheme
	if theme == "" {
		theme = domain.ThemeDefault
	}
	if !domain.IsKnownTheme(theme) {
		return nil, fmt.Errorf("%w: unknown theme %q", domain.ErrInvalidInput, theme)
	}

	user, err := uc.users.Update(ctx, userID, func(u *domain.User) error {
		if !u.HasTheme(theme) {
			return domain.ErrThemeLocked
		}

		now := uc.users.Clock().Now()
		profile := &domain.Profile{
			Name:            strings.TrimSpace(req.Name),
			BusinessName:    strings.TrimSpace(req.BusinessName),
			Title:           req.Title,
			Description:     req.Description,
			YearsInBusiness: req.YearsInBusiness,
			Location:        req.Location,
			Partnerships:    nonNil(req.Partnerships),
			Industries:      nonNil(req.Industries),
			PrimaryIndustry: req.PrimaryIndustry,
			Avatar:          req.Avatar,
			CompanyLogo:     req.CompanyLogo,
			SelectedTheme:   theme,
			IsActive:        true,
			Email:           req.Email,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if profile.Email == "" {
			profile.Email = u.Email
		}
		if u.Profile != nil {
			profile.IsActive = u.Profile.IsActive
			profile.CreatedAt = u.Profile.CreatedAt
		}
		if err := uc.validate.Struct(profile); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		u.Profile = profile
		return nil
	})
	if err != nil {
		return nil, err
	}

	if _, err := uc.goals.UpdateProgress(ctx, userID, domain.CategoryProfile, 1); err != nil {
		uc.logger.Error("failed to update goals", "user_id", userID, "category", domain.CategoryProfile, "error", err)
	}
	uc.logger.Info("profile updated", "user_id", userID)
	return user.Profile, nil
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

// ToggleStatus flips whether the user's profile is active.
func (uc *AccountUseCase) ToggleStatus(ctx context.Context, userID string) (*domain.Profile, error) {
	user, err := uc.users.Update(ctx, userID, func(u *domain.User) error {
		if u.Profile == nil {
			return domain.ErrProfileRequired
		}
		u.Profile.IsActive = !u.Profile.IsActive
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.logger.Info("account status changed", "user_id", userID, "active", user.Profile.IsActive)
	return user.Profile, nil
}

// UpgradeToPremium charges the subscription and switches the account to
// premium. Upgrading a premium account is a no-op.
func (uc *AccountUseCase) UpgradeToPremium(ctx context.Context, userID string) (*domain.User, error) {
	unlock := uc.locks.Lock(userID)
	defer unlock()

	user, err := uc.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.IsPremium() {
		return user, nil
	}

	if _, err := uc.wallet.Charge(ctx, userID, domain.TxSubscription, "Premium subscription upgrade", PremiumPriceCoins); err != nil {
		return nil, err
	}

	user, err = uc.users.Update(ctx, userID, func(u *domain.User) error {
		u.AccountType = domain.AccountPremium
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.logger.Info("account upgraded", "user_id", userID)
	return user, nil
}

func (uc *AccountUseCase) GetLimits(ctx context.Context, userID string) (*LimitsResponse, error) {
	user, err := uc.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	res := &LimitsResponse{
		AccountType:  user.AccountType,
		Unlimited:    user.IsPremium(),
		DailySwipes:  user.DailySwipes,
		DailyMatches: user.DailyMatches,
		SwipeLimit:   uc.limits.DailySwipes,
		MatchLimit:   uc.limits.DailyMatches,
	}
	if !res.Unlimited {
		res.RemainingSwipes = max(0, uc.limits.DailySwipes-user.DailySwipes)
		res.RemainingMatches = max(0, uc.limits.DailyMatches-user.DailyMatches)
	}
	return res, nil
}

// ResetDaily applies the midnight rollover to every user and their daily
// goals. Users already rolled over by an earlier read are left as they are.
func (uc *AccountUseCase) ResetDaily(ctx context.Context) error {
	ids, err := uc.users.ListIDs(ctx)
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}

	var failed int
	for _, id := range ids {
		if _, err := uc.GetUser(ctx, id); err != nil {
			failed++
			uc.logger.Error("daily reset failed", "user_id", id, "error", err)
		}
	}

	if err := uc.resetter.ResetDaily(ctx, ids); err != nil {
		return fmt.Errorf("failed to reset daily goals: %w", err)
	}
	uc.logger.Info("daily reset done", "users", len(ids), "failed", failed)
	return nil
}

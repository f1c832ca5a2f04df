package domain

import "errors"

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrProfileNotFound      = errors.New("profile not found")
	ErrProfileRequired      = errors.New("user has no profile")
	ErrCannotSwipeSelf      = errors.New("cannot swipe own profile")
	ErrConversationNotFound = errors.New("conversation not found")
	ErrGoalNotFound         = errors.New("goal not found")
	ErrDealNotFound         = errors.New("deal not found")
	ErrMatchNotFound        = errors.New("match not found")
	ErrNoCandidates         = errors.New("no more profiles to show")
	ErrNotMatched           = errors.New("profile is not one of your matches")
	ErrProductNotFound      = errors.New("product not found")
	ErrInsufficientCoins    = errors.New("insufficient coins")
	ErrThemeLocked          = errors.New("theme is not unlocked")
	ErrThemeAlreadyUnlocked = errors.New("theme already unlocked")
	ErrPremiumRequired      = errors.New("premium account required")
	ErrInvalidInput         = errors.New("invalid input")
	ErrInvalidToken         = errors.New("invalid token")
)

package domain

import "time"

type AccountType string

const (
	AccountFree    AccountType = "free"
	AccountPremium AccountType = "premium"
)

// Limits are the free-tier daily caps. Premium accounts ignore them.
type Limits struct {
	DailySwipes  int
	DailyMatches int
}

type User struct {
	ID             string      `json:"id"`
	Email          string      `json:"email"`
	AccountType    AccountType `json:"account_type"`
	DailySwipes    int         `json:"daily_swipes"`
	DailyMatches   int         `json:"daily_matches"`
	TotalMatches   int         `json:"total_matches"`
	TotalDeals     int         `json:"total_deals"`
	Profile        *Profile    `json:"profile"`
	UnlockedThemes []string    `json:"unlocked_themes"`
	LastResetDate  string      `json:"last_reset_date"`
	CreatedAt      time.Time   `json:"created_at"`
}

func (u *User) IsPremium() bool {
	return u.AccountType == AccountPremium
}

func (u *User) CanSwipe(l Limits) bool {
	return u.IsPremium() || u.DailySwipes < l.DailySwipes
}

func (u *User) CanMatch(l Limits) bool {
	return u.IsPremium() || u.DailyMatches < l.DailyMatches
}

func (u *User) HasTheme(theme string) bool {
	return contains(u.UnlockedThemes, theme)
}

// ResetDailyIfNeeded zeroes the daily counters when today differs from the
// last reset date. It reports whether anything changed.
func (u *User) ResetDailyIfNeeded(today string) bool {
	if u.LastResetDate == today {
		return false
	}
	u.DailySwipes = 0
	u.DailyMatches = 0
	u.LastResetDate = today
	return true
}

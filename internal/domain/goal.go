package domain

import "time"

type GoalCategory string

const (
	CategorySwipes   GoalCategory = "swipes"
	CategoryMatches  GoalCategory = "matches"
	CategoryDeals    GoalCategory = "deals"
	CategoryMessages GoalCategory = "messages"
	CategoryProfile  GoalCategory = "profile"
)

func (c GoalCategory) IsValid() bool {
	switch c {
	case CategorySwipes, CategoryMatches, CategoryDeals, CategoryMessages, CategoryProfile:
		return true
	}
	return false
}

type GoalType string

const (
	GoalDaily   GoalType = "daily"
	GoalMonthly GoalType = "monthly"
)

type Goal struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Type        GoalType     `json:"type"`
	Category    GoalCategory `json:"category"`
	Target      int          `json:"target"`
	Current     int          `json:"current"`
	Points      int          `json:"points"`
	Icon        string       `json:"icon"`
	Completed   bool         `json:"completed"`
	CompletedAt *time.Time   `json:"completed_at,omitempty"`
}

// Progress returns completion as a percentage capped at 100.
func (g *Goal) Progress() float64 {
	if g.Target <= 0 {
		return 0
	}
	p := float64(g.Current) / float64(g.Target) * 100
	if p > 100 {
		return 100
	}
	return p
}

func (g *Goal) Reset() {
	g.Current = 0
	g.Completed = false
	g.CompletedAt = nil
}

type Achievement struct {
	ID          string       `json:"id"`
	GoalID      string       `json:"goal_id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Points      int          `json:"points"`
	Category    GoalCategory `json:"category"`
	Icon        string       `json:"icon"`
	CompletedAt time.Time    `json:"completed_at"`
}

// GoalState is everything the goal tracker persists for one user.
type GoalState struct {
	DailyGoals         []Goal        `json:"daily_goals"`
	MonthlyGoals       []Goal        `json:"monthly_goals"`
	Achievements       []Achievement `json:"achievements"`
	TotalPoints        int           `json:"total_points"`
	MonthlyPoints      int           `json:"monthly_points"`
	DailyPeriod        string        `json:"daily_period"`
	MonthlyPeriod      string        `json:"monthly_period"`
	HasPremiumDiscount bool          `json:"has_premium_discount"`
	DiscountExpiresAt  *time.Time    `json:"discount_expires_at,omitempty"`
}

func DefaultDailyGoals() []Goal {
	return []Goal{
		{ID: "daily-swipes", Title: "Daily Swiper", Description: "Swipe on 10 profiles", Type: GoalDaily, Target: 10, Points: 7, Category: CategorySwipes, Icon: "👆"},
		{ID: "daily-matches", Title: "Match Maker", Description: "Get 2 new matches", Type: GoalDaily, Target: 2, Points: 10, Category: CategoryMatches, Icon: "💝"},
		{ID: "daily-messages", Title: "Conversation Starter", Description: "Send 3 messages", Type: GoalDaily, Target: 3, Points: 8, Category: CategoryMessages, Icon: "💬"},
	}
}

func DefaultMonthlyGoals() []Goal {
	return []Goal{
		{ID: "monthly-deals", Title: "Deal Closer", Description: "Complete 5 deals this month", Type: GoalMonthly, Target: 5, Points: 35, Category: CategoryDeals, Icon: "🤝"},
		{ID: "monthly-matches", Title: "Networking Pro", Description: "Get 25 matches this month", Type: GoalMonthly, Target: 25, Points: 28, Category: CategoryMatches, Icon: "🌟"},
		{ID: "monthly-profile", Title: "Profile Perfectionist", Description: "Update your profile 3 times", Type: GoalMonthly, Target: 3, Points: 18, Category: CategoryProfile, Icon: "✨"},
		{ID: "monthly-messages", Title: "Communication Champion", Description: "Send 50 messages this month", Type: GoalMonthly, Target: 50, Points: 25, Category: CategoryMessages, Icon: "📱"},
	}
}

func NewGoalState() *GoalState {
	return &GoalState{
		DailyGoals:   DefaultDailyGoals(),
		MonthlyGoals: DefaultMonthlyGoals(),
		Achievements: []Achievement{},
	}
}

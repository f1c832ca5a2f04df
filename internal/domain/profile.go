package domain

import (
	"strings"
	"time"
)

// Profile card themes. "default" and "city" are unlocked for every account,
// the rest are bought in the shop.
const (
	ThemeDefault    = "default"
	ThemeCity       = "city"
	ThemeFlower     = "flower"
	ThemeRedCarpet  = "red-carpet"
	ThemeLuxuryHome = "luxury-home"
)

var AllThemes = []string{ThemeDefault, ThemeCity, ThemeFlower, ThemeRedCarpet, ThemeLuxuryHome}

func IsKnownTheme(theme string) bool {
	for _, t := range AllThemes {
		if t == theme {
			return true
		}
	}
	return false
}

type Profile struct {
	ID              int       `json:"id" db:"id"`
	Name            string    `json:"name" db:"name" validate:"required,min=2,max=100"`
	BusinessName    string    `json:"business_name" db:"business_name" validate:"required,max=150"`
	Title           string    `json:"title" db:"title" validate:"max=100"`
	Description     string    `json:"description" db:"description" validate:"max=1000"`
	YearsInBusiness int       `json:"years_in_business" db:"years_in_business" validate:"gte=0,lte=200"`
	Location        string    `json:"location" db:"location" validate:"max=100"`
	Partnerships    []string  `json:"partnerships" db:"partnerships" validate:"dive,required"`
	Industries      []string  `json:"industries" db:"industries" validate:"dive,required"`
	PrimaryIndustry *string   `json:"primary_industry,omitempty" db:"primary_industry"`
	Avatar          string    `json:"avatar" db:"avatar"`
	CompanyLogo     string    `json:"company_logo" db:"company_logo"`
	SelectedTheme   string    `json:"selected_theme" db:"selected_theme"`
	IsActive        bool      `json:"is_active" db:"is_active"`
	Email           string    `json:"email" db:"email" validate:"omitempty,email"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

// State returns the state part of a "City, ST" location, or "" when the
// location has no state component.
func (p *Profile) State() string {
	parts := strings.Split(p.Location, ",")
	if len(parts) < 2 {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func (p *Profile) HasIndustry(industry string) bool {
	return contains(p.Industries, industry)
}

func (p *Profile) HasPartnership(partnership string) bool {
	return contains(p.Partnerships, partnership)
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}

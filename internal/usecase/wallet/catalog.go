package wallet

import "github.com/alliyn/alliyn-backend/internal/domain"

type ProductKind string

const (
	KindGift        ProductKind = "gift"
	KindProfileCard ProductKind = "profile_card"
)

type Product struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Kind        ProductKind `json:"kind"`
	Coins       int64       `json:"coins"`
	Dollars     float64     `json:"dollars"`
	Image       string      `json:"image"`
	IsCustom    bool        `json:"is_custom,omitempty"`
}

type Catalog struct {
	Gifts        []Product `json:"gifts"`
	ProfileCards []Product `json:"profile_cards"`
}

var gifts = []Product{
	{ID: "coffee", Name: "Coffee", Description: "A warm cup of coffee", Coins: 104, Image: "/shop/coffee.png"},
	{ID: "cocktail", Name: "Cocktail", Description: "A refreshing cocktail", Coins: 150, Image: "/shop/cocktail.png"},
	{ID: "lunch", Name: "Lunch", Description: "A delicious lunch", Coins: 325, Image: "/shop/lunch.png"},
	{ID: "dinner", Name: "Dinner for Two", Description: "Romantic dinner for two", Coins: 520, Image: "/shop/dinner.png"},
	{ID: "money-bag", Name: "Money Bag", Description: "Custom amount of coins", Image: "/shop/money-bag.png", IsCustom: true},
}

// profile card ids double as the theme they unlock
var profileCards = []Product{
	{ID: domain.ThemeCity, Name: "City Profile Card Background", Description: "Urban city skyline background", Coins: 100, Image: "/shop/city-background.png"},
	{ID: domain.ThemeFlower, Name: "Flower Profile Card", Description: "Beautiful flower pattern background", Coins: 100, Image: "/shop/flower-background.png"},
	{ID: domain.ThemeRedCarpet, Name: "Red Carpet Profile Card", Description: "Elegant red carpet background", Coins: 100, Image: "/shop/red-carpet-background.png"},
	{ID: domain.ThemeLuxuryHome, Name: "Luxury Home Profile Card Background", Description: "Luxurious home interior background", Coins: 100, Image: "/shop/luxury-home-background.png"},
}

// NewCatalog returns a fresh copy of the shop inventory.
func NewCatalog() Catalog {
	c := Catalog{
		Gifts:        make([]Product, len(gifts)),
		ProfileCards: make([]Product, len(profileCards)),
	}
	for i, p := range gifts {
		p.Kind = KindGift
		p.Dollars = domain.DollarsFor(p.Coins)
		c.Gifts[i] = p
	}
	for i, p := range profileCards {
		p.Kind = KindProfileCard
		p.Dollars = domain.DollarsFor(p.Coins)
		c.ProfileCards[i] = p
	}
	return c
}

func find(products []Product, id string) (Product, bool) {
	for _, p := range products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

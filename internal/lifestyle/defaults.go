package lifestyle

import "sync"

var defaultCategories = []Category{
	{
		Name: Housing, Label: "Bedrooms", Neutral: "1br",
		Tiers: []Tier{
			{Name: "studio", Label: "Studio", Multiplier: 0.80},
			{Name: "1br", Label: "1BR", Multiplier: 1.00},
			{Name: "2br", Label: "2BR", Multiplier: 1.35},
			{Name: "3br+", Label: "3BR+", Multiplier: 1.70},
		},
	},
	{
		Name: PremiumArea, Label: "Premium neighborhood", Neutral: "no",
		Tiers: []Tier{
			{Name: "no", Label: "No", Multiplier: 1.00},
			{Name: "yes", Label: "Yes", Multiplier: 1.15},
		},
	},
	{
		// Owning is modeled as a slightly lower monthly outlay than renting.
		Name: Tenure, Label: "Housing mode", Neutral: "rent",
		Tiers: []Tier{
			{Name: "rent", Label: "Rent", Multiplier: 1.00},
			{Name: "own", Label: "Own", Multiplier: 0.95},
		},
	},
	{
		Name: Groceries, Label: "Groceries style", Neutral: "standard",
		Tiers: []Tier{
			{Name: "budget", Label: "Budget", Multiplier: 0.85},
			{Name: "standard", Label: "Standard", Multiplier: 1.00},
			{Name: "premium", Label: "Premium", Multiplier: 1.25},
		},
	},
	{
		Name: Dining, Label: "Dining out", Neutral: "medium",
		Tiers: []Tier{
			{Name: "low", Label: "Low", Multiplier: 0.70},
			{Name: "medium", Label: "Medium", Multiplier: 1.00},
			{Name: "high", Label: "High", Multiplier: 1.50},
		},
	},
	{
		// Heavier transit use lowers the transport baseline.
		Name: Transit, Label: "Public transit usage", Neutral: "medium",
		Tiers: []Tier{
			{Name: "low", Label: "Low", Multiplier: 1.10},
			{Name: "medium", Label: "Medium", Multiplier: 1.00},
			{Name: "high", Label: "High", Multiplier: 0.85},
		},
	},
	{
		Name: Insurance, Label: "Insurance level", Neutral: "standard",
		Tiers: []Tier{
			{Name: "basic", Label: "Basic", Multiplier: 0.85},
			{Name: "standard", Label: "Standard", Multiplier: 1.00},
			{Name: "premium", Label: "Premium", Multiplier: 1.25},
		},
	},
	{
		Name: Entertainment, Label: "Entertainment", Neutral: "medium",
		Tiers: []Tier{
			{Name: "low", Label: "Low", Multiplier: 0.80},
			{Name: "medium", Label: "Medium", Multiplier: 1.00},
			{Name: "high", Label: "High", Multiplier: 1.35},
		},
	},
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the built-in catalog.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := NewCatalog(defaultCategories)
		if err != nil {
			panic("lifestyle: invalid built-in catalog: " + err.Error())
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

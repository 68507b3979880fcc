// Package lifestyle defines the lifestyle categories, their tiers and the
// multiplier each tier applies to spending.
package lifestyle

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
)

var (
	// ErrUnknownCategory is returned for a category not in the catalog.
	ErrUnknownCategory = errors.New("unknown lifestyle category")
	// ErrUnknownTier is returned for a tier not offered by its category.
	ErrUnknownTier = errors.New("unknown lifestyle tier")
	// ErrNeutralNotOne is returned when a neutral tier would scale costs.
	ErrNeutralNotOne = errors.New("neutral tier multiplier must be 1.0")
)

// Category names used by the default catalog.
const (
	Housing       = "housing"
	PremiumArea   = "premium_area"
	Tenure        = "tenure"
	Groceries     = "groceries"
	Dining        = "dining"
	Transit       = "transit"
	Insurance     = "insurance"
	Entertainment = "entertainment"
)

// Tier is one option of a category.
type Tier struct {
	Name       string  `json:"name"`
	Label      string  `json:"label"`
	Multiplier float64 `json:"multiplier"`
}

// Category is a named lifestyle choice with its ordered tiers. Neutral names
// the tier used when nothing is selected.
type Category struct {
	Name    string `json:"name"`
	Label   string `json:"label"`
	Tiers   []Tier `json:"tiers"`
	Neutral string `json:"neutral"`
}

// Tier returns the named tier, matching case-insensitively.
func (c Category) Tier(name string) (Tier, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, t := range c.Tiers {
		if t.Name == name {
			return t, true
		}
	}
	return Tier{}, false
}

// TierNames returns the category's tier names in display order.
func (c Category) TierNames() []string {
	names := make([]string, len(c.Tiers))
	for i, t := range c.Tiers {
		names[i] = t.Name
	}
	return names
}

// Selections maps category name to the chosen tier name.
type Selections map[string]string

// Get returns the tier chosen for category. Keys match case-insensitively;
// an exact key wins, then the remaining keys in sorted order.
func (s Selections) Get(category string) (string, bool) {
	if v, ok := s[category]; ok {
		return v, true
	}
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if strings.EqualFold(strings.TrimSpace(k), category) {
			return s[k], true
		}
	}
	return "", false
}

// Catalog is an immutable, ordered set of categories.
type Catalog struct {
	categories []Category
	index      map[string]int
}

// NewCatalog validates categories and builds a Catalog. Names are lowercased;
// every multiplier must be a finite positive number and every Neutral tier
// must exist with a multiplier of exactly 1.0.
func NewCatalog(categories []Category) (*Catalog, error) {
	if len(categories) == 0 {
		return nil, errors.New("lifestyle catalog is empty")
	}

	c := &Catalog{
		categories: make([]Category, 0, len(categories)),
		index:      make(map[string]int, len(categories)),
	}
	for _, cat := range categories {
		cat.Name = strings.ToLower(strings.TrimSpace(cat.Name))
		if cat.Name == "" {
			return nil, errors.New("lifestyle category name is required")
		}
		if _, dup := c.index[cat.Name]; dup {
			return nil, fmt.Errorf("lifestyle category %q defined twice", cat.Name)
		}
		if len(cat.Tiers) == 0 {
			return nil, fmt.Errorf("lifestyle category %q has no tiers", cat.Name)
		}

		tiers := make([]Tier, len(cat.Tiers))
		seen := make(map[string]bool, len(cat.Tiers))
		for i, t := range cat.Tiers {
			t.Name = strings.ToLower(strings.TrimSpace(t.Name))
			if t.Name == "" || seen[t.Name] {
				return nil, fmt.Errorf("lifestyle category %q: tier %d has an empty or duplicate name", cat.Name, i)
			}
			if !(t.Multiplier > 0) || math.IsInf(t.Multiplier, 0) {
				return nil, fmt.Errorf("lifestyle %s/%s: multiplier must be positive, got %v", cat.Name, t.Name, t.Multiplier)
			}
			if t.Label == "" {
				t.Label = t.Name
			}
			seen[t.Name] = true
			tiers[i] = t
		}
		cat.Tiers = tiers

		cat.Neutral = strings.ToLower(strings.TrimSpace(cat.Neutral))
		if cat.Neutral == "" {
			cat.Neutral = tiers[0].Name
		}
		if !seen[cat.Neutral] {
			return nil, fmt.Errorf("lifestyle category %q: neutral tier %q not defined", cat.Name, cat.Neutral)
		}
		for _, t := range tiers {
			if t.Name == cat.Neutral && t.Multiplier != 1 {
				return nil, fmt.Errorf("lifestyle %s/%s: %w, got %v", cat.Name, t.Name, ErrNeutralNotOne, t.Multiplier)
			}
		}
		if cat.Label == "" {
			cat.Label = cat.Name
		}

		c.index[cat.Name] = len(c.categories)
		c.categories = append(c.categories, cat)
	}
	return c, nil
}

// Categories returns the categories in application order.
func (c *Catalog) Categories() []Category {
	out := make([]Category, len(c.categories))
	for i, cat := range c.categories {
		cat.Tiers = append([]Tier(nil), cat.Tiers...)
		out[i] = cat
	}
	return out
}

// Category returns the named category.
func (c *Catalog) Category(name string) (Category, bool) {
	i, ok := c.index[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Category{}, false
	}
	cat := c.categories[i]
	cat.Tiers = append([]Tier(nil), cat.Tiers...)
	return cat, true
}

// Multiplier returns the factor for a tier of a category.
func (c *Catalog) Multiplier(category, tier string) (float64, error) {
	cat, ok := c.Category(category)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	t, ok := cat.Tier(tier)
	if !ok {
		return 0, fmt.Errorf("%w: %q for %s (want one of %s)",
			ErrUnknownTier, tier, cat.Name, strings.Join(cat.TierNames(), ", "))
	}
	return t.Multiplier, nil
}

// Validate checks that every selection names a known category and tier.
// Errors are reported in category-name order so the result is stable.
func (c *Catalog) Validate(sel Selections) error {
	keys := make([]string, 0, len(sel))
	for k := range sel {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if _, err := c.Multiplier(k, sel[k]); err != nil {
			return err
		}
	}
	return nil
}

// Resolve returns the multiplier of the selected tier of category, or the
// neutral tier's multiplier when the category is not selected.
func (c *Catalog) Resolve(sel Selections, category string) (float64, error) {
	cat, ok := c.Category(category)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	tier, selected := sel.Get(cat.Name)
	if !selected {
		tier = cat.Neutral
	}
	return c.Multiplier(cat.Name, tier)
}

// WithOverrides returns a new catalog with tier multipliers replaced.
// Overrides are keyed by category then tier; unknown names are errors.
func (c *Catalog) WithOverrides(overrides map[string]map[string]float64) (*Catalog, error) {
	if len(overrides) == 0 {
		return c, nil
	}

	cats := c.Categories()
	for catName, tiers := range overrides {
		i, ok := c.index[strings.ToLower(strings.TrimSpace(catName))]
		if !ok {
			return nil, fmt.Errorf("lifestyle override: %w: %q", ErrUnknownCategory, catName)
		}
		cat := cats[i]
		for tierName, mult := range tiers {
			found := false
			for j := range cat.Tiers {
				if cat.Tiers[j].Name == strings.ToLower(strings.TrimSpace(tierName)) {
					cat.Tiers[j].Multiplier = mult
					found = true
				}
			}
			if !found {
				return nil, fmt.Errorf("lifestyle override %s: %w: %q", cat.Name, ErrUnknownTier, tierName)
			}
		}
		cats[i] = cat
	}
	return NewCatalog(cats)
}

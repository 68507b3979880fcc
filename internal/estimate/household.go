package estimate

import (
	"fmt"
	"strings"

	"github.com/NihalShah4/cost-of-living-estimator/internal/basket"
	"github.com/NihalShah4/cost-of-living-estimator/internal/lifestyle"
	"github.com/NihalShah4/cost-of-living-estimator/internal/rpp"
)

// Household size limits.
const (
	MinAdults = 1
	MaxAdults = 6
	MaxKids   = 6
	MaxCars   = 4
)

// Scaling applied for each adult beyond the first, per line item.
const (
	extraAdultGroceries = 0.70
	extraAdultMisc      = 0.60
	extraAdultHealth    = 0.55
	extraAdultShared    = 0.35 // utilities, dining, transport
	utilitiesPerKid     = 0.20
)

// Flat monthly add-ons at national prices.
const (
	carMonthly = 450.0 // payment, insurance, fuel and maintenance
	gymMonthly = 45.0
)

// Travel levels and their monthly add-on at national prices.
const (
	TravelNone       = "none"
	TravelOccasional = "occasional"
	TravelFrequent   = "frequent"
)

var travelMonthly = map[string]float64{
	TravelNone:       0,
	TravelOccasional: 120,
	TravelFrequent:   320,
}

// TravelLevels lists the accepted travel levels in display order.
func TravelLevels() []string {
	return []string{TravelNone, TravelOccasional, TravelFrequent}
}

// Household line item names, in breakdown order.
const (
	LineHousing        = "Housing"
	LineUtilities      = "Utilities"
	LineGroceries      = "Groceries"
	LineDiningOut      = "Dining Out"
	LineTransportation = "Transportation"
	LineHealthcare     = "Healthcare"
	LineChildcare      = "Childcare"
	LineMisc           = "Misc"
	LineTravel         = "Travel"
)

// Household describes who lives in the home and how they live.
type Household struct {
	Adults     int                  `json:"adults"`
	Kids       int                  `json:"kids"`
	Cars       int                  `json:"cars"`
	Gym        bool                 `json:"gym"`
	Travel     string               `json:"travel"`
	Selections lifestyle.Selections `json:"selections,omitempty"`
}

// DefaultHousehold is a single adult with no kids, cars or travel.
func DefaultHousehold() Household {
	return Household{Adults: 1, Travel: TravelNone}
}

// Line is one category of a household budget.
type Line struct {
	Category string  `json:"category"`
	Monthly  float64 `json:"monthly"`
}

// Annual returns the line scaled to a year.
func (l Line) Annual() float64 { return l.Monthly * MonthsPerYear }

// HouseholdResult is a per-category monthly budget.
type HouseholdResult struct {
	State rpp.Entry `json:"state"`
	Lines []Line    `json:"lines"`
	Total float64   `json:"total"`
}

// Annual returns Total scaled to a year.
func (r HouseholdResult) Annual() float64 { return r.Total * MonthsPerYear }

// Line returns the named line item.
func (r HouseholdResult) Line(category string) (Line, bool) {
	for _, l := range r.Lines {
		if l.Category == category {
			return l, true
		}
	}
	return Line{}, false
}

// EstimateHousehold builds a category budget for a household in state,
// starting from basket b at national prices.
func (e *Estimator) EstimateHousehold(state string, h Household, b basket.Basket) (HouseholdResult, error) {
	entry, err := e.state(state)
	if err != nil {
		return HouseholdResult{}, err
	}
	if err := h.validate(); err != nil {
		return HouseholdResult{}, err
	}
	if err := b.Validate(); err != nil {
		return HouseholdResult{}, &InputError{Field: "basket", Value: b.Monthly(), Reason: err.Error()}
	}
	if err := e.checkSelections(h.Selections); err != nil {
		return HouseholdResult{}, err
	}

	// Categories the catalog does not define are neutral.
	m := func(category string) (float64, error) {
		if _, ok := e.catalog.Category(category); !ok {
			return 1, nil
		}
		v, err := e.catalog.Resolve(h.Selections, category)
		if err != nil {
			return 0, &ChoiceError{Category: category, Err: err}
		}
		return v, nil
	}

	var mult struct{ bedrooms, premium, tenure, groceries, dining, transit, insurance, entertainment float64 }
	for _, it := range []struct {
		category string
		dst      *float64
	}{
		{lifestyle.Housing, &mult.bedrooms},
		{lifestyle.PremiumArea, &mult.premium},
		{lifestyle.Tenure, &mult.tenure},
		{lifestyle.Groceries, &mult.groceries},
		{lifestyle.Dining, &mult.dining},
		{lifestyle.Transit, &mult.transit},
		{lifestyle.Insurance, &mult.insurance},
		{lifestyle.Entertainment, &mult.entertainment},
	} {
		v, err := m(it.category)
		if err != nil {
			return HouseholdResult{}, err
		}
		*it.dst = v
	}

	f := entry.Factor()
	a, c := b.Adult, b.Child
	extra := float64(h.Adults - MinAdults)
	kids := float64(h.Kids)

	housing := a.Housing1BR * mult.bedrooms * mult.premium * mult.tenure * f
	utilities := a.Utilities * (1 + extraAdultShared*extra + utilitiesPerKid*kids) * f
	groceries := a.Groceries*(1+extraAdultGroceries*extra)*mult.groceries*f +
		c.GroceriesPerChild*kids*f
	dining := a.DiningOutBase * (1 + extraAdultShared*extra) * mult.dining * f
	transport := a.TransportBase*mult.transit*(1+extraAdultShared*extra)*f +
		float64(h.Cars)*carMonthly*f
	healthcare := a.Healthcare*(1+extraAdultHealth*extra)*mult.insurance*f +
		c.HealthcarePerChild*kids*f
	childcare := c.ChildcarePerChild * kids * f

	misc := a.Misc * (1 + extraAdultMisc*extra) * f
	if h.Gym {
		misc += gymMonthly * f
	}
	misc *= mult.entertainment

	travel := travelMonthly[h.travelLevel()] * f

	lines := []Line{
		{LineHousing, housing},
		{LineUtilities, utilities},
		{LineGroceries, groceries},
		{LineDiningOut, dining},
		{LineTransportation, transport},
		{LineHealthcare, healthcare},
		{LineChildcare, childcare},
		{LineMisc, misc},
		{LineTravel, travel},
	}
	var total float64
	for _, l := range lines {
		total += l.Monthly
	}
	if err := checkFinite("basket", b.Monthly(), total); err != nil {
		return HouseholdResult{}, err
	}

	return HouseholdResult{State: entry, Lines: lines, Total: total}, nil
}

func (h Household) travelLevel() string {
	t := strings.ToLower(strings.TrimSpace(h.Travel))
	if t == "" {
		return TravelNone
	}
	return t
}

func (h Household) validate() error {
	switch {
	case h.Adults < MinAdults || h.Adults > MaxAdults:
		return &InputError{Field: "adults", Value: float64(h.Adults), Reason: fmt.Sprintf("must be between %d and %d", MinAdults, MaxAdults)}
	case h.Kids < 0 || h.Kids > MaxKids:
		return &InputError{Field: "kids", Value: float64(h.Kids), Reason: fmt.Sprintf("must be between 0 and %d", MaxKids)}
	case h.Cars < 0 || h.Cars > MaxCars:
		return &InputError{Field: "cars", Value: float64(h.Cars), Reason: fmt.Sprintf("must be between 0 and %d", MaxCars)}
	}
	if _, ok := travelMonthly[h.travelLevel()]; !ok {
		return &ChoiceError{
			Category: "travel",
			Tier:     h.Travel,
			Err:      fmt.Errorf("unknown travel level %q (want one of %s)", h.Travel, strings.Join(TravelLevels(), ", ")),
		}
	}
	return nil
}

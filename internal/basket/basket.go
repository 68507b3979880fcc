// Package basket holds the national-average monthly expense basket that
// estimates start from.
package basket

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
)

// Adult is the monthly spending of a single adult at national prices.
type Adult struct {
	Housing1BR    float64 `json:"housing_1br"`
	Utilities     float64 `json:"utilities"`
	Groceries     float64 `json:"groceries"`
	DiningOutBase float64 `json:"dining_out_base"`
	TransportBase float64 `json:"transport_base"`
	Healthcare    float64 `json:"healthcare"`
	Misc          float64 `json:"misc"`
}

// Child is the additional monthly spending per child.
type Child struct {
	GroceriesPerChild  float64 `json:"groceries_per_child"`
	HealthcarePerChild float64 `json:"healthcare_per_child"`
	ChildcarePerChild  float64 `json:"childcare_per_child"`
}

// Basket is the reference basket, in USD per month.
type Basket struct {
	Adult Adult `json:"monthly_usd_single_adult"`
	Child Child `json:"child_monthly"`
}

// Default returns the built-in U.S. basket.
func Default() Basket {
	return Basket{
		Adult: Adult{
			Housing1BR:    1500,
			Utilities:     220,
			Groceries:     420,
			DiningOutBase: 250,
			TransportBase: 300,
			Healthcare:    380,
			Misc:          350,
		},
		Child: Child{
			GroceriesPerChild:  220,
			HealthcarePerChild: 160,
			ChildcarePerChild:  950,
		},
	}
}

// Monthly returns the single-adult total, the default baseline amount.
func (b Basket) Monthly() float64 {
	a := b.Adult
	return a.Housing1BR + a.Utilities + a.Groceries + a.DiningOutBase +
		a.TransportBase + a.Healthcare + a.Misc
}

// Validate reports the first line item that is negative or not finite.
// Adult items must also be non-zero so the baseline stays positive.
func (b Basket) Validate() error {
	items := []struct {
		name     string
		v        float64
		optional bool
	}{
		{"housing_1br", b.Adult.Housing1BR, false},
		{"utilities", b.Adult.Utilities, false},
		{"groceries", b.Adult.Groceries, false},
		{"dining_out_base", b.Adult.DiningOutBase, false},
		{"transport_base", b.Adult.TransportBase, false},
		{"healthcare", b.Adult.Healthcare, false},
		{"misc", b.Adult.Misc, false},
		{"groceries_per_child", b.Child.GroceriesPerChild, true},
		{"healthcare_per_child", b.Child.HealthcarePerChild, true},
		{"childcare_per_child", b.Child.ChildcarePerChild, true},
	}
	for _, it := range items {
		if math.IsNaN(it.v) || math.IsInf(it.v, 0) || it.v < 0 || (!it.optional && it.v == 0) {
			return fmt.Errorf("basket %s must be a positive amount, got %v", it.name, it.v)
		}
	}
	return nil
}

// Load reads a basket from a JSON file. Items missing from the file keep
// their default values.
func Load(path string) (Basket, error) {
	b := Default()

	data, err := os.ReadFile(path) //nolint:gosec // path comes from user config
	if err != nil {
		return b, fmt.Errorf("reading basket: %w", err)
	}
	if err := json.Unmarshal(data, &b); err != nil {
		return b, fmt.Errorf("parsing basket: %w", err)
	}
	if err := b.Validate(); err != nil {
		return b, err
	}
	return b, nil
}

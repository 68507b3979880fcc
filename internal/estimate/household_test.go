package estimate

import (
	"errors"
	"testing"

	"github.com/NihalShah4/cost-of-living-estimator/internal/basket"
	"github.com/NihalShah4/cost-of-living-estimator/internal/lifestyle"
)

func TestEstimateHousehold_SingleAdultNeutral(t *testing.T) {
	est := New(nil, nil)
	b := basket.Default()

	res, err := est.EstimateHousehold("NJ", DefaultHousehold(), b)
	if err != nil {
		t.Fatalf("EstimateHousehold: %v", err)
	}

	want := b.Monthly() * 1.089
	if !approx(res.Total, want) {
		t.Fatalf("Total = %v, want %v", res.Total, want)
	}
	if l, _ := res.Line(LineChildcare); l.Monthly != 0 {
		t.Errorf("Childcare = %v, want 0", l.Monthly)
	}
	if l, _ := res.Line(LineTravel); l.Monthly != 0 {
		t.Errorf("Travel = %v, want 0", l.Monthly)
	}
	if len(res.Lines) != 9 {
		t.Errorf("got %d lines, want 9", len(res.Lines))
	}
}

func TestEstimateHousehold_FamilyScaling(t *testing.T) {
	est := New(nil, nil)
	b := basket.Default()

	h := Household{
		Adults: 2,
		Kids:   1,
		Cars:   1,
		Gym:    true,
		Travel: "Occasional",
		Selections: lifestyle.Selections{
			lifestyle.Housing:       "2br",
			lifestyle.Entertainment: "high",
		},
	}
	res, err := est.EstimateHousehold("MS", h, b)
	if err != nil {
		t.Fatal(err)
	}

	f := 0.873
	checks := map[string]float64{
		LineHousing:        b.Adult.Housing1BR * 1.35 * f,
		LineUtilities:      b.Adult.Utilities * (1 + 0.35 + 0.20) * f,
		LineGroceries:      b.Adult.Groceries*1.70*f + b.Child.GroceriesPerChild*f,
		LineTransportation: b.Adult.TransportBase*1.35*f + 450*f,
		LineChildcare:      b.Child.ChildcarePerChild * f,
		LineMisc:           (b.Adult.Misc*1.60*f + 45*f) * 1.35,
		LineTravel:         120 * f,
	}
	for name, want := range checks {
		l, ok := res.Line(name)
		if !ok {
			t.Fatalf("missing line %s", name)
		}
		if !approx(l.Monthly, want) {
			t.Errorf("%s = %v, want %v", name, l.Monthly, want)
		}
	}

	var sum float64
	for _, l := range res.Lines {
		sum += l.Monthly
	}
	if !approx(sum, res.Total) {
		t.Errorf("lines sum to %v, Total %v", sum, res.Total)
	}
}

func TestEstimateHousehold_Errors(t *testing.T) {
	est := New(nil, nil)
	b := basket.Default()

	tests := []struct {
		name  string
		state string
		h     Household
		want  error
	}{
		{"unknown state", "Gondor", DefaultHousehold(), ErrInvalidState},
		{"no adults", "TX", Household{Adults: 0}, ErrInvalidInput},
		{"too many kids", "TX", Household{Adults: 1, Kids: 7}, ErrInvalidInput},
		{"negative cars", "TX", Household{Adults: 1, Cars: -1}, ErrInvalidInput},
		{"bad travel", "TX", Household{Adults: 1, Travel: "space"}, ErrUnknownChoice},
		{"bad tier", "TX", Household{Adults: 1, Selections: lifestyle.Selections{"housing": "mansion"}}, ErrUnknownChoice},
	}
	for _, tt := range tests {
		_, err := est.EstimateHousehold(tt.state, tt.h, b)
		if !errors.Is(err, tt.want) {
			t.Errorf("%s: err = %v, want %v", tt.name, err, tt.want)
		}
	}
}

func TestEstimateHousehold_OverflowIsInvalidInput(t *testing.T) {
	b := basket.Default()
	b.Adult.Housing1BR = 1e308
	h := Household{Adults: 1, Selections: lifestyle.Selections{lifestyle.Housing: "3br+"}}

	_, err := New(nil, nil).EstimateHousehold("CA", h, b)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}

// Package estimate computes cost of living estimates from a baseline basket,
// a state price parity factor and lifestyle multipliers.
//
// An Estimator holds only read-only tables; it is safe for concurrent use and
// identical inputs always produce identical results.
package estimate

import (
	"math"
	"sort"

	"github.com/NihalShah4/cost-of-living-estimator/internal/lifestyle"
	"github.com/NihalShah4/cost-of-living-estimator/internal/rpp"
)

// Breakdown step names that are not lifestyle categories.
const (
	StepBaseline = "baseline"
	StepState    = "state"
)

// MonthsPerYear converts monthly amounts to annual ones.
const MonthsPerYear = 12

// Request is the input of Estimate. Categories missing from Selections use
// their neutral tier, which has multiplier 1.0.
type Request struct {
	State      string               `json:"state"`
	Basket     float64              `json:"basket"`
	Selections lifestyle.Selections `json:"selections,omitempty"`
}

// Contribution is one step of the sequential multiplication: the factor
// applied and the amount it added to (or removed from) the running total.
type Contribution struct {
	Category string  `json:"category"`
	Tier     string  `json:"tier,omitempty"`
	Factor   float64 `json:"factor"`
	Amount   float64 `json:"amount"`
}

// Result is an adjusted estimate. Breakdown amounts sum to Total.
type Result struct {
	State     rpp.Entry      `json:"state"`
	Basket    float64        `json:"basket"`
	Total     float64        `json:"total"`
	Breakdown []Contribution `json:"breakdown"`
}

// Annual returns Total scaled to a year.
func (r Result) Annual() float64 {
	return r.Total * MonthsPerYear
}

// Multiplier returns the combined factor applied to the basket.
func (r Result) Multiplier() float64 {
	if r.Basket == 0 {
		return 0
	}
	return r.Total / r.Basket
}

// Estimator combines a price parity table with a lifestyle catalog.
type Estimator struct {
	table   *rpp.Table
	catalog *lifestyle.Catalog
}

// New returns an Estimator over the given tables. Nil arguments fall back to
// the built-in table and catalog.
func New(table *rpp.Table, catalog *lifestyle.Catalog) *Estimator {
	if table == nil {
		table = rpp.Default()
	}
	if catalog == nil {
		catalog = lifestyle.Default()
	}
	return &Estimator{table: table, catalog: catalog}
}

// Table returns the price parity table in use.
func (e *Estimator) Table() *rpp.Table { return e.table }

// Catalog returns the lifestyle catalog in use.
func (e *Estimator) Catalog() *lifestyle.Catalog { return e.catalog }

// Estimate computes Basket × state factor × Π(selected multipliers).
func (e *Estimator) Estimate(req Request) (Result, error) {
	state, err := e.state(req.State)
	if err != nil {
		return Result{}, err
	}
	if err := checkPositive("basket", req.Basket); err != nil {
		return Result{}, err
	}
	if err := e.checkSelections(req.Selections); err != nil {
		return Result{}, err
	}

	cats := e.catalog.Categories()
	breakdown := make([]Contribution, 0, len(cats)+2)

	running := req.Basket
	breakdown = append(breakdown, Contribution{Category: StepBaseline, Factor: 1, Amount: running})

	running, step := apply(running, state.Factor())
	if err := checkFinite("basket", req.Basket, running); err != nil {
		return Result{}, err
	}
	breakdown = append(breakdown, Contribution{Category: StepState, Tier: state.Code, Factor: state.Factor(), Amount: step})

	for _, cat := range cats {
		tier := cat.Neutral
		if t, ok := req.Selections.Get(cat.Name); ok {
			tier = t
		}
		m, err := e.catalog.Multiplier(cat.Name, tier)
		if err != nil {
			return Result{}, &ChoiceError{Category: cat.Name, Tier: tier, Err: err}
		}
		running, step = apply(running, m)
		if err := checkFinite("basket", req.Basket, running); err != nil {
			return Result{}, err
		}
		breakdown = append(breakdown, Contribution{Category: cat.Name, Tier: tier, Factor: m, Amount: step})
	}

	return Result{
		State:     state,
		Basket:    req.Basket,
		Total:     running,
		Breakdown: breakdown,
	}, nil
}

func apply(running, factor float64) (next, delta float64) {
	next = running * factor
	return next, next - running
}

func (e *Estimator) state(key string) (rpp.Entry, error) {
	entry, err := e.table.Lookup(key)
	if err != nil {
		return rpp.Entry{}, &StateError{State: key, Err: err}
	}
	return entry, nil
}

// checkSelections rejects unknown categories and tiers before any arithmetic,
// reporting keys in sorted order.
func (e *Estimator) checkSelections(sel lifestyle.Selections) error {
	keys := make([]string, 0, len(sel))
	for k := range sel {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if _, err := e.catalog.Multiplier(k, sel[k]); err != nil {
			return &ChoiceError{Category: k, Tier: sel[k], Err: err}
		}
	}
	return nil
}

// checkFinite rejects an input whose result overflowed float64.
func checkFinite(field string, input, result float64) error {
	if math.IsInf(result, 0) || math.IsNaN(result) {
		return &InputError{Field: field, Value: input, Reason: "result out of range"}
	}
	return nil
}

func checkPositive(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &InputError{Field: field, Value: v, Reason: "must be a finite number"}
	}
	if v <= 0 {
		return &InputError{Field: field, Value: v, Reason: "must be greater than zero"}
	}
	return nil
}

// Package report converts estimates into JSON documents with exact decimal
// money values, shared by `--json` CLI output and the HTTP API.
package report

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/NihalShah4/cost-of-living-estimator/internal/estimate"
	"github.com/NihalShah4/cost-of-living-estimator/internal/rpp"

	"github.com/shopspring/decimal"
)

// USD rounds a dollar amount to cents.
func USD(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}

func factor(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(4)
}

// State is one row of the price parity table.
type State struct {
	Code   string          `json:"code"`
	Name   string          `json:"name"`
	Index  decimal.Decimal `json:"rpp_index"`
	Factor decimal.Decimal `json:"factor"`
}

// FromEntry converts a table entry.
func FromEntry(e rpp.Entry) State {
	return State{
		Code:   e.Code,
		Name:   e.Name,
		Index:  decimal.NewFromFloat(e.Index).Round(1),
		Factor: factor(e.Factor()),
	}
}

// States lists a table in name order.
func States(t *rpp.Table) []State {
	entries := t.Entries()
	out := make([]State, len(entries))
	for i, e := range entries {
		out[i] = FromEntry(e)
	}
	return out
}

// Step is one breakdown contribution.
type Step struct {
	Category string          `json:"category"`
	Tier     string          `json:"tier,omitempty"`
	Factor   decimal.Decimal `json:"factor"`
	Amount   decimal.Decimal `json:"amount"`
}

// Estimate is the JSON form of estimate.Result.
type Estimate struct {
	State      State           `json:"state"`
	Basket     decimal.Decimal `json:"basket"`
	Multiplier decimal.Decimal `json:"multiplier"`
	Monthly    decimal.Decimal `json:"monthly_total"`
	Annual     decimal.Decimal `json:"annual_total"`
	Breakdown  []Step          `json:"breakdown"`
	Source     string          `json:"rpp_source,omitempty"`
}

// FromResult converts an estimate. Step amounts are rounded individually, so
// their sum can differ from Monthly by a few cents.
func FromResult(r estimate.Result, source rpp.Source) Estimate {
	steps := make([]Step, len(r.Breakdown))
	for i, c := range r.Breakdown {
		steps[i] = Step{
			Category: c.Category,
			Tier:     c.Tier,
			Factor:   factor(c.Factor),
			Amount:   USD(c.Amount),
		}
	}
	return Estimate{
		State:      FromEntry(r.State),
		Basket:     USD(r.Basket),
		Multiplier: factor(r.Multiplier()),
		Monthly:    USD(r.Total),
		Annual:     USD(r.Annual()),
		Breakdown:  steps,
		Source:     string(source),
	}
}

// Line is one household budget category.
type Line struct {
	Category string          `json:"category"`
	Monthly  decimal.Decimal `json:"monthly"`
	Annual   decimal.Decimal `json:"annual"`
}

// Household is the JSON form of estimate.HouseholdResult.
type Household struct {
	State   State           `json:"state"`
	Lines   []Line          `json:"lines"`
	Monthly decimal.Decimal `json:"monthly_total"`
	Annual  decimal.Decimal `json:"annual_total"`
	Income  *Income         `json:"income,omitempty"`
	Source  string          `json:"rpp_source,omitempty"`
}

// FromHousehold converts a household budget.
func FromHousehold(r estimate.HouseholdResult, source rpp.Source) Household {
	lines := make([]Line, len(r.Lines))
	for i, l := range r.Lines {
		lines[i] = Line{Category: l.Category, Monthly: USD(l.Monthly), Annual: USD(l.Annual())}
	}
	return Household{
		State:   FromEntry(r.State),
		Lines:   lines,
		Monthly: USD(r.Total),
		Annual:  USD(r.Annual()),
		Source:  string(source),
	}
}

// Income is the JSON form of estimate.Income.
type Income struct {
	ExpensesAdjusted decimal.Decimal `json:"expenses_adjusted"`
	NetMonthly       decimal.Decimal `json:"net_monthly"`
	GrossMonthly     decimal.Decimal `json:"gross_monthly"`
	GrossAnnual      decimal.Decimal `json:"gross_annual"`
	SavingsRate      decimal.Decimal `json:"savings_rate"`
	TaxRate          decimal.Decimal `json:"tax_rate"`
}

// FromIncome converts an income recommendation.
func FromIncome(in estimate.Income) Income {
	return Income{
		ExpensesAdjusted: USD(in.ExpensesAdjusted),
		NetMonthly:       USD(in.NetMonthly),
		GrossMonthly:     USD(in.GrossMonthly),
		GrossAnnual:      USD(in.GrossAnnual),
		SavingsRate:      factor(in.SavingsRate),
		TaxRate:          factor(in.TaxRate),
	}
}

// Error kinds reported to callers.
const (
	KindInvalidState  = "invalid_state"
	KindInvalidInput  = "invalid_input"
	KindUnknownChoice = "unknown_choice"
	KindInternal      = "internal"
)

// Error is the JSON body of a failed request.
type Error struct {
	Kind    string `json:"error"`
	Message string `json:"message"`
}

// Kind classifies err by its estimate error kind.
func Kind(err error) string {
	switch {
	case errors.Is(err, estimate.ErrInvalidState):
		return KindInvalidState
	case errors.Is(err, estimate.ErrInvalidInput):
		return KindInvalidInput
	case errors.Is(err, estimate.ErrUnknownChoice):
		return KindUnknownChoice
	default:
		return KindInternal
	}
}

// FromError builds an error body.
func FromError(err error) Error {
	return Error{Kind: Kind(err), Message: err.Error()}
}

// WriteJSON writes v as indented JSON followed by a newline.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

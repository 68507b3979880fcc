package estimate

import "math"

// Guardrails on income inputs.
const (
	MaxSavingsRate = 0.80
	MaxTaxRate     = 0.60
)

// Income is the gross income needed to cover expenses, taxes and savings.
type Income struct {
	ExpensesAdjusted float64 `json:"expenses_adjusted"`
	NetMonthly       float64 `json:"net_monthly"`
	GrossMonthly     float64 `json:"gross_monthly"`
	GrossAnnual      float64 `json:"gross_annual"`
	SavingsRate      float64 `json:"savings_rate"`
	TaxRate          float64 `json:"tax_rate"`
}

// RecommendIncome computes the income that covers monthlyCost plus a buffer,
// saves savingsRate of net income and pays taxRate of gross income:
//
//	net   = monthlyCost × (1 + buffer) / (1 − savings)
//	gross = net / (1 − tax)
//
// Savings is clamped to [0, MaxSavingsRate], tax to [0, MaxTaxRate] and a
// negative buffer counts as zero.
func RecommendIncome(monthlyCost, savingsRate, taxRate, buffer float64) (Income, error) {
	if err := checkPositive("monthly cost", monthlyCost); err != nil {
		return Income{}, err
	}
	for _, in := range []struct {
		name string
		v    float64
	}{{"savings rate", savingsRate}, {"tax rate", taxRate}, {"buffer", buffer}} {
		if math.IsNaN(in.v) || math.IsInf(in.v, 0) {
			return Income{}, &InputError{Field: in.name, Value: in.v, Reason: "must be a finite number"}
		}
	}

	savingsRate = clamp(savingsRate, 0, MaxSavingsRate)
	taxRate = clamp(taxRate, 0, MaxTaxRate)
	buffer = math.Max(buffer, 0)

	expenses := monthlyCost * (1 + buffer)
	net := expenses / (1 - savingsRate)
	gross := net / (1 - taxRate)
	if err := checkFinite("monthly cost", monthlyCost, gross*MonthsPerYear); err != nil {
		return Income{}, err
	}

	return Income{
		ExpensesAdjusted: expenses,
		NetMonthly:       net,
		GrossMonthly:     gross,
		GrossAnnual:      gross * MonthsPerYear,
		SavingsRate:      savingsRate,
		TaxRate:          taxRate,
	}, nil
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// maxWholeUSD is the largest amount printed digit by digit.
const maxWholeUSD = 1e15

// FormatUSD formats a dollar amount rounded to whole dollars.
// e.g., 2640.4 -> "$2,640", -75 -> "-$75", 3e20 -> "$3e+20"
func FormatUSD(v float64) string {
	switch {
	case math.IsNaN(v) || math.IsInf(v, 0):
		return "n/a"
	case math.Abs(v) >= maxWholeUSD:
		if v < 0 {
			return "-$" + strconv.FormatFloat(-v, 'g', 3, 64)
		}
		return "$" + strconv.FormatFloat(v, 'g', 3, 64)
	}
	r := int64(math.Round(v))
	if r < 0 {
		return "-$" + FormatNumber(-r)
	}
	return "$" + FormatNumber(r)
}

// FormatCost formats a USD amount, keeping cents below $100.
func FormatCost(cost float64) string {
	if math.Abs(cost) >= 100 {
		return FormatUSD(cost)
	}
	if cost < 0 {
		return fmt.Sprintf("-$%.2f", -cost)
	}
	return fmt.Sprintf("$%.2f", cost)
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatPercent formats a 0-1 float as a percentage string.
func FormatPercent(f float64) string {
	return fmt.Sprintf("%.1f%%", f*100)
}

// FormatDelta formats a signed breakdown step.
// e.g., 440 -> "+$440", -75.5 -> "-$76", 0 -> "$0"
func FormatDelta(amount float64) string {
	switch r := math.Round(amount); {
	case r > 0:
		return "+" + FormatUSD(amount)
	case r < 0:
		return FormatUSD(amount)
	default:
		return "$0"
	}
}

// FormatFactor formats a multiplier.
// e.g., 1.126 -> "×1.126", 1 -> "×1.00"
func FormatFactor(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") || len(s)-strings.IndexByte(s, '.') < 3 {
		s = fmt.Sprintf("%.2f", f)
	}
	return "×" + s
}

// FormatIndex formats an RPP index with one decimal.
func FormatIndex(idx float64) string {
	return strconv.FormatFloat(idx, 'f', 1, 64)
}

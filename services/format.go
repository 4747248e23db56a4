package services

import (
	"fmt"
	"math"
	"strings"
)

// FormatNPR formats an amount in Nepali Rupee notation. Nepal uses the
// lakh/crore numbering system: after the rightmost 3 digits, digits are
// grouped in pairs (e.g., Rs. 12,34,567.89). The result always carries
// exactly 2 decimal places.
func FormatNPR(amount float64) string {
	negative := false
	if amount < 0 {
		negative = true
		amount = -amount
	}

	raw := fmt.Sprintf("%.2f", amount)
	parts := strings.SplitN(raw, ".", 2)

	result := "Rs. " + applyLakhGrouping(parts[0]) + "." + parts[1]
	if negative {
		result = "-" + result
	}
	return result
}

// applyLakhGrouping inserts commas into an integer string: the rightmost 3
// digits form the first group, then every 2 digits form subsequent groups.
func applyLakhGrouping(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	result := s[n-3:]
	remaining := s[:n-3]

	for len(remaining) > 2 {
		result = remaining[len(remaining)-2:] + "," + result
		remaining = remaining[:len(remaining)-2]
	}
	if len(remaining) > 0 {
		result = remaining + "," + result
	}

	return result
}

// FormatQty formats a quantity: whole numbers without decimals, others
// with 3 decimals (norm quantities are quoted to three places).
func FormatQty(val float64) string {
	if val == math.Trunc(val) {
		return fmt.Sprintf("%.0f", val)
	}
	return fmt.Sprintf("%.3f", val)
}

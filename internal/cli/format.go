// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultCurrency is used when no currency symbol is configured.
const DefaultCurrency = "$"

// FormatMoney formats an amount with two decimals and comma grouping.
// e.g., ("$", 1234.5) -> "$1,234.50", ("$", -20) -> "-$20.00"
func FormatMoney(symbol string, d decimal.Decimal) string {
	if symbol == "" {
		symbol = DefaultCurrency
	}
	neg := d.IsNegative()
	s := d.Abs().StringFixed(2)

	whole, frac, _ := strings.Cut(s, ".")
	n, err := strconv.ParseInt(whole, 10, 64)
	if err == nil {
		whole = FormatNumber(n)
	}

	out := symbol + whole + "." + frac
	if neg {
		return "-" + out
	}
	return out
}

// FormatSignedMoney prefixes non-negative amounts with "+".
func FormatSignedMoney(symbol string, d decimal.Decimal) string {
	if d.IsNegative() {
		return FormatMoney(symbol, d)
	}
	return "+" + FormatMoney(symbol, d)
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
	return FormatPct(f * 100)
}

// FormatPct formats a value already on the 0-100 scale. Infinite values
// render as "n/a".
func FormatPct(pct float64) string {
	if math.IsInf(pct, 0) || math.IsNaN(pct) {
		return "n/a"
	}
	return fmt.Sprintf("%.1f%%", pct)
}

// FormatMonths formats a months-to-save figure; +Inf means never.
func FormatMonths(m float64) string {
	switch {
	case math.IsInf(m, 1) || math.IsNaN(m):
		return "never"
	case m <= 1:
		return "1 month"
	default:
		return fmt.Sprintf("%.1f months", m)
	}
}

// FormatDays formats a day count relative to today.
// e.g., 3 -> "3 days left", 0 -> "due today", -2 -> "2 days overdue"
func FormatDays(days int) string {
	switch {
	case days == 0:
		return "due today"
	case days == 1:
		return "1 day left"
	case days > 1:
		return fmt.Sprintf("%d days left", days)
	case days == -1:
		return "1 day overdue"
	default:
		return fmt.Sprintf("%d days overdue", -days)
	}
}

// FormatDate formats a date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(time.DateOnly)
}

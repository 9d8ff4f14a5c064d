// Package format renders dollar amounts and fractions for reports and tables.
package format

import (
	"strings"

	"github.com/shopspring/decimal"
)

var thousand = decimal.NewFromInt(1000)

// compactUnits are ordered from largest to smallest.
var compactUnits = []struct {
	suffix string
	scale  decimal.Decimal
}{
	{"B", decimal.NewFromInt(1_000_000_000)},
	{"M", decimal.NewFromInt(1_000_000)},
	{"K", thousand},
}

// Currency returns a currency string with a dollar sign and thousands separators (e.g., "-$1,234.56").
func Currency(amount float64) string {
	d := decimal.NewFromFloat(amount)
	formatted := formatPositiveCurrency(d.Abs())
	if d.IsNegative() && formatted != "0.00" {
		return "-$" + formatted
	}
	return "$" + formatted
}

// NumericCurrency returns a currency string without a currency symbol but with separators (e.g., "-1,234.56").
func NumericCurrency(amount float64) string {
	d := decimal.NewFromFloat(amount)
	formatted := formatPositiveCurrency(d.Abs())
	if d.IsNegative() && formatted != "0.00" {
		return "-" + formatted
	}
	return formatted
}

// Cents returns the amount rounded to the cent with no symbol or separators
// (e.g., "-1234.56"), suitable for machine-readable output.
func Cents(amount float64) string {
	d := decimal.NewFromFloat(amount).Round(2)
	if d.IsZero() {
		return "0.00"
	}
	return d.StringFixed(2)
}

// Compact returns a short currency string with one decimal and a magnitude
// suffix (e.g., "$4.2M", "$847.3K", "$1.5B"). Amounts under one thousand are
// rounded to whole dollars.
func Compact(amount float64) string {
	d := decimal.NewFromFloat(amount)
	sign := ""
	if d.IsNegative() {
		sign = "-"
	}
	abs := d.Abs()
	whole := abs.Round(0)

	for i, unit := range compactUnits {
		// 999.6 is shown as $1.0K, not $1000.
		if whole.LessThan(unit.scale) {
			continue
		}
		scaled := abs.Div(unit.scale).Round(1)
		// 999.96K rounds to 1000.0K; promote to the next unit instead.
		if i > 0 && scaled.GreaterThanOrEqual(thousand) {
			scaled = abs.Div(compactUnits[i-1].scale).Round(1)
			unit = compactUnits[i-1]
		}
		return sign + "$" + scaled.StringFixed(1) + unit.suffix
	}

	if whole.IsZero() {
		return "$0"
	}
	return sign + "$" + whole.StringFixed(0)
}

// Percent renders a fraction as a percentage with one decimal (0.125 -> "12.5%").
func Percent(fraction float64) string {
	pct := decimal.NewFromFloat(fraction).Mul(decimal.NewFromInt(100)).Round(1)
	if pct.IsZero() {
		return "0.0%"
	}
	return pct.StringFixed(1) + "%"
}

func formatPositiveCurrency(value decimal.Decimal) string {
	formatted := value.StringFixed(2)
	parts := strings.SplitN(formatted, ".", 2)
	intPart := parts[0]
	decPart := "00"
	if len(parts) == 2 {
		decPart = parts[1]
	}

	if len(intPart) > 3 {
		var builder strings.Builder
		for i, digit := range intPart {
			if i > 0 && (len(intPart)-i)%3 == 0 {
				builder.WriteByte(',')
			}
			builder.WriteRune(digit)
		}
		intPart = builder.String()
	}

	return intPart + "." + decPart
}

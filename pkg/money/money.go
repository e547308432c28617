// Package money holds Turkish lira helpers shared by cart pricing and the
// HTTP layer.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Kurus is the number of decimal places kept for lira amounts.
const Kurus = 2

// FromFloat converts a catalog price into a lira amount rounded to kuruş.
func FromFloat(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f).Round(Kurus)
}

// FormatTRY formats amount the way tr-TR renders currency: "₺1.234,50".
// Dots separate thousands, a comma separates kuruş.
func FormatTRY(amount decimal.Decimal) string {
	neg := amount.IsNegative()
	s := amount.Abs().StringFixed(Kurus)

	intPart, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	// digits + separators + sign + symbol + comma + kuruş
	b.Grow(len(intPart) + len(intPart)/3 + 8)
	if neg {
		b.WriteByte('-')
	}
	b.WriteString("₺")

	rem := len(intPart) % 3
	if rem == 0 {
		rem = 3
	}
	b.WriteString(intPart[:rem])
	for i := rem; i < len(intPart); i += 3 {
		b.WriteByte('.')
		b.WriteString(intPart[i : i+3])
	}

	b.WriteByte(',')
	b.WriteString(frac)
	return b.String()
}

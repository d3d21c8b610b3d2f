package engine

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ============================================================================
// FORMATTING — presentation helpers
// ============================================================================
// Values stay exact decimals inside the engine; these only shape strings for
// KPI cards and the display table.
// ============================================================================

// FormatCurrency rounds amount to whole units and prints it with the
// locale's thousands separator: 1234567.5 → "$1,234,568".
func FormatCurrency(amount decimal.Decimal, symbol string, tag language.Tag) string {
	p := message.NewPrinter(tag)
	whole := amount.Round(0)
	if whole.IsNegative() {
		return "-" + symbol + p.Sprintf("%d", whole.Neg().IntPart())
	}
	return symbol + p.Sprintf("%d", whole.IntPart())
}

// FormatInt formats an integer with the locale's thousands separator.
func FormatInt(n int, tag language.Tag) string {
	return message.NewPrinter(tag).Sprintf("%d", n)
}

// toFloat converts an exact value for chart renderers, which plot floats.
func toFloat(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

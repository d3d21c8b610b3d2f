package schema

import (
	"strings"

	"github.com/shopspring/decimal"
)

// CoerceInvestment converts a raw investment cell to a non-negative decimal.
//
// It never fails. Surrounding whitespace, one leading "$" and "," thousands
// separators are accepted. Empty, non-numeric, negative and out-of-range
// values become 0 and ok is false; ok is true only when the parsed value was
// kept.
func CoerceInvestment(raw string) (value decimal.Decimal, ok bool) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return decimal.Zero, false
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	if d.IsNegative() {
		return decimal.Zero, false
	}
	if exp := d.Exponent(); exp > maxInvestmentExponent || exp < -maxInvestmentExponent {
		return decimal.Zero, false
	}
	return d, true
}

// maxInvestmentExponent bounds the base-10 exponent of a kept value. Larger
// exponents ("1e50000000") would make every later sum build huge integers.
const maxInvestmentExponent = 30

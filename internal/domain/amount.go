package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// AmountPrecision is the number of fractional digits kept on input and shown on output.
const AmountPrecision = 4

// maxAmountExponent bounds the scale of a parsed amount. Rounding rescales
// through powers of ten, so unbounded exponents cost unbounded time.
const maxAmountExponent = 28

// ParseAmount parses a plain decimal string and rounds it half-to-even to
// AmountPrecision digits. Scientific notation is rejected.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if strings.ContainsAny(s, "eE") {
		return decimal.Decimal{}, fmt.Errorf("amount %q uses exponent notation", s)
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if exp := d.Exponent(); exp < -maxAmountExponent || exp > maxAmountExponent {
		return decimal.Decimal{}, fmt.Errorf("amount %q has too many digits", s)
	}
	return d.RoundBank(AmountPrecision), nil
}

// FormatAmount renders d with at most AmountPrecision fractional digits and
// no trailing zero fraction: 10.0000 becomes "10", 10.5000 becomes "10.5".
func FormatAmount(d decimal.Decimal) string {
	s := d.StringFixedBank(AmountPrecision)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	if s == "-0" {
		return "0"
	}
	return s
}

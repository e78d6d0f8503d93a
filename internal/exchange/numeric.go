package exchange

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// numericPrefix matches the leading number of a user-typed amount, the same
// prefix a lenient float parser would consume.
var numericPrefix = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// Normalize converts user input such as "1500,5" or "12abc" into a decimal.
// A comma is accepted as the decimal separator. Input without a leading
// number normalizes to zero.
func Normalize(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	s = strings.Replace(s, ",", ".", 1)
	m := numericPrefix.FindString(s)
	if m == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(m)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Round0 formats d with no fractional digits, rounding half away from zero.
func Round0(d decimal.Decimal) string { return d.StringFixed(0) }

// Round1 formats d with one fractional digit.
func Round1(d decimal.Decimal) string { return d.StringFixed(1) }

// Round2 formats d with two fractional digits.
func Round2(d decimal.Decimal) string { return d.StringFixed(2) }

// ConvertedValue multiplies a user-typed value by rate.
func ConvertedValue(s string, rate decimal.Decimal) decimal.Decimal {
	return Normalize(s).Mul(rate)
}

// digits returns the length of the integer part of d after rounding.
func digits(d decimal.Decimal) int {
	return len(d.Round(0).Abs().String())
}

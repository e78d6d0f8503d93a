package exchange

import "github.com/shopspring/decimal"

// Limits caps how many characters each amount field accepts.
type Limits struct {
	Sending   int
	Receiving int
}

// For returns the cap of an amount field.
func (l Limits) For(f Field) int {
	if f == FieldReceiving {
		return l.Receiving
	}
	return l.Sending
}

// FieldLimits sizes the amount fields from the smaller of what the user
// owns and what the counterparty can settle, in each field's currency.
// Crypto fields get three extra characters for the separator and two
// decimals.
func FieldLimits(cp *Counterparty, fiat, crypto decimal.Decimal) Limits {
	if !cp.ExchangeRate.IsPositive() {
		return Limits{Sending: 1, Receiving: 1}
	}
	rate := cp.ExchangeRate
	if cp.Status == RoleSeller {
		sending := decimal.Min(fiat, cp.Balance.Amount.Mul(rate).Round(0))
		receiving := decimal.Min(cp.Balance.Amount, fiat.Div(rate))
		return Limits{
			Sending:   maxLength(sending, false),
			Receiving: maxLength(receiving, true),
		}
	}
	sending := decimal.Min(crypto, cp.Balance.Amount.Div(rate))
	receiving := decimal.Min(cp.Balance.Amount, crypto.Mul(rate))
	return Limits{
		Sending:   maxLength(sending, true),
		Receiving: maxLength(receiving, false),
	}
}

func maxLength(d decimal.Decimal, fractional bool) int {
	if d.IsNegative() {
		d = decimal.Zero
	}
	n := digits(d)
	if fractional {
		n += 3
	}
	if n < 1 {
		n = 1
	}
	return n
}

// Truncate cuts s to at most n runes.
func Truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	return string(r[:n])
}

package exchange

import "github.com/shopspring/decimal"

// Field names a form input. The values double as the POST field names.
type Field string

const (
	FieldSending   Field = "sendingAmount"
	FieldReceiving Field = "receivingAmount"
	FieldPayment   Field = "paymentMethod"
	FieldPassword  Field = "paymentPassword"
)

// Other returns the opposite amount field.
func (f Field) Other() Field {
	if f == FieldSending {
		return FieldReceiving
	}
	return FieldSending
}

// Conversion is a derived amount: the exact value kept for submission and
// the rounded text shown to the user.
type Conversion struct {
	Raw     decimal.Decimal
	Display string
}

// wholeFiat reports whether the derived field holds fiat. Fiat is shown
// without fractions, crypto with two decimals.
func wholeFiat(edited Field, role Role) bool {
	return (edited == FieldSending && role == RoleBuyer) ||
		(edited == FieldReceiving && role == RoleSeller)
}

// Convert derives the opposite field from the edited one.
//
//	sending,   buyer  -> value * rate, 0 decimals
//	sending,   seller -> value / rate, 2 decimals
//	receiving, buyer  -> value / rate, 2 decimals
//	receiving, seller -> value * rate, 0 decimals
func Convert(edited Field, role Role, value string, rate decimal.Decimal) Conversion {
	if !rate.IsPositive() {
		return Conversion{Raw: decimal.Zero, Display: "0"}
	}
	if wholeFiat(edited, role) {
		raw := ConvertedValue(value, rate)
		return Conversion{Raw: raw, Display: Round0(raw)}
	}
	raw := Normalize(value).Div(rate)
	return Conversion{Raw: raw, Display: Round2(raw)}
}

// Fill is the field value the "exchange all" action writes before the
// usual recalculation runs.
type Fill struct {
	Field Field
	Value decimal.Decimal
}

// Text renders the fill value the way the field displays it.
func (f Fill) Text(role Role) string {
	if f.Field == FieldSending && role == RoleSeller {
		return Round0(f.Value)
	}
	return f.Value.String()
}

// ExchangeAll picks the largest trade the user and counterparty can both
// cover.
//
// Against a seller the user spends fiat, capped one unit below the seller's
// crypto valued at the rate. Against a buyer the user sends all their
// crypto unless the buyer's fiat cannot cover it, in which case the user
// asks for the buyer's entire balance.
func ExchangeAll(cp *Counterparty, fiat, crypto decimal.Decimal) Fill {
	if cp.Status == RoleSeller {
		ceiling := cp.Balance.Amount.Mul(cp.ExchangeRate).Sub(decimal.NewFromInt(1))
		most := decimal.Min(fiat, ceiling)
		v := most.Round(0)
		if v.GreaterThan(most) {
			v = most.Floor()
		}
		if v.IsNegative() {
			v = decimal.Zero
		}
		return Fill{Field: FieldSending, Value: v}
	}
	if !cp.ExchangeRate.IsPositive() {
		return Fill{Field: FieldSending, Value: decimal.Zero}
	}
	if crypto.LessThan(cp.Balance.Amount.Div(cp.ExchangeRate)) {
		return Fill{Field: FieldSending, Value: crypto}
	}
	return Fill{Field: FieldReceiving, Value: cp.Balance.Amount}
}

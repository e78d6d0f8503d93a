package exchange

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Messages shown next to a failing field.
const (
	MsgWrongPassword    = "wrong password"
	MsgSelectPayment    = "select a payment method"
	MsgBelowMinimum     = "amount is below the minimum"
	MsgExceedsLimit     = "amount exceeds the counterparty limit"
	MsgInsufficientFund = "insufficient funds"
	MsgGreaterThanZero  = "amount must be greater than zero"
	MsgZeroAmount       = "amount must not be zero"
)

type FieldError struct {
	Field   Field  `json:"field"`
	Message string `json:"message"`
}

type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, fe := range v {
		parts = append(parts, string(fe.Field)+": "+fe.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// For returns the first message recorded for f, or "".
func (v ValidationErrors) For(f Field) string {
	for _, fe := range v {
		if fe.Field == f {
			return fe.Message
		}
	}
	return ""
}

// Rules evaluates the two validation groups against one counterparty and
// the user's balances.
type Rules struct {
	Counterparty *Counterparty
	Fiat         decimal.Decimal
	Crypto       decimal.Decimal
	Secret       string
}

// Core validates the password and payment method fields.
func (r Rules) Core(password string, paymentSelected bool) ValidationErrors {
	var errs ValidationErrors
	errs = append(errs, r.Password(password)...)
	if !paymentSelected {
		errs = append(errs, FieldError{Field: FieldPayment, Message: MsgSelectPayment})
	}
	return errs
}

// Password accepts an empty value or the configured secret.
func (r Rules) Password(password string) ValidationErrors {
	if password != "" && password != r.Secret {
		return ValidationErrors{{Field: FieldPassword, Message: MsgWrongPassword}}
	}
	return nil
}

// Amounts validates both amount fields from their displayed text.
func (r Rules) Amounts(sending, receiving string) ValidationErrors {
	errs := r.Sending(sending)
	return append(errs, r.Receiving(receiving)...)
}

func (r Rules) Sending(text string) ValidationErrors {
	cp := r.Counterparty
	v := Normalize(text)
	var errs ValidationErrors
	if cp.Status == RoleSeller {
		if v.LessThan(cp.MinAmount) {
			errs = append(errs, FieldError{Field: FieldSending, Message: MsgBelowMinimum})
		}
		if !v.LessThan(cp.Capacity().Round(0)) {
			errs = append(errs, FieldError{Field: FieldSending, Message: MsgExceedsLimit})
		}
	}
	if v.GreaterThan(r.own(cp.SendingCurrency())) {
		errs = append(errs, FieldError{Field: FieldSending, Message: MsgInsufficientFund})
	}
	return errs
}

func (r Rules) Receiving(text string) ValidationErrors {
	cp := r.Counterparty
	v := Normalize(text)
	var errs ValidationErrors
	switch cp.Status {
	case RoleBuyer:
		if v.LessThan(cp.MinAmount) || v.IsZero() {
			errs = append(errs, FieldError{Field: FieldReceiving, Message: MsgBelowMinimum})
		}
		if v.GreaterThan(cp.Balance.Amount) {
			errs = append(errs, FieldError{Field: FieldReceiving, Message: MsgExceedsLimit})
		}
	case RoleSeller:
		if v.Mul(cp.ExchangeRate).IsZero() {
			errs = append(errs, FieldError{Field: FieldReceiving, Message: MsgGreaterThanZero})
		}
	}
	return errs
}

func (r Rules) own(currency string) decimal.Decimal {
	if currency == CurrencyFiat {
		return r.Fiat
	}
	return r.Crypto
}

package exchange

import (
	"fmt"
	"net/url"

	"github.com/shopspring/decimal"
)

// ExchangeRequest is the form body of an exchange submission.
type ExchangeRequest struct {
	ContractorID      ID
	ExchangeRate      decimal.Decimal
	SendingAmount     decimal.Decimal
	ReceivingAmount   decimal.Decimal
	SendingCurrency   string
	ReceivingCurrency string
	PaymentMethod     string
	PaymentPassword   string
}

// Form encodes the request as application/x-www-form-urlencoded values.
func (r ExchangeRequest) Form() url.Values {
	v := url.Values{}
	v.Set("contractorId", string(r.ContractorID))
	v.Set("exchangeRate", r.ExchangeRate.String())
	v.Set(string(FieldSending), r.SendingAmount.String())
	v.Set(string(FieldReceiving), r.ReceivingAmount.String())
	v.Set("sendingCurrency", r.SendingCurrency)
	v.Set("receivingCurrency", r.ReceivingCurrency)
	v.Set(string(FieldPayment), r.PaymentMethod)
	v.Set(string(FieldPassword), r.PaymentPassword)
	return v
}

// ParseExchangeRequest decodes submitted form values. Every field except
// the password is required and amounts must be non-negative decimals.
func ParseExchangeRequest(v url.Values) (ExchangeRequest, error) {
	req := ExchangeRequest{
		ContractorID:      ID(v.Get("contractorId")),
		SendingCurrency:   v.Get("sendingCurrency"),
		ReceivingCurrency: v.Get("receivingCurrency"),
		PaymentMethod:     v.Get(string(FieldPayment)),
		PaymentPassword:   v.Get(string(FieldPassword)),
	}
	for _, name := range []string{"contractorId", "sendingCurrency", "receivingCurrency", string(FieldPayment)} {
		if v.Get(name) == "" {
			return req, fmt.Errorf("%w: %s is required", ErrInvalidRequest, name)
		}
	}

	amounts := []struct {
		name string
		dst  *decimal.Decimal
	}{
		{"exchangeRate", &req.ExchangeRate},
		{string(FieldSending), &req.SendingAmount},
		{string(FieldReceiving), &req.ReceivingAmount},
	}
	for _, a := range amounts {
		d, err := decimal.NewFromString(v.Get(a.name))
		if err != nil {
			return req, fmt.Errorf("%w: %s: %v", ErrInvalidRequest, a.name, err)
		}
		if d.IsNegative() {
			return req, fmt.Errorf("%w: %s must not be negative", ErrInvalidRequest, a.name)
		}
		*a.dst = d
	}
	return req, nil
}

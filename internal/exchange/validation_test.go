package exchange

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sellerRules(t *testing.T, fiat string) Rules {
	cp := testSeller(t)
	return Rules{Counterparty: &cp, Fiat: dec(t, fiat), Crypto: dec(t, "20"), Secret: "180712"}
}

func buyerRules(t *testing.T, crypto string) Rules {
	cp := testBuyer(t)
	return Rules{Counterparty: &cp, Fiat: dec(t, "10000"), Crypto: dec(t, crypto), Secret: "180712"}
}

func TestRules_SellerSending(t *testing.T) {
	tests := []struct {
		name  string
		fiat  string
		value string
		want  []string
	}{
		{"within every bound", "10000", "4999", nil},
		{"below minimum", "10000", "50", []string{MsgBelowMinimum}},
		{"at capacity", "10000", "5000", []string{MsgExceedsLimit}},
		{"over own balance", "1000", "4999", []string{MsgInsufficientFund}},
		{"everything wrong", "10", "6000", []string{MsgExceedsLimit, MsgInsufficientFund}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := sellerRules(t, tt.fiat).Sending(tt.value)
			assert.Equal(t, tt.want, messages(errs))
		})
	}
}

func TestRules_SellerReceiving(t *testing.T) {
	r := sellerRules(t, "10000")
	assert.Empty(t, r.Receiving("1.5"))
	assert.Equal(t, []string{MsgGreaterThanZero}, messages(r.Receiving("0")))
	assert.Equal(t, []string{MsgGreaterThanZero}, messages(r.Receiving("")))
}

func TestRules_Buyer(t *testing.T) {
	r := buyerRules(t, "20")

	assert.Empty(t, r.Sending("20"))
	assert.Equal(t, []string{MsgInsufficientFund}, messages(r.Sending("25")))

	assert.Empty(t, r.Receiving("2000"))
	assert.Equal(t, []string{MsgBelowMinimum}, messages(r.Receiving("100")))
	assert.Equal(t, []string{MsgBelowMinimum}, messages(r.Receiving("0")))
	assert.Equal(t, []string{MsgExceedsLimit}, messages(r.Receiving("3500")))
}

func TestRules_Core(t *testing.T) {
	r := sellerRules(t, "10000")

	assert.Empty(t, r.Core("", true))
	assert.Empty(t, r.Core("180712", true))

	errs := r.Core("123", false)
	assert.Equal(t, MsgWrongPassword, errs.For(FieldPassword))
	assert.Equal(t, MsgSelectPayment, errs.For(FieldPayment))
	assert.Equal(t, "", errs.For(FieldSending))
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Field: FieldPassword, Message: MsgWrongPassword},
		{Field: FieldPayment, Message: MsgSelectPayment},
	}
	assert.Equal(t,
		"validation failed: paymentPassword: wrong password; paymentMethod: select a payment method",
		errs.Error())
}

func messages(errs ValidationErrors) []string {
	if len(errs) == 0 {
		return nil
	}
	out := make([]string, 0, len(errs))
	for _, fe := range errs {
		out = append(out, fe.Message)
	}
	return out
}

package exchange

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExchangeRequest_FormRoundTrip(t *testing.T) {
	req := ExchangeRequest{
		ContractorID:      "s-1",
		ExchangeRate:      dec(t, "100"),
		SendingAmount:     dec(t, "200"),
		ReceivingAmount:   dec(t, "2"),
		SendingCurrency:   CurrencyFiat,
		ReceivingCurrency: CurrencyCrypto,
		PaymentMethod:     "Sberbank",
	}

	form := req.Form()
	assert.Equal(t, "s-1", form.Get("contractorId"))
	assert.Equal(t, "200", form.Get("sendingAmount"))
	assert.Equal(t, "", form.Get("paymentPassword"))

	parsed, err := ParseExchangeRequest(form)
	require.NoError(t, err)
	assert.Equal(t, req.ContractorID, parsed.ContractorID)
	assert.True(t, req.ReceivingAmount.Equal(parsed.ReceivingAmount))
}

func TestParseExchangeRequest_Rejects(t *testing.T) {
	base := func() url.Values {
		return url.Values{
			"contractorId":      {"s-1"},
			"exchangeRate":      {"100"},
			"sendingAmount":     {"200"},
			"receivingAmount":   {"2"},
			"sendingCurrency":   {"RUB"},
			"receivingCurrency": {"KEKS"},
			"paymentMethod":     {"Sberbank"},
		}
	}

	tests := []struct {
		name   string
		mutate func(v url.Values)
	}{
		{"missing contractor", func(v url.Values) { v.Del("contractorId") }},
		{"missing payment", func(v url.Values) { v.Set("paymentMethod", "") }},
		{"non numeric amount", func(v url.Values) { v.Set("sendingAmount", "lots") }},
		{"negative amount", func(v url.Values) { v.Set("receivingAmount", "-2") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := base()
			tt.mutate(v)
			_, err := ParseExchangeRequest(v)
			assert.ErrorIs(t, err, ErrInvalidRequest)
		})
	}

	_, err := ParseExchangeRequest(base())
	assert.NoError(t, err)
}

package exchange

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounterparty_Decode(t *testing.T) {
	payload := `{
		"id": 17,
		"userName": "Lena",
		"status": "seller",
		"isVerified": true,
		"exchangeRate": 98.5,
		"balance": {"currency": "KEKS", "amount": 12.25},
		"minAmount": 100,
		"coords": {"lat": 59.9, "lng": 30.3},
		"paymentMethods": [{"provider": "Sberbank", "accountNumber": "1111"}]
	}`

	var cp Counterparty
	require.NoError(t, json.Unmarshal([]byte(payload), &cp))
	require.NoError(t, cp.Validate())

	assert.Equal(t, ID("17"), cp.ID)
	assert.Equal(t, "98.5", cp.ExchangeRate.String())
	assert.Equal(t, "12.25", cp.Balance.Amount.String())
	assert.Equal(t, 59.9, cp.Coords.Lat)
	assert.Nil(t, cp.Wallet)
}

func TestID_UnmarshalString(t *testing.T) {
	var id ID
	require.NoError(t, json.Unmarshal([]byte(`"abc-1"`), &id))
	assert.Equal(t, ID("abc-1"), id)

	assert.Error(t, json.Unmarshal([]byte(`true`), &id))
}

func TestCounterparty_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Counterparty)
		wantErr error
	}{
		{"valid", func(c *Counterparty) {}, nil},
		{"missing id", func(c *Counterparty) { c.ID = "" }, ErrInvalidCounterparty},
		{"missing name", func(c *Counterparty) { c.UserName = "" }, ErrInvalidCounterparty},
		{"unknown role", func(c *Counterparty) { c.Status = "broker" }, ErrInvalidRole},
		{"zero rate", func(c *Counterparty) { c.ExchangeRate = dec(t, "0") }, ErrInvalidRate},
		{"no balance currency", func(c *Counterparty) { c.Balance.Currency = "" }, ErrInvalidCounterparty},
		{"negative minimum", func(c *Counterparty) { c.MinAmount = dec(t, "-1") }, ErrInvalidCounterparty},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cp := testSeller(t)
			tt.mutate(&cp)
			err := cp.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCounterparty_Presentation(t *testing.T) {
	seller := testSeller(t)
	assert.Equal(t, "100 ₽ - 5000 ₽", seller.CashLimit())
	assert.Equal(t, "100 ₽", seller.RateText())
	assert.Equal(t, []string{ProviderCash, "Sberbank"}, seller.Badges())
	assert.Equal(t, CurrencyFiat, seller.SendingCurrency())
	assert.Equal(t, CurrencyCrypto, seller.ReceivingCurrency())

	buyer := testBuyer(t)
	buyer.PaymentMethods = []PaymentMethod{{Provider: "Tinkoff"}}
	assert.Equal(t, "200 ₽ - 3000 ₽", buyer.CashLimit())
	assert.Nil(t, buyer.Badges())
	assert.Equal(t, CurrencyCrypto, buyer.SendingCurrency())
	assert.Equal(t, CurrencyFiat, buyer.ReceivingCurrency())
}

func TestProfile(t *testing.T) {
	p := testProfile(t)
	require.NoError(t, p.Validate())
	assert.Equal(t, "10000", p.Balance(CurrencyFiat).String())
	assert.True(t, p.Balance("USD").IsZero())

	p.UserName = ""
	assert.ErrorIs(t, p.Validate(), ErrInvalidProfile)
}

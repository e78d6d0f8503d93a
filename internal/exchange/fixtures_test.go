package exchange

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return d
}

func testSeller(t *testing.T) Counterparty {
	return Counterparty{
		ID:           "s-1",
		UserName:     "Lena",
		Status:       RoleSeller,
		IsVerified:   true,
		ExchangeRate: dec(t, "100"),
		Balance:      Balance{Currency: CurrencyCrypto, Amount: dec(t, "50")},
		MinAmount:    dec(t, "100"),
		Coords:       &Coords{Lat: 59.9, Lng: 30.3},
		PaymentMethods: []PaymentMethod{
			{Provider: ProviderCash},
			{Provider: "Sberbank", AccountNumber: "1111 2222"},
		},
	}
}

func testBuyer(t *testing.T) Counterparty {
	return Counterparty{
		ID:           "b-1",
		UserName:     "Oleg",
		Status:       RoleBuyer,
		ExchangeRate: dec(t, "100"),
		Balance:      Balance{Currency: CurrencyFiat, Amount: dec(t, "3000")},
		MinAmount:    dec(t, "200"),
		Wallet:       &Wallet{Address: "buyer-wallet"},
	}
}

func testProfile(t *testing.T) Profile {
	return Profile{
		UserName: "me",
		Balances: []Balance{
			{Currency: CurrencyFiat, Amount: dec(t, "10000")},
			{Currency: CurrencyCrypto, Amount: dec(t, "20")},
		},
		Wallet: Wallet{Address: "my-wallet"},
		PaymentMethods: []PaymentMethod{
			{Provider: "Tinkoff", AccountNumber: "5555 6666"},
			{Provider: ProviderCash},
		},
	}
}

package exchange

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

const (
	CurrencyFiat   = "RUB"
	CurrencyCrypto = "KEKS"

	// ProviderCash is the payment method that needs no account number.
	ProviderCash = "Cash in person"
)

// Role is the side a counterparty takes in a trade.
type Role string

const (
	RoleSeller Role = "seller"
	RoleBuyer  Role = "buyer"
)

func (r Role) Valid() bool {
	return r == RoleSeller || r == RoleBuyer
}

// ID is a counterparty identifier. The API may encode it as a JSON string
// or number; both decode to the same textual form.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*id = ID(n.String())
	return nil
}

type Balance struct {
	Currency string          `json:"currency"`
	Amount   decimal.Decimal `json:"amount"`
}

type Coords struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type PaymentMethod struct {
	Provider      string `json:"provider"`
	AccountNumber string `json:"accountNumber,omitempty"`
}

type Wallet struct {
	Address  string `json:"address"`
	Currency string `json:"currency,omitempty"`
}

// Counterparty is a trader listed in the storefront.
type Counterparty struct {
	ID             ID              `json:"id"`
	UserName       string          `json:"userName"`
	Status         Role            `json:"status"`
	IsVerified     bool            `json:"isVerified"`
	ExchangeRate   decimal.Decimal `json:"exchangeRate"`
	Balance        Balance         `json:"balance"`
	MinAmount      decimal.Decimal `json:"minAmount"`
	Coords         *Coords         `json:"coords,omitempty"`
	PaymentMethods []PaymentMethod `json:"paymentMethods,omitempty"`
	Wallet         *Wallet         `json:"wallet,omitempty"`
}

// Validate checks the fields every screen relies on.
func (c *Counterparty) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidCounterparty)
	}
	if c.UserName == "" {
		return fmt.Errorf("%w: userName is required", ErrInvalidCounterparty)
	}
	if !c.Status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidRole, c.Status)
	}
	if !c.ExchangeRate.IsPositive() {
		return fmt.Errorf("%w: counterparty %s", ErrInvalidRate, c.ID)
	}
	if c.Balance.Currency == "" {
		return fmt.Errorf("%w: balance currency is required", ErrInvalidCounterparty)
	}
	if c.Balance.Amount.IsNegative() || c.MinAmount.IsNegative() {
		return fmt.Errorf("%w: negative balance or minimum", ErrInvalidCounterparty)
	}
	return nil
}

// SendingCurrency is the currency the user pays to this counterparty.
func (c *Counterparty) SendingCurrency() string {
	if c.Status == RoleSeller {
		return CurrencyFiat
	}
	return CurrencyCrypto
}

// ReceivingCurrency is the currency the user gets from this counterparty.
func (c *Counterparty) ReceivingCurrency() string {
	if c.Status == RoleSeller {
		return CurrencyCrypto
	}
	return CurrencyFiat
}

// Capacity is the largest fiat amount the counterparty can settle.
// A seller holds crypto, so the balance is valued at the rate.
func (c *Counterparty) Capacity() decimal.Decimal {
	if c.Status == RoleSeller {
		return c.Balance.Amount.Mul(c.ExchangeRate)
	}
	return c.Balance.Amount
}

// CashLimit renders the fiat range the counterparty accepts.
func (c *Counterparty) CashLimit() string {
	return fmt.Sprintf("%s ₽ - %s ₽", Round0(c.MinAmount), Round0(c.Capacity()))
}

// RateText renders the exchange rate in fiat per crypto unit.
func (c *Counterparty) RateText() string {
	return Round0(c.ExchangeRate) + " ₽"
}

// Badges lists the payment providers shown next to a seller. Buyers pay
// with the user's own methods, so they show none.
func (c *Counterparty) Badges() []string {
	if c.Status != RoleSeller {
		return nil
	}
	out := make([]string, 0, len(c.PaymentMethods))
	for _, pm := range c.PaymentMethods {
		out = append(out, pm.Provider)
	}
	return out
}

// Profile is the current user's account.
type Profile struct {
	UserName       string          `json:"userName"`
	Balances       []Balance       `json:"balances"`
	Wallet         Wallet          `json:"wallet"`
	PaymentMethods []PaymentMethod `json:"paymentMethods"`
}

func (p *Profile) Validate() error {
	if p.UserName == "" {
		return fmt.Errorf("%w: userName is required", ErrInvalidProfile)
	}
	for _, cur := range []string{CurrencyFiat, CurrencyCrypto} {
		if _, ok := p.balance(cur); !ok {
			return fmt.Errorf("%w: missing %s balance", ErrInvalidProfile, cur)
		}
	}
	return nil
}

// Balance returns the amount held in currency, or zero.
func (p *Profile) Balance(currency string) decimal.Decimal {
	amount, _ := p.balance(currency)
	return amount
}

func (p *Profile) balance(currency string) (decimal.Decimal, bool) {
	for _, b := range p.Balances {
		if b.Currency == currency {
			return b.Amount, true
		}
	}
	return decimal.Zero, false
}

package tui

import (
	"context"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/simonvc/p2pdesk/internal/exchange"
)

var testSettings = Settings{
	Debounce:        500 * time.Millisecond,
	Throttle:        1500 * time.Millisecond,
	MessageTimeout:  2 * time.Second,
	PaymentPassword: "180712",
}

type fakeStorefront struct {
	mu          sync.Mutex
	contractors []exchange.Counterparty
	profile     *exchange.Profile
	err         error
	submitErr   error
	submitted   []exchange.ExchangeRequest
}

func (f *fakeStorefront) GetContractors(ctx context.Context) ([]exchange.Counterparty, error) {
	return f.contractors, f.err
}

func (f *fakeStorefront) GetUser(ctx context.Context) (*exchange.Profile, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.profile, nil
}

func (f *fakeStorefront) SubmitExchange(ctx context.Context, req exchange.ExchangeRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitted = append(f.submitted, req)
	return f.submitErr
}

func (f *fakeStorefront) requests() []exchange.ExchangeRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]exchange.ExchangeRequest(nil), f.submitted...)
}

func num(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func seller() exchange.Counterparty {
	return exchange.Counterparty{
		ID:           "s-1",
		UserName:     "Lena",
		Status:       exchange.RoleSeller,
		IsVerified:   true,
		ExchangeRate: num("100"),
		Balance:      exchange.Balance{Currency: exchange.CurrencyCrypto, Amount: num("50")},
		MinAmount:    num("100"),
		Coords:       &exchange.Coords{Lat: 59.9, Lng: 30.3},
		PaymentMethods: []exchange.PaymentMethod{
			{Provider: exchange.ProviderCash},
			{Provider: "Sberbank", AccountNumber: "1111 2222"},
		},
	}
}

func buyer() exchange.Counterparty {
	return exchange.Counterparty{
		ID:           "b-1",
		UserName:     "Oleg",
		Status:       exchange.RoleBuyer,
		ExchangeRate: num("100"),
		Balance:      exchange.Balance{Currency: exchange.CurrencyFiat, Amount: num("3000")},
		MinAmount:    num("200"),
		Wallet:       &exchange.Wallet{Address: "buyer-wallet"},
	}
}

func profile() *exchange.Profile {
	return &exchange.Profile{
		UserName: "me",
		Balances: []exchange.Balance{
			{Currency: exchange.CurrencyFiat, Amount: num("10000")},
			{Currency: exchange.CurrencyCrypto, Amount: num("20")},
		},
		Wallet:         exchange.Wallet{Address: "my-wallet"},
		PaymentMethods: []exchange.PaymentMethod{{Provider: "Tinkoff", AccountNumber: "5555"}},
	}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

// clock is a manual time source for throttle checks.
type clock struct{ t time.Time }

func (c *clock) now() time.Time          { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestClock(t *testing.T) *clock {
	t.Helper()
	return &clock{t: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
}

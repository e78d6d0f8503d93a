package exchange

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// Amount is one linked amount field: the text shown and the exact value
// submitted.
type Amount struct {
	Text string
	Raw  decimal.Decimal
}

// Session holds the form state of one exchange dialog. It is created when
// the dialog opens and dropped when it closes, so nothing leaks between
// dialogs.
type Session struct {
	cp      Counterparty
	profile Profile
	rules   Rules
	limits  Limits

	sending   Amount
	receiving Amount
	// pending is the field edited since the last recalculation, or "".
	pending Field

	payment  int
	password string
}

// NewSession starts a dialog against cp for the user described by profile.
// secret is the accepted payment password.
func NewSession(cp Counterparty, profile Profile, secret string) (*Session, error) {
	if err := cp.Validate(); err != nil {
		return nil, err
	}
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	fiat := profile.Balance(CurrencyFiat)
	crypto := profile.Balance(CurrencyCrypto)
	s := &Session{
		cp:      cp,
		profile: profile,
		rules:   Rules{Fiat: fiat, Crypto: crypto, Secret: secret},
		limits:  FieldLimits(&cp, fiat, crypto),
		payment: -1,
	}
	s.rules.Counterparty = &s.cp
	return s, nil
}

func (s *Session) Counterparty() Counterparty { return s.cp }
func (s *Session) Profile() Profile           { return s.profile }
func (s *Session) Limits() Limits             { return s.limits }
func (s *Session) Sending() Amount            { return s.sending }
func (s *Session) Receiving() Amount          { return s.receiving }
func (s *Session) Password() string           { return s.password }

// Amount returns the state of an amount field.
func (s *Session) Amount(f Field) Amount {
	if f == FieldReceiving {
		return s.receiving
	}
	return s.sending
}

func (s *Session) amount(f Field) *Amount {
	if f == FieldReceiving {
		return &s.receiving
	}
	return &s.sending
}

// Edit records typed text for an amount field without recalculating the
// other one. Text over the field limit is truncated; the stored text is
// returned.
func (s *Session) Edit(f Field, text string) string {
	text = Truncate(text, s.limits.For(f))
	a := s.amount(f)
	a.Text = text
	s.pending = f
	return text
}

// Recalculate derives the other amount from f.
func (s *Session) Recalculate(f Field) {
	src := s.amount(f)
	src.Raw = Normalize(src.Text)
	conv := Convert(f, s.cp.Status, src.Text, s.cp.ExchangeRate)
	dst := s.amount(f.Other())
	dst.Raw = conv.Raw
	dst.Text = conv.Display
	s.pending = ""
}

// Input is Edit followed by an immediate recalculation.
func (s *Session) Input(f Field, text string) {
	s.Edit(f, text)
	s.Recalculate(f)
}

// Flush runs a recalculation that an edit left pending.
func (s *Session) Flush() {
	if s.pending != "" {
		s.Recalculate(s.pending)
	}
}

// ExchangeAll fills the form with the largest possible trade.
func (s *Session) ExchangeAll() {
	fill := ExchangeAll(&s.cp, s.rules.Fiat, s.rules.Crypto)
	s.Edit(fill.Field, fill.Text(s.cp.Status))
	s.Recalculate(fill.Field)
}

// PaymentMethods lists the selectable methods. Sellers are paid through
// their own methods; buyers pay out to the user's.
func (s *Session) PaymentMethods() []PaymentMethod {
	if s.cp.Status == RoleSeller {
		return s.cp.PaymentMethods
	}
	return s.profile.PaymentMethods
}

// SelectPayment selects method i; -1 clears the selection.
func (s *Session) SelectPayment(i int) {
	if i < -1 || i >= len(s.PaymentMethods()) {
		i = -1
	}
	s.payment = i
}

// CyclePayment moves the selection by delta, wrapping around the list.
func (s *Session) CyclePayment(delta int) {
	n := len(s.PaymentMethods())
	if n == 0 {
		return
	}
	i := s.payment + delta
	if s.payment < 0 && delta < 0 {
		i = n - 1
	}
	s.payment = ((i % n) + n) % n
}

// SelectedPayment returns the chosen method, if any.
func (s *Session) SelectedPayment() (PaymentMethod, bool) {
	methods := s.PaymentMethods()
	if s.payment < 0 || s.payment >= len(methods) {
		return PaymentMethod{}, false
	}
	return methods[s.payment], true
}

// AccountHint is the account number of the selected method. Cash needs none.
func (s *Session) AccountHint() string {
	pm, ok := s.SelectedPayment()
	if !ok || pm.Provider == ProviderCash {
		return ""
	}
	return pm.AccountNumber
}

// WalletAddress is the crypto wallet involved in the trade: the user's own
// when buying from a seller, the counterparty's when selling to a buyer.
func (s *Session) WalletAddress() string {
	if s.cp.Status == RoleSeller {
		return s.profile.Wallet.Address
	}
	if s.cp.Wallet != nil {
		return s.cp.Wallet.Address
	}
	return ""
}

func (s *Session) SetPassword(p string) { s.password = p }

// ValidateField runs the rules of a single field, as when focus leaves it.
func (s *Session) ValidateField(f Field) ValidationErrors {
	switch f {
	case FieldSending:
		return s.rules.Sending(s.sending.Text)
	case FieldReceiving:
		return s.rules.Receiving(s.receiving.Text)
	case FieldPassword:
		return s.rules.Password(s.password)
	case FieldPayment:
		_, ok := s.SelectedPayment()
		if !ok {
			return ValidationErrors{{Field: FieldPayment, Message: MsgSelectPayment}}
		}
	}
	return nil
}

// Validate runs both rule groups. A typed sending amount that is zero fails
// first with ErrZeroAmount and the groups are skipped; an empty field is left
// to the rule groups.
func (s *Session) Validate() error {
	s.Flush()
	if text := strings.TrimSpace(s.sending.Text); text != "" && Normalize(text).IsZero() {
		return ErrZeroAmount
	}
	_, selected := s.SelectedPayment()
	errs := s.rules.Core(s.password, selected)
	errs = append(errs, s.rules.Amounts(s.sending.Text, s.receiving.Text)...)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// IsZeroAmount reports whether err is the zero-amount short circuit.
func IsZeroAmount(err error) bool { return errors.Is(err, ErrZeroAmount) }

// Request validates the form and builds the submission.
func (s *Session) Request() (ExchangeRequest, error) {
	if err := s.Validate(); err != nil {
		return ExchangeRequest{}, err
	}
	if s.sending.Raw.IsNegative() || s.receiving.Raw.IsNegative() {
		return ExchangeRequest{}, ErrInvalidAmount
	}
	pm, _ := s.SelectedPayment()
	return ExchangeRequest{
		ContractorID:      s.cp.ID,
		ExchangeRate:      s.cp.ExchangeRate,
		SendingAmount:     s.sending.Raw,
		ReceivingAmount:   s.receiving.Raw,
		SendingCurrency:   s.cp.SendingCurrency(),
		ReceivingCurrency: s.cp.ReceivingCurrency(),
		PaymentMethod:     pm.Provider,
		PaymentPassword:   s.password,
	}, nil
}

// Reset clears the form after a successful exchange. Limits are kept.
func (s *Session) Reset() {
	s.sending = Amount{}
	s.receiving = Amount{}
	s.pending = ""
	s.payment = -1
	s.password = ""
}

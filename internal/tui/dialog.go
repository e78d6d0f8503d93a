package tui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/simonvc/p2pdesk/internal/exchange"
	"github.com/simonvc/p2pdesk/internal/logger"
	"github.com/simonvc/p2pdesk/internal/metrics"
)

const (
	msgExchangeOK     = "Exchange completed"
	msgExchangeFailed = "Exchange failed, please try again"
	msgCheckForm      = "Please check the highlighted fields"
)

type dialogFocus int

const (
	focusSending dialogFocus = iota
	focusReceiving
	focusPayment
	focusPassword
	focusCount
)

func (f dialogFocus) field() exchange.Field {
	switch f {
	case focusReceiving:
		return exchange.FieldReceiving
	case focusPayment:
		return exchange.FieldPayment
	case focusPassword:
		return exchange.FieldPassword
	default:
		return exchange.FieldSending
	}
}

// Dialog messages carry the session that scheduled them. A dialog ignores
// messages of a session it does not own, so nothing outlives a close.

// recalcMsg fires after the debounce delay; only the latest seq counts.
type recalcMsg struct {
	session *exchange.Session
	seq     int
	field   exchange.Field
}

type exchangeResultMsg struct {
	session *exchange.Session
	err     error
}

type flashExpiredMsg struct {
	session *exchange.Session
	seq     int
}

// dialogModel is the exchange form opened against one counterparty.
type dialogModel struct {
	session  *exchange.Session
	settings Settings

	sending   textinput.Model
	receiving textinput.Model
	password  textinput.Model
	focus     dialogFocus

	// errs holds the inline message per field.
	errs map[exchange.Field]string

	debounceSeq int
	submitting  bool
	lastSubmit  time.Time
	now         func() time.Time

	flash    string
	flashErr bool
	flashSeq int

	closed bool
}

func newDialog(s *exchange.Session, settings Settings) dialogModel {
	limits := s.Limits()
	cp := s.Counterparty()

	sending := textinput.New()
	sending.Placeholder = "0"
	sending.CharLimit = limits.Sending
	sending.Prompt = ""
	sending.Width = 18

	receiving := textinput.New()
	receiving.Placeholder = "0"
	receiving.CharLimit = limits.Receiving
	receiving.Prompt = ""
	receiving.Width = 18

	password := textinput.New()
	password.Placeholder = "optional"
	password.CharLimit = 12
	password.Prompt = ""
	password.Width = 18
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	logger.L().Debug("exchange dialog opened",
		zap.String("contractor_id", string(cp.ID)),
		zap.String("role", string(cp.Status)),
		zap.Int("sending_limit", limits.Sending),
		zap.Int("receiving_limit", limits.Receiving),
	)

	m := dialogModel{
		session:   s,
		settings:  settings,
		sending:   sending,
		receiving: receiving,
		password:  password,
		errs:      map[exchange.Field]string{},
		now:       time.Now,
	}
	m.applyFocus()
	return m
}

func (m *dialogModel) input(f dialogFocus) *textinput.Model {
	switch f {
	case focusSending:
		return &m.sending
	case focusReceiving:
		return &m.receiving
	case focusPassword:
		return &m.password
	}
	return nil
}

func (m *dialogModel) applyFocus() tea.Cmd {
	var cmd tea.Cmd
	for f := focusSending; f < focusCount; f++ {
		in := m.input(f)
		if in == nil {
			continue
		}
		if f == m.focus {
			cmd = in.Focus()
		} else {
			in.Blur()
		}
	}
	return cmd
}

// moveFocus validates the field being left, as a blur would.
func (m *dialogModel) moveFocus(delta int) tea.Cmd {
	m.setErrs(m.focus.field(), m.session.ValidateField(m.focus.field()))
	m.focus = dialogFocus((int(m.focus) + delta + int(focusCount)) % int(focusCount))
	return m.applyFocus()
}

func (m *dialogModel) setErrs(f exchange.Field, errs exchange.ValidationErrors) {
	if msg := errs.For(f); msg != "" {
		m.errs[f] = msg
		return
	}
	delete(m.errs, f)
}

// revalidateShown refreshes the fields that already show an error, so
// fixing a value clears its message without nagging while typing.
func (m *dialogModel) revalidateShown() {
	for f := range m.errs {
		m.setErrs(f, m.session.ValidateField(f))
	}
}

func (m *dialogModel) syncAmounts() {
	m.sending.SetValue(m.session.Sending().Text)
	m.receiving.SetValue(m.session.Receiving().Text)
}

func (m *dialogModel) showFlash(text string, isErr bool) tea.Cmd {
	m.flashSeq++
	m.flash = text
	m.flashErr = isErr
	seq, s := m.flashSeq, m.session
	return tea.Tick(m.settings.MessageTimeout, func(time.Time) tea.Msg {
		return flashExpiredMsg{session: s, seq: seq}
	})
}

func (m dialogModel) update(msg tea.Msg, api Storefront) (dialogModel, tea.Cmd) {
	switch msg := msg.(type) {
	case recalcMsg:
		if msg.session != m.session || msg.seq != m.debounceSeq {
			return m, nil
		}
		m.session.Recalculate(msg.field)
		m.syncAmounts()
		m.revalidateShown()
		return m, nil

	case exchangeResultMsg:
		if msg.session != m.session {
			return m, nil
		}
		m.submitting = false
		if msg.err != nil {
			logger.L().Warn("exchange failed", zap.Error(msg.err))
			return m, m.showFlash(msgExchangeFailed, true)
		}
		m.session.Reset()
		m.syncAmounts()
		m.password.SetValue("")
		m.errs = map[exchange.Field]string{}
		m.focus = focusSending
		return m, tea.Batch(m.applyFocus(), m.showFlash(msgExchangeOK, false))

	case flashExpiredMsg:
		if msg.session == m.session && msg.seq == m.flashSeq {
			m.flash = ""
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, dialogKeys.Close):
			m.closed = true
			return m, nil
		case key.Matches(msg, dialogKeys.Next):
			return m, m.moveFocus(1)
		case key.Matches(msg, dialogKeys.Prev):
			return m, m.moveFocus(-1)
		case key.Matches(msg, dialogKeys.ExchangeAll):
			m.debounceSeq++
			m.session.ExchangeAll()
			m.syncAmounts()
			m.setErrs(exchange.FieldSending, m.session.ValidateField(exchange.FieldSending))
			m.setErrs(exchange.FieldReceiving, m.session.ValidateField(exchange.FieldReceiving))
			return m, nil
		case key.Matches(msg, dialogKeys.Submit):
			return m, m.submit(api)
		}

		if m.focus == focusPayment {
			switch {
			case key.Matches(msg, dialogKeys.NextMethod):
				m.session.CyclePayment(1)
			case key.Matches(msg, dialogKeys.PrevMethod):
				m.session.CyclePayment(-1)
			}
			m.revalidateShown()
			return m, nil
		}
		return m.updateInput(msg)
	}

	// Cursor blinks and other input-internal messages.
	if in := m.input(m.focus); in != nil {
		var cmd tea.Cmd
		*in, cmd = in.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m dialogModel) updateInput(msg tea.KeyMsg) (dialogModel, tea.Cmd) {
	in := m.input(m.focus)
	if in == nil {
		return m, nil
	}
	before := in.Value()
	var cmd tea.Cmd
	*in, cmd = in.Update(msg)
	after := in.Value()
	if after == before {
		return m, cmd
	}

	if m.focus == focusPassword {
		m.session.SetPassword(after)
		m.revalidateShown()
		return m, cmd
	}

	field := m.focus.field()
	stored := m.session.Edit(field, sanitizeAmount(after))
	if stored != after {
		in.SetValue(stored)
	}
	m.debounceSeq++
	seq, s := m.debounceSeq, m.session
	tick := tea.Tick(m.settings.Debounce, func(time.Time) tea.Msg {
		return recalcMsg{session: s, seq: seq, field: field}
	})
	return m, tea.Batch(cmd, tick)
}

// sanitizeAmount keeps digits and decimal separators.
func sanitizeAmount(s string) string {
	return strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' || r == ',' {
			return r
		}
		return -1
	}, s)
}

// submit is throttled: nothing happens while a request is in flight or
// within the throttle delay of the previous attempt.
func (m *dialogModel) submit(api Storefront) tea.Cmd {
	now := m.now()
	if m.submitting || (!m.lastSubmit.IsZero() && now.Sub(m.lastSubmit) < m.settings.Throttle) {
		metrics.ExchangeSubmissions.WithLabelValues("throttled").Inc()
		return nil
	}
	m.lastSubmit = now
	m.debounceSeq++

	m.session.SetPassword(m.password.Value())
	req, err := m.session.Request()
	m.syncAmounts()
	if err != nil {
		return m.rejectSubmit(err)
	}

	m.errs = map[exchange.Field]string{}
	m.submitting = true
	s := m.session
	return func() tea.Msg {
		return exchangeResultMsg{session: s, err: api.SubmitExchange(context.Background(), req)}
	}
}

func (m *dialogModel) rejectSubmit(err error) tea.Cmd {
	m.errs = map[exchange.Field]string{}
	if exchange.IsZeroAmount(err) {
		metrics.ExchangeSubmissions.WithLabelValues("zero").Inc()
		m.errs[exchange.FieldSending] = exchange.MsgZeroAmount
		return nil
	}
	metrics.ExchangeSubmissions.WithLabelValues("invalid").Inc()
	var verrs exchange.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			if _, ok := m.errs[fe.Field]; !ok {
				m.errs[fe.Field] = fe.Message
			}
		}
		return m.showFlash(msgCheckForm, true)
	}
	logger.L().Warn("exchange request rejected", zap.Error(err))
	return m.showFlash(msgExchangeFailed, true)
}

func (m *dialogModel) fieldLine(label string, f dialogFocus, body string) string {
	l := labelStyle.Render(label)
	if m.focus == f {
		l = selectedStyle.Inherit(labelStyle).Render("> " + label)
	}
	line := l + body
	if msg := m.errs[f.field()]; msg != "" {
		line += "  " + errorStyle.Render(msg)
	}
	return line
}

func (m *dialogModel) view() string {
	s := m.session
	cp := s.Counterparty()

	title := "Exchange with " + cp.UserName
	if cp.IsVerified {
		title += " " + verifiedStyle.Render("★")
	}

	method := dimStyle.Render("select a method")
	if pm, ok := s.SelectedPayment(); ok {
		method = "‹ " + pm.Provider + " ›"
	}
	if hint := s.AccountHint(); hint != "" {
		method += "  " + dimStyle.Render(hint)
	}

	wallet := s.WalletAddress()
	if wallet == "" {
		wallet = dimStyle.Render("none")
	}

	button := buttonStyle.Render("Exchange")
	if m.submitting {
		button = buttonBusyStyle.Render("Exchanging...")
	}

	lines := []string{
		titleStyle.Render(title),
		"",
		labelStyle.Render("Rate") + cp.RateText(),
		labelStyle.Render("Limit") + cp.CashLimit(),
		labelStyle.Render("Wallet") + wallet,
		"",
		m.fieldLine("You send ("+cp.SendingCurrency()+")", focusSending, m.sending.View()),
		m.fieldLine("You receive ("+cp.ReceivingCurrency()+")", focusReceiving, m.receiving.View()),
		m.fieldLine("Payment method", focusPayment, method),
		m.fieldLine("Password", focusPassword, m.password.View()),
		"",
		button,
	}
	if m.flash != "" {
		style := successStyle
		if m.flashErr {
			style = errorStyle
		}
		lines = append(lines, "", style.Render(m.flash))
	}
	lines = append(lines, "", dimStyle.Render("tab: next field  ←/→: method  ctrl+a: exchange all  enter: exchange  esc: close"))

	return dialogStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

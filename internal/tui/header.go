package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/simonvc/p2pdesk/internal/exchange"
)

type profileLoadedMsg struct {
	profile *exchange.Profile
	err     error
}

// headerModel shows who is trading and what they hold.
type headerModel struct {
	profile *exchange.Profile
	err     error
}

func (m *headerModel) init(api Storefront) tea.Cmd {
	return func() tea.Msg {
		p, err := api.GetUser(context.Background())
		return profileLoadedMsg{profile: p, err: err}
	}
}

func (m headerModel) update(msg tea.Msg) headerModel {
	if msg, ok := msg.(profileLoadedMsg); ok {
		m.err = msg.err
		if msg.err == nil {
			m.profile = msg.profile
		}
	}
	return m
}

func (m *headerModel) view() string {
	title := titleStyle.Render("p2pdesk")
	if m.profile == nil {
		if m.err != nil {
			return title + "  " + errorStyle.Render("profile unavailable")
		}
		return title + "  " + dimStyle.Render("loading profile...")
	}
	p := m.profile
	return fmt.Sprintf("%s  %s   %s %s   %s %s",
		title,
		selectedStyle.Render(p.UserName),
		dimStyle.Render(exchange.CurrencyCrypto), exchange.Round2(p.Balance(exchange.CurrencyCrypto)),
		dimStyle.Render(exchange.CurrencyFiat), exchange.Round0(p.Balance(exchange.CurrencyFiat))+" ₽",
	)
}

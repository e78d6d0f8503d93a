package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/simonvc/p2pdesk/internal/exchange"
)

type listModel struct {
	rows   []exchange.Counterparty
	cursor int
	height int
}

func (m *listModel) setRows(rows []exchange.Counterparty) {
	m.rows = rows
	if m.cursor >= len(rows) {
		m.cursor = len(rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m listModel) update(msg tea.Msg) (listModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.rows)-1 {
				m.cursor++
			}
		}
	}
	return m, nil
}

func (m *listModel) selected() (exchange.Counterparty, bool) {
	if m.cursor >= 0 && m.cursor < len(m.rows) {
		return m.rows[m.cursor], true
	}
	return exchange.Counterparty{}, false
}

func nameCell(cp exchange.Counterparty) string {
	name := cp.UserName
	if len([]rune(name)) > 18 {
		name = string([]rune(name)[:18]) + ".."
	}
	if cp.IsVerified {
		return name + " ★"
	}
	return name
}

func badges(cp exchange.Counterparty) string {
	var parts []string
	for _, b := range cp.Badges() {
		parts = append(parts, badgeStyle.Render(b))
	}
	return strings.Join(parts, " ")
}

func (m *listModel) view() string {
	if len(m.rows) == 0 {
		return dimStyle.Render("No counterparties match the current filter.")
	}

	var b strings.Builder

	header := fmt.Sprintf("  %-22s %-8s %-10s %-24s %s", "TRADER", "CCY", "RATE", "LIMIT", "PAYMENT")
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n")

	maxRows := m.height - 4
	if maxRows < 1 {
		maxRows = 10
	}
	start := 0
	if m.cursor >= maxRows {
		start = m.cursor - maxRows + 1
	}

	for i := start; i < len(m.rows) && i < start+maxRows; i++ {
		cp := m.rows[i]
		line := fmt.Sprintf("  %-22s %-8s %-10s %-24s ",
			nameCell(cp), cp.Balance.Currency, cp.RateText(), cp.CashLimit())
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> "+line[2:]) + badges(cp))
		} else {
			b.WriteString(line + badges(cp))
		}
		b.WriteString("\n")
	}
	b.WriteString(fmt.Sprintf("\n  %d counterparties", len(m.rows)))
	return b.String()
}

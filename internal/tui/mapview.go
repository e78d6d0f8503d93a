package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/simonvc/p2pdesk/internal/exchange"
)

const (
	mapWidth  = 60
	mapHeight = 14

	glyphVerified = '◆'
	glyphPlain    = '●'
	glyphEmpty    = '·'
)

// mapModel plots counterparties on an equirectangular grid sized to the
// markers it holds. Every marker has valid coordinates.
type mapModel struct {
	markers []exchange.Counterparty
	cursor  int
}

func (m *mapModel) setMarkers(markers []exchange.Counterparty) {
	m.markers = markers
	if m.cursor >= len(markers) {
		m.cursor = 0
	}
}

func (m mapModel) update(msg tea.Msg) (mapModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && len(m.markers) > 0 {
		n := len(m.markers)
		switch {
		case key.Matches(msg, keys.Right), key.Matches(msg, keys.Down):
			m.cursor = (m.cursor + 1) % n
		case key.Matches(msg, keys.Left), key.Matches(msg, keys.Up):
			m.cursor = (m.cursor - 1 + n) % n
		}
	}
	return m, nil
}

func (m *mapModel) selected() (exchange.Counterparty, bool) {
	if m.cursor >= 0 && m.cursor < len(m.markers) {
		return m.markers[m.cursor], true
	}
	return exchange.Counterparty{}, false
}

type bounds struct {
	minLat, maxLat, minLng, maxLng float64
}

// boundsOf frames the markers with a margin; single points get a one
// degree window.
func boundsOf(markers []exchange.Counterparty) bounds {
	b := bounds{minLat: 90, maxLat: -90, minLng: 180, maxLng: -180}
	for _, cp := range markers {
		b.minLat = math.Min(b.minLat, cp.Coords.Lat)
		b.maxLat = math.Max(b.maxLat, cp.Coords.Lat)
		b.minLng = math.Min(b.minLng, cp.Coords.Lng)
		b.maxLng = math.Max(b.maxLng, cp.Coords.Lng)
	}
	pad := func(lo, hi float64) (float64, float64) {
		span := hi - lo
		if span < 1 {
			mid := (lo + hi) / 2
			return mid - 0.5, mid + 0.5
		}
		return lo - span*0.1, hi + span*0.1
	}
	b.minLat, b.maxLat = pad(b.minLat, b.maxLat)
	b.minLng, b.maxLng = pad(b.minLng, b.maxLng)
	return b
}

// project maps a coordinate to a grid cell, north up.
func project(c exchange.Coords, b bounds, w, h int) (x, y int) {
	fx := (c.Lng - b.minLng) / (b.maxLng - b.minLng)
	fy := (b.maxLat - c.Lat) / (b.maxLat - b.minLat)
	x = int(math.Round(fx * float64(w-1)))
	y = int(math.Round(fy * float64(h-1)))
	return clamp(x, 0, w-1), clamp(y, 0, h-1)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (m *mapModel) grid() [][]rune {
	g := make([][]rune, mapHeight)
	for i := range g {
		g[i] = []rune(strings.Repeat(string(glyphEmpty), mapWidth))
	}
	if len(m.markers) == 0 {
		return g
	}
	b := boundsOf(m.markers)
	for _, cp := range m.markers {
		x, y := project(*cp.Coords, b, mapWidth, mapHeight)
		if cp.IsVerified {
			g[y][x] = glyphVerified
		} else {
			g[y][x] = glyphPlain
		}
	}
	return g
}

func (m *mapModel) view() string {
	if len(m.markers) == 0 {
		return dimStyle.Render("No counterparties with a location match the current filter.")
	}

	g := m.grid()
	sel, _ := m.selected()
	sx, sy := project(*sel.Coords, boundsOf(m.markers), mapWidth, mapHeight)

	var b strings.Builder
	for y, row := range g {
		for x, r := range row {
			switch {
			case x == sx && y == sy:
				b.WriteString(selectedStyle.Render("◉"))
			case r == glyphVerified:
				b.WriteString(verifiedStyle.Render(string(r)))
			case r == glyphEmpty:
				b.WriteString(dimStyle.Render(string(r)))
			default:
				b.WriteRune(r)
			}
		}
		b.WriteString("\n")
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		boxStyle.Render(strings.TrimRight(b.String(), "\n")),
		m.card(sel),
	)
}

// card repeats the list row for the selected marker.
func (m *mapModel) card(cp exchange.Counterparty) string {
	coords := fmt.Sprintf("%s, %s",
		exchange.Round1(decimal.NewFromFloat(cp.Coords.Lat)),
		exchange.Round1(decimal.NewFromFloat(cp.Coords.Lng)))
	lines := []string{
		selectedStyle.Render(nameCell(cp)) + dimStyle.Render(fmt.Sprintf("  (%d/%d)", m.cursor+1, len(m.markers))),
		labelStyle.Render("Currency") + cp.Balance.Currency,
		labelStyle.Render("Rate") + cp.RateText(),
		labelStyle.Render("Limit") + cp.CashLimit(),
		labelStyle.Render("Location") + coords,
	}
	if bs := badges(cp); bs != "" {
		lines = append(lines, labelStyle.Render("Payment")+bs)
	}
	lines = append(lines, "", dimStyle.Render("enter: exchange   ←/→: next marker"))
	return strings.Join(lines, "\n")
}

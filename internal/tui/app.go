package tui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/simonvc/p2pdesk/internal/client"
	"github.com/simonvc/p2pdesk/internal/exchange"
	"github.com/simonvc/p2pdesk/internal/logger"
)

// Storefront is the part of the exchange API the screens use.
type Storefront interface {
	GetContractors(ctx context.Context) ([]exchange.Counterparty, error)
	GetUser(ctx context.Context) (*exchange.Profile, error)
	SubmitExchange(ctx context.Context, req exchange.ExchangeRequest) error
}

// Settings tunes the timing of the exchange dialog.
type Settings struct {
	Debounce        time.Duration
	Throttle        time.Duration
	MessageTimeout  time.Duration
	PaymentPassword string
}

type mode int

const (
	modeStorefront mode = iota
	modeDialog
)

type contractorsLoadedMsg struct {
	contractors []exchange.Counterparty
	err         error
}

// dialogReadyMsg carries a fresh profile for the dialog being opened.
type dialogReadyMsg struct {
	contractor exchange.Counterparty
	profile    *exchange.Profile
	err        error
}

type App struct {
	api      Storefront
	settings Settings
	mode     mode
	filter   exchange.Filter

	width, height int
	statusMsg     string
	statusErr     bool

	all     []exchange.Counterparty
	loading bool
	err     error

	header  headerModel
	list    listModel
	mapView mapModel
	dialog  dialogModel
}

func NewApp(api Storefront, settings Settings) *App {
	return &App{
		api:      api,
		settings: settings,
		mode:     modeStorefront,
		filter:   exchange.Filter{Tab: exchange.TabBuy, View: exchange.ViewList},
	}
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(
		a.header.init(a.api),
		a.loadContractors(),
	)
}

// loadContractors refetches the list; every filter change goes through here.
func (a *App) loadContractors() tea.Cmd {
	a.loading = true
	api := a.api
	return func() tea.Msg {
		list, err := api.GetContractors(context.Background())
		return contractorsLoadedMsg{contractors: list, err: err}
	}
}

func (a *App) applyFilter() {
	visible := a.filter.Apply(a.all)
	if a.filter.View == exchange.ViewMap {
		a.mapView.setMarkers(visible)
	} else {
		a.list.setRows(visible)
	}
}

func (a *App) openDialog(cp exchange.Counterparty) tea.Cmd {
	a.setStatus("Opening exchange with "+cp.UserName+"...", false)
	api := a.api
	return func() tea.Msg {
		p, err := api.GetUser(context.Background())
		return dialogReadyMsg{contractor: cp, profile: p, err: err}
	}
}

func (a *App) setStatus(msg string, isErr bool) {
	a.statusMsg = msg
	a.statusErr = isErr
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.list.height = msg.Height - 8
		return a, nil

	case profileLoadedMsg:
		a.header = a.header.update(msg)
		if msg.err != nil {
			logger.L().Warn("profile load failed", zap.Error(msg.err))
		}
		return a, nil

	case contractorsLoadedMsg:
		a.loading = false
		a.err = msg.err
		if msg.err != nil {
			logger.L().Warn("contractor load failed", zap.Error(msg.err))
			a.all = nil
		} else {
			a.all = msg.contractors
		}
		a.applyFilter()
		return a, nil

	case dialogReadyMsg:
		if msg.err != nil {
			a.setStatus(unavailableText(msg.err), true)
			return a, nil
		}
		a.header = a.header.update(profileLoadedMsg{profile: msg.profile})
		s, err := exchange.NewSession(msg.contractor, *msg.profile, a.settings.PaymentPassword)
		if err != nil {
			a.setStatus("Cannot trade with "+msg.contractor.UserName+": "+err.Error(), true)
			return a, nil
		}
		a.setStatus("", false)
		a.dialog = newDialog(s, a.settings)
		a.mode = modeDialog
		return a, a.dialog.applyFocus()
	}

	switch msg.(type) {
	case recalcMsg, exchangeResultMsg, flashExpiredMsg:
		// Late arrivals from a dialog that is already closed.
		if a.mode != modeDialog {
			return a, nil
		}
	}

	if a.mode == modeDialog {
		if k, ok := msg.(tea.KeyMsg); ok && k.String() == "ctrl+c" {
			return a, tea.Quit
		}
		var cmd tea.Cmd
		a.dialog, cmd = a.dialog.update(msg, a.api)
		if a.dialog.closed {
			// The session goes with the dialog.
			a.dialog = dialogModel{}
			a.mode = modeStorefront
			return a, a.header.init(a.api)
		}
		return a, cmd
	}

	if k, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(k, keys.Quit):
			return a, tea.Quit

		case key.Matches(k, keys.Refresh):
			a.setStatus("", false)
			return a, tea.Batch(a.header.init(a.api), a.loadContractors())

		case key.Matches(k, keys.Buy), key.Matches(k, keys.Sell):
			if a.filter.View == exchange.ViewMap {
				return a, nil
			}
			tab := exchange.TabBuy
			if key.Matches(k, keys.Sell) {
				tab = exchange.TabSell
			}
			if tab == a.filter.Tab {
				return a, nil
			}
			a.filter.Tab = tab
			a.setStatus("", false)
			a.applyFilter()
			return a, a.loadContractors()

		case key.Matches(k, keys.Verified):
			a.filter.VerifiedOnly = !a.filter.VerifiedOnly
			a.applyFilter()
			return a, a.loadContractors()

		case key.Matches(k, keys.Map):
			if a.filter.Tab == exchange.TabSell {
				a.setStatus("The map is only available on the buy tab", true)
				return a, nil
			}
			if a.filter.View == exchange.ViewMap {
				a.filter.View = exchange.ViewList
			} else {
				a.filter.View = exchange.ViewMap
			}
			a.setStatus("", false)
			a.applyFilter()
			return a, a.loadContractors()

		case key.Matches(k, keys.Enter):
			var cp exchange.Counterparty
			var ok bool
			if a.filter.View == exchange.ViewMap {
				cp, ok = a.mapView.selected()
			} else {
				cp, ok = a.list.selected()
			}
			if ok {
				return a, a.openDialog(cp)
			}
			return a, nil
		}
	}

	var cmd tea.Cmd
	if a.filter.View == exchange.ViewMap {
		a.mapView, cmd = a.mapView.update(msg)
	} else {
		a.list, cmd = a.list.update(msg)
	}
	return a, cmd
}

func unavailableText(err error) string {
	if errors.Is(err, client.ErrUnavailable) {
		return "Service unavailable. Press r to try again."
	}
	return "Error: " + err.Error()
}

func (a *App) tabs() string {
	if a.filter.View == exchange.ViewMap {
		return activeTabStyle.Render("Map") + dimStyle.Render("  m: back to list")
	}
	render := func(label string, active bool) string {
		if active {
			return activeTabStyle.Render(label)
		}
		return inactiveTabStyle.Render(label)
	}
	bar := render("Buy KEKS", a.filter.Tab == exchange.TabBuy) + " " +
		render("Sell KEKS", a.filter.Tab == exchange.TabSell)

	check := "[ ]"
	if a.filter.VerifiedOnly {
		check = "[x]"
	}
	mapToggle := inactiveTabStyle.Render("List | Map")
	if a.filter.Tab == exchange.TabSell {
		mapToggle = disabledTabStyle.Render("List | Map")
	}
	return bar + "   " + check + " verified only   " + mapToggle
}

func (a *App) View() string {
	if a.mode == modeDialog {
		return lipgloss.JoinVertical(lipgloss.Left,
			a.header.view(),
			"",
			a.dialog.view(),
		)
	}

	var content string
	switch {
	case a.loading && a.all == nil:
		content = "Loading counterparties..."
	case a.err != nil:
		content = errorStyle.Render(unavailableText(a.err))
	case a.filter.View == exchange.ViewMap:
		content = a.mapView.view()
	default:
		content = a.list.view()
	}

	status := ""
	if a.statusMsg != "" {
		if a.statusErr {
			status = errorStyle.Render(a.statusMsg)
		} else {
			status = successStyle.Render(a.statusMsg)
		}
	}

	helpText := dimStyle.Render("b/s: buy/sell  v: verified  m: list/map  enter: exchange  r: refresh  q: quit")

	return lipgloss.JoinVertical(lipgloss.Left,
		a.header.view(),
		"",
		a.tabs(),
		"",
		content,
		"",
		status,
		helpText,
	)
}

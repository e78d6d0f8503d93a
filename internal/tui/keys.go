package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit     key.Binding
	Buy      key.Binding
	Sell     key.Binding
	Verified key.Binding
	Map      key.Binding
	Refresh  key.Binding
	Enter    key.Binding
	Escape   key.Binding
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
}

var keys = keyMap{
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Buy: key.NewBinding(
		key.WithKeys("b"),
		key.WithHelp("b", "buy tab"),
	),
	Sell: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "sell tab"),
	),
	Verified: key.NewBinding(
		key.WithKeys("v"),
		key.WithHelp("v", "verified only"),
	),
	Map: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "list/map"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "exchange"),
	),
	Escape: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "close"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("up/k", "move up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("down/j", "move down"),
	),
	Left: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("left/h", "previous"),
	),
	Right: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("right/l", "next"),
	),
}

// dialogKeyMap leaves letters free for typing.
type dialogKeyMap struct {
	Next        key.Binding
	Prev        key.Binding
	PrevMethod  key.Binding
	NextMethod  key.Binding
	ExchangeAll key.Binding
	Submit      key.Binding
	Close       key.Binding
}

var dialogKeys = dialogKeyMap{
	Next: key.NewBinding(
		key.WithKeys("tab", "down"),
		key.WithHelp("tab", "next field"),
	),
	Prev: key.NewBinding(
		key.WithKeys("shift+tab", "up"),
		key.WithHelp("shift+tab", "prev field"),
	),
	PrevMethod: key.NewBinding(
		key.WithKeys("left"),
		key.WithHelp("←", "prev method"),
	),
	NextMethod: key.NewBinding(
		key.WithKeys("right", " "),
		key.WithHelp("→", "next method"),
	),
	ExchangeAll: key.NewBinding(
		key.WithKeys("ctrl+a"),
		key.WithHelp("ctrl+a", "exchange all"),
	),
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "exchange"),
	),
	Close: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "close"),
	),
}

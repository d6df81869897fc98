package viz

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	retarget key.Binding
	pause    key.Binding
	reset    key.Binding
	next     key.Binding
	up       key.Binding
	down     key.Binding
	help     key.Binding
	quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		retarget: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "retarget"),
		),
		pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset"),
		),
		next: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "select param"),
		),
		up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "increase"),
		),
		down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "decrease"),
		),
		help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.retarget, k.pause, k.help, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.retarget, k.pause, k.reset},
		{k.next, k.up, k.down},
		{k.help, k.quit},
	}
}

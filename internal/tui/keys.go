package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	StartPause key.Binding
	Reset      key.Binding
	Work       key.Binding
	ShortBreak key.Binding
	LongBreak  key.Binding
	New        key.Binding
	Delete     key.Binding
	Toggle     key.Binding
	Focus      key.Binding
	MoreTarget key.Binding
	LessTarget key.Binding
	Export     key.Binding
	Tab1       key.Binding
	Tab2       key.Binding
	Tab3       key.Binding
	Tab4       key.Binding
	Tab        key.Binding
	Help       key.Binding
	Enter      key.Binding
	Back       key.Binding
	Up         key.Binding
	Down       key.Binding
	Quit       key.Binding
}

var keys = keyMap{
	StartPause: key.NewBinding(
		key.WithKeys("s", " "),
		key.WithHelp("s", "start/pause"),
	),
	Reset: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reset"),
	),
	Work: key.NewBinding(
		key.WithKeys("w"),
		key.WithHelp("w", "work mode"),
	),
	ShortBreak: key.NewBinding(
		key.WithKeys("b"),
		key.WithHelp("b", "short break"),
	),
	LongBreak: key.NewBinding(
		key.WithKeys("l"),
		key.WithHelp("l", "long break"),
	),
	New: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete"),
	),
	Toggle: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "toggle done"),
	),
	Focus: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "focus"),
	),
	MoreTarget: key.NewBinding(
		key.WithKeys("+", "="),
		key.WithHelp("+", "target +1"),
	),
	LessTarget: key.NewBinding(
		key.WithKeys("-"),
		key.WithHelp("-", "target -1"),
	),
	Export: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "export"),
	),
	Tab1: key.NewBinding(
		key.WithKeys("1"),
		key.WithHelp("1", "timer"),
	),
	Tab2: key.NewBinding(
		key.WithKeys("2"),
		key.WithHelp("2", "goals"),
	),
	Tab3: key.NewBinding(
		key.WithKeys("3"),
		key.WithHelp("3", "tasks"),
	),
	Tab4: key.NewBinding(
		key.WithKeys("4"),
		key.WithHelp("4", "stats"),
	),
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next view"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.StartPause, k.Reset, k.New, k.Focus, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.StartPause, k.Reset, k.Work, k.ShortBreak, k.LongBreak},
		{k.New, k.Delete, k.Toggle, k.Focus, k.MoreTarget, k.LessTarget},
		{k.Tab1, k.Tab2, k.Tab3, k.Tab4, k.Export},
		{k.Up, k.Down, k.Enter, k.Back, k.Quit},
	}
}

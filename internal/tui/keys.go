package tui

import key "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Play      key.Binding
	Mode      key.Binding
	Simplify  key.Binding
	IgnoreZ   key.Binding
	Grayscale key.Binding
	Reset     key.Binding
	ZoomIn    key.Binding
	ZoomOut   key.Binding
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	Sidebar   key.Binding
	Open      key.Binding
	Paste     key.Binding
	Attrs     key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Play:      key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "play")),
		Mode:      key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "mode")),
		Simplify:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "simplify")),
		IgnoreZ:   key.NewBinding(key.WithKeys("z"), key.WithHelp("z", "ignore Z")),
		Grayscale: key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "grayscale")),
		Reset:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		ZoomIn:    key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+/-", "zoom")),
		ZoomOut:   key.NewBinding(key.WithKeys("-", "_")),
		Up:        key.NewBinding(key.WithKeys("up"), key.WithHelp("↑↓←→", "pan")),
		Down:      key.NewBinding(key.WithKeys("down")),
		Left:      key.NewBinding(key.WithKeys("left")),
		Right:     key.NewBinding(key.WithKeys("right")),
		Sidebar:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "files")),
		Open:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Paste:     key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "paste")),
		Attrs:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "segments")),
		Help:      key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Play, k.Mode, k.Up, k.ZoomIn, k.Sidebar, k.Attrs, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Play, k.Reset, k.Mode, k.Simplify, k.IgnoreZ, k.Grayscale},
		{k.Up, k.ZoomIn, k.Sidebar, k.Open, k.Paste, k.Attrs},
		{k.Help, k.Quit},
	}
}

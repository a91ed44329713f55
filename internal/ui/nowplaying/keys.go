package nowplaying

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the transport and navigation bindings.
type KeyMap struct {
	Toggle  key.Binding
	Next    key.Binding
	Clear   key.Binding
	Back    key.Binding
	Forward key.Binding
	Search  key.Binding
	Enqueue key.Binding
	Focus   key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Toggle:  key.NewBinding(key.WithKeys(" ", "p"), key.WithHelp("space", "play/pause")),
		Next:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next")),
		Clear:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear")),
		Back:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "-5s")),
		Forward: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "+5s")),
		Search:  key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search & play")),
		Enqueue: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "search & queue")),
		Focus:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "queue")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Next, k.Back, k.Forward, k.Search, k.Help, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toggle, k.Next, k.Clear},
		{k.Back, k.Forward},
		{k.Search, k.Enqueue, k.Focus},
		{k.Help, k.Quit},
	}
}

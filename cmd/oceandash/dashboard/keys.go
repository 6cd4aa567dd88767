package dashboard

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Submit      key.Binding
	Focus       key.Binding
	Suggestion  key.Binding
	QuickAction key.Binding
	Voice       key.Binding
	LowerDown   key.Binding
	LowerUp     key.Binding
	UpperDown   key.Binding
	UpperUp     key.Binding
	Reset       key.Binding
	NextChart   key.Binding
	Export      key.Binding
	ScrollUp    key.Binding
	ScrollDown  key.Binding
	Quit        key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Submit:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "send")),
		Focus:       key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "chat/charts")),
		Suggestion:  key.NewBinding(key.WithKeys("1", "2", "3"), key.WithHelp("1-3", "suggestion")),
		QuickAction: key.NewBinding(key.WithKeys("f1", "f2", "f3", "alt+1", "alt+2", "alt+3"), key.WithHelp("F1-F3", "quick action")),
		Voice:       key.NewBinding(key.WithKeys("ctrl+v"), key.WithHelp("ctrl+v", "voice")),
		LowerDown:   key.NewBinding(key.WithKeys("["), key.WithHelp("[/]", "start")),
		LowerUp:     key.NewBinding(key.WithKeys("]")),
		UpperDown:   key.NewBinding(key.WithKeys("{"), key.WithHelp("{/}", "end")),
		UpperUp:     key.NewBinding(key.WithKeys("}")),
		Reset:       key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset range")),
		NextChart:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "next chart")),
		Export:      key.NewBinding(key.WithKeys("ctrl+e"), key.WithHelp("ctrl+e", "export")),
		ScrollUp:    key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup/pgdn", "scroll")),
		ScrollDown:  key.NewBinding(key.WithKeys("pgdown")),
		Quit:        key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Focus, k.Suggestion, k.QuickAction, k.Voice, k.Export, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Submit, k.Suggestion, k.QuickAction, k.Voice},
		{k.Focus, k.LowerDown, k.UpperDown, k.Reset, k.NextChart},
		{k.Export, k.ScrollUp, k.Quit},
	}
}

// chartHelp is shown while the charts have focus.
func (k keyMap) chartHelp() []key.Binding {
	return []key.Binding{k.Focus, k.LowerDown, k.UpperDown, k.Reset, k.NextChart, k.Export, k.Quit}
}

// digitIndex maps "1".."3" and their alt/function variants to 0..2.
func digitIndex(s string) int {
	switch s {
	case "1", "alt+1", "f1":
		return 0
	case "2", "alt+2", "f2":
		return 1
	case "3", "alt+3", "f3":
		return 2
	default:
		return -1
	}
}

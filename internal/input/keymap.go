package input

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// KeyMap maps bubbletea key presses onto named key codes
type KeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	Home      key.Binding
	End       key.Binding
	Delete    key.Binding
	ShiftTab  key.Binding
	WordLeft  key.Binding
	WordRight key.Binding
	PageUp    key.Binding
	PageDown  key.Binding
}

// DefaultKeyMap is the default translation table for named keys
var DefaultKeyMap = KeyMap{
	Up:        key.NewBinding(key.WithKeys("up")),
	Down:      key.NewBinding(key.WithKeys("down")),
	Left:      key.NewBinding(key.WithKeys("left")),
	Right:     key.NewBinding(key.WithKeys("right")),
	Home:      key.NewBinding(key.WithKeys("home")),
	End:       key.NewBinding(key.WithKeys("end")),
	Delete:    key.NewBinding(key.WithKeys("delete")),
	ShiftTab:  key.NewBinding(key.WithKeys("shift+tab")),
	WordLeft:  key.NewBinding(key.WithKeys("ctrl+left", "alt+left")),
	WordRight: key.NewBinding(key.WithKeys("ctrl+right", "alt+right")),
	PageUp:    key.NewBinding(key.WithKeys("pgup")),
	PageDown:  key.NewBinding(key.WithKeys("pgdown")),
}

func (km KeyMap) named() []struct {
	binding key.Binding
	key     Key
} {
	return []struct {
		binding key.Binding
		key     Key
	}{
		{km.Up, KeyUp},
		{km.Down, KeyDown},
		{km.Left, KeyLeft},
		{km.Right, KeyRight},
		{km.Home, KeyHome},
		{km.End, KeyEnd},
		{km.Delete, KeyDelete},
		{km.ShiftTab, KeyShiftTab},
		{km.WordLeft, KeyCtrlLeft},
		{km.WordRight, KeyCtrlRight},
		{km.PageUp, KeyPgUp},
		{km.PageDown, KeyPgDown},
	}
}

// FromKeyMsg translates a bubbletea key press into raw events. Rune messages
// carrying several runes (fast typing, unbracketed paste) yield one event per
// rune. Alt-modified runes are not command line input and yield nothing.
func (km KeyMap) FromKeyMsg(msg tea.KeyMsg) []Event {
	switch msg.Type {
	case tea.KeyRunes:
		if msg.Alt {
			return nil
		}
		events := make([]Event, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			events = append(events, RuneEvent(r))
		}
		return events
	case tea.KeySpace:
		return []Event{KeyEvent(KeySpace)}
	}

	// Control characters share their ASCII code with bubbletea's key types
	if msg.Type >= 0 && (msg.Type < 32 || msg.Type == 127) {
		return []Event{KeyEvent(Key(msg.Type))}
	}

	for _, n := range km.named() {
		if key.Matches(msg, n.binding) {
			return []Event{KeyEvent(n.key)}
		}
	}
	return nil
}

// FromKeyMsg translates with DefaultKeyMap
func FromKeyMsg(msg tea.KeyMsg) []Event {
	return DefaultKeyMap.FromKeyMsg(msg)
}

// Package input models raw terminal input events as the command line sees
// them: a single key code, a multi-byte UTF-8 character, or a pointer event.
package input

import (
	"fmt"
	"unicode/utf8"
)

// EventType distinguishes the three kinds of raw input
type EventType int

const (
	EventKey EventType = iota
	EventUTF8
	EventMouse
)

// Key is an integer key code. Control characters keep their ASCII value,
// printable ASCII characters are their own code, and named keys live above
// KeyNamed.
type Key int

// Control codes
const (
	KeyNone      Key = 0
	KeyCtrlA     Key = 1
	KeyCtrlC     Key = 3
	KeyCtrlE     Key = 5
	KeyCtrlH     Key = 8
	KeyTab       Key = 9
	KeyEnter     Key = 13
	KeyCtrlN     Key = 14
	KeyCtrlP     Key = 16
	KeyCtrlV     Key = 22
	KeyEsc       Key = 27
	KeySpace     Key = 32
	KeyBackspace Key = 127
)

// Named keys
const (
	KeyNamed Key = 256 + iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyDelete
	KeyShiftTab
	KeyCtrlLeft
	KeyCtrlRight
	KeyPgUp
	KeyPgDown
)

var keyNames = map[Key]string{
	KeyTab:       "tab",
	KeyEnter:     "enter",
	KeyEsc:       "esc",
	KeySpace:     " ",
	KeyBackspace: "backspace",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyHome:      "home",
	KeyEnd:       "end",
	KeyDelete:    "delete",
	KeyShiftTab:  "shift+tab",
	KeyCtrlLeft:  "ctrl+left",
	KeyCtrlRight: "ctrl+right",
	KeyPgUp:      "pgup",
	KeyPgDown:    "pgdown",
}

// String returns the canonical key name, matching the names bubbletea gives
// the same keys so that configured bindings read naturally ("ctrl+u", "G").
func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	switch {
	case k > 0 && k <= 26:
		return "ctrl+" + string(rune('a'+k-1))
	case k > 26 && k < 32:
		return fmt.Sprintf("ctrl+%c", rune('@'+k))
	case k.IsPrintable():
		return string(rune(k))
	default:
		return fmt.Sprintf("key(%d)", int(k))
	}
}

// IsPrintable reports whether k is a printable ASCII character
func (k Key) IsPrintable() bool {
	return k > 31 && k < 127
}

// Event is one raw input event
type Event struct {
	Type  EventType
	Key   Key    // EventKey only
	Bytes []byte // EventUTF8 only: the encoded character
}

// KeyEvent builds an EventKey
func KeyEvent(k Key) Event {
	return Event{Type: EventKey, Key: k}
}

// RuneEvent builds the event for a typed character: ASCII becomes a key code,
// anything wider becomes a UTF-8 event.
func RuneEvent(r rune) Event {
	if r < utf8.RuneSelf {
		return KeyEvent(Key(r))
	}
	buf := make([]byte, utf8.RuneLen(r))
	utf8.EncodeRune(buf, r)
	return Event{Type: EventUTF8, Bytes: buf}
}

// MouseEvent builds a pointer event
func MouseEvent() Event {
	return Event{Type: EventMouse}
}

// Name returns the canonical printable name used for key sequence matching.
// UTF-8 events name themselves with their raw bytes; mouse events have no name.
func (e Event) Name() string {
	switch e.Type {
	case EventKey:
		return e.Key.String()
	case EventUTF8:
		return string(e.Bytes)
	default:
		return ""
	}
}

// Text returns the characters an event inserts into a line, if any
func (e Event) Text() (string, bool) {
	switch e.Type {
	case EventKey:
		if e.Key.IsPrintable() {
			return string(rune(e.Key)), true
		}
	case EventUTF8:
		if len(e.Bytes) > 1 && utf8.Valid(e.Bytes) {
			return string(e.Bytes), true
		}
	}
	return "", false
}

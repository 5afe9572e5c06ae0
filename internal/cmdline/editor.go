// Package cmdline is the interactive command line: it routes raw input
// events into the line buffer, the per-mode history rings and the completion
// engine, and exposes a snapshot for rendering.
package cmdline

import (
	"log/slog"
	"strings"

	"github.com/kilikali/kilikali/internal/command"
	"github.com/kilikali/kilikali/internal/completion"
	"github.com/kilikali/kilikali/internal/input"
	"github.com/kilikali/kilikali/internal/linebuf"
	"github.com/kilikali/kilikali/internal/types"
)

// Action tells the caller what an input event did
type Action int

const (
	ActionNone   Action = iota // event ignored
	ActionEdit                 // text, cursor or completion state changed
	ActionCommit               // Enter: the line was pushed into history
	ActionCancel               // Esc or ctrl+c cleared the line
)

// String returns the string representation of the action
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionEdit:
		return "edit"
	case ActionCommit:
		return "commit"
	case ActionCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// Snapshot is everything the prompt needs to draw the command line
type Snapshot struct {
	Text       string
	Cursor     int // codepoint offset
	Mode       types.Mode
	MenuMode   types.MenuMode
	Domain     completion.Domain
	Candidates []completion.Candidate
	Selected   int // -1 when nothing is selected
	SearchDir  string
}

// Editor is a single-line editor with history and completion
type Editor struct {
	buf            *linebuf.Buffer
	history        *linebuf.History
	engine         *completion.Engine
	menu           types.MenuMode
	implicitLookup bool
	logger         *slog.Logger
}

// Option configures an Editor
type Option func(*Editor)

// WithMenuMode sets how candidate lists are presented
func WithMenuMode(mode types.MenuMode) Option {
	return func(e *Editor) {
		e.menu = mode
	}
}

// WithMaxEntries caps the number of listed directory entries
func WithMaxEntries(n int) Option {
	return func(e *Editor) {
		e.engine.SetMaxEntries(n)
	}
}

// WithImplicitLookup controls whether typing a space right after the command
// name completes it
func WithImplicitLookup(enabled bool) Option {
	return func(e *Editor) {
		e.implicitLookup = enabled
	}
}

// New creates an editor completing against registry. A nil fsys uses the
// local filesystem and a nil logger uses slog.Default().
func New(registry *command.Registry, fsys completion.FS, logger *slog.Logger, opts ...Option) *Editor {
	if logger == nil {
		logger = slog.Default()
	}
	buf := linebuf.NewBuffer()
	e := &Editor{
		buf:            buf,
		history:        linebuf.NewHistory(),
		engine:         completion.NewEngine(buf, registry, fsys, logger),
		menu:           types.MenuNone,
		implicitLookup: true,
		logger:         logger,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SetMode switches the history ring and command set. The line is kept;
// callers entering a prompt usually Clear as well.
func (e *Editor) SetMode(mode types.Mode) {
	e.history.SetMode(mode)
	e.engine.SetMode(mode)
}

// Mode returns the active mode
func (e *Editor) Mode() types.Mode {
	return e.history.Mode()
}

// SetMenuMode changes how candidate lists are presented and which keys
// navigate them
func (e *Editor) SetMenuMode(mode types.MenuMode) {
	e.menu = mode
}

// MenuMode returns the presentation mode
func (e *Editor) MenuMode() types.MenuMode {
	return e.menu
}

// Clear empties the line and drops completion state
func (e *Editor) Clear() {
	e.engine.Invalidate()
	e.buf.Clear()
	e.history.Reset()
}

// Text returns the current line
func (e *Editor) Text() string {
	return e.buf.String()
}

// Cursor returns the cursor codepoint offset
func (e *Editor) Cursor() int {
	return e.buf.Cursor()
}

// History returns the history rings
func (e *Editor) History() *linebuf.History {
	return e.history
}

// CurrentCommand returns the command named by the first token, if any
func (e *Editor) CurrentCommand() *command.Command {
	return e.engine.CurrentCommand()
}

// Snapshot returns the render state
func (e *Editor) Snapshot() Snapshot {
	return Snapshot{
		Text:       e.buf.String(),
		Cursor:     e.buf.Cursor(),
		Mode:       e.history.Mode(),
		MenuMode:   e.menu,
		Domain:     e.engine.Domain(),
		Candidates: e.engine.Candidates(),
		Selected:   e.engine.Selected(),
		SearchDir:  e.engine.SearchDir(),
	}
}

// Paste inserts the first line of text at the cursor. Text that does not fit
// is dropped as a whole.
func (e *Editor) Paste(text string) bool {
	if i := strings.IndexAny(text, "\r\n"); i >= 0 {
		text = text[:i]
	}
	text = strings.ReplaceAll(text, "\t", " ")
	if text == "" {
		return false
	}
	e.engine.Invalidate()
	if !e.buf.InsertAtCursor(text) {
		e.logger.Debug("paste does not fit the line", "bytes", len(text), "free", e.buf.Free())
		return false
	}
	return true
}

// Input applies one raw event
func (e *Editor) Input(ev input.Event) Action {
	switch ev.Type {
	case input.EventUTF8:
		if text, ok := ev.Text(); ok {
			return e.insert(text)
		}
		return ActionNone
	case input.EventKey:
	default:
		return ActionNone
	}

	if ev.Key == input.KeySpace && e.lookupOnSpace() {
		return ActionEdit
	}
	if text, ok := ev.Text(); ok {
		return e.insert(text)
	}

	switch ev.Key {
	case input.KeyEnter:
		e.engine.Invalidate()
		e.history.Commit(e.buf.String())
		return ActionCommit

	case input.KeyTab, input.KeyCtrlN:
		return e.advance(true)
	case input.KeyShiftTab, input.KeyCtrlP:
		return e.advance(false)

	case input.KeyLeft:
		if e.menuActive() {
			return e.advance(false)
		}
		e.engine.Invalidate()
		e.buf.MoveCursor(-1)
	case input.KeyRight:
		if e.menuActive() {
			return e.advance(true)
		}
		e.engine.Invalidate()
		e.buf.MoveCursor(1)
	case input.KeyUp:
		if e.menuActive() {
			e.engine.SelectParent()
			return ActionEdit
		}
		e.engine.Invalidate()
		if line, ok := e.history.Prev(e.buf.String()); ok {
			e.buf.SetText(line)
		}
	case input.KeyDown:
		if e.menuActive() {
			e.engine.SelectChild()
			return ActionEdit
		}
		e.engine.Invalidate()
		if line, ok := e.history.Next(); ok {
			e.buf.SetText(line)
		}

	case input.KeyEsc, input.KeyCtrlC:
		// With a menu on screen Esc only closes the list
		cancel := !e.menuActive()
		if cancel {
			e.buf.Clear()
			e.history.Reset()
		}
		e.engine.Invalidate()
		if cancel {
			return ActionCancel
		}

	case input.KeyBackspace, input.KeyCtrlH:
		e.engine.Invalidate()
		e.buf.DeleteAt(e.buf.Cursor())
	case input.KeyDelete:
		e.engine.Invalidate()
		e.buf.DeleteAt(e.buf.Cursor() + 1)
	case input.KeyHome, input.KeyCtrlA:
		e.engine.Invalidate()
		e.buf.Home()
	case input.KeyEnd, input.KeyCtrlE:
		e.engine.Invalidate()
		e.buf.End()
	case input.KeyCtrlLeft:
		e.engine.Invalidate()
		e.buf.SetCursor(e.buf.PrevWord())
	case input.KeyCtrlRight:
		e.engine.Invalidate()
		e.buf.SetCursor(e.buf.NextWord())

	default:
		return ActionNone
	}
	return ActionEdit
}

func (e *Editor) insert(text string) Action {
	e.engine.Invalidate()
	if !e.buf.InsertAtCursor(text) {
		return ActionNone
	}
	return ActionEdit
}

func (e *Editor) advance(forward bool) Action {
	if !e.engine.Advance(forward) {
		return ActionNone
	}
	return ActionEdit
}

// menuActive reports whether arrow keys navigate the candidate list
func (e *Editor) menuActive() bool {
	return e.menu != types.MenuNone && e.engine.HasCandidates()
}

// lookupOnSpace completes the command name when a space is typed directly
// after it. It returns false when the space still has to be inserted.
func (e *Editor) lookupOnSpace() bool {
	if !e.implicitLookup || e.history.Mode().IsSearch() {
		return false
	}
	_, end, token := e.engine.CommandToken()
	if token == "" || e.buf.Cursor() != end {
		return false
	}
	cmd, err := e.engine.Lookup()
	if err != nil {
		e.logger.Debug("implicit lookup failed", "token", token, "error", err)
		return false
	}
	e.logger.Debug("implicit lookup", "token", token, "command", cmd.Name)
	return true
}

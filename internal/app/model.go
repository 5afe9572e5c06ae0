// Package app contains the main application model and TEA implementation.
package app

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/kilikali/kilikali/internal/browser"
	"github.com/kilikali/kilikali/internal/cmdline"
	"github.com/kilikali/kilikali/internal/command"
	"github.com/kilikali/kilikali/internal/commands"
	"github.com/kilikali/kilikali/internal/completion"
	"github.com/kilikali/kilikali/internal/config"
	"github.com/kilikali/kilikali/internal/domain"
	"github.com/kilikali/kilikali/internal/input"
	"github.com/kilikali/kilikali/internal/keyseq"
	"github.com/kilikali/kilikali/internal/playlist"
	"github.com/kilikali/kilikali/internal/types"
	"github.com/kilikali/kilikali/internal/ui/help"
	"github.com/kilikali/kilikali/internal/ui/prompt"
	"github.com/kilikali/kilikali/internal/ui/styles"
	"github.com/kilikali/kilikali/internal/ui/toast"
)

// toastTick is how often expired toasts are pruned
const toastTick = 500 * time.Millisecond

// Model is the bubbletea model of the player
type Model struct {
	player *player

	// Command line
	editor     *cmdline.Editor
	registry   *command.Registry
	dispatcher *command.Dispatcher
	prompting  bool

	// Key sequences outside the prompt
	bindings *config.Bindings
	matcher  *keyseq.Matcher

	// Scroll offsets of the lists
	playlistTop int
	browserTop  int

	// Rendering
	styles *styles.Styles
	prompt *prompt.Renderer
	toasts *toast.Renderer
	help   *help.Screen
	width  int
	height int

	config    *config.Config
	clipboard func() (string, error)
	logger    *slog.Logger
}

type options struct {
	logger       *slog.Logger
	fsys         completion.FS
	clipboard    func() (string, error)
	playlistPath string
	watcher      *browser.Watcher
}

// Option configures a Model
type Option func(*options)

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithFS sets the filesystem used for completion and browsing
func WithFS(fsys completion.FS) Option {
	return func(o *options) {
		o.fsys = fsys
	}
}

// WithClipboard replaces the system clipboard reader used by ctrl+v
func WithClipboard(read func() (string, error)) Option {
	return func(o *options) {
		o.clipboard = read
	}
}

// WithPlaylistPath sets the file used by a bare write and loaded at start-up
func WithPlaylistPath(path string) Option {
	return func(o *options) {
		o.playlistPath = path
	}
}

// WithWatcher refreshes the file browser when its directory changes
func WithWatcher(w *browser.Watcher) Option {
	return func(o *options) {
		o.watcher = w
	}
}

// New creates the application model for cfg
func New(cfg *config.Config, opts ...Option) (Model, error) {
	o := options{
		logger:       slog.Default(),
		clipboard:    clipboard.ReadAll,
		playlistPath: config.DefaultPlaylistPath(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	bindings, err := cfg.KeyBindings()
	if err != nil {
		return Model{}, err
	}

	p := &player{
		config:       cfg,
		playlist:     playlist.New(playlist.ParseCaseSensitivity(cfg.SearchCaseSensitivity)),
		browser:      browser.New(o.fsys, cfg.MaxDirEntries, o.logger),
		expander:     playlist.NewExpander(o.logger),
		watcher:      o.watcher,
		playlistPath: o.playlistPath,
		screen:       ScreenPlaylist,
		logger:       o.logger,
	}

	registry := command.NewRegistry()
	if err := commands.Register(registry, p); err != nil {
		return Model{}, err
	}

	st := styles.New()
	return Model{
		player: p,
		editor: cmdline.New(registry, o.fsys, o.logger,
			cmdline.WithMenuMode(cfg.MenuMode()),
			cmdline.WithMaxEntries(cfg.MaxDirEntries),
		),
		registry:   registry,
		dispatcher: command.NewDispatcher(registry, o.logger),
		bindings:   bindings,
		matcher:    keyseq.NewMatcher(bindings),
		styles:     st,
		prompt:     prompt.New(st),
		toasts:     toast.New(st),
		help:       help.New(st, helpSections(bindings, registry)),
		config:     cfg,
		clipboard:  o.clipboard,
		logger:     o.logger,
	}, nil
}

// LoadPlaylist restores the default playlist file
func (m Model) LoadPlaylist() error {
	return m.player.loadDefault()
}

// Exec runs a command line as if it was typed at the prompt
func (m Model) Exec(line string) error {
	return m.dispatcher.Run(line)
}

// Playlist returns the playlist
func (m Model) Playlist() *playlist.Playlist {
	return m.player.playlist
}

// Screen returns the page being shown
func (m Model) Screen() Screen {
	return m.player.screen
}

// Toasts returns the notifications on screen
func (m Model) Toasts() []types.Toast {
	return m.player.toasts
}

// Init returns the initial command for the application
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickEvery(toastTick), m.waitForChange())
}

type tickMsg time.Time

type clipboardMsg struct {
	text string
	err  error
}

type dirChangedMsg struct {
	dir string
}

func tickEvery(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// waitForChange delivers the next directory change from the watcher
func (m Model) waitForChange() tea.Cmd {
	w := m.player.watcher
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		dir, ok := <-w.Changes()
		if !ok {
			return nil
		}
		return dirChangedMsg{dir: dir}
	}
}

func (m Model) pasteCmd() tea.Cmd {
	read := m.clipboard
	return func() tea.Msg {
		text, err := read()
		return clipboardMsg{text: text, err: err}
	}
}

// Update handles incoming messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.follow()
		return m, nil

	case tickMsg:
		m.player.toasts = toast.Prune(m.player.toasts, time.Time(msg))
		return m, tickEvery(toastTick)

	case clipboardMsg:
		if msg.err != nil {
			m.logger.Warn("clipboard unavailable", "error", msg.err)
			m.player.notify(types.ToastError, "Clipboard: %v", msg.err)
			return m, nil
		}
		if m.prompting && m.editor.Paste(msg.text) {
			m.afterEdit()
		}
		return m, nil

	case dirChangedMsg:
		if msg.dir == m.player.browser.Dir() {
			if err := m.player.browser.Refresh(); err != nil {
				m.logger.Warn("refresh failed", "dir", msg.dir, "error", err)
			} else {
				m.player.notify(types.ToastInfo, "Directory contents changed")
			}
			m.follow()
		}
		return m, m.waitForChange()

	case tea.MouseMsg:
		m.matcher.Reset()
		if msg.Action == tea.MouseActionPress {
			switch msg.Button {
			case tea.MouseButtonWheelUp:
				m.move(-1)
			case tea.MouseButtonWheelDown:
				m.move(1)
			}
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// handleKey routes a key press to the prompt or to the binding matcher
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.prompting && msg.Paste {
		if m.editor.Paste(string(msg.Runes)) {
			m.afterEdit()
		}
		return m, nil
	}

	var cmds []tea.Cmd
	for _, ev := range input.FromKeyMsg(msg) {
		if m.prompting {
			cmds = append(cmds, m.promptEvent(ev))
		} else {
			m.bindingEvent(ev)
		}
		if m.player.quitting {
			return m, tea.Quit
		}
	}
	m.follow()
	return m, batch(cmds)
}

// batch drops nil commands and skips the batch wrapper for a single one
func batch(cmds []tea.Cmd) tea.Cmd {
	cmds = slices.DeleteFunc(cmds, func(c tea.Cmd) bool { return c == nil })
	switch len(cmds) {
	case 0:
		return nil
	case 1:
		return cmds[0]
	}
	return tea.Batch(cmds...)
}

// promptEvent feeds one event to the editor and, for the abort binding, to
// the matcher. The matcher never keeps state across prompt events.
func (m *Model) promptEvent(ev input.Event) tea.Cmd {
	if ev.Type == input.EventKey && ev.Key == input.KeyCtrlV {
		return m.pasteCmd()
	}

	mode := m.editor.Mode()
	action := m.editor.Input(ev)
	res := m.matcher.Add(ev)
	m.matcher.Reset()

	switch {
	case action == cmdline.ActionCommit:
		m.commit(mode)
	case action == cmdline.ActionCancel,
		action == cmdline.ActionNone && res.Binding == config.BindingAbort:
		m.cancelPrompt(mode)
	case action == cmdline.ActionEdit:
		m.afterEdit()
	}
	return nil
}

// openPrompt enters mode with an empty line
func (m *Model) openPrompt(mode types.Mode) {
	m.matcher.Reset()
	m.editor.SetMode(mode)
	m.editor.Clear()
	m.prompting = true
	if mode == types.ModeFileBrowserSearch {
		m.player.browser.BeginSearch()
	}
	m.logger.Debug("prompt opened", "mode", mode.String())
}

func (m *Model) closePrompt() {
	m.editor.Clear()
	m.prompting = false
	m.matcher.Reset()
}

// afterEdit updates the incremental search of the search prompts
func (m *Model) afterEdit() {
	text := m.editor.Text()
	switch m.editor.Mode() {
	case types.ModeSearch:
		pl := m.player.playlist
		if text == "" {
			pl.ClearPattern()
			return
		}
		// Half-typed patterns are often invalid; keep the last valid one
		if err := pl.SetPattern(text); err == nil {
			pl.Find(pl.Cursor()+1, false)
		}
	case types.ModeFileBrowserSearch:
		m.player.browser.Search(text)
	}
}

func (m *Model) commit(mode types.Mode) {
	line := m.editor.Text()
	m.closePrompt()

	switch mode {
	case types.ModeCommand, types.ModeFileBrowser:
		if strings.TrimSpace(line) != "" {
			m.run(line)
		}
	case types.ModeSearch:
		if line == "" {
			m.player.playlist.ClearPattern()
			return
		}
		m.run(commands.NameSearch + " " + command.Quote(line))
	case types.ModeFileBrowserSearch:
		m.player.browser.CompleteSearch()
	}
}

func (m *Model) cancelPrompt(mode types.Mode) {
	m.closePrompt()
	switch mode {
	case types.ModeSearch:
		m.player.playlist.ClearPattern()
	case types.ModeFileBrowserSearch:
		m.player.browser.CancelSearch()
	}
}

// run dispatches line and reports failures as toasts
func (m *Model) run(line string) {
	if err := m.dispatcher.Run(line); err != nil {
		m.player.notify(types.ToastError, "%s", errorMessage(err))
	}
}

// errorMessage turns a dispatcher error into a line for the user
func errorMessage(err error) string {
	var ce *domain.CommandError
	if !errors.As(err, &ce) {
		return err.Error()
	}
	if errors.Is(err, domain.ErrNoSuchCommand) {
		if ce.Name == "" {
			return "No such command"
		}
		return fmt.Sprintf("No such command: %s", ce.Name)
	}

	cause := ce.Err
	if joined, ok := cause.(interface{ Unwrap() []error }); ok {
		if errs := joined.Unwrap(); len(errs) > 0 {
			cause = errs[len(errs)-1]
		}
	}
	if ce.Name == "" {
		return fmt.Sprintf("Error: %v", cause)
	}
	return fmt.Sprintf("Error: %s: %v", ce.Name, firstLine(cause.Error()))
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + " …"
	}
	return s
}

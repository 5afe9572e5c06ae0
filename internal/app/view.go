package app

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/kilikali/kilikali/internal/browser"
	"github.com/kilikali/kilikali/internal/command"
	"github.com/kilikali/kilikali/internal/config"
	"github.com/kilikali/kilikali/internal/playlist"
	"github.com/kilikali/kilikali/internal/types"
	"github.com/kilikali/kilikali/internal/ui/help"
	"github.com/kilikali/kilikali/internal/ui/statusbar"
	"github.com/mattn/go-runewidth"
)

// View renders the current screen
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	height := m.listHeight()
	var body string
	switch m.player.screen {
	case ScreenBrowser:
		body = m.renderBrowser(height)
	case ScreenHelp:
		body = m.help.View(m.width, height)
	default:
		body = m.renderPlaylist(height)
	}
	body = m.overlayToasts(fitLines(body, height), height)

	parts := []string{m.renderTitle(), body}
	parts = append(parts, m.bottom()...)
	parts = append(parts, m.renderStatusBar())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// bottom returns the candidate menu and the prompt line while prompting
func (m Model) bottom() []string {
	if !m.prompting {
		return nil
	}
	snap := m.editor.Snapshot()
	var out []string
	if menu := m.prompt.RenderMenu(snap, m.width); menu != "" {
		out = append(out, menu)
	}
	return append(out, m.prompt.Render(snap, m.width))
}

// listHeight is the number of rows left for the screen body
func (m Model) listHeight() int {
	used := 2 // title and status bar
	for _, part := range m.bottom() {
		used += lipgloss.Height(part)
	}
	return max(1, m.height-used)
}

func (m Model) renderTitle() string {
	var info string
	switch m.player.screen {
	case ScreenBrowser:
		info = m.player.browser.Dir()
	case ScreenHelp:
		info = "Help"
	default:
		n := m.player.playlist.Len()
		info = fmt.Sprintf("%d %s", n, plural(n, "track"))
		if p := m.player.playlist.Pattern(); p != "" {
			info += "  /" + p
		}
	}
	title := m.styles.Title.Render("kilikali")
	room := m.width - lipgloss.Width(title) - 1
	if room > 3 {
		title += " " + m.styles.TitleInfo.Render(runewidth.Truncate(info, room, "…"))
	}
	return title
}

func (m Model) renderStatusBar() string {
	label := m.player.screen.String()
	if m.prompting {
		label = statusbar.LabelCommand
		if m.editor.Mode().IsSearch() {
			label = statusbar.LabelSearch
		}
	}

	var info string
	switch m.player.screen {
	case ScreenPlaylist:
		if n := m.player.playlist.Len(); n > 0 {
			info = fmt.Sprintf("%d/%d", m.player.playlist.Cursor()+1, n)
		}
	case ScreenBrowser:
		if n := m.player.browser.Len(); n > 0 {
			info = fmt.Sprintf("%d/%d", m.player.browser.Cursor()+1, n)
		}
	}

	return statusbar.New(label, m.width, m.styles).
		WithPending(m.matcher.String()).
		WithInfo(info).
		Render()
}

func (m Model) renderPlaylist(height int) string {
	pl := m.player.playlist
	if pl.Len() == 0 {
		return m.styles.Empty.Render("Playlist is empty. Press a to browse files or type :add <path>.")
	}

	numWidth := len(strconv.Itoa(pl.Len()))
	end := min(m.playlistTop+height, pl.Len())
	rows := make([]string, 0, end-m.playlistTop)
	for i := m.playlistTop; i < end; i++ {
		t, _ := pl.Track(i)
		num := fmt.Sprintf("%*d ", numWidth, i+1)
		name := runewidth.Truncate(t.Name(), max(1, m.width-len(num)-1), "…")

		style := m.styles.Row
		switch {
		case i == pl.Cursor():
			style = m.styles.RowCursor
		case pl.Matches(i):
			style = m.styles.RowMatch
		case t.Kind == playlist.KindStream:
			style = m.styles.RowStream
		}
		rows = append(rows, m.styles.RowNumber.Render(num)+style.Render(name))
	}
	return strings.Join(rows, "\n")
}

func (m Model) renderBrowser(height int) string {
	b := m.player.browser
	if b.Len() == 0 {
		return m.styles.Empty.Render("Directory is empty.")
	}

	entries := b.Entries()
	end := min(m.browserTop+height, len(entries))
	rows := make([]string, 0, end-m.browserTop)
	for i := m.browserTop; i < end; i++ {
		e := entries[i]
		name := e.Name
		if e.Dir && name != browser.ParentName {
			name += "/"
		}
		name = runewidth.Truncate(name, max(1, m.width-1), "…")

		style := m.styles.Row
		switch {
		case i == b.Cursor():
			style = m.styles.RowCursor
		case b.Matches(i):
			style = m.styles.RowMatch
		case e.Dir:
			style = m.styles.RowDirectory
		}
		rows = append(rows, style.Render(name))
	}
	return strings.Join(rows, "\n")
}

// fitLines pads or cuts s to exactly height lines
func fitLines(s string, height int) []string {
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		return lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return lines
}

// overlayToasts draws the toasts over the bottom right of the body
func (m Model) overlayToasts(lines []string, height int) string {
	view := m.toasts.Render(m.player.toasts, m.width)
	if view != "" {
		toastLines := strings.Split(view, "\n")
		if len(toastLines) > height {
			toastLines = toastLines[len(toastLines)-height:]
		}
		start := height - len(toastLines)
		for i, tl := range toastLines {
			lines[start+i] = lipgloss.PlaceHorizontal(m.width, lipgloss.Right, tl)
		}
	}
	return strings.Join(lines, "\n")
}

// bindingGroups orders the key binding reference
var bindingGroups = []struct {
	name     string
	bindings []string
}{
	{"Movement", []string{
		config.BindingMoveUp, config.BindingMoveDown,
		config.BindingHalfPageUp, config.BindingHalfPageDown,
		config.BindingPageUp, config.BindingPageDown,
		config.BindingMoveTop, config.BindingMoveBottom, config.BindingCenter,
	}},
	{"Playlist", []string{
		config.BindingCommandMode, config.BindingSearchMode,
		config.BindingSearchNext, config.BindingSearchPrevious,
		config.BindingRemove, config.BindingFileBrowser,
		config.BindingHelp, config.BindingQuit, config.BindingAbort,
	}},
	{"File browser", []string{
		config.BindingBrowserAdd, config.BindingBrowserEnter,
		config.BindingBrowserParent, config.BindingBrowserRefresh,
	}},
}

// helpSections lists the configured key bindings and the commands of each
// command line mode
func helpSections(bindings *config.Bindings, registry *command.Registry) []help.Section {
	var sections []help.Section
	for _, g := range bindingGroups {
		sec := help.Section{Name: g.name}
		for _, name := range g.bindings {
			seqs := bindings.Sequences(name)
			if len(seqs) == 0 {
				continue
			}
			keys := make([]string, len(seqs))
			for i, s := range seqs {
				keys[i] = keyLabel(s)
			}
			sec.Entries = append(sec.Entries, help.Entry{
				Key:         strings.Join(keys, ", "),
				Description: strings.ReplaceAll(name, "_", " "),
			})
		}
		sections = append(sections, sec)
	}

	for _, mode := range []types.Mode{types.ModeCommand, types.ModeFileBrowser} {
		sec := help.Section{Name: "Commands (" + strings.ToLower(mode.String()) + ")"}
		for _, cmd := range registry.ForMode(mode) {
			sec.Entries = append(sec.Entries, help.Entry{Key: ":" + cmd.Name, Description: cmd.Description})
		}
		sections = append(sections, sec)
	}
	return sections
}

// keyLabel makes invisible key names readable
func keyLabel(seq string) string {
	return strings.ReplaceAll(seq, " ", "space")
}

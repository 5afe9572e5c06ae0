// Package prompt renders the command line: the mode prefix, the edited text
// with its cursor, and the completion candidate menu.
package prompt

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/kilikali/kilikali/internal/cmdline"
	"github.com/kilikali/kilikali/internal/completion"
	"github.com/kilikali/kilikali/internal/types"
	"github.com/kilikali/kilikali/internal/ui/styles"
	"github.com/mattn/go-runewidth"
)

// MaxFullRows is the height of the candidate window in MenuFull mode
const MaxFullRows = 8

// Renderer draws a cmdline.Snapshot
type Renderer struct {
	styles *styles.Styles
}

// New creates a renderer with the given styles
func New(styles *styles.Styles) *Renderer {
	return &Renderer{styles: styles}
}

// Prefix returns the character shown before the text in mode
func Prefix(mode types.Mode) string {
	if mode.IsSearch() {
		return "/"
	}
	return ":"
}

// Render draws the prompt line. When the text is wider than the terminal
// the line scrolls horizontally to keep the cursor visible.
func (r *Renderer) Render(snap cmdline.Snapshot, width int) string {
	prefix := Prefix(snap.Mode)
	avail := width - runewidth.StringWidth(prefix)
	if avail < 1 {
		return r.styles.PromptPrefix.Render(prefix)
	}

	before, at, after := Window([]rune(snap.Text), snap.Cursor, avail)

	var b strings.Builder
	b.WriteString(r.styles.PromptPrefix.Render(prefix))
	b.WriteString(r.styles.Prompt.Render(before))
	if at == "" {
		at = " "
	}
	b.WriteString(r.styles.PromptCursor.Render(at))
	b.WriteString(r.styles.Prompt.Render(after))
	return b.String()
}

// CursorColumn returns the display column of the cursor within the text,
// counting double-width characters as two columns
func CursorColumn(text string, cursor int) int {
	runes := []rune(text)
	cursor = max(0, min(cursor, len(runes)))
	return runewidth.StringWidth(string(runes[:cursor]))
}

// Window cuts runes to the part that fits in width columns while keeping
// the cursor cell visible. It returns the text before the cursor, the
// character under it (empty at the end of the line) and the text after it.
func Window(runes []rune, cursor, width int) (before, at, after string) {
	cursor = max(0, min(cursor, len(runes)))

	// The cursor cell is one column wide at the end of the line
	cursorWidth := 1
	if cursor < len(runes) {
		cursorWidth = max(1, runewidth.RuneWidth(runes[cursor]))
	}

	start := cursor
	used := cursorWidth
	for start > 0 {
		w := runewidth.RuneWidth(runes[start-1])
		if used+w > width {
			break
		}
		used += w
		start--
	}

	end := cursor
	if cursor < len(runes) {
		end = cursor + 1
	}
	for end < len(runes) {
		w := runewidth.RuneWidth(runes[end])
		if used+w > width {
			break
		}
		used += w
		end++
	}

	before = string(runes[start:cursor])
	if cursor < len(runes) {
		at = string(runes[cursor])
		after = string(runes[cursor+1 : end])
	}
	return before, at, after
}

// RenderMenu draws the candidate menu for MenuList and MenuFull. It returns
// an empty string in MenuNone or when there is nothing to list.
func (r *Renderer) RenderMenu(snap cmdline.Snapshot, width int) string {
	items := r.items(snap)
	if len(items) == 0 {
		return ""
	}
	switch snap.MenuMode {
	case types.MenuList:
		return r.renderList(items, width)
	case types.MenuFull:
		return r.renderFull(items, snap.Domain, width)
	default:
		return ""
	}
}

type item struct {
	label    string
	hint     string
	selected bool
	dir      bool
}

// items lists the real candidates; the placeholder only restores the typed
// text and is not shown
func (r *Renderer) items(snap cmdline.Snapshot) []item {
	var out []item
	for i, c := range snap.Candidates {
		if c.Kind == completion.KindPlaceholder {
			continue
		}
		it := item{label: c.Text, selected: i == snap.Selected}
		switch c.Kind {
		case completion.KindDirectory:
			it.dir = true
			if c.Text != "~" {
				it.label += "/"
			}
		case completion.KindCommand:
			if c.Command != nil {
				it.hint = c.Command.Description
			}
		}
		out = append(out, it)
	}
	return out
}

func (r *Renderer) style(it item) lipgloss.Style {
	switch {
	case it.selected:
		return r.styles.CandidateSelected
	case it.dir:
		return r.styles.CandidateDir
	default:
		return r.styles.Candidate
	}
}

// renderList draws one row, scrolled so the selected candidate is visible
func (r *Renderer) renderList(items []item, width int) string {
	cells := make([]string, len(items))
	sel := 0
	for i, it := range items {
		cells[i] = r.style(it).Render(it.label)
		if it.selected {
			sel = i
		}
	}

	start := 0
	for start < sel && rowWidth(cells[start:sel+1]) > width {
		start++
	}
	end := start
	for end < len(cells) && rowWidth(cells[start:end+1]) <= width {
		end++
	}
	if end == start {
		end = start + 1
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells[start:end]...)
}

// renderFull draws a bordered window, one candidate per row, with command
// descriptions
func (r *Renderer) renderFull(items []item, domain completion.Domain, width int) string {
	sel := 0
	for i, it := range items {
		if it.selected {
			sel = i
		}
	}
	start := 0
	if sel >= MaxFullRows {
		start = sel - MaxFullRows + 1
	}
	end := min(start+MaxFullRows, len(items))

	inner := max(10, width-4)
	rows := make([]string, 0, end-start+1)
	for _, it := range items[start:end] {
		label := runewidth.Truncate(it.label, inner-2, "…")
		line := r.style(it).Render(label)
		if it.hint != "" && domain == completion.DomainCommand {
			room := inner - lipgloss.Width(line) - 2
			if room > 3 {
				line += "  " + r.styles.CandidateHint.Render(runewidth.Truncate(it.hint, room, "…"))
			}
		}
		rows = append(rows, line)
	}
	if len(items) > MaxFullRows {
		rows = append(rows, r.styles.Footer.Render(fmt.Sprintf(" %d/%d", sel+1, len(items))))
	}

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.Surface2).
		Width(inner).
		Render(strings.Join(rows, "\n"))
}

func rowWidth(cells []string) int {
	w := 0
	for _, c := range cells {
		w += lipgloss.Width(c)
	}
	return w
}

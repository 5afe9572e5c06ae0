// Package help renders the scrollable key binding and command reference.
package help

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/kilikali/kilikali/internal/ui/styles"
	"github.com/mattn/go-runewidth"
)

// Entry is one line of the reference
type Entry struct {
	Key         string
	Description string
}

// Section groups related entries under a heading
type Section struct {
	Name    string
	Entries []Entry
}

// Screen is the help page. The zero scroll offset shows the top.
type Screen struct {
	styles   *styles.Styles
	sections []Section
	scroll   int
}

// New creates a help screen over sections
func New(styles *styles.Styles, sections []Section) *Screen {
	return &Screen{styles: styles, sections: sections}
}

// Sections returns the listed sections
func (s *Screen) Sections() []Section {
	return s.sections
}

// Scroll returns the offset of the first visible line
func (s *Screen) Scroll() int {
	return s.scroll
}

// ScrollBy moves the view by delta lines, clamped for a page of height lines
func (s *Screen) ScrollBy(delta, height int) {
	s.scroll = max(0, min(s.scroll+delta, s.maxScroll(height)))
}

// Top scrolls to the first line
func (s *Screen) Top() {
	s.scroll = 0
}

// Bottom scrolls so the last line is visible in a page of height lines
func (s *Screen) Bottom(height int) {
	s.scroll = s.maxScroll(height)
}

func (s *Screen) maxScroll(height int) int {
	return max(0, len(s.lines(0))-max(1, height))
}

// lines lays the sections out one entry per line. Keys share one column
// sized to the widest key.
func (s *Screen) lines(width int) []string {
	keyWidth := 0
	for _, sec := range s.sections {
		for _, e := range sec.Entries {
			keyWidth = max(keyWidth, runewidth.StringWidth(e.Key))
		}
	}

	var out []string
	for i, sec := range s.sections {
		if i > 0 {
			out = append(out, "")
		}
		out = append(out, s.styles.HelpSection.Render(sec.Name+":"))
		for _, e := range sec.Entries {
			key := runewidth.FillRight(e.Key, keyWidth)
			desc := e.Description
			if width > 0 {
				room := width - keyWidth - 4
				if room > 1 {
					desc = runewidth.Truncate(desc, room, "…")
				}
			}
			out = append(out, "  "+s.styles.MenuKey.Render(key)+"  "+s.styles.MenuItem.Render(desc))
		}
	}
	return out
}

// View renders height lines starting at the scroll offset
func (s *Screen) View(width, height int) string {
	lines := s.lines(width)
	height = max(1, height)

	start := min(s.scroll, max(0, len(lines)-height))
	end := min(start+height, len(lines))
	view := strings.Join(lines[start:end], "\n")

	if len(lines) > height {
		footer := s.styles.Footer.Render("[j/k to scroll, gg/G to jump]")
		view = lipgloss.JoinVertical(lipgloss.Left, view, footer)
	}
	return view
}

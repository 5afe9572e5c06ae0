// Package statusbar renders the bottom line: a mode badge, key hints, the
// pending key sequence and a short info text.
package statusbar

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/kilikali/kilikali/internal/ui/styles"
	"github.com/mattn/go-runewidth"
)

// StatusBar represents the status bar at the bottom of the TUI
type StatusBar struct {
	label   string
	hints   string
	pending string
	info    string
	width   int
	styles  *styles.Styles
}

// New creates a new StatusBar with the given badge label, width, and styles.
// Hints default to GetHints(label).
func New(label string, width int, styles *styles.Styles) StatusBar {
	return StatusBar{
		label:  label,
		hints:  GetHints(label),
		width:  width,
		styles: styles,
	}
}

// WithHints replaces the key hints
func (sb StatusBar) WithHints(hints string) StatusBar {
	sb.hints = hints
	return sb
}

// WithPending shows a partially typed key sequence
func (sb StatusBar) WithPending(seq string) StatusBar {
	sb.pending = seq
	return sb
}

// WithInfo shows text on the right, e.g. the playlist position
func (sb StatusBar) WithInfo(info string) StatusBar {
	sb.info = info
	return sb
}

// Render renders the status bar as a string
func (sb StatusBar) Render() string {
	badge := sb.styles.ModeBadge(sb.label).Render(sb.label)

	var right []string
	if sb.pending != "" {
		right = append(right, sb.styles.StatusPending.Render(sb.pending))
	}
	if sb.info != "" {
		right = append(right, sb.styles.StatusInfo.Render(sb.info))
	}
	rightText := strings.Join(right, "  ")

	// Padding of the bar itself takes two columns
	inner := sb.width - 2
	room := inner - lipgloss.Width(badge) - lipgloss.Width(rightText) - 1

	left := badge
	if sb.hints != "" && room > 4 {
		separator := sb.styles.StatusHint.Render(" │ ")
		hints := runewidth.Truncate(sb.hints, room-lipgloss.Width(separator), "…")
		left = lipgloss.JoinHorizontal(lipgloss.Left, badge, separator, sb.styles.StatusHint.Render(hints))
	}

	gap := inner - lipgloss.Width(left) - lipgloss.Width(rightText)
	content := left
	if rightText != "" && gap > 0 {
		content = left + strings.Repeat(" ", gap) + rightText
	}

	// Apply status bar style and fill width
	return sb.styles.StatusBar.Width(sb.width).Render(content)
}

// Package toast renders transient notifications in the bottom-right corner.
package toast

import (
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/kilikali/kilikali/internal/types"
	"github.com/kilikali/kilikali/internal/ui/styles"
)

// MaxVisible is the number of toasts stacked at once; older ones are hidden
const MaxVisible = 3

// maxWidth caps the toast width
const maxWidth = 48

// Renderer handles rendering of toast notifications
type Renderer struct {
	styles *styles.Styles
}

// New creates a new Renderer with the given styles
func New(styles *styles.Styles) *Renderer {
	return &Renderer{
		styles: styles,
	}
}

// Render renders the newest toasts stacked vertically, aligned right.
// Returns empty string if no toasts to display
func (r *Renderer) Render(toasts []types.Toast, width int) string {
	if len(toasts) == 0 {
		return ""
	}
	if len(toasts) > MaxVisible {
		toasts = toasts[len(toasts)-MaxVisible:]
	}

	toastWidth := min(max(width/2, 20), maxWidth)
	rendered := make([]string, 0, len(toasts))
	for _, t := range toasts {
		style := r.styleForLevel(t.Level)
		rendered = append(rendered, style.Width(toastWidth).Render(t.Message))
	}

	return lipgloss.JoinVertical(lipgloss.Right, rendered...)
}

// styleForLevel returns the appropriate style for a toast level
func (r *Renderer) styleForLevel(level types.ToastLevel) lipgloss.Style {
	switch level {
	case types.ToastSuccess:
		return r.styles.ToastSuccess
	case types.ToastWarning:
		return r.styles.ToastWarning
	case types.ToastError:
		return r.styles.ToastError
	default:
		return r.styles.ToastInfo
	}
}

// Prune drops the toasts expired at now, reusing the backing array
func Prune(toasts []types.Toast, now time.Time) []types.Toast {
	active := toasts[:0]
	for _, t := range toasts {
		if !t.Expired(now) {
			active = append(active, t)
		}
	}
	return active
}

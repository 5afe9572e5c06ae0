package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles holds all the UI styles
type Styles struct {
	// Title bar
	Title     lipgloss.Style
	TitleInfo lipgloss.Style

	// Playlist and file browser rows
	Row          lipgloss.Style
	RowCursor    lipgloss.Style
	RowNumber    lipgloss.Style
	RowMatch     lipgloss.Style
	RowDirectory lipgloss.Style
	RowStream    lipgloss.Style
	Empty        lipgloss.Style

	// Command prompt
	Prompt            lipgloss.Style
	PromptPrefix      lipgloss.Style
	PromptCursor      lipgloss.Style
	Candidate         lipgloss.Style
	CandidateSelected lipgloss.Style
	CandidateDir      lipgloss.Style
	CandidateHint     lipgloss.Style

	// Status bar
	StatusBar     lipgloss.Style
	StatusMode    lipgloss.Style
	StatusHint    lipgloss.Style
	StatusInfo    lipgloss.Style
	StatusPending lipgloss.Style

	// Help screen
	HelpSection lipgloss.Style
	MenuItem    lipgloss.Style
	MenuKey     lipgloss.Style
	Footer      lipgloss.Style
	Separator   lipgloss.Style

	// Toasts
	ToastInfo    lipgloss.Style
	ToastSuccess lipgloss.Style
	ToastWarning lipgloss.Style
	ToastError   lipgloss.Style
}

// New creates a new Styles instance with Catppuccin Macchiato theme
func New() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Foreground(Lavender).
			Bold(true).
			Padding(0, 1),

		TitleInfo: lipgloss.NewStyle().
			Foreground(Overlay1),

		Row: lipgloss.NewStyle().
			Foreground(Text),

		RowCursor: lipgloss.NewStyle().
			Foreground(Base).
			Background(Blue).
			Bold(true),

		RowNumber: lipgloss.NewStyle().
			Foreground(Overlay0),

		RowMatch: lipgloss.NewStyle().
			Foreground(Yellow).
			Underline(true),

		RowDirectory: lipgloss.NewStyle().
			Foreground(Sapphire).
			Bold(true),

		RowStream: lipgloss.NewStyle().
			Foreground(Mauve),

		Empty: lipgloss.NewStyle().
			Foreground(Overlay0).
			Italic(true).
			Padding(1, 2),

		Prompt: lipgloss.NewStyle().
			Foreground(Text),

		PromptPrefix: lipgloss.NewStyle().
			Foreground(Peach).
			Bold(true),

		PromptCursor: lipgloss.NewStyle().
			Foreground(Base).
			Background(Rosewater),

		Candidate: lipgloss.NewStyle().
			Foreground(Subtext0).
			Padding(0, 1),

		CandidateSelected: lipgloss.NewStyle().
			Foreground(Base).
			Background(Green).
			Bold(true).
			Padding(0, 1),

		CandidateDir: lipgloss.NewStyle().
			Foreground(Sapphire).
			Padding(0, 1),

		CandidateHint: lipgloss.NewStyle().
			Foreground(Overlay0).
			Italic(true),

		StatusBar: lipgloss.NewStyle().
			Background(Surface0).
			Foreground(Subtext0).
			Padding(0, 1),

		StatusMode: lipgloss.NewStyle().
			Background(Blue).
			Foreground(Base).
			Bold(true).
			Padding(0, 1),

		StatusHint: lipgloss.NewStyle().
			Foreground(Overlay1),

		StatusInfo: lipgloss.NewStyle().
			Foreground(Subtext0),

		StatusPending: lipgloss.NewStyle().
			Foreground(Yellow).
			Bold(true),

		HelpSection: lipgloss.NewStyle().
			Foreground(Blue).
			Bold(true),

		MenuItem: lipgloss.NewStyle().
			Foreground(Text),

		MenuKey: lipgloss.NewStyle().
			Foreground(Yellow).
			Bold(true),

		Footer: lipgloss.NewStyle().
			Foreground(Overlay0),

		Separator: lipgloss.NewStyle().
			Foreground(Surface1),

		ToastInfo: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Blue).
			Foreground(Blue).
			Padding(0, 1),

		ToastSuccess: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Green).
			Foreground(Green).
			Padding(0, 1),

		ToastWarning: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Yellow).
			Foreground(Yellow).
			Padding(0, 1),

		ToastError: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Red).
			Foreground(Red).
			Padding(0, 1),
	}
}

// ModeBadge returns the status bar badge style for a screen, tinted so the
// prompt modes stand out from browsing
func (s *Styles) ModeBadge(name string) lipgloss.Style {
	color, ok := ModeColors[name]
	if !ok {
		return s.StatusMode
	}
	return s.StatusMode.Background(color)
}

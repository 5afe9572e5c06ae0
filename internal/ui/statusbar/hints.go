package statusbar

// Badge labels, one per screen and prompt
const (
	LabelPlaylist = "PLAYLIST"
	LabelBrowser  = "BROWSER"
	LabelHelp     = "HELP"
	LabelCommand  = "COMMAND"
	LabelSearch   = "SEARCH"
)

// GetHints returns the keybinding hints for the given badge label
func GetHints(label string) string {
	switch label {
	case LabelPlaylist:
		return "j/k: move  :: command  /: search  a: browse  h: help  q: quit"
	case LabelBrowser:
		return "Enter: open  -: parent  Space: add  u: refresh  Esc: back"
	case LabelHelp:
		return "j/k: scroll  Esc: back"
	case LabelCommand:
		return "Tab: complete  Enter: run  Esc: cancel"
	case LabelSearch:
		return "Type to search  Enter: confirm  Esc: cancel"
	default:
		return ""
	}
}

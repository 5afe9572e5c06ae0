// Package types contains shared types used across the application.
package types

// Mode is the interaction context of the command line. Values are bit flags
// so that commands can declare the set of modes they apply to.
type Mode int

const (
	ModeCommand           Mode = 1
	ModeFileBrowser       Mode = 1 << 1
	ModeSearch            Mode = 1 << 2
	ModeFileBrowserSearch Mode = 1 << 3
)

// AllModes lists every mode in history-ring order
var AllModes = []Mode{ModeCommand, ModeFileBrowser, ModeSearch, ModeFileBrowserSearch}

// String returns the string representation of the mode
func (m Mode) String() string {
	switch m {
	case ModeCommand:
		return "COMMAND"
	case ModeFileBrowser:
		return "BROWSER"
	case ModeSearch:
		return "SEARCH"
	case ModeFileBrowserSearch:
		return "BROWSER SEARCH"
	default:
		return "UNKNOWN"
	}
}

// Has reports whether m shares at least one flag with other
func (m Mode) Has(other Mode) bool {
	return m&other != 0
}

// IsSearch returns true for both search variants
func (m Mode) IsSearch() bool {
	return m == ModeSearch || m == ModeFileBrowserSearch
}

// MenuMode controls how completion candidates are presented. It is a
// presentation flag only, plus the routing of arrow keys while a menu is open.
type MenuMode int

const (
	MenuNone MenuMode = iota // cycle candidates in place on the command line
	MenuList                 // list candidates in the info bar
	MenuFull                 // list candidates in a window
)

// String returns the string representation of the menu mode
func (m MenuMode) String() string {
	switch m {
	case MenuNone:
		return "none"
	case MenuList:
		return "list"
	case MenuFull:
		return "full"
	default:
		return "unknown"
	}
}

// ParseMenuMode maps the config "wild" option onto a MenuMode. Unknown values
// fall back to MenuNone.
func ParseMenuMode(s string) MenuMode {
	switch s {
	case "list":
		return MenuList
	case "full":
		return MenuFull
	default:
		return MenuNone
	}
}

// Package command provides the command line tokenizer, the command registry
// and the dispatcher that runs a committed line.
package command

import "github.com/kilikali/kilikali/internal/types"

// Hint tells the completion engine what kind of argument a command takes
type Hint int

const (
	HintNone  Hint = iota
	HintRange      // numeric range, e.g. 3-7
	HintPath       // file or directory path
	HintDir        // directory path only
)

// String returns the string representation of the hint
func (h Hint) String() string {
	switch h {
	case HintNone:
		return "none"
	case HintRange:
		return "range"
	case HintPath:
		return "path"
	case HintDir:
		return "dir"
	default:
		return "unknown"
	}
}

// CompletesPath returns true when the argument completes against the filesystem
func (h Hint) CompletesPath() bool {
	return h == HintPath || h == HintDir
}

// Func is the command callback. args[0] is the command name.
type Func func(args []string) error

// Command describes one registered command. Commands are registered once at
// start-up and never mutated afterwards.
type Command struct {
	Name        string
	Description string
	Hint        Hint
	Modes       types.Mode // modes the command is available in
	Run         Func
}

// AvailableIn reports whether the command applies to mode
func (c *Command) AvailableIn(mode types.Mode) bool {
	return c.Modes.Has(mode)
}

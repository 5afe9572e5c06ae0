// Package commands defines the built-in commands of the command line and
// binds them to the application through the Host interface.
package commands

import (
	"fmt"
	"strings"

	"github.com/kilikali/kilikali/internal/command"
	"github.com/kilikali/kilikali/internal/domain"
	"github.com/kilikali/kilikali/internal/types"
)

// Host is the part of the application the built-in commands act on
type Host interface {
	Quit() error
	// Add appends files, directories or URLs to the playlist
	Add(paths []string) error
	// Remove drops the playlist items covered by ranges
	Remove(ranges []Range) error
	// Write saves the playlist; an empty path means the default playlist file
	Write(path string) error
	Search(pattern string) error
	ClearSearch() error
	OpenFileBrowser() error
	// ChangeDirectory changes the browsing directory; an empty dir means the
	// default music directory
	ChangeDirectory(dir string) error
	WorkingDirectory() error
	ShowHelp() error
}

// Built-in command names
const (
	NameQuit    = "quit"
	NameAdd     = "add"
	NameRemove  = "remove"
	NameWrite   = "write"
	NameSearch  = "search"
	NameClear   = "noh"
	NameBrowser = "Ex"
	NameCd      = "cd"
	NameHelp    = "help"
	NamePwd     = "pwd"
)

const anywhere = types.ModeCommand | types.ModeFileBrowser

// Builtins returns the built-in commands bound to host, in registration order
func Builtins(host Host) []*command.Command {
	return []*command.Command{
		{
			Name:        NameQuit,
			Description: "Quit from application.",
			Modes:       anywhere,
			Run: func([]string) error {
				return host.Quit()
			},
		},
		{
			Name:        NameAdd,
			Description: "Adds files, dirs or URLs.",
			Hint:        command.HintPath,
			Modes:       types.ModeCommand,
			Run: func(args []string) error {
				if len(args) < 2 {
					return wrongArgs(args)
				}
				return host.Add(args[1:])
			},
		},
		{
			Name:        NameRemove,
			Description: "Removes playlist items.",
			Hint:        command.HintRange,
			Modes:       types.ModeCommand,
			Run: func(args []string) error {
				if len(args) < 2 {
					return wrongArgs(args)
				}
				ranges := make([]Range, 0, len(args)-1)
				for _, arg := range args[1:] {
					r, err := ParseRange(arg)
					if err != nil {
						return err
					}
					ranges = append(ranges, r)
				}
				return host.Remove(ranges)
			},
		},
		{
			Name:        NameWrite,
			Description: "Writes playlist file.",
			Hint:        command.HintPath,
			Modes:       types.ModeCommand,
			Run: func(args []string) error {
				switch len(args) {
				case 1:
					return host.Write("")
				case 2:
					if args[1] == "" {
						return fmt.Errorf("%w: empty path", domain.ErrWrongArguments)
					}
					return host.Write(args[1])
				}
				return wrongArgs(args)
			},
		},
		{
			Name:        NameSearch,
			Description: "Searches the playlist.",
			Modes:       types.ModeCommand,
			Run: func(args []string) error {
				pattern := strings.Join(args[1:], " ")
				if pattern == "" {
					return nil
				}
				return host.Search(pattern)
			},
		},
		{
			Name:        NameClear,
			Description: "Clear current search term.",
			Modes:       anywhere,
			Run: func(args []string) error {
				if len(args) != 1 {
					return wrongArgs(args)
				}
				return host.ClearSearch()
			},
		},
		{
			Name:        NameBrowser,
			Description: "Open file browser.",
			Modes:       types.ModeCommand,
			Run: func(args []string) error {
				if len(args) != 1 {
					return wrongArgs(args)
				}
				return host.OpenFileBrowser()
			},
		},
		{
			Name:        NameCd,
			Description: "Change browsing directory.",
			Hint:        command.HintDir,
			Modes:       anywhere,
			Run: func(args []string) error {
				switch len(args) {
				case 1:
					return host.ChangeDirectory("")
				case 2:
					return host.ChangeDirectory(args[1])
				}
				return wrongArgs(args)
			},
		},
		{
			Name:        NamePwd,
			Description: "Print path of current directory.",
			Modes:       anywhere,
			Run: func(args []string) error {
				if len(args) != 1 {
					return wrongArgs(args)
				}
				return host.WorkingDirectory()
			},
		},
		{
			Name:        NameHelp,
			Description: "Show help.",
			Modes:       types.ModeCommand,
			Run: func(args []string) error {
				if len(args) != 1 {
					return wrongArgs(args)
				}
				return host.ShowHelp()
			},
		},
	}
}

// Register adds the built-in commands to reg
func Register(reg *command.Registry, host Host) error {
	for _, cmd := range Builtins(host) {
		if err := reg.Register(cmd); err != nil {
			return err
		}
	}
	return nil
}

func wrongArgs(args []string) error {
	return fmt.Errorf("%s: %w (got %d)", args[0], domain.ErrWrongArguments, len(args)-1)
}

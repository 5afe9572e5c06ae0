package command

import (
	"slices"
	"strings"

	"github.com/kilikali/kilikali/internal/domain"
	"github.com/kilikali/kilikali/internal/types"
)

// Registry is the set of known commands keyed by name
type Registry struct {
	byName map[string]*Command
	order  []*Command // registration order, prepends first
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*Command)}
}

// Register appends cmd to the registry
func (r *Registry) Register(cmd *Command) error {
	if err := r.check(cmd); err != nil {
		return err
	}
	r.byName[cmd.Name] = cmd
	r.order = append(r.order, cmd)
	return nil
}

// Prepend adds cmd ahead of every registered command
func (r *Registry) Prepend(cmd *Command) error {
	if err := r.check(cmd); err != nil {
		return err
	}
	r.byName[cmd.Name] = cmd
	r.order = slices.Insert(r.order, 0, cmd)
	return nil
}

func (r *Registry) check(cmd *Command) error {
	if cmd == nil || cmd.Name == "" || cmd.Run == nil {
		return &domain.CommandError{Op: "register", Err: domain.ErrInvalidCommand}
	}
	if _, exists := r.byName[cmd.Name]; exists {
		return &domain.CommandError{Op: "register", Name: cmd.Name, Err: domain.ErrDuplicateCommand}
	}
	return nil
}

// Lookup returns the command with exactly this name
func (r *Registry) Lookup(name string) (*Command, bool) {
	cmd, ok := r.byName[name]
	return cmd, ok
}

// Len returns the number of registered commands
func (r *Registry) Len() int {
	return len(r.order)
}

// All returns the commands in registration order
func (r *Registry) All() []*Command {
	return slices.Clone(r.order)
}

// Commands returns the commands sorted by name
func (r *Registry) Commands() []*Command {
	out := slices.Clone(r.order)
	sortByName(out)
	return out
}

// ForMode returns the commands available in mode, sorted by name
func (r *Registry) ForMode(mode types.Mode) []*Command {
	return r.Matching(mode, "")
}

// Matching returns the commands available in mode whose name starts with
// prefix, sorted by name. An empty prefix matches every command.
func (r *Registry) Matching(mode types.Mode, prefix string) []*Command {
	var out []*Command
	for _, cmd := range r.order {
		if cmd.AvailableIn(mode) && strings.HasPrefix(cmd.Name, prefix) {
			out = append(out, cmd)
		}
	}
	sortByName(out)
	return out
}

func sortByName(cmds []*Command) {
	slices.SortFunc(cmds, func(a, b *Command) int {
		return strings.Compare(a.Name, b.Name)
	})
}

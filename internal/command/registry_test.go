package command

import (
	"errors"
	"testing"

	"github.com/kilikali/kilikali/internal/domain"
	"github.com/kilikali/kilikali/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noop([]string) error { return nil }

func newCmd(name string, modes types.Mode) *Command {
	return &Command{Name: name, Modes: modes, Run: noop}
}

func names(cmds []*Command) []string {
	out := make([]string, len(cmds))
	for i, c := range cmds {
		out[i] = c.Name
	}
	return out
}

func TestRegistry_Register(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(newCmd("write", types.ModeCommand)))
	require.NoError(t, reg.Register(newCmd("add", types.ModeCommand)))
	require.NoError(t, reg.Prepend(newCmd("quit", types.ModeCommand|types.ModeFileBrowser)))

	assert.Equal(t, 3, reg.Len())
	assert.Equal(t, []string{"quit", "write", "add"}, names(reg.All()))
	assert.Equal(t, []string{"add", "quit", "write"}, names(reg.Commands()))

	err := reg.Register(newCmd("add", types.ModeSearch))
	assert.ErrorIs(t, err, domain.ErrDuplicateCommand)
	var cmdErr *domain.CommandError
	require.True(t, errors.As(err, &cmdErr))
	assert.Equal(t, "add", cmdErr.Name)

	assert.ErrorIs(t, reg.Prepend(newCmd("quit", types.ModeCommand)), domain.ErrDuplicateCommand)
	assert.ErrorIs(t, reg.Register(&Command{Name: "broken"}), domain.ErrInvalidCommand)
	assert.Equal(t, 3, reg.Len())
}

func TestRegistry_Lookup(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(newCmd("write", types.ModeCommand)))

	cmd, ok := reg.Lookup("write")
	require.True(t, ok)
	assert.Equal(t, "write", cmd.Name)

	_, ok = reg.Lookup("wr")
	assert.False(t, ok, "lookup is exact, never by prefix")
}

func TestRegistry_Matching(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(newCmd("write", types.ModeCommand)))
	require.NoError(t, reg.Register(newCmd("cd", types.ModeCommand|types.ModeFileBrowser)))
	require.NoError(t, reg.Register(newCmd("clear", types.ModeCommand)))
	require.NoError(t, reg.Register(newCmd("find", types.ModeSearch)))

	assert.Equal(t, []string{"cd", "clear", "write"}, names(reg.ForMode(types.ModeCommand)))
	assert.Equal(t, []string{"cd"}, names(reg.ForMode(types.ModeFileBrowser)))
	assert.Equal(t, []string{"cd", "clear"}, names(reg.Matching(types.ModeCommand, "c")))
	assert.Empty(t, reg.Matching(types.ModeSearch, "c"))
}

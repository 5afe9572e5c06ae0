package keyseq

import (
	"strings"
	"testing"

	"github.com/kilikali/kilikali/internal/input"
	"github.com/stretchr/testify/assert"
)

// mapBindings is a Bindings backed by a sequence -> name map
type mapBindings struct {
	seqs     map[string]string
	reserved map[string]bool
}

func (b mapBindings) HasPrefix(seq string) bool {
	for s := range b.seqs {
		if strings.HasPrefix(s, seq) {
			return true
		}
	}
	return false
}

func (b mapBindings) Lookup(seq string) (string, bool) {
	name, ok := b.seqs[seq]
	return name, ok
}

func (b mapBindings) IsReserved(key string) bool {
	return b.reserved[key]
}

func newTestMatcher() *Matcher {
	return NewMatcher(mapBindings{
		seqs: map[string]string{
			"gg":     "move_top",
			"G":      "move_bottom",
			"j":      "move_down",
			"ctrl+u": "half_page_up",
			"zz":     "center",
			"ää":     "umlaut",
		},
		reserved: map[string]bool{"ctrl+z": true},
	})
}

func feed(m *Matcher, keys string) Result {
	var res Result
	for _, r := range keys {
		res = m.Add(input.RuneEvent(r))
	}
	return res
}

func TestMatcher_SingleKey(t *testing.T) {
	m := newTestMatcher()

	res := m.Add(input.RuneEvent('j'))
	assert.Equal(t, Result{Binding: "move_down", Repeat: 1, Explicit: false}, res)
	assert.True(t, m.Idle(), "matcher resets after a match")
}

func TestMatcher_RepeatCount(t *testing.T) {
	m := newTestMatcher()

	res := m.Add(input.RuneEvent('1'))
	assert.True(t, res.Pending)
	assert.False(t, res.Matched())

	res = m.Add(input.RuneEvent('2'))
	assert.True(t, res.Pending)
	assert.Equal(t, "12", m.String())

	res = m.Add(input.RuneEvent('j'))
	assert.Equal(t, Result{Binding: "move_down", Repeat: 12, Explicit: true}, res)
}

func TestMatcher_MultiKey(t *testing.T) {
	m := newTestMatcher()

	res := m.Add(input.RuneEvent('g'))
	assert.True(t, res.Pending)
	assert.Equal(t, "g", m.String())

	res = m.Add(input.RuneEvent('g'))
	assert.Equal(t, "move_top", res.Binding)
	assert.True(t, m.Idle())

	res = feed(m, "3gg")
	assert.Equal(t, Result{Binding: "move_top", Repeat: 3, Explicit: true}, res)
}

func TestMatcher_ResetOnNonPrefix(t *testing.T) {
	m := newTestMatcher()

	m.Add(input.RuneEvent('g'))
	res := m.Add(input.RuneEvent('x'))

	assert.Equal(t, Result{}, res)
	assert.True(t, m.Idle())
	assert.Equal(t, "", m.String())
}

func TestMatcher_ControlKeys(t *testing.T) {
	m := newTestMatcher()

	res := m.Add(input.KeyEvent(21)) // ctrl+u
	assert.Equal(t, "half_page_up", res.Binding)

	m.Add(input.RuneEvent('5'))
	res = m.Add(input.KeyEvent(26)) // ctrl+z is reserved
	assert.False(t, res.Matched())
	assert.True(t, m.Idle())
}

func TestMatcher_UTF8Keys(t *testing.T) {
	m := newTestMatcher()

	res := feed(m, "ä")
	assert.True(t, res.Pending)
	res = feed(m, "ä")
	assert.Equal(t, "umlaut", res.Binding)
}

func TestMatcher_MouseResets(t *testing.T) {
	m := newTestMatcher()

	m.Add(input.RuneEvent('z'))
	assert.False(t, m.Idle())

	res := m.Add(input.MouseEvent())
	assert.False(t, res.Matched())
	assert.True(t, m.Idle())
}

func TestMatcher_Overflow(t *testing.T) {
	m := newTestMatcher()

	res := feed(m, strings.Repeat("1", MaxLen))
	assert.True(t, res.Pending)

	res = m.Add(input.RuneEvent('1'))
	assert.False(t, res.Pending)
	assert.True(t, m.Idle(), "overflowing sequence resets")
}

func TestMatcher_RepeatCountTooLarge(t *testing.T) {
	m := newTestMatcher()

	res := feed(m, "99999999999j")
	assert.False(t, res.Matched(), "repeat count beyond uint32 is rejected")
	assert.True(t, m.Idle())
}

// Package keyseq accumulates raw key events into multi-key binding
// sequences such as "gg" or "12j".
package keyseq

import (
	"strconv"

	"github.com/kilikali/kilikali/internal/input"
)

const (
	MaxKeyLen = 32 // longest binding sequence in bytes
	MaxDigits = 10 // longest repeat count prefix
	MaxLen    = MaxKeyLen + MaxDigits
)

// Bindings answers questions about the configured key bindings
type Bindings interface {
	// HasPrefix reports whether seq is a prefix of at least one binding
	HasPrefix(seq string) bool
	// Lookup returns the name of the binding whose sequence is exactly seq
	Lookup(seq string) (name string, ok bool)
	// IsReserved reports whether a key name may never be part of a sequence
	IsReserved(key string) bool
}

// Result reports the outcome of feeding one event to the Matcher
type Result struct {
	Binding  string // matched binding name, empty when nothing matched
	Repeat   int    // repeat count, 1 unless digits were typed
	Explicit bool   // whether the repeat count was typed
	Pending  bool   // the sequence may still complete
}

// Matched returns true when a binding was recognised
func (r Result) Matched() bool {
	return r.Binding != ""
}

// Matcher is the two-state (idle / accumulating) key sequence state machine
type Matcher struct {
	bindings Bindings
	buf      []byte
}

// NewMatcher creates an idle matcher over bindings
func NewMatcher(bindings Bindings) *Matcher {
	return &Matcher{
		bindings: bindings,
		buf:      make([]byte, 0, MaxLen),
	}
}

// String returns the keys accumulated so far
func (m *Matcher) String() string {
	return string(m.buf)
}

// Idle returns true when nothing is accumulated
func (m *Matcher) Idle() bool {
	return len(m.buf) == 0
}

// Reset discards the accumulated keys
func (m *Matcher) Reset() {
	m.buf = m.buf[:0]
}

// Add appends the event's key name to the sequence and classifies it
func (m *Matcher) Add(ev input.Event) Result {
	switch {
	case ev.Type == input.EventKey:
		name := ev.Name()
		if len(m.buf)+len(name) > MaxLen || m.bindings.IsReserved(name) {
			m.Reset()
			return Result{}
		}
		m.buf = append(m.buf, name...)
	case ev.Type == input.EventUTF8 && len(ev.Bytes) > 1:
		if len(m.buf)+len(ev.Bytes) > MaxLen {
			m.Reset()
			return Result{}
		}
		m.buf = append(m.buf, ev.Bytes...)
	default:
		m.Reset()
		return Result{}
	}

	digits := 0
	for digits < len(m.buf) && m.buf[digits] >= '0' && m.buf[digits] <= '9' {
		digits++
	}
	if digits == len(m.buf) {
		// Only a repeat count so far
		return Result{Pending: true}
	}

	seq := string(m.buf[digits:])
	if !m.bindings.HasPrefix(seq) {
		m.Reset()
		return Result{}
	}

	name, ok := m.bindings.Lookup(seq)
	if !ok {
		return Result{Pending: true}
	}

	res := Result{Binding: name, Repeat: 1}
	if digits > 0 {
		n, err := strconv.ParseUint(string(m.buf[:digits]), 10, 32)
		if err != nil {
			m.Reset()
			return Result{}
		}
		res.Repeat = int(n)
		res.Explicit = true
	}
	m.Reset()
	return res
}

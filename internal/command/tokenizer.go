package command

import (
	"bytes"
	"strings"

	"github.com/kilikali/kilikali/internal/domain"
)

const (
	// MaxArgs is the largest number of arguments a line may split into
	MaxArgs = 32

	argInitialSize = 64
)

type quoteType int

const (
	quoteNone quoteType = iota
	quoteSingle
	quoteDouble
)

// Tokenizer splits a command line into arguments with shell-like quoting.
// Its argument buffers are reused between calls, so a Tokenizer must not be
// shared between goroutines.
type Tokenizer struct {
	args [MaxArgs]bytes.Buffer
}

// NewTokenizer creates a tokenizer with preallocated argument buffers
func NewTokenizer() *Tokenizer {
	t := &Tokenizer{}
	for i := range t.args {
		t.args[i].Grow(argInitialSize)
	}
	return t
}

// Tokenize splits line into arguments.
//
// Outside quotes a backslash escapes the next byte and whitespace ends an
// argument; runs of whitespace never produce empty arguments. Single and
// double quotes group text until the matching quote. An unterminated quote is
// closed implicitly at the end of the line.
//
// A blank line returns domain.ErrNoSuchCommand. A line with more than MaxArgs
// arguments returns domain.ErrTooManyArguments.
func (t *Tokenizer) Tokenize(line string) ([]string, error) {
	for i := range t.args {
		t.args[i].Reset()
	}

	var (
		quote   = quoteNone
		escaped bool
		started bool // current argument has content or an opening quote
		argc    int
	)

	for i := 0; i < len(line); i++ {
		c := line[i]

		if quote != quoteNone {
			if (quote == quoteSingle && c == '\'') || (quote == quoteDouble && c == '"') {
				quote = quoteNone
				continue
			}
			t.args[argc].WriteByte(c)
			continue
		}

		if !escaped && isSpace(c) {
			if started {
				argc++
				started = false
			}
			continue
		}

		if !started && argc == MaxArgs {
			return nil, domain.ErrTooManyArguments
		}
		started = true

		switch {
		case escaped:
			t.args[argc].WriteByte(c)
			escaped = false
		case c == '\\':
			escaped = true
		case c == '\'':
			quote = quoteSingle
		case c == '"':
			quote = quoteDouble
		default:
			t.args[argc].WriteByte(c)
		}
	}
	if started {
		argc++
	}

	if argc == 0 {
		return nil, domain.ErrNoSuchCommand
	}

	out := make([]string, argc)
	for i := range out {
		out[i] = t.args[i].String()
	}
	return out, nil
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

// Quote wraps s in single quotes so that Tokenize returns it as one
// argument unchanged
func Quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/kilikali/kilikali/internal/domain"
	"github.com/kilikali/kilikali/internal/keyseq"
)

// MaxVariants is the number of alternative sequences one binding may have
const MaxVariants = 4

var (
	errTooManyVariants = errors.New("too many key sequences")
	errSequenceLength  = errors.New("key sequence length")
	errSequenceReused  = errors.New("key sequence already bound")
	errReservedKey     = errors.New("key sequence contains a reserved key")
)

// Bindings is the validated, queryable form of the configured key bindings
type Bindings struct {
	byName   map[string][]string
	bySeq    map[string]string
	prefixes map[string]struct{}
	reserved map[string]bool
}

var _ keyseq.Bindings = (*Bindings)(nil)

// NewBindings validates bindings against the limits of the key sequence
// matcher and indexes them for prefix lookups
func NewBindings(bindings map[string][]string, reserved []string) (*Bindings, error) {
	b := &Bindings{
		byName:   make(map[string][]string, len(bindings)),
		bySeq:    make(map[string]string),
		prefixes: make(map[string]struct{}),
		reserved: make(map[string]bool, len(reserved)),
	}
	for _, key := range reserved {
		b.reserved[key] = true
	}

	// Sorted for deterministic error reporting
	names := make([]string, 0, len(bindings))
	for name := range bindings {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		seqs := bindings[name]
		key := "bindings." + name
		if len(seqs) > MaxVariants {
			return nil, &domain.ConfigError{Key: key, Err: fmt.Errorf("%w: %d, max %d", errTooManyVariants, len(seqs), MaxVariants)}
		}
		for _, seq := range seqs {
			if seq == "" || len(seq) > keyseq.MaxKeyLen {
				return nil, &domain.ConfigError{Key: key, Err: fmt.Errorf("%w: %q must be 1-%d bytes", errSequenceLength, seq, keyseq.MaxKeyLen)}
			}
			if other, dup := b.bySeq[seq]; dup {
				return nil, &domain.ConfigError{Key: key, Err: fmt.Errorf("%w: %q is bound to %s", errSequenceReused, seq, other)}
			}
			for _, r := range reserved {
				if strings.Contains(seq, r) {
					return nil, &domain.ConfigError{Key: key, Err: fmt.Errorf("%w: %q contains %q", errReservedKey, seq, r)}
				}
			}
			b.bySeq[seq] = name
			for i := 1; i <= len(seq); i++ {
				b.prefixes[seq[:i]] = struct{}{}
			}
		}
		b.byName[name] = slices.Clone(seqs)
	}
	return b, nil
}

// HasPrefix reports whether seq begins at least one bound sequence
func (b *Bindings) HasPrefix(seq string) bool {
	_, ok := b.prefixes[seq]
	return ok
}

// Lookup returns the binding name bound to exactly seq
func (b *Bindings) Lookup(seq string) (string, bool) {
	name, ok := b.bySeq[seq]
	return name, ok
}

// IsReserved reports whether key may never take part in a sequence
func (b *Bindings) IsReserved(key string) bool {
	return b.reserved[key]
}

// Sequences returns the sequences bound to name
func (b *Bindings) Sequences(name string) []string {
	return slices.Clone(b.byName[name])
}

// Names returns every binding name, sorted
func (b *Bindings) Names() []string {
	names := make([]string, 0, len(b.byName))
	for name := range b.byName {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// KeyBindings builds the validated bindings of c
func (c *Config) KeyBindings() (*Bindings, error) {
	return NewBindings(c.Bindings, c.ReservedKeys)
}

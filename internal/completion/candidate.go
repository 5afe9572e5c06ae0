// Package completion computes command-name and path candidates for the
// command line, cycles through them and splices the selection into the line.
package completion

import "github.com/kilikali/kilikali/internal/command"

// Kind tags a Candidate
type Kind int

const (
	KindPlaceholder Kind = iota // "no further match", restores the typed text
	KindDirectory
	KindFile
	KindCommand
)

// String returns the string representation of the kind
func (k Kind) String() string {
	switch k {
	case KindPlaceholder:
		return "placeholder"
	case KindDirectory:
		return "directory"
	case KindFile:
		return "file"
	case KindCommand:
		return "command"
	default:
		return "unknown"
	}
}

// Candidate is one completion option. Text is owned by the candidate;
// Command is set only for KindCommand and points into the registry.
type Candidate struct {
	Kind    Kind
	Text    string
	Command *command.Command
}

// Domain identifies which kind of candidates the engine currently holds
type Domain int

const (
	DomainNone Domain = iota
	DomainCommand
	DomainPath
)

// String returns the string representation of the domain
func (d Domain) String() string {
	switch d {
	case DomainNone:
		return "none"
	case DomainCommand:
		return "command"
	case DomainPath:
		return "path"
	default:
		return "unknown"
	}
}

func commandCandidate(cmd *command.Command) Candidate {
	return Candidate{Kind: KindCommand, Text: cmd.Name, Command: cmd}
}

func placeholder(text string) Candidate {
	return Candidate{Kind: KindPlaceholder, Text: text}
}

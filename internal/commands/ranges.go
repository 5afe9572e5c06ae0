package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kilikali/kilikali/internal/domain"
)

// Range is an inclusive span of 1-based playlist positions. Last is
// OpenEnd when the range runs to the end of the playlist.
type Range struct {
	First int
	Last  int
}

// OpenEnd marks a range written as "N-"
const OpenEnd = -1

// Contains reports whether 1-based position pos falls inside r
func (r Range) Contains(pos int) bool {
	return pos >= r.First && (r.Last == OpenEnd || pos <= r.Last)
}

// String formats r the way it is typed
func (r Range) String() string {
	switch r.Last {
	case r.First:
		return strconv.Itoa(r.First)
	case OpenEnd:
		return strconv.Itoa(r.First) + "-"
	default:
		return fmt.Sprintf("%d-%d", r.First, r.Last)
	}
}

// ParseRange parses "N", "N-M" or "N-". Positions start at 1.
func ParseRange(s string) (Range, error) {
	first, last, hasDash := strings.Cut(s, "-")

	lo, err := parsePosition(first)
	if err != nil {
		return Range{}, fmt.Errorf("%w: %q", domain.ErrInvalidRange, s)
	}
	if !hasDash {
		return Range{First: lo, Last: lo}, nil
	}
	if last == "" {
		return Range{First: lo, Last: OpenEnd}, nil
	}

	hi, err := parsePosition(last)
	if err != nil || hi < lo {
		return Range{}, fmt.Errorf("%w: %q", domain.ErrInvalidRange, s)
	}
	return Range{First: lo, Last: hi}, nil
}

func parsePosition(s string) (int, error) {
	if s == "" || strings.IndexFunc(s, func(r rune) bool { return r < '0' || r > '9' }) >= 0 {
		return 0, strconv.ErrSyntax
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 1 {
		return 0, strconv.ErrRange
	}
	return n, nil
}

package playlist

import (
	"regexp"
	"slices"
	"strings"
	"unicode"
)

// CaseSensitivity selects how search patterns treat letter case
type CaseSensitivity int

const (
	CaseSmart       CaseSensitivity = iota // sensitive only when the pattern has an upper-case letter
	CaseSensitive                          // always sensitive
	CaseInsensitive                        // never sensitive
)

// ParseCaseSensitivity maps "yes", "no" and "smart" onto a CaseSensitivity.
// Unknown values fall back to CaseSmart.
func ParseCaseSensitivity(s string) CaseSensitivity {
	switch s {
	case "yes":
		return CaseSensitive
	case "no":
		return CaseInsensitive
	default:
		return CaseSmart
	}
}

// Playlist is an ordered list of tracks with a cursor and a search pattern.
// Positions are 0-based; the commands layer converts from 1-based ranges.
type Playlist struct {
	tracks  []Track
	cursor  int
	search  *regexp.Regexp
	pattern string
	lastHit int
	cases   CaseSensitivity
}

// New creates an empty playlist
func New(cases CaseSensitivity) *Playlist {
	return &Playlist{cases: cases, lastHit: -1}
}

// Len returns the number of tracks
func (p *Playlist) Len() int {
	return len(p.tracks)
}

// Tracks returns a copy of the tracks
func (p *Playlist) Tracks() []Track {
	return slices.Clone(p.tracks)
}

// Track returns the track at index i
func (p *Playlist) Track(i int) (Track, bool) {
	if i < 0 || i >= len(p.tracks) {
		return Track{}, false
	}
	return p.tracks[i], true
}

// Cursor returns the selected index; 0 for an empty playlist
func (p *Playlist) Cursor() int {
	return p.cursor
}

// SetCursor moves the cursor to i, clamped to the playlist
func (p *Playlist) SetCursor(i int) {
	p.cursor = max(0, min(i, len(p.tracks)-1))
}

// Move shifts the cursor by delta, clamped to the playlist
func (p *Playlist) Move(delta int) {
	p.SetCursor(p.cursor + delta)
}

// Append adds tracks at the end
func (p *Playlist) Append(tracks ...Track) {
	p.tracks = append(p.tracks, tracks...)
}

// RemoveFunc drops every track whose 0-based index satisfies drop and
// returns how many were removed. The cursor stays on the same track when it
// survives, otherwise on the track that took its place.
func (p *Playlist) RemoveFunc(drop func(i int) bool) int {
	kept := p.tracks[:0]
	removedBefore := 0
	removed := 0
	for i, t := range p.tracks {
		if drop(i) {
			removed++
			if i < p.cursor {
				removedBefore++
			}
			continue
		}
		kept = append(kept, t)
	}
	clear(p.tracks[len(kept):])
	p.tracks = kept
	p.SetCursor(p.cursor - removedBefore)
	if removed > 0 {
		p.lastHit = -1
	}
	return removed
}

// Pattern returns the active search pattern
func (p *Playlist) Pattern() string {
	return p.pattern
}

// SetPattern compiles pattern as the active search. An empty pattern clears
// the search.
func (p *Playlist) SetPattern(pattern string) error {
	if pattern == "" {
		p.ClearPattern()
		return nil
	}
	expr := pattern
	if p.cases == CaseInsensitive || p.cases == CaseSmart && !hasUpper(pattern) {
		expr = "(?i)" + expr
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return err
	}
	p.search = re
	p.pattern = pattern
	return nil
}

// ClearPattern drops the active search
func (p *Playlist) ClearPattern() {
	p.search = nil
	p.pattern = ""
	p.lastHit = -1
}

// Matches reports whether the displayed name of track i matches the active
// search
func (p *Playlist) Matches(i int) bool {
	t, ok := p.Track(i)
	if !ok || p.search == nil {
		return false
	}
	return p.search.MatchString(t.Name())
}

// Find searches from index start, wrapping around once, and returns the
// first matching index. The hit becomes the reference for Next.
func (p *Playlist) Find(start int, backward bool) (int, bool) {
	n := len(p.tracks)
	if p.search == nil || n == 0 {
		return -1, false
	}
	start = ((start % n) + n) % n
	step := 1
	if backward {
		step = -1
	}
	for k := 0; k < n; k++ {
		i := ((start+k*step)%n + n) % n
		if p.Matches(i) {
			p.lastHit = i
			return i, true
		}
	}
	return -1, false
}

// Next moves to the following or preceding match of the active search,
// starting from the previous hit or the cursor
func (p *Playlist) Next(backward bool) (int, bool) {
	from := p.lastHit
	if from < 0 {
		from = p.cursor
	}
	if backward {
		from--
	} else {
		from++
	}
	i, ok := p.Find(from, backward)
	if ok {
		p.SetCursor(i)
	}
	return i, ok
}

func hasUpper(s string) bool {
	return strings.IndexFunc(s, unicode.IsUpper) >= 0
}

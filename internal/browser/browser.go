// Package browser is the file browser: a sorted listing of one directory
// with a cursor and an incremental search over entry names.
package browser

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"

	"github.com/kilikali/kilikali/internal/completion"
)

// ParentName is the synthetic entry that leads to the parent directory
const ParentName = ".."

// Browser lists one directory at a time
type Browser struct {
	fsys       completion.FS
	dir        string
	entries    []completion.Entry
	cursor     int
	maxEntries int

	pattern     string
	matches     []bool
	savedCursor int
	searching   bool

	logger *slog.Logger
}

// New creates a browser reading from fsys. A nil fsys uses the local
// filesystem and a nil logger uses slog.Default().
func New(fsys completion.FS, maxEntries int, logger *slog.Logger) *Browser {
	if fsys == nil {
		fsys = completion.OSFS{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Browser{
		fsys:       fsys,
		maxEntries: maxEntries,
		logger:     logger,
	}
}

// Dir returns the listed directory
func (b *Browser) Dir() string {
	return b.dir
}

// Entries returns the listing: ".." first, then directories, then files
func (b *Browser) Entries() []completion.Entry {
	return slices.Clone(b.entries)
}

// Len returns the number of entries
func (b *Browser) Len() int {
	return len(b.entries)
}

// Cursor returns the selected index
func (b *Browser) Cursor() int {
	return b.cursor
}

// SetCursor moves the cursor to i, clamped to the listing
func (b *Browser) SetCursor(i int) {
	b.cursor = max(0, min(i, len(b.entries)-1))
}

// Move shifts the cursor by delta, clamped to the listing
func (b *Browser) Move(delta int) {
	b.SetCursor(b.cursor + delta)
}

// Selected returns the entry under the cursor
func (b *Browser) Selected() (completion.Entry, bool) {
	if b.cursor < 0 || b.cursor >= len(b.entries) {
		return completion.Entry{}, false
	}
	return b.entries[b.cursor], true
}

// SelectedPath returns the absolute path of the entry under the cursor
func (b *Browser) SelectedPath() (string, bool) {
	e, ok := b.Selected()
	if !ok {
		return "", false
	}
	return filepath.Join(b.dir, e.Name), true
}

// Open lists dir. Relative paths resolve against the current listing and a
// leading ~ expands to the home directory. On failure the previous listing
// is kept.
func (b *Browser) Open(dir string) error {
	path := b.expand(dir)
	real, err := b.fsys.RealPath(path)
	if err != nil {
		return fmt.Errorf("cannot open %s: %w", dir, err)
	}
	entries, err := b.fsys.ReadDir(real)
	if err != nil {
		return fmt.Errorf("cannot open %s: %w", dir, err)
	}

	b.logger.Debug("directory opened", "dir", real, "entries", len(entries))
	b.dir = real
	b.entries = sortEntries(entries, real, b.maxEntries)
	b.cursor = 0
	b.resetSearch()
	return nil
}

// Refresh re-reads the listed directory keeping the cursor on the same name
func (b *Browser) Refresh() error {
	name := ""
	if e, ok := b.Selected(); ok {
		name = e.Name
	}
	entries, err := b.fsys.ReadDir(b.dir)
	if err != nil {
		return fmt.Errorf("cannot refresh %s: %w", b.dir, err)
	}
	b.entries = sortEntries(entries, b.dir, b.maxEntries)
	b.cursor = 0
	for i, e := range b.entries {
		if e.Name == name {
			b.cursor = i
			break
		}
	}
	if b.pattern != "" {
		b.mark(b.pattern)
	}
	return nil
}

// Parent lists the parent directory and selects the directory we came from
func (b *Browser) Parent() error {
	from := filepath.Base(b.dir)
	if err := b.Open(filepath.Dir(b.dir)); err != nil {
		return err
	}
	for i, e := range b.entries {
		if e.Name == from && e.Dir {
			b.cursor = i
			break
		}
	}
	return nil
}

// Enter descends into the selected directory. It returns false when the
// selection is not a directory.
func (b *Browser) Enter() (bool, error) {
	e, ok := b.Selected()
	if !ok || !e.Dir {
		return false, nil
	}
	if e.Name == ParentName {
		return true, b.Parent()
	}
	return true, b.Open(filepath.Join(b.dir, e.Name))
}

// Pattern returns the active search term
func (b *Browser) Pattern() string {
	return b.pattern
}

// Searching reports whether an incremental search is in progress
func (b *Browser) Searching() bool {
	return b.searching
}

// Matches reports whether entry i matches the search term
func (b *Browser) Matches(i int) bool {
	return i >= 0 && i < len(b.matches) && b.matches[i]
}

// BeginSearch remembers the cursor so CancelSearch can restore it
func (b *Browser) BeginSearch() {
	b.savedCursor = b.cursor
	b.searching = true
}

// Search marks the entries containing term and moves the cursor to the
// first match at or after the position the search started from. Terms
// without upper-case letters match case-insensitively.
func (b *Browser) Search(term string) {
	if !b.searching {
		b.BeginSearch()
	}
	b.mark(term)
	if term == "" {
		b.cursor = b.savedCursor
		return
	}
	n := len(b.entries)
	for k := 0; k < n; k++ {
		i := (b.savedCursor + k) % n
		if b.matches[i] {
			b.cursor = i
			return
		}
	}
}

// CancelSearch drops the search and restores the cursor
func (b *Browser) CancelSearch() {
	if b.searching {
		b.SetCursor(b.savedCursor)
	}
	b.resetSearch()
}

// CompleteSearch ends the incremental search keeping the marks for Next
func (b *Browser) CompleteSearch() {
	b.searching = false
}

// ClearSearch drops the marks
func (b *Browser) ClearSearch() {
	b.resetSearch()
}

// Next moves to the following or preceding match, wrapping around
func (b *Browser) Next(backward bool) bool {
	n := len(b.entries)
	if b.pattern == "" || n == 0 {
		return false
	}
	step := 1
	if backward {
		step = -1
	}
	for k := 1; k <= n; k++ {
		i := ((b.cursor+k*step)%n + n) % n
		if b.matches[i] {
			b.cursor = i
			return true
		}
	}
	return false
}

func (b *Browser) mark(term string) {
	b.pattern = term
	b.matches = make([]bool, len(b.entries))
	if term == "" {
		return
	}
	match := strings.Contains
	if !hasUpper(term) {
		lower := strings.ToLower(term)
		match = func(s, _ string) bool {
			return strings.Contains(strings.ToLower(s), lower)
		}
	}
	for i, e := range b.entries {
		b.matches[i] = e.Name != ParentName && match(e.Name, term)
	}
}

func (b *Browser) resetSearch() {
	b.pattern = ""
	b.matches = make([]bool, len(b.entries))
	b.searching = false
}

func (b *Browser) expand(dir string) string {
	if dir == "~" || strings.HasPrefix(dir, "~/") {
		if home, err := b.fsys.HomeDir(); err == nil {
			return filepath.Join(home, dir[1:])
		}
	}
	if filepath.IsAbs(dir) || b.dir == "" {
		return dir
	}
	return filepath.Join(b.dir, dir)
}

// sortEntries drops hidden entries, caps the listing and orders it with
// ".." first, directories next and files last, each group by name
func sortEntries(entries []completion.Entry, dir string, maxEntries int) []completion.Entry {
	out := make([]completion.Entry, 0, len(entries)+1)
	if filepath.Dir(dir) != dir {
		out = append(out, completion.Entry{Name: ParentName, Dir: true})
	}
	var visible []completion.Entry
	for _, e := range entries {
		if strings.HasPrefix(e.Name, ".") {
			continue
		}
		visible = append(visible, e)
	}
	slices.SortFunc(visible, func(a, b completion.Entry) int {
		if a.Dir != b.Dir {
			if a.Dir {
				return -1
			}
			return 1
		}
		return strings.Compare(a.Name, b.Name)
	})
	if maxEntries > 0 && len(visible) > maxEntries {
		visible = visible[:maxEntries]
	}
	return append(out, visible...)
}

func hasUpper(s string) bool {
	return strings.ToLower(s) != s
}

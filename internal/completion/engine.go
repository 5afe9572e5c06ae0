package completion

import (
	"log/slog"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/kilikali/kilikali/internal/command"
	"github.com/kilikali/kilikali/internal/domain"
	"github.com/kilikali/kilikali/internal/linebuf"
	"github.com/kilikali/kilikali/internal/types"
)

// DefaultMaxEntries caps the number of listed directory entries
const DefaultMaxEntries = 1024

// Engine completes the command token or the path argument at the cursor of a
// line buffer. The candidate list is computed on the first Advance and kept
// until Invalidate; callers must invalidate after every edit they make to the
// buffer themselves.
type Engine struct {
	buf        *linebuf.Buffer
	registry   *command.Registry
	fs         FS
	logger     *slog.Logger
	mode       types.Mode
	maxEntries int

	domain     Domain
	candidates []Candidate
	selected   int    // -1 when nothing is selected
	start, end int    // codepoint span replaced by a selection
	original   string // typed text of the span when the list was computed

	searchDir    string
	searchPrefix string
}

// NewEngine creates an engine editing buf. A nil fsys uses the local
// filesystem and a nil logger uses slog.Default().
func NewEngine(buf *linebuf.Buffer, registry *command.Registry, fsys FS, logger *slog.Logger) *Engine {
	if fsys == nil {
		fsys = OSFS{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		buf:        buf,
		registry:   registry,
		fs:         fsys,
		logger:     logger,
		mode:       types.ModeCommand,
		maxEntries: DefaultMaxEntries,
		selected:   -1,
	}
}

// SetMaxEntries sets the directory entry cap. Values below 1 are ignored.
func (e *Engine) SetMaxEntries(n int) {
	if n > 0 {
		e.maxEntries = n
	}
}

// SetMode selects which commands are offered and drops any cached list
func (e *Engine) SetMode(mode types.Mode) {
	e.mode = mode
	e.Invalidate()
}

// Mode returns the active mode
func (e *Engine) Mode() types.Mode {
	return e.mode
}

// Invalidate discards the cached candidate list
func (e *Engine) Invalidate() {
	e.domain = DomainNone
	e.candidates = nil
	e.selected = -1
	e.start, e.end = 0, 0
	e.original = ""
	e.searchDir = ""
	e.searchPrefix = ""
}

// Domain returns the kind of candidates currently held
func (e *Engine) Domain() Domain {
	return e.domain
}

// HasCandidates returns true while a candidate list is cached
func (e *Engine) HasCandidates() bool {
	return len(e.candidates) > 0
}

// Candidates returns a copy of the cached candidate list
func (e *Engine) Candidates() []Candidate {
	return slices.Clone(e.candidates)
}

// Selected returns the index of the selected candidate, or -1
func (e *Engine) Selected() int {
	return e.selected
}

// SearchDir returns the directory part of the path being completed
func (e *Engine) SearchDir() string {
	return e.searchDir
}

// SearchPrefix returns the name prefix of the path being completed
func (e *Engine) SearchPrefix() string {
	return e.searchPrefix
}

// CurrentCommand returns the command the first token resolves to, or nil
func (e *Engine) CurrentCommand() *command.Command {
	_, _, token := e.CommandToken()
	if token == "" {
		return nil
	}
	cmd, err := e.resolve(token)
	if err != nil {
		return nil
	}
	return cmd
}

// Lookup completes the command token without cycling. A single match, or an
// exact name among several matches, is spliced into the line followed by one
// space and the cursor is left after that space. Zero matches return
// domain.ErrNoSuchCommand and several return domain.ErrAmbiguousCommand; the
// line is left untouched in both cases.
func (e *Engine) Lookup() (*command.Command, error) {
	e.Invalidate()

	start, end, token := e.CommandToken()
	if token == "" {
		return nil, &domain.CommandError{Op: "lookup", Err: domain.ErrNoSuchCommand}
	}
	cmd, err := e.resolve(token)
	if err != nil {
		return nil, &domain.CommandError{Op: "lookup", Name: token, Err: err}
	}
	if !e.accept(cmd, start, end) {
		return nil, &domain.CommandError{Op: "lookup", Name: cmd.Name, Err: domain.ErrBufferFull}
	}
	return cmd, nil
}

// Advance selects the next (forward) or previous candidate and splices it
// into the line, computing the list first when none is cached. A list with a
// single candidate is spliced at once and not kept. Advance returns false
// when there is nothing to complete.
func (e *Engine) Advance(forward bool) bool {
	if e.domain == DomainNone {
		cycle, ok := e.compute()
		if !ok {
			return false
		}
		if !cycle {
			return true
		}
	}

	n := len(e.candidates)
	switch {
	case forward:
		e.selected = (e.selected + 1) % n
	case e.selected <= 0:
		e.selected = n - 1
	default:
		e.selected--
	}
	e.apply(e.selected)
	return true
}

// SelectCommand splices command candidate i into the line and makes it the
// selection
func (e *Engine) SelectCommand(i int) bool {
	return e.selectIndex(DomainCommand, i)
}

// SelectPath splices path candidate i into the line and makes it the
// selection
func (e *Engine) SelectPath(i int) bool {
	return e.selectIndex(DomainPath, i)
}

func (e *Engine) selectIndex(d Domain, i int) bool {
	if e.domain != d || i < 0 || i >= len(e.candidates) {
		return false
	}
	e.selected = i
	e.apply(i)
	return true
}

// SelectParent replaces the path being completed with its parent directory
// and lists that directory. The filesystem root is its own parent.
func (e *Engine) SelectParent() bool {
	if e.domain != DomainPath {
		return false
	}
	parent := e.parentDir(e.searchDir)
	e.logger.Debug("select parent directory", "from", e.searchDir, "to", parent)
	if !e.splice(escapeSpaces(parent)) {
		return false
	}
	e.Invalidate()
	return e.Advance(true)
}

// SelectChild keeps the selected path and completes again from it, listing
// the contents of a selected directory
func (e *Engine) SelectChild() bool {
	if e.domain != DomainPath {
		return false
	}
	e.Invalidate()
	return e.Advance(true)
}

// compute builds the candidate list for the cursor position. cycle is false
// when a single candidate was spliced directly.
func (e *Engine) compute() (cycle, ok bool) {
	start, end, token := e.CommandToken()
	cur := e.buf.Cursor()

	if cur <= end {
		// Only the text before the cursor filters; the whole token is replaced
		prefix := token
		switch {
		case cur <= start:
			// Cursor before the command: browse everything
			prefix = ""
		case cur < end:
			prefix = linebuf.Substring(e.buf.Bytes(), start, cur)
		}
		cmds := e.registry.Matching(e.mode, prefix)
		switch len(cmds) {
		case 0:
			return false, false
		case 1:
			e.start, e.end = start, end
			return false, e.splice(cmds[0].Name)
		}

		cands := make([]Candidate, 0, len(cmds)+1)
		for _, cmd := range cmds {
			cands = append(cands, commandCandidate(cmd))
		}
		e.domain = DomainCommand
		e.candidates = append(cands, placeholder(" "))
		e.start, e.end = start, end
		e.original = token
		return true, true
	}

	if token == "" {
		return false, false
	}
	cmd, err := e.resolve(token)
	if err != nil || !cmd.Hint.CompletesPath() {
		return false, false
	}

	fragStart := e.pathStart(end, cur)
	fragment := linebuf.Substring(e.buf.Bytes(), fragStart, cur)
	cands := e.listPath(unescapeSpaces(fragment), cmd.Hint == command.HintDir)

	e.domain = DomainPath
	e.candidates = cands
	e.start, e.end = fragStart, cur
	e.original = fragment
	if len(cands) == 1 {
		e.apply(0)
		e.Invalidate()
		return false, cands[0].Kind != KindPlaceholder
	}
	return true, true
}

// CommandToken returns the codepoint span and text of the first token
func (e *Engine) CommandToken() (start, end int, token string) {
	b := e.buf.Bytes()
	s := 0
	for s < len(b) && b[s] == ' ' {
		s++
	}
	t := s
	for t < len(b) && b[t] != ' ' {
		t++
	}
	return linebuf.RuneOffset(b, s), linebuf.RuneOffset(b, t), string(b[s:t])
}

// resolve maps a typed token to a command: the only prefix match, or the
// exact name among several
func (e *Engine) resolve(token string) (*command.Command, error) {
	matches := e.registry.Matching(e.mode, token)
	switch len(matches) {
	case 0:
		return nil, domain.ErrNoSuchCommand
	case 1:
		return matches[0], nil
	}
	for _, cmd := range matches {
		if cmd.Name == token {
			return cmd, nil
		}
	}
	return nil, domain.ErrAmbiguousCommand
}

// accept writes cmd's name over the span [start, end), makes sure one space
// follows it and moves the cursor past that space
func (e *Engine) accept(cmd *command.Command, start, end int) bool {
	b := e.buf.Bytes()
	rest := linebuf.Substring(b, end, linebuf.RuneCount(b))
	if !strings.HasPrefix(rest, " ") {
		rest = " " + rest
	}
	line := linebuf.Substring(b, 0, start) + cmd.Name + rest
	if !e.buf.SetText(line) {
		return false
	}
	e.buf.SetCursor(start + utf8.RuneCountInString(cmd.Name) + 1)
	return true
}

// apply splices candidate i over the current span
func (e *Engine) apply(i int) {
	c := e.candidates[i]
	text := c.Text
	switch {
	case e.domain == DomainPath:
		text = e.pathText(c)
	case c.Kind == KindPlaceholder:
		text = e.original
	}
	if !e.splice(text) {
		e.logger.Debug("candidate does not fit the line", "candidate", c.Text)
	}
}

// splice replaces the span [start, end) with text, keeping what follows it,
// and leaves the cursor at the end of the new span
func (e *Engine) splice(text string) bool {
	b := e.buf.Bytes()
	line := linebuf.Substring(b, 0, e.start) + text + linebuf.Substring(b, e.end, linebuf.RuneCount(b))
	if !e.buf.SetText(line) {
		return false
	}
	e.end = e.start + utf8.RuneCountInString(text)
	e.buf.SetCursor(e.end)
	return true
}

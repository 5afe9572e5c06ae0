package prompt

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/kilikali/kilikali/internal/cmdline"
	"github.com/kilikali/kilikali/internal/command"
	"github.com/kilikali/kilikali/internal/completion"
	"github.com/kilikali/kilikali/internal/types"
	"github.com/kilikali/kilikali/internal/ui/styles"
	"github.com/stretchr/testify/assert"
)

func TestPrefix(t *testing.T) {
	assert.Equal(t, ":", Prefix(types.ModeCommand))
	assert.Equal(t, ":", Prefix(types.ModeFileBrowser))
	assert.Equal(t, "/", Prefix(types.ModeSearch))
	assert.Equal(t, "/", Prefix(types.ModeFileBrowserSearch))
}

func TestCursorColumn(t *testing.T) {
	assert.Equal(t, 0, CursorColumn("add", 0))
	assert.Equal(t, 3, CursorColumn("add", 3))
	assert.Equal(t, 3, CursorColumn("add", 10), "cursor is clamped")
	assert.Equal(t, 4, CursorColumn("音楽x", 2), "wide characters take two columns")
}

func TestWindow(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		cursor int
		width  int
		before string
		at     string
		after  string
	}{
		{"fits", "add x", 5, 20, "add x", "", ""},
		{"cursor inside", "add x", 1, 20, "a", "d", "d x"},
		{"scrolls left", "abcdefghij", 10, 4, "hij", "", ""},
		{"keeps cursor visible", "abcdefghij", 2, 4, "ab", "c", "d"},
		{"wide characters", "音楽音楽", 4, 5, "音楽", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before, at, after := Window([]rune(tt.text), tt.cursor, tt.width)
			assert.Equal(t, tt.before, before)
			assert.Equal(t, tt.at, at)
			assert.Equal(t, tt.after, after)
		})
	}
}

func TestRender(t *testing.T) {
	r := New(styles.New())

	out := r.Render(cmdline.Snapshot{Text: "add ~/Music", Cursor: 11, Mode: types.ModeCommand}, 80)
	assert.True(t, strings.HasPrefix(stripped(out), ":add ~/Music"))

	out = r.Render(cmdline.Snapshot{Text: "beat", Cursor: 4, Mode: types.ModeSearch}, 80)
	assert.True(t, strings.HasPrefix(stripped(out), "/beat"))

	out = r.Render(cmdline.Snapshot{Text: strings.Repeat("x", 100), Cursor: 100, Mode: types.ModeCommand}, 20)
	assert.LessOrEqual(t, lipgloss.Width(out), 20)
}

func TestRenderMenu(t *testing.T) {
	r := New(styles.New())
	quit := &command.Command{Name: "quit", Description: "Quit the player"}

	snap := cmdline.Snapshot{
		MenuMode: types.MenuList,
		Domain:   completion.DomainPath,
		Candidates: []completion.Candidate{
			{Kind: completion.KindDirectory, Text: "Albums"},
			{Kind: completion.KindFile, Text: "song.mp3"},
			{Kind: completion.KindPlaceholder, Text: "typed"},
		},
		Selected: 1,
	}

	out := stripped(r.RenderMenu(snap, 80))
	assert.Contains(t, out, "Albums/")
	assert.Contains(t, out, "song.mp3")
	assert.NotContains(t, out, "typed", "the placeholder is not listed")

	snap.MenuMode = types.MenuNone
	assert.Empty(t, r.RenderMenu(snap, 80))

	full := cmdline.Snapshot{
		MenuMode:   types.MenuFull,
		Domain:     completion.DomainCommand,
		Candidates: []completion.Candidate{{Kind: completion.KindCommand, Text: "quit", Command: quit}},
		Selected:   -1,
	}
	out = stripped(r.RenderMenu(full, 60))
	assert.Contains(t, out, "quit")
	assert.Contains(t, out, "Quit the player")
	assert.Contains(t, out, "╭", "full menu is bordered")
}

func TestRenderMenu_Empty(t *testing.T) {
	r := New(styles.New())
	snap := cmdline.Snapshot{
		MenuMode:   types.MenuList,
		Candidates: []completion.Candidate{{Kind: completion.KindPlaceholder, Text: "x"}},
	}
	assert.Empty(t, r.RenderMenu(snap, 80))
}

func TestRenderMenu_FullScrolls(t *testing.T) {
	r := New(styles.New())
	var cands []completion.Candidate
	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"} {
		cands = append(cands, completion.Candidate{Kind: completion.KindFile, Text: name + ".mp3"})
	}
	snap := cmdline.Snapshot{MenuMode: types.MenuFull, Domain: completion.DomainPath, Candidates: cands, Selected: 9}

	out := stripped(r.RenderMenu(snap, 40))
	assert.Contains(t, out, "j.mp3")
	assert.NotContains(t, out, "a.mp3", "window follows the selection")
	assert.Contains(t, out, "10/10")
}

// stripped removes ANSI escape sequences
func stripped(s string) string {
	var b strings.Builder
	inEsc := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			inEsc = true
		case inEsc && (r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'):
			inEsc = false
		case !inEsc:
			b.WriteRune(r)
		}
	}
	return b.String()
}

package completion

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/kilikali/kilikali/internal/command"
	"github.com/kilikali/kilikali/internal/domain"
	"github.com/kilikali/kilikali/internal/linebuf"
	"github.com/kilikali/kilikali/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// fakeFS serves directory listings from memory
type fakeFS struct {
	dirs map[string][]Entry
	home string
	real map[string]string
}

func (f *fakeFS) ReadDir(dir string) ([]Entry, error) {
	entries, ok := f.dirs[dir]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return entries, nil
}

func (f *fakeFS) HomeDir() (string, error) {
	if f.home == "" {
		return "", errors.New("no home")
	}
	return f.home, nil
}

func (f *fakeFS) RealPath(path string) (string, error) {
	if r, ok := f.real[path]; ok {
		return r, nil
	}
	return "", fs.ErrNotExist
}

func newFakeFS() *fakeFS {
	return &fakeFS{
		dirs: map[string][]Entry{
			".": {
				{Name: "notes.txt"},
				{Name: "music", Dir: true},
				{Name: "My File.mp3"},
				{Name: "My Folder", Dir: true},
			},
			"music/": {
				{Name: "b.ogg"},
				{Name: "a.mp3"},
			},
			"../": {
				{Name: "up", Dir: true},
			},
			"/": {
				{Name: "usr", Dir: true},
				{Name: "etc", Dir: true},
				{Name: "vmlinuz"},
			},
			"/home/me/": {
				{Name: "songs", Dir: true},
			},
		},
		home: "/home/me",
		real: map[string]string{"/": "/"},
	}
}

func testRegistry(t *testing.T, names ...string) *command.Registry {
	t.Helper()
	reg := command.NewRegistry()
	for _, name := range names {
		cmd := &command.Command{
			Name:  name,
			Modes: types.ModeCommand | types.ModeFileBrowser,
			Run:   func([]string) error { return nil },
		}
		switch name {
		case "add", "write":
			cmd.Hint = command.HintPath
		case "cd":
			cmd.Hint = command.HintDir
		case "remove":
			cmd.Hint = command.HintRange
		}
		require.NoError(t, reg.Register(cmd))
	}
	return reg
}

func newTestEngine(t *testing.T, line string, names ...string) (*Engine, *linebuf.Buffer) {
	t.Helper()
	buf := linebuf.NewBuffer()
	require.True(t, buf.SetText(line))
	return NewEngine(buf, testRegistry(t, names...), newFakeFS(), nil), buf
}

func TestLookup_SingleMatchAutoAccept(t *testing.T) {
	e, buf := newTestEngine(t, "wr", "write", "quit")

	cmd, err := e.Lookup()
	require.NoError(t, err)
	assert.Equal(t, "write", cmd.Name)
	assert.Equal(t, "write ", buf.String())
	assert.Equal(t, 6, buf.Cursor())
	assert.False(t, e.HasCandidates())
}

func TestLookup_KeepsRemainder(t *testing.T) {
	e, buf := newTestEngine(t, "q now", "write", "quit")
	buf.SetCursor(1)

	_, err := e.Lookup()
	require.NoError(t, err)
	assert.Equal(t, "quit now", buf.String())
	assert.Equal(t, 5, buf.Cursor())
}

func TestLookup_Errors(t *testing.T) {
	e, buf := newTestEngine(t, "w", "write", "wipe", "add", "addall")

	_, err := e.Lookup()
	assert.ErrorIs(t, err, domain.ErrAmbiguousCommand)
	assert.Equal(t, "w", buf.String(), "line untouched")

	buf.SetText("zz")
	_, err = e.Lookup()
	assert.ErrorIs(t, err, domain.ErrNoSuchCommand)

	buf.SetText("add")
	cmd, err := e.Lookup()
	require.NoError(t, err, "exact name wins among several matches")
	assert.Equal(t, "add", cmd.Name)
	assert.Equal(t, "add ", buf.String())
}

func TestAdvance_CommandCycling(t *testing.T) {
	e, buf := newTestEngine(t, "", "write", "add", "quit", "cd")

	require.True(t, e.Advance(true))
	assert.Equal(t, DomainCommand, e.Domain())
	cands := e.Candidates()
	require.Len(t, cands, 5)
	assert.Equal(t, "add", cands[0].Text)
	assert.Equal(t, KindCommand, cands[0].Kind)
	assert.Equal(t, "add", cands[0].Command.Name)
	assert.Equal(t, KindPlaceholder, cands[4].Kind)
	assert.Equal(t, " ", cands[4].Text)

	assert.Equal(t, "add", buf.String())
	assert.Equal(t, 3, buf.Cursor())

	e.Advance(true)
	assert.Equal(t, "cd", buf.String())
	e.Advance(true)
	e.Advance(true)
	assert.Equal(t, "write", buf.String())

	e.Advance(true)
	assert.Equal(t, 4, e.Selected())
	assert.Equal(t, "", buf.String(), "placeholder restores the typed text")

	e.Advance(true)
	assert.Equal(t, 0, e.Selected())
	assert.Equal(t, "add", buf.String())

	e.Advance(false)
	assert.Equal(t, 4, e.Selected())
	e.Advance(false)
	assert.Equal(t, "write", buf.String())
}

func TestAdvance_BackwardFirst(t *testing.T) {
	e, buf := newTestEngine(t, "", "write", "add")

	require.True(t, e.Advance(false))
	assert.Equal(t, 2, e.Selected())
	assert.Equal(t, "", buf.String())
	e.Advance(false)
	assert.Equal(t, "write", buf.String())
}

func TestAdvance_CommandPrefix(t *testing.T) {
	e, buf := newTestEngine(t, "c", "cd", "clear", "quit")

	require.True(t, e.Advance(true))
	assert.Len(t, e.Candidates(), 3)
	assert.Equal(t, "cd", buf.String())
	e.Advance(true)
	assert.Equal(t, "clear", buf.String())
	e.Advance(true)
	assert.Equal(t, "c", buf.String())
}

func TestAdvance_SingleCommandSplicedAtOnce(t *testing.T) {
	e, buf := newTestEngine(t, "wr file", "write", "quit")
	buf.SetCursor(2)

	require.True(t, e.Advance(true))
	assert.Equal(t, "write file", buf.String())
	assert.Equal(t, 5, buf.Cursor(), "cursor ends on the name")
	assert.False(t, e.HasCandidates())
}

func TestAdvance_SingleCommandNoTrailingSpace(t *testing.T) {
	e, buf := newTestEngine(t, "wr", "write", "quit")

	require.True(t, e.Advance(true))
	assert.Equal(t, "write", buf.String())
	assert.Equal(t, 5, buf.Cursor())
}

func TestAdvance_CursorInsideCommandToken(t *testing.T) {
	tests := []struct {
		name       string
		line       string
		cursor     int
		wantText   string
		wantCursor int
		wantCands  int
	}{
		{name: "single match replaces whole token", line: "wrXYZ", cursor: 2, wantText: "write", wantCursor: 5},
		{name: "keeps arguments", line: "wrXYZ file", cursor: 1, wantText: "write file", wantCursor: 5},
		{name: "several matches cycle over whole token", line: "cXYZ", cursor: 1, wantText: "cd", wantCursor: 2, wantCands: 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, buf := newTestEngine(t, tt.line, "write", "quit", "cd", "clear")
			buf.SetCursor(tt.cursor)

			require.True(t, e.Advance(true))
			assert.Equal(t, tt.wantText, buf.String())
			assert.Equal(t, tt.wantCursor, buf.Cursor())
			assert.Len(t, e.Candidates(), tt.wantCands)
		})
	}
}

func TestAdvance_CursorInsideTokenPlaceholderRestores(t *testing.T) {
	e, buf := newTestEngine(t, "cXYZ", "cd", "clear")
	buf.SetCursor(1)

	require.True(t, e.Advance(true))
	assert.Equal(t, "cd", buf.String())
	e.Advance(true)
	assert.Equal(t, "clear", buf.String())
	e.Advance(true)
	assert.Equal(t, "cXYZ", buf.String(), "placeholder brings back the typed token")
}

func TestAdvance_BrowseBeforeCommand(t *testing.T) {
	e, buf := newTestEngine(t, "  q", "write", "quit")
	buf.SetCursor(0)

	require.True(t, e.Advance(true))
	assert.Len(t, e.Candidates(), 3, "every command plus the placeholder")
	assert.Equal(t, "  quit", buf.String())
}

func TestAdvance_NoMatch(t *testing.T) {
	e, buf := newTestEngine(t, "x", "write", "quit")

	assert.False(t, e.Advance(true))
	assert.Equal(t, "x", buf.String())
	assert.Equal(t, DomainNone, e.Domain())
}

func TestAdvance_ModeFilter(t *testing.T) {
	e, _ := newTestEngine(t, "", "write", "quit")
	e.SetMode(types.ModeSearch)

	assert.False(t, e.Advance(true))
}

func TestAdvance_PathEscapedSpace(t *testing.T) {
	e, buf := newTestEngine(t, "add My", "add")

	require.True(t, e.Advance(true))
	assert.Equal(t, DomainPath, e.Domain())
	assert.Equal(t, "", e.SearchDir())
	assert.Equal(t, "My", e.SearchPrefix())

	cands := e.Candidates()
	require.Len(t, cands, 3)
	assert.Equal(t, Candidate{Kind: KindFile, Text: "My File.mp3"}, cands[0])
	assert.Equal(t, Candidate{Kind: KindDirectory, Text: "My Folder"}, cands[1])
	assert.Equal(t, Candidate{Kind: KindPlaceholder, Text: "My"}, cands[2])

	assert.Equal(t, `add My\ File.mp3`, buf.String())
	assert.Equal(t, buf.RuneLen(), buf.Cursor())

	e.Advance(true)
	assert.Equal(t, `add My\ Folder/`, buf.String())

	e.Advance(true)
	assert.Equal(t, "add My", buf.String())
}

func TestAdvance_PathFragmentWithEscapedSpace(t *testing.T) {
	e, buf := newTestEngine(t, `add My\ Fo`, "add")

	require.True(t, e.Advance(true))
	assert.Equal(t, "My Fo", e.SearchPrefix())
	assert.Equal(t, `add My\ Folder/`, buf.String())
}

func TestAdvance_PathListsCurrentDir(t *testing.T) {
	e, buf := newTestEngine(t, "add ", "add")

	require.True(t, e.Advance(true))
	names := []string{}
	for _, c := range e.Candidates() {
		names = append(names, c.Text)
	}
	assert.Equal(t, []string{"My File.mp3", "My Folder", "music", "notes.txt", ""}, names)
	assert.Equal(t, `add My\ File.mp3`, buf.String())
}

func TestAdvance_PathKeepsTrailingText(t *testing.T) {
	e, buf := newTestEngine(t, "add no tail", "add")
	buf.SetCursor(6)

	require.True(t, e.Advance(true))
	assert.Equal(t, "add notes.txt tail", buf.String())
	assert.Equal(t, 13, buf.Cursor())
}

func TestAdvance_DirOnly(t *testing.T) {
	e, buf := newTestEngine(t, "cd ", "cd")

	require.True(t, e.Advance(true))
	for _, c := range e.Candidates() {
		assert.NotEqual(t, KindFile, c.Kind, "cd offers directories only")
	}
	assert.Equal(t, `cd My\ Folder/`, buf.String())
}

func TestAdvance_Tilde(t *testing.T) {
	e, buf := newTestEngine(t, "cd ~", "cd")

	require.True(t, e.Advance(true))
	assert.Equal(t, "cd ~/", buf.String())
	assert.False(t, e.HasCandidates())

	require.True(t, e.Advance(true))
	assert.Equal(t, "~/", e.SearchDir())
	assert.Equal(t, "cd ~/songs/", buf.String())
}

func TestAdvance_UnreadableDir(t *testing.T) {
	e, buf := newTestEngine(t, "add nope/x", "add")

	assert.False(t, e.Advance(true))
	assert.Equal(t, "add nope/x", buf.String())
	assert.False(t, e.HasCandidates())
}

func TestAdvance_NoPathForOtherHints(t *testing.T) {
	e, _ := newTestEngine(t, "remove ", "remove")
	assert.False(t, e.Advance(true))

	e, _ = newTestEngine(t, "bogus ", "remove")
	assert.False(t, e.Advance(true))
}

func TestAdvance_MaxEntries(t *testing.T) {
	e, _ := newTestEngine(t, "add ", "add")
	e.SetMaxEntries(2)

	require.True(t, e.Advance(true))
	assert.Len(t, e.Candidates(), 3)
}

func TestSelectChildAndParent(t *testing.T) {
	e, buf := newTestEngine(t, "add mu", "add")

	require.True(t, e.Advance(true))
	assert.Equal(t, "add music/", buf.String())

	require.True(t, e.SelectChild())
	assert.Equal(t, "music/", e.SearchDir())
	assert.Equal(t, "add music/a.mp3", buf.String())

	require.True(t, e.SelectParent())
	assert.Equal(t, "", e.SearchDir())
	assert.Equal(t, `add My\ File.mp3`, buf.String())

	require.True(t, e.SelectParent())
	assert.Equal(t, "../", e.SearchDir())
	assert.Equal(t, "add ../up/", buf.String())
}

func TestSelectParent_RootIsFixedPoint(t *testing.T) {
	e, buf := newTestEngine(t, "cd /", "cd")

	require.True(t, e.Advance(true))
	assert.Equal(t, "cd /etc/", buf.String())

	require.True(t, e.SelectParent())
	assert.Equal(t, "/", e.SearchDir())
	assert.Equal(t, "cd /etc/", buf.String())
}

func TestSelectParent_RequiresPathCandidates(t *testing.T) {
	e, _ := newTestEngine(t, "", "write", "quit")
	require.True(t, e.Advance(true))

	assert.False(t, e.SelectParent())
	assert.False(t, e.SelectChild())
}

func TestParentDir(t *testing.T) {
	e, _ := newTestEngine(t, "")

	tests := []struct {
		dir  string
		want string
	}{
		{"", "../"},
		{"a/", ""},
		{"a/b/", "a/"},
		{"/usr/lib/", "/usr/"},
		{"/usr/", "/"},
		{"/", "/"},
		{"../", "../../"},
		{"./", "./../"},
		{"~/", "~/../"},
		{"a//", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, e.parentDir(tt.dir), "parent of %q", tt.dir)
	}
}

func TestInvalidate(t *testing.T) {
	e, _ := newTestEngine(t, "", "write", "quit")
	require.True(t, e.Advance(true))
	require.True(t, e.HasCandidates())

	e.Invalidate()
	assert.False(t, e.HasCandidates())
	assert.Equal(t, -1, e.Selected())
	assert.Equal(t, DomainNone, e.Domain())
}

func TestCurrentCommand(t *testing.T) {
	e, buf := newTestEngine(t, "ad x", "add", "write")
	require.NotNil(t, e.CurrentCommand())
	assert.Equal(t, "add", e.CurrentCommand().Name)

	buf.SetText("   ")
	assert.Nil(t, e.CurrentCommand())
}

func TestOSFS(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "album"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "track.flac"), nil, 0o644))
	require.NoError(t, os.Symlink(filepath.Join(dir, "album"), filepath.Join(dir, "link")))

	entries, err := OSFS{}.ReadDir(dir)
	require.NoError(t, err)

	byName := map[string]bool{}
	for _, e := range entries {
		byName[e.Name] = e.Dir
	}
	assert.Equal(t, map[string]bool{"album": true, "track.flac": false, "link": true}, byName)

	real, err := OSFS{}.RealPath(filepath.Join(dir, "link"))
	require.NoError(t, err)
	want, err := filepath.EvalSymlinks(filepath.Join(dir, "album"))
	require.NoError(t, err)
	assert.Equal(t, want, real)

	_, err = OSFS{}.ReadDir(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

func TestEngine_OSFSPathCompletion(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "Best Of"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Best Song.mp3"), nil, 0o644))

	buf := linebuf.NewBuffer()
	buf.SetText("add " + escapeSpaces(dir) + "/Best")
	e := NewEngine(buf, testRegistry(t, "add"), nil, nil)

	require.True(t, e.Advance(true))
	assert.Equal(t, "add "+escapeSpaces(dir+"/Best Of/"), buf.String())
	e.Advance(true)
	assert.Equal(t, "add "+escapeSpaces(dir+"/Best Song.mp3"), buf.String())
}

func TestAdvance_CyclingWraps(t *testing.T) {
	pool := []string{"add", "cd", "clear", "help", "quit", "remove", "search", "write", "Ex"}

	rapid.Check(t, func(t *rapid.T) {
		k := rapid.IntRange(2, len(pool)).Draw(t, "k")
		names := rapid.Permutation(pool).Draw(t, "names")[:k]
		forward := rapid.Bool().Draw(t, "forward")
		warmup := rapid.IntRange(1, 20).Draw(t, "warmup")

		reg := command.NewRegistry()
		for _, name := range names {
			if err := reg.Register(&command.Command{Name: name, Modes: types.ModeCommand, Run: func([]string) error { return nil }}); err != nil {
				t.Fatalf("register %s: %v", name, err)
			}
		}
		buf := linebuf.NewBuffer()
		e := NewEngine(buf, reg, newFakeFS(), nil)

		for range warmup {
			e.Advance(forward)
		}
		n := len(e.Candidates())
		if n != len(names)+1 {
			t.Fatalf("candidates = %d, want %d", n, len(names)+1)
		}
		startSel, startLine := e.Selected(), buf.String()

		for range n {
			e.Advance(forward)
			if e.Domain() != DomainCommand {
				t.Fatalf("domain changed to %s while cycling", e.Domain())
			}
		}
		if e.Selected() != startSel || buf.String() != startLine {
			t.Fatalf("after %d steps: selected %d line %q, want %d %q", n, e.Selected(), buf.String(), startSel, startLine)
		}
	})
}

func TestCandidates_Exclusive(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		line := rapid.SampledFrom([]string{"", "a", "add ", "add My", "cd ", "c", "add mu", "q"}).Draw(t, "line")
		steps := rapid.IntRange(1, 6).Draw(t, "steps")

		buf := linebuf.NewBuffer()
		buf.SetText(line)
		reg := command.NewRegistry()
		for _, c := range []*command.Command{
			{Name: "add", Hint: command.HintPath, Modes: types.ModeCommand, Run: func([]string) error { return nil }},
			{Name: "cd", Hint: command.HintDir, Modes: types.ModeCommand, Run: func([]string) error { return nil }},
			{Name: "clear", Modes: types.ModeCommand, Run: func([]string) error { return nil }},
			{Name: "quit", Modes: types.ModeCommand, Run: func([]string) error { return nil }},
		} {
			if err := reg.Register(c); err != nil {
				t.Fatal(err)
			}
		}
		e := NewEngine(buf, reg, newFakeFS(), nil)

		for range steps {
			switch rapid.IntRange(0, 3).Draw(t, "op") {
			case 0:
				e.Advance(true)
			case 1:
				e.Advance(false)
			case 2:
				e.SelectChild()
			case 3:
				e.SelectParent()
			}
			var commands, paths int
			for _, c := range e.Candidates() {
				switch c.Kind {
				case KindCommand:
					commands++
				case KindFile, KindDirectory:
					paths++
				}
			}
			if commands > 0 && paths > 0 {
				t.Fatalf("both command (%d) and path (%d) candidates present", commands, paths)
			}
		}
	})
}

func TestSelectByIndex(t *testing.T) {
	e, buf := newTestEngine(t, "", "write", "add", "quit")

	assert.False(t, e.SelectCommand(0), "nothing cached yet")
	require.True(t, e.Advance(true))

	assert.False(t, e.SelectPath(0), "wrong domain")
	assert.False(t, e.SelectCommand(9))

	require.True(t, e.SelectCommand(2))
	assert.Equal(t, 2, e.Selected())
	assert.Equal(t, "write", buf.String())

	e.Advance(true)
	assert.Equal(t, "", buf.String(), "cycling continues from the chosen index")

	buf.SetText("add ")
	e.Invalidate()
	require.True(t, e.Advance(true))
	require.Equal(t, DomainPath, e.Domain())
	require.True(t, e.SelectPath(1))
	assert.Equal(t, `add My\ Folder/`, buf.String())
}

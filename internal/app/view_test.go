package app

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/kilikali/kilikali/internal/types"
	"github.com/stretchr/testify/assert"
)

func assertFits(t *testing.T, m Model) {
	t.Helper()
	lines := strings.Split(strings.TrimRight(m.View(), "\n"), "\n")
	assert.LessOrEqual(t, len(lines), m.height, "view is too tall")
}

func TestViewHeight(t *testing.T) {
	m, dir := newTestModel(t)

	t.Run("normal view", func(t *testing.T) {
		assertFits(t, m)
	})

	t.Run("with tracks", func(t *testing.T) {
		m = runCommand(t, m, "add "+dir)
		assertFits(t, m)
	})

	t.Run("prompting with menu", func(t *testing.T) {
		m.config.Wild = "full"
		next, err := New(m.config, WithLogger(m.logger))
		if !assert.NoError(t, err) {
			return
		}
		next.width, next.height = m.width, m.height
		next = typeKeys(t, next, ":")
		next, _ = press(t, next, tea.KeyTab)
		assertFits(t, next)
	})

	t.Run("with toasts", func(t *testing.T) {
		for range 10 {
			m.player.toasts = append(m.player.toasts, types.Toast{
				Level:   types.ToastInfo,
				Message: "test toast",
				Expires: time.Now().Add(time.Hour),
			})
		}
		assertFits(t, m)
	})

	t.Run("browser", func(t *testing.T) {
		m = typeKeys(t, m, "a")
		assertFits(t, m)
	})

	t.Run("help", func(t *testing.T) {
		m = typeKeys(t, m, "h")
		assertFits(t, m)
	})
}

func TestView_Loading(t *testing.T) {
	m, _ := newTestModel(t)
	m.width = 0
	assert.Equal(t, "Loading...", m.View())
}

func TestView_Playlist(t *testing.T) {
	m, dir := newTestModel(t)

	view := ansi.Strip(m.View())
	assert.Contains(t, view, "kilikali")
	assert.Contains(t, view, "PLAYLIST")
	assert.Contains(t, view, "Playlist is empty")

	m = runCommand(t, m, "add "+dir)
	view = ansi.Strip(m.View())
	for _, name := range []string{"a", "b", "c", "d"} {
		assert.Contains(t, view, " "+name)
	}
	assert.Contains(t, view, "4 tracks")
	assert.Contains(t, view, "1/4")

	m = typeKeys(t, m, ":ad")
	view = ansi.Strip(m.View())
	assert.Contains(t, view, ":ad")
	assert.Contains(t, view, "COMMAND")
}

func TestView_Browser(t *testing.T) {
	m, _ := newTestModel(t)

	m = typeKeys(t, m, "a")
	view := ansi.Strip(m.View())
	assert.Contains(t, view, "BROWSER")
	assert.Contains(t, view, "sub/")
	assert.Contains(t, view, "notes.txt")
}

func TestView_Help(t *testing.T) {
	m, _ := newTestModel(t)

	m = runCommand(t, m, "help")
	view := ansi.Strip(m.View())
	assert.Contains(t, view, "HELP")
	assert.Contains(t, view, "Movement:")
	assert.Contains(t, view, "move down")
}

func TestHelpSections(t *testing.T) {
	m, _ := newTestModel(t)

	var names []string
	for _, sec := range m.help.Sections() {
		names = append(names, sec.Name)
	}
	assert.Equal(t, []string{
		"Movement", "Playlist", "File browser",
		"Commands (command)", "Commands (browser)",
	}, names)

	var keys []string
	for _, e := range m.help.Sections()[2].Entries {
		keys = append(keys, e.Key)
	}
	assert.Contains(t, keys, "space", "the space key gets a visible label")
}

func TestFitLines(t *testing.T) {
	assert.Equal(t, []string{"a", "", ""}, fitLines("a", 3))
	assert.Equal(t, []string{"a", "b"}, fitLines("a\nb\nc", 2))
}

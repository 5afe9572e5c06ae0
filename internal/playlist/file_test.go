package playlist

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kilikali/kilikali/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWritePLS(t *testing.T) {
	var buf bytes.Buffer
	tracks := []Track{
		NewTrack("/music/a.mp3"),
		{Location: "http://radio/x", Title: "Radio X", Kind: KindStream},
	}
	require.NoError(t, WritePLS(&buf, tracks))

	want := "[playlist]\n" +
		"File1=/music/a.mp3\n" +
		"File2=http://radio/x\n" +
		"Title2=Radio X\n" +
		"NumberOfEntries=2\n" +
		"Version=2\n"
	assert.Equal(t, want, buf.String())
}

func TestReadPLS(t *testing.T) {
	input := `; comment
[other]
File1=/ignored.mp3

[Playlist]
file1=one.mp3
Title1 = First
File2=/abs/two.flac
File4=/skipped.mp3
NumberOfEntries=3
`
	tracks, err := ReadPLS(strings.NewReader(input), "/base")
	require.NoError(t, err)
	require.Len(t, tracks, 2, "reading stops at the first missing number")
	assert.Equal(t, Track{Location: "/base/one.mp3", Title: "First", Kind: KindFile}, tracks[0])
	assert.Equal(t, "/abs/two.flac", tracks[1].Location)
}

func TestReadM3U(t *testing.T) {
	input := "#EXTM3U\n" +
		"#EXTINF:123,Band - Song\n" +
		"songs/song.mp3\n" +
		"\n" +
		"# plain comment\n" +
		"file:///abs/b.ogg\n" +
		"http://stream/live\n"

	tracks, err := ReadM3U(strings.NewReader(input), "/lists")
	require.NoError(t, err)
	require.Len(t, tracks, 3)
	assert.Equal(t, "/lists/songs/song.mp3", tracks[0].Location)
	assert.Equal(t, "Band - Song", tracks[0].Title)
	assert.Equal(t, "/abs/b.ogg", tracks[1].Location)
	assert.Equal(t, "", tracks[1].Title)
	assert.Equal(t, KindStream, tracks[2].Kind)
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	tracks := []Track{
		NewTrack("/music/a.mp3"),
		{Location: "/music/b.flac", Title: "B side"},
	}

	for _, name := range []string{"list.pls", "list.m3u", "nested/list.PLS"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, Save(path, tracks))

			got, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, tracks, got)
		})
	}
}

func TestSave_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.pls")
	assert.ErrorIs(t, Save(path, nil), domain.ErrEmptyPlaylist)
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

package playlist

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/kilikali/kilikali/internal/domain"
)

// WritePLS writes tracks in PLS format
func WritePLS(w io.Writer, tracks []Track) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "[playlist]")
	for i, t := range tracks {
		n := i + 1
		fmt.Fprintf(bw, "File%d=%s\n", n, t.Location)
		if t.Title != "" {
			fmt.Fprintf(bw, "Title%d=%s\n", n, t.Title)
		}
	}
	fmt.Fprintf(bw, "NumberOfEntries=%d\n", len(tracks))
	fmt.Fprintln(bw, "Version=2")
	return bw.Flush()
}

// WriteM3U writes tracks in extended M3U format
func WriteM3U(w io.Writer, tracks []Track) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "#EXTM3U")
	for _, t := range tracks {
		if t.Title != "" {
			fmt.Fprintf(bw, "#EXTINF:-1,%s\n", t.Title)
		}
		fmt.Fprintln(bw, t.Location)
	}
	return bw.Flush()
}

// Save writes tracks to path. The format follows the extension: .m3u and
// .m3u8 write M3U, anything else PLS. An empty playlist is not written.
func Save(path string, tracks []Track) error {
	if len(tracks) == 0 {
		return domain.ErrEmptyPlaylist
	}

	var buf bytes.Buffer
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".m3u", ".m3u8":
		err = WriteM3U(&buf, tracks)
	default:
		err = WritePLS(&buf, tracks)
	}
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create playlist directory: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write playlist %s: %w", path, err)
	}
	return nil
}

// Load reads a PLS or M3U file. Relative entries resolve against the
// playlist's own directory.
func Load(path string) ([]Track, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	base := filepath.Dir(path)
	if strings.EqualFold(filepath.Ext(path), ".pls") {
		return ReadPLS(f, base)
	}
	return ReadM3U(f, base)
}

// ReadPLS parses the [playlist] section. Entries are read as File1, File2
// and so on until the first missing number.
func ReadPLS(r io.Reader, base string) ([]Track, error) {
	values := make(map[string]string)
	inSection := false

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == ';' || line[0] == '#' {
			continue
		}
		if line[0] == '[' {
			inSection = strings.EqualFold(strings.Trim(line, "[]"), "playlist")
			continue
		}
		if !inSection {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		values[strings.ToLower(strings.TrimSpace(key))] = strings.TrimSpace(value)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	var tracks []Track
	for n := 1; ; n++ {
		loc, ok := values["file"+strconv.Itoa(n)]
		if !ok {
			break
		}
		t := NewTrack(resolve(base, loc))
		t.Title = values["title"+strconv.Itoa(n)]
		tracks = append(tracks, t)
	}
	return tracks, nil
}

// ReadM3U parses plain and extended M3U. An #EXTINF title applies to the
// entry that follows it.
func ReadM3U(r io.Reader, base string) ([]Track, error) {
	var tracks []Track
	title := ""

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		switch {
		case line == "":
			continue
		case strings.HasPrefix(line, "#EXTINF:"):
			if _, t, ok := strings.Cut(line, ","); ok {
				title = strings.TrimSpace(t)
			}
			continue
		case line[0] == '#':
			continue
		}
		t := NewTrack(resolve(base, line))
		t.Title = title
		title = ""
		tracks = append(tracks, t)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return tracks, nil
}

func resolve(base, loc string) string {
	if IsURL(loc) {
		if path, ok := strings.CutPrefix(loc, "file://"); ok {
			return path
		}
		return loc
	}
	if filepath.IsAbs(loc) || base == "" {
		return filepath.Clean(loc)
	}
	return filepath.Join(base, loc)
}

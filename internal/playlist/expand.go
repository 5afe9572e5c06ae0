package playlist

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/kilikali/kilikali/internal/domain"
)

// Expander turns add arguments into tracks
type Expander struct {
	logger *slog.Logger
}

// NewExpander creates an expander. A nil logger uses slog.Default().
func NewExpander(logger *slog.Logger) *Expander {
	if logger == nil {
		logger = slog.Default()
	}
	return &Expander{logger: logger}
}

// Expand resolves each argument in order: URLs become streams, glob
// patterns are matched, directories are walked recursively for audio files
// and playlist files are loaded. Arguments that fail are reported together
// in the returned error while the rest are still expanded.
func (x *Expander) Expand(args []string) ([]Track, error) {
	var tracks []Track
	var errs []error
	for _, arg := range args {
		got, err := x.expandOne(arg)
		if err != nil {
			x.logger.Debug("expand failed", "arg", arg, "error", err)
			errs = append(errs, err)
		}
		tracks = append(tracks, got...)
	}
	return tracks, errors.Join(errs...)
}

func (x *Expander) expandOne(arg string) ([]Track, error) {
	if IsURL(arg) {
		return []Track{NewTrack(arg)}, nil
	}

	abs, err := filepath.Abs(ExpandHome(arg))
	if err != nil {
		return nil, err
	}

	if hasMeta(arg) {
		matches, err := doublestar.FilepathGlob(abs, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", arg, err)
		}
		var tracks []Track
		for _, m := range matches {
			if IsAudio(m) {
				tracks = append(tracks, NewTrack(m))
			}
		}
		if len(tracks) == 0 {
			return nil, fmt.Errorf("%s: %w", arg, domain.ErrNoMatch)
		}
		return tracks, nil
	}

	fi, err := os.Stat(abs)
	if err != nil {
		return nil, err
	}
	switch {
	case fi.IsDir():
		return x.walk(abs)
	case IsPlaylistFile(abs):
		return Load(abs)
	case IsAudio(abs):
		return []Track{NewTrack(abs)}, nil
	}
	return nil, fmt.Errorf("%s: %w", arg, domain.ErrUnsupportedFile)
}

// walk collects the audio files below dir in lexical order
func (x *Expander) walk(dir string) ([]Track, error) {
	var tracks []Track
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			x.logger.Debug("skipping unreadable entry", "path", path, "error", err)
			if d != nil && d.IsDir() && path != dir {
				return fs.SkipDir
			}
			return nil
		}
		if !d.IsDir() && IsAudio(path) {
			tracks = append(tracks, NewTrack(path))
		}
		return nil
	})
	return tracks, err
}

// ExpandHome replaces a leading ~ with the home directory
func ExpandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

func hasMeta(s string) bool {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '*', '?', '[', '{':
			return true
		}
	}
	return false
}

package app

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/kilikali/kilikali/internal/browser"
	"github.com/kilikali/kilikali/internal/commands"
	"github.com/kilikali/kilikali/internal/config"
	"github.com/kilikali/kilikali/internal/domain"
	"github.com/kilikali/kilikali/internal/playlist"
	"github.com/kilikali/kilikali/internal/types"
	"github.com/kilikali/kilikali/internal/ui/statusbar"
)

// Screen is the page shown above the command line
type Screen int

const (
	ScreenPlaylist Screen = iota
	ScreenBrowser
	ScreenHelp
)

// String returns the status bar label of the screen
func (s Screen) String() string {
	switch s {
	case ScreenPlaylist:
		return statusbar.LabelPlaylist
	case ScreenBrowser:
		return statusbar.LabelBrowser
	case ScreenHelp:
		return statusbar.LabelHelp
	default:
		return "UNKNOWN"
	}
}

// player is the state the built-in commands act on. Command callbacks run
// synchronously inside Update, so the model shares it through a pointer.
type player struct {
	config       *config.Config
	playlist     *playlist.Playlist
	browser      *browser.Browser
	expander     *playlist.Expander
	watcher      *browser.Watcher
	playlistPath string

	screen   Screen
	quitting bool
	toasts   []types.Toast
	logger   *slog.Logger
}

var _ commands.Host = (*player)(nil)

func (p *player) notify(level types.ToastLevel, format string, args ...any) {
	p.toasts = append(p.toasts, types.NewToast(level, fmt.Sprintf(format, args...), types.DefaultToastDuration))
}

// Quit ends the program, saving the playlist first when configured to
func (p *player) Quit() error {
	if p.config.PlaylistSaveAtExit && p.playlist.Len() > 0 {
		if err := playlist.Save(p.playlistPath, p.playlist.Tracks()); err != nil {
			p.logger.Error("failed to save playlist at exit", "path", p.playlistPath, "error", err)
		}
	}
	p.quitting = true
	return nil
}

// Add appends files, directories, playlists and URLs. Arguments that fail
// are reported after the others were added.
func (p *player) Add(paths []string) error {
	tracks, err := p.expander.Expand(paths)
	if len(tracks) > 0 {
		p.playlist.Append(tracks...)
		p.notify(types.ToastSuccess, "Added %d %s", len(tracks), plural(len(tracks), "track"))
	}
	return err
}

// Remove drops the tracks at the 1-based positions covered by ranges
func (p *player) Remove(ranges []commands.Range) error {
	n := p.playlist.RemoveFunc(func(i int) bool {
		for _, r := range ranges {
			if r.Contains(i + 1) {
				return true
			}
		}
		return false
	})
	if n == 0 {
		return fmt.Errorf("%w: no tracks in range", domain.ErrInvalidRange)
	}
	p.notify(types.ToastInfo, "Removed %d %s", n, plural(n, "track"))
	return nil
}

// Write saves the playlist to path, or to the default playlist file
func (p *player) Write(path string) error {
	if path == "" {
		path = p.playlistPath
	}
	path = playlist.ExpandHome(path)
	if err := playlist.Save(path, p.playlist.Tracks()); err != nil {
		return err
	}
	p.notify(types.ToastSuccess, "Wrote %d %s to %s", p.playlist.Len(), plural(p.playlist.Len(), "track"), path)
	return nil
}

// Search jumps to the first match after the cursor
func (p *player) Search(pattern string) error {
	if err := p.playlist.SetPattern(pattern); err != nil {
		return fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}
	i, ok := p.playlist.Find(p.playlist.Cursor()+1, false)
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrNoMatch, pattern)
	}
	p.playlist.SetCursor(i)
	return nil
}

// ClearSearch drops the highlight of the current screen
func (p *player) ClearSearch() error {
	if p.screen == ScreenBrowser {
		p.browser.ClearSearch()
		return nil
	}
	p.playlist.ClearPattern()
	return nil
}

// OpenFileBrowser switches to the browser, listing the music directory the
// first time
func (p *player) OpenFileBrowser() error {
	if p.browser.Dir() == "" {
		dir := p.config.MusicDirectory()
		if err := p.openDir(dir); err != nil {
			p.logger.Warn("music directory unavailable", "dir", dir, "error", err)
			wd, wdErr := os.Getwd()
			if wdErr != nil {
				return errors.Join(err, wdErr)
			}
			if err := p.openDir(wd); err != nil {
				return err
			}
		}
	}
	p.screen = ScreenBrowser
	return nil
}

// ChangeDirectory lists dir in the browser, or changes the working
// directory elsewhere. An empty dir means the music directory.
func (p *player) ChangeDirectory(dir string) error {
	if dir == "" {
		dir = p.config.MusicDirectory()
	}
	if p.screen == ScreenBrowser {
		if err := p.openDir(dir); err != nil {
			return err
		}
		return p.WorkingDirectory()
	}
	if err := os.Chdir(playlist.ExpandHome(dir)); err != nil {
		return fmt.Errorf("cannot change directory: %w", err)
	}
	return p.WorkingDirectory()
}

// WorkingDirectory shows the browser directory or the working directory
func (p *player) WorkingDirectory() error {
	if p.screen == ScreenBrowser {
		p.notify(types.ToastInfo, "%s", p.browser.Dir())
		return nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	p.notify(types.ToastInfo, "%s", wd)
	return nil
}

// ShowHelp switches to the help screen
func (p *player) ShowHelp() error {
	p.screen = ScreenHelp
	return nil
}

// openDir lists dir and moves the directory watch along with it
func (p *player) openDir(dir string) error {
	if err := p.browser.Open(dir); err != nil {
		return err
	}
	if p.watcher != nil {
		if err := p.watcher.Watch(p.browser.Dir()); err != nil {
			p.logger.Warn("directory changes will not be noticed", "dir", p.browser.Dir(), "error", err)
		}
	}
	return nil
}

// loadDefault restores the default playlist file. A missing file is not
// an error.
func (p *player) loadDefault() error {
	tracks, err := playlist.Load(p.playlistPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	p.playlist.Append(tracks...)
	p.logger.Info("playlist loaded", "path", p.playlistPath, "tracks", len(tracks))
	return nil
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

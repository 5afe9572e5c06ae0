package app

import (
	"github.com/kilikali/kilikali/internal/browser"
	"github.com/kilikali/kilikali/internal/config"
	"github.com/kilikali/kilikali/internal/input"
	"github.com/kilikali/kilikali/internal/keyseq"
	"github.com/kilikali/kilikali/internal/types"
)

// bindingEvent feeds one event to the matcher and runs the binding it
// completes on the current screen
func (m *Model) bindingEvent(ev input.Event) {
	res := m.matcher.Add(ev)
	if !res.Matched() {
		return
	}
	m.logger.Debug("binding", "name", res.Binding, "repeat", res.Repeat, "screen", m.player.screen.String())

	switch m.player.screen {
	case ScreenPlaylist:
		m.playlistBinding(res)
	case ScreenBrowser:
		m.browserBinding(res)
	case ScreenHelp:
		m.helpBinding(res)
	}
}

func (m *Model) playlistBinding(res keyseq.Result) {
	pl := m.player.playlist
	switch res.Binding {
	case config.BindingCommandMode:
		m.openPrompt(types.ModeCommand)
	case config.BindingSearchMode:
		m.openPrompt(types.ModeSearch)
	case config.BindingSearchNext, config.BindingSearchPrevious:
		if pl.Pattern() == "" {
			return
		}
		backward := res.Binding == config.BindingSearchPrevious
		for range capRepeat(res.Repeat, pl.Len()) {
			if _, ok := pl.Next(backward); !ok {
				m.player.notify(types.ToastWarning, "Pattern not found: %s", pl.Pattern())
				return
			}
		}
	case config.BindingRemove:
		from := pl.Cursor()
		pl.RemoveFunc(func(i int) bool {
			return i >= from && i < from+res.Repeat
		})
	case config.BindingFileBrowser:
		if err := m.player.OpenFileBrowser(); err != nil {
			m.player.notify(types.ToastError, "Error: %v", err)
		}
	case config.BindingHelp:
		m.showHelp()
	case config.BindingQuit:
		if err := m.player.Quit(); err != nil {
			m.player.notify(types.ToastError, "Error: %v", err)
		}
	default:
		m.moveBinding(res)
	}
}

func (m *Model) browserBinding(res keyseq.Result) {
	b := m.player.browser
	switch res.Binding {
	case config.BindingAbort, config.BindingQuit:
		m.player.screen = ScreenPlaylist
	case config.BindingCommandMode:
		m.openPrompt(types.ModeFileBrowser)
	case config.BindingSearchMode:
		m.openPrompt(types.ModeFileBrowserSearch)
	case config.BindingSearchNext, config.BindingSearchPrevious:
		for range capRepeat(res.Repeat, b.Len()) {
			b.Next(res.Binding == config.BindingSearchPrevious)
		}
	case config.BindingBrowserAdd:
		for range capRepeat(res.Repeat, b.Len()) {
			m.addSelected()
		}
	case config.BindingBrowserEnter:
		if _, err := b.Enter(); err != nil {
			m.player.notify(types.ToastError, "Error: %v", err)
			return
		}
		m.watch()
	case config.BindingBrowserParent:
		for range res.Repeat {
			dir := b.Dir()
			if err := b.Parent(); err != nil {
				m.player.notify(types.ToastError, "Error: %v", err)
				return
			}
			if b.Dir() == dir {
				break
			}
		}
		m.watch()
	case config.BindingBrowserRefresh:
		if err := b.Refresh(); err != nil {
			m.player.notify(types.ToastError, "Error: %v", err)
		}
	case config.BindingMoveBottom:
		b.SetCursor(b.Len() - 1)
	case config.BindingHelp:
		m.showHelp()
	default:
		m.moveBinding(res)
	}
}

// capRepeat bounds a typed count by the number of rows it can act on
func capRepeat(repeat, n int) int {
	return max(0, min(repeat, n))
}

func (m *Model) showHelp() {
	m.help.Top()
	if err := m.player.ShowHelp(); err != nil {
		m.player.notify(types.ToastError, "Error: %v", err)
	}
}

// addSelected appends the selected entry to the playlist and moves down
func (m *Model) addSelected() {
	b := m.player.browser
	e, ok := b.Selected()
	if !ok || e.Name == browser.ParentName {
		return
	}
	path, _ := b.SelectedPath()
	if err := m.player.Add([]string{path}); err != nil {
		m.player.notify(types.ToastError, "Error: %v", err)
	}
	b.Move(1)
}

// watch moves the directory watch to the listed directory
func (m *Model) watch() {
	if w := m.player.watcher; w != nil {
		if err := w.Watch(m.player.browser.Dir()); err != nil {
			m.logger.Warn("directory changes will not be noticed", "dir", m.player.browser.Dir(), "error", err)
		}
	}
}

func (m *Model) helpBinding(res keyseq.Result) {
	height := m.listHeight()
	switch res.Binding {
	case config.BindingAbort, config.BindingQuit, config.BindingHelp:
		m.player.screen = ScreenPlaylist
	case config.BindingCommandMode:
		m.openPrompt(types.ModeCommand)
	case config.BindingMoveUp:
		m.help.ScrollBy(-res.Repeat, height)
	case config.BindingMoveDown:
		m.help.ScrollBy(res.Repeat, height)
	case config.BindingHalfPageUp:
		m.help.ScrollBy(-res.Repeat*max(1, height/2), height)
	case config.BindingHalfPageDown:
		m.help.ScrollBy(res.Repeat*max(1, height/2), height)
	case config.BindingPageUp:
		m.help.ScrollBy(-res.Repeat*height, height)
	case config.BindingPageDown:
		m.help.ScrollBy(res.Repeat*height, height)
	case config.BindingMoveTop:
		m.help.Top()
	case config.BindingMoveBottom:
		m.help.Bottom(height)
	}
}

// moveBinding applies the cursor motions shared by the playlist and the
// browser. A typed count before gg or G jumps to that line.
func (m *Model) moveBinding(res keyseq.Result) {
	height := m.listHeight()
	switch res.Binding {
	case config.BindingMoveUp:
		m.move(-res.Repeat)
	case config.BindingMoveDown:
		m.move(res.Repeat)
	case config.BindingHalfPageUp:
		m.move(-res.Repeat * max(1, height/2))
	case config.BindingHalfPageDown:
		m.move(res.Repeat * max(1, height/2))
	case config.BindingPageUp:
		m.move(-res.Repeat * height)
	case config.BindingPageDown:
		m.move(res.Repeat * height)
	case config.BindingMoveTop:
		if res.Explicit {
			m.setCursor(res.Repeat - 1)
		} else {
			m.setCursor(0)
		}
	case config.BindingMoveBottom:
		if res.Explicit {
			m.setCursor(res.Repeat - 1)
		} else {
			m.setCursor(m.listLen() - 1)
		}
	case config.BindingCenter:
		m.center()
	}
}

func (m *Model) move(delta int) {
	switch m.player.screen {
	case ScreenPlaylist:
		m.player.playlist.Move(delta)
	case ScreenBrowser:
		m.player.browser.Move(delta)
	case ScreenHelp:
		m.help.ScrollBy(delta, m.listHeight())
	}
}

func (m *Model) setCursor(i int) {
	switch m.player.screen {
	case ScreenPlaylist:
		m.player.playlist.SetCursor(i)
	case ScreenBrowser:
		m.player.browser.SetCursor(i)
	}
}

func (m *Model) listLen() int {
	if m.player.screen == ScreenBrowser {
		return m.player.browser.Len()
	}
	return m.player.playlist.Len()
}

// center scrolls so the cursor sits in the middle of the list
func (m *Model) center() {
	height := m.listHeight()
	switch m.player.screen {
	case ScreenPlaylist:
		m.playlistTop = clampTop(m.player.playlist.Cursor()-height/2, m.player.playlist.Len(), height)
	case ScreenBrowser:
		m.browserTop = clampTop(m.player.browser.Cursor()-height/2, m.player.browser.Len(), height)
	}
}

// follow keeps both cursors inside their visible windows
func (m *Model) follow() {
	height := m.listHeight()
	m.playlistTop = scrollTop(m.player.playlist.Cursor(), m.playlistTop, m.player.playlist.Len(), height)
	m.browserTop = scrollTop(m.player.browser.Cursor(), m.browserTop, m.player.browser.Len(), height)
}

// scrollTop returns the smallest change to top that keeps cursor visible in
// a window of height rows over n rows
func scrollTop(cursor, top, n, height int) int {
	if height < 1 {
		return 0
	}
	if cursor < top {
		top = cursor
	}
	if cursor >= top+height {
		top = cursor - height + 1
	}
	return clampTop(top, n, height)
}

func clampTop(top, n, height int) int {
	return max(0, min(top, n-height))
}

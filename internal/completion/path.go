package completion

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/kilikali/kilikali/internal/linebuf"
)

const sep = string(filepath.Separator)

// pathStart returns the codepoint offset where the path argument ending at
// cur begins. It never goes back past tokenEnd, the end of the command.
func (e *Engine) pathStart(tokenEnd, cur int) int {
	b := e.buf.Bytes()
	lo := linebuf.ByteOffset(b, tokenEnd)
	i := linebuf.ByteOffset(b, cur)
	for i > lo {
		p := linebuf.PrevBoundary(b, i)
		if b[p] == ' ' && !linebuf.IsEscapedSpace(b, p) {
			break
		}
		i = p
	}
	return linebuf.RuneOffset(b, i)
}

// listPath splits path into search directory and name prefix and lists the
// matching entries, sorted, followed by a placeholder holding the prefix.
// Listing failures leave only the placeholder.
func (e *Engine) listPath(path string, dirOnly bool) []Candidate {
	if path == "~" {
		e.searchDir, e.searchPrefix = "", "~"
		return []Candidate{{Kind: KindDirectory, Text: "~"}}
	}

	i := strings.LastIndex(path, sep)
	e.searchDir, e.searchPrefix = path[:i+1], path[i+1:]

	dir := e.searchDir
	if dir == "" {
		dir = "."
	}
	dir = e.expandHome(dir)

	entries, err := e.fs.ReadDir(dir)
	if err != nil {
		e.logger.Debug("path completion listing failed", "dir", dir, "error", err)
	}

	var out []Candidate
	for _, ent := range entries {
		if !strings.HasPrefix(ent.Name, e.searchPrefix) {
			continue
		}
		kind := KindFile
		if ent.Dir {
			kind = KindDirectory
		} else if dirOnly {
			continue
		}
		out = append(out, Candidate{Kind: kind, Text: ent.Name})
	}
	slices.SortFunc(out, func(a, b Candidate) int {
		return strings.Compare(a.Text, b.Text)
	})
	if len(out) > e.maxEntries {
		e.logger.Debug("path completion truncated", "dir", dir, "entries", len(out), "max", e.maxEntries)
		out = out[:e.maxEntries]
	}

	return append(out, placeholder(strings.TrimRight(e.searchPrefix, sep)))
}

// pathText is the escaped line text for a path candidate
func (e *Engine) pathText(c Candidate) string {
	text := e.searchDir + c.Text
	if c.Kind == KindDirectory {
		text += sep
	}
	return escapeSpaces(text)
}

// parentDir returns the directory one level above dir, where dir is a
// search directory as typed: empty or ending in a separator
func (e *Engine) parentDir(dir string) string {
	if dir == "" {
		return ".." + sep
	}
	if real, err := e.fs.RealPath(e.expandHome(dir)); err == nil && real == sep {
		return dir
	}

	trimmed := strings.TrimRight(dir, sep)
	if trimmed == "" {
		return dir
	}
	switch filepath.Base(trimmed) {
	case "..", ".", "~":
		return trimmed + sep + ".." + sep
	}
	if i := strings.LastIndex(trimmed, sep); i >= 0 {
		return trimmed[:i+1]
	}
	return ""
}

// expandHome replaces a leading ~ with the home directory
func (e *Engine) expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~"+sep) {
		return path
	}
	home, err := e.fs.HomeDir()
	if err != nil {
		e.logger.Debug("home directory unavailable", "error", err)
		return path
	}
	return home + path[1:]
}

func escapeSpaces(s string) string {
	return strings.ReplaceAll(s, " ", `\ `)
}

func unescapeSpaces(s string) string {
	return strings.ReplaceAll(s, `\ `, " ")
}

// Package playlist holds the in-memory play queue, expands command line
// arguments into tracks and reads and writes PLS and M3U playlist files.
package playlist

import (
	"path/filepath"
	"strings"
)

// Kind distinguishes local files from network streams
type Kind int

const (
	KindFile Kind = iota
	KindStream
)

// String returns the string representation of the kind
func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindStream:
		return "stream"
	default:
		return "unknown"
	}
}

// Track is one playlist entry
type Track struct {
	Location string // absolute file path or stream URL
	Title    string // optional display title
	Kind     Kind
}

// NewTrack classifies location as a file or a stream
func NewTrack(location string) Track {
	if IsURL(location) {
		return Track{Location: location, Kind: KindStream}
	}
	return Track{Location: location, Kind: KindFile}
}

// Name returns the display name: the title when set, otherwise the file
// name without its extension
func (t Track) Name() string {
	if t.Title != "" {
		return t.Title
	}
	if t.Kind == KindStream {
		return t.Location
	}
	base := filepath.Base(t.Location)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// IsURL reports whether s names a network stream
func IsURL(s string) bool {
	scheme, rest, ok := strings.Cut(s, "://")
	if !ok || scheme == "" || rest == "" {
		return false
	}
	for _, r := range scheme {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '+' || r == '-' || r == '.') {
			return false
		}
	}
	return true
}

// audioExtensions lists the file types the player accepts
var audioExtensions = map[string]bool{
	".aac":  true,
	".aiff": true,
	".ape":  true,
	".flac": true,
	".it":   true,
	".m4a":  true,
	".mod":  true,
	".mp2":  true,
	".mp3":  true,
	".mpc":  true,
	".oga":  true,
	".ogg":  true,
	".opus": true,
	".s3m":  true,
	".sid":  true,
	".wav":  true,
	".wma":  true,
	".wv":   true,
	".xm":   true,
}

// IsAudio reports whether path has a supported audio extension
func IsAudio(path string) bool {
	return audioExtensions[strings.ToLower(filepath.Ext(path))]
}

// IsPlaylistFile reports whether path is a PLS or M3U file
func IsPlaylistFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pls", ".m3u", ".m3u8":
		return true
	}
	return false
}

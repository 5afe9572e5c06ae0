// Package linebuf implements the editable command line: a bounded UTF-8
// buffer addressed by codepoint offsets, and per-mode history rings.
package linebuf

import "unicode/utf8"

// NextBoundary returns the byte index of the codepoint boundary following
// byte index i. Indexes at or past the end clamp to len(b).
func NextBoundary(b []byte, i int) int {
	if i < 0 {
		return 0
	}
	if i >= len(b) {
		return len(b)
	}
	_, size := utf8.DecodeRune(b[i:])
	return i + size
}

// PrevBoundary returns the byte index of the start of the codepoint that
// ends at byte index i. Indexes at or before the start clamp to 0.
func PrevBoundary(b []byte, i int) int {
	if i <= 0 {
		return 0
	}
	if i > len(b) {
		i = len(b)
	}
	_, size := utf8.DecodeLastRune(b[:i])
	return i - size
}

// ByteOffset converts a codepoint offset into a byte index by scanning from
// the start of b. Offsets past the end clamp to len(b).
func ByteOffset(b []byte, cp int) int {
	i := 0
	for n := 0; n < cp && i < len(b); n++ {
		i = NextBoundary(b, i)
	}
	return i
}

// RuneOffset converts a byte index into a codepoint offset
func RuneOffset(b []byte, i int) int {
	if i > len(b) {
		i = len(b)
	}
	if i <= 0 {
		return 0
	}
	return utf8.RuneCount(b[:i])
}

// RuneCount returns the number of codepoints in b
func RuneCount(b []byte) int {
	return utf8.RuneCount(b)
}

// Substring returns the codepoints in [start, end) as a string
func Substring(b []byte, start, end int) string {
	s := ByteOffset(b, start)
	e := ByteOffset(b, end)
	if e < s {
		return ""
	}
	return string(b[s:e])
}

// IsEscapedSpace reports whether the byte at i is a space preceded by a
// backslash
func IsEscapedSpace(b []byte, i int) bool {
	return i > 0 && i < len(b) && b[i] == ' ' && b[i-1] == '\\'
}

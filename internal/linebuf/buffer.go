package linebuf

import "unicode/utf8"

// Capacity is the default buffer size in bytes, terminator included
const Capacity = 5 * 1024

// Buffer is a single-line UTF-8 text buffer with a codepoint cursor.
//
// All positions taken and returned are codepoint offsets. Byte offsets are
// recomputed from the start of the text on every edit; the buffer is small
// enough that no offset cache is kept.
type Buffer struct {
	data     []byte
	cursor   int
	capacity int
}

// NewBuffer creates an empty buffer with the default capacity
func NewBuffer() *Buffer {
	return NewBufferSize(Capacity)
}

// NewBufferSize creates an empty buffer holding at most capacity-1 bytes of
// text
func NewBufferSize(capacity int) *Buffer {
	if capacity < 2 {
		capacity = 2
	}
	return &Buffer{
		data:     make([]byte, 0, capacity),
		capacity: capacity,
	}
}

// String returns the buffer text
func (b *Buffer) String() string {
	return string(b.data)
}

// Bytes returns the buffer text. The slice is only valid until the next edit.
func (b *Buffer) Bytes() []byte {
	return b.data
}

// Len returns the text length in bytes
func (b *Buffer) Len() int {
	return len(b.data)
}

// RuneLen returns the text length in codepoints
func (b *Buffer) RuneLen() int {
	return RuneCount(b.data)
}

// Cursor returns the cursor codepoint offset
func (b *Buffer) Cursor() int {
	return b.cursor
}

// Free returns the number of bytes that can still be inserted
func (b *Buffer) Free() int {
	return b.capacity - 1 - len(b.data)
}

// Insert inserts text at codepoint offset pos. The cursor moves with the
// text when it sits at or after pos. Invalid UTF-8, an out of range offset
// or text that does not fit leaves the buffer untouched and returns false.
func (b *Buffer) Insert(pos int, text string) bool {
	if text == "" || !utf8.ValidString(text) {
		return false
	}
	if pos < 0 || pos > b.RuneLen() {
		return false
	}
	if len(text) > b.Free() {
		return false
	}

	at := ByteOffset(b.data, pos)
	b.data = append(b.data, text...)
	copy(b.data[at+len(text):], b.data[at:len(b.data)-len(text)])
	copy(b.data[at:], text)

	if b.cursor >= pos {
		b.cursor += utf8.RuneCountInString(text)
	}
	return true
}

// InsertAtCursor inserts text at the cursor
func (b *Buffer) InsertAtCursor(text string) bool {
	return b.Insert(b.cursor, text)
}

// DeleteAt removes the codepoint that ends at offset pos, the way backspace
// does with pos at the cursor
func (b *Buffer) DeleteAt(pos int) bool {
	if pos < 1 || pos > b.RuneLen() {
		return false
	}
	return b.RemoveRange(pos-1, pos)
}

// RemoveRange removes the codepoints in [start, end). A cursor inside the
// removed span moves to start; a cursor after it shifts left.
func (b *Buffer) RemoveRange(start, end int) bool {
	n := b.RuneLen()
	if start < 0 || end > n || start >= end {
		return false
	}

	s := ByteOffset(b.data, start)
	e := ByteOffset(b.data, end)
	b.data = append(b.data[:s], b.data[e:]...)

	switch {
	case b.cursor >= end:
		b.cursor -= end - start
	case b.cursor > start:
		b.cursor = start
	}
	return true
}

// Truncate drops everything from codepoint offset pos onwards
func (b *Buffer) Truncate(pos int) {
	n := b.RuneLen()
	if pos < 0 {
		pos = 0
	}
	if pos >= n {
		return
	}
	b.data = b.data[:ByteOffset(b.data, pos)]
	if b.cursor > pos {
		b.cursor = pos
	}
}

// SetText replaces the whole text and puts the cursor at the end. Text that
// does not fit or is not valid UTF-8 is rejected.
func (b *Buffer) SetText(text string) bool {
	if len(text) > b.capacity-1 || !utf8.ValidString(text) {
		return false
	}
	b.data = append(b.data[:0], text...)
	b.cursor = b.RuneLen()
	return true
}

// Clear empties the buffer and resets the cursor
func (b *Buffer) Clear() {
	b.data = b.data[:0]
	b.cursor = 0
}

// SetCursor moves the cursor to an absolute offset. Out of range offsets are
// rejected.
func (b *Buffer) SetCursor(pos int) bool {
	if pos < 0 || pos > b.RuneLen() {
		return false
	}
	b.cursor = pos
	return true
}

// MoveCursor moves the cursor by delta codepoints, clamped to the text
func (b *Buffer) MoveCursor(delta int) {
	pos := b.cursor + delta
	if pos < 0 {
		pos = 0
	}
	if n := b.RuneLen(); pos > n {
		pos = n
	}
	b.cursor = pos
}

// Home moves the cursor to the start of the line
func (b *Buffer) Home() {
	b.cursor = 0
}

// End moves the cursor to the end of the line
func (b *Buffer) End() {
	b.cursor = b.RuneLen()
}

// PrevWord returns the offset of the start of the word before the cursor.
// Backslash-escaped spaces are part of a word.
func (b *Buffer) PrevWord() int {
	i := ByteOffset(b.data, b.cursor)
	for i > 0 {
		p := PrevBoundary(b.data, i)
		if b.data[p] != ' ' || IsEscapedSpace(b.data, p) {
			break
		}
		i = p
	}
	for i > 0 {
		p := PrevBoundary(b.data, i)
		if b.data[p] == ' ' && !IsEscapedSpace(b.data, p) {
			break
		}
		i = p
	}
	return RuneOffset(b.data, i)
}

// NextWord returns the offset of the first unescaped space after the cursor,
// or the end of the line
func (b *Buffer) NextWord() int {
	i := NextBoundary(b.data, ByteOffset(b.data, b.cursor))
	for i < len(b.data) {
		if b.data[i] == ' ' && !IsEscapedSpace(b.data, i) {
			break
		}
		i = NextBoundary(b.data, i)
	}
	return RuneOffset(b.data, i)
}

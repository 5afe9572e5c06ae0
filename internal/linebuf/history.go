package linebuf

import "github.com/kilikali/kilikali/internal/types"

// RingSize is the number of history slots per mode: 30 committed entries
// plus the staging slot for the line being edited
const RingSize = 31

// Ring is a fixed-capacity history. Slot 0 stages the in-progress line;
// slots 1..used-1 hold committed entries, most recent first.
type Ring struct {
	slots [RingSize]string
	used  int
}

// NewRing creates a ring with an empty staging slot
func NewRing() *Ring {
	return &Ring{used: 1}
}

// Slot returns the text at index i and whether that slot is populated
func (r *Ring) Slot(i int) (string, bool) {
	if i < 0 || i >= r.used {
		return "", false
	}
	return r.slots[i], true
}

// Len returns the number of committed entries
func (r *Ring) Len() int {
	return r.used - 1
}

// Entries returns the committed entries, most recent first
func (r *Ring) Entries() []string {
	out := make([]string, r.used-1)
	copy(out, r.slots[1:r.used])
	return out
}

// Push shifts every entry down one slot, dropping the oldest when full,
// stores line as the most recent entry and clears the staging slot
func (r *Ring) Push(line string) {
	for i := RingSize - 1; i >= 2; i-- {
		r.slots[i] = r.slots[i-1]
	}
	r.slots[1] = line
	r.slots[0] = ""
	if r.used < RingSize {
		r.used++
	}
}

func (r *Ring) stage(line string) {
	r.slots[0] = line
}

// History holds one ring per mode and the navigation index into the active
// ring. Index 0 is the staging slot.
type History struct {
	rings  map[types.Mode]*Ring
	mode   types.Mode
	active *Ring
	index  int
}

// NewHistory creates empty rings for every mode with ModeCommand active
func NewHistory() *History {
	h := &History{rings: make(map[types.Mode]*Ring, len(types.AllModes))}
	for _, m := range types.AllModes {
		h.rings[m] = NewRing()
	}
	h.SetMode(types.ModeCommand)
	return h
}

// SetMode selects the ring for mode and resets navigation
func (h *History) SetMode(mode types.Mode) {
	r, ok := h.rings[mode]
	if !ok {
		r = NewRing()
		h.rings[mode] = r
	}
	h.mode = mode
	h.active = r
	h.index = 0
}

// Mode returns the active mode
func (h *History) Mode() types.Mode {
	return h.mode
}

// Ring returns the ring for mode
func (h *History) Ring(mode types.Mode) *Ring {
	return h.rings[mode]
}

// Index returns the navigation index; 0 means the line being edited
func (h *History) Index() int {
	return h.index
}

// Commit pushes line into the active ring and resets navigation
func (h *History) Commit(line string) {
	h.active.Push(line)
	h.index = 0
}

// Reset returns navigation to the staging slot without touching entries
func (h *History) Reset() {
	h.index = 0
}

// Prev steps to the next older entry. Leaving the staging slot first saves
// current there so Next can come back to it. At the oldest entry it is a
// no-op and returns false.
func (h *History) Prev(current string) (string, bool) {
	if h.index+1 >= RingSize {
		return "", false
	}
	if _, ok := h.active.Slot(h.index + 1); !ok {
		return "", false
	}
	if h.index == 0 {
		h.active.stage(current)
	}
	h.index++
	line, _ := h.active.Slot(h.index)
	return line, true
}

// Next steps to the next newer entry, ending at the staged line. At the
// staging slot it is a no-op and returns false.
func (h *History) Next() (string, bool) {
	if h.index == 0 {
		return "", false
	}
	h.index--
	line, _ := h.active.Slot(h.index)
	return line, true
}

package model

import "sync"

// History is a fixed-capacity ring of recent snapshots. The refresh worker
// pushes, the presentation layer reads, so access is mutex-guarded.
type History struct {
	mu   sync.Mutex
	buf  []Snapshot
	head int // next write position
	size int
}

// NewHistory returns a ring holding at most capacity snapshots.
// Capacity below 1 is treated as 1.
func NewHistory(capacity int) *History {
	if capacity < 1 {
		capacity = 1
	}
	return &History{buf: make([]Snapshot, capacity)}
}

// Push appends a snapshot, evicting the oldest when full.
func (h *History) Push(s Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.buf[h.head] = s
	h.head = (h.head + 1) % len(h.buf)
	if h.size < len(h.buf) {
		h.size++
	}
}

// Values returns the retained snapshots oldest-first.
func (h *History) Values() []Snapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]Snapshot, 0, h.size)
	start := h.head - h.size
	if start < 0 {
		start += len(h.buf)
	}
	for i := 0; i < h.size; i++ {
		out = append(out, h.buf[(start+i)%len(h.buf)])
	}
	return out
}

// Last returns the most recent snapshot, if any.
func (h *History) Last() (Snapshot, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.size == 0 {
		return Snapshot{}, false
	}
	idx := h.head - 1
	if idx < 0 {
		idx += len(h.buf)
	}
	return h.buf[idx], true
}

// Len reports how many snapshots are retained.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.size
}

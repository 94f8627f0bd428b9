package viewport

import "sync"

// DefaultScrollThreshold is the vertical offset, in pixels, past which the
// header switches to its scrolled background.
const DefaultScrollThreshold = 50.0

// ScrollTracker derives the header's scrolled flag from the vertical scroll
// offset. Unlike a reveal latch the flag follows the offset both ways.
type ScrollTracker struct {
	mu        sync.Mutex
	threshold float64
	offset    float64
	scrolled  bool
}

// NewScrollTracker returns a tracker for threshold. A non-positive threshold
// selects DefaultScrollThreshold.
func NewScrollTracker(threshold float64) *ScrollTracker {
	if threshold <= 0 {
		threshold = DefaultScrollThreshold
	}
	return &ScrollTracker{threshold: threshold}
}

// Update records offset and recomputes the flag. It returns the new flag and
// whether it changed.
func (t *ScrollTracker) Update(offset float64) (scrolled, changed bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.offset = offset
	next := offset > t.threshold
	changed = next != t.scrolled
	t.scrolled = next
	return next, changed
}

// Scrolled reports the flag for the last observed offset.
func (t *ScrollTracker) Scrolled() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.scrolled
}

// Offset returns the last observed offset.
func (t *ScrollTracker) Offset() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.offset
}

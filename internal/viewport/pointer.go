package viewport

import "sync"

// GlowDivisor scales the pointer position down to the hero glow offset.
const GlowDivisor = 10

// Position is a pointer position in client pixels.
type Position struct {
	X float64 `json:"x" form:"x"`
	Y float64 `json:"y" form:"y"`
}

// PointerTracker follows the pointer for the hero's decorative glow.
type PointerTracker struct {
	mu  sync.Mutex
	pos Position
}

// Move records p and returns the resulting glow offset.
func (t *PointerTracker) Move(p Position) Position {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pos = p
	return glow(p)
}

// Position returns the last recorded pointer position.
func (t *PointerTracker) Position() Position {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pos
}

// Glow returns the glow element's offset for the last recorded position.
func (t *PointerTracker) Glow() Position {
	return glow(t.Position())
}

func glow(p Position) Position {
	return Position{X: p.X / GlowDivisor, Y: p.Y / GlowDivisor}
}

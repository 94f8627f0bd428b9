// Package reveal implements the one-shot entry animation every page section
// runs the first time it scrolls into view.
package reveal

import (
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/anuptiwari/portfolio/internal/lifecycle"
	"github.com/anuptiwari/portfolio/internal/viewport"
)

// DefaultThreshold is the fraction of a section that must intersect the
// viewport before the section reveals.
const DefaultThreshold = 0.1

// Latch is a boolean that can only go from false to true.
type Latch struct {
	v atomic.Bool
}

// Trip sets the latch and reports whether this call performed the
// transition.
func (l *Latch) Trip() bool {
	return l.v.CompareAndSwap(false, true)
}

// Revealed reports whether the latch has tripped.
func (l *Latch) Revealed() bool {
	return l.v.Load()
}

// Section is a mounted page section with its reveal latch.
type Section struct {
	ID        string
	Threshold float64

	latch    Latch
	onReveal func(id string)
	sub      lifecycle.Subscription
	once     sync.Once
}

// Mount registers the section's observer and ties it to scope. onReveal runs
// exactly once, the first time an intersecting entry arrives. A nil observer
// leaves the section permanently unrevealed.
func Mount(scope *lifecycle.Scope, obs viewport.Observer, id string, onReveal func(id string)) *Section {
	s := &Section{ID: id, Threshold: DefaultThreshold, onReveal: onReveal}
	if obs == nil {
		return s
	}
	s.sub = obs.Observe(id, s.Threshold, lifecycle.GuardFunc(scope, s.handle))
	scope.Acquire(lifecycle.SubscriptionFunc(s.Unmount))
	return s
}

func (s *Section) handle(e viewport.Entry) {
	if !e.Intersecting {
		return
	}
	if s.latch.Trip() && s.onReveal != nil {
		s.onReveal(s.ID)
	}
}

// Unmount disconnects the observer whether or not it fired.
func (s *Section) Unmount() {
	s.once.Do(func() {
		if s.sub != nil {
			s.sub.Unsubscribe()
		}
	})
}

// Revealed reports whether the section has entered the viewport.
func (s *Section) Revealed() bool {
	return s.latch.Revealed()
}

// Transition is a pair of class lists toggled by a reveal.
type Transition struct {
	Shown  string
	Hidden string
}

// Entry animations used across sections.
var (
	FadeUp    = Transition{Shown: "opacity-100 translate-y-0", Hidden: "opacity-0 translate-y-10"}
	FromLeft  = Transition{Shown: "opacity-100 translate-x-0", Hidden: "opacity-0 -translate-x-10"}
	FromRight = Transition{Shown: "opacity-100 translate-x-0", Hidden: "opacity-0 translate-x-10"}
)

// Classes returns the class list for the given reveal state.
func (t Transition) Classes(revealed bool) string {
	if revealed {
		return t.Shown
	}
	return t.Hidden
}

// BarWidth is the CSS width of a proficiency bar: 0% until the section
// reveals, then the level itself.
func BarWidth(level int, revealed bool) string {
	if !revealed {
		return "0%"
	}
	return strconv.Itoa(level) + "%"
}

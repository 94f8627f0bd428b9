// Package viewport models the host page's viewport services: element
// intersection, scroll position and pointer position.
package viewport

import (
	"sync"

	"github.com/anuptiwari/portfolio/internal/lifecycle"
)

// Entry is one intersection notification for an observed element.
type Entry struct {
	Target       string
	Ratio        float64
	Intersecting bool
}

func (e Entry) meets(threshold float64) bool {
	if !e.Intersecting || e.Ratio == 0 {
		return true
	}
	return e.Ratio >= threshold
}

// Observer registers intersection callbacks for elements.
type Observer interface {
	Observe(target string, threshold float64, fn func(Entry)) lifecycle.Subscription
}

type registration struct {
	threshold float64
	fn        func(Entry)
}

// Intersections is an Observer driven by reported entries, typically
// forwarded from the browser.
type Intersections struct {
	mu     sync.RWMutex
	nextID int
	regs   map[string]map[int]registration
}

// NewIntersections returns an observer with no registrations.
func NewIntersections() *Intersections {
	return &Intersections{regs: make(map[string]map[int]registration)}
}

// Observe implements Observer.
func (o *Intersections) Observe(target string, threshold float64, fn func(Entry)) lifecycle.Subscription {
	o.mu.Lock()
	id := o.nextID
	o.nextID++
	if o.regs[target] == nil {
		o.regs[target] = make(map[int]registration)
	}
	o.regs[target][id] = registration{threshold: threshold, fn: fn}
	o.mu.Unlock()

	return lifecycle.Once(lifecycle.SubscriptionFunc(func() {
		o.mu.Lock()
		defer o.mu.Unlock()
		delete(o.regs[target], id)
		if len(o.regs[target]) == 0 {
			delete(o.regs, target)
		}
	}))
}

// Report delivers e to the registrations on e.Target whose threshold it
// meets and returns how many callbacks were invoked. An intersecting entry
// without a ratio is taken as already filtered by the reporter.
func (o *Intersections) Report(e Entry) int {
	o.mu.RLock()
	regs := make([]registration, 0, len(o.regs[e.Target]))
	for _, r := range o.regs[e.Target] {
		if !e.meets(r.threshold) {
			continue
		}
		regs = append(regs, r)
	}
	o.mu.RUnlock()

	for _, r := range regs {
		r.fn(e)
	}
	return len(regs)
}

// Observed reports whether target has at least one registration.
func (o *Intersections) Observed(target string) bool {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return len(o.regs[target]) > 0
}

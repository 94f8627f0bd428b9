// Package rotator cycles the hero banner through a fixed list of roles.
package rotator

import (
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/anuptiwari/portfolio/internal/lifecycle"
)

// DefaultInterval is how long each role stays on screen.
const DefaultInterval = 3 * time.Second

// ErrNoRoles is returned when a rotator is built from an empty list.
var ErrNoRoles = errors.New("rotator: at least one role is required")

// Ticker delivers ticks until stopped. *time.Ticker satisfies it through
// NewTicker.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type timeTicker struct{ t *time.Ticker }

func (t timeTicker) C() <-chan time.Time { return t.t.C }
func (t timeTicker) Stop()               { t.t.Stop() }

// NewTicker returns a wall-clock Ticker firing every d.
func NewTicker(d time.Duration) Ticker {
	return timeTicker{t: time.NewTicker(d)}
}

// Rotator holds the index of the role currently on display.
type Rotator struct {
	mu    sync.Mutex
	roles []string
	index int
}

// New returns a rotator positioned on the first role.
func New(roles []string) (*Rotator, error) {
	if len(roles) == 0 {
		return nil, ErrNoRoles
	}
	cp := make([]string, len(roles))
	copy(cp, roles)
	return &Rotator{roles: cp}, nil
}

// Len returns the number of roles.
func (r *Rotator) Len() int { return len(r.roles) }

// Index returns the current position.
func (r *Rotator) Index() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.index
}

// Current returns the role on display.
func (r *Rotator) Current() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.roles[r.index]
}

// Advance moves to the next role, wrapping after the last, and returns the
// new index and role.
func (r *Rotator) Advance() (int, string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.index = (r.index + 1) % len(r.roles)
	return r.index, r.roles[r.index]
}

// Start advances the rotator on every tick until scope closes, calling
// onChange after each advance. The ticker is stopped on scope close.
func (r *Rotator) Start(scope *lifecycle.Scope, ticker Ticker, onChange func(index int, role string)) {
	stop := make(chan struct{})
	exited := make(chan struct{})
	tick := scope.Guard(func() {
		i, role := r.Advance()
		if onChange != nil {
			onChange(i, role)
		}
	})

	go func() {
		defer close(exited)
		for {
			select {
			case <-stop:
				return
			case <-ticker.C():
				tick()
			}
		}
	}()

	scope.Acquire(lifecycle.SubscriptionFunc(func() {
		ticker.Stop()
		close(stop)
		<-exited
	}))
}

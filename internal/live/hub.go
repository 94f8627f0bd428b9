package live

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/anuptiwari/portfolio/internal/contact"
	"github.com/anuptiwari/portfolio/internal/content"
	"github.com/anuptiwari/portfolio/internal/rotator"
)

const (
	DefaultAttachTimeout = 30 * time.Second
	DefaultMaxVisits     = 1000
	DefaultBuffer        = 64
)

// ErrTooManyVisits is returned by Mount when the hub is full. The page can
// still be served without live behaviour.
var ErrTooManyVisits = errors.New("too many live visits")

// Options configures every visit a hub mounts.
type Options struct {
	RotateInterval  time.Duration
	ScrollThreshold float64
	SubmitDelay     time.Duration
	// AttachTimeout bounds how long a visit may wait for its stream.
	AttachTimeout time.Duration
	MaxVisits     int
	// Buffer is the per-visit update queue length.
	Buffer int

	Sinks          []contact.Sink
	NewTicker      func(time.Duration) rotator.Ticker
	ContactOptions []contact.Option
}

func (o Options) withDefaults() Options {
	if o.RotateInterval <= 0 {
		o.RotateInterval = rotator.DefaultInterval
	}
	if o.SubmitDelay == 0 {
		o.SubmitDelay = contact.DefaultDelay
	}
	if o.AttachTimeout <= 0 {
		o.AttachTimeout = DefaultAttachTimeout
	}
	if o.MaxVisits <= 0 {
		o.MaxVisits = DefaultMaxVisits
	}
	if o.Buffer <= 0 {
		o.Buffer = DefaultBuffer
	}
	if o.NewTicker == nil {
		o.NewTicker = rotator.NewTicker
	}
	return o
}

// Hub tracks the mounted visits.
type Hub struct {
	opts Options
	now  func() time.Time

	mu     sync.Mutex
	visits map[string]*Visit
}

// NewHub returns an empty hub.
func NewHub(opts Options) *Hub {
	return &Hub{
		opts:   opts.withDefaults(),
		now:    time.Now,
		visits: make(map[string]*Visit),
	}
}

// Mount creates a visit for a page rendered from p.
func (h *Hub) Mount(p *content.Portfolio) (*Visit, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.visits) >= h.opts.MaxVisits {
		return nil, ErrTooManyVisits
	}
	v, err := mountVisit(uuid.NewString(), p, h.opts, h.now())
	if err != nil {
		return nil, err
	}
	h.visits[v.ID] = v
	return v, nil
}

// Get returns the mounted visit with id.
func (h *Hub) Get(id string) (*Visit, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	v, ok := h.visits[id]
	return v, ok
}

// Unmount removes and tears down the visit with id.
func (h *Hub) Unmount(id string) bool {
	h.mu.Lock()
	v, ok := h.visits[id]
	delete(h.visits, id)
	h.mu.Unlock()
	if ok {
		v.Unmount()
	}
	return ok
}

// Len returns the number of mounted visits.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.visits)
}

// Reap unmounts visits whose stream never attached within the attach
// timeout and returns how many were removed.
func (h *Hub) Reap() int {
	cutoff := h.now().Add(-h.opts.AttachTimeout)
	h.mu.Lock()
	var stale []*Visit
	for id, v := range h.visits {
		if !v.Attached() && v.CreatedAt.Before(cutoff) {
			stale = append(stale, v)
			delete(h.visits, id)
		}
	}
	h.mu.Unlock()

	for _, v := range stale {
		v.Unmount()
	}
	return len(stale)
}

// Run reaps stale visits until ctx is done, then unmounts everything.
func (h *Hub) Run(ctx context.Context) error {
	ticker := time.NewTicker(h.opts.AttachTimeout / 2)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			h.Shutdown()
			return nil
		case <-ticker.C:
			if n := h.Reap(); n > 0 {
				log.Printf("Reaped %d live visits that never attached", n)
			}
		}
	}
}

// Shutdown unmounts every visit.
func (h *Hub) Shutdown() {
	h.mu.Lock()
	visits := h.visits
	h.visits = make(map[string]*Visit)
	h.mu.Unlock()

	for _, v := range visits {
		v.Unmount()
	}
}

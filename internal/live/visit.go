package live

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"

	"github.com/anuptiwari/portfolio/internal/contact"
	"github.com/anuptiwari/portfolio/internal/content"
	"github.com/anuptiwari/portfolio/internal/lifecycle"
	"github.com/anuptiwari/portfolio/internal/reveal"
	"github.com/anuptiwari/portfolio/internal/rotator"
	"github.com/anuptiwari/portfolio/internal/viewport"
)

// Sections lists the page sections that reveal on first intersection, in
// page order.
var Sections = []string{"about", "experience", "education", "skills", "projects", "contact"}

// ErrUnmounted is returned for events posted to a visit that has ended.
var ErrUnmounted = errors.New("visit is unmounted")

// Visit is the mounted component tree of one page view.
type Visit struct {
	ID        string
	CreatedAt time.Time
	Content   *content.Portfolio

	scope *lifecycle.Scope
	ctx   context.Context

	intersections *viewport.Intersections
	scrolls       *lifecycle.Emitter[float64]
	pointers      *lifecycle.Emitter[viewport.Position]

	header   *viewport.ScrollTracker
	pointer  viewport.PointerTracker
	roles    *rotator.Rotator
	sections map[string]*reveal.Section
	contact  *contact.Submitter

	updates  chan Update
	attached atomic.Bool
	dropped  atomic.Int64
}

func mountVisit(id string, p *content.Portfolio, opts Options, now time.Time) (*Visit, error) {
	roles, err := rotator.New(p.Profile.Roles)
	if err != nil {
		return nil, errors.Wrap(err, "failed to mount hero")
	}

	ctx, cancel := context.WithCancel(context.Background())
	v := &Visit{
		ID:            id,
		CreatedAt:     now,
		Content:       p,
		scope:         lifecycle.NewScope(),
		ctx:           ctx,
		intersections: viewport.NewIntersections(),
		scrolls:       lifecycle.NewEmitter[float64](),
		pointers:      lifecycle.NewEmitter[viewport.Position](),
		header:        viewport.NewScrollTracker(opts.ScrollThreshold),
		roles:         roles,
		sections:      make(map[string]*reveal.Section, len(Sections)),
		updates:       make(chan Update, opts.Buffer),
	}
	v.scope.Acquire(lifecycle.SubscriptionFunc(cancel))

	// Header
	v.scope.Acquire(v.scrolls.Subscribe(lifecycle.GuardFunc(v.scope, func(offset float64) {
		if scrolled, changed := v.header.Update(offset); changed {
			v.emit(Update{Kind: KindHeader, Scrolled: scrolled})
		}
	})))

	// Hero
	v.scope.Acquire(v.pointers.Subscribe(lifecycle.GuardFunc(v.scope, func(p viewport.Position) {
		v.emit(Update{Kind: KindPointer, Glow: v.pointer.Move(p)})
	})))
	v.roles.Start(v.scope, opts.NewTicker(opts.RotateInterval), func(i int, role string) {
		v.emit(Update{Kind: KindRole, RoleIndex: i, Role: role})
	})

	for _, section := range Sections {
		v.sections[section] = reveal.Mount(v.scope, v.intersections, section, func(section string) {
			v.emit(Update{Kind: KindReveal, Section: section})
		})
	}

	// Contact
	contactOpts := []contact.Option{
		contact.WithDelay(opts.SubmitDelay),
		contact.WithSinks(opts.Sinks...),
		contact.OnChange(lifecycle.GuardFunc(v.scope, func(st contact.State) {
			v.emit(Update{Kind: KindContact, State: st})
		})),
	}
	v.contact = contact.NewSubmitter(append(contactOpts, opts.ContactOptions...)...)

	return v, nil
}

// emit queues u for the stream without blocking. Guarded callbacks call it
// while holding the scope's gate, so it must never wait on the reader.
func (v *Visit) emit(u Update) {
	select {
	case v.updates <- u:
	default:
		v.dropped.Add(1)
	}
}

// Updates is the stream of state changes. It is never closed; readers
// should also select on Done.
func (v *Visit) Updates() <-chan Update {
	return v.updates
}

// Done is closed when the visit unmounts.
func (v *Visit) Done() <-chan struct{} {
	return v.scope.Done()
}

// Mounted reports whether the visit is still live.
func (v *Visit) Mounted() bool {
	return !v.scope.Closed()
}

// Attach marks the visit's stream as connected. Only the first call
// succeeds.
func (v *Visit) Attach() bool {
	return v.attached.CompareAndSwap(false, true)
}

// Attached reports whether a stream has connected.
func (v *Visit) Attached() bool {
	return v.attached.Load()
}

// Dropped returns how many updates were discarded because the stream fell
// behind.
func (v *Visit) Dropped() int64 {
	return v.dropped.Load()
}

// Unmount tears down every listener, observer and timer the visit holds.
// Events arriving afterwards are ignored.
func (v *Visit) Unmount() {
	v.scope.Close()
}

// Intersect forwards a viewport intersection entry.
func (v *Visit) Intersect(e viewport.Entry) (int, error) {
	if !v.Mounted() {
		return 0, ErrUnmounted
	}
	return v.intersections.Report(e), nil
}

// Scroll forwards the window's scroll offset.
func (v *Visit) Scroll(offset float64) error {
	if !v.Mounted() {
		return ErrUnmounted
	}
	v.scrolls.Emit(offset)
	return nil
}

// Pointer forwards a pointer move.
func (v *Visit) Pointer(p viewport.Position) error {
	if !v.Mounted() {
		return ErrUnmounted
	}
	v.pointers.Emit(p)
	return nil
}

// Contact fills the contact form with f and submits it. Only unmounting the
// visit abandons the submission; ctx contributes its values (the trace span)
// but not its cancellation.
func (v *Visit) Contact(ctx context.Context, f contact.Form) (contact.Submission, error) {
	if !v.Mounted() {
		return contact.Submission{}, ErrUnmounted
	}
	if err := v.contact.Fill(f); err != nil {
		return contact.Submission{}, err
	}
	ctx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	defer cancel()
	stop := context.AfterFunc(v.ctx, cancel)
	defer stop()
	return v.contact.Submit(ctx)
}

// Revealed reports whether section has entered the viewport.
func (v *Visit) Revealed(section string) bool {
	s, ok := v.sections[section]
	return ok && s.Revealed()
}

// Role returns the hero rotator's current index and role.
func (v *Visit) Role() (int, string) {
	return v.roles.Index(), v.roles.Current()
}

// Scrolled reports the header's scrolled flag.
func (v *Visit) Scrolled() bool {
	return v.header.Scrolled()
}

// Glow returns the hero glow offset.
func (v *Visit) Glow() viewport.Position {
	return v.pointer.Glow()
}

// ContactState returns the submitter's phase.
func (v *Visit) ContactState() contact.State {
	return v.contact.State()
}

// Form returns the contact form's current fields.
func (v *Visit) Form() contact.Form {
	return v.contact.Form()
}

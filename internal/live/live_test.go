package live

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anuptiwari/portfolio/internal/contact"
	"github.com/anuptiwari/portfolio/internal/content"
	"github.com/anuptiwari/portfolio/internal/rotator"
	"github.com/anuptiwari/portfolio/internal/viewport"
)

type fakeTicker struct {
	c       chan time.Time
	stopped atomic.Bool
}

func (f *fakeTicker) C() <-chan time.Time { return f.c }
func (f *fakeTicker) Stop()               { f.stopped.Store(true) }

type fixture struct {
	hub    *Hub
	ticker *fakeTicker
	rec    *contact.Recorder
}

func newFixture(t *testing.T, extra ...contact.Option) *fixture {
	t.Helper()
	f := &fixture{ticker: &fakeTicker{c: make(chan time.Time)}, rec: &contact.Recorder{}}
	f.hub = NewHub(Options{
		Sinks:          []contact.Sink{f.rec},
		NewTicker:      func(time.Duration) rotator.Ticker { return f.ticker },
		ContactOptions: append([]contact.Option{contact.WithDelay(0)}, extra...),
	})
	t.Cleanup(f.hub.Shutdown)
	return f
}

func (f *fixture) mount(t *testing.T) *Visit {
	t.Helper()
	v, err := f.hub.Mount(content.Default())
	require.NoError(t, err)
	return v
}

func next(t *testing.T, v *Visit) Update {
	t.Helper()
	select {
	case u := <-v.Updates():
		return u
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for update")
		return Update{}
	}
}

func assertQuiet(t *testing.T, v *Visit) {
	t.Helper()
	select {
	case u := <-v.Updates():
		t.Fatalf("unexpected update %+v", u)
	case <-time.After(20 * time.Millisecond):
	}
}

func TestUpdate_Event(t *testing.T) {
	assert.Equal(t, "reveal-skills", Update{Kind: KindReveal, Section: "skills"}.Event())
	assert.Equal(t, "role", Update{Kind: KindRole}.Event())
	assert.Equal(t, "contact-state", Update{Kind: KindContact}.Event())
}

func TestVisit_InitialState(t *testing.T) {
	v := newFixture(t).mount(t)

	assert.True(t, v.Mounted())
	assert.False(t, v.Scrolled())
	for _, s := range Sections {
		assert.False(t, v.Revealed(s), s)
	}
	i, role := v.Role()
	assert.Equal(t, 0, i)
	assert.Equal(t, "Technical Trainer", role)
	assert.Equal(t, contact.Idle, v.ContactState())
	assert.True(t, v.Form().Empty())
}

func TestVisit_RevealsOnce(t *testing.T) {
	v := newFixture(t).mount(t)

	n, err := v.Intersect(viewport.Entry{Target: "skills", Intersecting: false})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.False(t, v.Revealed("skills"))
	assertQuiet(t, v)

	_, err = v.Intersect(viewport.Entry{Target: "skills", Ratio: 0.25, Intersecting: true})
	require.NoError(t, err)
	assert.Equal(t, Update{Kind: KindReveal, Section: "skills"}, next(t, v))
	assert.True(t, v.Revealed("skills"))

	// Later entries never fire the reveal again.
	_, err = v.Intersect(viewport.Entry{Target: "skills", Intersecting: false})
	require.NoError(t, err)
	_, err = v.Intersect(viewport.Entry{Target: "skills", Ratio: 1, Intersecting: true})
	require.NoError(t, err)
	assert.True(t, v.Revealed("skills"))
	assertQuiet(t, v)
}

func TestVisit_BelowThresholdDoesNotReveal(t *testing.T) {
	v := newFixture(t).mount(t)
	n, err := v.Intersect(viewport.Entry{Target: "about", Ratio: 0.05, Intersecting: true})
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.False(t, v.Revealed("about"))
}

func TestVisit_HeaderScroll(t *testing.T) {
	v := newFixture(t).mount(t)

	require.NoError(t, v.Scroll(10))
	assertQuiet(t, v)

	require.NoError(t, v.Scroll(60))
	assert.Equal(t, Update{Kind: KindHeader, Scrolled: true}, next(t, v))
	require.NoError(t, v.Scroll(50))
	assert.Equal(t, Update{Kind: KindHeader, Scrolled: false}, next(t, v))
	assert.False(t, v.Scrolled())
}

func TestVisit_PointerGlow(t *testing.T) {
	v := newFixture(t).mount(t)
	require.NoError(t, v.Pointer(viewport.Position{X: 100, Y: 250}))
	assert.Equal(t, Update{Kind: KindPointer, Glow: viewport.Position{X: 10, Y: 25}}, next(t, v))
	assert.Equal(t, viewport.Position{X: 10, Y: 25}, v.Glow())
}

func TestVisit_RoleRotates(t *testing.T) {
	f := newFixture(t)
	v := f.mount(t)

	roles := content.Default().Profile.Roles
	for k := 1; k <= 5; k++ {
		f.ticker.c <- time.Now()
		u := next(t, v)
		assert.Equal(t, KindRole, u.Kind)
		assert.Equal(t, k%len(roles), u.RoleIndex)
		assert.Equal(t, roles[k%len(roles)], u.Role)
	}
}

func TestVisit_ContactSubmit(t *testing.T) {
	f := newFixture(t)
	v := f.mount(t)
	form := contact.Form{Name: "Jane", Email: "jane@x.com", Subject: "Hi", Message: "Hello"}

	sub, err := v.Contact(context.Background(), form)
	require.NoError(t, err)
	assert.Equal(t, form, sub.Form)

	assert.Equal(t, Update{Kind: KindContact, State: contact.Submitting}, next(t, v))
	assert.Equal(t, Update{Kind: KindContact, State: contact.Idle}, next(t, v))
	assert.True(t, v.Form().Empty())
	require.Len(t, f.rec.Submissions(), 1)
	assert.Equal(t, form, f.rec.Submissions()[0].Form)
}

func TestVisit_UnmountCancelsSubmission(t *testing.T) {
	never := func(time.Duration) <-chan time.Time { return nil }
	f := newFixture(t, contact.WithDelay(time.Second), contact.WithAfter(never))
	v := f.mount(t)

	done := make(chan error, 1)
	go func() {
		_, err := v.Contact(context.Background(), contact.Form{Name: "Jane"})
		done <- err
	}()
	require.Eventually(t, func() bool { return v.ContactState() == contact.Submitting }, time.Second, time.Millisecond)

	v.Unmount()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("submission not cancelled by unmount")
	}
	assert.Empty(t, f.rec.Submissions())
}

func TestVisit_ContactOutlivesCaller(t *testing.T) {
	fire := make(chan time.Time)
	f := newFixture(t, contact.WithDelay(time.Second), contact.WithAfter(func(time.Duration) <-chan time.Time { return fire }))
	v := f.mount(t)
	form := contact.Form{Name: "Jane", Email: "jane@x.com", Subject: "Hi", Message: "Hello"}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := v.Contact(ctx, form)
		done <- err
	}()
	require.Eventually(t, func() bool { return v.ContactState() == contact.Submitting }, time.Second, time.Millisecond)

	// The request goes away but the page, and its stream, stay open.
	cancel()
	select {
	case err := <-done:
		t.Fatalf("submission abandoned with the request: %v", err)
	case <-time.After(20 * time.Millisecond):
	}

	fire <- time.Now()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("submission did not complete")
	}

	assert.True(t, v.Mounted())
	assert.Equal(t, contact.Idle, v.ContactState())
	assert.True(t, v.Form().Empty())
	require.Len(t, f.rec.Submissions(), 1)
	assert.Equal(t, form, f.rec.Submissions()[0].Form)

	// The form accepts the next message.
	go func() {
		_, err := v.Contact(context.Background(), form)
		done <- err
	}()
	require.Eventually(t, func() bool { return v.ContactState() == contact.Submitting }, time.Second, time.Millisecond)
	fire <- time.Now()
	require.NoError(t, <-done)
	assert.Len(t, f.rec.Submissions(), 2)
}

func TestVisit_UnmountDetachesEverything(t *testing.T) {
	f := newFixture(t)
	v := f.mount(t)
	require.True(t, v.intersections.Observed("about"))
	assert.Equal(t, 1, v.scrolls.Len())
	assert.Equal(t, 1, v.pointers.Len())

	v.Unmount()
	v.Unmount()

	select {
	case <-v.Done():
	default:
		t.Fatal("Done not closed")
	}
	assert.False(t, v.Mounted())
	assert.True(t, f.ticker.stopped.Load())
	for _, s := range Sections {
		assert.False(t, v.intersections.Observed(s), s)
	}
	assert.Equal(t, 0, v.scrolls.Len())
	assert.Equal(t, 0, v.pointers.Len())

	assert.ErrorIs(t, v.Scroll(100), ErrUnmounted)
	assert.ErrorIs(t, v.Pointer(viewport.Position{}), ErrUnmounted)
	_, err := v.Intersect(viewport.Entry{Target: "about", Intersecting: true})
	assert.ErrorIs(t, err, ErrUnmounted)
	_, err = v.Contact(context.Background(), contact.Form{})
	assert.ErrorIs(t, err, ErrUnmounted)

	// The rotator goroutine has exited, so nobody receives this tick.
	select {
	case f.ticker.c <- time.Now():
		t.Fatal("rotator still running after unmount")
	case <-time.After(20 * time.Millisecond):
	}
	assertQuiet(t, v)
	assert.False(t, v.Scrolled())
	assert.False(t, v.Revealed("about"))
}

func TestVisit_FullQueueDropsInsteadOfBlocking(t *testing.T) {
	hub := NewHub(Options{Buffer: 1, NewTicker: func(time.Duration) rotator.Ticker {
		return &fakeTicker{c: make(chan time.Time)}
	}})
	defer hub.Shutdown()
	v, err := hub.Mount(content.Default())
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		require.NoError(t, v.Pointer(viewport.Position{X: float64(i)}))
	}
	assert.EqualValues(t, 2, v.Dropped())
}

func TestHub_MountGetUnmount(t *testing.T) {
	f := newFixture(t)
	v := f.mount(t)

	got, ok := f.hub.Get(v.ID)
	require.True(t, ok)
	assert.Same(t, v, got)
	assert.Equal(t, 1, f.hub.Len())

	assert.True(t, f.hub.Unmount(v.ID))
	assert.False(t, f.hub.Unmount(v.ID))
	assert.False(t, v.Mounted())
	_, ok = f.hub.Get(v.ID)
	assert.False(t, ok)
}

func TestHub_RejectsInvalidContent(t *testing.T) {
	hub := NewHub(Options{})
	p := content.Default()
	p.Profile.Roles = nil
	_, err := hub.Mount(p)
	assert.ErrorIs(t, err, rotator.ErrNoRoles)
	assert.Equal(t, 0, hub.Len())
}

func TestHub_MaxVisits(t *testing.T) {
	hub := NewHub(Options{MaxVisits: 1, NewTicker: func(time.Duration) rotator.Ticker {
		return &fakeTicker{c: make(chan time.Time)}
	}})
	defer hub.Shutdown()
	_, err := hub.Mount(content.Default())
	require.NoError(t, err)
	_, err = hub.Mount(content.Default())
	assert.ErrorIs(t, err, ErrTooManyVisits)
}

func TestHub_ReapUnattached(t *testing.T) {
	f := newFixture(t)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	f.hub.now = func() time.Time { return now }

	stale := f.mount(t)
	attached := f.mount(t)
	require.True(t, attached.Attach())
	assert.False(t, attached.Attach())

	now = now.Add(DefaultAttachTimeout - time.Second)
	fresh := f.mount(t)
	now = now.Add(2 * time.Second)

	assert.Equal(t, 1, f.hub.Reap())
	assert.False(t, stale.Mounted())
	assert.True(t, attached.Mounted())
	assert.True(t, fresh.Mounted())
	assert.Equal(t, 2, f.hub.Len())
}

func TestHub_RunShutsDownOnCancel(t *testing.T) {
	f := newFixture(t)
	v := f.mount(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- f.hub.Run(ctx) }()
	cancel()

	require.NoError(t, <-done)
	assert.False(t, v.Mounted())
	assert.Equal(t, 0, f.hub.Len())
}

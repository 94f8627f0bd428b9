package lifecycle

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScope_CloseReleasesInReverseOrder(t *testing.T) {
	s := NewScope()
	var order []int
	for i := 1; i <= 3; i++ {
		i := i
		require.True(t, s.Acquire(SubscriptionFunc(func() { order = append(order, i) })))
	}
	assert.Equal(t, 3, s.Len())

	s.Close()
	assert.Equal(t, []int{3, 2, 1}, order)
	assert.True(t, s.Closed())
	assert.Equal(t, 0, s.Len())
}

func TestScope_CloseIsIdempotent(t *testing.T) {
	s := NewScope()
	calls := 0
	s.Acquire(SubscriptionFunc(func() { calls++ }))

	s.Close()
	s.Close()
	assert.Equal(t, 1, calls)
}

func TestScope_AcquireAfterCloseReleasesImmediately(t *testing.T) {
	s := NewScope()
	s.Close()

	released := false
	ok := s.Acquire(SubscriptionFunc(func() { released = true }))
	assert.False(t, ok)
	assert.True(t, released)
}

func TestScope_DoneClosesOnClose(t *testing.T) {
	s := NewScope()
	select {
	case <-s.Done():
		t.Fatal("done closed before Close")
	default:
	}
	s.Close()
	select {
	case <-s.Done():
	case <-time.After(time.Second):
		t.Fatal("done not closed")
	}
}

func TestScope_GuardSkipsAfterClose(t *testing.T) {
	s := NewScope()
	n := 0
	inc := s.Guard(func() { n++ })
	add := GuardFunc(s, func(v int) { n += v })

	inc()
	add(10)
	s.Close()
	inc()
	add(10)

	assert.Equal(t, 11, n)
}

func TestScope_CloseWaitsForInFlightCallback(t *testing.T) {
	s := NewScope()
	entered := make(chan struct{})
	release := make(chan struct{})
	var mu sync.Mutex
	finished := false

	cb := s.Guard(func() {
		close(entered)
		<-release
		mu.Lock()
		finished = true
		mu.Unlock()
	})
	go cb()
	<-entered

	closed := make(chan struct{})
	go func() {
		s.Close()
		close(closed)
	}()

	select {
	case <-closed:
		t.Fatal("Close returned while a guarded callback was running")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	<-closed
	mu.Lock()
	defer mu.Unlock()
	assert.True(t, finished)
}

func TestOnce(t *testing.T) {
	calls := 0
	sub := Once(SubscriptionFunc(func() { calls++ }))
	sub.Unsubscribe()
	sub.Unsubscribe()
	assert.Equal(t, 1, calls)
}

func TestEmitter_SubscribeEmitUnsubscribe(t *testing.T) {
	e := NewEmitter[float64]()
	var got []float64
	sub := e.Subscribe(func(v float64) { got = append(got, v) })
	assert.Equal(t, 1, e.Len())

	e.Emit(10)
	e.Emit(60)
	sub.Unsubscribe()
	e.Emit(70)

	assert.Equal(t, []float64{10, 60}, got)
	assert.Equal(t, 0, e.Len())
}

func TestEmitter_ScopeReleasesSubscription(t *testing.T) {
	e := NewEmitter[string]()
	s := NewScope()
	calls := 0
	s.Acquire(e.Subscribe(GuardFunc(s, func(string) { calls++ })))

	e.Emit("a")
	s.Close()
	e.Emit("b")

	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, e.Len())
}

// Package lifecycle ties listeners, observers and timers to the lifetime of
// the component that registered them.
package lifecycle

import (
	"sync"
	"sync/atomic"
)

// Subscription is a registered listener, observer or timer.
type Subscription interface {
	Unsubscribe()
}

// SubscriptionFunc adapts a plain function to a Subscription.
type SubscriptionFunc func()

// Unsubscribe calls f.
func (f SubscriptionFunc) Unsubscribe() { f() }

// Once wraps sub so that repeated Unsubscribe calls release it a single time.
func Once(sub Subscription) Subscription {
	var once sync.Once
	return SubscriptionFunc(func() {
		once.Do(sub.Unsubscribe)
	})
}

// Scope owns the subscriptions a component acquires while mounted and
// releases them when the component is torn down.
type Scope struct {
	mu     sync.Mutex
	subs   []Subscription
	closed atomic.Bool
	done   chan struct{}

	// gate is held for reading by guarded callbacks and for writing by
	// Close, so Close returns only after in-flight callbacks finish.
	gate sync.RWMutex
}

// NewScope returns an open scope.
func NewScope() *Scope {
	return &Scope{done: make(chan struct{})}
}

// Acquire registers sub for release on Close. On a closed scope the
// subscription is released immediately and Acquire returns false.
func (s *Scope) Acquire(sub Subscription) bool {
	if sub == nil {
		return false
	}
	s.mu.Lock()
	if s.closed.Load() {
		s.mu.Unlock()
		sub.Unsubscribe()
		return false
	}
	s.subs = append(s.subs, sub)
	s.mu.Unlock()
	return true
}

// Done is closed once the scope starts tearing down.
func (s *Scope) Done() <-chan struct{} {
	return s.done
}

// Closed reports whether Close has been called.
func (s *Scope) Closed() bool {
	return s.closed.Load()
}

// Guard returns fn wrapped so that it only runs while the scope is open.
// A guarded callback must not call Close on its own scope.
func (s *Scope) Guard(fn func()) func() {
	return func() {
		s.gate.RLock()
		defer s.gate.RUnlock()
		if s.closed.Load() {
			return
		}
		fn()
	}
}

// GuardFunc is Guard for callbacks that take an argument.
func GuardFunc[T any](s *Scope, fn func(T)) func(T) {
	return func(v T) {
		s.gate.RLock()
		defer s.gate.RUnlock()
		if s.closed.Load() {
			return
		}
		fn(v)
	}
}

// Close releases every acquired subscription in reverse order. It is safe to
// call more than once; only the first call has an effect.
func (s *Scope) Close() {
	s.gate.Lock()
	s.mu.Lock()
	if s.closed.Load() {
		s.mu.Unlock()
		s.gate.Unlock()
		return
	}
	s.closed.Store(true)
	subs := s.subs
	s.subs = nil
	close(s.done)
	s.mu.Unlock()
	s.gate.Unlock()

	for i := len(subs) - 1; i >= 0; i-- {
		subs[i].Unsubscribe()
	}
}

// Len returns the number of subscriptions currently held.
func (s *Scope) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}

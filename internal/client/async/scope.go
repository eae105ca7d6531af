// Package async ties fire-and-forget callbacks to the lifetime of their
// owner. A screen opens a Scope, binds its callbacks to it and closes it on
// teardown; results arriving afterwards are dropped instead of delivered.
package async

import (
	"context"
	"sync"
)

type Scope struct {
	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	closed bool
}

// NewScope derives a cancellable scope from parent.
func NewScope(parent context.Context) *Scope {
	ctx, cancel := context.WithCancel(parent)
	return &Scope{ctx: ctx, cancel: cancel}
}

// Context is cancelled when the scope closes. Pass it to the requests
// started on behalf of the owner.
func (s *Scope) Context() context.Context {
	return s.ctx
}

// Close cancels the context and stops further deliveries. It waits for a
// delivery in progress to return. Close is idempotent.
func (s *Scope) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.cancel()
}

// Closed reports whether Close has been called.
func (s *Scope) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Bind wraps cb so it runs only while s is open. The wrapper may be called
// from any goroutine; cb must not call Close on the same scope.
func Bind[T any](s *Scope, cb func(T)) func(T) {
	return func(v T) {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.closed {
			return
		}
		cb(v)
	}
}

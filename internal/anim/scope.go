package anim

import "context"

// Scope is a cancellable group of drives. A scope is idle once every task
// started under it, and every child scope, has resolved.
type Scope struct {
	ctx    context.Context
	cancel context.CancelFunc
	parent *Scope

	pending int
	onIdle  func()
}

// NewScope returns a live scope derived from parent.
func NewScope(parent context.Context) *Scope {
	ctx, cancel := context.WithCancel(parent)
	return &Scope{ctx: ctx, cancel: cancel}
}

// Child returns a sub-scope. Cancelling s cancels the child, and s stays busy
// until the child goes idle.
func (s *Scope) Child() *Scope {
	c := NewScope(s.ctx)
	c.parent = s
	s.acquire()
	return c
}

// Cancel aborts the scope and all of its children. Drives under it stop
// mutating their values on the next step.
func (s *Scope) Cancel() { s.cancel() }

// Err is non-nil once the scope has been cancelled.
func (s *Scope) Err() error { return s.ctx.Err() }

// Idle reports whether no work is outstanding.
func (s *Scope) Idle() bool { return s.pending == 0 }

// OnIdle registers fn to run when the scope drains without being cancelled.
func (s *Scope) OnIdle(fn func()) { s.onIdle = fn }

func (s *Scope) acquire() { s.pending++ }

func (s *Scope) release() {
	if s.pending == 0 {
		return
	}
	s.pending--
	if s.pending > 0 {
		return
	}
	if s.ctx.Err() == nil && s.onIdle != nil {
		s.onIdle()
	}
	if s.parent != nil {
		s.parent.release()
	}
}

package genstream

import (
	"sync/atomic"

	"github.com/stealthrocket/genstream/internal/safe"
)

// Next is the outcome of a single PollNext call on a completing stream.
type Next int8

const (
	// Pending means the generator parked on an unresolved await. No item is
	// available; the caller re-polls after the waker it supplied fires.
	Pending Next = iota

	// Item means the generator produced the stream's next element, available
	// from the Item method until the next element replaces it.
	Item

	// Done means the stream is exhausted. Every later poll reports Done
	// again without resuming the generator.
	Done
)

// String returns a label for the outcome.
func (n Next) String() string {
	switch n {
	case Pending:
		return "pending"
	case Item:
		return "item"
	case Done:
		return "done"
	default:
		return "invalid"
	}
}

// GeneratorFunc is the body of a completing generator. It may call
// c.Yield any number of times and Await any number of pollable values; the
// value it returns becomes the stream's final value.
type GeneratorFunc[Y, R any] func(c *Context[Y]) R

// Stream adapts a completing generator to the poll-based stream contract.
// The generator yields elements of type Y and returns a final value of type
// R when it completes.
//
// A Stream owns its generator exclusively. Its methods must not be called
// concurrently: polls are strictly sequential, and a second poll issued
// while one is in flight panics rather than interleaving two resumptions of
// the same generator.
type Stream[Y, R any] struct {
	ctx   *Context[Y]
	item  Y
	final R
	ended bool   // the body returned; final is meaningful
	done  bool   // terminal state reached; never regresses
	fail  error  // captured body panic, re-raised on every poll
	busy  atomic.Bool
}

// New returns a stream over the generator f. The generator does not start
// executing until the first poll.
//
// The goroutine backing the generator is released when the body returns,
// panics, or is stopped. Callers that abandon a stream before exhausting it
// must call Stop to release it.
func New[Y, R any](f GeneratorFunc[Y, R]) *Stream[Y, R] {
	if f == nil {
		panic("genstream: New with a nil generator")
	}
	c := newContext[Y]()
	s := &Stream[Y, R]{ctx: c}

	go func() {
		// The close wakes the driver last, after a panic (if any) has been
		// captured, so the driver never observes a half-written failure.
		defer close(c.turn)
		defer func() {
			if r := recover(); r != nil {
				s.fail = safe.Recovered(r)
			}
		}()
		if !c.park() {
			return
		}
		s.final = f(c)
		s.ended = true
	}()

	return s
}

// PollNext drives the stream one step: it resumes the generator exactly once
// and classifies how the generator gave control back. It never loops waiting
// for an item; on Pending the caller polls again after w fires.
//
// Once the generator has completed, PollNext returns Done on every call
// without resuming it. If the generator body panicked, PollNext re-raises
// the captured panic, on the poll that observed it and on every poll after.
//
// PollNext panics if w is nil, or if the stream is used from two goroutines
// at once.
func (s *Stream[Y, R]) PollNext(w Waker) Next {
	if w == nil {
		panic("genstream: PollNext with a nil Waker")
	}
	s.enter()
	defer s.exit()

	if s.fail != nil {
		panic(s.fail)
	}
	if s.done {
		return Done
	}

	yielded, running := s.ctx.resume(w)
	if !running {
		s.done = true
		if s.fail != nil {
			panic(s.fail)
		}
		return Done
	}
	if yielded.Ready {
		s.item = yielded.Value
		return Item
	}
	return Pending
}

// Item returns the element produced by the most recent poll that reported
// Item. It must be called only after such a poll; the value is retained
// across Pending polls and replaced by the next Item outcome.
func (s *Stream[Y, R]) Item() Y {
	return s.item
}

// Final returns the generator's return value. The ok result is false until
// the generator has run to completion, and stays false forever if the stream
// was stopped before that.
func (s *Stream[Y, R]) Final() (final R, ok bool) {
	return s.final, s.ended
}

// Stop interrupts the generator: at its current park point the body does not
// resume normal execution but unwinds, running deferred statements in
// reverse order, after which the stream is exhausted. A generator stopped
// before its first poll never runs at all.
//
// Stop is idempotent and a no-op once the stream is exhausted. Like polls,
// it must not race with other calls on the same stream.
func (s *Stream[Y, R]) Stop() {
	s.enter()
	defer s.exit()

	if s.done || s.fail != nil {
		return
	}
	s.ctx.interrupt()
	s.done = true
	if s.fail != nil {
		// A deferred statement panicked during unwinding.
		panic(s.fail)
	}
}

func (s *Stream[Y, R]) enter() {
	if !s.busy.CompareAndSwap(false, true) {
		panic("genstream: concurrent use of the same stream")
	}
}

func (s *Stream[Y, R]) exit() {
	s.busy.Store(false)
}

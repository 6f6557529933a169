package source

import (
	"sync"

	"github.com/stealthrocket/genstream"
)

// A Promise is a one-shot asynchronous value: it starts unresolved, is
// completed at most once, and reports ready to every poll from then on.
// It is the simplest bridge between a generator and code running elsewhere;
// any goroutine may complete it, and any number of generators may await it.
//
// A Promise must not be copied after first use.
type Promise[T any] struct {
	mu     sync.Mutex
	wakers []genstream.Waker
	value  T
	done   bool
}

// NewPromise returns an unresolved promise.
func NewPromise[T any]() *Promise[T] {
	return new(Promise[T])
}

// Poll implements genstream.Pollable. An unresolved poll registers w to be
// woken by Complete.
func (p *Promise[T]) Poll(w genstream.Waker) genstream.Poll[T] {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.done {
		return genstream.Ready(p.value)
	}
	p.wakers = append(p.wakers, w)
	return genstream.NotReady[T]()
}

// Complete resolves the promise to v and wakes every waker registered by an
// unresolved poll. Only the first completion wins; Complete reports whether
// this call was it.
func (p *Promise[T]) Complete(v T) bool {
	p.mu.Lock()
	if p.done {
		p.mu.Unlock()
		return false
	}
	p.value = v
	p.done = true
	wakers := p.wakers
	p.wakers = nil
	p.mu.Unlock()

	// Outside the lock: a waker is free to poll again from within Wake.
	for _, w := range wakers {
		w.Wake()
	}
	return true
}

// Done reports whether the promise has been completed.
func (p *Promise[T]) Done() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.done
}

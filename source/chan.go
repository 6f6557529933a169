package source

import (
	"sync"

	"github.com/stealthrocket/genstream"
)

// Recv is the outcome of awaiting one element of a channel. It mirrors the
// two-value receive form: OK is false when the channel was closed instead of
// producing a value.
type Recv[T any] struct {
	Value T
	OK    bool
}

// A Chan adapts a receive channel to a pollable: every resolved await
// consumes exactly one element, and a closed channel resolves every later
// await with a zero Recv, the way a closed channel keeps delivering zero
// values.
//
// When a poll finds the channel empty, a watcher goroutine is started (one at
// most) to block on the channel on the generator's behalf; it hands over a
// single element and wakes the most recent poller. A Chan abandoned while its
// watcher is parked keeps that goroutine, and at most one received element,
// until the channel produces or closes.
type Chan[T any] struct {
	src <-chan T

	mu       sync.Mutex
	waker    genstream.Waker
	watching bool
	have     bool
	recv     Recv[T]
	closed   bool
}

// NewChan returns a pollable view of ch.
func NewChan[T any](ch <-chan T) *Chan[T] {
	if ch == nil {
		panic("source: NewChan with a nil channel")
	}
	return &Chan[T]{src: ch}
}

// Poll implements genstream.Pollable.
func (c *Chan[T]) Poll(w genstream.Waker) genstream.Poll[Recv[T]] {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.have {
		r := c.recv
		c.have = false
		c.recv = Recv[T]{}
		return genstream.Ready(r)
	}
	if c.closed {
		return genstream.Ready(Recv[T]{})
	}

	if !c.watching {
		// The watcher owns the receive while it runs; only poll the channel
		// directly when no watcher does.
		select {
		case v, ok := <-c.src:
			if !ok {
				c.closed = true
				return genstream.Ready(Recv[T]{})
			}
			return genstream.Ready(Recv[T]{Value: v, OK: true})
		default:
		}
		c.watching = true
		go c.watch()
	}
	c.waker = w
	return genstream.NotReady[Recv[T]]()
}

// watch blocks until the channel produces an element or closes, records the
// outcome, and wakes the most recent poller.
func (c *Chan[T]) watch() {
	v, ok := <-c.src

	c.mu.Lock()
	c.watching = false
	if ok {
		c.have = true
		c.recv = Recv[T]{Value: v, OK: true}
	} else {
		c.closed = true
	}
	w := c.waker
	c.waker = nil
	c.mu.Unlock()

	if w != nil {
		w.Wake()
	}
}

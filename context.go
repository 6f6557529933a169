package genstream

import (
	"runtime"
)

// Context is the handle a generator body uses to suspend itself. It is
// created by the stream constructors and passed to the body function; the
// body (and any helper it calls) is the only code that may use it.
//
// The generator runs on its own goroutine, parked on an unbuffered handoff
// channel; the driver and the generator strictly alternate, so exactly one
// of them executes at any time. The *Context itself is the generator's
// stable allocation: body-local state lives on the goroutine stack across
// suspension points and the handle's address never changes.
//
// A Context must not escape its generator: it must not be stored away, sent
// on a channel, or used from another goroutine. The ctxescape analyzer flags
// such escapes statically; at run time they surface as panics or deadlocks.
type Context[Y any] struct {
	// turn is the handoff channel between the driver and the generator.
	// Ownership of execution moves with each send; the generator closes it
	// when it finishes, unwinds, or panics.
	turn chan struct{}

	// sent is the sentinel of the latest suspension, read by the driver
	// after the generator parks.
	sent Poll[Y]

	// waker is the wake context of the in-flight poll. The driver publishes
	// it immediately before each resume and clears it immediately after the
	// generator parks again, so the body can only ever observe the waker of
	// the poll that is currently executing it.
	waker Waker

	// active is true while a resume is in flight. Guards against yields
	// reaching a generator that is not being polled.
	active bool

	// stop makes the next observed suspension point unwind the generator
	// instead of parking it.
	stop bool
}

func newContext[Y any]() *Context[Y] {
	return &Context[Y]{turn: make(chan struct{})}
}

// Yield emits item as the stream's next element and parks the generator
// until the driver is polled again.
//
// Yield panics when called outside an active poll, or from a generator that
// has been stopped and is unwinding.
func (c *Context[Y]) Yield(item Y) {
	c.yield(Ready(item))
}

// Waker returns the wake context supplied to the poll that is currently
// executing the generator. Each poll may carry a different waker; code that
// needs to be woken later must re-read it after every suspension.
//
// Waker panics when called outside an active poll.
func (c *Context[Y]) Waker() Waker {
	if c.waker == nil {
		panic("genstream: Waker called outside of an active PollNext")
	}
	return c.waker
}

// yield parks the generator with the given sentinel and hands control back
// to the driver. It returns once the driver resumes the generator, or never
// returns when the generator was stopped in the meantime (the goroutine
// unwinds through its deferred statements instead).
func (c *Context[Y]) yield(p Poll[Y]) {
	if c.stop {
		panic("genstream: Yield on a stopped generator")
	}
	if !c.active {
		panic("genstream: Yield called outside of an active PollNext")
	}
	c.sent = p
	c.turn <- struct{}{}
	<-c.turn
	if c.stop {
		runtime.Goexit()
	}
}

// park blocks the freshly started generator goroutine until the first
// resume. It reports whether the body should run at all: a generator stopped
// before its first poll never executes user code.
func (c *Context[Y]) park() bool {
	<-c.turn
	return !c.stop
}

// resume hands control to the generator for exactly one hop, publishing w
// for the duration. It returns the sentinel the generator yielded and
// whether the generator is still running; when running is false the
// generator completed (or unwound) and the sentinel is meaningless.
func (c *Context[Y]) resume(w Waker) (yielded Poll[Y], running bool) {
	c.waker = w
	c.active = true
	c.turn <- struct{}{}
	_, running = <-c.turn
	c.active = false
	c.waker = nil
	return c.sent, running
}

// interrupt wakes the parked generator with the stop flag set and waits for
// it to finish unwinding. The caller must know the generator is parked.
func (c *Context[Y]) interrupt() {
	c.stop = true
	c.turn <- struct{}{}
	<-c.turn
}

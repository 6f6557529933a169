package genstream

// Await blocks the generator body on an arbitrary pollable value without
// blocking the goroutine that polls the stream. It polls p once with the
// waker of the in-flight poll; while p is unresolved the enclosing generator
// parks with the not-ready sentinel, so the enclosing PollNext reports
// Pending, and each subsequent poll re-polls p with that poll's own waker.
// Once p resolves, the body resumes with the value as if the call had been
// synchronous.
//
// The resolved value is consumed by the body; it is never itself emitted as
// a stream element. From the driver's point of view an unresolved await is
// indistinguishable from any other Pending outcome, and deliberately so:
// both mean "wake me, then poll again".
//
// Await must only be called from inside a generator body, with that body's
// own context. It panics on a nil Pollable.
func Await[T, Y any](c *Context[Y], p Pollable[T]) T {
	if p == nil {
		panic("genstream: Await of a nil Pollable")
	}
	for {
		if r := p.Poll(c.Waker()); r.Ready {
			return r.Value
		}
		c.yield(NotReady[Y]())
	}
}

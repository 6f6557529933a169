package genstream

// PerpetualStream adapts a generator that never completes. Because the body
// has no return value and is required not to return, the poll contract
// shrinks to the bare sentinel: there is no "done" outcome to observe, which
// the PollNext signature makes a static property rather than a runtime
// check.
//
// The same sequencing rules as Stream apply: one poll at a time, polls
// strictly sequential.
type PerpetualStream[Y any] struct {
	inner   *Stream[Y, struct{}]
	stopped bool
}

// NewPerpetual returns a stream over a generator that must never return.
// A body that does return is a programming error: the poll that observes it
// panics.
func NewPerpetual[Y any](f func(c *Context[Y])) *PerpetualStream[Y] {
	if f == nil {
		panic("genstream: NewPerpetual with a nil generator")
	}
	return &PerpetualStream[Y]{
		inner: New(func(c *Context[Y]) struct{} {
			f(c)
			return struct{}{}
		}),
	}
}

// PollNext drives the stream one step: it resumes the generator exactly once
// and returns the sentinel it yielded, either ready with the next element or
// not ready, in which case the caller re-polls after w fires.
//
// PollNext panics if the generator returned, if the stream was stopped, if w
// is nil, or on concurrent use.
func (s *PerpetualStream[Y]) PollNext(w Waker) Poll[Y] {
	switch s.inner.PollNext(w) {
	case Item:
		return Ready(s.inner.Item())
	case Done:
		if s.stopped {
			panic("genstream: PollNext on a stopped perpetual stream")
		}
		panic("genstream: perpetual generator returned")
	default:
		return NotReady[Y]()
	}
}

// Stop interrupts and releases the generator, as for Stream.Stop. A stopped
// perpetual stream must not be polled again: with no terminal outcome in its
// contract, a later poll panics instead of fusing.
func (s *PerpetualStream[Y]) Stop() {
	s.stopped = true
	s.inner.Stop()
}

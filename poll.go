package genstream

// Poll is the suspension sentinel exchanged at every suspension point: it is
// what a generator yields when it parks, and what a Pollable reports when it
// is asked whether its value resolved.
//
// A Poll is either not ready (no value this round; the caller re-polls after
// its Waker fires) or ready, carrying the value. The zero value of Poll is
// not ready.
type Poll[T any] struct {
	// Value is the resolved value. It is meaningful only when Ready is true.
	Value T

	// Ready reports whether Value resolved.
	Ready bool
}

// Ready returns a resolved sentinel carrying v.
func Ready[T any](v T) Poll[T] {
	return Poll[T]{Value: v, Ready: true}
}

// NotReady returns the unresolved sentinel.
func NotReady[T any]() Poll[T] {
	return Poll[T]{}
}

// A Waker is the wake context supplied to each poll: a handle through which
// the polled value (or the generator awaiting it) later notifies the caller
// that another poll may make progress.
//
// Wakers are owned by the caller and only borrowed for the duration of a
// single poll. Implementations must be safe for use by multiple goroutines,
// and must tolerate spurious calls: waking more than once, or waking when no
// progress is possible, only costs an extra poll.
type Waker interface {
	Wake()
}

// WakerFunc adapts a plain function to the Waker interface.
type WakerFunc func()

// Wake calls f.
func (f WakerFunc) Wake() { f() }

// A Pollable is an asynchronous value that can be polled for readiness. It
// is the capability consumed by Await: timers, channels, promises, or any
// other collaborator of an external runtime can be awaited inside a
// generator body by implementing this single method.
//
// Poll must not block. When the value has not resolved, the implementation
// arranges for w to be woken once it may have, and returns the not-ready
// sentinel. Implementations should always use the waker of the most recent
// poll; earlier wakers may belong to polls that have already returned.
type Pollable[T any] interface {
	Poll(w Waker) Poll[T]
}

// PollableFunc adapts a plain function to the Pollable interface.
type PollableFunc[T any] func(w Waker) Poll[T]

// Poll calls f with w.
func (f PollableFunc[T]) Poll(w Waker) Poll[T] { return f(w) }

// Package source provides ready-made pollable values for genstream.Await:
// bridges from the primitives a generator body typically waits on, such as
// timers, channels, contexts and one-shot completions, to the poll-based
// readiness contract.
//
// Every value in this package implements genstream.Pollable and follows its
// rules: Poll never blocks, and an unresolved poll arranges for the supplied
// waker to fire once readiness may have changed. Wakers from earlier polls
// are discarded; only the most recent one is woken.
package source

import (
	"github.com/stealthrocket/genstream"
)

// Value returns a pollable that is ready on every poll, resolving to v.
// Awaiting it never parks the generator.
func Value[T any](v T) genstream.Pollable[T] {
	return genstream.PollableFunc[T](func(genstream.Waker) genstream.Poll[T] {
		return genstream.Ready(v)
	})
}

// Never returns a pollable that never resolves. Awaiting it parks the
// generator until the stream is stopped.
func Never[T any]() genstream.Pollable[T] {
	return genstream.PollableFunc[T](func(genstream.Waker) genstream.Poll[T] {
		return genstream.NotReady[T]()
	})
}

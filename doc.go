// Package genstream turns generators, resumable computations that suspend
// themselves mid-execution and pick up where they left off, into poll-based
// streams: asynchronous sequences queried by repeatedly asking "is there a
// next item yet?".
//
// A generator is an ordinary function written in straight-line style. It
// receives a *Context, emits elements with Yield, and waits for external
// values with Await; the local state it accumulates between suspensions is
// simply its goroutine stack. Wrapping it in one of the stream constructors
// produces a driver that resumes the generator exactly once per poll and
// classifies how it gave control back:
//
//   - the generator yielded an element: the poll reports it;
//   - the generator parked on an unresolved await: the poll reports pending,
//     and the waker supplied to that poll fires when progress is possible;
//   - the generator returned: the stream is exhausted, permanently.
//
// Three constructors cover the three completion shapes. New adapts a
// generator with a final return value; NewTry a generator that can fail;
// NewPerpetual a generator that must never return, whose poll contract
// statically has no exhausted outcome.
//
// The package supplies no event loop of its own. Whoever polls a stream
// decides when to re-poll, using the Waker it passed in; the source
// subpackage bridges timers, channels and contexts into awaitable values,
// and the drive subpackage offers blocking pull loops for callers without a
// scheduler of their own.
//
// Streams are not safe for concurrent use: a generator admits one live
// resumption at a time, and a poll issued while another is in flight panics
// rather than interleaving the two.
package genstream

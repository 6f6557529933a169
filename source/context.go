package source

import (
	"context"
	"sync"

	"github.com/stealthrocket/genstream"
)

// Done returns a pollable that resolves with ctx.Err() once ctx is done.
// Awaiting it parks the generator until the context is canceled or its
// deadline passes; it is how a generator body observes cancellation that
// originates outside the stream.
func Done(ctx context.Context) genstream.Pollable[error] {
	return &ctxDone{ctx: ctx}
}

type ctxDone struct {
	ctx context.Context

	mu   sync.Mutex
	stop func() bool
}

func (d *ctxDone) Poll(w genstream.Waker) genstream.Poll[error] {
	if err := d.ctx.Err(); err != nil {
		d.mu.Lock()
		if d.stop != nil {
			d.stop()
			d.stop = nil
		}
		d.mu.Unlock()
		return genstream.Ready(err)
	}

	d.mu.Lock()
	if d.stop != nil {
		d.stop()
	}
	// If the context completed since the check above, AfterFunc runs the
	// waker immediately and the next poll observes the error.
	d.stop = context.AfterFunc(d.ctx, w.Wake)
	d.mu.Unlock()
	return genstream.NotReady[error]()
}

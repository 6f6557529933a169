// Package drive runs poll-based streams to completion for callers without a
// scheduler of their own. Each function blocks the calling goroutine: it
// polls the stream, parks between polls until the waker it supplied fires,
// and observes cancellation of the supplied context at every iteration.
//
// Whatever path a loop returns by, the stream has been stopped (a no-op when
// it already ran to completion), so the generator's deferred statements have
// run and its goroutine is released.
package drive

import (
	"context"
	"log/slog"

	"github.com/stealthrocket/genstream"
)

// parker is the waker behind every pull loop: a one-slot channel that
// coalesces any number of wakes into a single pending unpark.
type parker chan struct{}

func newParker() parker {
	return make(parker, 1)
}

// Wake implements genstream.Waker. It never blocks; waking an already woken
// parker is a no-op.
func (p parker) Wake() {
	select {
	case p <- struct{}{}:
	default:
	}
}

// park blocks until the parker is woken or ctx is done.
func (p parker) park(ctx context.Context) error {
	select {
	case <-p:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Each pulls s to completion, calling fn for every element in order. It
// returns nil once the stream is exhausted, after which the generator's
// return value is available from s.Final. A non-nil error from fn stops the
// stream and is returned; cancellation of ctx stops it and returns ctx.Err().
func Each[Y, R any](ctx context.Context, s *genstream.Stream[Y, R], fn func(Y) error) error {
	defer s.Stop()
	p := newParker()
	for {
		if err := ctx.Err(); err != nil {
			slog.Debug("genstream/drive: stopping stream, context done", "err", err)
			return err
		}
		switch s.PollNext(p) {
		case genstream.Item:
			if err := fn(s.Item()); err != nil {
				slog.Debug("genstream/drive: stopping stream, callback failed", "err", err)
				return err
			}
		case genstream.Done:
			return nil
		default:
			if err := p.park(ctx); err != nil {
				return err
			}
		}
	}
}

// Collect pulls s to completion and returns the elements it produced, in
// order. On error the elements collected so far are returned with it.
func Collect[Y, R any](ctx context.Context, s *genstream.Stream[Y, R]) ([]Y, error) {
	var items []Y
	err := Each(ctx, s, func(v Y) error {
		items = append(items, v)
		return nil
	})
	return items, err
}

// Try pulls s to completion, calling fn for every element in order. It
// returns the generator's own error if the generator failed, fn's error if a
// callback rejected an element, and ctx.Err() on cancellation; nil means the
// stream was exhausted cleanly.
func Try[Y any](ctx context.Context, s *genstream.TryStream[Y], fn func(Y) error) error {
	defer s.Stop()
	p := newParker()
	for {
		if err := ctx.Err(); err != nil {
			slog.Debug("genstream/drive: stopping stream, context done", "err", err)
			return err
		}
		switch s.PollNext(p) {
		case genstream.Item:
			if err := fn(s.Item()); err != nil {
				slog.Debug("genstream/drive: stopping stream, callback failed", "err", err)
				return err
			}
		case genstream.Done:
			return s.Err()
		default:
			if err := p.park(ctx); err != nil {
				return err
			}
		}
	}
}

// Forever pulls a perpetual stream until ctx is done or fn rejects an
// element; it never returns nil. The stream is stopped on the way out and
// must not be polled again.
func Forever[Y any](ctx context.Context, s *genstream.PerpetualStream[Y], fn func(Y) error) error {
	defer s.Stop()
	p := newParker()
	for {
		if err := ctx.Err(); err != nil {
			slog.Debug("genstream/drive: stopping stream, context done", "err", err)
			return err
		}
		if next := s.PollNext(p); next.Ready {
			if err := fn(next.Value); err != nil {
				slog.Debug("genstream/drive: stopping stream, callback failed", "err", err)
				return err
			}
		} else if err := p.park(ctx); err != nil {
			return err
		}
	}
}

package genstream

// TryStream adapts a generator whose body can fail. It behaves exactly like
// a completing Stream whose final value is an error, surfaced through the
// scanner idiom: poll until Done, then ask Err whether the generator ended
// cleanly.
type TryStream[Y any] struct {
	inner *Stream[Y, error]
}

// NewTry returns a stream over the fallible generator f.
func NewTry[Y any](f func(c *Context[Y]) error) *TryStream[Y] {
	if f == nil {
		panic("genstream: NewTry with a nil generator")
	}
	return &TryStream[Y]{inner: New(GeneratorFunc[Y, error](f))}
}

// PollNext drives the stream one step, with the same contract as
// Stream.PollNext.
func (s *TryStream[Y]) PollNext(w Waker) Next {
	return s.inner.PollNext(w)
}

// Item returns the element produced by the most recent poll that reported
// Item.
func (s *TryStream[Y]) Item() Y {
	return s.inner.Item()
}

// Err returns the error the generator body returned, if any. It returns nil
// while the stream is still running, after a clean completion, and after a
// Stop.
func (s *TryStream[Y]) Err() error {
	err, ok := s.inner.Final()
	if !ok {
		return nil
	}
	return err
}

// Stop interrupts and releases the generator, as for Stream.Stop.
func (s *TryStream[Y]) Stop() {
	s.inner.Stop()
}

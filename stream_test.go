package genstream

import (
	"testing"

	"github.com/stealthrocket/genstream/internal/safe"
)

// testWaker is a comparable waker for tests that care about identity or
// wake counts. Wakes are only counted from the polling goroutine.
type testWaker struct {
	wakes int
}

func (w *testWaker) Wake() { w.wakes++ }

func TestStreamItems(t *testing.T) {
	s := New(func(c *Context[int]) string {
		c.Yield(1)
		c.Yield(2)
		c.Yield(3)
		return "finished"
	})
	w := new(testWaker)

	if _, ok := s.Final(); ok {
		t.Error("Final reported ok before completion")
	}

	for i, want := range []int{1, 2, 3} {
		if got := s.PollNext(w); got != Item {
			t.Fatalf("poll %d: got %v, want item", i, got)
		}
		if got := s.Item(); got != want {
			t.Errorf("poll %d: wrong item: got=%d want=%d", i, got, want)
		}
	}

	if got := s.PollNext(w); got != Done {
		t.Fatalf("got %v after last item, want done", got)
	}
	final, ok := s.Final()
	if !ok || final != "finished" {
		t.Errorf("wrong final value: got=%q ok=%v", final, ok)
	}
}

func TestStreamFused(t *testing.T) {
	s := New(func(c *Context[int]) int {
		c.Yield(1)
		return -1
	})
	w := new(testWaker)

	if got := s.PollNext(w); got != Item {
		t.Fatalf("got %v, want item", got)
	}
	// Every poll past completion must report done again without touching
	// the generator; a resume attempt would hang or panic the machinery.
	for i := 0; i < 5; i++ {
		if got := s.PollNext(w); got != Done {
			t.Fatalf("poll %d past completion: got %v, want done", i, got)
		}
	}
	if final, ok := s.Final(); !ok || final != -1 {
		t.Errorf("wrong final value: got=%d ok=%v", final, ok)
	}
}

func TestStreamStopUnwinds(t *testing.T) {
	cleaned := false
	s := New(func(c *Context[int]) int {
		defer func() { cleaned = true }()
		for i := 0; ; i++ {
			c.Yield(i)
		}
	})
	w := new(testWaker)

	if got := s.PollNext(w); got != Item || s.Item() != 0 {
		t.Fatalf("got %v (item=%d), want item 0", got, s.Item())
	}

	s.Stop()
	if !cleaned {
		t.Error("deferred statement did not run on stop")
	}
	if got := s.PollNext(w); got != Done {
		t.Errorf("got %v after stop, want done", got)
	}
	if _, ok := s.Final(); ok {
		t.Error("stopped stream must not report a final value")
	}
}

func TestStreamStopBeforeFirstPoll(t *testing.T) {
	ran := false
	s := New(func(c *Context[int]) int {
		ran = true
		return 0
	})
	s.Stop()
	s.Stop() // idempotent

	if ran {
		t.Error("generator body ran despite being stopped before the first poll")
	}
	if got := s.PollNext(new(testWaker)); got != Done {
		t.Errorf("got %v, want done", got)
	}
}

func TestStreamPanicPropagation(t *testing.T) {
	s := New(func(c *Context[int]) int {
		c.Yield(1)
		panic("kaboom")
	})
	w := new(testWaker)

	if got := s.PollNext(w); got != Item {
		t.Fatalf("got %v, want item", got)
	}

	mustPanic := func() (v any) {
		defer func() { v = recover() }()
		s.PollNext(w)
		return nil
	}

	first := mustPanic()
	pe, ok := first.(*safe.PanicError)
	if !ok {
		t.Fatalf("expected a *safe.PanicError, got %T", first)
	}
	if pe.Value != "kaboom" {
		t.Errorf("wrong panic value: got=%v want=kaboom", pe.Value)
	}
	if len(pe.Stack) == 0 {
		t.Error("no generator stack captured")
	}

	// The failure is sticky.
	if again := mustPanic(); again != first {
		t.Errorf("later poll panicked with a different value: %v", again)
	}

	// Stop after a panic has nothing left to release.
	s.Stop()
}

func TestStreamConcurrentPollRejected(t *testing.T) {
	entered := make(chan struct{})
	gate := make(chan struct{})
	s := New(func(c *Context[int]) int {
		close(entered)
		<-gate
		c.Yield(1)
		return 0
	})

	res := make(chan Next, 1)
	go func() { res <- s.PollNext(new(testWaker)) }()
	<-entered // the first poll is now in flight

	func() {
		defer func() {
			if recover() == nil {
				t.Error("second concurrent poll did not panic")
			}
		}()
		s.PollNext(new(testWaker))
	}()

	close(gate)
	if got := <-res; got != Item {
		t.Errorf("first poll: got %v, want item", got)
	}
	s.Stop()
}

func TestStreamNilWaker(t *testing.T) {
	s := New(func(c *Context[int]) int { return 0 })
	defer s.Stop()

	defer func() {
		if recover() == nil {
			t.Error("PollNext(nil) did not panic")
		}
	}()
	s.PollNext(nil)
}

func TestNewNilGenerator(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("New(nil) did not panic")
		}
	}()
	New[int, int](nil)
}

func TestNextString(t *testing.T) {
	for _, tc := range []struct {
		n    Next
		want string
	}{
		{Pending, "pending"},
		{Item, "item"},
		{Done, "done"},
		{Next(42), "invalid"},
	} {
		if got := tc.n.String(); got != tc.want {
			t.Errorf("Next(%d).String() = %q, want %q", int8(tc.n), got, tc.want)
		}
	}
}

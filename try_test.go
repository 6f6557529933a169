package genstream

import (
	"errors"
	"testing"
)

func TestTryStreamError(t *testing.T) {
	errBroken := errors.New("broken pipe")
	s := NewTry(func(c *Context[int]) error {
		c.Yield(1)
		c.Yield(2)
		return errBroken
	})
	w := new(testWaker)

	for want := 1; want <= 2; want++ {
		if got := s.PollNext(w); got != Item {
			t.Fatalf("got %v, want item", got)
		}
		if got := s.Item(); got != want {
			t.Errorf("wrong item: got=%d want=%d", got, want)
		}
		// The error is not observable before the generator completes.
		if err := s.Err(); err != nil {
			t.Errorf("mid-stream Err: %v", err)
		}
	}

	if got := s.PollNext(w); got != Done {
		t.Fatalf("got %v, want done", got)
	}
	if err := s.Err(); !errors.Is(err, errBroken) {
		t.Errorf("wrong error: got=%v want=%v", err, errBroken)
	}
	if err := s.Err(); !errors.Is(err, errBroken) {
		t.Errorf("error not sticky: %v", err)
	}
}

func TestTryStreamClean(t *testing.T) {
	s := NewTry(func(c *Context[int]) error {
		c.Yield(1)
		return nil
	})
	w := new(testWaker)

	if got := s.PollNext(w); got != Item {
		t.Fatalf("got %v, want item", got)
	}
	if got := s.PollNext(w); got != Done {
		t.Fatalf("got %v, want done", got)
	}
	if err := s.Err(); err != nil {
		t.Errorf("clean completion reported error: %v", err)
	}
}

func TestTryStreamStop(t *testing.T) {
	s := NewTry(func(c *Context[int]) error {
		for i := 0; ; i++ {
			c.Yield(i)
		}
	})
	w := new(testWaker)

	if got := s.PollNext(w); got != Item {
		t.Fatalf("got %v, want item", got)
	}
	s.Stop()
	if got := s.PollNext(w); got != Done {
		t.Errorf("got %v after Stop, want done", got)
	}
	if err := s.Err(); err != nil {
		t.Errorf("stopped stream reported error: %v", err)
	}
}

func TestNewTryNilGenerator(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("NewTry(nil) did not panic")
		}
	}()
	NewTry[int](nil)
}

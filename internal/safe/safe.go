// Package safe captures panics from user-provided code so they can be
// carried across goroutine boundaries and re-raised with their original
// stack attached.
package safe

import (
	"fmt"
	"runtime/debug"
)

// A PanicError wraps a value recovered from a panic together with the stack
// of the panicking goroutine, captured at recovery time.
type PanicError struct {
	Value any
	Stack []byte
}

// Error implements error.
func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v\n\n%s", e.Value, e.Stack)
}

// Unwrap returns the recovered value when it is itself an error.
func (e *PanicError) Unwrap() error {
	err, ok := e.Value.(error)
	if !ok {
		return nil
	}
	return err
}

// Recovered wraps a value obtained from recover. It must be called from the
// goroutine that panicked, while unwinding, so that the captured stack still
// describes the panic site. A nil value returns nil.
func Recovered(v any) error {
	if v == nil {
		return nil
	}
	return &PanicError{Value: v, Stack: debug.Stack()}
}

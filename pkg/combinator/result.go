package combinator

import (
	"fmt"
	"slices"
	"strings"
)

// Result is the outcome of running a parser: either a value together with the
// state after it, or a *Failure.
type Result[T, U any] struct {
	value T
	next  State[U]
	fail  *Failure[U]
}

// Success builds a successful result.
func Success[T, U any](value T, next State[U]) Result[T, U] {
	return Result[T, U]{value: value, next: next}
}

// Failed builds a failed result from f.
func Failed[T, U any](f *Failure[U]) Result[T, U] {
	return Result[T, U]{fail: f}
}

// OK reports whether the parse succeeded.
func (r Result[T, U]) OK() bool { return r.fail == nil }

// Value returns the parsed value. It panics when called on a failed result.
func (r Result[T, U]) Value() T {
	if r.fail != nil {
		panic("combinator: Value called on failed result")
	}
	return r.value
}

// Next returns the state after the parsed value. It panics when called on a
// failed result.
func (r Result[T, U]) Next() State[U] {
	if r.fail != nil {
		panic("combinator: Next called on failed result")
	}
	return r.next
}

// Failure returns the failure. It panics when called on a successful result.
func (r Result[T, U]) Failure() *Failure[U] {
	if r.fail == nil {
		panic("combinator: Failure called on successful result")
	}
	return r.fail
}

// Err returns the failure as an error, or nil on success.
func (r Result[T, U]) Err() error {
	if r.fail == nil {
		return nil
	}
	return r.fail
}

// MapFailure transforms the failure of r and leaves successes untouched.
func (r Result[T, U]) MapFailure(fn func(*Failure[U]) *Failure[U]) Result[T, U] {
	if r.fail == nil {
		return r
	}
	return Failed[T](fn(r.fail))
}

// MapValue transforms the value of r and leaves failures untouched.
func MapValue[T, R, U any](r Result[T, U], fn func(T) R) Result[R, U] {
	if r.fail != nil {
		return Failed[R](r.fail)
	}
	return Success(fn(r.value), r.next)
}

// Failure describes a failed parse.
type Failure[U any] struct {
	// State is the state at the point of failure.
	State State[U]
	// Consumed counts the elements the failing parser read before it gave up.
	Consumed int
	// Labels holds the diagnostic labels, innermost first.
	Labels []string
	// Cause is the kind of failure, usually one of the package sentinels.
	Cause error
}

// NewFailure creates a failure at state with no labels.
func NewFailure[U any](state State[U], consumed int, cause error) *Failure[U] {
	if cause == nil {
		cause = ErrFailed
	}
	return &Failure[U]{State: state, Consumed: consumed, Cause: cause}
}

// Offset returns the cursor position where the parse stopped.
func (f *Failure[U]) Offset() int { return f.State.Pos() }

// Push returns a copy of f with label appended to the label stack.
func (f *Failure[U]) Push(label string) *Failure[U] {
	c := *f
	c.Labels = append(slices.Clip(f.Labels), label)
	return &c
}

// Path returns the labels from the outermost to the innermost parser.
func (f *Failure[U]) Path() []string {
	path := slices.Clone(f.Labels)
	slices.Reverse(path)
	return path
}

func (f *Failure[U]) Error() string {
	if len(f.Labels) == 0 {
		return fmt.Sprintf("%v at offset %d", f.Cause, f.Offset())
	}
	return fmt.Sprintf("%s: %v at offset %d", strings.Join(f.Path(), " > "), f.Cause, f.Offset())
}

func (f *Failure[U]) Unwrap() error { return f.Cause }

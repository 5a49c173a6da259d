package combinator

import "errors"

// Scope threads the state through the steps of a Do block.
type Scope[U any] struct {
	start State[U]
	state State[U]
}

// State returns the current state of the block.
func (sc *Scope[U]) State() State[U] { return sc.state }

// User returns the current user state of the block.
func (sc *Scope[U]) User() U { return sc.state.user }

// Step runs p from the current state of sc. On success the state advances and
// the value is returned; on failure the *Failure is returned as the error and
// the state is left unchanged.
func Step[T, U any](sc *Scope[U], p Parser[T, U]) (T, error) {
	r := p.Run(sc.state)
	if r.fail != nil {
		var zero T
		return zero, r.fail
	}
	sc.state = r.next
	return r.value, nil
}

// Do builds a parser from a straight-line body. The first error returned by
// body ends the parse: a *Failure from Step propagates unchanged, any other
// error becomes the cause of a failure at the current state of the block.
func Do[T, U any](body func(sc *Scope[U]) (T, error)) Parser[T, U] {
	return New(func(s State[U]) Result[T, U] {
		sc := &Scope[U]{start: s, state: s}
		v, err := body(sc)
		if err != nil {
			var f *Failure[U]
			if errors.As(err, &f) {
				return Failed[T](f)
			}
			return Failed[T](NewFailure(sc.state, sc.state.pos-sc.start.pos, err))
		}
		return Success(v, sc.state)
	})
}

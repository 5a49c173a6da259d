package combinator

import "fmt"

// Unit is the value of parsers that only move the cursor or change state.
type Unit = struct{}

// Return succeeds with value without consuming input.
func Return[T, U any](value T) Parser[T, U] {
	return New(func(s State[U]) Result[T, U] {
		return Success(value, s)
	})
}

// Fail always fails without consuming input. A non-empty label is pushed onto
// the failure.
func Fail[T, U any](label string) Parser[T, U] {
	return FailWith[T, U](ErrFailed).WithLabel(label)
}

// FailWith always fails with cause without consuming input.
func FailWith[T, U any](cause error) Parser[T, U] {
	return New(func(s State[U]) Result[T, U] {
		return Failed[T](NewFailure(s, 0, cause))
	})
}

// Head consumes exactly one element.
func Head[U any]() Parser[byte, U] {
	return New(func(s State[U]) Result[byte, U] {
		if s.AtEnd() {
			return Failed[byte](NewFailure(s, 0, ErrUnexpectedEOF))
		}
		return Success(s.input[s.pos], s.advance(1))
	})
}

// ReadBuffer consumes exactly n elements and returns them as a slice aliasing
// the input.
func ReadBuffer[U any](n int) Parser[[]byte, U] {
	return New(func(s State[U]) Result[[]byte, U] {
		if n < 0 || s.Len() < n {
			return Failed[[]byte](NewFailure(s, 0, fmt.Errorf("%w: need %d, have %d", ErrUnexpectedEOF, n, s.Len())))
		}
		return Success(s.input[s.pos:s.pos+n:s.pos+n], s.advance(n))
	})
}

// Skip consumes n elements and discards them.
func Skip[U any](n int) Parser[Unit, U] {
	return Map(ReadBuffer[U](n), func([]byte) Unit { return Unit{} })
}

// Expect consumes len(want) elements that must equal want. On mismatch it fails
// at the starting state and reports the length of the matching prefix as
// consumed.
func Expect[U any](want []byte) Parser[[]byte, U] {
	return New(func(s State[U]) Result[[]byte, U] {
		rest := s.Rest()
		n := 0
		for n < len(want) && n < len(rest) && rest[n] == want[n] {
			n++
		}
		switch {
		case n == len(want):
			return Success(rest[:n:n], s.advance(n))
		case n == len(rest):
			return Failed[[]byte](NewFailure(s, n, ErrUnexpectedEOF))
		default:
			return Failed[[]byte](NewFailure(s, n, fmt.Errorf("%w: byte %d is 0x%02x, want 0x%02x", ErrMismatch, n, rest[n], want[n])))
		}
	})
}

// GetState returns the user state without consuming input.
func GetState[U any]() Parser[U, U] {
	return New(func(s State[U]) Result[U, U] {
		return Success(s.user, s)
	})
}

// SetState replaces the user state without consuming input.
func SetState[U any](user U) Parser[Unit, U] {
	return New(func(s State[U]) Result[Unit, U] {
		return Success(Unit{}, s.WithUser(user))
	})
}

// CurrentState returns the whole state without consuming input.
func CurrentState[U any]() Parser[State[U], U] {
	return New(func(s State[U]) Result[State[U], U] {
		return Success(s, s)
	})
}

// Position returns the cursor offset without consuming input.
func Position[U any]() Parser[int, U] {
	return New(func(s State[U]) Result[int, U] {
		return Success(s.pos, s)
	})
}

// Eof succeeds only at the end of input.
func Eof[U any]() Parser[Unit, U] {
	return New(func(s State[U]) Result[Unit, U] {
		if !s.AtEnd() {
			return Failed[Unit](NewFailure(s, 0, ErrNotEOF))
		}
		return Success(Unit{}, s)
	})
}

// Map transforms the value of p.
func Map[T, R, U any](p Parser[T, U], fn func(T) R) Parser[R, U] {
	return New(func(s State[U]) Result[R, U] {
		return MapValue(p.Run(s), fn)
	})
}

// Bind runs p and feeds its value to fn to obtain the next parser, which runs
// from the state after p. A failure of either step is returned as is, so it
// keeps the position and consumed count of the step that failed.
func Bind[T, R, U any](p Parser[T, U], fn func(T) Parser[R, U]) Parser[R, U] {
	return New(func(s State[U]) Result[R, U] {
		r := p.Run(s)
		if r.fail != nil {
			return Failed[R](r.fail)
		}
		return fn(r.value).Run(r.next)
	})
}

// Then runs p and then q, keeping the value of q.
func Then[T, R, U any](p Parser[T, U], q Parser[R, U]) Parser[R, U] {
	return Bind(p, func(T) Parser[R, U] { return q })
}

// Before runs p and then q, keeping the value of p.
func Before[T, R, U any](p Parser[T, U], q Parser[R, U]) Parser[T, U] {
	return Bind(p, func(v T) Parser[T, U] {
		return Map(q, func(R) T { return v })
	})
}

// Where fails with ErrPredicate when pred rejects the value of p. The failure
// is reported at the state before p ran.
func Where[T, U any](p Parser[T, U], pred func(T) bool) Parser[T, U] {
	return New(func(s State[U]) Result[T, U] {
		r := p.Run(s)
		if r.fail != nil {
			return r
		}
		if !pred(r.value) {
			return Failed[T](NewFailure(s, r.next.pos-s.pos, fmt.Errorf("%w: %v", ErrPredicate, r.value)))
		}
		return r
	})
}

// Take runs p exactly n times and collects the values. If any run fails the
// whole operation fails at the state where the failing run started, with a
// label naming the requested count.
func Take[T, U any](p Parser[T, U], n int) Parser[[]T, U] {
	return New(func(s State[U]) Result[[]T, U] {
		label := fmt.Sprintf("tried taking %d of %s", n, describe(p))
		if n < 0 {
			return Failed[[]T](NewFailure(s, 0, fmt.Errorf("%w: negative count %d", ErrRepetition, n)).Push(label))
		}
		values := make([]T, 0, min(n, 64))
		cur := s
		for i := range n {
			r := p.Run(cur)
			if r.fail != nil {
				f := &Failure[U]{
					State:    cur,
					Consumed: cur.pos - s.pos,
					Labels:   r.fail.Labels,
					Cause:    fmt.Errorf("%w: got %d of %d: %w", ErrRepetition, i, n, r.fail.Cause),
				}
				return Failed[[]T](f.Push(label))
			}
			values = append(values, r.value)
			cur = r.next
		}
		return Success(values, cur)
	})
}

// Many runs p until it fails and collects the values. It never fails; the
// returned state is the one after the last successful run. A success that
// consumes nothing ends the repetition.
func Many[T, U any](p Parser[T, U]) Parser[[]T, U] {
	return New(func(s State[U]) Result[[]T, U] {
		var values []T
		cur := s
		for {
			r := p.Run(cur)
			if r.fail != nil {
				break
			}
			values = append(values, r.value)
			if r.next.pos == cur.pos {
				cur = r.next
				break
			}
			cur = r.next
		}
		return Success(values, cur)
	})
}

// ManyTill runs p until end succeeds, consuming end. A failure of p while end
// has not matched fails the whole operation.
func ManyTill[T, E, U any](p Parser[T, U], end Parser[E, U]) Parser[[]T, U] {
	return New(func(s State[U]) Result[[]T, U] {
		var values []T
		cur := s
		for {
			if e := end.Run(cur); e.fail == nil {
				return Success(values, e.next)
			}
			r := p.Run(cur)
			if r.fail != nil {
				return Failed[[]T](r.fail)
			}
			if r.next.pos == cur.pos {
				return Failed[[]T](NewFailure(cur, 0, fmt.Errorf("%w: %s made no progress", ErrRepetition, describe(p))))
			}
			values = append(values, r.value)
			cur = r.next
		}
	})
}

// Choice tries each parser against the same input state and returns the first
// success. When all fail the last failure is returned.
func Choice[T, U any](parsers ...Parser[T, U]) Parser[T, U] {
	return New(func(s State[U]) Result[T, U] {
		last := Failed[T](NewFailure(s, 0, ErrNoAlternatives))
		for _, p := range parsers {
			last = p.Run(s)
			if last.fail == nil {
				return last
			}
		}
		return last
	})
}

// LookAhead runs p and returns its value without advancing the cursor.
func LookAhead[T, U any](p Parser[T, U]) Parser[T, U] {
	return New(func(s State[U]) Result[T, U] {
		r := p.Run(s)
		if r.fail != nil {
			return r
		}
		return Success(r.value, s)
	})
}

// Optional runs p and reports whether it matched. It never fails; when p fails
// the original state is kept.
func Optional[T, U any](p Parser[T, U]) Parser[Maybe[T], U] {
	return New(func(s State[U]) Result[Maybe[T], U] {
		r := p.Run(s)
		if r.fail != nil {
			return Success(Maybe[T]{}, s)
		}
		return Success(Maybe[T]{Value: r.value, Valid: true}, r.next)
	})
}

// Maybe is the value of Optional.
type Maybe[T any] struct {
	Value T
	Valid bool
}

func describe[T, U any](p Parser[T, U]) string {
	if p.label != "" {
		return p.label
	}
	var zero T
	return fmt.Sprintf("%T", zero)
}

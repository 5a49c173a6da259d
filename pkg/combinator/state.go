package combinator

import "fmt"

// State is an immutable cursor over the complete input plus an auxiliary user
// state. Every transition returns a new State; the input is never modified.
type State[U any] struct {
	input []byte
	pos   int
	user  U
}

// NewState creates a state positioned at the start of input.
func NewState[U any](input []byte, user U) State[U] {
	return State[U]{input: input, user: user}
}

// Pos returns the cursor offset from the start of the input.
func (s State[U]) Pos() int { return s.pos }

// Len returns the number of elements remaining after the cursor.
func (s State[U]) Len() int { return len(s.input) - s.pos }

// AtEnd reports whether the cursor is at the end of the input.
func (s State[U]) AtEnd() bool { return s.pos >= len(s.input) }

// Rest returns the unconsumed part of the input. The slice aliases the input
// and must not be modified.
func (s State[U]) Rest() []byte { return s.input[s.pos:] }

// Input returns the complete input.
func (s State[U]) Input() []byte { return s.input }

// User returns the auxiliary user state.
func (s State[U]) User() U { return s.user }

// WithUser returns a copy of s carrying a different user state.
func (s State[U]) WithUser(user U) State[U] {
	return State[U]{input: s.input, pos: s.pos, user: user}
}

// advance moves the cursor by n. Callers check bounds first.
func (s State[U]) advance(n int) State[U] {
	return State[U]{input: s.input, pos: s.pos + n, user: s.user}
}

func (s State[U]) String() string {
	return fmt.Sprintf("State(pos=%d, remaining=%d, user=%+v)", s.pos, s.Len(), s.user)
}

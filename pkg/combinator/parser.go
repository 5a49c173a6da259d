package combinator

import "fmt"

// Parser describes a parse step producing a T while threading a user state U.
// The zero Parser is not usable; build parsers with New or the combinators.
type Parser[T, U any] struct {
	fn    func(State[U]) Result[T, U]
	label string
}

// New wraps fn as an unlabeled parser.
func New[T, U any](fn func(State[U]) Result[T, U]) Parser[T, U] {
	return Parser[T, U]{fn: fn}
}

// Label returns the diagnostic label, or "" when the parser has none.
func (p Parser[T, U]) Label() string { return p.label }

// WithLabel returns a parser that pushes label onto the failure's label stack
// when it fails. Relabeling a labeled parser replaces its label instead of
// stacking a second one.
func (p Parser[T, U]) WithLabel(label string) Parser[T, U] {
	return Parser[T, U]{fn: p.fn, label: label}
}

// Run applies the parser to state.
func (p Parser[T, U]) Run(state State[U]) Result[T, U] {
	r := p.fn(state)
	if r.fail != nil && p.label != "" {
		r.fail = r.fail.Push(p.label)
	}
	return r
}

// Parse runs the parser over input from its beginning with the given user state.
func (p Parser[T, U]) Parse(input []byte, user U) Result[T, U] {
	return p.Run(NewState(input, user))
}

func (p Parser[T, U]) String() string {
	var zero T
	if p.label == "" {
		return fmt.Sprintf("Parser[%T]", zero)
	}
	return fmt.Sprintf("Parser[%T] <?> %q", zero, p.label)
}

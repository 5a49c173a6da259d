package combinator

import "errors"

// Sentinel errors describing why a parser failed. They are reachable through
// errors.Is on a *Failure.
var (
	ErrUnexpectedEOF      = errors.New("unexpected end of input")
	ErrMismatch           = errors.New("mismatched input")
	ErrRepetition         = errors.New("too few repetitions")
	ErrPredicate          = errors.New("value rejected")
	ErrMalformedCodepoint = errors.New("malformed codepoint")
	ErrNoAlternatives     = errors.New("no alternatives")
	ErrNotEOF             = errors.New("expected end of input")
	ErrFailed             = errors.New("parser failed")
)

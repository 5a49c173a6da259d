// Package combinator provides a small parser-combinator engine over byte slices.
//
// A Parser[T, U] is a pure function from an immutable State[U] to a Result[T, U].
// The state is a read-only view of the complete input, a cursor position and an
// auxiliary user-state value of type U that is threaded through every step
// unchanged unless SetState replaces it.
//
// # Composition
//
// Parsers are combined with higher-order functions:
//
//	version := combinator.Then(
//	    combinator.Expect[Format](magic).WithLabel("Signature"),
//	    combinator.U32LE[Format]().WithLabel("Version"),
//	)
//
// Sequencing short-circuits on the first failure. Longer pipelines can be written
// as straight-line Go code with Do and Step:
//
//	p := combinator.Do(func(sc *combinator.Scope[Format]) (Header, error) {
//	    n, err := combinator.Step(sc, combinator.U16LE[Format]())
//	    if err != nil {
//	        return Header{}, err
//	    }
//	    name, err := combinator.Step(sc, combinator.ReadBuffer[Format](int(n)))
//	    if err != nil {
//	        return Header{}, err
//	    }
//	    return Header{Name: string(name)}, nil
//	})
//
// # Failures
//
// A failed parse yields a *Failure carrying the state at the point of failure,
// the number of elements consumed by the failing parser, and a stack of labels.
// Each parser created with WithLabel pushes its label as the failure unwinds, so
// the rendered path reads from the outermost to the innermost parser:
//
//	File Header > Signature: mismatched input: byte 3 is 0x41, want 0x64 at offset 0
//
// A Failure is an error; its kind is exposed through Unwrap so callers can use
// errors.Is with the sentinel errors of this package.
package combinator

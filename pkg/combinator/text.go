package combinator

import (
	"bytes"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
)

// maxCodepointBytes bounds the bytes any supported encoding needs for one
// scalar value (UTF-8, a UTF-16 surrogate pair, UTF-32).
const maxCodepointBytes = 4

// ReadCodepoint decodes one Unicode scalar value in enc, consuming exactly the
// bytes that encode it. Encodings that emit a byte order mark are not supported;
// use the IgnoreBOM variants.
func ReadCodepoint[U any](enc encoding.Encoding) Parser[rune, U] {
	return New(func(s State[U]) Result[rune, U] {
		rest := s.Rest()
		if len(rest) == 0 {
			return Failed[rune](NewFailure(s, 0, ErrUnexpectedEOF))
		}
		probe := rest[:min(len(rest), maxCodepointBytes)]

		var dst [maxCodepointBytes * 4]byte
		nDst, _, _ := enc.NewDecoder().Transform(dst[:], probe, true)
		if nDst == 0 {
			return Failed[rune](NewFailure(s, 0, ErrMalformedCodepoint))
		}
		r, _ := utf8.DecodeRune(dst[:nDst])

		// Re-encoding the rune gives its width in the source encoding and
		// rejects replacement characters produced for truncated or invalid input.
		unit, err := enc.NewEncoder().Bytes([]byte(string(r)))
		if err != nil || len(unit) == 0 || !bytes.HasPrefix(rest, unit) {
			return Failed[rune](NewFailure(s, 0, ErrMalformedCodepoint))
		}
		return Success(r, s.advance(len(unit)))
	})
}

// UTF8Codepoint decodes one UTF-8 encoded scalar value.
func UTF8Codepoint[U any]() Parser[rune, U] {
	return ReadCodepoint[U](unicode.UTF8)
}

// Text collects runes into a string.
func Text[U any](p Parser[[]rune, U]) Parser[string, U] {
	return Map(p, func(rs []rune) string { return string(rs) })
}

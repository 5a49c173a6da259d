package fbx

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/flate"

	"github.com/twinfer/kfbx/pkg/combinator"
)

// Array payload encodings.
const (
	ArrayUncompressed uint32 = 0
	ArrayDeflate      uint32 = 1
)

// zlibHeaderSize is the stream header that precedes the DEFLATE data of a
// compressed payload. The trailing checksum is left unread.
const zlibHeaderSize = 2

// maxDeflateRatio bounds how many bytes one compressed byte can inflate to.
const maxDeflateRatio = 1032

// arrayPayload reads the array header and returns the element bytes, inflated
// when the payload is compressed.
func arrayPayload(t PropertyType) combinator.Parser[[]byte, Format] {
	size := uint64(t.ElementSize())
	return combinator.Do(func(sc *combinator.Scope[Format]) ([]byte, error) {
		count, err := combinator.Step(sc, u32.WithLabel("Array Length"))
		if err != nil {
			return nil, err
		}
		encoding, err := combinator.Step(sc, u32.WithLabel("Encoding"))
		if err != nil {
			return nil, err
		}
		compressedLen, err := combinator.Step(sc, u32.WithLabel("Compressed Length"))
		if err != nil {
			return nil, err
		}

		want := uint64(count) * size
		switch encoding {
		case ArrayUncompressed:
			return combinator.Step(sc, combinator.ReadBuffer[Format](int(want)).WithLabel("Payload"))
		case ArrayDeflate:
			if want > uint64(compressedLen)*maxDeflateRatio {
				return nil, fmt.Errorf("%w: %d bytes cannot inflate from %d", ErrArrayLength, want, compressedLen)
			}
			payload, err := combinator.Step(sc, combinator.ReadBuffer[Format](int(compressedLen)).WithLabel("Payload"))
			if err != nil {
				return nil, err
			}
			return inflate(payload, want)
		default:
			return nil, fmt.Errorf("%w: %d", ErrArrayEncoding, encoding)
		}
	})
}

// inflate skips the stream header of payload and inflates the DEFLATE data,
// which must produce exactly want bytes.
func inflate(payload []byte, want uint64) ([]byte, error) {
	if len(payload) < zlibHeaderSize {
		return nil, fmt.Errorf("%w: %d byte payload has no stream header", ErrInflate, len(payload))
	}
	r := flate.NewReader(bytes.NewReader(payload[zlibHeaderSize:]))
	defer r.Close()

	out, err := io.ReadAll(io.LimitReader(r, int64(want)+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInflate, err)
	}
	if uint64(len(out)) != want {
		return nil, fmt.Errorf("%w: inflated %d bytes, want %d", ErrArrayLength, len(out), want)
	}
	return out, nil
}

// arrayProperty decodes the element bytes of an array property with elem
// repeated over the whole buffer.
func arrayProperty[T any](t PropertyType, elem combinator.Parser[T, Format], wrap func([]T) Property) combinator.Parser[Property, Format] {
	payload := arrayPayload(t)
	elems := combinator.Many(elem)
	return combinator.Do(func(sc *combinator.Scope[Format]) (Property, error) {
		buf, err := combinator.Step(sc, payload)
		if err != nil {
			return Property{}, err
		}
		values := elems.Parse(buf, sc.User()).Value()
		if want := len(buf) / t.ElementSize(); len(values) != want {
			return Property{}, fmt.Errorf("%w: decoded %d elements, want %d", ErrArrayLength, len(values), want)
		}
		if values == nil {
			values = []T{}
		}
		return wrap(values), nil
	})
}

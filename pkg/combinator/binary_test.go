package combinator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run[T any](t *testing.T, p Parser[T, none], input []byte) T {
	t.Helper()
	r := p.Parse(input, none{})
	require.True(t, r.OK(), "parse failed: %v", r.Err())
	assert.Equal(t, len(input), r.Next().Pos())
	return r.Value()
}

func TestIntegers(t *testing.T) {
	assert.Equal(t, int16(-2), run(t, I16LE[none](), []byte{0xFE, 0xFF}))
	assert.Equal(t, int16(-2), run(t, I16BE[none](), []byte{0xFF, 0xFE}))
	assert.Equal(t, uint16(0x0102), run(t, U16BE[none](), []byte{0x01, 0x02}))
	assert.Equal(t, uint16(0x0201), run(t, U16LE[none](), []byte{0x01, 0x02}))
	assert.Equal(t, int32(-1), run(t, I32LE[none](), []byte{0xFF, 0xFF, 0xFF, 0xFF}))
	assert.Equal(t, int32(1), run(t, I32BE[none](), []byte{0, 0, 0, 1}))
	assert.Equal(t, uint32(7400), run(t, U32LE[none](), []byte{0xE8, 0x1C, 0, 0}))
	assert.Equal(t, uint32(0x01020304), run(t, U32BE[none](), []byte{1, 2, 3, 4}))
	assert.Equal(t, int64(-2), run(t, I64LE[none](), []byte{0xFE, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}))
	assert.Equal(t, int64(256), run(t, I64BE[none](), []byte{0, 0, 0, 0, 0, 0, 1, 0}))
	assert.Equal(t, uint64(1), run(t, U64LE[none](), []byte{1, 0, 0, 0, 0, 0, 0, 0}))
	assert.Equal(t, uint64(math.MaxUint64), run(t, U64BE[none](), []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}))
}

func TestFloatsReinterpretBits(t *testing.T) {
	assert.Equal(t, float32(1.5), run(t, F32LE[none](), []byte{0x00, 0x00, 0xC0, 0x3F}))
	assert.Equal(t, float32(1.5), run(t, F32BE[none](), []byte{0x3F, 0xC0, 0x00, 0x00}))
	assert.Equal(t, 2.0, run(t, F64BE[none](), []byte{0x40, 0, 0, 0, 0, 0, 0, 0}))
	assert.Equal(t, -0.5, run(t, F64LE[none](), []byte{0, 0, 0, 0, 0, 0, 0xE0, 0xBF}))

	nan := run(t, F32LE[none](), []byte{0x00, 0x00, 0xC0, 0x7F})
	assert.True(t, math.IsNaN(float64(nan)))
}

func TestFixedWidthUnderrun(t *testing.T) {
	r := I32LE[none]().Parse([]byte{1, 2, 3}, none{})
	require.False(t, r.OK())
	assert.ErrorIs(t, r.Err(), ErrUnexpectedEOF)
	assert.Equal(t, 0, r.Failure().Offset())

	r2 := F64LE[none]().Parse(make([]byte, 7), none{})
	assert.ErrorIs(t, r2.Err(), ErrUnexpectedEOF)
}

package combinator

import (
	"encoding/binary"
	"math"
)

func fixed[T, U any](size int, decode func([]byte) T) Parser[T, U] {
	return Map(ReadBuffer[U](size), decode)
}

// I16LE reads a little-endian signed 16-bit integer.
func I16LE[U any]() Parser[int16, U] {
	return fixed[int16, U](2, func(b []byte) int16 { return int16(binary.LittleEndian.Uint16(b)) })
}

// I16BE reads a big-endian signed 16-bit integer.
func I16BE[U any]() Parser[int16, U] {
	return fixed[int16, U](2, func(b []byte) int16 { return int16(binary.BigEndian.Uint16(b)) })
}

// U16LE reads a little-endian unsigned 16-bit integer.
func U16LE[U any]() Parser[uint16, U] {
	return fixed[uint16, U](2, binary.LittleEndian.Uint16)
}

// U16BE reads a big-endian unsigned 16-bit integer.
func U16BE[U any]() Parser[uint16, U] {
	return fixed[uint16, U](2, binary.BigEndian.Uint16)
}

// I32LE reads a little-endian signed 32-bit integer.
func I32LE[U any]() Parser[int32, U] {
	return fixed[int32, U](4, func(b []byte) int32 { return int32(binary.LittleEndian.Uint32(b)) })
}

// I32BE reads a big-endian signed 32-bit integer.
func I32BE[U any]() Parser[int32, U] {
	return fixed[int32, U](4, func(b []byte) int32 { return int32(binary.BigEndian.Uint32(b)) })
}

// U32LE reads a little-endian unsigned 32-bit integer.
func U32LE[U any]() Parser[uint32, U] {
	return fixed[uint32, U](4, binary.LittleEndian.Uint32)
}

// U32BE reads a big-endian unsigned 32-bit integer.
func U32BE[U any]() Parser[uint32, U] {
	return fixed[uint32, U](4, binary.BigEndian.Uint32)
}

// I64LE reads a little-endian signed 64-bit integer.
func I64LE[U any]() Parser[int64, U] {
	return fixed[int64, U](8, func(b []byte) int64 { return int64(binary.LittleEndian.Uint64(b)) })
}

// I64BE reads a big-endian signed 64-bit integer.
func I64BE[U any]() Parser[int64, U] {
	return fixed[int64, U](8, func(b []byte) int64 { return int64(binary.BigEndian.Uint64(b)) })
}

// U64LE reads a little-endian unsigned 64-bit integer.
func U64LE[U any]() Parser[uint64, U] {
	return fixed[uint64, U](8, binary.LittleEndian.Uint64)
}

// U64BE reads a big-endian unsigned 64-bit integer.
func U64BE[U any]() Parser[uint64, U] {
	return fixed[uint64, U](8, binary.BigEndian.Uint64)
}

// Floats reinterpret the bits of the integer read of the same width.

// F32LE reads a little-endian IEEE-754 single.
func F32LE[U any]() Parser[float32, U] { return Map(U32LE[U](), math.Float32frombits) }

// F32BE reads a big-endian IEEE-754 single.
func F32BE[U any]() Parser[float32, U] { return Map(U32BE[U](), math.Float32frombits) }

// F64LE reads a little-endian IEEE-754 double.
func F64LE[U any]() Parser[float64, U] { return Map(U64LE[U](), math.Float64frombits) }

// F64BE reads a big-endian IEEE-754 double.
func F64BE[U any]() Parser[float64, U] { return Map(U64BE[U](), math.Float64frombits) }

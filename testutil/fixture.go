// Package testutil builds binary FBX byte streams for tests.
package testutil

import (
	"bytes"
	"encoding/binary"
	"math"

	"github.com/klauspost/compress/zlib"
)

const signature = "Kaydara FBX Binary  \x00"

// Prop is an encoded property record: a type code and its payload.
type Prop struct {
	Code    byte
	Payload []byte
}

// Bytes returns the wire form of the property.
func (p Prop) Bytes() []byte {
	return append([]byte{p.Code}, p.Payload...)
}

// Node describes a node record to encode.
type Node struct {
	Name     string
	Props    []Prop
	Children []Node
	// NullRecord appends the null record that ends the child list.
	NullRecord bool
}

// Header returns the 27-byte file header for version.
func Header(version uint32) []byte {
	b := append([]byte(signature), 0x1A, 0x00)
	return binary.LittleEndian.AppendUint32(b, version)
}

// File encodes a complete file: the header followed by nodes. When terminate
// is set the top-level null record is appended.
func File(version uint32, terminate bool, nodes ...Node) []byte {
	out := Header(version)
	for _, n := range nodes {
		out = append(out, EncodeNode(version, int64(len(out)), n)...)
	}
	if terminate {
		out = append(out, NullRecord(version)...)
	}
	return out
}

// NullRecord returns the all-zero record for version.
func NullRecord(version uint32) []byte {
	if wide(version) {
		return make([]byte, 25)
	}
	return make([]byte, 13)
}

func wide(version uint32) bool { return version > 7400 }

// EncodeNode encodes n as if it started at absolute offset base.
func EncodeNode(version uint32, base int64, n Node) []byte {
	fieldSize := 4
	if wide(version) {
		fieldSize = 8
	}
	var props []byte
	for _, p := range n.Props {
		props = append(props, p.Bytes()...)
	}
	headerLen := 3*fieldSize + 1 + len(n.Name)

	var body []byte
	offset := base + int64(headerLen+len(props))
	for _, c := range n.Children {
		enc := EncodeNode(version, offset, c)
		body = append(body, enc...)
		offset += int64(len(enc))
	}
	if n.NullRecord {
		body = append(body, NullRecord(version)...)
		offset += int64(len(NullRecord(version)))
	}

	out := make([]byte, 0, headerLen+len(props)+len(body))
	out = appendField(out, fieldSize, offset)
	out = appendField(out, fieldSize, int64(len(n.Props)))
	out = appendField(out, fieldSize, int64(len(props)))
	out = append(out, byte(len(n.Name)))
	out = append(out, n.Name...)
	out = append(out, props...)
	return append(out, body...)
}

func appendField(b []byte, size int, v int64) []byte {
	if size == 8 {
		return binary.LittleEndian.AppendUint64(b, uint64(v))
	}
	return binary.LittleEndian.AppendUint32(b, uint32(int32(v)))
}

func Bool(v bool) Prop {
	if v {
		return Prop{'C', []byte{1}}
	}
	return Prop{'C', []byte{0}}
}

func Int16(v int16) Prop { return Prop{'Y', binary.LittleEndian.AppendUint16(nil, uint16(v))} }
func Int32(v int32) Prop { return Prop{'I', binary.LittleEndian.AppendUint32(nil, uint32(v))} }
func Int64(v int64) Prop { return Prop{'L', binary.LittleEndian.AppendUint64(nil, uint64(v))} }

func Float32(v float32) Prop {
	return Prop{'F', binary.LittleEndian.AppendUint32(nil, math.Float32bits(v))}
}

func Float64(v float64) Prop {
	return Prop{'D', binary.LittleEndian.AppendUint64(nil, math.Float64bits(v))}
}

func String(s string) Prop { return Prop{'S', sized([]byte(s))} }
func Raw(b []byte) Prop    { return Prop{'R', sized(b)} }

func sized(b []byte) []byte {
	out := binary.LittleEndian.AppendUint32(nil, uint32(len(b)))
	return append(out, b...)
}

// Array returns an uncompressed array property with the given code, element
// count and element bytes.
func Array(code byte, count int, elems []byte) Prop {
	p := binary.LittleEndian.AppendUint32(nil, uint32(count))
	p = binary.LittleEndian.AppendUint32(p, 0)
	p = binary.LittleEndian.AppendUint32(p, uint32(len(elems)))
	return Prop{code, append(p, elems...)}
}

func BoolArray(vs ...bool) Prop {
	elems := make([]byte, len(vs))
	for i, v := range vs {
		if v {
			elems[i] = 1
		}
	}
	return Array('b', len(vs), elems)
}

func Int32Array(vs ...int32) Prop {
	var elems []byte
	for _, v := range vs {
		elems = binary.LittleEndian.AppendUint32(elems, uint32(v))
	}
	return Array('i', len(vs), elems)
}

func Int64Array(vs ...int64) Prop {
	var elems []byte
	for _, v := range vs {
		elems = binary.LittleEndian.AppendUint64(elems, uint64(v))
	}
	return Array('l', len(vs), elems)
}

func Float32Array(vs ...float32) Prop {
	var elems []byte
	for _, v := range vs {
		elems = binary.LittleEndian.AppendUint32(elems, math.Float32bits(v))
	}
	return Array('f', len(vs), elems)
}

func Float64Array(vs ...float64) Prop {
	var elems []byte
	for _, v := range vs {
		elems = binary.LittleEndian.AppendUint64(elems, math.Float64bits(v))
	}
	return Array('d', len(vs), elems)
}

// Deflated re-encodes an uncompressed array property with a zlib stream
// payload.
func Deflated(p Prop) Prop {
	count := p.Payload[:4]
	z := Zlib(p.Payload[12:])
	out := append([]byte{}, count...)
	out = binary.LittleEndian.AppendUint32(out, 1)
	out = binary.LittleEndian.AppendUint32(out, uint32(len(z)))
	return Prop{p.Code, append(out, z...)}
}

// Zlib compresses data into a zlib stream: a 2-byte header, DEFLATE data and
// a checksum.
func Zlib(data []byte) []byte {
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		panic(err)
	}
	if err := w.Close(); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

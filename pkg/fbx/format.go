package fbx

import (
	"fmt"

	"github.com/twinfer/kfbx/pkg/combinator"
)

// Signature is the literal that opens every binary FBX file.
const Signature = "Kaydara FBX Binary  \x00"

// HeaderSize is the length of the file header: signature, two reserved bytes
// and the version.
const HeaderSize = len(Signature) + 2 + 4

// WideOffsetVersion is the last version whose node records use 32-bit offset
// and count fields. Later versions use 64-bit fields.
const WideOffsetVersion = 7400

// NullRecordSize is the size of the record that ends a child list in files
// with 32-bit node fields. Its meaning as a fixed-size "no more children"
// marker is taken from observed files, not from a published format description.
const NullRecordSize = 13

// wideNullRecordSize is the size of the all-zero end record in files with
// 64-bit node fields.
const wideNullRecordSize = 25

var reservedBytes = []byte{0x1A, 0x00}

// Format is the user state threaded through the parse.
type Format struct {
	Version uint32 `json:"version" yaml:"version"`
}

// WideOffsets reports whether node records use 64-bit offset and count fields.
func (f Format) WideOffsets() bool { return f.Version > WideOffsetVersion }

func (f Format) String() string {
	return fmt.Sprintf("FBX %d.%d", f.Version/1000, f.Version%1000/100)
}

var (
	offset32 = combinator.Map(combinator.I32LE[Format](), func(v int32) int64 { return int64(v) })
	offset64 = combinator.I64LE[Format]()
)

// offsetField returns the reader for node offset and count fields.
func (f Format) offsetField() combinator.Parser[int64, Format] {
	if f.WideOffsets() {
		return offset64
	}
	return offset32
}

// HeaderParser matches the signature and reserved bytes and reads the version.
func HeaderParser() combinator.Parser[Format, Format] {
	return combinator.Then(
		combinator.Expect[Format]([]byte(Signature)).WithLabel("Signature"),
		combinator.Then(
			combinator.Expect[Format](reservedBytes).WithLabel("Reserved Bytes"),
			combinator.Map(combinator.U32LE[Format]().WithLabel("Version"), func(v uint32) Format {
				return Format{Version: v}
			}),
		),
	).WithLabel("File Header")
}

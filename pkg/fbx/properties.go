package fbx

import (
	"bytes"
	"fmt"

	"github.com/kaitai-io/kaitai_struct_go_runtime/kaitai"
	"golang.org/x/text/encoding/unicode"

	"github.com/twinfer/kfbx/pkg/combinator"
)

var (
	u32 = combinator.U32LE[Format]()

	boolProp    = combinator.Map(combinator.Head[Format](), func(b byte) Property { return NewBool(b == 1) })
	int16Prop   = combinator.Map(combinator.I16LE[Format](), NewInt16)
	int32Prop   = combinator.Map(combinator.I32LE[Format](), NewInt32)
	int64Prop   = combinator.Map(combinator.I64LE[Format](), NewInt64)
	float32Prop = combinator.Map(combinator.F32LE[Format](), NewFloat32)
	float64Prop = combinator.Map(combinator.F64LE[Format](), NewFloat64)

	stringProp = combinator.Do(func(sc *combinator.Scope[Format]) (Property, error) {
		buf, err := combinator.Step(sc, sizedBuffer)
		if err != nil {
			return Property{}, err
		}
		s, err := kaitai.BytesToStr(buf, unicode.UTF8.NewDecoder())
		if err != nil {
			return Property{}, fmt.Errorf("decoding string: %w", err)
		}
		return NewString(s), nil
	})

	rawProp = combinator.Map(sizedBuffer, func(b []byte) Property { return NewRaw(bytes.Clone(b)) })

	boolArrayProp = arrayProperty(TypeBoolArray,
		combinator.Map(combinator.Head[Format](), func(b byte) bool { return b == 1 }), NewBoolArray)
	int32ArrayProp   = arrayProperty(TypeInt32Array, combinator.I32LE[Format](), NewInt32Array)
	int64ArrayProp   = arrayProperty(TypeInt64Array, combinator.I64LE[Format](), NewInt64Array)
	float32ArrayProp = arrayProperty(TypeFloat32Array, combinator.F32LE[Format](), NewFloat32Array)
	float64ArrayProp = arrayProperty(TypeFloat64Array, combinator.F64LE[Format](), NewFloat64Array)

	// sizedBuffer reads a 4-byte length followed by that many bytes.
	sizedBuffer = combinator.Bind(u32.WithLabel("Length"), func(n uint32) combinator.Parser[[]byte, Format] {
		return combinator.ReadBuffer[Format](int(n))
	})

	propertyRecord = combinator.Bind(combinator.Head[Format]().WithLabel("Type Code"),
		func(code byte) combinator.Parser[Property, Format] {
			t := PropertyType(code)
			dec, ok := propertyDecoder(t)
			if !ok {
				return combinator.FailWith[Property, Format](fmt.Errorf("%w: 0x%02x", ErrUnknownPropertyType, code))
			}
			return dec.WithLabel(t.String() + " data")
		}).WithLabel("Property")
)

// propertyDecoder returns the payload parser for t.
func propertyDecoder(t PropertyType) (combinator.Parser[Property, Format], bool) {
	switch t {
	case TypeBool:
		return boolProp, true
	case TypeInt16:
		return int16Prop, true
	case TypeInt32:
		return int32Prop, true
	case TypeInt64:
		return int64Prop, true
	case TypeFloat32:
		return float32Prop, true
	case TypeFloat64:
		return float64Prop, true
	case TypeString:
		return stringProp, true
	case TypeRaw:
		return rawProp, true
	case TypeBoolArray:
		return boolArrayProp, true
	case TypeInt32Array:
		return int32ArrayProp, true
	case TypeInt64Array:
		return int64ArrayProp, true
	case TypeFloat32Array:
		return float32ArrayProp, true
	case TypeFloat64Array:
		return float64ArrayProp, true
	}
	return combinator.Parser[Property, Format]{}, false
}

// PropertyParser reads one property record: a type code and its payload.
func PropertyParser() combinator.Parser[Property, Format] {
	return propertyRecord
}

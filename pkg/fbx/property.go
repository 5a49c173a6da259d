package fbx

import (
	"bytes"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

// PropertyType is the single-byte wire code that precedes a property payload.
type PropertyType byte

const (
	TypeBool         PropertyType = 'C'
	TypeInt16        PropertyType = 'Y'
	TypeInt32        PropertyType = 'I'
	TypeInt64        PropertyType = 'L'
	TypeFloat32      PropertyType = 'F'
	TypeFloat64      PropertyType = 'D'
	TypeString       PropertyType = 'S'
	TypeRaw          PropertyType = 'R'
	TypeBoolArray    PropertyType = 'b'
	TypeInt32Array   PropertyType = 'i'
	TypeInt64Array   PropertyType = 'l'
	TypeFloat32Array PropertyType = 'f'
	TypeFloat64Array PropertyType = 'd'
)

func (t PropertyType) String() string {
	switch t {
	case TypeBool:
		return "Bool"
	case TypeInt16:
		return "Int16"
	case TypeInt32:
		return "Int32"
	case TypeInt64:
		return "Int64"
	case TypeFloat32:
		return "Float32"
	case TypeFloat64:
		return "Float64"
	case TypeString:
		return "String"
	case TypeRaw:
		return "Raw"
	case TypeBoolArray:
		return "BoolArr"
	case TypeInt32Array:
		return "Int32Arr"
	case TypeInt64Array:
		return "Int64Arr"
	case TypeFloat32Array:
		return "Float32Arr"
	case TypeFloat64Array:
		return "Float64Arr"
	}
	return fmt.Sprintf("PropertyType(0x%02x)", byte(t))
}

// IsArray reports whether t is one of the array types.
func (t PropertyType) IsArray() bool {
	switch t {
	case TypeBoolArray, TypeInt32Array, TypeInt64Array, TypeFloat32Array, TypeFloat64Array:
		return true
	}
	return false
}

// ElementSize returns the byte width of one array element, or 0 for scalar
// and unknown types.
func (t PropertyType) ElementSize() int {
	switch t {
	case TypeBoolArray:
		return 1
	case TypeInt32Array, TypeFloat32Array:
		return 4
	case TypeInt64Array, TypeFloat64Array:
		return 8
	}
	return 0
}

// Property is one positional value of a node. It holds exactly one of the
// variants named by its PropertyType.
type Property struct {
	typ PropertyType
	v   any
}

// NewBool returns a TypeBool property.
func NewBool(v bool) Property { return Property{TypeBool, v} }

// NewInt16 returns a TypeInt16 property.
func NewInt16(v int16) Property { return Property{TypeInt16, v} }

// NewInt32 returns a TypeInt32 property.
func NewInt32(v int32) Property { return Property{TypeInt32, v} }

// NewInt64 returns a TypeInt64 property.
func NewInt64(v int64) Property { return Property{TypeInt64, v} }

// NewFloat32 returns a TypeFloat32 property.
func NewFloat32(v float32) Property { return Property{TypeFloat32, v} }

// NewFloat64 returns a TypeFloat64 property.
func NewFloat64(v float64) Property { return Property{TypeFloat64, v} }

// NewString returns a TypeString property.
func NewString(v string) Property { return Property{TypeString, v} }

// NewRaw returns a TypeRaw property holding v without copying it.
func NewRaw(v []byte) Property { return Property{TypeRaw, v} }

// NewBoolArray returns a TypeBoolArray property.
func NewBoolArray(v []bool) Property { return Property{TypeBoolArray, v} }

// NewInt32Array returns a TypeInt32Array property.
func NewInt32Array(v []int32) Property { return Property{TypeInt32Array, v} }

// NewInt64Array returns a TypeInt64Array property.
func NewInt64Array(v []int64) Property { return Property{TypeInt64Array, v} }

// NewFloat32Array returns a TypeFloat32Array property.
func NewFloat32Array(v []float32) Property { return Property{TypeFloat32Array, v} }

// NewFloat64Array returns a TypeFloat64Array property.
func NewFloat64Array(v []float64) Property { return Property{TypeFloat64Array, v} }

// Type returns the wire type code the property was decoded from.
func (p Property) Type() PropertyType { return p.typ }

// Value returns the payload as its Go type (bool, int16, ..., []float64).
func (p Property) Value() any { return p.v }

// Bool returns the payload of a TypeBool property.
func (p Property) Bool() (bool, bool) { v, ok := p.v.(bool); return v, ok }

// Int16 returns the payload of a TypeInt16 property.
func (p Property) Int16() (int16, bool) { v, ok := p.v.(int16); return v, ok }

// Int32 returns the payload of a TypeInt32 property.
func (p Property) Int32() (int32, bool) { v, ok := p.v.(int32); return v, ok }

// Int64 returns the payload of a TypeInt64 property.
func (p Property) Int64() (int64, bool) { v, ok := p.v.(int64); return v, ok }

// Float32 returns the payload of a TypeFloat32 property.
func (p Property) Float32() (float32, bool) { v, ok := p.v.(float32); return v, ok }

// Float64 returns the payload of a TypeFloat64 property.
func (p Property) Float64() (float64, bool) { v, ok := p.v.(float64); return v, ok }

// Text returns the payload of a TypeString property.
func (p Property) Text() (string, bool) { v, ok := p.v.(string); return v, ok }

// Bytes returns the payload of a TypeRaw property.
func (p Property) Bytes() ([]byte, bool) { v, ok := p.v.([]byte); return v, ok }

// BoolArray returns the elements of a TypeBoolArray property.
func (p Property) BoolArray() ([]bool, bool) { v, ok := p.v.([]bool); return v, ok }

// Int32Array returns the elements of a TypeInt32Array property.
func (p Property) Int32Array() ([]int32, bool) { v, ok := p.v.([]int32); return v, ok }

// Int64Array returns the elements of a TypeInt64Array property.
func (p Property) Int64Array() ([]int64, bool) { v, ok := p.v.([]int64); return v, ok }

// Float32Array returns the elements of a TypeFloat32Array property.
func (p Property) Float32Array() ([]float32, bool) { v, ok := p.v.([]float32); return v, ok }

// Float64Array returns the elements of a TypeFloat64Array property.
func (p Property) Float64Array() ([]float64, bool) { v, ok := p.v.([]float64); return v, ok }

// Int returns any scalar integer property widened to int64.
func (p Property) Int() (int64, bool) {
	switch v := p.v.(type) {
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	}
	return 0, false
}

// Len returns the element count of an array property and -1 otherwise.
func (p Property) Len() int {
	switch v := p.v.(type) {
	case []bool:
		return len(v)
	case []int32:
		return len(v)
	case []int64:
		return len(v)
	case []float32:
		return len(v)
	case []float64:
		return len(v)
	}
	return -1
}

// Equal reports whether p and o have the same type and payload.
func (p Property) Equal(o Property) bool {
	if p.typ != o.typ {
		return false
	}
	switch v := p.v.(type) {
	case []byte:
		w, _ := o.v.([]byte)
		return bytes.Equal(v, w)
	case []bool:
		w, _ := o.v.([]bool)
		return slices.Equal(v, w)
	case []int32:
		w, _ := o.v.([]int32)
		return slices.Equal(v, w)
	case []int64:
		w, _ := o.v.([]int64)
		return slices.Equal(v, w)
	case []float32:
		w, _ := o.v.([]float32)
		return slices.Equal(v, w)
	case []float64:
		w, _ := o.v.([]float64)
		return slices.Equal(v, w)
	}
	return p.v == o.v
}

// String renders the payload as text: raw bytes as dash-separated hex, arrays
// as comma-separated elements.
func (p Property) String() string {
	switch v := p.v.(type) {
	case []byte:
		parts := make([]string, len(v))
		for i, b := range v {
			parts[i] = fmt.Sprintf("%02X", b)
		}
		return strings.Join(parts, "-")
	case string:
		return v
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case []bool:
		return joinElems(v)
	case []int32:
		return joinElems(v)
	case []int64:
		return joinElems(v)
	case []float32:
		return joinElems(v)
	case []float64:
		return joinElems(v)
	}
	return fmt.Sprint(p.v)
}

func joinElems[T any](vs []T) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, ", ")
}

type propertyDoc struct {
	Type  string `json:"type" yaml:"type"`
	Value any    `json:"value" yaml:"value"`
}

// MarshalJSON encodes p as {"type": ..., "value": ...}. JSON has no literal
// for NaN or infinity, so non-finite floats are written as the strings "NaN",
// "+Inf" and "-Inf".
func (p Property) MarshalJSON() ([]byte, error) {
	return json.Marshal(propertyDoc{Type: p.typ.String(), Value: JSONValue(p.v)})
}

// JSONValue returns v with every non-finite float32 or float64, scalar or
// array element, replaced by its strconv spelling. Other values are returned
// unchanged.
func JSONValue(v any) any {
	switch v := v.(type) {
	case float32:
		return finiteOr(v)
	case float64:
		return finiteOr(v)
	case []float32:
		return floatElems(v)
	case []float64:
		return floatElems(v)
	}
	return v
}

func nonFinite[T float32 | float64](f T) bool {
	return math.IsNaN(float64(f)) || math.IsInf(float64(f), 0)
}

func finiteOr[T float32 | float64](f T) any {
	if nonFinite(f) {
		return strconv.FormatFloat(float64(f), 'g', -1, 64)
	}
	return f
}

func floatElems[T float32 | float64](vs []T) any {
	if !slices.ContainsFunc(vs, nonFinite[T]) {
		return vs
	}
	out := make([]any, len(vs))
	for i, f := range vs {
		out[i] = finiteOr(f)
	}
	return out
}

func (p Property) MarshalYAML() (any, error) {
	if _, ok := p.v.([]byte); ok {
		return propertyDoc{Type: p.typ.String(), Value: p.String()}, nil
	}
	return propertyDoc{Type: p.typ.String(), Value: p.v}, nil
}

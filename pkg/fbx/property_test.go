package fbx

import (
	"math"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestPropertyTypeNames(t *testing.T) {
	assert.Equal(t, "Int32", TypeInt32.String())
	assert.Equal(t, "BoolArr", TypeBoolArray.String())
	assert.Equal(t, "PropertyType(0x00)", PropertyType(0).String())

	for _, typ := range []PropertyType{TypeBoolArray, TypeInt32Array, TypeInt64Array, TypeFloat32Array, TypeFloat64Array} {
		assert.True(t, typ.IsArray(), typ.String())
		assert.Positive(t, typ.ElementSize())
	}
	for _, typ := range []PropertyType{TypeBool, TypeInt16, TypeInt32, TypeInt64, TypeFloat32, TypeFloat64, TypeString, TypeRaw} {
		assert.False(t, typ.IsArray(), typ.String())
		assert.Zero(t, typ.ElementSize())
	}
}

func TestPropertyString(t *testing.T) {
	tests := []struct {
		p    Property
		want string
	}{
		{NewBool(true), "true"},
		{NewInt16(-7), "-7"},
		{NewInt64(1 << 40), "1099511627776"},
		{NewFloat32(0.1), "0.1"},
		{NewFloat64(2.5), "2.5"},
		{NewString("Cube"), "Cube"},
		{NewRaw([]byte{0x0A, 0xFF, 0x00}), "0A-FF-00"},
		{NewRaw(nil), ""},
		{NewInt32Array([]int32{1, 2, 3}), "1, 2, 3"},
		{NewBoolArray([]bool{true, false}), "true, false"},
		{NewFloat64Array([]float64{0.5}), "0.5"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.p.String())
	}
}

func TestPropertyAccessors(t *testing.T) {
	p := NewInt32(9)
	v, ok := p.Int32()
	assert.True(t, ok)
	assert.Equal(t, int32(9), v)
	_, ok = p.Int64()
	assert.False(t, ok)

	n, ok := p.Int()
	assert.True(t, ok)
	assert.Equal(t, int64(9), n)
	_, ok = NewString("x").Int()
	assert.False(t, ok)

	assert.Equal(t, -1, p.Len())
	assert.Equal(t, 2, NewInt64Array([]int64{1, 2}).Len())
	assert.Equal(t, int32(9), p.Value())
}

func TestPropertyEqual(t *testing.T) {
	assert.True(t, NewInt32(1).Equal(NewInt32(1)))
	assert.False(t, NewInt32(1).Equal(NewInt64(1)))
	assert.True(t, NewRaw([]byte{1}).Equal(NewRaw([]byte{1})))
	assert.False(t, NewRaw([]byte{1}).Equal(NewRaw([]byte{2})))
	assert.True(t, NewFloat32Array([]float32{1, 2}).Equal(NewFloat32Array([]float32{1, 2})))
	assert.False(t, NewFloat32Array([]float32{1, 2}).Equal(NewFloat32Array([]float32{1})))
}

func TestNodeJSON(t *testing.T) {
	n := Node{
		Name:       "Model",
		Properties: []Property{NewInt64(42), NewString("Cube"), NewInt32Array([]int32{1, 2})},
		Children:   []Node{{Name: "Version", Properties: []Property{NewInt32(232)}}},
	}
	out, err := json.Marshal(n)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"name": "Model",
		"properties": [
			{"type": "Int64", "value": 42},
			{"type": "String", "value": "Cube"},
			{"type": "Int32Arr", "value": [1, 2]}
		],
		"children": [
			{"name": "Version", "properties": [{"type": "Int32", "value": 232}]}
		]
	}`, string(out))
}

func TestNodeYAML(t *testing.T) {
	n := Node{Name: "Blob", Properties: []Property{NewRaw([]byte{0xCA, 0xFE}), NewBool(true)}}
	out, err := yaml.Marshal(n)
	require.NoError(t, err)
	assert.YAMLEq(t, `
name: Blob
properties:
  - type: Raw
    value: CA-FE
  - type: Bool
    value: true
`, string(out))
}

func TestPropertyJSONNonFinite(t *testing.T) {
	tests := []struct {
		name string
		p    Property
		want string
	}{
		{"nan", NewFloat64(math.NaN()), `{"type": "Float64", "value": "NaN"}`},
		{"positive infinity", NewFloat32(float32(math.Inf(1))), `{"type": "Float32", "value": "+Inf"}`},
		{"negative infinity", NewFloat64(math.Inf(-1)), `{"type": "Float64", "value": "-Inf"}`},
		{"finite", NewFloat64(1.5), `{"type": "Float64", "value": 1.5}`},
		{"float32 array", NewFloat32Array([]float32{1, float32(math.Inf(1)), float32(math.NaN())}), `{"type": "Float32Arr", "value": [1, "+Inf", "NaN"]}`},
		{"float64 array", NewFloat64Array([]float64{math.Inf(-1), 2}), `{"type": "Float64Arr", "value": ["-Inf", 2]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := json.Marshal(tt.p)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(out))
		})
	}

	n := Node{Name: "Lcl Scaling", Properties: []Property{NewFloat64(math.NaN())}}
	_, err := json.Marshal(n)
	assert.NoError(t, err)

	finite := []float64{1, 2}
	assert.Equal(t, finite, JSONValue(finite))
}

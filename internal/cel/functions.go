package cel

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
	"github.com/kaitai-io/kaitai_struct_go_runtime/kaitai"
)

// nameSeparator splits an object name from its class in string properties,
// as in "Cube\x00\x01Model".
const nameSeparator = "\x00\x01"

// NodeFunctions returns the CEL functions available to node predicates.
func NodeFunctions() cel.EnvOption {
	return cel.Lib(&nodeLib{})
}

type nodeLib struct{}

func (*nodeLib) CompileOptions() []cel.EnvOption {
	return []cel.EnvOption{
		// objectName("Cube\x00\x01Model") == "Cube"
		cel.Function("objectName",
			cel.Overload("objectName_string", []*cel.Type{cel.StringType}, cel.StringType,
				cel.UnaryBinding(func(val ref.Val) ref.Val {
					s, ok := val.(types.String)
					if !ok {
						return types.NewErr("expected string for objectName")
					}
					name, _, _ := strings.Cut(string(s), nameSeparator)
					return types.String(name)
				}),
			),
		),
		// objectClass("Cube\x00\x01Model") == "Model"
		cel.Function("objectClass",
			cel.Overload("objectClass_string", []*cel.Type{cel.StringType}, cel.StringType,
				cel.UnaryBinding(func(val ref.Val) ref.Val {
					s, ok := val.(types.String)
					if !ok {
						return types.NewErr("expected string for objectClass")
					}
					_, class, _ := strings.Cut(string(s), nameSeparator)
					return types.String(class)
				}),
			),
		),
		cel.Function("to_s",
			cel.Overload("to_s_any", []*cel.Type{cel.AnyType}, cel.StringType,
				cel.UnaryBinding(func(val ref.Val) ref.Val {
					if b, ok := val.(types.Bytes); ok {
						return types.String(string(b))
					}
					return types.String(fmt.Sprintf("%v", val.Value()))
				}),
			),
		),
		cel.Function("to_i",
			cel.Overload("to_i_string", []*cel.Type{cel.StringType}, cel.IntType,
				cel.UnaryBinding(func(val ref.Val) ref.Val {
					s, ok := val.(types.String)
					if !ok {
						return types.NewErr("expected string for to_i")
					}
					n, err := strconv.ParseInt(string(s), 10, 64)
					if err != nil {
						return types.NewErr("cannot convert string to int: %v", err)
					}
					return types.Int(n)
				}),
			),
			cel.Overload("to_i_double", []*cel.Type{cel.DoubleType}, cel.IntType,
				cel.UnaryBinding(func(val ref.Val) ref.Val {
					d, ok := val.(types.Double)
					if !ok {
						return types.NewErr("unexpected type for to_i: %T", val.Value())
					}
					return types.Int(d)
				}),
			),
		),
		cel.Function("to_f",
			cel.Overload("to_f_any", []*cel.Type{cel.AnyType}, cel.DoubleType,
				cel.UnaryBinding(func(val ref.Val) ref.Val {
					converted := val.ConvertToType(cel.DoubleType)
					if types.IsError(converted) {
						return types.NewErr("cannot convert %v to double: %v", val, converted)
					}
					return converted
				}),
			),
		),
		cel.Function("reverse",
			cel.Overload("reverse_string", []*cel.Type{cel.StringType}, cel.StringType,
				cel.UnaryBinding(func(val ref.Val) ref.Val {
					s, ok := val.(types.String)
					if !ok {
						return types.NewErr("expected string type for reverse")
					}
					return types.String(kaitai.StringReverse(string(s)))
				}),
			),
		),
	}
}

func (*nodeLib) ProgramOptions() []cel.ProgramOption {
	return []cel.ProgramOption{}
}

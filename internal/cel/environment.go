package cel

import (
	"fmt"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
)

// Names of the variables a node predicate can refer to.
const (
	VarName     = "name"
	VarProps    = "props"
	VarTypes    = "types"
	VarDepth    = "depth"
	VarPath     = "path"
	VarChildren = "children"
)

// NewEnvironment creates a CEL environment for node predicates such as
//
//	name == "Model" && size(props) > 2 && props[2] == "Mesh"
func NewEnvironment() (*cel.Env, error) {
	opts := []cel.EnvOption{
		cel.CustomTypeAdapter(NewNodeTypeAdapter()),
		cel.StdLib(),

		cel.Variable(VarName, cel.StringType),
		cel.Variable(VarProps, cel.ListType(cel.DynType)),
		cel.Variable(VarTypes, cel.ListType(cel.StringType)),
		cel.Variable(VarDepth, cel.IntType),
		cel.Variable(VarPath, cel.ListType(cel.StringType)),
		cel.Variable(VarChildren, cel.ListType(cel.StringType)),

		NodeFunctions(),
	}

	env, err := cel.NewEnv(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}
	return env, nil
}

// NodeTypeAdapter extends the default type adapter with the narrow numeric
// types found in property values.
type NodeTypeAdapter struct {
	types.Adapter
}

func NewNodeTypeAdapter() *NodeTypeAdapter {
	return &NodeTypeAdapter{Adapter: types.DefaultTypeAdapter}
}

// NativeToValue converts Go native types to CEL values.
func (a *NodeTypeAdapter) NativeToValue(value any) ref.Val {
	switch v := value.(type) {
	case int16:
		return types.Int(v)
	case int32:
		return types.Int(v)
	case float32:
		return types.Double(v)
	default:
		return a.Adapter.NativeToValue(value)
	}
}

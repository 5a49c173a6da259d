package cel

import "github.com/twinfer/kfbx/pkg/fbx"

// Vars builds the variables of a node predicate. path holds the names from
// the top-level ancestor down to n.
func Vars(path []string, n fbx.Node) map[string]any {
	props := make([]any, len(n.Properties))
	names := make([]string, len(n.Properties))
	for i, p := range n.Properties {
		props[i] = p.Value()
		names[i] = p.Type().String()
	}
	children := make([]string, len(n.Children))
	for i, c := range n.Children {
		children[i] = c.Name
	}
	return map[string]any{
		VarName:     n.Name,
		VarProps:    props,
		VarTypes:    names,
		VarDepth:    int64(max(len(path)-1, 0)),
		VarPath:     path,
		VarChildren: children,
	}
}

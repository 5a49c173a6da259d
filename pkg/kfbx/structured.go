package kfbx

import "github.com/twinfer/kfbx/pkg/fbx"

// Structured converts nodes into generic maps and slices suitable for message
// payloads. When inlineArrays is false array properties are replaced by their
// type and element count.
func Structured(doc fbx.Document, inlineArrays bool) map[string]any {
	return map[string]any{
		"version": int64(doc.Format.Version),
		"nodes":   structuredNodes(doc.Nodes, inlineArrays),
	}
}

func structuredNodes(nodes []fbx.Node, inlineArrays bool) []any {
	out := make([]any, len(nodes))
	for i, n := range nodes {
		out[i] = structuredNode(n, inlineArrays)
	}
	return out
}

// StructuredNode converts a single node and its subtree like Structured.
func StructuredNode(n fbx.Node, inlineArrays bool) map[string]any {
	return structuredNode(n, inlineArrays)
}

func structuredNode(n fbx.Node, inlineArrays bool) map[string]any {
	props := make([]any, len(n.Properties))
	for i, p := range n.Properties {
		props[i] = structuredProperty(p, inlineArrays)
	}
	m := map[string]any{
		"name":       n.Name,
		"properties": props,
	}
	if len(n.Children) > 0 {
		m["children"] = structuredNodes(n.Children, inlineArrays)
	}
	return m
}

func structuredProperty(p fbx.Property, inlineArrays bool) map[string]any {
	m := map[string]any{"type": p.Type().String()}
	switch {
	case p.Type().IsArray() && !inlineArrays:
		m["length"] = int64(p.Len())
	case p.Type().IsArray():
		m["value"] = arrayValues(p)
	case p.Type() == fbx.TypeRaw:
		m["value"] = p.String()
	default:
		m["value"] = scalarValue(p)
	}
	return m
}

func arrayValues(p fbx.Property) []any {
	var out []any
	appendAll := func(n int, at func(int) any) {
		out = make([]any, n)
		for i := range n {
			out[i] = at(i)
		}
	}
	if v, ok := p.BoolArray(); ok {
		appendAll(len(v), func(i int) any { return v[i] })
	} else if v, ok := p.Int32Array(); ok {
		appendAll(len(v), func(i int) any { return int64(v[i]) })
	} else if v, ok := p.Int64Array(); ok {
		appendAll(len(v), func(i int) any { return v[i] })
	} else if v, ok := p.Float32Array(); ok {
		appendAll(len(v), func(i int) any { return fbx.JSONValue(float64(v[i])) })
	} else if v, ok := p.Float64Array(); ok {
		appendAll(len(v), func(i int) any { return fbx.JSONValue(v[i]) })
	}
	return out
}

func scalarValue(p fbx.Property) any {
	if n, ok := p.Int(); ok {
		return n
	}
	if f, ok := p.Float32(); ok {
		return fbx.JSONValue(float64(f))
	}
	return fbx.JSONValue(p.Value())
}

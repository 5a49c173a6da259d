package testutil

// Scene returns a small but complete file: a header extension, an Objects
// section with a model and its geometry, and the connections between them.
func Scene(version uint32) []byte {
	return File(version, true, SceneNodes()...)
}

// SceneNodes returns the top-level nodes encoded by Scene.
func SceneNodes() []Node {
	return []Node{
		{
			Name: "FBXHeaderExtension",
			Children: []Node{
				{Name: "FBXVersion", Props: []Prop{Int32(7400)}},
				{Name: "Creator", Props: []Prop{String("kfbx testutil")}},
			},
			NullRecord: true,
		},
		{
			Name: "Objects",
			Children: []Node{
				{
					Name:  "Geometry",
					Props: []Prop{Int64(2001), String("Cube\x00\x01Geometry"), String("Mesh")},
					Children: []Node{
						{Name: "Vertices", Props: []Prop{Deflated(Float64Array(0, 0, 0, 1, 0, 0, 1, 1, 0))}},
						{Name: "PolygonVertexIndex", Props: []Prop{Int32Array(0, 1, -3)}},
					},
					NullRecord: true,
				},
				{
					Name:  "Model",
					Props: []Prop{Int64(1001), String("Cube\x00\x01Model"), String("Mesh")},
					Children: []Node{
						{Name: "Version", Props: []Prop{Int32(232)}},
					},
					NullRecord: true,
				},
			},
			NullRecord: true,
		},
		{
			Name: "Connections",
			Children: []Node{
				{Name: "C", Props: []Prop{String("OO"), Int64(1001), Int64(0)}},
				{Name: "C", Props: []Prop{String("OO"), Int64(2001), Int64(1001)}},
			},
			NullRecord: true,
		},
	}
}

package graph

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twinfer/kfbx/pkg/fbx"
	"github.com/twinfer/kfbx/testutil"
)

func decodeScene(t *testing.T) []fbx.Node {
	t.Helper()
	nodes, err := fbx.Decode(testutil.Scene(7400))
	require.NoError(t, err)
	return nodes
}

func TestObjectsAndConnections(t *testing.T) {
	nodes := decodeScene(t)

	objects, err := Objects(nodes)
	require.NoError(t, err)
	assert.Len(t, objects, 3)
	assert.Equal(t, "RootNode", objects[RootID].Name)
	assert.Equal(t, "Model", objects[1001].Name)
	assert.Equal(t, "Geometry", objects[2001].Name)

	conns, err := Connections(nodes)
	require.NoError(t, err)
	assert.Equal(t, []Connection{
		{Mode: "OO", From: 1001, To: 0},
		{Mode: "OO", From: 2001, To: 1001},
	}, conns)
}

func TestBuild(t *testing.T) {
	g, err := Build(decodeScene(t))
	require.NoError(t, err)

	// Model, Version, RootNode, Geometry, Vertices, PolygonVertexIndex.
	vertices, edges := g.Len()
	assert.Equal(t, 6, vertices)
	// Two connections and three child-of edges.
	assert.Equal(t, 5, edges)

	dot := g.String()
	assert.True(t, strings.HasPrefix(dot, "digraph \"FBX\" {\n"))
	assert.Contains(t, dot, `"Model - 1001" [shape=box, style=filled, fillcolor=yellow, label="Model - 1001\l1001\lCube::Model\lMesh\l"];`)
	assert.Contains(t, dot, `"n1" [shape=box, style=dashed, label="Version\l232\l"];`)
	assert.Contains(t, dot, `"n1" -> "Model - 1001" [label="child of"];`)
	assert.Contains(t, dot, `"Model - 1001" -> "RootNode - 0" [label="OO", color=darkorange];`)
	assert.Contains(t, dot, `"Geometry - 2001" -> "Model - 1001" [label="OO", color=darkorange];`)
	assert.True(t, strings.HasSuffix(dot, "}\n"))
}

func TestBuildUnknownObject(t *testing.T) {
	nodes := []fbx.Node{
		{Name: "Objects"},
		{Name: "Connections", Children: []fbx.Node{
			{Name: "C", Properties: []fbx.Property{fbx.NewString("OO"), fbx.NewInt64(5), fbx.NewInt64(0)}},
		}},
	}
	_, err := Build(nodes)
	assert.ErrorIs(t, err, ErrUnknownObject)
}

func TestBuildMissingIDs(t *testing.T) {
	_, err := Objects([]fbx.Node{{Name: "Objects", Children: []fbx.Node{{Name: "Model"}}}})
	assert.ErrorIs(t, err, ErrObjectID)

	_, err = Connections([]fbx.Node{{Name: "Connections", Children: []fbx.Node{
		{Name: "C", Properties: []fbx.Property{fbx.NewString("OO"), fbx.NewString("x")}},
	}}})
	assert.ErrorIs(t, err, ErrObjectID)
}

func TestBuildWithoutSections(t *testing.T) {
	g, err := Build(nil)
	require.NoError(t, err)
	assert.Equal(t, "digraph \"FBX\" {\n}\n", g.String())
}

func TestLabelsAreTruncatedAndQuoted(t *testing.T) {
	n := fbx.Node{Name: `Say "hi"`, Properties: []fbx.Property{fbx.NewString(strings.Repeat("x", 100))}}
	l := label(n.Name, n)
	assert.Equal(t, `Say "hi"\l`+strings.Repeat("x", maxPropertyLabel)+`...\l`, l)
	assert.Equal(t, `"Say \"hi\"\l`+strings.Repeat("x", maxPropertyLabel)+`...\l"`, quoteLabel(l))
}

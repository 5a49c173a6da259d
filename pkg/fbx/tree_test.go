package fbx_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twinfer/kfbx/pkg/fbx"
)

func sampleTree() []fbx.Node {
	return []fbx.Node{
		{
			Name: "Objects",
			Children: []fbx.Node{
				{
					Name:       "Model",
					Properties: []fbx.Property{fbx.NewInt64(42), fbx.NewString("Cube")},
					Children:   []fbx.Node{{Name: "Version", Properties: []fbx.Property{fbx.NewInt32(232)}}},
				},
				{Name: "Model", Properties: []fbx.Property{fbx.NewInt64(43)}},
			},
		},
		{Name: "Connections"},
	}
}

func TestFindAndChild(t *testing.T) {
	nodes := sampleTree()
	objects, ok := fbx.Find(nodes, "Objects")
	require.True(t, ok)

	model, ok := objects.Child("Model")
	require.True(t, ok)
	id, ok := model.Properties[0].Int64()
	require.True(t, ok)
	assert.Equal(t, int64(42), id)

	assert.Len(t, objects.ChildrenNamed("Model"), 2)
	assert.Empty(t, objects.ChildrenNamed("Geometry"))

	_, ok = objects.Child("Geometry")
	assert.False(t, ok)
	_, ok = fbx.Find(nodes, "Takes")
	assert.False(t, ok)

	p, ok := model.Property(1)
	require.True(t, ok)
	assert.Equal(t, "Cube", p.String())
	_, ok = model.Property(2)
	assert.False(t, ok)
	_, ok = model.Property(-1)
	assert.False(t, ok)
}

func TestWalk(t *testing.T) {
	var visited []string
	err := fbx.Walk(sampleTree(), func(path []string, n fbx.Node) error {
		visited = append(visited, strings.Join(path, "/"))
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Objects",
		"Objects/Model",
		"Objects/Model/Version",
		"Objects/Model",
		"Connections",
	}, visited)
}

func TestWalkSkipAndStop(t *testing.T) {
	var visited []string
	err := fbx.Walk(sampleTree(), func(path []string, n fbx.Node) error {
		visited = append(visited, n.Name)
		if n.Name == "Model" {
			return fbx.ErrSkipChildren
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Objects", "Model", "Model", "Connections"}, visited)

	stop := errors.New("stop")
	visited = nil
	err = sampleTree()[0].Walk(func(path []string, n fbx.Node) error {
		visited = append(visited, n.Name)
		if len(path) == 3 {
			return stop
		}
		return nil
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, []string{"Objects", "Model", "Version"}, visited)
}

func TestWalkPathsAreIndependent(t *testing.T) {
	var paths [][]string
	err := fbx.Walk(sampleTree(), func(path []string, n fbx.Node) error {
		paths = append(paths, path)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Objects", "Model", "Version"}, paths[2])
	assert.Equal(t, []string{"Objects", "Model"}, paths[3])
}

func TestDump(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, fbx.Dump(&buf, sampleTree()[:1]))
	want := `[Objects]:
    Children
        [Model]:
            Properties
                Property<Int64>: 42
                Property<String>: Cube
            Children
                [Version]:
                    Properties
                        Property<Int32>: 232
        [Model]:
            Properties
                Property<Int64>: 43
`
	assert.Equal(t, want, buf.String())

	buf.Reset()
	require.NoError(t, fbx.Node{Name: "Connections"}.Dump(&buf))
	assert.Equal(t, "[Connections]:\n", buf.String())
}

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twinfer/kfbx/testutil"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(&stdout, &stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestHeader(t *testing.T) {
	tests := []struct {
		version uint32
		want    string
	}{
		{7400, "version: 7400 (FBX 7.4)\noffsets: 32-bit\n"},
		{7500, "version: 7500 (FBX 7.5)\noffsets: 64-bit\n"},
	}
	for _, tt := range tests {
		path := writeFile(t, "scene.fbx", testutil.Scene(tt.version))
		out, _, err := execute(t, "header", path)
		require.NoError(t, err)
		assert.Equal(t, tt.want, out)
	}
}

func TestDumpText(t *testing.T) {
	path := writeFile(t, "scene.fbx", testutil.Scene(7400))

	out, _, err := execute(t, "dump", path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "[FBXHeaderExtension]:\n"))
	assert.Contains(t, out, "[Objects]:")
	assert.Contains(t, out, "Property<Int32>: 232")
	assert.Contains(t, out, "[Connections]:")
}

func TestDumpJSON(t *testing.T) {
	path := writeFile(t, "scene.fbx", testutil.Scene(7500))

	out, _, err := execute(t, "dump", "--format", "json", path)
	require.NoError(t, err)

	var doc struct {
		Format struct {
			Version int `json:"version"`
		} `json:"format"`
		Nodes []struct {
			Name string `json:"name"`
		} `json:"nodes"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, 7500, doc.Format.Version)
	require.Len(t, doc.Nodes, 3)
	assert.Equal(t, "Connections", doc.Nodes[2].Name)
}

func TestDumpWhereYAML(t *testing.T) {
	path := writeFile(t, "scene.fbx", testutil.Scene(7400))

	out, _, err := execute(t, "dump", "-f", "yaml", "--where", `name == "Model"`, path)
	require.NoError(t, err)
	assert.Contains(t, out, "name: Model")
	assert.Contains(t, out, "name: Version")
	assert.NotContains(t, out, "FBXHeaderExtension")
}

func TestDumpSummarizeArrays(t *testing.T) {
	path := writeFile(t, "scene.fbx", testutil.Scene(7400))

	out, _, err := execute(t, "dump", "-f", "json", "--summarize-arrays", "--where", `name == "Vertices"`, path)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	nodes := doc["nodes"].([]any)
	require.Len(t, nodes, 1)
	props := nodes[0].(map[string]any)["properties"].([]any)
	require.Len(t, props, 1)
	assert.Equal(t, map[string]any{"type": "Float64Arr", "length": float64(9)}, props[0])
}

func TestDumpUnknownFormat(t *testing.T) {
	path := writeFile(t, "scene.fbx", testutil.Scene(7400))

	_, _, err := execute(t, "dump", "--format", "xml", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown format "xml"`)
}

func TestFind(t *testing.T) {
	path := writeFile(t, "scene.fbx", testutil.Scene(7400))

	out, _, err := execute(t, "find", path, "--where", `name == "C"`)
	require.NoError(t, err)
	assert.Equal(t, "Connections/C\nConnections/C\n", out)

	out, _, err = execute(t, "find", path, "-p", "--where", `objectClass(props[1]) == "Model"`)
	require.NoError(t, err)
	assert.Equal(t, "Objects/Model\t1001, Cube::Model, Mesh\n", out)
}

func TestFindRequiresWhere(t *testing.T) {
	path := writeFile(t, "scene.fbx", testutil.Scene(7400))

	_, _, err := execute(t, "find", path)
	require.Error(t, err)
}

func TestFindBadExpression(t *testing.T) {
	path := writeFile(t, "scene.fbx", testutil.Scene(7400))

	_, _, err := execute(t, "find", path, "--where", `name ==`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "compiling query")
}

func TestGraph(t *testing.T) {
	path := writeFile(t, "scene.fbx", testutil.Scene(7400))

	out, _, err := execute(t, "graph", path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "digraph \"FBX\" {\n"))
	assert.Contains(t, out, "darkorange")

	dot := filepath.Join(t.TempDir(), "scene.dot")
	out, _, err = execute(t, "graph", "-o", dot, path)
	require.NoError(t, err)
	assert.Empty(t, out)
	data, err := os.ReadFile(dot)
	require.NoError(t, err)
	assert.Contains(t, string(data), "digraph")
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, version.Core()+"\n", out)

	out, _, err = execute(t, "version", "--build-info")
	require.NoError(t, err)
	assert.Equal(t, version.String()+"\n", out)
}

func TestDecodeFailureReport(t *testing.T) {
	path := writeFile(t, "broken.fbx", testutil.Scene(7400)[:20])

	_, _, err := execute(t, "dump", path)
	require.Error(t, err)

	var buf bytes.Buffer
	report(&buf, err)
	assert.Contains(t, buf.String(), "kfbx: "+path)
	assert.Contains(t, buf.String(), "  path:   File Header > Signature\n")
	assert.Contains(t, buf.String(), "  offset: 0\n")
}

func TestReportPlainError(t *testing.T) {
	_, _, err := execute(t, "header", filepath.Join(t.TempDir(), "missing.fbx"))
	require.Error(t, err)

	var buf bytes.Buffer
	report(&buf, err)
	assert.NotContains(t, buf.String(), "path:")
}

func TestConfigFile(t *testing.T) {
	path := writeFile(t, "scene.fbx", testutil.Scene(7400))
	cfg := writeFile(t, "kfbx.yaml", []byte("format: yaml\ndebug: true\n"))

	out, stderr, err := execute(t, "--config", cfg, "dump", path)
	require.NoError(t, err)
	assert.Contains(t, out, "version: 7400")
	assert.Contains(t, stderr, "decoded FBX document")

	out, _, err = execute(t, "--config", cfg, "dump", "-f", "text", path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "[FBXHeaderExtension]:"))
}

func TestConfigLimits(t *testing.T) {
	path := writeFile(t, "scene.fbx", testutil.Scene(7400))
	cfg := writeFile(t, "kfbx.yaml", []byte("max_input_size: 16\n"))

	_, _, err := execute(t, "--config", cfg, "dump", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "input exceeds maximum size")
}

func TestLoadConfig(t *testing.T) {
	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), cfg)

	empty := writeFile(t, "empty.yaml", nil)
	cfg, err = loadConfig(empty)
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), cfg)

	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"unknown field", "colour: red\n", "field colour not found"},
		{"bad format", "format: xml\n", `unknown format "xml"`},
		{"negative size", "max_input_size: -1\n", "max_input_size"},
		{"negative cache", "query_cache_size: -1\n", "query_cache_size"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadConfig(writeFile(t, "kfbx.yaml", []byte(tt.content)))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err := run(context.Background(), append([]string{"--color", "off"}, args...), &out, &errOut)
	return out.String(), err
}

func TestInspectPretty(t *testing.T) {
	out, err := execute(t, "inspect", "Map<string, Sequence<int>>")
	require.NoError(t, err)
	assert.Contains(t, out, "parameterized")
	assert.Contains(t, out, "Map<string, Sequence<int>>")
	assert.Contains(t, out, "string, Sequence<int>")
}

func TestInspectJSONKeepsOrder(t *testing.T) {
	out, err := execute(t, "--format", "json", "--jobs", "2", "inspect", "int", "Pair<bool, string>", "Set<rune>")
	require.NoError(t, err)

	var reports []typeReport
	require.NoError(t, json.Unmarshal([]byte(out), &reports))
	require.Len(t, reports, 3)
	assert.Equal(t, "nominal", reports[0].Shape)
	assert.Equal(t, "Pair<bool, string>", reports[1].Display)
	assert.Equal(t, []string{"bool", "string"}, reports[1].Args)
	assert.NotZero(t, reports[1].ID)
	assert.Equal(t, "Set", reports[2].Raw)
}

func TestInspectRejectedShapes(t *testing.T) {
	out, err := execute(t, "--format", "json", "inspect", "--vars", "T", "T", "?", "Sequence<string")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "3 of 3 signatures failed")

	var reports []typeReport
	require.NoError(t, json.Unmarshal([]byte(out), &reports))
	assert.Equal(t, "type-variable", reports[0].Shape)
	assert.Equal(t, "wildcard", reports[1].Shape)
	assert.Equal(t, "invalid", reports[2].Shape)
	for _, r := range reports {
		assert.NotEmpty(t, r.Error)
	}
}

func TestWrapAndUnwrap(t *testing.T) {
	out, err := execute(t, "--format", "json", "wrap", "map", "string", "Sequence<int>")
	require.NoError(t, err)
	var rep typeReport
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	assert.Equal(t, "Map<string, Sequence<int>>", rep.Display)

	out, err = execute(t, "--format", "json", "unwrap", "Map", "Map<string, Sequence<int>>", "--part", "value")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	assert.Equal(t, "Sequence<int>", rep.Display)

	_, err = execute(t, "unwrap", "Sequence", "string")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "string is not a Sequence")

	_, err = execute(t, "unwrap", "Sequence", "Sequence<int>", "--part", "value")
	assert.Error(t, err)
}

func TestClassesFromUniverseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "universe.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[[class]]
name = "acme.Box"
params = ["T"]
supers = ["Collection"]
`), 0o600))

	out, err := execute(t, "--universe", path, "classes", "--generic")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.True(t, strings.HasPrefix(lines[0], "NAME"))
	assert.Contains(t, out, "acme.Box")
	assert.NotContains(t, out, "float64")

	out, err = execute(t, "--universe", path, "--format", "json", "inspect", "acme.Box<string>")
	require.NoError(t, err)
	assert.Contains(t, out, `"acme.Box<string>"`)
}

func TestBadFlags(t *testing.T) {
	_, err := execute(t, "--format", "yaml", "classes")
	assert.Error(t, err)
	_, err = execute(t, "--trace-level", "loud", "classes")
	assert.Error(t, err)
	_, err = execute(t, "wrap", "Heap", "int")
	assert.Error(t, err)
}

func TestTraceFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.ndjson")
	_, err := execute(t, "--trace", path, "--trace-level", "detail", "inspect", "Sequence<int>")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"name":"inspect"`)
	assert.Contains(t, string(data), `"scope":"resolve"`)
	assert.NotContains(t, string(data), `"scope":"type"`)
}

func TestVersionJSON(t *testing.T) {
	out, err := execute(t, "--format", "json", "version", "--full")
	require.NoError(t, err)
	var p versionPayload
	require.NoError(t, json.Unmarshal([]byte(out), &p))
	assert.Equal(t, "reify", p.Tool)
	assert.NotEmpty(t, p.Version)
	assert.NotEmpty(t, p.GitCommit)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab...", truncate("abcdefgh", 5))
	assert.Equal(t, "", truncate("abc", 0))
	assert.Equal(t, "世界  ", padRight("世界", 6))
}

package nabla

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadProjectConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nabla.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
stdlib = true
files = ["exprs/main.json"]

[bindings]
x = "ℝ"
flag = "Bool"
`), 0644))

	config, err := LoadProjectConfig(path)
	require.NoError(t, err)
	assert.True(t, config.UseStdlib())
	assert.Equal(t, []string{"exprs/main.json"}, config.Files)
	assert.Equal(t, "ℝ", config.Bindings["x"])

	c := New()
	config.ApplyBindings(c)
	ty, ok := c.bindings.Get("x")
	require.True(t, ok)
	assert.Equal(t, "Scalar", ty.String())
	ty, ok = c.bindings.Get("flag")
	require.True(t, ok)
	assert.Equal(t, "Bool", ty.String())
}

func TestUseStdlibDefaults(t *testing.T) {
	assert.True(t, (*ProjectConfig)(nil).UseStdlib())
	assert.True(t, (&ProjectConfig{}).UseStdlib())
	off := false
	assert.False(t, (&ProjectConfig{Stdlib: &off}).UseStdlib())
}

func TestFindProjectConfigWalksUp(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nabla.toml"), []byte(`files = ["a.json"]`), 0644))
	nested := filepath.Join(dir, "sub", "deeper")
	require.NoError(t, os.MkdirAll(nested, 0755))

	path, config, err := FindProjectConfig(nested)
	require.NoError(t, err)
	require.NotNil(t, config)
	assert.Equal(t, filepath.Join(dir, "nabla.toml"), path)
	assert.Equal(t, []string{"a.json"}, config.Files)
}

func TestFindProjectConfigStopsAtGitBoundary(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nabla.toml"), []byte(``), 0644))
	nested := filepath.Join(dir, "repo")
	require.NoError(t, os.MkdirAll(filepath.Join(nested, ".git"), 0755))

	path, config, err := FindProjectConfig(nested)
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Nil(t, config)
}

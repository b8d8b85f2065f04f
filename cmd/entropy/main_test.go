package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phanxgames/entropy"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, data string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

func TestExampleConfigJSONLoads(t *testing.T) {
	out, err := execute(t, "example-config", "--format", "json")
	require.NoError(t, err)

	cfg, err := entropy.LoadConfig([]byte(out))
	require.NoError(t, err)
	assert.Equal(t, exampleConfig(), cfg)
}

func TestExampleConfigINILoads(t *testing.T) {
	out, err := execute(t, "example-config")
	require.NoError(t, err)

	cfg, err := entropy.LoadConfigINI(out)
	require.NoError(t, err)
	assert.Equal(t, "space", cfg.Canvas.ID)
	assert.Len(t, cfg.Particles.Color.Palette, 5)
}

func TestExampleConfigUnknownFormat(t *testing.T) {
	_, err := execute(t, "example-config", "--format", "yaml")
	assert.Error(t, err)
}

func TestRunRequiresConfig(t *testing.T) {
	_, err := execute(t, "run", "--no-persist")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--config")
}

func TestExportUsesTablesAndStore(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "space.ini", entropy.ExampleINIConfig)
	spawners := writeFile(t, dir, "spawners.txt", "10 20\n30 40\n")
	store := filepath.Join(dir, "store.json")
	outDir := filepath.Join(dir, "out")

	out, err := execute(t, "export", "-c", cfgPath, "--store", store, "--spawners", spawners, "-o", outDir)
	require.NoError(t, err)
	assert.Contains(t, out, "exported 2 spawners and 0 targets")

	data, err := os.ReadFile(filepath.Join(outDir, entropy.ExportFileName))
	require.NoError(t, err)
	doc, err := entropy.DecodePositions(data)
	require.NoError(t, err)
	assert.Equal(t, []entropy.Point{{X: 10, Y: 20}, {X: 30, Y: 40}}, doc.Spawners)
	assert.Empty(t, doc.Targets)
}

func TestResetClearsStore(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "space.ini", entropy.ExampleINIConfig)
	storePath := filepath.Join(dir, "store.json")

	st, err := entropy.OpenFileStore(storePath)
	require.NoError(t, err)
	key := entropy.StorageKey("space", entropy.Targets)
	require.NoError(t, st.Set(key, []byte(`[{"x":1,"y":2}]`)))

	out, err := execute(t, "reset", "-c", cfgPath, "--store", storePath)
	require.NoError(t, err)
	assert.Contains(t, out, "positions cleared")

	st, err = entropy.OpenFileStore(storePath)
	require.NoError(t, err)
	_, ok, err := st.Get(key)
	require.NoError(t, err)
	assert.False(t, ok)
}

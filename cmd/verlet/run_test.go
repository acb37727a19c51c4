package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "verlet dev\n", out)
}

func TestRunDemoScene(t *testing.T) {
	t.Setenv("VERLET_LOG_LEVEL", "error")
	out, err := execute(t, "run", "--frames", "30", "--dt", "0.02")
	require.NoError(t, err)

	var report Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "demo", report.Scene)
	assert.Equal(t, 30, report.Frames)
	assert.Len(t, report.RunID, 36)
	assert.Greater(t, report.Particles, 6)
	assert.Equal(t, uint64(30), report.Stats.Frames)
}

func TestRunSceneFile(t *testing.T) {
	t.Setenv("VERLET_LOG_LEVEL", "error")
	dir := t.TempDir()

	scene := filepath.Join(dir, "drop.json")
	require.NoError(t, os.WriteFile(scene, []byte(`{
  "shape": {"type": "circle", "radius": 100},
  "particles": [{"position": {"x": 0, "y": 50}}, {"position": {"x": 3, "y": 70}}]
}`), 0o644))

	cfgPath := filepath.Join(dir, "verlet.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("[solver]\nupdate_mode = \"frame_fixed\"\nsubsteps = 2\n"), 0o644))

	statsPath := filepath.Join(dir, "stats.json")
	_, err := execute(t, "run", "--config", cfgPath, "--scene", scene, "--frames", "10", "--stats", statsPath)
	require.NoError(t, err)

	data, err := os.ReadFile(statsPath)
	require.NoError(t, err)
	var report Report
	require.NoError(t, json.Unmarshal(data, &report))
	assert.Equal(t, scene, report.Scene)
	assert.Equal(t, 2, report.Particles)
	assert.Equal(t, uint64(10), report.Stats.Groups)
	assert.Equal(t, uint64(20), report.Stats.Substeps)
}

func TestRunErrors(t *testing.T) {
	t.Setenv("VERLET_LOG_LEVEL", "error")
	_, err := execute(t, "run", "--scene", "nowhere.txt")
	assert.Error(t, err)

	_, err = execute(t, "run", "--dt", "0")
	assert.Error(t, err)

	_, err = execute(t, "run", "--profile", "gpu")
	assert.Error(t, err)
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/TheBitDrifter/verlet/physics"
	"github.com/TheBitDrifter/verlet/vmath"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "verlet.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, physics.DefaultSettings(), cfg.Solver.Settings())
	assert.Equal(t, 600, cfg.Simulation.Frames)
	assert.Equal(t, 64, cfg.Simulation.InitialRows)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, "", cfg.Profile.Mode)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
[solver]
update_mode = "frame_fixed"
timestep = 0.01
substeps = 4
gravity = { x = 0, y = -10 }
collisions = false

[simulation]
workers = 3
frames = 120
scene = "scenes/pendulum.yaml"

[logging]
level = "debug"
format = "json"

[profile]
mode = "cpu"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	settings := cfg.Solver.Settings()
	assert.Equal(t, physics.FrameFixed, settings.UpdateMode)
	assert.Equal(t, float32(0.01), settings.Timestep)
	assert.Equal(t, 4, settings.Substeps)
	assert.Equal(t, vmath.New(0, -10), settings.Gravity)
	assert.Equal(t, float32(25), settings.PartitioningSize)
	assert.False(t, settings.Collisions)

	assert.Equal(t, 3, cfg.Simulation.Workers)
	assert.Equal(t, 120, cfg.Simulation.Frames)
	assert.InDelta(t, 1.0/60.0, cfg.Simulation.FrameTime, 1e-7)
	assert.Equal(t, "scenes/pendulum.yaml", cfg.Simulation.Scene)
	assert.Equal(t, LoggingConfig{Level: "debug", Format: "json"}, cfg.Logging)
	assert.Equal(t, ProfileConfig{Mode: "cpu", Path: "."}, cfg.Profile)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		contains string
	}{
		{"Unknown update mode", "[solver]\nupdate_mode = \"warp\"\n", "warp"},
		{"Bad toml", "[solver\n", "parse config"},
		{"Negative substeps", "[solver]\nsubsteps = -2\n", "Substeps"},
		{"Zero frame time", "[simulation]\nframe_time = 0.0\n", "simulation.frame_time"},
		{"Zero initial rows", "[simulation]\ninitial_rows = 0\n", "simulation.initial_rows"},
		{"Unknown log format", "[logging]\nformat = \"xml\"\n", "logging.format"},
		{"Unknown profile", "[profile]\nmode = \"gpu\"\n", "profile.mode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("VERLET_UPDATE_MODE", "frame_variable")
	t.Setenv("VERLET_SUBSTEPS", "2")
	t.Setenv("VERLET_WORKERS", "0")
	t.Setenv("VERLET_LOG_LEVEL", "warn")

	path := writeConfig(t, "[solver]\nsubsteps = 16\n[simulation]\nworkers = 8\n")
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, physics.FrameVariable, cfg.Solver.UpdateMode)
	assert.Equal(t, 2, cfg.Solver.Substeps)
	assert.Equal(t, 0, cfg.Simulation.Workers)
	assert.Equal(t, "warn", cfg.Logging.Level)
	// untouched by the environment
	assert.Equal(t, 600, cfg.Simulation.Frames)
}

func TestEnvOverrideErrors(t *testing.T) {
	t.Setenv("VERLET_UPDATE_MODE", "sometimes")
	_, err := Load("")
	var unknown physics.UnknownUpdateModeError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "sometimes", unknown.Name)
}

func TestNewLogger(t *testing.T) {
	tests := []struct {
		cfg      LoggingConfig
		expected zapcore.Level
	}{
		{LoggingConfig{Level: "debug", Format: "console"}, zapcore.DebugLevel},
		{LoggingConfig{Level: "error", Format: "json"}, zapcore.ErrorLevel},
		{LoggingConfig{Level: "chatty", Format: "console"}, zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.cfg.Level, func(t *testing.T) {
			log, err := NewLogger(tt.cfg)
			require.NoError(t, err)
			assert.True(t, log.Core().Enabled(tt.expected))
			if tt.expected > zapcore.DebugLevel {
				assert.False(t, log.Core().Enabled(tt.expected-1))
			}
		})
	}
}

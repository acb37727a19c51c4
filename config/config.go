// Package config loads the verlet TOML configuration and applies
// environment overrides on top of it.
package config

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/rotisserie/eris"

	"github.com/TheBitDrifter/verlet/physics"
	"github.com/TheBitDrifter/verlet/vmath"
	"github.com/TheBitDrifter/verlet/warehouse"
)

type Config struct {
	Solver     SolverConfig     `toml:"solver"`
	Simulation SimulationConfig `toml:"simulation"`
	Logging    LoggingConfig    `toml:"logging"`
	Profile    ProfileConfig    `toml:"profile"`
}

type SolverConfig struct {
	UpdateMode       physics.UpdateMode `toml:"update_mode"`
	Timestep         float32            `toml:"timestep"`
	Substeps         int                `toml:"substeps"`
	Gravity          vmath.Vec2         `toml:"gravity"`
	PartitioningSize float32            `toml:"partitioning_size"`
	Collisions       bool               `toml:"collisions"`
}

type SimulationConfig struct {
	Workers       int     `toml:"workers"` // 0 = GOMAXPROCS
	Frames        int     `toml:"frames"`
	FrameTime     float32 `toml:"frame_time"`
	StatsInterval float32 `toml:"stats_interval"` // seconds of simulated time, 0 disables
	Scene         string  `toml:"scene"`
	InitialRows   int     `toml:"initial_rows"` // rows reserved per new archetype
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

type ProfileConfig struct {
	Mode string `toml:"mode"` // "", "cpu", "mem", "block", "mutex", "trace"
	Path string `toml:"path"`
}

// Settings converts the solver section.
func (c SolverConfig) Settings() physics.Settings {
	return physics.Settings{
		UpdateMode:       c.UpdateMode,
		Timestep:         c.Timestep,
		Substeps:         c.Substeps,
		Gravity:          c.Gravity,
		PartitioningSize: c.PartitioningSize,
		Collisions:       c.Collisions,
	}
}

// Load reads path, or only the defaults when path is empty, and applies the
// VERLET_* environment overrides.
func Load(path string) (*Config, error) {
	cfg := defaults()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, eris.Wrapf(err, "read config %s", path)
		}
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, eris.Wrapf(err, "parse config %s", path)
		}
	}
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, eris.Wrap(err, "validate config")
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if err := c.Solver.Settings().Validate(); err != nil {
		return err
	}
	if c.Simulation.Workers < 0 {
		return InvalidValueError{Key: "simulation.workers", Reason: "must not be negative"}
	}
	if c.Simulation.Frames < 0 {
		return InvalidValueError{Key: "simulation.frames", Reason: "must not be negative"}
	}
	if !(c.Simulation.FrameTime > 0) {
		return InvalidValueError{Key: "simulation.frame_time", Reason: "must be positive"}
	}
	if c.Simulation.InitialRows < 1 {
		return InvalidValueError{Key: "simulation.initial_rows", Reason: "must be at least 1"}
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return InvalidValueError{Key: "logging.format", Reason: "must be json or console"}
	}
	switch c.Profile.Mode {
	case "", "cpu", "mem", "block", "mutex", "trace":
	default:
		return InvalidValueError{Key: "profile.mode", Reason: "unknown profile mode " + c.Profile.Mode}
	}
	return nil
}

func defaults() *Config {
	settings := physics.DefaultSettings()
	return &Config{
		Solver: SolverConfig{
			UpdateMode:       settings.UpdateMode,
			Timestep:         settings.Timestep,
			Substeps:         settings.Substeps,
			Gravity:          settings.Gravity,
			PartitioningSize: settings.PartitioningSize,
			Collisions:       settings.Collisions,
		},
		Simulation: SimulationConfig{
			Frames:        600,
			FrameTime:     1.0 / 60.0,
			StatsInterval: 1,
			InitialRows:   warehouse.Config.InitialRows(),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Profile: ProfileConfig{
			Path: ".",
		},
	}
}

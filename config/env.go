package config

import (
	jlconfig "github.com/JeremyLoy/config"
	"github.com/rotisserie/eris"

	"github.com/TheBitDrifter/verlet/physics"
)

// Overrides are read from the environment. Unset variables keep the values
// they were initialised with.
type Overrides struct {
	UpdateMode string `config:"VERLET_UPDATE_MODE"`
	Substeps   int    `config:"VERLET_SUBSTEPS"`
	Workers    int    `config:"VERLET_WORKERS"`
	Frames     int    `config:"VERLET_FRAMES"`
	Scene      string `config:"VERLET_SCENE"`
	LogLevel   string `config:"VERLET_LOG_LEVEL"`
	LogFormat  string `config:"VERLET_LOG_FORMAT"`
	Profile    string `config:"VERLET_PROFILE"`
}

const unset = -1

func applyEnv(cfg *Config) error {
	o := Overrides{Substeps: unset, Workers: unset, Frames: unset}
	if err := jlconfig.FromEnv().To(&o); err != nil {
		return eris.Wrap(err, "read environment overrides")
	}

	if o.UpdateMode != "" {
		mode, err := physics.ParseUpdateMode(o.UpdateMode)
		if err != nil {
			return eris.Wrap(err, "VERLET_UPDATE_MODE")
		}
		cfg.Solver.UpdateMode = mode
	}
	if o.Substeps != unset {
		cfg.Solver.Substeps = o.Substeps
	}
	if o.Workers != unset {
		cfg.Simulation.Workers = o.Workers
	}
	if o.Frames != unset {
		cfg.Simulation.Frames = o.Frames
	}
	if o.Scene != "" {
		cfg.Simulation.Scene = o.Scene
	}
	if o.LogLevel != "" {
		cfg.Logging.Level = o.LogLevel
	}
	if o.LogFormat != "" {
		cfg.Logging.Format = o.LogFormat
	}
	if o.Profile != "" {
		cfg.Profile.Mode = o.Profile
	}
	return nil
}

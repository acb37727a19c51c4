package main

import (
	"io"
	"os"
	"strconv"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/pkg/profile"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/TheBitDrifter/verlet/config"
	"github.com/TheBitDrifter/verlet/physics"
	"github.com/TheBitDrifter/verlet/sim"
	"github.com/TheBitDrifter/verlet/vmath"
	"github.com/TheBitDrifter/verlet/warehouse"
)

type runFlags struct {
	config  string
	scene   string
	frames  int
	dt      float32
	profile string
	stats   string
}

// Report is the JSON document written after a run.
type Report struct {
	RunID     string        `json:"run_id"`
	Scene     string        `json:"scene"`
	Frames    int           `json:"frames"`
	FrameTime float32       `json:"frame_time"`
	Particles int           `json:"particles"`
	Wall      float64       `json:"wall_seconds"`
	Stats     physics.Stats `json:"stats"`
}

func newRunCmd() *cobra.Command {
	var f runFlags
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Simulate a scene for a number of frames",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, f)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.config, "config", "", "TOML config file")
	flags.StringVar(&f.scene, "scene", "", "scene file (.yaml, .yml or .json), overrides simulation.scene")
	flags.IntVar(&f.frames, "frames", 0, "frames to simulate, overrides simulation.frames")
	flags.Float32Var(&f.dt, "dt", 0, "frame time in seconds, overrides simulation.frame_time")
	flags.StringVar(&f.profile, "profile", "", "cpu, mem, block, mutex or trace, overrides profile.mode")
	flags.StringVar(&f.stats, "stats", "-", "file for the JSON report, - for stdout")
	return cmd
}

func run(cmd *cobra.Command, f runFlags) error {
	cfg, err := config.Load(f.config)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("scene") {
		cfg.Simulation.Scene = f.scene
	}
	if flags.Changed("frames") {
		cfg.Simulation.Frames = f.frames
	}
	if flags.Changed("dt") {
		cfg.Simulation.FrameTime = f.dt
	}
	if flags.Changed("profile") {
		cfg.Profile.Mode = f.profile
	}
	if err := cfg.Validate(); err != nil {
		return eris.Wrap(err, "flags")
	}

	log, err := config.NewLogger(cfg.Logging)
	if err != nil {
		return eris.Wrap(err, "create logger")
	}
	defer log.Sync() //nolint:errcheck

	runID := uuid.New().String()
	log = log.With(zap.String("run_id", runID))

	warehouse.Config.SetInitialRows(cfg.Simulation.InitialRows)

	scene, name, err := loadScene(cfg.Simulation.Scene)
	if err != nil {
		return err
	}

	s, err := scene.Build(cfg.Solver.Settings(),
		sim.WithLogger(log),
		sim.WithWorkers(cfg.Simulation.Workers),
		sim.WithStatsInterval(cfg.Simulation.StatsInterval),
	)
	if err != nil {
		return err
	}
	defer s.Close()

	log.Info("run started",
		zap.String("scene", name),
		zap.Int("frames", cfg.Simulation.Frames),
		zap.Stringer("update_mode", cfg.Solver.UpdateMode),
		zap.Int("workers", s.World().Pool().ThreadCount()),
	)

	stop := startProfile(cfg.Profile)
	start := time.Now()
	for i := 0; i < cfg.Simulation.Frames; i++ {
		if err := s.Update(cfg.Simulation.FrameTime); err != nil {
			stop()
			return eris.Wrapf(err, "frame %d", i)
		}
	}
	wall := time.Since(start)
	stop()

	report := Report{
		RunID:     runID,
		Scene:     name,
		Frames:    cfg.Simulation.Frames,
		FrameTime: cfg.Simulation.FrameTime,
		Particles: s.ParticleCount(),
		Wall:      wall.Seconds(),
		Stats:     s.Stats(),
	}
	log.Info("run finished",
		zap.Int("particles", report.Particles),
		zap.Uint64("substeps", report.Stats.Substeps),
		zap.Duration("wall", wall),
		zap.Int64("job_faults", s.World().Pool().Faults()),
	)
	return writeReport(cmd.OutOrStdout(), f.stats, report)
}

// loadScene reads path, or returns the built-in demo scene when path is empty.
func loadScene(path string) (*sim.Scene, string, error) {
	if path == "" {
		return demoScene(), "demo", nil
	}
	scene, err := sim.LoadScene(path)
	if err != nil {
		return nil, "", err
	}
	return scene, path, nil
}

// demoScene is a box with a fountain and a short pendulum chain.
func demoScene() *sim.Scene {
	fountain := sim.DefaultSpawnerSettings()
	fountain.Direction = 180
	fountain.DirectionVariation = 30
	fountain.ColorMode = sim.ColorShiftHue
	fountain.ConditionValue = 1000

	sc := &sim.Scene{
		Shape: sim.ShapeDef{Type: "rect", Size: vmath.New(800, 600)},
		Spawners: []sim.SpawnerDef{
			{Position: vmath.New(0, -250), Settings: fountain},
		},
		ForceFields: []sim.ForceFieldDef{
			{Position: vmath.New(250, 0), Settings: physics.DefaultForceFieldSettings()},
		},
	}

	anchor := sim.DefaultParticleDef()
	anchor.Name = "p0"
	anchor.Position = vmath.New(-250, 250)
	anchor.Pinned = true
	sc.Particles = append(sc.Particles, anchor)
	for i := 1; i <= 5; i++ {
		p := sim.DefaultParticleDef()
		p.Name = "p" + strconv.Itoa(i)
		p.Position = vmath.New(-250+float32(i)*12, 250)
		sc.Particles = append(sc.Particles, p)
		link := sim.LinkSceneDef{A: sc.Particles[i-1].Name, B: p.Name, LinkDef: sim.DefaultLinkDef()}
		sc.Links = append(sc.Links, link)
	}
	return sc
}

func startProfile(cfg config.ProfileConfig) func() {
	var mode func(*profile.Profile)
	switch cfg.Mode {
	case "cpu":
		mode = profile.CPUProfile
	case "mem":
		mode = profile.MemProfileAllocs
	case "block":
		mode = profile.BlockProfile
	case "mutex":
		mode = profile.MutexProfile
	case "trace":
		mode = profile.TraceProfile
	default:
		return func() {}
	}
	p := profile.Start(mode, profile.ProfilePath(cfg.Path), profile.NoShutdownHook, profile.Quiet)
	return p.Stop
}

func writeReport(stdout io.Writer, path string, report Report) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return eris.Wrap(err, "encode report")
	}
	data = append(data, '\n')
	if path == "-" || path == "" {
		_, err = stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrapf(err, "write report %s", path)
	}
	return nil
}

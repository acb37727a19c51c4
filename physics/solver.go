// Package physics is a substepped Verlet solver that runs on top of the
// warehouse ECS. Each substep buckets particles into a partitioning grid,
// resolves overlaps in parallel grid stripes, integrates every particle in
// parallel and finally projects link constraints.
package physics

import (
	"go.uber.org/zap"

	"github.com/TheBitDrifter/verlet/partition"
	"github.com/TheBitDrifter/verlet/pool"
	"github.com/TheBitDrifter/verlet/warehouse"
)

// body is a grid entry aliasing one particle row.
type body struct {
	t *Transform
	p *Particle
}

type Solver struct {
	world    *warehouse.World
	pool     *pool.Pool
	shape    Shape
	settings Settings
	log      *zap.Logger

	grid   *partition.Grid[body]
	bodies *warehouse.Query2[Transform, Particle]
	fields *warehouse.Query1[ForceField]
	links  *warehouse.Query1[Link]

	accumulator  float32
	activeFields []ForceField

	broadPhase  *FrameCounter
	narrowPhase *FrameCounter
	integrate   *FrameCounter
	linkPhase   *FrameCounter

	frames   uint64
	groups   uint64
	substeps uint64

	logEvery float32
	sinceLog float32
}

type solverOptions struct {
	log         *zap.Logger
	statsWindow float64
	logEvery    float32
}

type SolverOption func(*solverOptions)

// WithLogger logs construction and, once per simulated second, the stats.
func WithLogger(log *zap.Logger) SolverOption {
	return func(o *solverOptions) {
		if log != nil {
			o.log = log
		}
	}
}

func WithStatsWindow(seconds float64) SolverOption {
	return func(o *solverOptions) {
		o.statsWindow = seconds
	}
}

// WithStatsInterval sets how much frame time passes between stats log lines.
// Zero disables them.
func WithStatsInterval(seconds float32) SolverOption {
	return func(o *solverOptions) {
		o.logEvery = seconds
	}
}

func NewSolver(world *warehouse.World, shape Shape, settings Settings, opts ...SolverOption) (*Solver, error) {
	o := solverOptions{
		log:         zap.NewNop(),
		statsWindow: DefaultStatsWindow,
		logEvery:    1,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if shape == nil {
		return nil, NilShapeError{}
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	lo, hi := shape.Bounds()
	s := &Solver{
		world:       world,
		pool:        world.Pool(),
		shape:       shape,
		settings:    settings,
		log:         o.log,
		grid:        partition.NewGrid[body](lo, hi, settings.PartitioningSize),
		bodies:      warehouse.NewQuery2[Transform, Particle](world),
		fields:      warehouse.NewQuery1[ForceField](world),
		links:       warehouse.NewQuery1[Link](world),
		broadPhase:  NewFrameCounter(o.statsWindow),
		narrowPhase: NewFrameCounter(o.statsWindow),
		integrate:   NewFrameCounter(o.statsWindow),
		linkPhase:   NewFrameCounter(o.statsWindow),
		logEvery:    o.logEvery,
	}
	s.log.Debug("solver created",
		zap.Stringer("update_mode", settings.UpdateMode),
		zap.Int("substeps", settings.substeps()),
		zap.Int("cells_x", s.grid.CellsX()),
		zap.Int("cells_y", s.grid.CellsY()),
		zap.Int("threads", s.pool.ThreadCount()),
	)
	return s, nil
}

func (s *Solver) Settings() Settings {
	return s.settings
}

// SetSettings swaps the settings, rebuilding the grid when the cell size
// changes. The accumulator is kept.
func (s *Solver) SetSettings(settings Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	if settings.PartitioningSize != s.settings.PartitioningSize {
		lo, hi := s.shape.Bounds()
		s.grid.Resize(lo, hi, settings.PartitioningSize)
	}
	s.settings = settings
	return nil
}

func (s *Solver) Shape() Shape {
	return s.shape
}

// Update advances the simulation by one frame of dt seconds. A frame dt that
// is not positive counts as zero: FrameFixed still steps, the other modes
// leave the particles where they are.
func (s *Solver) Update(dt float32) {
	if !(dt > 0) {
		dt = 0
	}
	switch s.settings.UpdateMode {
	case FrameVariable:
		if dt > 0 {
			s.Step(dt)
		}
	case FrameFixed:
		s.Step(s.settings.Timestep)
	case FixedRate:
		s.accumulator += min(dt, maxFrameTime)
		for s.accumulator >= s.settings.Timestep {
			s.Step(s.settings.Timestep)
			s.accumulator -= s.settings.Timestep
		}
	default:
		panic(UnknownUpdateModeError{Mode: s.settings.UpdateMode})
	}
	s.collectStats(dt)
}

// Step runs one substep group covering dt seconds. It does nothing unless dt
// is positive.
func (s *Solver) Step(dt float32) {
	if !(dt > 0) {
		return
	}
	steps := s.settings.substeps()
	stepDt := dt / float32(steps)
	for i := 0; i < steps; i++ {
		if s.settings.Collisions {
			s.collide()
		}
		s.updateObjects(stepDt)
		s.solveLinks()
		s.substeps++
	}
	s.groups++
}

func (s *Solver) collide() {
	s.broadPhase.BeginSubFrame()
	s.fillGrid()
	s.broadPhase.EndSubFrame()

	s.narrowPhase.BeginSubFrame()
	s.solveGrid()
	s.narrowPhase.EndSubFrame()
}

func (s *Solver) collectStats(dt float32) {
	s.frames++
	s.broadPhase.EndFrame()
	s.narrowPhase.EndFrame()
	s.integrate.EndFrame()
	s.linkPhase.EndFrame()

	if s.logEvery <= 0 {
		return
	}
	s.sinceLog += dt
	if s.sinceLog < s.logEvery {
		return
	}
	s.sinceLog = 0
	stats := s.Stats()
	s.log.Info("solver stats",
		zap.Uint64("frames", stats.Frames),
		zap.Uint64("groups", stats.Groups),
		zap.Int("particles", stats.Particles),
		zap.Float64("narrow_ms", stats.NarrowPhase.Frametime*1000),
		zap.Float64("integrate_ms", stats.Integrate.Frametime*1000),
	)
}

// Stats returns the counters and rolling phase timings.
func (s *Solver) Stats() Stats {
	return Stats{
		Frames:      s.frames,
		Groups:      s.groups,
		Substeps:    s.substeps,
		Particles:   s.bodies.Count(),
		BroadPhase:  s.broadPhase.snapshot(),
		NarrowPhase: s.narrowPhase.snapshot(),
		Integrate:   s.integrate.snapshot(),
		Links:       s.linkPhase.snapshot(),
	}
}

// Package sim is a headless authoring layer over the warehouse ECS and the
// physics solver. It creates particles, links, force fields and spawners and
// drives them frame by frame.
package sim

import (
	"go.uber.org/zap"

	"github.com/TheBitDrifter/verlet/physics"
	"github.com/TheBitDrifter/verlet/vmath"
	"github.com/TheBitDrifter/verlet/warehouse"
)

var (
	transformComponent = warehouse.FactoryNewComponent[physics.Transform]()
	particleComponent  = warehouse.FactoryNewComponent[physics.Particle]()
	colorComponent     = warehouse.FactoryNewComponent[RenderColor]()
)

// ParticleDef describes one particle. Impulse is applied at the first
// integration as a force over one second.
type ParticleDef struct {
	Name       string     `yaml:"name,omitempty" json:"name,omitempty"`
	Position   vmath.Vec2 `yaml:"position" json:"position"`
	Radius     float32    `yaml:"radius" json:"radius"`
	Mass       float32    `yaml:"mass" json:"mass"`
	Bounciness float32    `yaml:"bounciness" json:"bounciness"`
	Pinned     bool       `yaml:"pinned" json:"pinned"`
	Color      Color      `yaml:"color" json:"color"`
	Impulse    vmath.Vec2 `yaml:"impulse" json:"impulse"`
}

// DefaultParticleDef is a white unit-mass particle of radius 5.
func DefaultParticleDef() ParticleDef {
	return ParticleDef{Radius: 5, Mass: 1, Color: White}
}

// LinkDef describes a distance constraint. A zero Distance uses the current
// distance between the endpoints.
type LinkDef struct {
	Distance        float32 `yaml:"distance" json:"distance"`
	RestrictShrink  bool    `yaml:"restrict_shrink" json:"restrict_shrink"`
	RestrictStretch bool    `yaml:"restrict_stretch" json:"restrict_stretch"`
}

func DefaultLinkDef() LinkDef {
	return LinkDef{RestrictShrink: true, RestrictStretch: true}
}

type ForceFieldDef struct {
	Position vmath.Vec2                 `yaml:"position" json:"position"`
	Settings physics.ForceFieldSettings `yaml:"settings" json:"settings"`
}

type Simulation struct {
	world     *warehouse.World
	solver    *physics.Solver
	spawners  []*Spawner
	render    *warehouse.Query2[physics.Transform, RenderColor]
	particles *warehouse.Query1[physics.Particle]
	log       *zap.Logger
}

type options struct {
	log           *zap.Logger
	workers       int
	statsInterval float32
}

type Option func(*options)

func WithLogger(log *zap.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

// WithWorkers sizes the simulation's thread pool. Zero uses GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithStatsInterval forwards to physics.WithStatsInterval.
func WithStatsInterval(seconds float32) Option {
	return func(o *options) {
		o.statsInterval = seconds
	}
}

// New creates a world and a solver bounded by shape.
func New(shape physics.Shape, settings physics.Settings, opts ...Option) (*Simulation, error) {
	o := options{log: zap.NewNop(), statsInterval: 1}
	for _, opt := range opts {
		opt(&o)
	}

	world := warehouse.Factory.NewWorld(
		warehouse.WithWorkers(o.workers),
		warehouse.WithLogger(o.log),
	)
	solver, err := physics.NewSolver(world, shape, settings,
		physics.WithLogger(o.log),
		physics.WithStatsInterval(o.statsInterval),
	)
	if err != nil {
		world.Close()
		return nil, err
	}

	return &Simulation{
		world:     world,
		solver:    solver,
		render:    warehouse.NewQuery2[physics.Transform, RenderColor](world),
		particles: warehouse.NewQuery1[physics.Particle](world),
		log:       o.log,
	}, nil
}

func (s *Simulation) World() *warehouse.World {
	return s.world
}

func (s *Simulation) Solver() *physics.Solver {
	return s.solver
}

func (s *Simulation) Spawners() []*Spawner {
	return s.spawners
}

// AddParticle creates a Transform, RenderColor and Particle entity at rest.
func (s *Simulation) AddParticle(def ParticleDef) (warehouse.Entity, error) {
	if !(def.Radius > 0) {
		return 0, InvalidParticleError{Reason: "radius must be positive"}
	}
	if def.Mass < 0 {
		return 0, InvalidParticleError{Reason: "mass must not be negative"}
	}
	if def.Mass == 0 && !def.Pinned {
		return 0, InvalidParticleError{Reason: "mass must be positive unless pinned"}
	}

	p := physics.NewParticle(def.Position, def.Radius, def.Mass, def.Bounciness)
	p.Pinned = def.Pinned
	p.AddImpulse(def.Impulse)

	return s.world.NewEntity(
		transformComponent.With(physics.Transform{Position: def.Position, Scale: def.Radius * 2}),
		colorComponent.With(RenderColor{Value: def.Color}),
		particleComponent.With(p),
	)
}

// AddLink connects two particles. Both endpoints are checked once here;
// the solver skips links whose endpoints later stop resolving.
func (s *Simulation) AddLink(a, b warehouse.Entity, def LinkDef) (warehouse.Entity, error) {
	if a == b {
		return 0, SelfLinkError{Entity: a}
	}
	for _, e := range []warehouse.Entity{a, b} {
		if !transformComponent.CheckEntity(s.world, e) || !particleComponent.CheckEntity(s.world, e) {
			return 0, NotLinkableError{Entity: e}
		}
	}

	distance := def.Distance
	if distance <= 0 {
		distance = vmath.Distance(
			transformComponent.GetFromEntity(s.world, a).Position,
			transformComponent.GetFromEntity(s.world, b).Position,
		)
	}
	return s.world.NewEntity(warehouse.ValueOf(physics.Link{
		A:               a,
		B:               b,
		Distance:        distance,
		RestrictShrink:  def.RestrictShrink,
		RestrictStretch: def.RestrictStretch,
	}))
}

func (s *Simulation) AddForceField(def ForceFieldDef) (warehouse.Entity, error) {
	return s.world.NewEntity(warehouse.ValueOf(physics.ForceField{
		Settings: def.Settings,
		Position: def.Position,
	}))
}

func (s *Simulation) AddSpawner(position vmath.Vec2, settings SpawnerSettings) *Spawner {
	sp := NewSpawner(position, settings)
	s.spawners = append(s.spawners, sp)
	return sp
}

// Update runs every spawner and then advances the solver by one frame.
func (s *Simulation) Update(dt float32) error {
	for _, sp := range s.spawners {
		if err := sp.Update(s, dt); err != nil {
			return err
		}
	}
	s.solver.Update(dt)
	return nil
}

func (s *Simulation) ParticleCount() int {
	return s.particles.Count()
}

// Snapshot hands out positions and colours in chunks of at most chunkSize
// rows, the way an instanced renderer consumes them. The slices alias the
// columns and are only valid inside fn.
func (s *Simulation) Snapshot(chunkSize int, fn func([]physics.Transform, []RenderColor)) {
	s.render.EachChunk(chunkSize, fn)
}

func (s *Simulation) Stats() physics.Stats {
	return s.solver.Stats()
}

func (s *Simulation) Close() {
	s.world.Close()
}

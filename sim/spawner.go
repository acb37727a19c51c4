package sim

import (
	"math/rand"

	"go.uber.org/zap"

	"github.com/TheBitDrifter/verlet/vmath"
)

// SpawnerSettings configures a particle emitter. Angles are in degrees and
// durations in seconds.
type SpawnerSettings struct {
	SpawnRate      float32 `yaml:"spawn_rate" json:"spawn_rate"`
	ScaleSpawnRate bool    `yaml:"scale_spawn_rate" json:"scale_spawn_rate"`

	Size       vmath.Vec2 `yaml:"size" json:"size"`
	Mass       float32    `yaml:"mass" json:"mass"`
	ScaleMass  bool       `yaml:"scale_mass" json:"scale_mass"`
	Bounciness float32    `yaml:"bounciness" json:"bounciness"`

	ColorMode          ColorMode  `yaml:"color_mode" json:"color_mode"`
	Color              Color      `yaml:"color" json:"color"`
	ColorShift         RepeatMode `yaml:"color_shift" json:"color_shift"`
	ColorShiftDuration float32    `yaml:"color_shift_duration" json:"color_shift_duration"`

	Direction          float32    `yaml:"direction" json:"direction"`
	DirectionVariation float32    `yaml:"direction_variation" json:"direction_variation"`
	Force              vmath.Vec2 `yaml:"force" json:"force"`
	ScaleForce         bool       `yaml:"scale_force" json:"scale_force"`

	Rotation         Rotation   `yaml:"rotation" json:"rotation"`
	RotationStart    float32    `yaml:"rotation_start" json:"rotation_start"`
	RotationLimit    float32    `yaml:"rotation_limit" json:"rotation_limit"`
	RotationDuration float32    `yaml:"rotation_duration" json:"rotation_duration"`
	RotationRepeat   RepeatMode `yaml:"rotation_repeat" json:"rotation_repeat"`

	InitialDelay   float32        `yaml:"initial_delay" json:"initial_delay"`
	Condition      SpawnCondition `yaml:"condition" json:"condition"`
	ConditionValue float32        `yaml:"condition_value" json:"condition_value"`

	// Seed feeds the spawner's random source so runs are reproducible.
	Seed int64 `yaml:"seed" json:"seed"`
}

func DefaultSpawnerSettings() SpawnerSettings {
	return SpawnerSettings{
		SpawnRate:          0.5,
		ScaleSpawnRate:     true,
		Size:               vmath.New(3, 7.5),
		Mass:               1,
		ScaleMass:          true,
		Bounciness:         0.1,
		ColorMode:          ColorFixed,
		Color:              White,
		ColorShift:         Repeat,
		ColorShiftDuration: 10,
		Force:              vmath.New(350, 350),
		ScaleForce:         true,
		Rotation:           RotateNone,
		RotationLimit:      90,
		RotationDuration:   5,
		RotationRepeat:     Reverse,
		Condition:          SpawnLocalAmount,
		ConditionValue:     500,
		Seed:               1,
	}
}

// DirVector is the spawn direction rotated by offset degrees. Zero points
// along -Y.
func (s SpawnerSettings) DirVector(offset float32) vmath.Vec2 {
	return vmath.New(0, -1).Rotate(s.Direction + offset)
}

// Spawner emits particles into a Simulation at a fixed position.
type Spawner struct {
	position vmath.Vec2
	settings SpawnerSettings
	rng      *rand.Rand

	time       float32
	spawnTimer float32
	spawned    int
	exhausted  bool
}

func NewSpawner(position vmath.Vec2, settings SpawnerSettings) *Spawner {
	return &Spawner{
		position: position,
		settings: settings,
		rng:      rand.New(rand.NewSource(settings.Seed)),
	}
}

func (s *Spawner) Position() vmath.Vec2 {
	return s.position
}

func (s *Spawner) Settings() SpawnerSettings {
	return s.settings
}

// Spawned is the number of particles this spawner created.
func (s *Spawner) Spawned() int {
	return s.spawned
}

// Update advances the spawner clock and emits at most one particle.
func (s *Spawner) Update(sim *Simulation, dt float32) error {
	s.time += dt
	if !s.CanSpawn(sim.ParticleCount()) {
		if s.time >= s.settings.InitialDelay && !s.exhausted {
			s.exhausted = true
			sim.log.Debug("spawner exhausted",
				zap.Stringer("condition", s.settings.Condition),
				zap.Int("spawned", s.spawned),
			)
		}
		return nil
	}

	s.spawnTimer -= dt
	if s.spawnTimer > 0 {
		return nil
	}
	next, err := s.spawn(sim)
	if err != nil {
		return err
	}
	s.spawnTimer = next
	return nil
}

// CanSpawn reports whether the delay has passed and the spawn condition
// still holds with the given global particle count.
func (s *Spawner) CanSpawn(particles int) bool {
	if s.time < s.settings.InitialDelay {
		return false
	}

	var value float32
	switch s.settings.Condition {
	case SpawnDuration:
		value = s.time - s.settings.InitialDelay
	case SpawnLocalAmount:
		value = float32(s.spawned)
	case SpawnGlobalAmount:
		value = float32(particles)
	}
	return value < s.settings.ConditionValue
}

// spawn adds one particle and returns the time until the next one.
func (s *Spawner) spawn(sim *Simulation) (float32, error) {
	st := s.settings
	r := s.rangeOf(st.Size.X, st.Size.Y)
	m := st.Mass
	if st.ScaleMass {
		m *= r
	}
	f := s.rangeOf(st.Force.X, st.Force.Y)
	if st.ScaleForce {
		f *= m
	}
	dirOffset := s.rangeOf(-st.DirectionVariation, st.DirectionVariation) * 0.5

	_, err := sim.AddParticle(ParticleDef{
		Position:   s.position,
		Radius:     r,
		Mass:       m,
		Bounciness: st.Bounciness,
		Color:      s.particleColor(),
		Impulse:    st.DirVector(dirOffset + s.rotationOffset()).Scale(f),
	})
	if err != nil {
		return 0, err
	}
	s.spawned++

	next := st.SpawnRate
	if st.ScaleSpawnRate {
		next *= r
	}
	return next, nil
}

// rangeOf draws uniformly from [lo, hi), or returns hi for an empty range.
func (s *Spawner) rangeOf(lo, hi float32) float32 {
	if lo >= hi {
		return hi
	}
	return lo + s.rng.Float32()*(hi-lo)
}

func (s *Spawner) particleColor() Color {
	st := s.settings
	hsv := st.Color.ToHSV()
	switch st.ColorMode {
	case ColorRandomHue:
		hsv.H = s.rng.Float32()
	case ColorShiftHue:
		hsv.H += animParam(s.time-st.InitialDelay, st.ColorShiftDuration, st.ColorShift)
	default:
		return st.Color
	}
	c := FromHSV(hsv.H, hsv.S, hsv.V)
	c.A = st.Color.A
	return c
}

// rotationOffset sweeps the spawn direction across RotationLimit degrees.
// RotationStart in [0, 1] picks where in the sweep the spawner begins.
func (s *Spawner) rotationOffset() float32 {
	st := s.settings
	base := -st.RotationStart * st.RotationLimit
	t := animParam(s.time-st.InitialDelay+st.RotationStart*st.RotationDuration, st.RotationDuration, st.RotationRepeat)
	switch st.Rotation {
	case RotateLinear:
		return t*st.RotationLimit + base
	case RotateSmoothStep:
		return vmath.SmoothStep(t)*st.RotationLimit + base
	case RotateSmootherStep:
		return vmath.SmootherStep(t)*st.RotationLimit + base
	}
	return 0
}

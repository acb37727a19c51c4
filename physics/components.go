package physics

import (
	"github.com/TheBitDrifter/verlet/vmath"
	"github.com/TheBitDrifter/verlet/warehouse"
)

// Transform places an entity in the world. Scale is the rendered diameter.
type Transform struct {
	Position vmath.Vec2
	Scale    float32
}

// Particle is a Verlet body. Velocity is implicit in Position - PrevPos and
// Acc collects impulses applied since the last integration.
type Particle struct {
	Radius     float32
	Mass       float32
	Bounciness float32
	Pinned     bool
	PrevPos    vmath.Vec2
	Acc        vmath.Vec2
}

// NewParticle returns a particle at rest at pos.
func NewParticle(pos vmath.Vec2, radius, mass, bounciness float32) Particle {
	return Particle{
		Radius:     radius,
		Mass:       mass,
		Bounciness: bounciness,
		PrevPos:    pos,
	}
}

// InvMass is zero for pinned or massless particles.
func (p *Particle) InvMass() float32 {
	if p.Pinned || p.Mass <= 0 {
		return 0
	}
	return 1 / p.Mass
}

// Velocity is the displacement over the last step.
func (p *Particle) Velocity(pos vmath.Vec2) vmath.Vec2 {
	return pos.Sub(p.PrevPos)
}

// AddImpulse queues a force that is applied over one second of simulation at
// the next integration.
func (p *Particle) AddImpulse(f vmath.Vec2) {
	p.Acc = p.Acc.Add(f)
}

// Link keeps two particle entities at Distance. RestrictShrink resists
// compression and RestrictStretch resists extension.
type Link struct {
	A, B            warehouse.Entity
	Distance        float32
	RestrictShrink  bool
	RestrictStretch bool
}

// ForceField applies its settings around Position to every particle.
type ForceField struct {
	Settings ForceFieldSettings
	Position vmath.Vec2
}

package physics

import "github.com/TheBitDrifter/verlet/vmath"

// gatherFields snapshots the force fields so integration jobs only read them.
func (s *Solver) gatherFields() []ForceField {
	s.activeFields = s.activeFields[:0]
	s.fields.Each(func(f *ForceField) {
		s.activeFields = append(s.activeFields, *f)
	})
	return s.activeFields
}

// updateObjects integrates every free particle over dt on the pool.
func (s *Solver) updateObjects(dt float32) {
	s.integrate.BeginSubFrame()
	defer s.integrate.EndSubFrame()

	fields := s.gatherFields()
	gravity := s.settings.Gravity
	shape := s.shape
	s.bodies.EachParallel(0, func(t *Transform, p *Particle) {
		integrateParticle(t, p, dt, gravity, fields, shape)
	})
}

func integrateParticle(t *Transform, p *Particle, dt float32, gravity vmath.Vec2, fields []ForceField, shape Shape) {
	if p.Pinned {
		return
	}

	// impulses are stored as force over one second
	acc := p.Acc.Scale(1 / dt).Scale(p.InvMass())
	acc = acc.Add(gravity)
	for i := range fields {
		acc = acc.Add(fields[i].AccelerationAt(t.Position, p))
	}
	p.Acc = acc

	shape.Constrain(&t.Position, p)

	pos := t.Position
	vel := pos.Sub(p.PrevPos)
	p.PrevPos = pos
	t.Position = pos.Add(vel).Add(p.Acc.Scale(dt * dt))
	p.Acc = vmath.Zero
}

package physics

import (
	"github.com/TheBitDrifter/verlet/vmath"
	"github.com/TheBitDrifter/verlet/warehouse"
)

// solveLinks projects every link sequentially; links may share endpoints.
func (s *Solver) solveLinks() {
	s.linkPhase.BeginSubFrame()
	defer s.linkPhase.EndSubFrame()

	s.links.Each(func(l *Link) {
		a, okA := s.endpoint(l.A)
		b, okB := s.endpoint(l.B)
		if !okA || !okB {
			return
		}
		solveLink(l, a, b)
	})
}

func (s *Solver) endpoint(e warehouse.Entity) (body, bool) {
	t, ok := warehouse.Lookup[Transform](s.world, e)
	if !ok {
		return body{}, false
	}
	p, ok := warehouse.Lookup[Particle](s.world, e)
	if !ok {
		return body{}, false
	}
	return body{t: t, p: p}, true
}

// solveLink moves both endpoints towards the rest distance. A link only acts
// in the directions it restricts.
func solveLink(l *Link, a, b body) {
	dir := a.t.Position.Sub(b.t.Position)
	dst := vmath.Sqrt(max(dir.SqrLength(), minSqrDistance))
	diff := dst - l.Distance
	switch {
	case diff > 0 && !l.RestrictStretch:
		return
	case diff < 0 && !l.RestrictShrink:
		return
	case diff == 0:
		return
	}
	invA, invB := a.p.InvMass(), b.p.InvMass()
	invSum := invA + invB
	if invSum == 0 {
		return
	}
	n := dir.Div(dst)
	a.t.Position = a.t.Position.Sub(n.Scale(diff * invA / invSum))
	b.t.Position = b.t.Position.Add(n.Scale(diff * invB / invSum))
}

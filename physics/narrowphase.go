package physics

import (
	"github.com/TheBitDrifter/verlet/pool"
	"github.com/TheBitDrifter/verlet/vmath"
)

// minSqrDistance keeps coincident centres from dividing by zero.
const minSqrDistance = 0.001

// neighbourOffsets covers every unordered pair of adjacent cells once.
var neighbourOffsets = [4][2]int{{1, 1}, {1, 0}, {1, -1}, {0, -1}}

// fillGrid clears the grid and inserts every particle row.
func (s *Solver) fillGrid() {
	s.grid.Clear()
	s.bodies.EachChunk(0, func(ts []Transform, ps []Particle) {
		for i := range ts {
			s.grid.Insert(ts[i].Position, body{t: &ts[i], p: &ps[i]})
		}
	})
}

// solveGrid resolves overlaps stripe by stripe. A stripe of columns also
// writes into the first column of the next stripe, so even stripes run
// together first and odd stripes after them.
func (s *Solver) solveGrid() {
	cellsX := s.grid.CellsX()
	stripes := pool.SplitWork(cellsX, min(cellsX, 2*s.pool.ThreadCount()))
	for parity := 0; parity < 2; parity++ {
		for i := parity; i < len(stripes); i += 2 {
			stripe := stripes[i]
			if stripe.Amount == 0 {
				continue
			}
			s.pool.Enqueue(func() {
				s.solveColumns(stripe.Offset, stripe.End())
			})
		}
		s.pool.WaitForCompletion()
	}
}

func (s *Solver) solveColumns(from, to int) {
	cellsY := s.grid.CellsY()
	for x := from; x < to; x++ {
		for y := 0; y < cellsY; y++ {
			cell := s.grid.At(x, y)
			solveCell(cell)
			for _, off := range neighbourOffsets {
				nx, ny := x+off[0], y+off[1]
				if !s.grid.InBounds(nx, ny) {
					continue
				}
				solveCells(cell, s.grid.At(nx, ny))
			}
		}
	}
}

func solveCell(cell []body) {
	for i := range cell {
		for k := i + 1; k < len(cell); k++ {
			solvePair(cell[i], cell[k])
		}
	}
}

func solveCells(a, b []body) {
	for i := range a {
		for k := range b {
			solvePair(a[i], b[k])
		}
	}
}

// solvePair pushes two overlapping particles apart along their centre line,
// split by inverse mass. Two immovable particles are left alone.
func solvePair(a, b body) {
	dir := a.t.Position.Sub(b.t.Position)
	sqr := max(dir.SqrLength(), minSqrDistance)
	r := a.p.Radius + b.p.Radius
	if sqr >= r*r {
		return
	}
	invA, invB := a.p.InvMass(), b.p.InvMass()
	invSum := invA + invB
	if invSum == 0 {
		return
	}
	dst := vmath.Sqrt(sqr)
	n := dir.Div(dst)
	overlap := r - dst
	a.t.Position = a.t.Position.Add(n.Scale(overlap * invA / invSum))
	b.t.Position = b.t.Position.Sub(n.Scale(overlap * invB / invSum))
}

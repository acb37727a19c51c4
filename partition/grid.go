// Package partition buckets 2D entries into a uniform grid of cells so that
// collision candidates can be found by looking at a cell and its neighbours.
package partition

import (
	"math"

	"github.com/TheBitDrifter/verlet/vmath"
)

// reservedPerCell is the capacity each bucket starts with.
const reservedPerCell = 16

// Grid is a uniform grid over an axis-aligned box. Entries outside the box
// are clamped into the border cells. A Grid is filled by one goroutine and
// may then be read concurrently until the next Clear.
type Grid[E any] struct {
	min      vmath.Vec2
	max      vmath.Vec2
	cellSize float32
	cellsX   int
	cellsY   int
	cells    [][]E
	count    int
}

// NewGrid covers [min, max] with square cells of cellSize. Each axis gets at
// least one cell.
func NewGrid[E any](min, max vmath.Vec2, cellSize float32) *Grid[E] {
	g := &Grid[E]{}
	g.Resize(min, max, cellSize)
	return g
}

func cellCount(extent, cellSize float32) int {
	if cellSize <= 0 || extent <= 0 {
		return 1
	}
	return max(1, int(math.Ceil(float64(extent/cellSize))))
}

// Resize rebuilds the cell layout and drops every entry.
func (g *Grid[E]) Resize(min, max vmath.Vec2, cellSize float32) {
	g.min = vmath.Min(min, max)
	g.max = vmath.Max(min, max)
	g.cellSize = cellSize
	size := g.max.Sub(g.min)
	g.cellsX = cellCount(size.X, cellSize)
	g.cellsY = cellCount(size.Y, cellSize)

	g.cells = make([][]E, g.cellsX*g.cellsY)
	for i := range g.cells {
		g.cells[i] = make([]E, 0, reservedPerCell)
	}
	g.count = 0
}

// Clear empties every cell and keeps the allocated capacity.
func (g *Grid[E]) Clear() {
	for i := range g.cells {
		clear(g.cells[i])
		g.cells[i] = g.cells[i][:0]
	}
	g.count = 0
}

func axisCell(p, lo, hi float32, cells int) int {
	extent := hi - lo
	if extent <= 0 {
		return 0
	}
	f := (p - lo) / extent * float32(cells)
	if !(f > 0) {
		return 0
	}
	if f >= float32(cells) {
		return cells - 1
	}
	return int(f)
}

// CellOf maps pos to its cell coordinates, clamped into the grid.
func (g *Grid[E]) CellOf(pos vmath.Vec2) (x, y int) {
	return axisCell(pos.X, g.min.X, g.max.X, g.cellsX),
		axisCell(pos.Y, g.min.Y, g.max.Y, g.cellsY)
}

// Insert places e in the cell containing pos.
func (g *Grid[E]) Insert(pos vmath.Vec2, e E) {
	x, y := g.CellOf(pos)
	i := y*g.cellsX + x
	g.cells[i] = append(g.cells[i], e)
	g.count++
}

// At returns the entries of cell (x, y). The slice aliases grid storage.
func (g *Grid[E]) At(x, y int) []E {
	return g.cells[y*g.cellsX+x]
}

// InBounds reports whether (x, y) names a cell.
func (g *Grid[E]) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.cellsX && y < g.cellsY
}

func (g *Grid[E]) CellsX() int {
	return g.cellsX
}

func (g *Grid[E]) CellsY() int {
	return g.cellsY
}

func (g *Grid[E]) CellSize() float32 {
	return g.cellSize
}

func (g *Grid[E]) Bounds() (min, max vmath.Vec2) {
	return g.min, g.max
}

// Len is the number of entries inserted since the last Clear.
func (g *Grid[E]) Len() int {
	return g.count
}

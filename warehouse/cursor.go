package warehouse

import (
	"iter"
)

var _ iCursor = &Cursor{}

func newCursor(query QueryNode, world *World) *Cursor {
	return &Cursor{
		query: query,
		world: world,
		row:   -1,
	}
}

// Next advances to the next matching row. The world stays locked from the
// first call until iteration ends or Reset is called.
func (c *Cursor) Next() bool {
	if !c.active {
		c.start()
	}
	for c.archIdx < len(c.matched) {
		c.row++
		if c.row < c.matched[c.archIdx].Len() {
			return true
		}
		c.archIdx++
		c.row = -1
	}
	c.Reset()
	return false
}

// Entities yields the zero-based row and archetype of every match.
func (c *Cursor) Entities() iter.Seq2[int, Archetype] {
	return func(yield func(int, Archetype) bool) {
		for c.Next() {
			if !yield(c.row, c.matched[c.archIdx]) {
				c.Reset()
				return
			}
		}
	}
}

func (c *Cursor) start() {
	c.matched = c.match(c.matched[:0])
	c.archIdx = 0
	c.row = -1
	c.world.lock()
	c.active = true
}

func (c *Cursor) match(dst []*archetype) []*archetype {
	for _, arch := range c.world.archetypes.asSlice {
		if c.query.Evaluate(arch, c.world) {
			dst = append(dst, arch)
		}
	}
	return dst
}

// current is the archetype under the cursor, or nil outside iteration.
func (c *Cursor) current() *archetype {
	if !c.active || c.archIdx >= len(c.matched) {
		return nil
	}
	return c.matched[c.archIdx]
}

// Reset ends iteration and releases the world.
func (c *Cursor) Reset() {
	wasActive := c.active
	c.matched = c.matched[:0]
	c.archIdx = 0
	c.row = -1
	c.active = false
	if wasActive {
		c.world.unlock()
	}
}

// CurrentEntity returns the entity under the cursor.
func (c *Cursor) CurrentEntity() Entity {
	return c.current().entities[c.row]
}

func (c *Cursor) RemainingInArchetype() int {
	arch := c.current()
	if arch == nil {
		return 0
	}
	return arch.Len() - c.row - 1
}

// TotalMatched counts matching rows without moving the cursor.
func (c *Cursor) TotalMatched() int {
	rows := 0
	for _, arch := range c.match(nil) {
		rows += arch.Len()
	}
	return rows
}

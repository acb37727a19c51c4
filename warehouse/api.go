package warehouse

import (
	"iter"

	"github.com/TheBitDrifter/mask"
)

// Component is implemented by the typed component handles returned from
// FactoryNewComponent and is accepted wherever a query needs a component set.
type Component interface {
	ComponentID() ComponentID
	ElementSize() uintptr
}

type Archetype interface {
	ID() uint32
	Mask() mask.Mask
	Len() int
}

type Query interface {
	QueryNode
	And(items ...interface{}) QueryNode
	Or(items ...interface{}) QueryNode
	Not(items ...interface{}) QueryNode
}

type QueryNode interface {
	Evaluate(archetype Archetype, world *World) bool
}

type iCursor interface {
	Entities() iter.Seq2[int, Archetype]
	Next() bool
}

type Cache[T any] interface {
	GetIndex(string) (int, bool)
	GetItem(int) *T
	GetItem32(uint32) *T
	Register(string, T) (int, error)
	Lookup(string) (T, bool)
	Len() int
}

// ArchetypeInfo describes one archetype for introspection.
type ArchetypeInfo struct {
	ID        uint32
	Signature []ComponentID
	Rows      int
}

// Cursor walks every row of the archetypes matched by a QueryNode.
type Cursor struct {
	query QueryNode
	world *World

	matched []*archetype
	archIdx int
	row     int
	active  bool
}

type CacheLocation struct {
	Key   string
	Index uint32
}

type SimpleCache[T any] struct {
	items       []T
	itemIndices map[string]int
	maxCapacity int
}

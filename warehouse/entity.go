package warehouse

import "fmt"

// Entity is an opaque handle minted by a World. The zero value never refers
// to a live entity.
type Entity uint32

func (e Entity) ID() uint32 {
	return uint32(e)
}

func (e Entity) Valid() bool {
	return e != 0
}

func (e Entity) String() string {
	return fmt.Sprintf("entity(%d)", uint32(e))
}

// record locates a live entity inside the archetype arena.
type record struct {
	archetype archetypeID
	row       int
}

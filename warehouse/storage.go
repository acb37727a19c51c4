package warehouse

import (
	"github.com/TheBitDrifter/mask"
)

// indexEntry locates one component inside one archetype.
type indexEntry struct {
	archetype archetypeID
	column    int
}

// archetypeMatch is an archetype that holds every queried component, with the
// column of each component in query order.
type archetypeMatch struct {
	archetype *archetype
	columns   []int
}

// archetypes is the arena of every archetype a World has created. Ids start
// at 1 and an archetype lives at asSlice[id-1].
type archetypes struct {
	nextID           archetypeID
	asSlice          []*archetype
	idsGroupedByMask map[mask.Mask]archetypeID
	index            map[ComponentID][]indexEntry
}

func newArchetypes() *archetypes {
	return &archetypes{
		nextID:           1,
		idsGroupedByMask: make(map[mask.Mask]archetypeID),
		index:            make(map[ComponentID][]indexEntry),
	}
}

func signatureMask(signature []ComponentID) mask.Mask {
	var m mask.Mask
	for _, id := range signature {
		m.Mark(uint32(id))
	}
	return m
}

func (a *archetypes) get(id archetypeID) *archetype {
	return a.asSlice[id-1]
}

// getOrCreate returns the archetype for a sorted, deduplicated signature.
func (a *archetypes) getOrCreate(signature []ComponentID) *archetype {
	m := signatureMask(signature)
	if id, found := a.idsGroupedByMask[m]; found {
		return a.get(id)
	}
	created := newArchetype(a.nextID, signature, m)
	a.asSlice = append(a.asSlice, created)
	a.idsGroupedByMask[m] = created.id
	for col, cid := range created.signature {
		a.index[cid] = append(a.index[cid], indexEntry{archetype: created.id, column: col})
	}
	a.nextID++
	return created
}

// matching intersects the index lists of ids. The result order follows the
// first component's list.
func (a *archetypes) matching(ids []ComponentID) []archetypeMatch {
	if len(ids) == 0 {
		return nil
	}
	seed := a.index[ids[0]]
	matches := make([]archetypeMatch, 0, len(seed))
	for _, entry := range seed {
		arch := a.get(entry.archetype)
		columns := make([]int, len(ids))
		columns[0] = entry.column
		ok := true
		for i := 1; i < len(ids); i++ {
			col := a.columnIn(ids[i], entry.archetype)
			if col < 0 {
				ok = false
				break
			}
			columns[i] = col
		}
		if ok {
			matches = append(matches, archetypeMatch{archetype: arch, columns: columns})
		}
	}
	return matches
}

func (a *archetypes) columnIn(id ComponentID, arch archetypeID) int {
	for _, entry := range a.index[id] {
		if entry.archetype == arch {
			return entry.column
		}
	}
	return -1
}

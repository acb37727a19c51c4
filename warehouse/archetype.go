package warehouse

import (
	"slices"
	"unsafe"

	"github.com/TheBitDrifter/mask"
)

type archetypeID uint32

var _ Archetype = &archetype{}

// archetype owns one column per component of its signature. All columns hold
// the same number of rows and rows are only ever appended.
type archetype struct {
	id        archetypeID
	signature []ComponentID
	mask      mask.Mask
	columns   []column
	entities  []Entity
}

func newArchetype(id archetypeID, signature []ComponentID, m mask.Mask) *archetype {
	arch := &archetype{
		id:        id,
		signature: slices.Clone(signature),
		mask:      m,
		columns:   make([]column, len(signature)),
	}
	for i, cid := range signature {
		info, ok := lookupComponent(cid)
		if !ok {
			panic(ComponentNotFoundError{Component: cid})
		}
		arch.columns[i] = newColumn(cid, info.size, Config.initialRows)
	}
	arch.entities = make([]Entity, 0, Config.initialRows)
	return arch
}

func (a *archetype) ID() uint32 {
	return uint32(a.id)
}

func (a *archetype) Mask() mask.Mask {
	return a.mask
}

func (a *archetype) Len() int {
	return len(a.entities)
}

// Signature returns a copy of the sorted component ids.
func (a *archetype) Signature() []ComponentID {
	return slices.Clone(a.signature)
}

// append writes one row. values must be sorted by component id and match the
// signature exactly; every value is checked before any column is touched.
func (a *archetype) append(entity Entity, values []Value) int {
	if len(values) != len(a.signature) {
		idx := min(len(values), len(a.signature)-1)
		got := ComponentID(0)
		if idx < len(values) {
			got = values[idx].id
		}
		panic(SignatureMismatchError{Archetype: a.ID(), Index: idx, Want: a.signature[idx], Got: got})
	}
	for i, v := range values {
		if v.id != a.signature[i] {
			panic(SignatureMismatchError{Archetype: a.ID(), Index: i, Want: a.signature[i], Got: v.id})
		}
		if v.size != a.columns[i].stride {
			panic(ComponentSizeMismatchError{Component: v.id, Want: a.columns[i].stride, Got: v.size})
		}
	}
	row := len(a.entities)
	for i, v := range values {
		a.columns[i].push(v)
	}
	a.entities = append(a.entities, entity)
	return row
}

func (a *archetype) columnFor(id ComponentID) int {
	for i, cid := range a.signature {
		if cid == id {
			return i
		}
	}
	return -1
}

func (a *archetype) has(id ComponentID) bool {
	return a.columnFor(id) >= 0
}

func (a *archetype) pointer(col, row int) unsafe.Pointer {
	return a.columns[col].pointer(row)
}

func (a *archetype) info() ArchetypeInfo {
	return ArchetypeInfo{
		ID:        a.ID(),
		Signature: a.Signature(),
		Rows:      a.Len(),
	}
}

package warehouse

import "unsafe"

// AccessibleComponent is the typed handle for component T. It carries the
// registered id so hot paths skip the registry lookup.
type AccessibleComponent[T any] struct {
	id   ComponentID
	size uintptr
}

var _ Component = AccessibleComponent[struct{}]{}

func (c AccessibleComponent[T]) ComponentID() ComponentID {
	return c.id
}

func (c AccessibleComponent[T]) ElementSize() uintptr {
	return c.size
}

// With copies v into a Value ready to be passed to World.NewEntity.
func (c AccessibleComponent[T]) With(v T) Value {
	p := new(T)
	*p = v
	return Value{id: c.id, size: c.size, ptr: unsafe.Pointer(p)}
}

// GetFromCursor retrieves the component for the row at the cursor position.
func (c AccessibleComponent[T]) GetFromCursor(cursor *Cursor) *T {
	arch := cursor.current()
	col := arch.columnFor(c.id)
	if col < 0 {
		panic(ComponentNotFoundError{Component: c.id})
	}
	return (*T)(arch.columns[col].pointer(cursor.row))
}

// GetFromCursorSafe is GetFromCursor that reports a missing component instead
// of panicking.
func (c AccessibleComponent[T]) GetFromCursorSafe(cursor *Cursor) (bool, *T) {
	if !c.CheckCursor(cursor) {
		return false, nil
	}
	return true, c.GetFromCursor(cursor)
}

// CheckCursor determines if the component exists in the archetype at the cursor position
func (c AccessibleComponent[T]) CheckCursor(cursor *Cursor) bool {
	arch := cursor.current()
	return arch != nil && arch.has(c.id)
}

// GetFromEntity returns the component of entity. It panics if the entity does
// not exist or was created without T.
func (c AccessibleComponent[T]) GetFromEntity(world *World, entity Entity) *T {
	ptr, err := world.componentPointer(entity, c.id)
	if err != nil {
		panic(err)
	}
	return (*T)(ptr)
}

// GetFromEntitySafe returns false instead of panicking.
func (c AccessibleComponent[T]) GetFromEntitySafe(world *World, entity Entity) (bool, *T) {
	ptr, err := world.componentPointer(entity, c.id)
	if err != nil {
		return false, nil
	}
	return true, (*T)(ptr)
}

// CheckEntity reports whether entity carries T.
func (c AccessibleComponent[T]) CheckEntity(world *World, entity Entity) bool {
	return world.HasComponent(entity, c.id)
}

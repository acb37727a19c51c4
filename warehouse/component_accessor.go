package warehouse

import "unsafe"

// Value is one type-erased component value waiting to be appended to an
// archetype: its id, its byte size and a pointer to a private copy.
type Value struct {
	id   ComponentID
	size uintptr
	ptr  unsafe.Pointer
}

// ValueOf registers T if needed and copies v into a Value.
func ValueOf[T any](v T) Value {
	p := new(T)
	*p = v
	return Value{id: Register[T](), size: SizeOf[T](), ptr: unsafe.Pointer(p)}
}

func (v Value) ComponentID() ComponentID {
	return v.id
}

func (v Value) Size() uintptr {
	return v.size
}

// Get returns entity's T. It panics with EntityNotFoundError or
// ComponentNotFoundError when the precondition does not hold.
func Get[T any](world *World, entity Entity) *T {
	ptr, err := world.componentPointer(entity, Register[T]())
	if err != nil {
		panic(err)
	}
	return (*T)(ptr)
}

// Lookup is Get without the panic.
func Lookup[T any](world *World, entity Entity) (*T, bool) {
	ptr, err := world.componentPointer(entity, Register[T]())
	if err != nil {
		return nil, false
	}
	return (*T)(ptr), true
}

// Has reports whether entity carries T.
func Has[T any](world *World, entity Entity) bool {
	return world.HasComponent(entity, Register[T]())
}

package warehouse

import (
	"reflect"
	"sync"
	"unsafe"

	"github.com/TheBitDrifter/table"
)

// ComponentID identifies a component type for the lifetime of the process.
type ComponentID uint32

type componentInfo struct {
	id          ComponentID
	typ         reflect.Type
	size        uintptr
	elementType table.ElementType
}

// componentRegistry hands out ids through a process-wide table schema, so a
// component type keeps the same id across every World.
type componentRegistry struct {
	mu     sync.RWMutex
	schema table.Schema
	byType map[reflect.Type]ComponentID
	infos  map[ComponentID]componentInfo
}

var registry = &componentRegistry{
	schema: table.Factory.NewSchema(),
	byType: make(map[reflect.Type]ComponentID),
	infos:  make(map[ComponentID]componentInfo),
}

// Register returns the id for T, registering it on first use. Repeated calls
// return the same id. It panics with NotPlainDataError if T holds pointers or
// other references, since columns are copied as raw bytes.
func Register[T any]() ComponentID {
	typ := reflect.TypeFor[T]()

	registry.mu.RLock()
	id, ok := registry.byType[typ]
	registry.mu.RUnlock()
	if ok {
		return id
	}

	registry.mu.Lock()
	defer registry.mu.Unlock()
	if id, ok := registry.byType[typ]; ok {
		return id
	}
	if err := checkPlainData(typ, typ); err != nil {
		panic(err)
	}

	elementType := table.FactoryNewElementType[T]()
	registry.schema.Register(elementType)
	id = ComponentID(registry.schema.RowIndexFor(elementType))

	registry.byType[typ] = id
	registry.infos[id] = componentInfo{
		id:          id,
		typ:         typ,
		size:        SizeOf[T](),
		elementType: elementType,
	}
	return id
}

// SizeOf returns the byte size of one T in a column.
func SizeOf[T any]() uintptr {
	var zero T
	return unsafe.Sizeof(zero)
}

func lookupComponent(id ComponentID) (componentInfo, bool) {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	info, ok := registry.infos[id]
	return info, ok
}

func componentName(id ComponentID) string {
	if info, ok := lookupComponent(id); ok {
		return info.typ.String()
	}
	return "unregistered"
}

func checkPlainData(root, typ reflect.Type) error {
	switch typ.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return nil
	case reflect.Array:
		return checkPlainData(root, typ.Elem())
	case reflect.Struct:
		for i := 0; i < typ.NumField(); i++ {
			if err := checkPlainData(root, typ.Field(i).Type); err != nil {
				return err
			}
		}
		return nil
	}
	return NotPlainDataError{Type: root, Kind: typ.Kind()}
}

package warehouse

type factory struct{}

var Factory factory

func (f factory) NewWorld(opts ...WorldOption) *World {
	return newWorld(opts...)
}

func (f factory) NewQuery() Query {
	return newQuery()
}

func (f factory) NewCursor(query QueryNode, world *World) *Cursor {
	return newCursor(query, world)
}

// FactoryNewComponent registers T and returns its typed handle.
func FactoryNewComponent[T any]() AccessibleComponent[T] {
	return AccessibleComponent[T]{
		id:   Register[T](),
		size: SizeOf[T](),
	}
}

func FactoryNewCache[T any](cap int) Cache[T] {
	return &SimpleCache[T]{
		itemIndices: make(map[string]int),
		maxCapacity: cap,
	}
}

package warehouse

var _ Cache[any] = &SimpleCache[any]{}

func (c *SimpleCache[T]) GetIndex(key string) (int, bool) {
	index, ok := c.itemIndices[key]
	return index, ok
}

func (c *SimpleCache[T]) GetItem(index int) *T {
	return &c.items[index]
}

func (c *SimpleCache[T]) GetItem32(index uint32) *T {
	return &c.items[index]
}

// Register stores item under key and returns its index. Keys are unique and
// the cache never grows past its capacity.
func (c *SimpleCache[T]) Register(key string, item T) (int, error) {
	if _, exists := c.itemIndices[key]; exists {
		return -1, DuplicateKeyError{Key: key}
	}
	if len(c.itemIndices) >= c.maxCapacity {
		return -1, CacheFullError{Capacity: c.maxCapacity}
	}

	idx := len(c.items)
	c.itemIndices[key] = idx
	c.items = append(c.items, item)

	return idx, nil
}

// Lookup returns the item registered under key.
func (c *SimpleCache[T]) Lookup(key string) (T, bool) {
	idx, ok := c.itemIndices[key]
	if !ok {
		var zero T
		return zero, false
	}
	return c.items[idx], true
}

func (c *SimpleCache[T]) Len() int {
	return len(c.items)
}

func (c *SimpleCache[T]) Clear() {
	c.items = c.items[:0]
	clear(c.itemIndices)
}

package warehouse

import "unsafe"

// zeroBase backs zero-stride columns so every row pointer is valid.
var zeroBase uint64

// column is a growable byte buffer of fixed-stride elements. It is backed by
// uint64 words so element addresses are 8-byte aligned.
type column struct {
	id     ComponentID
	stride uintptr
	words  []uint64
	rows   int
}

func newColumn(id ComponentID, stride uintptr, capacity int) column {
	c := column{id: id, stride: stride}
	c.reserve(capacity)
	return c
}

func (c *column) bytes() []byte {
	if len(c.words) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&c.words[0])), len(c.words)*8)
}

func (c *column) capacity() int {
	if c.stride == 0 {
		return int(^uint(0) >> 1)
	}
	return len(c.words) * 8 / int(c.stride)
}

func (c *column) reserve(rows int) {
	if c.stride == 0 || rows <= c.capacity() {
		return
	}
	need := (uintptr(rows)*c.stride + 7) / 8
	grown := make([]uint64, need)
	copy(grown, c.words)
	c.words = grown
}

func (c *column) push(v Value) {
	if v.size != c.stride {
		panic(ComponentSizeMismatchError{Component: c.id, Want: c.stride, Got: v.size})
	}
	if c.stride > 0 {
		if c.rows == c.capacity() {
			c.reserve(max(2*c.rows, Config.initialRows))
		}
		dst := c.bytes()[uintptr(c.rows)*c.stride:]
		copy(dst[:c.stride], unsafe.Slice((*byte)(v.ptr), c.stride))
	}
	c.rows++
}

func (c *column) pointer(row int) unsafe.Pointer {
	if c.stride == 0 {
		return unsafe.Pointer(&zeroBase)
	}
	return unsafe.Add(unsafe.Pointer(&c.words[0]), uintptr(row)*c.stride)
}

func (c *column) base() unsafe.Pointer {
	if c.stride == 0 || len(c.words) == 0 {
		return unsafe.Pointer(&zeroBase)
	}
	return unsafe.Pointer(&c.words[0])
}

// columnSlice views rows [0, rows) of col as a []T. The slice aliases column
// storage and is invalidated by the next append to the archetype.
func columnSlice[T any](col *column) []T {
	if col.rows == 0 {
		return nil
	}
	return unsafe.Slice((*T)(col.base()), col.rows)
}

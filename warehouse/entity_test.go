package warehouse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEntity(t *testing.T) {
	pos := FactoryNewComponent[Position]()
	vel := FactoryNewComponent[Velocity]()

	tests := []struct {
		name        string
		values      []Value
		expectedErr error
	}{
		{"Single component", []Value{pos.With(Position{X: 1})}, nil},
		{"Two components", []Value{vel.With(Velocity{}), pos.With(Position{})}, nil},
		{"Empty set", nil, EmptyComponentSetError{}},
		{"Duplicate component", []Value{pos.With(Position{}), pos.With(Position{})}, DuplicateComponentError{Component: pos.ComponentID()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWorld(t)
			e, err := w.NewEntity(tt.values...)
			if tt.expectedErr != nil {
				assert.Equal(t, tt.expectedErr, err)
				assert.Equal(t, 0, w.Len())
				return
			}
			require.NoError(t, err)
			assert.True(t, e.Valid())
			assert.Equal(t, 1, w.Len())
		})
	}
}

func TestEntityIDsAreMonotonic(t *testing.T) {
	w := newTestWorld(t)
	pos := FactoryNewComponent[Position]()
	health := FactoryNewComponent[Health]()

	var last Entity
	for i := 0; i < 10; i++ {
		values := []Value{pos.With(Position{})}
		if i%2 == 0 {
			values = append(values, health.With(Health{}))
		}
		e, err := w.NewEntity(values...)
		require.NoError(t, err)
		assert.True(t, e > last)
		last = e
	}
}

func TestEntityComponentAccess(t *testing.T) {
	w := newTestWorld(t)
	pos := FactoryNewComponent[Position]()
	vel := FactoryNewComponent[Velocity]()
	health := FactoryNewComponent[Health]()

	e, err := w.NewEntity(pos.With(Position{X: 3, Y: 4}), vel.With(Velocity{X: 1}))
	require.NoError(t, err)

	t.Run("Typed handle", func(t *testing.T) {
		p := pos.GetFromEntity(w, e)
		assert.Equal(t, Position{X: 3, Y: 4}, *p)
		p.X = 10
		assert.Equal(t, 10.0, Get[Position](w, e).X)
	})

	t.Run("Has", func(t *testing.T) {
		assert.True(t, pos.CheckEntity(w, e))
		assert.True(t, Has[Velocity](w, e))
		assert.False(t, health.CheckEntity(w, e))
		assert.False(t, w.HasComponent(Entity(999), pos.ComponentID()))
	})

	t.Run("Lookup", func(t *testing.T) {
		v, ok := Lookup[Velocity](w, e)
		require.True(t, ok)
		assert.Equal(t, 1.0, v.X)

		_, ok = Lookup[Health](w, e)
		assert.False(t, ok)

		ok, _ = health.GetFromEntitySafe(w, e)
		assert.False(t, ok)
	})

	t.Run("Missing component panics", func(t *testing.T) {
		assert.PanicsWithValue(t, ComponentNotFoundError{Component: health.ComponentID()}, func() {
			Get[Health](w, e)
		})
	})

	t.Run("Unknown entity panics", func(t *testing.T) {
		assert.PanicsWithValue(t, EntityNotFoundError{Entity: 42}, func() {
			Get[Position](w, Entity(42))
		})
		assert.PanicsWithValue(t, EntityNotFoundError{Entity: 0}, func() {
			Get[Position](w, Entity(0))
		})
	})
}

func TestLockedWorld(t *testing.T) {
	w := newTestWorld(t)
	pos := FactoryNewComponent[Position]()

	for i := 0; i < 3; i++ {
		_, err := w.NewEntity(pos.With(Position{X: float64(i)}))
		require.NoError(t, err)
	}
	w.DrainCreated()

	query := NewQuery1[Position](w)
	visited := 0
	query.Each(func(p *Position) {
		visited++
		_, err := w.NewEntity(pos.With(Position{}))
		assert.Equal(t, LockedWorldError{}, err)
		require.NoError(t, w.EnqueueNewEntity(pos.With(Position{X: -1})))
	})

	assert.Equal(t, 3, visited)
	assert.False(t, w.Locked())
	assert.Equal(t, 6, w.Len())

	created := w.DrainCreated()
	require.Len(t, created, 3)
	for _, e := range created {
		assert.Equal(t, -1.0, Get[Position](w, e).X)
	}
	assert.Empty(t, w.DrainCreated())
}

func TestNestedQueriesKeepLock(t *testing.T) {
	w := newTestWorld(t)
	pos := FactoryNewComponent[Position]()
	_, err := w.NewEntity(pos.With(Position{}))
	require.NoError(t, err)

	outer := NewQuery1[Position](w)
	inner := NewQuery1[Position](w)
	outer.Each(func(*Position) {
		inner.Each(func(*Position) {})
		assert.True(t, w.Locked())
	})
	assert.False(t, w.Locked())
}

func TestEnqueueRejectsBadSetsWhileLocked(t *testing.T) {
	w := newTestWorld(t)
	pos := FactoryNewComponent[Position]()
	_, err := w.NewEntity(pos.With(Position{}))
	require.NoError(t, err)

	assert.NotPanics(t, func() {
		NewQuery1[Position](w).Each(func(*Position) {
			err := w.EnqueueNewEntity(pos.With(Position{X: 1}), pos.With(Position{X: 2}))
			assert.Equal(t, DuplicateComponentError{Component: pos.ComponentID()}, err)
			assert.Equal(t, EmptyComponentSetError{}, w.EnqueueNewEntity())
		})
	})
	assert.False(t, w.Locked())
	assert.Equal(t, 1, w.Len())
	assert.Empty(t, w.DrainCreated())
}

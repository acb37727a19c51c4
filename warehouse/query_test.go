package warehouse

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestQueryFiltering covers the composite And/Or/Not nodes through a cursor.
func TestQueryFiltering(t *testing.T) {
	posComp := FactoryNewComponent[Position]()
	velComp := FactoryNewComponent[Velocity]()
	healthComp := FactoryNewComponent[Health]()

	type entitySetup struct {
		components []Component
		count      int
	}

	setups := []entitySetup{
		{[]Component{posComp, velComp}, 5},
		{[]Component{posComp}, 10},
		{[]Component{velComp}, 15},
		{[]Component{healthComp}, 20},
	}

	tests := []struct {
		name            string
		build           func(q Query) QueryNode
		expectedMatches int
	}{
		{
			name:            "And query matches exact",
			build:           func(q Query) QueryNode { return q.And(posComp, velComp) },
			expectedMatches: 5,
		},
		{
			name:            "Or query matches either",
			build:           func(q Query) QueryNode { return q.Or(posComp, velComp) },
			expectedMatches: 30,
		},
		{
			name:            "Not query excludes",
			build:           func(q Query) QueryNode { return q.Not(velComp) },
			expectedMatches: 30,
		},
		{
			name: "Complex query",
			build: func(q Query) QueryNode {
				return q.And(posComp, q.Not(velComp))
			},
			expectedMatches: 10,
		},
		{
			name: "Or of nodes",
			build: func(q Query) QueryNode {
				return q.Or(q.And(posComp, velComp), q.And(healthComp))
			},
			expectedMatches: 25,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWorld(t)
			for _, setup := range setups {
				for i := 0; i < setup.count; i++ {
					_, err := w.NewEntity(zeroValues(setup.components)...)
					require.NoError(t, err)
				}
			}

			node := tt.build(Factory.NewQuery())
			cursor := Factory.NewCursor(node, w)
			assert.Equal(t, tt.expectedMatches, cursor.TotalMatched())

			matched := 0
			for cursor.Next() {
				matched++
				assert.True(t, w.Locked())
			}
			assert.Equal(t, tt.expectedMatches, matched)
			assert.False(t, w.Locked())

			matched = 0
			for range cursor.Entities() {
				matched++
			}
			assert.Equal(t, tt.expectedMatches, matched)
		})
	}
}

func zeroValues(components []Component) []Value {
	values := make([]Value, 0, len(components))
	for _, c := range components {
		switch c.(type) {
		case AccessibleComponent[Position]:
			values = append(values, ValueOf(Position{}))
		case AccessibleComponent[Velocity]:
			values = append(values, ValueOf(Velocity{}))
		case AccessibleComponent[Health]:
			values = append(values, ValueOf(Health{}))
		}
	}
	return values
}

func TestCursorComponentAccess(t *testing.T) {
	w := newTestWorld(t)
	pos := FactoryNewComponent[Position]()
	vel := FactoryNewComponent[Velocity]()

	for i := 0; i < 4; i++ {
		_, err := w.NewEntity(pos.With(Position{X: float64(i)}), vel.With(Velocity{X: 1}))
		require.NoError(t, err)
	}
	_, err := w.NewEntity(pos.With(Position{X: 100}))
	require.NoError(t, err)

	cursor := Factory.NewCursor(Factory.NewQuery().And(pos), w)
	withVelocity := 0
	for cursor.Next() {
		p := pos.GetFromCursor(cursor)
		if ok, v := vel.GetFromCursorSafe(cursor); ok {
			p.X += v.X
			withVelocity++
		}
		assert.Equal(t, p, Get[Position](w, cursor.CurrentEntity()))
	}
	assert.Equal(t, 4, withVelocity)
	assert.Equal(t, 4.0, Get[Position](w, Entity(4)).X)
	assert.Equal(t, 100.0, Get[Position](w, Entity(5)).X)
}

// populate creates entities across several archetypes that all carry
// Position and Velocity, plus some that do not.
func populate(t *testing.T, w *World, n int) int {
	t.Helper()
	pos := FactoryNewComponent[Position]()
	vel := FactoryNewComponent[Velocity]()
	health := FactoryNewComponent[Health]()
	flags := FactoryNewComponent[Flags]()

	matching := 0
	for i := 0; i < n; i++ {
		var err error
		switch i % 4 {
		case 0:
			_, err = w.NewEntity(pos.With(Position{X: float64(i)}), vel.With(Velocity{X: 1}))
			matching++
		case 1:
			_, err = w.NewEntity(pos.With(Position{X: float64(i)}), vel.With(Velocity{X: 1}), health.With(Health{}))
			matching++
		case 2:
			_, err = w.NewEntity(flags.With(Flags{}), vel.With(Velocity{X: 1}), pos.With(Position{X: float64(i)}))
			matching++
		case 3:
			_, err = w.NewEntity(pos.With(Position{X: float64(i)}), health.With(Health{}))
		}
		require.NoError(t, err)
	}
	return matching
}

func TestQueryCompleteness(t *testing.T) {
	tests := []struct {
		name    string
		n       int
		threads int
		chunk   int
	}{
		{"Empty", 0, 4, 8},
		{"Fewer rows than threads", 5, 4, 2},
		{"Uneven split", 103, 3, 7},
		{"Whole pool", 1000, 0, 64},
		{"Too many threads", 50, 64, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWorld(t)
			expected := populate(t, w, tt.n)
			query := NewQuery2[Position, Velocity](w)
			assert.Equal(t, expected, query.Count())

			each := 0
			query.Each(func(p *Position, v *Velocity) {
				each++
				p.Y++
			})
			assert.Equal(t, expected, each)

			var parallel atomic.Int64
			query.EachParallel(tt.threads, func(p *Position, v *Velocity) {
				parallel.Add(1)
				p.Y++
			})
			assert.Equal(t, int64(expected), parallel.Load())

			chunked := 0
			query.EachChunk(tt.chunk, func(ps []Position, vs []Velocity) {
				require.Len(t, vs, len(ps))
				if tt.chunk > 0 {
					assert.LessOrEqual(t, len(ps), tt.chunk)
				}
				for i := range ps {
					chunked++
					ps[i].Y++
				}
			})
			assert.Equal(t, expected, chunked)

			// every row was visited exactly once by each of the three passes
			NewQuery2[Position, Velocity](w).Each(func(p *Position, _ *Velocity) {
				assert.Equal(t, 3.0, p.Y)
			})
		})
	}
}

func TestQueryWithout(t *testing.T) {
	w := newTestWorld(t)
	populate(t, w, 40)
	health := FactoryNewComponent[Health]()
	flags := FactoryNewComponent[Flags]()

	assert.Equal(t, 30, NewQuery2[Position, Velocity](w).Count())
	assert.Equal(t, 20, NewQuery2[Position, Velocity](w).Without(health).Count())
	assert.Equal(t, 10, NewQuery2[Position, Velocity](w).Without(health, flags).Count())
	assert.Equal(t, 10, NewQuery1[Position](w).Without(FactoryNewComponent[Velocity]()).Count())
}

func TestQueryEachEntity(t *testing.T) {
	w := newTestWorld(t)
	populate(t, w, 12)

	seen := map[Entity]bool{}
	NewQuery3[Position, Velocity, Health](w).EachEntity(func(e Entity, p *Position, v *Velocity, h *Health) {
		seen[e] = true
		assert.Equal(t, p, Get[Position](w, e))
	})
	assert.Len(t, seen, 3)
	for e := range seen {
		assert.Equal(t, uint32(1), (e.ID()-1)%4)
	}
}

func TestQueryEachPair(t *testing.T) {
	tests := []struct {
		name     string
		rows     int
		expected int
	}{
		{"No rows", 0, 0},
		{"One row", 1, 0},
		{"Two rows", 2, 1},
		{"Ten rows", 10, 45},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWorld(t)
			for i := 0; i < tt.rows; i++ {
				_, err := w.NewEntity(ValueOf(Health{Value: int32(i)}))
				require.NoError(t, err)
			}
			pairs := 0
			seen := map[[2]int32]bool{}
			NewQuery1[Health](w).EachPair(func(a, b *Health) {
				pairs++
				assert.Less(t, a.Value, b.Value)
				key := [2]int32{a.Value, b.Value}
				assert.False(t, seen[key])
				seen[key] = true
			})
			assert.Equal(t, tt.expected, pairs)
		})
	}
}

func TestQueryDuplicateComponentPanics(t *testing.T) {
	w := newTestWorld(t)
	assert.PanicsWithValue(t, DuplicateQueryComponentError{Component: Register[Position]()}, func() {
		NewQuery2[Position, Position](w)
	})
}

func TestArchetypeIntrospection(t *testing.T) {
	w := newTestWorld(t)
	populate(t, w, 8)

	infos := w.ArchetypeList()
	require.Len(t, infos, 4)
	total := 0
	for i, info := range infos {
		assert.Equal(t, uint32(i+1), info.ID)
		for k := 1; k < len(info.Signature); k++ {
			assert.True(t, info.Signature[k-1] < info.Signature[k])
		}
		total += info.Rows
	}
	assert.Equal(t, w.Len(), total)
}

func BenchmarkQueryEach(b *testing.B) {
	w := Factory.NewWorld()
	defer w.Close()
	for i := 0; i < 10000; i++ {
		_, _ = w.NewEntity(ValueOf(Position{}), ValueOf(Velocity{X: 1, Y: 1}))
	}
	query := NewQuery2[Position, Velocity](w)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		query.Each(func(p *Position, v *Velocity) {
			p.X += v.X
			p.Y += v.Y
		})
	}
}

func BenchmarkQueryEachParallel(b *testing.B) {
	w := Factory.NewWorld()
	defer w.Close()
	for i := 0; i < 10000; i++ {
		_, _ = w.NewEntity(ValueOf(Position{}), ValueOf(Velocity{X: 1, Y: 1}))
	}
	query := NewQuery2[Position, Velocity](w)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		query.EachParallel(0, func(p *Position, v *Velocity) {
			p.X += v.X
			p.Y += v.Y
		})
	}
}

func TestQueryEvaluatesOutermostNode(t *testing.T) {
	w := newTestWorld(t)
	pos := FactoryNewComponent[Position]()
	vel := FactoryNewComponent[Velocity]()

	for i := 0; i < 3; i++ {
		_, err := w.NewEntity(pos.With(Position{}))
		require.NoError(t, err)
	}
	_, err := w.NewEntity(pos.With(Position{}), vel.With(Velocity{}))
	require.NoError(t, err)
	_, err = w.NewEntity(vel.With(Velocity{}))
	require.NoError(t, err)

	q := Factory.NewQuery()
	q.And(pos, q.Not(vel))

	cursor := Factory.NewCursor(q, w)
	assert.Equal(t, 3, cursor.TotalMatched())

	var empty query
	assert.False(t, empty.Evaluate(w.archetypes.asSlice[0], w))
}

func TestQueryWithoutExclusionsVisitsEveryRow(t *testing.T) {
	w := newTestWorld(t)
	pos := FactoryNewComponent[Position]()
	vel := FactoryNewComponent[Velocity]()
	for i := 0; i < 2; i++ {
		_, err := w.NewEntity(pos.With(Position{X: float64(i)}), vel.With(Velocity{X: 1}))
		require.NoError(t, err)
	}

	query := NewQuery2[Position, Velocity](w)
	assert.Equal(t, 2, query.Count())

	visited := 0
	query.Each(func(p *Position, v *Velocity) {
		p.X += v.X
		visited++
	})
	assert.Equal(t, 2, visited)
	assert.Equal(t, 2.0, Get[Position](w, Entity(2)).X)

	chunks := 0
	NewQuery1[Velocity](w).EachChunk(0, func(v []Velocity) {
		chunks++
		assert.Len(t, v, 2)
	})
	assert.Equal(t, 1, chunks)

	q := Factory.NewQuery()
	node := q.And(q.Or(pos), q.Not(FactoryNewComponent[Health]()))
	assert.Equal(t, 2, Factory.NewCursor(node, w).TotalMatched())
}

/*
Package warehouse provides the archetype-based Entity-Component store that the
verlet solver runs on.

Entities sharing an identical set of component types live in the same archetype,
which stores each component type in its own contiguous byte column. Queries
resolve the archetypes that contain every requested component through a
component-to-archetype index and then walk the columns as typed slices, either
row by row, in chunks, across a worker pool, or pairwise.

Core Concepts:

  - Entity: an opaque handle minted by a World.
  - Component: a plain-data struct (no pointers, slices, maps or strings) stored by value.
  - Archetype: the columns for one exact component set. Rows are only ever appended.
  - Query: typed iteration over every archetype containing the requested components.

Basic Usage:

	world := warehouse.Factory.NewWorld()
	defer world.Close()

	position := warehouse.FactoryNewComponent[Position]()
	velocity := warehouse.FactoryNewComponent[Velocity]()

	world.NewEntity(position.With(Position{}), velocity.With(Velocity{X: 1}))

	query := warehouse.NewQuery2[Position, Velocity](world)
	query.EachParallel(0, func(pos *Position, vel *Velocity) {
		pos.X += vel.X
		pos.Y += vel.Y
	})

References handed to a visitor alias archetype storage. Creating entities while a
query runs is rejected with LockedWorldError; use EnqueueNewEntity to defer the
creation until the query finishes.
*/
package warehouse

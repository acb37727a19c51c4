package warehouse_test

import (
	"fmt"

	"github.com/TheBitDrifter/verlet/warehouse"
)

// Position is a simple component for 2D coordinates
type Position struct {
	X float64
	Y float64
}

// Velocity is a simple component for 2D movement
type Velocity struct {
	X float64
	Y float64
}

// Tag is a small marker component
type Tag struct {
	ID int32
}

// Example shows basic warehouse usage with entity creation and queries
func Example_basic() {
	world := warehouse.Factory.NewWorld(warehouse.WithWorkers(2))
	defer world.Close()

	position := warehouse.FactoryNewComponent[Position]()
	velocity := warehouse.FactoryNewComponent[Velocity]()
	tag := warehouse.FactoryNewComponent[Tag]()

	for i := 0; i < 5; i++ {
		world.NewEntity(position.With(Position{}))
	}
	for i := 0; i < 3; i++ {
		world.NewEntity(position.With(Position{}), velocity.With(Velocity{X: 1, Y: 2}))
	}
	player, _ := world.NewEntity(tag.With(Tag{ID: 7}), velocity.With(Velocity{X: 1, Y: 2}), position.With(Position{X: 10, Y: 20}))

	movers := warehouse.NewQuery2[Position, Velocity](world)
	fmt.Printf("Found %d entities with position and velocity\n", movers.Count())

	movers.EachParallel(0, func(pos *Position, vel *Velocity) {
		pos.X += vel.X
		pos.Y += vel.Y
	})

	pos := position.GetFromEntity(world, player)
	fmt.Printf("Player %d at (%.1f, %.1f)\n", tag.GetFromEntity(world, player).ID, pos.X, pos.Y)

	// Output:
	// Found 4 entities with position and velocity
	// Player 7 at (11.0, 22.0)
}

// Example_chunks shows chunked iteration over contiguous column slices
func Example_chunks() {
	world := warehouse.Factory.NewWorld(warehouse.WithWorkers(1))
	defer world.Close()

	for i := 0; i < 10; i++ {
		world.NewEntity(warehouse.ValueOf(Position{X: float64(i)}))
	}

	warehouse.NewQuery1[Position](world).EachChunk(4, func(chunk []Position) {
		sum := 0.0
		for _, p := range chunk {
			sum += p.X
		}
		fmt.Printf("chunk of %d, sum %.0f\n", len(chunk), sum)
	})

	// Output:
	// chunk of 4, sum 6
	// chunk of 4, sum 22
	// chunk of 2, sum 17
}

// Example_deferredCreation shows entities created while a query runs
func Example_deferredCreation() {
	world := warehouse.Factory.NewWorld(warehouse.WithWorkers(1))
	defer world.Close()

	world.NewEntity(warehouse.ValueOf(Tag{ID: 1}))

	warehouse.NewQuery1[Tag](world).Each(func(t *Tag) {
		_, err := world.NewEntity(warehouse.ValueOf(Tag{ID: t.ID + 1}))
		fmt.Println(err)
		world.EnqueueNewEntity(warehouse.ValueOf(Tag{ID: t.ID + 1}))
	})

	fmt.Println("entities:", world.Len())

	// Output:
	// world is locked by a running query
	// entities: 2
}

// Example_compositeQuery shows the And/Not query nodes with a cursor
func Example_compositeQuery() {
	world := warehouse.Factory.NewWorld(warehouse.WithWorkers(1))
	defer world.Close()

	position := warehouse.FactoryNewComponent[Position]()
	velocity := warehouse.FactoryNewComponent[Velocity]()

	world.NewEntity(position.With(Position{X: 1}))
	world.NewEntity(position.With(Position{X: 2}), velocity.With(Velocity{}))
	world.NewEntity(position.With(Position{X: 3}))

	query := warehouse.Factory.NewQuery()
	node := query.And(position, query.Not(velocity))
	cursor := warehouse.Factory.NewCursor(node, world)

	for cursor.Next() {
		fmt.Println("static at", position.GetFromCursor(cursor).X)
	}

	// Output:
	// static at 1
	// static at 3
}

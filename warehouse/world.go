package warehouse

import (
	"cmp"
	"iter"
	"slices"
	"unsafe"

	iter_util "github.com/TheBitDrifter/util/iter"
	"go.uber.org/zap"

	"github.com/TheBitDrifter/verlet/pool"
)

// World owns entities, their records and the archetype arena. It is driven by
// a single goroutine; parallel queries fan out onto its pool internally.
type World struct {
	archetypes *archetypes
	records    []record
	locks      int
	opQueue    opQueue
	pool       *pool.Pool
	ownsPool   bool
	log        *zap.Logger
}

type worldOptions struct {
	pool    *pool.Pool
	workers int
	log     *zap.Logger
}

// WorldOption configures a World.
type WorldOption func(*worldOptions)

// WithPool shares an existing pool. The World will not close it.
func WithPool(p *pool.Pool) WorldOption {
	return func(o *worldOptions) {
		o.pool = p
	}
}

// WithWorkers sizes the pool the World creates for itself.
func WithWorkers(n int) WorldOption {
	return func(o *worldOptions) {
		o.workers = n
	}
}

func WithLogger(log *zap.Logger) WorldOption {
	return func(o *worldOptions) {
		if log != nil {
			o.log = log
		}
	}
}

func newWorld(opts ...WorldOption) *World {
	o := worldOptions{log: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	w := &World{
		archetypes: newArchetypes(),
		opQueue:    newOpQueue(),
		log:        o.log,
	}
	if o.pool != nil {
		w.pool = o.pool
	} else {
		poolOpts := []pool.Option{pool.WithLogger(o.log)}
		if o.workers > 0 {
			poolOpts = append(poolOpts, pool.WithWorkers(o.workers))
		}
		w.pool = pool.New(poolOpts...)
		w.ownsPool = true
	}
	return w
}

// NewEntity creates an entity holding values. Values may be given in any
// order; an empty set or a component given twice is rejected.
func (w *World) NewEntity(values ...Value) (Entity, error) {
	if w.Locked() {
		return 0, LockedWorldError{}
	}
	sorted, signature, err := sortValues(values)
	if err != nil {
		return 0, err
	}

	arch := w.archetypes.getOrCreate(signature)
	entity := Entity(len(w.records) + 1)
	row := arch.append(entity, sorted)
	w.records = append(w.records, record{archetype: arch.id, row: row})
	return entity, nil
}

// EnqueueNewEntity creates the entity immediately when the world is unlocked
// and otherwise defers it until the running query returns.
func (w *World) EnqueueNewEntity(values ...Value) error {
	if !w.Locked() {
		entity, err := w.NewEntity(values...)
		if err != nil {
			return err
		}
		w.opQueue.created = append(w.opQueue.created, entity)
		return nil
	}
	sorted, _, err := sortValues(values)
	if err != nil {
		return err
	}
	w.opQueue.enqueueOp(operation{typ: opCreate, values: sorted})
	return nil
}

// sortValues orders a copy of values by component id and rejects empty or
// repeated component sets.
func sortValues(values []Value) ([]Value, []ComponentID, error) {
	if len(values) == 0 {
		return nil, nil, EmptyComponentSetError{}
	}
	sorted := slices.Clone(values)
	slices.SortFunc(sorted, func(a, b Value) int {
		return cmp.Compare(a.id, b.id)
	})
	signature := make([]ComponentID, len(sorted))
	for i, v := range sorted {
		if i > 0 && v.id == sorted[i-1].id {
			return nil, nil, DuplicateComponentError{Component: v.id}
		}
		signature[i] = v.id
	}
	return sorted, signature, nil
}

func (w *World) record(entity Entity) (record, bool) {
	if entity == 0 || int(entity) > len(w.records) {
		return record{}, false
	}
	return w.records[entity-1], true
}

func (w *World) Exists(entity Entity) bool {
	_, ok := w.record(entity)
	return ok
}

func (w *World) HasComponent(entity Entity, id ComponentID) bool {
	rec, ok := w.record(entity)
	if !ok {
		return false
	}
	return w.archetypes.get(rec.archetype).has(id)
}

func (w *World) componentPointer(entity Entity, id ComponentID) (unsafe.Pointer, error) {
	rec, ok := w.record(entity)
	if !ok {
		return nil, EntityNotFoundError{Entity: entity}
	}
	arch := w.archetypes.get(rec.archetype)
	col := arch.columnFor(id)
	if col < 0 {
		return nil, ComponentNotFoundError{Component: id}
	}
	return arch.pointer(col, rec.row), nil
}

// Len is the number of live entities.
func (w *World) Len() int {
	return len(w.records)
}

// Archetypes yields a description of every archetype in creation order.
func (w *World) Archetypes() iter.Seq[ArchetypeInfo] {
	return func(yield func(ArchetypeInfo) bool) {
		for _, arch := range w.archetypes.asSlice {
			if !yield(arch.info()) {
				return
			}
		}
	}
}

func (w *World) ArchetypeList() []ArchetypeInfo {
	return iter_util.Collect(w.Archetypes())
}

func (w *World) Pool() *pool.Pool {
	return w.pool
}

func (w *World) Locked() bool {
	return w.locks > 0
}

func (w *World) lock() {
	w.locks++
}

// unlock releases one query's hold and flushes queued work once the world is
// free. Flush failures are caller bugs and panic.
func (w *World) unlock() {
	w.locks--
	if w.locks > 0 {
		return
	}
	if err := w.processOperationQueue(); err != nil {
		w.log.Error("queued operation failed", zap.Error(err))
		panic(err)
	}
}

// Close stops the pool if the World created it.
func (w *World) Close() {
	if w.ownsPool {
		w.pool.Close()
	}
}

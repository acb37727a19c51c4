package warehouse

import (
	"github.com/TheBitDrifter/mask"

	"github.com/TheBitDrifter/verlet/pool"
)

// queryBase resolves the archetypes holding every component of ids and not
// holding any excluded component.
type queryBase struct {
	world   *World
	ids     []ComponentID
	without mask.Mask
}

func newQueryBase(world *World, ids ...ComponentID) queryBase {
	for i := range ids {
		for k := i + 1; k < len(ids); k++ {
			if ids[i] == ids[k] {
				panic(DuplicateQueryComponentError{Component: ids[i]})
			}
		}
	}
	return queryBase{world: world, ids: ids}
}

func (q *queryBase) exclude(comps []Component) {
	for _, c := range comps {
		q.without.Mark(uint32(c.ComponentID()))
	}
}

func (q *queryBase) matches() []archetypeMatch {
	found := q.world.archetypes.matching(q.ids)
	if q.without.IsEmpty() {
		return found
	}
	kept := found[:0]
	for _, m := range found {
		if m.archetype.mask.ContainsNone(q.without) {
			kept = append(kept, m)
		}
	}
	return kept
}

// Count is the number of rows the query currently visits.
func (q *queryBase) Count() int {
	total := 0
	for _, m := range q.matches() {
		total += m.archetype.Len()
	}
	return total
}

// threads clamps a requested fan-out to [1, pool size]; n <= 0 means the
// whole pool.
func (q *queryBase) threads(n int) int {
	size := q.world.pool.ThreadCount()
	if n <= 0 || n > size {
		n = size
	}
	return max(n, 1)
}

// parallel runs job once per non-empty section of every matched archetype,
// waiting for each archetype before starting the next.
func (q *queryBase) parallel(threads int, job func(m archetypeMatch, sec pool.Section)) {
	q.world.lock()
	defer q.world.unlock()

	p := q.world.pool
	parts := q.threads(threads)
	for _, m := range q.matches() {
		rows := m.archetype.Len()
		if rows == 0 {
			continue
		}
		for _, sec := range pool.SplitWork(rows, parts) {
			if sec.Amount == 0 {
				continue
			}
			p.Enqueue(func() { job(m, sec) })
		}
		p.WaitForCompletion()
	}
}

// chunks calls fn with consecutive [start, end) row ranges of at most size
// rows for every matched archetype. size <= 0 visits whole archetypes.
func (q *queryBase) chunks(size int, fn func(m archetypeMatch, start, end int)) {
	q.world.lock()
	defer q.world.unlock()

	for _, m := range q.matches() {
		rows := m.archetype.Len()
		step := size
		if step <= 0 {
			step = rows
		}
		for start := 0; start < rows; start += step {
			fn(m, start, min(start+step, rows))
		}
	}
}

func (q *queryBase) each(fn func(m archetypeMatch)) {
	q.world.lock()
	defer q.world.unlock()

	for _, m := range q.matches() {
		if m.archetype.Len() > 0 {
			fn(m)
		}
	}
}

func sliceOf[T any](m archetypeMatch, i int) []T {
	return columnSlice[T](&m.archetype.columns[m.columns[i]])
}

// Query1 visits every entity holding A.
type Query1[A any] struct {
	queryBase
}

func NewQuery1[A any](world *World) *Query1[A] {
	return &Query1[A]{newQueryBase(world, Register[A]())}
}

// Without skips archetypes holding any of comps.
func (q *Query1[A]) Without(comps ...Component) *Query1[A] {
	q.exclude(comps)
	return q
}

func (q *Query1[A]) Each(fn func(*A)) {
	q.each(func(m archetypeMatch) {
		as := sliceOf[A](m, 0)
		for i := range as {
			fn(&as[i])
		}
	})
}

func (q *Query1[A]) EachEntity(fn func(Entity, *A)) {
	q.each(func(m archetypeMatch) {
		as := sliceOf[A](m, 0)
		for i := range as {
			fn(m.archetype.entities[i], &as[i])
		}
	})
}

// EachParallel splits every archetype into contiguous row ranges that run on
// the world's pool. fn must only touch the row it is given.
func (q *Query1[A]) EachParallel(threads int, fn func(*A)) {
	q.parallel(threads, func(m archetypeMatch, sec pool.Section) {
		as := sliceOf[A](m, 0)[sec.Offset:sec.End()]
		for i := range as {
			fn(&as[i])
		}
	})
}

func (q *Query1[A]) EachChunk(chunkSize int, fn func([]A)) {
	q.chunks(chunkSize, func(m archetypeMatch, start, end int) {
		fn(sliceOf[A](m, 0)[start:end])
	})
}

// EachPair visits every unordered pair of rows within each archetype once.
func (q *Query1[A]) EachPair(fn func(*A, *A)) {
	q.each(func(m archetypeMatch) {
		as := sliceOf[A](m, 0)
		for i := range as {
			for k := i + 1; k < len(as); k++ {
				fn(&as[i], &as[k])
			}
		}
	})
}

// Query2 visits every entity holding both A and B.
type Query2[A, B any] struct {
	queryBase
}

func NewQuery2[A, B any](world *World) *Query2[A, B] {
	return &Query2[A, B]{newQueryBase(world, Register[A](), Register[B]())}
}

func (q *Query2[A, B]) Without(comps ...Component) *Query2[A, B] {
	q.exclude(comps)
	return q
}

func (q *Query2[A, B]) Each(fn func(*A, *B)) {
	q.each(func(m archetypeMatch) {
		as, bs := sliceOf[A](m, 0), sliceOf[B](m, 1)
		for i := range as {
			fn(&as[i], &bs[i])
		}
	})
}

func (q *Query2[A, B]) EachEntity(fn func(Entity, *A, *B)) {
	q.each(func(m archetypeMatch) {
		as, bs := sliceOf[A](m, 0), sliceOf[B](m, 1)
		for i := range as {
			fn(m.archetype.entities[i], &as[i], &bs[i])
		}
	})
}

func (q *Query2[A, B]) EachParallel(threads int, fn func(*A, *B)) {
	q.parallel(threads, func(m archetypeMatch, sec pool.Section) {
		as := sliceOf[A](m, 0)[sec.Offset:sec.End()]
		bs := sliceOf[B](m, 1)[sec.Offset:sec.End()]
		for i := range as {
			fn(&as[i], &bs[i])
		}
	})
}

func (q *Query2[A, B]) EachChunk(chunkSize int, fn func([]A, []B)) {
	q.chunks(chunkSize, func(m archetypeMatch, start, end int) {
		fn(sliceOf[A](m, 0)[start:end], sliceOf[B](m, 1)[start:end])
	})
}

func (q *Query2[A, B]) EachPair(fn func(a1 *A, b1 *B, a2 *A, b2 *B)) {
	q.each(func(m archetypeMatch) {
		as, bs := sliceOf[A](m, 0), sliceOf[B](m, 1)
		for i := range as {
			for k := i + 1; k < len(as); k++ {
				fn(&as[i], &bs[i], &as[k], &bs[k])
			}
		}
	})
}

// Query3 visits every entity holding A, B and C.
type Query3[A, B, C any] struct {
	queryBase
}

func NewQuery3[A, B, C any](world *World) *Query3[A, B, C] {
	return &Query3[A, B, C]{newQueryBase(world, Register[A](), Register[B](), Register[C]())}
}

func (q *Query3[A, B, C]) Without(comps ...Component) *Query3[A, B, C] {
	q.exclude(comps)
	return q
}

func (q *Query3[A, B, C]) Each(fn func(*A, *B, *C)) {
	q.each(func(m archetypeMatch) {
		as, bs, cs := sliceOf[A](m, 0), sliceOf[B](m, 1), sliceOf[C](m, 2)
		for i := range as {
			fn(&as[i], &bs[i], &cs[i])
		}
	})
}

func (q *Query3[A, B, C]) EachEntity(fn func(Entity, *A, *B, *C)) {
	q.each(func(m archetypeMatch) {
		as, bs, cs := sliceOf[A](m, 0), sliceOf[B](m, 1), sliceOf[C](m, 2)
		for i := range as {
			fn(m.archetype.entities[i], &as[i], &bs[i], &cs[i])
		}
	})
}

func (q *Query3[A, B, C]) EachParallel(threads int, fn func(*A, *B, *C)) {
	q.parallel(threads, func(m archetypeMatch, sec pool.Section) {
		as := sliceOf[A](m, 0)[sec.Offset:sec.End()]
		bs := sliceOf[B](m, 1)[sec.Offset:sec.End()]
		cs := sliceOf[C](m, 2)[sec.Offset:sec.End()]
		for i := range as {
			fn(&as[i], &bs[i], &cs[i])
		}
	})
}

func (q *Query3[A, B, C]) EachChunk(chunkSize int, fn func([]A, []B, []C)) {
	q.chunks(chunkSize, func(m archetypeMatch, start, end int) {
		fn(sliceOf[A](m, 0)[start:end], sliceOf[B](m, 1)[start:end], sliceOf[C](m, 2)[start:end])
	})
}

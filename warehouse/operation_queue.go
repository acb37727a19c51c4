package warehouse

import (
	"fmt"
)

type operation struct {
	typ    operationType
	values []Value
}

type operationType int

const (
	opCreate operationType = iota
)

// opQueue holds mutations requested while the world was locked. They are
// applied in order when the last query releases the lock.
type opQueue struct {
	createOps []operation
	created   []Entity
}

func newOpQueue() opQueue {
	return opQueue{}
}

func (q *opQueue) enqueueOp(op operation) {
	switch op.typ {
	case opCreate:
		q.createOps = append(q.createOps, op)
	}
}

func (q *opQueue) pending() int {
	return len(q.createOps)
}

func (w *World) processOperationQueue() error {
	if w.opQueue.pending() == 0 {
		return nil
	}
	ops := w.opQueue.createOps
	w.opQueue.createOps = nil
	for _, op := range ops {
		entity, err := w.NewEntity(op.values...)
		if err != nil {
			return fmt.Errorf("failed to process queued entity creation: %w", err)
		}
		w.opQueue.created = append(w.opQueue.created, entity)
	}
	return nil
}

// DrainCreated returns the entities created from the queue since the last
// call, in the order they were enqueued.
func (w *World) DrainCreated() []Entity {
	created := w.opQueue.created
	w.opQueue.created = nil
	return created
}

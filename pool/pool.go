// Package pool implements the fixed-size worker pool used by parallel ECS
// queries and the solver's narrow phase.
//
// Every worker owns a single job slot. Enqueue probes the slots round-robin and
// hands the job to the first free one; when all slots are busy the caller spins
// until one frees up. WaitForCompletion is a fork-join barrier over every job
// enqueued so far.
//
// A Pool is driven by one producer goroutine at a time. Jobs must not enqueue
// into, or wait on, the pool that runs them.
package pool

import (
	"runtime"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

type slot struct {
	busy   atomic.Bool
	job    func()
	signal chan struct{}
}

type Pool struct {
	slots    []slot
	next     atomic.Uint64
	inFlight atomic.Int64
	faults   atomic.Int64

	mu   sync.Mutex
	done *sync.Cond

	stop    chan struct{}
	workers sync.WaitGroup
	closed  atomic.Bool

	log *zap.Logger
}

// New starts the workers. The worker count defaults to runtime.NumCPU().
func New(opts ...Option) *Pool {
	o := options{
		workers: runtime.NumCPU(),
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.workers < 1 {
		o.workers = 1
	}

	p := &Pool{
		slots: make([]slot, o.workers),
		stop:  make(chan struct{}),
		log:   o.log,
	}
	p.done = sync.NewCond(&p.mu)
	for i := range p.slots {
		p.slots[i].signal = make(chan struct{}, 1)
	}
	p.workers.Add(len(p.slots))
	for i := range p.slots {
		go p.worker(i)
	}
	return p
}

// ThreadCount returns the number of workers.
func (p *Pool) ThreadCount() int {
	return len(p.slots)
}

// InFlight returns the number of enqueued jobs that have not finished.
func (p *Pool) InFlight() int64 {
	return p.inFlight.Load()
}

// Faults returns the number of jobs that panicked since the pool started.
func (p *Pool) Faults() int64 {
	return p.faults.Load()
}

// Enqueue hands job to the next free worker, spinning while all are busy.
func (p *Pool) Enqueue(job func()) {
	if job == nil {
		return
	}
	if p.closed.Load() {
		panic(ClosedPoolError{})
	}
	n := uint64(len(p.slots))
	for {
		start := p.next.Add(1) - 1
		for i := uint64(0); i < n; i++ {
			idx := (start + i) % n
			s := &p.slots[idx]
			if !s.busy.CompareAndSwap(false, true) {
				continue
			}
			s.job = job
			p.inFlight.Add(1)
			s.signal <- struct{}{}
			return
		}
		runtime.Gosched()
	}
}

// WaitForCompletion blocks until every enqueued job has finished.
func (p *Pool) WaitForCompletion() {
	p.mu.Lock()
	for p.inFlight.Load() != 0 {
		p.done.Wait()
	}
	p.mu.Unlock()
}

// Close waits for outstanding jobs and joins every worker. It is safe to call
// more than once.
func (p *Pool) Close() {
	if !p.closed.CompareAndSwap(false, true) {
		return
	}
	p.WaitForCompletion()
	close(p.stop)
	p.workers.Wait()
}

func (p *Pool) worker(index int) {
	defer p.workers.Done()
	s := &p.slots[index]
	for {
		select {
		case <-p.stop:
			return
		case <-s.signal:
		}
		p.run(index, s)
	}
}

func (p *Pool) run(index int, s *slot) {
	defer func() {
		if rec := recover(); rec != nil {
			p.faults.Add(1)
			p.log.Error("job panic recovered",
				zap.Int("worker", index),
				zap.Any("panic", rec),
			)
		}
		s.job = nil
		s.busy.Store(false)
		if p.inFlight.Add(-1) == 0 {
			p.mu.Lock()
			p.done.Broadcast()
			p.mu.Unlock()
		}
	}()
	s.job()
}

package source

import "sync"

// Queue defers callbacks out of the call stack that scheduled them. A
// list source uses it so handler notifications are never delivered
// inside the mutation that triggered them.
type Queue interface {
	// Defer schedules fn to run later, after the current call returns.
	// Callbacks run one at a time, in the order they were deferred.
	Defer(fn func())
}

// NewQueue creates a running serial queue. Call Close when done with it.
func NewQueue() *SerialQueue {
	q := &SerialQueue{done: make(chan struct{})}
	q.cond = sync.NewCond(&q.mu)
	go q.run()
	return q
}

// SerialQueue runs deferred callbacks on a single goroutine in FIFO
// order.
type SerialQueue struct {
	pending []func()
	cond    *sync.Cond
	closed  bool
	done    chan struct{}
	mu      sync.Mutex
}

// Defer schedules fn. Deferring on a closed queue drops fn.
func (q *SerialQueue) Defer(fn func()) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.pending = append(q.pending, fn)
	q.cond.Signal()
}

// Close drains remaining callbacks and stops the queue goroutine. It
// blocks until the drain completes.
func (q *SerialQueue) Close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		<-q.done
		return
	}
	q.closed = true
	q.cond.Signal()
	q.mu.Unlock()
	<-q.done
}

func (q *SerialQueue) run() {
	defer close(q.done)
	for {
		q.mu.Lock()
		for len(q.pending) == 0 && !q.closed {
			q.cond.Wait()
		}
		if len(q.pending) == 0 && q.closed {
			q.mu.Unlock()
			return
		}
		fn := q.pending[0]
		q.pending = q.pending[1:]
		q.mu.Unlock()

		fn()
	}
}

// ManualQueue is a Queue whose callbacks run only when Drain is called.
// Tests use it to make deferred delivery deterministic.
type ManualQueue struct {
	pending []func()
	mu      sync.Mutex
}

// Defer appends fn without running it.
func (q *ManualQueue) Defer(fn func()) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pending = append(q.pending, fn)
}

// Drain runs every pending callback in FIFO order, including callbacks
// deferred by the callbacks themselves, and returns how many ran.
func (q *ManualQueue) Drain() int {
	ran := 0
	for {
		q.mu.Lock()
		if len(q.pending) == 0 {
			q.mu.Unlock()
			return ran
		}
		fn := q.pending[0]
		q.pending = q.pending[1:]
		q.mu.Unlock()

		fn()
		ran++
	}
}

// Pending returns the number of callbacks waiting to run.
func (q *ManualQueue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

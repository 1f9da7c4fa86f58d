package memdb

import "sync"

// job is one unit of work for the writer goroutine. The closure does
// its own state mutation and notification emission.
type job struct {
	run func()
}

// jobQueue is a thread-safe FIFO queue feeding the writer goroutine.
//
// The queue is unbounded so callers never block submitting work; a
// buffered signal channel of size 1 coalesces wake-ups for the single
// consumer. Enqueue is safe from any goroutine; Dequeue is only ever
// called by the writer.
type jobQueue struct {
	mu     sync.Mutex
	jobs   []job
	closed bool
	signal chan struct{}
}

func newJobQueue() *jobQueue {
	return &jobQueue{
		jobs:   make([]job, 0, 16),
		signal: make(chan struct{}, 1),
	}
}

// Enqueue appends a job. Returns false if the queue is closed.
func (q *jobQueue) Enqueue(j job) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return false
	}
	q.jobs = append(q.jobs, j)

	select {
	case q.signal <- struct{}{}:
	default:
	}
	return true
}

// Dequeue removes and returns the front job, blocking until one is
// available. Returns false once the queue is closed and drained.
func (q *jobQueue) Dequeue() (job, bool) {
	for {
		if j, ok := q.tryDequeue(); ok {
			return j, true
		}

		q.mu.Lock()
		done := q.closed && len(q.jobs) == 0
		q.mu.Unlock()
		if done {
			return job{}, false
		}

		<-q.signal
	}
}

func (q *jobQueue) tryDequeue() (job, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.jobs) == 0 {
		return job{}, false
	}

	j := q.jobs[0]
	// Nil out the slot so the closure can be collected; the backing
	// array holds the reference otherwise.
	q.jobs[0] = job{}
	if len(q.jobs) == 1 {
		q.jobs = q.jobs[:0]
	} else {
		q.jobs = q.jobs[1:]
	}
	return j, true
}

// Len returns the number of queued jobs.
func (q *jobQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.jobs)
}

// Close stops accepting jobs and wakes the consumer. Already queued
// jobs still run. Idempotent.
func (q *jobQueue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}
	q.closed = true
	close(q.signal)
}

package ramdisk

import "sync"

// queue is the FIFO intake of pending requests. Its lock only covers the
// push and pop themselves.
type queue struct {
	mu      sync.Mutex
	pending []*Request
	closed  bool
}

// push appends r. It returns false if the queue has been closed.
func (q *queue) push(r *Request) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return false
	}
	q.pending = append(q.pending, r)
	return true
}

// fetch pops the oldest request, or returns nil if there is none.
func (q *queue) fetch() *Request {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.pending) == 0 {
		return nil
	}
	r := q.pending[0]
	q.pending[0] = nil
	q.pending = q.pending[1:]
	if len(q.pending) == 0 {
		// reclaim the backing array rather than letting it creep forward.
		q.pending = q.pending[:0:0]
	}
	return r
}

// len returns the number of pending requests.
func (q *queue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// close refuses further pushes and returns whatever was still pending. It
// is safe to call more than once.
func (q *queue) close() []*Request {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.closed = true
	pending := q.pending
	q.pending = nil
	return pending
}

package activity

import (
	"math"
	"sync"

	"github.com/zeebo/errs"
)

// Error is the class that contains all the errors from this package.
var Error = errs.Class("activity")

// DefaultCapacity is the number of events kept when no size is given.
const DefaultCapacity = 100

// Log is a bounded record of the most recent events. It is safe for
// concurrent use; its lock is only held for the duration of a single slot
// read or write.
type Log struct {
	mu   sync.Mutex
	ring ring
}

// New returns an empty log holding at most capacity events.
func New(capacity int) (*Log, error) {
	if capacity <= 0 || uint64(capacity) > math.MaxUint32 {
		return nil, Error.New("invalid capacity: %d", capacity)
	}
	return &Log{ring: newRing(capacity)}, nil
}

// Append records ev, evicting the oldest event if the log is full.
func (l *Log) Append(ev Event) {
	l.mu.Lock()
	l.ring.append(ev)
	l.mu.Unlock()
}

// Len returns the number of events currently held.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return int(l.ring.len())
}

// Cap returns the maximum number of events the log holds.
func (l *Log) Cap() int { return int(l.ring.capacity()) }

// Snapshot returns a copy of the live events, oldest first.
func (l *Log) Snapshot() []Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.ring.appendTo(make([]Event, 0, l.ring.len()))
}

// start returns the slot holding the oldest live event as of now.
func (l *Log) start() slot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.ring.oldest()
}

// from returns the event i slots past start if i is below the live count.
func (l *Log) from(start slot, i uint32) (Event, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.ring.from(start, i)
}

// Export returns an iterator over the log, oldest first. The walk starts
// at the slot that is oldest when Export is called; every step then reads
// that slot's live contents and stops once it passes the live count.
func (l *Log) Export() *Iterator {
	return &Iterator{l: l, start: l.start()}
}

// Iterator walks over the events in a Log.
type Iterator struct {
	l     *Log
	start slot
	i     uint32
	ev    Event
}

// Next advances the iterator and returns true if there is an event.
func (it *Iterator) Next() bool {
	ev, ok := it.l.from(it.start, it.i)
	if !ok {
		return false
	}
	it.ev = ev
	it.i++
	return true
}

// Event returns the current event. It is only valid to call this if the
// most recent call to Next returned true.
func (it *Iterator) Event() Event { return it.ev }

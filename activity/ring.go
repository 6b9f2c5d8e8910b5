package activity

import "github.com/zeebo/ramdisk/internal/debug"

// slot is an index into the ring's backing array. It is always in
// [0, capacity).
type slot uint32

// ring is a fixed capacity circular buffer of events. Once full, each
// append overwrites the oldest entry. It is not thread safe.
type ring struct {
	events []Event
	cursor slot   // next slot to write
	count  uint32 // number of live entries
}

// newRing returns an empty ring holding at most capacity events.
func newRing(capacity int) ring {
	return ring{events: make([]Event, capacity)}
}

// capacity returns the fixed number of slots in the ring.
func (r *ring) capacity() uint32 { return uint32(len(r.events)) }

// len returns the number of live entries.
func (r *ring) len() uint32 { return r.count }

// next returns the slot after s, wrapping at capacity.
func (r *ring) next(s slot) slot {
	s++
	if uint32(s) == r.capacity() {
		s = 0
	}
	return s
}

// append writes ev into the slot at the cursor and advances it. When the
// ring is full the slot at the cursor holds the oldest entry.
func (r *ring) append(ev Event) {
	r.events[r.cursor] = ev
	r.cursor = r.next(r.cursor)
	if r.count < r.capacity() {
		r.count++
	}

	debug.Assert("ring count within capacity", func() bool {
		return r.count <= r.capacity() && uint32(r.cursor) < r.capacity()
	})
}

// oldest returns the slot holding the chronologically first live entry.
func (r *ring) oldest() slot {
	// cursor - count, modulo capacity, without going negative.
	return slot((uint32(r.cursor) + r.capacity() - r.count) % r.capacity())
}

// at returns the i'th live entry in chronological order. It reports false
// if i is not below len.
func (r *ring) at(i uint32) (Event, bool) {
	return r.from(r.oldest(), i)
}

// from returns the entry i slots past start, as long as i is below the
// live count. A walk that fixes start once never skips an entry when
// appends wrap the ring underneath it.
func (r *ring) from(start slot, i uint32) (Event, bool) {
	if i >= r.count {
		return Event{}, false
	}
	s := (uint64(start) + uint64(i)) % uint64(r.capacity())
	return r.events[s], true
}

// appendTo appends the live entries, oldest first, to out.
func (r *ring) appendTo(out []Event) []Event {
	for s, n := r.oldest(), uint32(0); n < r.count; s, n = r.next(s), n+1 {
		out = append(out, r.events[s])
	}
	return out
}

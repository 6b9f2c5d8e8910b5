// Package mon keeps cheap timing information about hot paths.
package mon

import (
	"sync/atomic"
	"time"
)

const (
	bufferShift = 8 // 256 elements
	bufferElems = 1 << bufferShift
	bufferMask  = bufferElems - 1
)

// Histogram is a ring histogram of durations that have been observed. The
// zero value is ready to use.
type Histogram struct {
	total   int64
	current int64
	durs    [bufferElems]int64
}

// start should be called before done, to keep track of concurrent executions.
func (h *Histogram) start() { atomic.AddInt64(&h.current, 1) }

// done stores the duration in the ring buffer, incrementing the count.
func (h *Histogram) done(dur int64) {
	loc := &h.durs[(atomic.AddInt64(&h.total, 1)-1)&bufferMask]
	atomic.StoreInt64(loc, dur)
	atomic.AddInt64(&h.current, -1)
}

// cancel drops an execution started with start without recording it.
func (h *Histogram) cancel() { atomic.AddInt64(&h.current, -1) }

// Total returns the amount of times a duration has been added to the histogram.
func (h *Histogram) Total() int64 { return atomic.LoadInt64(&h.total) }

// Current returns the amount of currently recording executions.
func (h *Histogram) Current() int64 { return atomic.LoadInt64(&h.current) }

// dursLen returns the number of valid entries in the durs buffer.
func (h *Histogram) dursLen() int {
	n := h.Total()
	if n > bufferElems {
		return bufferElems
	}
	return int(n)
}

// Durations returns a copy of the retained durations, oldest first.
func (h *Histogram) Durations() []int64 {
	total := h.Total()
	n := h.dursLen()
	first := total - int64(n)

	out := make([]int64, n)
	for i := range out {
		out[i] = atomic.LoadInt64(&h.durs[(first+int64(i))&bufferMask])
	}
	return out
}

// Average returns the average of the retained durations in nanoseconds. It
// is zero if nothing has been observed.
func (h *Histogram) Average() float64 {
	n := h.dursLen()
	if n == 0 {
		return 0
	}
	total := int64(0)
	for i := 0; i < n; i++ {
		total += atomic.LoadInt64(&h.durs[i])
	}
	return float64(total) / float64(n)
}

// Thunk times some section of code into its histogram.
type Thunk struct {
	Histogram
}

// Timer is an in progress measurement started by a Thunk.
type Timer struct {
	h     *Histogram
	start time.Time
}

// Start begins timing an execution.
func (t *Thunk) Start() Timer {
	t.Histogram.start()
	return Timer{h: &t.Histogram, start: time.Now()}
}

// Stop records the elapsed time since Start. Calling Stop on the zero Timer
// does nothing.
func (t Timer) Stop() time.Duration {
	if t.h == nil {
		return 0
	}
	dur := time.Since(t.start)
	t.h.done(int64(dur))
	return dur
}

// Cancel ends the measurement without recording a duration, for work that
// was abandoned and should not skew the histogram. Calling Cancel on the
// zero Timer does nothing.
func (t Timer) Cancel() {
	if t.h != nil {
		t.h.cancel()
	}
}

package ramdisk

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/zeebo/ramdisk/activity"
	"github.com/zeebo/ramdisk/internal/debug"
	"github.com/zeebo/ramdisk/internal/mon"
	"github.com/zeebo/ramdisk/store"
)

// disk pairs the store with the device lock that guards it.
type disk struct {
	mu    sync.Mutex
	store *store.Memory
}

// engine drains the queue one request at a time. It holds the device lock
// only while copying data and the log lock only while appending, and never
// both at once.
type engine struct {
	queue  *queue
	disk   *disk
	log    *activity.Log
	clock  func() time.Duration
	logger Logger
	debug  bool

	running  sync.Mutex // held by the single active drainer
	draining int32      // checked by assertions only
	timing   mon.Thunk
	serviced int64
	rejected int64
}

// drain services queued requests until the queue is empty. If another
// goroutine is already draining it returns immediately and that goroutine
// picks up whatever was queued.
func (e *engine) drain() {
	for e.queue.len() > 0 {
		if !e.running.TryLock() {
			return
		}

		debug.Assert("single drainer", func() bool {
			return atomic.AddInt32(&e.draining, 1) == 1
		})

		for req := e.queue.fetch(); req != nil; req = e.queue.fetch() {
			e.service(req)
		}

		debug.Assert("single drainer", func() bool {
			return atomic.AddInt32(&e.draining, -1) == 0
		})

		// a push that raced with the last fetch saw us as busy and left
		// its request behind, so the loop checks the queue again.
		e.running.Unlock()
	}
}

// idle blocks until no goroutine is draining.
func (e *engine) idle() {
	e.running.Lock()
	e.running.Unlock()
}

// service runs one request through validate, execute, log and complete.
func (e *engine) service(req *Request) {
	timer := e.timing.Start()

	err := e.execute(req)
	if err != nil {
		// rejections are not service time.
		timer.Cancel()
		atomic.AddInt64(&e.rejected, 1)
		req.complete(err)
		return
	}

	if e.debug {
		if req.Direction == Write {
			e.logger.Printf("write to sector %d with %d bytes", req.Sector, len(req.Buf))
		} else {
			e.logger.Printf("read %d bytes starting from sector %d", len(req.Buf), req.Sector)
		}
	}

	e.log.Append(activity.Event{
		Direction:   req.Direction,
		StartSector: req.Sector,
		ByteCount:   uint64(len(req.Buf)),
		Timestamp:   uint64(e.clock().Milliseconds()),
	})

	timer.Stop()
	atomic.AddInt64(&e.serviced, 1)
	req.complete(nil)
}

// execute validates req and copies its data under the device lock.
func (e *engine) execute(req *Request) error {
	if req.Kind != KindStorage {
		return UnsupportedRequest.New("%s request", req.Kind)
	}
	if req.Direction != Read && req.Direction != Write {
		return UnsupportedRequest.New("direction %v", req.Direction)
	}

	off, err := store.SectorOffset(req.Sector)
	if err != nil {
		return err
	}

	e.disk.mu.Lock()
	defer e.disk.mu.Unlock()

	if e.disk.store == nil {
		return Closed.New("device closed")
	}
	if req.Direction == Write {
		return e.disk.store.WriteAt(req.Buf, off)
	}
	return e.disk.store.ReadAt(req.Buf, off)
}

// Stats summarizes the work done by a device.
type Stats struct {
	Serviced    int64         // requests completed successfully
	Rejected    int64         // requests failed before touching the store
	InFlight    int64         // requests currently being serviced
	MeanService time.Duration // over recently serviced requests; rejections are excluded
}

func (e *engine) stats() Stats {
	return Stats{
		Serviced:    atomic.LoadInt64(&e.serviced),
		Rejected:    atomic.LoadInt64(&e.rejected),
		InFlight:    e.timing.Current(),
		MeanService: time.Duration(e.timing.Average()),
	}
}

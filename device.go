// Package ramdisk implements a block device backed by memory. Requests
// are serviced strictly one at a time and each one that completes is
// recorded in a bounded activity log.
package ramdisk

import (
	"context"
	"sync/atomic"

	"github.com/zeebo/errs"
	"github.com/zeebo/ramdisk/activity"
	"github.com/zeebo/ramdisk/digest"
	"github.com/zeebo/ramdisk/store"
)

// Device is a memory backed block device. It is safe for concurrent use.
type Device struct {
	capacity uint64
	queue    *queue
	log      *activity.Log
	pager    *activity.Pager
	disk     *disk
	engine   *engine
	closed   int32
}

var _ Driver = (*Device)(nil)

// New allocates a device. On failure everything acquired so far is
// released and no device is returned.
func New(opts Options) (_ *Device, err error) {
	opts = opts.withDefaults()

	d := &Device{
		capacity: opts.Capacity,
		queue:    new(queue),
	}
	defer func() {
		if err != nil {
			_ = d.Close()
		}
	}()

	d.log, err = activity.New(opts.LogSize)
	if err != nil {
		return nil, Error.Wrap(err)
	}
	d.pager = activity.NewPager(d.log)

	mem, err := store.New(opts.Capacity, opts.Allocator)
	if err != nil {
		return nil, Error.Wrap(err)
	}
	d.disk = &disk{store: mem}

	d.engine = &engine{
		queue:  d.queue,
		disk:   d.disk,
		log:    d.log,
		clock:  opts.Clock,
		logger: opts.Logger,
		debug:  opts.Debug,
	}

	return d, nil
}

// Capacity returns the size of the device in bytes.
func (d *Device) Capacity() uint64 { return d.capacity }

// Sectors returns the number of sectors announced for the device.
func (d *Device) Sectors() uint64 { return store.Sectors(d.capacity) }

// Log returns the activity log.
func (d *Device) Log() *activity.Log { return d.log }

// Pager returns the text export of the activity log.
func (d *Device) Pager() *activity.Pager { return d.pager }

// Stats returns counters about serviced requests.
func (d *Device) Stats() Stats { return d.engine.stats() }

// Submit queues req for servicing. The caller may end up servicing the
// queue itself, including requests submitted by others. Completion is
// signalled through req.
func (d *Device) Submit(req *Request) {
	req.init()
	if atomic.LoadInt32(&d.closed) != 0 || !d.queue.push(req) {
		req.complete(Closed.New("device closed"))
		return
	}
	d.engine.drain()
}

// Do submits req and waits for it to complete.
func (d *Device) Do(ctx context.Context, req *Request) error {
	d.Submit(req)
	return req.Wait(ctx)
}

// ReadSectors fills buf starting at the given sector.
func (d *Device) ReadSectors(ctx context.Context, sector uint64, buf []byte) error {
	return d.Do(ctx, NewRead(sector, buf))
}

// WriteSectors stores buf starting at the given sector.
func (d *Device) WriteSectors(ctx context.Context, sector uint64, buf []byte) error {
	return d.Do(ctx, NewWrite(sector, buf))
}

// Digest hashes length bytes starting at off. The key is only used by
// keyed digests.
func (d *Device) Digest(kind digest.Kind, key []byte, off, length uint64) (uint64, error) {
	d.disk.mu.Lock()
	defer d.disk.mu.Unlock()

	if d.disk.store == nil {
		return 0, Closed.New("device closed")
	}
	data, err := d.disk.store.View(off, length)
	if err != nil {
		return 0, err
	}
	return digest.Sum(kind, key, data)
}

// Close tears the device down. Queued requests fail with Closed, the
// active drainer is allowed to finish, and then the store is released. It
// is safe to call more than once and on a partially constructed device.
func (d *Device) Close() error {
	if d == nil || !atomic.CompareAndSwapInt32(&d.closed, 0, 1) {
		return nil
	}

	var group errs.Group
	if d.queue != nil {
		for _, req := range d.queue.close() {
			req.complete(Closed.New("device closed"))
		}
	}
	if d.engine != nil {
		d.engine.idle()
	}
	if d.disk != nil {
		d.disk.mu.Lock()
		group.Add(d.disk.store.Close())
		d.disk.store = nil
		d.disk.mu.Unlock()
	}
	// the log is plain memory and is left to the garbage collector.

	return Error.Wrap(group.Err())
}

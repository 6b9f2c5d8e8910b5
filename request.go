package ramdisk

import (
	"context"

	"github.com/zeebo/ramdisk/activity"
)

// Direction is the data direction of a storage request.
type Direction = activity.Direction

const (
	Read  = activity.Read
	Write = activity.Write
)

// Kind classifies a request reaching the data path. Only KindStorage
// requests are serviced.
type Kind uint8

const (
	KindStorage Kind = iota
	KindControl
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindStorage:
		return "storage"
	case KindControl:
		return "control"
	default:
		return "unknown"
	}
}

// Request is a single I/O against the device. For writes Buf is the
// source, for reads it is the destination; the byte count is len(Buf). A
// request must not be reused or have its Buf touched until it completes.
type Request struct {
	Kind      Kind
	Direction Direction
	Sector    uint64
	Buf       []byte

	done chan struct{}
	err  error
}

// NewRead returns a request filling buf from the given sector.
func NewRead(sector uint64, buf []byte) *Request {
	return newRequest(KindStorage, Read, sector, buf)
}

// NewWrite returns a request storing buf at the given sector.
func NewWrite(sector uint64, buf []byte) *Request {
	return newRequest(KindStorage, Write, sector, buf)
}

// NewControl returns an administrative request. The data path rejects it.
func NewControl() *Request {
	return newRequest(KindControl, Read, 0, nil)
}

func newRequest(kind Kind, dir Direction, sector uint64, buf []byte) *Request {
	return &Request{
		Kind:      kind,
		Direction: dir,
		Sector:    sector,
		Buf:       buf,
		done:      make(chan struct{}),
	}
}

// init prepares the request for submission. A request built by one of the
// constructors keeps its channel so that waiters that started before the
// submit are woken. A request built as a literal, or one being resubmitted
// after it completed, gets a fresh one.
func (r *Request) init() {
	if r.done == nil {
		r.done = make(chan struct{})
	} else {
		select {
		case <-r.done:
			r.done = make(chan struct{})
		default:
		}
	}
	r.err = nil
}

// complete records the outcome and wakes anyone waiting.
func (r *Request) complete(err error) {
	r.err = err
	close(r.done)
}

// Done returns a channel closed once the request has completed. For a
// request built as a struct literal it is nil until Submit.
func (r *Request) Done() <-chan struct{} { return r.done }

// Err returns the result of the request. It is only meaningful after Done
// is closed.
func (r *Request) Err() error { return r.err }

// Wait blocks until the request completes or ctx is done. A context error
// does not cancel the request: it still runs to completion. Requests from
// NewRead, NewWrite and NewControl may be waited on before they are
// submitted.
func (r *Request) Wait(ctx context.Context) error {
	select {
	case <-r.done:
		return r.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

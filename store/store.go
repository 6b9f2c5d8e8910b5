package store

import (
	"math"

	"github.com/zeebo/errs"
)

// SectorSize is the fixed addressing unit of the device.
const SectorSize = 512

var (
	// Error is the class that contains all the errors from this package.
	Error = errs.Class("store")

	// OutOfRange is returned when a byte range does not fit in the store.
	OutOfRange = errs.Class("out of range")

	// AllocationFailed is returned when the backing buffer cannot be obtained.
	AllocationFailed = errs.Class("allocation failed")

	// Closed is returned for any access after Close.
	Closed = errs.Class("closed")
)

// Disk is an interface abstracting some byte addressable storage.
type Disk interface {
	// Capacity returns the size of the disk in bytes. It never changes.
	Capacity() uint64

	// ReadAt fills p with the bytes starting at off. It fails without
	// touching p if the range does not fit.
	ReadAt(p []byte, off uint64) error

	// WriteAt stores p starting at off. It is all or nothing: a range that
	// does not fit is rejected before any byte is copied.
	WriteAt(p []byte, off uint64) error
}

// Allocator obtains the backing buffer for a store. It returns an error if
// the memory cannot be provided.
type Allocator func(size uint64) ([]byte, error)

// DefaultAllocator allocates a zeroed buffer from the Go heap.
func DefaultAllocator(size uint64) ([]byte, error) {
	if size > math.MaxInt {
		return nil, AllocationFailed.New("%d bytes exceeds address space", size)
	}
	return make([]byte, size), nil
}

// Memory is a Disk backed by a single contiguous byte slice. It is not
// thread safe: the owning device serializes access to it.
type Memory struct {
	capacity uint64
	data     []byte
}

var _ Disk = (*Memory)(nil)

// New returns a zeroed store of the given capacity using alloc to obtain
// its buffer. A nil alloc uses DefaultAllocator.
func New(capacity uint64, alloc Allocator) (*Memory, error) {
	if alloc == nil {
		alloc = DefaultAllocator
	}
	if capacity == 0 {
		return nil, AllocationFailed.New("zero capacity")
	}

	data, err := alloc(capacity)
	if err != nil {
		return nil, AllocationFailed.Wrap(err)
	}
	if uint64(len(data)) != capacity {
		return nil, AllocationFailed.New("allocator returned %d bytes, wanted %d",
			len(data), capacity)
	}

	// allocators are not required to hand back zeroed memory.
	for i := range data {
		data[i] = 0
	}

	return &Memory{
		capacity: capacity,
		data:     data,
	}, nil
}

// Capacity returns the size of the store in bytes.
func (m *Memory) Capacity() uint64 { return m.capacity }

// Sectors returns the number of sectors needed to cover the store,
// counting a trailing partial sector.
func (m *Memory) Sectors() uint64 { return Sectors(m.capacity) }

// Sectors returns ceil(bytes / SectorSize).
func Sectors(bytes uint64) uint64 {
	return bytes/SectorSize + min(bytes%SectorSize, 1)
}

// SectorOffset translates a sector number into a byte offset.
func SectorOffset(sector uint64) (uint64, error) {
	if sector > math.MaxUint64/SectorSize {
		return 0, OutOfRange.New("sector %d overflows", sector)
	}
	return sector * SectorSize, nil
}

// check returns an error if [off, off+length) is not inside the store.
func (m *Memory) check(off, length uint64) error {
	if m.data == nil {
		return Closed.New("store released")
	}
	// written to not overflow when off is near the top of the range.
	if off > m.capacity || length > m.capacity-off {
		return OutOfRange.New("[%d, %d+%d) exceeds capacity %d",
			off, off, length, m.capacity)
	}
	return nil
}

// ReadAt copies len(p) bytes starting at off into p.
func (m *Memory) ReadAt(p []byte, off uint64) error {
	if err := m.check(off, uint64(len(p))); err != nil {
		return err
	}
	copy(p, m.data[off:])
	return nil
}

// Read returns a copy of length bytes starting at off.
func (m *Memory) Read(off, length uint64) ([]byte, error) {
	if err := m.check(off, length); err != nil {
		return nil, err
	}
	out := make([]byte, length)
	copy(out, m.data[off:])
	return out, nil
}

// WriteAt copies p into the store starting at off.
func (m *Memory) WriteAt(p []byte, off uint64) error {
	if err := m.check(off, uint64(len(p))); err != nil {
		return err
	}
	copy(m.data[off:], p)
	return nil
}

// View returns the live bytes of [off, off+length). It is only valid
// until the next write or Close, and must not be modified.
func (m *Memory) View(off, length uint64) ([]byte, error) {
	if err := m.check(off, length); err != nil {
		return nil, err
	}
	return m.data[off : off+length : off+length], nil
}

// Close releases the buffer. It is safe to call more than once, and on a
// nil store.
func (m *Memory) Close() error {
	if m == nil {
		return nil
	}
	m.data = nil
	return nil
}

package ramdisk

import (
	"log"
	"os"
	"time"

	"github.com/zeebo/ramdisk/activity"
	"github.com/zeebo/ramdisk/store"
)

// DefaultCapacity is the size of the device when none is configured: 2048
// sectors.
const DefaultCapacity = store.SectorSize * 2048

// Logger receives operational diagnostics. It is unrelated to the activity
// log.
type Logger interface {
	Printf(format string, args ...interface{})
}

// Options configures a Device. The zero value of every field selects its
// default.
type Options struct {
	// Capacity is the size of the device in bytes.
	Capacity uint64

	// LogSize is the number of events the activity log keeps.
	LogSize int

	// Debug emits one line per serviced request to Logger.
	Debug bool

	// Logger receives debug output. It defaults to stderr.
	Logger Logger

	// Allocator obtains the backing buffer. It defaults to the Go heap.
	Allocator store.Allocator

	// Clock returns the time since some fixed epoch. It must not go
	// backwards. It defaults to the monotonic time since the device was
	// created.
	Clock func() time.Duration
}

// DefaultOptions returns the options used for zero fields.
func DefaultOptions() Options {
	return Options{
		Capacity: DefaultCapacity,
		LogSize:  activity.DefaultCapacity,
	}
}

// withDefaults fills in any zero fields.
func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.Capacity == 0 {
		o.Capacity = def.Capacity
	}
	if o.LogSize == 0 {
		o.LogSize = def.LogSize
	}
	if o.Logger == nil {
		o.Logger = log.New(os.Stderr, "ramdisk: ", log.LstdFlags)
	}
	if o.Allocator == nil {
		o.Allocator = store.DefaultAllocator
	}
	if o.Clock == nil {
		epoch := time.Now()
		o.Clock = func() time.Duration { return time.Since(epoch) }
	}
	return o
}

package ramdisk

import (
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/zeebo/assert"
)

// fakeClock advances one millisecond every time it is read.
type fakeClock struct {
	mu  sync.Mutex
	now time.Duration
}

func (c *fakeClock) read() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now += time.Millisecond
	return c.now
}

// bufLogger collects debug lines.
type bufLogger struct {
	mu    sync.Mutex
	lines []string
}

func (b *bufLogger) Printf(format string, args ...interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lines = append(b.lines, fmt.Sprintf(format, args...))
}

func (b *bufLogger) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return strings.Join(b.lines, "\n")
}

func newTestDevice(t testing.TB, opts Options) *Device {
	t.Helper()
	if opts.Clock == nil {
		opts.Clock = new(fakeClock).read
	}
	d, err := New(opts)
	assert.NoError(t, err)
	return d
}

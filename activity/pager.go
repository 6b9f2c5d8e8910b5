package activity

import (
	"io"
	"sync"
)

// maxLine bounds the length of one formatted event: four uint64s, three
// tabs and a newline.
const maxLine = 4*20 + 4

// Pager exposes a Log as a paginated text stream, one line per event:
//
//	<timestamp>\t<direction>\t<start sector>\t<byte count>\n
//
// ReadPage at offset zero restarts the traversal. Other offsets continue
// from wherever the previous read stopped, so the pager behaves like a
// procfs file read front to back by one reader at a time. It is not an
// io.ReaderAt: a page holds only whole lines and may be short without
// an error.
type Pager struct {
	l *Log

	mu    sync.Mutex
	start slot   // oldest slot when the traversal last restarted
	next  uint32 // next event to format, counted from start
	off  int64  // byte offset used by Read
	line []byte
	rest []byte // unread tail of a line split by Read
}

var (
	_ io.Reader   = (*Pager)(nil)
	_ io.WriterTo = (*Pager)(nil)
)

// NewPager returns a pager over l.
func NewPager(l *Log) *Pager {
	return &Pager{
		l:     l,
		start: l.start(),
		line:  make([]byte, 0, maxLine),
	}
}

// restart begins a new traversal at the currently oldest event. p.mu must
// be held.
func (p *Pager) restart() {
	p.start = p.l.start()
	p.next = 0
}

// ReadPage fills buf with as many whole event lines as fit. Only whether
// off is zero matters. It returns io.EOF once every live event has been
// produced, and io.ErrShortBuffer if buf cannot hold a single line.
func (p *Pager) ReadPage(buf []byte, off int64) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if off == 0 {
		p.restart()
	}
	return p.fill(buf, false)
}

// Read implements io.Reader, tracking its own offset. Unlike ReadPage it
// splits lines across calls when buf is too small to hold one.
func (p *Pager) Read(buf []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.off == 0 {
		p.restart()
		p.rest = p.rest[:0]
	}

	n := copy(buf, p.rest)
	p.rest = p.rest[n:]

	var err error
	if len(p.rest) == 0 {
		var m int
		m, err = p.fill(buf[n:], true)
		n += m
		if err == io.EOF && n > 0 {
			err = nil
		}
	}

	p.off += int64(n)
	return n, err
}

// Rewind makes the next Read start from the oldest event.
func (p *Pager) Rewind() {
	p.mu.Lock()
	p.off = 0
	p.rest = p.rest[:0]
	p.mu.Unlock()
}

// fill writes lines into buf starting at the event cursor. If split is set
// a line that does not fit is written partially and the remainder kept in
// p.rest. p.mu must be held.
func (p *Pager) fill(buf []byte, split bool) (n int, err error) {
	for {
		ev, ok := p.l.from(p.start, p.next)
		if !ok {
			if n == 0 {
				return 0, io.EOF
			}
			return n, nil
		}

		p.line = appendEvent(p.line[:0], ev)
		if len(p.line) > len(buf)-n {
			if split {
				m := copy(buf[n:], p.line)
				p.rest = append(p.rest[:0], p.line[m:]...)
				p.next++
				return n + m, nil
			}
			if n == 0 {
				return 0, io.ErrShortBuffer
			}
			return n, nil
		}

		n += copy(buf[n:], p.line)
		p.next++
	}
}

// WriteTo writes every live event to w, oldest first, starting from the
// beginning regardless of previous reads.
func (p *Pager) WriteTo(w io.Writer) (int64, error) {
	var total int64
	buf := make([]byte, 4096)

	for off := int64(0); ; {
		n, err := p.ReadPage(buf, off)
		if n > 0 {
			m, werr := w.Write(buf[:n])
			total += int64(m)
			if werr != nil {
				return total, werr
			}
			off += int64(n)
		}
		if err == io.EOF {
			return total, nil
		} else if err != nil {
			return total, Error.Wrap(err)
		}
	}
}

// String returns the whole export as a string.
func (p *Pager) String() string {
	var out []byte
	for it := p.l.Export(); it.Next(); {
		out = appendEvent(out, it.Event())
	}
	return string(out)
}

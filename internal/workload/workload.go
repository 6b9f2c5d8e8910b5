// Package workload generates a random mix of reads and writes over a
// device, seeded so runs can be reproduced.
package workload

// Op is a single generated access.
type Op struct {
	Write  bool
	Offset uint64
	Length uint64
}

// Generator yields Ops that always fit inside its capacity.
type Generator struct {
	rng      rng
	capacity uint64
	maxBytes uint64
}

// New returns a generator over a device of capacity bytes that issues
// accesses of between 1 and maxBytes bytes. maxBytes is clamped to the
// capacity. A zero capacity generator only yields empty ops at offset 0.
func New(seed, capacity, maxBytes uint64) *Generator {
	if maxBytes > capacity {
		maxBytes = capacity
	}
	return &Generator{
		rng:      newRNG(seed, 0),
		capacity: capacity,
		maxBytes: maxBytes,
	}
}

// Next returns the next op.
func (g *Generator) Next() Op {
	var op Op
	op.Write = g.rng.uint32()&1 == 1
	if g.maxBytes == 0 {
		return op
	}
	op.Length = 1 + g.rng.uint64n(g.maxBytes)
	op.Offset = g.rng.uint64n(g.capacity - op.Length + 1)
	return op
}

// Fill writes pseudo random bytes into buf.
func (g *Generator) Fill(buf []byte) {
	for len(buf) >= 4 {
		v := g.rng.uint32()
		buf[0], buf[1], buf[2], buf[3] = byte(v), byte(v>>8), byte(v>>16), byte(v>>24)
		buf = buf[4:]
	}
	if len(buf) > 0 {
		v := g.rng.uint32()
		for i := range buf {
			buf[i] = byte(v >> (8 * i))
		}
	}
}

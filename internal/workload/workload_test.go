package workload

import (
	"testing"

	"github.com/zeebo/assert"
)

func TestRNG(t *testing.T) {
	r := newRNG(2345, 2378)
	out := make([]uint32, 10)
	for i := range out {
		out[i] = r.uint32()
	}

	assert.DeepEqual(t, out, []uint32{
		0xa066bccc,
		0xee77540c,
		0x69020df4,
		0x981fbe29,
		0xb85fc8bf,
		0xb3f67bbc,
		0xb0c96811,
		0xbe14c31a,
		0x38a77bed,
		0x5a330581,
	})
}

func TestGenerator(t *testing.T) {
	t.Run("Bounds", func(t *testing.T) {
		g := New(1, 1<<20, 1024)
		writes := 0
		for i := 0; i < 10000; i++ {
			op := g.Next()
			assert.That(t, op.Length >= 1 && op.Length <= 1024)
			assert.That(t, op.Offset+op.Length <= 1<<20)
			if op.Write {
				writes++
			}
		}
		assert.That(t, writes > 4000 && writes < 6000)
	})

	t.Run("Deterministic", func(t *testing.T) {
		a, b := New(42, 4096, 512), New(42, 4096, 512)
		for i := 0; i < 100; i++ {
			assert.Equal(t, a.Next(), b.Next())
		}

		ba, bb := make([]byte, 37), make([]byte, 37)
		a.Fill(ba)
		b.Fill(bb)
		assert.DeepEqual(t, ba, bb)
	})

	t.Run("Clamped", func(t *testing.T) {
		g := New(7, 16, 1024)
		for i := 0; i < 100; i++ {
			op := g.Next()
			assert.That(t, op.Offset+op.Length <= 16)
		}
	})

	t.Run("Empty", func(t *testing.T) {
		g := New(7, 0, 1024)
		assert.Equal(t, g.Next().Length, uint64(0))
	})
}

var blackholeUint32 uint32

func BenchmarkRNG(b *testing.B) {
	r := newRNG(2345, 2378)

	for i := 0; i < b.N; i++ {
		blackholeUint32 += r.uint32()
	}
}
